package fake_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/fabrica/fake"
)

func memberNames(fields []fake.FieldInfo) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

func TestMembersPlainStruct(t *testing.T) {
	t.Parallel()

	type Account struct {
		ID        int64
		UserName  string
		CreatedAt time.Time
		Secret    *string
		internal  bool //nolint:unused // exercises the unexported-field skip
	}

	fields, err := fake.Members(reflect.TypeOf(Account{}))
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "user_name", "created_at", "secret"}, memberNames(fields))

	assert.False(t, fields[0].Nillable)
	assert.True(t, fields[3].Nillable)
	assert.Equal(t, reflect.TypeOf(""), fields[3].Type)
	assert.Equal(t, "User Name", fields[1].Label)
}

func TestMembersPointerTargetResolved(t *testing.T) {
	t.Parallel()

	type Account struct {
		ID int64
	}
	fields, err := fake.Members(reflect.TypeOf(&Account{}))
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, "id", fields[0].Name)
}

func TestMembersORMTags(t *testing.T) {
	t.Parallel()

	type User struct {
		ID      int64  `gorm:"primaryKey;column:user_id"`
		Name    string `gorm:"column:full_name"`
		Ignored string `gorm:"-"`
		Plain   string
	}

	fields, err := fake.Members(reflect.TypeOf(User{}))
	require.NoError(t, err)
	assert.Equal(t, []string{"user_id", "full_name", "plain"}, memberNames(fields))
}

func TestMembersDBTags(t *testing.T) {
	t.Parallel()

	type Row struct {
		ID      int64  `db:"row_id"`
		Payload []byte `db:"payload,omitempty"`
		Skipped string `db:"-"`
	}

	fields, err := fake.Members(reflect.TypeOf(Row{}))
	require.NoError(t, err)
	assert.Equal(t, []string{"row_id", "payload"}, memberNames(fields))

	// []byte is a scalar byte sequence, not a collection.
	assert.False(t, fields[1].IsSlice)
}

func TestMembersSchemaTags(t *testing.T) {
	t.Parallel()

	type Payload struct {
		ID    int64   `json:"id"`
		Email *string `json:"email" validate:"required,email"`
		Note  *string `json:"note,omitempty"`
		Raw   string  `json:"-"`
	}

	fields, err := fake.Members(reflect.TypeOf(Payload{}))
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "email", "note"}, memberNames(fields))

	// validate:"required" makes a pointer member non-optional.
	assert.False(t, fields[1].Nillable)
	assert.True(t, fields[2].Nillable)
}

func TestMembersCollections(t *testing.T) {
	t.Parallel()

	type Group struct {
		Names   []string
		Members []*Author
	}

	fields, err := fake.Members(reflect.TypeOf(Group{}))
	require.NoError(t, err)
	require.Len(t, fields, 2)

	assert.True(t, fields[0].IsSlice)
	assert.Equal(t, reflect.TypeOf(""), fields[0].Elem)
	assert.True(t, fields[1].IsSlice)
	assert.Equal(t, reflect.TypeOf(Author{}), fields[1].Elem)
}

func TestMembersEmbedded(t *testing.T) {
	t.Parallel()

	type Base struct {
		CreatedAt time.Time
	}
	type Entity struct {
		Base
		Name string
	}

	fields, err := fake.Members(reflect.TypeOf(Entity{}))
	require.NoError(t, err)
	// The embedded header itself is skipped; its promoted members surface.
	assert.Equal(t, []string{"created_at", "name"}, memberNames(fields))
}

func TestMembersUnsupported(t *testing.T) {
	t.Parallel()

	_, err := fake.Members(reflect.TypeOf(42))
	require.Error(t, err)
	assert.True(t, fake.IsUnsupportedType(err))

	_, err = fake.Members(nil)
	require.Error(t, err)
	assert.True(t, fake.IsUnsupportedType(err))
}

// describedEntity exercises the FieldDescriber capability: it exposes only a
// subset of its fields, with a renamed member.
type describedEntity struct {
	ID     int64
	Name   string
	Hidden string
}

func (describedEntity) FakeFields() []fake.FieldInfo {
	return []fake.FieldInfo{
		{GoName: "ID"},
		{GoName: "Name", Name: "display_name"},
	}
}

func TestMembersFieldDescriber(t *testing.T) {
	t.Parallel()

	fields, err := fake.Members(reflect.TypeOf(describedEntity{}))
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "display_name"}, memberNames(fields))

	// Described members build like any other style.
	v, err := fake.Instance[describedEntity]()
	require.NoError(t, err)
	assert.Equal(t, int64(1), v.ID)
	assert.Equal(t, "2-str", v.Name)
	assert.Empty(t, v.Hidden)
}
