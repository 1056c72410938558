package fake

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FieldInfo describes a single generatable member of a type: its name, its
// resolved declared type, whether it is optional and whether it holds a
// homogeneous ordered collection.
type FieldInfo struct {
	// GoName is the struct field name, e.g. "CreatedAt".
	GoName string
	// Name is the storage-style name, e.g. "created_at". It is taken from a
	// column tag when present and derived from GoName otherwise.
	Name string
	// Label is a human-readable form of Name, e.g. "Created At".
	Label string
	// Index locates the field for reflect access, including promoted fields.
	Index []int
	// Type is the declared type with any pointer wrapper removed.
	Type reflect.Type
	// Nillable reports whether the field was declared as a pointer.
	Nillable bool
	// IsSlice reports whether Type is a homogeneous ordered collection.
	// []byte is treated as a scalar, not a collection.
	IsSlice bool
	// Elem is the collection element type (pointer-unwrapped) when IsSlice.
	Elem reflect.Type
}

// FieldDescriber lets a type declare its own generatable members instead of
// having them derived from struct fields. Implementations typically return a
// subset of the struct's fields, or rename them. Fields returned without an
// Index are resolved against the struct by GoName.
type FieldDescriber interface {
	FakeFields() []FieldInfo
}

var describerType = reflect.TypeOf((*FieldDescriber)(nil)).Elem()

// memberProvider is one supported struct style. Dispatch is by capability:
// the first provider whose supports() accepts the type wins. New styles are
// added by extending the provider chain, not by changing the builder.
type memberProvider interface {
	supports(t reflect.Type) bool
	members(t reflect.Type) ([]FieldInfo, error)
}

var memberProviders = []memberProvider{
	describerProvider{},
	taggedProvider{tags: []string{"db", "gorm"}, nameFromTag: columnTagName},
	taggedProvider{tags: []string{"json"}, nameFromTag: jsonTagName},
	structProvider{},
}

// Members returns the ordered generatable members of t, dispatching on which
// capability the type exposes. A pointer type is resolved to its element.
// Types not recognized by any provider yield an UnsupportedTypeError.
func Members(t reflect.Type) ([]FieldInfo, error) {
	if t == nil {
		return nil, &UnsupportedTypeError{Type: t}
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	for _, p := range memberProviders {
		if p.supports(t) {
			return p.members(t)
		}
	}
	return nil, &UnsupportedTypeError{Type: t}
}

// introspectable reports whether t has generatable members, i.e. whether it
// is a candidate for recursive instance generation.
func introspectable(t reflect.Type) bool {
	fields, err := Members(t)
	return err == nil && len(fields) > 0
}

// describerProvider handles types that implement FieldDescriber.
type describerProvider struct{}

func (describerProvider) supports(t reflect.Type) bool {
	return t.Implements(describerType) || reflect.PointerTo(t).Implements(describerType)
}

func (describerProvider) members(t reflect.Type) ([]FieldInfo, error) {
	d, ok := reflect.New(t).Interface().(FieldDescriber)
	if !ok {
		d = reflect.Zero(t).Interface().(FieldDescriber)
	}
	declared := d.FakeFields()
	fields := make([]FieldInfo, 0, len(declared))
	for _, f := range declared {
		if f.Index == nil {
			sf, ok := t.FieldByName(f.GoName)
			if !ok {
				return nil, fmt.Errorf("fabrica: described field %q not found on %s", f.GoName, t)
			}
			name := f.Name
			if name == "" {
				name = inflect.Underscore(f.GoName)
			}
			f = newFieldInfo(sf, name)
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// taggedProvider handles struct styles identified by the presence of a
// struct tag: ORM column tags (db, gorm) and JSON schema tags. A tag value
// of "-" excludes the field; a "validate" tag containing "required" marks a
// pointer field as non-optional.
type taggedProvider struct {
	tags        []string
	nameFromTag func(tag string) (name string, skip bool)
}

func (p taggedProvider) supports(t reflect.Type) bool {
	if t.Kind() != reflect.Struct {
		return false
	}
	for _, f := range reflect.VisibleFields(t) {
		if f.PkgPath != "" {
			continue
		}
		for _, tag := range p.tags {
			if _, ok := f.Tag.Lookup(tag); ok {
				return true
			}
		}
	}
	return false
}

func (p taggedProvider) members(t reflect.Type) ([]FieldInfo, error) {
	var fields []FieldInfo
	for _, f := range reflect.VisibleFields(t) {
		if f.PkgPath != "" || f.Anonymous {
			continue
		}
		name := ""
		skip := false
		for _, tag := range p.tags {
			v, ok := f.Tag.Lookup(tag)
			if !ok {
				continue
			}
			name, skip = p.nameFromTag(v)
			break
		}
		if skip {
			continue
		}
		if name == "" {
			name = inflect.Underscore(f.Name)
		}
		fi := newFieldInfo(f, name)
		if strings.Contains(f.Tag.Get("validate"), "required") {
			fi.Nillable = false
		}
		fields = append(fields, fi)
	}
	return fields, nil
}

// structProvider is the fallback for plain structs: every visible exported
// field is a member.
type structProvider struct{}

func (structProvider) supports(t reflect.Type) bool {
	return t.Kind() == reflect.Struct
}

func (structProvider) members(t reflect.Type) ([]FieldInfo, error) {
	var fields []FieldInfo
	for _, f := range reflect.VisibleFields(t) {
		if f.PkgPath != "" || f.Anonymous {
			continue
		}
		fields = append(fields, newFieldInfo(f, inflect.Underscore(f.Name)))
	}
	return fields, nil
}

// columnTagName extracts a column name from a db or gorm tag value.
func columnTagName(tag string) (string, bool) {
	if tag == "-" {
		return "", true
	}
	// gorm-style option lists: only a column: option names the field.
	if strings.ContainsAny(tag, ":;") {
		for _, part := range strings.Split(tag, ";") {
			part = strings.TrimSpace(part)
			if part == "-" {
				return "", true
			}
			if col, ok := strings.CutPrefix(part, "column:"); ok {
				return col, false
			}
		}
		return "", false
	}
	// db tags are plain names, possibly with options after a comma.
	name, _, _ := strings.Cut(tag, ",")
	return name, false
}

// jsonTagName extracts the member name from a json tag value.
func jsonTagName(tag string) (string, bool) {
	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return "", true
	}
	return name, false
}

func newFieldInfo(f reflect.StructField, name string) FieldInfo {
	t := f.Type
	nillable := false
	if t.Kind() == reflect.Pointer {
		nillable = true
		t = t.Elem()
	}
	fi := FieldInfo{
		GoName:   f.Name,
		Name:     name,
		Label:    labelFor(name),
		Index:    f.Index,
		Type:     t,
		Nillable: nillable,
	}
	if t.Kind() == reflect.Slice && t.Elem().Kind() != reflect.Uint8 {
		fi.IsSlice = true
		e := t.Elem()
		if e.Kind() == reflect.Pointer {
			e = e.Elem()
		}
		fi.Elem = e
	}
	return fi
}

func labelFor(name string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(name, "_", " "))
}

// readFieldByIndex reads a (possibly promoted) field without allocating.
// It reports false when a nil embedded pointer makes the field unreachable.
func readFieldByIndex(v reflect.Value, index []int) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 {
			if v.Kind() == reflect.Pointer {
				if v.IsNil() {
					return reflect.Value{}, false
				}
				v = v.Elem()
			}
		}
		v = v.Field(x)
	}
	return v, true
}

// fieldByIndex is like reflect.Value.FieldByIndex but allocates nil embedded
// pointers along the path so promoted fields are always addressable.
func fieldByIndex(v reflect.Value, index []int) reflect.Value {
	for i, x := range index {
		if i > 0 {
			if v.Kind() == reflect.Pointer {
				if v.IsNil() {
					v.Set(reflect.New(v.Type().Elem()))
				}
				v = v.Elem()
			}
		}
		v = v.Field(x)
	}
	return v
}
