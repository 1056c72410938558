package fake

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// fakeEpoch anchors generated times. Seed s maps to epoch + s days + s
// seconds, so generated times are monotonic in the seed.
var fakeEpoch = time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC)

func init() {
	r := DefaultRegistry
	r.RegisterValueGenerator(int(0), func(s int64) any { return int(s) })
	r.RegisterValueGenerator(int8(0), func(s int64) any { return int8(s) })
	r.RegisterValueGenerator(int16(0), func(s int64) any { return int16(s) })
	r.RegisterValueGenerator(int32(0), func(s int64) any { return int32(s) })
	r.RegisterValueGenerator(int64(0), func(s int64) any { return s })
	r.RegisterValueGenerator(uint(0), func(s int64) any { return uint(s) })
	r.RegisterValueGenerator(uint8(0), func(s int64) any { return uint8(s) })
	r.RegisterValueGenerator(uint16(0), func(s int64) any { return uint16(s) })
	r.RegisterValueGenerator(uint32(0), func(s int64) any { return uint32(s) })
	r.RegisterValueGenerator(uint64(0), func(s int64) any { return uint64(s) })
	r.RegisterValueGenerator(float32(0), func(s int64) any { return float32(s) })
	r.RegisterValueGenerator(float64(0), func(s int64) any { return float64(s) })
	r.RegisterValueGenerator("", func(s int64) any { return fmt.Sprintf("%d-str", s) })
	r.RegisterValueGenerator(false, func(s int64) any { return s%2 == 0 })
	r.RegisterValueGenerator([]byte(nil), func(s int64) any { return []byte(fmt.Sprintf("%d-bytes", s)) })
	r.RegisterValueGenerator(time.Time{}, func(s int64) any {
		return fakeEpoch.AddDate(0, 0, int(s)).Add(time.Duration(s) * time.Second)
	})
	r.RegisterValueGenerator(time.Duration(0), func(s int64) any { return time.Duration(s) * time.Second })
	r.RegisterValueGenerator(decimal.Decimal{}, func(s int64) any { return decimal.NewFromInt(s) })
	r.RegisterValueGenerator(uuid.UUID{}, func(s int64) any { return uuidFromSeed(s) })
}

// uuidFromSeed packs the seed into the low bytes of a UUID and stamps the
// RFC 4122 version/variant bits. Distinct seeds yield distinct UUIDs.
func uuidFromSeed(s int64) uuid.UUID {
	var u uuid.UUID
	binary.BigEndian.PutUint64(u[8:], uint64(s))
	u[6] = (u[6] & 0x0f) | 0x40
	u[8] = (u[8] & 0x3f) | 0x80
	return u
}

// Enumerator is the enum convention recognized by the synthesizer: a named
// string type that can list its members.
//
//	type Status string
//
//	func (Status) Values() []string { return []string{"pending", "active"} }
//
// The member at seed modulo the member count is selected, so synthesis is
// total for any non-empty enumeration.
type Enumerator interface {
	Values() []string
}

var enumeratorType = reflect.TypeOf((*Enumerator)(nil)).Elem()

// enumValue synthesizes a member of a string-kind enumeration type.
func enumValue(t reflect.Type, seed int64) (any, bool) {
	if t.Kind() != reflect.String {
		return nil, false
	}
	var e Enumerator
	switch {
	case t.Implements(enumeratorType):
		e = reflect.Zero(t).Interface().(Enumerator)
	case reflect.PointerTo(t).Implements(enumeratorType):
		e = reflect.New(t).Interface().(Enumerator)
	default:
		return nil, false
	}
	values := e.Values()
	if len(values) == 0 {
		return nil, false
	}
	n := int64(len(values))
	v := values[int(((seed%n)+n)%n)]
	return reflect.ValueOf(v).Convert(t).Interface(), true
}

// basicTypes maps primitive kinds to the types their built-in generators are
// registered under, for synthesizing named types over primitive kinds.
var basicTypes = map[reflect.Kind]reflect.Type{
	reflect.Int:     reflect.TypeOf(int(0)),
	reflect.Int8:    reflect.TypeOf(int8(0)),
	reflect.Int16:   reflect.TypeOf(int16(0)),
	reflect.Int32:   reflect.TypeOf(int32(0)),
	reflect.Int64:   reflect.TypeOf(int64(0)),
	reflect.Uint:    reflect.TypeOf(uint(0)),
	reflect.Uint8:   reflect.TypeOf(uint8(0)),
	reflect.Uint16:  reflect.TypeOf(uint16(0)),
	reflect.Uint32:  reflect.TypeOf(uint32(0)),
	reflect.Uint64:  reflect.TypeOf(uint64(0)),
	reflect.Float32: reflect.TypeOf(float32(0)),
	reflect.Float64: reflect.TypeOf(float64(0)),
	reflect.String:  reflect.TypeOf(""),
	reflect.Bool:    reflect.TypeOf(false),
}

// Value synthesizes a deterministic value of type t from seed. Lookup order:
// exact or base registry entry, enumeration members, then the primitive
// generator for the type's underlying kind (so named types over primitives
// are synthesized and converted). Types that match none of these return a
// NotGeneratableError.
func (r *Registry) Value(t reflect.Type, seed int64) (any, error) {
	if g, ok := r.lookup(t); ok {
		return convertValue(g(seed), t)
	}
	if v, ok := enumValue(t, seed); ok {
		return v, nil
	}
	if bt, ok := basicTypes[t.Kind()]; ok && t != bt {
		if g, ok := r.lookup(bt); ok {
			return convertValue(g(seed), t)
		}
	}
	return nil, &NotGeneratableError{Type: t}
}

// Value synthesizes a value of type t from seed using the DefaultRegistry.
func Value(t reflect.Type, seed int64) (any, error) {
	return DefaultRegistry.Value(t, seed)
}

// generatable reports whether Value can synthesize t: a registry entry, an
// enumeration, or a named type over a primitive kind.
func (r *Registry) generatable(t reflect.Type) bool {
	if _, ok := r.lookup(t); ok {
		return true
	}
	if _, ok := enumValue(t, 0); ok {
		return true
	}
	if bt, ok := basicTypes[t.Kind()]; ok && t != bt {
		_, ok := r.lookup(bt)
		return ok
	}
	return false
}

// convertValue aligns a generator's result with the requested type, so a
// generator registered for a base or primitive type can serve named types.
func convertValue(v any, t reflect.Type) (any, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, &NotGeneratableError{Type: t}
	}
	if rv.Type() == t {
		return v, nil
	}
	if rv.Type().ConvertibleTo(t) {
		return rv.Convert(t).Interface(), nil
	}
	return v, nil
}
