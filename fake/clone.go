package fake

import (
	"fmt"
	"reflect"

	"github.com/vmihailenco/msgpack/v5"
)

// Clone returns a shallow copy of src built from its generatable members:
// slice and pointer members of the copy reference the same backing data as
// src. Members named in ignore are left at their zero value. The result has
// the same pointer-ness as src.
func Clone(src any, ignore ...string) (any, error) {
	if src == nil {
		return nil, &UnsupportedTypeError{Type: nil}
	}
	t := reflect.TypeOf(src)
	sv := reflect.ValueOf(src)
	ptr := t.Kind() == reflect.Pointer
	if ptr {
		if sv.IsNil() {
			return nil, fmt.Errorf("fabrica: cannot clone nil %s", t)
		}
		t = t.Elem()
		sv = sv.Elem()
	}
	fields, err := Members(t)
	if err != nil {
		return nil, err
	}
	skip := make(map[string]bool, len(ignore))
	for _, name := range ignore {
		skip[name] = true
	}
	out := reflect.New(t)
	for _, f := range fields {
		if skip[f.Name] || skip[f.GoName] {
			continue
		}
		v, ok := readFieldByIndex(sv, f.Index)
		if !ok {
			continue
		}
		fieldByIndex(out.Elem(), f.Index).Set(v)
	}
	if ptr {
		return out.Interface(), nil
	}
	return out.Elem().Interface(), nil
}

// DeepClone copies src into dst (a pointer to the destination value) by a
// msgpack round-trip, so nested slices and pointers do not alias src. Only
// exported state survives the codec, which is all the generator produces.
func DeepClone(src, dst any) error {
	b, err := msgpack.Marshal(src)
	if err != nil {
		return fmt.Errorf("fabrica: deep clone encode: %w", err)
	}
	if err := msgpack.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("fabrica: deep clone decode: %w", err)
	}
	return nil
}
