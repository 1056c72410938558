package asserts

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

// SliceOf asserts that obj is a non-nil slice or array whose every element
// is of the prototype's type. An optional count asserts the element count.
func SliceOf(tb testing.TB, elemPrototype any, obj any, count ...int) bool {
	tb.Helper()
	if !assert.NotNil(tb, obj) {
		return false
	}
	v := reflect.ValueOf(obj)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return assert.Fail(tb, "not a slice", "expected a slice but got %T", obj)
	}
	want := reflect.TypeOf(elemPrototype)
	ok := true
	for i := 0; i < v.Len(); i++ {
		got := v.Index(i)
		if got.Kind() == reflect.Interface {
			got = got.Elem()
		}
		if !got.IsValid() || got.Type() != want {
			ok = assert.Fail(tb, "element type mismatch",
				"obj[%d] has type %v instead of %v", i, elemType(got), want) && ok
		}
	}
	if len(count) > 0 {
		ok = assert.Len(tb, obj, count[0]) && ok
	}
	return ok
}

// MapOf asserts that obj is a non-nil map whose keys and values are of the
// prototypes' types. An optional count asserts the entry count.
func MapOf(tb testing.TB, keyPrototype, valuePrototype any, obj any, count ...int) bool {
	tb.Helper()
	if !assert.NotNil(tb, obj) {
		return false
	}
	v := reflect.ValueOf(obj)
	if v.Kind() != reflect.Map {
		return assert.Fail(tb, "not a map", "expected a map but got %T", obj)
	}
	wantKey := reflect.TypeOf(keyPrototype)
	wantValue := reflect.TypeOf(valuePrototype)
	ok := true
	iter := v.MapRange()
	for iter.Next() {
		if iter.Key().Type() != wantKey {
			ok = assert.Fail(tb, "key type mismatch",
				"key %v has type %v instead of %v", iter.Key(), iter.Key().Type(), wantKey) && ok
		}
		val := iter.Value()
		if val.Kind() == reflect.Interface {
			val = val.Elem()
		}
		if !val.IsValid() || val.Type() != wantValue {
			ok = assert.Fail(tb, "value type mismatch",
				"value for key %v has type %v instead of %v", iter.Key(), elemType(val), wantValue) && ok
		}
	}
	if len(count) > 0 {
		ok = assert.Len(tb, obj, count[0]) && ok
	}
	return ok
}

func elemType(v reflect.Value) any {
	if !v.IsValid() {
		return "<nil>"
	}
	return v.Type()
}
