package fake

import (
	"fmt"
	"reflect"
)

// CheckInstanceEquality compares the generatable scalar members of two
// instances of the same type and returns one message per mismatch. An empty
// result means the instances are equal. Relationship members and members
// named in ignore are not compared.
//
// Both arguments may be pointers; two nils compare equal and a single nil is
// reported as a mismatch.
func CheckInstanceEquality(expected, actual any, ignore ...string) []string {
	if expected == nil && actual == nil {
		return nil
	}
	if expected == nil {
		return []string{fmt.Sprintf("expected is nil but actual is %v", actual)}
	}
	if actual == nil {
		return []string{fmt.Sprintf("actual is nil but expected is %v", expected)}
	}

	ev := reflect.ValueOf(expected)
	av := reflect.ValueOf(actual)
	if ev.Kind() == reflect.Pointer {
		if ev.IsNil() && av.Kind() == reflect.Pointer && av.IsNil() {
			return nil
		}
		if ev.IsNil() {
			return []string{fmt.Sprintf("expected is nil but actual is %v", actual)}
		}
		ev = ev.Elem()
	}
	if av.Kind() == reflect.Pointer {
		if av.IsNil() {
			return []string{fmt.Sprintf("actual is nil but expected is %v", expected)}
		}
		av = av.Elem()
	}
	if ev.Type() != av.Type() {
		return []string{fmt.Sprintf("type mismatch: expected %s but actual is %s", ev.Type(), av.Type())}
	}

	fields, err := Members(ev.Type())
	if err != nil {
		return []string{err.Error()}
	}
	skip := make(map[string]bool, len(ignore))
	for _, name := range ignore {
		skip[name] = true
	}

	var messages []string
	for _, f := range fields {
		if skip[f.Name] || skip[f.GoName] {
			continue
		}
		if f.IsSlice || !DefaultRegistry.generatable(f.Type) {
			continue
		}
		e, eok := readFieldByIndex(ev, f.Index)
		a, aok := readFieldByIndex(av, f.Index)
		if !eok || !aok {
			if eok != aok {
				messages = append(messages, fmt.Sprintf("%s: reachable on one instance only", f.Name))
			}
			continue
		}
		if f.Nillable {
			if e.IsNil() && a.IsNil() {
				continue
			}
			if e.IsNil() || a.IsNil() {
				messages = append(messages, fmt.Sprintf("%s: expected %s but got %s",
					f.Name, describePtr(e), describePtr(a)))
				continue
			}
			e = e.Elem()
			a = a.Elem()
		}
		if !reflect.DeepEqual(e.Interface(), a.Interface()) {
			messages = append(messages, fmt.Sprintf("%s: expected %v but got %v",
				f.Name, e.Interface(), a.Interface()))
		}
	}
	return messages
}

func describePtr(v reflect.Value) string {
	if v.IsNil() {
		return "<nil>"
	}
	return fmt.Sprintf("%v", v.Elem().Interface())
}
