package fake

import (
	"reflect"
	"sync"
	"testing"
)

// ValueGenerator produces a deterministic value from a seed. Generators
// registered for a type are expected to return values assignable (or
// convertible) to that type.
type ValueGenerator func(seed int64) any

// ListGenerator produces an ordered, homogeneous sequence of count values
// derived from seed. It accompanies base-type registrations, where a single
// generator serves an open set of subtypes.
type ListGenerator func(count int, seed int64) []any

type baseEntry struct {
	typ  reflect.Type
	gen  ValueGenerator
	list ListGenerator
}

// Registry maps types to generator functions. The zero value is not usable;
// use NewRegistry. Most callers use the process-wide DefaultRegistry through
// the package-level functions.
//
// Registrations are expected at init time or inside a Scoped snapshot.
// Concurrent registration from parallel tests is guarded by a mutex, but
// isolation between tests is the caller's job (see Scoped).
type Registry struct {
	mu     sync.RWMutex
	values map[reflect.Type]ValueGenerator
	bases  []baseEntry
}

// NewRegistry returns an empty registry with no built-in entries.
func NewRegistry() *Registry {
	return &Registry{values: make(map[reflect.Type]ValueGenerator)}
}

// DefaultRegistry is the process-wide registry consulted by Instance and the
// package-level registration functions. It is pre-populated with generators
// for the common primitive types at init.
var DefaultRegistry = NewRegistry()

// prototypeType resolves the reflect.Type of a registration prototype.
// Interface base types are registered by passing a nil pointer to the
// interface, e.g. (*MyInterface)(nil).
func prototypeType(prototype any) reflect.Type {
	t := reflect.TypeOf(prototype)
	if t != nil && t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Interface {
		t = t.Elem()
	}
	return t
}

// RegisterValueGenerator associates the exact type of prototype with gen.
// A later registration for the same type overwrites the earlier one.
func (r *Registry) RegisterValueGenerator(prototype any, gen ValueGenerator) {
	t := prototypeType(prototype)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[t] = gen
}

// RegisterBaseType associates a base type with a generator usable for any
// type descending from it, plus a list strategy for collection fields of
// such types. In Go terms a type descends from a struct base by embedding it
// (directly or transitively) and from an interface base by implementing it.
//
// Base entries are matched after exact entries, in registration order.
func (r *Registry) RegisterBaseType(prototype any, gen ValueGenerator, list ListGenerator) {
	t := prototypeType(prototype)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bases = append(r.bases, baseEntry{typ: t, gen: gen, list: list})
}

// lookup resolves a generator for t: exact match first, then the nearest
// registered base by walking embedded types breadth-first, then registered
// interfaces in registration order.
func (r *Registry) lookup(t reflect.Type) (ValueGenerator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if g, ok := r.values[t]; ok {
		return g, true
	}
	if e, ok := r.baseFor(t); ok {
		return e.gen, true
	}
	return nil, false
}

// listFor resolves the list strategy for element type t from base entries.
func (r *Registry) listFor(t reflect.Type) (ListGenerator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.baseFor(t)
	if !ok || e.list == nil {
		return nil, false
	}
	return e.list, true
}

// baseFor assumes r.mu is held for reading.
func (r *Registry) baseFor(t reflect.Type) (baseEntry, bool) {
	if len(r.bases) == 0 {
		return baseEntry{}, false
	}
	// Embedded-type ancestry, nearest first.
	queue := []reflect.Type{t}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range r.bases {
			if e.typ == cur {
				return e, true
			}
		}
		if cur.Kind() != reflect.Struct {
			continue
		}
		for i := 0; i < cur.NumField(); i++ {
			f := cur.Field(i)
			if !f.Anonymous {
				continue
			}
			ft := f.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			queue = append(queue, ft)
		}
	}
	for _, e := range r.bases {
		if e.typ.Kind() != reflect.Interface {
			continue
		}
		if t.Implements(e.typ) || reflect.PointerTo(t).Implements(e.typ) {
			return e, true
		}
	}
	return baseEntry{}, false
}

// RegistrySnapshot is a captured copy of a registry's full state.
type RegistrySnapshot struct {
	values map[reflect.Type]ValueGenerator
	bases  []baseEntry
}

// Snapshot captures the current state of the registry. The returned snapshot
// does not alias the live maps, so later registrations leave it untouched.
func (r *Registry) Snapshot() *RegistrySnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s := &RegistrySnapshot{
		values: make(map[reflect.Type]ValueGenerator, len(r.values)),
		bases:  make([]baseEntry, len(r.bases)),
	}
	for t, g := range r.values {
		s.values[t] = g
	}
	copy(s.bases, r.bases)
	return s
}

// Restore replaces the live registry state with the snapshot.
func (r *Registry) Restore(s *RegistrySnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = make(map[reflect.Type]ValueGenerator, len(s.values))
	for t, g := range s.values {
		r.values[t] = g
	}
	r.bases = make([]baseEntry, len(s.bases))
	copy(r.bases, s.bases)
}

// Scoped snapshots the registry and restores it when the test finishes.
// Cleanup runs on every exit path, including FailNow and panics recovered by
// the testing package, so registrations inside the test cannot leak into
// other tests.
func (r *Registry) Scoped(tb testing.TB) {
	tb.Helper()
	snap := r.Snapshot()
	tb.Cleanup(func() { r.Restore(snap) })
}

// RegisterValueGenerator registers gen for the exact type of prototype on
// the DefaultRegistry.
func RegisterValueGenerator(prototype any, gen ValueGenerator) {
	DefaultRegistry.RegisterValueGenerator(prototype, gen)
}

// RegisterBaseType registers a base-type generator and list strategy on the
// DefaultRegistry.
func RegisterBaseType(prototype any, gen ValueGenerator, list ListGenerator) {
	DefaultRegistry.RegisterBaseType(prototype, gen, list)
}

// ScopedRegistry scopes mutations of the DefaultRegistry to the given test:
//
//	func TestSomething(t *testing.T) {
//	    fake.ScopedRegistry(t)
//	    fake.RegisterValueGenerator(MyType{}, func(seed int64) any { ... })
//	    // test body
//	}
//
// The registrations are reverted when the test (and its subtests) complete.
func ScopedRegistry(tb testing.TB) {
	tb.Helper()
	DefaultRegistry.Scoped(tb)
}
