package fake

import (
	"fmt"
	"reflect"
	"sort"
)

const (
	// DefaultMaxDepth bounds relationship recursion unless WithMaxDepth is
	// given. Hitting the bound omits the field rather than failing, which
	// keeps generation total over cyclic type graphs.
	DefaultMaxDepth = 4

	// relationshipStride is added to the running seed after a relationship
	// member, whether or not it was populated. A large stride keeps the
	// seeds used inside a generated relationship from colliding with the
	// seeds of the remaining scalar members.
	relationshipStride = 1000
)

// Options carries the per-call generation parameters. Construct it through
// Option functions; the zero value is not a valid configuration.
type Options struct {
	seed          int64
	optionalNil   bool
	relationships bool
	maxDepth      int
	overrides     map[string]any
	registry      *Registry
}

// Option configures a single generation call.
type Option func(*Options)

// WithSeed sets the integer seed deterministically controlling every
// synthesized value. The default seed is 1.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.seed = seed }
}

// WithOptionalNil forces every optional (pointer-declared) field to nil
// regardless of seed.
func WithOptionalNil() Option {
	return func(o *Options) { o.optionalNil = true }
}

// WithRelationships enables recursive generation of relationship members:
// fields holding another generatable struct or a slice. Without it such
// fields are left unset.
func WithRelationships() Option {
	return func(o *Options) { o.relationships = true }
}

// WithMaxDepth sets the relationship recursion bound. Fields beyond the
// bound are omitted, never an error.
func WithMaxDepth(depth int) Option {
	return func(o *Options) { o.maxDepth = depth }
}

// WithOverride supplies an exact value for the named field, bypassing
// synthesis. The name may be either the storage-style member name or the Go
// field name. The value is used verbatim with no coercion beyond boxing a
// value into a pointer field; a value that cannot be assigned to the field
// at all fails the generation call.
func WithOverride(name string, value any) Option {
	return func(o *Options) {
		if o.overrides == nil {
			o.overrides = make(map[string]any)
		}
		o.overrides[name] = value
	}
}

// WithOverrides supplies several overrides at once.
func WithOverrides(values map[string]any) Option {
	return func(o *Options) {
		if o.overrides == nil {
			o.overrides = make(map[string]any, len(values))
		}
		for k, v := range values {
			o.overrides[k] = v
		}
	}
}

// WithRegistry uses a registry other than the DefaultRegistry for this call.
func WithRegistry(r *Registry) Option {
	return func(o *Options) { o.registry = r }
}

func buildOptions(opts []Option) *Options {
	o := &Options{seed: 1, maxDepth: DefaultMaxDepth, registry: DefaultRegistry}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Instance builds a fully populated instance of T from the seed. Repeated
// calls with identical options produce value-equal instances; distinct seeds
// produce distinct values for every scalar member.
func Instance[T any](opts ...Option) (T, error) {
	var zero T
	v, err := NewInstance(reflect.TypeOf((*T)(nil)).Elem(), opts...)
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

// MustInstance is like Instance but panics on error. Intended for fixture
// setup where a generation failure should abort immediately.
func MustInstance[T any](opts ...Option) T {
	v, err := Instance[T](opts...)
	if err != nil {
		panic(err)
	}
	return v
}

// NewInstance is the reflect-level form of Instance. When t is a pointer
// type the pointed-to struct is generated and a pointer returned.
func NewInstance(t reflect.Type, opts ...Option) (any, error) {
	if t == nil {
		return nil, &UnsupportedTypeError{Type: t}
	}
	o := buildOptions(opts)
	ptr := t.Kind() == reflect.Pointer
	if ptr {
		t = t.Elem()
	}
	v, err := build(t, o, o.seed, 0)
	if err != nil {
		return nil, err
	}
	if ptr {
		p := reflect.New(t)
		p.Elem().Set(v)
		return p.Interface(), nil
	}
	return v.Interface(), nil
}

// build assembles one instance of struct type t. Each member consumes seeds
// from a running counter so two members of the same type receive distinct
// values; depth counts relationship levels from the root instance.
func build(t reflect.Type, o *Options, seed int64, depth int) (reflect.Value, error) {
	fields, err := Members(t)
	if err != nil {
		return reflect.Value{}, err
	}
	inst := reflect.New(t).Elem()
	var used map[string]bool
	if depth == 0 && len(o.overrides) > 0 {
		used = make(map[string]bool, len(o.overrides))
	}

	for _, f := range fields {
		target := fieldByIndex(inst, f.Index)

		// Overrides win over everything and apply to the root instance only.
		if depth == 0 {
			if v, name, ok := overrideFor(o, f); ok {
				if err := setVerbatim(target, v); err != nil {
					return reflect.Value{}, fmt.Errorf("fabrica: override %q for %s: %w", name, t, err)
				}
				used[name] = true
				continue
			}
		}

		switch {
		case !f.IsSlice && o.registry.generatable(f.Type):
			// Scalar member. The seed advances even when the value is
			// suppressed so id/name stay stable across flag combinations.
			if !(f.Nillable && o.optionalNil) {
				v, err := o.registry.Value(f.Type, seed)
				if err != nil {
					return reflect.Value{}, &NotGeneratableError{Type: f.Type, Field: f.GoName}
				}
				setScalar(target, v)
			}
			seed++

		case f.IsSlice || introspectable(f.Type):
			// Relationship member: opt-in, suppressed with optionals, and
			// omitted past the depth bound.
			populate := o.relationships && depth < o.maxDepth && !(f.Nillable && o.optionalNil)
			if populate {
				if err := buildRelationship(target, f, o, seed, depth); err != nil {
					return reflect.Value{}, err
				}
			}
			seed += relationshipStride

		case f.Nillable:
			// Optional member of an unknown type: leave absent.

		default:
			return reflect.Value{}, &NotGeneratableError{Type: f.Type, Field: f.GoName}
		}
	}

	if depth == 0 {
		if err := checkUnusedOverrides(t, o, used); err != nil {
			return reflect.Value{}, err
		}
	}
	return inst, nil
}

// buildRelationship populates a slice or nested-struct member. Slice lengths
// are deterministic (1 + seed mod 3, at least one element) and each element
// uses a seed derived from the base seed and its index.
func buildRelationship(target reflect.Value, f FieldInfo, o *Options, seed int64, depth int) error {
	if !f.IsSlice {
		v, err := build(f.Type, o, seed, depth+1)
		if err != nil {
			return err
		}
		setScalar(target, v.Interface())
		return nil
	}

	n := 1 + int(((seed%3)+3)%3)
	sliceType := f.Type
	elemPtr := sliceType.Elem().Kind() == reflect.Pointer
	out := reflect.MakeSlice(sliceType, 0, n)

	// Base-type registrations carry their own list strategy.
	if list, ok := o.registry.listFor(f.Elem); ok {
		for _, item := range list(n, seed) {
			ev := reflect.ValueOf(item)
			if elemPtr && ev.Kind() != reflect.Pointer {
				p := reflect.New(f.Elem)
				p.Elem().Set(ev)
				ev = p
			}
			out = reflect.Append(out, ev)
		}
		target.Set(out)
		return nil
	}

	for i := 0; i < n; i++ {
		elemSeed := seed*relationshipStride + int64(i)
		var item any
		switch {
		case o.registry.generatable(f.Elem):
			v, err := o.registry.Value(f.Elem, elemSeed)
			if err != nil {
				return &NotGeneratableError{Type: f.Elem, Field: f.GoName}
			}
			item = v
		case introspectable(f.Elem):
			v, err := build(f.Elem, o, elemSeed, depth+1)
			if err != nil {
				return err
			}
			item = v.Interface()
		default:
			return &NotGeneratableError{Type: f.Elem, Field: f.GoName}
		}
		ev := reflect.ValueOf(item)
		if elemPtr {
			p := reflect.New(f.Elem)
			p.Elem().Set(ev)
			ev = p
		}
		out = reflect.Append(out, ev)
	}
	target.Set(out)
	return nil
}

// overrideFor matches an override by member name or Go field name.
func overrideFor(o *Options, f FieldInfo) (any, string, bool) {
	if v, ok := o.overrides[f.Name]; ok {
		return v, f.Name, true
	}
	if v, ok := o.overrides[f.GoName]; ok {
		return v, f.GoName, true
	}
	return nil, "", false
}

// setVerbatim assigns an override value. A nil override clears the field;
// a value override for a pointer field is boxed. No other coercion is done.
func setVerbatim(target reflect.Value, v any) error {
	if v == nil {
		target.Set(reflect.Zero(target.Type()))
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(target.Type()) {
		target.Set(rv)
		return nil
	}
	if target.Kind() == reflect.Pointer && rv.Type().AssignableTo(target.Type().Elem()) {
		p := reflect.New(target.Type().Elem())
		p.Elem().Set(rv)
		target.Set(p)
		return nil
	}
	return fmt.Errorf("value of type %s is not assignable to %s", rv.Type(), target.Type())
}

// setScalar assigns a synthesized value, boxing it when the field was
// declared as a pointer.
func setScalar(target reflect.Value, v any) {
	rv := reflect.ValueOf(v)
	if target.Kind() == reflect.Pointer {
		p := reflect.New(target.Type().Elem())
		p.Elem().Set(rv)
		target.Set(p)
		return
	}
	target.Set(rv)
}

func checkUnusedOverrides(t reflect.Type, o *Options, used map[string]bool) error {
	if len(o.overrides) == len(used) {
		return nil
	}
	var unknown []string
	for name := range o.overrides {
		if !used[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	return &UnknownOverrideError{Type: t, Names: unknown}
}
