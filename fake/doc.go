// Package fake provides deterministic, seed-derived fake instances of
// arbitrary struct types for use in tests.
//
// The central entry point is Instance, which builds a fully populated value
// of a target type from an integer seed:
//
//	type Site struct {
//	    ID       int64
//	    Name     string
//	    Nickname *string
//	}
//
//	site, err := fake.Instance[Site](fake.WithSeed(2))
//
// Every field receives a value derived from the seed, so repeated calls with
// the same seed produce value-equal instances and distinct seeds produce
// distinct field values. This makes fixtures reproducible without hand
// writing them.
//
// # Supported type styles
//
// Instance works on plain structs, structs with ORM column tags (db/gorm),
// structs with JSON schema tags, and types that describe their own fields by
// implementing FieldDescriber. Dispatch is by capability, so new styles can
// be added without touching the builder.
//
// # Optional fields and relationships
//
// Pointer-typed fields are treated as optional. They are populated by
// default and forced to nil with WithOptionalNil:
//
//	site, err := fake.Instance[Site](fake.WithOptionalNil())
//
// Fields holding another generatable struct, or a slice, are relationship
// fields. They are left unset unless WithRelationships is given. Recursion
// into relationships is bounded by WithMaxDepth; hitting the bound omits the
// field rather than failing, so self-referential types terminate.
//
// # Overrides
//
// Caller-supplied overrides always win and are used verbatim:
//
//	site, err := fake.Instance[Site](fake.WithOverride("name", "custom"))
//
// # Custom types
//
// The package keeps a process-wide registry mapping types to generator
// functions. Additional types are supported with RegisterValueGenerator and
// RegisterBaseType, and registry mutations can be scoped to a single test
// with ScopedRegistry.
package fake
