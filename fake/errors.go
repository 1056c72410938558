package fake

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Standard sentinel errors for generation failures.
var (
	// ErrUnsupportedType is returned when a type is not recognized as any
	// supported struct style.
	ErrUnsupportedType = errors.New("fabrica: unsupported type")

	// ErrNotGeneratable is returned when no value can be synthesized for a
	// required field's type.
	ErrNotGeneratable = errors.New("fabrica: type not generatable")
)

// UnsupportedTypeError is returned when a type cannot be introspected by any
// registered member provider (for example, a non-struct type with no
// FieldDescriber implementation).
type UnsupportedTypeError struct {
	Type reflect.Type
}

// Error returns the error string.
func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("fabrica: type %s is not a supported struct style", typeName(e.Type))
}

// Is reports whether the target error matches UnsupportedTypeError.
// This allows errors.Is(err, ErrUnsupportedType) to return true.
func (e *UnsupportedTypeError) Is(err error) bool {
	return err == ErrUnsupportedType
}

// IsUnsupportedType returns true if the error is an UnsupportedTypeError.
func IsUnsupportedType(err error) bool {
	if err == nil {
		return false
	}
	var e *UnsupportedTypeError
	return errors.As(err, &e) || errors.Is(err, ErrUnsupportedType)
}

// NotGeneratableError is returned when a required field's type has no
// registry entry, no base-type match, and is not itself introspectable.
// Field is empty when the type was requested directly rather than through
// a struct member.
type NotGeneratableError struct {
	Type  reflect.Type
	Field string
}

// Error returns the error string.
func (e *NotGeneratableError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("fabrica: field %q of type %s cannot be generated", e.Field, typeName(e.Type))
	}
	return fmt.Sprintf("fabrica: type %s cannot be generated", typeName(e.Type))
}

// Is reports whether the target error matches NotGeneratableError.
// This allows errors.Is(err, ErrNotGeneratable) to return true.
func (e *NotGeneratableError) Is(err error) bool {
	return err == ErrNotGeneratable
}

// IsNotGeneratable returns true if the error is a NotGeneratableError.
func IsNotGeneratable(err error) bool {
	if err == nil {
		return false
	}
	var e *NotGeneratableError
	return errors.As(err, &e) || errors.Is(err, ErrNotGeneratable)
}

// UnknownOverrideError is returned when WithOverride names a field that does
// not exist on the target type. Catching typos here keeps a misspelled
// override from silently generating a default value instead.
type UnknownOverrideError struct {
	Type  reflect.Type
	Names []string
}

// Error returns the error string.
func (e *UnknownOverrideError) Error() string {
	return fmt.Sprintf("fabrica: unknown override fields %s for type %s",
		strings.Join(e.Names, ", "), typeName(e.Type))
}

// IsUnknownOverride returns true if the error is an UnknownOverrideError.
func IsUnknownOverride(err error) bool {
	if err == nil {
		return false
	}
	var e *UnknownOverrideError
	return errors.As(err, &e)
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
