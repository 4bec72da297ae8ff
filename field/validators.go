package field

import (
	"fmt"
	"reflect"
)

// Validator checks one marshalled value for one field. Validate reports
// success; ErrorMessage renders the failure shown to callers.
type Validator interface {
	Validate(f *Field, value any) bool
	ErrorMessage(f *Field, value any) string
}

// RunValidator applies v during marshalling, converting a false result
// into a FieldInvalid carrying the validator's message.
func RunValidator(v Validator, f *Field, value any) error {
	if !v.Validate(f, value) {
		return &FieldInvalid{Field: f.name, Message: v.ErrorMessage(f, value)}
	}

	return nil
}

// Func adapts a plain predicate into a Validator. Any function matching
// the (field, value) signature can participate in a field's pipeline
// without defining a new type.
type Func struct {
	// Fn is the predicate; a false result fails validation.
	Fn func(f *Field, value any) bool

	// Message overrides the generic failure message when set.
	Message string
}

func (v Func) Validate(f *Field, value any) bool {
	return v.Fn(f, value)
}

func (v Func) ErrorMessage(f *Field, value any) string {
	if v.Message != "" {
		return v.Message
	}

	return "invalid value"
}

// Typed validates that a value has a specific dynamic type.
type Typed struct {
	Type reflect.Type
}

func (v Typed) Validate(f *Field, value any) bool {
	return value != nil && reflect.TypeOf(value) == v.Type
}

func (v Typed) ErrorMessage(f *Field, value any) string {
	return fmt.Sprintf("%v is not valid, must be %s", value, v.Type)
}
