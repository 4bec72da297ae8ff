package field

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// FieldInvalid is an expected validation failure: a missing required
// value, a value of the wrong type, a value out of bounds or outside the
// declared choices. The mapper layer collects these per field instead of
// aborting the whole pass.
type FieldInvalid struct {
	// Field is the mapped name of the field that rejected the value.
	Field string

	// Message is the human-readable description of the failure.
	Message string
}

func (e *FieldInvalid) Error() string {
	if e.Field == "" {
		return e.Message
	}

	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FieldError is a contract violation: the library was handed something
// it cannot work with, such as an output holder that supports neither
// mapping nor struct assignment. It signals misuse of the library rather
// than bad input data and is not meant to be collected per field.
type FieldError struct {
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

func invalidf(f *Field, format string, args ...any) error {
	return &FieldInvalid{Field: f.name, Message: fmt.Sprintf(format, args...)}
}

// unsupportedHolder builds a FieldError with a dump of the offending
// holder, since "%T said no" alone is rarely enough to find the misuse.
func unsupportedHolder(f *Field, holder any, cause error) error {
	return &FieldError{Message: fmt.Sprintf(
		"field %q: %v: %s", f.name, cause, strings.TrimSpace(spew.Sdump(holder)))}
}
