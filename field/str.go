package field

// String is a field requiring native string values.
type String struct {
	*Field
}

// NewString builds a string field. No coercion is applied: anything
// that is not already a string fails with FieldInvalid.
func NewString(name string, opts ...Option) *String {
	f := newBase(name, opts...)
	f.assemble(
		[]Pipe{IsValidString},
		[]Pipe{IsValidString},
	)

	return &String{Field: f}
}

// IsValidString requires the session's working value to be a string.
func IsValidString(s *Session) error {
	if _, ok := s.Data.(string); !ok {
		return invalidf(s.Field, "%v is not a valid string", s.Data)
	}

	return nil
}
