package field

import (
	"reflect"

	"objmap/internal/container"
)

// GetDataFromName looks up f's mapped name in data, applying the
// field's policy when the key is absent: the default wins if one is
// set, a required field fails, a field that disallows nil fails, and
// anything else yields nil.
func GetDataFromName(f *Field, data any) (any, error) {
	c, err := container.Adapt(data)
	if err != nil {
		return nil, unsupportedHolder(f, data, err)
	}

	v, ok := c.Get(f.name)
	if !ok {
		switch {
		case f.hasDefault:
			return f.def, nil
		case f.required:
			return nil, invalidf(f, "field required")
		case !f.allowNil:
			return nil, invalidf(f, "field must not be null")
		}

		return nil, nil
	}

	return v, nil
}

// GetDataFromSource looks up f's source key in data, the native
// representation of an object. Absent keys yield nil; the marshal
// direction alone carries required/default policy.
func GetDataFromSource(f *Field, data any) (any, error) {
	c, err := container.Adapt(data)
	if err != nil {
		return nil, unsupportedHolder(f, data, err)
	}

	v, _ := c.Get(f.source)

	return v, nil
}

// UpdateOutputToName writes value at f's mapped name on output. The
// holder must support mapping or struct assignment; anything else is a
// FieldError.
func UpdateOutputToName(f *Field, value, output any) error {
	return updateOutput(f, f.name, value, output)
}

// UpdateOutputToSource writes value at f's source key on output, with
// the same holder contract as UpdateOutputToName.
func UpdateOutputToSource(f *Field, value, output any) error {
	return updateOutput(f, f.source, value, output)
}

func updateOutput(f *Field, key string, value, output any) error {
	c, err := container.Adapt(output)
	if err != nil {
		return unsupportedHolder(f, output, err)
	}

	if err := c.Set(key, value); err != nil {
		return unsupportedHolder(f, output, err)
	}

	return nil
}

// extractByName feeds the marshal pipeline from the mapped input.
func extractByName(s *Session) error {
	v, err := GetDataFromName(s.Field, s.Ctx.Data)
	if err != nil {
		return err
	}

	s.Data = v

	return nil
}

// extractBySource feeds the serialize pipeline from the native object.
func extractBySource(s *Session) error {
	v, err := GetDataFromSource(s.Field, s.Ctx.Obj)
	if err != nil {
		return err
	}

	s.Data = v

	return nil
}

func writeToName(s *Session) error {
	return UpdateOutputToName(s.Field, s.Data, s.Ctx.Output)
}

func writeToSource(s *Session) error {
	return UpdateOutputToSource(s.Field, s.Data, s.Ctx.Output)
}

// readOnlyGuard stops the marshal pipeline before a read-only field
// touches its input or its output slot.
func readOnlyGuard(s *Session) error {
	if s.Field.readOnly {
		return errStop
	}

	return nil
}

// memoizeChange records the destination slot's old/new pair just before
// the write. No prior value: only New is set. Prior value equal to the
// incoming one: both stay unset, the no-op signal. Otherwise both are
// set.
func memoizeChange(s *Session) error {
	c, err := container.Adapt(s.Ctx.Output)
	if err != nil {
		return unsupportedHolder(s.Field, s.Ctx.Output, err)
	}

	prev, ok := c.Get(s.Field.source)
	switch {
	case !ok:
		s.change = Change{New: s.Data}
	case reflect.DeepEqual(prev, s.Data):
		s.change = Change{}
	default:
		s.change = Change{Old: prev, New: s.Data}
	}

	return nil
}

// checkChoices validates the working value against the declared choices
// set, after coercion. Fields without choices pass.
func checkChoices(s *Session) error {
	f := s.Field
	if len(f.choices) == 0 {
		return nil
	}

	for _, choice := range f.choices {
		if choiceEqual(s.Data, choice) {
			return nil
		}
	}

	return invalidf(f, "%v is not a valid choice", s.Data)
}

// checkValidators runs the field's attached validators in order.
func checkValidators(s *Session) error {
	for _, v := range s.Field.validators {
		if err := RunValidator(v, s.Field, s.Data); err != nil {
			return err
		}
	}

	return nil
}
