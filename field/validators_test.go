package field_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"objmap/field"
)

func TestFuncValidator(t *testing.T) {
	onlyFoo := field.Func{
		Fn: func(f *field.Field, value any) bool {
			return value == "foo"
		},
		Message: "must be foo",
	}

	f := field.New("word")

	require.NoError(t, field.RunValidator(onlyFoo, f, "foo"))

	err := field.RunValidator(onlyFoo, f, "bar")
	var fi *field.FieldInvalid
	require.ErrorAs(t, err, &fi)
	assert.Equal(t, "must be foo", fi.Message)
	assert.Equal(t, "word", fi.Field)
}

func TestFuncValidatorGenericMessage(t *testing.T) {
	never := field.Func{
		Fn: func(f *field.Field, value any) bool { return false },
	}

	err := field.RunValidator(never, field.New("x"), 1)
	var fi *field.FieldInvalid
	require.ErrorAs(t, err, &fi)
	assert.Equal(t, "invalid value", fi.Message)
}

func TestTypedValidator(t *testing.T) {
	isString := field.Typed{Type: reflect.TypeOf("")}

	f := field.New("name")
	require.NoError(t, field.RunValidator(isString, f, "mike"))

	err := field.RunValidator(isString, f, 2)
	var fi *field.FieldInvalid
	require.ErrorAs(t, err, &fi)
	assert.Contains(t, fi.Message, "must be string")

	err = field.RunValidator(isString, f, nil)
	require.ErrorAs(t, err, &fi)
}

func TestValidatorsRunInPipeline(t *testing.T) {
	even := field.Func{
		Fn: func(f *field.Field, value any) bool {
			n, ok := value.(int)
			return ok && n%2 == 0
		},
		Message: "must be even",
	}

	f := field.NewInteger("count", field.Validate(even))

	output := map[string]any{}
	_, err := f.Marshal(&field.Context{
		Data:   map[string]any{"count": "4"},
		Output: output,
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"count": 4}, output)

	_, err = f.Marshal(&field.Context{
		Data:   map[string]any{"count": 3},
		Output: map[string]any{},
	})
	var fi *field.FieldInvalid
	require.ErrorAs(t, err, &fi)
	assert.Equal(t, "must be even", fi.Message)
}
