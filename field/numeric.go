package field

import (
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"objmap/utils"
)

// defaultPrecision is the number of fractional digits a Decimal field
// keeps when none is configured.
const defaultPrecision = 5

// Integer is a field coercing mapped values to a native int.
type Integer struct {
	*Field
}

// NewInteger builds an integer field. Accepted marshal inputs are
// integers of any width, floats (truncated toward zero) and strings
// holding a base-10 integer.
func NewInteger(name string, opts ...Option) *Integer {
	f := newBase(name, opts...)
	f.assemble(
		[]Pipe{IsValidInteger, checkBounds},
		[]Pipe{IsValidInteger},
	)

	return &Integer{Field: f}
}

// Decimal is a field coercing mapped values to an arbitrary-precision
// decimal, quantized to the field's precision. Serialization renders a
// fixed-point string padded to that precision.
type Decimal struct {
	*Field
}

// NewDecimal builds a decimal field with the given options; precision
// defaults to 5 fractional digits.
func NewDecimal(name string, opts ...Option) *Decimal {
	f := newBase(name, opts...)
	if !f.hasPrecision {
		f.precision = defaultPrecision
		f.hasPrecision = true
	}

	f.assemble(
		[]Pipe{IsValidDecimal, checkBounds},
		[]Pipe{IsValidDecimal, formatDecimal},
	)

	return &Decimal{Field: f}
}

// IsValidInteger coerces the session's working value to a native int,
// failing with FieldInvalid for anything that is not an integer, a
// float or an integer string.
func IsValidInteger(s *Session) error {
	n, err := coerceInt(s.Field, s.Data)
	if err != nil {
		return err
	}

	s.Data = n

	return nil
}

func coerceInt(f *Field, v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int8:
		return int(n), nil
	case int16:
		return int(n), nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case uint:
		return int(n), nil
	case uint8:
		return int(n), nil
	case uint16:
		return int(n), nil
	case uint32:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float32:
		return int(n), nil
	case float64:
		return int(n), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, invalidf(f, "%q is not a valid integer", n)
		}

		return i, nil
	}

	return 0, invalidf(f, "%v is not a valid integer", v)
}

// IsValidDecimal coerces the session's working value to a decimal,
// quantized to the field's precision when one is set.
func IsValidDecimal(s *Session) error {
	d, err := coerceDecimal(s.Field, s.Data)
	if err != nil {
		return err
	}

	if s.Field.hasPrecision {
		d = d.Round(s.Field.precision)
	}

	s.Data = d

	return nil
}

func coerceDecimal(f *Field, v any) (decimal.Decimal, error) {
	d, ok := toDecimal(v)
	if !ok {
		return decimal.Decimal{}, invalidf(f, "%v is not a valid decimal", v)
	}

	return d, nil
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int32:
		return decimal.NewFromInt32(n), true
	case int64:
		return decimal.NewFromInt(n), true
	case float32:
		return decimal.NewFromFloat32(n), true
	case float64:
		return decimal.NewFromFloat(n), true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return decimal.Decimal{}, false
		}

		return d, true
	}

	return decimal.Decimal{}, false
}

// formatDecimal renders the coerced decimal as a fixed-point string
// padded to the field's precision, e.g. 2.52 at precision 5 becomes
// "2.52000".
func formatDecimal(s *Session) error {
	d, ok := s.Data.(decimal.Decimal)
	if !ok {
		return invalidf(s.Field, "%v is not a valid decimal", s.Data)
	}

	s.Data = d.StringFixed(s.Field.precision)

	return nil
}

// checkBounds validates a coerced numeric value against the field's
// min/max, both inclusive and each optional. Runs after coercion so
// string inputs are bounded by their numeric value.
func checkBounds(s *Session) error {
	f := s.Field
	if f.min == nil && f.max == nil {
		return nil
	}

	lo, hi := math.MinInt, math.MaxInt
	if f.min != nil {
		lo = *f.min
	}

	if f.max != nil {
		hi = *f.max
	}

	switch n := s.Data.(type) {
	case int:
		if !utils.IsInRange(lo, n, hi) {
			return invalidf(f, "%d is out of range", n)
		}
	case decimal.Decimal:
		if n.LessThan(decimal.NewFromInt(int64(lo))) || n.GreaterThan(decimal.NewFromInt(int64(hi))) {
			return invalidf(f, "%s is out of range", n)
		}
	}

	return nil
}

// choiceEqual compares a coerced value with a declared choice, letting
// decimals match plain numeric choices.
func choiceEqual(v, choice any) bool {
	if d, ok := v.(decimal.Decimal); ok {
		c, ok := toDecimal(choice)

		return ok && d.Equal(c)
	}

	return reflect.DeepEqual(v, choice)
}
