// Package container abstracts the data holders a field pipeline reads
// from and writes into. A holder is either mapping-backed (string-keyed
// map) or attribute-backed (struct, addressed by `map` tag or field
// name); everything else is rejected with ErrUnsupported so callers can
// surface a contract error.
package container

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ErrUnsupported is returned by Adapt for holders that support neither
// mapping assignment nor struct field assignment.
var ErrUnsupported = errors.New("unsupported holder type")

// Container is the capability set a pipeline stage needs from a holder:
// read a value at a key, write a value at a key.
type Container interface {
	// Get returns the value stored at key and whether the key exists.
	Get(key string) (any, bool)

	// Set stores value at key. It fails when the holder is not writable
	// or the value cannot be assigned to the addressed slot.
	Set(key string, value any) error
}

// Adapt wraps a holder in a Container. Supported holders are
// map[string]any (or any other string-keyed map) and structs, passed by
// value for reads or by pointer for writes.
func Adapt(holder any) (Container, error) {
	if m, ok := holder.(map[string]any); ok {
		return mapContainer{m: m}, nil
	}

	v := reflect.ValueOf(holder)
	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() == reflect.String {
			return reflectMapContainer{m: v}, nil
		}
	case reflect.Pointer:
		if v.IsNil() {
			break
		}

		if v.Elem().Kind() == reflect.Struct {
			return structContainer{v: v.Elem()}, nil
		}
	case reflect.Struct:
		// Read-only view; Set fails with a clear message.
		return structContainer{v: v}, nil
	}

	return nil, fmt.Errorf("%w: %T", ErrUnsupported, holder)
}

type mapContainer struct {
	m map[string]any
}

func (c mapContainer) Get(key string) (any, bool) {
	v, ok := c.m[key]
	return v, ok
}

func (c mapContainer) Set(key string, value any) error {
	if c.m == nil {
		return errors.New("cannot assign into a nil map")
	}

	c.m[key] = value

	return nil
}

// reflectMapContainer handles string-keyed maps with typed values,
// e.g. map[string]int.
type reflectMapContainer struct {
	m reflect.Value
}

func (c reflectMapContainer) Get(key string) (any, bool) {
	v := c.m.MapIndex(reflect.ValueOf(key))
	if !v.IsValid() {
		return nil, false
	}

	return v.Interface(), true
}

func (c reflectMapContainer) Set(key string, value any) error {
	if c.m.IsNil() {
		return errors.New("cannot assign into a nil map")
	}

	ev, err := convertValue(value, c.m.Type().Elem())
	if err != nil {
		return fmt.Errorf("key %q: %w", key, err)
	}

	c.m.SetMapIndex(reflect.ValueOf(key), ev)

	return nil
}

type structContainer struct {
	v reflect.Value
}

func (c structContainer) Get(key string) (any, bool) {
	fv := c.field(key)
	if !fv.IsValid() {
		return nil, false
	}

	return fv.Interface(), true
}

func (c structContainer) Set(key string, value any) error {
	fv := c.field(key)
	if !fv.IsValid() {
		return fmt.Errorf("no field for key %q", key)
	}

	if !fv.CanSet() {
		return fmt.Errorf("field for key %q is not assignable (struct passed by value?)", key)
	}

	cv, err := convertValue(value, fv.Type())
	if err != nil {
		return fmt.Errorf("key %q: %w", key, err)
	}

	fv.Set(cv)

	return nil
}

// field resolves a key to a struct field: `map` tag first, then exact
// name, then case-insensitive name match. Unexported fields never
// resolve.
func (c structContainer) field(key string) reflect.Value {
	t := c.v.Type()

	var exact, fold reflect.Value

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		tag, _, _ := strings.Cut(sf.Tag.Get("map"), ",")
		if tag == key {
			return c.v.Field(i)
		}

		switch {
		case sf.Name == key:
			exact = c.v.Field(i)
		case strings.EqualFold(sf.Name, key) && !fold.IsValid():
			fold = c.v.Field(i)
		}
	}

	if exact.IsValid() {
		return exact
	}

	return fold
}

// convertValue adapts value to the target type, converting element-wise
// when a generic []any must land in a typed slice.
func convertValue(value any, target reflect.Type) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(target), nil
	}

	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(target) {
		return rv, nil
	}

	if rv.Type().ConvertibleTo(target) && compatibleKinds(rv.Kind(), target.Kind()) {
		return rv.Convert(target), nil
	}

	if rv.Kind() == reflect.Slice && target.Kind() == reflect.Slice {
		out := reflect.MakeSlice(target, rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			ev, err := convertValue(rv.Index(i).Interface(), target.Elem())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("element %d: %w", i, err)
			}

			out.Index(i).Set(ev)
		}

		return out, nil
	}

	return reflect.Value{}, fmt.Errorf("cannot assign %T to %s", value, target)
}

// compatibleKinds restricts reflect conversions to same-family numeric
// widening so that e.g. int does not silently convert to string.
func compatibleKinds(from, to reflect.Kind) bool {
	switch {
	case from == to:
		return true
	case isNumeric(from) && isNumeric(to):
		return true
	}

	return false
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}

	return false
}
