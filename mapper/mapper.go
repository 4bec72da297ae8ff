// Package mapper provides the thin orchestrator over a set of fields:
// it runs one full pass in declaration order, building a fresh context
// per field and collecting validation failures into a single error.
package mapper

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"objmap/field"
)

// Mapped is the field contract the mapper drives. Every field type in
// the field package satisfies it.
type Mapped interface {
	Name() string
	Marshal(ctx *field.Context) (field.Change, error)
	Serialize(ctx *field.Context) error
}

// Mapper aggregates fields and runs marshal/serialize passes over them.
// Build it once per mapping definition and reuse it; passes are
// sequential, one field fully processed before the next.
type Mapper struct {
	fields []Mapped
	roles  map[string]Role
}

// New builds a mapper over the given fields, processed in order.
func New(fields ...Mapped) *Mapper {
	return &Mapper{
		fields: fields,
		roles:  map[string]Role{},
	}
}

// AddRole registers a named role restricting which fields a role-scoped
// pass touches. It returns the mapper for chaining.
func (m *Mapper) AddRole(name string, r Role) *Mapper {
	m.roles[name] = r

	return m
}

// Changes maps field names to the old/new pair their marshal recorded.
type Changes map[string]field.Change

// MappingInvalid collects per-field validation failures for one pass.
type MappingInvalid struct {
	// Errors maps field names to the message of the failure.
	Errors map[string]string
}

func (e *MappingInvalid) Error() string {
	names := make([]string, 0, len(e.Errors))
	for name := range e.Errors {
		names = append(names, name)
	}

	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Errors[name]))
	}

	return "mapping invalid: " + strings.Join(parts, "; ")
}

// Marshal applies every field's input pipeline to data, writing native
// values onto obj. Validation failures are collected per field into a
// MappingInvalid; contract errors abort the pass immediately.
func (m *Mapper) Marshal(data, obj any) (Changes, error) {
	return m.marshal(data, obj, m.fields)
}

// MarshalRole is Marshal restricted to the fields the named role
// accepts.
func (m *Mapper) MarshalRole(role string, data, obj any) (Changes, error) {
	fields, err := m.roleFields(role)
	if err != nil {
		return nil, err
	}

	return m.marshal(data, obj, fields)
}

// Serialize renders obj into a fresh mapped representation.
func (m *Mapper) Serialize(obj any) (map[string]any, error) {
	return m.serialize(obj, m.fields)
}

// SerializeRole is Serialize restricted to the fields the named role
// accepts.
func (m *Mapper) SerializeRole(role string, obj any) (map[string]any, error) {
	fields, err := m.roleFields(role)
	if err != nil {
		return nil, err
	}

	return m.serialize(obj, fields)
}

func (m *Mapper) marshal(data, obj any, fields []Mapped) (Changes, error) {
	inv := &MappingInvalid{Errors: map[string]string{}}
	changes := Changes{}

	for _, f := range fields {
		ctx := &field.Context{Data: data, Output: obj}

		ch, err := f.Marshal(ctx)
		if err != nil {
			var fi *field.FieldInvalid
			if errors.As(err, &fi) {
				inv.Errors[f.Name()] = fi.Message
				continue
			}

			return nil, err
		}

		changes[f.Name()] = ch
	}

	if len(inv.Errors) > 0 {
		return nil, inv
	}

	return changes, nil
}

func (m *Mapper) serialize(obj any, fields []Mapped) (map[string]any, error) {
	inv := &MappingInvalid{Errors: map[string]string{}}
	out := map[string]any{}

	for _, f := range fields {
		ctx := &field.Context{Obj: obj, Output: out}

		if err := f.Serialize(ctx); err != nil {
			var fi *field.FieldInvalid
			if errors.As(err, &fi) {
				inv.Errors[f.Name()] = fi.Message
				continue
			}

			return nil, err
		}
	}

	if len(inv.Errors) > 0 {
		return nil, inv
	}

	return out, nil
}

func (m *Mapper) roleFields(role string) ([]Mapped, error) {
	r, ok := m.roles[role]
	if !ok {
		return nil, fmt.Errorf("unknown role %q", role)
	}

	fields := make([]Mapped, 0, len(m.fields))
	for _, f := range m.fields {
		if r.Accepts(f.Name()) {
			fields = append(fields, f)
		}
	}

	return fields, nil
}
