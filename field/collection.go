package field

import "reflect"

// Inner is the contract a field must meet to serve as a Collection
// element type. Every field in this package satisfies it through its
// embedded base descriptor.
type Inner interface {
	base() *Field
}

// Collection wraps an inner field and applies its coercion and
// formatting pipes element-wise over a sequence. Order is preserved, no
// deduplication happens, and empty sequences pass through unchanged.
type Collection struct {
	*Field

	inner *Field
}

// NewCollection builds a collection field around inner. The inner field
// may be built with an empty name; it then borrows the collection's
// name for error messages.
func NewCollection(name string, inner Inner, opts ...Option) *Collection {
	f := newBase(name, opts...)

	in := inner.base()
	if in.name == "" {
		in.name = f.name
	}

	c := &Collection{Field: f, inner: in}
	f.assemble(
		[]Pipe{c.marshalElements},
		[]Pipe{c.serializeElements},
	)

	return c
}

// marshalElements decodes an ordered sequence of raw inputs by running
// the inner field's marshal process pipes on each element.
func (c *Collection) marshalElements(s *Session) error {
	return c.applyElements(s, c.inner.marshalProcess)
}

// serializeElements produces the mapped sequence by running the inner
// field's serialize process pipes on each element.
func (c *Collection) serializeElements(s *Session) error {
	return c.applyElements(s, c.inner.serializeProcess)
}

func (c *Collection) applyElements(s *Session, pipes []Pipe) error {
	if s.Data == nil {
		return nil
	}

	v := reflect.ValueOf(s.Data)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return invalidf(s.Field, "%v is not a valid collection", s.Data)
	}

	out := make([]any, 0, v.Len())

	for i := 0; i < v.Len(); i++ {
		es := &Session{Field: c.inner, Data: v.Index(i).Interface(), Ctx: s.Ctx}
		if err := Run(es, pipes); err != nil {
			return err
		}

		out = append(out, es.Data)
	}

	s.Data = out

	return nil
}
