package field

// Field is the base declarative descriptor. It is built once per
// mapping definition, configured through Options, and reused across
// many marshal/serialize passes; nothing mutates it after construction.
type Field struct {
	name   string
	source string

	required   bool
	def        any
	hasDefault bool
	allowNil   bool
	readOnly   bool
	choices    []any
	validators []Validator

	// Numeric knobs, consulted only by the numeric pipes.
	min          *int
	max          *int
	precision    int32
	hasPrecision bool

	marshalPipes   []Pipe
	serializePipes []Pipe

	// Process pipes are the coercion/validation slice of the pipelines
	// above; Collection applies them element-wise.
	marshalProcess   []Pipe
	serializeProcess []Pipe
}

// Option configures a field at construction time.
type Option func(f *Field)

// Source sets the key or attribute used on the native object. Without
// it the source falls back to the mapped name.
func Source(source string) Option {
	return func(f *Field) { f.source = source }
}

// Required makes marshalling fail when the mapped key is absent.
func Required() Option {
	return func(f *Field) { f.required = true }
}

// Default supplies a value used when the mapped key is absent.
func Default(v any) Option {
	return func(f *Field) {
		f.def = v
		f.hasDefault = true
	}
}

// DisallowNil makes an absent, non-required mapped key a validation
// failure instead of yielding nil.
func DisallowNil() Option {
	return func(f *Field) { f.allowNil = false }
}

// ReadOnly suppresses the field during marshal: input is ignored and
// the output container is left untouched.
func ReadOnly() Option {
	return func(f *Field) { f.readOnly = true }
}

// Choices restricts marshalled values to an explicit set, checked after
// type coercion.
func Choices(choices ...any) Option {
	return func(f *Field) { f.choices = choices }
}

// Min sets the inclusive lower bound for numeric fields.
func Min(n int) Option {
	return func(f *Field) {
		v := n
		f.min = &v
	}
}

// Max sets the inclusive upper bound for numeric fields.
func Max(n int) Option {
	return func(f *Field) {
		v := n
		f.max = &v
	}
}

// Precision sets the number of fractional digits a Decimal field keeps
// when quantizing and rendering.
func Precision(digits int32) Option {
	return func(f *Field) {
		f.precision = digits
		f.hasPrecision = true
	}
}

// Validate attaches extra validators, run during marshal after the
// field's own coercion and checks.
func Validate(validators ...Validator) Option {
	return func(f *Field) { f.validators = append(f.validators, validators...) }
}

// New builds a generic pass-through field: no type coercion, values
// travel unchanged. name is the key used in the mapped representation.
func New(name string, opts ...Option) *Field {
	f := newBase(name, opts...)
	f.assemble(nil, nil)

	return f
}

func newBase(name string, opts ...Option) *Field {
	f := &Field{
		name:     name,
		allowNil: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.source == "" {
		f.source = f.name
	}

	return f
}

// assemble builds the two pipelines around the type-specific process
// pipes. Ordering is the sole extensibility axis: the runner never
// branches, field types only decide which pipes appear and where.
func (f *Field) assemble(marshalProcess, serializeProcess []Pipe) {
	f.marshalProcess = append(marshalProcess, checkChoices, checkValidators)
	f.serializeProcess = serializeProcess

	f.marshalPipes = append([]Pipe{readOnlyGuard, extractByName}, f.marshalProcess...)
	f.marshalPipes = append(f.marshalPipes, memoizeChange, writeToSource)

	f.serializePipes = append([]Pipe{extractBySource}, f.serializeProcess...)
	f.serializePipes = append(f.serializePipes, writeToName)
}

// Name returns the key used in the mapped representation.
func (f *Field) Name() string {
	return f.name
}

// Source returns the key or attribute used on the native object. It
// equals Name unless Source was set explicitly.
func (f *Field) Source() string {
	return f.source
}

// base lets wrapper field types hand their descriptor to Collection and
// the session machinery.
func (f *Field) base() *Field {
	return f
}

// Marshal runs the field's input pipeline against ctx: the value at the
// field's name in ctx.Data is extracted, coerced, validated and written
// at the field's source on ctx.Output. The returned Change carries the
// destination's old/new pair so callers can detect no-op updates.
func (f *Field) Marshal(ctx *Context) (Change, error) {
	s := &Session{Field: f, Ctx: ctx}
	if err := Run(s, f.marshalPipes); err != nil {
		return Change{}, err
	}

	return s.change, nil
}

// Serialize runs the field's output pipeline against ctx: the value at
// the field's source on ctx.Obj is extracted, formatted and written at
// the field's name on ctx.Output.
func (f *Field) Serialize(ctx *Context) error {
	s := &Session{Field: f, Ctx: ctx}

	return Run(s, f.serializePipes)
}
