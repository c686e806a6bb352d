package godump

import (
	"iter"
	"reflect"
	"strconv"

	"github.com/reoring/godump/i18n"
	"github.com/reoring/godump/internal/lookup"
)

// DumpOpt configures a Dumper instance over a composed definition.
// Exclude/Only/Include are instance-level directives layered on top of the
// definition's composed field list; Exclude and Only are mutually exclusive.
type DumpOpt struct {
	Exclude []string
	Only    []string
	Include []Named
	// Many makes Dump treat its input as a collection.
	Many bool
	// Ordered makes dumps produce *Ordered mappings preserving field order
	// instead of plain maps.
	Ordered bool
}

// boundField is one fully prepared output entry: the accessor and pack step
// are resolved once at construction and invoked per object.
type boundField struct {
	name string
	get  func(obj any) (any, error)
	pack func(val any) (any, error) // nil for passthrough fields
}

// Dumper is a configured, reusable dumping unit: a definition with
// instance-level directives applied and every field bound. Dumpers are
// immutable after construction (linked fields resolve their nested schema
// lazily, guarded, on first use) and safe for concurrent dumps.
type Dumper struct {
	def     *Definition
	reg     *Registry
	many    bool
	ordered bool
	bound   []boundField
}

// New builds a Dumper over def resolving linked fields through
// DefaultRegistry.
func New(def *Definition, opt DumpOpt) (*Dumper, error) {
	return NewIn(DefaultRegistry, def, opt)
}

// NewIn builds a Dumper over def resolving linked fields through reg.
// Configuration errors in opt surface here, not at dump time.
func NewIn(reg *Registry, def *Definition, opt DumpOpt) (*Dumper, error) {
	if def == nil {
		return nil, Issues{{Path: "/", Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "nil definition"}}
	}
	if reg == nil {
		reg = DefaultRegistry
	}
	fields := def.fields.Clone()
	if err := applyDirectives(fields, Directives{Exclude: opt.Exclude, Only: opt.Only, Include: opt.Include}); err != nil {
		return nil, err
	}

	d := &Dumper{def: def, reg: reg, many: opt.Many, ordered: opt.Ordered}
	d.bound = make([]boundField, 0, fields.Len())
	for _, name := range fields.Names() {
		f, _ := fields.Get(name)
		d.bound = append(d.bound, bindField(name, f, reg))
	}
	return d, nil
}

// Definition returns the definition this dumper was built from.
func (d *Dumper) Definition() *Definition { return d.def }

// FieldNames returns the output names this dumper produces, in order.
func (d *Dumper) FieldNames() []string {
	out := make([]string, 0, len(d.bound))
	for _, b := range d.bound {
		out = append(out, b.name)
	}
	return out
}

// bindField resolves a field's raw-value accessor and pack step once.
// Precedence for the raw value: constant, then getter, then attribute lookup
// (falling back to the output name).
func bindField(name string, f Field, reg *Registry) boundField {
	src := f.Source()
	b := boundField{name: name}
	path := "/" + name

	switch {
	case src.HasVal:
		v := src.Val
		b.get = func(any) (any, error) { return v, nil }
	case src.Get != nil:
		get := src.Get
		b.get = func(obj any) (any, error) {
			v, err := get(obj)
			if err != nil {
				return nil, issuesFromErr(path, CodePackError, err)
			}
			return v, nil
		}
	default:
		attr := src.Attr
		if attr == "" {
			attr = name
		}
		b.get = func(obj any) (any, error) {
			v, err := lookup.Attr(obj, attr)
			if err != nil {
				return nil, Issues{{Path: path, Code: CodeMissingAttribute, Message: i18n.T(CodeMissingAttribute, nil), Hint: err.Error(), Params: map[string]any{"attr": attr}}}
			}
			return v, nil
		}
	}

	switch p := f.(type) {
	case RegistryPacker:
		b.pack = func(v any) (any, error) { return p.PackWith(reg, v) }
	case Packer:
		b.pack = p.Pack
	}
	return b
}

// Dump marshals v honoring the instance's collection mode: one mapping for a
// single object, a sequence of mappings for a collection. Use DumpOne or
// DumpMany to override the mode per call.
func (d *Dumper) Dump(v any) (any, error) {
	if d.many {
		out, err := d.DumpMany(v)
		if err != nil {
			return nil, err
		}
		return out, nil
	}
	return d.DumpOne(v)
}

// DumpOne marshals a single object into one mapping (map[string]any, or
// *Ordered in ordered mode), regardless of the instance's collection mode.
func (d *Dumper) DumpOne(obj any) (any, error) {
	if d.ordered {
		out := NewOrdered()
		if err := d.fill(obj, out.Set); err != nil {
			return nil, err
		}
		return out, nil
	}
	out := make(map[string]any, len(d.bound))
	if err := d.fill(obj, func(k string, v any) { out[k] = v }); err != nil {
		return nil, err
	}
	return out, nil
}

// DumpMany marshals a collection element by element, preserving input order.
// Accepted inputs are slices, arrays, pointers to those, and iter.Seq[any];
// single-pass sequences are consumed once and not restarted.
func (d *Dumper) DumpMany(v any) ([]any, error) {
	if seq, ok := v.(iter.Seq[any]); ok {
		out := []any{}
		i := 0
		for obj := range seq {
			m, err := d.DumpOne(obj)
			if err != nil {
				return nil, indexed(i, err)
			}
			out = append(out, m)
			i++
		}
		return out, nil
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			break
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, Issues{{Path: "/", Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "expected a collection of objects"}}
	}
	out := make([]any, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		m, err := d.DumpOne(rv.Index(i).Interface())
		if err != nil {
			return nil, indexed(i, err)
		}
		out = append(out, m)
	}
	return out, nil
}

// fill runs the bound pipeline for one object, assigning each output entry
// through set. Failures propagate immediately.
func (d *Dumper) fill(obj any, set func(key string, v any)) error {
	for _, b := range d.bound {
		raw, err := b.get(obj)
		if err != nil {
			return err
		}
		if b.pack != nil {
			raw, err = b.pack(raw)
			if err != nil {
				return error(issuesFromErr("/"+b.name, CodePackError, err))
			}
		}
		set(b.name, raw)
	}
	return nil
}

// indexed rebases element issues under the element's position in the input
// collection.
func indexed(i int, err error) error {
	if iss, ok := AsIssues(err); ok {
		return rebase("/"+strconv.Itoa(i), iss)
	}
	return err
}
