// Package fields provides the field catalog for godump schemas: passthrough
// primitives (String, Integer, Float, Boolean), ISO-packing date fields
// (Date, DateTime), constant/getter/attribute raw-value options, and the
// linked fields Embed and Reference.
package fields

import (
	"fmt"
	"time"

	godump "github.com/reoring/godump"
)

// Option configures a field's raw-value source. Attr, Get, and Val are
// mutually exclusive; supplying more than one is a configuration error
// surfaced when the schema definition is built.
type Option func(*Base)

// Attr names the source attribute to read when it differs from the field's
// output name.
func Attr(name string) Option {
	return func(b *Base) {
		if name == "" {
			b.fail(godump.CodeOptionConflict, "empty attr")
			return
		}
		b.src.Attr = name
	}
}

// Get supplies a getter extracting the raw value from the source object,
// overriding any attribute lookup.
func Get(fn func(obj any) (any, error)) Option {
	return func(b *Base) {
		if fn == nil {
			b.fail(godump.CodeOptionConflict, "nil getter")
			return
		}
		b.src.Get = fn
	}
}

// Val supplies a constant raw value used for every dumped object. A nil
// constant is rejected at build time; use Get to emit nil.
func Val(v any) Option {
	return func(b *Base) {
		b.src.Val = v
		b.src.HasVal = true
	}
}

// Forward passes instantiation options (exclude/only/include/many/ordered)
// through to a linked field's nested schema. It is only valid on Embed and
// Reference fields.
func Forward(opt godump.DumpOpt) Option {
	return func(b *Base) {
		b.fwd = opt
		b.hasFwd = true
	}
}

// Base carries the attr/get/val configuration shared by all catalog fields.
// It is a complete passthrough field by itself; the typed constructors below
// return it (or wrap it) to indicate the intended value type.
type Base struct {
	src    godump.Source
	fwd    godump.DumpOpt
	hasFwd bool
	errs   godump.Issues
}

func newBase(opts []Option) Base {
	var b Base
	for _, o := range opts {
		o(&b)
	}
	return b
}

func (b *Base) fail(code, hint string) {
	b.errs = godump.AppendIssues(b.errs, godump.Issue{Path: "/", Code: code, Message: hint, Hint: hint})
}

// Source implements godump.Field.
func (b *Base) Source() godump.Source { return b.src }

// CheckConfig implements godump.ConfigChecker.
func (b *Base) CheckConfig() error {
	iss := b.errs
	if b.hasFwd {
		iss = godump.AppendIssues(iss, godump.Issue{Path: "/", Code: godump.CodeOptionConflict, Message: "forward options require a linked field", Hint: "use Embed or Reference"})
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

// checkBase is CheckConfig without the linked-field restriction, for use by
// linked fields embedding Base.
func (b *Base) checkBase() godump.Issues { return b.errs }

// String declares a passthrough string field. It adds no conversion over
// Base; use it over Base as an indicator of the field's type.
func String(opts ...Option) *Base { b := newBase(opts); return &b }

// Integer declares a passthrough integer field.
func Integer(opts ...Option) *Base { b := newBase(opts); return &b }

// Float declares a passthrough float field.
func Float(opts ...Option) *Base { b := newBase(opts); return &b }

// Boolean declares a passthrough boolean field.
func Boolean(opts ...Option) *Base { b := newBase(opts); return &b }

// DateField packs time values into ISO 8601 date strings (YYYY-MM-DD).
type DateField struct{ Base }

// Date declares a date field.
func Date(opts ...Option) *DateField {
	return &DateField{Base: newBase(opts)}
}

// Pack implements godump.Packer. A nil raw value packs to nil.
func (*DateField) Pack(val any) (any, error) {
	t, ok, err := timeValue(val)
	if err != nil || !ok {
		return nil, err
	}
	return t.Format("2006-01-02"), nil
}

// DateTimeField packs time values into ISO 8601 / RFC 3339 timestamps.
type DateTimeField struct{ Base }

// DateTime declares a timestamp field.
func DateTime(opts ...Option) *DateTimeField {
	return &DateTimeField{Base: newBase(opts)}
}

// Pack implements godump.Packer. A nil raw value packs to nil.
func (*DateTimeField) Pack(val any) (any, error) {
	t, ok, err := timeValue(val)
	if err != nil || !ok {
		return nil, err
	}
	return t.Format(time.RFC3339Nano), nil
}

// timeValue normalizes the accepted raw representations of a time. ok is
// false when the value is nil and the field should emit nil.
func timeValue(val any) (time.Time, bool, error) {
	switch v := val.(type) {
	case nil:
		return time.Time{}, false, nil
	case time.Time:
		return v, true, nil
	case *time.Time:
		if v == nil {
			return time.Time{}, false, nil
		}
		return *v, true, nil
	default:
		return time.Time{}, false, fmt.Errorf("cannot pack %T as time", val)
	}
}
