package fields

import (
	"fmt"
	"reflect"
	"sync"

	godump "github.com/reoring/godump"
)

// linked is the shared machinery of Embed and Reference: a schema argument
// (direct handle or deferred identifier) resolved into a nested dumper
// exactly once, on the first dump that reaches the field.
//
// Resolution is deliberately lazy so that schemas can reference each other
// by name before both exist; an unknown identifier therefore surfaces only
// at first dump, never at declaration. The once guard keeps "resolved
// exactly once" true under concurrent first dumps. The registry of the first
// resolution is sticky; reusing one field value under a second registry is
// not supported.
type linked struct {
	Base
	schema any

	once   sync.Once
	dumper *godump.Dumper
	err    error
}

// checkLinked validates the schema argument eagerly. Deferred identifiers
// are checked for shape only; their existence is a first-dump concern.
func (l *linked) checkLinked() error {
	iss := l.checkBase()
	switch s := l.schema.(type) {
	case *godump.Definition, string:
	case *godump.Dumper:
		if l.hasFwd {
			iss = godump.AppendIssues(iss, godump.Issue{Path: "/", Code: godump.CodeOptionConflict, Message: "forward options conflict with an instantiated schema", Hint: "pass a definition or identifier instead"})
		}
	default:
		iss = godump.AppendIssues(iss, godump.Issue{Path: "/", Code: godump.CodeInvalidType, Message: fmt.Sprintf("schema option must be *godump.Definition, *godump.Dumper or string, got %T", s)})
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func (l *linked) resolve(reg *godump.Registry) (*godump.Dumper, error) {
	l.once.Do(func() {
		switch s := l.schema.(type) {
		case *godump.Dumper:
			l.dumper = s
		case *godump.Definition:
			l.dumper, l.err = godump.NewIn(reg, s, l.fwd)
		case string:
			def, err := reg.Resolve(s)
			if err != nil {
				l.err = err
				return
			}
			l.dumper, l.err = godump.NewIn(reg, def, l.fwd)
		default:
			l.err = godump.Issues{{Path: "/", Code: godump.CodeInvalidType, Message: fmt.Sprintf("schema option must be *godump.Definition, *godump.Dumper or string, got %T", s)}}
		}
	})
	return l.dumper, l.err
}

// isNilValue reports whether val is nil, including typed nil pointers and
// maps carried inside an interface.
func isNilValue(val any) bool {
	if val == nil {
		return true
	}
	switch rv := reflect.ValueOf(val); rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

// EmbedField dumps a related object (or collection, with Forward Many)
// through another schema and embeds the full nested output.
type EmbedField struct{ linked }

// Embed declares an embedding field. schema is a *godump.Definition, an
// instantiated *godump.Dumper, or an identifier string resolved through the
// registry on first dump. Forward options configure the nested schema's
// instantiation and must not accompany an instantiated dumper.
func Embed(schema any, opts ...Option) *EmbedField {
	return &EmbedField{linked{Base: newBase(opts), schema: schema}}
}

// CheckConfig implements godump.ConfigChecker.
func (f *EmbedField) CheckConfig() error { return f.checkLinked() }

// PackWith implements godump.RegistryPacker. A nil raw value packs to nil.
func (f *EmbedField) PackWith(reg *godump.Registry, val any) (any, error) {
	d, err := f.resolve(reg)
	if err != nil {
		return nil, err
	}
	if isNilValue(val) {
		return nil, nil
	}
	return d.Dump(val)
}

// ReferenceField dumps a related object through another schema and surfaces
// a single named field of the nested output (typically an identifier or
// URL) as the reference's value.
type ReferenceField struct {
	linked
	field string
}

// Reference declares a referencing field. schema is accepted as for Embed;
// field names the nested output entry to surface. In collection mode the
// value is the sequence of that entry per element.
func Reference(schema any, field string, opts ...Option) *ReferenceField {
	return &ReferenceField{linked: linked{Base: newBase(opts), schema: schema}, field: field}
}

// CheckConfig implements godump.ConfigChecker.
func (f *ReferenceField) CheckConfig() error {
	err := f.checkLinked()
	if f.field != "" {
		return err
	}
	iss, _ := godump.AsIssues(err)
	return godump.AppendIssues(iss, godump.Issue{Path: "/", Code: godump.CodeUnknownField, Message: "reference requires a field name"})
}

// PackWith implements godump.RegistryPacker. A nil raw value packs to nil.
func (f *ReferenceField) PackWith(reg *godump.Registry, val any) (any, error) {
	d, err := f.resolve(reg)
	if err != nil {
		return nil, err
	}
	if isNilValue(val) {
		return nil, nil
	}
	out, err := d.Dump(val)
	if err != nil {
		return nil, err
	}
	return f.extract(out)
}

func (f *ReferenceField) extract(out any) (any, error) {
	switch m := out.(type) {
	case map[string]any:
		v, ok := m[f.field]
		if !ok {
			return nil, godump.Issues{{Path: "/" + f.field, Code: godump.CodeUnknownField, Message: "referenced field missing from nested dump"}}
		}
		return v, nil
	case *godump.Ordered:
		v, ok := m.Get(f.field)
		if !ok {
			return nil, godump.Issues{{Path: "/" + f.field, Code: godump.CodeUnknownField, Message: "referenced field missing from nested dump"}}
		}
		return v, nil
	case []any:
		vals := make([]any, 0, len(m))
		for _, el := range m {
			v, err := f.extract(el)
			if err != nil {
				return nil, err
			}
			vals = append(vals, v)
		}
		return vals, nil
	default:
		return nil, godump.Issues{{Path: "/" + f.field, Code: godump.CodeInvalidType, Message: fmt.Sprintf("unexpected nested dump shape %T", out)}}
	}
}
