package godump

import (
	"strings"

	"github.com/reoring/godump/i18n"
	"github.com/reoring/godump/internal/fieldset"
)

// Directives adjust a composed field list: Exclude removes named fields,
// Only keeps exactly the named fields, Include adds or overrides fields.
// Exclude and Only are mutually exclusive.
type Directives struct {
	Exclude []string
	Only    []string
	Include []Named
}

// Definition is a composed schema: an ordered, immutable field list plus an
// optional registry identifier. Definitions are built once (via dsl.Schema or
// NewDefinition) and shared; composition never reruns for the same
// definition.
type Definition struct {
	name   string
	fields *fieldset.Set[Field]
}

// NewDefinition composes a schema definition from its own fields (in
// declaration order, include directives already spliced in by the caller),
// parent definitions, and directives. All configuration errors surface here,
// before any object is dumped.
//
// Composition walks parents in declaration order, each contributing its
// already-composed field list; the first occurrence of a name fixes its
// position, and a name redeclared in own overrides the inherited field in
// place. Name is empty for anonymous (unregistrable) definitions.
func NewDefinition(name string, own []Named, parents []*Definition, dir Directives) (*Definition, error) {
	if name != "" && !ValidIdentifier(name) {
		return nil, Issues{{Path: "/", Code: CodeInvalidIdentifier, Message: i18n.T(CodeInvalidIdentifier, nil), Hint: "identifier: '" + name + "'"}}
	}

	var iss Issues
	for _, nf := range own {
		iss = AppendIssues(iss, checkField(nf)...)
	}
	if len(iss) > 0 {
		return nil, iss
	}

	merged := fieldset.New[Field]()
	for _, p := range parents {
		for _, nf := range p.Fields() {
			if !merged.Has(nf.Name) {
				merged.Set(nf.Name, nf.Field)
			}
		}
	}
	for _, nf := range own {
		merged.Set(nf.Name, nf.Field)
	}

	if err := applyDirectives(merged, dir); err != nil {
		return nil, err
	}
	return &Definition{name: name, fields: merged}, nil
}

// Name returns the registry identifier, or "" for anonymous definitions.
func (d *Definition) Name() string { return d.name }

// Len returns the number of composed fields.
func (d *Definition) Len() int { return d.fields.Len() }

// Fields returns the composed fields in order. The slice is a copy.
func (d *Definition) Fields() []Named {
	out := make([]Named, 0, d.fields.Len())
	for _, n := range d.fields.Names() {
		f, _ := d.fields.Get(n)
		out = append(out, Named{Name: n, Field: f})
	}
	return out
}

// FieldNames returns the composed field names in order. The slice is a copy.
func (d *Definition) FieldNames() []string { return d.fields.Names() }

// Field returns the composed field stored under name.
func (d *Definition) Field(name string) (Field, bool) {
	return d.fields.Get(name)
}

// applyDirectives mutates fields per dir. Shared between composition and
// dumper instantiation so definition-level and instance-level directives
// behave identically.
func applyDirectives(fields *fieldset.Set[Field], dir Directives) error {
	if len(dir.Exclude) > 0 && len(dir.Only) > 0 {
		return Issues{{Path: "/", Code: CodeExcludeOnlyConflict, Message: i18n.T(CodeExcludeOnlyConflict, nil)}}
	}
	var iss Issues
	for _, nf := range dir.Include {
		iss = AppendIssues(iss, checkField(nf)...)
	}
	if len(iss) > 0 {
		return iss
	}
	for _, nf := range dir.Include {
		fields.Set(nf.Name, nf.Field)
	}
	switch {
	case len(dir.Exclude) > 0:
		if missing := fields.Missing(dir.Exclude); len(missing) > 0 {
			return Issues{{Path: "/", Code: CodeUnknownField, Message: i18n.T(CodeUnknownField, nil), Hint: "exclude: " + strings.Join(missing, ", ")}}
		}
		for _, n := range dir.Exclude {
			fields.Delete(n)
		}
	case len(dir.Only) > 0:
		if missing := fields.Missing(dir.Only); len(missing) > 0 {
			return Issues{{Path: "/", Code: CodeUnknownField, Message: i18n.T(CodeUnknownField, nil), Hint: "only: " + strings.Join(missing, ", ")}}
		}
		fields.Only(dir.Only)
	}
	return nil
}

// checkField validates one named field eagerly: usable output name, at most
// one raw-value source, no nil constant, plus the field's own config checks.
func checkField(nf Named) Issues {
	var iss Issues
	path := "/" + nf.Name
	if nf.Name == "" || strings.ContainsAny(nf.Name, `"'`) {
		iss = AppendIssues(iss, Issue{Path: "/", Code: CodeInvalidIdentifier, Message: i18n.T(CodeInvalidIdentifier, nil), Hint: "field name: '" + nf.Name + "'"})
	}
	if nf.Field == nil {
		return AppendIssues(iss, Issue{Path: path, Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "nil field"})
	}
	src := nf.Field.Source()
	n := 0
	if src.Attr != "" {
		n++
	}
	if src.Get != nil {
		n++
	}
	if src.HasVal {
		n++
	}
	if n > 1 {
		iss = AppendIssues(iss, Issue{Path: path, Code: CodeOptionConflict, Message: i18n.T(CodeOptionConflict, nil), Hint: "attr, get and val are mutually exclusive"})
	}
	if src.HasVal && src.Val == nil {
		iss = AppendIssues(iss, Issue{Path: path, Code: CodeInvalidConst, Message: i18n.T(CodeInvalidConst, nil), Hint: "use a getter to emit nil"})
	}
	if cc, ok := nf.Field.(ConfigChecker); ok {
		if err := cc.CheckConfig(); err != nil {
			iss = AppendIssues(iss, issuesFromErr(path, CodeOptionConflict, err)...)
		}
	}
	return iss
}
