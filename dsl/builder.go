// Package dsl provides the declaration surface for godump schemas.
//
// Entry point
//   - Schema(name): create a schema builder; chain Extend/Field/Include and
//     Exclude or Only, then Build()/MustBuild().
//
// Build composes the final ordered field list (parents first, own fields
// overriding by name in place), validates every directive, and registers
// named definitions so other schemas can reference them by identifier,
// including schemas that are declared later (linked fields resolve names
// lazily, at first dump).
//
// Example
//
//	person := dsl.Schema("library.PersonSchema").
//		Field("name", fields.String()).
//		Field("born", fields.Date()).
//		MustBuild()
//
//	king := dsl.Schema("library.KingSchema").
//		Extend(person).
//		Field("title", fields.String()).
//		MustBuild()
package dsl

import (
	godump "github.com/reoring/godump"
	"github.com/reoring/godump/internal/fieldset"
)

type schemaBuilder struct {
	name     string
	reg      *godump.Registry
	parents  []*godump.Definition
	own      []godump.Named // Field and Include entries in declaration order
	declared []string       // names from Field calls, for the disjointness check
	included []string       // names from Include calls
	exclude  []string
	only     []string
	errs     godump.Issues
}

// Schema starts a builder for a schema named name. An empty name declares an
// anonymous definition, usable directly but not resolvable through a
// registry.
func Schema(name string) *schemaBuilder {
	return &schemaBuilder{name: name}
}

// Registry selects the registry named definitions register in and defaults
// to godump.DefaultRegistry.
func (b *schemaBuilder) Registry(reg *godump.Registry) *schemaBuilder {
	b.reg = reg
	return b
}

// Extend appends parent definitions, in precedence order: when two parents
// declare the same field name, the first-listed parent wins.
func (b *schemaBuilder) Extend(parents ...*godump.Definition) *schemaBuilder {
	for _, p := range parents {
		if p == nil {
			b.errs = godump.AppendIssues(b.errs, godump.Issue{Path: "/", Code: godump.CodeInvalidType, Message: "nil parent definition"})
			continue
		}
		b.parents = append(b.parents, p)
	}
	return b
}

// Field declares an own field. Redeclaring a name from a parent overrides
// the inherited field while keeping its position.
func (b *schemaBuilder) Field(name string, f godump.Field) *schemaBuilder {
	b.own = append(b.own, godump.Named{Name: name, Field: f})
	b.declared = append(b.declared, name)
	return b
}

// Include splices an additional field in at the position of this call.
// Unlike Field, an Include name colliding with a Field-declared name on the
// same builder is ambiguous and fails at Build.
func (b *schemaBuilder) Include(name string, f godump.Field) *schemaBuilder {
	b.own = append(b.own, godump.Named{Name: name, Field: f})
	b.included = append(b.included, name)
	return b
}

// Exclude removes the named fields after composition. Mutually exclusive
// with Only.
func (b *schemaBuilder) Exclude(names ...string) *schemaBuilder {
	b.exclude = append(b.exclude, names...)
	return b
}

// Only keeps exactly the named fields after composition. Mutually exclusive
// with Exclude.
func (b *schemaBuilder) Only(names ...string) *schemaBuilder {
	b.only = append(b.only, names...)
	return b
}

// Build composes the definition and registers it when named. All
// configuration errors surface here.
func (b *schemaBuilder) Build() (*godump.Definition, error) {
	iss := b.errs
	if common := fieldset.Intersect(b.declared, b.included); len(common) > 0 {
		for _, n := range common {
			iss = godump.AppendIssues(iss, godump.Issue{Path: "/" + n, Code: godump.CodeDuplicateField, Message: "declared both as field and include", Hint: n})
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}

	def, err := godump.NewDefinition(b.name, b.own, b.parents, godump.Directives{Exclude: b.exclude, Only: b.only})
	if err != nil {
		return nil, err
	}
	if b.name != "" {
		reg := b.reg
		if reg == nil {
			reg = godump.DefaultRegistry
		}
		if err := reg.Register(def); err != nil {
			return nil, err
		}
	}
	return def, nil
}

// MustBuild is like Build but panics on error.
func (b *schemaBuilder) MustBuild() *godump.Definition {
	def, err := b.Build()
	if err != nil {
		panic(err)
	}
	return def
}
