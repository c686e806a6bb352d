// Package yamlschema imports godump schema definitions from YAML schema
// descriptors, so dump shapes can ship as data next to the objects they
// describe.
//
// A descriptor is one or more YAML documents of the form:
//
//	schemas:
//	  - name: library.PersonSchema
//	    fields:
//	      - {name: first_name, type: string}
//	      - {name: date_of_birth, type: date, attr: born}
//	  - name: library.BookSchema
//	    fields:
//	      - {name: title, type: string}
//	      - {name: author, type: embed, schema: library.PersonSchema, exclude: [books]}
//
// Schemas build and register in document order; embed/reference targets are
// identifiers resolved lazily at first dump, so they may point at schemas
// declared later in the same descriptor.
package yamlschema

import (
	"bytes"
	"errors"
	"io"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	godump "github.com/reoring/godump"
	"github.com/reoring/godump/dsl"
	"github.com/reoring/godump/fields"
)

// Document is one YAML document of a schema descriptor.
type Document struct {
	Schemas []SchemaDef `yaml:"schemas" validate:"required,min=1,dive"`
}

// SchemaDef declares one schema.
type SchemaDef struct {
	Name    string     `yaml:"name" validate:"required"`
	Extends []string   `yaml:"extends"`
	Fields  []FieldDef `yaml:"fields" validate:"dive"`
	Exclude []string   `yaml:"exclude"`
	Only    []string   `yaml:"only"`
}

// FieldDef declares one field. Schema and Field configure the linked types
// (embed, reference); Exclude/Only/Many forward to the nested schema.
type FieldDef struct {
	Name    string   `yaml:"name" validate:"required"`
	Type    string   `yaml:"type" validate:"required,oneof=string integer float boolean date datetime embed reference"`
	Attr    string   `yaml:"attr"`
	Val     any      `yaml:"val"`
	Schema  string   `yaml:"schema" validate:"required_if=Type embed,required_if=Type reference"`
	Field   string   `yaml:"field" validate:"required_if=Type reference"`
	Exclude []string `yaml:"exclude"`
	Only    []string `yaml:"only"`
	Many    bool     `yaml:"many"`
}

var validate = validator.New()

// Import reads every document in data, builds the declared schemas in order,
// and registers them in reg (godump.DefaultRegistry when nil). It returns
// the built definitions in declaration order.
func Import(data []byte, reg *godump.Registry) ([]*godump.Definition, error) {
	if reg == nil {
		reg = godump.DefaultRegistry
	}
	var defs []*godump.Definition
	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var doc Document
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, godump.Issues{{Path: "/", Code: godump.CodePackError, Message: "yaml decode failed", Cause: err}}
		}
		if err := validate.Struct(doc); err != nil {
			return nil, godump.Issues{{Path: "/", Code: godump.CodeInvalidType, Message: "invalid schema descriptor", Hint: err.Error(), Cause: err}}
		}
		for _, sd := range doc.Schemas {
			def, err := buildSchema(sd, reg)
			if err != nil {
				if iss, ok := godump.AsIssues(err); ok {
					return nil, withSchemaParam(iss, sd.Name)
				}
				return nil, err
			}
			defs = append(defs, def)
		}
	}
	return defs, nil
}

func buildSchema(sd SchemaDef, reg *godump.Registry) (*godump.Definition, error) {
	b := dsl.Schema(sd.Name).Registry(reg)
	for _, pname := range sd.Extends {
		parent, err := reg.Resolve(pname)
		if err != nil {
			return nil, err
		}
		b.Extend(parent)
	}
	for _, fd := range sd.Fields {
		f, err := buildField(fd)
		if err != nil {
			return nil, err
		}
		b.Field(fd.Name, f)
	}
	if len(sd.Exclude) > 0 {
		b.Exclude(sd.Exclude...)
	}
	if len(sd.Only) > 0 {
		b.Only(sd.Only...)
	}
	return b.Build()
}

func buildField(fd FieldDef) (godump.Field, error) {
	var opts []fields.Option
	if fd.Attr != "" {
		opts = append(opts, fields.Attr(fd.Attr))
	}
	if fd.Val != nil {
		opts = append(opts, fields.Val(fd.Val))
	}
	switch fd.Type {
	case "string":
		return fields.String(opts...), nil
	case "integer":
		return fields.Integer(opts...), nil
	case "float":
		return fields.Float(opts...), nil
	case "boolean":
		return fields.Boolean(opts...), nil
	case "date":
		return fields.Date(opts...), nil
	case "datetime":
		return fields.DateTime(opts...), nil
	case "embed", "reference":
		if len(fd.Exclude) > 0 || len(fd.Only) > 0 || fd.Many {
			opts = append(opts, fields.Forward(godump.DumpOpt{Exclude: fd.Exclude, Only: fd.Only, Many: fd.Many}))
		}
		if fd.Type == "embed" {
			return fields.Embed(fd.Schema, opts...), nil
		}
		return fields.Reference(fd.Schema, fd.Field, opts...), nil
	default:
		// unreachable: the validator's oneof constraint rejects other types
		return nil, godump.Issues{{Path: "/" + fd.Name, Code: godump.CodeInvalidType, Message: "unsupported field type", Hint: fd.Type}}
	}
}

// withSchemaParam stamps the offending schema name onto each issue so
// multi-schema descriptors produce attributable errors.
func withSchemaParam(iss godump.Issues, name string) godump.Issues {
	out := make(godump.Issues, 0, len(iss))
	for _, it := range iss {
		if it.Params == nil {
			it.Params = map[string]any{}
		}
		it.Params["schema"] = name
		out = append(out, it)
	}
	return out
}
