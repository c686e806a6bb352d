package yamlschema_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	godump "github.com/reoring/godump"
	"github.com/reoring/godump/yamlschema"
)

const descriptor = `
schemas:
  - name: library.PersonSchema
    fields:
      - {name: first_name, type: string}
      - {name: last_name, type: string}
      - {name: date_of_birth, type: date, attr: born}
  - name: library.AuthorSchema
    extends: [library.PersonSchema]
    exclude: [first_name]
    fields:
      - {name: books, type: embed, schema: library.BookSchema, many: true, exclude: [author]}
  - name: library.BookSchema
    fields:
      - {name: title, type: string}
      - {name: author, type: reference, schema: AuthorSchema, field: last_name}
`

func TestImport_BuildsAndRegisters(t *testing.T) {
	reg := godump.NewRegistry()
	defs, err := yamlschema.Import([]byte(descriptor), reg)
	require.NoError(t, err)
	require.Len(t, defs, 3)

	assert.Equal(t, []string{"first_name", "last_name", "date_of_birth"}, defs[0].FieldNames())
	assert.Equal(t, []string{"last_name", "date_of_birth", "books"}, defs[1].FieldNames())

	got, err := reg.Resolve("BookSchema")
	require.NoError(t, err)
	assert.Same(t, defs[2], got)
}

func TestImport_DumpWithForwardDeclaredSchemas(t *testing.T) {
	reg := godump.NewRegistry()
	_, err := yamlschema.Import([]byte(descriptor), reg)
	require.NoError(t, err)

	def, err := reg.Resolve("library.BookSchema")
	require.NoError(t, err)
	d, err := godump.NewIn(reg, def, godump.DumpOpt{})
	require.NoError(t, err)

	book := map[string]any{
		"title": "Grail Diary",
		"author": map[string]any{
			"first_name": "Henry",
			"last_name":  "Jones",
			"born":       time.Date(1899, 5, 12, 0, 0, 0, 0, time.UTC),
			"books":      []any{},
		},
	}
	out, err := d.Dump(book)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"title": "Grail Diary", "author": "Jones"}, out)
}

func TestImport_MultiDocument(t *testing.T) {
	src := "schemas:\n  - name: a.First\n    fields:\n      - {name: x, type: integer}\n---\nschemas:\n  - name: a.Second\n    fields:\n      - {name: y, type: integer}\n"
	reg := godump.NewRegistry()
	defs, err := yamlschema.Import([]byte(src), reg)
	require.NoError(t, err)
	assert.Len(t, defs, 2)
	assert.ElementsMatch(t, []string{"a.First", "a.Second"}, reg.Names())
}

func TestImport_ConstantValue(t *testing.T) {
	src := `
schemas:
  - name: a.Tagged
    fields:
      - {name: kind, type: string, val: person}
`
	reg := godump.NewRegistry()
	defs, err := yamlschema.Import([]byte(src), reg)
	require.NoError(t, err)

	d, err := godump.NewIn(reg, defs[0], godump.DumpOpt{})
	require.NoError(t, err)
	out, err := d.Dump(map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"kind": "person"}, out)
}

func TestImport_UnknownExtendsFails(t *testing.T) {
	src := `
schemas:
  - name: a.Orphan
    extends: [a.Nowhere]
    fields:
      - {name: x, type: string}
`
	_, err := yamlschema.Import([]byte(src), godump.NewRegistry())
	iss, ok := godump.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, godump.CodeSchemaNotFound, iss[0].Code)
	assert.Equal(t, "a.Orphan", iss[0].Params["schema"])
}

func TestImport_DescriptorValidation(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"no schemas", "schemas: []\n"},
		{"missing name", "schemas:\n  - fields:\n      - {name: x, type: string}\n"},
		{"unknown type", "schemas:\n  - name: a.Bad\n    fields:\n      - {name: x, type: decimal}\n"},
		{"reference without field", "schemas:\n  - name: a.Bad\n    fields:\n      - {name: x, type: reference, schema: a.Other}\n"},
	}
	for _, tc := range cases {
		_, err := yamlschema.Import([]byte(tc.src), godump.NewRegistry())
		iss, ok := godump.AsIssues(err)
		require.True(t, ok, tc.name)
		assert.Equal(t, godump.CodeInvalidType, iss[0].Code, tc.name)
	}
}

func TestImport_MalformedYAML(t *testing.T) {
	_, err := yamlschema.Import([]byte("schemas: [\n"), godump.NewRegistry())
	iss, ok := godump.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, godump.CodePackError, iss[0].Code)
}
