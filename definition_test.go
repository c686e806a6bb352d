package godump_test

import (
	"testing"

	godump "github.com/reoring/godump"
)

// stubField is a minimal Field for composition tests; the raw value never
// matters here, only identity and ordering.
type stubField struct {
	src godump.Source
	id  int
}

func (s stubField) Source() godump.Source { return s.src }

func names(def *godump.Definition) []string {
	fs := def.Fields()
	out := make([]string, 0, len(fs))
	for _, nf := range fs {
		out = append(out, nf.Name)
	}
	return out
}

func equalNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func define(t *testing.T, own []godump.Named, parents []*godump.Definition, dir godump.Directives) *godump.Definition {
	t.Helper()
	def, err := godump.NewDefinition("", own, parents, dir)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	return def
}

func TestCompose_OwnFieldOrder(t *testing.T) {
	def := define(t, []godump.Named{
		{Name: "a", Field: stubField{}},
		{Name: "b", Field: stubField{}},
		{Name: "c", Field: stubField{}},
	}, nil, godump.Directives{})
	if got := names(def); !equalNames(got, []string{"a", "b", "c"}) {
		t.Fatalf("order: %v", got)
	}
}

func TestCompose_InheritanceAppendsOwnFields(t *testing.T) {
	parent := define(t, []godump.Named{
		{Name: "name", Field: stubField{}},
	}, nil, godump.Directives{})
	child := define(t, []godump.Named{
		{Name: "title", Field: stubField{}},
	}, []*godump.Definition{parent}, godump.Directives{})
	if got := names(child); !equalNames(got, []string{"name", "title"}) {
		t.Fatalf("order: %v", got)
	}
}

func TestCompose_OverrideKeepsPositionUsesDerivedField(t *testing.T) {
	parent := define(t, []godump.Named{
		{Name: "a", Field: stubField{id: 1}},
		{Name: "b", Field: stubField{id: 2}},
	}, nil, godump.Directives{})
	child := define(t, []godump.Named{
		{Name: "a", Field: stubField{id: 3}},
		{Name: "c", Field: stubField{id: 4}},
	}, []*godump.Definition{parent}, godump.Directives{})

	if got := names(child); !equalNames(got, []string{"a", "b", "c"}) {
		t.Fatalf("order: %v", got)
	}
	f, _ := child.Field("a")
	if f.(stubField).id != 3 {
		t.Fatalf("expected the overriding field object, got id=%d", f.(stubField).id)
	}
}

func TestCompose_FirstParentWins(t *testing.T) {
	a := define(t, []godump.Named{{Name: "x", Field: stubField{id: 1}}}, nil, godump.Directives{})
	b := define(t, []godump.Named{{Name: "x", Field: stubField{id: 2}}, {Name: "y", Field: stubField{}}}, nil, godump.Directives{})
	child := define(t, nil, []*godump.Definition{a, b}, godump.Directives{})

	f, _ := child.Field("x")
	if f.(stubField).id != 1 {
		t.Fatalf("expected first-listed parent's field, got id=%d", f.(stubField).id)
	}
	if got := names(child); !equalNames(got, []string{"x", "y"}) {
		t.Fatalf("order: %v", got)
	}
}

func TestCompose_ExcludeRemovesAfterMerge(t *testing.T) {
	parent := define(t, []godump.Named{
		{Name: "a", Field: stubField{}},
		{Name: "b", Field: stubField{}},
	}, nil, godump.Directives{})
	child := define(t, []godump.Named{
		{Name: "c", Field: stubField{}},
	}, []*godump.Definition{parent}, godump.Directives{Exclude: []string{"b"}})
	if got := names(child); !equalNames(got, []string{"a", "c"}) {
		t.Fatalf("order: %v", got)
	}
}

func TestCompose_OnlyKeepsExactlyNamed(t *testing.T) {
	def := define(t, []godump.Named{
		{Name: "a", Field: stubField{}},
		{Name: "b", Field: stubField{}},
		{Name: "c", Field: stubField{}},
	}, nil, godump.Directives{Only: []string{"c", "a"}})
	if got := names(def); !equalNames(got, []string{"c", "a"}) {
		t.Fatalf("order: %v", got)
	}
}

func TestCompose_ExcludeAndOnlyConflict(t *testing.T) {
	_, err := godump.NewDefinition("", []godump.Named{{Name: "a", Field: stubField{}}}, nil,
		godump.Directives{Exclude: []string{"a"}, Only: []string{"a"}})
	iss, ok := godump.AsIssues(err)
	if !ok || iss[0].Code != godump.CodeExcludeOnlyConflict {
		t.Fatalf("expected exclude_only_conflict, got %v", err)
	}
}

func TestCompose_UnknownDirectiveNameFails(t *testing.T) {
	for _, dir := range []godump.Directives{
		{Exclude: []string{"nope"}},
		{Only: []string{"nope"}},
	} {
		_, err := godump.NewDefinition("", []godump.Named{{Name: "a", Field: stubField{}}}, nil, dir)
		iss, ok := godump.AsIssues(err)
		if !ok || iss[0].Code != godump.CodeUnknownField {
			t.Fatalf("expected unknown_field, got %v", err)
		}
		if iss[0].Hint == "" {
			t.Fatalf("expected the offending name in the hint")
		}
	}
}

func TestCompose_IncludeDirectiveOverridesAndAppends(t *testing.T) {
	def := define(t, []godump.Named{
		{Name: "a", Field: stubField{id: 1}},
	}, nil, godump.Directives{Include: []godump.Named{
		{Name: "a", Field: stubField{id: 2}},
		{Name: "b", Field: stubField{id: 3}},
	}})
	if got := names(def); !equalNames(got, []string{"a", "b"}) {
		t.Fatalf("order: %v", got)
	}
	f, _ := def.Field("a")
	if f.(stubField).id != 2 {
		t.Fatalf("expected include to override, got id=%d", f.(stubField).id)
	}
}

func TestCompose_FieldOptionConflicts(t *testing.T) {
	cases := []struct {
		name string
		src  godump.Source
		code string
	}{
		{"attr and get", godump.Source{Attr: "x", Get: func(any) (any, error) { return nil, nil }}, godump.CodeOptionConflict},
		{"attr and val", godump.Source{Attr: "x", Val: 1, HasVal: true}, godump.CodeOptionConflict},
		{"nil const", godump.Source{HasVal: true}, godump.CodeInvalidConst},
	}
	for _, tc := range cases {
		_, err := godump.NewDefinition("", []godump.Named{{Name: "f", Field: stubField{src: tc.src}}}, nil, godump.Directives{})
		iss, ok := godump.AsIssues(err)
		if !ok || iss[0].Code != tc.code {
			t.Fatalf("%s: expected %s, got %v", tc.name, tc.code, err)
		}
	}
}

func TestCompose_QuotedFieldNameFails(t *testing.T) {
	_, err := godump.NewDefinition("", []godump.Named{{Name: `fo"o`, Field: stubField{}}}, nil, godump.Directives{})
	iss, ok := godump.AsIssues(err)
	if !ok || iss[0].Code != godump.CodeInvalidIdentifier {
		t.Fatalf("expected invalid_identifier, got %v", err)
	}
}
