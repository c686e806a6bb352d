package lookup_test

import (
	"strings"
	"testing"

	"github.com/reoring/godump/internal/lookup"
)

type knight struct {
	FirstName string
	LastName  string
	hp        int
}

func TestAttr_StructExact(t *testing.T) {
	got, err := lookup.Attr(knight{FirstName: "Galahad"}, "FirstName")
	if err != nil || got != "Galahad" {
		t.Fatalf("got %v, %v", got, err)
	}
}

func TestAttr_StructFold(t *testing.T) {
	got, err := lookup.Attr(knight{LastName: "Bedevere"}, "last_name")
	if err != nil || got != "Bedevere" {
		t.Fatalf("got %v, %v", got, err)
	}
}

func TestAttr_StructPointer(t *testing.T) {
	got, err := lookup.Attr(&knight{FirstName: "Robin"}, "first_name")
	if err != nil || got != "Robin" {
		t.Fatalf("got %v, %v", got, err)
	}
}

func TestAttr_UnexportedField(t *testing.T) {
	if _, err := lookup.Attr(knight{hp: 3}, "hp"); err == nil {
		t.Fatalf("unexported fields must not be reachable")
	}
}

func TestAttr_Map(t *testing.T) {
	obj := map[string]any{"first_name": "Tim", "Last_Name": "Enchanter"}
	if got, _ := lookup.Attr(obj, "first_name"); got != "Tim" {
		t.Fatalf("exact key: got %v", got)
	}
	if got, _ := lookup.Attr(obj, "last_name"); got != "Enchanter" {
		t.Fatalf("folded key: got %v", got)
	}
	if _, err := lookup.Attr(obj, "shrubbery"); err == nil {
		t.Fatalf("expected missing-key error")
	}
}

func TestAttr_MapCustomKeyType(t *testing.T) {
	type key string
	got, err := lookup.Attr(map[key]int{"n": 7}, "n")
	if err != nil || got != 7 {
		t.Fatalf("got %v, %v", got, err)
	}
}

func TestAttr_NilPointer(t *testing.T) {
	var k *knight
	_, err := lookup.Attr(k, "first_name")
	if err == nil || !strings.Contains(err.Error(), "nil") {
		t.Fatalf("got %v", err)
	}
}

func TestAttr_Scalar(t *testing.T) {
	if _, err := lookup.Attr(42, "x"); err == nil {
		t.Fatalf("scalars have no attributes")
	}
}

func TestFold(t *testing.T) {
	for in, want := range map[string]string{
		"FirstName":  "firstname",
		"first_name": "firstname",
		"HTTPPort":   "httpport",
		"":           "",
	} {
		if got := lookup.Fold(in); got != want {
			t.Fatalf("Fold(%q) = %q, want %q", in, got, want)
		}
	}
}
