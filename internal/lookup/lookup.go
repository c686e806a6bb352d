// Package lookup resolves attribute names against arbitrary source values:
// map keys for map-like objects, exported struct fields otherwise. Names
// match exactly first, then by canonical fold (case- and underscore-
// insensitive), so a schema field "first_name" finds a struct field
// FirstName.
package lookup

import (
	"fmt"
	"reflect"
	"strings"
)

// Attr extracts the attribute named name from obj.
func Attr(obj any, name string) (any, error) {
	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, fmt.Errorf("cannot read attribute %q from nil %s", name, v.Type())
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Map:
		return mapAttr(v, name)
	case reflect.Struct:
		return structAttr(v, name)
	default:
		return nil, fmt.Errorf("%T has no attributes", obj)
	}
}

func mapAttr(v reflect.Value, name string) (any, error) {
	if v.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("%s is not keyed by string", v.Type())
	}
	if mv := v.MapIndex(reflect.ValueOf(name).Convert(v.Type().Key())); mv.IsValid() {
		return mv.Interface(), nil
	}
	want := Fold(name)
	iter := v.MapRange()
	for iter.Next() {
		if Fold(iter.Key().String()) == want {
			return iter.Value().Interface(), nil
		}
	}
	return nil, fmt.Errorf("%s has no key %q", v.Type(), name)
}

func structAttr(v reflect.Value, name string) (any, error) {
	t := v.Type()
	if f, ok := t.FieldByName(name); ok && f.IsExported() {
		return v.FieldByIndex(f.Index).Interface(), nil
	}
	want := Fold(name)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.IsExported() && Fold(f.Name) == want {
			return v.Field(i).Interface(), nil
		}
	}
	return nil, fmt.Errorf("%s has no field %q", t, name)
}

// Fold canonicalizes a name for matching: lower-cased with underscores
// removed.
func Fold(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_':
		case 'A' <= c && c <= 'Z':
			b.WriteByte(c + ('a' - 'A'))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
