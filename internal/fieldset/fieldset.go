// Package fieldset provides the ordered name/value collection backing schema
// composition: overriding an existing name keeps its position, new names
// append. This mirrors how derived schemas replace inherited fields without
// disturbing field order.
package fieldset

import "sort"

// Set is an insertion-ordered map. The zero value is not usable; call New.
type Set[V any] struct {
	names []string
	vals  map[string]V
}

// New returns an empty Set.
func New[V any]() *Set[V] {
	return &Set[V]{vals: map[string]V{}}
}

// Set stores v under name. An existing name keeps its position; a new name
// is appended.
func (s *Set[V]) Set(name string, v V) {
	if _, ok := s.vals[name]; !ok {
		s.names = append(s.names, name)
	}
	s.vals[name] = v
}

// Get returns the value stored under name.
func (s *Set[V]) Get(name string) (V, bool) {
	v, ok := s.vals[name]
	return v, ok
}

// Has reports whether name is present.
func (s *Set[V]) Has(name string) bool {
	_, ok := s.vals[name]
	return ok
}

// Delete removes name, closing the gap in the order. Unknown names are
// ignored.
func (s *Set[V]) Delete(name string) {
	if _, ok := s.vals[name]; !ok {
		return
	}
	delete(s.vals, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
}

// Len returns the number of entries.
func (s *Set[V]) Len() int { return len(s.names) }

// Names returns the names in order. The slice is a copy.
func (s *Set[V]) Names() []string {
	return append([]string(nil), s.names...)
}

// Clone returns an independent copy sharing the stored values.
func (s *Set[V]) Clone() *Set[V] {
	c := &Set[V]{
		names: append([]string(nil), s.names...),
		vals:  make(map[string]V, len(s.vals)),
	}
	for k, v := range s.vals {
		c.vals[k] = v
	}
	return c
}

// Only restricts the set to the given names, reordering entries to match
// keep. Callers must have verified the names exist (see Missing).
func (s *Set[V]) Only(keep []string) {
	vals := make(map[string]V, len(keep))
	names := make([]string, 0, len(keep))
	for _, n := range keep {
		if v, ok := s.vals[n]; ok {
			if _, dup := vals[n]; !dup {
				names = append(names, n)
				vals[n] = v
			}
		}
	}
	s.names = names
	s.vals = vals
}

// Missing returns the given names not present in the set, sorted for stable
// error reporting.
func (s *Set[V]) Missing(names []string) []string {
	var out []string
	for _, n := range names {
		if !s.Has(n) {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}

// Intersect returns the names common to a and b, sorted.
func Intersect(a, b []string) []string {
	in := make(map[string]struct{}, len(a))
	for _, n := range a {
		in[n] = struct{}{}
	}
	var out []string
	seen := map[string]struct{}{}
	for _, n := range b {
		if _, ok := in[n]; ok {
			if _, dup := seen[n]; !dup {
				out = append(out, n)
				seen[n] = struct{}{}
			}
		}
	}
	sort.Strings(out)
	return out
}
