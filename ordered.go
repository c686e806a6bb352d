package godump

import (
	"bytes"

	gojson "github.com/goccy/go-json"
)

// Ordered is the output mapping used by dumpers in ordered mode: keys are
// unique and iteration (Keys/Values/Pairs, MarshalJSON) follows insertion
// order.
type Ordered struct {
	names []string
	vals  map[string]any
}

// Pair is one key/value entry of an Ordered mapping.
type Pair struct {
	Key   string
	Value any
}

// NewOrdered returns an empty Ordered mapping.
func NewOrdered() *Ordered {
	return &Ordered{vals: map[string]any{}}
}

// Set stores v under key, appending new keys and updating existing ones in
// place.
func (o *Ordered) Set(key string, v any) {
	if _, ok := o.vals[key]; !ok {
		o.names = append(o.names, key)
	}
	o.vals[key] = v
}

// Get returns the value stored under key.
func (o *Ordered) Get(key string) (any, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// Len returns the number of entries.
func (o *Ordered) Len() int { return len(o.names) }

// Keys returns the keys in insertion order. The slice is a copy.
func (o *Ordered) Keys() []string {
	return append([]string(nil), o.names...)
}

// Values returns the values in insertion order.
func (o *Ordered) Values() []any {
	out := make([]any, 0, len(o.names))
	for _, n := range o.names {
		out = append(out, o.vals[n])
	}
	return out
}

// Pairs returns the entries in insertion order.
func (o *Ordered) Pairs() []Pair {
	out := make([]Pair, 0, len(o.names))
	for _, n := range o.names {
		out = append(out, Pair{Key: n, Value: o.vals[n]})
	}
	return out
}

// Map returns a plain map copy, dropping the order.
func (o *Ordered) Map() map[string]any {
	out := make(map[string]any, len(o.vals))
	for k, v := range o.vals {
		out[k] = v
	}
	return out
}

// MarshalJSON emits a JSON object with keys in insertion order.
func (o *Ordered) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, n := range o.names {
		if i > 0 {
			b.WriteByte(',')
		}
		k, err := gojson.Marshal(n)
		if err != nil {
			return nil, err
		}
		b.Write(k)
		b.WriteByte(':')
		v, err := gojson.Marshal(o.vals[n])
		if err != nil {
			return nil, err
		}
		b.Write(v)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}
