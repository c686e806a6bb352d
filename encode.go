package godump

import (
	gojson "github.com/goccy/go-json"
)

// EncodeJSON marshals a dump result (or any JSON-encodable value) to bytes.
// *Ordered values keep their key order.
func EncodeJSON(v any) ([]byte, error) {
	return gojson.Marshal(v)
}

// EncodeJSONIndent is EncodeJSON with indentation, for CLI and debug output.
func EncodeJSONIndent(v any, indent string) ([]byte, error) {
	return gojson.MarshalIndent(v, "", indent)
}

// DumpJSON dumps v and encodes the result as JSON in one step.
func (d *Dumper) DumpJSON(v any) ([]byte, error) {
	out, err := d.Dump(v)
	if err != nil {
		return nil, err
	}
	return gojson.Marshal(out)
}
