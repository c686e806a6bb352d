package godump

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention).
//
// Configuration codes surface at schema definition or dumper construction
// time. Dump codes surface when a lazy path first executes (first resolution
// of a linked field, or a dump call).
const (
	// Configuration codes.
	CodeExcludeOnlyConflict = "exclude_only_conflict"
	CodeUnknownField        = "unknown_field"
	CodeDuplicateField      = "duplicate_field"
	CodeOptionConflict      = "option_conflict"
	CodeInvalidConst        = "invalid_const"
	CodeInvalidIdentifier   = "invalid_identifier"
	CodeDuplicateSchema     = "duplicate_schema"
	CodeInvalidType         = "invalid_type"

	// Dump codes.
	CodeSchemaNotFound   = "schema_not_found"
	CodeAmbiguousSchema  = "ambiguous_schema"
	CodeMissingAttribute = "missing_attribute"
	CodePackError        = "pack_error"
)

// Issue represents a single configuration or dump error entry.
type Issue struct {
	Path    string // JSON Pointer into the output shape (for example: /author/name).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, offending names, etc.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"schema":"PersonSchema"})
	// for i18n and observability.
	Params map[string]any
}

// Issues is a collection of errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. missing_attribute at /born
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// rebase prefixes child issue paths with base so that nested dump errors
// point into the embedding output shape.
func rebase(base string, child Issues) Issues {
	out := make(Issues, 0, len(child))
	for _, it := range child {
		p := it.Path
		switch {
		case p == "" || p == "/":
			p = base
		case p[0] == '/':
			p = base + p
		default:
			p = base + "/" + p
		}
		out = append(out, Issue{Path: p, Code: it.Code, Message: it.Message, Hint: it.Hint, Cause: it.Cause, Params: it.Params})
	}
	return out
}

// issuesFromErr converts an error into Issues, wrapping non-Issues with code.
func issuesFromErr(path, code string, err error) Issues {
	if err == nil {
		return nil
	}
	if iss, ok := AsIssues(err); ok {
		return rebase(path, iss)
	}
	return Issues{{Path: path, Code: code, Message: err.Error(), Cause: err}}
}
