package godump

import (
	"sync"

	"github.com/reoring/godump/i18n"
)

// Registry maps schema identifiers to definitions. Definitions register under
// their full dotted identifier; resolution also accepts the bare last segment
// when exactly one registered schema carries it.
//
// A Registry is populated during program setup (typically by dsl.Schema
// builders) and is read-mostly afterwards. All methods are safe for
// concurrent use.
type Registry struct {
	mu    sync.RWMutex
	full  map[string]*Definition
	short map[string][]string // last identifier segment -> full names
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		full:  map[string]*Definition{},
		short: map[string][]string{},
	}
}

// DefaultRegistry is the process-wide registry used when no explicit one is
// injected. Named definitions built via dsl register here by default.
var DefaultRegistry = NewRegistry()

// Register stores def under its identifier. Registering the same definition
// again is a no-op; a different definition under an occupied identifier is a
// configuration error, as is an identifier that is not a valid dotted name.
func (r *Registry) Register(def *Definition) error {
	name := def.Name()
	if !ValidIdentifier(name) {
		return Issues{{Path: "/", Code: CodeInvalidIdentifier, Message: i18n.T(CodeInvalidIdentifier, nil), Hint: "identifier: '" + name + "'"}}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.full[name]; ok {
		if prev == def {
			return nil
		}
		return Issues{{Path: "/", Code: CodeDuplicateSchema, Message: i18n.T(CodeDuplicateSchema, nil), Hint: "identifier: '" + name + "'"}}
	}
	r.full[name] = def
	s := shortName(name)
	r.short[s] = append(r.short[s], name)
	return nil
}

// Resolve returns the definition registered under name. The name may be the
// full identifier or its bare last segment; the latter fails with an
// ambiguity error when several schemas share it.
func (r *Registry) Resolve(name string) (*Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if def, ok := r.full[name]; ok {
		return def, nil
	}
	switch fulls := r.short[name]; len(fulls) {
	case 0:
		return nil, Issues{{Path: "/", Code: CodeSchemaNotFound, Message: i18n.T(CodeSchemaNotFound, nil), Hint: "identifier: '" + name + "'"}}
	case 1:
		return r.full[fulls[0]], nil
	default:
		return nil, Issues{{Path: "/", Code: CodeAmbiguousSchema, Message: i18n.T(CodeAmbiguousSchema, nil), Hint: "identifier: '" + name + "'", Params: map[string]any{"candidates": append([]string(nil), fulls...)}}}
	}
}

// Names returns all registered full identifiers, for diagnostics.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.full))
	for n := range r.full {
		out = append(out, n)
	}
	return out
}

// ValidIdentifier reports whether name is a stable, registrable schema
// identifier: one or more dot-separated segments, each a letter or
// underscore followed by letters, digits, or underscores. Empty names mark
// anonymous (unregistrable) definitions.
func ValidIdentifier(name string) bool {
	if name == "" {
		return false
	}
	start := 0
	for i := 0; i <= len(name); i++ {
		if i == len(name) || name[i] == '.' {
			if !validSegment(name[start:i]) {
				return false
			}
			start = i + 1
		}
	}
	return true
}

func validSegment(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z'):
		case '0' <= c && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func shortName(full string) string {
	for i := len(full) - 1; i >= 0; i-- {
		if full[i] == '.' {
			return full[i+1:]
		}
	}
	return full
}
