package godump

// Source tells the dump engine where a field's raw value comes from. At most
// one of Get, Val (flagged by HasVal), and Attr may be set; when none is set
// the engine looks up an attribute named like the field's output name.
type Source struct {
	// Attr names the source attribute when it differs from the output name.
	Attr string
	// Get extracts the raw value from the source object, overriding any
	// attribute lookup.
	Get func(obj any) (any, error)
	// Val is a constant raw value used for every object. HasVal
	// distinguishes an intentional nil constant request (rejected at build
	// time) from "no constant".
	Val    any
	HasVal bool
}

// Field is one output entry of a schema: where its raw value comes from.
// Conversion and configuration checks are optional capabilities, declared by
// additionally implementing Packer, RegistryPacker, or ConfigChecker.
type Field interface {
	Source() Source
}

// Packer converts an extracted raw value into its output form. Fields
// without a pack step pass raw values through unchanged.
type Packer interface {
	Pack(val any) (any, error)
}

// RegistryPacker is a pack step that needs a Registry, implemented by linked
// fields whose nested schema resolves by identifier on first use. It takes
// precedence over Packer when both are implemented.
type RegistryPacker interface {
	PackWith(reg *Registry, val any) (any, error)
}

// ConfigChecker lets a field surface construction-time configuration errors
// when the surrounding schema definition is built, keeping field constructors
// chainable.
type ConfigChecker interface {
	CheckConfig() error
}

// Named pairs an output name with its Field. Slices of Named preserve
// declaration order, which is significant for composition and ordered output.
type Named struct {
	Name  string
	Field Field
}
