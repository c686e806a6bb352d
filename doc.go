package godump

// Package godump turns application objects into plain, serialization-ready
// values (nested maps and slices of primitives) driven by declarative,
// composable schemas. It provides:
//
// - Schema definitions composed from own fields, parent schemas, and
//   include/exclude/only directives, with deterministic field order
// - A process-wide Registry resolving schema identifiers by name, so schemas
//   can reference each other before both exist (forward and circular refs)
// - Dumper instances that bind each field's accessor and pack step once and
//   then marshal single objects or collections
// - A stable error model via Issues (JSON Pointer, code, message)
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations
//   under internal/.
// - Place the declaration DSL under dsl/, the field catalog under fields/,
//   and the CLI under cmd/godump.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	person := dsl.Schema("library.PersonSchema").
//		Field("first_name", fields.String()).
//		Field("last_name", fields.String()).
//		Field("date_of_birth", fields.Date()).
//		MustBuild()
//
//	d, err := godump.New(person, godump.DumpOpt{})
//	out, err := d.Dump(hemingway)
//	// out => map[string]any{"first_name": "Ernest", ...}
//
// Errors fall into two families: configuration errors surface eagerly while
// building definitions and dumpers; resolution errors (unknown identifiers,
// missing attributes, pack failures) surface on the first dump that needs
// them. Callers must expect the latter only at dump time.
