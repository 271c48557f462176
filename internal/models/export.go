package models

// ExportArgs is the parsed configuration of one export directive.
// OptionalArgs is nil until some parameter is marked optional; once the
// directive has passed validation the value is never mutated again.
type ExportArgs struct {
	OptionalArgs *int
	RpcMode      RpcMode
}

// OptionalCount returns the optional-parameter count, zero when no
// parameter was marked
func (a ExportArgs) OptionalCount() int {
	if a.OptionalArgs == nil {
		return 0
	}
	return *a.OptionalArgs
}

// Equal reports whether two directives carry the same configuration
func (a ExportArgs) Equal(b ExportArgs) bool {
	if a.RpcMode != b.RpcMode {
		return false
	}
	if (a.OptionalArgs == nil) != (b.OptionalArgs == nil) {
		return false
	}
	return a.OptionalArgs == nil || *a.OptionalArgs == *b.OptionalArgs
}

// OptionalArgCount builds the pointer form used by ExportArgs
func OptionalArgCount(n int) *int {
	return &n
}

// ExportMethod pairs a method signature with its parsed directive. One
// instance exists per annotated method; the validator and emitter read it,
// they never write it.
type ExportMethod struct {
	Sig  Method
	Args ExportArgs
}

// ClassMethodExport is the root aggregate for one implementation block.
// Methods preserve declaration order end to end so generated registration
// code is deterministic and diffable.
type ClassMethodExport struct {
	ClassName string
	Methods   []ExportMethod
}
