package models

import "fmt"

// RpcMode represents how an exported method may be invoked across the
// networked object-replication boundary
type RpcMode int

// Modes are declared in a fixed order; the zero value is the default.
const (
	RpcDisabled RpcMode = iota
	RpcRemote
	RpcRemoteSync
	RpcMaster
	RpcPuppet
	RpcMasterSync
	RpcPuppetSync
)

// String returns the directive-literal spelling of the mode
func (m RpcMode) String() string {
	switch m {
	case RpcDisabled:
		return "disabled"
	case RpcRemote:
		return "remote"
	case RpcRemoteSync:
		return "remote_sync"
	case RpcMaster:
		return "master"
	case RpcPuppet:
		return "puppet"
	case RpcMasterSync:
		return "master_sync"
	case RpcPuppetSync:
		return "puppet_sync"
	default:
		return "unknown"
	}
}

// GoName returns the nativescript constant the generated code references
func (m RpcMode) GoName() string {
	switch m {
	case RpcDisabled:
		return "nativescript.RpcDisabled"
	case RpcRemote:
		return "nativescript.RpcRemote"
	case RpcRemoteSync:
		return "nativescript.RpcRemoteSync"
	case RpcMaster:
		return "nativescript.RpcMaster"
	case RpcPuppet:
		return "nativescript.RpcPuppet"
	case RpcMasterSync:
		return "nativescript.RpcMasterSync"
	case RpcPuppetSync:
		return "nativescript.RpcPuppetSync"
	default:
		return "nativescript.RpcDisabled"
	}
}

// ParseRpcMode converts a directive string value to an RpcMode.
// Matching is exact and case-sensitive; the boolean reports whether the
// value named a known mode.
func ParseRpcMode(s string) (RpcMode, bool) {
	switch s {
	case "disabled":
		return RpcDisabled, true
	case "remote":
		return RpcRemote, true
	case "remote_sync":
		return RpcRemoteSync, true
	case "master":
		return RpcMaster, true
	case "puppet":
		return RpcPuppet, true
	case "master_sync":
		return RpcMasterSync, true
	case "puppet_sync":
		return RpcPuppetSync, true
	default:
		return RpcDisabled, false
	}
}

// SourceLocation represents the position of a token in source code
type SourceLocation struct {
	File   string // file path
	Line   int    // line number (1-based)
	Column int    // column number (1-based)
}

// String renders the location in the standard file:line:col form
func (l SourceLocation) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Diagnostic is one compile-time message bound to a source location.
// Diagnostics accumulate during the pass; they never abort it.
type Diagnostic struct {
	Message  string         // human-readable message
	Location SourceLocation // where the offending token is
}

// Error renders the diagnostic the way the host tool reports compile errors
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.Location, d.Message)
}
