package models

// MarkerKind identifies which recognized marker a source span belongs to
type MarkerKind int

const (
	MarkerExport MarkerKind = iota
	MarkerOpt
	MarkerMut
	MarkerUnsafe
)

// MarkerSpan records the byte range of one recognized marker inside a
// source file. Strip mode deletes exactly these ranges, leaving all other
// formatting untouched.
type MarkerSpan struct {
	Kind  MarkerKind
	File  string
	Start int // byte offset of the first marker byte
	End   int // byte offset one past the last marker byte
}

// ExportMarker is one export marker line found on a method's doc comment
type ExportMarker struct {
	Raw     string         // full comment text, including the // prefix
	Payload string         // text after the marker name, empty for a bare marker
	Pos     SourceLocation // position of the marker line
}

// Param represents one parameter binding in a method signature
type Param struct {
	Name     string // binding name; "_" for a discard parameter
	Type     string // rendered type expression
	Optional bool   // carries the optional marker
	Mut      bool   // carries the mutability qualifier
	Pos      SourceLocation
}

// Discard reports whether the parameter uses the blank identifier
func (p Param) Discard() bool {
	return p.Name == "_" || p.Name == ""
}

// Method represents one method declaration on a class. The receiver is
// parameter index 0 and the first declared parameter (the owner) is
// parameter index 1; Arity counts both.
type Method struct {
	Name       string
	Receiver   Param
	Params     []Param
	Results    []string       // rendered result types, in order
	TypeParams []string       // type parameter names on the receiver or declaration
	Unsafe     bool           // carries the unsafety qualifier
	Markers    []ExportMarker // export markers found on the doc comment
	Pos        SourceLocation // position of the method name
}

// Arity returns the total parameter count including the receiver
func (m Method) Arity() int {
	return 1 + len(m.Params)
}

// ParamAt returns the parameter at the given overall index, where index 0
// is the receiver
func (m Method) ParamAt(n int) Param {
	if n == 0 {
		return m.Receiver
	}
	return m.Params[n-1]
}

// Exported reports whether the method carries at least one export marker
func (m Method) Exported() bool {
	return len(m.Markers) > 0
}

// ClassImpl is the implementation block of one class: the type name plus
// its methods in declaration order.
type ClassImpl struct {
	ClassName  string
	SourcePath string // file the type's methods were collected from
	Methods    []Method
}
