// Package nativescript is the runtime registration surface for exported
// methods. Generated registration code builds Method wrappers and hands
// them to a ClassBuilder; how the engine dispatches the registered methods
// afterwards is not this package's concern.
package nativescript

import (
	"fmt"
	"reflect"
)

// RpcMode mirrors the compile-time remote-call policy at runtime
type RpcMode int

const (
	RpcDisabled RpcMode = iota
	RpcRemote
	RpcRemoteSync
	RpcMaster
	RpcPuppet
	RpcMasterSync
	RpcPuppetSync
)

// String returns the canonical mode name
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

// ParamInfo describes one parameter of an exported method
type ParamInfo struct {
	Name string
	Type string
}

// MethodSignature is the exported shape of one method: the required prefix
// always starts with the self and owner parameters, the optional suffix
// may be omitted by callers.
type MethodSignature struct {
	Name     string
	Required []ParamInfo
	Optional []ParamInfo
	Returns  string // empty for methods without results
}

// Arity returns the total parameter count
func (s MethodSignature) Arity() int {
	return len(s.Required) + len(s.Optional)
}

// Method is a dispatch-compatible wrapper around one exported Go method
type Method struct {
	fn  reflect.Value
	sig MethodSignature
}

// WrapMethod builds a Method from a method expression and its exported
// signature. fn must be a func whose parameter count matches the
// signature's arity; generated code always satisfies this, hand-written
// callers that do not will panic here rather than misbehave at dispatch
// time.
func WrapMethod(fn any, sig MethodSignature) Method {
	value := reflect.ValueOf(fn)
	if value.Kind() != reflect.Func {
		panic(fmt.Sprintf("nativescript: WrapMethod(%s): fn is %s, not a func", sig.Name, value.Kind()))
	}
	if got := value.Type().NumIn(); got != sig.Arity() {
		panic(fmt.Sprintf("nativescript: WrapMethod(%s): func takes %d parameters, signature declares %d", sig.Name, got, sig.Arity()))
	}
	return Method{fn: value, sig: sig}
}

// Name returns the exported method name
func (m Method) Name() string {
	return m.sig.Name
}

// Signature returns the exported signature
func (m Method) Signature() MethodSignature {
	return m.sig
}

// Func exposes the wrapped function value for the engine's dispatcher
func (m Method) Func() reflect.Value {
	return m.fn
}

// NativeClassMethods is implemented by generated code for every class with
// at least one exported method
type NativeClassMethods interface {
	RegisterExportedMethods(builder *ClassBuilder)
}

// Object is the owner handle exported methods receive as their first
// declared parameter.
type Object struct {
	name string
}

// NewObject creates an owner handle with the given node name
func NewObject(name string) *Object {
	return &Object{name: name}
}

// Name returns the node name
func (o *Object) Name() string {
	return o.name
}
