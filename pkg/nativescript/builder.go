package nativescript

import (
	"github.com/sirupsen/logrus"
)

// ScriptMethod is one registered method together with its export
// configuration
type ScriptMethod struct {
	Name    string
	Method  Method
	RpcMode RpcMode
}

// ClassBuilder collects the exported methods of one class. Registration
// order is insertion order and is preserved by Methods.
type ClassBuilder struct {
	className string
	methods   []ScriptMethod
	index     map[string]int
}

// NewClassBuilder creates a builder for the named class
func NewClassBuilder(className string) *ClassBuilder {
	return &ClassBuilder{
		className: className,
		index:     make(map[string]int),
	}
}

// ClassName returns the class this builder registers methods for
func (b *ClassBuilder) ClassName() string {
	return b.className
}

// BuildMethod starts the registration of one method. The registration is
// not visible until DoneStateless is called.
func (b *ClassBuilder) BuildMethod(name string, method Method) *MethodRegistration {
	return &MethodRegistration{
		builder: b,
		entry:   ScriptMethod{Name: name, Method: method},
	}
}

// Methods returns the registered methods in registration order
func (b *ClassBuilder) Methods() []ScriptMethod {
	out := make([]ScriptMethod, len(b.methods))
	copy(out, b.methods)
	return out
}

// Method looks up a registered method by name
func (b *ClassBuilder) Method(name string) (ScriptMethod, bool) {
	i, ok := b.index[name]
	if !ok {
		return ScriptMethod{}, false
	}
	return b.methods[i], true
}

func (b *ClassBuilder) register(entry ScriptMethod) {
	if _, exists := b.index[entry.Name]; exists {
		// First registration wins; a duplicate is a caller bug worth
		// surfacing but not worth breaking the class over.
		logrus.Warnf("nativescript: class %s: method %q registered more than once, keeping the first registration", b.className, entry.Name)
		return
	}
	b.index[entry.Name] = len(b.methods)
	b.methods = append(b.methods, entry)
}

// MethodRegistration is the in-flight registration of one method
type MethodRegistration struct {
	builder *ClassBuilder
	entry   ScriptMethod
	done    bool
}

// WithRpcMode sets the remote-call policy. Calling it after DoneStateless
// has no effect.
func (r *MethodRegistration) WithRpcMode(mode RpcMode) *MethodRegistration {
	if r.done {
		logrus.Warnf("nativescript: class %s: WithRpcMode(%s) after DoneStateless on %q ignored", r.builder.className, mode, r.entry.Name)
		return r
	}
	r.entry.RpcMode = mode
	return r
}

// DoneStateless finalizes the registration. The registered entry can no
// longer be modified through this handle.
func (r *MethodRegistration) DoneStateless() {
	if r.done {
		logrus.Warnf("nativescript: class %s: DoneStateless called twice on %q", r.builder.className, r.entry.Name)
		return
	}
	r.done = true
	r.builder.register(r.entry)
}
