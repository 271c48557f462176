// Package templates holds the Go templates the registration emitter
// renders generated files from.
package templates

import (
	"bytes"
	"text/template"
)

// RuntimeImport is the package generated registration code depends on
const RuntimeImport = "github.com/jdfreder/godot-rust/pkg/nativescript"

// ParamData is one parameter entry of a generated method signature
type ParamData struct {
	Name string
	Type string
}

// MethodData describes one accepted method's registration statement
type MethodData struct {
	MethodName string
	MethodExpr string // method expression, e.g. (*Enemy).TakeDamage
	Required   []ParamData
	Optional   []ParamData
	Returns    string
	RpcMode    string // rendered runtime constant
}

// StatementData is one entry of a registration procedure: either a
// registration statement or the error markers replacing a rejected method
type StatementData struct {
	Method *MethodData
	Errors []string
}

// ClassData describes the registration procedure of one class
type ClassData struct {
	ClassName  string
	Receiver   string // receiver type, e.g. *Enemy
	Assert     bool   // emit the interface assertion (not for generic classes)
	Statements []StatementData
}

// FileData is everything one generated registration file contains
type FileData struct {
	PackageName   string
	RuntimeImport string
	Classes       []ClassData
}

var registrationFile = template.Must(template.New("registration_file").Parse(
	`// Code generated by exportgen. DO NOT EDIT.

package {{.PackageName}}

import (
	"{{.RuntimeImport}}"
)
{{range .Classes}}
{{if .Assert}}var _ nativescript.NativeClassMethods = ({{.Receiver}})(nil)

{{end}}// RegisterExportedMethods registers {{.ClassName}}'s exported methods with
// the class builder.
func ({{.Receiver}}) RegisterExportedMethods(builder *nativescript.ClassBuilder) {
{{- range .Statements}}
{{- if .Method}}
	{
		method := nativescript.WrapMethod({{.Method.MethodExpr}}, nativescript.MethodSignature{
			Name: "{{.Method.MethodName}}",
			Required: []nativescript.ParamInfo{
{{- range .Method.Required}}
				{Name: "{{.Name}}", Type: "{{.Type}}"},
{{- end}}
			},
{{- if .Method.Optional}}
			Optional: []nativescript.ParamInfo{
{{- range .Method.Optional}}
				{Name: "{{.Name}}", Type: "{{.Type}}"},
{{- end}}
			},
{{- end}}
{{- if .Method.Returns}}
			Returns: "{{.Method.Returns}}",
{{- end}}
		})
		builder.BuildMethod("{{.Method.MethodName}}", method).
			WithRpcMode({{.Method.RpcMode}}).
			DoneStateless()
	}
{{- else}}
{{- range .Errors}}
	// export error: {{.}}
{{- end}}
{{- end}}
{{- end}}
}
{{end}}`))

// RenderRegistrationFile renders the registration file for one package
func RenderRegistrationFile(data FileData) (string, error) {
	if data.RuntimeImport == "" {
		data.RuntimeImport = RuntimeImport
	}
	var buf bytes.Buffer
	if err := registrationFile.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
