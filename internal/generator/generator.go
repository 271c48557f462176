// Package generator lowers validated export records into the generated
// registration file.
package generator

import (
	"fmt"
	"strings"

	"github.com/jdfreder/godot-rust/internal/models"
	"github.com/jdfreder/godot-rust/internal/templates"
)

// MethodResult is the terminal state of one exported method: accepted
// with a normalized signature, or rejected with the diagnostics that
// replace its registration.
type MethodResult struct {
	Method models.ExportMethod // normalized when accepted, as-extracted when rejected
	Diags  []models.Diagnostic
}

// Accepted reports whether the method survived validation
func (r MethodResult) Accepted() bool {
	return len(r.Diags) == 0
}

// ClassExport pairs a class with its per-method outcomes, in declaration
// order
type ClassExport struct {
	ClassName string
	Results   []MethodResult
}

// Generator emits registration code for validated exports
type Generator struct{}

// NewGenerator creates a code generator instance
func NewGenerator() *Generator {
	return &Generator{}
}

// GenerateRegistration renders the registration file for one package. Each
// accepted method becomes one builder statement, each rejected method an
// error marker at its original position; statement order is declaration
// order. The optional-count bound is checked once more against the final
// arity here; a violation demotes the method to an error marker and the
// new diagnostic is returned alongside the output.
func (g *Generator) GenerateRegistration(packageName string, classes []ClassExport) (string, []models.Diagnostic, error) {
	if len(classes) == 0 {
		return "", nil, nil
	}

	data := templates.FileData{PackageName: packageName}
	var emitted []models.Diagnostic

	for _, class := range classes {
		block := templates.ClassData{
			ClassName: class.ClassName,
			Receiver:  classReceiver(class),
			Assert:    len(classTypeParams(class)) == 0,
		}

		for _, result := range class.Results {
			if !result.Accepted() {
				block.Statements = append(block.Statements, errorStatement(result.Diags))
				continue
			}

			if diag, ok := checkOptionalBound(result.Method); !ok {
				emitted = append(emitted, diag)
				block.Statements = append(block.Statements, errorStatement([]models.Diagnostic{diag}))
				continue
			}

			block.Statements = append(block.Statements, templates.StatementData{
				Method: buildMethodData(result.Method),
			})
		}

		data.Classes = append(data.Classes, block)
	}

	content, err := templates.RenderRegistrationFile(data)
	if err != nil {
		return "", emitted, fmt.Errorf("failed to render registration file: %w", err)
	}
	return content, emitted, nil
}

// checkOptionalBound re-validates the optional count against the final
// parameter arity
func checkOptionalBound(em models.ExportMethod) (models.Diagnostic, bool) {
	max := em.Sig.Arity() - 2
	if count := em.Args.OptionalCount(); count > max {
		return models.Diagnostic{
			Message:  fmt.Sprintf("there can be at most %d optional arguments, got %d", max, count),
			Location: em.Sig.Pos,
		}, false
	}
	return models.Diagnostic{}, true
}

func errorStatement(diags []models.Diagnostic) templates.StatementData {
	stmt := templates.StatementData{}
	for _, d := range diags {
		stmt.Errors = append(stmt.Errors, fmt.Sprintf("%s (%s)", d.Message, d.Location))
	}
	return stmt
}

// buildMethodData partitions the method's parameters into the required
// prefix and optional suffix and renders the pieces the template needs
func buildMethodData(em models.ExportMethod) *templates.MethodData {
	sig := em.Sig
	requiredCount := sig.Arity() - em.Args.OptionalCount()

	params := make([]templates.ParamData, 0, sig.Arity())
	receiverName := sig.Receiver.Name
	if sig.Receiver.Discard() {
		receiverName = "self"
	}
	params = append(params, templates.ParamData{Name: receiverName, Type: sig.Receiver.Type})
	for _, p := range sig.Params {
		params = append(params, templates.ParamData{Name: p.Name, Type: p.Type})
	}

	return &templates.MethodData{
		MethodName: sig.Name,
		MethodExpr: methodExpr(sig),
		Required:   params[:requiredCount],
		Optional:   params[requiredCount:],
		Returns:    renderReturns(sig.Results),
		RpcMode:    em.Args.RpcMode.GoName(),
	}
}

// methodExpr renders the method expression the wrapper is built from; the
// receiver becomes the wrapped function's first parameter.
func methodExpr(sig models.Method) string {
	recv := sig.Receiver.Type
	if strings.HasPrefix(recv, "*") {
		return fmt.Sprintf("(%s).%s", recv, sig.Name)
	}
	return fmt.Sprintf("%s.%s", recv, sig.Name)
}

func renderReturns(results []string) string {
	switch len(results) {
	case 0:
		return ""
	case 1:
		return results[0]
	default:
		return "(" + strings.Join(results, ", ") + ")"
	}
}

// classReceiver renders the receiver type of the generated registration
// method, carrying the class's type parameters when it has any
func classReceiver(class ClassExport) string {
	name := class.ClassName
	if tp := classTypeParams(class); len(tp) > 0 {
		name += "[" + strings.Join(tp, ", ") + "]"
	}
	return "*" + name
}

func classTypeParams(class ClassExport) []string {
	for _, result := range class.Results {
		if len(result.Method.Sig.TypeParams) > 0 {
			return result.Method.Sig.TypeParams
		}
	}
	return nil
}
