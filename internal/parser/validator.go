package parser

import (
	"fmt"

	"github.com/jdfreder/godot-rust/internal/models"
)

// Validator checks one exported method against the export-eligibility
// rules and normalizes accepted signatures. Each method moves from parsed
// to exactly one of accepted or rejected; there are no retries.
type Validator struct{}

// NewValidator creates a signature validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateMethod either accepts the method, returning its normalized form
// with no diagnostics, or rejects it, returning the record unchanged plus
// the diagnostics that replace its registration. Sibling methods are
// unaffected either way.
func (v *Validator) ValidateMethod(em models.ExportMethod) (models.ExportMethod, []models.Diagnostic) {
	sig := em.Sig

	// The arity floor comes before every other rule: without self and
	// owner there is nothing meaningful to validate.
	if sig.Arity() < 2 {
		return em, []models.Diagnostic{{
			Message:  "exported methods must take self and owner as arguments",
			Location: sig.Pos,
		}}
	}

	if len(sig.TypeParams) > 0 {
		return em, []models.Diagnostic{{
			Message:  "type parameters not allowed in exported methods",
			Location: sig.Pos,
		}}
	}

	var diags []models.Diagnostic
	var optional *int
	for n := 0; n < sig.Arity(); n++ {
		param := sig.ParamAt(n)
		if param.Optional {
			if n < 2 {
				diags = append(diags, models.Diagnostic{
					Message:  "self or owner cannot be optional",
					Location: param.Pos,
				})
				continue
			}
			if optional == nil {
				optional = models.OptionalArgCount(0)
			}
			*optional++
		} else if optional != nil {
			diags = append(diags, models.Diagnostic{
				Message:  "cannot add required parameters after optional ones",
				Location: param.Pos,
			})
		}
	}
	if len(diags) > 0 {
		return em, diags
	}

	args := em.Args
	if optional != nil {
		args.OptionalArgs = optional
	}

	// Bound check against the final arity; the emitter performs the same
	// check again before writing a registration statement.
	if max := sig.Arity() - 2; args.OptionalCount() > max {
		return em, []models.Diagnostic{{
			Message:  fmt.Sprintf("there can be at most %d optional arguments, got %d", max, args.OptionalCount()),
			Location: sig.Pos,
		}}
	}

	return models.ExportMethod{Sig: normalizeSignature(sig), Args: args}, nil
}

// normalizeSignature produces the public form of an accepted method: no
// optional markers, no mutability qualifiers, no unsafety, and a stable
// synthetic name for every discard parameter so the generated wrapper can
// reference each one.
func normalizeSignature(sig models.Method) models.Method {
	normalized := sig
	normalized.Unsafe = false
	normalized.Receiver.Optional = false
	normalized.Receiver.Mut = false
	normalized.Params = append([]models.Param(nil), sig.Params...)
	for i := range normalized.Params {
		param := &normalized.Params[i]
		param.Optional = false
		param.Mut = false
		if param.Discard() {
			// Overall parameter index: the receiver is 0, declared
			// parameters start at 1.
			param.Name = fmt.Sprintf("___unused_arg_%d", i+1)
		}
	}
	return normalized
}
