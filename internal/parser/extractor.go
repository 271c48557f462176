package parser

import (
	"github.com/jdfreder/godot-rust/internal/annotations"
	"github.com/jdfreder/godot-rust/internal/models"
)

// Extractor separates a class's annotated methods from plain ones. It is a
// pure transform: the input tree is never mutated, the rewritten tree and
// the export records are built fresh.
type Extractor struct {
	directives *annotations.DirectiveParser
}

// NewExtractor creates an extractor with its own directive parser
func NewExtractor() *Extractor {
	return &Extractor{
		directives: annotations.NewDirectiveParser(),
	}
}

// ExtractExports partitions the class's members into the rewritten
// implementation and the ordered exported-method records. Export markers
// are stripped from the rewritten tree whether or not their payload
// parsed; diagnostics from directive parsing carry the marker's source
// position. Both result sequences preserve declaration order.
func (e *Extractor) ExtractExports(class models.ClassImpl) (models.ClassImpl, models.ClassMethodExport, []models.Diagnostic) {
	rewritten := models.ClassImpl{
		ClassName:  class.ClassName,
		SourcePath: class.SourcePath,
		Methods:    make([]models.Method, 0, len(class.Methods)),
	}
	export := models.ClassMethodExport{ClassName: class.ClassName}
	var diags []models.Diagnostic

	for _, method := range class.Methods {
		if !method.Exported() {
			rewritten.Methods = append(rewritten.Methods, method)
			continue
		}

		// Only the first marker's payload is parsed; re-marking the same
		// method is flagged instead of silently ignored.
		marker := method.Markers[0]
		args, directiveDiags := e.directives.ParseDirective(marker.Payload, marker.Pos)
		diags = append(diags, directiveDiags...)

		for _, extra := range method.Markers[1:] {
			diags = append(diags, models.Diagnostic{
				Message:  "duplicate export marker",
				Location: extra.Pos,
			})
		}

		export.Methods = append(export.Methods, models.ExportMethod{
			Sig:  stripMarkers(method),
			Args: args,
		})
		rewritten.Methods = append(rewritten.Methods, cleanMethod(method))
	}

	return rewritten, export, diags
}

// stripMarkers removes the export markers but keeps the optional and
// mutability flags the validator still needs
func stripMarkers(method models.Method) models.Method {
	stripped := method
	stripped.Markers = nil
	stripped.Params = append([]models.Param(nil), method.Params...)
	return stripped
}

// cleanMethod is the rewritten form of an exported method: markers gone,
// optional and mutability flags dropped, unsafety removed
func cleanMethod(method models.Method) models.Method {
	clean := stripMarkers(method)
	clean.Unsafe = false
	clean.Receiver.Optional = false
	clean.Receiver.Mut = false
	for i := range clean.Params {
		clean.Params[i].Optional = false
		clean.Params[i].Mut = false
	}
	return clean
}
