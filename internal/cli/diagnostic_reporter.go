package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/fatih/color"

	"github.com/jdfreder/godot-rust/internal/models"
)

// DiagnosticReporter provides user-friendly reporting for compile
// diagnostics and run summaries
type DiagnosticReporter struct {
	verbose bool
}

// NewDiagnosticReporter creates a new diagnostic reporter
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose: verbose,
	}
}

// ReportDiagnostics prints every diagnostic to stderr in source order.
// Diagnostics from the same location keep their emission order.
func (r *DiagnosticReporter) ReportDiagnostics(diagnostics []models.Diagnostic) {
	if len(diagnostics) == 0 {
		return
	}

	ordered := make([]models.Diagnostic, len(diagnostics))
	copy(ordered, diagnostics)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i].Location, ordered[j].Location
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})

	red := color.New(color.FgRed, color.Bold)
	for _, diag := range ordered {
		red.Fprint(os.Stderr, "error: ")
		fmt.Fprintf(os.Stderr, "%s\n", diag.Error())
	}
	fmt.Fprintf(os.Stderr, "\n%d export error(s)\n", len(ordered))
}

// Debug prints debug information when verbose mode is enabled
func (r *DiagnosticReporter) Debug(format string, args ...interface{}) {
	if r.verbose {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}
