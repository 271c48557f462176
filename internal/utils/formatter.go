package utils

import (
	"fmt"
	"go/format"
	"go/parser"
	"go/token"
	"os"

	"golang.org/x/tools/imports"
)

// FormatGeneratedFile formats generated Go source the way goimports
// would, deduplicating and sorting imports, with gofmt as fallback when
// import processing fails.
func FormatGeneratedFile(filename string, source string) (string, error) {
	formatted, err := imports.Process(filename, []byte(source), nil)
	if err == nil {
		return string(formatted), nil
	}

	fallback, fmtErr := format.Source([]byte(source))
	if fmtErr == nil {
		return string(fallback), nil
	}

	// Neither formatter accepted the source; report the parse problem so
	// the template bug is visible, and keep the raw output for inspection.
	fset := token.NewFileSet()
	if _, parseErr := parser.ParseFile(fset, filename, source, parser.ParseComments); parseErr != nil {
		return source, fmt.Errorf("generated code is not valid Go: %w", parseErr)
	}
	return source, err
}

// WriteGeneratedFile formats and writes one generated file
func WriteGeneratedFile(filename string, source string) error {
	formatted, err := FormatGeneratedFile(filename, source)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, []byte(formatted), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}

// ValidateGoCode checks if the provided code is valid Go syntax
func ValidateGoCode(code string) error {
	fset := token.NewFileSet()
	_, err := parser.ParseFile(fset, "", code, parser.ParseComments)
	return err
}
