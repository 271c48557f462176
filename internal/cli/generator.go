package cli

import (
	"fmt"
	"path/filepath"

	"github.com/jdfreder/godot-rust/internal/generator"
	"github.com/jdfreder/godot-rust/internal/models"
	"github.com/jdfreder/godot-rust/internal/parser"
	"github.com/jdfreder/godot-rust/internal/utils"
)

// GeneratedFileName is the registration file written into each package
const GeneratedFileName = "autogen_register.go"

// Summary contains statistics about one generation run
type Summary struct {
	PackagesProcessed int
	ClassesFound      int
	MethodsExported   int
	MethodsRejected   int
	GeneratedFiles    []string
	Diagnostics       []models.Diagnostic
}

// Generator orchestrates the full pass: scan, parse, extract, validate,
// emit, write.
type Generator struct {
	config      Config
	scanner     *DirectoryScanner
	resolver    *ModuleResolver
	diagnostics *utils.DiagnosticSystem
	reporter    *DiagnosticReporter
	summary     Summary
}

// NewGenerator creates a CLI generator
func NewGenerator(config Config, diagnostics *utils.DiagnosticSystem) *Generator {
	return &Generator{
		config:      config,
		scanner:     NewDirectoryScanner(),
		resolver:    NewModuleResolver(),
		diagnostics: diagnostics,
		reporter:    NewDiagnosticReporter(config.Verbose),
	}
}

// Generate runs the pass over every package found under the configured
// directory patterns. Compile diagnostics never abort the run: every
// well-formed method in every package is still processed and written; the
// diagnostics are collected into the summary and reported at the end.
func (g *Generator) Generate() error {
	dirs, err := g.scanner.ScanDirectories(g.config.Directories)
	if err != nil {
		return fmt.Errorf("failed to scan directories: %w", err)
	}

	moduleName, err := g.resolver.ResolveModuleName(g.config.ModuleName)
	if err != nil {
		g.diagnostics.Warn("could not resolve module: %v", err)
	} else {
		g.diagnostics.Verbose("resolved module %s", moduleName)
	}

	for _, dir := range dirs {
		if err := g.generatePackage(dir); err != nil {
			return err
		}
	}

	g.reporter.ReportDiagnostics(g.summary.Diagnostics)
	return nil
}

// generatePackage runs the pass for one directory
func (g *Generator) generatePackage(dir string) error {
	p := parser.NewParser()
	info, err := p.ParseDirectory(dir)
	if err != nil {
		return fmt.Errorf("failed to parse package in %s: %w", dir, err)
	}
	g.summary.PackagesProcessed++

	g.reporter.Debug("package %s: %d files, %d classes", info.PackageName, len(info.Files), len(info.Classes))

	extractor := parser.NewExtractor()
	validator := parser.NewValidator()

	var classes []generator.ClassExport
	for _, class := range info.Classes {
		g.summary.ClassesFound++

		_, export, diags := extractor.ExtractExports(class)
		g.summary.Diagnostics = append(g.summary.Diagnostics, diags...)
		if len(export.Methods) == 0 {
			continue
		}

		classExport := generator.ClassExport{ClassName: export.ClassName}
		for _, method := range export.Methods {
			validated, diags := validator.ValidateMethod(method)
			if len(diags) > 0 {
				g.summary.MethodsRejected++
				g.summary.Diagnostics = append(g.summary.Diagnostics, diags...)
				classExport.Results = append(classExport.Results, generator.MethodResult{
					Method: method,
					Diags:  diags,
				})
				continue
			}
			g.summary.MethodsExported++
			classExport.Results = append(classExport.Results, generator.MethodResult{Method: validated})
		}
		classes = append(classes, classExport)
	}

	if len(classes) == 0 {
		g.diagnostics.Verbose("no exported methods in %s", dir)
		return nil
	}

	gen := generator.NewGenerator()
	content, emitDiags, err := gen.GenerateRegistration(info.PackageName, classes)
	if err != nil {
		return fmt.Errorf("failed to generate registration for %s: %w", dir, err)
	}
	g.summary.Diagnostics = append(g.summary.Diagnostics, emitDiags...)

	outPath := filepath.Join(dir, GeneratedFileName)
	if err := utils.WriteGeneratedFile(outPath, content); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, outPath)
	g.diagnostics.Verbose("wrote %s", outPath)

	return nil
}

// GetSummary returns the statistics of the last Generate call
func (g *Generator) GetSummary() Summary {
	return g.summary
}
