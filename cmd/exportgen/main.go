package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/jdfreder/godot-rust/internal/cli"
	"github.com/jdfreder/godot-rust/internal/utils"
)

func main() {
	var (
		moduleFlag  = flag.String("module", "", "Custom module name for imports (defaults to go.mod module)")
		verboseFlag = flag.Bool("verbose", false, "Enable verbose output and detailed error reporting")
		quietFlag   = flag.Bool("quiet", false, "Only show errors and final results")
		cleanFlag   = flag.Bool("clean", false, "Delete all autogen_register.go files from the specified directories")
		stripFlag   = flag.Bool("strip", false, "Rewrite sources with all export markers removed")
		helpFlag    = flag.Bool("help", false, "Show help information")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <directory-paths...>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Native Method Export Generator\n")
		fmt.Fprintf(os.Stderr, "Scans directories for Go methods carrying //export markers and generates registration code.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nArguments:\n")
		fmt.Fprintf(os.Stderr, "  directory-paths    One or more directories to scan for annotated Go files\n")
		fmt.Fprintf(os.Stderr, "                     Supports Go-style patterns like './...' for recursive scanning\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s ./...                                  # Scan everything recursively\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s ./internal/scripts                     # Scan one directory\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --module github.com/myorg/game ./...   # Specify custom module name\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --clean ./...                          # Delete generated files\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --strip ./...                          # Remove export markers from sources\n", os.Args[0])
	}

	flag.Parse()

	if *helpFlag {
		flag.Usage()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Error: At least one directory path is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	var diagnostics *utils.DiagnosticSystem
	if *quietFlag {
		diagnostics = utils.NewQuietDiagnostics()
	} else if *verboseFlag {
		diagnostics = utils.NewVerboseDiagnostics()
	} else {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}

	diagnostics.Section("Method Export Generator")

	if *cleanFlag {
		cleaner := cli.NewCleaner()
		removed, err := cleaner.CleanGeneratedFiles(args)
		if err != nil {
			diagnostics.Error("Clean operation failed: %v", err)
			os.Exit(1)
		}
		diagnostics.Success("Removed %d generated file(s)", len(removed))
		return
	}

	if *stripFlag {
		stripper := cli.NewStripper()
		rewritten, err := stripper.StripDirectories(args)
		if err != nil {
			diagnostics.Error("Strip operation failed: %v", err)
			os.Exit(1)
		}
		if *verboseFlag {
			for _, file := range rewritten {
				diagnostics.List("%s", file)
			}
		}
		diagnostics.Success("Stripped markers from %d file(s)", len(rewritten))
		return
	}

	if *verboseFlag {
		diagnostics.Subsection("Configuration")
		diagnostics.List("Target directories: %s", strings.Join(args, ", "))
		if *moduleFlag != "" {
			diagnostics.List("Custom module: %s", *moduleFlag)
		}
	}

	generator := cli.NewGenerator(cli.Config{
		Directories: args,
		ModuleName:  *moduleFlag,
		Verbose:     *verboseFlag,
	}, diagnostics)

	err := generator.Generate()
	if err != nil {
		diagnostics.Error("Generation failed: %v", err)
		os.Exit(1)
	}

	summary := generator.GetSummary()
	diagnostics.Summary("Generation Complete", []utils.Stat{
		{Name: "Packages processed", Value: summary.PackagesProcessed},
		{Name: "Classes found", Value: summary.ClassesFound},
		{Name: "Methods exported", Value: summary.MethodsExported},
		{Name: "Methods rejected", Value: summary.MethodsRejected},
		{Name: "Files generated", Value: len(summary.GeneratedFiles)},
	})

	if *verboseFlag && len(summary.GeneratedFiles) > 0 {
		diagnostics.Subsection("Generated Files")
		for _, file := range summary.GeneratedFiles {
			diagnostics.List("%s", file)
		}
	}

	// Export errors are compile diagnostics. The run still writes every
	// well-formed method, but the exit code reflects them.
	if len(summary.Diagnostics) > 0 {
		os.Exit(1)
	}

	diagnostics.Success("Registration code is up to date")
}
