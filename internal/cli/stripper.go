package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/jdfreder/godot-rust/internal/models"
	"github.com/jdfreder/godot-rust/internal/parser"
)

// Stripper rewrites annotated sources with every recognized marker
// removed. Doc-line markers take their whole line with them; inline
// markers leave the parameter list untouched otherwise.
type Stripper struct {
	scanner *DirectoryScanner
}

// NewStripper creates a new stripper
func NewStripper() *Stripper {
	return &Stripper{
		scanner: NewDirectoryScanner(),
	}
}

// StripDirectories removes markers from every package found under the
// directory patterns and returns the files that were rewritten.
func (s *Stripper) StripDirectories(patterns []string) ([]string, error) {
	dirs, err := s.scanner.ScanDirectories(patterns)
	if err != nil {
		return nil, fmt.Errorf("failed to scan directories: %w", err)
	}

	var rewritten []string
	for _, dir := range dirs {
		p := parser.NewParser()
		info, err := p.ParseDirectory(dir)
		if err != nil {
			return rewritten, fmt.Errorf("failed to parse package in %s: %w", dir, err)
		}

		files, err := s.stripPackage(info)
		if err != nil {
			return rewritten, err
		}
		rewritten = append(rewritten, files...)
	}

	sort.Strings(rewritten)
	return rewritten, nil
}

// stripPackage rewrites every file of one package that carries markers
func (s *Stripper) stripPackage(info *parser.PackageInfo) ([]string, error) {
	byFile := make(map[string][]models.MarkerSpan)
	for _, span := range info.Spans {
		byFile[span.File] = append(byFile[span.File], span)
	}

	files := make([]string, 0, len(byFile))
	for file := range byFile {
		files = append(files, file)
	}
	sort.Strings(files)

	var rewritten []string
	for _, file := range files {
		source, err := os.ReadFile(file)
		if err != nil {
			return rewritten, fmt.Errorf("failed to read %s: %w", file, err)
		}

		stripped := StripMarkers(source, byFile[file])
		if err := os.WriteFile(file, stripped, 0644); err != nil {
			return rewritten, fmt.Errorf("failed to write %s: %w", file, err)
		}
		rewritten = append(rewritten, file)
	}
	return rewritten, nil
}

// StripMarkers removes the marker byte ranges from source. When deleting
// a marker leaves its line blank the whole line goes, so stripped doc
// comments don't leave empty lines behind.
func StripMarkers(source []byte, spans []models.MarkerSpan) []byte {
	ordered := make([]models.MarkerSpan, len(spans))
	copy(ordered, spans)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Start > ordered[j].Start
	})

	out := make([]byte, len(source))
	copy(out, source)

	for _, span := range ordered {
		start, end := span.Start, span.End
		if start < 0 || end > len(out) || start >= end {
			continue
		}

		lineStart := start
		for lineStart > 0 && out[lineStart-1] != '\n' {
			lineStart--
		}
		lineEnd := end
		for lineEnd < len(out) && out[lineEnd] != '\n' {
			lineEnd++
		}
		if lineEnd < len(out) {
			lineEnd++ // include the newline
		}

		if blankOutside(out, lineStart, lineEnd, start, end) {
			start, end = lineStart, lineEnd
		} else if end < len(out) && out[end] == ' ' {
			// inline marker followed by a separating space
			end++
		}

		out = append(out[:start], out[end:]...)
	}
	return out
}

// blankOutside reports whether the line holds only whitespace once the
// span is removed
func blankOutside(source []byte, lineStart, lineEnd, start, end int) bool {
	for i := lineStart; i < start; i++ {
		if source[i] != ' ' && source[i] != '\t' {
			return false
		}
	}
	for i := end; i < lineEnd; i++ {
		if source[i] != ' ' && source[i] != '\t' && source[i] != '\n' && source[i] != '\r' {
			return false
		}
	}
	return true
}
