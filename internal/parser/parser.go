package parser

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"io/fs"
	"sort"
	"strings"

	"github.com/jdfreder/godot-rust/internal/annotations"
	"github.com/jdfreder/godot-rust/internal/models"
)

// Parser builds the class implementation trees the export pass consumes
// from annotated Go source.
type Parser struct {
	fileSet *token.FileSet
}

// NewParser creates a new source parser
func NewParser() *Parser {
	return &Parser{
		fileSet: token.NewFileSet(),
	}
}

// PackageInfo is the parse result for one directory of Go source
type PackageInfo struct {
	PackageName string
	Path        string
	Classes     []models.ClassImpl  // declaration order of first appearance
	Spans       []models.MarkerSpan // every recognized marker, for strip mode
	Files       []string            // parsed files, sorted
}

// ParseSource parses source code from a string. Used directly by tests and
// by ParseDirectory for each file on disk.
func (p *Parser) ParseSource(filename, source string) (*PackageInfo, error) {
	file, err := parser.ParseFile(p.fileSet, filename, source, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}

	info := &PackageInfo{
		PackageName: file.Name.Name,
		Path:        "./",
		Files:       []string{filename},
	}
	p.collectClasses(file, filename, info)
	return info, nil
}

// ParseDirectory parses every Go file in the directory (one package per
// directory, generated and test files skipped) and groups methods under
// their receiver types in declaration order. Files are visited in sorted
// name order so the result is identical across runs.
func (p *Parser) ParseDirectory(path string) (*PackageInfo, error) {
	pkgs, err := parser.ParseDir(p.fileSet, path, func(fi fs.FileInfo) bool {
		name := fi.Name()
		return !strings.HasSuffix(name, "_test.go") && name != generatedFileName
	}, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse directory %s: %w", path, err)
	}

	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no Go packages found in directory %s", path)
	}
	if len(pkgs) > 1 {
		return nil, fmt.Errorf("multiple packages found in directory %s", path)
	}

	var pkg *ast.Package
	var packageName string
	for name, candidate := range pkgs {
		pkg = candidate
		packageName = name
	}

	info := &PackageInfo{
		PackageName: packageName,
		Path:        path,
	}

	fileNames := make([]string, 0, len(pkg.Files))
	for name := range pkg.Files {
		fileNames = append(fileNames, name)
	}
	sort.Strings(fileNames)
	info.Files = fileNames

	for _, name := range fileNames {
		p.collectClasses(pkg.Files[name], name, info)
	}
	return info, nil
}

// generatedFileName is the registration file the generator writes; it is
// never an input.
const generatedFileName = "autogen_register.go"

// collectClasses walks one file's declarations and appends methods to the
// class accumulator. Declaration order is preserved explicitly: classes
// appear in order of their first method, methods in source order.
func (p *Parser) collectClasses(file *ast.File, fileName string, info *PackageInfo) {
	index := make(map[string]int, len(info.Classes))
	for i, class := range info.Classes {
		index[class.ClassName] = i
	}

	for _, decl := range file.Decls {
		funcDecl, ok := decl.(*ast.FuncDecl)
		if !ok || funcDecl.Recv == nil || len(funcDecl.Recv.List) == 0 {
			continue
		}

		className, receiverTypeParams := receiverTypeName(funcDecl.Recv.List[0].Type)
		if className == "" {
			continue
		}

		method := p.buildMethod(file, fileName, funcDecl, receiverTypeParams, info)

		if i, ok := index[className]; ok {
			info.Classes[i].Methods = append(info.Classes[i].Methods, method)
		} else {
			index[className] = len(info.Classes)
			info.Classes = append(info.Classes, models.ClassImpl{
				ClassName:  className,
				SourcePath: fileName,
				Methods:    []models.Method{method},
			})
		}
	}
}

// buildMethod converts one method declaration into the tree form,
// recognizing doc-comment export markers, the //unsafe qualifier, and
// inline /*opt*/ and /*mut*/ parameter markers.
func (p *Parser) buildMethod(file *ast.File, fileName string, decl *ast.FuncDecl, receiverTypeParams []string, info *PackageInfo) models.Method {
	method := models.Method{
		Name:       decl.Name.Name,
		TypeParams: receiverTypeParams,
		Pos:        p.location(fileName, decl.Name.Pos()),
	}

	// Methods cannot declare their own type parameters in Go, but guard
	// anyway so hand-built trees behave the same.
	if decl.Type.TypeParams != nil {
		for _, field := range decl.Type.TypeParams.List {
			for _, name := range field.Names {
				method.TypeParams = append(method.TypeParams, name.Name)
			}
		}
	}

	if decl.Doc != nil {
		for _, comment := range decl.Doc.List {
			if payload, ok := annotations.MatchMarker(comment.Text); ok {
				method.Markers = append(method.Markers, models.ExportMarker{
					Raw:     comment.Text,
					Payload: payload,
					Pos:     p.location(fileName, comment.Pos()),
				})
				p.recordSpan(info, models.MarkerExport, fileName, comment)
				continue
			}
			if isUnsafeMarker(comment.Text) {
				method.Unsafe = true
				p.recordSpan(info, models.MarkerUnsafe, fileName, comment)
			}
		}
	}

	markers := p.inlineMarkers(file, decl, fileName, info)

	recv := decl.Recv.List[0]
	receiverName := ""
	receiverPos := recv.Pos()
	if len(recv.Names) > 0 {
		receiverName = recv.Names[0].Name
		receiverPos = recv.Names[0].Pos()
	}
	method.Receiver = models.Param{
		Name: receiverName,
		Type: p.renderExpr(recv.Type),
		Pos:  p.location(fileName, receiverPos),
	}
	applyMarkers(&method.Receiver, markers, recv.Pos())

	if decl.Type.Params != nil {
		for _, field := range decl.Type.Params.List {
			if len(field.Names) == 0 {
				param := models.Param{
					Name: "",
					Type: p.renderExpr(field.Type),
					Pos:  p.location(fileName, field.Pos()),
				}
				applyMarkers(&param, markers, field.Pos())
				method.Params = append(method.Params, param)
				continue
			}
			for _, name := range field.Names {
				param := models.Param{
					Name: name.Name,
					Type: p.renderExpr(field.Type),
					Pos:  p.location(fileName, name.Pos()),
				}
				applyMarkers(&param, markers, name.Pos())
				method.Params = append(method.Params, param)
			}
		}
	}

	if decl.Type.Results != nil {
		for _, field := range decl.Type.Results.List {
			rendered := p.renderExpr(field.Type)
			count := len(field.Names)
			if count == 0 {
				count = 1
			}
			for i := 0; i < count; i++ {
				method.Results = append(method.Results, rendered)
			}
		}
	}

	return method
}

// inlineMarker is one /*opt*/ or /*mut*/ comment awaiting assignment to
// the parameter that starts after it
type inlineMarker struct {
	kind models.MarkerKind
	end  token.Pos
	used bool
}

// inlineMarkers collects opt/mut comments lying inside the method's
// receiver or parameter parentheses
func (p *Parser) inlineMarkers(file *ast.File, decl *ast.FuncDecl, fileName string, info *PackageInfo) []*inlineMarker {
	var ranges []struct{ open, close token.Pos }
	if decl.Recv != nil {
		ranges = append(ranges, struct{ open, close token.Pos }{decl.Recv.Opening, decl.Recv.Closing})
	}
	if decl.Type.Params != nil {
		ranges = append(ranges, struct{ open, close token.Pos }{decl.Type.Params.Opening, decl.Type.Params.Closing})
	}

	var markers []*inlineMarker
	for _, group := range file.Comments {
		for _, comment := range group.List {
			inside := false
			for _, r := range ranges {
				if comment.Pos() > r.open && comment.End() < r.close {
					inside = true
					break
				}
			}
			if !inside {
				continue
			}

			switch markerText(comment.Text) {
			case "opt":
				markers = append(markers, &inlineMarker{kind: models.MarkerOpt, end: comment.End()})
				p.recordSpan(info, models.MarkerOpt, fileName, comment)
			case "mut":
				markers = append(markers, &inlineMarker{kind: models.MarkerMut, end: comment.End()})
				p.recordSpan(info, models.MarkerMut, fileName, comment)
			}
		}
	}
	return markers
}

// applyMarkers assigns every still-unassigned marker ending before the
// parameter's position to that parameter. Parameters are visited in source
// order, so each marker binds to the parameter immediately after it.
func applyMarkers(param *models.Param, markers []*inlineMarker, paramPos token.Pos) {
	for _, m := range markers {
		if m.used || m.end > paramPos {
			continue
		}
		m.used = true
		switch m.kind {
		case models.MarkerOpt:
			param.Optional = true
		case models.MarkerMut:
			param.Mut = true
		}
	}
}

// markerText extracts the trimmed body of a /*...*/ comment, or "" for
// line comments
func markerText(text string) string {
	if !strings.HasPrefix(text, "/*") || !strings.HasSuffix(text, "*/") {
		return ""
	}
	return strings.TrimSpace(text[2 : len(text)-2])
}

// isUnsafeMarker reports whether a doc line is the unsafety qualifier
func isUnsafeMarker(text string) bool {
	return strings.TrimSpace(strings.TrimPrefix(text, "//")) == "unsafe"
}

// receiverTypeName resolves the class name behind a receiver type
// expression, unwrapping pointers and generic instantiations. The second
// result lists type parameter names declared on a generic receiver.
func receiverTypeName(expr ast.Expr) (string, []string) {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return receiverTypeName(t.X)
	case *ast.Ident:
		return t.Name, nil
	case *ast.IndexExpr:
		name, _ := receiverTypeName(t.X)
		return name, typeParamNames([]ast.Expr{t.Index})
	case *ast.IndexListExpr:
		name, _ := receiverTypeName(t.X)
		return name, typeParamNames(t.Indices)
	default:
		return "", nil
	}
}

func typeParamNames(exprs []ast.Expr) []string {
	var names []string
	for _, expr := range exprs {
		if ident, ok := expr.(*ast.Ident); ok {
			names = append(names, ident.Name)
		}
	}
	return names
}

func (p *Parser) renderExpr(expr ast.Expr) string {
	var buf bytes.Buffer
	printer.Fprint(&buf, p.fileSet, expr)
	return buf.String()
}

func (p *Parser) location(fileName string, pos token.Pos) models.SourceLocation {
	position := p.fileSet.Position(pos)
	return models.SourceLocation{
		File:   fileName,
		Line:   position.Line,
		Column: position.Column,
	}
}

func (p *Parser) recordSpan(info *PackageInfo, kind models.MarkerKind, fileName string, comment *ast.Comment) {
	start := p.fileSet.Position(comment.Pos()).Offset
	end := p.fileSet.Position(comment.End()).Offset
	info.Spans = append(info.Spans, models.MarkerSpan{
		Kind:  kind,
		File:  fileName,
		Start: start,
		End:   end,
	})
}
