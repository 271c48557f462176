package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatGeneratedFile_NormalizesSpacing(t *testing.T) {
	source := "package scripts\n\nfunc   Jump( ) {\n}\n"
	formatted, err := FormatGeneratedFile("jump.go", source)
	require.NoError(t, err)
	assert.Equal(t, "package scripts\n\nfunc Jump() {\n}\n", formatted)
}

func TestFormatGeneratedFile_RejectsInvalidSource(t *testing.T) {
	_, err := FormatGeneratedFile("bad.go", "package scripts\n\nfunc {")
	assert.Error(t, err)
}

func TestValidateGoCode(t *testing.T) {
	assert.NoError(t, ValidateGoCode("package scripts\n"))
	assert.Error(t, ValidateGoCode("not go"))
}

func TestWriteGeneratedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.go")
	require.NoError(t, WriteGeneratedFile(path, "package scripts\n\nfunc  Jump() {}\n"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "package scripts\n\nfunc Jump() {}\n", string(content))
}

func TestGoModParser(t *testing.T) {
	dir := t.TempDir()
	goModPath := filepath.Join(dir, "go.mod")
	require.NoError(t, os.WriteFile(goModPath, []byte("module github.com/example/game\n\ngo 1.25\n"), 0644))

	p := NewGoModParser()

	name, err := p.ParseModuleName(goModPath)
	require.NoError(t, err)
	assert.Equal(t, "github.com/example/game", name)

	nested := filepath.Join(dir, "internal", "scripts")
	require.NoError(t, os.MkdirAll(nested, 0755))
	found, err := p.FindGoModFile(nested)
	require.NoError(t, err)
	assert.Equal(t, goModPath, found)

	_, err = p.ParseModuleName(filepath.Join(dir, "notmod.txt"))
	assert.Error(t, err)
}
