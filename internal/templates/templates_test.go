package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderRegistrationFile_DefaultsRuntimeImport(t *testing.T) {
	content, err := RenderRegistrationFile(FileData{PackageName: "scripts"})
	require.NoError(t, err)
	assert.Contains(t, content, `"`+RuntimeImport+`"`)
	assert.Contains(t, content, "package scripts")
}

func TestRenderRegistrationFile_ErrorStatements(t *testing.T) {
	content, err := RenderRegistrationFile(FileData{
		PackageName: "scripts",
		Classes: []ClassData{{
			ClassName: "Enemy",
			Receiver:  "*Enemy",
			Assert:    true,
			Statements: []StatementData{{
				Errors: []string{"type parameters not allowed in exported methods (enemy.go:4:1)"},
			}},
		}},
	})
	require.NoError(t, err)
	assert.Contains(t, content, "// export error: type parameters not allowed in exported methods (enemy.go:4:1)")
}
