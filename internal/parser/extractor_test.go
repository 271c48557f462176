package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdfreder/godot-rust/internal/models"
)

func parseClass(t *testing.T, source string) models.ClassImpl {
	t.Helper()
	info, err := NewParser().ParseSource("test.go", source)
	require.NoError(t, err)
	require.Len(t, info.Classes, 1)
	return info.Classes[0]
}

func TestExtractExports_PartitionsMethods(t *testing.T) {
	class := parseClass(t, `package scripts

//export
func (p *Player) Jump(owner *Object) {}

func (p *Player) helper() {}

//export
func (p *Player) Crouch(owner *Object) {}
`)

	rewritten, export, diags := NewExtractor().ExtractExports(class)
	assert.Empty(t, diags)

	// Every method survives in the rewritten tree, in order.
	require.Len(t, rewritten.Methods, 3)
	assert.Equal(t, "Jump", rewritten.Methods[0].Name)
	assert.Equal(t, "helper", rewritten.Methods[1].Name)
	assert.Equal(t, "Crouch", rewritten.Methods[2].Name)
	for _, m := range rewritten.Methods {
		assert.Empty(t, m.Markers)
	}

	require.Len(t, export.Methods, 2)
	assert.Equal(t, "Jump", export.Methods[0].Sig.Name)
	assert.Equal(t, "Crouch", export.Methods[1].Sig.Name)
	assert.True(t, export.Methods[0].Args.Equal(models.ExportArgs{}))
}

func TestExtractExports_DirectivePayload(t *testing.T) {
	class := parseClass(t, `package scripts

//export rpc = "remote_sync"
func (p *Player) Sync(owner *Object) {}
`)

	_, export, diags := NewExtractor().ExtractExports(class)
	assert.Empty(t, diags)
	require.Len(t, export.Methods, 1)
	assert.Equal(t, models.RpcRemoteSync, export.Methods[0].Args.RpcMode)
}

func TestExtractExports_MalformedPayloadStillRegisters(t *testing.T) {
	class := parseClass(t, `package scripts

//export rpc rpc rpc
func (p *Player) Sync(owner *Object) {}
`)

	_, export, diags := NewExtractor().ExtractExports(class)
	require.Len(t, diags, 1)
	assert.Equal(t, "unexpected attribute argument: rpc rpc rpc", diags[0].Message)

	// The method still registers with default arguments.
	require.Len(t, export.Methods, 1)
	assert.True(t, export.Methods[0].Args.Equal(models.ExportArgs{}))
}

func TestExtractExports_DuplicateMarker(t *testing.T) {
	class := parseClass(t, `package scripts

//export
//export rpc = "remote"
func (p *Player) Jump(owner *Object) {}
`)

	_, export, diags := NewExtractor().ExtractExports(class)
	require.Len(t, diags, 1)
	assert.Equal(t, "duplicate export marker", diags[0].Message)
	assert.Equal(t, 4, diags[0].Location.Line)

	// First marker wins; the second payload is never parsed.
	require.Len(t, export.Methods, 1)
	assert.Equal(t, models.RpcDisabled, export.Methods[0].Args.RpcMode)
}

func TestExtractExports_KeepsOptionalFlagsForValidation(t *testing.T) {
	class := parseClass(t, `package scripts

//export
func (p *Player) Move(owner *Object, /*opt*/ speed int) {}
`)

	rewritten, export, diags := NewExtractor().ExtractExports(class)
	assert.Empty(t, diags)

	// The export record keeps the flag, the rewritten tree drops it.
	assert.True(t, export.Methods[0].Sig.Params[1].Optional)
	assert.False(t, rewritten.Methods[0].Params[1].Optional)
}

func TestExtractExports_ClearsUnsafe(t *testing.T) {
	class := parseClass(t, `package scripts

//export
//unsafe
func (p *Player) Raw(owner *Object) {}
`)

	rewritten, export, diags := NewExtractor().ExtractExports(class)
	assert.Empty(t, diags)
	assert.True(t, export.Methods[0].Sig.Unsafe)
	assert.False(t, rewritten.Methods[0].Unsafe)
}

func TestExtractExports_DoesNotMutateInput(t *testing.T) {
	class := parseClass(t, `package scripts

//export
func (p *Player) Jump(owner *Object, /*opt*/ n int) {}
`)

	_, _, _ = NewExtractor().ExtractExports(class)
	assert.NotEmpty(t, class.Methods[0].Markers)
	assert.True(t, class.Methods[0].Params[1].Optional)
}

func TestExtractExports_SiblingSurvivesDirectiveError(t *testing.T) {
	class := parseClass(t, `package scripts

//export rpc = 42
func (p *Player) Bad(owner *Object) {}

//export rpc = "puppet"
func (p *Player) Good(owner *Object) {}
`)

	_, export, diags := NewExtractor().ExtractExports(class)
	require.Len(t, diags, 1)
	assert.Equal(t, "unexpected type for rpc value, expected string", diags[0].Message)

	require.Len(t, export.Methods, 2)
	assert.Equal(t, models.RpcDisabled, export.Methods[0].Args.RpcMode)
	assert.Equal(t, models.RpcPuppet, export.Methods[1].Args.RpcMode)
}
