package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdfreder/godot-rust/internal/models"
)

const basicSource = `package scripts

type Player struct{}

//export
func (p *Player) Jump(owner *Object) {}

func (p *Player) helper() int { return 0 }

//export rpc = "remote"
func (p *Player) Sync(owner *Object, state string) {}
`

func TestParseSource_BasicClass(t *testing.T) {
	p := NewParser()
	info, err := p.ParseSource("player.go", basicSource)
	require.NoError(t, err)

	assert.Equal(t, "scripts", info.PackageName)
	require.Len(t, info.Classes, 1)

	class := info.Classes[0]
	assert.Equal(t, "Player", class.ClassName)
	require.Len(t, class.Methods, 3)

	jump := class.Methods[0]
	assert.Equal(t, "Jump", jump.Name)
	assert.True(t, jump.Exported())
	assert.Equal(t, "", jump.Markers[0].Payload)
	assert.Equal(t, "p", jump.Receiver.Name)
	assert.Equal(t, "*Player", jump.Receiver.Type)
	require.Len(t, jump.Params, 1)
	assert.Equal(t, "owner", jump.Params[0].Name)
	assert.Equal(t, "*Object", jump.Params[0].Type)
	assert.Equal(t, 2, jump.Arity())

	helper := class.Methods[1]
	assert.False(t, helper.Exported())

	sync := class.Methods[2]
	assert.True(t, sync.Exported())
	assert.Equal(t, `rpc = "remote"`, sync.Markers[0].Payload)
	assert.Equal(t, 3, sync.Arity())
}

func TestParseSource_MethodOrderAcrossClasses(t *testing.T) {
	source := `package scripts

//export
func (a *Alpha) First(owner *Object) {}

//export
func (b *Beta) Second(owner *Object) {}

//export
func (a *Alpha) Third(owner *Object) {}
`
	p := NewParser()
	info, err := p.ParseSource("order.go", source)
	require.NoError(t, err)

	// Classes appear in order of first method, methods in source order.
	require.Len(t, info.Classes, 2)
	assert.Equal(t, "Alpha", info.Classes[0].ClassName)
	assert.Equal(t, "Beta", info.Classes[1].ClassName)
	assert.Equal(t, "First", info.Classes[0].Methods[0].Name)
	assert.Equal(t, "Third", info.Classes[0].Methods[1].Name)
	assert.Equal(t, "Second", info.Classes[1].Methods[0].Name)
}

func TestParseSource_InlineMarkers(t *testing.T) {
	source := `package scripts

//export
func (p *Player) Move(owner *Object, /*opt*/ speed int, /*opt*/ _ float64) {}
`
	p := NewParser()
	info, err := p.ParseSource("move.go", source)
	require.NoError(t, err)

	method := info.Classes[0].Methods[0]
	require.Len(t, method.Params, 3)
	assert.False(t, method.Params[0].Optional)
	assert.True(t, method.Params[1].Optional)
	assert.True(t, method.Params[2].Optional)
	assert.True(t, method.Params[2].Discard())
}

func TestParseSource_MutMarker(t *testing.T) {
	source := `package scripts

//export
func (p *Player) Damage(owner *Object, /*mut*/ health *int) {}
`
	p := NewParser()
	info, err := p.ParseSource("damage.go", source)
	require.NoError(t, err)

	method := info.Classes[0].Methods[0]
	assert.True(t, method.Params[1].Mut)
	assert.False(t, method.Params[1].Optional)
}

func TestParseSource_UnsafeMarker(t *testing.T) {
	source := `package scripts

//export
//unsafe
func (p *Player) RawAccess(owner *Object) {}
`
	p := NewParser()
	info, err := p.ParseSource("raw.go", source)
	require.NoError(t, err)

	method := info.Classes[0].Methods[0]
	assert.True(t, method.Unsafe)
	assert.True(t, method.Exported())
}

func TestParseSource_QualifiedMarker(t *testing.T) {
	source := `package scripts

//gdnative:export
func (p *Player) Spawn(owner *Object) {}

//gdnative:exporter
func (p *Player) NotExported(owner *Object) {}
`
	p := NewParser()
	info, err := p.ParseSource("qualified.go", source)
	require.NoError(t, err)

	methods := info.Classes[0].Methods
	assert.True(t, methods[0].Exported())
	// Only an exact final segment matches.
	assert.False(t, methods[1].Exported())
}

func TestParseSource_GenericReceiver(t *testing.T) {
	source := `package scripts

//export
func (c *Container[T]) Push(owner *Object, value T) {}
`
	p := NewParser()
	info, err := p.ParseSource("generic.go", source)
	require.NoError(t, err)

	require.Len(t, info.Classes, 1)
	assert.Equal(t, "Container", info.Classes[0].ClassName)
	assert.Equal(t, []string{"T"}, info.Classes[0].Methods[0].TypeParams)
}

func TestParseSource_Results(t *testing.T) {
	source := `package scripts

//export
func (p *Player) Stats(owner *Object) (int, error) { return 0, nil }
`
	p := NewParser()
	info, err := p.ParseSource("stats.go", source)
	require.NoError(t, err)

	method := info.Classes[0].Methods[0]
	assert.Equal(t, []string{"int", "error"}, method.Results)
}

func TestParseSource_MarkerSpansRecorded(t *testing.T) {
	source := `package scripts

//export
//unsafe
func (p *Player) Act(owner *Object, /*opt*/ n int) {}
`
	p := NewParser()
	info, err := p.ParseSource("spans.go", source)
	require.NoError(t, err)

	require.Len(t, info.Spans, 3)
	kinds := []models.MarkerKind{info.Spans[0].Kind, info.Spans[1].Kind, info.Spans[2].Kind}
	assert.Contains(t, kinds, models.MarkerExport)
	assert.Contains(t, kinds, models.MarkerUnsafe)
	assert.Contains(t, kinds, models.MarkerOpt)
	for _, span := range info.Spans {
		assert.Less(t, span.Start, span.End)
		assert.Equal(t, "spans.go", span.File)
	}
}

func TestParseSource_Deterministic(t *testing.T) {
	first, err := NewParser().ParseSource("player.go", basicSource)
	require.NoError(t, err)
	second, err := NewParser().ParseSource("player.go", basicSource)
	require.NoError(t, err)

	assert.Equal(t, first.Classes, second.Classes)
	assert.Equal(t, first.Spans, second.Spans)
}

func TestParseSource_LocationPoints(t *testing.T) {
	p := NewParser()
	info, err := p.ParseSource("player.go", basicSource)
	require.NoError(t, err)

	jump := info.Classes[0].Methods[0]
	assert.Equal(t, "player.go", jump.Pos.File)
	assert.Equal(t, 6, jump.Pos.Line)
	assert.Equal(t, "player.go", jump.Markers[0].Pos.File)
	assert.Equal(t, 5, jump.Markers[0].Pos.Line)
}
