package annotations

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdfreder/godot-rust/internal/models"
)

var testLoc = models.SourceLocation{File: "enemy.go", Line: 12, Column: 1}

func TestParseDirectiveBareMarker(t *testing.T) {
	p := NewDirectiveParser()

	args, diags := p.ParseDirective("", testLoc)
	require.Empty(t, diags)
	assert.Equal(t, models.RpcDisabled, args.RpcMode)
	assert.Nil(t, args.OptionalArgs)
}

func TestParseDirectiveRpcModes(t *testing.T) {
	p := NewDirectiveParser()

	modes := map[string]models.RpcMode{
		"disabled":    models.RpcDisabled,
		"remote":      models.RpcRemote,
		"remote_sync": models.RpcRemoteSync,
		"master":      models.RpcMaster,
		"puppet":      models.RpcPuppet,
		"master_sync": models.RpcMasterSync,
		"puppet_sync": models.RpcPuppetSync,
	}

	for literal, want := range modes {
		t.Run(literal, func(t *testing.T) {
			// Both payload shapes must select the same mode
			for _, payload := range []string{
				fmt.Sprintf(`rpc = %q`, literal),
				fmt.Sprintf(`(rpc = %q)`, literal),
			} {
				args, diags := p.ParseDirective(payload, testLoc)
				require.Empty(t, diags, "payload %s", payload)
				assert.Equal(t, want, args.RpcMode, "payload %s", payload)
			}
		})
	}
}

func TestParseDirectiveUnknownRpcValue(t *testing.T) {
	p := NewDirectiveParser()

	args, diags := p.ParseDirective(`rpc = "telepathy"`, testLoc)
	require.Len(t, diags, 1)
	assert.Equal(t, "unexpected value for rpc: telepathy", diags[0].Message)
	assert.Equal(t, testLoc, diags[0].Location)
	// The offending pair is dropped, the directive default-fills
	assert.Equal(t, models.RpcDisabled, args.RpcMode)
}

func TestParseDirectiveNonStringRpcValue(t *testing.T) {
	p := NewDirectiveParser()

	for _, payload := range []string{`rpc = 3`, `rpc = remote`, `(rpc = 1.5)`} {
		args, diags := p.ParseDirective(payload, testLoc)
		require.Len(t, diags, 1, "payload %s", payload)
		assert.Equal(t, "unexpected type for rpc value, expected string", diags[0].Message)
		assert.Equal(t, models.RpcDisabled, args.RpcMode)
	}
}

func TestParseDirectiveDuplicateRpc(t *testing.T) {
	p := NewDirectiveParser()

	args, diags := p.ParseDirective(`(rpc = "remote", rpc = "puppet")`, testLoc)
	require.Len(t, diags, 1)
	assert.Equal(t, "rpc mode was set more than once", diags[0].Message)
	// First occurrence wins
	assert.Equal(t, models.RpcRemote, args.RpcMode)
}

func TestParseDirectiveUnknownKey(t *testing.T) {
	p := NewDirectiveParser()

	args, diags := p.ParseDirective(`bogus = "x"`, testLoc)
	require.Len(t, diags, 1)
	assert.Equal(t, "unknown option for export: `bogus`", diags[0].Message)
	// The bad pair is dropped, not the whole directive
	assert.Equal(t, models.RpcDisabled, args.RpcMode)
	assert.Nil(t, args.OptionalArgs)
}

func TestParseDirectiveSiblingPairsSurvive(t *testing.T) {
	p := NewDirectiveParser()

	// The unknown key accumulates a diagnostic but the rpc pair after it
	// must still be applied.
	args, diags := p.ParseDirective(`(bogus = "x", rpc = "master")`, testLoc)
	require.Len(t, diags, 1)
	assert.Equal(t, "unknown option for export: `bogus`", diags[0].Message)
	assert.Equal(t, models.RpcMaster, args.RpcMode)
}

func TestParseDirectiveBareListItem(t *testing.T) {
	p := NewDirectiveParser()

	args, diags := p.ParseDirective(`("remote", rpc = "puppet")`, testLoc)
	require.Len(t, diags, 1)
	assert.Equal(t, `unexpected argument in list: "remote"`, diags[0].Message)
	assert.Equal(t, models.RpcPuppet, args.RpcMode)
}

func TestParseDirectiveMalformedShape(t *testing.T) {
	p := NewDirectiveParser()

	for _, payload := range []string{`remote`, `= "remote"`, `(rpc = )`, `rpc`} {
		args, diags := p.ParseDirective(payload, testLoc)
		require.Len(t, diags, 1, "payload %s", payload)
		assert.Equal(t, fmt.Sprintf("unexpected attribute argument: %s", payload), diags[0].Message)
		// The marker was already recognized; the method falls back to the
		// default configuration.
		assert.True(t, args.Equal(models.ExportArgs{}), "payload %s", payload)
	}
}

func TestParseDirectiveAccumulatesErrors(t *testing.T) {
	p := NewDirectiveParser()

	_, diags := p.ParseDirective(`(bogus = 1, rpc = 2, rpc = "nope")`, testLoc)
	require.Len(t, diags, 3)
	assert.Equal(t, "unknown option for export: `bogus`", diags[0].Message)
	assert.Equal(t, "unexpected type for rpc value, expected string", diags[1].Message)
	assert.Equal(t, "unexpected value for rpc: nope", diags[2].Message)
}

func TestMatchMarker(t *testing.T) {
	tests := []struct {
		comment string
		payload string
		ok      bool
	}{
		{"//export", "", true},
		{"// export", "", true},
		{"//export(rpc = \"remote\")", "(rpc = \"remote\")", true},
		{"//export rpc = \"remote\"", "rpc = \"remote\"", true},
		{"//gdnative:export", "", true},
		{"//gdnative:export(rpc = \"puppet\")", "(rpc = \"puppet\")", true},
		{"//exported", "", false},
		{"//export_helper", "", false},
		{"//unexport", "", false},
		{"// plain comment", "", false},
		{"//gdnative:exporter", "", false},
	}

	for _, tt := range tests {
		payload, ok := MatchMarker(tt.comment)
		if ok != tt.ok {
			t.Errorf("MatchMarker(%q) ok = %v, want %v", tt.comment, ok, tt.ok)
			continue
		}
		if ok && payload != tt.payload {
			t.Errorf("MatchMarker(%q) payload = %q, want %q", tt.comment, payload, tt.payload)
		}
	}
}
