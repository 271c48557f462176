package annotations

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/jdfreder/godot-rust/internal/models"
)

// MarkerName is the method-level marker that flags a method for export
const MarkerName = "export"

// directivePayload is the root grammar node for the marker payload: either
// a parenthesized list of name/value pairs or one bare pair.
type directivePayload struct {
	List   []*directiveItem `parser:"'(' @@ ( ',' @@ )* ')'"`
	Single *directivePair   `parser:"| @@"`
}

// directiveItem is one entry of a parenthesized list. Anything that is not
// a name/value pair still parses, so that a malformed entry can be dropped
// with a diagnostic while its siblings survive.
type directiveItem struct {
	Pair *directivePair  `parser:"@@"`
	Bare *directiveValue `parser:"| @@"`
}

type directivePair struct {
	Key   string          `parser:"@Ident '='"`
	Value *directiveValue `parser:"@@"`
}

type directiveValue struct {
	Str    *string  `parser:"@String"`
	Number *float64 `parser:"| @Number"`
	Ident  *string  `parser:"| @Ident"`
}

// render reproduces the value roughly as written, for diagnostics
func (v *directiveValue) render() string {
	switch {
	case v.Str != nil:
		return strconv.Quote(*v.Str)
	case v.Number != nil:
		return strconv.FormatFloat(*v.Number, 'f', -1, 64)
	case v.Ident != nil:
		return *v.Ident
	default:
		return ""
	}
}

var directiveLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"(\\"|[^"])*"`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Number", Pattern: `-?[0-9]+(\.[0-9]+)?`},
	{Name: "Punct", Pattern: `[(),=]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// DirectiveParser converts the free-form payload of one export marker into
// a validated ExportArgs value, collecting diagnostics instead of failing
// fast.
type DirectiveParser struct {
	parser *participle.Parser[directivePayload]
}

// NewDirectiveParser builds the payload grammar
func NewDirectiveParser() *DirectiveParser {
	parser := participle.MustBuild[directivePayload](
		participle.Lexer(directiveLexer),
		participle.Elide("Whitespace"),
		participle.Unquote("String"),
		participle.UseLookahead(2),
	)

	return &DirectiveParser{parser: parser}
}

// ParseDirective parses the payload attached to one export marker. A bare
// marker (empty payload) yields the default configuration. Every problem
// is reported as a diagnostic at loc; the returned ExportArgs is always
// usable, default-filled for whatever the payload failed to provide.
func (p *DirectiveParser) ParseDirective(payload string, loc models.SourceLocation) (models.ExportArgs, []models.Diagnostic) {
	var diags []models.Diagnostic
	args := models.ExportArgs{RpcMode: models.RpcDisabled}

	payload = strings.TrimSpace(payload)
	if payload == "" {
		return args, nil
	}

	parsed, err := p.parser.ParseString(loc.File, payload)
	if err != nil {
		// Malformed top-level shape: the directive is unusable but the
		// marker itself was already recognized, so the method keeps the
		// default configuration.
		diags = append(diags, models.Diagnostic{
			Message:  fmt.Sprintf("unexpected attribute argument: %s", payload),
			Location: loc,
		})
		return args, diags
	}

	var pairs []*directivePair
	if parsed.Single != nil {
		pairs = append(pairs, parsed.Single)
	}
	for _, item := range parsed.List {
		if item.Pair == nil {
			diags = append(diags, models.Diagnostic{
				Message:  fmt.Sprintf("unexpected argument in list: %s", item.Bare.render()),
				Location: loc,
			})
			continue
		}
		pairs = append(pairs, item.Pair)
	}

	var rpc *models.RpcMode
	for _, pair := range pairs {
		switch pair.Key {
		case "rpc":
			if pair.Value.Str == nil {
				diags = append(diags, models.Diagnostic{
					Message:  "unexpected type for rpc value, expected string",
					Location: loc,
				})
				continue
			}

			mode, ok := models.ParseRpcMode(*pair.Value.Str)
			if !ok {
				diags = append(diags, models.Diagnostic{
					Message:  fmt.Sprintf("unexpected value for rpc: %s", *pair.Value.Str),
					Location: loc,
				})
				continue
			}

			if rpc != nil {
				diags = append(diags, models.Diagnostic{
					Message:  "rpc mode was set more than once",
					Location: loc,
				})
				continue
			}
			rpc = &mode

		default:
			diags = append(diags, models.Diagnostic{
				Message:  fmt.Sprintf("unknown option for export: `%s`", pair.Key),
				Location: loc,
			})
		}
	}

	if rpc != nil {
		args.RpcMode = *rpc
	}
	return args, diags
}

// MatchMarker reports whether a comment line is an export marker. The
// marker name is matched exactly against the last colon-separated segment,
// so qualified spellings like //gdnative:export are recognized. The
// returned payload is the text after the marker name.
func MatchMarker(comment string) (payload string, ok bool) {
	text := strings.TrimPrefix(comment, "//")
	text = strings.TrimSpace(text)

	i := 0
	for i < len(text) && (isIdentByte(text[i]) || text[i] == ':') {
		i++
	}
	head := text[:i]
	if head == "" {
		return "", false
	}

	segments := strings.Split(head, ":")
	if segments[len(segments)-1] != MarkerName {
		return "", false
	}

	return strings.TrimSpace(text[i:]), true
}

func isIdentByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
