package parser

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// dioscriptLexer tokenizes Dioscript source. Whitespace and comments are
// elided by the grammar build (participle.Elide), so the grammar only ever
// sees meaningful tokens; the grammar rules, not a hand-rolled scanner,
// decide what counts as a token boundary.
var dioscriptLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
	{Name: "Number", Pattern: `\d+(?:\.\d+)?(?:[eE][+-]?\d+)?`},
	{Name: "AttrName", Pattern: `[A-Za-z0-9]+(?:-[A-Za-z0-9]+)+`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Op", Pattern: `::|&&|\|\||==|!=|>=|<=|[+\-*/%<>=!&.,:;(){}\[\]]`},
})
