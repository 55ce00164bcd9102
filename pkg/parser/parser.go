// Package parser builds Dioscript source text into a pkg/ast.Program using
// a participle struct-tag grammar: a composable set of combinators over the
// token stream, with whitespace and comments elided ahead of time so the
// grammar itself never has to reason about formatting.
package parser

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	plex "github.com/alecthomas/participle/v2/lexer"

	"github.com/gaarutyunov/dioscript/pkg/ast"
	"github.com/gaarutyunov/dioscript/pkg/dserr"
)

// Parser parses Dioscript source into an *ast.Program.
type Parser struct {
	p *participle.Parser[ast.Program]
}

// New builds a Parser. The grammar is built once and reused across calls,
// matching participle.Build[T]'s usual construction shape.
func New() (*Parser, error) {
	p, err := participle.Build[ast.Program](
		participle.Lexer(dioscriptLexer),
		participle.Elide("Comment", "Whitespace"),
		participle.UseLookahead(8),
	)
	if err != nil {
		return nil, fmt.Errorf("dioscript: building grammar: %w", err)
	}
	return &Parser{p: p}, nil
}

// mustParser is a process-wide default built at package initialisation; New() never fails in
// practice (the grammar is static), so exposing a package-level helper that
// panics on a grammar bug is acceptable here, in the same style as
// participle's own `MustBuild` convenience.
var mustParser = participle.MustBuild[ast.Program](
	participle.Lexer(dioscriptLexer),
	participle.Elide("Comment", "Whitespace"),
	participle.UseLookahead(8),
)

// ParseString parses a Dioscript source string. On failure it returns a
// *dserr.ParseError carrying the failing offset and a caret-pointed
// rendering of the surrounding source.
func (ps *Parser) ParseString(source string) (*ast.Program, error) {
	prog, err := ps.p.ParseString("", source)
	if err != nil {
		return nil, toParseError(source, err)
	}
	return prog, nil
}

// ParseBytes parses Dioscript source bytes from a named source.
func (ps *Parser) ParseBytes(filename string, source []byte) (*ast.Program, error) {
	prog, err := ps.p.ParseBytes(filename, source)
	if err != nil {
		return nil, toParseError(string(source), err)
	}
	return prog, nil
}

// Parse is a package-level convenience entry point backed by mustParser.
// The embedding API does not use it; it calls Parser.ParseString.
func Parse(source string) (*ast.Program, error) {
	prog, err := mustParser.ParseString("", source)
	if err != nil {
		return nil, toParseError(source, err)
	}
	return prog, nil
}

// positioned is satisfied by participle's own error types
// (*participle.ParseError, *participle.UnexpectedTokenError); duck-typed
// here rather than imported by concrete type so a participle minor-version
// rename of its error structs doesn't break this package.
type positioned interface {
	error
	Position() plex.Position
}

func toParseError(source string, err error) *dserr.ParseError {
	pe := &dserr.ParseError{
		Kind:    dserr.SyntaxError,
		Message: err.Error(),
	}
	if p, ok := err.(positioned); ok {
		pos := p.Position()
		pe.Offset = pos.Offset
		pe.Line = pos.Line
		pe.Column = pos.Column
	}
	pe.Context = Diagnostic(source, pe.Line, pe.Column)
	if isTrailingContentError(source, pe) {
		pe.Kind = dserr.UnmatchedTrailingContent
	}
	return pe
}

// isTrailingContentError classifies a failure as trailing content when it
// is an "unexpected token" error reported past the first source line. It
// does not check whether a complete top-level statement was consumed, so a
// syntax error inside a statement on a later line is classified the same
// way, and trailing content on line 1 stays a SyntaxError.
func isTrailingContentError(source string, pe *dserr.ParseError) bool {
	return pe.Line > 1 && strings.Contains(pe.Message, "unexpected token")
}

// Diagnostic renders a caret pointing at (line, col) with two lines of
// context on either side.
func Diagnostic(source string, line, col int) string {
	lines := strings.Split(source, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	start := line - 2
	if start < 1 {
		start = 1
	}
	end := line + 2
	if end > len(lines) {
		end = len(lines)
	}
	var b strings.Builder
	for i := start; i <= end; i++ {
		fmt.Fprintf(&b, "%4d | %s\n", i, lines[i-1])
		if i == line {
			caret := strings.Repeat(" ", col-1)
			fmt.Fprintf(&b, "     | %s^\n", caret)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
