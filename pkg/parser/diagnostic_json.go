package parser

import (
	"github.com/bitly/go-simplejson"

	"github.com/gaarutyunov/dioscript/pkg/dserr"
)

// DiagnosticJSON renders a ParseError as a simplejson document (offset,
// line, column, message, and the rendered context block) so a host tool
// (playground, editor integration, and other external collaborators) can
// consume a parse failure without depending on this module's Go types.
func DiagnosticJSON(pe *dserr.ParseError) *simplejson.Json {
	j := simplejson.New()
	j.Set("kind", kindName(pe.Kind))
	j.Set("message", pe.Message)
	j.Set("offset", pe.Offset)
	j.Set("line", pe.Line)
	j.Set("column", pe.Column)
	j.Set("context", pe.Context)
	return j
}

func kindName(k dserr.ParseErrorKind) string {
	switch k {
	case dserr.UnmatchedTrailingContent:
		return "UnmatchedTrailingContent"
	default:
		return "SyntaxError"
	}
}
