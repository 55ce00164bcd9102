package eval

import (
	"strconv"

	"github.com/gaarutyunov/dioscript/pkg/dserr"
	"github.com/gaarutyunov/dioscript/pkg/value"
)

// parseNumberLit converts the lexer's raw decimal text into a Number
// value. The lexer only accepts digit runs with an optional fraction and
// exponent (a leading `-` is a separate unary operator), so a parse
// failure here would indicate a lexer/parser mismatch rather than a
// reachable user-facing error.
func parseNumberLit(raw string) (value.Value, error) {
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return value.Value{}, dserr.New(dserr.IllegalOperatorForType, "malformed number literal %q", raw)
	}
	return value.Number(n), nil
}
