package parser

import (
	"testing"

	"github.com/gaarutyunov/dioscript/pkg/dserr"
)

func TestDiagnosticJSONRendersSyntaxError(t *testing.T) {
	p := newTestParser(t)
	_, err := p.ParseString(`let x = ;`)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	pe, ok := err.(*dserr.ParseError)
	if !ok {
		t.Fatalf("error type = %T, want *dserr.ParseError", err)
	}

	j := DiagnosticJSON(pe)
	kind, err := j.Get("kind").String()
	if err != nil {
		t.Fatalf("reading kind: %v", err)
	}
	if kind != "SyntaxError" {
		t.Errorf("kind = %q, want SyntaxError", kind)
	}
	if msg, _ := j.Get("message").String(); msg != pe.Message {
		t.Errorf("message = %q, want %q", msg, pe.Message)
	}
}
