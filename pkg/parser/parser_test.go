package parser

import (
	"testing"

	"github.com/gaarutyunov/dioscript/pkg/dserr"
)

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	p, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

func TestParseLetAndReturn(t *testing.T) {
	p := newTestParser(t)
	prog, err := p.ParseString(`let x = 1 + 2; return x;`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if len(prog.Stmts) != 2 {
		t.Fatalf("got %d statements, want 2", len(prog.Stmts))
	}
	if prog.Stmts[0].Let == nil || prog.Stmts[0].Let.Name != "x" {
		t.Error("first statement should be `let x = ...`")
	}
	if prog.Stmts[1].Return == nil {
		t.Error("second statement should be a return")
	}
}

func TestParseFunctionDefinition(t *testing.T) {
	p := newTestParser(t)
	prog, err := p.ParseString(`fn add(a, b) { return a + b; }`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	fn := prog.Stmts[0].Fn
	if fn == nil {
		t.Fatal("expected a function-definition statement")
	}
	if fn.Fn.Name != "add" {
		t.Errorf("function name = %q, want add", fn.Fn.Name)
	}
	if got := fn.Fn.Params.Names; len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("params = %v, want [a b]", got)
	}
}

func TestParseVariadicParams(t *testing.T) {
	p := newTestParser(t)
	prog, err := p.ParseString(`fn sum(@args) { return args; }`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	params := prog.Stmts[0].Fn.Fn.Params
	if !params.IsVariadic() || params.Variadic != "args" {
		t.Errorf("params = %+v, want variadic args", params)
	}
}

func TestParseIfElse(t *testing.T) {
	p := newTestParser(t)
	prog, err := p.ParseString(`if x > 0 { return true; } else { return false; }`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	ifs := prog.Stmts[0].If
	if ifs == nil {
		t.Fatal("expected an if statement")
	}
	if len(ifs.Body) != 1 || len(ifs.Else) != 1 {
		t.Errorf("body/else lengths = %d/%d, want 1/1", len(ifs.Body), len(ifs.Else))
	}
}

func TestParseWhileAndFor(t *testing.T) {
	p := newTestParser(t)
	prog, err := p.ParseString(`
		while x < 10 { x = x + 1; }
		for item in items { print(item); }
	`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if prog.Stmts[0].While == nil {
		t.Error("first statement should be while")
	}
	if prog.Stmts[1].For == nil || prog.Stmts[1].For.Var != "item" {
		t.Error("second statement should be a for-loop over item")
	}
}

func TestParseElementLiteral(t *testing.T) {
	p := newTestParser(t)
	prog, err := p.ParseString(`let page = div { class: "main", "hello" };`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	elem := prog.Stmts[0].Let.Value.Left.Left.Left.Left.Left.Link.Atom.Element
	if elem == nil {
		t.Fatal("expected an element literal")
	}
	if elem.Name != "div" {
		t.Errorf("element name = %q, want div", elem.Name)
	}
	if len(elem.Items) != 2 {
		t.Errorf("got %d element items, want 2", len(elem.Items))
	}
}

func TestParseNamespacedCall(t *testing.T) {
	p := newTestParser(t)
	prog, err := p.ParseString(`string::len("hi");`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	call := prog.Stmts[0].Call.Call
	if len(call.Path) != 2 || call.Path[0] != "string" || call.Path[1] != "len" {
		t.Errorf("call path = %v, want [string len]", call.Path)
	}
}

func TestParseLinkExpression(t *testing.T) {
	p := newTestParser(t)
	prog, err := p.ParseString(`let n = s.len();`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	link := prog.Stmts[0].Let.Value.Left.Left.Left.Left.Left.Link
	if len(link.Parts) != 1 || link.Parts[0].Name != "len" || link.Parts[0].Call == nil {
		t.Errorf("link parts = %+v, want a single len() call", link.Parts)
	}
}

func TestParseOperatorPrecedence(t *testing.T) {
	p := newTestParser(t)
	prog, err := p.ParseString(`let x = 1 + 2 * 3;`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	add := prog.Stmts[0].Let.Value.Left.Left.Left
	if len(add.Ops) != 1 {
		t.Fatalf("got %d add ops, want 1", len(add.Ops))
	}
	if len(add.Left.Ops) != 0 {
		t.Error("left side of + should have no * ops")
	}
	if len(add.Ops[0].Right.Ops) != 1 {
		t.Error("right side of + should carry the * op")
	}
}

func TestParseSyntaxErrorReturnsParseError(t *testing.T) {
	p := newTestParser(t)
	_, err := p.ParseString(`let x = ;`)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if _, ok := err.(*dserr.ParseError); !ok {
		t.Errorf("error type = %T, want *dserr.ParseError", err)
	}
}
