package dioscript

import (
	"testing"

	"github.com/gaarutyunov/dioscript/pkg/module"
	"github.com/gaarutyunov/dioscript/pkg/value"
)

func TestEvaluateSourceReturnsValue(t *testing.T) {
	d := New()
	v, err := d.EvaluateSource(`return 1 + 2;`)
	if err != nil {
		t.Fatalf("EvaluateSource: %v", err)
	}
	if n, _ := v.AsNumber(); n != 3 {
		t.Errorf("result = %v, want 3", n)
	}
}

func TestParseThenEvaluate(t *testing.T) {
	d := New()
	prog, err := d.Parse(`return "hi";`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	v, err := d.Evaluate(prog)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if s, _ := v.AsString(); s != "hi" {
		t.Errorf("result = %q, want hi", s)
	}
}

func TestParseSyntaxErrorSurfacesAsParseError(t *testing.T) {
	d := New()
	_, err := d.Parse(`let x = ;`)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if _, ok := err.(*ParseError); !ok {
		t.Errorf("error type = %T, want *ParseError", err)
	}
}

func TestWithOutputReceivesPrintedText(t *testing.T) {
	var got []string
	d := New(WithOutput(func(s string) { got = append(got, s) }))
	if _, err := d.EvaluateSource(`print("hi");`); err != nil {
		t.Fatalf("EvaluateSource: %v", err)
	}
	if len(got) != 1 || got[0] != "hi" {
		t.Errorf("captured output = %v, want [\"hi\"]", got)
	}
}

func TestWithOutputDefaultsToDiscard(t *testing.T) {
	d := New()
	if _, err := d.EvaluateSource(`print("hi");`); err != nil {
		t.Fatalf("EvaluateSource: %v", err)
	}
}

func TestRegisterFunctionIsCallableByName(t *testing.T) {
	d := New()
	err := d.RegisterFunction("double", 1, func(_ value.NativeContext, args []value.Value) (value.Value, error) {
		n, _ := args[0].AsNumber()
		return value.Number(n * 2), nil
	})
	if err != nil {
		t.Fatalf("RegisterFunction: %v", err)
	}

	v, err := d.EvaluateSource(`return double(21);`)
	if err != nil {
		t.Fatalf("EvaluateSource: %v", err)
	}
	if n, _ := v.AsNumber(); n != 42 {
		t.Errorf("double(21) = %v, want 42", n)
	}
}

func TestBindModuleIsResolvableByNamespacedCall(t *testing.T) {
	d := New()
	d.BindModule("math2", func() module.Module {
		return module.Module{
			"square": {Function: &value.Function{
				Name: "square",
				Native: &value.NativeFunction{
					Arity: 1,
					Fn: func(_ value.NativeContext, args []value.Value) (value.Value, error) {
						n, _ := args[0].AsNumber()
						return value.Number(n * n), nil
					},
				},
			}},
		}
	})

	v, err := d.EvaluateSource(`return math2::square(6);`)
	if err != nil {
		t.Fatalf("EvaluateSource: %v", err)
	}
	if n, _ := v.AsNumber(); n != 36 {
		t.Errorf("math2::square(6) = %v, want 36", n)
	}
}

func TestCreateVarSetVarGetVar(t *testing.T) {
	d := New()
	if _, err := d.CreateVar("x", value.Number(1)); err != nil {
		t.Fatalf("CreateVar: %v", err)
	}
	if _, err := d.SetVar("x", value.Number(2)); err != nil {
		t.Fatalf("SetVar: %v", err)
	}
	_, v, err := d.GetVar("x")
	if err != nil {
		t.Fatalf("GetVar: %v", err)
	}
	if n, _ := v.AsNumber(); n != 2 {
		t.Errorf("GetVar(x) = %v, want 2", n)
	}

	v, err = d.EvaluateSource(`return x;`)
	if err != nil {
		t.Fatalf("EvaluateSource reading host-bound var: %v", err)
	}
	if n, _ := v.AsNumber(); n != 2 {
		t.Errorf("script read of host-bound x = %v, want 2", n)
	}
}

func TestGetCellSetCell(t *testing.T) {
	d := New()
	id, err := d.CreateVar("x", value.Number(1))
	if err != nil {
		t.Fatalf("CreateVar: %v", err)
	}
	if err := d.SetCell(id, value.Number(7)); err != nil {
		t.Fatalf("SetCell: %v", err)
	}
	v, err := d.GetCell(id)
	if err != nil {
		t.Fatalf("GetCell: %v", err)
	}
	if n, _ := v.AsNumber(); n != 7 {
		t.Errorf("GetCell(x) = %v, want 7", n)
	}
}

func TestWithMaxRecursionDepthEnforced(t *testing.T) {
	d := New(WithMaxRecursionDepth(3))
	_, err := d.EvaluateSource(`
		fn loop_forever(n) {
			return loop_forever(n + 1);
		}
		return loop_forever(0);
	`)
	if err == nil {
		t.Fatal("expected a call-depth ceiling error")
	}
}

func TestWithMaxDerefHopsEnforced(t *testing.T) {
	d := New(WithMaxDerefHops(2))
	id1, _ := d.CreateVar("a", value.Number(1))
	id2, _ := d.CreateVar("b", value.Reference(id1))
	id3, _ := d.CreateVar("c", value.Reference(id2))
	if _, err := d.CreateVar("d", value.Reference(id3)); err != nil {
		t.Fatalf("CreateVar: %v", err)
	}
	_, _, err := d.GetVar("d")
	if err != nil {
		t.Fatalf("GetVar: %v", err)
	}
	if _, err := d.EvaluateSource(`return d;`); err == nil {
		t.Error("expected the tightened hop ceiling to trip on a long reference chain")
	}
}
