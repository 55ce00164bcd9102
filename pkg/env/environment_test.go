package env

import (
	"testing"

	"github.com/gaarutyunov/dioscript/pkg/value"
)

func TestCreateAndGetVar(t *testing.T) {
	e := New()
	if _, err := e.CreateVar("x", value.Number(1)); err != nil {
		t.Fatalf("CreateVar: %v", err)
	}
	_, v, err := e.GetVar("x")
	if err != nil {
		t.Fatalf("GetVar: %v", err)
	}
	if n, _ := v.AsNumber(); n != 1 {
		t.Errorf("GetVar(x) = %v, want 1", n)
	}
}

func TestCreateVarDuplicateFails(t *testing.T) {
	e := New()
	e.CreateVar("x", value.Number(1))
	if _, err := e.CreateVar("x", value.Number(2)); err == nil {
		t.Error("expected error redefining x in the same frame")
	}
}

func TestGetVarStopsAtIsolateFrame(t *testing.T) {
	e := New()
	e.CreateVar("outer", value.Number(1))
	e.EnterScope(true)
	if _, _, err := e.GetVar("outer"); err == nil {
		t.Error("expected GetVar to not see outer across an isolate boundary")
	}
}

func TestGetVarCrossesNonIsolateFrame(t *testing.T) {
	e := New()
	e.CreateVar("outer", value.Number(1))
	e.EnterScope(false)
	if _, v, err := e.GetVar("outer"); err != nil {
		t.Fatalf("GetVar: %v", err)
	} else if n, _ := v.AsNumber(); n != 1 {
		t.Errorf("GetVar(outer) = %v, want 1", n)
	}
}

func TestSetVarWritesThroughReference(t *testing.T) {
	e := New()
	id, _ := e.CreateVar("x", value.Number(1))
	e.CreateVar("y", value.Reference(id))

	if _, err := e.SetVar("y", value.Number(99)); err != nil {
		t.Fatalf("SetVar: %v", err)
	}

	_, v, _ := e.GetVar("x")
	if n, _ := v.AsNumber(); n != 99 {
		t.Errorf("x after set-through-reference = %v, want 99", n)
	}
}

func TestFindFunctionByNameCrossesIsolateFrame(t *testing.T) {
	e := New()
	fn := &value.Function{Name: "f", Script: &value.ScriptFunction{Name: "f"}}
	e.CreateVar("f", value.FunctionValue(fn))
	e.EnterScope(true)

	got, ok := e.FindFunctionByName("f")
	if !ok {
		t.Fatal("expected to find f across an isolate boundary")
	}
	if got.Name != "f" {
		t.Errorf("found function named %q, want f", got.Name)
	}
}

func TestCaptureEnvSkipsNameAndStopsAtIsolate(t *testing.T) {
	e := New()
	e.CreateVar("a", value.Number(1))
	e.CreateVar("self", value.Number(2))
	e.EnterScope(true)
	e.CreateVar("b", value.Number(3))

	captured := e.CaptureEnv("self")
	if _, ok := captured["self"]; ok {
		t.Error("CaptureEnv should skip the given name")
	}
	if _, ok := captured["b"]; !ok {
		t.Error("CaptureEnv should include names from the current frame")
	}
	if _, ok := captured["a"]; ok {
		t.Error("CaptureEnv should stop scanning after the first isolate frame")
	}
}

func TestDereferenceFollowsChainAndDetectsCycle(t *testing.T) {
	e := New()
	id1 := e.CreateCell(value.Number(7))
	v, err := e.Dereference(value.Reference(id1))
	if err != nil {
		t.Fatalf("Dereference: %v", err)
	}
	if n, _ := v.AsNumber(); n != 7 {
		t.Errorf("Dereference = %v, want 7", n)
	}

	cyclic := e.CreateCell(value.None())
	e.SetCell(cyclic, value.Reference(cyclic))
	if _, err := e.Dereference(value.Reference(cyclic)); err == nil {
		t.Error("expected a circular reference error")
	}
}

func TestLeaveScopeOnEmptyStackErrors(t *testing.T) {
	e := &Environment{cells: make(map[value.CellID]value.Value)}
	if err := e.LeaveScope(); err == nil {
		t.Error("expected an error leaving an empty scope stack")
	}
}

func TestSetMaxDerefHopsBoundsChain(t *testing.T) {
	e := New()
	e.SetMaxDerefHops(2)
	a := e.CreateCell(value.Number(1))
	b := e.CreateCell(value.Reference(a))
	c := e.CreateCell(value.Reference(b))
	d := e.CreateCell(value.Reference(c))

	if _, err := e.Dereference(value.Reference(d)); err == nil {
		t.Error("expected the tightened hop ceiling to trip")
	}
}
