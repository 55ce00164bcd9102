package eval

import (
	"testing"

	"github.com/gaarutyunov/dioscript/pkg/module"
	"github.com/gaarutyunov/dioscript/pkg/stdlib"
	"github.com/gaarutyunov/dioscript/pkg/value"
)

// captureOutput collects every Emit call for assertions on print/println.
type captureOutput struct{ lines []string }

func (c *captureOutput) Emit(s string) { c.lines = append(c.lines, s) }

// stdlibHost adapts *Evaluator to stdlib.Host (BindModule lives on the
// registry, not the evaluator itself).
type stdlibHost struct{ ev *Evaluator }

func (h stdlibHost) CreateVar(name string, v value.Value) (value.CellID, error) {
	return h.ev.CreateVar(name, v)
}
func (h stdlibHost) BindModule(name string, gen module.Generator) {
	h.ev.Registry.BindModule(name, gen)
}

func newTestEvaluator() (*Evaluator, *captureOutput) {
	out := &captureOutput{}
	ev := New(module.NewRegistry(), out)
	stdlib.Install(stdlibHost{ev: ev})
	return ev, out
}

func runOK(t *testing.T, ev *Evaluator, src string) value.Value {
	t.Helper()
	v, err := ev.Run(src)
	if err != nil {
		t.Fatalf("Run(%q): %v", src, err)
	}
	return v
}

func TestArithmeticPrecedence(t *testing.T) {
	ev, _ := newTestEvaluator()
	v := runOK(t, ev, `return 1 + 2 * 3;`)
	if n, _ := v.AsNumber(); n != 7 {
		t.Errorf("result = %v, want 7", n)
	}
}

func TestLetAndVariableRead(t *testing.T) {
	ev, _ := newTestEvaluator()
	v := runOK(t, ev, `let x = 10; let y = x + 5; return y;`)
	if n, _ := v.AsNumber(); n != 15 {
		t.Errorf("result = %v, want 15", n)
	}
}

func TestReturnInsideIfDoesNotUnwindPastIt(t *testing.T) {
	ev, _ := newTestEvaluator()
	// A bare `return;` inside the if-body terminates only that nested
	// block (its result is None), so the enclosing function body keeps
	// running and its own later return wins.
	v := runOK(t, ev, `
		fn f() {
			if true {
				return;
			}
			return 42;
		}
		return f();
	`)
	if n, _ := v.AsNumber(); n != 42 {
		t.Errorf("result = %v, want 42", n)
	}
}

func TestReturnWithValueInsideIfDoesUnwind(t *testing.T) {
	ev, _ := newTestEvaluator()
	v := runOK(t, ev, `
		fn f() {
			if true {
				return 1;
			}
			return 2;
		}
		return f();
	`)
	if n, _ := v.AsNumber(); n != 1 {
		t.Errorf("result = %v, want 1", n)
	}
}

func TestIfRequiresBooleanCondition(t *testing.T) {
	ev, _ := newTestEvaluator()
	_, err := ev.Run(`if 1 { return true; }`)
	if err == nil {
		t.Fatal("expected an IllegalTypeInConditional error")
	}
}

func TestWhileCoercesNonBooleanCondition(t *testing.T) {
	ev, _ := newTestEvaluator()
	// while over a nonzero number is truthy exactly once-per-decrement
	// style loop body; here we just confirm no type error occurs and the
	// loop terminates via an explicit counter.
	v := runOK(t, ev, `
		let n = 3;
		let total = 0;
		while n {
			total = total + n;
			n = n - 1;
		}
		return total;
	`)
	if n, _ := v.AsNumber(); n != 6 {
		t.Errorf("result = %v, want 6 (3+2+1)", n)
	}
}

func TestForOverListAccumulates(t *testing.T) {
	ev, _ := newTestEvaluator()
	v := runOK(t, ev, `
		let total = 0;
		for item in [1, 2, 3] {
			total = total + item;
		}
		return total;
	`)
	if n, _ := v.AsNumber(); n != 6 {
		t.Errorf("result = %v, want 6", n)
	}
}

func TestForOverNonListSilentlyNoOps(t *testing.T) {
	ev, _ := newTestEvaluator()
	v := runOK(t, ev, `
		let total = 0;
		for item in "abc" {
			total = total + 1;
		}
		return total;
	`)
	if n, _ := v.AsNumber(); n != 0 {
		t.Errorf("result = %v, want 0 (non-list iterable silently skipped)", n)
	}
}

func TestRecursiveFunction(t *testing.T) {
	ev, _ := newTestEvaluator()
	v := runOK(t, ev, `
		fn fact(n) {
			if n <= 1 {
				return 1;
			}
			return n * fact(n - 1);
		}
		return fact(5);
	`)
	if n, _ := v.AsNumber(); n != 120 {
		t.Errorf("fact(5) = %v, want 120", n)
	}
}

func TestVariadicFunction(t *testing.T) {
	ev, _ := newTestEvaluator()
	v := runOK(t, ev, `
		fn sum(@nums) {
			let total = 0;
			for n in nums {
				total = total + n;
			}
			return total;
		}
		return sum(1, 2, 3, 4);
	`)
	if n, _ := v.AsNumber(); n != 10 {
		t.Errorf("sum(1,2,3,4) = %v, want 10", n)
	}
}

func TestClosureCapturesEnclosingVariable(t *testing.T) {
	ev, _ := newTestEvaluator()
	v := runOK(t, ev, `
		fn makeAdder(x) {
			return fn(y) { return x + y; };
		}
		let add5 = makeAdder(5);
		return add5(3);
	`)
	if n, _ := v.AsNumber(); n != 8 {
		t.Errorf("add5(3) = %v, want 8", n)
	}
}

func TestReferenceAssignmentWritesThroughCell(t *testing.T) {
	ev, _ := newTestEvaluator()
	v := runOK(t, ev, `
		let x = 1;
		let r = &x;
		r = 99;
		return x;
	`)
	if n, _ := v.AsNumber(); n != 99 {
		t.Errorf("x after writing through reference = %v, want 99", n)
	}
}

func TestLinkExpressionMethodCallOnString(t *testing.T) {
	ev, _ := newTestEvaluator()
	v := runOK(t, ev, `
		let s = "hello";
		return s.len();
	`)
	if n, _ := v.AsNumber(); n != 5 {
		t.Errorf("s.len() = %v, want 5", n)
	}
}

func TestLinkExpressionElementFieldAccess(t *testing.T) {
	ev, _ := newTestEvaluator()
	v := runOK(t, ev, `
		let page = div { class: "main" };
		return page.name;
	`)
	if s, _ := v.AsString(); s != "div" {
		t.Errorf("page.name = %q, want div", s)
	}
}

func TestElementMaterializationAttributesAndText(t *testing.T) {
	ev, _ := newTestEvaluator()
	v := runOK(t, ev, `
		return div { class: "main", "hello" };
	`)
	elem, ok := v.AsElement()
	if !ok {
		t.Fatal("expected an Element result")
	}
	if elem.Name != "div" {
		t.Errorf("element name = %q, want div", elem.Name)
	}
	cls, ok := elem.Attributes["class"]
	if !ok {
		t.Fatal("expected a class attribute")
	}
	if s, _ := cls.AsString(); s != "main" {
		t.Errorf("class attribute = %q, want main", s)
	}
	if len(elem.Content) != 1 || !elem.Content[0].IsText || elem.Content[0].Text != "hello" {
		t.Errorf("content = %+v, want a single text item \"hello\"", elem.Content)
	}
}

func TestElementEmbeddedIfContributesConditionally(t *testing.T) {
	ev, _ := newTestEvaluator()
	v := runOK(t, ev, `
		let show = true;
		return div {
			if show {
				return "shown";
			}
		};
	`)
	elem, _ := v.AsElement()
	if len(elem.Content) != 1 || elem.Content[0].Text != "shown" {
		t.Errorf("content = %+v, want a single text item \"shown\"", elem.Content)
	}
}

func TestElementEmbeddedNonBooleanConditionContributesNothing(t *testing.T) {
	ev, _ := newTestEvaluator()
	v := runOK(t, ev, `
		return div {
			if 1 {
				return "unreachable";
			}
		};
	`)
	elem, _ := v.AsElement()
	if len(elem.Content) != 0 {
		t.Errorf("content = %+v, want no contributed content", elem.Content)
	}
}

func TestPrintEmitsToOutputHandler(t *testing.T) {
	ev, out := newTestEvaluator()
	runOK(t, ev, `print("hi");`)
	if len(out.lines) != 1 || out.lines[0] != "hi" {
		t.Errorf("output = %v, want [\"hi\"]", out.lines)
	}
}

func TestIndexIntoList(t *testing.T) {
	ev, _ := newTestEvaluator()
	v := runOK(t, ev, `
		let items = [10, 20, 30];
		return items[1];
	`)
	if n, _ := v.AsNumber(); n != 20 {
		t.Errorf("items[1] = %v, want 20", n)
	}
}

func TestCallDepthCeilingEnforced(t *testing.T) {
	ev, _ := newTestEvaluator()
	ev.SetMaxCallDepth(5)
	_, err := ev.Run(`
		fn loop_forever(n) {
			return loop_forever(n + 1);
		}
		return loop_forever(0);
	`)
	if err == nil {
		t.Fatal("expected a call-depth ceiling error")
	}
}

func TestDynamicExecuteBuiltin(t *testing.T) {
	ev, _ := newTestEvaluator()
	v := runOK(t, ev, `return execute("return 1 + 1;");`)
	if n, _ := v.AsNumber(); n != 2 {
		t.Errorf("execute(\"1 + 1\") = %v, want 2", n)
	}
}
