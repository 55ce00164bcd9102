package eval

import (
	"github.com/gaarutyunov/dioscript/pkg/ast"
	"github.com/gaarutyunov/dioscript/pkg/dserr"
	"github.com/gaarutyunov/dioscript/pkg/value"
)

// execBlock runs a statement list in the current (already-entered) frame.
// It returns the block's result value and whether the block terminated
// early. Termination happens only on an explicit `return` or on a nested
// if/while/for whose own body yielded a non-None value; a
// terminated block stops executing its remaining sibling statements, but
// termination on a None value does not itself force the *enclosing*
// construct to terminate — each level re-applies the non-None test on its
// own, matching execute_scope_without_new_scope's
// `if !res.as_none() { finish = true }` gating.
func (ev *Evaluator) execBlock(stmts []*ast.Statement) (value.Value, bool, error) {
	if err := ev.prebindFunctions(stmts); err != nil {
		return value.Value{}, false, err
	}

	for _, s := range stmts {
		v, terminate, err := ev.execStatement(s)
		if err != nil {
			return value.Value{}, false, err
		}
		if terminate {
			return v, true, nil
		}
	}
	return value.None(), false, nil
}

// prebindFunctions creates bindings for every named function definition in
// stmts before any statement runs, so forward and mutual references
// resolve. Grounded on `collect_functions`.
func (ev *Evaluator) prebindFunctions(stmts []*ast.Statement) error {
	for _, s := range stmts {
		if s.Fn == nil || s.Fn.Fn.Name == "" {
			continue
		}
		fn := scriptFunctionValue(s.Fn.Fn, nil)
		if _, err := ev.Env.CreateVar(s.Fn.Fn.Name, fn); err != nil {
			return err
		}
	}
	return nil
}

// scriptFunctionValue builds the Function value for a script-defined
// closure. captured is nil for named top-level definitions, or a snapshot from CaptureEnv for anonymous literals.
func scriptFunctionValue(lit *ast.FnLit, captured map[string]value.CellID) value.Value {
	var names []string
	variadic := ""
	if lit.Params != nil {
		if lit.Params.IsVariadic() {
			variadic = lit.Params.Variadic
		} else {
			names = lit.Params.Names
		}
	}
	return value.FunctionValue(&value.Function{
		Name: lit.Name,
		Script: &value.ScriptFunction{
			Name:     lit.Name,
			Params:   names,
			Variadic: variadic,
			Body:     lit.Body,
			Captured: captured,
		},
	})
}

// execStatement dispatches a single statement. The returned bool follows
// execBlock's termination contract.
func (ev *Evaluator) execStatement(s *ast.Statement) (value.Value, bool, error) {
	switch {
	case s.Use != nil:
		ev.Registry.Use(s.Use.Path)
		return value.None(), false, nil

	case s.Fn != nil:
		if s.Fn.Fn.Name == "" {
			return value.Value{}, false, dserr.New(dserr.AnonymousFunctionInRoot, "anonymous function used as a statement")
		}
		// already bound by prebindFunctions.
		return value.None(), false, nil

	case s.Return != nil:
		return ev.execReturn(s.Return)

	case s.If != nil:
		return ev.execIf(s.If)

	case s.While != nil:
		return ev.execWhile(s.While)

	case s.For != nil:
		return ev.execFor(s.For)

	case s.Let != nil:
		return ev.execLet(s.Let)

	case s.Call != nil:
		_, err := ev.evalCallExpr(s.Call.Call)
		return value.None(), false, err
	}
	return value.None(), false, nil
}
