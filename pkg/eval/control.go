package eval

import (
	"github.com/gaarutyunov/dioscript/pkg/ast"
	"github.com/gaarutyunov/dioscript/pkg/dserr"
	"github.com/gaarutyunov/dioscript/pkg/value"
)

// execReturn evaluates the (optional) return expression, deep-derefs it,
// and unconditionally terminates the current block.
func (ev *Evaluator) execReturn(r *ast.ReturnStmt) (value.Value, bool, error) {
	v := value.None()
	if r.Value != nil {
		rv, err := ev.evalExpr(r.Value)
		if err != nil {
			return value.Value{}, false, err
		}
		v = rv
	}
	v, err := ev.Env.Dereference(v)
	if err != nil {
		return value.Value{}, false, err
	}
	return v, true, nil
}

// execIf evaluates the condition, requires it to be Boolean, and executes
// the matching branch in a fresh non-isolate frame. It only propagates
// termination to its caller when the branch's own result is non-None.
func (ev *Evaluator) execIf(s *ast.IfStmt) (value.Value, bool, error) {
	cond, err := ev.evalExpr(s.Cond)
	if err != nil {
		return value.Value{}, false, err
	}
	b, ok := cond.AsBoolean()
	if !ok {
		return value.Value{}, false, dserr.New(dserr.IllegalTypeInConditional, "condition must be boolean, got %s", cond.Kind())
	}

	var body []*ast.Statement
	if b {
		body = s.Body
	} else {
		body = s.Else
	}
	if body == nil {
		return value.None(), false, nil
	}

	ev.Env.EnterScope(false)
	v, _, err := ev.execBlock(body)
	ev.Env.LeaveScope()
	if err != nil {
		return value.Value{}, false, err
	}
	if v.Kind() != value.KindNone {
		return v, true, nil
	}
	return value.None(), false, nil
}

// execWhile loops while the condition is truthy, running the body in a
// fresh non-isolate frame each iteration; a non-None iteration result
// breaks the loop and propagates. Unlike If, the
// condition is coerced with ToBoolean rather than required to already be a
// Boolean: the original's loop arm calls `to_boolean_data()` instead of
// pattern-matching `Value::Boolean`, so a While over, say, a Number is a
// valid (if unusual) truthiness test rather than an error.
func (ev *Evaluator) execWhile(s *ast.WhileStmt) (value.Value, bool, error) {
	for {
		cond, err := ev.evalExpr(s.Cond)
		if err != nil {
			return value.Value{}, false, err
		}
		if !cond.ToBoolean() {
			break
		}

		ev.Env.EnterScope(false)
		v, _, err := ev.execBlock(s.Body)
		ev.Env.LeaveScope()
		if err != nil {
			return value.Value{}, false, err
		}
		if v.Kind() != value.KindNone {
			return v, true, nil
		}
	}
	return value.None(), false, nil
}

// execFor evaluates the iterable and, when it is a List, binds the loop
// variable to each element in a fresh frame per iteration, running the body
// with the same non-None-propagation rule as While. A non-List iterable is
// silently skipped with zero iterations: the original runtime's
// `LoopExecuteType::Iter` arm only has a `value_name() == "list"` branch
// and no error path for any other tag, so a for-loop over a String or Dict
// is grounded, faithful no-op rather than an invented error kind.
func (ev *Evaluator) execFor(s *ast.ForStmt) (value.Value, bool, error) {
	iter, err := ev.evalExpr(s.Iter)
	if err != nil {
		return value.Value{}, false, err
	}
	items, ok := iter.AsList()
	if !ok {
		return value.None(), false, nil
	}

	for _, item := range items {
		ev.Env.EnterScope(false)
		if _, err := ev.Env.CreateVar(s.Var, item); err != nil {
			ev.Env.LeaveScope()
			return value.Value{}, false, err
		}
		v, _, err := ev.execBlock(s.Body)
		ev.Env.LeaveScope()
		if err != nil {
			return value.Value{}, false, err
		}
		if v.Kind() != value.KindNone {
			return v, true, nil
		}
	}
	return value.None(), false, nil
}

// execLet evaluates the right-hand side and either creates a fresh binding
// (`let`) or assigns through an existing one.
func (ev *Evaluator) execLet(s *ast.LetStmt) (value.Value, bool, error) {
	v, err := ev.evalExpr(s.Value)
	if err != nil {
		return value.Value{}, false, err
	}
	if s.IsLet {
		if _, err := ev.Env.CreateVar(s.Name, v); err != nil {
			return value.Value{}, false, err
		}
	} else {
		if _, err := ev.Env.SetVar(s.Name, v); err != nil {
			return value.Value{}, false, err
		}
	}
	return value.None(), false, nil
}
