package eval

import (
	"github.com/gaarutyunov/dioscript/pkg/ast"
	"github.com/gaarutyunov/dioscript/pkg/value"
)

// evalAtom evaluates a primary expression form,
// grounded on `to_value`. Variable reads fully dereference.
func (ev *Evaluator) evalAtom(a *ast.Atom) (value.Value, error) {
	switch {
	case a.Number != nil:
		return parseNumberLit(a.Number.Value)

	case a.Bool != nil:
		return value.Boolean(a.Bool.Value == "true"), nil

	case a.None != nil:
		return value.None(), nil

	case a.String != nil:
		return value.String(ast.Unquote(a.String.Value)), nil

	case a.List != nil:
		items := make([]value.Value, len(a.List.Items))
		for i, it := range a.List.Items {
			v, err := ev.evalExpr(it)
			if err != nil {
				return value.Value{}, err
			}
			items[i] = v
		}
		return value.List(items), nil

	case a.Dict != nil:
		m := make(map[string]value.Value, len(a.Dict.Entries))
		for _, ent := range a.Dict.Entries {
			v, err := ev.evalExpr(ent.Value)
			if err != nil {
				return value.Value{}, err
			}
			m[ast.Unquote(ent.Key)] = v
		}
		return value.Dict(m), nil

	case a.Tuple != nil:
		fv, err := ev.evalExpr(a.Tuple.First)
		if err != nil {
			return value.Value{}, err
		}
		sv, err := ev.evalExpr(a.Tuple.Second)
		if err != nil {
			return value.Value{}, err
		}
		return value.Tuple(fv, sv), nil

	case a.Element != nil:
		elem, err := ev.materializeElement(a.Element)
		if err != nil {
			return value.Value{}, err
		}
		return value.ElementValue(elem), nil

	case a.AnonFn != nil:
		return ev.evalFnLitAtom(a.AnonFn), nil

	case a.TakeRef != nil:
		id, _, err := ev.Env.GetVar(a.TakeRef.Name)
		if err != nil {
			return value.Value{}, err
		}
		return value.Reference(id), nil

	case a.Call != nil:
		return ev.evalCallExpr(a.Call)

	case a.Index != nil:
		return ev.evalIndex(a.Index)

	case a.Var != nil:
		_, v, err := ev.Env.GetVar(a.Var.Name)
		if err != nil {
			return value.Value{}, err
		}
		return ev.Env.Dereference(v)

	case a.Paren != nil:
		return ev.evalExpr(a.Paren)
	}
	return value.None(), nil
}

// evalFnLitAtom builds a Function value for a function literal appearing
// as an expression. An anonymous literal (no name) captures its free
// variables from the enclosing live scope; a named inline literal, like a
// named top-level definition, captures nothing.
func (ev *Evaluator) evalFnLitAtom(lit *ast.FnLit) value.Value {
	var captured map[string]value.CellID
	if lit.Name == "" {
		captured = ev.Env.CaptureEnv("")
	}
	return scriptFunctionValue(lit, captured)
}
