package eval

import (
	"github.com/gaarutyunov/dioscript/pkg/ast"
	"github.com/gaarutyunov/dioscript/pkg/dserr"
	"github.com/gaarutyunov/dioscript/pkg/value"
)

// evalExpr walks the precedence chain top-down: `||` loosest, then `&&`,
// comparisons, `+ -`, `* / %`, unary, link/postfix, atom. Grounded on `execute_calculate`'s recursive descent.
func (ev *Evaluator) evalExpr(e *ast.Expr) (value.Value, error) {
	v, err := ev.evalAndExpr(e.Left)
	if err != nil {
		return value.Value{}, err
	}
	for _, op := range e.Ops {
		r, err := ev.evalAndExpr(op.Right)
		if err != nil {
			return value.Value{}, err
		}
		v, err = applyOp(value.OpOr, v, r)
		if err != nil {
			return value.Value{}, err
		}
	}
	return v, nil
}

func (ev *Evaluator) evalAndExpr(e *ast.AndExpr) (value.Value, error) {
	v, err := ev.evalCmpExpr(e.Left)
	if err != nil {
		return value.Value{}, err
	}
	for _, op := range e.Ops {
		r, err := ev.evalCmpExpr(op.Right)
		if err != nil {
			return value.Value{}, err
		}
		v, err = applyOp(value.OpAnd, v, r)
		if err != nil {
			return value.Value{}, err
		}
	}
	return v, nil
}

func (ev *Evaluator) evalCmpExpr(e *ast.CmpExpr) (value.Value, error) {
	v, err := ev.evalAddExpr(e.Left)
	if err != nil {
		return value.Value{}, err
	}
	for _, op := range e.Ops {
		r, err := ev.evalAddExpr(op.Right)
		if err != nil {
			return value.Value{}, err
		}
		v, err = applyOp(value.BinOp(op.Op), v, r)
		if err != nil {
			return value.Value{}, err
		}
	}
	return v, nil
}

func (ev *Evaluator) evalAddExpr(e *ast.AddExpr) (value.Value, error) {
	v, err := ev.evalMulExpr(e.Left)
	if err != nil {
		return value.Value{}, err
	}
	for _, op := range e.Ops {
		r, err := ev.evalMulExpr(op.Right)
		if err != nil {
			return value.Value{}, err
		}
		v, err = applyOp(value.BinOp(op.Op), v, r)
		if err != nil {
			return value.Value{}, err
		}
	}
	return v, nil
}

func (ev *Evaluator) evalMulExpr(e *ast.MulExpr) (value.Value, error) {
	v, err := ev.evalUnaryExpr(e.Left)
	if err != nil {
		return value.Value{}, err
	}
	for _, op := range e.Ops {
		r, err := ev.evalUnaryExpr(op.Right)
		if err != nil {
			return value.Value{}, err
		}
		v, err = applyOp(value.BinOp(op.Op), v, r)
		if err != nil {
			return value.Value{}, err
		}
	}
	return v, nil
}

// applyOp wraps value.Apply, translating its OpError into the appropriate
// closed RuntimeErrorKind.
func applyOp(op value.BinOp, l, r value.Value) (value.Value, error) {
	v, err := value.Apply(op, l, r)
	if err == nil {
		return v, nil
	}
	if oe, ok := err.(*value.OpError); ok {
		if oe.Mixed {
			return value.Value{}, dserr.New(dserr.CompareDiffType, "%s", oe.Error())
		}
		return value.Value{}, dserr.New(dserr.IllegalOperatorForType, "%s", oe.Error())
	}
	return value.Value{}, err
}

// evalUnaryExpr applies an optional leading `-`/`!` to a link expression.
func (ev *Evaluator) evalUnaryExpr(e *ast.UnaryExpr) (value.Value, error) {
	v, err := ev.evalLinkExpr(e.Link)
	if err != nil {
		return value.Value{}, err
	}
	switch e.Op {
	case "-":
		n, ok := v.AsNumber()
		if !ok {
			return value.Value{}, dserr.New(dserr.IllegalOperatorForType, "unary - is not defined for type %s", v.Kind())
		}
		return value.Number(-n), nil
	case "!":
		b, ok := v.AsBoolean()
		if !ok {
			return value.Value{}, dserr.New(dserr.IllegalOperatorForType, "unary ! is not defined for type %s", v.Kind())
		}
		return value.Boolean(!b), nil
	}
	return v, nil
}

// evalIndex implements `name[idx]` indexed access, grounded on `get_from_index`.
func (ev *Evaluator) evalIndex(iv *ast.IndexVar) (value.Value, error) {
	_, base, err := ev.Env.GetVar(iv.Name)
	if err != nil {
		return value.Value{}, err
	}
	base, err = ev.Env.Dereference(base)
	if err != nil {
		return value.Value{}, err
	}
	idx, err := ev.evalExpr(iv.Index)
	if err != nil {
		return value.Value{}, err
	}
	return indexInto(base, idx)
}

func indexInto(base, idx value.Value) (value.Value, error) {
	switch base.Kind() {
	case value.KindString:
		n, ok := idx.AsNumber()
		if !ok {
			return value.Value{}, dserr.New(dserr.IllegalIndexType, "string index must be a number, got %s", idx.Kind())
		}
		s, _ := base.AsString()
		runes := []rune(s)
		i := int(n)
		if i < 0 || i >= len(runes) {
			return value.Value{}, dserr.New(dserr.IndexNotFound, "index %d out of range for string of length %d", i, len(runes))
		}
		return value.String(string(runes[i])), nil

	case value.KindList:
		n, ok := idx.AsNumber()
		if !ok {
			return value.Value{}, dserr.New(dserr.IllegalIndexType, "list index must be a number, got %s", idx.Kind())
		}
		items, _ := base.AsList()
		i := int(n)
		if i < 0 || i >= len(items) {
			return value.Value{}, dserr.New(dserr.IndexNotFound, "index %d out of range for list of length %d", i, len(items))
		}
		return items[i], nil

	case value.KindDict:
		k, ok := idx.AsString()
		if !ok {
			return value.Value{}, dserr.New(dserr.IllegalIndexType, "dict index must be a string, got %s", idx.Kind())
		}
		m, _ := base.AsDict()
		v, ok := m[k]
		if !ok {
			return value.Value{}, dserr.New(dserr.IndexNotFound, "key %q not found", k)
		}
		return v, nil

	case value.KindTuple:
		n, ok := idx.AsNumber()
		if !ok {
			return value.Value{}, dserr.New(dserr.IllegalIndexType, "tuple index must be a number, got %s", idx.Kind())
		}
		a, b, _ := base.AsTuple()
		switch int(n) {
		case 0:
			return a, nil
		case 1:
			return b, nil
		default:
			return value.Value{}, dserr.New(dserr.IndexNotFound, "tuple index must be 0 or 1, got %d", int(n))
		}

	default:
		return value.Value{}, dserr.New(dserr.IllegalIndexType, "type %s is not indexable", base.Kind())
	}
}
