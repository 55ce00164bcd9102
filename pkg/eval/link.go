package eval

import (
	"github.com/gaarutyunov/dioscript/pkg/ast"
	"github.com/gaarutyunov/dioscript/pkg/dserr"
	"github.com/gaarutyunov/dioscript/pkg/value"
)

// evalLinkExpr evaluates a head atom followed by zero or more postfix
// `.field` / `.call(args)` steps, grounded
// on `execute_link_expr`. Module dispatch for every call step in the chain
// is keyed off the head value's tag (`meta_this`), computed once, matching
// the original rather than re-deriving it from the current, possibly
// field-narrowed, `this`.
//
// A call step evaluates and returns immediately, not continuing to any
// further postfix parts — the original runtime's FunctionCall arm always
// returns from inside the loop, so a chain can carry at most one call,
// trailing any number of leading field accesses.
//
// Deviating from the original in one respect: `this` is kept fully
// dereferenced at every step (including right before a call), rather than
// left as a raw Reference when the head atom is a bare variable with no
// preceding field access. The original's stdlib method implementations
// (e.g. string::len) unwrap args[0] as a concrete String; passing a raw
// Reference through unchanged would break every such call on a plain
// variable, so this adaptation keeps method dispatch usable while
// preserving the rest of the original's shape.
//
// A bare atom with no postfix steps is returned exactly as evalAtom
// produced it, so `&name` still yields a Reference.
func (ev *Evaluator) evalLinkExpr(le *ast.LinkExpr) (value.Value, error) {
	metaThis, err := ev.evalAtom(le.Atom)
	if err != nil {
		return value.Value{}, err
	}
	if len(le.Parts) == 0 {
		return metaThis, nil
	}

	this := metaThis
	for _, part := range le.Parts {
		if part.Call != nil {
			this, err = ev.Env.Dereference(this)
			if err != nil {
				return value.Value{}, err
			}
			args := make([]value.Value, 0, len(part.Call.Args)+1)
			args = append(args, this)
			for _, a := range part.Call.Args {
				v, err := ev.evalExpr(a)
				if err != nil {
					return value.Value{}, err
				}
				args = append(args, v)
			}

			item, ok := ev.Registry.LookupMethod(metaThis.Kind().String(), part.Name)
			if !ok {
				return value.Value{}, dserr.New(dserr.FunctionNotFound, "function %q not found on type %s", part.Name, metaThis.Kind())
			}
			result, err := ev.invokeFunction(item.Function, args)
			if err != nil {
				return value.Value{}, err
			}
			return ev.Env.Dereference(result)
		}

		this, err = ev.Env.Dereference(this)
		if err != nil {
			return value.Value{}, err
		}
		elem, ok := this.AsElement()
		if !ok {
			return value.Value{}, dserr.New(dserr.UnknownAttribute, "field %q is not defined on type %s", part.Name, this.Kind())
		}
		switch part.Name {
		case "name":
			this = value.String(elem.Name)
		case "attributes":
			this = value.Dict(elem.Attributes)
		case "content":
			items := make([]value.Value, len(elem.Content))
			for i, c := range elem.Content {
				if c.IsText {
					items[i] = value.String(c.Text)
				} else {
					items[i] = value.ElementValue(c.Child)
				}
			}
			this = value.List(items)
		default:
			return value.Value{}, dserr.New(dserr.UnknownAttribute, "unknown element field %q", part.Name)
		}
	}
	return ev.Env.Dereference(this)
}
