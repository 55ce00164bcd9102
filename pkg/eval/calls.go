package eval

import (
	"github.com/gaarutyunov/dioscript/pkg/ast"
	"github.com/gaarutyunov/dioscript/pkg/dserr"
	"github.com/gaarutyunov/dioscript/pkg/value"
)

// evalCallExpr evaluates a (possibly namespaced) function call: arguments
// left to right, then callee resolution, then invocation.
func (ev *Evaluator) evalCallExpr(c *ast.CallExpr) (value.Value, error) {
	args := make([]value.Value, len(c.Args))
	for i, a := range c.Args {
		v, err := ev.evalExpr(a)
		if err != nil {
			return value.Value{}, err
		}
		args[i] = v
	}

	fn, err := ev.resolveCallee(c.Path)
	if err != nil {
		return value.Value{}, err
	}
	return ev.invokeFunction(fn, args)
}

// resolveCallee resolves a call target by arity of its dotted path: a
// single unqualified name walks the scope stack for a Function binding
// (grounded on `get_function`'s `FunctionName::Single` branch, which does
// not respect isolate boundaries — see Environment.FindFunctionByName); a
// namespaced path resolves through the module registry, honoring `use`
// aliases.
func (ev *Evaluator) resolveCallee(path []string) (*value.Function, error) {
	if len(path) == 1 {
		name := path[0]
		if fn, ok := ev.Env.FindFunctionByName(name); ok {
			return fn, nil
		}
		if item, err := ev.Registry.Lookup(path); err == nil && item.Function != nil {
			return item.Function, nil
		}
		err := dserr.New(dserr.FunctionNotFound, "function %q not found", name)
		return nil, dserr.WithSuggestion(err, name, ev.Env.VisibleNames())
	}

	item, err := ev.Registry.Lookup(path)
	if err != nil {
		return nil, err
	}
	if item.Function == nil {
		return nil, dserr.New(dserr.FunctionNotFound, "%q does not refer to a function", moduleJoin(path))
	}
	return item.Function, nil
}

func moduleJoin(path []string) string {
	out := path[0]
	for _, p := range path[1:] {
		out += "::" + p
	}
	return out
}

// invokeFunction dispatches to the script or host implementation of fn
//, grounded on `execute_function_by_ft`.
func (ev *Evaluator) invokeFunction(fn *value.Function, args []value.Value) (value.Value, error) {
	if fn.Native != nil {
		if fn.Native.Arity != -1 && len(args) != fn.Native.Arity {
			return value.Value{}, dserr.New(dserr.IllegalArgumentsNumber, "function %q needs %d argument(s), got %d", fn.Name, fn.Native.Arity, len(args))
		}
		return fn.Native.Fn(ev, args)
	}

	sf := fn.Script
	if sf == nil {
		return value.Value{}, dserr.New(dserr.FunctionNotFound, "value is not callable")
	}

	ev.depth++
	if ev.depth > ev.maxDepth {
		ev.depth--
		return value.Value{}, dserr.New(dserr.IllegalArgumentsNumber, "call depth exceeded %d", ev.maxDepth)
	}
	defer func() { ev.depth-- }()

	ev.Env.EnterScope(true)
	// A parameter shadows a captured free variable of the same name.
	shadowed := make(map[string]bool, len(sf.Params)+1)
	for _, p := range sf.Params {
		shadowed[p] = true
	}
	if sf.Variadic != "" {
		shadowed[sf.Variadic] = true
	}
	for name, id := range sf.Captured {
		if shadowed[name] {
			continue
		}
		ev.Env.BindCapturedCell(name, id)
	}

	fixed := sf.Params
	hasVariadic := sf.Variadic != ""
	if (!hasVariadic && len(args) != len(fixed)) || (hasVariadic && len(args) < len(fixed)) {
		ev.Env.LeaveScope()
		return value.Value{}, dserr.New(dserr.IllegalArgumentsNumber, "function %q needs %d argument(s), got %d", sf.Name, len(fixed), len(args))
	}

	for idx, name := range fixed {
		if _, err := ev.Env.CreateVar(name, args[idx]); err != nil {
			ev.Env.LeaveScope()
			return value.Value{}, err
		}
	}
	if hasVariadic {
		rest := append([]value.Value(nil), args[len(fixed):]...)
		if _, err := ev.Env.CreateVar(sf.Variadic, value.List(rest)); err != nil {
			ev.Env.LeaveScope()
			return value.Value{}, err
		}
	}

	body, _ := sf.Body.([]*ast.Statement)
	result, _, err := ev.execBlock(body)
	ev.Env.LeaveScope()
	return result, err
}
