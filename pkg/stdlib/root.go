package stdlib

import (
	"strings"

	"github.com/gaarutyunov/dioscript/pkg/dserr"
	"github.com/gaarutyunov/dioscript/pkg/value"
)

// rootFunctions builds the free, single-name-callable function set,
// grounded on stdlib::root in the original runtime.
func rootFunctions() map[string]*value.NativeFunction {
	return map[string]*value.NativeFunction{
		"print":   {Arity: -1, Fn: printFn},
		"println": {Arity: -1, Fn: printlnFn},
		"type":    {Arity: 1, Fn: typeFn},
		"execute": {Arity: -1, Fn: executeFn},
		"import":  {Arity: 1, Fn: importFn},
		"range":   {Arity: -1, Fn: rangeFn},
	}
}

func joinArgs(args []value.Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.ToDisplayString()
	}
	return strings.Join(parts, ", ")
}

func printFn(ctx value.NativeContext, args []value.Value) (value.Value, error) {
	ctx.Emit(joinArgs(args))
	return value.None(), nil
}

func printlnFn(ctx value.NativeContext, args []value.Value) (value.Value, error) {
	ctx.Emit(joinArgs(args) + "\n")
	return value.None(), nil
}

func typeFn(_ value.NativeContext, args []value.Value) (value.Value, error) {
	return value.String(args[0].Kind().String()), nil
}

// executeFn implements the dynamic re-entrant evaluation builtin"): it parses and runs args[0] as a fresh Dioscript
// program through the same evaluator and environment, grounded on
// RustyExecutor::execute.
func executeFn(ctx value.NativeContext, args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		return value.Value{}, dserr.New(dserr.IllegalArgumentsNumber, "execute needs a source string")
	}
	src, ok := args[0].AsString()
	if !ok {
		return value.Value{}, dserr.New(dserr.IllegalOperatorForType, "execute's argument must be a string, got %s", args[0].Kind())
	}
	return ctx.RunSource(src)
}

// importFn is a deliberate no-op: the original runtime ships the same
// placeholder (an empty match with no resolvable module names), left for
// a module-loading feature that was never implemented.
func importFn(_ value.NativeContext, _ []value.Value) (value.Value, error) {
	return value.None(), nil
}

// rangeFn builds a List of Numbers: range(end) for [0, end), range(start,
// end) for [start, end). Not present in the original stdlib; added to
// exercise list-producing host functions the way the rest of the pack's
// example interpreters (e.g. lisp1_5) expose a range/iota primitive.
func rangeFn(_ value.NativeContext, args []value.Value) (value.Value, error) {
	var start, end float64
	switch len(args) {
	case 1:
		n, ok := args[0].AsNumber()
		if !ok {
			return value.Value{}, dserr.New(dserr.IllegalOperatorForType, "range's argument must be a number, got %s", args[0].Kind())
		}
		start, end = 0, n
	case 2:
		s, ok1 := args[0].AsNumber()
		e, ok2 := args[1].AsNumber()
		if !ok1 || !ok2 {
			return value.Value{}, dserr.New(dserr.IllegalOperatorForType, "range's arguments must be numbers")
		}
		start, end = s, e
	default:
		return value.Value{}, dserr.New(dserr.IllegalArgumentsNumber, "range needs 1 or 2 arguments, got %d", len(args))
	}

	var items []value.Value
	for n := start; n < end; n++ {
		items = append(items, value.Number(n))
	}
	return value.List(items), nil
}
