// Package stdlib is Dioscript's illustrative host standard library: a set
// of root-level functions (print/println/type/execute/range) plus string,
// number, and boolean modules, all built on the public embedding API
// rather than on pkg/eval internals. It exists to exercise that API end to
// end and to give embedders a starting point; nothing in pkg/eval imports
// it. Grounded on stdlib/mod.rs and library/types.rs's
// root/string/number modules in the original runtime.
package stdlib

import (
	"github.com/gaarutyunov/dioscript/pkg/module"
	"github.com/gaarutyunov/dioscript/pkg/value"
)

// Host is the subset of the embedding API stdlib needs: binding root
// functions as callable-by-name values and registering library modules.
type Host interface {
	CreateVar(name string, v value.Value) (value.CellID, error)
	BindModule(name string, gen module.Generator)
}

// Install binds the root function set and the string/number/boolean
// modules onto host. Call it once, before running any script, so
// single-name lookups find print/println/type/execute/range the way the
// scope-stack scan in resolveCallee expects.
func Install(host Host) {
	for name, fn := range rootFunctions() {
		host.CreateVar(name, value.FunctionValue(&value.Function{Name: name, Native: fn}))
	}
	host.BindModule("string", stringModule)
	host.BindModule("number", numberModule)
	host.BindModule("boolean", booleanModule)
}

func nativeItem(arity int, fn func(ctx value.NativeContext, args []value.Value) (value.Value, error)) *module.Item {
	return &module.Item{Function: &value.Function{Native: &value.NativeFunction{Arity: arity, Fn: fn}}}
}
