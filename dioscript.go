// Package dioscript is the public embedding API for the Dioscript
// scripting language: a source-to-AST parser built from composable
// grammar combinators and a tree-walking evaluator with reference-backed
// scoping, closures, a module registry, and element materialization. It
// wires pkg/parser, pkg/env, pkg/module, and pkg/eval together behind a
// small construct/parse/evaluate surface; embedders needing lower-level
// access can still import those packages directly.
package dioscript

import (
	"github.com/gaarutyunov/dioscript/pkg/ast"
	"github.com/gaarutyunov/dioscript/pkg/dserr"
	"github.com/gaarutyunov/dioscript/pkg/eval"
	"github.com/gaarutyunov/dioscript/pkg/module"
	"github.com/gaarutyunov/dioscript/pkg/parser"
	"github.com/gaarutyunov/dioscript/pkg/stdlib"
	"github.com/gaarutyunov/dioscript/pkg/value"
)

// Value, CellID, and the closed error types are re-exported so a host
// rarely needs to import pkg/value or pkg/dserr directly.
type (
	Value        = value.Value
	CellID       = value.CellID
	ParseError   = dserr.ParseError
	RuntimeError = dserr.RuntimeError
)

// discardOutput is the zero-value OutputHandler: print/println calls are
// silently dropped unless a host supplies WithOutput.
type discardOutput struct{}

func (discardOutput) Emit(string) {}

// stdlibHost adapts *Dioscript to stdlib.Host, whose BindModule takes a
// module.Generator.
type stdlibHost struct{ d *Dioscript }

func (h stdlibHost) CreateVar(name string, v Value) (CellID, error) { return h.d.CreateVar(name, v) }
func (h stdlibHost) BindModule(name string, gen module.Generator)   { h.d.BindModule(name, gen) }

// Dioscript is one embedder-owned evaluator instance. Construct one per concurrent
// script.
type Dioscript struct {
	eval     *eval.Evaluator
	registry *module.Registry
	parser   *parser.Parser
}

// New constructs a Dioscript instance with the pkg/stdlib root functions
// and modules installed, applying opts in order, grounded on
// the `participle.Build[T](opts...)` functional-options style and on
// go-dws's `NewWithOptions` constructor shape.
func New(opts ...Option) *Dioscript {
	registry := module.NewRegistry()
	ev := eval.New(registry, discardOutput{})
	// The grammar is static; New() failing here would be a build-time
	// programming error, not a runtime condition a caller can recover from
	// (matching the package's own mustParser convenience).
	p, err := parser.New()
	if err != nil {
		panic(err)
	}
	d := &Dioscript{eval: ev, registry: registry, parser: p}
	stdlib.Install(stdlibHost{d: d})
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Parse compiles source to an AST without evaluating it.
func (d *Dioscript) Parse(source string) (*ast.Program, error) {
	return d.parser.ParseString(source)
}

// Evaluate runs an already-parsed program.
func (d *Dioscript) Evaluate(prog *ast.Program) (Value, error) {
	return d.eval.RunProgram(prog)
}

// EvaluateSource parses and evaluates source in one step.
func (d *Dioscript) EvaluateSource(source string) (Value, error) {
	return d.eval.Run(source)
}

// BindModule installs a named module; gen is called once, immediately.
func (d *Dioscript) BindModule(name string, gen func() module.Module) {
	d.registry.BindModule(name, gen)
}

// RegisterFunction binds a single native function as a root-level,
// single-name-callable value; a namespaced native function is better
// expressed via BindModule.
func (d *Dioscript) RegisterFunction(name string, arity int, fn func(ctx value.NativeContext, args []Value) (Value, error)) error {
	_, err := d.eval.CreateVar(name, value.FunctionValue(&value.Function{
		Name:   name,
		Native: &value.NativeFunction{Arity: arity, Fn: fn},
	}))
	return err
}

// CreateVar, SetVar, and GetVar expose host-initiated bindings on the
// evaluator's current (top-level) frame.
func (d *Dioscript) CreateVar(name string, v Value) (CellID, error) { return d.eval.CreateVar(name, v) }
func (d *Dioscript) SetVar(name string, v Value) (CellID, error)    { return d.eval.SetVar(name, v) }
func (d *Dioscript) GetVar(name string) (CellID, Value, error)      { return d.eval.GetVar(name) }

// GetCell and SetCell address cells directly.
func (d *Dioscript) GetCell(id CellID) (Value, error) { return d.eval.GetCell(id) }
func (d *Dioscript) SetCell(id CellID, v Value) error  { return d.eval.SetCell(id, v) }
