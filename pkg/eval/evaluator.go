// Package eval implements Dioscript's tree-walking evaluator: statement
// execution, expression evaluation, function calls, closures, link
// expressions, and element materialization. It is grounded
// throughout on packages/runtime/src/core/runtime.rs's Runtime methods,
// translated from Rust's owned-Value/Result style into idiomatic Go.
package eval

import (
	"github.com/gaarutyunov/dioscript/pkg/ast"
	"github.com/gaarutyunov/dioscript/pkg/dserr"
	"github.com/gaarutyunov/dioscript/pkg/env"
	"github.com/gaarutyunov/dioscript/pkg/module"
	"github.com/gaarutyunov/dioscript/pkg/parser"
	"github.com/gaarutyunov/dioscript/pkg/value"
)

// maxCallDepth bounds script-function call recursion, a guard the original
// runtime leaves to the host process's call stack; Go's goroutine stacks
// grow but are not unbounded, so the evaluator enforces its own ceiling.
const maxCallDepth = 512

// OutputHandler receives text produced by host-bound print-style functions.
// The eval package supplies no default handler; when Output is nil, Emit
// drops the text.
type OutputHandler interface {
	Emit(s string)
}

// Evaluator owns one Environment, one module Registry, and one output sink
//. A single
// Evaluator must not be driven from more than one goroutine concurrently,
// and cells/references it produces must never cross into another instance.
type Evaluator struct {
	Env      *env.Environment
	Registry *module.Registry
	Output   OutputHandler
	parser   *parser.Parser
	depth    int
	maxDepth int
}

// New constructs an Evaluator over a fresh environment and the given module
// registry and output sink.
func New(registry *module.Registry, out OutputHandler) *Evaluator {
	// The grammar is static; a build failure here is a programming error,
	// not a runtime condition, matching parser.New's own documented
	// contract ("New() never fails in practice").
	p, err := parser.New()
	if err != nil {
		panic(err)
	}
	return &Evaluator{
		Env:      env.New(),
		Registry: registry,
		Output:   out,
		parser:   p,
		maxDepth: maxCallDepth,
	}
}

// SetMaxCallDepth overrides the script function call-recursion ceiling
//. n <= 0 is ignored.
func (ev *Evaluator) SetMaxCallDepth(n int) {
	if n > 0 {
		ev.maxDepth = n
	}
}

// Run parses and executes source as a top-level, non-isolate scope,
// returning the program's result value. Matches the
// original's `execute_scope` entry point: a fresh non-isolate frame wraps
// the whole statement list, so top-level `let` bindings live in that frame.
func (ev *Evaluator) Run(source string) (value.Value, error) {
	prog, err := ev.parser.ParseString(source)
	if err != nil {
		return value.Value{}, err
	}
	return ev.RunProgram(prog)
}

// RunProgram executes an already-parsed program in a fresh non-isolate
// scope.
func (ev *Evaluator) RunProgram(prog *ast.Program) (value.Value, error) {
	ev.Env.EnterScope(false)
	defer ev.Env.LeaveScope()
	v, _, err := ev.execBlock(prog.Stmts)
	return v, err
}

// RunSource implements value.NativeContext, supporting the host-exposed
// `execute(source)` / dynamic re-entrant evaluation facility, grounded on
// RustyExecutor::execute. The program always runs in a fresh non-isolate
// scope on top of the current stack; there is no isolate variant. A parse
// failure is reported as DynamicParseFailed.
func (ev *Evaluator) RunSource(source string) (value.Value, error) {
	prog, err := ev.parser.ParseString(source)
	if err != nil {
		return value.Value{}, dserr.New(dserr.DynamicParseFailed, "%s", err.Error())
	}
	return ev.RunProgram(prog)
}

func (ev *Evaluator) CreateVar(name string, v value.Value) (value.CellID, error) {
	return ev.Env.CreateVar(name, v)
}

func (ev *Evaluator) SetVar(name string, v value.Value) (value.CellID, error) {
	// Matches RustyExecutor::set_var: create on first use, set thereafter,
	// so host functions can treat a name as an implicit `let`.
	if _, _, err := ev.Env.GetVar(name); err != nil {
		return ev.Env.CreateVar(name, v)
	}
	return ev.Env.SetVar(name, v)
}

func (ev *Evaluator) GetVar(name string) (value.CellID, value.Value, error) {
	return ev.Env.GetVar(name)
}

func (ev *Evaluator) GetCell(id value.CellID) (value.Value, error) {
	return ev.Env.GetCell(id)
}

func (ev *Evaluator) SetCell(id value.CellID, v value.Value) error {
	return ev.Env.SetCell(id, v)
}

func (ev *Evaluator) Emit(s string) {
	if ev.Output != nil {
		ev.Output.Emit(s)
	}
}

var _ value.NativeContext = (*Evaluator)(nil)
