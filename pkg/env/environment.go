// Package env implements Dioscript's scope stack and cell arena. Grounded on
// packages/runtime/src/core/runtime.rs's scope/data fields and on the
// SemanticAnalyzer push/pop-scope stack-of-maps shape in
// pkg/visitors/semantic_analyzer.go.
package env

import (
	"github.com/gaarutyunov/dioscript/pkg/dserr"
	"github.com/gaarutyunov/dioscript/pkg/value"
)

// defaultMaxDerefHops bounds deref/follow-ref chains.
const defaultMaxDerefHops = 35

// frame is one entry on the scope stack: a name->cell map plus an isolation
// flag marking a function boundary.
type frame struct {
	vars    map[string]value.CellID
	isolate bool
}

// Environment owns the cell arena and the scope stack. One Environment is
// owned by exactly one evaluator instance: values and cell IDs
// produced by one must never be used against another.
type Environment struct {
	frames       []*frame
	cells        map[value.CellID]value.Value
	maxDerefHops int
}

// New creates an Environment with a single non-isolate root frame and the
// default deref-hop ceiling.
func New() *Environment {
	e := &Environment{cells: make(map[value.CellID]value.Value), maxDerefHops: defaultMaxDerefHops}
	e.frames = []*frame{{vars: make(map[string]value.CellID)}}
	return e
}

// SetMaxDerefHops overrides the deref/follow-ref hop ceiling. n <= 0 is ignored, keeping the default.
func (e *Environment) SetMaxDerefHops(n int) {
	if n > 0 {
		e.maxDerefHops = n
	}
}

// EnterScope pushes a new frame.
func (e *Environment) EnterScope(isolate bool) {
	e.frames = append(e.frames, &frame{vars: make(map[string]value.CellID), isolate: isolate})
}

// LeaveScope pops the top frame. Its bindings are dropped; cells reachable
// only from it become collectible by whatever GC strategy the host layers
// on top. This arena never proactively frees cells; process-lifetime
// retention is an accepted simple implementation.
func (e *Environment) LeaveScope() error {
	if len(e.frames) == 0 {
		return dserr.New(dserr.ScopeNotFound, "no scope to leave")
	}
	e.frames = e.frames[:len(e.frames)-1]
	return nil
}

// Depth reports the number of live frames.
func (e *Environment) Depth() int {
	return len(e.frames)
}

// GetVar walks the stack from the top down, stopping after the first
// isolate frame (inclusive).
func (e *Environment) GetVar(name string) (value.CellID, value.Value, error) {
	for i := len(e.frames) - 1; i >= 0; i-- {
		f := e.frames[i]
		if id, ok := f.vars[name]; ok {
			v, ok := e.cells[id]
			if !ok {
				return value.CellID{}, value.Value{}, dserr.New(dserr.UnknownPointer, "cell %s", id)
			}
			return id, v, nil
		}
		if f.isolate {
			break
		}
	}
	err := dserr.New(dserr.VariableNotFound, "variable %q not found", name)
	return value.CellID{}, value.Value{}, dserr.WithSuggestion(err, name, e.VisibleNames())
}

// CreateVar allocates a cell in the top frame. Fails on a
// reserved name or on shadowing within the same frame.
func (e *Environment) CreateVar(name string, v value.Value) (value.CellID, error) {
	if IsReserved(name) {
		return value.CellID{}, dserr.New(dserr.UsingReservedKeyword, "%q is a reserved keyword", name)
	}
	top := e.frames[len(e.frames)-1]
	if _, ok := top.vars[name]; ok {
		return value.CellID{}, dserr.New(dserr.VariableAlreadyDefined, "variable %q already defined", name)
	}
	id := value.NewCellID()
	e.cells[id] = v
	top.vars[name] = id
	return id, nil
}

// SetVar locates the existing binding for name, then either rewires it (if
// v is itself a Reference) or writes through the deref chain to the final
// cell.
func (e *Environment) SetVar(name string, v value.Value) (value.CellID, error) {
	curID, _, err := e.GetVar(name)
	if err != nil {
		return value.CellID{}, err
	}

	if refID, ok := v.AsReference(); ok {
		for i := len(e.frames) - 1; i >= 0; i-- {
			f := e.frames[i]
			if _, ok := f.vars[name]; ok {
				f.vars[name] = refID
				return refID, nil
			}
			if f.isolate {
				break
			}
		}
		return value.CellID{}, dserr.New(dserr.VariableNotFound, "variable %q not found", name)
	}

	target, err := e.followRef(curID)
	if err != nil {
		return value.CellID{}, err
	}
	e.cells[target] = v
	return target, nil
}

// followRef resolves a possibly-indirect cell to the final, non-Reference
// cell it points to, bounding the hop count.
func (e *Environment) followRef(id value.CellID) (value.CellID, error) {
	cur := id
	for hops := 0; ; hops++ {
		if hops > e.maxDerefHops {
			return value.CellID{}, dserr.New(dserr.CircularReference, "reference chain exceeded %d hops", e.maxDerefHops)
		}
		v, ok := e.cells[cur]
		if !ok {
			return value.CellID{}, dserr.New(dserr.UnknownPointer, "cell %s", cur)
		}
		if next, ok := v.AsReference(); ok {
			cur = next
			continue
		}
		return cur, nil
	}
}

// FindFunctionByName resolves a single (unqualified) callee name to a
// Function value, scanning every live frame top-down WITHOUT stopping at
// isolate boundaries, grounded on `get_function`'s
// `FunctionName::Single` branch in the original runtime, which scans
// `self.scopes.iter().rev()` unconditionally before falling back to the
// ordinary (isolate-respecting) `get_var`. This is what lets a named
// top-level function recurse and call its mutually-recursive siblings from
// inside its own isolate call frame.
func (e *Environment) FindFunctionByName(name string) (*value.Function, bool) {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if id, ok := e.frames[i].vars[name]; ok {
			if v, ok := e.cells[id]; ok {
				if fn, ok := v.AsFunction(); ok {
					return fn, true
				}
			}
		}
	}
	if _, v, err := e.GetVar(name); err == nil {
		if fn, ok := v.AsFunction(); ok {
			return fn, true
		}
	}
	return nil, false
}

// BindCapturedCell inserts a name->cell binding directly into the current
// top frame, bypassing CreateVar's reserved-keyword and duplicate checks.
// Used only to seed a freshly entered call frame with a closure's captured
// environment: the captured map already
// holds valid cell IDs from an outer live scope, so this aliases them
// rather than allocating new cells, matching
// `self.scopes.last_mut().unwrap().data.insert(k, id)` in the original.
func (e *Environment) BindCapturedCell(name string, id value.CellID) {
	top := e.frames[len(e.frames)-1]
	top.vars[name] = id
}

// GetCell / SetCell address cells directly.
func (e *Environment) GetCell(id value.CellID) (value.Value, error) {
	v, ok := e.cells[id]
	if !ok {
		return value.Value{}, dserr.New(dserr.UnknownPointer, "cell %s", id)
	}
	return v, nil
}

func (e *Environment) SetCell(id value.CellID, v value.Value) error {
	if _, ok := e.cells[id]; !ok {
		return dserr.New(dserr.UnknownPointer, "cell %s", id)
	}
	e.cells[id] = v
	return nil
}

// CreateCell allocates a cell directly, with no binding — used for anonymous
// data produced by `&name`-free internal operations and for deep-copy
// materialization.
func (e *Environment) CreateCell(v value.Value) value.CellID {
	id := value.NewCellID()
	e.cells[id] = v
	return id
}

// CaptureEnv snapshots name->cell bindings visible from the current top
// frame downward, stopping after the first isolate frame inclusive, and
// skipping skipName (the function's own name, so recursion resolves by
// name at call time rather than through the capture), grounded on
// `collect_free_vars` in the original runtime.
func (e *Environment) CaptureEnv(skipName string) map[string]value.CellID {
	out := make(map[string]value.CellID)
	for i := len(e.frames) - 1; i >= 0; i-- {
		f := e.frames[i]
		for name, id := range f.vars {
			if name == skipName {
				continue
			}
			if _, exists := out[name]; !exists {
				out[name] = id
			}
		}
		if f.isolate {
			break
		}
	}
	return out
}

// VisibleNames lists every name reachable by GetVar from the current frame,
// used only to generate "did you mean" suggestions.
func (e *Environment) VisibleNames() []string {
	seen := make(map[string]bool)
	var names []string
	for i := len(e.frames) - 1; i >= 0; i-- {
		f := e.frames[i]
		for name := range f.vars {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
		if f.isolate {
			break
		}
	}
	return names
}

// Dereference recursively resolves any Reference inside v, guarding cycles
// with a visited-ID set. Composite values whose
// elements contain references are deep-copied, matching `deref_inner`.
func (e *Environment) Dereference(v value.Value) (value.Value, error) {
	return e.derefInner(v, make(map[value.CellID]bool), 0)
}

func (e *Environment) derefInner(v value.Value, seen map[value.CellID]bool, hops int) (value.Value, error) {
	if hops > e.maxDerefHops {
		return value.Value{}, dserr.New(dserr.CircularReference, "dereference exceeded %d hops", e.maxDerefHops)
	}
	switch v.Kind() {
	case value.KindList:
		items, _ := v.AsList()
		out := make([]value.Value, len(items))
		for i, it := range items {
			dv, err := e.derefInner(it, seen, hops+1)
			if err != nil {
				return value.Value{}, err
			}
			out[i] = dv
		}
		return value.List(out), nil
	case value.KindDict:
		m, _ := v.AsDict()
		out := make(map[string]value.Value, len(m))
		for k, it := range m {
			dv, err := e.derefInner(it, seen, hops+1)
			if err != nil {
				return value.Value{}, err
			}
			out[k] = dv
		}
		return value.Dict(out), nil
	case value.KindTuple:
		a, b, _ := v.AsTuple()
		da, err := e.derefInner(a, seen, hops+1)
		if err != nil {
			return value.Value{}, err
		}
		db, err := e.derefInner(b, seen, hops+1)
		if err != nil {
			return value.Value{}, err
		}
		return value.Tuple(da, db), nil
	case value.KindReference:
		id, _ := v.AsReference()
		if seen[id] {
			return value.Value{}, dserr.New(dserr.CircularReference, "reference cycle at cell %s", id)
		}
		seen[id] = true
		inner, err := e.GetCell(id)
		if err != nil {
			return value.Value{}, err
		}
		return e.derefInner(inner, seen, hops+1)
	default:
		return v, nil
	}
}
