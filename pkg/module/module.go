// Package module implements Dioscript's hierarchical module registry and
// `use`-alias resolution. Grounded on
// packages/runtime/src/core/module.rs's ModuleGenerator/ModuleItem shape.
package module

import (
	"strings"

	"github.com/gaarutyunov/dioscript/pkg/dserr"
	"github.com/gaarutyunov/dioscript/pkg/value"
)

// Item is one entry in a module: a function, a plain value, or a
// sub-module.
type Item struct {
	Function *value.Function
	Value    *value.Value
	Sub      Module
}

// Module is a name->Item mapping. Modules form a tree via Sub items.
type Module map[string]*Item

// Generator produces a Module, called lazily by BindModule so a host can
// defer constructing its module tree until it is actually bound.
type Generator func() Module

// Registry is the top-level module tree plus the `use` alias table.
type Registry struct {
	top     map[string]Module
	aliases map[string][]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		top:     make(map[string]Module),
		aliases: make(map[string][]string),
	}
}

// BindModule installs a top-level module under name.
func (r *Registry) BindModule(name string, gen Generator) {
	r.top[name] = gen()
}

// BindModuleValue installs an already-constructed Module directly,
// convenient for tests and for nested sub-modules.
func (r *Registry) BindModuleValue(name string, m Module) {
	r.top[name] = m
}

// Use registers alias as a short name for the fully qualified path
//.
func (r *Registry) Use(path []string) string {
	if len(path) == 0 {
		return ""
	}
	alias := path[len(path)-1]
	r.aliases[alias] = append([]string(nil), path...)
	return alias
}

// Lookup resolves a dotted module path, honoring use-aliases on the
// leading segment.
func (r *Registry) Lookup(path []string) (*Item, error) {
	if len(path) == 0 {
		return nil, dserr.New(dserr.ModuleNotFound, "empty module path")
	}
	head := path[0]
	if mod, ok := r.top[head]; ok {
		return descend(mod, path[1:], head)
	}
	if q, ok := r.aliases[head]; ok && len(q) > 0 && q[len(q)-1] == head {
		spliced := append(append([]string{}, q...), path[1:]...)
		return r.Lookup(spliced)
	}
	names := make([]string, 0, len(r.top))
	for n := range r.top {
		names = append(names, n)
	}
	err := dserr.New(dserr.ModuleNotFound, "module %q not found", head)
	return nil, dserr.WithSuggestion(err, head, names)
}

func descend(mod Module, rest []string, traversed string) (*Item, error) {
	if len(rest) == 0 {
		return nil, dserr.New(dserr.ModuleNotFound, "module path %q refers to a module, not an item", traversed)
	}
	cur := mod
	for i, part := range rest {
		it, ok := cur[part]
		if !ok {
			names := make([]string, 0, len(cur))
			for n := range cur {
				names = append(names, n)
			}
			err := dserr.New(dserr.ModulePartNotFound, "%q not found in module %q", part, traversed)
			return nil, dserr.WithSuggestion(err, part, names)
		}
		if i == len(rest)-1 {
			return it, nil
		}
		if it.Sub == nil {
			return nil, dserr.New(dserr.ModulePartNotFound, "%q is not a module in %q", part, traversed)
		}
		cur = it.Sub
		traversed = traversed + "::" + part
	}
	return nil, dserr.New(dserr.ModuleNotFound, "empty module path")
}

// LookupMethod resolves a link-expression method call: the module bound under moduleName (typically a runtime
// value tag like "string" or "number") must contain a function item named
// itemName. Grounded on execute_link_expr's
// `self.modules.get(&meta_this.value_name())` lookup.
func (r *Registry) LookupMethod(moduleName, itemName string) (*Item, bool) {
	mod, ok := r.top[moduleName]
	if !ok {
		return nil, false
	}
	it, ok := mod[itemName]
	if !ok || it.Function == nil {
		return nil, false
	}
	return it, true
}

// PathString renders a path as `a::b::c`, for error messages.
func PathString(path []string) string {
	return strings.Join(path, "::")
}
