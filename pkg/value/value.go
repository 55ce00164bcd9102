// Package value defines Dioscript's runtime value universe: a closed tagged union of None, String, Number,
// Boolean, List, Dict, Tuple, Element, Function, and Reference.
package value

import "github.com/google/uuid"

// CellID is the opaque identifier addressing a mutable cell in the
// environment's arena. It is a distinct
// type (rather than an alias) so a Reference's payload can't be confused
// with any other uuid-shaped value in the runtime.
type CellID uuid.UUID

// NewCellID allocates a fresh, globally unique cell identifier.
func NewCellID() CellID {
	return CellID(uuid.New())
}

func (c CellID) String() string {
	return uuid.UUID(c).String()
}

// Kind is the fixed set of runtime value tags.
type Kind int

const (
	KindNone Kind = iota
	KindString
	KindNumber
	KindBoolean
	KindList
	KindDict
	KindTuple
	KindElement
	KindFunction
	KindReference
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindList:
		return "list"
	case KindDict:
		return "dict"
	case KindTuple:
		return "tuple"
	case KindElement:
		return "element"
	case KindFunction:
		return "function"
	case KindReference:
		return "reference"
	default:
		return "unknown"
	}
}

// Value is a single runtime value. Exactly the field matching Kind is
// meaningful; the zero Value is None.
type Value struct {
	kind Kind

	str  string
	num  float64
	b    bool
	list []Value
	dict map[string]Value
	pair *[2]Value
	elem *Element
	fn   *Function
	ref  CellID
}

// Element is a materialized element value: a name, attribute
// mapping, and ordered content list of ElementContent items.
type Element struct {
	Name       string
	Attributes map[string]Value
	Content    []ElementContent
}

// ElementContent is either a nested element or literal text.
type ElementContent struct {
	Child *Element
	Text  string
	IsText bool
}

// Function is either a script closure or a host-provided callable.
// Exactly one of Script/Native is non-nil.
type Function struct {
	Name   string
	Script *ScriptFunction
	Native *NativeFunction
}

// ScriptFunction is a Dioscript-defined function value.
type ScriptFunction struct {
	Name      string
	Params    []string
	Variadic  string // empty when not variadic
	Body      any    // *ast.FnLit body statements ([]*ast.Statement), kept as `any` so pkg/value does not import pkg/ast
	Captured  map[string]CellID
}

// NativeFunction is a host-provided callable. Arity -1 means
// variadic (any argument count accepted).
type NativeFunction struct {
	Arity int
	Fn    func(ctx NativeContext, args []Value) (Value, error)
}

// NativeContext is the capability surface a native function receives,
// implemented by the evaluator.
type NativeContext interface {
	RunSource(source string) (Value, error)
	CreateVar(name string, v Value) (CellID, error)
	SetVar(name string, v Value) (CellID, error)
	GetVar(name string) (CellID, Value, error)
	GetCell(id CellID) (Value, error)
	SetCell(id CellID, v Value) error
	Emit(s string)
}

func None() Value                 { return Value{kind: KindNone} }
func String(s string) Value       { return Value{kind: KindString, str: s} }
func Number(n float64) Value      { return Value{kind: KindNumber, num: n} }
func Boolean(b bool) Value        { return Value{kind: KindBoolean, b: b} }
func List(items []Value) Value    { return Value{kind: KindList, list: items} }
func Dict(m map[string]Value) Value { return Value{kind: KindDict, dict: m} }
func Tuple(a, b Value) Value      { return Value{kind: KindTuple, pair: &[2]Value{a, b}} }
func ElementValue(e *Element) Value { return Value{kind: KindElement, elem: e} }
func FunctionValue(f *Function) Value { return Value{kind: KindFunction, fn: f} }
func Reference(id CellID) Value   { return Value{kind: KindReference, ref: id} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

func (v Value) AsNumber() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

func (v Value) AsBoolean() (bool, bool) {
	if v.kind != KindBoolean {
		return false, false
	}
	return v.b, true
}

func (v Value) AsList() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return v.list, true
}

func (v Value) AsDict() (map[string]Value, bool) {
	if v.kind != KindDict {
		return nil, false
	}
	return v.dict, true
}

func (v Value) AsTuple() (Value, Value, bool) {
	if v.kind != KindTuple {
		return Value{}, Value{}, false
	}
	return v.pair[0], v.pair[1], true
}

func (v Value) AsElement() (*Element, bool) {
	if v.kind != KindElement {
		return nil, false
	}
	return v.elem, true
}

func (v Value) AsFunction() (*Function, bool) {
	if v.kind != KindFunction {
		return nil, false
	}
	return v.fn, true
}

func (v Value) AsReference() (CellID, bool) {
	if v.kind != KindReference {
		return CellID{}, false
	}
	return v.ref, true
}

// ToBoolean coerces a value to a Boolean for truthiness tests, grounded on
// `to_boolean_data()` in the original runtime.
func (v Value) ToBoolean() bool {
	switch v.kind {
	case KindNumber:
		return v.num != 0
	case KindBoolean:
		return v.b
	case KindTuple:
		return v.pair[0].ToBoolean() && v.pair[1].ToBoolean()
	default:
		return false
	}
}

// ToDisplayString renders a value for text/content flattening purposes.
func (v Value) ToDisplayString() string {
	switch v.kind {
	case KindNone:
		return "none"
	case KindString:
		return v.str
	case KindNumber:
		return formatNumber(v.num)
	case KindBoolean:
		if v.b {
			return "true"
		}
		return "false"
	case KindList:
		parts := make([]string, len(v.list))
		for i, it := range v.list {
			parts[i] = it.ToDisplayString()
		}
		return "[" + joinComma(parts) + "]"
	case KindDict:
		return "{dict}"
	case KindTuple:
		return "(" + v.pair[0].ToDisplayString() + ", " + v.pair[1].ToDisplayString() + ")"
	case KindElement:
		return "<" + v.elem.Name + ">"
	case KindFunction:
		return "<function>"
	case KindReference:
		return "<reference " + v.ref.String() + ">"
	default:
		return ""
	}
}

func joinComma(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}

// Equal implements structural equality across all tags.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNone:
		return true
	case KindString:
		return a.str == b.str
	case KindNumber:
		return a.num == b.num
	case KindBoolean:
		return a.b == b.b
	case KindList:
		if len(a.list) != len(b.list) {
			return false
		}
		for i := range a.list {
			if !Equal(a.list[i], b.list[i]) {
				return false
			}
		}
		return true
	case KindDict:
		if len(a.dict) != len(b.dict) {
			return false
		}
		for k, av := range a.dict {
			bv, ok := b.dict[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	case KindTuple:
		return Equal(a.pair[0], b.pair[0]) && Equal(a.pair[1], b.pair[1])
	case KindElement:
		return elementEqual(a.elem, b.elem)
	case KindFunction:
		return a.fn == b.fn
	case KindReference:
		return a.ref == b.ref
	default:
		return false
	}
}

func elementEqual(a, b *Element) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Name != b.Name || len(a.Content) != len(b.Content) || len(a.Attributes) != len(b.Attributes) {
		return false
	}
	for k, av := range a.Attributes {
		bv, ok := b.Attributes[k]
		if !ok || !Equal(av, bv) {
			return false
		}
	}
	for i := range a.Content {
		ca, cb := a.Content[i], b.Content[i]
		if ca.IsText != cb.IsText || ca.Text != cb.Text {
			return false
		}
		if !elementEqual(ca.Child, cb.Child) {
			return false
		}
	}
	return true
}
