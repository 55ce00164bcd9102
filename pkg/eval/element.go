package eval

import (
	"github.com/gaarutyunov/dioscript/pkg/ast"
	"github.com/gaarutyunov/dioscript/pkg/value"
)

// materializeElement evaluates an element template to a runtime Element
//, grounded on `to_element`.
func (ev *Evaluator) materializeElement(lit *ast.ElementLit) (*value.Element, error) {
	attrs := make(map[string]value.Value)
	var content []value.ElementContent

	for _, item := range lit.Items {
		switch {
		case item.Attr != nil:
			v, err := ev.evalExpr(item.Attr.Value)
			if err != nil {
				return nil, err
			}
			attrs[item.Attr.Name] = v

		case item.If != nil:
			v, err := ev.elementCondition(item.If)
			if err != nil {
				return nil, err
			}
			contribute(v, attrs, &content)

		case item.While != nil:
			if err := ev.elementWhile(item.While, attrs, &content); err != nil {
				return nil, err
			}

		case item.For != nil:
			if err := ev.elementFor(item.For, attrs, &content); err != nil {
				return nil, err
			}

		case item.Expr != nil:
			v, err := ev.evalExpr(item.Expr)
			if err != nil {
				return nil, err
			}
			flatten(v, &content)
		}
	}

	return &value.Element{Name: lit.Name, Attributes: attrs, Content: content}, nil
}

// elementCondition evaluates an embedded `if` inside an element body. It is
// lenient about the condition's type where the top-level If statement is
// strict: the original's Condition arm only acts when the condition
// evaluates to a Boolean and is silently inert otherwise (no
// IllegalTypeInConditional), so a non-Boolean condition here simply
// contributes nothing.
func (ev *Evaluator) elementCondition(s *ast.IfStmt) (value.Value, error) {
	cond, err := ev.evalExpr(s.Cond)
	if err != nil {
		return value.Value{}, err
	}
	b, ok := cond.AsBoolean()
	if !ok {
		return value.None(), nil
	}

	var body []*ast.Statement
	if b {
		body = s.Body
	} else {
		body = s.Else
	}
	if body == nil {
		return value.None(), nil
	}
	ev.Env.EnterScope(false)
	v, _, err := ev.execBlock(body)
	ev.Env.LeaveScope()
	return v, err
}

// elementWhile evaluates an embedded `while`, contributing each iteration's
// body result. The condition is coerced with ToBoolean, matching the
// top-level While statement's leniency.
func (ev *Evaluator) elementWhile(s *ast.WhileStmt, attrs map[string]value.Value, content *[]value.ElementContent) error {
	for {
		cond, err := ev.evalExpr(s.Cond)
		if err != nil {
			return err
		}
		if !cond.ToBoolean() {
			return nil
		}
		ev.Env.EnterScope(false)
		v, _, err := ev.execBlock(s.Body)
		ev.Env.LeaveScope()
		if err != nil {
			return err
		}
		contribute(v, attrs, content)
	}
}

// elementFor evaluates an embedded `for`, contributing each iteration's
// body result. A non-List iterable yields zero iterations, matching
// execFor's leniency.
func (ev *Evaluator) elementFor(s *ast.ForStmt, attrs map[string]value.Value, content *[]value.ElementContent) error {
	iter, err := ev.evalExpr(s.Iter)
	if err != nil {
		return err
	}
	items, ok := iter.AsList()
	if !ok {
		return nil
	}
	for _, item := range items {
		ev.Env.EnterScope(false)
		if _, err := ev.Env.CreateVar(s.Var, item); err != nil {
			ev.Env.LeaveScope()
			return err
		}
		v, _, err := ev.execBlock(s.Body)
		ev.Env.LeaveScope()
		if err != nil {
			return err
		}
		contribute(v, attrs, content)
	}
	return nil
}

// contribute applies an embedded control-flow result to the element under
// construction: a (String, any)
// tuple becomes an attribute, a String/Number becomes text, an Element
// becomes a child. Anything else (including a bare Boolean or List) is
// dropped, matching `to_element`'s four match arms with no fallback case.
func contribute(v value.Value, attrs map[string]value.Value, content *[]value.ElementContent) {
	switch v.Kind() {
	case value.KindTuple:
		k, val, _ := v.AsTuple()
		if ks, ok := k.AsString(); ok {
			attrs[ks] = val
		}
	case value.KindString:
		s, _ := v.AsString()
		*content = append(*content, value.ElementContent{IsText: true, Text: s})
	case value.KindNumber:
		*content = append(*content, value.ElementContent{IsText: true, Text: v.ToDisplayString()})
	case value.KindElement:
		el, _ := v.AsElement()
		*content = append(*content, value.ElementContent{Child: el})
	}
}

// flatten implements the inline-expression flattening rule, grounded on `ast_element_value_to_content`.
func flatten(v value.Value, content *[]value.ElementContent) {
	switch v.Kind() {
	case value.KindNone:
		*content = append(*content, value.ElementContent{IsText: true, Text: "none"})
	case value.KindString:
		s, _ := v.AsString()
		*content = append(*content, value.ElementContent{IsText: true, Text: s})
	case value.KindNumber, value.KindBoolean:
		*content = append(*content, value.ElementContent{IsText: true, Text: v.ToDisplayString()})
	case value.KindElement:
		el, _ := v.AsElement()
		*content = append(*content, value.ElementContent{Child: el})
	case value.KindList:
		items, _ := v.AsList()
		for _, it := range items {
			flatten(it, content)
		}
	default:
		*content = append(*content, value.ElementContent{IsText: true, Text: v.ToDisplayString()})
	}
}
