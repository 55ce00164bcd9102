// Package ast defines the abstract syntax tree produced by pkg/parser:
// statements, expressions, values, and element templates for Dioscript.
package ast

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Program is a complete parsed source file: a flat statement list executed
// top to bottom by the evaluator.
type Program struct {
	Pos   lexer.Position
	Stmts []*Statement `@@*`
}

// Statement is the ordered union of Dioscript's statement forms. Only one
// field is non-nil after a successful parse.
type Statement struct {
	Pos    lexer.Position
	Use    *UseStmt    `  @@`
	Fn     *FnStmt     `| @@`
	Return *ReturnStmt `| @@`
	If     *IfStmt     `| @@`
	While  *WhileStmt  `| @@`
	For    *ForStmt    `| @@`
	Let    *LetStmt    `| @@`
	Call   *CallStmt   `| @@`
}

// UseStmt maps the last path component to the full module path.
type UseStmt struct {
	Pos  lexer.Position
	Path []string `"use" @Ident ("::" @Ident)* ";"`
}

// FnStmt is a function definition appearing as a statement. Fn.Name is empty
// for an anonymous `fn(...) {...}` used bare at statement position, which
// the evaluator rejects as AnonymousFunctionInRoot.
type FnStmt struct {
	Pos lexer.Position
	Fn  *FnLit `@@`
}

// FnLit is the function literal grammar shared by the statement form and
// the anonymous-function atom.
type FnLit struct {
	Pos    lexer.Position
	Name   string       `"fn" @Ident?`
	Params *ParamList   `"(" @@? ")"`
	Body   []*Statement `"{" @@* "}"`
}

// ParamList is either a fixed positional name list or a single variadic name
// (prefixed with "@") collecting all remaining arguments as a list.
type ParamList struct {
	Pos      lexer.Position
	Variadic string   `(  "@" @Ident`
	Names    []string ` | @Ident ("," @Ident)* )?`
}

// IsVariadic reports whether the parameter list collects a variadic tail.
func (p *ParamList) IsVariadic() bool {
	return p != nil && p.Variadic != ""
}

// ReturnStmt evaluates Value (None if absent) and terminates the frame.
type ReturnStmt struct {
	Pos   lexer.Position
	Value *Expr `"return" @@? ";"`
}

// IfStmt executes Body when Cond is Boolean true, else Else.
type IfStmt struct {
	Pos  lexer.Position
	Cond *Expr        `"if" @@ "{"`
	Body []*Statement `@@* "}"`
	Else []*Statement `("else" "{" @@* "}")?`
}

// WhileStmt loops Body while Cond is truthy.
type WhileStmt struct {
	Pos  lexer.Position
	Cond *Expr        `"while" @@ "{"`
	Body []*Statement `@@* "}"`
}

// ForStmt binds Var to each element of Iter in turn and executes Body.
type ForStmt struct {
	Pos  lexer.Position
	Var  string       `"for" @Ident "in"`
	Iter *Expr        `@@ "{"`
	Body []*Statement `@@* "}"`
}

// LetStmt creates a binding when IsLet is set, otherwise assigns to an
// existing one.
type LetStmt struct {
	Pos   lexer.Position
	IsLet bool   `(@"let")?`
	Name  string `@Ident "="`
	Value *Expr  `@@ ";"`
}

// CallStmt is a function-call expression statement, discarding its result.
type CallStmt struct {
	Pos  lexer.Position
	Call *CallExpr `@@ ";"`
}

// CallExpr is a (possibly namespaced) function call: Path's last component
// is the callee name, any leading components are a module path.
type CallExpr struct {
	Pos  lexer.Position
	Path []string `@Ident ("::" @Ident)*`
	Args []*Expr  `"(" (@@ ("," @@)*)? ")"`
}

// IndexVar is `name[expr]` indexed access.
type IndexVar struct {
	Pos   lexer.Position
	Name  string `@Ident "["`
	Index *Expr  `@@ "]"`
}

// VarRef is a bare variable reference.
type VarRef struct {
	Pos  lexer.Position
	Name string `@Ident`
}

// TakeRef is the explicit `&name` reference-of expression.
type TakeRef struct {
	Pos  lexer.Position
	Name string `"&" @Ident`
}

// ListLit is `[expr, ...]`.
type ListLit struct {
	Pos   lexer.Position
	Items []*Expr `"[" (@@ ("," @@)*)? "]"`
}

// DictLit is `{ "k": expr, ... }`.
type DictLit struct {
	Pos     lexer.Position
	Entries []*DictEntry `"{" (@@ ("," @@)*)? ","? "}"`
}

// DictEntry is a single `"key": expr` pair. Key retains its surrounding
// quotes as scanned; callers use Unquote to recover the literal text.
type DictEntry struct {
	Pos   lexer.Position
	Key   string `@String ":"`
	Value *Expr  `@@`
}

// TupleLit is `(expr, expr)`.
type TupleLit struct {
	Pos    lexer.Position
	First  *Expr `"(" @@ ","`
	Second *Expr `@@ ")"`
}

// ElementLit is an element template: a tag name followed by a brace-bound
// list of attribute pairs, children, and embedded control flow.
type ElementLit struct {
	Pos   lexer.Position
	Name  string      `@Ident "{"`
	Items []*ElemItem `(@@ ("," @@)*)? ","? "}"`
}

// ElemItem is one comma-separated item inside an element body.
type ElemItem struct {
	Pos   lexer.Position
	If    *IfStmt    `  @@`
	For   *ForStmt   `| @@`
	While *WhileStmt `| @@`
	Attr  *AttrPair  `| @@`
	Expr  *Expr      `| @@`
}

// AttrPair is an explicit `name: value` attribute assignment.
type AttrPair struct {
	Pos   lexer.Position
	Name  string `(@Ident | @AttrName) ":"`
	Value *Expr  `@@`
}

// NumberLit is a decimal double literal.
type NumberLit struct {
	Pos   lexer.Position
	Value string `@Number`
}

// BoolLit is `true` or `false`.
type BoolLit struct {
	Pos   lexer.Position
	Value string `@("true" | "false")`
}

// StringLit is a quoted string literal, including its surrounding quotes.
type StringLit struct {
	Pos   lexer.Position
	Value string `@String`
}

// NoneLit is the `none` literal.
type NoneLit struct {
	Pos    lexer.Position
	Marker string `@"none"`
}

// Atom is the ordered union of primary expression forms, tried in the listed order so the parser's lookahead can
// disambiguate shared `Ident` prefixes by the token that follows.
type Atom struct {
	Pos     lexer.Position
	Number  *NumberLit  `  @@`
	Bool    *BoolLit    `| @@`
	None    *NoneLit    `| @@`
	String  *StringLit  `| @@`
	List    *ListLit    `| @@`
	Dict    *DictLit    `| @@`
	Tuple   *TupleLit   `| @@`
	Element *ElementLit `| @@`
	AnonFn  *FnLit      `| @@`
	TakeRef *TakeRef    `| @@`
	Call    *CallExpr   `| @@`
	Index   *IndexVar   `| @@`
	Var     *VarRef     `| @@`
	Paren   *Expr       `| "(" @@ ")"`
}

// LinkPart is a single postfix `.field` or `.call(args)` step.
type LinkPart struct {
	Pos  lexer.Position
	Name string    `"." @Ident`
	Call *CallArgs `@@?`
}

// CallArgs is the argument list of a link-expression method call.
type CallArgs struct {
	Pos  lexer.Position
	Args []*Expr `"(" (@@ ("," @@)*)? ")"`
}

// LinkExpr is an atom followed by zero or more postfix field/call steps,
// binding tighter than any arithmetic operator.
type LinkExpr struct {
	Pos   lexer.Position
	Atom  *Atom       `@@`
	Parts []*LinkPart `@@*`
}

// UnaryExpr is an optional unary `-`/`!` applied to a link expression.
type UnaryExpr struct {
	Pos  lexer.Position
	Op   string    `@("-" | "!")?`
	Link *LinkExpr `@@`
}

// MulOp is one `* / %` step.
type MulOp struct {
	Pos   lexer.Position
	Op    string     `@("*" | "/" | "%")`
	Right *UnaryExpr `@@`
}

// MulExpr is a `* / %` precedence level.
type MulExpr struct {
	Pos  lexer.Position
	Left *UnaryExpr `@@`
	Ops  []*MulOp   `@@*`
}

// AddOp is one `+ -` step.
type AddOp struct {
	Pos   lexer.Position
	Op    string   `@("+" | "-")`
	Right *MulExpr `@@`
}

// AddExpr is a `+ -` precedence level.
type AddExpr struct {
	Pos  lexer.Position
	Left *MulExpr `@@`
	Ops  []*AddOp `@@*`
}

// CmpOp is one comparison step.
type CmpOp struct {
	Pos   lexer.Position
	Op    string   `@("==" | "!=" | ">=" | "<=" | ">" | "<")`
	Right *AddExpr `@@`
}

// CmpExpr is the comparison precedence level.
type CmpExpr struct {
	Pos  lexer.Position
	Left *AddExpr `@@`
	Ops  []*CmpOp `@@*`
}

// AndOp is one `&&` step.
type AndOp struct {
	Pos   lexer.Position
	Op    string   `@"&&"`
	Right *CmpExpr `@@`
}

// AndExpr is the `&&` precedence level.
type AndExpr struct {
	Pos  lexer.Position
	Left *CmpExpr `@@`
	Ops  []*AndOp `@@*`
}

// OrOp is one `||` step.
type OrOp struct {
	Pos   lexer.Position
	Op    string   `@"||"`
	Right *AndExpr `@@`
}

// Expr is the top of the precedence chain: `||` binds loosest.
type Expr struct {
	Pos  lexer.Position
	Left *AndExpr `@@`
	Ops  []*OrOp  `@@*`
}
