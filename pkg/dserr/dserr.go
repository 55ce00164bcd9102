// Package dserr defines Dioscript's two top-level error categories —
// ParseError and RuntimeError — as closed sets of kinds.
package dserr

import (
	"fmt"

	"github.com/xrash/smetrics"
)

// ParseErrorKind enumerates parser failure kinds.
type ParseErrorKind int

const (
	SyntaxError ParseErrorKind = iota
	UnmatchedTrailingContent
)

// ParseError carries the failing offset, kind, and rendered context lines
//.
type ParseError struct {
	Kind    ParseErrorKind
	Message string
	Offset  int
	Line    int
	Column  int
	Context string // rendered ±2 lines with a caret, see parser.Diagnostic
}

func (e *ParseError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s\n%s", e.Message, e.Context)
	}
	return e.Message
}

// RuntimeErrorKind enumerates the closed set of runtime failure kinds.
type RuntimeErrorKind int

const (
	IllegalOperatorForType RuntimeErrorKind = iota
	CompareDiffType
	VariableNotFound
	VariableAlreadyDefined
	FunctionNotFound
	BindFunctionNotFound
	ModuleNotFound
	ModulePartNotFound
	UnknownAttribute
	IllegalTypeInConditional
	IllegalIndexType
	IndexNotFound
	IllegalArgumentsNumber
	AnonymousFunctionInRoot
	UsingReservedKeyword
	UnknownPointer
	CircularReference
	DynamicParseFailed
	ScopeNotFound
)

var kindNames = map[RuntimeErrorKind]string{
	IllegalOperatorForType:   "IllegalOperatorForType",
	CompareDiffType:          "CompareDiffType",
	VariableNotFound:         "VariableNotFound",
	VariableAlreadyDefined:   "VariableAlreadyDefined",
	FunctionNotFound:         "FunctionNotFound",
	BindFunctionNotFound:     "BindFunctionNotFound",
	ModuleNotFound:           "ModuleNotFound",
	ModulePartNotFound:       "ModulePartNotFound",
	UnknownAttribute:         "UnknownAttribute",
	IllegalTypeInConditional: "IllegalTypeInConditional",
	IllegalIndexType:         "IllegalIndexType",
	IndexNotFound:            "IndexNotFound",
	IllegalArgumentsNumber:   "IllegalArgumentsNumber",
	AnonymousFunctionInRoot:  "AnonymousFunctionInRoot",
	UsingReservedKeyword:     "UsingReservedKeyword",
	UnknownPointer:           "UnknownPointer",
	CircularReference:        "CircularReference",
	DynamicParseFailed:       "DynamicParseFailed",
	ScopeNotFound:            "ScopeNotFound",
}

func (k RuntimeErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UnknownRuntimeError"
}

// RuntimeError is the evaluator's fatal-to-the-current-evaluation error
// type. Policy is "recover nothing; surface the first error" —
// RuntimeError is never retried or swallowed.
type RuntimeError struct {
	Kind    RuntimeErrorKind
	Message string
	// Suggestion is an optional "did you mean X?" hint, attached to
	// VariableNotFound / FunctionNotFound / ModuleNotFound using a
	// Jaro-Winkler distance over names visible at the failure site.
	Suggestion string
}

func (e *RuntimeError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s: %s (did you mean %q?)", e.Kind, e.Message, e.Suggestion)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func New(kind RuntimeErrorKind, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithSuggestion attaches the closest candidate name (by Jaro-Winkler
// similarity) to a RuntimeError, when any candidate is reasonably close.
func WithSuggestion(err *RuntimeError, name string, candidates []string) *RuntimeError {
	best := ""
	bestScore := 0.0
	for _, c := range candidates {
		score := smetrics.JaroWinkler(name, c, 0.7, 4)
		if score > bestScore {
			bestScore = score
			best = c
		}
	}
	if bestScore >= 0.84 {
		err.Suggestion = best
	}
	return err
}
