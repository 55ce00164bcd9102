package stdlib

import (
	"strings"

	"github.com/gaarutyunov/dioscript/pkg/dserr"
	"github.com/gaarutyunov/dioscript/pkg/module"
	"github.com/gaarutyunov/dioscript/pkg/value"
)

// stringModule mirrors library::string in the original runtime: every
// function's first parameter is the receiver string supplied implicitly by
// a link-expression call (`s.len()` passes `s` as args[0]).
func stringModule() module.Module {
	return module.Module{
		"join":      nativeItem(-1, stringJoin),
		"len":       nativeItem(1, stringLen),
		"repeat":    nativeItem(2, stringRepeat),
		"is_empty":  nativeItem(1, stringIsEmpty),
		"lowercase": nativeItem(1, stringLowercase),
		"uppercase": nativeItem(1, stringUppercase),
		"split":     nativeItem(2, stringSplit),
		"to_bytes":  nativeItem(1, stringToBytes),
	}
}

func receiverString(args []value.Value) (string, error) {
	if len(args) == 0 {
		return "", dserr.New(dserr.IllegalArgumentsNumber, "missing receiver argument")
	}
	s, ok := args[0].AsString()
	if !ok {
		return "", dserr.New(dserr.IllegalOperatorForType, "receiver must be a string, got %s", args[0].Kind())
	}
	return s, nil
}

func stringJoin(_ value.NativeContext, args []value.Value) (value.Value, error) {
	this, err := receiverString(args)
	if err != nil {
		return value.Value{}, err
	}
	var b strings.Builder
	b.WriteString(this)
	for _, a := range args[1:] {
		b.WriteString(a.ToDisplayString())
	}
	return value.String(b.String()), nil
}

func stringLen(_ value.NativeContext, args []value.Value) (value.Value, error) {
	this, err := receiverString(args)
	if err != nil {
		return value.Value{}, err
	}
	return value.Number(float64(len([]rune(this)))), nil
}

func stringRepeat(_ value.NativeContext, args []value.Value) (value.Value, error) {
	this, err := receiverString(args)
	if err != nil {
		return value.Value{}, err
	}
	n := 1.0
	if len(args) > 1 {
		if num, ok := args[1].AsNumber(); ok {
			n = num
		}
	}
	return value.String(strings.Repeat(this, int(n))), nil
}

func stringIsEmpty(_ value.NativeContext, args []value.Value) (value.Value, error) {
	this, err := receiverString(args)
	if err != nil {
		return value.Value{}, err
	}
	return value.Boolean(this == ""), nil
}

func stringLowercase(_ value.NativeContext, args []value.Value) (value.Value, error) {
	this, err := receiverString(args)
	if err != nil {
		return value.Value{}, err
	}
	return value.String(strings.ToLower(this)), nil
}

func stringUppercase(_ value.NativeContext, args []value.Value) (value.Value, error) {
	this, err := receiverString(args)
	if err != nil {
		return value.Value{}, err
	}
	return value.String(strings.ToUpper(this)), nil
}

func stringSplit(_ value.NativeContext, args []value.Value) (value.Value, error) {
	this, err := receiverString(args)
	if err != nil {
		return value.Value{}, err
	}
	if len(args) < 2 {
		return value.Value{}, dserr.New(dserr.IllegalArgumentsNumber, "split needs a separator argument")
	}
	sep, ok := args[1].AsString()
	if !ok {
		return value.Value{}, dserr.New(dserr.IllegalOperatorForType, "split's separator must be a string, got %s", args[1].Kind())
	}
	parts := strings.Split(this, sep)
	items := make([]value.Value, len(parts))
	for i, p := range parts {
		items[i] = value.String(p)
	}
	return value.List(items), nil
}

func stringToBytes(_ value.NativeContext, args []value.Value) (value.Value, error) {
	this, err := receiverString(args)
	if err != nil {
		return value.Value{}, err
	}
	b := []byte(this)
	items := make([]value.Value, len(b))
	for i, c := range b {
		items[i] = value.Number(float64(c))
	}
	return value.List(items), nil
}
