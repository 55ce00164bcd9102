package stdlib

import (
	"math"

	"github.com/gaarutyunov/dioscript/pkg/module"
	"github.com/gaarutyunov/dioscript/pkg/value"
)

// numberModule mirrors library::number: abs takes exactly the receiver,
// max/min fold over the receiver plus every explicit argument.
func numberModule() module.Module {
	return module.Module{
		"abs": nativeItem(1, numberAbs),
		"max": nativeItem(-1, numberMax),
		"min": nativeItem(-1, numberMin),
	}
}

func numberAbs(_ value.NativeContext, args []value.Value) (value.Value, error) {
	n, ok := args[0].AsNumber()
	if !ok {
		return value.Number(0), nil
	}
	return value.Number(math.Abs(n)), nil
}

func numberMax(_ value.NativeContext, args []value.Value) (value.Value, error) {
	max := math.Inf(-1)
	for _, a := range args {
		if n, ok := a.AsNumber(); ok && n > max {
			max = n
		}
	}
	return value.Number(max), nil
}

func numberMin(_ value.NativeContext, args []value.Value) (value.Value, error) {
	min := math.Inf(1)
	for _, a := range args {
		if n, ok := a.AsNumber(); ok && n < min {
			min = n
		}
	}
	return value.Number(min), nil
}

// booleanModule is deliberately empty: the original runtime's `boolean`
// module exports no functions either, a placeholder for a future
// to_string/negate-style API.
func booleanModule() module.Module {
	return module.Module{}
}
