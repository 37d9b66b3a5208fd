package calltypes

import (
	"github.com/thiremani/beamtypes/bifs"
	"github.com/thiremani/beamtypes/types"
)

var mathTransfers = func() map[bifs.MFA]transferFunc {
	m := map[bifs.MFA]transferFunc{
		{Module: bifs.Math, Function: "pi", Arity: 0}: func(_ *Analyzer, _ []types.Shape) Result {
			return subUnsafe(types.Float{})
		},
	}
	for _, fn := range []string{
		"cos", "cosh", "sin", "sinh", "tan", "tanh",
		"acos", "acosh", "asin", "asinh", "atan", "atanh",
		"erf", "erfc", "exp", "log", "log2", "log10", "sqrt",
		"ceil", "floor",
	} {
		m[bifs.MFA{Module: bifs.Math, Function: fn, Arity: 1}] = floatOp
	}
	for _, fn := range []string{"atan2", "pow", "fmod"} {
		m[bifs.MFA{Module: bifs.Math, Function: fn, Arity: 2}] = floatOp
	}
	return m
}()

// floatOp types a math function over numbers returning a float.
func floatOp(_ *Analyzer, args []types.Shape) Result {
	return subUnsafe(types.Float{}, duplicate(len(args), number)...)
}
