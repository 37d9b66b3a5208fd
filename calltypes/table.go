package calltypes

import (
	"fmt"

	"github.com/thiremani/beamtypes/bifs"
	"github.com/thiremani/beamtypes/types"
)

// Result is the outcome of type transfer for one call.
type Result struct {
	// Return is the shape of the value returned on success. None means the
	// call never returns.
	Return types.Shape
	// Args holds, per argument, the shape it must have for the call to
	// succeed.
	Args []types.Shape
	// Safe is set when meeting Args with the actual argument shapes is the
	// only narrowing needed, i.e. the call fails exactly when an argument
	// lies outside its required shape.
	Safe bool
}

func subSafe(ret types.Shape, args ...types.Shape) Result {
	return Result{Return: ret, Args: args, Safe: true}
}

func subUnsafe(ret types.Shape, args ...types.Shape) Result {
	return Result{Return: ret, Args: args}
}

// transferFunc computes the Result of a call from its argument shapes.
// It is only invoked with as many arguments as the arity it is keyed by.
type transferFunc func(a *Analyzer, args []types.Shape) Result

// Analyzer answers type queries about calls to built-in functions.
type Analyzer struct {
	Registry bifs.Registry
}

// New returns an Analyzer that consults reg for safe and exit built-ins
// and for the operator classes of the erlang fallback.
func New(reg bifs.Registry) *Analyzer {
	return &Analyzer{Registry: reg}
}

var std = New(bifs.Default())

// Types returns the transfer result for mod:fn(args...) using the default
// registry.
func Types(mod, fn string, args []types.Shape) Result {
	return std.Types(mod, fn, args)
}

// Types returns the shape mod:fn(args...) returns on success and the shape
// each argument must have for it to succeed.
func (a *Analyzer) Types(mod, fn string, args []types.Shape) Result {
	mfa := bifs.MFA{Module: mod, Function: fn, Arity: len(args)}
	var r Result
	if tf, ok := lookup(mfa); ok {
		r = tf(a, args)
	} else if mod == bifs.Erlang {
		r = a.erlangFallback(fn, args)
	} else {
		r = subUnsafe(types.Any{}, anys(len(args))...)
	}
	if len(r.Args) != len(args) {
		panic(fmt.Sprintf("%s: transfer returned %d argument shapes", mfa, len(r.Args)))
	}
	return r
}

func lookup(mfa bifs.MFA) (transferFunc, bool) {
	var table map[bifs.MFA]transferFunc
	switch mfa.Module {
	case bifs.Erlang:
		table = erlangTransfers
	case bifs.Lists:
		table = listsTransfers
	case bifs.Math:
		table = mathTransfers
	default:
		return nil, false
	}
	tf, ok := table[mfa]
	return tf, ok
}

// erlangFallback covers erlang functions without a dedicated transfer.
func (a *Analyzer) erlangFallback(fn string, args []types.Shape) Result {
	arity := len(args)
	mfa := bifs.MFA{Module: bifs.Erlang, Function: fn, Arity: arity}
	switch {
	case a.Registry.IsExit(mfa):
		return Result{Return: types.None{}, Args: append([]types.Shape(nil), args...)}
	case a.Registry.IsArithOp(fn, arity):
		return mixedArith(args)
	case a.Registry.IsTypeTest(fn, arity), a.Registry.IsCompOp(fn, arity):
		return subUnsafe(types.MakeBoolean(), anys(arity)...)
	}
	return subUnsafe(types.Any{}, anys(arity)...)
}

// numClass orders the numeric results of mixed arithmetic.
type numClass int

const (
	numNone numClass = iota
	numInteger
	numNumber
	numFloat
)

func classifyNumber(s types.Shape) numClass {
	switch types.Meet(s, types.Number{}).Kind() {
	case types.NoneKind:
		return numNone
	case types.IntegerKind:
		return numInteger
	case types.FloatKind:
		return numFloat
	default:
		return numNumber
	}
}

// combine: an impossible operand makes the result impossible, a float
// operand makes it a float, otherwise any unknown number makes it a number.
func (c numClass) combine(d numClass) numClass {
	if c == numNone || d == numNone {
		return numNone
	}
	return max(c, d)
}

func (c numClass) shape() types.Shape {
	switch c {
	case numInteger:
		return types.Integer{}
	case numFloat:
		return types.Float{}
	case numNumber:
		return types.Number{}
	default:
		return types.None{}
	}
}

// mixedArith types an arithmetic operator whose operands may be integers or
// floats.
func mixedArith(args []types.Shape) Result {
	acc := numInteger
	for _, s := range args {
		acc = acc.combine(classifyNumber(s))
	}
	return subUnsafe(acc.shape(), duplicate(len(args), types.Shape(types.Number{}))...)
}
