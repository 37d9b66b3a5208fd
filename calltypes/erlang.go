package calltypes

import (
	"github.com/thiremani/beamtypes/bifs"
	"github.com/thiremani/beamtypes/types"
)

func erl(fn string, arity int) bifs.MFA {
	return bifs.MFA{Module: bifs.Erlang, Function: fn, Arity: arity}
}

var (
	boolean   = types.MakeBoolean()
	binary    = types.MakeBitstring(8)
	bitstring = types.Shape(types.Bitstring{})
	integer   = types.Shape(types.Integer{})
	number    = types.Shape(types.Number{})
	cons      = types.Shape(types.Cons{Elem: types.Any{}})
	anyShape  = types.Shape(types.Any{})
)

var erlangTransfers = map[bifs.MFA]transferFunc{
	// Safe unless the argument has the wrong type.
	erl("map_size", 1): func(_ *Analyzer, _ []types.Shape) Result {
		return subSafe(integer, types.Map{})
	},
	erl("tuple_size", 1): func(_ *Analyzer, args []types.Shape) Result {
		ret := integer
		if t, ok := types.Meet(args[0], types.Tuple{}).(types.Tuple); ok && t.Exact {
			ret = types.MakeIntegerValue(int64(t.Size))
		}
		return subSafe(ret, types.Tuple{})
	},
	erl("bit_size", 1): func(_ *Analyzer, _ []types.Shape) Result {
		return subSafe(integer, bitstring)
	},
	erl("byte_size", 1): func(_ *Analyzer, _ []types.Shape) Result {
		return subSafe(integer, bitstring)
	},
	erl("hd", 1): func(_ *Analyzer, args []types.Shape) Result {
		return subSafe(headShape(args[0]), cons)
	},
	erl("tl", 1): func(_ *Analyzer, args []types.Shape) Result {
		return subSafe(tailShape(args[0]), cons)
	},
	erl("not", 1): func(_ *Analyzer, args []types.Shape) Result {
		ret := boolean
		if v, ok := boolValue(args[0]); ok {
			ret = types.MakeAtom(boolName(!v))
		}
		return subSafe(ret, boolean)
	},
	erl("length", 1): func(_ *Analyzer, args []types.Shape) Result {
		ret := integer
		if args[0].Kind() == types.NilKind {
			ret = types.MakeIntegerValue(0)
		}
		return subSafe(ret, ProperList())
	},

	// Boolean connectives.
	erl("and", 2): boolOp(func(x, y bool) bool { return x && y }),
	erl("or", 2):  boolOp(func(x, y bool) bool { return x || y }),
	erl("xor", 2): boolOp(func(x, y bool) bool { return x != y }),

	// Bitwise operators.
	erl("band", 2): func(_ *Analyzer, args []types.Shape) Result {
		return subUnsafe(bandReturn(args[0], args[1]), integer, integer)
	},
	erl("bor", 2):  intOp2,
	erl("bxor", 2): intOp2,
	erl("bsl", 2):  intOp2,
	erl("bsr", 2):  intOp2,
	erl("bnot", 1): func(_ *Analyzer, _ []types.Shape) Result {
		return subUnsafe(integer, integer)
	},

	// Numeric conversions and arithmetic.
	erl("float", 1): func(_ *Analyzer, _ []types.Shape) Result {
		return subUnsafe(types.Float{}, number)
	},
	erl("round", 1): roundOp,
	erl("floor", 1): roundOp,
	erl("ceil", 1):  roundOp,
	erl("trunc", 1): roundOp,
	erl("/", 2): func(_ *Analyzer, _ []types.Shape) Result {
		return subUnsafe(types.Float{}, number, number)
	},
	erl("div", 2): intOp2,
	erl("rem", 2): intOp2,
	erl("abs", 1): func(_ *Analyzer, args []types.Shape) Result {
		return mixedArith(args)
	},

	// List operators.
	erl("++", 2): func(_ *Analyzer, args []types.Shape) Result {
		return appendTypes(args[0], args[1])
	},
	erl("--", 2): func(_ *Analyzer, args []types.Shape) Result {
		return subtractTypes(args[0])
	},

	// Conversions to binaries.
	erl("iolist_to_binary", 1): func(_ *Analyzer, _ []types.Shape) Result {
		return subUnsafe(binary, types.Join(types.List{Elem: types.Any{}}, binary))
	},
	erl("list_to_binary", 1): func(_ *Analyzer, _ []types.Shape) Result {
		return subUnsafe(binary, types.List{Elem: types.Any{}})
	},
	erl("list_to_bitstring", 1): func(_ *Analyzer, _ []types.Shape) Result {
		return subUnsafe(bitstring, ProperList())
	},
	erl("binary_part", 2): func(_ *Analyzer, _ []types.Shape) Result {
		return subUnsafe(binary, binary, MakeTuple(integer, integer))
	},
	erl("binary_part", 3): func(_ *Analyzer, _ []types.Shape) Result {
		return subUnsafe(binary, binary, integer, integer)
	},

	// Maps.
	erl("is_map_key", 2): func(_ *Analyzer, _ []types.Shape) Result {
		return subUnsafe(boolean, anyShape, types.Map{})
	},
	erl("map_get", 2): func(_ *Analyzer, _ []types.Shape) Result {
		return subUnsafe(anyShape, anyShape, types.Map{})
	},

	erl("node", 0): func(_ *Analyzer, _ []types.Shape) Result {
		return subUnsafe(types.Atom{})
	},
	erl("node", 1): func(_ *Analyzer, _ []types.Shape) Result {
		return subUnsafe(types.Atom{}, anyShape)
	},
	erl("size", 1): func(_ *Analyzer, _ []types.Shape) Result {
		return subUnsafe(integer, types.Join(types.Tuple{}, bitstring))
	},

	// Tuples.
	erl("element", 2): func(_ *Analyzer, args []types.Shape) Result {
		return elementTypes(args[0], args[1])
	},
	erl("setelement", 3): func(_ *Analyzer, args []types.Shape) Result {
		return setelementTypes(args[0], args[1], args[2])
	},

	erl("make_fun", 3): func(_ *Analyzer, args []types.Shape) Result {
		var ret types.Shape = types.Fun{}
		if arity, ok := exactIndex(args[2]); ok && arity >= 0 {
			ret = types.MakeFun(arity)
		}
		return subUnsafe(ret, types.Atom{}, types.Atom{}, integer)
	},
}

func intOp2(_ *Analyzer, _ []types.Shape) Result {
	return subUnsafe(integer, integer, integer)
}

func roundOp(_ *Analyzer, _ []types.Shape) Result {
	return subUnsafe(integer, number)
}

// boolOp types a strict boolean connective, folding it when both operands
// are known.
func boolOp(eval func(x, y bool) bool) transferFunc {
	return func(_ *Analyzer, args []types.Shape) Result {
		ret := boolean
		x, okx := boolValue(args[0])
		y, oky := boolValue(args[1])
		if okx && oky {
			ret = types.MakeAtom(boolName(eval(x, y)))
		}
		return subUnsafe(ret, boolean, boolean)
	}
}

// boolValue returns the value of s when it is exactly true or false.
func boolValue(s types.Shape) (bool, bool) {
	a, ok := s.(types.Atom)
	if !ok || a.Values == nil || a.Values.Size() != 1 {
		return false, false
	}
	switch {
	case a.Values.Contains("true"):
		return true, true
	case a.Values.Contains("false"):
		return false, true
	}
	return false, false
}

func boolName(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

func headShape(s types.Shape) types.Shape {
	switch l := s.(type) {
	case types.Cons:
		return types.ElemOf(l.Elem)
	case types.List:
		return types.ElemOf(l.Elem)
	}
	return types.Any{}
}

// tailShape is the shape of tl(s). The tail of an improper list may be
// the terminator, which can be anything.
func tailShape(s types.Shape) types.Shape {
	switch l := s.(type) {
	case types.Cons:
		if l.Proper {
			return types.List{Elem: types.ElemOf(l.Elem), Proper: true}
		}
	case types.List:
		if l.Proper {
			return types.List{Elem: types.ElemOf(l.Elem), Proper: true}
		}
	}
	return types.Any{}
}

// appendTypes types lhs ++ rhs. An empty lhs returns rhs as is, so rhs
// need not be a list.
func appendTypes(lhs, rhs types.Shape) Result {
	required := []types.Shape{ProperList(), anyShape}
	switch l := types.Meet(lhs, ProperList()).(type) {
	case types.Nil:
		return subUnsafe(rhs, required...)
	case types.Cons:
		return subUnsafe(appendNonEmpty(types.ElemOf(l.Elem), rhs), required...)
	case types.List:
		ret := types.Join(appendNonEmpty(types.ElemOf(l.Elem), rhs), rhs)
		return subUnsafe(ret, required...)
	default:
		return subUnsafe(types.None{}, required...)
	}
}

// appendNonEmpty is the shape of a non-empty run of elem elements followed
// by rhs. The result is proper only when rhs is a proper list.
func appendNonEmpty(elem, rhs types.Shape) types.Shape {
	switch r := rhs.(type) {
	case types.Nil:
		return types.Cons{Elem: elem, Proper: true}
	case types.List:
		return types.Cons{Elem: types.Join(elem, types.ElemOf(r.Elem)), Proper: r.Proper}
	case types.Cons:
		return types.Cons{Elem: types.Join(elem, types.ElemOf(r.Elem)), Proper: r.Proper}
	}
	if part := types.Meet(rhs, anyList()); part.Kind() != types.NoneKind {
		elem = types.Join(elem, listElem(part))
	}
	return types.Cons{Elem: elem}
}

// subtractTypes types lhs -- rhs: a list no longer than lhs with the same
// elements.
func subtractTypes(lhs types.Shape) Result {
	ret := MakeList(lhs, true, false)
	if lhs.Kind() == types.NilKind {
		ret = types.Nil{}
	}
	return subUnsafe(ret, ProperList(), ProperList())
}

func elementTypes(pos, tuple types.Shape) Result {
	index, ok := exactIndex(pos)
	if ok && index < 1 {
		return subUnsafe(types.None{}, integer, types.Tuple{})
	}

	var ret types.Shape = types.Any{}
	if t, isTuple := tuple.(types.Tuple); isTuple && index >= 1 && index <= t.Size {
		ret = types.GetTupleElement(index, t.Elements)
	}
	return subUnsafe(ret, integer, types.Tuple{Size: index})
}

func setelementTypes(pos, tuple, value types.Shape) Result {
	required := []types.Shape{integer, types.Tuple{}, anyShape}
	if value.Kind() == types.NoneKind {
		return subUnsafe(types.None{}, required...)
	}

	t, isTuple := tuple.(types.Tuple)
	r, hasRange := types.IntegerRange(pos)
	var ret types.Shape
	switch {
	case isTuple && hasRange && r.Lo.Cmp(r.Hi) == 0:
		ret = setExact(t, clampInt(r.Lo), value)
	case isTuple && hasRange:
		ret = setRange(t, clampInt(r.Lo), clampInt(r.Hi))
	case isTuple:
		ret = types.Tuple{Size: t.Size, Exact: t.Exact}
	case hasRange:
		ret = types.Tuple{Size: max(clampInt(r.Lo), 0)}
	default:
		ret = types.Tuple{}
	}
	return subUnsafe(ret, required...)
}

func setExact(t types.Tuple, index int, value types.Shape) types.Shape {
	if index < 1 || (t.Exact && index > t.Size) {
		return types.None{}
	}
	return types.Tuple{
		Size:     max(index, t.Size),
		Exact:    t.Exact,
		Elements: types.SetTupleElement(index, value, t.Elements),
	}
}

func setRange(t types.Tuple, lo, hi int) types.Shape {
	if hi < 1 || (t.Exact && lo > t.Size) {
		return types.None{}
	}
	size := t.Size
	if !t.Exact {
		size = max(lo, size)
	}
	return types.Tuple{
		Size:     size,
		Exact:    t.Exact,
		Elements: DiscardTupleRange(lo, hi, t.Elements),
	}
}
