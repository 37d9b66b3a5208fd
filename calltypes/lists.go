package calltypes

import (
	"github.com/thiremani/beamtypes/bifs"
	"github.com/thiremani/beamtypes/types"
)

func lists(fn string, arity int) bifs.MFA {
	return bifs.MFA{Module: bifs.Lists, Function: fn, Arity: arity}
}

var (
	fun1 = types.MakeFun(1)
	fun2 = types.MakeFun(2)
)

var listsTransfers = map[bifs.MFA]transferFunc{
	// Operator aliases.
	lists("append", 2): func(_ *Analyzer, args []types.Shape) Result {
		return appendTypes(args[0], args[1])
	},
	lists("append", 1): func(_ *Analyzer, _ []types.Shape) Result {
		return subUnsafe(anyShape, ProperList())
	},
	lists("subtract", 2): func(_ *Analyzer, args []types.Shape) Result {
		return subtractTypes(args[0])
	},

	// Predicates.
	lists("all", 2):       predicate(fun1, anyList()),
	lists("any", 2):       predicate(fun1, anyList()),
	lists("keymember", 3): predicate(anyShape, integer, anyList()),
	lists("member", 2):    predicate(anyShape, anyList()),
	lists("prefix", 2):    predicate(anyList(), anyList()),
	lists("suffix", 2):    predicate(anyList(), anyList()),

	// Lists of the same or fewer elements.
	lists("droplast", 1): func(_ *Analyzer, args []types.Shape) Result {
		return subUnsafe(MakeList(args[0], true, false), properCons())
	},
	lists("dropwhile", 2): func(_ *Analyzer, args []types.Shape) Result {
		return subUnsafe(MakeSuffix(args[1]), fun1, anyList())
	},
	lists("filter", 2): func(_ *Analyzer, args []types.Shape) Result {
		return subUnsafe(MakeList(args[1], true, false), fun1, ProperList())
	},
	lists("flatten", 1): func(_ *Analyzer, _ []types.Shape) Result {
		return subUnsafe(ProperList(), ProperList())
	},
	lists("flatten", 2): func(_ *Analyzer, args []types.Shape) Result {
		return subUnsafe(flattenTailReturn(args[1]), ProperList(), anyList())
	},
	lists("map", 2): func(_ *Analyzer, args []types.Shape) Result {
		return subUnsafe(MakeList(args[1], false, true), fun1, ProperList())
	},
	lists("reverse", 1): sameLength,
	lists("sort", 1):    sameLength,
	lists("usort", 1):   sameLength,
	lists("takewhile", 2): func(_ *Analyzer, args []types.Shape) Result {
		return subUnsafe(MakeList(args[1], true, false), fun1, anyList())
	},

	// Element access.
	lists("last", 1): func(_ *Analyzer, args []types.Shape) Result {
		return subUnsafe(headShape(args[0]), properCons())
	},
	lists("nth", 2): func(_ *Analyzer, args []types.Shape) Result {
		return subUnsafe(headShape(args[1]), integer, cons)
	},
	lists("duplicate", 2): func(_ *Analyzer, args []types.Shape) Result {
		return subUnsafe(duplicateReturn(args[0], args[1]), integer, anyShape)
	},
	lists("seq", 2): func(_ *Analyzer, _ []types.Shape) Result {
		return subUnsafe(types.List{Elem: integer, Proper: true}, integer, integer)
	},
	lists("seq", 3): func(_ *Analyzer, _ []types.Shape) Result {
		return subUnsafe(types.List{Elem: integer, Proper: true}, integer, integer, integer)
	},

	// Folds.
	lists("foldl", 3): foldTypes,
	lists("foldr", 3): foldTypes,
	lists("foreach", 2): func(_ *Analyzer, _ []types.Shape) Result {
		return subUnsafe(types.MakeAtom("ok"), fun1, ProperList())
	},

	// Results wrapped in tuples or unions.
	lists("keyfind", 3): func(_ *Analyzer, args []types.Shape) Result {
		return subUnsafe(keyfindReturn(args[0], args[1]), anyShape, integer, anyList())
	},
	lists("mapfoldl", 3): mapfoldTypes,
	lists("mapfoldr", 3): mapfoldTypes,
	lists("partition", 2): func(_ *Analyzer, args []types.Shape) Result {
		part := MakeList(args[1], true, false)
		return subUnsafe(MakeTuple(part, part), fun1, ProperList())
	},
	lists("splitwith", 2): func(_ *Analyzer, args []types.Shape) Result {
		ret := MakeTuple(MakeList(args[1], true, false), MakeSuffix(args[1]))
		return subUnsafe(ret, fun1, anyList())
	},

	// Zips.
	lists("zip", 2):      zipOp,
	lists("zip3", 3):     zipOp,
	lists("zipwith", 3):  zipWithOp,
	lists("zipwith3", 4): zipWithOp,
	lists("unzip", 1):    unzipOp(2),
	lists("unzip3", 1):   unzipOp(3),
}

func predicate(args ...types.Shape) transferFunc {
	return func(_ *Analyzer, _ []types.Shape) Result {
		return subUnsafe(boolean, args...)
	}
}

func sameLength(_ *Analyzer, args []types.Shape) Result {
	return subUnsafe(MakeList(args[0], true, true), ProperList())
}

func foldTypes(_ *Analyzer, _ []types.Shape) Result {
	return subUnsafe(anyShape, fun2, anyShape, ProperList())
}

func mapfoldTypes(_ *Analyzer, args []types.Shape) Result {
	ret := MakeTuple(MakeList(args[2], false, true), anyShape)
	return subUnsafe(ret, fun2, anyShape, ProperList())
}

// duplicateReturn is the list of count copies of elem.
func duplicateReturn(count, elem types.Shape) types.Shape {
	n, exact := exactIndex(count)
	switch {
	case exact && n < 0:
		return types.None{}
	case exact && n == 0:
		return types.Nil{}
	case elem.Kind() == types.NoneKind:
		if exact {
			return types.None{}
		}
		return types.Nil{}
	case exact:
		return types.Cons{Elem: elem, Proper: true}
	}
	return types.List{Elem: elem, Proper: true}
}

// flattenTailReturn is the shape of a flattened list ending in tail. The
// result is only as proper as tail, and non-empty when tail is.
func flattenTailReturn(tail types.Shape) types.Shape {
	switch t := types.Meet(tail, anyList()).(type) {
	case types.None:
		return types.None{}
	case types.Nil:
		return ProperList()
	case types.Cons:
		return types.Cons{Elem: types.Any{}, Proper: t.Proper}
	case types.List:
		return types.List{Elem: types.Any{}, Proper: t.Proper}
	}
	return anyList()
}

// keyfindReturn is either false or a tuple holding key at position index.
func keyfindReturn(key, index types.Shape) types.Shape {
	var tuple types.Shape = types.Tuple{}
	if n, ok := exactIndex(index); ok && n >= 1 {
		tuple = types.Tuple{Size: n, Elements: types.SetTupleElement(n, key, nil)}
		if key.Kind() == types.NoneKind {
			tuple = types.None{}
		}
	}
	return types.Join(tuple, types.MakeAtom("false"))
}

func zipOp(_ *Analyzer, args []types.Shape) Result {
	ret, arg := ZipTypes(args)
	return subUnsafe(ret, duplicate(len(args), arg)...)
}

func zipWithOp(_ *Analyzer, args []types.Shape) Result {
	ret, arg := ZipWithTypes(args[1:])
	required := append([]types.Shape{types.MakeFun(len(args) - 1)}, duplicate(len(args)-1, arg)...)
	return subUnsafe(ret, required...)
}

func unzipOp(size int) transferFunc {
	return func(_ *Analyzer, args []types.Shape) Result {
		return subUnsafe(types.MakeTupleOf(UnzipTypes(size, args[0])...), ProperList())
	}
}
