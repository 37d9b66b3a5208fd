package calltypes

import "github.com/thiremani/beamtypes/types"

// zipShape summarises the list arguments of a zip-like call: whether one of
// them is statically empty or non-empty, and the known element shape at
// each argument position.
type zipShape struct {
	empty    bool
	nonEmpty bool
	elems    []types.Shape
}

func scanZipArgs(args []types.Shape) zipShape {
	z := zipShape{elems: anys(len(args))}
	for i, a := range args {
		switch l := a.(type) {
		case types.Nil:
			z.empty = true
		case types.Cons:
			z.nonEmpty = true
			z.elems[i] = types.ElemOf(l.Elem)
		case types.List:
			z.elems[i] = types.ElemOf(l.Elem)
		}
	}
	return z
}

// argShape is what every argument must be for the call to succeed. All
// lists have the same length, so an empty argument makes every argument
// empty and a non-empty one makes every argument non-empty.
func (z zipShape) argShape() types.Shape {
	switch {
	case z.empty:
		return types.Nil{}
	case z.nonEmpty:
		return properCons()
	default:
		return ProperList()
	}
}

func (z zipShape) wrap(elem types.Shape) types.Shape {
	switch {
	case z.empty:
		return types.Nil{}
	case z.nonEmpty:
		return types.Cons{Elem: elem, Proper: true}
	default:
		return types.List{Elem: elem, Proper: true}
	}
}

// ZipTypes returns the result of zipping len(lists) lists and the shape
// each of them must have for the call to succeed.
func ZipTypes(lists []types.Shape) (ret, arg types.Shape) {
	z := scanZipArgs(lists)
	if z.empty {
		return types.Nil{}, types.Nil{}
	}
	return z.wrap(types.MakeTupleOf(z.elems...)), z.argShape()
}

// ZipWithTypes is ZipTypes for the zipwith family. The combining fun is
// opaque, so only the length category of the result is known.
func ZipWithTypes(lists []types.Shape) (ret, arg types.Shape) {
	z := scanZipArgs(lists)
	if z.empty {
		return types.Nil{}, types.Nil{}
	}
	return z.wrap(types.Any{}), z.argShape()
}

// UnzipTypes returns one result list per tuple position of an unzip over
// size-tuples.
func UnzipTypes(size int, list types.Shape) []types.Shape {
	var elem types.Shape
	nonEmpty := false
	switch l := list.(type) {
	case types.Nil:
		return duplicate(size, types.Nil{})
	case types.Cons:
		elem, nonEmpty = types.ElemOf(l.Elem), true
	case types.List:
		elem = types.ElemOf(l.Elem)
	default:
		return duplicate(size, ProperList())
	}

	t, ok := elem.(types.Tuple)
	if !ok || !t.Exact || t.Size != size {
		return duplicate(size, ProperList())
	}
	out := make([]types.Shape, size)
	for i := range out {
		e := types.GetTupleElement(i+1, t.Elements)
		if nonEmpty {
			out[i] = types.Cons{Elem: e, Proper: true}
		} else {
			out[i] = types.List{Elem: e, Proper: true}
		}
	}
	return out
}
