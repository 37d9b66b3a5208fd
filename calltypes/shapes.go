package calltypes

import (
	"maps"
	"math"
	"math/big"

	"fortio.org/safecast"

	"github.com/thiremani/beamtypes/types"
)

// ProperList is a nil-terminated list of unconstrained elements.
func ProperList() types.Shape {
	return types.List{Elem: types.Any{}, Proper: true}
}

// properCons is a non-empty proper list of unconstrained elements.
func properCons() types.Shape {
	return types.Cons{Elem: types.Any{}, Proper: true}
}

// anyList is a possibly empty, possibly improper list.
func anyList() types.Shape {
	return types.List{Elem: types.Any{}}
}

// MakeList derives the shape of a fresh proper list built from src.
// keepElem carries src's element shape over; keepLen keeps src's length
// category (empty or non-empty). Nothing is kept from shapes that are not
// lists.
func MakeList(src types.Shape, keepElem, keepLen bool) types.Shape {
	switch s := src.(type) {
	case types.Nil:
		if keepLen {
			return types.Nil{}
		}
	case types.Cons:
		elem := keptElem(s.Elem, keepElem)
		if keepLen {
			return types.Cons{Elem: elem, Proper: true}
		}
		return types.List{Elem: elem, Proper: true}
	case types.List:
		return types.List{Elem: keptElem(s.Elem, keepElem), Proper: true}
	}
	return ProperList()
}

func keptElem(elem types.Shape, keep bool) types.Shape {
	if !keep {
		return types.Any{}
	}
	return types.ElemOf(elem)
}

// MakeSuffix returns the shape of some tail of src. The tail keeps src's
// element shape and properness but may be empty.
func MakeSuffix(src types.Shape) types.Shape {
	switch s := src.(type) {
	case types.Nil:
		return types.Nil{}
	case types.Cons:
		return types.List{Elem: types.ElemOf(s.Elem), Proper: s.Proper}
	case types.List:
		return s
	}
	return anyList()
}

// MakeTuple returns the exact 2-tuple {a, b}.
func MakeTuple(a, b types.Shape) types.Shape {
	return types.MakeTupleOf(a, b)
}

// DiscardTupleRange drops the element shapes at positions lo..hi.
func DiscardTupleRange(lo, hi int, es map[int]types.Shape) map[int]types.Shape {
	out := maps.Clone(es)
	for i := range out {
		if lo <= i && i <= hi {
			delete(out, i)
		}
	}
	return out
}

// listElem returns the element shape of a list-like shape, None for Nil
// and Any for anything else.
func listElem(s types.Shape) types.Shape {
	switch l := s.(type) {
	case types.Nil:
		return types.None{}
	case types.List:
		return types.ElemOf(l.Elem)
	case types.Cons:
		return types.ElemOf(l.Elem)
	}
	return types.Any{}
}

// clampInt converts v to an int, saturating at the int bounds.
func clampInt(v *big.Int) int {
	if v.IsInt64() {
		if n, err := safecast.Conv[int](v.Int64()); err == nil {
			return n
		}
	}
	if v.Sign() < 0 {
		return math.MinInt
	}
	return math.MaxInt
}

// exactIndex returns the value of an exact integer shape that fits an int.
func exactIndex(s types.Shape) (int, bool) {
	v, ok := types.ExactInteger(s)
	if !ok || !v.IsInt64() {
		return 0, false
	}
	n, err := safecast.Conv[int](v.Int64())
	return n, err == nil
}

func anys(n int) []types.Shape {
	out := make([]types.Shape, n)
	for i := range out {
		out[i] = types.Any{}
	}
	return out
}

func duplicate(n int, s types.Shape) []types.Shape {
	out := make([]types.Shape, n)
	for i := range out {
		out[i] = s
	}
	return out
}
