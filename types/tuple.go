package types

import "maps"

// GetTupleElement returns the shape at 1-based position index. Absent
// positions are unconstrained.
func GetTupleElement(index int, es map[int]Shape) Shape {
	if e, ok := es[index]; ok {
		return e
	}
	return Any{}
}

// SetTupleElement returns a copy of es with position index set to t.
// Setting Any removes the entry since absence already means unconstrained.
// Non-positive indexes are ignored.
func SetTupleElement(index int, t Shape, es map[int]Shape) map[int]Shape {
	out := maps.Clone(es)
	if out == nil {
		out = map[int]Shape{}
	}
	if index < 1 {
		return out
	}
	if t.Kind() == AnyKind {
		delete(out, index)
		return out
	}
	out[index] = t
	return out
}

// canonicalElements drops unconstrained entries so that equal tuples have
// equal element maps.
func canonicalElements(es map[int]Shape) map[int]Shape {
	out := make(map[int]Shape, len(es))
	for i, e := range es {
		if e.Kind() != AnyKind {
			out[i] = e
		}
	}
	return out
}

// MakeTupleOf returns an exact tuple with the given element shapes.
func MakeTupleOf(elems ...Shape) Shape {
	es := map[int]Shape{}
	for i, e := range elems {
		if e.Kind() == NoneKind {
			return None{}
		}
		es = SetTupleElement(i+1, e, es)
	}
	return Tuple{Size: len(elems), Exact: true, Elements: es}
}
