package types

import (
	"fmt"
	"math/big"
	"slices"

	"github.com/hashicorp/go-set/v3"
)

// category groups the kinds that may share a union slot. Shapes in
// different categories are always disjoint.
type category int

const (
	noCategory category = iota
	atomCategory
	numberCategory
	listCategory
	tupleCategory
	mapCategory
	bitstringCategory
	funCategory
)

func categoryOf(s Shape) category {
	switch s.Kind() {
	case AtomKind:
		return atomCategory
	case IntegerKind, FloatKind, NumberKind:
		return numberCategory
	case ListKind, ConsKind, NilKind:
		return listCategory
	case TupleKind:
		return tupleCategory
	case MapKind:
		return mapCategory
	case BitstringKind:
		return bitstringCategory
	case FunKind:
		return funCategory
	default:
		return noCategory
	}
}

// Meet returns the greatest lower bound of a and b: the shape of values
// described by both.
func Meet(a, b Shape) Shape {
	switch {
	case a.Kind() == NoneKind || b.Kind() == NoneKind:
		return None{}
	case a.Kind() == AnyKind:
		return b
	case b.Kind() == AnyKind:
		return a
	}

	if u, ok := a.(Union); ok {
		return meetUnion(u, b)
	}
	if u, ok := b.(Union); ok {
		return meetUnion(u, a)
	}
	if categoryOf(a) != categoryOf(b) {
		return None{}
	}

	switch categoryOf(a) {
	case atomCategory:
		return meetAtom(a.(Atom), b.(Atom))
	case numberCategory:
		return meetNumber(a, b)
	case listCategory:
		return meetList(a, b)
	case tupleCategory:
		return meetTuple(a.(Tuple), b.(Tuple))
	case mapCategory:
		return Map{}
	case bitstringCategory:
		ba, bb := a.(Bitstring), b.(Bitstring)
		return Bitstring{Unit: lcm(ba.unit(), bb.unit())}
	case funCategory:
		return meetFun(a.(Fun), b.(Fun))
	}
	panic(fmt.Sprintf("Meet: unhandled shapes %s, %s", a, b))
}

func meetUnion(u Union, other Shape) Shape {
	var acc Shape = None{}
	for _, m := range u.Members {
		acc = Join(acc, Meet(m, other))
	}
	return acc
}

func meetAtom(a, b Atom) Shape {
	if a.Values == nil {
		return b
	}
	if b.Values == nil {
		return a
	}
	common := []string{}
	for _, v := range a.Values.Slice() {
		if b.Values.Contains(v) {
			common = append(common, v)
		}
	}
	return MakeAtom(common...)
}

func meetNumber(a, b Shape) Shape {
	switch {
	case a.Kind() == NumberKind:
		return b
	case b.Kind() == NumberKind:
		return a
	case a.Kind() == FloatKind && b.Kind() == FloatKind:
		return Float{}
	case a.Kind() == IntegerKind && b.Kind() == IntegerKind:
		return meetInteger(a.(Integer), b.(Integer))
	default:
		return None{}
	}
}

func meetInteger(a, b Integer) Shape {
	if a.Range == nil {
		return b
	}
	if b.Range == nil {
		return a
	}
	lo := maxBig(a.Range.Lo, b.Range.Lo)
	hi := minBig(a.Range.Hi, b.Range.Hi)
	return MakeIntegerRange(lo, hi)
}

func meetList(a, b Shape) Shape {
	if a.Kind() == NilKind && b.Kind() == NilKind {
		return Nil{}
	}
	if a.Kind() == NilKind || b.Kind() == NilKind {
		other := b
		if b.Kind() == NilKind {
			other = a
		}
		if other.Kind() == ConsKind {
			return None{}
		}
		return Nil{}
	}

	ea, pa, ca := listParts(a)
	eb, pb, cb := listParts(b)
	elem := Meet(ea, eb)
	proper := pa || pb
	if ca || cb {
		if elem.Kind() == NoneKind {
			return None{}
		}
		return Cons{Elem: elem, Proper: proper}
	}
	if elem.Kind() == NoneKind {
		return Nil{}
	}
	return List{Elem: elem, Proper: proper}
}

// listParts returns the element shape, properness and non-emptiness of a
// List or Cons.
func listParts(s Shape) (elem Shape, proper bool, nonEmpty bool) {
	switch l := s.(type) {
	case List:
		return ElemOf(l.Elem), l.Proper, false
	case Cons:
		return ElemOf(l.Elem), l.Proper, true
	}
	panic(fmt.Sprintf("listParts: not a list shape %s", s))
}

func meetTuple(a, b Tuple) Shape {
	if a.Exact && b.Exact && a.Size != b.Size {
		return None{}
	}
	if (a.Exact && b.Size > a.Size) || (b.Exact && a.Size > b.Size) {
		return None{}
	}

	es := map[int]Shape{}
	for i := range a.Elements {
		es[i] = GetTupleElement(i, a.Elements)
	}
	for i := range b.Elements {
		elem := Meet(GetTupleElement(i, a.Elements), GetTupleElement(i, b.Elements))
		if elem.Kind() == NoneKind {
			return None{}
		}
		es[i] = elem
	}
	return Tuple{
		Size:     max(a.Size, b.Size),
		Exact:    a.Exact || b.Exact,
		Elements: canonicalElements(es),
	}
}

func meetFun(a, b Fun) Shape {
	switch {
	case !a.HasArity:
		return b
	case !b.HasArity:
		return a
	case a.Arity == b.Arity:
		return a
	default:
		return None{}
	}
}

// Join returns the least upper bound of a and b: a shape describing every
// value of either.
func Join(a, b Shape) Shape {
	switch {
	case a.Kind() == NoneKind:
		return b
	case b.Kind() == NoneKind:
		return a
	case a.Kind() == AnyKind || b.Kind() == AnyKind:
		return Any{}
	}

	slots := map[category]Shape{}
	for _, s := range slices.Concat(members(a), members(b)) {
		c := categoryOf(s)
		if prev, ok := slots[c]; ok {
			slots[c] = joinSame(prev, s)
		} else {
			slots[c] = s
		}
	}
	return makeUnion(slots)
}

func members(s Shape) []Shape {
	if u, ok := s.(Union); ok {
		return u.Members
	}
	return []Shape{s}
}

func makeUnion(slots map[category]Shape) Shape {
	cats := make([]category, 0, len(slots))
	for c := range slots {
		cats = append(cats, c)
	}
	slices.Sort(cats)

	ms := make([]Shape, 0, len(cats))
	for _, c := range cats {
		ms = append(ms, slots[c])
	}
	switch len(ms) {
	case 0:
		return None{}
	case 1:
		return ms[0]
	default:
		return Union{Members: ms}
	}
}

// joinSame joins two shapes of the same category.
func joinSame(a, b Shape) Shape {
	switch categoryOf(a) {
	case atomCategory:
		return joinAtom(a.(Atom), b.(Atom))
	case numberCategory:
		return joinNumber(a, b)
	case listCategory:
		return joinList(a, b)
	case tupleCategory:
		return joinTuple(a.(Tuple), b.(Tuple))
	case mapCategory:
		return Map{}
	case bitstringCategory:
		ba, bb := a.(Bitstring), b.(Bitstring)
		return Bitstring{Unit: gcd(ba.unit(), bb.unit())}
	case funCategory:
		fa, fb := a.(Fun), b.(Fun)
		if fa == fb {
			return fa
		}
		return Fun{}
	}
	panic(fmt.Sprintf("joinSame: unhandled shapes %s, %s", a, b))
}

func joinAtom(a, b Atom) Shape {
	if a.Values == nil || b.Values == nil {
		return Atom{}
	}
	all := set.From(a.Values.Slice())
	for _, v := range b.Values.Slice() {
		all.Insert(v)
	}
	if all.Size() > AtomSetLimit {
		return Atom{}
	}
	return Atom{Values: all}
}

func joinNumber(a, b Shape) Shape {
	switch {
	case a.Kind() == IntegerKind && b.Kind() == IntegerKind:
		ia, ib := a.(Integer), b.(Integer)
		if ia.Range == nil || ib.Range == nil {
			return Integer{}
		}
		return MakeIntegerRange(minBig(ia.Range.Lo, ib.Range.Lo), maxBig(ia.Range.Hi, ib.Range.Hi))
	case a.Kind() == FloatKind && b.Kind() == FloatKind:
		return Float{}
	default:
		return Number{}
	}
}

func joinList(a, b Shape) Shape {
	if a.Kind() == NilKind && b.Kind() == NilKind {
		return Nil{}
	}
	if a.Kind() == NilKind || b.Kind() == NilKind {
		other := b
		if b.Kind() == NilKind {
			other = a
		}
		elem, proper, _ := listParts(other)
		return List{Elem: elem, Proper: proper}
	}

	ea, pa, ca := listParts(a)
	eb, pb, cb := listParts(b)
	elem := Join(ea, eb)
	if ca && cb {
		return Cons{Elem: elem, Proper: pa && pb}
	}
	return List{Elem: elem, Proper: pa && pb}
}

func joinTuple(a, b Tuple) Shape {
	size := min(a.Size, b.Size)
	es := map[int]Shape{}
	for i, ea := range a.Elements {
		eb, ok := b.Elements[i]
		if !ok || i > size {
			continue
		}
		es[i] = Join(ea, eb)
	}
	return Tuple{
		Size:     size,
		Exact:    a.Exact && b.Exact && a.Size == b.Size,
		Elements: canonicalElements(es),
	}
}

// Equal reports whether a and b describe the same set of values.
func Equal(a, b Shape) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case Integer:
		y := b.(Integer)
		if x.Range == nil || y.Range == nil {
			return x.Range == nil && y.Range == nil
		}
		return x.Range.Lo.Cmp(y.Range.Lo) == 0 && x.Range.Hi.Cmp(y.Range.Hi) == 0
	case Atom:
		y := b.(Atom)
		if x.Values == nil || y.Values == nil {
			return x.Values == nil && y.Values == nil
		}
		return slices.Equal(x.Names(), y.Names())
	case Tuple:
		y := b.(Tuple)
		if x.Size != y.Size || x.Exact != y.Exact || len(x.Elements) != len(y.Elements) {
			return false
		}
		for i, e := range x.Elements {
			f, ok := y.Elements[i]
			if !ok || !Equal(e, f) {
				return false
			}
		}
		return true
	case List:
		y := b.(List)
		return x.Proper == y.Proper && Equal(ElemOf(x.Elem), ElemOf(y.Elem))
	case Cons:
		y := b.(Cons)
		return x.Proper == y.Proper && Equal(ElemOf(x.Elem), ElemOf(y.Elem))
	case Bitstring:
		return x.unit() == b.(Bitstring).unit()
	case Fun:
		return x == b.(Fun)
	case Union:
		y := b.(Union)
		return slices.EqualFunc(x.Members, y.Members, Equal)
	default:
		return true
	}
}

// IsSubtype reports whether every value of a is also a value of b.
func IsSubtype(a, b Shape) bool {
	return Equal(Meet(a, b), a)
}

// EqualShapes compares two shape slices pairwise.
func EqualShapes(left, right []Shape) bool {
	return slices.EqualFunc(left, right, Equal)
}

func minBig(a, b *big.Int) *big.Int {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

func maxBig(a, b *big.Int) *big.Int {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b int) int {
	return a / gcd(a, b) * b
}
