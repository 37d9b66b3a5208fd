package types

import (
	"math/big"
	"slices"
	"strconv"
	"strings"

	"github.com/hashicorp/go-set/v3"
)

type Kind int

const (
	NoneKind Kind = iota
	AnyKind
	IntegerKind
	FloatKind
	NumberKind
	AtomKind
	TupleKind
	ListKind
	ConsKind
	NilKind
	MapKind
	BitstringKind
	FunKind
	UnionKind
)

var kindNames = [...]string{
	NoneKind:      "none",
	AnyKind:       "any",
	IntegerKind:   "integer",
	FloatKind:     "float",
	NumberKind:    "number",
	AtomKind:      "atom",
	TupleKind:     "tuple",
	ListKind:      "list",
	ConsKind:      "cons",
	NilKind:       "nil",
	MapKind:       "map",
	BitstringKind: "bitstring",
	FunKind:       "fun",
	UnionKind:     "union",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind?"
}

// AtomSetLimit is the largest finite atom set tracked before widening to
// any atom.
const AtomSetLimit = 5

// Shape describes the set of runtime values a variable may hold.
// Shapes are immutable values; every operation returns a fresh shape.
type Shape interface {
	String() string
	Kind() Kind
}

// Any is the top of the lattice: no information.
type Any struct{}

func (Any) Kind() Kind     { return AnyKind }
func (Any) String() string { return "any" }

// None is the bottom of the lattice: no value can have this shape.
type None struct{}

func (None) Kind() Kind     { return NoneKind }
func (None) String() string { return "none" }

// Range is a closed integer interval.
type Range struct {
	Lo, Hi *big.Int
}

func (r *Range) Contains(v *big.Int) bool {
	return r.Lo.Cmp(v) <= 0 && v.Cmp(r.Hi) <= 0
}

// Integer is an integer, optionally restricted to a closed range.
// A nil Range means any integer.
type Integer struct {
	Range *Range
}

func (Integer) Kind() Kind { return IntegerKind }

func (i Integer) String() string {
	if i.Range == nil {
		return "integer"
	}
	if i.Range.Lo.Cmp(i.Range.Hi) == 0 {
		return "integer(" + i.Range.Lo.String() + ")"
	}
	return "integer(" + i.Range.Lo.String() + ".." + i.Range.Hi.String() + ")"
}

// Exact returns the single value of a singleton range.
func (i Integer) Exact() (*big.Int, bool) {
	if i.Range == nil || i.Range.Lo.Cmp(i.Range.Hi) != 0 {
		return nil, false
	}
	return i.Range.Lo, true
}

type Float struct{}

func (Float) Kind() Kind     { return FloatKind }
func (Float) String() string { return "float" }

// Number is an integer or a float, unknown which.
type Number struct{}

func (Number) Kind() Kind     { return NumberKind }
func (Number) String() string { return "number" }

// Atom is an atom, optionally one of a finite set. A nil Values means any
// atom. The set is never mutated once the shape is built.
type Atom struct {
	Values *set.Set[string]
}

func (Atom) Kind() Kind { return AtomKind }

func (a Atom) String() string {
	if a.Values == nil {
		return "atom"
	}
	if a.Values.Size() == 2 && a.Values.Contains("true") && a.Values.Contains("false") {
		return "boolean"
	}
	names := a.Names()
	for i, n := range names {
		names[i] = QuoteAtom(n)
	}
	return "atom(" + strings.Join(names, ", ") + ")"
}

// Names returns the sorted atom names, or nil for any atom.
func (a Atom) Names() []string {
	if a.Values == nil {
		return nil
	}
	names := a.Values.Slice()
	slices.Sort(names)
	return names
}

// Tuple is a tuple of at least Size elements, exactly Size when Exact.
// Elements maps 1-based positions to element shapes; an absent position is
// unconstrained, never impossible. Positions never exceed Size.
type Tuple struct {
	Size     int
	Exact    bool
	Elements map[int]Shape
}

func (Tuple) Kind() Kind { return TupleKind }

func (t Tuple) String() string {
	if t.Size == 0 && !t.Exact {
		return "tuple"
	}
	var sb strings.Builder
	sb.WriteString("{")
	for i := 1; i <= t.Size; i++ {
		if i > 1 {
			sb.WriteString(", ")
		}
		if e, ok := t.Elements[i]; ok {
			sb.WriteString(e.String())
		} else {
			sb.WriteString("_")
		}
	}
	if !t.Exact {
		if t.Size > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("...")
	}
	sb.WriteString("}")
	return sb.String()
}

// List is a possibly empty list. Proper lists are nil-terminated; a list
// that is not known to be proper may have any terminator.
type List struct {
	Elem   Shape
	Proper bool
}

func (List) Kind() Kind { return ListKind }

func (l List) String() string {
	name := "maybe_improper_list"
	if l.Proper {
		name = "list"
	}
	return wrapElem(name, l.Elem)
}

// Cons is a list statically known to be non-empty.
type Cons struct {
	Elem   Shape
	Proper bool
}

func (Cons) Kind() Kind { return ConsKind }

func (c Cons) String() string {
	name := "nonempty_maybe_improper_list"
	if c.Proper {
		name = "nonempty_list"
	}
	return wrapElem(name, c.Elem)
}

func wrapElem(name string, elem Shape) string {
	e := ElemOf(elem)
	if e.Kind() == AnyKind {
		return name
	}
	return name + "(" + e.String() + ")"
}

// ElemOf treats a missing element shape as unconstrained.
func ElemOf(s Shape) Shape {
	if s == nil {
		return Any{}
	}
	return s
}

// Nil is the empty list.
type Nil struct{}

func (Nil) Kind() Kind     { return NilKind }
func (Nil) String() string { return "[]" }

type Map struct{}

func (Map) Kind() Kind     { return MapKind }
func (Map) String() string { return "map" }

// Bitstring is a bitstring whose size is a multiple of Unit bits.
// A Unit of 0 or 1 means any bitstring.
type Bitstring struct {
	Unit int
}

func (Bitstring) Kind() Kind { return BitstringKind }

func (b Bitstring) String() string {
	switch b.unit() {
	case 1:
		return "bitstring"
	case 8:
		return "binary"
	default:
		return "bitstring(" + strconv.Itoa(b.unit()) + ")"
	}
}

func (b Bitstring) unit() int {
	if b.Unit < 1 {
		return 1
	}
	return b.Unit
}

// Fun is a function value, of a known arity when HasArity is set.
type Fun struct {
	Arity    int
	HasArity bool
}

func (Fun) Kind() Kind { return FunKind }

func (f Fun) String() string {
	if !f.HasArity {
		return "fun"
	}
	return "fun(" + strconv.Itoa(f.Arity) + ")"
}

// Union holds at most one member per category, ordered by category.
// It always has at least two members and never nests.
type Union struct {
	Members []Shape
}

func (Union) Kind() Kind { return UnionKind }

func (u Union) String() string {
	parts := make([]string, len(u.Members))
	for i, m := range u.Members {
		parts[i] = m.String()
	}
	return strings.Join(parts, " | ")
}

// MakeInteger returns the integer shape for [lo, hi], or None when the
// range is empty.
func MakeInteger(lo, hi int64) Shape {
	return MakeIntegerRange(big.NewInt(lo), big.NewInt(hi))
}

func MakeIntegerRange(lo, hi *big.Int) Shape {
	if lo.Cmp(hi) > 0 {
		return None{}
	}
	return Integer{Range: &Range{Lo: new(big.Int).Set(lo), Hi: new(big.Int).Set(hi)}}
}

func MakeIntegerValue(v int64) Shape {
	return MakeInteger(v, v)
}

func MakeAtom(names ...string) Shape {
	if len(names) == 0 {
		return None{}
	}
	values := set.From(names)
	if values.Size() > AtomSetLimit {
		return Atom{}
	}
	return Atom{Values: values}
}

func MakeBoolean() Shape {
	return MakeAtom("false", "true")
}

func MakeBitstring(unit int) Shape {
	return Bitstring{Unit: unit}
}

func MakeFun(arity int) Shape {
	return Fun{Arity: arity, HasArity: true}
}

// ExactInteger returns the value of s when it is an integer singleton.
func ExactInteger(s Shape) (*big.Int, bool) {
	i, ok := s.(Integer)
	if !ok {
		return nil, false
	}
	return i.Exact()
}

// IntegerRange returns the closed range of s when it is a bounded integer.
func IntegerRange(s Shape) (*Range, bool) {
	i, ok := s.(Integer)
	if !ok || i.Range == nil {
		return nil, false
	}
	return i.Range, true
}

// IsProperList reports whether s is Nil or a list or cons known to be
// proper.
func IsProperList(s Shape) bool {
	switch t := s.(type) {
	case Nil:
		return true
	case List:
		return t.Proper
	case Cons:
		return t.Proper
	}
	return false
}
