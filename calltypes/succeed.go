package calltypes

import (
	"fmt"

	"github.com/thiremani/beamtypes/bifs"
	"github.com/thiremani/beamtypes/types"
)

// Verdict classifies whether a call succeeds for the given argument shapes.
type Verdict int

const (
	Maybe Verdict = iota
	Yes
	No
)

var verdictNames = [...]string{
	Maybe: "maybe",
	Yes:   "yes",
	No:    "no",
}

func (v Verdict) String() string {
	if v >= 0 && int(v) < len(verdictNames) {
		return verdictNames[v]
	}
	return "verdict?"
}

// ParseVerdict is the inverse of Verdict.String.
func ParseVerdict(s string) (Verdict, error) {
	for v, name := range verdictNames {
		if name == s {
			return Verdict(v), nil
		}
	}
	return Maybe, fmt.Errorf("unknown verdict %q (want yes, no or maybe)", s)
}

// WillSucceed classifies mod:fn(args...) using the default registry.
func WillSucceed(mod, fn string, args []types.Shape) Verdict {
	return std.WillSucceed(mod, fn, args)
}

// WillSucceed reports whether mod:fn(args...) is known to succeed, known to
// fail, or neither. Yes and No are guarantees; Maybe is always sound.
func (a *Analyzer) WillSucceed(mod, fn string, args []types.Shape) Verdict {
	if mod == bifs.Erlang {
		if v, ok := erlangVerdict(fn, args); ok {
			return v
		}
	}

	mfa := bifs.MFA{Module: mod, Function: fn, Arity: len(args)}
	switch {
	case a.Registry.IsSafe(mfa):
		return Yes
	case a.Registry.IsExit(mfa):
		return No
	}

	r := a.Types(mod, fn, args)
	if r.Return.Kind() == types.NoneKind {
		return No
	}
	if anyPair(args, r.Args, disjoint) {
		return No
	}
	return Maybe
}

// erlangVerdict decides the erlang calls whose success depends only on the
// types of their arguments.
func erlangVerdict(fn string, args []types.Shape) (Verdict, bool) {
	switch len(args) {
	case 1:
		arg := args[0]
		switch fn {
		case "bit_size", "byte_size":
			return succeedsIfType(arg, bitstring), true
		case "hd", "tl":
			return succeedsIfType(arg, cons), true
		case "length":
			return succeedsIfType(arg, ProperList()), true
		case "map_size":
			return succeedsIfType(arg, types.Map{}), true
		case "not":
			return succeedsIfType(arg, boolean), true
		case "size":
			return succeedsIfType(arg, types.Join(types.Tuple{}, bitstring)), true
		case "tuple_size":
			return succeedsIfType(arg, types.Tuple{}), true
		}
	case 2:
		lhs, rhs := args[0], args[1]
		switch fn {
		case "++":
			return succeedsIfType(lhs, ProperList()), true
		case "--":
			return bothSucceed(succeedsIfType(lhs, ProperList()), succeedsIfType(rhs, ProperList())), true
		case "and", "or":
			return bothSucceed(succeedsIfType(lhs, boolean), succeedsIfType(rhs, boolean)), true
		case "is_map_key":
			return succeedsIfType(rhs, types.Map{}), true
		}
	case 3:
		if fn == "setelement" {
			return setelementVerdict(args[0], args[1])
		}
	}
	return Maybe, false
}

// setelementVerdict bounds-checks a ranged position against a tuple.
func setelementVerdict(pos, tuple types.Shape) (Verdict, bool) {
	r, ok := types.IntegerRange(pos)
	t, isTuple := tuple.(types.Tuple)
	if !ok || !isTuple {
		return Maybe, false
	}
	lo, hi := clampInt(r.Lo), clampInt(r.Hi)
	switch {
	case lo >= 1 && hi <= t.Size:
		return Yes, true
	case hi < 1, t.Exact && lo > t.Size:
		return No, true
	}
	return Maybe, true
}

// succeedsIfType is Yes when actual already lies within required, No when
// the two share no value and Maybe otherwise.
func succeedsIfType(actual, required types.Shape) Verdict {
	m := types.Meet(actual, required)
	switch {
	case types.Equal(m, actual):
		return Yes
	case m.Kind() == types.NoneKind:
		return No
	}
	return Maybe
}

func bothSucceed(a, b Verdict) Verdict {
	switch {
	case a == Yes && b == Yes:
		return Yes
	case a == No || b == No:
		return No
	}
	return Maybe
}

func disjoint(actual, required types.Shape) bool {
	return types.Meet(actual, required).Kind() == types.NoneKind
}

// anyPair reports whether pred holds for some pair of corresponding
// elements. Both slices must have the same length.
func anyPair(xs, ys []types.Shape, pred func(x, y types.Shape) bool) bool {
	if len(xs) != len(ys) {
		panic(fmt.Sprintf("anyPair: length mismatch %d != %d", len(xs), len(ys)))
	}
	for i := range xs {
		if pred(xs[i], ys[i]) {
			return true
		}
	}
	return false
}
