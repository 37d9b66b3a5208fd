package calltypes

import (
	"math/big"

	"github.com/thiremani/beamtypes/types"
)

// maxMaskSpan bounds the ranges rangeMasks is asked to walk.
var maxMaskSpan = new(big.Int).Lsh(big.NewInt(1), 256)

// bandReturn computes the result range of x band c where one operand is
// the exact integer c. The analysis is symmetric in operand order.
func bandReturn(lhs, rhs types.Shape) types.Shape {
	if c, ok := types.ExactInteger(lhs); ok {
		return bandWith(rhs, c)
	}
	if c, ok := types.ExactInteger(rhs); ok {
		return bandWith(lhs, c)
	}
	return types.Integer{}
}

func bandWith(other types.Shape, c *big.Int) types.Shape {
	if c.Sign() < 0 {
		// A negative mask sign-extends, so the result may be either side of
		// zero.
		return types.Integer{}
	}
	r, ok := types.IntegerRange(other)
	if !ok || r.Lo.Sign() < 0 || new(big.Int).Sub(r.Hi, r.Lo).Cmp(maxMaskSpan) >= 0 {
		return types.MakeIntegerRange(new(big.Int), c)
	}

	inter, union := rangeMasks(r.Lo, r.Hi)
	lo := new(big.Int).And(inter, c)
	hi := new(big.Int).And(union, c)
	if r.Hi.Cmp(hi) < 0 {
		hi.Set(r.Hi)
	}
	return types.MakeIntegerRange(lo, hi)
}

// rangeMasks returns the bits set in every value of [from, to] and the bits
// set in any of them. Both bounds must be non-negative.
func rangeMasks(from, to *big.Int) (inter, union *big.Int) {
	inter = big.NewInt(-1)
	union = new(big.Int)
	cur := new(big.Int).Set(from)
	for bit := uint(0); cur.Cmp(to) < 0; bit++ {
		inter.And(inter, cur)
		union.Or(union, cur)
		cur.Add(cur, new(big.Int).Lsh(big.NewInt(1), bit))
	}
	inter.And(inter, to)
	union.Or(union, to)
	return inter, union
}
