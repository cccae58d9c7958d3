package bitvec

import (
	"math/bits"

	"github.com/henrytill/vlnum-go/internal/scalar"
)

type wordOp func(a0, a1, b0, b1 uint64) (uint64, uint64)

func (v *BitVector) bitwise(b *BitVector, op wordOp) *BitVector {
	x, y, width, attr := operands(v, b, 2)
	r := newRaw(width, attr)
	for i := range r.p0 {
		r.p0[i], r.p1[i] = op(x.p0[i], x.p1[i], y.p0[i], y.p1[i])
	}
	r.trim()
	return r
}

// Not inverts every bit. X and Z become X.
func (v *BitVector) Not() *BitVector {
	r := newRaw(v.width, v.attr)
	for i := range r.p0 {
		r.p0[i], r.p1[i] = notWord(v.p0[i], v.p1[i])
	}
	r.trim()
	return r
}

func (v *BitVector) And(b *BitVector) *BitVector { return v.bitwise(b, andWord) }
func (v *BitVector) Or(b *BitVector) *BitVector  { return v.bitwise(b, orWord) }
func (v *BitVector) Xor(b *BitVector) *BitVector { return v.bitwise(b, xorWord) }

func (v *BitVector) Xnor(b *BitVector) *BitVector {
	return v.Xor(b).Not()
}

// Merge keeps bits on which both sides agree and gives X elsewhere.
func (v *BitVector) Merge(b *BitVector) *BitVector {
	return v.bitwise(b, mergeWord)
}

// driven returns the masks of definite 0 and definite 1 bits in word i.
func (v *BitVector) driven(i int) (zeros, ones uint64) {
	m := all1
	if i == len(v.p0)-1 {
		m = tailMask(v.width)
	}
	return v.p0[i] &^ v.p1[i] & m, v.p1[i] &^ v.p0[i] & m
}

// ReduceAnd is 0 if any bit is a driven 0, even when others are X or Z.
func (v *BitVector) ReduceAnd() scalar.Scalar {
	for i := range v.p0 {
		if zeros, _ := v.driven(i); zeros != 0 {
			return scalar.Zero
		}
	}
	if v.HasXZ() {
		return scalar.X
	}
	return scalar.One
}

// ReduceOr is 1 if any bit is a driven 1, even when others are X or Z.
func (v *BitVector) ReduceOr() scalar.Scalar {
	for i := range v.p0 {
		if _, ones := v.driven(i); ones != 0 {
			return scalar.One
		}
	}
	if v.HasXZ() {
		return scalar.X
	}
	return scalar.Zero
}

func (v *BitVector) ReduceXor() scalar.Scalar {
	if v.HasXZ() {
		return scalar.X
	}
	n := 0
	for _, w := range v.p1 {
		n += bits.OnesCount64(w)
	}
	return scalar.FromBool(n&1 == 1)
}

func (v *BitVector) ReduceNand() scalar.Scalar { return v.ReduceAnd().Not() }
func (v *BitVector) ReduceNor() scalar.Scalar  { return v.ReduceOr().Not() }
func (v *BitVector) ReduceXnor() scalar.Scalar { return v.ReduceXor().Not() }

func (v *BitVector) LogNot() scalar.Scalar {
	return v.ToLogic().Not()
}

func (v *BitVector) LogAnd(b *BitVector) scalar.Scalar {
	return v.ToLogic().And(b.ToLogic())
}

func (v *BitVector) LogOr(b *BitVector) scalar.Scalar {
	return v.ToLogic().Or(b.ToLogic())
}

// Ite selects a when cond is true and b when it is false. An unknown
// condition merges both branches.
func Ite(cond, a, b *BitVector) *BitVector {
	return IteScalar(cond.ToLogic(), a, b)
}

func IteScalar(s scalar.Scalar, a, b *BitVector) *BitVector {
	width := max(a.width, b.width)
	sized := a.attr.Sized || b.attr.Sized
	signed := a.attr.Signed && b.attr.Signed
	switch s.ToLogic() {
	case scalar.One:
		return a.Convert(width, Attr{Sized: sized, Signed: signed, Base: a.attr.Base})
	case scalar.Zero:
		return b.Convert(width, Attr{Sized: sized, Signed: signed, Base: b.attr.Base})
	default:
		return a.Merge(b)
	}
}
