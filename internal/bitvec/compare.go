package bitvec

import "github.com/henrytill/vlnum-go/internal/scalar"

// less compares two definite vectors of the same shape. Two's complement
// words of equal sign order the same way as unsigned words.
func less(x, y *BitVector) bool {
	if nx, ny := x.IsNegative(), y.IsNegative(); nx != ny {
		return nx
	}
	return cmpWords(x.p1, y.p1) < 0
}

func (v *BitVector) relational(b *BitVector, f func(x, y *BitVector) bool) scalar.Scalar {
	x, y, _, _ := operands(v, b, 10)
	if x.HasXZ() || y.HasXZ() {
		return scalar.X
	}
	return scalar.FromBool(f(x, y))
}

// Less reports v < b, treating any X or Z as false.
func (v *BitVector) Less(b *BitVector) bool {
	return v.Lt(b).IsOne()
}

func (v *BitVector) Lt(b *BitVector) scalar.Scalar {
	return v.relational(b, less)
}

func (v *BitVector) Le(b *BitVector) scalar.Scalar {
	return v.relational(b, func(x, y *BitVector) bool { return !less(y, x) })
}

func (v *BitVector) Gt(b *BitVector) scalar.Scalar {
	return v.relational(b, func(x, y *BitVector) bool { return less(y, x) })
}

func (v *BitVector) Ge(b *BitVector) scalar.Scalar {
	return v.relational(b, func(x, y *BitVector) bool { return !less(x, y) })
}

// Eq is the logical equality: X when either side has X or Z.
func (v *BitVector) Eq(b *BitVector) scalar.Scalar {
	return v.relational(b, func(x, y *BitVector) bool { return cmpWords(x.p1, y.p1) == 0 })
}

func (v *BitVector) Ne(b *BitVector) scalar.Scalar {
	return v.Eq(b).Not()
}

// match compares bit by bit. Positions where either side holds a bit
// selected by wild are treated as matching.
func (v *BitVector) match(b *BitVector, wild func(p0, p1 uint64) uint64) bool {
	x, y, _, _ := operands(v, b, 10)
	for i := range x.p0 {
		diff := (x.p0[i] ^ y.p0[i]) | (x.p1[i] ^ y.p1[i])
		if wild != nil {
			diff &^= wild(x.p0[i], x.p1[i]) | wild(y.p0[i], y.p1[i])
		}
		if diff != 0 {
			return false
		}
	}
	return true
}

func xBits(p0, p1 uint64) uint64  { return p0 & p1 }
func xzBits(p0, p1 uint64) uint64 { return ^definiteWord(p0, p1) }

// EqWithX treats X on either side as a wildcard.
func (v *BitVector) EqWithX(b *BitVector) bool {
	return v.match(b, xBits)
}

// EqWithXZ treats X and Z on either side as wildcards.
func (v *BitVector) EqWithXZ(b *BitVector) bool {
	return v.match(b, xzBits)
}

// CaseEq compares exact four-state encodings after extension.
func (v *BitVector) CaseEq(b *BitVector) bool {
	return v.match(b, nil)
}
