package bitvec

import (
	"math/bits"

	"go.uber.org/zap"
)

// resultAttr gives the width and attributes of a binary operation: the wider
// width, sized if either is, signed only if both are. The base is kept when
// both agree and is otherwise fallback.
func resultAttr(a, b *BitVector, fallback int) (int, Attr) {
	attr := Attr{
		Sized:  a.attr.Sized || b.attr.Sized,
		Signed: a.attr.Signed && b.attr.Signed,
		Base:   fallback,
	}
	if a.attr.Base == b.attr.Base {
		attr.Base = a.attr.Base
	}
	return max(a.width, b.width), attr
}

// operands converts a and b to the common result shape.
func operands(a, b *BitVector, fallback int) (*BitVector, *BitVector, int, Attr) {
	width, attr := resultAttr(a, b, fallback)
	return a.Convert(width, attr), b.Convert(width, attr), width, attr
}

func addWords(x, y []uint64) []uint64 {
	z := make([]uint64, len(x))
	var c uint64
	for i := range z {
		z[i], c = bits.Add64(x[i], y[i], c)
	}
	return z
}

func subWords(x, y []uint64) []uint64 {
	z := make([]uint64, len(x))
	var c uint64
	for i := range z {
		z[i], c = bits.Sub64(x[i], y[i], c)
	}
	return z
}

func negWords(x []uint64) []uint64 {
	z := make([]uint64, len(x))
	c := uint64(1)
	for i := range z {
		z[i], c = bits.Add64(^x[i], 0, c)
	}
	return z
}

// mulWords returns the low len(x) words of x*y.
func mulWords(x, y []uint64) []uint64 {
	n := len(x)
	z := make([]uint64, n)
	for i := range n {
		if x[i] == 0 {
			continue
		}
		var carry uint64
		for j := 0; i+j < n; j++ {
			hi, lo := bits.Mul64(x[i], y[j])
			var c uint64
			lo, c = bits.Add64(lo, z[i+j], 0)
			hi += c
			lo, c = bits.Add64(lo, carry, 0)
			hi += c
			z[i+j] = lo
			carry = hi
		}
	}
	return z
}

func cmpWords(x, y []uint64) int {
	for i := len(x) - 1; i >= 0; i-- {
		switch {
		case x[i] < y[i]:
			return -1
		case x[i] > y[i]:
			return 1
		}
	}
	return 0
}

func zeroWords(x []uint64) bool {
	for _, w := range x {
		if w != 0 {
			return false
		}
	}
	return true
}

// divWords is restoring division of the low width bits of x by y.
func divWords(x, y []uint64, width int) (q, r []uint64) {
	n := len(x)
	q = make([]uint64, n)
	rem := make([]uint64, n+1)
	d := append(append([]uint64(nil), y...), 0)
	for i := width - 1; i >= 0; i-- {
		for j := n; j > 0; j-- {
			rem[j] = rem[j]<<1 | rem[j-1]>>(WordBits-1)
		}
		rem[0] = rem[0]<<1 | (x[i>>bitsLog2]>>uint(i&bitsMask))&1
		if cmpWords(rem, d) >= 0 {
			var c uint64
			for j := range rem {
				rem[j], c = bits.Sub64(rem[j], d[j], c)
			}
			q[i>>bitsLog2] |= 1 << uint(i&bitsMask)
		}
	}
	return q, rem[:n]
}

// magnitude returns the absolute value words of a definite vector.
func (v *BitVector) magnitude() []uint64 {
	if v.IsNegative() {
		w := negWords(v.p1)
		w[len(w)-1] &= tailMask(v.width)
		return w
	}
	return append([]uint64(nil), v.p1...)
}

// Neg is the two's complement negation. Any X or Z gives all X.
func (v *BitVector) Neg() *BitVector {
	if v.HasXZ() {
		return xOf(v.width, v.attr)
	}
	return fromValue(negWords(v.p1), v.width, v.attr)
}

// Add returns v + b. Any X or Z operand gives all X.
func (v *BitVector) Add(b *BitVector) *BitVector {
	x, y, width, attr := operands(v, b, 10)
	if x.HasXZ() || y.HasXZ() {
		return xOf(width, attr)
	}
	return fromValue(addWords(x.p1, y.p1), width, attr)
}

func (v *BitVector) Sub(b *BitVector) *BitVector {
	x, y, width, attr := operands(v, b, 10)
	if x.HasXZ() || y.HasXZ() {
		return xOf(width, attr)
	}
	return fromValue(subWords(x.p1, y.p1), width, attr)
}

// Mul returns the product truncated to the result width.
func (v *BitVector) Mul(b *BitVector) *BitVector {
	x, y, width, attr := operands(v, b, 10)
	if x.HasXZ() || y.HasXZ() {
		return xOf(width, attr)
	}
	return fromValue(mulWords(x.p1, y.p1), width, attr)
}

func (v *BitVector) divMod(b *BitVector, op string) (q, r *BitVector) {
	x, y, width, attr := operands(v, b, 10)
	if x.HasXZ() || y.HasXZ() {
		return xOf(width, attr), xOf(width, attr)
	}
	if y.isZero() {
		Logger().Debug("division by zero", zap.String("op", op), zap.Stringer("lhs", v))
		return xOf(width, attr), xOf(width, attr)
	}
	nx, ny := x.IsNegative(), y.IsNegative()
	qw, rw := divWords(x.magnitude(), y.magnitude(), width)
	if nx != ny {
		qw = negWords(qw)
	}
	if nx {
		rw = negWords(rw)
	}
	return fromValue(qw, width, attr), fromValue(rw, width, attr)
}

// Div truncates toward zero. Division by zero gives all X.
func (v *BitVector) Div(b *BitVector) *BitVector {
	q, _ := v.divMod(b, "/")
	return q
}

// Mod takes the sign of the dividend. Modulo by zero gives all X.
func (v *BitVector) Mod(b *BitVector) *BitVector {
	_, r := v.divMod(b, "%")
	return r
}

// Pow returns v ** b truncated to the result width. A negative signed
// exponent gives 0 unless |v| is 1; 0 ** negative is X.
func (v *BitVector) Pow(b *BitVector) *BitVector {
	x, y, width, attr := operands(v, b, 10)
	if x.HasXZ() || y.HasXZ() {
		return xOf(width, attr)
	}
	one := fromValue([]uint64{1}, width, attr)
	if y.IsNegative() {
		minusOne := one.Neg()
		switch {
		case x.isZero():
			return xOf(width, attr)
		case x.CaseEq(one):
			return one
		case x.CaseEq(minusOne):
			if y.p1[0]&1 == 1 {
				return minusOne
			}
			return one
		default:
			return fromValue(nil, width, attr)
		}
	}
	if x.CaseEq(fromValue([]uint64{2}, width, attr)) {
		if !y.IsUint32() {
			return fromValue(nil, width, attr)
		}
		return one.LshN(y.ToUint32())
	}
	acc := one.p1
	base := x.p1
	exp := append([]uint64(nil), y.p1...)
	for !zeroWords(exp) {
		if exp[0]&1 == 1 {
			acc = mulWords(acc, base)
		}
		exp = rshWords(exp, 1, 0)
		if !zeroWords(exp) {
			base = mulWords(base, base)
		}
	}
	return fromValue(acc, width, attr)
}
