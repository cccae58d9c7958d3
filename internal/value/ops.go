package value

import (
	"math"

	"github.com/henrytill/vlnum-go/internal/bitvec"
	"github.com/henrytill/vlnum-go/internal/scalar"
)

func isInteger(v Value) bool {
	return v.kind == Int || v.kind == UInt
}

func anyError(vs ...Value) bool {
	for _, v := range vs {
		if v.kind == Error {
			return true
		}
	}
	return false
}

// divByZero is the result of a native integer division by zero.
func divByZero(signed bool) Value {
	return NewBitVector(bitvec.X(bitvec.DefaultWidth).WithAttr(bitvec.Attr{Signed: signed, Base: 10}))
}

// binop dispatches a binary arithmetic operator on the operand kinds.
// A nil reals function makes a Real operand an error.
type binop struct {
	ints  func(x, y int32) Value
	uints func(x, y uint32) Value
	reals func(x, y float64) Value
	vecs  func(x, y *bitvec.BitVector) *bitvec.BitVector
}

func (op *binop) apply(a, b Value) Value {
	switch {
	case anyError(a, b):
		return NewError()
	case a.kind == UInt && b.kind == UInt:
		return op.uints(a.u, b.u)
	case isInteger(a) && isInteger(b):
		return op.ints(a.Int(), b.Int())
	case a.kind == Real || b.kind == Real:
		if op.reals == nil {
			return NewError()
		}
		return op.reals(a.Real(), b.Real())
	}
	return NewBitVector(op.vecs(a.vec(), b.vec()))
}

var (
	addOp = binop{
		ints:  func(x, y int32) Value { return NewInt(x + y) },
		uints: func(x, y uint32) Value { return NewUint(x + y) },
		reals: func(x, y float64) Value { return NewReal(x + y) },
		vecs:  (*bitvec.BitVector).Add,
	}
	subOp = binop{
		ints:  func(x, y int32) Value { return NewInt(x - y) },
		uints: func(x, y uint32) Value { return NewUint(x - y) },
		reals: func(x, y float64) Value { return NewReal(x - y) },
		vecs:  (*bitvec.BitVector).Sub,
	}
	mulOp = binop{
		ints:  func(x, y int32) Value { return NewInt(x * y) },
		uints: func(x, y uint32) Value { return NewUint(x * y) },
		reals: func(x, y float64) Value { return NewReal(x * y) },
		vecs:  (*bitvec.BitVector).Mul,
	}
	divOp = binop{
		ints: func(x, y int32) Value {
			if y == 0 {
				return divByZero(true)
			}
			return NewInt(x / y)
		},
		uints: func(x, y uint32) Value {
			if y == 0 {
				return divByZero(false)
			}
			return NewUint(x / y)
		},
		reals: func(x, y float64) Value { return NewReal(x / y) },
		vecs:  (*bitvec.BitVector).Div,
	}
	modOp = binop{
		ints: func(x, y int32) Value {
			if y == 0 {
				return divByZero(true)
			}
			return NewInt(x % y)
		},
		uints: func(x, y uint32) Value {
			if y == 0 {
				return divByZero(false)
			}
			return NewUint(x % y)
		},
		vecs: (*bitvec.BitVector).Mod,
	}
)

// Neg is unary minus. UInt and known Scalar operands give the unsigned wrap
// of the negated integer; Time and X or Z scalars are negated as bit-vectors.
func Neg(v Value) Value {
	switch v.kind {
	case Int:
		return NewInt(-v.i)
	case Scalar:
		if v.s.IsXZ() {
			return NewBitVector(v.vec().Neg())
		}
		return NewUint(uint32(-v.Int()))
	case UInt:
		return NewUint(uint32(-v.Int()))
	case Real:
		return NewReal(-v.r)
	case Time, BitVector:
		return NewBitVector(v.vec().Neg())
	}
	return NewError()
}

// Add sums a and b. Two Time operands give a Time.
func Add(a, b Value) Value {
	if a.kind == Time && b.kind == Time {
		return NewTime(a.t + b.t)
	}
	return addOp.apply(a, b)
}

func Sub(a, b Value) Value { return subOp.apply(a, b) }
func Mul(a, b Value) Value { return mulOp.apply(a, b) }
func Div(a, b Value) Value { return divOp.apply(a, b) }
func Mod(a, b Value) Value { return modOp.apply(a, b) }

// Pow computes a**b. With an Int or Real operand the result is a Real, or
// a Scalar X when the power is undefined.
func Pow(a, b Value) Value {
	if anyError(a, b) {
		return NewError()
	}
	if a.kind == Int || a.kind == Real || b.kind == Int || b.kind == Real {
		x, y := a.Real(), b.Real()
		if (x == 0 && y <= 0) || (x < 0 && math.Trunc(y) != y) {
			return NewScalar(scalar.X)
		}
		return NewReal(math.Pow(x, y))
	}
	return NewBitVector(a.vec().Pow(b.vec()))
}

func fromBool(b bool) Value {
	return NewScalar(scalar.FromBool(b))
}

// Lt compares a < b. The result is a Scalar, X when either bit-vector
// operand has unknown bits.
func Lt(a, b Value) Value {
	switch {
	case anyError(a, b):
		return NewError()
	case a.kind == UInt && b.kind == UInt:
		return fromBool(a.u < b.u)
	case isInteger(a) && isInteger(b):
		return fromBool(a.Int() < b.Int())
	case a.kind == Real || b.kind == Real:
		return fromBool(a.Real() < b.Real())
	}
	return NewScalar(a.vec().Lt(b.vec()))
}

func Gt(a, b Value) Value { return Lt(b, a) }
func Le(a, b Value) Value { return LogNot(Lt(b, a)) }
func Ge(a, b Value) Value { return LogNot(Lt(a, b)) }

// equality runs the native integer and real comparisons shared by the
// equality operators and falls back to vec for everything else.
func equality(a, b Value, vec func(x, y *bitvec.BitVector) scalar.Scalar) Value {
	switch {
	case anyError(a, b):
		return NewError()
	case isInteger(a) && isInteger(b):
		return fromBool(a.Int() == b.Int())
	case a.kind == Real || b.kind == Real:
		return fromBool(a.Real() == b.Real())
	}
	return NewScalar(vec(a.vec(), b.vec()))
}

func Eq(a, b Value) Value {
	return equality(a, b, (*bitvec.BitVector).Eq)
}

func Ne(a, b Value) Value {
	return LogNot(Eq(a, b))
}

// EqWithX compares with X bits on either side acting as wildcards.
func EqWithX(a, b Value) Value {
	return equality(a, b, func(x, y *bitvec.BitVector) scalar.Scalar {
		return scalar.FromBool(x.EqWithX(y))
	})
}

// EqWithXZ compares with X and Z bits on either side acting as wildcards.
func EqWithXZ(a, b Value) Value {
	return equality(a, b, func(x, y *bitvec.BitVector) scalar.Scalar {
		return scalar.FromBool(x.EqWithXZ(y))
	})
}

// CaseEq is the === operator: X and Z bits must match exactly.
func CaseEq(a, b Value) Value {
	return equality(a, b, func(x, y *bitvec.BitVector) scalar.Scalar {
		return scalar.FromBool(x.CaseEq(y))
	})
}

func CaseNe(a, b Value) Value {
	return LogNot(CaseEq(a, b))
}

func LogNot(v Value) Value {
	if v.kind == Error {
		return v
	}
	return NewScalar(v.LogicValue().Not())
}

func LogAnd(a, b Value) Value {
	if anyError(a, b) {
		return NewError()
	}
	return NewScalar(a.LogicValue().And(b.LogicValue()))
}

func LogOr(a, b Value) Value {
	if anyError(a, b) {
		return NewError()
	}
	return NewScalar(a.LogicValue().Or(b.LogicValue()))
}

func vecCompat(vs ...Value) bool {
	for _, v := range vs {
		if !v.IsBitVectorCompat() {
			return false
		}
	}
	return true
}

func bitwise(a, b Value, op func(x, y *bitvec.BitVector) *bitvec.BitVector) Value {
	if !vecCompat(a, b) {
		return NewError()
	}
	return NewBitVector(op(a.vec(), b.vec()))
}

func BitNot(v Value) Value {
	if !vecCompat(v) {
		return NewError()
	}
	return NewBitVector(v.vec().Not())
}

func BitAnd(a, b Value) Value  { return bitwise(a, b, (*bitvec.BitVector).And) }
func BitOr(a, b Value) Value   { return bitwise(a, b, (*bitvec.BitVector).Or) }
func BitXor(a, b Value) Value  { return bitwise(a, b, (*bitvec.BitVector).Xor) }
func BitXnor(a, b Value) Value { return bitwise(a, b, (*bitvec.BitVector).Xnor) }

func reduce(v Value, op func(*bitvec.BitVector) scalar.Scalar) Value {
	if !vecCompat(v) {
		return NewError()
	}
	return NewScalar(op(v.vec()))
}

func ReduceAnd(v Value) Value  { return reduce(v, (*bitvec.BitVector).ReduceAnd) }
func ReduceNand(v Value) Value { return reduce(v, (*bitvec.BitVector).ReduceNand) }
func ReduceOr(v Value) Value   { return reduce(v, (*bitvec.BitVector).ReduceOr) }
func ReduceNor(v Value) Value  { return reduce(v, (*bitvec.BitVector).ReduceNor) }
func ReduceXor(v Value) Value  { return reduce(v, (*bitvec.BitVector).ReduceXor) }
func ReduceXnor(v Value) Value { return reduce(v, (*bitvec.BitVector).ReduceXnor) }

// The shift amount is any bit-vector-compatible value; an amount with
// unknown bits gives all X.
func Lsh(a, b Value) Value  { return bitwise(a, b, (*bitvec.BitVector).Lsh) }
func Rsh(a, b Value) Value  { return bitwise(a, b, (*bitvec.BitVector).Rsh) }
func ALsh(a, b Value) Value { return bitwise(a, b, (*bitvec.BitVector).ALsh) }
func ARsh(a, b Value) Value { return bitwise(a, b, (*bitvec.BitVector).ARsh) }

// Ite selects a when cond is true and b when it is false.
func Ite(cond, a, b Value) Value {
	if cond.kind == Error {
		return cond
	}
	return IteScalar(cond.LogicValue(), a, b)
}

// IteScalar is Ite with an already reduced condition. An unknown condition
// merges two bit-vector-compatible branches bit by bit and otherwise only
// succeeds when both branches are equal.
func IteScalar(s scalar.Scalar, a, b Value) Value {
	switch s.ToLogic() {
	case scalar.One:
		return a
	case scalar.Zero:
		return b
	}
	switch {
	case vecCompat(a, b):
		return NewBitVector(a.vec().Merge(b.vec()))
	case a.Equal(b):
		return a
	}
	return NewError()
}

func vecs(parts []Value) ([]*bitvec.BitVector, bool) {
	bvs := make([]*bitvec.BitVector, len(parts))
	for i, p := range parts {
		if !p.IsBitVectorCompat() {
			return nil, false
		}
		bvs[i] = p.vec()
	}
	return bvs, true
}

// Concat joins parts most significant first.
func Concat(parts ...Value) Value {
	bvs, ok := vecs(parts)
	if !ok {
		return NewError()
	}
	return NewBitVector(bitvec.Concat(bvs...))
}

// MultiConcat repeats the concatenation of parts rep times.
func MultiConcat(rep Value, parts ...Value) Value {
	bvs, ok := vecs(parts)
	if !ok || !rep.IsBitVectorCompat() {
		return NewError()
	}
	return NewBitVector(bitvec.MultiConcat(rep.vec(), bvs...))
}

// BitSelect returns bit idx of v as a Scalar. Unknown or out-of-range
// indices give X.
func BitSelect(v, idx Value) Value {
	if !v.IsBitVectorCompat() || idx.kind == Error {
		return NewError()
	}
	if !idx.IsIntCompat() {
		return NewScalar(scalar.X)
	}
	return NewScalar(v.vec().Bit(int(idx.Int())))
}

// PartSelect returns bits [msb:lsb] of v. Both bounds must be known
// integers.
func PartSelect(v, msb, lsb Value) Value {
	if !v.IsBitVectorCompat() || !msb.IsIntCompat() || !lsb.IsIntCompat() {
		return NewError()
	}
	return NewBitVector(v.vec().PartSelect(int(msb.Int()), int(lsb.Int())))
}
