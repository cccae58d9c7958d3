// Package value implements the tagged constant value used by expression
// evaluation: a closed sum over native integers, reals, times, four-state
// scalars and bit-vectors, with Error as the absorbing variant.
package value

import (
	"math"
	"strconv"

	"github.com/henrytill/vlnum-go/internal/bitvec"
	"github.com/henrytill/vlnum-go/internal/scalar"
	"github.com/henrytill/vlnum-go/internal/vltype"
)

// Kind selects the payload of a Value.
type Kind uint8

const (
	Error Kind = iota
	Int
	UInt
	Scalar
	Real
	Time
	BitVector
)

var kindNames = [...]string{
	Error:     "error",
	Int:       "int",
	UInt:      "uint",
	Scalar:    "scalar",
	Real:      "real",
	Time:      "time",
	BitVector: "bitvector",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is an immutable tagged value. The zero Value is an Error.
type Value struct {
	kind Kind
	i    int32
	u    uint32
	s    scalar.Scalar
	r    float64
	t    uint64
	bv   *bitvec.BitVector
}

var (
	uintType   = vltype.New(false, true, 32)
	scalarType = vltype.New(false, true, 1)
)

func NewInt(i int32) Value            { return Value{kind: Int, i: i} }
func NewUint(u uint32) Value          { return Value{kind: UInt, u: u} }
func NewScalar(s scalar.Scalar) Value { return Value{kind: Scalar, s: s} }
func NewReal(r float64) Value         { return Value{kind: Real, r: r} }
func NewTime(t uint64) Value          { return Value{kind: Time, t: t} }
func NewError() Value                 { return Value{} }

// NewBitVector wraps bv. A nil vector gives an Error.
func NewBitVector(bv *bitvec.BitVector) Value {
	if bv == nil {
		return Value{}
	}
	return Value{kind: BitVector, bv: bv}
}

// Convert coerces v to t. Int, Real and Time descriptors produce native
// values; a bit-vector descriptor resizes and re-signs the bit-vector form,
// keeping its base. NoType is the identity. A value that is not real or
// time compatible converts to Error under those descriptors.
func Convert(v Value, t vltype.Type) Value {
	switch {
	case v.kind == Error:
		return v
	case t.IsNoType():
		return v
	case t.IsIntType():
		return NewInt(v.Int())
	case t.IsRealType():
		if !v.IsRealCompat() {
			return NewError()
		}
		return NewReal(v.Real())
	case t.IsTimeType():
		if !v.IsTimeCompat() {
			return NewError()
		}
		return NewTime(v.Time())
	}
	bv, ok := v.BitVector(vltype.NoType)
	if !ok {
		return NewError()
	}
	return NewBitVector(bv.Convert(t.Size, bitvec.Attr{Sized: t.Sized, Signed: t.Signed, Base: bv.Base()}))
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsError() bool     { return v.kind == Error }
func (v Value) IsInt() bool       { return v.kind == Int }
func (v Value) IsUint() bool      { return v.kind == UInt }
func (v Value) IsScalar() bool    { return v.kind == Scalar }
func (v Value) IsReal() bool      { return v.kind == Real }
func (v Value) IsTime() bool      { return v.kind == Time }
func (v Value) IsBitVector() bool { return v.kind == BitVector }

func (v Value) IsIntCompat() bool {
	switch v.kind {
	case Int, UInt, Real:
		return true
	case Scalar:
		return !v.s.IsXZ()
	case Time:
		return v.t <= math.MaxInt32
	case BitVector:
		return v.bv.IsInt()
	}
	return false
}

func (v Value) IsUintCompat() bool {
	switch v.kind {
	case Int, UInt, Real:
		return true
	case Scalar:
		return !v.s.IsXZ()
	case Time:
		return v.t <= math.MaxUint32
	case BitVector:
		return v.bv.IsUint32()
	}
	return false
}

func (v Value) IsRealCompat() bool {
	switch v.kind {
	case Int, UInt, Real, Time:
		return true
	case Scalar:
		return !v.s.IsXZ()
	case BitVector:
		return !v.bv.HasXZ()
	}
	return false
}

func (v Value) IsTimeCompat() bool {
	switch v.kind {
	case Int, UInt, Real, Time:
		return true
	case Scalar:
		return !v.s.IsXZ()
	case BitVector:
		return v.bv.IsTime()
	}
	return false
}

// IsBitVectorCompat is false only for Real and Error.
func (v Value) IsBitVectorCompat() bool {
	return v.kind != Error && v.kind != Real
}

// realToInt truncates toward zero; values outside the int64 range give 0.
func realToInt(r float64) int64 {
	if math.IsNaN(r) || r >= math.MaxInt64 || r < math.MinInt64 {
		return 0
	}
	return int64(r)
}

func (v Value) Int() int32 {
	switch v.kind {
	case Int:
		return v.i
	case UInt:
		return int32(v.u)
	case Scalar:
		return int32(v.s.ToInt())
	case Real:
		return int32(realToInt(v.r))
	case Time:
		return int32(uint32(v.t))
	case BitVector:
		return v.bv.ToInt()
	}
	return 0
}

func (v Value) Uint() uint32 {
	switch v.kind {
	case Int:
		return uint32(v.i)
	case UInt:
		return v.u
	case Scalar:
		return uint32(v.s.ToInt())
	case Real:
		return uint32(realToInt(v.r))
	case Time:
		return uint32(v.t)
	case BitVector:
		return v.bv.ToUint32()
	}
	return 0
}

func (v Value) ScalarValue() scalar.Scalar {
	switch v.kind {
	case Int:
		return scalar.FromInt(int64(v.i))
	case UInt:
		return scalar.FromInt(int64(v.u))
	case Scalar:
		return v.s
	case Real:
		return scalar.FromFloat(v.r)
	case Time:
		return scalar.FromInt(int64(uint32(v.t)))
	case BitVector:
		return v.bv.ToScalar()
	}
	return scalar.X
}

// LogicValue is the truth value used by conditions and logical operators.
func (v Value) LogicValue() scalar.Scalar {
	switch v.kind {
	case Int:
		return scalar.FromBool(v.i != 0)
	case UInt:
		return scalar.FromBool(v.u != 0)
	case Scalar:
		return v.s.ToLogic()
	case Real:
		return scalar.FromBool(v.r != 0)
	case Time:
		return scalar.FromBool(v.t != 0)
	case BitVector:
		return v.bv.ToLogic()
	}
	return scalar.X
}

func (v Value) Real() float64 {
	switch v.kind {
	case Int:
		return float64(v.i)
	case UInt:
		return float64(v.u)
	case Scalar:
		return v.s.ToReal()
	case Real:
		return v.r
	case Time:
		return float64(v.t)
	case BitVector:
		return v.bv.ToReal()
	}
	return 0
}

func (v Value) Time() uint64 {
	switch v.kind {
	case Int:
		return uint64(uint32(v.i))
	case UInt:
		return uint64(v.u)
	case Scalar:
		return uint64(v.s.ToInt())
	case Real:
		if v.r <= 0 || math.IsNaN(v.r) {
			return 0
		}
		if v.r >= math.MaxUint64 {
			return math.MaxUint64
		}
		return uint64(v.r)
	case Time:
		return v.t
	case BitVector:
		return v.bv.ToTime()
	}
	return 0
}

// BitVector returns the bit-vector form of v coerced to t. It reports false
// for Real and Error.
func (v Value) BitVector(t vltype.Type) (*bitvec.BitVector, bool) {
	var bv *bitvec.BitVector
	switch v.kind {
	case Int:
		bv = bitvec.FromInt(v.i)
	case UInt:
		bv = bitvec.FromUint(v.u)
	case Scalar:
		bv = bitvec.FromScalar(v.s)
	case Time:
		bv = bitvec.FromTime(v.t)
	case BitVector:
		bv = v.bv
	default:
		return nil, false
	}
	return bv.Coerce(t), true
}

// vec is BitVector(NoType) for callers that already checked compatibility.
func (v Value) vec() *bitvec.BitVector {
	bv, _ := v.BitVector(vltype.NoType)
	return bv
}

func (v Value) ValueType() vltype.Type {
	switch v.kind {
	case Int:
		return vltype.IntType
	case UInt:
		return uintType
	case Scalar:
		return scalarType
	case Real:
		return vltype.RealType
	case Time:
		return vltype.TimeType
	case BitVector:
		return v.bv.Type()
	}
	return vltype.NoType
}

func (v Value) BitSize() int {
	return v.ValueType().Size
}

func (v Value) IsSigned() bool {
	return v.ValueType().Signed
}

// Equal reports structural equality: same kind and identical payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case Int:
		return v.i == o.i
	case UInt:
		return v.u == o.u
	case Scalar:
		return v.s == o.s
	case Real:
		return v.r == o.r
	case Time:
		return v.t == o.t
	case BitVector:
		return v.bv.Equal(o.bv)
	}
	return true
}

func (v Value) String() string {
	return v.Format(0)
}

// Format renders v. Integer kinds and bit-vectors honor base when it is
// one of 2, 8, 10 or 16; base 0 uses the value's natural form.
func (v Value) Format(base int) string {
	switch v.kind {
	case Error:
		return "error"
	case Scalar:
		return v.s.String()
	case Real:
		return strconv.FormatFloat(v.r, 'g', -1, 64)
	case BitVector:
		return v.bv.VerilogString(base)
	}
	if base != 0 && base != 10 {
		return v.vec().VerilogString(base)
	}
	switch v.kind {
	case Int:
		return strconv.FormatInt(int64(v.i), 10)
	case UInt:
		return strconv.FormatUint(uint64(v.u), 10)
	default:
		return strconv.FormatUint(v.t, 10)
	}
}
