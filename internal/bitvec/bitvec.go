// Package bitvec implements arbitrary-width four-state bit-vectors with
// Verilog semantics for arithmetic, comparison, bitwise, shift, select and
// text rendering.
package bitvec

import (
	"math"

	"github.com/henrytill/vlnum-go/internal/scalar"
	"github.com/henrytill/vlnum-go/internal/vltype"
)

const (
	// DefaultWidth is the width of unsized values and native integers.
	DefaultWidth = 32
	// TimeWidth is the width of time values.
	TimeWidth = 64
)

// Attr holds the display and interpretation attributes of a vector. They
// never change the stored bits.
type Attr struct {
	Sized  bool
	Signed bool
	Base   int
}

// BitVector is an immutable four-state vector, apart from SetBit and
// SetPartSelect.
type BitVector struct {
	width  int
	attr   Attr
	p0, p1 []uint64
}

func newRaw(width int, attr Attr) *BitVector {
	if width < 1 {
		width = 1
	}
	n := wordsNeeded(width)
	return &BitVector{
		width: width,
		attr:  attr,
		p0:    make([]uint64, n),
		p1:    make([]uint64, n),
	}
}

// fromValue builds a vector of driven bits from the low width bits of words.
func fromValue(words []uint64, width int, attr Attr) *BitVector {
	r := newRaw(width, attr)
	for i := range r.p1 {
		if i < len(words) {
			r.p1[i] = words[i]
		}
		r.p0[i] = ^r.p1[i]
	}
	r.trim()
	return r
}

// trim resets the padding above width to the 0 encoding.
func (v *BitVector) trim() {
	last := len(v.p0) - 1
	m := tailMask(v.width)
	v.p0[last] = v.p0[last]&m | ^m
	v.p1[last] &= m
}

func (v *BitVector) clone() *BitVector {
	r := &BitVector{width: v.width, attr: v.attr}
	r.p0 = append([]uint64(nil), v.p0...)
	r.p1 = append([]uint64(nil), v.p1...)
	return r
}

// Filled returns a sized, unsigned, binary vector with every bit set to s.
func Filled(s scalar.Scalar, width int) *BitVector {
	r := newRaw(width, Attr{Sized: true, Base: 2})
	p0, p1 := s.Planes()
	for i := range r.p0 {
		r.p0[i], r.p1[i] = p0, p1
	}
	r.trim()
	return r
}

func Zero(width int) *BitVector { return Filled(scalar.Zero, width) }
func One(width int) *BitVector  { return Filled(scalar.One, width) }
func X(width int) *BitVector    { return Filled(scalar.X, width) }
func Z(width int) *BitVector    { return Filled(scalar.Z, width) }

func xOf(width int, attr Attr) *BitVector {
	r := X(width)
	r.attr = attr
	return r
}

// FromInt returns a signed, unsized, decimal 32-bit vector.
func FromInt(n int32) *BitVector {
	return fromValue([]uint64{uint64(uint32(n))}, DefaultWidth, Attr{Signed: true, Base: 10})
}

// FromUint returns an unsigned, unsized, decimal 32-bit vector.
func FromUint(n uint32) *BitVector {
	return fromValue([]uint64{uint64(n)}, DefaultWidth, Attr{Base: 10})
}

// FromFloat rounds half to even and converts the result as FromInt does.
// NaN, infinities and values outside the int64 range give all X.
func FromFloat(f float64) *BitVector {
	r := math.RoundToEven(f)
	if math.IsNaN(r) || r >= math.MaxInt64 || r < math.MinInt64 {
		return xOf(DefaultWidth, Attr{Signed: true, Base: 10})
	}
	return FromInt(int32(int64(r)))
}

func FromBool(b bool) *BitVector {
	return FromScalar(scalar.FromBool(b))
}

func FromScalar(s scalar.Scalar) *BitVector {
	return Filled(s, 1)
}

// FromTime returns an unsigned, sized, decimal 64-bit vector.
func FromTime(t uint64) *BitVector {
	return fromValue([]uint64{t}, TimeWidth, Attr{Sized: true, Base: 10})
}

// FromBytes packs b big-endian, eight bits per byte. Empty input is a
// single NUL byte.
func FromBytes(b []byte) *BitVector {
	if len(b) == 0 {
		b = []byte{0}
	}
	width := len(b) * 8
	words := make([]uint64, wordsNeeded(width))
	for i, c := range b {
		pos := (len(b) - 1 - i) * 8
		words[pos>>bitsLog2] |= uint64(c) << uint(pos&bitsMask)
	}
	return fromValue(words, width, Attr{Sized: true, Base: 2})
}

func FromString(s string) *BitVector {
	return FromBytes([]byte(s))
}

// Convert returns v at width with attr. Bits below the source width are
// copied. New high bits repeat the source MSB if it is X or Z, are 1 if it
// is 1 and the target is signed, and are 0 otherwise.
func (v *BitVector) Convert(width int, attr Attr) *BitVector {
	r := newRaw(width, attr)
	f0, f1 := v.extension(attr.Signed)
	sn := len(v.p0)
	m := tailMask(v.width)
	for i := range r.p0 {
		switch {
		case i < sn-1:
			r.p0[i], r.p1[i] = v.p0[i], v.p1[i]
		case i == sn-1:
			r.p0[i] = v.p0[i]&m | f0&^m
			r.p1[i] = v.p1[i]&m | f1&^m
		default:
			r.p0[i], r.p1[i] = f0, f1
		}
	}
	r.trim()
	return r
}

func (v *BitVector) extension(signed bool) (uint64, uint64) {
	switch msb := v.Bit(v.width - 1); {
	case msb.IsX():
		return all1, all1
	case msb.IsZ():
		return 0, 0
	case msb.IsOne() && signed:
		return 0, all1
	default:
		return all1, 0
	}
}

// Resize converts v to width and marks it sized.
func (v *BitVector) Resize(width int) *BitVector {
	attr := v.attr
	attr.Sized = true
	return v.Convert(width, attr)
}

// Coerce converts v to the size and flags of t, keeping its base. NoType is
// the identity.
func (v *BitVector) Coerce(t vltype.Type) *BitVector {
	if t.IsNoType() {
		return v
	}
	return v.Convert(t.Size, Attr{Sized: t.Sized, Signed: t.Signed, Base: v.attr.Base})
}

func (v *BitVector) WithAttr(attr Attr) *BitVector {
	r := v.clone()
	r.attr = attr
	return r
}

func (v *BitVector) Width() int     { return v.width }
func (v *BitVector) IsSized() bool  { return v.attr.Sized }
func (v *BitVector) IsSigned() bool { return v.attr.Signed }
func (v *BitVector) Base() int      { return v.attr.Base }
func (v *BitVector) Attr() Attr     { return v.attr }

func (v *BitVector) Type() vltype.Type {
	return vltype.New(v.attr.Signed, v.attr.Sized, v.width)
}

// Bit returns the bit at pos, or X when pos is out of range.
func (v *BitVector) Bit(pos int) scalar.Scalar {
	if pos < 0 || pos >= v.width {
		return scalar.X
	}
	i, s := pos>>bitsLog2, uint(pos&bitsMask)
	return scalar.FromPlanes(v.p0[i]>>s, v.p1[i]>>s)
}

// SetBit replaces the bit at pos. Out-of-range positions are ignored.
func (v *BitVector) SetBit(pos int, s scalar.Scalar) {
	if pos < 0 || pos >= v.width {
		return
	}
	i, m := pos>>bitsLog2, uint64(1)<<uint(pos&bitsMask)
	p0, p1 := s.Planes()
	v.p0[i] = v.p0[i]&^m | p0&m
	v.p1[i] = v.p1[i]&^m | p1&m
}

func (v *BitVector) HasX() bool {
	for i := range v.p0 {
		if v.p0[i]&v.p1[i] != 0 {
			return true
		}
	}
	return false
}

func (v *BitVector) HasZ() bool {
	for i := range v.p0 {
		if ^v.p0[i]&^v.p1[i] != 0 {
			return true
		}
	}
	return false
}

func (v *BitVector) HasXZ() bool {
	for i := range v.p0 {
		if ^definiteWord(v.p0[i], v.p1[i]) != 0 {
			return true
		}
	}
	return false
}

// ZToX replaces every Z bit with X.
func (v *BitVector) ZToX() *BitVector {
	r := v.clone()
	for i := range r.p0 {
		r.p0[i], r.p1[i] = zToXWord(r.p0[i], r.p1[i])
	}
	return r
}

// XZTo0 replaces every X and Z bit with 0.
func (v *BitVector) XZTo0() *BitVector {
	r := v.clone()
	for i := range r.p0 {
		xz := ^definiteWord(r.p0[i], r.p1[i])
		r.p0[i] |= xz
		r.p1[i] &^= xz
	}
	return r
}

func (v *BitVector) IsNegative() bool {
	return v.attr.Signed && v.Bit(v.width-1).IsOne()
}

func (v *BitVector) isZero() bool {
	for _, w := range v.p1 {
		if w != 0 {
			return false
		}
	}
	return true
}

// ToLogic is X when any bit is X or Z, else 1 when any bit is 1.
func (v *BitVector) ToLogic() scalar.Scalar {
	if v.HasXZ() {
		return scalar.X
	}
	return scalar.FromBool(!v.isZero())
}

func (v *BitVector) ToBool() bool {
	return v.ToLogic().IsOne()
}

// ToScalar returns bit 0.
func (v *BitVector) ToScalar() scalar.Scalar {
	return v.Bit(0)
}

// ToReal treats X and Z bits as 0.
func (v *BitVector) ToReal() float64 {
	u := v.XZTo0()
	neg := u.IsNegative()
	if neg {
		u = u.Neg()
	}
	var f float64
	for i, w := range u.p1 {
		if w != 0 {
			f += math.Ldexp(float64(w), i*WordBits)
		}
	}
	if neg {
		return -f
	}
	return f
}

// highZero reports whether every bit at position pos or above is 0.
func (v *BitVector) highZero(pos int) bool {
	for i, w := range v.p1 {
		if w&highMask(i, pos) != 0 {
			return false
		}
	}
	return true
}

func (v *BitVector) IsUint32() bool {
	return !v.HasXZ() && v.highZero(32)
}

// ToUint32 reads the low 32 bits as unsigned. X and Z bits read as 0.
func (v *BitVector) ToUint32() uint32 {
	return uint32(v.p1[0] &^ v.p0[0])
}

func (v *BitVector) IsInt() bool {
	if v.HasXZ() {
		return false
	}
	if !v.attr.Signed {
		return v.highZero(32)
	}
	if v.width <= DefaultWidth {
		return true
	}
	if !v.Bit(31).IsOne() {
		return v.highZero(31)
	}
	for i := range v.p1 {
		m := highMask(i, 31)
		if i == len(v.p1)-1 {
			m &= tailMask(v.width)
		}
		if v.p1[i]&m != m {
			return false
		}
	}
	return true
}

// ToInt returns the value as int32, sign-extending narrow signed vectors.
// X and Z bits read as 0.
func (v *BitVector) ToInt() int32 {
	u := v.XZTo0()
	if u.width < DefaultWidth {
		u = u.Convert(DefaultWidth, u.attr)
	}
	return int32(uint32(u.p1[0]))
}

func (v *BitVector) IsTime() bool {
	return !v.HasXZ() && v.highZero(TimeWidth)
}

// ToTime reads the low 64 bits as unsigned. X and Z bits read as 0.
func (v *BitVector) ToTime() uint64 {
	return v.p1[0] &^ v.p0[0]
}

// Bytes is the inverse of FromBytes. X and Z bits read as 0.
func (v *BitVector) Bytes() []byte {
	n := (v.width + 7) / 8
	b := make([]byte, n)
	for i := range n {
		pos := (n - 1 - i) * 8
		w := pos >> bitsLog2
		s := uint(pos & bitsMask)
		b[i] = byte((v.p1[w] &^ v.p0[w]) >> s)
	}
	return b
}

func (v *BitVector) ToString() string {
	return string(v.Bytes())
}

// Equal reports identical width, attributes and encoding.
func (v *BitVector) Equal(o *BitVector) bool {
	if v.width != o.width || v.attr != o.attr {
		return false
	}
	for i := range v.p0 {
		if v.p0[i] != o.p0[i] || v.p1[i] != o.p1[i] {
			return false
		}
	}
	return true
}
