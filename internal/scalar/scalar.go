package scalar

// Scalar is a single four-state signal bit.
//
// Encoding: (bit1 << 1) | bit0, where bit0 means "may be 0" and bit1 means
// "may be 1". This matches the two-plane layout used by bit-vectors.
//
//	Z    = 0b00 (bit0=0, bit1=0)
//	Zero = 0b01 (bit0=1, bit1=0)
//	One  = 0b10 (bit0=0, bit1=1)
//	X    = 0b11 (bit0=1, bit1=1)
//
// The zero value is Z; use X explicitly for an unknown bit.
type Scalar uint8

const (
	Z    Scalar = 0b00
	Zero Scalar = 0b01
	One  Scalar = 0b10
	X    Scalar = 0b11
)

var fromBits = [4]Scalar{Z, Zero, One, X}

func FromBool(b bool) Scalar {
	if b {
		return One
	}
	return Zero
}

func FromInt(v int64) Scalar {
	return FromBool(v != 0)
}

func FromFloat(v float64) Scalar {
	return FromBool(v != 0)
}

// FromPlanes decodes the lowest bit of a plane pair.
func FromPlanes(p0, p1 uint64) Scalar {
	return fromBits[(p1&1)<<1|(p0&1)]
}

// Planes returns whole-word fill patterns for s.
func (s Scalar) Planes() (p0, p1 uint64) {
	return ^uint64(0) * uint64(s&1), ^uint64(0) * uint64(s>>1)
}

// ParseScalar accepts 0, 1, x, X, z, Z and ?.
func ParseScalar(r rune) (Scalar, bool) {
	switch r {
	case '0':
		return Zero, true
	case '1':
		return One, true
	case 'x', 'X':
		return X, true
	case 'z', 'Z', '?':
		return Z, true
	default:
		return X, false
	}
}

func (s Scalar) IsZero() bool { return s == Zero }
func (s Scalar) IsOne() bool  { return s == One }
func (s Scalar) IsX() bool    { return s == X }
func (s Scalar) IsZ() bool    { return s == Z }

func (s Scalar) IsXZ() bool {
	return s == X || s == Z
}

func (s Scalar) ToBool() bool {
	return s == One
}

// ToLogic folds Z into X.
func (s Scalar) ToLogic() Scalar {
	if s == Z {
		return X
	}
	return s
}

func (s Scalar) ToInt() int {
	if s == One {
		return 1
	}
	return 0
}

func (s Scalar) ToReal() float64 {
	if s == One {
		return 1.0
	}
	return 0.0
}

func (s Scalar) Not() Scalar {
	switch s {
	case Zero:
		return One
	case One:
		return Zero
	default:
		return X
	}
}

func (s Scalar) And(other Scalar) Scalar {
	if s == Zero || other == Zero {
		return Zero
	}
	if s == One && other == One {
		return One
	}
	return X
}

func (s Scalar) Or(other Scalar) Scalar {
	if s == One || other == One {
		return One
	}
	if s == Zero && other == Zero {
		return Zero
	}
	return X
}

func (s Scalar) Xor(other Scalar) Scalar {
	if s.IsXZ() || other.IsXZ() {
		return X
	}
	return FromBool(s != other)
}

// Eq is the == operator: X when either side is X or Z.
func (s Scalar) Eq(other Scalar) Scalar {
	if s.IsXZ() || other.IsXZ() {
		return X
	}
	return FromBool(s == other)
}

func (s Scalar) Ne(other Scalar) Scalar {
	return s.Eq(other).Not()
}

// Merge keeps agreeing values and turns disagreement into X.
func (s Scalar) Merge(other Scalar) Scalar {
	if s == other && s != Z {
		return s
	}
	return X
}

func (s Scalar) String() string {
	switch s {
	case Zero:
		return "0"
	case One:
		return "1"
	case Z:
		return "Z"
	default:
		return "X"
	}
}
