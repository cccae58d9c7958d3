package vltype

import "fmt"

// Kind distinguishes the predefined descriptors from plain bit-vector types.
type Kind uint8

const (
	KindBitVector Kind = iota
	KindNone
	KindInt
	KindReal
	KindTime
)

const (
	intSize  = 32
	realSize = 64
	timeSize = 64
)

// Type describes a destination for coercion: signedness, sizedness and width.
type Type struct {
	Signed bool
	Sized  bool
	Size   int
	kind   Kind
}

var (
	NoType   = Type{kind: KindNone}
	IntType  = Type{Signed: true, Sized: true, Size: intSize, kind: KindInt}
	RealType = Type{Signed: true, Sized: true, Size: realSize, kind: KindReal}
	TimeType = Type{Signed: false, Sized: true, Size: timeSize, kind: KindTime}
)

// New returns a plain bit-vector type.
func New(signed, sized bool, size int) Type {
	return Type{Signed: signed, Sized: sized, Size: size, kind: KindBitVector}
}

func (t Type) Kind() Kind { return t.kind }

func (t Type) IsNoType() bool        { return t.kind == KindNone }
func (t Type) IsIntType() bool       { return t.kind == KindInt }
func (t Type) IsRealType() bool      { return t.kind == KindReal }
func (t Type) IsTimeType() bool      { return t.kind == KindTime }
func (t Type) IsBitVectorType() bool { return t.kind == KindBitVector }

func (t Type) Equal(o Type) bool {
	return t == o
}

// Merge returns the type of a binary arithmetic or bitwise result.
func Merge(a, b Type) Type {
	return New(a.Signed && b.Signed, a.Sized || b.Sized, max(a.Size, b.Size))
}

func (t Type) String() string {
	switch t.kind {
	case KindNone:
		return "NO TYPE"
	case KindInt:
		return "INT TYPE"
	case KindReal:
		return "REAL TYPE"
	case KindTime:
		return "TIME TYPE"
	}
	sign := "UNSIGNED"
	if t.Signed {
		sign = "SIGNED"
	}
	sized := "UNSIZED"
	if t.Sized {
		sized = "SIZED"
	}
	return fmt.Sprintf("%s %s %d BITS TYPE", sign, sized, t.Size)
}
