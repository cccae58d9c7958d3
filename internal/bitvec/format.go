package bitvec

import (
	"math/bits"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

func validBase(base int) bool {
	switch base {
	case 2, 8, 10, 16:
		return true
	}
	return false
}

// BinString renders one character per bit, MSB first, with '_' between
// groups of four. With skipZeros, leading zeros are dropped.
func (v *BitVector) BinString(skipZeros bool) string {
	var b strings.Builder
	for i := v.width - 1; i >= 0; i-- {
		s := v.Bit(i)
		if skipZeros && s.IsZero() {
			continue
		}
		skipZeros = false
		if b.Len() > 0 && i%4 == 3 {
			b.WriteByte('_')
		}
		b.WriteString(s.String())
	}
	if b.Len() == 0 {
		return "0"
	}
	return b.String()
}

func (v *BitVector) OctString(skipZeros bool) string {
	return v.groupString(3, skipZeros)
}

func (v *BitVector) HexString(skipZeros bool) string {
	return v.groupString(4, skipZeros)
}

const digitChars = "0123456789ABCDEF"

// groupString renders k-bit digit groups from the MSB. A group that is all
// X prints 'x', all Z prints 'z', and any other mix of unknown bits '#'.
func (v *BitVector) groupString(k int, skipZeros bool) string {
	var b strings.Builder
	for g := (v.width+k-1)/k - 1; g >= 0; g-- {
		var d0, d1, m uint64
		for j := k - 1; j >= 0; j-- {
			d0, d1, m = d0<<1, d1<<1, m<<1
			pos := g*k + j
			if pos >= v.width {
				continue
			}
			i, s := pos>>bitsLog2, uint(pos&bitsMask)
			d0 |= (v.p0[i] >> s) & 1
			d1 |= (v.p1[i] >> s) & 1
			m |= 1
		}
		var c byte
		switch {
		case definiteWord(d0, d1)&m == m:
			if skipZeros && d1 == 0 {
				continue
			}
			c = digitChars[d1]
		case d0&d1 == m:
			c = 'x'
		case ^d0&^d1&m == m:
			c = 'z'
		default:
			c = '#'
		}
		skipZeros = false
		b.WriteByte(c)
	}
	if b.Len() == 0 {
		return "0"
	}
	return b.String()
}

// DecString renders the unsigned value in decimal. X and Z bits read as 0.
func (v *BitVector) DecString() string {
	words := v.XZTo0().p1
	if zeroWords(words) {
		return "0"
	}
	var digits []byte
	for !zeroWords(words) {
		var rem uint64
		for i := len(words) - 1; i >= 0; i-- {
			words[i], rem = bits.Div64(rem, words[i], 10)
		}
		digits = append(digits, '0'+byte(rem))
	}
	slices.Reverse(digits)
	return string(digits)
}

// VerilogString renders v as a Verilog literal in base. A base outside
// {2, 8, 10, 16} uses v's own base. Negative signed values get a leading
// '-' and the magnitude.
func (v *BitVector) VerilogString(base int) string {
	if !validBase(base) {
		if base != 0 {
			Logger().Warn("invalid base, using the value's own", zap.Int("base", base), zap.Int("own", v.attr.Base))
		}
		base = v.attr.Base
		if !validBase(base) {
			base = 2
		}
	}
	if v.IsNegative() && !v.HasXZ() {
		return "-" + v.Neg().literal(base)
	}
	return v.literal(base)
}

func (v *BitVector) literal(base int) string {
	if v.width == 1 {
		return v.Bit(0).String()
	}
	var b strings.Builder
	if v.attr.Sized {
		b.WriteString(strconv.Itoa(v.width))
	}
	skip := !v.attr.Sized
	sign := ""
	if v.attr.Signed {
		sign = "s"
	}
	if base == 10 && v.HasXZ() {
		base = 2
	}
	switch base {
	case 2:
		b.WriteString("'" + sign + "b")
		b.WriteString(v.BinString(skip))
	case 8:
		b.WriteString("'" + sign + "o")
		b.WriteString(v.OctString(skip))
	case 16:
		b.WriteString("'" + sign + "h")
		b.WriteString(v.HexString(skip))
	default:
		switch {
		case !v.attr.Signed:
			b.WriteString("'d")
		case v.attr.Sized:
			b.WriteString("'sd")
		}
		b.WriteString(v.DecString())
	}
	return b.String()
}

// String renders v in its own base.
func (v *BitVector) String() string {
	return v.VerilogString(0)
}
