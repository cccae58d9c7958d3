package bitvec

import (
	"math/bits"
	"strconv"
	"strings"

	"github.com/henrytill/vlnum-go/internal/errors"
	"github.com/henrytill/vlnum-go/internal/scalar"
)

// MaxWidth bounds the size prefix of a literal.
const MaxWidth = 1 << 20

// Parse reads a Verilog integer literal of the form [size]'[s]{b|o|d|h}digits,
// or an unbased decimal with an optional leading '-'. Unbased and unsized
// literals are 32 bits wide; unbased decimals are signed.
func Parse(lit string) (*BitVector, error) {
	q := strings.IndexByte(lit, '\'')
	if q < 0 {
		off := 0
		if strings.HasPrefix(lit, "-") {
			off = 1
		}
		v, err := parseDigits(lit, off, DefaultWidth, Attr{Signed: true, Base: 10})
		if err != nil {
			return nil, err
		}
		if off == 1 {
			v = v.Neg()
		}
		return v, nil
	}

	size, sized := DefaultWidth, false
	if q > 0 {
		n, err := parseSize(lit, q)
		if err != nil {
			return nil, err
		}
		size, sized = n, true
	}

	pos := q + 1
	signed := false
	if pos < len(lit) && (lit[pos] == 's' || lit[pos] == 'S') {
		signed = true
		pos++
	}
	if pos >= len(lit) {
		return nil, errors.EmptyLiteral(lit)
	}
	base := 0
	switch lit[pos] {
	case 'b', 'B':
		base = 2
	case 'o', 'O':
		base = 8
	case 'd', 'D':
		base = 10
	case 'h', 'H':
		base = 16
	default:
		return nil, errors.IllegalChar(errors.PhaseParse, rune(lit[pos]), pos, lit)
	}
	return parseDigits(lit, pos+1, size, Attr{Sized: sized, Signed: signed, Base: base})
}

// FromDigits builds a vector from digits in base. A size of 0 means
// unsized, 32 bits wide.
func FromDigits(size int, signed bool, base int, digits string) (*BitVector, error) {
	if !validBase(base) {
		return nil, errors.IllegalBase(base)
	}
	if size < 0 || size > MaxWidth {
		return nil, errors.IllegalSize(digits, "size out of range: "+strconv.Itoa(size))
	}
	sized := size > 0
	if !sized {
		size = DefaultWidth
	}
	return parseDigits(digits, 0, size, Attr{Sized: sized, Signed: signed, Base: base})
}

func parseSize(lit string, end int) (int, error) {
	for i := range end {
		if lit[i] < '0' || lit[i] > '9' {
			return 0, errors.IllegalChar(errors.PhaseParse, rune(lit[i]), i, lit)
		}
	}
	n, err := strconv.Atoi(lit[:end])
	if err != nil || n == 0 || n > MaxWidth {
		return 0, errors.IllegalSize(lit, "size out of range: "+lit[:end])
	}
	return n, nil
}

type digit struct {
	c   byte
	pos int
}

// parseDigits reads input[off:] in attr.Base. The digits are read as an
// unsigned value of their natural width, converted to size, and then
// marked signed, so a leading 1 is never sign-extended.
func parseDigits(input string, off, size int, attr Attr) (*BitVector, error) {
	var ds []digit
	for i := off; i < len(input); i++ {
		if input[i] != '_' {
			ds = append(ds, digit{input[i], i})
		}
	}
	if len(ds) == 0 {
		return nil, errors.EmptyLiteral(input)
	}

	var src *BitVector
	var err error
	if attr.Base == 10 {
		src, err = decimalDigits(input, ds)
	} else {
		src, err = radixDigits(input, ds, bits.TrailingZeros(uint(attr.Base)))
	}
	if err != nil {
		return nil, err
	}

	unsigned := attr
	unsigned.Signed = false
	r := src.Convert(size, unsigned)
	r.attr = attr
	return r, nil
}

// radixDigits packs k bits per digit for bases 2, 8 and 16.
func radixDigits(input string, ds []digit, k int) (*BitVector, error) {
	width := len(ds) * k
	r := newRaw(width, Attr{})
	mask := uint64(1)<<uint(k) - 1
	for j, d := range ds {
		var p0, p1 uint64
		if s, ok := scalar.ParseScalar(rune(d.c)); ok && s.IsXZ() {
			p0, p1 = s.Planes()
			p0, p1 = p0&mask, p1&mask
		} else {
			n, ok := digitValue(d.c)
			if !ok || n > mask {
				return nil, errors.IllegalChar(errors.PhaseParse, rune(d.c), d.pos, input)
			}
			p0, p1 = ^n&mask, n
		}
		at := (len(ds) - 1 - j) * k
		writeWindow(r.p0, []uint64{p0}, k, at)
		writeWindow(r.p1, []uint64{p1}, k, at)
	}
	r.trim()
	return r, nil
}

// decimalDigits accumulates a decimal value. A lone x, z or ? gives a
// single unknown bit that extends to the full width.
func decimalDigits(input string, ds []digit) (*BitVector, error) {
	if len(ds) == 1 {
		if s, ok := scalar.ParseScalar(rune(ds[0].c)); ok && s.IsXZ() {
			return Filled(s, 1), nil
		}
	}
	words := []uint64{0}
	for _, d := range ds {
		if d.c < '0' || d.c > '9' {
			return nil, errors.IllegalChar(errors.PhaseParse, rune(d.c), d.pos, input)
		}
		carry := uint64(d.c - '0')
		for i, w := range words {
			hi, lo := bits.Mul64(w, 10)
			var c uint64
			words[i], c = bits.Add64(lo, carry, 0)
			carry = hi + c
		}
		if carry != 0 {
			words = append(words, carry)
		}
	}
	top := len(words) - 1
	width := max(top*WordBits+bits.Len64(words[top]), 1)
	return fromValue(words, width, Attr{}), nil
}

func digitValue(c byte) (uint64, bool) {
	switch {
	case '0' <= c && c <= '9':
		return uint64(c - '0'), true
	case 'a' <= c && c <= 'f':
		return uint64(c-'a') + 10, true
	case 'A' <= c && c <= 'F':
		return uint64(c-'A') + 10, true
	}
	return 0, false
}
