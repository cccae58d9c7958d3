package bitvec

import "go.uber.org/zap"

var concatAttr = Attr{Sized: true, Base: 2}

// Concat joins parts with the first part most significant. The result is
// sized, unsigned and binary. An empty list gives a single X bit.
func Concat(parts ...*BitVector) *BitVector {
	if len(parts) == 0 {
		return X(1)
	}
	width := 0
	for _, p := range parts {
		width += p.width
	}
	r := newRaw(width, concatAttr)
	off := 0
	for i := len(parts) - 1; i >= 0; i-- {
		p := parts[i]
		writeWindow(r.p0, p.p0, p.width, off)
		writeWindow(r.p1, p.p1, p.width, off)
		off += p.width
	}
	r.trim()
	return r
}

// MultiConcat repeats the concatenation of parts rep times. A repeat count
// with X or Z, zero, or too large for 32 bits gives X at the unit width.
// A result wider than MaxWidth also gives X at the unit width.
func MultiConcat(rep *BitVector, parts ...*BitVector) *BitVector {
	unit := Concat(parts...)
	if rep.HasXZ() || !rep.IsUint32() || rep.ToUint32() == 0 {
		Logger().Debug("invalid replication count", zap.Stringer("count", rep))
		return X(unit.width)
	}
	n := int(rep.ToUint32())
	if unit.width > MaxWidth/n {
		Logger().Debug("replication too wide",
			zap.Int("unit", unit.width), zap.Int("count", n), zap.Int("max", MaxWidth))
		return X(min(unit.width, MaxWidth))
	}
	r := newRaw(unit.width*n, concatAttr)
	for i := range n {
		writeWindow(r.p0, unit.p0, unit.width, i*unit.width)
		writeWindow(r.p1, unit.p1, unit.width, i*unit.width)
	}
	r.trim()
	return r
}

// PartSelect returns bits msb down to lsb as a sized, unsigned, binary
// vector. Bits outside v read as X. msb < lsb, or a window wider than
// MaxWidth, gives a single X bit.
func (v *BitVector) PartSelect(msb, lsb int) *BitVector {
	if msb < lsb {
		return X(1)
	}
	width := msb - lsb + 1
	if width <= 0 || width > MaxWidth {
		Logger().Debug("part select too wide",
			zap.Int("msb", msb), zap.Int("lsb", lsb), zap.Int("max", MaxWidth))
		return X(1)
	}
	r := X(width)
	lo, hi := max(lsb, 0), min(msb, v.width-1)
	if lo > hi {
		return r
	}
	n := hi - lo + 1
	p0 := rshWords(v.p0, uint32(lo), all1)
	p1 := rshWords(v.p1, uint32(lo), 0)
	writeWindow(r.p0, p0, n, lo-lsb)
	writeWindow(r.p1, p1, n, lo-lsb)
	r.trim()
	return r
}

// SetPartSelect overwrites bits msb down to lsb with src, converted to the
// window width. Bits outside v are dropped; an inverted or fully
// out-of-range window is ignored.
func (v *BitVector) SetPartSelect(msb, lsb int, src *BitVector) {
	if msb < lsb || msb < 0 || lsb >= v.width {
		return
	}
	s := src.Convert(msb-lsb+1, src.attr)
	off := lsb
	if lsb < 0 {
		s = s.PartSelect(s.width-1, -lsb)
		off = 0
	}
	writeWindow(v.p0, s.p0, s.width, off)
	writeWindow(v.p1, s.p1, s.width, off)
	v.trim()
}
