package bitvec

import "go.uber.org/zap"

// LshN shifts left by n, filling with 0. Width and attributes are kept.
func (v *BitVector) LshN(n uint32) *BitVector {
	if n == 0 {
		return v.clone()
	}
	r := &BitVector{
		width: v.width,
		attr:  v.attr,
		p0:    lshWords(v.p0, n, all1),
		p1:    lshWords(v.p1, n, 0),
	}
	r.trim()
	return r
}

// ALshN is the same as LshN.
func (v *BitVector) ALshN(n uint32) *BitVector {
	return v.LshN(n)
}

// RshN shifts right by n, filling with 0 regardless of sign.
func (v *BitVector) RshN(n uint32) *BitVector {
	return v.rsh(n, all1, 0)
}

// ARshN shifts right by n, filling with the extension pattern of the MSB:
// X or Z repeat, 1 repeats only when v is signed.
func (v *BitVector) ARshN(n uint32) *BitVector {
	f0, f1 := v.extension(v.attr.Signed)
	return v.rsh(n, f0, f1)
}

func (v *BitVector) rsh(n uint32, f0, f1 uint64) *BitVector {
	if n == 0 {
		return v.clone()
	}
	src := v.clone()
	last := len(src.p0) - 1
	m := tailMask(v.width)
	src.p0[last] = src.p0[last]&m | f0&^m
	src.p1[last] = src.p1[last]&m | f1&^m
	r := &BitVector{
		width: v.width,
		attr:  v.attr,
		p0:    rshWords(src.p0, n, f0),
		p1:    rshWords(src.p1, n, f1),
	}
	r.trim()
	return r
}

// shiftAmount validates a vector shift amount. Amounts with X or Z, or that
// do not fit in 32 bits, are rejected.
func (v *BitVector) shiftAmount(amount *BitVector, op string) (uint32, bool) {
	if amount.HasXZ() || !amount.IsUint32() {
		Logger().Debug("invalid shift amount",
			zap.String("op", op),
			zap.Stringer("amount", amount),
			zap.Int("width", v.width))
		return 0, false
	}
	return amount.ToUint32(), true
}

func (v *BitVector) Lsh(amount *BitVector) *BitVector {
	n, ok := v.shiftAmount(amount, "<<")
	if !ok {
		return xOf(v.width, v.attr)
	}
	return v.LshN(n)
}

func (v *BitVector) ALsh(amount *BitVector) *BitVector {
	n, ok := v.shiftAmount(amount, "<<<")
	if !ok {
		return xOf(v.width, v.attr)
	}
	return v.ALshN(n)
}

func (v *BitVector) Rsh(amount *BitVector) *BitVector {
	n, ok := v.shiftAmount(amount, ">>")
	if !ok {
		return xOf(v.width, v.attr)
	}
	return v.RshN(n)
}

func (v *BitVector) ARsh(amount *BitVector) *BitVector {
	n, ok := v.shiftAmount(amount, ">>>")
	if !ok {
		return xOf(v.width, v.attr)
	}
	return v.ARshN(n)
}
