package bitvec

// Every bit of a vector is a pair of plane bits: p0 set means "may be 0",
// p1 set means "may be 1". (1,0) is 0, (0,1) is 1, (1,1) is X, (0,0) is Z.

const (
	bitsLog2 = 6
	bitsMask = (1 << bitsLog2) - 1

	// WordBits is the width of one storage word.
	WordBits = 1 << bitsLog2

	all1 = ^uint64(0)
)

func wordsNeeded(n int) int {
	return (n + bitsMask) >> bitsLog2
}

func tailMask(n int) uint64 {
	r := n & bitsMask
	if r == 0 {
		return all1
	}
	return (1 << r) - 1
}

// highMask selects the bits of word i whose absolute position is >= pos.
func highMask(i, pos int) uint64 {
	lo := i << bitsLog2
	switch {
	case pos <= lo:
		return all1
	case pos >= lo+WordBits:
		return 0
	default:
		return all1 << uint(pos-lo)
	}
}

func zToXWord(p0, p1 uint64) (uint64, uint64) {
	z := ^p0 & ^p1
	return p0 | z, p1 | z
}

func definiteWord(p0, p1 uint64) uint64 {
	return p0 ^ p1
}

func notWord(p0, p1 uint64) (uint64, uint64) {
	p0, p1 = zToXWord(p0, p1)
	return p1, p0
}

func andWord(a0, a1, b0, b1 uint64) (uint64, uint64) {
	a0, a1 = zToXWord(a0, a1)
	b0, b1 = zToXWord(b0, b1)
	return a0 | b0, a1 & b1
}

func orWord(a0, a1, b0, b1 uint64) (uint64, uint64) {
	a0, a1 = zToXWord(a0, a1)
	b0, b1 = zToXWord(b0, b1)
	return a0 & b0, a1 | b1
}

func xorWord(a0, a1, b0, b1 uint64) (uint64, uint64) {
	a0, a1 = zToXWord(a0, a1)
	b0, b1 = zToXWord(b0, b1)
	return (a0 & b0) | (a1 & b1), (a0 & b1) | (a1 & b0)
}

func mergeWord(a0, a1, b0, b1 uint64) (uint64, uint64) {
	a0, a1 = zToXWord(a0, a1)
	b0, b1 = zToXWord(b0, b1)
	return a0 | b0, a1 | b1
}

// lshWords shifts w left by n bits; vacated low bits come from fill.
func lshWords(w []uint64, n uint32, fill uint64) []uint64 {
	out := make([]uint64, len(w))
	ws := int(n >> bitsLog2)
	bs := uint(n & bitsMask)
	at := func(j int) uint64 {
		if j < 0 {
			return fill
		}
		return w[j]
	}
	for i := range out {
		j := i - ws
		if bs == 0 {
			out[i] = at(j)
		} else {
			out[i] = at(j)<<bs | at(j-1)>>(WordBits-bs)
		}
	}
	return out
}

// rshWords shifts w right by n bits; vacated high bits come from fill.
func rshWords(w []uint64, n uint32, fill uint64) []uint64 {
	out := make([]uint64, len(w))
	ws := int(n >> bitsLog2)
	bs := uint(n & bitsMask)
	at := func(j int) uint64 {
		if j >= len(w) {
			return fill
		}
		return w[j]
	}
	for i := range out {
		j := i + ws
		if bs == 0 {
			out[i] = at(j)
		} else {
			out[i] = at(j)>>bs | at(j+1)<<(WordBits-bs)
		}
	}
	return out
}

// writeWindow overwrites dst bits [off, off+width) with the low width bits
// of src. Bits past the end of dst are dropped.
func writeWindow(dst, src []uint64, width, off int) {
	n := wordsNeeded(width)
	for i := range n {
		m := all1
		if i == n-1 {
			m = tailMask(width)
		}
		w := src[i] & m
		pos := off + i<<bitsLog2
		wi := pos >> bitsLog2
		bs := uint(pos & bitsMask)
		if wi >= len(dst) {
			return
		}
		dst[wi] = dst[wi]&^(m<<bs) | w<<bs
		if bs != 0 && wi+1 < len(dst) {
			dst[wi+1] = dst[wi+1]&^(m>>(WordBits-bs)) | w>>(WordBits-bs)
		}
	}
}
