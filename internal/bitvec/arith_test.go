package bitvec

import (
	"strings"
	"testing"

	"github.com/henrytill/vlnum-go/internal/scalar"
)

func TestIntArithmetic(t *testing.T) {
	tests := []struct {
		name string
		op   func(a, b *BitVector) *BitVector
		a, b int32
		want int32
	}{
		{"add", (*BitVector).Add, 7, 5, 12},
		{"sub", (*BitVector).Sub, 5, 7, -2},
		{"mul", (*BitVector).Mul, -3, 4, -12},
		{"div", (*BitVector).Div, 7, 2, 3},
		{"mod", (*BitVector).Mod, 7, 2, 1},
		{"div negative dividend", (*BitVector).Div, -7, 2, -3},
		{"mod negative dividend", (*BitVector).Mod, -7, 2, -1},
		{"mod negative divisor", (*BitVector).Mod, 7, -2, 1},
		{"div both negative", (*BitVector).Div, -8, -2, 4},
		{"pow", (*BitVector).Pow, 3, 4, 81},
		{"pow of two", (*BitVector).Pow, 2, 10, 1024},
		{"pow zero exponent", (*BitVector).Pow, 5, 0, 1},
		{"pow negative base", (*BitVector).Pow, -2, 3, -8},
		{"pow negative exponent", (*BitVector).Pow, 2, -1, 0},
		{"pow one negative exponent", (*BitVector).Pow, 1, -5, 1},
		{"pow minus one odd", (*BitVector).Pow, -1, -3, -1},
		{"pow minus one even", (*BitVector).Pow, -1, -2, 1},
		{"add wraps", (*BitVector).Add, 0x7fffffff, 1, -0x80000000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.op(FromInt(tt.a), FromInt(tt.b))
			if got.HasXZ() {
				t.Fatalf("got %v, want %d", got, tt.want)
			}
			if got.ToInt() != tt.want {
				t.Errorf("got %d, want %d", got.ToInt(), tt.want)
			}
		})
	}
}

func TestArithmeticUnknowns(t *testing.T) {
	tests := []struct {
		name string
		got  *BitVector
	}{
		{"add x", mustParse(t, "4'b1x00").Add(mustParse(t, "4'b0001"))},
		{"mul z", mustParse(t, "4'b0001").Mul(mustParse(t, "4'bz"))},
		{"div by zero", FromInt(1).Div(FromInt(0))},
		{"mod by zero", FromInt(1).Mod(FromInt(0))},
		{"zero to negative power", FromInt(0).Pow(FromInt(-1))},
		{"neg x", mustParse(t, "4'bx").Neg()},
	}
	for _, tt := range tests {
		if !tt.got.CaseEq(X(tt.got.Width())) {
			t.Errorf("%s: got %v, want all X", tt.name, tt.got)
		}
	}
}

func TestArithmeticAttributes(t *testing.T) {
	got := mustParse(t, "8'hff").Add(mustParse(t, "8'h01"))
	if got.String() != "8'h00" {
		t.Errorf("wrap: got %s, want 8'h00", got)
	}
	mixed := mustParse(t, "4'sd3").Add(mustParse(t, "8'b1"))
	if mixed.Width() != 8 || mixed.IsSigned() || !mixed.IsSized() || mixed.Base() != 10 {
		t.Errorf("mixed attributes: got %+v width %d", mixed.Attr(), mixed.Width())
	}
	if got := FromInt(-1).Add(FromUint(0)); got.IsSigned() || got.ToUint32() != 0xffffffff {
		t.Errorf("signed+unsigned: got %v", got)
	}
}

func TestWideArithmetic(t *testing.T) {
	two64 := mustParse(t, "128'h1_0000_0000_0000_0000")
	three64 := mustParse(t, "128'h3_0000_0000_0000_0000")
	if got := two64.Mul(mustParse(t, "128'd3")); !got.CaseEq(three64) {
		t.Errorf("2^64*3: got %v", got)
	}
	if got := two64.Mul(two64); !got.CaseEq(Zero(128)) {
		t.Errorf("2^128 mod 2^128: got %v", got)
	}
	if got := three64.Div(mustParse(t, "128'd3")); !got.CaseEq(two64) {
		t.Errorf("3*2^64/3: got %v", got)
	}
	if got := three64.Add(mustParse(t, "128'd7")).Mod(two64); got.ToUint32() != 7 {
		t.Errorf("mod: got %v", got)
	}
	max64 := mustParse(t, "128'hffff_ffff_ffff_ffff")
	if got := max64.Add(mustParse(t, "128'd1")); !got.CaseEq(two64) {
		t.Errorf("carry: got %v", got)
	}
	if got := two64.Sub(mustParse(t, "128'd1")); !got.CaseEq(max64) {
		t.Errorf("borrow: got %v", got)
	}
	if got := mustParse(t, "128'd2").Pow(mustParse(t, "128'd100")); !got.CaseEq(mustParse(t, "128'h1"+strings.Repeat("0", 25))) {
		t.Errorf("2**100: got %v", got)
	}
	if got := mustParse(t, "128'd10").Pow(mustParse(t, "128'd30")).DecString(); got != "1"+strings.Repeat("0", 30) {
		t.Errorf("10**30: got %s", got)
	}
}

func TestArithmeticIdentities(t *testing.T) {
	values := []string{"8'd0", "8'd1", "8'hff", "16'h8000", "70'h3f_ffff_ffff_ffff_fffe", "'sd12345", "-77"}
	for _, as := range values {
		for _, bs := range values {
			a, b := mustParse(t, as), mustParse(t, bs)
			if got := a.Add(b).Sub(b); !got.Eq(a).IsOne() {
				t.Errorf("%s + %s - %s: got %v", as, bs, bs, got)
			}
			if !b.isZero() {
				if got := b.Div(b); got.ToUint32() != 1 {
					t.Errorf("%s / %s: got %v", bs, bs, got)
				}
			}
		}
		a := mustParse(t, as)
		if got := a.Mul(fromValue([]uint64{1}, a.Width(), a.Attr())); !got.Eq(a).IsOne() {
			t.Errorf("%s * 1: got %v", as, got)
		}
	}
}

func TestRelational(t *testing.T) {
	tests := []struct {
		name string
		a, b *BitVector
		lt   scalar.Scalar
		gt   scalar.Scalar
	}{
		{"signed negative", FromInt(-1), FromInt(0), scalar.One, scalar.Zero},
		{"both negative", FromInt(-1), FromInt(-2), scalar.Zero, scalar.One},
		{"mixed sign is unsigned", FromInt(-1), FromUint(0), scalar.Zero, scalar.One},
		{"widths differ", mustParse(t, "4'sb1111"), mustParse(t, "8'sd0"), scalar.One, scalar.Zero},
		{"wide", mustParse(t, "100'h1_0000_0000_0000_0000_0000"), mustParse(t, "100'hffff_ffff"), scalar.Zero, scalar.One},
		{"x operand", mustParse(t, "4'b1x00"), FromInt(3), scalar.X, scalar.X},
		{"equal", FromInt(4), FromInt(4), scalar.Zero, scalar.Zero},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Lt(tt.b); got != tt.lt {
				t.Errorf("Lt: got %v, want %v", got, tt.lt)
			}
			if got := tt.a.Gt(tt.b); got != tt.gt {
				t.Errorf("Gt: got %v, want %v", got, tt.gt)
			}
			if got := tt.a.Less(tt.b); got != tt.lt.IsOne() {
				t.Errorf("Less: got %v, want %v", got, tt.lt.IsOne())
			}
		})
	}
	if got := FromInt(4).Le(FromInt(4)); got != scalar.One {
		t.Errorf("Le equal: got %v", got)
	}
	if got := FromInt(4).Ge(FromInt(5)); got != scalar.Zero {
		t.Errorf("Ge: got %v", got)
	}
}

func TestEqualityLadder(t *testing.T) {
	tests := []struct {
		a, b          string
		eq            scalar.Scalar
		withX, withXZ bool
		caseEq        bool
	}{
		{"4'b1010", "4'b1010", scalar.One, true, true, true},
		{"4'b1010", "4'b1011", scalar.Zero, false, false, false},
		{"4'b10x0", "4'b1010", scalar.X, true, true, false},
		{"4'b1z00", "4'b1000", scalar.X, false, true, false},
		{"4'b1x0z", "4'b1x0z", scalar.X, true, true, true},
		{"4'b1x0z", "4'b1x0x", scalar.X, true, true, false},
		{"2'b10", "4'b0010", scalar.One, true, true, true},
	}
	for _, tt := range tests {
		a, b := mustParse(t, tt.a), mustParse(t, tt.b)
		if got := a.Eq(b); got != tt.eq {
			t.Errorf("%s == %s: got %v, want %v", tt.a, tt.b, got, tt.eq)
		}
		if got := a.Ne(b); got != tt.eq.Not() {
			t.Errorf("%s != %s: got %v", tt.a, tt.b, got)
		}
		if got := a.EqWithX(b); got != tt.withX {
			t.Errorf("EqWithX(%s, %s): got %v, want %v", tt.a, tt.b, got, tt.withX)
		}
		if got := a.EqWithXZ(b); got != tt.withXZ {
			t.Errorf("EqWithXZ(%s, %s): got %v, want %v", tt.a, tt.b, got, tt.withXZ)
		}
		if got := a.CaseEq(b); got != tt.caseEq {
			t.Errorf("CaseEq(%s, %s): got %v, want %v", tt.a, tt.b, got, tt.caseEq)
		}
		if a.Eq(b).IsOne() && !a.EqWithX(b) || a.EqWithX(b) && !a.EqWithXZ(b) {
			t.Errorf("%s, %s: equality ladder broken", tt.a, tt.b)
		}
	}
}

func TestBitwise(t *testing.T) {
	tests := []struct {
		name string
		got  *BitVector
		want string
	}{
		{"and ones", mustParse(t, "4'b01xz").And(mustParse(t, "4'b1111")), "4'b01xx"},
		{"and zeros", mustParse(t, "4'b01xz").And(mustParse(t, "4'b0000")), "4'b0000"},
		{"or zeros", mustParse(t, "4'b01xz").Or(mustParse(t, "4'b0000")), "4'b01xx"},
		{"or ones", mustParse(t, "4'b01xz").Or(mustParse(t, "4'b1111")), "4'b1111"},
		{"xor", mustParse(t, "4'b0101").Xor(mustParse(t, "4'b0011")), "4'b0110"},
		{"xor unknown", mustParse(t, "4'b01xz").Xor(mustParse(t, "4'b0000")), "4'b01xx"},
		{"xnor", mustParse(t, "4'b0101").Xnor(mustParse(t, "4'b0011")), "4'b1001"},
		{"not", mustParse(t, "4'b01xz").Not(), "4'b10xx"},
		{"merge", mustParse(t, "4'b0101").Merge(mustParse(t, "4'b0011")), "4'b0xx1"},
		{"merge z", mustParse(t, "2'bz1").Merge(mustParse(t, "2'bz1")), "2'bx1"},
		{"widths", mustParse(t, "2'b11").And(mustParse(t, "4'b1111")), "4'b0011"},
	}
	for _, tt := range tests {
		want := mustParse(t, tt.want)
		if !tt.got.CaseEq(want) || tt.got.Width() != want.Width() {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, want)
		}
	}
	if got := mustParse(t, "4'b0101").And(mustParse(t, "4'hf")).Base(); got != 2 {
		t.Errorf("mixed-base bitwise result: got base %d, want 2", got)
	}
}

func TestReductions(t *testing.T) {
	tests := []struct {
		lit             string
		and, or, xor    scalar.Scalar
		nand, nor, xnor scalar.Scalar
	}{
		{"4'b1x11", scalar.X, scalar.One, scalar.X, scalar.X, scalar.Zero, scalar.X},
		{"4'b0x11", scalar.Zero, scalar.One, scalar.X, scalar.One, scalar.Zero, scalar.X},
		{"4'b0x00", scalar.Zero, scalar.X, scalar.X, scalar.One, scalar.X, scalar.X},
		{"4'b1011", scalar.Zero, scalar.One, scalar.One, scalar.One, scalar.Zero, scalar.Zero},
		{"4'b1111", scalar.One, scalar.One, scalar.Zero, scalar.Zero, scalar.Zero, scalar.One},
		{"4'b0000", scalar.Zero, scalar.Zero, scalar.Zero, scalar.One, scalar.One, scalar.One},
		{"4'bzzzz", scalar.X, scalar.X, scalar.X, scalar.X, scalar.X, scalar.X},
	}
	for _, tt := range tests {
		v := mustParse(t, tt.lit)
		got := []scalar.Scalar{v.ReduceAnd(), v.ReduceOr(), v.ReduceXor(), v.ReduceNand(), v.ReduceNor(), v.ReduceXnor()}
		want := []scalar.Scalar{tt.and, tt.or, tt.xor, tt.nand, tt.nor, tt.xnor}
		for i := range got {
			if got[i] != want[i] {
				t.Errorf("%s reduction %d: got %v, want %v", tt.lit, i, got[i], want[i])
			}
		}
	}
	if got := One(100).ReduceAnd(); got != scalar.One {
		t.Errorf("100-bit all ones: got %v, want 1", got)
	}
}

func TestLogical(t *testing.T) {
	if got := FromInt(0).LogNot(); got != scalar.One {
		t.Errorf("!0: got %v", got)
	}
	if got := FromInt(3).LogAnd(FromInt(0)); got != scalar.Zero {
		t.Errorf("3 && 0: got %v", got)
	}
	if got := X(4).LogOr(FromInt(1)); got != scalar.One {
		t.Errorf("x || 1: got %v", got)
	}
	if got := X(4).LogAnd(FromInt(1)); got != scalar.X {
		t.Errorf("x && 1: got %v", got)
	}
}

func TestShifts(t *testing.T) {
	u := mustParse(t, "8'b1001_0110")
	s := mustParse(t, "8'sb1001_0110")
	tests := []struct {
		name string
		got  *BitVector
		want string
	}{
		{"lsh", u.LshN(2), "8'b0101_1000"},
		{"alsh", s.ALshN(2), "8'b0101_1000"},
		{"rsh", u.RshN(2), "8'b0010_0101"},
		{"rsh signed is logical", s.RshN(2), "8'b0010_0101"},
		{"arsh unsigned", u.ARshN(2), "8'b0010_0101"},
		{"arsh signed", s.ARshN(2), "8'b1110_0101"},
		{"arsh x msb", mustParse(t, "4'bx010").ARshN(1), "4'bxx01"},
		{"rsh x msb", mustParse(t, "4'bx010").RshN(1), "4'b0x01"},
		{"lsh past width", u.LshN(100), "8'b0"},
		{"arsh past width", s.ARshN(100), "8'b1111_1111"},
		{"by vector", u.Lsh(FromInt(1)), "8'b0010_1100"},
		{"unknown amount", u.Rsh(mustParse(t, "4'bx")), "8'bx"},
		{"huge amount", u.Lsh(mustParse(t, "40'h1_0000_0000")), "8'bx"},
	}
	for _, tt := range tests {
		want := mustParse(t, tt.want)
		if !tt.got.CaseEq(want) {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, want)
		}
		if tt.got.Width() != 8 && !strings.HasPrefix(tt.want, "4'") {
			t.Errorf("%s: width %d, want 8", tt.name, tt.got.Width())
		}
	}

	m := FromInt(-1)
	if got := m.Rsh(FromInt(1)); got.Bit(31) != scalar.Zero {
		t.Errorf("-1 >> 1: top bit got %v, want 0", got.Bit(31))
	}
	if got := m.ARsh(FromInt(1)); got.Bit(31) != scalar.One || got.ToInt() != -1 {
		t.Errorf("-1 >>> 1: got %v", got)
	}
}

func TestShiftByZeroIsIdentity(t *testing.T) {
	for _, lit := range []string{"4'b1xz0", "8'sb1000_0001", "130'hx_0000_ffff_0000_ffff_0000_ffff_z000_0001"} {
		v := mustParse(t, lit)
		for name, got := range map[string]*BitVector{
			"lsh":  v.LshN(0),
			"rsh":  v.RshN(0),
			"arsh": v.ARshN(0),
			"alsh": v.ALsh(FromInt(0)),
		} {
			if !got.Equal(v) {
				t.Errorf("%s %s 0: got %v", lit, name, got)
			}
		}
	}
}

func TestWideShifts(t *testing.T) {
	one := mustParse(t, "128'h1")
	p100 := mustParse(t, "128'h1"+strings.Repeat("0", 25))
	if got := one.LshN(100); !got.CaseEq(p100) {
		t.Errorf("1 << 100: got %v", got)
	}
	if got := p100.RshN(100); !got.CaseEq(one) {
		t.Errorf("2^100 >> 100: got %v", got)
	}
	if got := one.LshN(64); got.Bit(64) != scalar.One || got.Bit(0) != scalar.Zero {
		t.Errorf("1 << 64: got %v", got)
	}
}
