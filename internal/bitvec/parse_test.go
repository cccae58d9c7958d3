package bitvec

import (
	"errors"
	"testing"

	vlerrors "github.com/henrytill/vlnum-go/internal/errors"
)

func TestParseAttributes(t *testing.T) {
	tests := []struct {
		lit   string
		width int
		attr  Attr
		value uint32
	}{
		{"42", 32, Attr{Signed: true, Base: 10}, 42},
		{"'d42", 32, Attr{Base: 10}, 42},
		{"'sd42", 32, Attr{Signed: true, Base: 10}, 42},
		{"8'b1111_0000", 8, Attr{Sized: true, Base: 2}, 0xf0},
		{"8'SB1111_0000", 8, Attr{Sized: true, Signed: true, Base: 2}, 0xf0},
		{"12'O777", 12, Attr{Sized: true, Base: 8}, 0o777},
		{"16'HBeEf", 16, Attr{Sized: true, Base: 16}, 0xbeef},
		{"3'hff", 3, Attr{Sized: true, Base: 16}, 7},
		{"'sb1", 32, Attr{Signed: true, Base: 2}, 1},
		{"1_000", 32, Attr{Signed: true, Base: 10}, 1000},
	}
	for _, tt := range tests {
		v := mustParse(t, tt.lit)
		if v.Width() != tt.width || v.Attr() != tt.attr || v.ToUint32() != tt.value {
			t.Errorf("%s: got width %d attr %+v value %#x, want %d %+v %#x",
				tt.lit, v.Width(), v.Attr(), v.ToUint32(), tt.width, tt.attr, tt.value)
		}
	}
}

func TestParseSignedDigitsAreNotSignExtended(t *testing.T) {
	if got := mustParse(t, "8'sh8").ToInt(); got != 8 {
		t.Errorf("8'sh8: got %d, want 8", got)
	}
	if got := mustParse(t, "4'sb1111").ToInt(); got != -1 {
		t.Errorf("4'sb1111: got %d, want -1", got)
	}
	if got := mustParse(t, "-5").ToInt(); got != -5 {
		t.Errorf("-5: got %d", got)
	}
}

func TestParseUnknownDigits(t *testing.T) {
	tests := []struct {
		lit  string
		want *BitVector
	}{
		{"'bx", X(32)},
		{"8'd?", Z(8)},
		{"8'dz", Z(8)},
		{"8'hx", X(8)},
		{"4'b?", Z(4)},
		{"8'ozz", Z(8)},
	}
	for _, tt := range tests {
		if got := mustParse(t, tt.lit); !got.CaseEq(tt.want) || got.Width() != tt.want.Width() {
			t.Errorf("%s: got %v, want %v", tt.lit, got, tt.want)
		}
	}
	if got := mustParse(t, "8'hx1"); got.String() != "8'hx1" {
		t.Errorf("8'hx1: got %v", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		lit  string
		kind vlerrors.Kind
		pos  int
		ch   rune
	}{
		{"4'b12", vlerrors.KindIllegalChar, 4, '2'},
		{"4'q1", vlerrors.KindIllegalChar, 2, 'q'},
		{"x'b1", vlerrors.KindIllegalChar, 0, 'x'},
		{"12a", vlerrors.KindIllegalChar, 2, 'a'},
		{"8'o8", vlerrors.KindIllegalChar, 3, '8'},
		{"8'd1x", vlerrors.KindIllegalChar, 4, 'x'},
		{"4'sq", vlerrors.KindIllegalChar, 3, 'q'},
		{"4'b", vlerrors.KindEmptyLiteral, 3, 0},
		{"4'", vlerrors.KindEmptyLiteral, 2, 0},
		{"4'h__", vlerrors.KindEmptyLiteral, 5, 0},
		{"", vlerrors.KindEmptyLiteral, 0, 0},
		{"0'b1", vlerrors.KindIllegalSize, 0, 0},
	}
	for _, tt := range tests {
		_, err := Parse(tt.lit)
		var e *vlerrors.Error
		if !errors.As(err, &e) {
			t.Errorf("%q: got %v, want a structured error", tt.lit, err)
			continue
		}
		if e.Kind != tt.kind || e.Phase != vlerrors.PhaseParse || e.Pos != tt.pos {
			t.Errorf("%q: got %s at %d, want %s at %d", tt.lit, e.Kind, e.Pos, tt.kind, tt.pos)
		}
		if tt.ch != 0 && e.Value != tt.ch {
			t.Errorf("%q: got char %v, want %q", tt.lit, e.Value, tt.ch)
		}
		if !vlerrors.IsParseError(err) {
			t.Errorf("%q: not a parse error", tt.lit)
		}
	}
}

func TestFromDigits(t *testing.T) {
	v, err := FromDigits(8, true, 16, "fe")
	if err != nil {
		t.Fatal(err)
	}
	if v.Width() != 8 || !v.IsSized() || v.ToInt() != -2 {
		t.Errorf("got %v", v)
	}
	u, err := FromDigits(0, false, 2, "101")
	if err != nil {
		t.Fatal(err)
	}
	if u.Width() != DefaultWidth || u.IsSized() || u.ToUint32() != 5 {
		t.Errorf("got %v", u)
	}
	if _, err := FromDigits(4, false, 3, "1"); !errors.Is(err, &vlerrors.Error{Phase: vlerrors.PhaseParse, Kind: vlerrors.KindIllegalBase}) {
		t.Errorf("base 3: got %v", err)
	}
	if _, err := FromDigits(4, false, 2, "2"); !errors.Is(err, &vlerrors.Error{Phase: vlerrors.PhaseParse, Kind: vlerrors.KindIllegalChar}) {
		t.Errorf("digit 2 in base 2: got %v", err)
	}
}
