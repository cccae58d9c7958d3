package expr

import (
	"errors"
	"testing"

	vlerrors "github.com/henrytill/vlnum-go/internal/errors"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		src  string
		want []Token
	}{
		{"8'hFF+int'(x)", []Token{
			{TokenNumber, "8'hFF", 0},
			{TokenOperator, "+", 5},
			{TokenCast, "int", 6},
			{TokenOperator, "(", 10},
			{TokenIdent, "x", 11},
			{TokenOperator, ")", 12},
			{TokenEOF, "", 13},
		}},
		{"2.5e-3 >>> 'sb1 $bits", []Token{
			{TokenReal, "2.5e-3", 0},
			{TokenOperator, ">>>", 7},
			{TokenNumber, "'sb1", 11},
			{TokenSysIdent, "$bits", 16},
			{TokenEOF, "", 21},
		}},
		{"16'(a)", []Token{
			{TokenCast, "16", 0},
			{TokenOperator, "(", 3},
			{TokenIdent, "a", 4},
			{TokenOperator, ")", 5},
			{TokenEOF, "", 6},
		}},
		{`"a\"b" !== 1_000`, []Token{
			{TokenString, `a"b`, 0},
			{TokenOperator, "!==", 7},
			{TokenNumber, "1_000", 11},
			{TokenEOF, "", 16},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := Tokenize(tt.src)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d: got %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"a - b - c", "((a - b) - c)"},
		{"-a ** 2", "((-a) ** 2)"},
		{"a ** b * c", "((a ** b) * c)"},
		{"a << 1 < b", "((a << 1) < b)"},
		{"a < b == c", "((a < b) == c)"},
		{"a & b ^ c | d", "(((a & b) ^ c) | d)"},
		{"a ~^ b & c", "(a ~^ (b & c))"},
		{"a || b && c", "(a || (b && c))"},
		{"a ? b : c ? d : e", "(a ? b : (c ? d : e))"},
		{"a || b ? c : d", "((a || b) ? c : d)"},
		{"!a == b", "((!a) == b)"},
		{"~&a | b", "((~&a) | b)"},
		{"a === b !== c", "((a === b) !== c)"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"{a, 2'b10}", "{a, 2'b10}"},
		{"{a}", "{a}"},
		{"{3{a, b}}", "{3{a, b}}"},
		{"x[3]", "x[3]"},
		{"x[7:4][1]", "x[7:4][1]"},
		{"$bits(x) + $time", "($bits(x) + $time())"},
		{"int'(a + 1)", "int'((a + 1))"},
		{"8'(a)", "8'(a)"},
		{`"hi"`, `"hi"`},
		{"1.5e3", "1.5e3"},
	}
	for _, tt := range tests {
		n, err := Parse(tt.src)
		if err != nil {
			t.Errorf("%s: %v", tt.src, err)
			continue
		}
		if got := n.String(); got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.src, got, tt.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src  string
		kind vlerrors.Kind
		pos  int
	}{
		{"1 +", vlerrors.KindUnexpectedToken, 3},
		{"(1", vlerrors.KindUnexpectedToken, 2},
		{"1 2", vlerrors.KindUnexpectedToken, 2},
		{"{1, 2", vlerrors.KindUnexpectedToken, 5},
		{"x[1:", vlerrors.KindUnexpectedToken, 4},
		{"4'b12", vlerrors.KindIllegalChar, 4},
		{"1 + 4'b12", vlerrors.KindIllegalChar, 8},
		{"a # b", vlerrors.KindIllegalChar, 2},
		{"$", vlerrors.KindIllegalChar, 0},
		{`"abc`, vlerrors.KindUnexpectedToken, 4},
		{"8'h", vlerrors.KindEmptyLiteral, 3},
		{"", vlerrors.KindUnexpectedToken, 0},
	}
	for _, tt := range tests {
		_, err := Parse(tt.src)
		var e *vlerrors.Error
		if !errors.As(err, &e) {
			t.Errorf("%q: got %v, want a structured error", tt.src, err)
			continue
		}
		if e.Kind != tt.kind || e.Pos != tt.pos || e.Phase != vlerrors.PhaseParse {
			t.Errorf("%q: got %s at %d, want %s at %d", tt.src, e.Kind, e.Pos, tt.kind, tt.pos)
		}
		if e.Input != tt.src {
			t.Errorf("%q: error input %q", tt.src, e.Input)
		}
	}
}
