package expr

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	vlerrors "github.com/henrytill/vlnum-go/internal/errors"
	"github.com/henrytill/vlnum-go/internal/value"
	"github.com/henrytill/vlnum-go/internal/vltype"
)

func testEnv() *Env {
	env := NewEnv()
	env.Params["W"] = value.NewInt(8)
	env.Params["MASK"] = value.NewUint(0xff)
	env.Types["byte_t"] = vltype.New(true, true, 8)
	return env
}

func TestEvalString(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "7"},
		{"7 / 2", "3"},
		{"-7 % 2", "-1"},
		{"2147483647 + 1", "-2147483648"},
		{"2 ** 10", "1024"},
		{"1.5 * 2", "3"},
		{"3.0 % 2", "error"},
		{"4'b1010 & 4'b0110", "4'b0010"},
		{"4'b1000 | 4'b01x0", "4'b11X0"},
		{"8'd3 - 8'd5", "8'd254"},
		{"-8'sd3", "-8'sd3"},
		{"8'hA5[7:4]", "4'b1010"},
		{"8'hA5[0]", "1"},
		{"8'hA5[W]", "X"},
		{"{2'b10, 2'b01}", "4'b1001"},
		{"{2{2'b10}}", "4'b1010"},
		{"4'b1x10 == 4'b1x10", "X"},
		{"4'b1x10 === 4'b1x10", "1"},
		{"4'b1x10 !== 4'b1z10", "1"},
		{"1 ? 2 : 3", "2"},
		{"0 ? 2 : 3", "3"},
		{"1'bx ? 4'b1100 : 4'b1010", "4'b1XX0"},
		{"!0 && 1'bx", "X"},
		{"0 && 1'bx", "0"},
		{"&4'b1111", "1"},
		{"^4'b1110", "1"},
		{"~|4'b0000", "1"},
		{"8'b0000_0001 << 3", "8'b0000_1000"},
		{"$bits(8'hff)", "8"},
		{"$bits({3{2'b01}})", "6"},
		{"$unsigned(-1)", "32'd4294967295"},
		{"$rtoi(3.9)", "3"},
		{"$itor(3)", "3"},
		{"$time(5) + $time(6)", "11"},
		{"$matchx(4'b1x0x, 4'b1100)", "1"},
		{"$matchxz(4'b1z00, 4'b1100)", "1"},
		{"$matchx(4'b1z00, 4'b1100)", "0"},
		{"int'(2.5)", "2"},
		{"real'(3)", "3"},
		{"4'(8'hff)", "4'hF"},
		{"byte_t'(300)", "8'sd44"},
		{"W * 2", "16"},
		{"MASK + 1", "256"},
		{"12345678901", "12345678901"},
		{"12345678901 + 1", "12345678902"},
		{"time'(8'bx)", "error"},
		{"$time(8'bx)", "error"},
		{"real'(4'b1z00)", "error"},
		{"-(1 < 1'bx) === 1'bx", "1"},
		{"{4294967295{64'h0}} === {64{1'bx}}", "1"},
	}
	env := testEnv()
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := EvalString(tt.src, env)
			if err != nil {
				t.Fatal(err)
			}
			if got.String() != tt.want {
				t.Errorf("got %s (%s), want %s", got, got.Kind(), tt.want)
			}
		})
	}
}

func TestEvalKinds(t *testing.T) {
	tests := []struct {
		src  string
		want value.Kind
	}{
		{"42", value.Int},
		{"2 ** 2", value.Real},
		{"1.0", value.Real},
		{"'d42", value.BitVector},
		{`"AB"`, value.BitVector},
		{"1 < 2", value.Scalar},
		{"$time(1)", value.Time},
		{"1 / 0", value.BitVector},
		{"~1.5", value.Error},
	}
	for _, tt := range tests {
		got, err := EvalString(tt.src, nil)
		if err != nil {
			t.Errorf("%s: %v", tt.src, err)
			continue
		}
		if got.Kind() != tt.want {
			t.Errorf("%s: got %s, want %s", tt.src, got.Kind(), tt.want)
		}
	}
}

func TestEvalStringLiteral(t *testing.T) {
	got, err := EvalString(`"AB"`, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got.BitSize() != 16 || got.Uint() != 0x4142 {
		t.Errorf("got %v", got)
	}
}

func TestEvalSigned(t *testing.T) {
	for _, src := range []string{"$signed(4'b1111)", "signed'(4'hf)"} {
		got, err := EvalString(src, nil)
		if err != nil {
			t.Fatal(err)
		}
		if !got.IsSigned() || got.Int() != -1 {
			t.Errorf("%s: got %v", src, got)
		}
	}
}

func TestEvalErrors(t *testing.T) {
	tests := []struct {
		src   string
		phase vlerrors.Phase
		kind  vlerrors.Kind
	}{
		{"foo + 1", vlerrors.PhaseEval, vlerrors.KindUnknownName},
		{"$clog2(8)", vlerrors.PhaseEval, vlerrors.KindUnsupported},
		{"$bits(1, 2)", vlerrors.PhaseEval, vlerrors.KindInvalidInput},
		{"$time", vlerrors.PhaseEval, vlerrors.KindInvalidInput},
		{"nope'(1)", vlerrors.PhaseEval, vlerrors.KindUnknownName},
		{"0'(1)", vlerrors.PhaseEval, vlerrors.KindIllegalSize},
		{"99999999'(1)", vlerrors.PhaseEval, vlerrors.KindIllegalSize},
		{"1 +", vlerrors.PhaseParse, vlerrors.KindUnexpectedToken},
	}
	for _, tt := range tests {
		_, err := EvalString(tt.src, testEnv())
		if !errors.Is(err, &vlerrors.Error{Phase: tt.phase, Kind: tt.kind}) {
			t.Errorf("%s: got %v, want %s/%s", tt.src, err, tt.phase, tt.kind)
		}
	}
}

func TestUnknownFunctionIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(zap.NewNop()) })

	if _, err := EvalString("$random(1)", nil); err == nil {
		t.Fatal("got nil error")
	}
	entries := logs.FilterMessage("unknown system function").All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["name"]; got != "$random" {
		t.Errorf("got name %v", got)
	}
}

func TestSetLoggerNil(t *testing.T) {
	SetLogger(nil)
	t.Cleanup(func() { SetLogger(zap.NewNop()) })

	if _, err := EvalString("$random(1)", nil); err == nil {
		t.Fatal("got nil error")
	}
}
