package vltype

import "testing"

func TestString(t *testing.T) {
	tests := []struct {
		t    Type
		want string
	}{
		{NoType, "NO TYPE"},
		{IntType, "INT TYPE"},
		{RealType, "REAL TYPE"},
		{TimeType, "TIME TYPE"},
		{New(true, true, 8), "SIGNED SIZED 8 BITS TYPE"},
		{New(false, false, 32), "UNSIGNED UNSIZED 32 BITS TYPE"},
	}
	for _, tt := range tests {
		if got := tt.t.String(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}

func TestPredicates(t *testing.T) {
	if !IntType.IsIntType() || IntType.IsBitVectorType() {
		t.Error("IntType predicates")
	}
	if !NoType.IsNoType() {
		t.Error("NoType predicates")
	}
	if !New(false, true, 4).IsBitVectorType() {
		t.Error("plain type should be a bit-vector type")
	}
	if IntType.Equal(New(true, true, 32)) {
		t.Error("IntType should differ from a plain signed 32-bit vector type")
	}
	if !New(true, true, 8).Equal(New(true, true, 8)) {
		t.Error("equal plain types should compare equal")
	}
	if !TimeType.IsTimeType() || TimeType.Signed || TimeType.Size != 64 {
		t.Error("TimeType attributes")
	}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		a, b Type
		want Type
	}{
		{New(true, true, 8), New(true, false, 32), New(true, true, 32)},
		{New(true, true, 8), New(false, true, 4), New(false, true, 8)},
		{New(false, false, 32), New(false, false, 32), New(false, false, 32)},
	}
	for _, tt := range tests {
		if got := Merge(tt.a, tt.b); got != tt.want {
			t.Errorf("Merge(%v, %v): got %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
