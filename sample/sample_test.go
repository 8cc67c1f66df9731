package sample

import "testing"

func TestEquilibrium(t *testing.T) {
	if got := Equilibrium[int16](); got != 0 {
		t.Errorf("Equilibrium[int16]() = %d, want 0", got)
	}
	if got := Equilibrium[float32](); got != 0 {
		t.Errorf("Equilibrium[float32]() = %v, want 0", got)
	}
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		name string
		got  Format
		want Format
	}{
		{"int8", FormatOf[int8](), I8},
		{"int16", FormatOf[int16](), I16},
		{"PackedI24", FormatOf[PackedI24](), I24},
		{"int32", FormatOf[int32](), I32},
		{"int64", FormatOf[int64](), I64},
		{"uint8", FormatOf[uint8](), U8},
		{"uint16", FormatOf[uint16](), U16},
		{"PackedU24", FormatOf[PackedU24](), U24},
		{"uint32", FormatOf[uint32](), U32},
		{"uint64", FormatOf[uint64](), U64},
		{"float32", FormatOf[float32](), F32},
		{"float64", FormatOf[float64](), F64},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("FormatOf[%s]() = %v, want %v", tt.name, tt.got, tt.want)
		}
	}

	// I24 and I32 must be distinguishable even though both are 4 bytes.
	if FormatOf[PackedI24]() == FormatOf[int32]() {
		t.Error("FormatOf[PackedI24]() == FormatOf[int32](), want distinct tags")
	}
}

func TestToFloat64_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		v    float64
	}{
		{"zero", 0},
		{"half", 0.5},
		{"neg-half", -0.5},
		{"near-max", 0.999},
	}

	for _, tt := range tests {
		i16 := FromFloat64[int16](tt.v)
		back := ToFloat64(i16)
		if diff := back - tt.v; diff > 0.001 || diff < -0.001 {
			t.Errorf("round trip int16 %v: got %v, want within 0.001", tt.v, back)
		}

		i32 := FromFloat64[int32](tt.v)
		back32 := ToFloat64(i32)
		if diff := back32 - tt.v; diff > 1e-6 || diff < -1e-6 {
			t.Errorf("round trip int32 %v: got %v, want within 1e-6", tt.v, back32)
		}
	}
}

func TestToFloat64_FloatPassthrough(t *testing.T) {
	if got := ToFloat64(float32(0.25)); got != 0.25 {
		t.Errorf("ToFloat64(float32(0.25)) = %v, want 0.25", got)
	}
	if got := ToFloat64(float64(-0.75)); got != -0.75 {
		t.Errorf("ToFloat64(float64(-0.75)) = %v, want -0.75", got)
	}
}

func TestToFloat64_UnsignedMidScaleIsZero(t *testing.T) {
	// The midpoint of the unsigned range (sign bit flipped) must map to
	// the same equilibrium as a signed zero sample.
	mid := uint16(1 << 15)
	if got := ToFloat64(mid); got != 0 {
		t.Errorf("ToFloat64(uint16 mid-scale) = %v, want 0", got)
	}
}

func TestFromFloat64_Equilibrium(t *testing.T) {
	if got := FromFloat64[int16](0); got != 0 {
		t.Errorf("FromFloat64[int16](0) = %d, want 0", got)
	}
	if got := FromFloat64[uint8](0); got != 128 {
		t.Errorf("FromFloat64[uint8](0) = %d, want 128", got)
	}
}
