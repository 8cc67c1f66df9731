package sample

import "math"

// PackedI24 and PackedU24 give the packed 24-bit integer formats a
// distinct Go type from their 32-bit siblings, so the compile-time tag
// lookup in FormatOf can tell an I24 callback apart from an I32 one
// even though both occupy 4 bytes in memory. Only the low 24 bits are
// meaningful; the backend is responsible for sign-extending (I24) or
// zero-extending (U24) the top byte before the buffer reaches Data.
type PackedI24 int32

// PackedU24 is the unsigned counterpart of PackedI24.
type PackedU24 uint32

// Sample is the capability "this scalar type represents one PCM
// sample". SizedSample in the spec is this same type set: every
// concrete type here carries its SampleFormat tag at compile time via
// FormatOf, so the typed and type-erased callback paths can share one
// backend implementation.
type Sample interface {
	int8 | int16 | PackedI24 | int32 | int64 |
		uint8 | uint16 | PackedU24 | uint32 | uint64 |
		float32 | float64
}

// Equilibrium returns the silence value for T: zero for every sample
// type in this taxonomy.
func Equilibrium[T Sample]() T {
	return T(0)
}

// FormatOf returns the compile-time SampleFormat tag for T. It panics
// for a T outside the Sample type set, which cannot happen through
// normal use since the set is closed by the Sample constraint.
func FormatOf[T Sample]() Format {
	var zero T
	switch any(zero).(type) {
	case int8:
		return I8
	case int16:
		return I16
	case PackedI24:
		return I24
	case int32:
		return I32
	case int64:
		return I64
	case uint8:
		return U8
	case uint16:
		return U16
	case PackedU24:
		return U24
	case uint32:
		return U32
	case uint64:
		return U64
	case float32:
		return F32
	case float64:
		return F64
	default:
		panic("sample: unsupported type for FormatOf")
	}
}

// signedMax returns the maximum magnitude of a signed integer format,
// used as the scale factor for int<->float conversion (spec §9: "int to
// float via scaling by the signed-max of the integer").
func signedMax(f Format) float64 {
	switch f {
	case I8:
		return float64(math.MaxInt8)
	case I16:
		return float64(math.MaxInt16)
	case I24, U24:
		return 8388607 // 2^23 - 1
	case I32:
		return float64(math.MaxInt32)
	case I64:
		return float64(math.MaxInt64)
	case U8:
		return float64(math.MaxUint8 / 2)
	case U16:
		return float64(math.MaxUint16 / 2)
	case U32:
		return float64(math.MaxUint32 / 2)
	case U64:
		return float64(uint64(math.MaxUint64) / 2)
	default:
		return 1
	}
}

// ToFloat64 normalizes v to the canonical [-1.0, 1.0] range, applying
// the conversion rules fixed by spec §9: floats pass through unscaled,
// integers divide by their signed-max, and unsigned formats flip the
// sign bit (subtract the mid-scale point) before scaling.
func ToFloat64[T Sample](v T) float64 {
	switch x := any(v).(type) {
	case float32:
		return float64(x)
	case float64:
		return x
	case int8:
		return float64(x) / signedMax(I8)
	case int16:
		return float64(x) / signedMax(I16)
	case PackedI24:
		return float64(x) / signedMax(I24)
	case int32:
		return float64(x) / signedMax(I32)
	case int64:
		return float64(x) / signedMax(I64)
	case uint8:
		return (float64(x) - (math.MaxUint8/2 + 1)) / signedMax(U8)
	case uint16:
		return (float64(x) - (math.MaxUint16/2 + 1)) / signedMax(U16)
	case PackedU24:
		return (float64(x) - (1 << 23)) / signedMax(U24)
	case uint32:
		return (float64(x) - (1 << 31)) / signedMax(U32)
	case uint64:
		return (float64(x) - (1 << 63)) / signedMax(U64)
	default:
		return 0
	}
}

// FromFloat64 denormalizes a [-1.0, 1.0] value into T, the inverse of
// ToFloat64. Values outside [-1.0, 1.0] are not clamped: callers that
// feed out-of-range input get the same wraparound/overflow behavior a
// C audio backend would.
func FromFloat64[T Sample](v float64) T {
	f := FormatOf[T]()
	switch f {
	case F32:
		return any(float32(v)).(T)
	case F64:
		return any(v).(T)
	case I8:
		return any(int8(v * signedMax(I8))).(T)
	case I16:
		return any(int16(v * signedMax(I16))).(T)
	case I24:
		return any(PackedI24(v * signedMax(I24))).(T)
	case I32:
		return any(int32(v * signedMax(I32))).(T)
	case I64:
		return any(int64(v * signedMax(I64))).(T)
	case U8:
		return any(uint8(v*signedMax(U8) + (math.MaxUint8/2 + 1))).(T)
	case U16:
		return any(uint16(v*signedMax(U16) + (math.MaxUint16/2 + 1))).(T)
	case U24:
		return any(PackedU24(v*signedMax(U24) + (1 << 23))).(T)
	case U32:
		return any(uint32(v*signedMax(U32) + (1 << 31))).(T)
	case U64:
		return any(uint64(v*signedMax(U64) + (1 << 63))).(T)
	default:
		var zero T
		return zero
	}
}
