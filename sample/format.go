// Package sample defines the PCM sample-type taxonomy and the
// type-erased buffer view (Data) that backend implementations use to
// hand frames to user callbacks without committing the runtime to any
// single scalar type.
package sample

import "fmt"

// Format tags the scalar encoding of one PCM sample: width, signedness,
// and float-ness. I24 and U24 report a 4-byte SampleSize because the
// dominant backend ABI (and ours) stores the packed low 24 bits in a
// 4-byte word; unpacking a true 3-byte wire format to that layout is a
// backend responsibility (spec §9), not this package's.
type Format uint8

const (
	I8 Format = iota
	I16
	I24
	I32
	I64
	U8
	U16
	U24
	U32
	U64
	F32
	F64
)

// sizes is indexed by Format and gives the in-memory byte size of one
// sample of that format.
var sizes = [...]int{
	I8:  1,
	I16: 2,
	I24: 4,
	I32: 4,
	I64: 8,
	U8:  1,
	U16: 2,
	U24: 4,
	U32: 4,
	U64: 8,
	F32: 4,
	F64: 8,
}

// SampleSize returns the number of bytes one sample of this format
// occupies in memory.
func (f Format) SampleSize() int {
	if int(f) >= len(sizes) {
		return 0
	}
	return sizes[f]
}

// IsFloat reports whether f is a floating-point format.
func (f Format) IsFloat() bool {
	return f == F32 || f == F64
}

// IsInt reports whether f is an integer format (signed or unsigned).
func (f Format) IsInt() bool {
	return !f.IsFloat()
}

// IsSigned reports whether f is a signed integer format. Float formats
// are considered signed.
func (f Format) IsSigned() bool {
	switch f {
	case I8, I16, I24, I32, I64, F32, F64:
		return true
	default:
		return false
	}
}

func (f Format) String() string {
	switch f {
	case I8:
		return "I8"
	case I16:
		return "I16"
	case I24:
		return "I24"
	case I32:
		return "I32"
	case I64:
		return "I64"
	case U8:
		return "U8"
	case U16:
		return "U16"
	case U24:
		return "U24"
	case U32:
		return "U32"
	case U64:
		return "U64"
	case F32:
		return "F32"
	case F64:
		return "F64"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}
