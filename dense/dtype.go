package dense

import "fmt"

// Dtype is the logical element type of a buffer. Samples are always
// held as float32 in memory; the dtype records what range the values
// are meant to occupy, so boundary code (codecs, labeling) can
// validate and clamp. F32 is the zero value.
type Dtype uint8

const (
	F32 Dtype = iota
	F64
	U8
	U16
	U32
	S32
)

var dtypeNames = map[Dtype]string{
	F32: "f32",
	F64: "f64",
	U8:  "u8",
	U16: "u16",
	U32: "u32",
	S32: "s32",
}

func (d Dtype) String() string {
	if s, ok := dtypeNames[d]; ok {
		return s
	}
	return fmt.Sprintf("dtype(%d)", uint8(d))
}

// ParseDtype converts a name like "u8" or "f32" to its Dtype.
func ParseDtype(s string) (Dtype, error) {
	for d, name := range dtypeNames {
		if s == name {
			return d, nil
		}
	}
	return F32, fmt.Errorf("%w: unknown dtype %q", ErrInvalidParameter, s)
}

// Limits returns the representable value range for integer dtypes.
// Floating-point dtypes report bounded=false.
func (d Dtype) Limits() (minVal, maxVal float64, bounded bool) {
	switch d {
	case U8:
		return 0, 255, true
	case U16:
		return 0, 65535, true
	case U32:
		return 0, 4294967295, true
	case S32:
		return -2147483648, 2147483647, true
	default:
		return 0, 0, false
	}
}

// IsInteger reports whether d is one of the integer dtypes.
func (d Dtype) IsInteger() bool {
	_, _, bounded := d.Limits()
	return bounded
}
