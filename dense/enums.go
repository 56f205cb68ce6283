package dense

import "fmt"

// Interp selects the sampling method used by geometric transforms.
type Interp uint8

const (
	// InterpNearest rounds to the closest source sample.
	InterpNearest Interp = iota
	// InterpLower truncates to the source sample at or below the
	// mapped coordinate.
	InterpLower
	// InterpBilinear blends the four surrounding samples.
	InterpBilinear
	// InterpBicubic fits a Catmull-Rom surface through the sixteen
	// surrounding samples.
	InterpBicubic
)

var interpNames = map[Interp]string{
	InterpNearest:  "nearest",
	InterpLower:    "lower",
	InterpBilinear: "bilinear",
	InterpBicubic:  "bicubic",
}

func (i Interp) String() string {
	if s, ok := interpNames[i]; ok {
		return s
	}
	return fmt.Sprintf("interp(%d)", uint8(i))
}

// ParseInterp converts a name like "bilinear" to its Interp.
func ParseInterp(s string) (Interp, error) {
	for i, name := range interpNames {
		if s == name {
			return i, nil
		}
	}
	return InterpNearest, fmt.Errorf("%w: unknown interpolation %q", ErrInvalidParameter, s)
}

// Valid reports whether i is a known interpolation method.
func (i Interp) Valid() bool {
	_, ok := interpNames[i]
	return ok
}

// Pad selects how windowed filters read samples past the image border.
type Pad uint8

const (
	// PadZero treats out-of-image samples as zero.
	PadZero Pad = iota
	// PadClampEdge repeats the nearest edge sample.
	PadClampEdge
)

var padNames = map[Pad]string{
	PadZero:      "zero",
	PadClampEdge: "clamp",
}

func (p Pad) String() string {
	if s, ok := padNames[p]; ok {
		return s
	}
	return fmt.Sprintf("pad(%d)", uint8(p))
}

// ParsePad converts a name like "zero" or "clamp" to its Pad.
func ParsePad(s string) (Pad, error) {
	for p, name := range padNames {
		if s == name {
			return p, nil
		}
	}
	return PadZero, fmt.Errorf("%w: unknown pad mode %q", ErrInvalidParameter, s)
}

// Valid reports whether p is a known pad mode.
func (p Pad) Valid() bool {
	_, ok := padNames[p]
	return ok
}

// Connectivity selects the neighborhood used by connected-component
// labeling. The numeric values match the neighbor count.
type Connectivity uint8

const (
	Conn4 Connectivity = 4
	Conn8 Connectivity = 8
)

func (c Connectivity) String() string {
	return fmt.Sprintf("%d", uint8(c))
}

// ParseConnectivity converts 4 or 8 to its Connectivity.
func ParseConnectivity(n int) (Connectivity, error) {
	switch n {
	case 4:
		return Conn4, nil
	case 8:
		return Conn8, nil
	default:
		return Conn4, fmt.Errorf("%w: connectivity must be 4 or 8, got %d", ErrInvalidParameter, n)
	}
}

// Valid reports whether c is 4- or 8-connectivity.
func (c Connectivity) Valid() bool {
	return c == Conn4 || c == Conn8
}
