// Package colorspace reencodes images between the color models the
// library understands. Buffers are planar, so a 3-channel image carries
// its component planes one after another and conversions walk matched
// planes in lockstep.
package colorspace

import (
	"fmt"

	"github.com/MeKo-Tech/rasterkit/dense"
)

// Space identifies a color encoding for Convert.
type Space uint8

const (
	// Gray is single-channel intensity.
	Gray Space = iota
	// RGB is three-channel red, green, blue.
	RGB
	// HSV is three-channel hue in degrees plus unit saturation and
	// value.
	HSV
	// YCbCr is three-channel luma plus blue- and red-difference chroma.
	YCbCr
)

var spaceNames = map[Space]string{
	Gray:  "gray",
	RGB:   "rgb",
	HSV:   "hsv",
	YCbCr: "ycbcr",
}

func (s Space) String() string {
	if n, ok := spaceNames[s]; ok {
		return n
	}
	return fmt.Sprintf("space(%d)", uint8(s))
}

// ParseSpace converts a name like "rgb" to its Space.
func ParseSpace(s string) (Space, error) {
	for sp, name := range spaceNames {
		if s == name {
			return sp, nil
		}
	}
	return Gray, fmt.Errorf("%w: unknown color space %q", dense.ErrInvalidParameter, s)
}

// Channels returns the plane count the space requires per image.
func (s Space) Channels() int {
	if s == Gray {
		return 1
	}
	return 3
}

// Valid reports whether s is a known color space.
func (s Space) Valid() bool {
	_, ok := spaceNames[s]
	return ok
}
