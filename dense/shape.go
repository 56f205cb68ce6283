package dense

import "fmt"

// Shape describes the extent of a buffer: Batch images of Channels
// planes, each plane Rows x Cols samples.
type Shape struct {
	Rows     int
	Cols     int
	Channels int
	Batch    int
}

// NewShape builds a shape from spatial dimensions. Channels and batch
// arrive as optional trailing dimensions and default to 1.
func NewShape(rows, cols int, rest ...int) Shape {
	s := Shape{Rows: rows, Cols: cols, Channels: 1, Batch: 1}
	if len(rest) > 0 {
		s.Channels = rest[0]
	}
	if len(rest) > 1 {
		s.Batch = rest[1]
	}
	return s
}

// Validate reports whether every dimension is positive and the total
// element count fits in an int.
func (s Shape) Validate() error {
	if s.Rows <= 0 || s.Cols <= 0 || s.Channels <= 0 || s.Batch <= 0 {
		return fmt.Errorf("%w: dimensions must be positive, got %v", ErrInvalidShape, s)
	}
	n := s.Rows
	for _, d := range []int{s.Cols, s.Channels, s.Batch} {
		if n > maxElements/d {
			return fmt.Errorf("%w: %v exceeds addressable size", ErrInvalidShape, s)
		}
		n *= d
	}
	return nil
}

// maxElements caps buffer sizes well below int overflow on 64-bit
// platforms while still allowing multi-gigapixel batches.
const maxElements = 1 << 40

// NumElements returns Rows*Cols*Channels*Batch.
func (s Shape) NumElements() int {
	return s.Rows * s.Cols * s.Channels * s.Batch
}

// PlaneSize returns the number of samples in one channel plane.
func (s Shape) PlaneSize() int {
	return s.Rows * s.Cols
}

// NumPlanes returns the total plane count across channels and batch.
func (s Shape) NumPlanes() int {
	return s.Channels * s.Batch
}

// Index returns the flat offset of (batch b, channel ch, row r, col c)
// in planar row-major order.
func (s Shape) Index(b, ch, r, c int) int {
	return ((b*s.Channels+ch)*s.Rows+r)*s.Cols + c
}

// WithSize returns a copy of s with new spatial dimensions, keeping
// channels and batch.
func (s Shape) WithSize(rows, cols int) Shape {
	s.Rows = rows
	s.Cols = cols
	return s
}

// WithChannels returns a copy of s with a new channel count.
func (s Shape) WithChannels(channels int) Shape {
	s.Channels = channels
	return s
}

func (s Shape) String() string {
	return fmt.Sprintf("%dx%dx%dx%d", s.Rows, s.Cols, s.Channels, s.Batch)
}
