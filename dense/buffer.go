// Package dense provides the raster buffer shared by every operation
// in the module: a planar row-major float32 array with a logical
// dtype, plus the shape, enum, and error types the engines build on.
//
// Buffers are immutable by convention. An engine fills its output
// before returning it, and callers treat received buffers as
// read-only. Backing memory is pooled; Release recycles it once a
// buffer is no longer needed, and forgetting to Release only costs
// pool reuse, never correctness.
package dense

import (
	"fmt"
	"sync/atomic"

	"github.com/MeKo-Tech/rasterkit/internal/mempool"
)

// storage owns the backing slice shared by a buffer and its views.
type storage struct {
	refs   atomic.Int32
	root   []float32
	pooled bool
}

// Buffer is a dense raster: Batch images of Channels planes, each
// plane Rows x Cols float32 samples in row-major order.
type Buffer struct {
	shape Shape
	dtype Dtype
	data  []float32
	st    *storage
}

// New allocates a zeroed buffer of the given shape. Backing memory
// comes from the scratch pool; call Release when done to recycle it.
func New(shape Shape) (*Buffer, error) {
	return NewTyped(shape, F32)
}

// NewTyped allocates like New and tags the buffer with a logical
// dtype. The tag does not change storage, only how boundary code
// interprets the values.
func NewTyped(shape Shape, dtype Dtype) (*Buffer, error) {
	if err := shape.Validate(); err != nil {
		return nil, wrapOp("alloc", err)
	}
	root := mempool.GetFloat32(shape.NumElements())
	clear(root)
	st := &storage{root: root, pooled: true}
	st.refs.Store(1)
	return &Buffer{shape: shape, dtype: dtype, data: root, st: st}, nil
}

// FromSlice wraps data in a buffer without copying. The buffer takes
// ownership of the slice; the caller must not keep using it. The
// slice length must match the shape exactly.
func FromSlice(data []float32, shape Shape) (*Buffer, error) {
	if err := shape.Validate(); err != nil {
		return nil, wrapOp("wrap", err)
	}
	if len(data) != shape.NumElements() {
		return nil, Errf("wrap", ErrInvalidShape, "data length %d does not match shape %v", len(data), shape)
	}
	st := &storage{root: data, pooled: false}
	st.refs.Store(1)
	return &Buffer{shape: shape, dtype: F32, data: data, st: st}, nil
}

// Full allocates a buffer with every sample set to v.
func Full(shape Shape, v float32) (*Buffer, error) {
	buf, err := New(shape)
	if err != nil {
		return nil, err
	}
	if v != 0 {
		buf.Fill(v)
	}
	return buf, nil
}

// Ones allocates a buffer of ones, the default structuring element
// for morphology.
func Ones(shape Shape) (*Buffer, error) {
	return Full(shape, 1)
}

// Shape returns the buffer's dimensions.
func (b *Buffer) Shape() Shape { return b.shape }

// Rows returns the row count of one plane.
func (b *Buffer) Rows() int { return b.shape.Rows }

// Cols returns the column count of one plane.
func (b *Buffer) Cols() int { return b.shape.Cols }

// Channels returns the planes per image.
func (b *Buffer) Channels() int { return b.shape.Channels }

// Batch returns the image count.
func (b *Buffer) Batch() int { return b.shape.Batch }

// Dtype returns the logical element type.
func (b *Buffer) Dtype() Dtype { return b.dtype }

// NumElements returns the total sample count.
func (b *Buffer) NumElements() int { return b.shape.NumElements() }

// Data returns the backing samples in planar row-major order. Writing
// through the slice mutates the buffer.
func (b *Buffer) Data() []float32 { return b.data }

// At returns the sample at row r, column c of channel ch in the first
// image.
func (b *Buffer) At(r, c, ch int) float32 {
	return b.data[b.shape.Index(0, ch, r, c)]
}

// Set stores v at row r, column c of channel ch in the first image.
func (b *Buffer) Set(r, c, ch int, v float32) {
	b.data[b.shape.Index(0, ch, r, c)] = v
}

// Fill sets every sample to v.
func (b *Buffer) Fill(v float32) {
	for i := range b.data {
		b.data[i] = v
	}
}

// Plane returns a single-plane view of plane i, counting channels
// across the batch in storage order. The view shares b's storage and
// reference count; Retain it if it must outlive b's Release.
func (b *Buffer) Plane(i int) *Buffer {
	ps := b.shape.PlaneSize()
	return &Buffer{
		shape: Shape{Rows: b.shape.Rows, Cols: b.shape.Cols, Channels: 1, Batch: 1},
		dtype: b.dtype,
		data:  b.data[i*ps : (i+1)*ps : (i+1)*ps],
		st:    b.st,
	}
}

// Retain adds a reference to the backing storage and returns b.
func (b *Buffer) Retain() *Buffer {
	if b != nil && b.st != nil {
		b.st.refs.Add(1)
	}
	return b
}

// Release drops a reference. Dropping the last reference to pooled
// storage returns the backing slice to the scratch pool, after which
// any use of the buffer or its views races with the next allocation.
// Buffers built by FromSlice are never recycled, and extra Release
// calls are ignored.
func (b *Buffer) Release() {
	if b == nil || b.st == nil {
		return
	}
	if b.st.refs.Add(-1) == 0 && b.st.pooled {
		mempool.PutFloat32(b.st.root)
		b.st.root = nil
	}
}

func (b *Buffer) String() string {
	return fmt.Sprintf("Buffer(%v %v)", b.shape, b.dtype)
}

// CheckSource validates that b is a usable operation input. Engines
// call it before touching sample data so nil and released buffers
// fail with a typed error instead of a panic.
func CheckSource(op string, b *Buffer) error {
	if b == nil || b.st == nil || len(b.data) == 0 {
		return Errf(op, ErrInvalidShape, "nil or empty source buffer")
	}
	return nil
}
