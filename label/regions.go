// Package label implements connected-component labeling of binary
// rasters.
package label

import (
	"container/list"

	"github.com/MeKo-Tech/rasterkit/dense"
	"github.com/MeKo-Tech/rasterkit/internal/mempool"
)

// Regions labels the connected foreground components of a binary
// single-plane image. Nonzero samples are foreground. Components are
// numbered 1..N in row-major order of their first pixel; background
// stays 0. The result carries outType, and an integer outType whose
// range cannot hold N fails with a range error.
func Regions(src *dense.Buffer, conn dense.Connectivity, outType dense.Dtype) (*dense.Buffer, error) {
	const op = "regions"
	if err := dense.CheckSource(op, src); err != nil {
		return nil, err
	}
	if src.Channels() != 1 || src.Batch() != 1 {
		return nil, dense.Errf(op, dense.ErrInvalidShape, "labeling needs a single plane, got %v", src.Shape())
	}
	if !conn.Valid() {
		return nil, dense.Errf(op, dense.ErrInvalidParameter, "connectivity must be 4 or 8, got %d", uint8(conn))
	}

	out, err := dense.NewTyped(src.Shape(), outType)
	if err != nil {
		return nil, err
	}

	rows, cols := src.Rows(), src.Cols()
	mask := binarize(src.Data())
	defer mempool.PutBool(mask)

	// Zero means unvisited, so the label plane doubles as the
	// visited set.
	labels := out.Data()
	dirs := neighborOffsets(conn)
	next := 1
	for r := range rows {
		for c := range cols {
			i := r*cols + c
			if !mask[i] || labels[i] != 0 {
				continue
			}
			floodFill(mask, labels, rows, cols, r, c, float32(next), dirs)
			next++
		}
	}

	n := next - 1
	if _, maxVal, bounded := outType.Limits(); bounded && float64(n) > maxVal {
		out.Release()
		return nil, dense.Errf(op, dense.ErrRange, "%d components do not fit %v", n, outType)
	}
	return out, nil
}

// Count returns the number of components in a labeled buffer, i.e.
// its highest label.
func Count(labels *dense.Buffer) int {
	var maxLabel float32
	for _, v := range labels.Data() {
		if v > maxLabel {
			maxLabel = v
		}
	}
	return int(maxLabel)
}

// binarize builds a pooled foreground mask; the caller returns it to
// the pool.
func binarize(data []float32) []bool {
	mask := mempool.GetBool(len(data))
	for i, v := range data {
		if v != 0 {
			mask[i] = true
		}
	}
	return mask
}

func neighborOffsets(conn dense.Connectivity) [][2]int {
	dirs := [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	if conn == dense.Conn8 {
		dirs = append(dirs, [2]int{1, 1}, [2]int{1, -1}, [2]int{-1, 1}, [2]int{-1, -1})
	}
	return dirs
}

// floodFill performs BFS traversal from a seed pixel, writing label
// into every reachable foreground sample.
func floodFill(mask []bool, labels []float32, rows, cols, startR, startC int, label float32, dirs [][2]int) {
	start := startR*cols + startC
	labels[start] = label
	q := list.New()
	q.PushBack(start)

	for q.Len() > 0 {
		e := q.Front()
		q.Remove(e)
		ci, ok := e.Value.(int)
		if !ok {
			continue
		}
		cr, cc := ci/cols, ci%cols
		for _, d := range dirs {
			nr, nc := cr+d[0], cc+d[1]
			if nr < 0 || nr >= rows || nc < 0 || nc >= cols {
				continue
			}
			ni := nr*cols + nc
			if !mask[ni] || labels[ni] != 0 {
				continue
			}
			labels[ni] = label
			q.PushBack(ni)
		}
	}
}
