package histogram

import "github.com/MeKo-Tech/rasterkit/dense"

// OtsuLevel picks the bin index that best splits hist into two
// classes by maximizing the between-class variance. The returned
// index is the last bin of the lower class.
func OtsuLevel(hist *dense.Buffer) (int, error) {
	const op = "otsu"
	if err := dense.CheckSource(op, hist); err != nil {
		return 0, err
	}
	if hist.Rows() != 1 || hist.Channels() != 1 || hist.Batch() != 1 {
		return 0, dense.Errf(op, dense.ErrInvalidShape, "histogram must be a single row of counts, got %v", hist.Shape())
	}

	counts := hist.Data()
	var total, weighted float64
	for i, c := range counts {
		total += float64(c)
		weighted += float64(i) * float64(c)
	}
	if total == 0 {
		return 0, dense.Errf(op, dense.ErrInvalidParameter, "histogram is empty")
	}

	var sumB, wB float64
	var best float64
	level := 0
	for t, c := range counts {
		wB += float64(c)
		if wB == 0 {
			continue
		}
		wF := total - wB
		if wF == 0 {
			break
		}
		sumB += float64(t) * float64(c)
		mB := sumB / wB
		mF := (weighted - sumB) / wF
		variance := wB * wF * (mB - mF) * (mB - mF)
		if variance > best {
			best = variance
			level = t
		}
	}
	return level, nil
}
