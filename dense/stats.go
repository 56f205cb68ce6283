package dense

import "github.com/chewxy/math32"

// MinMax returns the smallest and largest sample in the buffer.
func (b *Buffer) MinMax() (minVal, maxVal float32) {
	minVal = math32.Inf(1)
	maxVal = math32.Inf(-1)
	for _, v := range b.data {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	return minVal, maxVal
}

// Stats summarizes the value distribution of a buffer.
type Stats struct {
	Min    float32
	Max    float32
	Mean   float32
	StdDev float32
}

// ComputeStats returns min, max, mean, and standard deviation over
// every sample.
func (b *Buffer) ComputeStats() Stats {
	st := Stats{}
	if len(b.data) == 0 {
		return st
	}
	st.Min, st.Max = b.MinMax()
	var sum float64
	for _, v := range b.data {
		sum += float64(v)
	}
	mean := sum / float64(len(b.data))
	var sqDiff float64
	for _, v := range b.data {
		d := float64(v) - mean
		sqDiff += d * d
	}
	st.Mean = float32(mean)
	st.StdDev = math32.Sqrt(float32(sqDiff / float64(len(b.data))))
	return st
}

// Clone returns a deep copy of b with its own pooled storage.
func (b *Buffer) Clone() (*Buffer, error) {
	out, err := NewTyped(b.shape, b.dtype)
	if err != nil {
		return nil, err
	}
	copy(out.data, b.data)
	return out, nil
}
