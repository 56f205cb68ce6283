package label

import "github.com/MeKo-Tech/rasterkit/dense"

// Component summarizes one labeled region.
type Component struct {
	Label  int
	Area   int
	MinRow int
	MinCol int
	MaxRow int
	MaxCol int
}

// Components scans a labeled single-plane buffer and returns the
// area and bounding box of every label, ordered by label.
func Components(labels *dense.Buffer) ([]Component, error) {
	const op = "components"
	if err := dense.CheckSource(op, labels); err != nil {
		return nil, err
	}
	if labels.Channels() != 1 || labels.Batch() != 1 {
		return nil, dense.Errf(op, dense.ErrInvalidShape, "component stats need a single plane, got %v", labels.Shape())
	}

	comps := make([]Component, 0, 16)
	cols := labels.Cols()
	for i, v := range labels.Data() {
		l := int(v)
		if l <= 0 {
			continue
		}
		for len(comps) < l {
			comps = append(comps, Component{Label: len(comps) + 1, MinRow: labels.Rows(), MinCol: cols})
		}
		r, c := i/cols, i%cols
		st := &comps[l-1]
		st.Area++
		st.MinRow = min(st.MinRow, r)
		st.MinCol = min(st.MinCol, c)
		st.MaxRow = max(st.MaxRow, r)
		st.MaxCol = max(st.MaxCol, c)
	}
	return comps, nil
}
