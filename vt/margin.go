package vt

import (
	"fmt"
	"log/slog"
)

// margin holds an optional scroll-region bound pair, 0-based
// inclusive. The zero value means unset, i.e. the whole buffer.
type margin struct {
	min, max RowIndex
	set      bool
}

func newMargin(min, max RowIndex) margin {
	if min >= max {
		slog.Debug("rejecting margin, min must be < max", "min", min, "max", max)
		return margin{}
	}
	return margin{min: min, max: max, set: true}
}

func (m margin) isSet() bool {
	return m.set
}

func (m margin) getMin() RowIndex {
	return m.min
}

func (m margin) getMax() RowIndex {
	return m.max
}

// contains is true when v is inside the margin or no margin is set.
func (m margin) contains(v RowIndex) bool {
	return !m.set || (m.min <= v && v <= m.max)
}

func (m margin) equal(other margin) bool {
	return m.set == other.set && m.min == other.min && m.max == other.max
}

func (m margin) String() string {
	return fmt.Sprintf("(%d,%d)/%t", m.min, m.max, m.set)
}
