package vt

// Internally everything is 0-based: RowIndex and ColIndex are the
// only types used for grid access. The wire protocol is 1-based, so
// TermRow and TermCol exist solely at the parser/encoder boundary and
// are never zero; converting between the two is explicit so the
// off-by-one can't hide in bare ints.

type RowIndex int

type ColIndex int

// TermRow is a 1-based wire row. Construct via WireRow.
type TermRow int

// TermCol is a 1-based wire column. Construct via WireCol.
type TermCol int

// WireRow normalizes a raw CSI parameter to a valid wire row. Missing
// parameters arrive as 0 and default to 1, as do negative values.
func WireRow(n int) TermRow {
	if n < 1 {
		n = 1
	}
	return TermRow(n)
}

// WireCol normalizes a raw CSI parameter to a valid wire column.
func WireCol(n int) TermCol {
	if n < 1 {
		n = 1
	}
	return TermCol(n)
}

func (r TermRow) index() RowIndex {
	return RowIndex(r - 1)
}

func (c TermCol) index() ColIndex {
	return ColIndex(c - 1)
}

// Wire converts back to the 1-based form for encoding and DSR
// replies.
func (r RowIndex) Wire() TermRow {
	if r < 0 {
		r = 0
	}
	return TermRow(r + 1)
}

func (c ColIndex) Wire() TermCol {
	if c < 0 {
		c = 0
	}
	return TermCol(c + 1)
}

func clampRow(r RowIndex, rows int) RowIndex {
	switch {
	case r < 0:
		return 0
	case int(r) >= rows:
		return RowIndex(rows - 1)
	}
	return r
}

func clampCol(c ColIndex, cols int) ColIndex {
	switch {
	case c < 0:
		return 0
	case int(c) >= cols:
		return ColIndex(cols - 1)
	}
	return c
}

func minInt(i1, i2 int) int {
	if i1 <= i2 {
		return i1
	}
	return i2
}

func maxInt(i1, i2 int) int {
	if i1 >= i2 {
		return i1
	}
	return i2
}
