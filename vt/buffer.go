package vt

import "log/slog"

type position struct {
	row RowIndex
	col ColIndex
}

// Buffer is the offscreen model of one terminal screen: a row-major
// grid of cells plus the cursor, pen and mode state the wire protocol
// mutates. It performs no I/O and takes no locks; a Buffer has one
// logical owner at a time and that owner serializes access.
type Buffer struct {
	rows, cols int
	grid       [][]Cell

	cur    position
	saved  *position
	region margin

	autoWrap   bool
	showCursor bool
	cs         charset
	style      Style
	tabs       []bool
}

// NewBuffer returns a blank buffer of the given dimensions.
// Non-positive dimensions are a caller bug; they're logged and
// clamped to 1 rather than propagated.
func NewBuffer(rows, cols int) *Buffer {
	if rows < 1 || cols < 1 {
		slog.Debug("invalid buffer dimensions requested", "rows", rows, "cols", cols)
		rows = maxInt(rows, 1)
		cols = maxInt(cols, 1)
	}

	g := make([][]Cell, rows)
	for r := 0; r < rows; r++ {
		g[r] = newRow(cols)
	}

	return &Buffer{
		rows:       rows,
		cols:       cols,
		grid:       g,
		autoWrap:   true,
		showCursor: true,
		tabs:       makeTabs(cols),
	}
}

func newRow(cols int) []Cell {
	row := make([]Cell, cols)
	for i := range row {
		row[i] = blankCell()
	}
	return row
}

func makeTabs(cols int) []bool {
	tabs := make([]bool, cols)
	for i := range tabs {
		tabs[i] = (i%8 == 0)
	}
	return tabs
}

// Size returns the grid dimensions.
func (b *Buffer) Size() (rows, cols int) {
	return b.rows, b.cols
}

// Cursor returns the current cursor position, always within bounds.
func (b *Buffer) Cursor() (RowIndex, ColIndex) {
	return b.cur.row, b.cur.col
}

// CursorVisible reports the DECTCEM state.
func (b *Buffer) CursorVisible() bool {
	return b.showCursor
}

// AutoWrap reports the DECAWM state.
func (b *Buffer) AutoWrap() bool {
	return b.autoWrap
}

// ScrollRegion returns the active margins in wire (1-based) form. ok
// is false when no region is set and scrolling spans the whole
// buffer.
func (b *Buffer) ScrollRegion() (top, bottom TermRow, ok bool) {
	if !b.region.isSet() {
		return 0, 0, false
	}
	return b.region.getMin().Wire(), b.region.getMax().Wire(), true
}

// Cell returns the cell at (row, col), or a void cell when the
// coordinates fall outside the grid.
func (b *Buffer) Cell(row RowIndex, col ColIndex) Cell {
	if !b.validPoint(row, col) {
		return voidCell()
	}
	return b.grid[row][col]
}

// RowString flattens a row to printable text. Handy for tests and
// debug dumps; void continuation cells contribute nothing.
func (b *Buffer) RowString(row RowIndex) string {
	if row < 0 || int(row) >= b.rows {
		return ""
	}
	out := make([]rune, 0, b.cols)
	for _, c := range b.grid[row] {
		if c.Kind() == CellVoid {
			continue
		}
		out = append(out, c.Rune())
	}
	return string(out)
}

func (b *Buffer) validPoint(row RowIndex, col ColIndex) bool {
	return row >= 0 && int(row) < b.rows && col >= 0 && int(col) < b.cols
}

func (b *Buffer) setCell(row RowIndex, col ColIndex, c Cell) {
	if b.validPoint(row, col) {
		b.grid[row][col] = c
	}
}

// resetCells blanks [from, to] on row, inclusive both ends, clamped.
func (b *Buffer) resetCells(row RowIndex, from, to ColIndex) {
	if row < 0 || int(row) >= b.rows || from > to {
		return
	}
	from = clampCol(from, b.cols)
	to = clampCol(to, b.cols)
	for col := from; col <= to; col++ {
		b.grid[row][col] = blankCell()
	}
}

// resetRows blanks rows [from, to], inclusive both ends, clamped.
func (b *Buffer) resetRows(from, to RowIndex) {
	if from > to {
		return
	}
	from = clampRow(from, b.rows)
	to = clampRow(to, b.rows)
	for r := from; r <= to; r++ {
		b.grid[r] = newRow(b.cols)
	}
}

// scrollBounds returns the 0-based inclusive rows that scrolling and
// line operations confine themselves to.
func (b *Buffer) scrollBounds() (top, bottom RowIndex) {
	if b.region.isSet() {
		return b.region.getMin(), b.region.getMax()
	}
	return 0, RowIndex(b.rows - 1)
}

// Resize replaces the grid with one of the new dimensions, keeping
// content at positions present in both. The cursor, saved cursor and
// margins are re-clamped; tab stops carry over where columns survive.
func (b *Buffer) Resize(rows, cols int) {
	if rows < 1 || cols < 1 {
		slog.Debug("ignoring resize to invalid dimensions", "rows", rows, "cols", cols)
		return
	}
	if rows == b.rows && cols == b.cols {
		return
	}

	g := make([][]Cell, rows)
	for r := 0; r < rows; r++ {
		g[r] = newRow(cols)
		if r < b.rows {
			copy(g[r], b.grid[r][:minInt(cols, b.cols)])
		}
	}

	tabs := makeTabs(cols)
	copy(tabs, b.tabs[:minInt(cols, len(b.tabs))])

	b.grid = g
	b.rows = rows
	b.cols = cols
	b.tabs = tabs

	b.cur.row = clampRow(b.cur.row, rows)
	b.cur.col = clampCol(b.cur.col, cols)
	if b.saved != nil {
		b.saved.row = clampRow(b.saved.row, rows)
		b.saved.col = clampCol(b.saved.col, cols)
	}

	if b.region.isSet() {
		top := b.region.getMin()
		bottom := b.region.getMax()
		if int(bottom) >= rows {
			bottom = RowIndex(rows - 1)
		}
		b.region = newMargin(top, bottom) // unsets itself if now invalid
	}

	slog.Debug("resized buffer", "rows", rows, "cols", cols)
}

// Copy returns a deep copy of the buffer, useful for handing a
// consistent snapshot to a renderer while parsing continues.
func (b *Buffer) Copy() *Buffer {
	g := make([][]Cell, b.rows)
	for r := range b.grid {
		g[r] = make([]Cell, b.cols)
		copy(g[r], b.grid[r])
	}

	tabs := make([]bool, len(b.tabs))
	copy(tabs, b.tabs)

	nb := *b
	nb.grid = g
	nb.tabs = tabs
	if b.saved != nil {
		s := *b.saved
		nb.saved = &s
	}
	return &nb
}

// equal compares full buffer state. Used by round-trip tests.
func (b *Buffer) equal(other *Buffer) bool {
	if b.rows != other.rows || b.cols != other.cols {
		return false
	}
	if b.cur != other.cur || !b.region.equal(other.region) {
		return false
	}
	if b.autoWrap != other.autoWrap || b.showCursor != other.showCursor {
		return false
	}
	if b.cs != other.cs || b.style != other.style {
		return false
	}
	if (b.saved == nil) != (other.saved == nil) {
		return false
	}
	if b.saved != nil && *b.saved != *other.saved {
		return false
	}
	for r := range b.grid {
		for c := range b.grid[r] {
			if b.grid[r][c] != other.grid[r][c] {
				return false
			}
		}
	}
	for i := range b.tabs {
		if b.tabs[i] != other.tabs[i] {
			return false
		}
	}
	return true
}
