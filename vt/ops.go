package vt

import (
	"log/slog"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"
)

// count normalizes a wire repeat parameter: absent (0) or negative
// means 1.
func count(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// Print writes r at the cursor with the current pen and advances. The
// rune is first translated through the active character set. Width-2
// runes occupy a primary cell plus a void continuation cell; width-0
// runes compose onto the previously printed cell. When the column
// would pass the last one: with auto-wrap on the cursor moves to
// column 0 of the next row, scrolling the region if it was already on
// the region's bottom row; with auto-wrap off it stays clamped at the
// last column and the next Print overwrites.
func (b *Buffer) Print(r rune) {
	r = b.cs.runeFor(r)

	w := runewidth.RuneWidth(r)
	if w == 0 {
		b.combine(r)
		return
	}
	if w > b.cols {
		slog.Debug("rune wider than buffer", "r", string(r))
		return
	}

	row, col := b.cur.row, b.cur.col
	if int(col)+w > b.cols {
		// A wide rune with only one column left.
		if b.autoWrap {
			row, col = b.wrapPoint(row)
		} else {
			col = ColIndex(b.cols - w)
		}
	}

	b.writeGlyph(row, col, r, w)
	b.cur.row = row
	b.cur.col = col
	b.advance(w)
}

// wrapPoint computes where the cursor lands after wrapping off the
// end of row, scrolling when the row is the region bottom.
func (b *Buffer) wrapPoint(row RowIndex) (RowIndex, ColIndex) {
	_, bottom := b.scrollBounds()
	if row == bottom {
		b.scrollRegionUp(b.scrollTop(), bottom, 1)
		return row, 0
	}
	return clampRow(row+1, b.rows), 0
}

func (b *Buffer) scrollTop() RowIndex {
	top, _ := b.scrollBounds()
	return top
}

func (b *Buffer) advance(w int) {
	nc := b.cur.col + ColIndex(w)
	if int(nc) < b.cols {
		b.cur.col = nc
		return
	}
	if !b.autoWrap {
		b.cur.col = ColIndex(b.cols - 1)
		return
	}
	b.cur.row, b.cur.col = b.wrapPoint(b.cur.row)
}

// combine folds a zero-width rune onto the most recently printed
// cell via NFC normalization.
func (b *Buffer) combine(r rune) {
	row, col := b.cur.row, b.cur.col
	switch {
	case col > 0:
		col -= 1
	case row > 0:
		row, col = row-1, ColIndex(b.cols-1)
	default:
		slog.Debug("punting on zero-width rune with no predecessor", "r", r)
		return
	}

	c := b.Cell(row, col)
	if c.Kind() != CellText {
		return
	}
	n := []rune(norm.NFC.String(string(c.r) + string(r)))
	c.r = n[0]
	b.setCell(row, col, c)
}

func (b *Buffer) writeGlyph(row RowIndex, col ColIndex, r rune, w int) {
	b.clearWidePair(row, col)
	nc := textCell(r, b.style)
	if w == 2 {
		b.clearWidePair(row, col+1)
		b.setCell(row, col+1, voidCell())
	}
	b.setCell(row, col, nc)
}

// clearWidePair keeps wide glyphs consistent: overwriting either half
// of a primary/continuation pair blanks the partner cell.
func (b *Buffer) clearWidePair(row RowIndex, col ColIndex) {
	c := b.Cell(row, col)
	switch {
	case c.Kind() == CellText && runewidth.RuneWidth(c.r) == 2:
		b.setCell(row, col+1, blankCell())
	case c.Kind() == CellVoid && col > 0:
		if left := b.Cell(row, col-1); left.Kind() == CellText && runewidth.RuneWidth(left.r) == 2 {
			b.setCell(row, col-1, blankCell())
		}
	}
}

func (b *Buffer) moveTo(row RowIndex, col ColIndex) {
	b.cur.row = clampRow(row, b.rows)
	b.cur.col = clampCol(col, b.cols)
}

// CursorUp moves up n rows, stopping at the region top when the
// cursor starts inside the region.
func (b *Buffer) CursorUp(n int) {
	row := b.cur.row
	limit := b.scrollTop()
	if row < limit {
		limit = 0
	}
	row -= RowIndex(count(n))
	if row < limit {
		row = limit
	}
	b.moveTo(row, b.cur.col)
}

// CursorDown moves down n rows, stopping at the region bottom when
// the cursor starts inside the region.
func (b *Buffer) CursorDown(n int) {
	row := b.cur.row
	_, limit := b.scrollBounds()
	if row > limit {
		limit = RowIndex(b.rows - 1)
	}
	row += RowIndex(count(n))
	if row > limit {
		row = limit
	}
	b.moveTo(row, b.cur.col)
}

// CursorForward moves right n columns, clamped at the last column.
func (b *Buffer) CursorForward(n int) {
	b.moveTo(b.cur.row, b.cur.col+ColIndex(count(n)))
}

// CursorBackward moves left n columns, clamped at column 0.
func (b *Buffer) CursorBackward(n int) {
	b.moveTo(b.cur.row, b.cur.col-ColIndex(count(n)))
}

// CursorNextLine moves down n rows to column 0.
func (b *Buffer) CursorNextLine(n int) {
	b.moveTo(b.cur.row+RowIndex(count(n)), 0)
}

// CursorPrevLine moves up n rows to column 0.
func (b *Buffer) CursorPrevLine(n int) {
	b.moveTo(b.cur.row-RowIndex(count(n)), 0)
}

// CursorToPosition moves to an absolute wire position, clamped to the
// full buffer.
func (b *Buffer) CursorToPosition(row TermRow, col TermCol) {
	b.moveTo(row.index(), col.index())
}

// CursorToRow moves to an absolute wire row, keeping the column.
func (b *Buffer) CursorToRow(row TermRow) {
	b.moveTo(row.index(), b.cur.col)
}

// CursorToColumn moves to an absolute wire column, keeping the row.
func (b *Buffer) CursorToColumn(col TermCol) {
	b.moveTo(b.cur.row, col.index())
}

// SaveCursor records the cursor position in the single save slot.
func (b *Buffer) SaveCursor() {
	p := b.cur
	b.saved = &p
}

// RestoreCursor returns to the saved position. A restore with no
// prior save is a no-op.
func (b *Buffer) RestoreCursor() {
	if b.saved == nil {
		return
	}
	b.moveTo(b.saved.row, b.saved.col)
}

// IndexDown (ESC D) moves the cursor down one row, scrolling the
// region up when the cursor sits on the region's bottom row.
func (b *Buffer) IndexDown() {
	_, bottom := b.scrollBounds()
	if b.cur.row == bottom {
		b.scrollRegionUp(b.scrollTop(), bottom, 1)
		return
	}
	b.moveTo(b.cur.row+1, b.cur.col)
}

// ReverseIndex (ESC M) moves the cursor up one row, scrolling the
// region down when the cursor sits on the region's top row.
func (b *Buffer) ReverseIndex() {
	top, bottom := b.scrollBounds()
	if b.cur.row == top {
		b.scrollRegionDown(top, bottom, 1)
		return
	}
	b.moveTo(b.cur.row-1, b.cur.col)
}

// NextLine (ESC E) is an index plus carriage return.
func (b *Buffer) NextLine() {
	b.IndexDown()
	b.carriageReturn()
}

// ScrollUp shifts the scroll region's content up n lines, introducing
// blanks at the bottom. The cursor does not move.
func (b *Buffer) ScrollUp(n int) {
	top, bottom := b.scrollBounds()
	b.scrollRegionUp(top, bottom, count(n))
}

// ScrollDown shifts the scroll region's content down n lines,
// introducing blanks at the top. The cursor does not move.
func (b *Buffer) ScrollDown(n int) {
	top, bottom := b.scrollBounds()
	b.scrollRegionDown(top, bottom, count(n))
}

func (b *Buffer) scrollRegionUp(top, bottom RowIndex, n int) {
	if span := int(bottom-top) + 1; n > span {
		n = span
	}
	for i := 0; i < n; i++ {
		copy(b.grid[top:bottom], b.grid[top+1:bottom+1])
		b.grid[bottom] = newRow(b.cols)
	}
}

func (b *Buffer) scrollRegionDown(top, bottom RowIndex, n int) {
	if span := int(bottom-top) + 1; n > span {
		n = span
	}
	for i := 0; i < n; i++ {
		copy(b.grid[top+1:bottom+1], b.grid[top:bottom])
		b.grid[top] = newRow(b.cols)
	}
}

// InsertLines shifts the lines from the cursor to the region bottom
// down by n, blanking at the cursor. A no-op when the cursor is
// outside the scroll region; the cursor stays put.
func (b *Buffer) InsertLines(n int) {
	top, bottom := b.scrollBounds()
	if b.cur.row < top || b.cur.row > bottom {
		return
	}
	b.scrollRegionDown(b.cur.row, bottom, count(n))
}

// DeleteLines shifts the lines below the cursor up by n within the
// region, blanking at the region bottom. A no-op when the cursor is
// outside the scroll region; the cursor stays put.
func (b *Buffer) DeleteLines(n int) {
	top, bottom := b.scrollBounds()
	if b.cur.row < top || b.cur.row > bottom {
		return
	}
	b.scrollRegionUp(b.cur.row, bottom, count(n))
}

// InsertChars shifts the current row's cells right by n starting at
// the cursor; cells pushed past the last column are lost and n blanks
// appear at the cursor.
func (b *Buffer) InsertChars(n int) {
	n = count(n)
	col := int(b.cur.col)
	if n > b.cols-col {
		n = b.cols - col
	}
	line := b.grid[b.cur.row]
	copy(line[col+n:], line[col:])
	for i := 0; i < n; i++ {
		line[col+i] = blankCell()
	}
}

// DeleteChars shifts the cells right of the cursor left by n,
// appending n blanks at the end of the line.
func (b *Buffer) DeleteChars(n int) {
	n = count(n)
	col := int(b.cur.col)
	if n > b.cols-col {
		n = b.cols - col
	}
	line := b.grid[b.cur.row]
	copy(line[col:], line[col+n:])
	for i := b.cols - n; i < b.cols; i++ {
		line[i] = blankCell()
	}
}

// EraseChars overwrites n cells starting at the cursor with blanks.
// Nothing shifts.
func (b *Buffer) EraseChars(n int) {
	n = count(n)
	b.resetCells(b.cur.row, b.cur.col, b.cur.col+ColIndex(n-1))
}

// ClearLine blanks the cursor's row. The cursor does not move.
func (b *Buffer) ClearLine() {
	b.resetCells(b.cur.row, 0, ColIndex(b.cols-1))
}

// ClearToEndOfLine blanks from the cursor to the end of the row,
// inclusive.
func (b *Buffer) ClearToEndOfLine() {
	b.resetCells(b.cur.row, b.cur.col, ColIndex(b.cols-1))
}

// ClearToStartOfLine blanks from the start of the row to the cursor,
// inclusive.
func (b *Buffer) ClearToStartOfLine() {
	b.resetCells(b.cur.row, 0, b.cur.col)
}

// ClearDisplay blanks the whole grid. The cursor does not move.
func (b *Buffer) ClearDisplay() {
	b.resetRows(0, RowIndex(b.rows-1))
}

// ClearToEndOfDisplay blanks from the cursor to the end of the
// screen, inclusive.
func (b *Buffer) ClearToEndOfDisplay() {
	b.resetRows(b.cur.row+1, RowIndex(b.rows-1))
	b.ClearToEndOfLine()
}

// ClearToStartOfDisplay blanks from the start of the screen to the
// cursor, inclusive.
func (b *Buffer) ClearToStartOfDisplay() {
	b.resetRows(0, b.cur.row-1)
	b.ClearToStartOfLine()
}

// SetScrollRegion sets the vertical scrolling margins from wire
// coordinates and homes the cursor, per DECSTBM. Requesting the full
// height clears the region. Invalid bounds are ignored, matching
// xterm.
func (b *Buffer) SetScrollRegion(top, bottom TermRow) {
	if int(bottom) > b.rows {
		bottom = TermRow(b.rows)
	}
	if bottom <= top {
		slog.Debug("ignoring invalid scroll region", "top", top, "bottom", bottom)
		return
	}

	if top == 1 && int(bottom) == b.rows {
		b.region = margin{}
	} else {
		b.region = newMargin(top.index(), bottom.index())
	}
	b.moveTo(0, 0)
}

// ResetScrollRegion restores scrolling to the full buffer and homes
// the cursor.
func (b *Buffer) ResetScrollRegion() {
	b.region = margin{}
	b.moveTo(0, 0)
}

// SetAutoWrap toggles DECAWM.
func (b *Buffer) SetAutoWrap(on bool) {
	b.autoWrap = on
}

// SetCursorVisible toggles DECTCEM.
func (b *Buffer) SetCursorVisible(on bool) {
	b.showCursor = on
}

// SelectASCIICharacterSet designates the active charset slot as US
// ASCII.
func (b *Buffer) SelectASCIICharacterSet() {
	b.cs.designate(int(b.cs.active), 'B')
}

// SelectDECGraphicsCharacterSet designates the active charset slot as
// DEC special line drawing.
func (b *Buffer) SelectDECGraphicsCharacterSet() {
	b.cs.designate(int(b.cs.active), '0')
}

// Reset restores the buffer to its initial state at the current
// dimensions, per RIS.
func (b *Buffer) Reset() {
	rows, cols := b.rows, b.cols
	*b = *NewBuffer(rows, cols)
}

func (b *Buffer) carriageReturn() {
	b.cur.col = 0
}

func (b *Buffer) lineFeed() {
	b.IndexDown()
}

func (b *Buffer) backspace() {
	b.moveTo(b.cur.row, b.cur.col-1)
}

func (b *Buffer) setTabStop() {
	b.tabs[b.cur.col] = true
}

func (b *Buffer) clearTabStops(selector int) {
	switch selector {
	case TBC_CUR:
		b.tabs[b.cur.col] = false
	case TBC_ALL:
		for i := range b.tabs {
			b.tabs[i] = false
		}
	default:
		slog.Debug("unhandled tab clear selector", "selector", selector)
	}
}

// stepTabs moves the cursor forward (positive) or backward (negative)
// by that many tab stops, clamping at the row edges.
func (b *Buffer) stepTabs(steps int) {
	if steps == 0 {
		return
	}

	col := int(b.cur.col)
	step := 1
	if steps < 0 {
		step = -1
	}

	for steps != 0 {
		col += step
		if col <= 0 {
			col = 0
			break
		}
		if col >= b.cols-1 {
			col = b.cols - 1
			break
		}
		if b.tabs[col] {
			steps -= step
		}
	}

	b.cur.col = ColIndex(col)
}
