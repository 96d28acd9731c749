package vt

import "fmt"

type CellKind uint8

const (
	// CellVoid is never painted. It stands in for out-of-bounds
	// lookups and for the continuation half of a wide glyph.
	CellVoid CellKind = iota
	// CellBlank is explicitly empty but paintable; the grid
	// default.
	CellBlank
	// CellText holds one displayed rune plus the style captured
	// when it was printed.
	CellText
)

// Cell is one position in the grid. The style is a value copy taken
// at print time; later pen changes never alter existing cells.
type Cell struct {
	kind  CellKind
	r     rune
	style Style
}

func voidCell() Cell {
	return Cell{kind: CellVoid}
}

func blankCell() Cell {
	return Cell{kind: CellBlank}
}

func textCell(r rune, s Style) Cell {
	return Cell{kind: CellText, r: r, style: s}
}

func (c Cell) Kind() CellKind {
	return c.kind
}

// Rune returns the displayed character. Blank and void cells report a
// space so callers can treat a row as printable text.
func (c Cell) Rune() rune {
	if c.kind != CellText {
		return ' '
	}
	return c.r
}

func (c Cell) Style() Style {
	return c.style
}

func (c Cell) String() string {
	switch c.kind {
	case CellVoid:
		return "void"
	case CellBlank:
		return "blank"
	}
	return fmt.Sprintf("%q (%s)", string(c.r), c.style)
}
