// Package paint renders a vt.Buffer onto an io.Writer, converting the
// buffer's logical colors and attributes through a termenv profile.
// Color capability is the caller's decision, passed in as the
// profile; the buffer itself stays capability-agnostic.
package paint

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/vtbuf/vtbuf/vt"
)

// Screen writes every buffer row to w, one line each, styling cells
// per the profile. Trailing unstyled blanks on each row are trimmed.
func Screen(w io.Writer, b *vt.Buffer, profile termenv.Profile) error {
	rows, _ := b.Size()
	for r := 0; r < rows; r++ {
		if _, err := io.WriteString(w, Row(b, vt.RowIndex(r), profile)+"\n"); err != nil {
			return fmt.Errorf("couldn't paint row %d: %w", r, err)
		}
	}
	return nil
}

// Row renders a single row as styled text.
func Row(b *vt.Buffer, row vt.RowIndex, profile termenv.Profile) string {
	_, cols := b.Size()

	var sb strings.Builder
	pendingBlanks := 0 // unstyled blanks held back until something follows

	for c := 0; c < cols; c++ {
		cell := b.Cell(row, vt.ColIndex(c))
		switch {
		case cell.Kind() == vt.CellVoid:
			// Continuation half of a wide glyph.
		case cell.Kind() == vt.CellBlank && cell.Style() == (vt.Style{}):
			pendingBlanks++
		default:
			sb.WriteString(strings.Repeat(" ", pendingBlanks))
			pendingBlanks = 0
			sb.WriteString(renderCell(cell, profile))
		}
	}

	return sb.String()
}

func renderCell(c vt.Cell, profile termenv.Profile) string {
	s := c.Style()

	text := string(c.Rune())
	if s.Invisible() {
		text = " "
	}

	out := profile.String(text)
	if col := convertColor(s.Foreground(), false, profile); col != nil {
		out = out.Foreground(col)
	}
	if col := convertColor(s.Background(), true, profile); col != nil {
		out = out.Background(col)
	}
	if s.Bold() {
		out = out.Bold()
	}
	if s.Faint() {
		out = out.Faint()
	}
	if s.Italic() {
		out = out.Italic()
	}
	if s.Underline() {
		out = out.Underline()
	}
	if s.Blink() {
		out = out.Blink()
	}
	if s.Reversed() {
		out = out.Reverse()
	}
	if s.Strikeout() {
		out = out.CrossOut()
	}
	return out.String()
}

// convertColor maps a logical vt color onto what the profile can
// show. Default colors come back nil, meaning "leave the terminal's
// own color alone".
func convertColor(c vt.Color, background bool, profile termenv.Profile) termenv.Color {
	if c.IsDefault() {
		return nil
	}
	if code, ok := c.Basic(); ok {
		col := basicANSI(code, background)
		if col == nil {
			return nil
		}
		return profile.Convert(col)
	}
	if n, ok := c.ANSI256(); ok {
		return profile.Convert(termenv.ANSI256Color(n))
	}
	if r, g, b, ok := c.RGB(); ok {
		return profile.Convert(termenv.RGBColor(fmt.Sprintf("#%02x%02x%02x", r, g, b)))
	}
	return nil
}

// basicANSI translates a raw SGR color code into termenv's 16-color
// space. SGR 39/49 (explicit defaults) come back nil.
func basicANSI(code int, background bool) termenv.Color {
	if background {
		code -= 10
	}

	switch {
	case code >= vt.FG_BLACK && code <= vt.FG_WHITE:
		return termenv.ANSIColor(code - vt.FG_BLACK)
	case code >= vt.FG_BRIGHT_BLACK && code <= vt.FG_BRIGHT_WHITE:
		return termenv.ANSIColor(code - vt.FG_BRIGHT_BLACK + 8)
	}
	return nil
}
