package vt

import (
	"fmt"
	"log/slog"
)

const (
	attrBold = 1 << iota
	attrFaint
	attrItalic
	attrUnderline
	attrBlink
	attrReversed
	attrInvisible
	attrStrikeout
)

// Style is the pen state applied to printed cells: foreground,
// background and an attribute bitmap. It is a plain value; a cell
// captures a copy at print time and later pen changes never reach
// back into the grid. The zero value is the default rendition.
type Style struct {
	fg, bg Color
	attrs  uint16
}

func (s Style) Foreground() Color { return s.fg }
func (s Style) Background() Color { return s.bg }
func (s Style) Bold() bool        { return s.attrIsSet(attrBold) }
func (s Style) Faint() bool       { return s.attrIsSet(attrFaint) }
func (s Style) Italic() bool      { return s.attrIsSet(attrItalic) }
func (s Style) Underline() bool   { return s.attrIsSet(attrUnderline) }
func (s Style) Blink() bool       { return s.attrIsSet(attrBlink) }
func (s Style) Reversed() bool    { return s.attrIsSet(attrReversed) }
func (s Style) Invisible() bool   { return s.attrIsSet(attrInvisible) }
func (s Style) Strikeout() bool   { return s.attrIsSet(attrStrikeout) }

func (s *Style) setAttr(attr uint16, val bool) {
	if val {
		s.attrs |= attr
	} else {
		s.attrs &^= attr
	}
}

func (s Style) attrIsSet(attr uint16) bool {
	return (s.attrs & attr) != 0
}

func (s Style) String() string {
	return fmt.Sprintf("fg: %s; bg: %s; attrs: %#x", s.fg, s.bg, s.attrs)
}

// applySGR folds a CSI m parameter list into the current pen. An
// empty parameter list means reset, per convention.
func applySGR(cur Style, params *parameters) Style {
	if params.numItems() == 0 {
		return Style{}
	}

	s := cur
	for {
		item, ok := params.consumeItem()
		if !ok {
			break
		}

		switch {
		case item == SGR_RESET:
			s = Style{}
		case item == SGR_INTENSITY_BOLD:
			s.setAttr(attrBold, true)
		case item == SGR_INTENSITY_FAINT:
			s.setAttr(attrFaint, true)
		case item == SGR_INTENSITY_NORMAL:
			s.setAttr(attrBold|attrFaint, false)
		case item == SGR_ITALIC_ON || item == SGR_ITALIC_OFF:
			s.setAttr(attrItalic, item < 10)
		case item == SGR_UNDERLINE_ON || item == SGR_UNDERLINE_OFF:
			s.setAttr(attrUnderline, item < 10)
		case item == SGR_BLINK_ON || item == SGR_RAPID_BLINK_ON || item == SGR_BLINK_OFF:
			s.setAttr(attrBlink, item < 10)
		case item == SGR_REVERSED_ON || item == SGR_REVERSED_OFF:
			s.setAttr(attrReversed, item < 10)
		case item == SGR_INVISIBLE_ON || item == SGR_INVISIBLE_OFF:
			s.setAttr(attrInvisible, item < 10)
		case item == SGR_STRIKEOUT_ON || item == SGR_STRIKEOUT_OFF:
			s.setAttr(attrStrikeout, item < 10)
		case item == FG_DEF:
			s.fg = Color{}
		case item == BG_DEF:
			s.bg = Color{}
		case (item >= FG_BLACK && item <= FG_WHITE) || (item >= FG_BRIGHT_BLACK && item <= FG_BRIGHT_WHITE):
			s.fg = basicColor(item)
		case item == SET_FG:
			s.fg = colorFromParams(params, s.fg)
		case (item >= BG_BLACK && item <= BG_WHITE) || (item >= BG_BRIGHT_BLACK && item <= BG_BRIGHT_WHITE):
			s.bg = basicColor(item)
		case item == SET_BG:
			s.bg = colorFromParams(params, s.bg)
		default:
			slog.Debug("unimplemented SGR parameter", "param", item)
		}
	}

	return s
}
