package vt

import (
	"fmt"
	"log/slog"
)

type colorKind uint8

const (
	colorNone colorKind = iota // terminal default
	colorBasic
	colorANSI256
	colorRGB
)

// Color is a logical SGR color. It stores what the wire said, not a
// resolved capability; mapping onto what a real terminal can show is
// the painter's problem. The zero value is the terminal default.
type Color struct {
	kind    colorKind
	code    uint8 // basic SGR code or 256-color index
	g, b    uint8
}

func basicColor(code int) Color {
	return Color{kind: colorBasic, code: uint8(code)}
}

func ansi256Color(n int) Color {
	if n < 0 || n > 255 {
		slog.Debug("256-color index out of range", "n", n)
		n = 0
	}
	return Color{kind: colorANSI256, code: uint8(n)}
}

func rgbColor(r, g, b int) Color {
	clamp := func(v int) uint8 {
		if v < 0 {
			return 0
		}
		if v > 255 {
			return 255
		}
		return uint8(v)
	}
	return Color{kind: colorRGB, code: clamp(r), g: clamp(g), b: clamp(b)}
}

// IsDefault reports whether the color is the terminal default.
func (c Color) IsDefault() bool {
	return c.kind == colorNone
}

// Basic returns the raw SGR code (30-37, 39, 40-49, 90-97, 100-107)
// for a basic color.
func (c Color) Basic() (int, bool) {
	return int(c.code), c.kind == colorBasic
}

// ANSI256 returns the palette index for a 256-color value.
func (c Color) ANSI256() (int, bool) {
	return int(c.code), c.kind == colorANSI256
}

// RGB returns the components of a truecolor value.
func (c Color) RGB() (r, g, b int, ok bool) {
	return int(c.code), int(c.g), int(c.b), c.kind == colorRGB
}

func (c Color) String() string {
	switch c.kind {
	case colorBasic:
		return fmt.Sprintf("basic(%d)", c.code)
	case colorANSI256:
		return fmt.Sprintf("256(%d)", c.code)
	case colorRGB:
		return fmt.Sprintf("rgb(%d,%d,%d)", c.code, c.g, c.b)
	}
	return "default"
}

// colorFromParams interprets the extended color forms that follow a
// SET_FG/SET_BG parameter: "5;n" selects from the 256-color palette,
// "2;r;g;b" is truecolor. The selector and its arguments are consumed
// from params. On malformed input it returns def.
func colorFromParams(params *parameters, def Color) Color {
	cm, ok := params.consumeItem()
	if !ok {
		slog.Debug("extended color with no selector")
		return def
	}

	switch cm {
	case 2:
		cols := []int{0, 0, 0}
		for i := 0; i < len(cols); i++ {
			cols[i], ok = params.consumeItem()
			if !ok {
				break
			}
		}
		return rgbColor(cols[0], cols[1], cols[2])
	case 5:
		item, ok := params.consumeItem()
		if !ok {
			return ansi256Color(0)
		}
		return ansi256Color(item)
	}

	slog.Debug("invalid extended color selector", "selector", cm)
	return def
}
