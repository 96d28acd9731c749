package vt

// Character set handling. We support ESC {(,)} {B,0}: G0/G1 slots
// each designated as US ASCII or DEC special line drawing, with SI/SO
// toggling which slot is active.

type charsetID uint8

const (
	csASCII charsetID = iota
	csDECGraphics
)

type charset struct {
	active uint8 // index into g, toggled by shift in/out
	g      [2]charsetID
}

func (c charset) runeFor(r rune) rune {
	if c.g[c.active] == csDECGraphics {
		if rr, ok := acs[r]; ok {
			return rr
		}
	}
	return r
}

func (c charset) decGraphics() bool {
	return c.g[c.active] == csDECGraphics
}

func (c *charset) shiftIn() {
	c.active = 0
}

func (c *charset) shiftOut() {
	c.active = 1
}

// designate assigns a set to slot 0 (G0) or 1 (G1). Per the wire
// protocol, '0' selects DEC graphics and anything else falls back to
// ASCII.
func (c *charset) designate(slot int, final rune) {
	if slot != 0 && slot != 1 {
		return
	}
	id := csASCII
	if final == '0' {
		id = csDECGraphics
	}
	c.g[slot] = id
}

// acs maps the DEC special graphics bytes onto their unicode glyphs.
// Bytes without an entry pass through unchanged.
var acs = map[rune]rune{
	'+': '→',
	',': '←',
	'-': '↑',
	'.': '↓',
	'0': '▮',
	'`': '◆',
	'a': '▒',
	'b': '␉',
	'c': '␌',
	'd': '␍',
	'e': '␊',
	'f': '°',
	'g': '±',
	'h': '␤',
	'i': '␋',
	'j': '┘',
	'k': '┐',
	'l': '┌',
	'm': '└',
	'n': '┼',
	'o': '⎺',
	'p': '⎻',
	'q': '─',
	'r': '⎼',
	's': '⎽',
	't': '├',
	'u': '┤',
	'v': '┴',
	'w': '┬',
	'x': '│',
	'y': '≤',
	'z': '≥',
	'{': 'π',
	'|': '≠',
	'}': '£',
	'~': '·',
}
