package vt

import (
	"log/slog"
	"unicode/utf8"
)

// MAX_OSC_BYTES caps how much of an OSC payload we retain. Anything
// past the cap is consumed but dropped, so a hostile stream can't
// grow the parser without bound.
const MAX_OSC_BYTES = 4096

type parseState uint8

const (
	stateGround parseState = iota
	stateEscape
	stateCSI
	stateOSC
	stateOSCEsc
	stateStringIgnore // DCS/SOS/PM/APC payloads, consumed and dropped
	stateStringIgnoreEsc
	stateCharsetG0
	stateCharsetG1
)

// Parser is the byte-stream state machine that turns wire bytes into
// buffer mutations and side-channel events. It is resumable: escape
// sequence state carries across Parse calls, so callers may feed
// bytes in arbitrary chunks. Like the Buffer it drives, a Parser has
// one logical owner and takes no locks.
type Parser struct {
	state    parseState
	params   *parameters
	marker   byte // leading private marker: '?', '>', '<' or '='
	ignore   bool // sequence recognized as malformed; consume and drop
	midParam bool
	osc      []byte
}

func NewParser() *Parser {
	return &Parser{
		params: newParams(),
		osc:    make([]byte, 0, 64),
	}
}

// Parse consumes data, mutating b and collecting events. It returns
// how many bytes were consumed: all of them, except that a trailing
// incomplete UTF-8 encoding is left for the caller to re-feed once
// the rest of it arrives. Malformed sequences are consumed and
// dropped without touching the buffer.
func (p *Parser) Parse(b *Buffer, data []byte) (int, []Event) {
	var events []Event

	i := 0
	for i < len(data) {
		c := data[i]

		if p.state == stateGround && c >= 0x20 && c != 0x7f {
			if c < utf8.RuneSelf {
				b.Print(rune(c))
				i++
				continue
			}

			r, sz := utf8.DecodeRune(data[i:])
			if r == utf8.RuneError && sz == 1 {
				if !utf8.FullRune(data[i:]) {
					// Truncated rune at the end of the
					// chunk; hand it back.
					return i, events
				}
				// Not valid UTF-8 at all. Take the byte
				// as latin-1 rather than derailing.
				r = rune(c)
			}
			b.Print(r)
			i += sz
			continue
		}

		events = p.step(b, c, events)
		i++
	}

	return len(data), events
}

// step advances the state machine by one non-printing (or
// mid-sequence) byte.
func (p *Parser) step(b *Buffer, c byte, events []Event) []Event {
	switch p.state {
	case stateGround:
		return p.execute(b, c, events)

	case stateEscape:
		return p.escByte(b, c, events)

	case stateCSI:
		return p.csiByte(b, c, events)

	case stateOSC:
		switch c {
		case CTRL_BEL:
			p.state = stateGround
			return p.oscEnd(events)
		case ESC:
			p.state = stateOSCEsc
		default:
			if len(p.osc) < MAX_OSC_BYTES {
				p.osc = append(p.osc, c)
			}
		}

	case stateOSCEsc:
		if c == ESC_ST {
			p.state = stateGround
			return p.oscEnd(events)
		}
		// Not a string terminator: the OSC was abandoned
		// mid-stream. Drop it and reprocess the byte as a
		// fresh escape.
		slog.Debug("discarding unterminated OSC", "data", string(p.osc))
		p.state = stateEscape
		return p.step(b, c, events)

	case stateStringIgnore:
		switch c {
		case CTRL_BEL:
			p.state = stateGround
		case ESC:
			p.state = stateStringIgnoreEsc
		}

	case stateStringIgnoreEsc:
		if c == ESC_ST {
			p.state = stateGround
		} else {
			p.state = stateEscape
			return p.step(b, c, events)
		}

	case stateCharsetG0, stateCharsetG1:
		slot := 0
		if p.state == stateCharsetG1 {
			slot = 1
		}
		op := OpSelectASCII
		if c == '0' {
			op = OpSelectDECGraphics
		}
		p.state = stateGround
		return append(events, b.Apply(Command{Op: op, N: slot})...)
	}

	return events
}

// execute handles C0 control bytes. They act even in the middle of a
// CSI sequence, mirroring real terminals.
func (p *Parser) execute(b *Buffer, c byte, events []Event) []Event {
	switch c {
	case ESC:
		p.state = stateEscape
	case CTRL_BEL:
		events = append(events, Event{Kind: EventBell})
	case CTRL_BS:
		b.backspace()
	case CTRL_TAB:
		b.stepTabs(1)
	case CTRL_LF, CTRL_VT, CTRL_FF:
		// libvte treats these all as line feeds, so we do too.
		b.lineFeed()
	case CTRL_CR:
		b.carriageReturn()
	case CTRL_SO:
		b.cs.shiftOut()
	case CTRL_SI:
		b.cs.shiftIn()
	default:
		slog.Debug("ignoring control byte", "byte", c)
	}
	return events
}

func (p *Parser) escByte(b *Buffer, c byte, events []Event) []Event {
	p.state = stateGround

	switch c {
	case ESC_CSI:
		p.state = stateCSI
		p.params.reset()
		p.marker = 0
		p.ignore = false
		p.midParam = false
	case ESC_OSC:
		p.state = stateOSC
		p.osc = p.osc[:0]
	case ESC_DCS, 'X', '^', '_': // DCS, SOS, PM, APC
		p.state = stateStringIgnore
	case ESC_G0:
		p.state = stateCharsetG0
	case ESC_G1:
		p.state = stateCharsetG1
	case ESC_DECSC:
		return append(events, b.Apply(Command{Op: OpSaveCursor})...)
	case ESC_DECRC:
		return append(events, b.Apply(Command{Op: OpRestoreCursor})...)
	case ESC_IND:
		return append(events, b.Apply(Command{Op: OpIndex})...)
	case ESC_RI:
		return append(events, b.Apply(Command{Op: OpReverseIndex})...)
	case ESC_NEL:
		return append(events, b.Apply(Command{Op: OpNextLine})...)
	case ESC_HTS:
		return append(events, b.Apply(Command{Op: OpTabSet})...)
	case ESC_RIS:
		return append(events, b.Apply(Command{Op: OpReset})...)
	case ESC_ST:
		// Stray terminator; nothing to do.
	case '=', '>':
		// Keypad application/numeric mode; swallowed.
	default:
		slog.Debug("ignoring ESC final", "byte", string(rune(c)))
	}

	return events
}

func (p *Parser) csiByte(b *Buffer, c byte, events []Event) []Event {
	switch {
	case c >= '0' && c <= '9':
		d := int(c - '0')
		if !p.midParam {
			p.params.addItem(d)
			p.midParam = true
		} else {
			p.params.alterItem(p.params.lastItem()*10 + d)
		}
	case c == ';' || c == ':':
		if !p.midParam {
			p.params.addItem(0)
		}
		p.params.addItem(0)
		p.midParam = true
	case c >= 0x3c && c <= 0x3f: // '<' '=' '>' '?'
		if p.params.numItems() == 0 && p.marker == 0 {
			p.marker = c
		} else {
			p.ignore = true
		}
	case c >= 0x20 && c <= 0x2f:
		// Intermediate bytes select sequence variants we don't
		// implement; consume through the final and drop.
		p.ignore = true
	case c >= 0x40 && c <= 0x7e:
		p.state = stateGround
		if p.ignore {
			slog.Debug("discarding CSI with unsupported intermediates", "final", string(rune(c)))
			return events
		}
		return p.csiDispatch(b, c, events)
	case c == CTRL_CAN || c == CTRL_SUB:
		p.state = stateGround
	case c == ESC:
		p.state = stateEscape
	case c < 0x20:
		return p.execute(b, c, events)
	default:
		// DEL inside a sequence is ignored.
	}

	return events
}

// csiDispatch translates a completed CSI sequence into a structured
// command and applies it.
func (p *Parser) csiDispatch(b *Buffer, final byte, events []Event) []Event {
	private := p.marker == '?'

	p0 := func(def int) int {
		n, _ := p.params.getItem(0, def)
		return n
	}
	p1 := func(def int) int {
		n, _ := p.params.getItem(1, def)
		return n
	}

	apply := func(cmd Command) []Event {
		return append(events, b.Apply(cmd)...)
	}

	switch final {
	case CSI_ICH:
		return apply(Command{Op: OpInsertChars, N: p0(0)})
	case CSI_CUU:
		return apply(Command{Op: OpCursorUp, N: p0(0)})
	case CSI_CUD:
		return apply(Command{Op: OpCursorDown, N: p0(0)})
	case CSI_CUF:
		return apply(Command{Op: OpCursorForward, N: p0(0)})
	case CSI_CUB:
		return apply(Command{Op: OpCursorBackward, N: p0(0)})
	case CSI_CNL:
		return apply(Command{Op: OpCursorNextLine, N: p0(0)})
	case CSI_CPL:
		return apply(Command{Op: OpCursorPrevLine, N: p0(0)})
	case CSI_CHA, CSI_HPA:
		return apply(Command{Op: OpCursorToColumn, N: p0(0)})
	case CSI_CUP, CSI_HVP:
		return apply(Command{Op: OpCursorToPosition, N: p0(0), M: p1(0)})
	case CSI_CHT:
		return apply(Command{Op: OpTabForward, N: p0(0)})
	case CSI_CBT:
		return apply(Command{Op: OpTabBackward, N: p0(0)})
	case CSI_TBC:
		return apply(Command{Op: OpTabClear, N: p0(0)})
	case CSI_ED:
		return apply(Command{Op: OpEraseDisplay, N: p0(0)})
	case CSI_EL:
		return apply(Command{Op: OpEraseLine, N: p0(0)})
	case CSI_IL:
		return apply(Command{Op: OpInsertLines, N: p0(0)})
	case CSI_DL:
		return apply(Command{Op: OpDeleteLines, N: p0(0)})
	case CSI_DCH:
		return apply(Command{Op: OpDeleteChars, N: p0(0)})
	case CSI_ECH:
		return apply(Command{Op: OpEraseChars, N: p0(0)})
	case CSI_SU:
		return apply(Command{Op: OpScrollUp, N: p0(0)})
	case CSI_SD:
		return apply(Command{Op: OpScrollDown, N: p0(0)})
	case CSI_VPA:
		return apply(Command{Op: OpCursorToRow, N: p0(0)})
	case CSI_SM, CSI_RM:
		op := OpSetMode
		if final == CSI_RM {
			op = OpResetMode
		}
		// One CSI h/l can carry several modes.
		for {
			code, ok := p.params.consumeItem()
			if !ok {
				break
			}
			events = append(events, b.Apply(Command{Op: op, N: code, Private: private})...)
		}
		return events
	case CSI_SGR:
		if p.marker != 0 {
			slog.Debug("swallowing marked SGR variant", "marker", string(rune(p.marker)))
			return events
		}
		return apply(Command{Op: OpSetStyle, Params: p.params.snapshot()})
	case CSI_DSR:
		if p.marker != 0 && !private {
			slog.Debug("swallowing marked DSR variant", "marker", string(rune(p.marker)))
			return events
		}
		return apply(Command{Op: OpDeviceStatus, N: p0(0), Private: private})
	case CSI_DA:
		if p.marker != 0 {
			// Secondary/tertiary attribute requests.
			slog.Debug("swallowing non-primary device attributes request")
			return events
		}
		return apply(Command{Op: OpDeviceAttributes})
	case CSI_DECSTBM:
		return apply(Command{Op: OpSetScrollRegion, N: p0(0), M: p1(0)})
	case CSI_SCOSC:
		if p.params.numItems() == 0 {
			return apply(Command{Op: OpSaveCursor})
		}
		// With parameters this is DECSLRM; unsupported.
		slog.Debug("swallowing DECSLRM")
		return events
	case CSI_SCORC:
		return apply(Command{Op: OpRestoreCursor})
	}

	slog.Debug("unimplemented CSI", "final", string(rune(final)), "params", p.params.items)
	return events
}

func (p *Parser) oscEnd(events []Event) []Event {
	if len(p.osc) == 0 {
		return events
	}
	ev := Event{Kind: EventOSC, Data: string(p.osc)}
	p.osc = p.osc[:0]
	return append(events, ev)
}
