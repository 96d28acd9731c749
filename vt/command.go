package vt

import (
	"fmt"
	"log/slog"
)

// Op enumerates the structured commands the wire protocol can carry.
// The set is closed: the protocol's final bytes are fixed, so a
// tagged variant plus one exhaustive switch replaces open-ended
// callback dispatch.
type Op uint8

const (
	OpNone Op = iota
	OpCursorUp
	OpCursorDown
	OpCursorForward
	OpCursorBackward
	OpCursorNextLine
	OpCursorPrevLine
	OpCursorToColumn
	OpCursorToRow
	OpCursorToPosition
	OpInsertChars
	OpDeleteChars
	OpEraseChars
	OpInsertLines
	OpDeleteLines
	OpScrollUp
	OpScrollDown
	OpEraseLine
	OpEraseDisplay
	OpSetScrollRegion
	OpResetScrollRegion
	OpSetMode
	OpResetMode
	OpSetStyle
	OpSaveCursor
	OpRestoreCursor
	OpIndex
	OpReverseIndex
	OpNextLine
	OpSelectASCII
	OpSelectDECGraphics
	OpReset
	OpDeviceStatus
	OpDeviceAttributes
	OpTabSet
	OpTabClear
	OpTabForward
	OpTabBackward
)

// Command is one structured protocol command. N and M hold raw wire
// values: for counts 0 means "absent, default 1"; for positions they
// are 1-based. Private marks `?`-prefixed modes. Params carries the
// raw SGR list for OpSetStyle and the slot (0=G0, 1=G1) rides in N
// for the charset ops.
type Command struct {
	Op      Op
	N, M    int
	Private bool
	Params  []int
}

func (c Command) String() string {
	return fmt.Sprintf("op=%d n=%d m=%d priv=%t params=%v", c.Op, c.N, c.M, c.Private, c.Params)
}

// Apply mutates the buffer per cmd and returns any side-channel
// events (DSR replies and the like). Unknown or unsupported commands
// are logged and ignored; nothing here returns an error or panics.
func (b *Buffer) Apply(cmd Command) []Event {
	switch cmd.Op {
	case OpCursorUp:
		b.CursorUp(cmd.N)
	case OpCursorDown:
		b.CursorDown(cmd.N)
	case OpCursorForward:
		b.CursorForward(cmd.N)
	case OpCursorBackward:
		b.CursorBackward(cmd.N)
	case OpCursorNextLine:
		b.CursorNextLine(cmd.N)
	case OpCursorPrevLine:
		b.CursorPrevLine(cmd.N)
	case OpCursorToColumn:
		b.CursorToColumn(WireCol(cmd.N))
	case OpCursorToRow:
		b.CursorToRow(WireRow(cmd.N))
	case OpCursorToPosition:
		b.CursorToPosition(WireRow(cmd.N), WireCol(cmd.M))
	case OpInsertChars:
		b.InsertChars(cmd.N)
	case OpDeleteChars:
		b.DeleteChars(cmd.N)
	case OpEraseChars:
		b.EraseChars(cmd.N)
	case OpInsertLines:
		b.InsertLines(cmd.N)
	case OpDeleteLines:
		b.DeleteLines(cmd.N)
	case OpScrollUp:
		b.ScrollUp(cmd.N)
	case OpScrollDown:
		b.ScrollDown(cmd.N)
	case OpEraseLine:
		b.eraseLine(cmd.N)
	case OpEraseDisplay:
		b.eraseDisplay(cmd.N)
	case OpSetScrollRegion:
		bottom := cmd.M
		if bottom < 1 {
			bottom = b.rows
		}
		b.SetScrollRegion(WireRow(cmd.N), TermRow(bottom))
	case OpResetScrollRegion:
		b.ResetScrollRegion()
	case OpSetMode, OpResetMode:
		b.setMode(cmd.N, cmd.Private, cmd.Op == OpSetMode)
	case OpSetStyle:
		b.style = applySGR(b.style, paramsFromInts(cmd.Params))
	case OpSaveCursor:
		b.SaveCursor()
	case OpRestoreCursor:
		b.RestoreCursor()
	case OpIndex:
		b.IndexDown()
	case OpReverseIndex:
		b.ReverseIndex()
	case OpNextLine:
		b.NextLine()
	case OpSelectASCII:
		b.cs.designate(cmd.N, 'B')
	case OpSelectDECGraphics:
		b.cs.designate(cmd.N, '0')
	case OpReset:
		b.Reset()
	case OpDeviceStatus:
		return b.deviceStatus(cmd.N, cmd.Private)
	case OpDeviceAttributes:
		// Identify as a vt220.
		return []Event{{Kind: EventResponse, Data: fmt.Sprintf("%c%c?62%c", ESC, ESC_CSI, CSI_DA)}}
	case OpTabSet:
		b.setTabStop()
	case OpTabClear:
		b.clearTabStops(cmd.N)
	case OpTabForward:
		b.stepTabs(count(cmd.N))
	case OpTabBackward:
		b.stepTabs(-count(cmd.N))
	default:
		slog.Debug("unhandled command", "cmd", cmd)
	}

	return nil
}

// eraseLine dispatches the CSI K selector. The cursor cell is always
// included and the cursor does not move.
func (b *Buffer) eraseLine(selector int) {
	switch selector {
	case ERASE_TO_END:
		b.ClearToEndOfLine()
	case ERASE_TO_START:
		b.ClearToStartOfLine()
	case ERASE_ALL:
		b.ClearLine()
	default:
		slog.Debug("unhandled erase-in-line selector", "selector", selector)
	}
}

// eraseDisplay dispatches the CSI J selector.
func (b *Buffer) eraseDisplay(selector int) {
	switch selector {
	case ERASE_TO_END:
		b.ClearToEndOfDisplay()
	case ERASE_TO_START:
		b.ClearToStartOfDisplay()
	case ERASE_ALL:
		b.ClearDisplay()
	default:
		slog.Debug("unhandled erase-in-display selector", "selector", selector)
	}
}

func (b *Buffer) setMode(code int, private, on bool) {
	if !private {
		// ANSI modes (IRM, LNM, ...) parse cleanly but have no
		// behavior here.
		slog.Debug("swallowing ansi mode", "code", code, "on", on)
		return
	}

	switch code {
	case PRIV_DECAWM:
		b.SetAutoWrap(on)
	case PRIV_DECTCEM:
		b.SetCursorVisible(on)
	case PRIV_DECCKM, PRIV_DECCOLM, PRIV_DECOM, PRIV_BLINK_CURSOR,
		PRIV_MOUSE_XY, PRIV_MOUSE_MOTION, PRIV_MOUSE_ALL, PRIV_MOUSE_FOCUS,
		PRIV_MOUSE_SGR, PRIV_ALT_SCREEN, PRIV_BRACKET_PASTE:
		// Recognized, deliberately inert.
		slog.Debug("swallowing private mode", "code", code, "on", on)
	default:
		slog.Debug("unimplemented private mode", "code", code, "on", on)
	}
}

func (b *Buffer) deviceStatus(n int, private bool) []Event {
	prefix := ""
	if private {
		prefix = "?"
	}

	switch n {
	case DSR_STATUS:
		return []Event{{Kind: EventResponse, Data: fmt.Sprintf("%c%c%s0%c", ESC, ESC_CSI, prefix, CSI_DSR)}}
	case DSR_CURSOR:
		return []Event{{
			Kind: EventResponse,
			Data: fmt.Sprintf("%c%c%s%d;%dR", ESC, ESC_CSI, prefix, b.cur.row.Wire(), b.cur.col.Wire()),
		}}
	}

	slog.Debug("swallowing device status request", "n", n, "private", private)
	return nil
}
