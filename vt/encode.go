package vt

import (
	"fmt"
	"log/slog"
	"strings"
)

// Encode renders the command as wire-format escape-sequence text, the
// inverse of parsing. It is pure and stateless; feeding the result
// back through a Parser reproduces the same buffer mutation as
// applying the command directly. Count parameters of 0 or 1 are
// omitted, leaning on the receiver's defaulting, which is how real
// emitters keep sequences short.
func (c Command) Encode() string {
	switch c.Op {
	case OpCursorUp:
		return csiCount(c.N, CSI_CUU)
	case OpCursorDown:
		return csiCount(c.N, CSI_CUD)
	case OpCursorForward:
		return csiCount(c.N, CSI_CUF)
	case OpCursorBackward:
		return csiCount(c.N, CSI_CUB)
	case OpCursorNextLine:
		return csiCount(c.N, CSI_CNL)
	case OpCursorPrevLine:
		return csiCount(c.N, CSI_CPL)
	case OpCursorToColumn:
		return csiCount(c.N, CSI_CHA)
	case OpCursorToRow:
		return csiCount(c.N, CSI_VPA)
	case OpCursorToPosition:
		return csiPair(c.N, c.M, CSI_CUP)
	case OpInsertChars:
		return csiCount(c.N, CSI_ICH)
	case OpDeleteChars:
		return csiCount(c.N, CSI_DCH)
	case OpEraseChars:
		return csiCount(c.N, CSI_ECH)
	case OpInsertLines:
		return csiCount(c.N, CSI_IL)
	case OpDeleteLines:
		return csiCount(c.N, CSI_DL)
	case OpScrollUp:
		return csiCount(c.N, CSI_SU)
	case OpScrollDown:
		return csiCount(c.N, CSI_SD)
	case OpEraseLine:
		return csiSelector(c.N, CSI_EL)
	case OpEraseDisplay:
		return csiSelector(c.N, CSI_ED)
	case OpSetScrollRegion:
		return fmt.Sprintf("%c%c%d;%d%c", ESC, ESC_CSI, c.N, c.M, CSI_DECSTBM)
	case OpResetScrollRegion:
		return fmt.Sprintf("%c%c%c", ESC, ESC_CSI, CSI_DECSTBM)
	case OpSetMode:
		return modeSeq(c.N, c.Private, CSI_SM)
	case OpResetMode:
		return modeSeq(c.N, c.Private, CSI_RM)
	case OpSetStyle:
		return sgrSeq(c.Params)
	case OpSaveCursor:
		return escSeq(ESC_DECSC)
	case OpRestoreCursor:
		return escSeq(ESC_DECRC)
	case OpIndex:
		return escSeq(ESC_IND)
	case OpReverseIndex:
		return escSeq(ESC_RI)
	case OpNextLine:
		return escSeq(ESC_NEL)
	case OpSelectASCII:
		return charsetSeq(c.N, 'B')
	case OpSelectDECGraphics:
		return charsetSeq(c.N, '0')
	case OpReset:
		return escSeq(ESC_RIS)
	case OpDeviceStatus:
		if c.Private {
			return fmt.Sprintf("%c%c?%d%c", ESC, ESC_CSI, c.N, CSI_DSR)
		}
		return fmt.Sprintf("%c%c%d%c", ESC, ESC_CSI, c.N, CSI_DSR)
	case OpDeviceAttributes:
		return fmt.Sprintf("%c%c%c", ESC, ESC_CSI, CSI_DA)
	case OpTabSet:
		return escSeq(ESC_HTS)
	case OpTabClear:
		return csiSelector(c.N, CSI_TBC)
	case OpTabForward:
		return csiCount(c.N, CSI_CHT)
	case OpTabBackward:
		return csiCount(c.N, CSI_CBT)
	}

	slog.Debug("encode of unknown command", "cmd", c)
	return ""
}

func escSeq(final byte) string {
	return fmt.Sprintf("%c%c", ESC, final)
}

// csiCount emits a CSI with a single count parameter, omitted when it
// matches the receiver-side default of 1.
func csiCount(n int, final byte) string {
	if n <= 1 {
		return fmt.Sprintf("%c%c%c", ESC, ESC_CSI, final)
	}
	return fmt.Sprintf("%c%c%d%c", ESC, ESC_CSI, n, final)
}

// csiSelector emits a CSI with a single selector parameter, omitted
// when it is the 0 default.
func csiSelector(n int, final byte) string {
	if n <= 0 {
		return fmt.Sprintf("%c%c%c", ESC, ESC_CSI, final)
	}
	return fmt.Sprintf("%c%c%d%c", ESC, ESC_CSI, n, final)
}

// csiPair emits a CSI with two 1-based position parameters, each
// omitted when 1, so cursor homing comes out as the compact CSI H.
func csiPair(n, m int, final byte) string {
	var sb strings.Builder
	sb.WriteByte(ESC)
	sb.WriteByte(ESC_CSI)
	if n > 1 {
		fmt.Fprintf(&sb, "%d", n)
	}
	sb.WriteByte(';')
	if m > 1 {
		fmt.Fprintf(&sb, "%d", m)
	}
	sb.WriteByte(final)
	return sb.String()
}

func modeSeq(code int, private bool, final byte) string {
	if private {
		return fmt.Sprintf("%c%c?%d%c", ESC, ESC_CSI, code, final)
	}
	return fmt.Sprintf("%c%c%d%c", ESC, ESC_CSI, code, final)
}

func sgrSeq(params []int) string {
	if len(params) == 0 {
		return fmt.Sprintf("%c%c%c", ESC, ESC_CSI, CSI_SGR)
	}

	var sb strings.Builder
	sb.WriteByte(ESC)
	sb.WriteByte(ESC_CSI)
	for i, p := range params {
		if i > 0 {
			sb.WriteByte(';')
		}
		fmt.Fprintf(&sb, "%d", p)
	}
	sb.WriteByte(CSI_SGR)
	return sb.String()
}

func charsetSeq(slot int, set byte) string {
	intro := byte(ESC_G0)
	if slot == 1 {
		intro = ESC_G1
	}
	return fmt.Sprintf("%c%c%c", ESC, intro, set)
}
