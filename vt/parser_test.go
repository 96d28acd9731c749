package vt

import (
	"fmt"
	"slices"
	"strings"
	"testing"
)

// feed runs a complete byte stream through a fresh parser.
func feed(b *Buffer, s string) []Event {
	p := NewParser()
	_, events := p.Parse(b, []byte(s))
	return events
}

// feedChunks replays the stream in fixed-size pieces, carrying
// unconsumed tail bytes forward the way a real reader would.
func feedChunks(p *Parser, b *Buffer, data []byte, size int) []Event {
	var events []Event
	var pending []byte

	for i := 0; i < len(data); i += size {
		end := minInt(i+size, len(data))
		pending = append(pending, data[i:end]...)
		n, evs := p.Parse(b, pending)
		events = append(events, evs...)
		pending = append([]byte{}, pending[n:]...)
	}

	return events
}

func TestPlainText(t *testing.T) {
	b := NewBuffer(2, 10)
	events := feed(b, "hello")

	if got := rowText(b, 0); got != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
	if len(events) != 0 {
		t.Errorf("got %d events, want none", len(events))
	}
	wantCursor(t, b, 0, 5)
}

func TestCountDefaulting(t *testing.T) {
	cases := []struct {
		input string
		wantR RowIndex
	}{
		{"\x1b[B", 1},
		{"\x1b[0B", 1},
		{"\x1b[1B", 1},
		{"\x1b[5B", 5},
		{"\x1b[12B", 9}, // clamped
	}

	for i, c := range cases {
		b := NewBuffer(10, 10)
		feed(b, c.input)
		if gr, _ := b.Cursor(); gr != c.wantR {
			t.Errorf("%d: got row %d, want %d", i, gr, c.wantR)
		}
	}
}

func TestCursorPositionSequences(t *testing.T) {
	cases := []struct {
		input string
		wantR RowIndex
		wantC ColIndex
	}{
		{"\x1b[H", 0, 0},
		{"\x1b[3;7H", 2, 6},
		{"\x1b[;5H", 0, 4},
		{"\x1b[5;H", 4, 0},
		{"\x1b[99;99H", 9, 9},
		{"\x1b[3;7f", 2, 6}, // HVP is an alias
		{"\x1b[4d", 3, 0},
		{"\x1b[6G", 0, 5},
		{"\x1b[6`", 0, 5},
	}

	for i, c := range cases {
		b := NewBuffer(10, 10)
		feed(b, c.input)
		if gr, gc := b.Cursor(); gr != c.wantR || gc != c.wantC {
			t.Errorf("%d: got (%d,%d), want (%d,%d)", i, gr, gc, c.wantR, c.wantC)
		}
	}
}

func TestControlBytes(t *testing.T) {
	b := NewBuffer(5, 20)
	feed(b, "ab\rc\nd\te")

	// CR returns to column 0 so 'c' stomps 'a'; LF keeps the
	// column; TAB jumps to the next stop.
	if got := rowText(b, 0); got != "cb" {
		t.Errorf("row 0: got %q, want %q", got, "cb")
	}
	if got := rowText(b, 1); got != " d      e" {
		t.Errorf("row 1: got %q, want %q", got, " d      e")
	}
}

func TestVerticalTabAndFormFeed(t *testing.T) {
	b := NewBuffer(5, 10)
	feed(b, "a\vb\fc")

	wantRows(t, b, []string{"a", " b", "  c"})
}

func TestBellEvent(t *testing.T) {
	b := NewBuffer(2, 10)
	events := feed(b, "a\x07b")

	if got := rowText(b, 0); got != "ab" {
		t.Errorf("got %q, want %q", got, "ab")
	}
	want := []Event{{Kind: EventBell}}
	if !slices.Equal(events, want) {
		t.Errorf("got %v, want %v", events, want)
	}
}

func TestOSCEvents(t *testing.T) {
	cases := []struct {
		input string
		want  []Event
	}{
		{"\x1b]2;my title\x07", []Event{{Kind: EventOSC, Data: "2;my title"}}},
		{"\x1b]0;both\x1b\\", []Event{{Kind: EventOSC, Data: "0;both"}}},
		{"\x1b]\x07", nil}, // empty payload, nothing to report
	}

	for i, c := range cases {
		b := NewBuffer(2, 10)
		events := feed(b, c.input)
		if !slices.Equal(events, c.want) {
			t.Errorf("%d: got %v, want %v", i, events, c.want)
		}
		if got := rowText(b, 0); got != "" {
			t.Errorf("%d: OSC payload leaked into the grid: %q", i, got)
		}
	}
}

func TestAbandonedOSC(t *testing.T) {
	// An ESC that doesn't terminate the string abandons it and
	// starts a fresh sequence.
	b := NewBuffer(10, 10)
	events := feed(b, "\x1b]2;part\x1b[3Bx")

	if len(events) != 0 {
		t.Errorf("got %v, want no events", events)
	}
	if gr, gc := b.Cursor(); gr != 3 || gc != 1 {
		t.Errorf("cursor: got (%d,%d), want (3,1)", gr, gc)
	}
	if got := rowText(b, 3); got != "x" {
		t.Errorf("got %q, want %q", got, "x")
	}
}

func TestOSCPayloadCapped(t *testing.T) {
	b := NewBuffer(2, 10)
	events := feed(b, "\x1b]2;"+strings.Repeat("x", MAX_OSC_BYTES*2)+"\x07")

	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if len(events[0].Data) != MAX_OSC_BYTES {
		t.Errorf("got %d bytes, want %d", len(events[0].Data), MAX_OSC_BYTES)
	}
}

func TestIgnoredStrings(t *testing.T) {
	// DCS, SOS, PM and APC payloads are consumed and dropped.
	cases := []string{
		"\x1bP1;2|payload\x1b\\x",
		"\x1bXsos\x07x",
		"\x1b^pm\x1b\\x",
		"\x1b_apc\x1b\\x",
	}

	for i, input := range cases {
		b := NewBuffer(2, 10)
		feed(b, input)
		if got := rowText(b, 0); got != "x" {
			t.Errorf("%d: got %q, want %q", i, got, "x")
		}
	}
}

func TestMalformedSequencesDiscarded(t *testing.T) {
	cases := []string{
		"\x1b[1 q",    // intermediate byte
		"\x1b[>c",     // secondary device attributes
		"\x1b[1?7h",   // marker after parameters
		"\x1b[?5W",    // unsupported final
		"\x1b[2;3s",   // DECSLRM form of CSI s
		"\x1b[?1;9m",  // marked SGR
		"\x1bZ",       // unknown ESC final
	}

	for i, input := range cases {
		b := NewBuffer(10, 10)
		events := feed(b, input)
		if len(events) != 0 {
			t.Errorf("%d: got %v, want no events", i, events)
		}
		if !b.equal(NewBuffer(10, 10)) {
			t.Errorf("%d: malformed input %q mutated the buffer", i, input)
		}
	}
}

func TestCancelAbortsSequence(t *testing.T) {
	b := NewBuffer(10, 10)
	feed(b, "\x1b[3\x18A\x1b[3\x1aB")

	// CAN and SUB kill the pending CSI; the finals print as text.
	if got := rowText(b, 0); got != "AB" {
		t.Errorf("got %q, want %q", got, "AB")
	}
}

func TestControlBytesActInsideCSI(t *testing.T) {
	b := NewBuffer(10, 10)
	feed(b, "\x1b[2\nB")

	// The LF executes mid-sequence, then CSI 2 B still applies.
	wantCursor(t, b, 3, 0)
}

func TestEscRestartsInsideCSI(t *testing.T) {
	b := NewBuffer(10, 10)
	feed(b, "\x1b[5\x1b[2Bx")

	if gr, gc := b.Cursor(); gr != 2 || gc != 1 {
		t.Errorf("cursor: got (%d,%d), want (2,1)", gr, gc)
	}
}

func TestPrivateModeSequences(t *testing.T) {
	b := NewBuffer(4, 4)

	feed(b, "\x1b[?7l")
	if b.AutoWrap() {
		t.Error("DECAWM reset should turn auto-wrap off")
	}
	feed(b, "\x1b[?25l")
	if b.CursorVisible() {
		t.Error("DECTCEM reset should hide the cursor")
	}

	// Several modes in one sequence.
	feed(b, "\x1b[?7;25h")
	if !b.AutoWrap() || !b.CursorVisible() {
		t.Error("combined set should restore both modes")
	}
}

func TestScrollRegionSequences(t *testing.T) {
	b := NewBuffer(10, 10)
	b.moveTo(5, 5)

	feed(b, "\x1b[2;5r")
	if top, bottom, ok := b.ScrollRegion(); !ok || top != 2 || bottom != 5 {
		t.Errorf("got (%d,%d,%t), want (2,5,true)", top, bottom, ok)
	}
	wantCursor(t, b, 0, 0)

	feed(b, "\x1b[r")
	if _, _, ok := b.ScrollRegion(); ok {
		t.Error("CSI r should reset the region")
	}
}

func TestSGRSequences(t *testing.T) {
	b := NewBuffer(2, 20)
	feed(b, "\x1b[1;4;31mx\x1b[my")

	x := b.Cell(0, 0).Style()
	if !x.Bold() || !x.Underline() {
		t.Errorf("got %s, want bold underline", x)
	}
	if code, ok := x.Foreground().Basic(); !ok || code != FG_RED {
		t.Errorf("foreground: got %s", x.Foreground())
	}
	if y := b.Cell(0, 1).Style(); y != (Style{}) {
		t.Errorf("after reset: got %s", y)
	}
}

func TestExtendedColorSequences(t *testing.T) {
	b := NewBuffer(2, 20)
	feed(b, "\x1b[38;5;196ma\x1b[48;2;10;20;30mb")

	a := b.Cell(0, 0).Style()
	if n, ok := a.Foreground().ANSI256(); !ok || n != 196 {
		t.Errorf("got %s, want 256(196)", a.Foreground())
	}

	bb := b.Cell(0, 1).Style()
	if r, g, bl, ok := bb.Background().RGB(); !ok || r != 10 || g != 20 || bl != 30 {
		t.Errorf("got %s, want rgb(10,20,30)", bb.Background())
	}
}

func TestColonSeparatedSGR(t *testing.T) {
	b := NewBuffer(2, 20)
	feed(b, "\x1b[38:5:208mx")

	s := b.Cell(0, 0).Style()
	if n, ok := s.Foreground().ANSI256(); !ok || n != 208 {
		t.Errorf("got %s, want 256(208)", s.Foreground())
	}
}

func TestCharsetSequences(t *testing.T) {
	b := NewBuffer(2, 20)
	feed(b, "\x1b(0lqk\x1b(Bx\x0e\x1b)0j\x0fj")

	// G0 graphics draws the box pieces, ESC ( B restores text, and
	// SO/SI bounce between G1 graphics and G0 ascii.
	if got := rowText(b, 0); got != "┌─┐x┘j" {
		t.Errorf("got %q, want %q", got, "┌─┐x┘j")
	}
}

func TestDeviceStatusRoundTrip(t *testing.T) {
	b := NewBuffer(10, 10)
	b.moveTo(4, 2)
	events := feed(b, "\x1b[6n")

	want := []Event{{Kind: EventResponse, Data: "\x1b[5;3R"}}
	if !slices.Equal(events, want) {
		t.Errorf("got %v, want %v", events, want)
	}
}

func TestSaveRestoreSequences(t *testing.T) {
	cases := []struct {
		save, restore string
	}{
		{"\x1b7", "\x1b8"},
		{"\x1b[s", "\x1b[u"},
	}

	for i, c := range cases {
		b := NewBuffer(10, 10)
		b.moveTo(3, 4)
		feed(b, c.save+"\x1b[H"+c.restore)
		if gr, gc := b.Cursor(); gr != 3 || gc != 4 {
			t.Errorf("%d: got (%d,%d), want (3,4)", i, gr, gc)
		}
	}
}

func TestFullResetSequence(t *testing.T) {
	b := fillBuffer(NewBuffer(5, 5))
	b.moveTo(2, 2)
	feed(b, "\x1bc")

	if !b.equal(NewBuffer(5, 5)) {
		t.Error("RIS should restore the initial state")
	}
}

func TestPartialRuneHandedBack(t *testing.T) {
	b := NewBuffer(2, 10)
	p := NewParser()

	n, _ := p.Parse(b, []byte("ab\xe4"))
	if n != 2 {
		t.Fatalf("got %d consumed, want 2", n)
	}

	n, _ = p.Parse(b, []byte("\xe4\xb8\x96"))
	if n != 3 {
		t.Fatalf("got %d consumed, want 3", n)
	}
	if got := rowText(b, 0); got != "ab世" {
		t.Errorf("got %q, want %q", got, "ab世")
	}
}

func TestInvalidUTF8FallsBackToLatin1(t *testing.T) {
	b := NewBuffer(2, 10)
	feed(b, "\xe9x")

	if got := rowText(b, 0); got != "éx" {
		t.Errorf("got %q, want %q", got, "éx")
	}
}

func TestChunkedParsingMatchesWhole(t *testing.T) {
	input := []byte("ab\x1b[1;31mc世\x1b]2;title\x07\x1b[2;5r\x1b[5;5Hdé\x07\tz")

	whole := NewBuffer(10, 10)
	wantEvents := feed(whole, string(input))

	for size := 1; size <= len(input); size++ {
		b := NewBuffer(10, 10)
		events := feedChunks(NewParser(), b, input, size)
		if !b.equal(whole) {
			t.Errorf("size %d: buffer state diverged", size)
		}
		if !slices.Equal(events, wantEvents) {
			t.Errorf("size %d: got %v, want %v", size, events, wantEvents)
		}
	}
}

func TestParserReuseAcrossSequences(t *testing.T) {
	// Parameters from one CSI must not leak into the next.
	b := NewBuffer(10, 10)
	feed(b, "\x1b[5;5H\x1b[B")

	if gr, gc := b.Cursor(); gr != 5 || gc != 4 {
		t.Errorf("got (%d,%d), want (5,4)", gr, gc)
	}
}

func TestLongStream(t *testing.T) {
	// A screenful of writes lands where a terminal would put it.
	b := NewBuffer(5, 20)
	var sb strings.Builder
	for i := 0; i < 5; i++ {
		fmt.Fprintf(&sb, "\x1b[%d;1Hline %d", i+1, i)
	}
	feed(b, sb.String())

	wantRows(t, b, []string{"line 0", "line 1", "line 2", "line 3", "line 4"})
}
