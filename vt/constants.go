package vt

const (
	// Like it's 1975 baby!
	DEF_ROWS = 24
	DEF_COLS = 80
)

// C0 control bytes handled in the ground state.
const (
	CTRL_BEL = 0x07 // ^G Bell
	CTRL_BS  = 0x08 // ^H Backspace
	CTRL_TAB = 0x09 // ^I Tab \t
	CTRL_LF  = 0x0a // ^J Line feed \n
	CTRL_VT  = 0x0b // ^K Vertical tab \v
	CTRL_FF  = 0x0c // ^L Form feed \f
	CTRL_CR  = 0x0d // ^M Carriage return \r
	CTRL_SO  = 0x0e // ^N Shift to G1 charset
	CTRL_SI  = 0x0f // ^O Shift to G0 charset
	CTRL_CAN = 0x18 // ^X Cancel current sequence
	CTRL_SUB = 0x1a // ^Z Cancel current sequence
	ESC      = 0x1b
)

// Two-character ESC sequence finals.
const (
	ESC_CSI   = '[' // control sequence introducer
	ESC_OSC   = ']' // operating system command
	ESC_DCS   = 'P' // device control string
	ESC_ST    = '\\'
	ESC_DECSC = '7' // save cursor
	ESC_DECRC = '8' // restore cursor
	ESC_IND   = 'D' // index
	ESC_NEL   = 'E' // next line
	ESC_HTS   = 'H' // horizontal tab set
	ESC_RI    = 'M' // reverse index
	ESC_RIS   = 'c' // full reset
	ESC_G0    = '(' // designate G0 charset
	ESC_G1    = ')' // designate G1 charset
)

// CSI final bytes.
const (
	CSI_ICH     = '@' // insert blank characters
	CSI_CUU     = 'A' // cursor up
	CSI_CUD     = 'B' // cursor down
	CSI_CUF     = 'C' // cursor forward
	CSI_CUB     = 'D' // cursor back
	CSI_CNL     = 'E' // cursor next line
	CSI_CPL     = 'F' // cursor previous line
	CSI_CHA     = 'G' // cursor horizontal absolute
	CSI_CUP     = 'H' // cursor position
	CSI_CHT     = 'I' // cursor forward tabulation
	CSI_ED      = 'J' // erase in display
	CSI_EL      = 'K' // erase in line
	CSI_IL      = 'L' // insert line(s)
	CSI_DL      = 'M' // delete line(s)
	CSI_DCH     = 'P' // delete character(s)
	CSI_SU      = 'S' // scroll up
	CSI_SD      = 'T' // scroll down
	CSI_ECH     = 'X' // erase characters
	CSI_CBT     = 'Z' // cursor backward tabulation
	CSI_HPA     = '`' // character position absolute
	CSI_DA      = 'c' // send device attributes
	CSI_VPA     = 'd' // line position absolute
	CSI_HVP     = 'f' // horizontal vertical position
	CSI_TBC     = 'g' // tab stop clear
	CSI_SM      = 'h' // set mode
	CSI_RM      = 'l' // reset mode
	CSI_SGR     = 'm' // select graphic rendition
	CSI_DSR     = 'n' // device status report
	CSI_DECSTBM = 'r' // set top and bottom margin
	CSI_SCOSC   = 's' // save cursor (ansi.sys)
	CSI_SCORC   = 'u' // restore cursor (ansi.sys)
)

// CSI SGR attribute codes.
const (
	SGR_RESET            = 0
	SGR_INTENSITY_BOLD   = 1
	SGR_INTENSITY_FAINT  = 2
	SGR_ITALIC_ON        = 3
	SGR_UNDERLINE_ON     = 4
	SGR_BLINK_ON         = 5
	SGR_RAPID_BLINK_ON   = 6
	SGR_REVERSED_ON      = 7
	SGR_INVISIBLE_ON     = 8
	SGR_STRIKEOUT_ON     = 9
	SGR_INTENSITY_NORMAL = 22
	SGR_ITALIC_OFF       = 23
	SGR_UNDERLINE_OFF    = 24
	SGR_BLINK_OFF        = 25
	SGR_REVERSED_OFF     = 27
	SGR_INVISIBLE_OFF    = 28
	SGR_STRIKEOUT_OFF    = 29
)

// CSI SGR color codes.
const (
	FG_BLACK          = 30
	FG_RED            = 31
	FG_GREEN          = 32
	FG_YELLOW         = 33
	FG_BLUE           = 34
	FG_MAGENTA        = 35
	FG_CYAN           = 36
	FG_WHITE          = 37
	SET_FG            = 38
	FG_DEF            = 39
	BG_BLACK          = 40
	BG_RED            = 41
	BG_GREEN          = 42
	BG_YELLOW         = 43
	BG_BLUE           = 44
	BG_MAGENTA        = 45
	BG_CYAN           = 46
	BG_WHITE          = 47
	SET_BG            = 48
	BG_DEF            = 49
	FG_BRIGHT_BLACK   = 90
	FG_BRIGHT_RED     = 91
	FG_BRIGHT_GREEN   = 92
	FG_BRIGHT_YELLOW  = 93
	FG_BRIGHT_BLUE    = 94
	FG_BRIGHT_MAGENTA = 95
	FG_BRIGHT_CYAN    = 96
	FG_BRIGHT_WHITE   = 97
	BG_BRIGHT_BLACK   = 100
	BG_BRIGHT_RED     = 101
	BG_BRIGHT_GREEN   = 102
	BG_BRIGHT_YELLOW  = 103
	BG_BRIGHT_BLUE    = 104
	BG_BRIGHT_MAGENTA = 105
	BG_BRIGHT_CYAN    = 106
	BG_BRIGHT_WHITE   = 107
)

// CSI private mode parameter codes. Only DECAWM and DECTCEM change
// behavior here; the rest are recognized so programs toggling them
// don't trip the unknown-sequence path.
const (
	PRIV_DECCKM        = 1    // application cursor keys
	PRIV_DECCOLM       = 3    // 80/132 column mode
	PRIV_DECOM         = 6    // origin mode
	PRIV_DECAWM        = 7    // auto-wrap mode
	PRIV_BLINK_CURSOR  = 12   // start blinking cursor
	PRIV_DECTCEM       = 25   // show cursor
	PRIV_MOUSE_XY      = 1000 // mouse x/y on press/release
	PRIV_MOUSE_MOTION  = 1002 // cell motion mouse tracking
	PRIV_MOUSE_ALL     = 1003 // all motion mouse tracking
	PRIV_MOUSE_FOCUS   = 1004 // focus in/out events
	PRIV_MOUSE_SGR     = 1006 // SGR mouse mode
	PRIV_ALT_SCREEN    = 1049 // alternate screen + save cursor
	PRIV_BRACKET_PASTE = 2004 // bracketed paste
)

// Selectors for erase in line/display (CSI K / CSI J).
const (
	ERASE_TO_END   = 0 // cursor to end, inclusive of cursor
	ERASE_TO_START = 1 // start to cursor, inclusive of cursor
	ERASE_ALL      = 2 // whole line/display
)

// Selectors for tab stop clear (CSI g).
const (
	TBC_CUR = 0 // clear tab stop at cursor
	TBC_ALL = 3 // clear all tab stops
)

// Device status report parameters (CSI n).
const (
	DSR_STATUS = 5 // operating status, reply CSI 0 n
	DSR_CURSOR = 6 // cursor position, reply CSI r ; c R
)
