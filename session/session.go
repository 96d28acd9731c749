// Package session owns the mutable emulation state the vt core
// refuses to lock for itself: it runs a child process under a pty,
// feeds the child's output through a parser into a buffer behind a
// mutex, answers status queries, and hands out consistent snapshots.
package session

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"
	"syscall"

	"github.com/creack/pty"
	"golang.org/x/term"

	"github.com/vtbuf/vtbuf/vt"
)

// OSC selectors the session interprets itself; everything else is
// surfaced through OnOSC.
const (
	oscIconTitle = "0"
	oscIcon      = "1"
	oscTitle     = "2"
)

type Session struct {
	mux sync.Mutex
	buf *vt.Buffer
	p   *vt.Parser

	ptyR, ptyW *os.File
	wait, stop func()

	title, icon string
	pending     []byte // trailing partial rune awaiting more bytes

	// OnBell and OnOSC, when set, observe side-channel events the
	// session doesn't consume itself. Set them before Run.
	OnBell func()
	OnOSC  func(data string)
}

func newSession(rows, cols int, r, w *os.File) *Session {
	return &Session{
		buf:  vt.NewBuffer(rows, cols),
		p:    vt.NewParser(),
		ptyR: r,
		ptyW: w,
		wait: func() {},
		stop: func() {},
	}
}

// Start launches cmd under a pty sized rows x cols and returns the
// session emulating its output.
func Start(cmd *exec.Cmd, rows, cols int) (*Session, error) {
	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	if err != nil {
		return nil, fmt.Errorf("couldn't start pty: %v", err)
	}

	// Any use of Fd(), including indirectly via the StartWithSize
	// call above, will set the descriptor non-blocking, so we need
	// to change that here.
	pfd := int(ptmx.Fd())
	if err := syscall.SetNonblock(pfd, true); err != nil {
		return nil, fmt.Errorf("couldn't set ptmx non-blocking: %v", err)
	}

	s := newSession(rows, cols, ptmx, ptmx)
	s.wait = func() { cmd.Wait() }
	s.stop = func() {
		if cmd.Process != nil {
			cmd.Process.Kill()
		}
	}

	return s, nil
}

// NewPipe returns a session fed through an in-process pipe instead of
// a pty: whatever is written to the returned writer is emulated. Used
// by tests and byte-replay callers.
func NewPipe(rows, cols int) (*Session, io.WriteCloser, error) {
	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, nil, fmt.Errorf("couldn't open a pipe: %v", err)
	}

	return newSession(rows, cols, pr, pw), pw, nil
}

// Run reads the pty until EOF, feeding everything through the
// emulator. It blocks; run it from its own goroutine when the caller
// has other work.
func (s *Session) Run() {
	chunk := make([]byte, 4096)
	for {
		n, err := s.ptyR.Read(chunk)
		if n > 0 {
			s.feed(chunk[:n])
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, os.ErrDeadlineExceeded) && !errors.Is(err, os.ErrClosed) {
				slog.Error("pty read", "err", err)
			}
			if errors.Is(err, os.ErrDeadlineExceeded) {
				continue
			}
			return
		}
	}
}

func (s *Session) feed(data []byte) {
	s.mux.Lock()

	in := data
	if len(s.pending) > 0 {
		in = append(s.pending, data...)
	}

	n, events := s.p.Parse(s.buf, in)
	s.pending = append(s.pending[:0], in[n:]...)
	s.mux.Unlock()

	// Event handling happens outside the lock: responses write to
	// the pty and callbacks belong to the caller.
	for _, ev := range events {
		switch ev.Kind {
		case vt.EventResponse:
			if _, err := s.ptyW.Write([]byte(ev.Data)); err != nil {
				slog.Debug("couldn't write response", "err", err)
			}
		case vt.EventOSC:
			s.handleOSC(ev.Data)
		case vt.EventBell:
			if s.OnBell != nil {
				s.OnBell()
			}
		}
	}
}

func (s *Session) handleOSC(data string) {
	parts := strings.SplitN(data, ";", 2)
	if len(parts) != 2 {
		slog.Debug("unparseable OSC entity", "data", data)
		return
	}

	s.mux.Lock()
	switch parts[0] {
	case oscIconTitle:
		s.title = parts[1]
		s.icon = parts[1]
	case oscIcon:
		s.icon = parts[1]
	case oscTitle:
		s.title = parts[1]
	default:
		s.mux.Unlock()
		if s.OnOSC != nil {
			s.OnOSC(data)
		} else {
			slog.Debug("unhandled OSC entity", "data", data)
		}
		return
	}
	s.mux.Unlock()
}

// Write sends input bytes to the child process.
func (s *Session) Write(p []byte) (int, error) {
	return s.ptyW.Write(p)
}

// Resize propagates a new size to the pty (when there is one) and the
// emulation buffer.
func (s *Session) Resize(rows, cols int) {
	pts := &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)}

	if term.IsTerminal(int(s.ptyW.Fd())) {
		if err := pty.Setsize(s.ptyW, pts); err != nil {
			slog.Error("couldn't set size on pty", "err", err)
		}
		// Any use of Fd(), including in the Setsize call above,
		// will set the descriptor non-blocking, so we need to
		// change that here.
		pfd := int(s.ptyW.Fd())
		if err := syscall.SetNonblock(pfd, true); err != nil {
			slog.Error("couldn't set pty to nonblocking", "err", err)
			return
		}
	}

	s.mux.Lock()
	s.buf.Resize(rows, cols)
	s.mux.Unlock()

	slog.Debug("changed window size", "rows", rows, "cols", cols)
}

// Screen returns a deep copy of the current buffer, safe to read
// while parsing continues.
func (s *Session) Screen() *vt.Buffer {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.buf.Copy()
}

// Title returns the most recent OSC-set window title.
func (s *Session) Title() string {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.title
}

// Icon returns the most recent OSC-set icon name.
func (s *Session) Icon() string {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.icon
}

// Wait blocks until the child process exits.
func (s *Session) Wait() {
	s.wait()
}

// Stop kills the child (when there is one) and unblocks Run.
func (s *Session) Stop() {
	s.stop()
	s.ptyR.Close()
}
