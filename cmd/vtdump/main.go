// vtdump runs a command under the terminal emulator and prints the
// final screen contents to stdout. Useful for capturing what a
// full-screen program actually drew, and as a smoke test for the
// emulation itself.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/vtbuf/vtbuf/logging"
	"github.com/vtbuf/vtbuf/paint"
	"github.com/vtbuf/vtbuf/session"
	"github.com/vtbuf/vtbuf/vt"
)

var (
	rows    = flag.Int("rows", 0, "Screen rows. 0 means inherit from the controlling terminal.")
	cols    = flag.Int("cols", 0, "Screen columns. 0 means inherit from the controlling terminal.")
	logfile = flag.String("logfile", "", "If set, logs will be written to this file.")
)

func main() {
	flag.Parse()

	if err := logging.Setup(*logfile); err != nil {
		fmt.Fprintf(os.Stderr, "Couldn't set up logging: %v\n", err)
		os.Exit(1)
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] command [args...]\n", os.Args[0])
		os.Exit(1)
	}

	r, c := *rows, *cols
	if r == 0 || c == 0 {
		r, c = vt.DEF_ROWS, vt.DEF_COLS
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			r, c = h, w
		}
	}

	cmd := exec.Command(args[0], args[1:]...)
	s, err := session.Start(cmd, r, c)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Couldn't start %q: %v\n", args[0], err)
		os.Exit(1)
	}

	s.Run() // blocks until the child closes the pty
	s.Wait()

	if title := s.Title(); title != "" {
		fmt.Fprintf(os.Stderr, "title: %s\n", title)
	}

	if err := paint.Screen(os.Stdout, s.Screen(), termenv.EnvColorProfile()); err != nil {
		fmt.Fprintf(os.Stderr, "Couldn't paint screen: %v\n", err)
		os.Exit(1)
	}
}
