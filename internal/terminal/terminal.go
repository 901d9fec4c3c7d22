// Package terminal provides the width query and in-place line writer
// that progress bars are drawn through.
package terminal

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// DefaultWidth is used when neither the terminal nor $COLUMNS reports a width.
const DefaultWidth = 80

// Term reports the width of the terminal attached to a file.
type Term struct {
	fd     int
	getenv func(string) string
}

// New returns a Term for f, typically os.Stdout or os.Stderr.
func New(f *os.File) *Term {
	return &Term{fd: int(f.Fd()), getenv: os.Getenv}
}

// Width queries the terminal on every call, so resizes between frames are seen.
// It falls back to $COLUMNS and then DefaultWidth; it never fails.
func (t *Term) Width() (int, error) {
	if w, _, err := term.GetSize(t.fd); err == nil && w > 0 {
		return w, nil
	}
	if cols, err := strconv.Atoi(t.getenv("COLUMNS")); err == nil && cols > 0 {
		return cols, nil
	}
	return DefaultWidth, nil
}

// FixedWidth is a WidthProvider that always reports the same width.
type FixedWidth int

// Width returns f.
func (f FixedWidth) Width() (int, error) {
	return int(f), nil
}

// IsTerminal reports whether f is attached to a terminal, including Cygwin ptys.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// LineWriter writes carriage-return prefixed lines and flushes after each one.
// It does not clear leftovers from a longer previous line.
type LineWriter struct {
	mu sync.Mutex
	w  *bufio.Writer
}

// NewLineWriter wraps w.
func NewLineWriter(w io.Writer) *LineWriter {
	return &LineWriter{w: bufio.NewWriter(w)}
}

// WriteInPlace writes "\r" + line and flushes.
func (l *LineWriter) WriteInPlace(line string) error {
	return l.write("\r", line, "")
}

// WriteLine writes "\r" + line + "\n" and flushes.
func (l *LineWriter) WriteLine(line string) error {
	return l.write("\r", line, "\n")
}

func (l *LineWriter) write(parts ...string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, p := range parts {
		if _, err := l.w.WriteString(p); err != nil {
			return err
		}
	}
	return l.w.Flush()
}
