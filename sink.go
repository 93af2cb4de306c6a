package galley

import (
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"golang.org/x/term"
)

// WindowSize carries terminal dimensions in character cells.
type WindowSize struct {
	Columns int
	Rows    int
}

// Sink is the wrapped output stream. Write blocks until the sink has accepted
// the bytes, which is also the backpressure contract OverlayStream exposes.
type Sink interface {
	io.Writer
	Close() error
	Size() (columns, rows int)
	IsTerminal() bool
}

// ResizeNotifier is implemented by sinks whose dimensions can change at
// runtime. Events may be coalesced; receivers re-read Size for the truth.
type ResizeNotifier interface {
	ResizeEvents() <-chan WindowSize
}

// DrainNotifier is implemented by sinks that signal when backpressure clears.
type DrainNotifier interface {
	DrainEvents() <-chan struct{}
}

// FileSink adapts an *os.File, typically os.Stdout or os.Stderr. On terminals
// it publishes SIGWINCH-driven resize events.
type FileSink struct {
	f      *os.File
	resize chan WindowSize
	stop   chan struct{}

	closeOnce sync.Once
	closeErr  error
}

func NewFileSink(f *os.File) *FileSink {
	s := &FileSink{
		f:      f,
		resize: make(chan WindowSize, 1),
		stop:   make(chan struct{}),
	}
	if s.IsTerminal() {
		s.watchResize()
	}
	return s
}

func (s *FileSink) Write(p []byte) (int, error) {
	return s.f.Write(p)
}

func (s *FileSink) Close() error {
	s.closeOnce.Do(func() {
		close(s.stop)
		s.closeErr = s.f.Close()
	})
	return s.closeErr
}

// Fd exposes the underlying descriptor for cursor control.
func (s *FileSink) Fd() uintptr {
	return s.f.Fd()
}

func (s *FileSink) IsTerminal() bool {
	fd := s.f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (s *FileSink) Size() (columns, rows int) {
	w, h, err := term.GetSize(int(s.f.Fd()))
	if err != nil || w <= 0 {
		return pterm.GetTerminalWidth(), pterm.GetTerminalHeight()
	}
	return w, h
}

func (s *FileSink) ResizeEvents() <-chan WindowSize {
	return s.resize
}

var _ Sink = (*FileSink)(nil)
var _ ResizeNotifier = (*FileSink)(nil)
