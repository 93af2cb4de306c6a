package galley

import (
	"fmt"
	"io"

	"atomicgo.dev/cursor"
)

// Session is the set of terminal cursor primitives the compositor draws
// through. Every call is fire-and-forget; nothing is ever read back from the
// terminal. Columns and rows passed to Goto are 1-based screen coordinates.
type Session interface {
	Save()
	Restore()
	Goto(column, row int)
	Up(n int)
	Down(n int)
	DeleteChars(n int)
	DeleteLines(n int)
	ScrollDown(n int)
	WriteText(text string)
}

// termSession writes ANSI control sequences to the sink. Relative movement
// goes through atomicgo/cursor; save/restore, absolute positioning, character
// and line deletion, and viewport scroll have no library API and are emitted
// as raw CSI.
type termSession struct {
	w   io.Writer
	cur *cursor.Cursor
}

// cursorWriter adapts the sink to cursor.Writer, which wants an Fd alongside
// io.Writer. The descriptor is only consulted by the Windows console path.
type cursorWriter struct {
	io.Writer
}

func (w cursorWriter) Fd() uintptr {
	if f, ok := w.Writer.(interface{ Fd() uintptr }); ok {
		return f.Fd()
	}
	return ^uintptr(0)
}

var _ cursor.Writer = cursorWriter{}

func newTermSession(w io.Writer) *termSession {
	return &termSession{
		w:   w,
		cur: cursor.NewCursor().WithWriter(cursorWriter{w}),
	}
}

func (t *termSession) Save()    { _, _ = io.WriteString(t.w, "\x1b7") }
func (t *termSession) Restore() { _, _ = io.WriteString(t.w, "\x1b8") }

func (t *termSession) Goto(column, row int) {
	_, _ = fmt.Fprintf(t.w, "\x1b[%d;%dH", row, column)
}

func (t *termSession) Up(n int)   { t.cur.Up(n) }
func (t *termSession) Down(n int) { t.cur.Down(n) }

func (t *termSession) DeleteChars(n int) { _, _ = fmt.Fprintf(t.w, "\x1b[%dP", n) }
func (t *termSession) DeleteLines(n int) { _, _ = fmt.Fprintf(t.w, "\x1b[%dM", n) }
func (t *termSession) ScrollDown(n int)  { _, _ = fmt.Fprintf(t.w, "\x1b[%dT", n) }

func (t *termSession) WriteText(text string) { _, _ = io.WriteString(t.w, text) }

var _ Session = (*termSession)(nil)
