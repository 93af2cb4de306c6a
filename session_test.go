package galley

import (
	"bytes"
	"os"
	"testing"
)

func TestCursorWriterFd(t *testing.T) {
	// Writers without a descriptor report an invalid one; the cursor library
	// only consults it on Windows consoles.
	var buf bytes.Buffer
	if fd := (cursorWriter{&buf}).Fd(); fd != ^uintptr(0) {
		t.Errorf("Fd for plain writer = %d, want invalid", fd)
	}

	if fd := (cursorWriter{os.Stdout}).Fd(); fd != os.Stdout.Fd() {
		t.Errorf("Fd not passed through: got %d, want %d", fd, os.Stdout.Fd())
	}
}

func TestTermSessionSequences(t *testing.T) {
	var buf bytes.Buffer
	s := newTermSession(&buf)

	s.Save()
	s.Goto(76, 24)
	s.WriteText(" OK ")
	s.DeleteChars(5)
	s.DeleteLines(1)
	s.ScrollDown(1)
	s.Restore()

	want := "\x1b7\x1b[24;76H OK \x1b[5P\x1b[1M\x1b[1T\x1b8"
	if got := buf.String(); got != want {
		t.Errorf("sequence = %q, want %q", got, want)
	}
}
