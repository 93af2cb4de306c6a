package galley

import (
	"fmt"
	"strings"
	"sync"
	"testing"
)

type recordingSession struct {
	mu  sync.Mutex
	ops []string
}

func (r *recordingSession) record(op string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, op)
}

func (r *recordingSession) Ops() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.ops...)
}

func (r *recordingSession) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = nil
}

func (r *recordingSession) Save()    { r.record("save") }
func (r *recordingSession) Restore() { r.record("restore") }
func (r *recordingSession) Goto(column, row int) {
	r.record(fmt.Sprintf("goto %d,%d", column, row))
}
func (r *recordingSession) Up(n int)          { r.record(fmt.Sprintf("up %d", n)) }
func (r *recordingSession) Down(n int)        { r.record(fmt.Sprintf("down %d", n)) }
func (r *recordingSession) DeleteChars(n int) { r.record(fmt.Sprintf("dch %d", n)) }
func (r *recordingSession) DeleteLines(n int) { r.record(fmt.Sprintf("dl %d", n)) }
func (r *recordingSession) ScrollDown(n int)  { r.record(fmt.Sprintf("sd %d", n)) }
func (r *recordingSession) WriteText(text string) {
	r.record("text " + text)
}

// lastText returns the content of the most recent WriteText op, or "".
func lastText(ops []string) string {
	for i := len(ops) - 1; i >= 0; i-- {
		if strings.HasPrefix(ops[i], "text ") {
			return strings.TrimPrefix(ops[i], "text ")
		}
	}
	return ""
}

func TestDrawContentSelection(t *testing.T) {
	saved := "Saved"

	testCases := []struct {
		name     string
		status   string
		flash    *string
		wantText string
		wantGoto string
	}{
		{
			name:     "StatusOnly",
			status:   "OK",
			wantText: " OK ",
			wantGoto: "goto 76,24",
		},
		{
			name:     "FlashWinsOverStatus",
			status:   "OK",
			flash:    &saved,
			wantText: " Saved ",
			wantGoto: "goto 73,24",
		},
		{
			name:   "NothingToDraw",
			status: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := &recordingSession{}
			comp := newCompositor(rec, 80, 24)
			comp.draw(tc.status, tc.flash)

			ops := rec.Ops()
			if tc.wantText == "" {
				want := []string{"save", "restore"}
				if len(ops) != len(want) || ops[0] != "save" || ops[1] != "restore" {
					t.Fatalf("draw of nothing issued %v, want %v", ops, want)
				}
				if comp.drawn {
					t.Error("drawn flag set with nothing on screen")
				}
				return
			}

			if len(ops) != 4 {
				t.Fatalf("draw issued %d ops, want 4: %v", len(ops), ops)
			}
			if ops[0] != "save" || ops[3] != "restore" {
				t.Errorf("draw not bracketed by save/restore: %v", ops)
			}
			if ops[1] != tc.wantGoto {
				t.Errorf("draw moved to %q, want %q", ops[1], tc.wantGoto)
			}
			if !strings.Contains(ops[2], tc.wantText) {
				t.Errorf("draw wrote %q, want it to contain %q", ops[2], tc.wantText)
			}
			if comp.overlayText != tc.wantText {
				t.Errorf("overlayText = %q, want %q", comp.overlayText, tc.wantText)
			}
			if !comp.drawn {
				t.Error("drawn flag not set")
			}
		})
	}
}

func TestEraseGeometry(t *testing.T) {
	// Every case first draws " OK " (padded width 4) on an 80x24 terminal,
	// then erases after resizing to newColumns.
	testCases := []struct {
		name       string
		newColumns int
		want       []string
	}{
		{
			name:       "SameWidth",
			newColumns: 80,
			want:       []string{"save", "goto 75,24", "dch 5", "restore"},
		},
		{
			name:       "Widened",
			newColumns: 100,
			// widthOnLine grows with the terminal, so the erase still
			// starts where the text was drawn.
			want: []string{"save", "goto 75,24", "dch 5", "restore"},
		},
		{
			name:       "NarrowedByOne",
			newColumns: 79,
			want:       []string{"save", "goto 75,24", "dch 5", "restore"},
		},
		{
			name:       "NarrowedPastWrap",
			newColumns: 40,
			want: []string{
				"save", "goto 75,24", "up 1", "dch 5",
				"down 1", "dl 1", "restore", "sd 1", "down 1",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := &recordingSession{}
			comp := newCompositor(rec, 80, 24)
			comp.draw("OK", nil)
			rec.Reset()

			comp.setSize(tc.newColumns, 24)
			comp.erase()

			got := rec.Ops()
			if len(got) != len(tc.want) {
				t.Fatalf("erase issued %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("erase op %d = %q, want %q (all: %v)", i, got[i], tc.want[i], got)
				}
			}
			if comp.lastColumns != tc.newColumns {
				t.Errorf("lastColumns = %d, want %d", comp.lastColumns, tc.newColumns)
			}
		})
	}
}

func TestEraseBeforeFirstDraw(t *testing.T) {
	rec := &recordingSession{}
	comp := newCompositor(rec, 80, 24)
	comp.erase()
	if ops := rec.Ops(); len(ops) != 0 {
		t.Errorf("erase with nothing drawn issued %v", ops)
	}
}

func TestDrawIsIdempotentOnRedraw(t *testing.T) {
	rec := &recordingSession{}
	comp := newCompositor(rec, 80, 24)
	comp.draw("OK", nil)
	rec.Reset()

	// A second draw erases the first before painting again.
	comp.draw("OK", nil)
	ops := rec.Ops()
	if len(ops) != 8 {
		t.Fatalf("redraw issued %d ops, want erase+draw (8): %v", len(ops), ops)
	}
	if ops[1] != "goto 75,24" || ops[2] != "dch 5" {
		t.Errorf("redraw did not erase the previous text: %v", ops)
	}
	if ops[5] != "goto 76,24" {
		t.Errorf("redraw painted at %q, want goto 76,24", ops[5])
	}
}

func TestEraseForgetsOverlay(t *testing.T) {
	rec := &recordingSession{}
	comp := newCompositor(rec, 80, 24)
	comp.draw("OK", nil)
	comp.erase()

	if comp.drawn || comp.overlayText != "" {
		t.Errorf("erase left state behind: drawn=%v text=%q", comp.drawn, comp.overlayText)
	}

	// A second erase must not delete again: the cells it would wipe now hold
	// real output.
	rec.Reset()
	comp.erase()
	if ops := rec.Ops(); len(ops) != 0 {
		t.Errorf("second erase issued %v", ops)
	}
}
