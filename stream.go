// Package galley keeps a one-line status overlay pinned to the bottom-right
// corner of a terminal while ordinary output scrolls past it.
package galley

import (
	"bytes"
	"sync"
	"time"
)

const (
	defaultFlashDuration  = 2 * time.Second
	defaultResizeDebounce = 100 * time.Millisecond
)

// Options tune an OverlayStream. The zero value means defaults.
type Options struct {
	// Session overrides the terminal session the compositor draws through.
	Session Session
	// FlashDuration is how long a flash message stays visible.
	FlashDuration time.Duration
	// ResizeDebounce is the window over which resize bursts coalesce.
	ResizeDebounce time.Duration
}

func complete(opts ...Options) (result Options) {
	for _, opt := range opts {
		if opt.Session != nil {
			result.Session = opt.Session
		}
		if opt.FlashDuration > 0 {
			result.FlashDuration = opt.FlashDuration
		}
		if opt.ResizeDebounce > 0 {
			result.ResizeDebounce = opt.ResizeDebounce
		}
	}
	if result.FlashDuration == 0 {
		result.FlashDuration = defaultFlashDuration
	}
	if result.ResizeDebounce == 0 {
		result.ResizeDebounce = defaultResizeDebounce
	}
	return
}

// OverlayStream wraps a Sink. All bytes written to it reach the sink
// unchanged; writes containing a newline are additionally bracketed with an
// erase and redraw of the overlay. On a non-TTY sink the overlay subsystem is
// inert and every operation is pure pass-through.
//
// The mutex is held across each full erase or draw sequence, so timer
// callbacks and writes can never interleave cursor commands.
type OverlayStream struct {
	mu   sync.Mutex
	sink Sink
	comp *compositor
	tty  bool

	status string
	flash  *string

	flashDuration time.Duration
	flashTimer    *time.Timer
	flashGen      uint64

	resizeDebounce time.Duration
	resizeTimer    *time.Timer
	resizeCh       chan WindowSize
	drainCh        chan struct{}

	done      chan struct{}
	closeOnce sync.Once
}

// New wraps sink. The overlay is drawn only once SetStatus or Flash is called.
func New(sink Sink, opts ...Options) *OverlayStream {
	opt := complete(opts...)

	s := &OverlayStream{
		sink:           sink,
		tty:            sink.IsTerminal(),
		flashDuration:  opt.FlashDuration,
		resizeDebounce: opt.ResizeDebounce,
		resizeCh:       make(chan WindowSize, 1),
		drainCh:        make(chan struct{}, 1),
		done:           make(chan struct{}),
	}

	if s.tty {
		session := opt.Session
		if session == nil {
			session = newTermSession(sink)
		}
		columns, rows := sink.Size()
		s.comp = newCompositor(session, columns, rows)

		if rn, ok := sink.(ResizeNotifier); ok {
			go s.forwardResize(rn.ResizeEvents())
		}
	}
	if dn, ok := sink.(DrainNotifier); ok {
		go s.forwardDrain(dn.DrainEvents())
	}

	return s
}

// Write forwards p to the sink unchanged. Only writes containing a newline
// trigger a redraw: repositioning the cursor during partial-line writes (a
// progress dot, say) can leave it outside the terminal's bounds, and some
// save/restore implementations clamp that badly enough to break wrap tracking
// for good.
func (s *OverlayStream) Write(p []byte) (int, error) {
	if !s.tty {
		return s.sink.Write(p)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !bytes.ContainsRune(p, '\n') {
		return s.sink.Write(p)
	}

	s.comp.erase()
	n, err := s.sink.Write(p)
	s.comp.draw(s.status, s.flash)
	return n, err
}

// Close erases the overlay, stops the timers and closes the sink, leaving the
// terminal clean.
func (s *OverlayStream) Close() (err error) {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.flashGen++
		if s.flashTimer != nil {
			s.flashTimer.Stop()
		}
		if s.resizeTimer != nil {
			s.resizeTimer.Stop()
		}
		if s.tty {
			s.comp.erase()
		}
		close(s.done)
		s.mu.Unlock()

		err = s.sink.Close()
	})
	return err
}

// SetStatus sets the persistent overlay text and repaints. An active flash
// keeps precedence; the new status shows once the flash expires. An empty
// string removes the overlay.
func (s *OverlayStream) SetStatus(text string) {
	if !s.tty {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status = text
	s.comp.draw(s.status, s.flash)
}

// Flash shows text in the overlay for the flash duration, superseding any
// status text. Flashing again restarts the clock.
func (s *OverlayStream) Flash(text string) {
	if !s.tty {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.flashGen++
	if s.flashTimer != nil {
		s.flashTimer.Stop()
	}
	gen := s.flashGen
	s.flashTimer = time.AfterFunc(s.flashDuration, func() { s.expireFlash(gen) })

	s.flash = &text
	s.comp.draw(s.status, s.flash)
}

// expireFlash reverts the overlay to the status text, or to nothing. The
// generation check discards callbacks whose timer was superseded after it had
// already fired.
func (s *OverlayStream) expireFlash(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.flashGen {
		return
	}
	s.flash = nil
	s.comp.draw(s.status, s.flash)
}

// Size reports the mirrored terminal dimensions.
func (s *OverlayStream) Size() (columns, rows int) {
	if !s.tty {
		return s.sink.Size()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.comp.columns, s.comp.rows
}

// Resize delivers the debounced terminal size changes to this wrapper's own
// consumers. Only the latest size is retained.
func (s *OverlayStream) Resize() <-chan WindowSize {
	return s.resizeCh
}

// Drain re-emits the sink's backpressure-cleared notifications.
func (s *OverlayStream) Drain() <-chan struct{} {
	return s.drainCh
}

func (s *OverlayStream) forwardResize(events <-chan WindowSize) {
	for {
		select {
		case <-s.done:
			return
		case <-events:
			s.mu.Lock()
			if s.resizeTimer != nil {
				s.resizeTimer.Stop()
			}
			s.resizeTimer = time.AfterFunc(s.resizeDebounce, s.handleResize)
			s.mu.Unlock()
		}
	}
}

// handleResize runs once per coalesced burst of resize events: refresh the
// mirrored dimensions, repaint, and republish the new size. The repaint's
// erase still sees the previous column count, which is what makes the wrap
// compensation work.
func (s *OverlayStream) handleResize() {
	s.mu.Lock()
	select {
	case <-s.done:
		s.mu.Unlock()
		return
	default:
	}
	columns, rows := s.sink.Size()
	s.comp.setSize(columns, rows)
	s.comp.draw(s.status, s.flash)
	s.mu.Unlock()

	select {
	case <-s.resizeCh:
	default:
	}
	select {
	case s.resizeCh <- WindowSize{Columns: columns, Rows: rows}:
	default:
	}
}

func (s *OverlayStream) forwardDrain(events <-chan struct{}) {
	for {
		select {
		case <-s.done:
			return
		case _, ok := <-events:
			if !ok {
				return
			}
			select {
			case s.drainCh <- struct{}{}:
			default:
			}
		}
	}
}
