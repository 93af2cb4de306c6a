//go:build !windows
// +build !windows

package galley

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// watchResize forwards SIGWINCH as size events until the sink is closed.
func (s *FileSink) watchResize() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, unix.SIGWINCH)

	go func() {
		defer signal.Stop(ch)
		for {
			select {
			case <-s.stop:
				return
			case <-ch:
				columns, rows := s.Size()
				select {
				case s.resize <- WindowSize{Columns: columns, Rows: rows}:
				default:
				}
			}
		}
	}()
}
