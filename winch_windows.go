//go:build windows
// +build windows

package galley

// Windows consoles deliver no resize signal; dimensions are re-read on demand.
func (s *FileSink) watchResize() {}
