package galley

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// compositor paints and unpaints the overlay text run in the bottom-right
// corner. The terminal cannot be asked what is on screen, so overlayText and
// lastColumns are the only source of truth for erasure: erase is the exact
// inverse of whatever the previous draw did, computed from remembered state
// and the current dimensions.
type compositor struct {
	session Session

	overlayText string // exact text last written, including padding
	drawn       bool
	columns     int
	rows        int
	lastColumns int // column count as of the last erase
}

func newCompositor(session Session, columns, rows int) *compositor {
	return &compositor{
		session:     session,
		columns:     columns,
		rows:        rows,
		lastColumns: columns,
	}
}

func (c *compositor) setSize(columns, rows int) {
	c.columns = columns
	c.rows = rows
}

// erase removes exactly what the last draw painted. If the terminal narrowed
// past the overlay's start column since that draw, the text wrapped onto a
// second row and both rows must be cleaned up. Text wrapping across three or
// more rows is unsupported.
func (c *compositor) erase() {
	if !c.drawn {
		return
	}

	textWidth := runewidth.StringWidth(c.overlayText)
	// The text did not change since the last draw, but its apparent width
	// did if the terminal was resized in between.
	widthOnLine := textWidth + (c.columns - c.lastColumns) + 1
	wrapped := c.lastColumns > c.columns+1
	c.lastColumns = c.columns

	c.session.Save()
	c.session.Goto(c.columns-widthOnLine, c.rows)
	if wrapped {
		// The text's start is now one row above the bottom.
		c.session.Up(1)
	}
	c.session.DeleteChars(textWidth + 1)
	if wrapped {
		c.session.Down(1)
		c.session.DeleteLines(1)
	}
	c.session.Restore()
	if wrapped {
		// Deleting the wrapped line pulled everything below it up one row.
		// Scroll back to reclose the gap, then step down so the restored
		// cursor lands where it used to be.
		c.session.ScrollDown(1)
		c.session.Down(1)
	}

	// Nothing is on screen now; a second erase must be a no-op.
	c.overlayText = ""
	c.drawn = false
}

// draw erases whatever is on screen and paints the current content. Flash
// text wins over status text; with neither set nothing is drawn.
func (c *compositor) draw(status string, flash *string) {
	c.erase()
	c.session.Save()

	var (
		text  string
		style lipgloss.Style
	)
	switch {
	case flash != nil:
		text, style = *flash, FlashStyle
	case status != "":
		text, style = status, StatusStyle
	default:
		c.overlayText = ""
		c.session.Restore()
		return
	}

	c.overlayText = " " + text + " "
	c.session.Goto(c.columns-runewidth.StringWidth(c.overlayText), c.rows)
	c.session.WriteText(style.Render(c.overlayText))
	c.session.Restore()
	c.drawn = true
}
