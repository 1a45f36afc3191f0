package edit

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"src.crispy.sh/pkg/cli/term"
	"src.crispy.sh/pkg/errutil"
)

// Styles of the rows at the bottom of the screen.
var (
	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("6")).Foreground(lipgloss.Color("0"))
	eventStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("2")).Foreground(lipgloss.Color("0"))
	lineStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("5")).Foreground(lipgloss.Color("0"))
)

// Column of the hardware cursor for the current logical column.
func (ed *Editor) cursorCol() int {
	return ed.promptWidth + runewidth.StringWidth(ed.buf.Before())
}

// Repaints the line and puts the hardware cursor back at the logical
// position.
func (ed *Editor) display() error {
	s, row := ed.surface, ed.buf.Pos().Row
	ed.hideCursor()
	err := errutil.Multi(
		s.MoveCursor(ed.promptWidth, row),
		s.Clear(term.ClearToEOL),
		s.Write(ed.buf.Before()),
		s.Write(ed.buf.After()),
		s.MoveCursor(ed.cursorCol(), row))
	ed.showCursor()
	if err = errutil.Multi(err, s.Flush()); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	return nil
}

func (ed *Editor) hideCursor() {
	if h, ok := ed.surface.(term.CursorHider); ok {
		h.HideCursor()
	}
}

func (ed *Editor) showCursor() {
	if h, ok := ed.surface.(term.CursorHider); ok {
		h.ShowCursor()
	}
}

// Height of the surface, or 0 if it is unknown.
func (ed *Editor) height() int {
	if sizer, ok := ed.surface.(term.Sizer); ok {
		_, h := sizer.Size()
		return max(h, 0)
	}
	return 0
}

// Number of rows at the bottom of the screen kept for the status and debug
// rows.
func (ed *Editor) footerRows() int {
	switch {
	case ed.opts.Debug:
		return lineRow + 1
	case ed.opts.StatusLine:
		return statusRow + 1
	}
	return 0
}

// Scrolls the screen up until a line on the given row sits above the footer
// rows, and returns the row the line ends up on. The cursor is left on the
// last row.
func (ed *Editor) scrollAboveFooter(row int) (int, error) {
	height := ed.height()
	last := max(height-1-ed.footerRows(), 0)
	if height == 0 || row <= last {
		return row, nil
	}
	s := ed.surface
	err := errutil.Multi(
		s.MoveCursor(0, height-1),
		s.Write(strings.Repeat("\n", row-last)))
	if err != nil {
		return 0, fmt.Errorf("scroll: %w", err)
	}
	logger.Printf("scrolled line from row %d to %d", row, last)
	return last, nil
}

// Writes the prompt at the start of the cursor row.
func (ed *Editor) writePrompt() error {
	err := errutil.Multi(
		ed.surface.Write("\r"+ed.opts.Prompt),
		ed.surface.Flush())
	if err != nil {
		return fmt.Errorf("write prompt: %w", err)
	}
	return nil
}

// Rows at the bottom of the screen, counted from the last one.
const (
	statusRow = iota
	eventRow
	lineRow
)

func (ed *Editor) paintStatus() error {
	return ed.paintFooter(statusRow, statusStyle, "message: "+ed.status)
}

func (ed *Editor) paintDebug() error {
	b := ed.buf
	kills, err := ed.kills.Entries()
	if err != nil {
		logger.Println("can't read kill ring:", err)
	}
	return errutil.Multi(
		ed.paintFooter(eventRow, eventStyle, fmt.Sprintf("event: %v", ed.lastEvent)),
		ed.paintFooter(lineRow, lineStyle, fmt.Sprintf("line: %q|%q col=%d row=%d kills=%d",
			b.Before(), b.After(), b.Pos().Col, b.Pos().Row, len(kills))))
}

// Paints a row counted from the bottom of the screen and returns the cursor
// to the line. Nothing is painted if the size of the surface is unknown or
// the row would cover the line being edited.
func (ed *Editor) paintFooter(fromBottom int, style lipgloss.Style, text string) error {
	sizer, ok := ed.surface.(term.Sizer)
	if !ok {
		return nil
	}
	width, height := sizer.Size()
	row := height - 1 - fromBottom
	if width <= 0 || row <= ed.buf.Pos().Row {
		return nil
	}
	text = runewidth.Truncate(text, width, "")
	s := ed.surface
	ed.hideCursor()
	err := errutil.Multi(
		s.MoveCursor(0, row),
		s.Clear(term.ClearLine),
		s.Write(style.Width(width).Render(text)),
		s.MoveCursor(ed.cursorCol(), ed.buf.Pos().Row))
	ed.showCursor()
	if err = errutil.Multi(err, s.Flush()); err != nil {
		return fmt.Errorf("paint row %d: %w", row, err)
	}
	return nil
}

// ClearFooter removes the status and debug rows from the screen. It is
// called when the session ends.
func (ed *Editor) ClearFooter() error {
	height := ed.height()
	if height == 0 || ed.footerRows() == 0 {
		return nil
	}
	s := ed.surface
	var errs []error
	for i := statusRow; i <= lineRow; i++ {
		if row := height - 1 - i; row > ed.buf.Pos().Row {
			errs = append(errs, s.MoveCursor(0, row), s.Clear(term.ClearLine))
		}
	}
	errs = append(errs, s.MoveCursor(ed.cursorCol(), ed.buf.Pos().Row), s.Flush())
	return errutil.Multi(errs...)
}
