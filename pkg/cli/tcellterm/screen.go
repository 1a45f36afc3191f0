// Package tcellterm implements the terminal contracts of the editor on top
// of a tcell.Screen.
package tcellterm

import (
	"fmt"

	"github.com/charmbracelet/x/ansi"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"src.crispy.sh/pkg/cli/term"
	"src.crispy.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[tcellterm] ")

// Screen adapts a tcell.Screen to term.Surface, term.Sizer and the event
// source of the editor. tcell never reports key releases, so a Release is
// synthesized after every Press.
type Screen struct {
	screen   tcell.Screen
	style    tcell.Style
	col, row int
	pending  []term.Event
}

// New wraps an initialized tcell.Screen.
func New(s tcell.Screen) *Screen {
	return &Screen{screen: s, style: tcell.StyleDefault}
}

// Open creates, initializes and wraps the screen of the controlling
// terminal. The returned function finalizes the screen.
func Open(opts term.SetupOptions) (*Screen, func() error, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, nil, fmt.Errorf("can't create screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, nil, fmt.Errorf("can't initialize screen: %w", err)
	}
	s.SetCursorStyle(tcell.CursorStyleBlinkingBlock)
	if opts.MouseCapture {
		s.EnableMouse()
	}
	s.EnablePaste()
	restore := func() error {
		s.Fini()
		return nil
	}
	return New(s), restore, nil
}

// MoveCursor moves the cursor to the given cell.
func (s *Screen) MoveCursor(col, row int) error {
	s.col, s.row = col, row
	s.screen.ShowCursor(col, row)
	return nil
}

// Clear blanks part of the screen.
func (s *Screen) Clear(t term.ClearType) error {
	w, _ := s.screen.Size()
	switch t {
	case term.ClearLine:
		s.blank(0, w)
	case term.ClearScreen:
		s.screen.Clear()
	case term.ClearToEOL:
		s.blank(s.col, w)
	default:
		return fmt.Errorf("unknown clear type %d", t)
	}
	return nil
}

func (s *Screen) blank(from, to int) {
	for x := from; x < to; x++ {
		s.screen.SetContent(x, s.row, ' ', nil, s.style)
	}
}

// Write puts text on the screen at the cursor and advances the cursor like a
// terminal would. "\n" moves down a row, scrolling at the last one, and "\r"
// back to the first column. Escape sequences are dropped; the screen has a
// single style.
func (s *Screen) Write(text string) error {
	for _, r := range ansi.Strip(text) {
		switch r {
		case '\n':
			if _, h := s.screen.Size(); s.row >= h-1 {
				s.scroll()
			} else {
				s.row++
			}
		case '\r':
			s.col = 0
		default:
			w := runewidth.RuneWidth(r)
			if w == 0 {
				continue
			}
			s.screen.SetContent(s.col, s.row, r, nil, s.style)
			s.col += w
		}
	}
	s.screen.ShowCursor(s.col, s.row)
	return nil
}

// Moves every row up by one and blanks the last row.
func (s *Screen) scroll() {
	w, h := s.screen.Size()
	for y := 1; y < h; y++ {
		for x := 0; x < w; x++ {
			r, comb, style, _ := s.screen.GetContent(x, y)
			s.screen.SetContent(x, y-1, r, comb, style)
		}
	}
	row := s.row
	s.row = h - 1
	s.blank(0, w)
	s.row = row
}

// Flush makes the changes visible.
func (s *Screen) Flush() error {
	s.screen.Show()
	return nil
}

// CursorPosition returns the position of the cursor. tcell owns the cursor,
// so no query is needed.
func (s *Screen) CursorPosition() (col, row int, err error) {
	return s.col, s.row, nil
}

// Size returns the size of the screen.
func (s *Screen) Size() (width, height int) {
	return s.screen.Size()
}

// Close makes a pending or future NextEvent call return term.ErrStopped.
func (s *Screen) Close() {
	if err := s.screen.PostEvent(tcell.NewEventInterrupt(nil)); err != nil {
		logger.Println("can't post interrupt:", err)
	}
}
