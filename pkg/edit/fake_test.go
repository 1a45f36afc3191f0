package edit

import (
	"strings"

	"src.crispy.sh/pkg/cli/term"
	"src.crispy.sh/pkg/ui"
)

// A surface that keeps the screen in memory. It behaves like a terminal:
// "\n" at the last row scrolls.
type fakeSurface struct {
	width, height int
	rows          [][]rune
	col, row      int

	flushes  int
	queries  int
	hides    int
	hidden   bool
	writeErr error
}

func newFakeSurface(width, height int) *fakeSurface {
	return &fakeSurface{width: width, height: height, rows: make([][]rune, height)}
}

func (s *fakeSurface) MoveCursor(col, row int) error {
	s.col, s.row = col, row
	return nil
}

func (s *fakeSurface) Clear(t term.ClearType) error {
	switch t {
	case term.ClearLine:
		s.rows[s.row] = nil
	case term.ClearScreen:
		s.rows = make([][]rune, s.height)
	case term.ClearToEOL:
		if s.col < len(s.rows[s.row]) {
			s.rows[s.row] = s.rows[s.row][:s.col]
		}
	}
	return nil
}

func (s *fakeSurface) Write(text string) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	for _, r := range text {
		switch r {
		case '\n':
			if s.row == s.height-1 {
				s.rows = append(s.rows[1:], nil)
			} else {
				s.row++
			}
		case '\r':
			s.col = 0
		default:
			line := s.rows[s.row]
			for len(line) <= s.col {
				line = append(line, ' ')
			}
			line[s.col] = r
			s.rows[s.row] = line
			s.col++
		}
	}
	return nil
}

func (s *fakeSurface) Flush() error {
	s.flushes++
	return nil
}

func (s *fakeSurface) CursorPosition() (int, int, error) {
	s.queries++
	return s.col, s.row, nil
}

func (s *fakeSurface) Size() (int, int) { return s.width, s.height }

func (s *fakeSurface) HideCursor() {
	s.hides++
	s.hidden = true
}

func (s *fakeSurface) ShowCursor() { s.hidden = false }

// Returns a row of the screen without trailing spaces.
func (s *fakeSurface) line(row int) string {
	return strings.TrimRight(string(s.rows[row]), " ")
}

// An event source that replays events and errors, and then reports that it
// is stopped.
type fakeSource struct {
	items []any
	next  int
}

func (s *fakeSource) NextEvent() (term.Event, error) {
	if s.next >= len(s.items) {
		return nil, term.ErrStopped
	}
	item := s.items[s.next]
	s.next++
	if err, ok := item.(error); ok {
		return nil, err
	}
	return item.(term.Event), nil
}

// Returns the press and release of a key.
func key(r rune, mods ...ui.Mod) []any {
	k := term.K(r, mods...)
	return []any{k, k.WithPhase(term.Release)}
}

// Returns the presses and releases of the runes of s.
func typed(s string) []any {
	var items []any
	for _, r := range s {
		items = append(items, key(r)...)
	}
	return items
}

func items(groups ...[]any) []any {
	var all []any
	for _, g := range groups {
		all = append(all, g...)
	}
	return all
}
