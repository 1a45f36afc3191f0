package edit

import (
	"errors"
	"fmt"
	"unicode"

	"src.crispy.sh/pkg/cli/term"
	"src.crispy.sh/pkg/killring"
	"src.crispy.sh/pkg/linebuf"
	"src.crispy.sh/pkg/ui"
)

// Binding pairs a predicate on key events with an action.
type Binding struct {
	Name   string
	Match  func(term.KeyEvent) bool
	Action func(*Editor) error
}

// Matches the release of a key.
func onRelease(k ui.Key) func(term.KeyEvent) bool {
	return func(ev term.KeyEvent) bool {
		return ev.Phase == term.Release && ev.Key == k
	}
}

// Matches a press of the rune with any modifiers.
func onPressAnyMod(r rune) func(term.KeyEvent) bool {
	return func(ev term.KeyEvent) bool {
		return ev.Phase == term.Press && ev.Key.Rune == r
	}
}

func isPrintable(ev term.KeyEvent) bool {
	return ev.Phase == term.Press && !ev.Key.IsFunctionKey() &&
		ev.Key.Rune >= ' ' && unicode.IsPrint(ev.Key.Rune)
}

var defaultBindings = []Binding{
	{"insert", isPrintable, insertKey},
	{"backspace", onPressAnyMod(ui.Backspace), backspace},
	{"start-of-line", onRelease(ui.K('A', ui.Ctrl)), startOfLine},
	{"end-of-line", onRelease(ui.K('E', ui.Ctrl)), endOfLine},
	{"left", onRelease(ui.K('B', ui.Ctrl)), left},
	{"right", onRelease(ui.K('F', ui.Ctrl)), right},
	{"kill-line-right", onRelease(ui.K('K', ui.Ctrl)), killLineRight},
	{"delete-right", onRelease(ui.K('D', ui.Ctrl)), deleteRight},
	{"clear-screen", onRelease(ui.K('L', ui.Ctrl)), clearScreen},
	{"yank", onRelease(ui.K('Y', ui.Ctrl)), yank},
	{"left-word", onRelease(ui.K('b', ui.Alt)), leftWord},
	{"right-word", onRelease(ui.K('f', ui.Alt)), rightWord},
	{"kill-word-right", onRelease(ui.K('d', ui.Alt)), killWordRight},
	{"submit", onPressAnyMod(ui.Enter), submit},
	{"interrupt", onRelease(ui.K('C', ui.Ctrl)), interrupt},
}

// Inserts the rune of the key being handled.
func insertKey(ed *Editor) error {
	ed.buf.Insert(ed.lastEvent.(term.KeyEvent).Key.Rune)
	return ed.display()
}

func backspace(ed *Editor) error {
	ed.buf.DeleteBefore()
	return ed.display()
}

func startOfLine(ed *Editor) error {
	ed.buf.ToStart()
	return ed.display()
}

func endOfLine(ed *Editor) error {
	ed.buf.ToEnd()
	return ed.display()
}

func left(ed *Editor) error {
	col, _, err := ed.surface.CursorPosition()
	if err != nil {
		return fmt.Errorf("left: %w", err)
	}
	if col <= ed.promptWidth {
		return nil
	}
	if !ed.buf.MoveLeft() {
		return ed.notify("cannot move left")
	}
	return ed.display()
}

func right(ed *Editor) error {
	col, _, err := ed.surface.CursorPosition()
	if err != nil {
		return fmt.Errorf("right: %w", err)
	}
	if col <= ed.promptWidth {
		return nil
	}
	if !ed.buf.MoveRight() {
		return ed.notify("cannot move right")
	}
	return ed.display()
}

func killLineRight(ed *Editor) error {
	if err := ed.kills.Push(ed.buf.KillAfter()); err != nil {
		logger.Println("can't save killed text:", err)
	}
	return ed.display()
}

func deleteRight(ed *Editor) error {
	if !ed.buf.DeleteAfterOne() {
		return ed.notify("nothing to delete")
	}
	return ed.display()
}

func clearScreen(ed *Editor) error {
	ed.buf.Clear()
	ed.buf.SetRow(0)
	s := ed.surface
	if err := s.MoveCursor(0, 0); err != nil {
		return err
	}
	if err := s.Clear(term.ClearScreen); err != nil {
		return err
	}
	if err := ed.writePrompt(); err != nil {
		return err
	}
	return ed.display()
}

func yank(ed *Editor) error {
	text, err := ed.kills.Top()
	if err != nil {
		if !errors.Is(err, killring.ErrEmpty) {
			logger.Println("can't read kill ring:", err)
		}
		return ed.notify("nothing to yank")
	}
	ed.buf.InsertString(text)
	return ed.display()
}

func leftWord(ed *Editor) error {
	col, ok := linebuf.PrevWordStart(ed.buf.Runes(), ed.buf.Pos().Col)
	if !ok {
		return ed.notify("cannot move back word")
	}
	ed.buf.SetCol(col)
	return ed.display()
}

func rightWord(ed *Editor) error {
	ed.buf.SetCol(linebuf.NextWordStart(ed.buf.Runes(), ed.buf.Pos().Col))
	return ed.display()
}

func killWordRight(ed *Editor) error {
	to := linebuf.NextWordStart(ed.buf.Runes(), ed.buf.Pos().Col)
	if err := ed.kills.Push(ed.buf.DeleteRange(to)); err != nil {
		logger.Println("can't save killed text:", err)
	}
	return ed.display()
}

func interrupt(*Editor) error {
	return ErrTerminate
}
