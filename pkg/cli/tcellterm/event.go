package tcellterm

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"src.crispy.sh/pkg/cli/term"
	"src.crispy.sh/pkg/ui"
)

// NextEvent returns the next event, blocking until one is available.
func (s *Screen) NextEvent() (term.Event, error) {
	if len(s.pending) > 0 {
		var ev term.Event
		ev, s.pending = s.pending[0], s.pending[1:]
		return ev, nil
	}
	for {
		switch ev := s.screen.PollEvent().(type) {
		case nil, *tcell.EventInterrupt:
			return nil, term.ErrStopped
		case *tcell.EventResize:
			s.screen.Sync()
		case *tcell.EventKey:
			k, ok := convertKey(ev)
			if !ok {
				logger.Printf("unsupported key %v", ev.Name())
				continue
			}
			press := term.KeyEvent{Key: k, Phase: term.Press}
			s.pending = append(s.pending, press.WithPhase(term.Release))
			return press, nil
		case *tcell.EventMouse:
			return convertMouse(ev), nil
		case *tcell.EventPaste:
			return term.PasteSetting(ev.Start()), nil
		}
	}
}

var functionKeys = map[tcell.Key]rune{
	tcell.KeyF1: ui.F1, tcell.KeyF2: ui.F2, tcell.KeyF3: ui.F3,
	tcell.KeyF4: ui.F4, tcell.KeyF5: ui.F5, tcell.KeyF6: ui.F6,
	tcell.KeyF7: ui.F7, tcell.KeyF8: ui.F8, tcell.KeyF9: ui.F9,
	tcell.KeyF10: ui.F10, tcell.KeyF11: ui.F11, tcell.KeyF12: ui.F12,

	tcell.KeyUp: ui.Up, tcell.KeyDown: ui.Down,
	tcell.KeyRight: ui.Right, tcell.KeyLeft: ui.Left,

	tcell.KeyHome: ui.Home, tcell.KeyInsert: ui.Insert,
	tcell.KeyDelete: ui.Delete, tcell.KeyEnd: ui.End,
	tcell.KeyPgUp: ui.PageUp, tcell.KeyPgDn: ui.PageDown,
}

func convertKey(ev *tcell.EventKey) (ui.Key, bool) {
	mod := convertMod(ev.Modifiers())
	k := ev.Key()
	// The checks are ordered: tcell.KeyTab, KeyEnter and KeyBackspace share
	// values with KeyCtrlI, KeyCtrlM and KeyCtrlH.
	switch {
	case k == tcell.KeyRune:
		r := ev.Rune()
		if mod&ui.Ctrl != 0 {
			r = unicode.ToUpper(r)
		}
		return ui.Key{Rune: r, Mod: mod &^ ui.Shift}, true
	case k == tcell.KeyEnter:
		return ui.Key{Rune: ui.Enter, Mod: mod &^ ui.Ctrl}, true
	case k == tcell.KeyTab:
		return ui.Key{Rune: ui.Tab, Mod: mod &^ ui.Ctrl}, true
	case k == tcell.KeyBackspace || k == tcell.KeyBackspace2:
		return ui.Key{Rune: ui.Backspace, Mod: mod &^ ui.Ctrl}, true
	case k == tcell.KeyEscape:
		return ui.K('[', ui.Ctrl), true
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return ui.Key{Rune: rune('A' + k - tcell.KeyCtrlA), Mod: mod | ui.Ctrl}, true
	}
	if r, ok := functionKeys[k]; ok {
		return ui.Key{Rune: r, Mod: mod}, true
	}
	return ui.Key{}, false
}

func convertMod(m tcell.ModMask) ui.Mod {
	var mod ui.Mod
	if m&tcell.ModShift != 0 {
		mod |= ui.Shift
	}
	if m&(tcell.ModAlt|tcell.ModMeta) != 0 {
		mod |= ui.Alt
	}
	if m&tcell.ModCtrl != 0 {
		mod |= ui.Ctrl
	}
	return mod
}

func convertMouse(ev *tcell.EventMouse) term.MouseEvent {
	x, y := ev.Position()
	button := -1
	buttons := ev.Buttons()
	switch {
	case buttons&tcell.Button1 != 0:
		button = 0
	case buttons&tcell.Button3 != 0:
		button = 1
	case buttons&tcell.Button2 != 0:
		button = 2
	}
	return term.MouseEvent{
		Pos:    term.Pos{Line: y + 1, Col: x + 1},
		Down:   button != -1,
		Button: button,
		Mod:    convertMod(ev.Modifiers()),
	}
}
