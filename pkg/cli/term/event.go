package term

import (
	"fmt"

	"src.crispy.sh/pkg/ui"
)

// Event represents an event that can be read from the terminal.
type Event interface {
	isEvent()
}

// Phase is the phase of a key event.
type Phase uint8

// Possible values for Phase.
const (
	Press Phase = iota
	Repeat
	Release
)

var phaseNames = [...]string{Press: "press", Repeat: "repeat", Release: "release"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", p)
}

// KeyEvent represents a key press, repeat or release.
type KeyEvent struct {
	Key   ui.Key
	Phase Phase
}

// K constructs a new KeyEvent in the Press phase.
func K(r rune, mods ...ui.Mod) KeyEvent {
	return KeyEvent{Key: ui.K(r, mods...)}
}

// WithPhase returns a copy of the event in another phase.
func (ev KeyEvent) WithPhase(p Phase) KeyEvent {
	ev.Phase = p
	return ev
}

func (ev KeyEvent) String() string {
	return ev.Key.String() + " " + ev.Phase.String()
}

// MouseEvent is a mouse event.
type MouseEvent struct {
	Pos
	Down bool
	// Number of the Button, 0-based. -1 for unknown.
	Button int
	Mod    ui.Mod
}

// Pos is a line/column position.
type Pos struct {
	Line, Col int
}

// CursorPosition represents a report of the current cursor position from the
// terminal driver, usually as a response from a cursor position request. Both
// fields are 1-based.
type CursorPosition Pos

// PasteSetting indicates the start or finish of pasted text.
type PasteSetting bool

func (KeyEvent) isEvent()       {}
func (MouseEvent) isEvent()     {}
func (CursorPosition) isEvent() {}
func (PasteSetting) isEvent()   {}
