// Package edit implements the line editor of the crispy REPL.
//
// The editor reads key events from an EventSource, keeps the line in a
// linebuf.Buffer and paints it on a term.Surface after every change. Key
// events are dispatched through an ordered table of bindings; each binding
// has a predicate and an action, and every binding whose predicate matches
// runs. On Enter the line is handed to the interpreter.
package edit

import (
	"errors"
	"fmt"

	"github.com/mattn/go-runewidth"

	"src.crispy.sh/pkg/cli/term"
	"src.crispy.sh/pkg/killring"
	"src.crispy.sh/pkg/linebuf"
	"src.crispy.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[edit] ")

// ErrTerminate is returned by actions to end the session. Run turns it into
// a nil error.
var ErrTerminate = errors.New("terminate session")

// EventSource supplies terminal events. It is implemented by term.TTY and
// tcellterm.Screen.
type EventSource interface {
	NextEvent() (term.Event, error)
}

// Options configures an Editor.
type Options struct {
	Prompt string
	// Show notifications on the bottom row.
	StatusLine bool
	// Show the last event and the buffer state above the status line.
	Debug bool
}

// Editor is a single-line editor session.
type Editor struct {
	src      EventSource
	surface  term.Surface
	kills    killring.Ring
	opts     Options
	bindings []Binding

	promptWidth int
	buf         *linebuf.Buffer
	status      string
	lastEvent   term.Event
}

// NewEditor creates an Editor. The kill ring is used by the kill and yank
// bindings.
func NewEditor(src EventSource, s term.Surface, kills killring.Ring, opts Options) *Editor {
	return &Editor{
		src: src, surface: s, kills: kills, opts: opts,
		bindings:    defaultBindings,
		promptWidth: runewidth.StringWidth(opts.Prompt),
		buf:         linebuf.New(0),
	}
}

// Buffer returns the line buffer.
func (ed *Editor) Buffer() *linebuf.Buffer { return ed.buf }

// Status returns the last notification.
func (ed *Editor) Status() string { return ed.status }

// Run shows the prompt and processes events until a binding terminates the
// session or the event source is stopped, in which case it returns nil.
// Other errors from the event source or the surface end the session and are
// returned.
func (ed *Editor) Run() error {
	err := ed.run()
	if errors.Is(err, ErrTerminate) || errors.Is(err, term.ErrStopped) {
		logger.Println("session ended:", err)
		return nil
	}
	return err
}

func (ed *Editor) run() error {
	if err := ed.start(); err != nil {
		return err
	}
	for {
		ev, err := ed.src.NextEvent()
		if err != nil {
			if term.IsReadErrorRecoverable(err) {
				logger.Println("skipping bad input:", err)
				continue
			}
			return err
		}
		if err := ed.Handle(ev); err != nil {
			return err
		}
	}
}

// Prints the prompt and finds out which row the line is on.
func (ed *Editor) start() error {
	if err := ed.writePrompt(); err != nil {
		return err
	}
	_, row, err := ed.surface.CursorPosition()
	if err != nil {
		return fmt.Errorf("find start row: %w", err)
	}
	row, err = ed.scrollAboveFooter(row)
	if err != nil {
		return err
	}
	ed.buf = linebuf.New(row)
	logger.Println("editing at row", row)
	return ed.display()
}

// Handle dispatches one event. Every binding that matches a key event runs,
// in table order; dispatching stops at the first error.
func (ed *Editor) Handle(ev term.Event) error {
	ed.lastEvent = ev
	if k, ok := ev.(term.KeyEvent); ok {
		for _, b := range ed.bindings {
			if !b.Match(k) {
				continue
			}
			if err := b.Action(ed); err != nil {
				return err
			}
		}
	} else {
		logger.Printf("ignoring %#v", ev)
	}
	if ed.opts.Debug {
		return ed.paintDebug()
	}
	return nil
}

// Reports a boundary condition. The line is not changed.
func (ed *Editor) notify(msg string) error {
	logger.Println(msg)
	ed.status = msg
	if !ed.opts.StatusLine {
		return nil
	}
	return ed.paintStatus()
}
