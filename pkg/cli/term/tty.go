package term

import (
	"errors"
	"fmt"
	"os"
	"time"

	"src.crispy.sh/pkg/logutil"
	"src.crispy.sh/pkg/sys"
)

var logger = logutil.GetLogger("[term] ")

// How long to wait for the terminal to answer a cursor position query.
var cprTimeout = time.Second

var errNoCPR = errors.New("terminal did not report cursor position")

// TTY is a terminal driven with VT100 sequences. It combines a Reader on the
// input file with a Writer on the output file, and implements Surface, Sizer
// and the event source of the editor.
type TTY struct {
	*Writer
	out *os.File
	r   Reader
	// Events read while waiting for a cursor position report.
	pending []Event
	// Whether a Release is queued after every Press. Legacy terminals never
	// report key releases.
	synthesizeRelease bool
}

// NewTTY creates a TTY. If reportsRelease is false, a Release event is
// synthesized after each key Press.
func NewTTY(in, out *os.File, reportsRelease bool) (*TTY, error) {
	r, err := NewReader(in)
	if err != nil {
		return nil, err
	}
	return newTTY(r, out, reportsRelease), nil
}

func newTTY(r Reader, out *os.File, reportsRelease bool) *TTY {
	return &TTY{Writer: NewWriter(out), out: out, r: r,
		synthesizeRelease: !reportsRelease}
}

// NextEvent returns the next event, blocking until one is available.
func (t *TTY) NextEvent() (Event, error) {
	var ev Event
	if len(t.pending) > 0 {
		ev, t.pending = t.pending[0], t.pending[1:]
	} else {
		var err error
		ev, err = t.r.ReadEvent()
		if err != nil {
			return nil, err
		}
	}
	if k, ok := ev.(KeyEvent); ok && k.Phase == Press && t.synthesizeRelease {
		t.pending = append([]Event{k.WithPhase(Release)}, t.pending...)
	}
	return ev, nil
}

// CursorPosition queries the terminal for the position of the cursor and
// returns it 0-based. Events that arrive before the report are kept and
// returned by later NextEvent calls.
func (t *TTY) CursorPosition() (col, row int, err error) {
	t.Writer.Write(queryPosition)
	if err := t.Flush(); err != nil {
		return 0, 0, err
	}
	for {
		ev, err := t.r.ReadEventWithTimeout(cprTimeout)
		switch {
		case errors.Is(err, errTimeout):
			return 0, 0, errNoCPR
		case err != nil && IsReadErrorRecoverable(err):
			logger.Println("skipping while waiting for CPR:", err)
			continue
		case err != nil:
			return 0, 0, fmt.Errorf("read cursor position: %w", err)
		}
		if cpr, ok := ev.(CursorPosition); ok {
			return cpr.Col - 1, cpr.Line - 1, nil
		}
		t.pending = append(t.pending, ev)
	}
}

// Size returns the width and height of the terminal.
func (t *TTY) Size() (width, height int) {
	h, w := sys.WinSize(t.out)
	return w, h
}

// Close stops the reader. A NextEvent call blocked on input returns
// ErrStopped.
func (t *TTY) Close() {
	t.r.Close()
}
