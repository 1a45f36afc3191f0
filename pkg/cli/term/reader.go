package term

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// Reader reads events from the terminal.
type Reader interface {
	// ReadEvent reads a single event from the terminal.
	ReadEvent() (Event, error)
	// ReadEventWithTimeout is like ReadEvent, but gives up when no event
	// starts within the timeout. A negative timeout means no timeout.
	ReadEventWithTimeout(timeout time.Duration) (Event, error)
	// Close releases resources associated with the Reader. Any outstanding
	// ReadEvent call will be aborted, returning ErrStopped.
	Close()
}

// ErrStopped is returned by Reader when Close is called during a ReadEvent
// call.
var ErrStopped = errors.New("stopped")

var errTimeout = errors.New("timed out")

type seqError struct {
	msg string
	seq string
}

func (err seqError) Error() string {
	return fmt.Sprintf("%s: %q", err.msg, err.seq)
}

// NewReader creates a new Reader on the given terminal file.
func NewReader(f *os.File) (Reader, error) {
	return newReader(f)
}

// IsReadErrorRecoverable returns whether an error returned by Reader is
// recoverable, i.e. whether the caller may simply read the next event.
func IsReadErrorRecoverable(err error) bool {
	var se seqError
	if errors.As(err, &se) {
		return true
	}
	return errors.Is(err, errTimeout) || errors.Is(err, errBadEncoding)
}
