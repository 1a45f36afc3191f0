package term

import (
	"bytes"
	"fmt"
	"io"
)

// VT100 sequences used by Writer and Setup.
const (
	hideCursor = "\033[?25l"
	showCursor = "\033[?25h"

	clearLine     = "\033[2K"
	clearScreen   = "\033[2J"
	clearToEOL    = "\033[K"
	queryPosition = "\033[6n"

	blinkingBlockCursor = "\033[1 q"
	defaultCursor       = "\033[0 q"

	enableMouse  = "\033[?1000h\033[?1006h"
	disableMouse = "\033[?1006l\033[?1000l"

	// Kitty keyboard protocol: push flags "disambiguate escape codes" and
	// "report event types", and pop them.
	pushKittyFlags = "\033[>3u"
	popKittyFlags  = "\033[<u"
)

// Writer writes VT100 sequences to an io.Writer. Output is collected in an
// internal buffer and written in one go on Flush, so that the terminal never
// shows half-drawn states.
type Writer struct {
	file io.Writer
	buf  bytes.Buffer
}

// NewWriter returns a Writer that writes to the given io.Writer.
func NewWriter(f io.Writer) *Writer {
	return &Writer{file: f}
}

// MoveCursor moves the cursor to the given 0-based column and row.
func (w *Writer) MoveCursor(col, row int) error {
	fmt.Fprintf(&w.buf, "\033[%d;%dH", row+1, col+1)
	return nil
}

// Clear clears part of the screen.
func (w *Writer) Clear(t ClearType) error {
	switch t {
	case ClearLine:
		w.buf.WriteString(clearLine)
	case ClearScreen:
		w.buf.WriteString(clearScreen)
	case ClearToEOL:
		w.buf.WriteString(clearToEOL)
	default:
		return fmt.Errorf("unknown clear type %d", t)
	}
	return nil
}

// Write writes text at the cursor.
func (w *Writer) Write(text string) error {
	w.buf.WriteString(text)
	return nil
}

// Flush writes all buffered output.
func (w *Writer) Flush() error {
	if w.buf.Len() == 0 {
		return nil
	}
	_, err := w.file.Write(w.buf.Bytes())
	w.buf.Reset()
	return err
}

// HideCursor hides the cursor.
func (w *Writer) HideCursor() { w.buf.WriteString(hideCursor) }

// ShowCursor shows the cursor.
func (w *Writer) ShowCursor() { w.buf.WriteString(showCursor) }
