package term

// ClearType selects the region cleared by Surface.Clear.
type ClearType int

// Possible values for ClearType.
const (
	// ClearLine clears the line the cursor is on.
	ClearLine ClearType = iota
	// ClearScreen clears the whole screen.
	ClearScreen
	// ClearToEOL clears from the cursor to the end of the line.
	ClearToEOL
)

// Surface is the output side of a terminal. Output may be buffered until
// Flush is called. Columns and rows are 0-based.
type Surface interface {
	MoveCursor(col, row int) error
	Clear(ClearType) error
	Write(text string) error
	Flush() error
	// CursorPosition queries the position of the hardware cursor.
	CursorPosition() (col, row int, err error)
}

// CursorHider is implemented by surfaces that can hide the cursor while a
// repaint is in progress.
type CursorHider interface {
	HideCursor()
	ShowCursor()
}

// Sizer is implemented by surfaces that know their size.
type Sizer interface {
	Size() (width, height int)
}
