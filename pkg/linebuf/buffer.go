// Package linebuf implements the editable line of the REPL.
//
// The line is kept as two spans, the text before the cursor and the text
// after it. Inserting and deleting at the cursor only touches the end of the
// first span. Any other cursor movement splits the whole line again at the new
// column, so the length of the first span is always the cursor column.
package linebuf

// Buffer is the editable line together with the cursor position. The zero
// value is an empty line with the cursor at (0, 0).
type Buffer struct {
	pos    Position
	before []rune
	after  []rune
}

// New returns an empty Buffer on the given terminal row.
func New(row int) *Buffer {
	b := &Buffer{}
	b.pos.Set(0, row)
	return b
}

// Pos returns the cursor position.
func (b *Buffer) Pos() Position { return b.pos }

// Before returns the text left of the cursor.
func (b *Buffer) Before() string { return string(b.before) }

// After returns the text at and right of the cursor.
func (b *Buffer) After() string { return string(b.after) }

// String returns the whole line.
func (b *Buffer) String() string { return string(b.Runes()) }

// Runes returns a copy of the whole line.
func (b *Buffer) Runes() []rune {
	line := make([]rune, 0, len(b.before)+len(b.after))
	line = append(line, b.before...)
	return append(line, b.after...)
}

// Len returns the number of runes in the line.
func (b *Buffer) Len() int { return len(b.before) + len(b.after) }

// Insert inserts a rune at the cursor and moves the cursor past it.
func (b *Buffer) Insert(r rune) {
	b.before = append(b.before, r)
	b.pos.MoveRight()
}

// InsertString inserts all runes of s at the cursor.
func (b *Buffer) InsertString(s string) {
	for _, r := range s {
		b.Insert(r)
	}
}

// DeleteBefore deletes the rune left of the cursor. It does nothing at the
// start of the line.
func (b *Buffer) DeleteBefore() {
	if len(b.before) == 0 {
		return
	}
	b.before = b.before[:len(b.before)-1]
	b.pos.MoveLeft()
}

// DeleteAfterOne deletes the rune under the cursor. It returns false and does
// nothing if the cursor is at the end of the line.
func (b *Buffer) DeleteAfterOne() bool {
	if len(b.after) == 0 {
		return false
	}
	b.after = append([]rune(nil), b.after[1:]...)
	return true
}

// MoveLeft moves the cursor one rune left. It returns false and does nothing
// at the start of the line.
func (b *Buffer) MoveLeft() bool {
	if b.pos.Col == 0 {
		return false
	}
	b.pos.MoveLeft()
	b.split()
	return true
}

// MoveRight moves the cursor one rune right. It returns false and does
// nothing at the end of the line.
func (b *Buffer) MoveRight() bool {
	if b.pos.Col == b.Len() {
		return false
	}
	b.pos.MoveRight()
	b.split()
	return true
}

// SetCol moves the cursor to column x, clamped to the line.
func (b *Buffer) SetCol(x int) {
	b.pos.Col = min(max(x, 0), b.Len())
	b.split()
}

// ToStart moves the cursor to the start of the line.
func (b *Buffer) ToStart() { b.SetCol(0) }

// ToEnd moves the cursor to the end of the line.
func (b *Buffer) ToEnd() { b.SetCol(b.Len()) }

// Clear empties the line and moves the cursor to column 0. The row is kept.
func (b *Buffer) Clear() {
	b.before = nil
	b.after = nil
	b.pos.Col = 0
}

// SetRow moves the line to another terminal row.
func (b *Buffer) SetRow(row int) { b.pos.Set(b.pos.Col, row) }

// Down moves the line one terminal row down.
func (b *Buffer) Down() { b.pos.Down() }

// KillAfter removes the text right of the cursor and returns it.
func (b *Buffer) KillAfter() string {
	killed := string(b.after)
	b.after = nil
	return killed
}

// DeleteRange removes the text between the cursor and column to, which must
// not be left of the cursor, and returns it. The cursor does not move.
func (b *Buffer) DeleteRange(to int) string {
	to = min(max(to, b.pos.Col), b.Len())
	n := to - b.pos.Col
	killed := string(b.after[:n])
	b.after = append([]rune(nil), b.after[n:]...)
	return killed
}

// Splits the whole line at the cursor column.
func (b *Buffer) split() {
	line := b.Runes()
	b.before = line[:b.pos.Col:b.pos.Col]
	b.after = line[b.pos.Col:]
}
