package linebuf

// Position is the logical position of the cursor. Col is an offset into the
// line, excluding the prompt; Row is the terminal row the line is on.
type Position struct {
	Col, Row int
}

// MoveLeft moves the position one column left. It stops at column 0.
func (p *Position) MoveLeft() {
	if p.Col > 0 {
		p.Col--
	}
}

// MoveRight moves the position one column right. The column is not bounded
// here; Buffer keeps it within the line.
func (p *Position) MoveRight() { p.Col++ }

// Down moves the position to the next row.
func (p *Position) Down() { p.Row++ }

// Set sets both the column and the row. Negative values are taken as 0.
func (p *Position) Set(col, row int) {
	p.Col = max(col, 0)
	p.Row = max(row, 0)
}
