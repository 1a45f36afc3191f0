package linebuf

import "testing"

func TestPosition(t *testing.T) {
	var p Position
	p.MoveLeft()
	if p != (Position{0, 0}) {
		t.Errorf("MoveLeft at column 0 -> %v, want {0 0}", p)
	}
	p.MoveRight()
	p.MoveRight()
	p.MoveLeft()
	p.Down()
	p.Down()
	if p != (Position{1, 2}) {
		t.Errorf("got %v, want {1 2}", p)
	}
	p.Set(-3, 5)
	if p != (Position{0, 5}) {
		t.Errorf("Set(-3, 5) -> %v, want {0 5}", p)
	}
}
