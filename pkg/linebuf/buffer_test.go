package linebuf

import (
	"math/rand"
	"testing"
	"unicode/utf8"
)

type op struct {
	name string
	f    func(b *Buffer)
}

var ops = []op{
	{"insert a", func(b *Buffer) { b.Insert('a') }},
	{"insert space", func(b *Buffer) { b.Insert(' ') }},
	{"insert 世", func(b *Buffer) { b.Insert('世') }},
	{"delete before", (*Buffer).DeleteBefore},
	{"delete after", func(b *Buffer) { b.DeleteAfterOne() }},
	{"left", func(b *Buffer) { b.MoveLeft() }},
	{"right", func(b *Buffer) { b.MoveRight() }},
	{"start", (*Buffer).ToStart},
	{"end", (*Buffer).ToEnd},
	{"set col 2", func(b *Buffer) { b.SetCol(2) }},
	{"kill after", func(b *Buffer) { b.KillAfter() }},
	{"delete word", func(b *Buffer) { b.DeleteRange(NextWordStart(b.Runes(), b.Pos().Col)) }},
	{"prev word", func(b *Buffer) {
		if x, ok := PrevWordStart(b.Runes(), b.Pos().Col); ok {
			b.SetCol(x)
		}
	}},
	{"next word", func(b *Buffer) { b.SetCol(NextWordStart(b.Runes(), b.Pos().Col)) }},
	{"yank", func(b *Buffer) { b.InsertString("xy") }},
}

func checkInvariants(t *testing.T, b *Buffer, history []string) {
	t.Helper()
	if got := utf8.RuneCountInString(b.Before()); got != b.Pos().Col {
		t.Fatalf("after %v: len(before) = %d, column = %d", history, got, b.Pos().Col)
	}
	if got := b.Before() + b.After(); got != b.String() {
		t.Fatalf("after %v: before+after = %q, String() = %q", history, got, b.String())
	}
	if b.Len() != utf8.RuneCountInString(b.String()) {
		t.Fatalf("after %v: Len() = %d, line %q", history, b.Len(), b.String())
	}
}

func TestBuffer_SplitInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for run := 0; run < 200; run++ {
		b := New(0)
		var history []string
		for i := 0; i < 50; i++ {
			o := ops[rng.Intn(len(ops))]
			o.f(b)
			history = append(history, o.name)
			checkInvariants(t, b, history)
		}
	}
}

func bufferWith(s string, col int) *Buffer {
	b := New(3)
	b.InsertString(s)
	b.SetCol(col)
	return b
}

func TestBuffer_MoveAtBoundaries(t *testing.T) {
	b := bufferWith("abc", 0)
	if b.MoveLeft() {
		t.Errorf("MoveLeft at column 0 -> true")
	}
	if b.Pos() != (Position{0, 3}) || b.Before() != "" || b.After() != "abc" {
		t.Errorf("MoveLeft at column 0 changed state: %v %q %q", b.Pos(), b.Before(), b.After())
	}

	b.ToEnd()
	if b.MoveRight() {
		t.Errorf("MoveRight at the end -> true")
	}
	if b.Pos() != (Position{3, 3}) || b.Before() != "abc" || b.After() != "" {
		t.Errorf("MoveRight at the end changed state: %v %q %q", b.Pos(), b.Before(), b.After())
	}

	if !b.MoveLeft() || b.Before() != "ab" || b.After() != "c" {
		t.Errorf("MoveLeft -> %q %q, want %q %q", b.Before(), b.After(), "ab", "c")
	}
	if !b.MoveRight() || b.Before() != "abc" || b.After() != "" {
		t.Errorf("MoveRight -> %q %q, want %q %q", b.Before(), b.After(), "abc", "")
	}
}

func TestBuffer_InsertDeleteInverse(t *testing.T) {
	for col := 0; col <= 5; col++ {
		b := bufferWith("ab cd", col)
		before, after, pos := b.Before(), b.After(), b.Pos()
		b.Insert('x')
		b.DeleteBefore()
		if b.Before() != before || b.After() != after || b.Pos() != pos {
			t.Errorf("col %d: insert+delete -> %q %q %v, want %q %q %v",
				col, b.Before(), b.After(), b.Pos(), before, after, pos)
		}
	}
}

func TestBuffer_DeleteBeforeAtStart(t *testing.T) {
	b := bufferWith("ab", 0)
	b.DeleteBefore()
	if b.String() != "ab" || b.Pos().Col != 0 {
		t.Errorf("DeleteBefore at start -> %q col %d", b.String(), b.Pos().Col)
	}
}

func TestBuffer_DeleteAfterOne(t *testing.T) {
	b := bufferWith("abc", 1)
	if !b.DeleteAfterOne() || b.String() != "ac" || b.Pos().Col != 1 {
		t.Errorf("DeleteAfterOne -> %q col %d", b.String(), b.Pos().Col)
	}
	b.ToEnd()
	if b.DeleteAfterOne() {
		t.Errorf("DeleteAfterOne on empty tail -> true")
	}
	if b.String() != "ac" {
		t.Errorf("DeleteAfterOne on empty tail changed line to %q", b.String())
	}
}

func TestBuffer_StartEndRoundTrip(t *testing.T) {
	b := bufferWith("hello world", 4)
	b.ToEnd()
	b.ToStart()
	if b.Pos().Col != 0 || b.Before() != "" || b.After() != "hello world" {
		t.Errorf("got col %d, before %q, after %q", b.Pos().Col, b.Before(), b.After())
	}
}

func TestBuffer_Clear(t *testing.T) {
	b := bufferWith("abc", 2)
	b.Clear()
	if b.String() != "" || b.Pos() != (Position{0, 3}) {
		t.Errorf("Clear -> %q %v, want empty line at {0 3}", b.String(), b.Pos())
	}
}

func TestBuffer_KillAfter(t *testing.T) {
	b := bufferWith("ab cd", 2)
	if killed := b.KillAfter(); killed != " cd" {
		t.Errorf("KillAfter -> %q, want %q", killed, " cd")
	}
	if b.String() != "ab" || b.Pos().Col != 2 {
		t.Errorf("line after KillAfter: %q col %d", b.String(), b.Pos().Col)
	}
}

func TestBuffer_DeleteRange(t *testing.T) {
	b := bufferWith("ab cd ef", 3)
	if killed := b.DeleteRange(6); killed != "cd " {
		t.Errorf("DeleteRange -> %q, want %q", killed, "cd ")
	}
	if b.String() != "ab ef" || b.Pos().Col != 3 {
		t.Errorf("line after DeleteRange: %q col %d", b.String(), b.Pos().Col)
	}
	if killed := b.DeleteRange(1); killed != "" {
		t.Errorf("DeleteRange left of the cursor -> %q, want empty", killed)
	}
}

func TestBuffer_SetColClamps(t *testing.T) {
	b := bufferWith("abc", 1)
	b.SetCol(10)
	if b.Pos().Col != 3 {
		t.Errorf("SetCol(10) -> col %d, want 3", b.Pos().Col)
	}
	b.SetCol(-1)
	if b.Pos().Col != 0 {
		t.Errorf("SetCol(-1) -> col %d, want 0", b.Pos().Col)
	}
}

func TestBuffer_InsertAfterSplitKeepsTail(t *testing.T) {
	b := bufferWith("abcd", 2)
	b.Insert('X')
	b.Insert('Y')
	if b.String() != "abXYcd" {
		t.Errorf("got %q, want %q", b.String(), "abXYcd")
	}
}
