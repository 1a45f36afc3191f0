//go:build unix

package sys

import (
	"os"
	"testing"
	"time"

	"github.com/creack/pty"
)

func TestWaitForRead(t *testing.T) {
	r0, w0 := mustPipe(t)
	r1, w1 := mustPipe(t)
	defer closeAll(r0, w0, r1, w1)

	w0.WriteString("x")
	ready, err := WaitForRead(-1, r0, r1)
	if err != nil {
		t.Errorf("WaitForRead errors: %v", err)
	}
	if !ready[0] || ready[1] {
		t.Errorf("got ready %v, want [true false]", ready)
	}
}

func TestWaitForRead_Timeout(t *testing.T) {
	r, w := mustPipe(t)
	defer closeAll(r, w)

	ready, err := WaitForRead(time.Millisecond, r)
	if err != nil {
		t.Errorf("WaitForRead errors: %v", err)
	}
	if ready[0] {
		t.Errorf("got ready %v, want [false]", ready)
	}
}

func TestIsATTYAndWinSize(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skip("pty not available:", err)
	}
	defer closeAll(ptmx, tty)

	if !IsATTY(tty.Fd()) {
		t.Errorf("IsATTY(pty) -> false")
	}
	if err := pty.Setsize(ptmx, &pty.Winsize{Rows: 30, Cols: 100}); err != nil {
		t.Fatal(err)
	}
	if row, col := WinSize(tty); row != 30 || col != 100 {
		t.Errorf("WinSize -> %d, %d, want 30, 100", row, col)
	}

	r, w := mustPipe(t)
	defer closeAll(r, w)
	if IsATTY(r.Fd()) {
		t.Errorf("IsATTY(pipe) -> true")
	}
	if row, col := WinSize(r); row != -1 || col != -1 {
		t.Errorf("WinSize(pipe) -> %d, %d, want -1, -1", row, col)
	}
}

func mustPipe(t *testing.T) (*os.File, *os.File) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	return r, w
}

func closeAll(files ...*os.File) {
	for _, f := range files {
		f.Close()
	}
}
