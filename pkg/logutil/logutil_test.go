package logutil

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogger(t *testing.T) {
	logger := GetLogger("foo ")
	defer SetOutput(io.Discard)

	var sb strings.Builder
	SetOutput(&sb)
	logger.Println("out 1")
	if !strings.Contains(sb.String(), "foo ") || !strings.Contains(sb.String(), "out 1") {
		t.Errorf("got %q, want prefix and message", sb.String())
	}

	logFile := filepath.Join(t.TempDir(), "log")
	if err := SetOutputFile(logFile); err != nil {
		t.Fatal(err)
	}
	logger.Println("out 2")
	if err := SetOutputFile(""); err != nil {
		t.Fatal(err)
	}
	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "out 2") {
		t.Errorf("log file content %q doesn't contain the message", content)
	}
	if strings.Contains(sb.String(), "out 2") {
		t.Errorf("old output still receives messages after SetOutputFile")
	}
}

func TestSetOutputFile_Error(t *testing.T) {
	err := SetOutputFile(filepath.Join(t.TempDir(), "no", "such", "dir", "log"))
	if err == nil {
		t.Errorf("got nil error, want non-nil")
	}
}
