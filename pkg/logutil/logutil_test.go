package logutil

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetOutput_AffectsExistingAndNewLoggers(t *testing.T) {
	t.Cleanup(func() { SetOutput(io.Discard) })
	var buf bytes.Buffer
	old := GetLogger("[old] ")
	SetOutput(&buf)
	recent := GetLogger("[new] ")

	old.Print("one")
	recent.Print("two")

	got := buf.String()
	if !strings.Contains(got, "[old] one") || !strings.Contains(got, "[new] two") {
		t.Errorf("got log output %q, want both messages", got)
	}
}

func TestSetOutputFile(t *testing.T) {
	t.Cleanup(func() { SetOutput(io.Discard) })
	fname := filepath.Join(t.TempDir(), "log")
	if err := SetOutputFile(fname); err != nil {
		t.Fatal(err)
	}
	GetLogger("[file] ").Print("hello")
	SetOutputFile("")

	content, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "[file] hello") {
		t.Errorf("log file has %q, want it to contain the message", content)
	}
}
