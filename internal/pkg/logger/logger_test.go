package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestStdLoggerSilentWhenNotVerbose(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)
	l.Info("hello", map[string]interface{}{"k": "v"})
	l.Error("boom", errors.New("bad"), nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestStdLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, true)
	l.Error("store flush", errors.New("disk full"), map[string]interface{}{"key": "history"})
	out := buf.String()
	for _, want := range []string{"store flush", "key=history", "disk full", "level=ERROR"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}
