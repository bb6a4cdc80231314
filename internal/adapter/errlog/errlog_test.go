package errlog

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestRecordFormatsLine(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 67_891_000, time.UTC) }

	if err := l.Record(errors.New("OpenRouter API error: 502\nbad gateway")); err != nil {
		t.Fatalf("record: %v", err)
	}

	want := "2025-01-02T03:04:05.067Z - Error: OpenRouter API error: 502 bad gateway\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestOpenAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server_error.log")
	if err := os.WriteFile(path, []byte("existing line\n"), 0o600); err != nil {
		t.Fatalf("seed log: %v", err)
	}

	l := Open(path, 1, 1)
	if err := l.Record(errors.New("first")); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := l.Record(errors.New("second")); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), data)
	}
	if lines[0] != "existing line" {
		t.Fatalf("existing content was not preserved: %q", lines[0])
	}
	if !strings.HasSuffix(lines[2], " - Error: second") {
		t.Fatalf("unexpected last line %q", lines[2])
	}
}
