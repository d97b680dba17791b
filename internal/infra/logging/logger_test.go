package logging

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

func TestTaggedOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.SetShowTime(false)

	l.Info("request received: %d bytes", 42)
	l.Health("ping")
	l.Error("invoke failed: %v", "boom")
	l.Tool("current_time -> %s", "2026-01-01T00:00:00Z")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	want := []string{
		"[INFO] request received: 42 bytes",
		"[HEALTH] ping",
		"[ERROR] invoke failed: boom",
		"[TOOL] current_time -> 2026-01-01T00:00:00Z",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %q", len(lines), len(want), lines)
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
}

func TestTimestampPrefix(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	l.Info("hello")

	line := buf.String()
	if !strings.Contains(line, "[INFO] hello") {
		t.Fatalf("line %q missing tagged message", line)
	}
	// RFC3339 timestamps start with the year and contain 'T'.
	if !strings.HasPrefix(line, "20") || !strings.Contains(line, "T") {
		t.Fatalf("line %q missing RFC3339 timestamp prefix", line)
	}
}

func TestConcurrentWritesDoNotInterleave(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.SetShowTime(false)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Info("line")
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 50 {
		t.Fatalf("got %d lines, want 50", len(lines))
	}
	for _, line := range lines {
		if line != "[INFO] line" {
			t.Fatalf("interleaved line: %q", line)
		}
	}
}
