// Package logging provides the line-oriented tagged logger the relay writes
// to standard output. Log lines carry one of four severity tags ([INFO],
// [HEALTH], [ERROR], [TOOL]) and are consumed by an external log-collection
// pipeline, so the format is plain text, one event per line.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Tag identifies the severity/category of a log line.
type Tag string

const (
	TagInfo   Tag = "INFO"
	TagHealth Tag = "HEALTH"
	TagError  Tag = "ERROR"
	TagTool   Tag = "TOOL"
)

// Logger writes tagged, timestamped lines to a single writer.
// Safe for concurrent use.
type Logger struct {
	mu       sync.Mutex
	writer   io.Writer
	showTime bool
}

// New creates a Logger writing to w. A nil writer defaults to os.Stdout.
func New(w io.Writer) *Logger {
	if w == nil {
		w = os.Stdout
	}
	return &Logger{writer: w, showTime: true}
}

// SetShowTime enables or disables the timestamp prefix. Tests disable it to
// get deterministic output.
func (l *Logger) SetShowTime(enabled bool) {
	l.mu.Lock()
	l.showTime = enabled
	l.mu.Unlock()
}

// Info logs general request/response flow.
func (l *Logger) Info(format string, args ...any) {
	l.log(TagInfo, format, args...)
}

// Health logs liveness-probe traffic. Kept on its own tag so probe noise can
// be filtered out downstream.
func (l *Logger) Health(format string, args ...any) {
	l.log(TagHealth, format, args...)
}

// Error logs failures. The full error chain belongs here: handlers return a
// generic message to the caller and log the detail through this method.
func (l *Logger) Error(format string, args ...any) {
	l.log(TagError, format, args...)
}

// Tool logs tool invocations made by the agent during a model turn.
func (l *Logger) Tool(format string, args ...any) {
	l.log(TagTool, format, args...)
}

func (l *Logger) log(tag Tag, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.showTime {
		fmt.Fprintf(l.writer, "%s [%s] %s\n", time.Now().UTC().Format(time.RFC3339), tag, msg) //nolint:errcheck
		return
	}
	fmt.Fprintf(l.writer, "[%s] %s\n", tag, msg) //nolint:errcheck
}
