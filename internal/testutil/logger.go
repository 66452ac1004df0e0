// Package testutil holds helpers shared by package tests.
package testutil

import (
	"fmt"
	"sync"
)

// Logger records formatted log lines so tests can assert on them
type Logger struct {
	mu    sync.Mutex
	lines []string
}

func (l *Logger) Debug(format string, v ...interface{}) { l.add("DEBUG", format, v) }
func (l *Logger) Info(format string, v ...interface{})  { l.add("INFO", format, v) }
func (l *Logger) Warn(format string, v ...interface{})  { l.add("WARN", format, v) }
func (l *Logger) Error(format string, v ...interface{}) { l.add("ERROR", format, v) }

func (l *Logger) add(level, format string, v []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, level+" "+fmt.Sprintf(format, v...))
}

// Lines returns a copy of everything logged so far
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}
