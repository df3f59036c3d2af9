package cli

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Logger provides logging functionality with debug support.
// It is safe for concurrent use by hashing workers.
type Logger struct {
	out     io.Writer
	errOut  io.Writer
	mu      sync.Mutex
	verbose bool
}

// NewLogger creates a new Logger instance
func NewLogger(verbose bool) *Logger {
	return newLoggerTo(os.Stdout, os.Stderr, verbose)
}

func newLoggerTo(out, errOut io.Writer, verbose bool) *Logger {
	return &Logger{
		out:     out,
		errOut:  errOut,
		verbose: verbose,
	}
}

// Info prints an informational message to stdout
func (l *Logger) Info(format string, args ...interface{}) {
	l.write(l.out, format+"\n", args...)
}

// Error prints an error message to stderr
func (l *Logger) Error(format string, args ...interface{}) {
	l.write(l.errOut, format+"\n", args...)
}

// Verbose prints a debug message to stderr if debug mode is enabled.
// Debug output never mixes with hash results on stdout.
func (l *Logger) Verbose(format string, args ...interface{}) {
	if l.IsVerbose() {
		l.write(l.errOut, "[DEBUG] "+format+"\n", args...)
	}
}

// SetVerbose enables or disables debug logging
func (l *Logger) SetVerbose(verbose bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verbose = verbose
}

// IsVerbose returns whether debug mode is enabled
func (l *Logger) IsVerbose() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.verbose
}

func (l *Logger) write(w io.Writer, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(w, msg)
}
