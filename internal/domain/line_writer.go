package domain

import (
	"fmt"
	"io"
	"sync"
)

// LineWriter serialises whole lines onto a shared writer so that lines written
// from concurrent workers never interleave.
type LineWriter struct {
	w  io.Writer
	mu sync.Mutex
}

// NewLineWriter wraps w.
func NewLineWriter(w io.Writer) *LineWriter {
	return &LineWriter{w: w}
}

// WriteLine writes line followed by a newline in a single Write call.
func (l *LineWriter) WriteLine(line string) error {
	buf := make([]byte, 0, len(line)+1)
	buf = append(buf, line...)
	buf = append(buf, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	_, err := l.w.Write(buf)
	return err
}

// Printf formats and writes one line.
func (l *LineWriter) Printf(format string, args ...any) error {
	return l.WriteLine(fmt.Sprintf(format, args...))
}

// FormatResultLine renders one successful result: the hash alone when filenames
// are excluded, otherwise "<hash> <path>".
func FormatResultLine(value, path string, excludeFilename bool) string {
	if excludeFilename {
		return value
	}
	return value + " " + path
}
