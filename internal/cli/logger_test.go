package cli

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

func TestLogger_Info(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(false)
	logger.out = &buf

	logger.Info("Test message: %s", "hello")

	got := buf.String()
	want := "Test message: hello\n"
	if got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}
}

func TestLogger_Error(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(false)
	logger.errOut = &buf

	logger.Error("Error: %s", "test error")

	got := buf.String()
	want := "Error: test error\n"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestLogger_Verbose_Enabled(t *testing.T) {
	var buf, stdout bytes.Buffer
	logger := NewLogger(true)
	logger.out = &stdout
	logger.errOut = &buf

	logger.Verbose("Debug info: %d", 42)

	got := buf.String()
	if !strings.HasPrefix(got, "[DEBUG] ") {
		t.Errorf("Verbose() should include [DEBUG] prefix, got %q", got)
	}
	if stdout.Len() != 0 {
		t.Errorf("Verbose() should not write to stdout, got %q", stdout.String())
	}
	if !strings.Contains(got, "Debug info: 42") {
		t.Errorf("Verbose() should include message, got %q", got)
	}
}

func TestLogger_Verbose_Disabled(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(false)
	logger.out = &buf
	logger.errOut = &buf

	logger.Verbose("Debug info: %d", 42)

	got := buf.String()
	if got != "" {
		t.Errorf("Verbose() should not print when disabled, got %q", got)
	}
}

func TestLogger_SetVerbose(t *testing.T) {
	logger := NewLogger(false)

	if logger.IsVerbose() {
		t.Error("Logger should start with verbose disabled")
	}

	logger.SetVerbose(true)
	if !logger.IsVerbose() {
		t.Error("Logger verbose should be enabled after SetVerbose(true)")
	}

	logger.SetVerbose(false)
	if logger.IsVerbose() {
		t.Error("Logger verbose should be disabled after SetVerbose(false)")
	}
}

func TestLogger_IsVerbose(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
	}{
		{"verbose enabled", true},
		{"verbose disabled", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogger(tt.verbose)
			if got := logger.IsVerbose(); got != tt.verbose {
				t.Errorf("IsVerbose() = %v, want %v", got, tt.verbose)
			}
		})
	}
}

func TestLogger_ConcurrentLines(t *testing.T) {
	var buf bytes.Buffer
	logger := newLoggerTo(&buf, &buf, true)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logger.Verbose("worker %d", id)
			logger.Error("error %d", id)
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 32 {
		t.Fatalf("expected 32 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "[DEBUG] worker ") && !strings.HasPrefix(line, "error ") {
			t.Errorf("interleaved line: %q", line)
		}
	}
}
