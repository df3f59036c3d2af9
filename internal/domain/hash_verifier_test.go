package domain_test

import (
	"context"
	"errors"
	"io/fs"
	"testing"

	"github.com/mazrean/hashfiles/internal/domain"
	"github.com/mazrean/hashfiles/internal/port"
)

// tableHasher returns fixed values per path and fs.ErrNotExist for unknown paths.
type tableHasher map[string]string

func (h tableHasher) HashFile(ctx context.Context, path string) (*port.HashResult, error) {
	value, ok := h[path]
	if !ok {
		return nil, &domain.FileError{Path: path, Op: "stat", Err: fs.ErrNotExist}
	}
	return &port.HashResult{Algorithm: "MD5", Value: value}, nil
}

func (h tableHasher) HashAlgorithm() string { return "MD5" }

func TestParseChecksumLine(t *testing.T) {
	tests := []struct {
		want    domain.ChecksumEntry
		name    string
		line    string
		wantErr bool
	}{
		{
			name: "simple line",
			line: "098f6bcd4621d373cade4e832627b4f6 test.txt",
			want: domain.ChecksumEntry{Expected: "098f6bcd4621d373cade4e832627b4f6", Path: "test.txt", Line: 1},
		},
		{
			name: "path with spaces",
			line: "abc my file.txt",
			want: domain.ChecksumEntry{Expected: "abc", Path: "my file.txt", Line: 1},
		},
		{
			name: "CRLF line ending",
			line: "abc test.txt\r",
			want: domain.ChecksumEntry{Expected: "abc", Path: "test.txt", Line: 1},
		},
		{name: "hash only", line: "098f6bcd4621d373cade4e832627b4f6", wantErr: true},
		{name: "empty", line: "", wantErr: true},
		{name: "leading space", line: " test.txt", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseChecksumLine(tt.line, 1)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidChecksumLine) {
					t.Errorf("ParseChecksumLine() error = %v, want ErrInvalidChecksumLine", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseChecksumLine() unexpected error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseChecksumLine() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestHashVerifier_Verify(t *testing.T) {
	hasher := tableHasher{"a.txt": "abcdef", "b.txt": "NvAo="}
	verifier := domain.NewHashVerifier(hasher)

	tests := []struct {
		name      string
		entry     domain.ChecksumEntry
		wantMatch bool
		wantErr   bool
	}{
		{name: "matching hash", entry: domain.ChecksumEntry{Expected: "abcdef", Path: "a.txt"}, wantMatch: true},
		{name: "upper case hex", entry: domain.ChecksumEntry{Expected: "ABCDEF", Path: "a.txt"}, wantMatch: true},
		{name: "base64 is case-sensitive", entry: domain.ChecksumEntry{Expected: "nvao=", Path: "b.txt"}, wantMatch: false},
		{name: "mismatching hash", entry: domain.ChecksumEntry{Expected: "123456", Path: "a.txt"}, wantMatch: false},
		{name: "missing file", entry: domain.ChecksumEntry{Expected: "abcdef", Path: "gone.txt"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := verifier.Verify(context.Background(), tt.entry)

			if result.Path != tt.entry.Path || result.Expected != tt.entry.Expected {
				t.Errorf("result does not describe the entry: %+v", result)
			}
			if result.Match != tt.wantMatch {
				t.Errorf("Match = %v, want %v", result.Match, tt.wantMatch)
			}
			if (result.Err != nil) != tt.wantErr {
				t.Errorf("Err = %v, wantErr %v", result.Err, tt.wantErr)
			}
		})
	}
}

func TestHashVerifier_VerifyAll(t *testing.T) {
	hasher := tableHasher{"a.txt": "aaa", "b.txt": "bbb"}
	verifier := domain.NewHashVerifier(hasher)

	t.Run("all match", func(t *testing.T) {
		summary, err := verifier.VerifyAll(context.Background(), []domain.ChecksumEntry{
			{Expected: "aaa", Path: "a.txt"},
			{Expected: "bbb", Path: "b.txt"},
		})
		if err != nil {
			t.Fatalf("VerifyAll() unexpected error = %v", err)
		}
		if summary.Total != 2 || summary.SuccessCount != 2 || summary.FailureCount != 0 {
			t.Errorf("unexpected summary: %+v", summary)
		}
	})

	t.Run("mismatch and missing file", func(t *testing.T) {
		summary, err := verifier.VerifyAll(context.Background(), []domain.ChecksumEntry{
			{Expected: "aaa", Path: "a.txt"},
			{Expected: "xxx", Path: "b.txt"},
			{Expected: "ccc", Path: "c.txt"},
		})
		if !errors.Is(err, domain.ErrChecksumMismatch) {
			t.Fatalf("VerifyAll() error = %v, want ErrChecksumMismatch", err)
		}
		if summary.Total != 3 || summary.SuccessCount != 1 || summary.FailureCount != 2 {
			t.Errorf("unexpected summary: %+v", summary)
		}
		if summary.Results[2].Err == nil {
			t.Error("missing file should carry its error")
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		summary, err := verifier.VerifyAll(ctx, []domain.ChecksumEntry{{Expected: "aaa", Path: "a.txt"}})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("VerifyAll() error = %v, want context.Canceled", err)
		}
		if summary.Total != 0 {
			t.Errorf("no entry should be verified, got %d", summary.Total)
		}
	})
}
