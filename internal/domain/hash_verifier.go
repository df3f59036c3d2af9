package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/mazrean/hashfiles/internal/port"
)

// ChecksumEntry is one "<hash> <path>" line of a checksum list, as printed by a
// hash run without excluded filenames.
type ChecksumEntry struct {
	Expected string
	Path     string
	Line     int
}

// ParseChecksumLine splits a checksum list line at the first space.
// The path may itself contain spaces.
func ParseChecksumLine(line string, lineNo int) (ChecksumEntry, error) {
	line = strings.TrimSuffix(line, "\r")
	hash, path, ok := strings.Cut(line, " ")
	if !ok || hash == "" || path == "" {
		return ChecksumEntry{}, fmt.Errorf("%w: line %d: expected '<hash> <path>', got %q", ErrInvalidChecksumLine, lineNo, line)
	}
	return ChecksumEntry{Expected: hash, Path: path, Line: lineNo}, nil
}

// VerifyResult represents the result of verifying a single file's hash.
type VerifyResult struct {
	Err      error  // Set when the file could not be hashed
	Path     string // File that was verified
	Expected string // Hash value from the checksum list
	Actual   string // Hash value calculated from the file
	Match    bool   // Whether the hashes match
}

// VerifySummary represents the summary of verifying a checksum list.
type VerifySummary struct {
	Results      []*VerifyResult // Detailed results in list order
	Total        int             // Number of entries verified
	SuccessCount int             // Number of matching files
	FailureCount int             // Number of mismatching or unreadable files
}

// HashVerifier compares files against previously recorded hash values.
type HashVerifier struct {
	hashService port.HashService
}

// NewHashVerifier creates a new HashVerifier instance.
// The hashService must be bound to the algorithm and encoding the list was created with.
func NewHashVerifier(hashService port.HashService) *HashVerifier {
	return &HashVerifier{hashService: hashService}
}

// Verify verifies a single entry. File access failures are reported in the
// result, never as an error.
func (v *HashVerifier) Verify(ctx context.Context, entry ChecksumEntry) *VerifyResult {
	result := &VerifyResult{Path: entry.Path, Expected: entry.Expected}

	hashResult, err := v.hashService.HashFile(ctx, entry.Path)
	if err != nil {
		result.Err = err
		return result
	}

	result.Actual = hashResult.Value
	// Hex digests may have been written in upper case by other tools.
	result.Match = result.Actual == entry.Expected ||
		(isHex(entry.Expected) && strings.EqualFold(result.Actual, entry.Expected))
	return result
}

// VerifyAll verifies entries in order and stops early only when ctx is cancelled.
func (v *HashVerifier) VerifyAll(ctx context.Context, entries []ChecksumEntry) (*VerifySummary, error) {
	summary := &VerifySummary{Results: make([]*VerifyResult, 0, len(entries))}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("verification interrupted: %w", err)
		}

		result := v.Verify(ctx, entry)

		summary.Total++
		if result.Match {
			summary.SuccessCount++
		} else {
			summary.FailureCount++
		}
		summary.Results = append(summary.Results, result)
	}

	if summary.FailureCount > 0 {
		return summary, fmt.Errorf("%w: %d of %d computed checksums did NOT match", ErrChecksumMismatch, summary.FailureCount, summary.Total)
	}
	return summary, nil
}

func isHex(s string) bool {
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return s != ""
}
