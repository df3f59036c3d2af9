// Package port defines the interfaces the hashing domain consumes.
// It provides abstractions for file hashing, path resolution and progress display.
package port

import "context"

// HashService is the abstraction interface for hashing a single file.
// An implementation is bound to one algorithm and one output encoding for its lifetime.
type HashService interface {
	// HashFile hashes the contents of the file at path.
	// Returns an error if the file cannot be read or the digest cannot be encoded.
	HashFile(ctx context.Context, path string) (*HashResult, error)

	// HashAlgorithm returns the canonical name of the bound algorithm.
	HashAlgorithm() string
}

// HashResult represents the result of hashing one file.
// The Value field contains the encoded digest (e.g. lowercase hex, base64 or a
// zero-padded decimal for CRC32).
type HashResult struct {
	Algorithm string // Canonical algorithm name (e.g., "SHA3-256")
	Value     string // Encoded digest
}
