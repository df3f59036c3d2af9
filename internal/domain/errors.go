package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain-level error identification.
// Configuration errors all wrap ErrInvalidConfig so callers can decide to show usage help.
var (
	// ErrInvalidConfig indicates that the run could not start because of bad configuration.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidAlgorithm indicates that an unknown hash algorithm was requested.
	ErrInvalidAlgorithm = fmt.Errorf("%w: unknown hash algorithm", ErrInvalidConfig)

	// ErrInvalidEncoding indicates that an unknown output encoding was requested.
	ErrInvalidEncoding = fmt.Errorf("%w: unknown output encoding", ErrInvalidConfig)

	// ErrEncodingPairing indicates a CRC32/U32 pairing violation.
	ErrEncodingPairing = fmt.Errorf("%w: CRC32 must use U32 encoding, and U32 encoding can only be used with CRC32", ErrInvalidConfig)

	// ErrInvalidLimit indicates a negative file limit.
	ErrInvalidLimit = fmt.Errorf("%w: limit must not be negative", ErrInvalidConfig)

	// ErrInvalidChecksumLine indicates a malformed line in a checksum list.
	ErrInvalidChecksumLine = fmt.Errorf("%w: malformed checksum line", ErrInvalidConfig)

	// ErrFileNotFound indicates that a non-glob path argument does not exist.
	ErrFileNotFound = fmt.Errorf("%w: file not found", ErrInvalidConfig)

	// ErrEncodingMismatch indicates that the digest length does not fit the requested encoding.
	ErrEncodingMismatch = errors.New("digest size does not match encoding")

	// ErrUnresolvedEncoding indicates that an unspecified encoding reached the hashing engine.
	ErrUnresolvedEncoding = errors.New("output encoding was not resolved before hashing")

	// ErrChecksumMismatch indicates that at least one file did not match its recorded hash.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrFilesFailed indicates that at least one file of a run could not be hashed.
	ErrFilesFailed = errors.New("one or more files failed")
)

// FileError reports a failure to access or hash a single file.
// It is scoped to that file and never aborts the rest of a run.
type FileError struct {
	Path string
	Op   string // "stat", "open", "read", "encode"
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

var (
	// ErrConfigNotFound indicates that the defaults file was not found.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrConfigExists indicates that a defaults file already exists.
	ErrConfigExists = errors.New("configuration file already exists")
)
