package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/mod/sumdb/dirhash"

	"github.com/mazrean/hashfiles/internal/port"
)

// errNoFilesToSummarize is returned when a summary is requested for an empty set.
var errNoFilesToSummarize = errors.New("no files to summarize")

// DirhashService calculates a single summary hash over a set of files using
// golang.org/x/mod/sumdb/dirhash. The summary is independent of the order in
// which files were hashed, so it can be compared across runs and machines.
type DirhashService struct {
	open func(string) (io.ReadCloser, error)
}

// NewDirhashService creates a new DirhashService instance.
func NewDirhashService() *DirhashService {
	return &DirhashService{
		open: func(name string) (io.ReadCloser, error) { return os.Open(name) },
	}
}

// Summarize returns the "h1:<base64>" digest of files.
// The digest covers both the file names and their contents.
func (s *DirhashService) Summarize(ctx context.Context, files []string) (*port.HashResult, error) {
	if len(files) == 0 {
		return nil, errNoFilesToSummarize
	}

	hashValue, err := dirhash.Hash1(files, s.open)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate summary hash over %d files: %w", len(files), err)
	}

	return &port.HashResult{
		Algorithm: s.HashAlgorithm(),
		Value:     hashValue,
	}, nil
}

// HashAlgorithm returns the hash algorithm name used by this service.
func (s *DirhashService) HashAlgorithm() string {
	return "h1"
}
