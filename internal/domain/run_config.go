package domain

import (
	"fmt"
	"runtime"
	"slices"
)

// RunOptions carries the raw, merged settings from the command line and the
// defaults file before validation.
type RunOptions struct {
	Algorithm        string
	Encoding         string
	Paths            []string
	Limit            int
	Workers          int
	SingleThread     bool
	ExcludeFilenames bool
	CaseSensitive    bool
	NoProgress       bool
	Debug            bool
	Summary          bool
}

// RunConfig is the validated, read-only configuration of one run.
// It is built once by NewRunConfig and passed by value afterwards.
type RunConfig struct {
	Paths            []string
	Algorithm        HashAlgorithm
	Encoding         OutputEncoding // never EncodingUnspecified
	Limit            int            // 0 means unlimited
	Workers          int            // at least 1
	SingleThread     bool
	ExcludeFilenames bool
	CaseSensitive    bool
	NoProgress       bool
	Debug            bool
	Summary          bool
}

// NewRunConfig parses and validates opts.
// All returned errors wrap ErrInvalidConfig, and no file is touched.
func NewRunConfig(opts RunOptions) (RunConfig, error) {
	alg, err := ParseHashAlgorithm(opts.Algorithm)
	if err != nil {
		return RunConfig{}, err
	}

	enc, err := ParseOutputEncoding(opts.Encoding)
	if err != nil {
		return RunConfig{}, err
	}
	enc = ResolveEncoding(alg, enc)

	if err := ValidatePairing(alg, enc); err != nil {
		return RunConfig{}, err
	}

	if opts.Limit < 0 {
		return RunConfig{}, fmt.Errorf("%w, got %d", ErrInvalidLimit, opts.Limit)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return RunConfig{
		Paths:            slices.Clone(opts.Paths),
		Algorithm:        alg,
		Encoding:         enc,
		Limit:            opts.Limit,
		Workers:          workers,
		SingleThread:     opts.SingleThread,
		ExcludeFilenames: opts.ExcludeFilenames,
		CaseSensitive:    opts.CaseSensitive,
		NoProgress:       opts.NoProgress,
		Debug:            opts.Debug,
		Summary:          opts.Summary,
	}, nil
}

// ApplyLimit truncates paths to the configured limit.
func (c RunConfig) ApplyLimit(paths []string) []string {
	if c.Limit > 0 && len(paths) > c.Limit {
		return paths[:c.Limit]
	}
	return paths
}

// Sequential reports whether count files are hashed one at a time.
func (c RunConfig) Sequential(count int) bool {
	return c.SingleThread || count == 1
}
