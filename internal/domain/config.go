package domain

import "fmt"

// Config represents the optional .hashfiles.toml defaults file.
// Every field is a default that command-line flags may override.
type Config struct {
	Algorithm        string `toml:"algorithm,omitempty"` // Algorithm name or alias (e.g., "sha2")
	Encoding         string `toml:"encoding,omitempty"`  // "hex", "base64", "base32" or "u32"
	Jobs             int    `toml:"jobs,omitempty"`      // Worker count for parallel mode, 0 means one per CPU
	Limit            int    `toml:"limit,omitempty"`     // Maximum number of files, 0 means unlimited
	SingleThread     bool   `toml:"single_thread,omitempty"`
	ExcludeFilenames bool   `toml:"exclude_filenames,omitempty"`
	CaseSensitive    bool   `toml:"case_sensitive,omitempty"`
	NoProgress       bool   `toml:"no_progress,omitempty"`
	Summary          bool   `toml:"summary,omitempty"`
}

// Validate checks that names are recognised, counts are not negative and the
// algorithm/encoding pairing holds once the encoding default is applied.
func (c *Config) Validate() error {
	alg, err := ParseHashAlgorithm(c.Algorithm)
	if err != nil {
		return err
	}
	enc, err := ParseOutputEncoding(c.Encoding)
	if err != nil {
		return err
	}
	if c.Jobs < 0 {
		return fmt.Errorf("%w: jobs must not be negative, got %d", ErrInvalidConfig, c.Jobs)
	}
	if c.Limit < 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidLimit, c.Limit)
	}
	// An algorithm without an explicit encoding may still be overridden on the
	// command line, so the pairing is only checked when both are present.
	if c.Algorithm != "" && c.Encoding != "" {
		return ValidatePairing(alg, ResolveEncoding(alg, enc))
	}
	return nil
}
