package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/mazrean/hashfiles/internal/adapter"
	"github.com/mazrean/hashfiles/internal/domain"
)

// CheckCmd represents the check command
type CheckCmd struct {
	Algorithm string `help:"Algorithm the list was created with (default SHA3-256)" short:"a"`
	Encoding  string `help:"Encoding the list was created with (default hex, u32 for CRC32)" short:"e"`
	Quiet     bool   `help:"Do not print a line for files that match" short:"q"`
	List      string `arg:"" name:"list" help:"Checksum list of '<hash> <path>' lines ('-' reads stdin)"`
}

// Run executes the check command
func (c *CheckCmd) Run(kctx *kong.Context, ctx context.Context) error {
	env := hashEnv{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	logger := newLoggerTo(env.stdout, env.stderr, globalBool(kctx, "Debug"))
	return c.runWithLogger(ctx, env, globalString(kctx, "Config", ""), logger)
}

// runWithLogger executes the check command with a custom logger (for testing)
func (c *CheckCmd) runWithLogger(ctx context.Context, env hashEnv, configPath string, logger *Logger) error {
	defaults, err := loadDefaults(ctx, configPath, logger)
	if err != nil {
		logger.Error("Error: %v", err)
		return err
	}

	hashCmd := HashCmd{Settings: settingsFlags{Algorithm: c.Algorithm, Encoding: c.Encoding}}
	cfg, err := domain.NewRunConfig(hashCmd.options(defaults, logger.IsVerbose()))
	if err != nil {
		logger.Error("Error: %v", err)
		return err
	}

	entries, err := c.readList(env.stdin)
	if err != nil {
		logger.Error("Error: %v", err)
		return err
	}
	logger.Verbose("Checking %d files with %s/%s", len(entries), cfg.Algorithm, cfg.Encoding)

	hasher, err := adapter.NewFileHashService(cfg.Algorithm, cfg.Encoding)
	if err != nil {
		logger.Error("Error: %v", err)
		return err
	}

	summary, err := domain.NewHashVerifier(hasher).VerifyAll(ctx, entries)

	for _, result := range summary.Results {
		switch {
		case result.Err != nil:
			logger.Error("File error for '%s': %v", result.Path, result.Err)
			logger.Info("%s: FAILED open or read", result.Path)
		case result.Match:
			if !c.Quiet {
				logger.Info("%s: OK", result.Path)
			}
		default:
			logger.Info("%s: FAILED", result.Path)
			logger.Verbose("  Expected: %s", result.Expected)
			logger.Verbose("  Actual:   %s", result.Actual)
		}
	}

	if err != nil {
		if errors.Is(err, domain.ErrChecksumMismatch) {
			logger.Error("WARNING: %d of %d files failed verification", summary.FailureCount, summary.Total)
			logger.Error("Check that the list was created with the same algorithm and encoding")
		} else {
			logger.Error("Error: %v", err)
		}
		return err
	}

	return nil
}

// readList reads the checksum list from c.List, or from stdin for "-".
func (c *CheckCmd) readList(stdin io.Reader) ([]domain.ChecksumEntry, error) {
	r := stdin
	if c.List != "-" {
		f, err := os.Open(c.List)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrFileNotFound, c.List)
		}
		defer f.Close()
		r = f
	}

	var entries []domain.ChecksumEntry
	scanner := bufio.NewScanner(r)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		entry, err := domain.ParseChecksumLine(line, lineNo)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read checksum list %s: %w", c.List, err)
	}

	return entries, nil
}
