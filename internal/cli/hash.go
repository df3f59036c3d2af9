package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/mazrean/hashfiles/internal/adapter"
	"github.com/mazrean/hashfiles/internal/adapter/progress"
	"github.com/mazrean/hashfiles/internal/domain"
	"github.com/mazrean/hashfiles/internal/port"
)

// HashCmd represents the default command: hash files and print one line per file.
type HashCmd struct {
	Settings settingsFlags `embed:""`
	Paths    []string      `arg:"" optional:"" name:"path" help:"Files or glob patterns (e.g. '**/*.go'). Paths are read from stdin, one per line, when omitted"`
}

// hashEnv holds the process resources a hash run reads from and writes to.
type hashEnv struct {
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	progress func(cfg domain.RunConfig) port.ProgressReporter
}

// Run executes the hash command
func (c *HashCmd) Run(kctx *kong.Context, ctx context.Context) error {
	env := hashEnv{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		progress: func(cfg domain.RunConfig) port.ProgressReporter {
			return progress.ForTerminal(os.Stderr, !cfg.NoProgress)
		},
	}

	return c.run(ctx, env, globalString(kctx, "Config", ""), globalBool(kctx, "Debug"))
}

// run is the internal implementation that can be called from tests with custom parameters
func (c *HashCmd) run(ctx context.Context, env hashEnv, configPath string, debug bool) error {
	logger := newLoggerTo(env.stdout, env.stderr, debug)
	return c.runWithLogger(ctx, env, configPath, logger)
}

// runWithLogger executes the hash command with a custom logger (for testing)
func (c *HashCmd) runWithLogger(ctx context.Context, env hashEnv, configPath string, logger *Logger) error {
	defaults, err := loadDefaults(ctx, configPath, logger)
	if err != nil {
		logger.Error("Error: %v", err)
		return err
	}

	cfg, err := domain.NewRunConfig(c.options(defaults, logger.IsVerbose()))
	if err != nil {
		logger.Error("Error: %v", err)
		return err
	}

	var resolver port.PathResolver = adapter.NewGlobResolver(cfg.CaseSensitive, env.stdin, logger)
	paths, err := resolver.Resolve(ctx, cfg.Paths)
	if err != nil {
		logger.Error("Error: %v", err)
		return err
	}
	if limited := cfg.ApplyLimit(paths); len(limited) < len(paths) {
		logger.Verbose("Limiting to %d of %d files", len(limited), len(paths))
		paths = limited
	}

	hasher, err := adapter.NewFileHashService(cfg.Algorithm, cfg.Encoding)
	if err != nil {
		logger.Error("Error: %v", err)
		return err
	}

	reporter := port.ProgressReporter(progress.Noop{})
	if env.progress != nil {
		reporter = env.progress(cfg)
	}

	coordinator := domain.NewCoordinator(cfg, hasher, reporter, env.stdout, env.stderr, logger)
	summary, runErr := coordinator.Run(ctx, paths)

	if cfg.Summary && !errors.Is(runErr, context.Canceled) {
		if err := printSummary(ctx, env.stdout, summary, cfg.ExcludeFilenames, logger); err != nil {
			logger.Error("Failed to calculate summary: %v", err)
			if runErr == nil {
				runErr = err
			}
		}
	}

	switch {
	case runErr == nil:
		return nil
	case errors.Is(runErr, domain.ErrFilesFailed):
		logger.Error("Error: %v", runErr)
	case errors.Is(runErr, context.Canceled):
		logger.Error("Interrupted: %d of %d files hashed", summary.Succeeded+summary.Failed, summary.Total)
	default:
		logger.Error("Error: %v", runErr)
	}
	return runErr
}

// options merges the defaults file with the command-line flags.
// Flags win whenever they are set; boolean flags can only switch a default on.
func (c *HashCmd) options(defaults *domain.Config, debug bool) domain.RunOptions {
	f := c.Settings
	opts := domain.RunOptions{
		Algorithm:        defaults.Algorithm,
		Encoding:         defaults.Encoding,
		Limit:            defaults.Limit,
		Workers:          defaults.Jobs,
		Paths:            c.Paths,
		SingleThread:     f.SingleThread || defaults.SingleThread,
		ExcludeFilenames: f.ExcludeFilenames || defaults.ExcludeFilenames,
		CaseSensitive:    f.CaseSensitive || defaults.CaseSensitive,
		NoProgress:       f.NoProgress || defaults.NoProgress,
		Summary:          f.Summary || defaults.Summary,
		Debug:            debug,
	}

	if f.Algorithm != "" {
		opts.Algorithm = f.Algorithm
		// A stored encoding that cannot pair with the new algorithm falls back to
		// the algorithm's default instead of failing.
		if f.Encoding == "" && opts.Encoding != "" && !pairs(f.Algorithm, opts.Encoding) {
			opts.Encoding = ""
		}
	}
	if f.Encoding != "" {
		opts.Encoding = f.Encoding
	}
	if f.Limit != 0 {
		opts.Limit = f.Limit
	}
	if f.Jobs != 0 {
		opts.Workers = f.Jobs
	}

	return opts
}

func pairs(algorithm, encoding string) bool {
	alg, err := domain.ParseHashAlgorithm(algorithm)
	if err != nil {
		return true
	}
	enc, err := domain.ParseOutputEncoding(encoding)
	if err != nil {
		return true
	}
	return domain.ValidatePairing(alg, enc) == nil
}

// loadDefaults reads the defaults file. An empty configPath selects the default
// location, where a missing file means built-in defaults. A missing file that was
// asked for explicitly is an error, even at the default location.
func loadDefaults(ctx context.Context, configPath string, logger *Logger) (*domain.Config, error) {
	explicit := configPath != ""
	if !explicit {
		configPath = defaultConfigPath
	}
	configManager := domain.NewConfigManager(configPath)

	config, err := configManager.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrConfigNotFound) && !explicit {
			logger.Verbose("No defaults file at %s, using built-in defaults", configPath)
			return &domain.Config{}, nil
		}
		if errors.Is(err, domain.ErrConfigNotFound) {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
		}
		return nil, err
	}

	logger.Verbose("Loaded defaults from %s", configPath)
	return config, nil
}

// printSummary writes the h1: summary of the successfully hashed files.
func printSummary(ctx context.Context, w io.Writer, summary *domain.RunSummary, excludeFilenames bool, logger *Logger) error {
	files := make([]string, 0, summary.Succeeded)
	for _, r := range summary.Results {
		if r.Err == nil {
			files = append(files, r.Path)
		}
	}
	if len(files) == 0 {
		logger.Verbose("No hashed files to summarize")
		return nil
	}

	result, err := adapter.NewDirhashService().Summarize(ctx, files)
	if err != nil {
		return err
	}

	line := result.Value
	if !excludeFilenames {
		line = fmt.Sprintf("%s (%d files)", result.Value, len(files))
	}
	_, err = fmt.Fprintln(w, line)
	return err
}
