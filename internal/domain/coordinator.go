package domain

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mazrean/hashfiles/internal/port"
)

// SlowFileThreshold is the hashing duration above which a file is reported in debug output.
const SlowFileThreshold = 200 * time.Millisecond

// DebugLogger receives diagnostic messages when debug mode is enabled.
type DebugLogger interface {
	Verbose(format string, args ...interface{})
}

// FileResult is the outcome of hashing one file.
type FileResult struct {
	Err     error
	Path    string
	Value   string
	Elapsed time.Duration
}

// RunSummary collects the results of a run in completion order.
type RunSummary struct {
	Results   []FileResult
	Total     int
	Succeeded int
	Failed    int
}

// Coordinator hashes a list of files sequentially or on a bounded worker pool.
// Each file's failure is reported on the error stream and never aborts the batch.
type Coordinator struct {
	hasher   port.HashService
	reporter port.ProgressReporter
	logger   DebugLogger
	out      *LineWriter
	errOut   *LineWriter
	cfg      RunConfig
}

// batch holds the mutable state shared by the workers of one Run call.
type batch struct {
	*Coordinator
	tracker port.BatchTracker
	summary *RunSummary
	mu      sync.Mutex
	failed  atomic.Int64
}

// NewCoordinator creates a Coordinator writing results to stdout and per-file
// errors to stderr. A nil reporter disables progress and a nil logger disables
// debug output. A worker count below one means one worker per CPU.
func NewCoordinator(cfg RunConfig, hasher port.HashService, reporter port.ProgressReporter, stdout, stderr io.Writer, logger DebugLogger) *Coordinator {
	if reporter == nil {
		reporter = silentReporter{}
	}
	if logger == nil {
		logger = silentLogger{}
	}
	if cfg.Workers < 1 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Coordinator{
		cfg:      cfg,
		hasher:   hasher,
		reporter: reporter,
		logger:   logger,
		out:      NewLineWriter(stdout),
		errOut:   NewLineWriter(stderr),
	}
}

// Run hashes every path and prints one line per successfully hashed file.
// It returns an error wrapping ErrFilesFailed when any file failed, after all
// files have been processed. Cancelling ctx stops new files from starting;
// files already being read are finished.
func (c *Coordinator) Run(ctx context.Context, paths []string) (*RunSummary, error) {
	b := &batch{
		Coordinator: c,
		summary:     &RunSummary{Total: len(paths), Results: make([]FileResult, 0, len(paths))},
	}

	if len(paths) == 0 {
		c.logger.Verbose("No files found")
		c.reporter.Wait()
		return b.summary, nil
	}

	c.logger.Verbose("Algorithm: %s, encoding: %s, files: %d", c.cfg.Algorithm, c.cfg.Encoding, len(paths))

	b.tracker = c.reporter.StartBatch(len(paths))

	var err error
	if c.cfg.Sequential(len(paths)) {
		c.logger.Verbose("Single-threaded mode")
		err = b.runSequential(ctx, paths)
	} else {
		c.logger.Verbose("Multi-threaded mode with %d workers", c.cfg.Workers)
		err = b.runParallel(ctx, paths)
	}

	b.tracker.Finish()
	c.reporter.Wait()

	if err != nil {
		return b.summary, err
	}
	if failed := b.failed.Load(); failed > 0 {
		return b.summary, fmt.Errorf("%w: %d of %d files could not be hashed", ErrFilesFailed, failed, len(paths))
	}
	return b.summary, nil
}

func (b *batch) runSequential(ctx context.Context, paths []string) error {
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("hashing interrupted: %w", err)
		}

		tracker := b.reporter.TrackFile(path)
		result := b.hashOne(ctx, path)
		tracker.Done()

		b.emit(result)
		b.tracker.Increment()
	}
	return nil
}

func (b *batch) runParallel(ctx context.Context, paths []string) error {
	var eg errgroup.Group
	eg.SetLimit(b.cfg.Workers)

	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			result := b.hashOne(ctx, path)
			b.emit(result)
			b.tracker.Increment()
			return nil
		})
	}

	// Workers never return errors; failures are recorded per file.
	_ = eg.Wait()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("hashing interrupted: %w", err)
	}
	return nil
}

func (c *Coordinator) hashOne(ctx context.Context, path string) FileResult {
	start := time.Now()
	res, err := c.hasher.HashFile(ctx, path)
	elapsed := time.Since(start)

	if elapsed >= SlowFileThreshold {
		c.logger.Verbose("File '%s' took %.2fs to hash", path, elapsed.Seconds())
	}

	if err != nil {
		return FileResult{Path: path, Err: err, Elapsed: elapsed}
	}
	return FileResult{Path: path, Value: res.Value, Elapsed: elapsed}
}

func (b *batch) emit(r FileResult) {
	if r.Err != nil {
		b.failed.Add(1)
		_ = b.errOut.Printf("File error for '%s': %v", r.Path, r.Err)
	} else {
		_ = b.out.WriteLine(FormatResultLine(r.Value, r.Path, b.cfg.ExcludeFilenames))
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.summary.Results = append(b.summary.Results, r)
	if r.Err != nil {
		b.summary.Failed++
	} else {
		b.summary.Succeeded++
	}
}

type silentReporter struct{}

func (silentReporter) StartBatch(int) port.BatchTracker  { return silentReporter{} }
func (silentReporter) TrackFile(string) port.FileTracker { return silentReporter{} }
func (silentReporter) Wait()                             {}
func (silentReporter) Increment()                        {}
func (silentReporter) Finish()                           {}
func (silentReporter) Done()                             {}

type silentLogger struct{}

func (silentLogger) Verbose(string, ...interface{}) {}
