// Package progress renders hashing progress on a terminal.
//
// Batches of at least MinBatchSize files get an aggregate bar. Individual files get
// a spinner only when hashing takes longer than the reporter's threshold, so fast
// files never flash on screen. Every indicator is written to the progress writer
// (normally stderr) and never to the result stream.
package progress

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v7"
	"github.com/vbauerster/mpb/v7/decor"
	"golang.org/x/sync/semaphore"
	"golang.org/x/term"

	"github.com/mazrean/hashfiles/internal/port"
)

const (
	// DefaultThreshold is how long a file may take before its spinner appears.
	DefaultThreshold = 200 * time.Millisecond

	// DefaultMaxFileTrackers caps the number of concurrently waiting spinner helpers.
	DefaultMaxFileTrackers = 4

	// MinBatchSize is the smallest batch that gets an aggregate bar.
	MinBatchSize = 10

	barWidth = 40
)

// MPBReporter implements port.ProgressReporter with github.com/vbauerster/mpb.
type MPBReporter struct {
	p         *mpb.Progress
	slots     *semaphore.Weighted
	threshold time.Duration
}

// NewMPBReporter creates a reporter writing to w. slots bounds the number of
// spinner helpers alive at once; TrackFile returns a no-op tracker when it is full.
func NewMPBReporter(w io.Writer, slots *semaphore.Weighted, threshold time.Duration) *MPBReporter {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &MPBReporter{
		p:         mpb.New(mpb.WithOutput(w), mpb.WithWidth(barWidth)),
		slots:     slots,
		threshold: threshold,
	}
}

// ForTerminal returns an MPBReporter on f when progress is enabled and f is a
// terminal, and Noop otherwise.
func ForTerminal(f *os.File, enabled bool) port.ProgressReporter {
	if !enabled || !term.IsTerminal(int(f.Fd())) {
		return Noop{}
	}
	return NewMPBReporter(f, semaphore.NewWeighted(DefaultMaxFileTrackers), DefaultThreshold)
}

// StartBatch implements port.ProgressReporter.
func (r *MPBReporter) StartBatch(total int) port.BatchTracker {
	if total < MinBatchSize {
		return Noop{}
	}

	bar := r.p.AddBar(int64(total),
		mpb.PrependDecorators(decor.CountersNoUnit("%d/%d files")),
		mpb.AppendDecorators(
			decor.Percentage(decor.WC{W: 5}),
			decor.OnComplete(decor.Name(" Processing..."), " Complete!"),
		),
	)
	return &batchBar{bar: bar}
}

// TrackFile implements port.ProgressReporter.
func (r *MPBReporter) TrackFile(path string) port.FileTracker {
	if !r.slots.TryAcquire(1) {
		return Noop{}
	}

	t := &fileTracker{
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}

	go func() {
		defer close(t.finished)
		defer r.slots.Release(1)

		timer := time.NewTimer(r.threshold)
		defer timer.Stop()

		select {
		case <-t.done:
			return
		case <-timer.C:
		}

		spinner := r.p.New(0, mpb.SpinnerStyle(),
			mpb.PrependDecorators(decor.Name("Hashing "+path+"...")),
			mpb.BarRemoveOnComplete(),
		)
		<-t.done
		spinner.Abort(true)
	}()

	return t
}

// Wait implements port.ProgressReporter.
func (r *MPBReporter) Wait() {
	r.p.Wait()
}

type batchBar struct {
	bar *mpb.Bar
}

func (b *batchBar) Increment() {
	b.bar.Increment()
}

func (b *batchBar) Finish() {
	if !b.bar.Completed() {
		// Interrupted runs leave the bar where it stopped.
		b.bar.Abort(false)
	}
}

// fileTracker signals its helper goroutine through done and waits for it on finished.
type fileTracker struct {
	done     chan struct{}
	finished chan struct{}
	once     sync.Once
}

// Done stops the helper and waits until its spinner, if any, has been removed.
func (t *fileTracker) Done() {
	t.once.Do(func() {
		close(t.done)
	})
	<-t.finished
}

// Noop is a reporter, batch tracker and file tracker that displays nothing.
type Noop struct{}

func (Noop) StartBatch(int) port.BatchTracker  { return Noop{} }
func (Noop) TrackFile(string) port.FileTracker { return Noop{} }
func (Noop) Wait()                             {}
func (Noop) Increment()                        {}
func (Noop) Finish()                           {}
func (Noop) Done()                             {}
