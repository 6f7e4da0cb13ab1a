package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"catalog-import/internal/domain"
	"catalog-import/internal/enrichment"
	"catalog-import/internal/logger"
	"catalog-import/internal/metrics"
)

const (
	// DefaultRunTimeout bounds how long one job is driven before it is given up.
	DefaultRunTimeout = 30 * time.Minute

	// QueueSendTimeout is the timeout for sending jobs to the queue
	QueueSendTimeout = 5 * time.Second

	// DefaultRetryBackoff is the first wait after a transient failure; it doubles per attempt.
	DefaultRetryBackoff = 2 * time.Second
	// DefaultMaxRetries is the number of consecutive transient failures tolerated per stage.
	DefaultMaxRetries = 5
)

// ErrRunnerClosed is returned by Enqueue after Close.
var ErrRunnerClosed = errors.New("runner is shutting down")

// Runner drives queued jobs through enrichment, image matching and image processing by
// calling the batch operations until nothing remains.
type Runner struct {
	pipeline PipelineServiceInterface

	workerCount int
	timeout     time.Duration
	backoff     time.Duration
	maxRetries  int

	jobQueue chan string
	stopChan chan struct{}
	wg       sync.WaitGroup
	closed   bool
	mu       sync.RWMutex

	activeMu sync.Mutex
	active   map[string]struct{}
}

// NewRunner creates a new Runner with worker pool.
func NewRunner(pipeline PipelineServiceInterface, workerCount int) *Runner {
	return newRunner(pipeline, workerCount, DefaultRetryBackoff)
}

// NewRunnerWithBackoff creates a Runner with a custom first retry wait.
func NewRunnerWithBackoff(pipeline PipelineServiceInterface, workerCount int, backoff time.Duration) *Runner {
	return newRunner(pipeline, workerCount, backoff)
}

func newRunner(pipeline PipelineServiceInterface, workerCount int, backoff time.Duration) *Runner {
	if workerCount < 1 {
		workerCount = 1
	}
	r := &Runner{
		pipeline:    pipeline,
		workerCount: workerCount,
		timeout:     DefaultRunTimeout,
		backoff:     backoff,
		maxRetries:  DefaultMaxRetries,
		jobQueue:    make(chan string, workerCount*2),
		stopChan:    make(chan struct{}),
		active:      make(map[string]struct{}),
	}

	for i := 0; i < workerCount; i++ {
		r.wg.Add(1)
		go r.worker()
	}

	return r
}

func (r *Runner) worker() {
	defer r.wg.Done()

	for {
		select {
		case jobID := <-r.jobQueue:
			r.run(jobID)
		case <-r.stopChan:
			return
		}
	}
}

// Close stops the workers. A batch in flight finishes; queued jobs are dropped and
// can be enqueued again later since all progress is stored.
func (r *Runner) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.mu.Unlock()

	close(r.stopChan)
	r.wg.Wait()
}

// Enqueue schedules a job. A job already queued or running is not queued twice.
func (r *Runner) Enqueue(jobID string) error {
	r.mu.RLock()
	if r.closed {
		r.mu.RUnlock()
		return ErrRunnerClosed
	}
	r.mu.RUnlock()

	if !r.claim(jobID) {
		return nil
	}

	select {
	case r.jobQueue <- jobID:
		logger.WithJobID(jobID).Info("Job queued for auto-advance")
	case <-time.After(QueueSendTimeout):
		logger.WithJobID(jobID).Warn("Runner queue full, job will be queued when capacity is available")
		go func() {
			select {
			case r.jobQueue <- jobID:
			case <-r.stopChan:
				r.release(jobID)
			}
		}()
	case <-r.stopChan:
		r.release(jobID)
		return ErrRunnerClosed
	}
	return nil
}

func (r *Runner) claim(jobID string) bool {
	r.activeMu.Lock()
	defer r.activeMu.Unlock()
	if _, ok := r.active[jobID]; ok {
		return false
	}
	r.active[jobID] = struct{}{}
	return true
}

func (r *Runner) release(jobID string) {
	r.activeMu.Lock()
	delete(r.active, jobID)
	r.activeMu.Unlock()
}

func (r *Runner) run(jobID string) {
	defer r.release(jobID)

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	metrics.StartRunnerJob()
	defer metrics.EndRunnerJob()

	log := logger.WithJobID(jobID)
	log.Info("Auto-advance started")

	for _, stage := range domain.ValidStages {
		done, err := r.drive(ctx, jobID, stage)
		if err != nil {
			log.Warn("Auto-advance stopped", "stage", string(stage), "error", err)
			return
		}
		if !done {
			return
		}
	}
	log.Info("Auto-advance finished")
}

// drive runs batches of one stage until nothing remains. It returns false when the
// job must not proceed to the next stage.
func (r *Runner) drive(ctx context.Context, jobID string, stage domain.Stage) (bool, error) {
	attempt := 0
	for {
		select {
		case <-r.stopChan:
			return false, nil
		default:
		}
		if err := ctx.Err(); err != nil {
			return false, err
		}

		progress, err := r.pipeline.Advance(ctx, jobID, stage, 0)
		worked, remaining := progressOf(progress)

		switch {
		case err == nil:
			attempt = 0
		case errors.Is(err, ErrNoArchive):
			return false, nil
		case errors.Is(err, ErrJobNotActive), errors.Is(err, ErrJobNotFound), errors.Is(err, ErrArchiveUnreadable):
			return false, err
		case errors.Is(err, enrichment.ErrProviderUnavailable), errors.Is(err, ErrStorageUnavailable):
			attempt++
			if attempt > r.maxRetries {
				return false, fmt.Errorf("giving up after %d attempts: %w", attempt, err)
			}
			if !r.wait(ctx, r.backoff<<(attempt-1)) {
				return false, ctx.Err()
			}
			continue
		default:
			return false, err
		}

		if remaining == 0 {
			return true, nil
		}
		if worked == 0 {
			return false, fmt.Errorf("stage %s made no progress with %d drafts remaining", stage, remaining)
		}
	}
}

func (r *Runner) wait(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-r.stopChan:
		return false
	case <-ctx.Done():
		return false
	}
}

func progressOf(progress interface{}) (worked, remaining int) {
	switch p := progress.(type) {
	case domain.EnrichmentProgress:
		return p.Processed + p.Failed, p.Remaining
	case domain.ImageMatchProgress:
		return p.Matched + p.Unmatched, p.Remaining
	case domain.ImageProcessProgress:
		return p.Processed + p.Failed, p.Remaining
	}
	return 0, 0
}
