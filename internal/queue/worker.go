package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Worker polls storage for due jobs and dispatches them to registered
// handlers. Handler failures are retried with exponential backoff until
// MaxRetries is exhausted, then the job moves to the dead letter queue.
// Failures never leave the worker; they are logged and swallowed.
type Worker struct {
	storage      Storage
	handlers     map[string]Handler
	pullInterval time.Duration
	logger       *logrus.Logger

	mu sync.RWMutex
	wg sync.WaitGroup
}

// NewWorker creates a worker polling storage every pullInterval.
func NewWorker(storage Storage, pullInterval time.Duration, logger *logrus.Logger) (*Worker, error) {
	if storage == nil {
		return nil, ErrStorageNil
	}
	if pullInterval <= 0 {
		pullInterval = time.Second
	}
	if logger == nil {
		logger = logrus.New()
	}

	return &Worker{
		storage:      storage,
		handlers:     make(map[string]Handler),
		pullInterval: pullInterval,
		logger:       logger,
	}, nil
}

// RegisterHandler registers a handler under its job name, replacing any
// previous registration for that name.
func (w *Worker) RegisterHandler(handler Handler) {
	if handler == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers[handler.Name()] = handler
}

// Start runs the polling loop until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ticker := time.NewTicker(w.pullInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.drain(ctx)
			}
		}
	}()
}

// Wait blocks until the polling loop has exited.
func (w *Worker) Wait() {
	w.wg.Wait()
}

// drain processes due jobs until storage reports nothing left to claim.
func (w *Worker) drain(ctx context.Context) {
	for {
		job, err := w.storage.ClaimJob(ctx)
		if err != nil {
			if !errors.Is(err, ErrNoJobToClaim) {
				w.logger.WithError(err).Error("failed to claim job")
			}
			return
		}

		w.process(ctx, job)

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

// ProcessOne claims and processes a single due job. It reports whether a job
// was processed, and is the synchronous entry point used by tests.
func (w *Worker) ProcessOne(ctx context.Context) bool {
	job, err := w.storage.ClaimJob(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoJobToClaim) {
			w.logger.WithError(err).Error("failed to claim job")
		}
		return false
	}
	w.process(ctx, job)
	return true
}

func (w *Worker) process(ctx context.Context, job *Job) {
	w.mu.RLock()
	handler, ok := w.handlers[job.Name]
	w.mu.RUnlock()

	if !ok {
		w.fail(ctx, job, fmt.Errorf("%w: %s", ErrUnknownJob, job.Name))
		return
	}

	if err := w.safeHandle(ctx, handler, job); err != nil {
		w.fail(ctx, job, err)
		return
	}

	if err := w.storage.CompleteJob(ctx, job.ID); err != nil {
		w.logger.WithError(err).WithField("job", job.Name).Error("failed to mark job completed")
	}
}

func (w *Worker) safeHandle(ctx context.Context, handler Handler, job *Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job handler panicked: %v", r)
		}
	}()
	return handler.Handle(ctx, job.Payload)
}

func (w *Worker) fail(ctx context.Context, job *Job, jobErr error) {
	entry := w.logger.WithFields(logrus.Fields{
		"job":   job.Name,
		"id":    job.ID,
		"retry": job.RetryCount,
	}).WithError(jobErr)

	if job.RetryCount >= job.MaxRetries {
		entry.Error("job failed permanently, moving to dead letter queue")
		if err := w.storage.MoveToDeadLetter(ctx, job.ID, jobErr.Error()); err != nil {
			w.logger.WithError(err).WithField("job", job.Name).Error("failed to move job to dead letter queue")
		}
		return
	}

	retryAt := time.Now().Add(backoff(job.RetryCount))
	entry.Warn("job failed, scheduling retry")
	if err := w.storage.RetryJob(ctx, job.ID, jobErr.Error(), retryAt); err != nil {
		w.logger.WithError(err).WithField("job", job.Name).Error("failed to schedule job retry")
	}
}

// backoff doubles per attempt: 1s, 2s, 4s, ...
func backoff(retryCount int) time.Duration {
	return time.Second << uint(retryCount)
}
