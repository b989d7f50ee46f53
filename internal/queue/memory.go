package queue

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStorage is an in-process Storage backend. Job state lives only for
// the lifetime of the process, which matches the transient at-least-once
// contract of the queue.
type MemoryStorage struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]*Job
	dead []DeadJob
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		jobs: make(map[uuid.UUID]*Job),
	}
}

// CreateJob stores a new pending job.
func (s *MemoryStorage) CreateJob(ctx context.Context, job *Job) error {
	if job == nil {
		return ErrPayloadNil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	jobCopy := *job
	s.jobs[job.ID] = &jobCopy
	return nil
}

// ClaimJob takes the due pending job with the earliest schedule.
func (s *MemoryStorage) ClaimJob(ctx context.Context) (*Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	var next *Job
	for _, job := range s.jobs {
		if job.Status != JobStatusPending || job.ScheduledAt.After(now) {
			continue
		}
		if next == nil || job.ScheduledAt.Before(next.ScheduledAt) {
			next = job
		}
	}

	if next == nil {
		return nil, ErrNoJobToClaim
	}

	next.Status = JobStatusProcessing
	jobCopy := *next
	return &jobCopy, nil
}

// CompleteJob marks a processing job as completed.
func (s *MemoryStorage) CompleteJob(ctx context.Context, jobID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, exists := s.jobs[jobID]
	if !exists {
		return ErrJobNotFound
	}

	now := time.Now()
	job.Status = JobStatusCompleted
	job.ProcessedAt = &now
	return nil
}

// RetryJob returns a job to pending for another attempt at retryAt.
func (s *MemoryStorage) RetryJob(ctx context.Context, jobID uuid.UUID, errMsg string, retryAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, exists := s.jobs[jobID]
	if !exists {
		return ErrJobNotFound
	}

	job.Status = JobStatusPending
	job.RetryCount++
	job.Error = errMsg
	job.ScheduledAt = retryAt
	return nil
}

// MoveToDeadLetter parks a job that exhausted its retries.
func (s *MemoryStorage) MoveToDeadLetter(ctx context.Context, jobID uuid.UUID, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, exists := s.jobs[jobID]
	if !exists {
		return ErrJobNotFound
	}

	delete(s.jobs, jobID)
	s.dead = append(s.dead, DeadJob{
		ID:         job.ID,
		Name:       job.Name,
		Payload:    job.Payload,
		Error:      errMsg,
		RetryCount: job.RetryCount,
		FailedAt:   time.Now(),
	})
	return nil
}

// CountByStatus reports how many stored jobs are in the given status.
func (s *MemoryStorage) CountByStatus(status JobStatus) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, job := range s.jobs {
		if job.Status == status {
			count++
		}
	}
	return count
}

// DeadLetters returns a snapshot of the dead letter queue.
func (s *MemoryStorage) DeadLetters() []DeadJob {
	s.mu.Lock()
	defer s.mu.Unlock()

	dead := make([]DeadJob, len(s.dead))
	copy(dead, s.dead)
	return dead
}
