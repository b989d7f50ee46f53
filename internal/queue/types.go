package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the lifecycle state of a queued job.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
)

// Job is a unit of background work. Delivery is at-least-once; handlers must
// tolerate duplicate execution.
type Job struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	Status      JobStatus       `json:"status"`
	RetryCount  int             `json:"retry_count"`
	MaxRetries  int             `json:"max_retries"`
	Error       string          `json:"error,omitempty"`
	ScheduledAt time.Time       `json:"scheduled_at"`
	ProcessedAt *time.Time      `json:"processed_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// DeadJob is a job that exhausted its retries, parked for inspection.
type DeadJob struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	Error      string          `json:"error"`
	RetryCount int             `json:"retry_count"`
	FailedAt   time.Time       `json:"failed_at"`
}

// Enqueuer is the queue-client capability handed to producers. It submits a
// named job without waiting for execution.
type Enqueuer interface {
	Enqueue(ctx context.Context, jobName string, payload any) error
}

// Storage persists jobs between enqueue and execution.
type Storage interface {
	// CreateJob stores a new pending job.
	CreateJob(ctx context.Context, job *Job) error

	// ClaimJob atomically takes the next runnable job, marking it processing.
	// Returns ErrNoJobToClaim when nothing is due.
	ClaimJob(ctx context.Context) (*Job, error)

	// CompleteJob marks a processing job as completed.
	CompleteJob(ctx context.Context, jobID uuid.UUID) error

	// RetryJob returns a processing job to pending with an incremented retry
	// count, to run no earlier than retryAt.
	RetryJob(ctx context.Context, jobID uuid.UUID, errMsg string, retryAt time.Time) error

	// MoveToDeadLetter parks a job that exhausted its retries.
	MoveToDeadLetter(ctx context.Context, jobID uuid.UUID, errMsg string) error
}
