package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Client implements Enqueuer on top of a Storage backend.
type Client struct {
	storage    Storage
	maxRetries int
}

// NewClient creates a queue client. maxRetries applies to every job the
// client enqueues.
func NewClient(storage Storage, maxRetries int) (*Client, error) {
	if storage == nil {
		return nil, ErrStorageNil
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Client{
		storage:    storage,
		maxRetries: maxRetries,
	}, nil
}

// Enqueue stores a job for background execution and returns immediately.
func (c *Client) Enqueue(ctx context.Context, jobName string, payload any) error {
	if payload == nil {
		return ErrPayloadNil
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload of type %T: %w", payload, err)
	}

	now := time.Now()
	job := &Job{
		ID:          uuid.New(),
		Name:        jobName,
		Payload:     payloadBytes,
		Status:      JobStatusPending,
		MaxRetries:  c.maxRetries,
		ScheduledAt: now,
		CreatedAt:   now,
	}

	if err := c.storage.CreateJob(ctx, job); err != nil {
		return fmt.Errorf("failed to create job %q: %w", jobName, err)
	}

	return nil
}
