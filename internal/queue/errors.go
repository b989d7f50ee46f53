package queue

import "errors"

var (
	// ErrStorageNil is returned when a queue component is built without storage.
	ErrStorageNil = errors.New("queue: storage cannot be nil")
	// ErrPayloadNil is returned when enqueueing a nil payload.
	ErrPayloadNil = errors.New("queue: payload cannot be nil")
	// ErrNoJobToClaim is returned by storage when no runnable job exists.
	ErrNoJobToClaim = errors.New("queue: no job to claim")
	// ErrJobNotFound is returned by storage for unknown job IDs.
	ErrJobNotFound = errors.New("queue: job not found")
	// ErrUnknownJob is returned when no handler is registered for a job name.
	ErrUnknownJob = errors.New("queue: no handler registered for job")
)
