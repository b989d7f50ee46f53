package queue

import (
	"context"
	"encoding/json"
)

// Handler executes one kind of job.
type Handler interface {
	Name() string
	Handle(ctx context.Context, payload json.RawMessage) error
}

// JobHandlerFunc processes a decoded payload of type T.
type JobHandlerFunc[T any] func(ctx context.Context, payload T) error

// NewJobHandler wraps a typed function as a Handler for the given job name.
func NewJobHandler[T any](name string, fn JobHandlerFunc[T]) Handler {
	return &jobHandler[T]{
		name: name,
		fn:   fn,
	}
}

type jobHandler[T any] struct {
	name string
	fn   JobHandlerFunc[T]
}

func (h *jobHandler[T]) Name() string {
	return h.name
}

func (h *jobHandler[T]) Handle(ctx context.Context, payload json.RawMessage) error {
	var t T
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &t); err != nil {
			return err
		}
	}
	return h.fn(ctx, t)
}
