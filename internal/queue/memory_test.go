package queue

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rescheduleAllDue pulls every pending job's schedule back to at, so retry
// backoff can be fast-forwarded in tests.
func (s *MemoryStorage) rescheduleAllDue(at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		if job.Status == JobStatusPending {
			job.ScheduledAt = at
		}
	}
}

func newPendingJob(name string) *Job {
	now := time.Now()
	return &Job{
		ID:          uuid.New(),
		Name:        name,
		Payload:     []byte(`{}`),
		Status:      JobStatusPending,
		MaxRetries:  3,
		ScheduledAt: now,
		CreatedAt:   now,
	}
}

func TestMemoryStorage_ClaimOrder(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	first := newPendingJob("first")
	first.ScheduledAt = time.Now().Add(-2 * time.Second)
	second := newPendingJob("second")
	second.ScheduledAt = time.Now().Add(-1 * time.Second)

	require.NoError(t, storage.CreateJob(ctx, second))
	require.NoError(t, storage.CreateJob(ctx, first))

	claimed, err := storage.ClaimJob(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first", claimed.Name)
	assert.Equal(t, JobStatusProcessing, claimed.Status)
}

func TestMemoryStorage_ClaimEmpty(t *testing.T) {
	storage := NewMemoryStorage()

	_, err := storage.ClaimJob(context.Background())
	assert.ErrorIs(t, err, ErrNoJobToClaim)
}

func TestMemoryStorage_ClaimSkipsFutureJobs(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	delayed := newPendingJob("delayed")
	delayed.ScheduledAt = time.Now().Add(time.Hour)
	require.NoError(t, storage.CreateJob(ctx, delayed))

	_, err := storage.ClaimJob(ctx)
	assert.ErrorIs(t, err, ErrNoJobToClaim)
}

func TestMemoryStorage_CompleteJob(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	job := newPendingJob("job")
	require.NoError(t, storage.CreateJob(ctx, job))

	claimed, err := storage.ClaimJob(ctx)
	require.NoError(t, err)
	require.NoError(t, storage.CompleteJob(ctx, claimed.ID))

	assert.Equal(t, 1, storage.CountByStatus(JobStatusCompleted))
	assert.Equal(t, 0, storage.CountByStatus(JobStatusPending))
}

func TestMemoryStorage_RetryJob(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	job := newPendingJob("job")
	require.NoError(t, storage.CreateJob(ctx, job))

	claimed, err := storage.ClaimJob(ctx)
	require.NoError(t, err)

	require.NoError(t, storage.RetryJob(ctx, claimed.ID, "transport down", time.Now().Add(-time.Second)))
	assert.Equal(t, 1, storage.CountByStatus(JobStatusPending))

	reclaimed, err := storage.ClaimJob(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, reclaimed.RetryCount)
	assert.Equal(t, "transport down", reclaimed.Error)
}

func TestMemoryStorage_MoveToDeadLetter(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	job := newPendingJob("doomed")
	require.NoError(t, storage.CreateJob(ctx, job))

	claimed, err := storage.ClaimJob(ctx)
	require.NoError(t, err)
	require.NoError(t, storage.MoveToDeadLetter(ctx, claimed.ID, "gave up"))

	dead := storage.DeadLetters()
	require.Len(t, dead, 1)
	assert.Equal(t, "doomed", dead[0].Name)
	assert.Equal(t, "gave up", dead[0].Error)

	_, err = storage.ClaimJob(ctx)
	assert.ErrorIs(t, err, ErrNoJobToClaim)
}
