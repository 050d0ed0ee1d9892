package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu   sync.Mutex
	jobs map[string]*AnalysisJob
}

func newFakeStore() *fakeStore {
	return &fakeStore{jobs: make(map[string]*AnalysisJob)}
}

func (s *fakeStore) LoadJobs(ctx context.Context) ([]*AnalysisJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*AnalysisJob, 0, len(s.jobs))
	for _, job := range s.jobs {
		out = append(out, cloneJob(job))
	}
	return out, nil
}

func (s *fakeStore) UpsertJob(ctx context.Context, job *AnalysisJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = cloneJob(job)
	return nil
}

func (s *fakeStore) DeleteJob(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, id)
	return nil
}

func waitForStatus(t *testing.T, q *Queue, id string, want Status) {
	t.Helper()
	require.Eventually(t, func() bool {
		job, ok := q.Get(id)
		return ok && job.Status == want
	}, 2*time.Second, 10*time.Millisecond)
}

func TestEnqueueDedupe(t *testing.T) {
	q := NewQueue(1, nil)

	first, created := q.Enqueue(EnqueueRequest{
		Source:    "library-scan",
		DedupeKey: "/anime/ep1.srt",
		Payload:   JobPayload{SubtitlePath: "/anime/ep1.srt", Format: "srt"},
	})
	require.True(t, created)
	assert.Equal(t, StatusPending, first.Status)

	second, created := q.Enqueue(EnqueueRequest{
		Source:    "library-scan",
		DedupeKey: "/anime/ep1.srt",
	})
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	other, created := q.Enqueue(EnqueueRequest{
		Source:    "library-scan",
		DedupeKey: "/anime/ep2.srt",
	})
	assert.True(t, created)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestQueueExecutesJobs(t *testing.T) {
	q := NewQueue(2, nil)
	defer q.Stop()

	var mu sync.Mutex
	executed := make([]string, 0)
	q.Start(func(ctx context.Context, job *AnalysisJob) error {
		mu.Lock()
		executed = append(executed, job.Payload.SubtitlePath)
		mu.Unlock()
		return nil
	})

	job, created := q.Enqueue(EnqueueRequest{
		Source:    "cli",
		DedupeKey: "/anime/ep1.srt",
		Payload:   JobPayload{SubtitlePath: "/anime/ep1.srt", Format: "srt"},
	})
	require.True(t, created)

	waitForStatus(t, q, job.ID, StatusSuccess)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"/anime/ep1.srt"}, executed)
}

func TestQueueMarksFailures(t *testing.T) {
	q := NewQueue(1, nil)
	defer q.Stop()

	q.Start(func(ctx context.Context, job *AnalysisJob) error {
		return errors.New("parse exploded")
	})

	job, _ := q.Enqueue(EnqueueRequest{DedupeKey: "/anime/bad.srt"})
	waitForStatus(t, q, job.ID, StatusFailed)

	failed, ok := q.Get(job.ID)
	require.True(t, ok)
	assert.Equal(t, "parse exploded", failed.Error)
}

func TestDedupeReleasedAfterFinish(t *testing.T) {
	q := NewQueue(1, nil)
	defer q.Stop()

	q.Start(func(ctx context.Context, job *AnalysisJob) error { return nil })

	first, created := q.Enqueue(EnqueueRequest{DedupeKey: "/anime/ep1.srt"})
	require.True(t, created)
	waitForStatus(t, q, first.ID, StatusSuccess)

	second, created := q.Enqueue(EnqueueRequest{DedupeKey: "/anime/ep1.srt"})
	assert.True(t, created)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestQueuePersistsJobs(t *testing.T) {
	store := newFakeStore()
	q := NewQueue(1, store)
	defer q.Stop()

	q.Start(func(ctx context.Context, job *AnalysisJob) error { return nil })

	job, _ := q.Enqueue(EnqueueRequest{DedupeKey: "/anime/ep1.srt"})
	waitForStatus(t, q, job.ID, StatusSuccess)

	store.mu.Lock()
	persisted := store.jobs[job.ID]
	store.mu.Unlock()
	require.NotNil(t, persisted)
	assert.Equal(t, StatusSuccess, persisted.Status)
}

func TestHydrationRequeuesRunningJobs(t *testing.T) {
	store := newFakeStore()
	now := time.Now()
	store.jobs["job-3"] = &AnalysisJob{
		ID:        "job-3",
		DedupeKey: "/anime/ep3.srt",
		Payload:   JobPayload{SubtitlePath: "/anime/ep3.srt", Format: "srt"},
		Status:    StatusRunning,
		CreatedAt: now,
		UpdatedAt: now,
	}
	store.jobs["job-1"] = &AnalysisJob{
		ID:        "job-1",
		Status:    StatusSuccess,
		CreatedAt: now,
		UpdatedAt: now,
	}

	q := NewQueue(1, store)
	defer q.Stop()

	// A job interrupted mid-run comes back as pending.
	hydrated, ok := q.Get("job-3")
	require.True(t, ok)
	assert.Equal(t, StatusPending, hydrated.Status)

	// Finished jobs keep their status.
	done, ok := q.Get("job-1")
	require.True(t, ok)
	assert.Equal(t, StatusSuccess, done.Status)

	// The ID counter resumes past the loaded jobs.
	fresh, created := q.Enqueue(EnqueueRequest{DedupeKey: "/anime/ep4.srt"})
	require.True(t, created)
	assert.Equal(t, "job-4", fresh.ID)

	q.Start(func(ctx context.Context, job *AnalysisJob) error { return nil })
	waitForStatus(t, q, "job-3", StatusSuccess)
}
