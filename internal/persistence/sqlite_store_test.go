package persistence

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/animelens/animelens/internal/jobs"
	"github.com/animelens/animelens/internal/service"
	"github.com/animelens/animelens/internal/subtitle"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "animelens.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNewSQLiteStoreRequiresPath(t *testing.T) {
	_, err := NewSQLiteStore("  ")
	assert.Error(t, err)
}

func TestJobRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	job := &jobs.AnalysisJob{
		ID:        "job-1",
		Source:    "library-scan",
		DedupeKey: "/anime/ep1.srt",
		Payload:   jobs.JobPayload{SubtitlePath: "/anime/ep1.srt", Format: "srt"},
		Status:    jobs.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, store.UpsertJob(ctx, job))

	loaded, err := store.LoadJobs(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, job.ID, loaded[0].ID)
	assert.Equal(t, job.Payload, loaded[0].Payload)
	assert.Equal(t, jobs.StatusPending, loaded[0].Status)

	// Upsert with the same ID replaces the row.
	job.Status = jobs.StatusFailed
	job.Error = "tokenizer unavailable"
	require.NoError(t, store.UpsertJob(ctx, job))

	loaded, err = store.LoadJobs(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, jobs.StatusFailed, loaded[0].Status)
	assert.Equal(t, "tokenizer unavailable", loaded[0].Error)
}

func TestDeleteJob(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	job := &jobs.AnalysisJob{ID: "job-1", Status: jobs.StatusSuccess}
	require.NoError(t, store.UpsertJob(ctx, job))
	require.NoError(t, store.DeleteJob(ctx, "job-1"))

	loaded, err := store.LoadJobs(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)

	// Deleting a missing job is not an error.
	assert.NoError(t, store.DeleteJob(ctx, "job-404"))
}

func TestReportRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	report := &service.FileReport{
		Path:         "/anime/ep1.srt",
		Format:       subtitle.FormatSRT,
		Language:     "ja",
		TotalEntries: 42,
		GeneratedAt:  time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, store.SaveReport(ctx, report))

	loaded, err := store.GetReport(ctx, "/anime/ep1.srt")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, report.Path, loaded.Path)
	assert.Equal(t, report.TotalEntries, loaded.TotalEntries)
	assert.Equal(t, report.Language, loaded.Language)

	// A second save for the same path replaces the stored report.
	report.TotalEntries = 7
	require.NoError(t, store.SaveReport(ctx, report))
	loaded, err = store.GetReport(ctx, "/anime/ep1.srt")
	require.NoError(t, err)
	assert.Equal(t, 7, loaded.TotalEntries)
}

func TestGetReportMissing(t *testing.T) {
	store := newTestStore(t)

	loaded, err := store.GetReport(context.Background(), "/anime/never-analyzed.srt")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "animelens.db")

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.UpsertJob(context.Background(), &jobs.AnalysisJob{
		ID:     "job-1",
		Status: jobs.StatusRunning,
	}))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	loaded, err := reopened.LoadJobs(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, jobs.StatusRunning, loaded[0].Status)
}
