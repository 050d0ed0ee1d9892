package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/animelens/animelens/internal/config"
	"github.com/animelens/animelens/internal/jobs"
	"github.com/animelens/animelens/internal/library"
)

func TestRunOnceEnqueuesLibraryFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"ep1.srt", "ep2.ass", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	cfg, err := config.NewFromEnv()
	require.NoError(t, err)
	cfg.Library.Dirs = []string{dir}

	queue := jobs.NewQueue(1, nil)
	scanner := library.NewScanner(cfg.Library.Dirs)
	svc := NewScanService(*cfg, scanner, queue, cron.New())

	require.NoError(t, svc.RunOnce(context.Background()))
	assert.Len(t, queue.List(), 2)

	// A second pass over the same library creates no duplicate jobs.
	require.NoError(t, svc.RunOnce(context.Background()))
	assert.Len(t, queue.List(), 2)
}

func TestScheduleRejectsBadCronExpr(t *testing.T) {
	cfg, err := config.NewFromEnv()
	require.NoError(t, err)
	cfg.Library.CronExpr = "not a cron expression"

	queue := jobs.NewQueue(1, nil)
	scanner := library.NewScanner(nil)
	svc := NewScanService(*cfg, scanner, queue, cron.New())

	assert.Error(t, svc.Schedule(context.Background()))
}
