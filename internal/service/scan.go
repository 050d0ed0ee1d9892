package service

import (
	"context"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/singleflight"

	"github.com/animelens/animelens/internal/config"
	"github.com/animelens/animelens/internal/jobs"
	"github.com/animelens/animelens/internal/library"
	"github.com/animelens/animelens/pkg/log"
)

// ScanService periodically scans the subtitle library and enqueues an
// analysis job for every discovered file. Jobs dedupe on the file path, so
// repeated scans do not pile up work for unchanged files.
type ScanService struct {
	cfg     config.Config
	scanner *library.Scanner
	queue   *jobs.Queue
	cron    *cron.Cron
}

func NewScanService(
	cfg config.Config,
	scanner *library.Scanner,
	queue *jobs.Queue,
	cron *cron.Cron,
) *ScanService {
	return &ScanService{
		cfg:     cfg,
		scanner: scanner,
		queue:   queue,
		cron:    cron,
	}
}

var scanGroup singleflight.Group

// Schedule registers the scan on the configured cron expression and starts
// the cron runner. At most one scan runs at a time.
func (s *ScanService) Schedule(ctx context.Context) error {
	runFunc := func() {
		_, _, _ = scanGroup.Do("scan", func() (any, error) {
			if err := s.RunOnce(ctx); err != nil {
				log.Error("Library scan failed: %v", err)
			}
			return nil, nil
		})
	}

	if _, err := s.cron.AddFunc(s.cfg.Library.CronExpr, runFunc); err != nil {
		return err
	}
	s.cron.Start()
	log.Info("Scheduled library scan with cron expression %q over %d dirs",
		s.cfg.Library.CronExpr, len(s.cfg.Library.Dirs))
	return nil
}

// RunOnce performs a single scan-and-enqueue pass.
func (s *ScanService) RunOnce(ctx context.Context) error {
	lib, err := s.scanner.Scan(ctx)
	if err != nil {
		return err
	}
	log.Info("Library scan found %d subtitle files", len(lib.Files))

	for _, file := range lib.Files {
		job, created := s.queue.Enqueue(jobs.EnqueueRequest{
			Source:    "library-scan",
			DedupeKey: file.Path,
			Payload: jobs.JobPayload{
				SubtitlePath: file.Path,
				Format:       string(file.Format),
			},
		})
		if created {
			log.Debug("Enqueued analysis job %s for %s", job.ID, file.Path)
		}
	}
	return nil
}
