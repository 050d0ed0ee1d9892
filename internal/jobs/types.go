package jobs

import (
	"context"
	"time"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

type EnqueueRequest struct {
	Source    string
	DedupeKey string
	Payload   JobPayload
}

type JobPayload struct {
	SubtitlePath string `json:"subtitle_path"`
	Format       string `json:"format"`
}

// AnalysisJob tracks one subtitle file through the annotation pipeline.
type AnalysisJob struct {
	ID        string     `json:"id"`
	Source    string     `json:"source"`
	DedupeKey string     `json:"dedupe_key"`
	Payload   JobPayload `json:"payload"`
	Status    Status     `json:"status"`
	Error     string     `json:"error,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Store persists jobs across restarts. A nil store keeps the queue purely
// in memory.
type Store interface {
	LoadJobs(ctx context.Context) ([]*AnalysisJob, error)
	UpsertJob(ctx context.Context, job *AnalysisJob) error
	DeleteJob(ctx context.Context, id string) error
}
