package library

import (
	"time"

	"github.com/animelens/animelens/internal/subtitle"
)

// SubtitleFile is one discovered subtitle file.
type SubtitleFile struct {
	Path   string          `json:"path"`
	Format subtitle.Format `json:"format"`
}

// Library is the result of one scan over the configured directories.
type Library struct {
	Files   []SubtitleFile `json:"files"`
	Scanned time.Time      `json:"scanned"`
}
