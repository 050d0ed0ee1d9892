package service

import (
	"time"

	"github.com/animelens/animelens/internal/analyze"
	"github.com/animelens/animelens/internal/subtitle"
)

// EntryAnalysis pairs one dialogue entry with its linguistic breakdown.
type EntryAnalysis struct {
	Entry    subtitle.Entry           `json:"entry"`
	Analysis analyze.SentenceAnalysis `json:"analysis"`
}

// FileReport is the result of analyzing one subtitle file. Entries keep
// original file order regardless of annotation completion order.
type FileReport struct {
	Path         string          `json:"path"`
	Format       subtitle.Format `json:"format"`
	Language     string          `json:"language"`
	TotalEntries int             `json:"totalEntries"`
	Entries      []EntryAnalysis `json:"entries"`
	GeneratedAt  time.Time       `json:"generatedAt"`
}
