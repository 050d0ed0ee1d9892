package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/animelens/animelens/internal/analyze"
	"github.com/animelens/animelens/internal/config"
	"github.com/animelens/animelens/internal/library"
	"github.com/animelens/animelens/internal/subtitle"
	"github.com/animelens/animelens/pkg/log"
)

// AnalyzerService runs the parse-then-annotate pipeline over subtitle
// files and single sentences. It holds no mutable state, so one instance
// serves concurrent callers.
type AnalyzerService struct {
	cfg       config.Config
	annotator *analyze.Annotator
	tokenizer analyze.Tokenizer
}

// NewAnalyzerService builds the service. tokenizer may be nil; the
// annotator then uses its regex fallback for vocabulary extraction.
func NewAnalyzerService(
	cfg config.Config,
	annotator *analyze.Annotator,
	tokenizer analyze.Tokenizer,
) *AnalyzerService {
	return &AnalyzerService{
		cfg:       cfg,
		annotator: annotator,
		tokenizer: tokenizer,
	}
}

// AnalyzeFile reads, parses, and annotates one subtitle file. Only files
// with a recognized subtitle extension are accepted; everything else is an
// UnsupportedFormat error before any parsing happens. Annotation is capped
// at the configured number of entries per request.
func (s *AnalyzerService) AnalyzeFile(ctx context.Context, path string) (*FileReport, error) {
	format, ok := library.FormatForPath(path)
	if !ok {
		return nil, NewError(ErrUnsupportedFormat,
			fmt.Sprintf("unsupported subtitle format: %s", path)).
			WithContext("path", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewErrorWithCause(ErrFileNotFound,
				fmt.Sprintf("subtitle file does not exist: %s", path), err)
		}
		return nil, NewErrorWithCause(ErrFileRead,
			fmt.Sprintf("failed to read subtitle file: %s", path), err)
	}

	entries := subtitle.Parse(string(data), format)
	lang := subtitle.DetectLanguage(entries)
	log.Info("Parsed %d entries from %s (detected language %s)", len(entries), path, lang)

	selected := entries
	if len(selected) > s.cfg.Analyze.MaxEntries {
		selected = selected[:s.cfg.Analyze.MaxEntries]
	}

	analyses, err := s.annotateEntries(ctx, selected)
	if err != nil {
		return nil, err
	}

	return &FileReport{
		Path:         path,
		Format:       format,
		Language:     lang.String(),
		TotalEntries: len(entries),
		Entries:      analyses,
		GeneratedAt:  time.Now(),
	}, nil
}

// annotateEntries annotates entries concurrently. Results are placed by
// index so the report preserves the original entry order, not completion
// order.
func (s *AnalyzerService) annotateEntries(
	ctx context.Context,
	entries []subtitle.Entry,
) ([]EntryAnalysis, error) {
	analyses := make([]EntryAnalysis, len(entries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Analyze.Concurrency)
	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			analyses[i] = EntryAnalysis{
				Entry:    entry,
				Analysis: s.annotate(entry.Text),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return analyses, nil
}

// AnalyzeText annotates a single sentence. Empty or non-Japanese input is
// rejected; the annotation itself never fails.
func (s *AnalyzerService) AnalyzeText(text string) (analyze.SentenceAnalysis, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return analyze.SentenceAnalysis{}, NewError(ErrValidation, "text cannot be empty")
	}
	if !subtitle.HasJapaneseContent(text) {
		return analyze.SentenceAnalysis{}, NewError(ErrValidation,
			"text must contain Japanese characters").WithContext("text", text)
	}
	return s.annotate(text), nil
}

// annotate runs the tokenizer when one is wired in; a tokenizer failure
// degrades to the fallback extraction instead of failing the sentence.
func (s *AnalyzerService) annotate(text string) analyze.SentenceAnalysis {
	var tokens []analyze.Token
	if s.tokenizer != nil {
		var err error
		tokens, err = s.tokenizer.Tokenize(text)
		if err != nil {
			log.Warn("Tokenizer failed for %q, using fallback segmentation: %v", text, err)
			tokens = nil
		}
	}
	return s.annotator.Annotate(text, tokens)
}
