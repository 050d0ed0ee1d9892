package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/animelens/animelens/internal/analyze"
	"github.com/animelens/animelens/internal/config"
	"github.com/animelens/animelens/internal/jlpt"
	"github.com/animelens/animelens/internal/jobs"
	"github.com/animelens/animelens/internal/library"
	"github.com/animelens/animelens/internal/persistence"
	"github.com/animelens/animelens/internal/service"
	"github.com/animelens/animelens/internal/tokenize"
	"github.com/animelens/animelens/pkg/log"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatal("Failed to load configuration: %v", err)
	}
	log.InitLogger(log.ParseLevel(cfg.LogLevel))

	tables, err := jlpt.Load()
	if err != nil {
		log.Fatal("Failed to load rule tables: %v", err)
	}
	annotator := analyze.NewAnnotator(tables, analyze.WithVocabLimit(cfg.Analyze.VocabLimit))

	var tokenizer analyze.Tokenizer
	if cfg.Analyze.Tokenizer == config.TokenizerKagome {
		kt, err := tokenize.New()
		if err != nil {
			log.Warn("Kagome unavailable, using fallback segmentation: %v", err)
		} else {
			tokenizer = kt
		}
	}

	svc := service.NewAnalyzerService(*cfg, annotator, tokenizer)

	// With file arguments: one-shot analysis to stdout.
	// Without: scheduled library mode.
	if len(os.Args) > 1 {
		analyzeFiles(svc, os.Args[1:])
		return
	}
	runScheduled(cfg, svc)
}

func analyzeFiles(svc *service.AnalyzerService, paths []string) {
	ctx := context.Background()
	for _, path := range paths {
		report, err := svc.AnalyzeFile(ctx, path)
		if err != nil {
			var analyzerErr *service.AnalyzerError
			if errors.As(err, &analyzerErr) {
				log.Error("%v", analyzerErr)
				fmt.Fprintln(os.Stderr, analyzerErr.Advice())
			} else {
				log.Error("Failed to analyze %s: %v", path, err)
			}
			os.Exit(1)
		}

		encoded, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			log.Fatal("Failed to encode report for %s: %v", path, err)
		}
		fmt.Println(string(encoded))
	}
}

func runScheduled(cfg *config.Config, svc *service.AnalyzerService) {
	if len(cfg.Library.Dirs) == 0 {
		log.Fatal("LIBRARY_DIRS is required in scheduled mode")
	}

	store, err := persistence.NewSQLiteStore(cfg.Storage.DBPath)
	if err != nil {
		log.Fatal("Failed to open store: %v", err)
	}
	defer store.Close()

	queue := jobs.NewQueue(cfg.Storage.JobWorkers, store)
	queue.Start(func(ctx context.Context, job *jobs.AnalysisJob) error {
		report, err := svc.AnalyzeFile(ctx, job.Payload.SubtitlePath)
		if err != nil {
			return err
		}
		return store.SaveReport(ctx, report)
	})
	defer queue.Stop()

	scanner := library.NewScanner(cfg.Library.Dirs)
	scanSvc := service.NewScanService(*cfg, scanner, queue, cron.New())

	ctx := context.Background()
	if err := scanSvc.RunOnce(ctx); err != nil {
		log.Error("Initial library scan failed: %v", err)
	}
	if err := scanSvc.Schedule(ctx); err != nil {
		log.Fatal("Failed to schedule library scan: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("Shutting down")
}
