package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/animelens/animelens/pkg/log"
)

// Config holds all application configuration.
// Supports environment variables with sensible defaults.
//
// Environment Variables:
// Analysis Configuration:
// - ANALYZE_MAX_ENTRIES: Dialogue entries annotated per file request (default: 5)
// - VOCAB_LIMIT: Vocabulary entries reported per sentence (default: 10)
// - ANALYZE_CONCURRENCY: Parallel sentence annotations per file (default: 4)
// - TOKENIZER: Morphological tokenizer, "kagome" or "fallback" (default: kagome)
//
// Library Configuration:
// - LIBRARY_DIRS: Comma-separated directories scanned for subtitle files
// - SCAN_CRON_EXPR: Cron expression for scheduled library scans (default: 0 * * * *)
//
// Storage Configuration:
// - DB_PATH: SQLite database path (default: data/animelens.db)
// - JOB_WORKERS: Analysis job workers (default: 2)
//
// System Configuration:
// - LOG_LEVEL: debug, info, warn, error (default: info)

const (
	TokenizerKagome   = "kagome"
	TokenizerFallback = "fallback"
)

type Config struct {
	Analyze AnalyzeConfig `json:"analyze"`
	Library LibraryConfig `json:"library"`
	Storage StorageConfig `json:"storage"`

	LogLevel string `json:"log_level"`
}

// AnalyzeConfig tunes the annotation pipeline.
type AnalyzeConfig struct {
	MaxEntries  int    `json:"max_entries"`
	VocabLimit  int    `json:"vocab_limit"`
	Concurrency int    `json:"concurrency"`
	Tokenizer   string `json:"tokenizer"`
}

// LibraryConfig describes where subtitle files live and when to scan.
type LibraryConfig struct {
	Dirs     []string `json:"dirs"`
	CronExpr string   `json:"cron_expr"`
}

// StorageConfig configures the job store.
type StorageConfig struct {
	DBPath     string `json:"db_path"`
	JobWorkers int    `json:"job_workers"`
}

// Option is a function type for configuring Config
type Option func(*Config)

// NewFromEnv creates a new Config instance with values from environment
// variables and options.
func NewFromEnv(opts ...Option) (*Config, error) {
	config := &Config{
		Analyze: AnalyzeConfig{
			MaxEntries:  getEnvInt("ANALYZE_MAX_ENTRIES", 5),
			VocabLimit:  getEnvInt("VOCAB_LIMIT", 10),
			Concurrency: getEnvInt("ANALYZE_CONCURRENCY", 4),
			Tokenizer:   getEnvString("TOKENIZER", TokenizerKagome),
		},
		Library: LibraryConfig{
			Dirs:     splitDirs(getEnvString("LIBRARY_DIRS", "")),
			CronExpr: getEnvString("SCAN_CRON_EXPR", "0 * * * *"),
		},
		Storage: StorageConfig{
			DBPath:     getEnvString("DB_PATH", "data/animelens.db"),
			JobWorkers: getEnvInt("JOB_WORKERS", 2),
		},
		LogLevel: getEnvString("LOG_LEVEL", "info"),
	}

	for _, opt := range opts {
		opt(config)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	log.Debug("Config: %+v", config)
	return config, nil
}

// validate checks if all required configuration is properly set
func (c *Config) validate() error {
	if c.Analyze.MaxEntries <= 0 {
		return fmt.Errorf("ANALYZE_MAX_ENTRIES must be positive")
	}
	if c.Analyze.VocabLimit <= 0 {
		return fmt.Errorf("VOCAB_LIMIT must be positive")
	}
	if c.Analyze.Concurrency <= 0 {
		return fmt.Errorf("ANALYZE_CONCURRENCY must be positive")
	}
	switch c.Analyze.Tokenizer {
	case TokenizerKagome, TokenizerFallback:
	default:
		return fmt.Errorf("TOKENIZER must be %q or %q, got %q",
			TokenizerKagome, TokenizerFallback, c.Analyze.Tokenizer)
	}
	return nil
}

func splitDirs(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	dirs := make([]string, 0)
	for _, dir := range strings.Split(raw, ",") {
		dir = strings.TrimSpace(dir)
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// getEnvString gets a string value from environment variables with default
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer value from environment variables with default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
