package library

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/animelens/animelens/internal/subtitle"
)

type scannerOptions struct {
	cacheTTL time.Duration
}

type Option func(*scannerOptions)

// WithCacheTTL sets how long a scan result is reused before the
// directories are walked again.
func WithCacheTTL(ttl time.Duration) Option {
	return func(o *scannerOptions) {
		o.cacheTTL = ttl
	}
}

// Scanner finds subtitle files under the configured directories.
type Scanner struct {
	dirs []string

	mu       sync.RWMutex
	cacheTTL time.Duration
	cache    *Library
}

func NewScanner(dirs []string, opts ...Option) *Scanner {
	options := scannerOptions{
		cacheTTL: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(&options)
	}

	return &Scanner{
		dirs:     dirs,
		cacheTTL: options.cacheTTL,
	}
}

// FormatForPath maps a file extension to a subtitle format. The second
// return value is false for anything that is not a subtitle file.
func FormatForPath(path string) (subtitle.Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".srt":
		return subtitle.FormatSRT, true
	case ".ass", ".ssa":
		return subtitle.FormatASS, true
	default:
		return "", false
	}
}

// Scan walks the configured directories and collects subtitle files.
// Hidden directories are skipped. Missing directories are ignored so one
// unmounted share does not break the whole scan.
func (s *Scanner) Scan(ctx context.Context) (*Library, error) {
	s.mu.RLock()
	if s.cache != nil && (s.cacheTTL <= 0 || time.Since(s.cache.Scanned) < s.cacheTTL) {
		cached := s.cache
		s.mu.RUnlock()
		return cached, nil
	}
	dirs := append([]string(nil), s.dirs...)
	s.mu.RUnlock()

	ret := &Library{
		Files:   make([]SubtitleFile, 0),
		Scanned: time.Now(),
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if _, err := os.Stat(dir); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}

		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			if d.IsDir() {
				if strings.HasPrefix(d.Name(), ".") && path != dir {
					return filepath.SkipDir
				}
				return nil
			}
			format, ok := FormatForPath(path)
			if !ok {
				return nil
			}
			ret.Files = append(ret.Files, SubtitleFile{Path: path, Format: format})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(ret.Files, func(i, j int) bool {
		return ret.Files[i].Path < ret.Files[j].Path
	})

	s.mu.Lock()
	s.cache = ret
	s.mu.Unlock()
	return ret, nil
}

// Invalidate drops the cached scan result.
func (s *Scanner) Invalidate() {
	s.mu.Lock()
	s.cache = nil
	s.mu.Unlock()
}
