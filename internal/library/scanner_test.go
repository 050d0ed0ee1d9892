package library

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/animelens/animelens/internal/subtitle"
)

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path   string
		format subtitle.Format
		ok     bool
	}{
		{"episode01.srt", subtitle.FormatSRT, true},
		{"episode01.SRT", subtitle.FormatSRT, true},
		{"episode01.ass", subtitle.FormatASS, true},
		{"episode01.ssa", subtitle.FormatASS, true},
		{"episode01.vtt", "", false},
		{"episode01.mkv", "", false},
		{"noextension", "", false},
	}
	for _, tt := range tests {
		format, ok := FormatForPath(tt.path)
		assert.Equal(t, tt.ok, ok, tt.path)
		assert.Equal(t, tt.format, format, tt.path)
	}
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "show", "ep1.srt"))
	writeFile(t, filepath.Join(dir, "show", "ep2.ass"))
	writeFile(t, filepath.Join(dir, "show", "ep2.mkv"))
	writeFile(t, filepath.Join(dir, ".hidden", "secret.srt"))

	scanner := NewScanner([]string{dir, filepath.Join(dir, "does-not-exist")})
	lib, err := scanner.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, lib.Files, 2)

	assert.Equal(t, subtitle.FormatSRT, lib.Files[0].Format)
	assert.Equal(t, subtitle.FormatASS, lib.Files[1].Format)
}

func TestScanCaches(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ep1.srt"))

	scanner := NewScanner([]string{dir}, WithCacheTTL(time.Hour))
	first, err := scanner.Scan(context.Background())
	require.NoError(t, err)

	// A file added after the first scan is invisible until invalidation.
	writeFile(t, filepath.Join(dir, "ep2.srt"))
	cached, err := scanner.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, cached)

	scanner.Invalidate()
	fresh, err := scanner.Scan(context.Background())
	require.NoError(t, err)
	assert.Len(t, fresh.Files, 2)
}
