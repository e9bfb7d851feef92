package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/XIVMarket_Go/internal/config"
	"github.com/osse101/XIVMarket_Go/internal/crafting"
	"github.com/osse101/XIVMarket_Go/internal/domain"
)

func TestCleanupLogs_KeepsNewest(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 12; i++ {
		name := fmt.Sprintf(LogFileNamePattern, fmt.Sprintf("2026-01-%02d_10-00-00", i+1))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644))

	cleanupLogs(dir, LogFileRetentionCount)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	assert.Len(t, names, LogFileRetentionCount) // 8 logs plus notes.txt
	assert.Contains(t, names, "notes.txt")
	assert.Contains(t, names, "session_2026-01-12_10-00-00.log")
	assert.NotContains(t, names, "session_2026-01-04_10-00-00.log")
}

func TestSetupLogger_WritesSessionFile(t *testing.T) {
	cfg := &config.Config{LogLevel: "debug", LogFormat: "json", LogDir: filepath.Join(t.TempDir(), "logs"), ServiceName: "test"}

	f, err := SetupLogger(cfg)
	require.NoError(t, err)
	require.NotNil(t, f)
	defer f.Close()

	info, err := f.Stat()
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestSetupLogger_StdoutOnly(t *testing.T) {
	f, err := SetupLogger(&config.Config{LogLevel: "info", LogFormat: "text"})
	require.NoError(t, err)
	assert.Nil(t, f)
}

type recorder struct {
	calls *[]string
	err   error
}

func (r recorder) Stop(context.Context) error {
	*r.calls = append(*r.calls, "server")
	return r.err
}

type hubRecorder struct{ calls *[]string }

func (h hubRecorder) Stop() { *h.calls = append(*h.calls, "hub") }

func TestGracefulShutdown_Order(t *testing.T) {
	var calls []string
	GracefulShutdown(context.Background(), ShutdownComponents{
		Server: recorder{calls: &calls, err: errors.New("deadline")},
		Hub:    hubRecorder{calls: &calls},
	})
	assert.Equal(t, []string{"hub", "server"}, calls)

	// Missing components are skipped
	GracefulShutdown(context.Background(), ShutdownComponents{})
}

func TestBuildServices(t *testing.T) {
	cfg := &config.Config{
		PriceAPIURL:       "http://127.0.0.1:1/",
		ItemAPIURL:        "http://127.0.0.1:1/",
		SearchAPIURL:      "http://127.0.0.1:1/",
		NameAPIURL:        "http://127.0.0.1:1/",
		SearchTimeout:     time.Second,
		LookupTimeout:     time.Second,
		RecipeDepth:       2,
		MaxSearchPages:    3,
		NameConcurrency:   2,
		UpstreamRPS:       5,
		UpstreamBurst:     5,
		CacheTTL:          time.Minute,
		CacheSize:         16,
		DefaultServer:     "Tonberry",
		DefaultDatacenter: "Elemental",
		DefaultLanguage:   "ja",
	}

	svc := BuildServices(cfg)

	require.NotNil(t, svc.Search)
	require.NotNil(t, svc.Crafting)
	assert.Equal(t, "Tonberry", svc.State.Snapshot().Server)
	assert.Equal(t, domain.LanguageJapanese, svc.State.Snapshot().Language)

	_, err := svc.Crafting.Resolve(context.Background(), 0, crafting.Options{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
