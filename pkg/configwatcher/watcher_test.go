package configwatcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"lingua_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseConfig = "database:\n  driver: sqlite\ncors:\n  allowed_origins: [\"http://a.example\"]\n"

func TestWatchReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(baseConfig), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *config.Config, 1)
	done := make(chan error, 1)
	go func() {
		done <- watch(ctx, file, 50*time.Millisecond, func(cfg *config.Config) {
			select {
			case reloaded <- cfg:
			default:
			}
		})
	}()

	// 给 watcher 注册的时间
	time.Sleep(100 * time.Millisecond)
	updated := "database:\n  driver: sqlite\ncors:\n  allowed_origins: [\"http://b.example\"]\n"
	require.NoError(t, os.WriteFile(file, []byte(updated), 0o644))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, []string{"http://b.example"}, cfg.CORS.AllowedOrigins)
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatchIgnoresInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(baseConfig), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan struct{}, 1)
	go watch(ctx, file, 50*time.Millisecond, func(*config.Config) { reloaded <- struct{}{} })

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(file, []byte("database:\n  driver: oracle\n"), 0o644))

	select {
	case <-reloaded:
		t.Fatal("invalid config must not be applied")
	case <-time.After(500 * time.Millisecond):
	}
}
