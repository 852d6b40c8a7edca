package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, 3, cfg.API.Supabase.RetryCount)
	assert.Equal(t, 30*time.Second, cfg.API.Supabase.Timeout.Std())
	assert.Equal(t, 5*time.Minute, cfg.RefData.CacheTTL.Std())
	assert.Equal(t, 2, cfg.Bot.MinNameLen)
	assert.Equal(t, 50, cfg.Bot.MaxExperience)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
api:
  supabase:
    url: https://db.example.com
    bucket: uploads
    retry_count: 5
refdata:
  cache_ttl: 1m
bot:
  min_name_len: 3
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFile(path))

	assert.Equal(t, "https://db.example.com", cfg.API.Supabase.URL)
	assert.Equal(t, "uploads", cfg.API.Supabase.Bucket)
	assert.Equal(t, 5, cfg.API.Supabase.RetryCount)
	assert.Equal(t, time.Minute, cfg.RefData.CacheTTL.Std())
	assert.Equal(t, 3, cfg.Bot.MinNameLen)
	// Не тронутые файлом значения остаются по умолчанию.
	assert.Equal(t, 30*time.Second, cfg.API.Supabase.Timeout.Std())
}

func TestLoadFileBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("refdata:\n  cache_ttl: вечность\n"), 0o644))

	cfg := NewConfig()
	assert.Error(t, cfg.LoadFile(path))
}

func TestLoadFileMissing(t *testing.T) {
	cfg := NewConfig()
	assert.Error(t, cfg.LoadFile("нет-такого-файла.yaml"))
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "tok123")
	t.Setenv("SUPABASE_URL", "https://env.example.com")
	t.Setenv("SUPABASE_KEY", "key123")
	t.Setenv("SUPABASE_BUCKET", "env-bucket")

	cfg := NewConfig()
	cfg.ApplyEnv()

	assert.Equal(t, "tok123", cfg.API.Telegram.Token)
	assert.Equal(t, "https://env.example.com", cfg.API.Supabase.URL)
	assert.Equal(t, "key123", cfg.API.Supabase.Key)
	assert.Equal(t, "env-bucket", cfg.API.Supabase.Bucket)
}

func TestValidate(t *testing.T) {
	cfg := NewConfig()
	assert.Error(t, cfg.Validate())

	cfg.API.Telegram.Token = "tok"
	cfg.API.Supabase.URL = "https://db.example.com"
	cfg.API.Supabase.Key = "key"
	assert.NoError(t, cfg.Validate())
}
