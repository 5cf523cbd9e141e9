package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"TRACKER_IMAGE_DIR", "TRACKER_ANALYZED_DIR", "TRACKER_WORKERS", "TRACKER_DEBOUNCE_MS",
	"TRACKER_LISTEN_ADDR", "TRACKER_LOG_LEVEL", "TRACKER_LOG_CONSOLE", "TRACKER_OCR_CROSSCHECK",
}

// clearEnv unsets every tracker variable for the duration of the test.
func clearEnv(t *testing.T) {
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 300*time.Millisecond, cfg.Debounce)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.LogConsole)
	assert.False(t, cfg.OCRCrossCheck)
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	env := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(env, []byte(
		"TRACKER_IMAGE_DIR="+dir+"\nTRACKER_WORKERS=4\nTRACKER_OCR_CROSSCHECK=true\nTRACKER_LOG_LEVEL=debug\n"), 0o644))
	t.Setenv("TRACKER_LOG_LEVEL", "warn")

	cfg, err := Load(env)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.ImageDir)
	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.OCRCrossCheck)
	assert.Equal(t, "warn", cfg.LogLevel, "environment wins over the file")
}

func TestLoadIgnoresBadNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRACKER_WORKERS", "many")
	t.Setenv("TRACKER_LOG_CONSOLE", "sometimes")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Workers)
	assert.True(t, cfg.LogConsole)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := Config{ImageDir: dir, AnalyzedDir: filepath.Join(dir, "out"), Workers: 1}
	require.NoError(t, good.Validate())

	cases := map[string]func(c *Config){
		"no image dir":    func(c *Config) { c.ImageDir = "" },
		"no analyzed dir": func(c *Config) { c.AnalyzedDir = "" },
		"missing folder":  func(c *Config) { c.ImageDir = filepath.Join(dir, "nope") },
		"zero workers":    func(c *Config) { c.Workers = 0 },
		"negative wait":   func(c *Config) { c.Debounce = -time.Second },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := good
			mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
