// Package config loads tracker settings from an optional .env file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds tracker configuration.
type Config struct {
	// ImageDir is the folder photos arrive in.
	ImageDir string
	// AnalyzedDir receives one report folder per photo and the index.
	AnalyzedDir string

	Workers  int
	Debounce time.Duration

	// ListenAddr is the HTTP address; empty disables the server.
	ListenAddr string

	LogLevel   string
	LogConsole bool

	// OCRCrossCheck adds a Tesseract reading of the digit panel to reports.
	OCRCrossCheck bool
}

// Load reads envFile (ignored when missing) and then the TRACKER_* variables.
// Values already in the environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		ImageDir:      getEnvOrDefault("TRACKER_IMAGE_DIR", ""),
		AnalyzedDir:   getEnvOrDefault("TRACKER_ANALYZED_DIR", ""),
		Workers:       getEnvAsIntOrDefault("TRACKER_WORKERS", 2),
		Debounce:      time.Duration(getEnvAsIntOrDefault("TRACKER_DEBOUNCE_MS", 300)) * time.Millisecond,
		ListenAddr:    getEnvOrDefault("TRACKER_LISTEN_ADDR", ":8080"),
		LogLevel:      getEnvOrDefault("TRACKER_LOG_LEVEL", "info"),
		LogConsole:    getEnvAsBoolOrDefault("TRACKER_LOG_CONSOLE", true),
		OCRCrossCheck: getEnvAsBoolOrDefault("TRACKER_OCR_CROSSCHECK", false),
	}
	return cfg, nil
}

// Validate checks the settings a watcher needs.
func (c *Config) Validate() error {
	if c.ImageDir == "" {
		return fmt.Errorf("TRACKER_IMAGE_DIR is required")
	}
	if c.AnalyzedDir == "" {
		return fmt.Errorf("TRACKER_ANALYZED_DIR is required")
	}
	if fi, err := os.Stat(c.ImageDir); err != nil || !fi.IsDir() {
		return fmt.Errorf("image folder %q is not a directory", c.ImageDir)
	}
	if c.Workers < 1 {
		return fmt.Errorf("TRACKER_WORKERS must be positive, got %d", c.Workers)
	}
	if c.Debounce < 0 {
		return fmt.Errorf("TRACKER_DEBOUNCE_MS must not be negative, got %v", c.Debounce)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
