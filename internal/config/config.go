// Package config loads exporter configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Defaults shared by both exporters.
const (
	DefaultMaxRetries      = 7
	DefaultCredentialsFile = "credentials.json"
	DefaultTokenFile       = "token.json"
)

// Config holds everything a single export run needs.
type Config struct {
	// Traversal root
	RootFolderID   string
	RootFolderName string

	// Output
	OutputDir string

	// Drive API
	MaxRetries      int
	CredentialsFile string
	TokenFile       string

	// Logging
	LogLevel  string
	LogFormat string
}

// Load reads configuration from a .env file (if present) and the
// environment; .env values override already-exported variables.
// defaultOutputDir is the mode-specific destination used when OUTPUT_DIR
// is unset.
func Load(defaultOutputDir string) (*Config, error) {
	_ = godotenv.Overload()

	cfg := &Config{
		RootFolderID:    os.Getenv("ROOT_FOLDER_ID"),
		RootFolderName:  os.Getenv("ROOT_FOLDER_NAME"),
		OutputDir:       envOr("OUTPUT_DIR", defaultOutputDir),
		MaxRetries:      envInt("MAX_RETRIES", DefaultMaxRetries),
		CredentialsFile: envOr("GOOGLE_CREDENTIALS_FILE", DefaultCredentialsFile),
		TokenFile:       envOr("GOOGLE_TOKEN_FILE", DefaultTokenFile),
		LogLevel:        envOr("LOG_LEVEL", "info"),
		LogFormat:       envOr("LOG_FORMAT", "console"),
	}

	if cfg.RootFolderID == "" {
		return nil, fmt.Errorf("ROOT_FOLDER_ID is required")
	}
	if cfg.RootFolderName == "" {
		return nil, fmt.Errorf("ROOT_FOLDER_NAME is required")
	}

	return cfg, nil
}

// OutputPath returns the CSV destination for this run, e.g.
// indexes/<root name>_index.csv.
func (c *Config) OutputPath(suffix string) string {
	return filepath.Join(c.OutputDir, c.RootFolderName+"_"+suffix+".csv")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}
