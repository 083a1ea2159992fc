package app

import (
	"errors"
	"fmt"

	"github.com/gasoline-dev/gas/internal/report"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ProjectRoot string
	// ConfigPath is the project file; relative paths resolve against ProjectRoot.
	ConfigPath string
	// ResourceContainerDirs overrides the project file when non-empty.
	ResourceContainerDirs []string

	LogFormat    string
	LogLevel     string
	WorkerCount  int
	OutputFormat string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ProjectRoot == "" {
		return nil, errors.New("ProjectRoot is a required configuration field and cannot be empty")
	}
	if cfg.WorkerCount < 1 {
		return nil, fmt.Errorf("workers must be at least 1, got %d", cfg.WorkerCount)
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, errors.New("invalid log-format: must be 'text' or 'json'")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, errors.New("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}
	switch cfg.OutputFormat {
	case report.FormatText, report.FormatJSON, report.FormatYAML:
	default:
		return nil, errors.New("invalid format: must be 'text', 'json' or 'yaml'")
	}

	return &cfg, nil
}
