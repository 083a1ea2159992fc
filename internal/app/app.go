package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/gasoline-dev/gas/internal/config"
	"github.com/gasoline-dev/gas/internal/ctxlog"
	"github.com/gasoline-dev/gas/internal/driver"
	"github.com/gasoline-dev/gas/internal/identity"
	"github.com/gasoline-dev/gas/internal/report"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	logger   *slog.Logger
	config   *Config
	project  *config.File
	loader   identity.ExportLoader
	provider driver.Provider
	renderer *report.Renderer
}

// Option customizes an App.
type Option func(*App)

// WithProvider replaces the deploy provider used by Up.
func WithProvider(p driver.Provider) Option {
	return func(a *App) { a.provider = p }
}

// NewApp is the constructor for the main application. Command output goes
// to outW and logs to logW. A nil loader runs artifacts through Node.js.
func NewApp(outW, logW io.Writer, cfg *Config, loader identity.ExportLoader, opts ...Option) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	configPath := cfg.ConfigPath
	if configPath == "" {
		configPath = config.DefaultFileName
	}
	project, err := config.Load(ctx, resolvePath(cfg.ProjectRoot, configPath), cfg.ProjectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	renderer, err := report.NewRenderer(outW, cfg.OutputFormat)
	if err != nil {
		return nil, err
	}

	if loader == nil {
		loader = identity.NewNodeLoader(project.NodeBinary)
	}

	a := &App{
		logger:   logger,
		config:   cfg,
		project:  project,
		loader:   loader,
		provider: &driver.LogProvider{},
		renderer: renderer,
	}
	for _, opt := range opts {
		opt(a)
	}
	logger.Debug("App initialized.", "project", project.Project, "root", cfg.ProjectRoot)
	return a, nil
}

// Project returns the loaded project file settings.
func (a *App) Project() *config.File {
	return a.project
}

// containerDirs applies flag > project file > default precedence.
func (a *App) containerDirs() []string {
	dirs := a.project.ResourceContainerDirs
	if len(a.config.ResourceContainerDirs) > 0 {
		dirs = a.config.ResourceContainerDirs
	}
	resolved := make([]string, len(dirs))
	for i, d := range dirs {
		resolved[i] = resolvePath(a.config.ProjectRoot, d)
	}
	return resolved
}

func (a *App) context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

func resolvePath(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
