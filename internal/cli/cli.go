// Package cli defines the gas command line: global flags, subcommands, and
// the mapping from failures to process exit codes.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gasoline-dev/gas/internal/app"
	"github.com/gasoline-dev/gas/internal/config"
	"github.com/gasoline-dev/gas/internal/dag"
	"github.com/gasoline-dev/gas/internal/identity"
	urfave "github.com/urfave/cli/v2"
)

// Version is set at build time.
var Version = "dev"

// Exit codes.
const (
	ExitFailure = 1
	ExitUsage   = 2
	ExitCycle   = 3
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Runner carries what every command needs to build an app.App.
type Runner struct {
	outW   io.Writer
	errW   io.Writer
	loader identity.ExportLoader
	opts   []app.Option
}

// NewRunner creates a Runner. A nil loader uses Node.js.
func NewRunner(outW, errW io.Writer, loader identity.ExportLoader, opts ...app.Option) *Runner {
	return &Runner{outW: outW, errW: errW, loader: loader, opts: opts}
}

// Run parses args (without the program name) and executes the selected
// command. Failures come back as *ExitError where the exit code matters.
func (r *Runner) Run(ctx context.Context, args []string) error {
	slog.Debug("CLI parser started.", "args", args)
	err := r.command().RunContext(ctx, append([]string{"gas"}, args...))
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	var cycleErr *dag.CycleError
	if errors.As(err, &cycleErr) {
		return &ExitError{Code: ExitCycle, Message: err.Error()}
	}
	return err
}

func (r *Runner) command() *urfave.App {
	return &urfave.App{
		Name:      "gas",
		Usage:     "resolve and deploy the resource graph of a gasoline project",
		Version:   Version,
		Writer:    r.outW,
		ErrWriter: r.errW,
		Flags:     globalFlags(),
		// Without arguments gas prints the graph.
		Action:         r.rootAction,
		OnUsageError:   usageError,
		ExitErrHandler: func(*urfave.Context, error) {},
		Commands: []*urfave.Command{
			{
				Name:         "graph",
				Usage:        "print every resource with its upstream dependencies, endpoints and cycles",
				OnUsageError: usageError,
				Action:       r.action(func(ctx context.Context, a *app.App, _ *urfave.Context) error { return a.Graph(ctx) }),
			},
			{
				Name:         "endpoints",
				Usage:        "print resources that nothing else depends on",
				OnUsageError: usageError,
				Action:       r.action(func(ctx context.Context, a *app.App, _ *urfave.Context) error { return a.Endpoints(ctx) }),
			},
			{
				Name:         "plan",
				Usage:        "show the changes up would make",
				OnUsageError: usageError,
				Action:       r.action(func(ctx context.Context, a *app.App, _ *urfave.Context) error { return a.Plan(ctx) }),
			},
			{
				Name:         "up",
				Usage:        "apply the plan and record the new state",
				OnUsageError: usageError,
				Action:       r.action(func(ctx context.Context, a *app.App, _ *urfave.Context) error { return a.Up(ctx) }),
			},
			idCommand(r),
		},
	}
}

func globalFlags() []urfave.Flag {
	return []urfave.Flag{
		&urfave.StringFlag{
			Name:    "project-root",
			Aliases: []string{"C"},
			Value:   ".",
			Usage:   "Project root directory.",
			EnvVars: []string{"GAS_PROJECT_ROOT"},
		},
		&urfave.StringFlag{
			Name:    "config",
			Value:   config.DefaultFileName,
			Usage:   "Project file, relative to the project root.",
			EnvVars: []string{"GAS_CONFIG"},
		},
		&urfave.StringSliceFlag{
			Name:  "resource-container-dir",
			Usage: "Resource container directory; overrides the project file. Repeatable.",
		},
		&urfave.StringFlag{
			Name:    "log-level",
			Value:   "info",
			Usage:   "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.",
			EnvVars: []string{"GAS_LOG_LEVEL"},
		},
		&urfave.StringFlag{
			Name:    "log-format",
			Value:   "text",
			Usage:   "Log output format. Options: 'text' or 'json'.",
			EnvVars: []string{"GAS_LOG_FORMAT"},
		},
		&urfave.IntFlag{
			Name:    "workers",
			Value:   10,
			Usage:   "Number of concurrent workers for scanning and deploying.",
			EnvVars: []string{"GAS_WORKERS"},
		},
		&urfave.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Value:   "text",
			Usage:   "Output format. Options: 'text', 'json', 'yaml'.",
		},
	}
}

func usageError(_ *urfave.Context, err error, _ bool) error {
	return &ExitError{Code: ExitUsage, Message: err.Error()}
}

func (r *Runner) rootAction(c *urfave.Context) error {
	if c.Args().Present() {
		return &ExitError{Code: ExitUsage, Message: fmt.Sprintf("unknown command %q", c.Args().First())}
	}
	return r.action(func(ctx context.Context, a *app.App, _ *urfave.Context) error { return a.Graph(ctx) })(c)
}

type commandFunc func(ctx context.Context, a *app.App, c *urfave.Context) error

// action wraps fn with flag validation and App construction.
func (r *Runner) action(fn commandFunc) urfave.ActionFunc {
	return func(c *urfave.Context) error {
		a, err := r.newApp(c)
		if err != nil {
			return err
		}
		return fn(c.Context, a, c)
	}
}

func (r *Runner) newApp(c *urfave.Context) (*app.App, error) {
	cfg, err := Config(c)
	if err != nil {
		return nil, err
	}
	a, err := app.NewApp(r.outW, r.errW, cfg, r.loader, r.opts...)
	if err != nil {
		return nil, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	return a, nil
}

// Config builds the validated app configuration from parsed flags.
func Config(c *urfave.Context) (*app.Config, error) {
	cfg, err := app.NewConfig(app.Config{
		ProjectRoot:           c.String("project-root"),
		ConfigPath:            c.String("config"),
		ResourceContainerDirs: c.StringSlice("resource-container-dir"),
		LogFormat:             strings.ToLower(c.String("log-format")),
		LogLevel:              strings.ToLower(c.String("log-level")),
		WorkerCount:           c.Int("workers"),
		OutputFormat:          strings.ToLower(c.String("format")),
	})
	if err != nil {
		return nil, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	return cfg, nil
}
