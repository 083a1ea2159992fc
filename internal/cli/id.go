package cli

import (
	"context"

	"github.com/gasoline-dev/gas/internal/app"
	urfave "github.com/urfave/cli/v2"
)

func idCommand(r *Runner) *urfave.Command {
	return &urfave.Command{
		Name:  "id",
		Usage: "work with resource ids",
		Subcommands: []*urfave.Command{
			{
				Name:         "new",
				Usage:        "generate a new resource id",
				OnUsageError: usageError,
				Flags: []urfave.Flag{
					&urfave.StringFlag{Name: "group", Usage: "Entity group, e.g. 'core'."},
					&urfave.StringFlag{Name: "entity", Usage: "Entity, e.g. 'base'."},
					&urfave.StringFlag{Name: "kind", Usage: "Resource kind, e.g. 'cloudflare-worker'."},
					&urfave.StringSliceFlag{Name: "qualifier", Usage: "Extra descriptor segment. Repeatable."},
				},
				Action: r.action(func(_ context.Context, a *app.App, c *urfave.Context) error {
					for _, name := range []string{"group", "entity", "kind"} {
						if c.String(name) == "" {
							return &ExitError{Code: ExitUsage, Message: "missing required flag --" + name}
						}
					}
					err := a.NewID(c.String("group"), c.String("entity"), c.String("kind"), c.StringSlice("qualifier")...)
					if err != nil {
						return &ExitError{Code: ExitUsage, Message: err.Error()}
					}
					return nil
				}),
			},
		},
	}
}
