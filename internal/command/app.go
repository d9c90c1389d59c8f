// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT
package command

import (
	"context"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/utilsgo/internal/config"
	"github.com/staranto/utilsgo/internal/meta"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	// The arg[1] immediately following the binary (arg[0]) is the utils
	// subcommand and also represents the namespace key to be used when
	// retrieving config values. arg[1] could be -h/--help, so ignore it if it
	// appears to be a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}
	config.Config.Namespace = ns

	cfg, _ := config.Load()
	return NewApp(meta.Meta{
		Args:    args,
		Config:  cfg,
		Context: ctx,
	}), nil
}

// StdinSource names standard input as a document source. cli/v3 stops
// collecting positional arguments at a bare "-", so Run rewrites "-" to this
// before parsing.
const StdinSource = "/dev/stdin"

// StdinArgs returns a copy of args with every bare "-" replaced by
// StdinSource.
func StdinArgs(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		if a == "-" {
			a = StdinSource
		}
		out[i] = a
	}
	return out
}

// Run runs app against args.
func Run(ctx context.Context, app *cli.Command, args []string) error {
	return app.Run(ctx, StdinArgs(args))
}

// NewApp assembles the root command around m.
func NewApp(m meta.Meta) *cli.Command {
	app := &cli.Command{
		Name:  "utils",
		Usage: "nested document and JSON utilities",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "utils version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		CompletionCommandBuilder(app, m),
		DrillCommandBuilder(app, m),
		FetchCommandBuilder(app, m),
		GetCommandBuilder(app, m),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app
}
