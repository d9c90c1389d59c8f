// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/utilsgo/internal/config"
	"github.com/staranto/utilsgo/internal/meta"
	"github.com/staranto/utilsgo/internal/output"
)

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr utils <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "utils", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// Emit renders v with the command's output flags to the root command's
// writer.
func Emit(cmd *cli.Command, v any) error {
	return output.Spit(writer(cmd), v, OutputOptions(cmd))
}

func writer(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}

func reader(cmd *cli.Command) io.Reader {
	if root := cmd.Root(); root != nil && root.Reader != nil {
		return root.Reader
	}
	return os.Stdin
}

// QueryCommandBuilder constructs a cli.Command for query subcommands (get,
// fetch, drill) using a consistent pattern. The builder wires metadata, adds
// the tldr and global output flags, and validates positional arguments.
type QueryCommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	MinArgs   int
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (qcb *QueryCommandBuilder) Build() *cli.Command {
	return &cli.Command{
		Name:      qcb.Name,
		Usage:     qcb.Usage,
		UsageText: qcb.UsageText,
		Metadata: map[string]any{
			"meta": qcb.Meta,
		},
		Flags: append(qcb.Flags, append([]cli.Flag{
			NewTLDRFlag(),
		}, NewGlobalFlags(qcb.Name)...)...),
		Before: ArgCountValidator(qcb.MinArgs, qcb.UsageText),
		Action: qcb.Action,
	}
}

// QueryActionRunner encapsulates the common query action pattern: GetMeta,
// the tldr short-circuit and config namespacing happen here, the work itself
// is done by RunFn.
type QueryActionRunner struct {
	CommandName string
	RunFn       func(context.Context, *cli.Command, meta.Meta) error
}

// Run executes the query action with the provided context and command.
func (qar *QueryActionRunner) Run(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", cmd.Args().Slice())

	if ShortCircuitTLDR(ctx, cmd, qar.CommandName) {
		return nil
	}

	config.Config.Namespace = qar.CommandName

	return qar.RunFn(ctx, cmd, m)
}
