// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/staranto/utilsgo/internal/fetch"
	"github.com/staranto/utilsgo/internal/meta"
	"github.com/staranto/utilsgo/internal/nested"
)

// DrillCommandAction drills into the raw JSON of the first argument with each
// remaining path. --output raw prints the matched JSON verbatim.
func DrillCommandAction(ctx context.Context, cmd *cli.Command, m meta.Meta) error {
	args := cmd.Args().Slice()

	doc := NewDocument(args[0], reader(cmd), fetch.New(m.FetchOptions...))
	raw, err := doc.Raw(ctx)
	if err != nil {
		return err
	}

	for _, p := range args[1:] {
		result := nested.Drill(string(raw), p)
		if !result.Exists() {
			return fmt.Errorf("path %q: %w", p, nested.ErrKeyNotFound)
		}

		if cmd.String("output") == "raw" {
			if _, err := fmt.Fprintln(writer(cmd), result.Raw); err != nil {
				return err
			}
			continue
		}

		val, err := fetch.Decode([]byte(result.Raw))
		if err != nil {
			return err
		}
		if err := Emit(cmd, val); err != nil {
			return err
		}
	}

	return nil
}

// DrillCommandBuilder constructs the cli.Command for "drill".
func DrillCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	runner := &QueryActionRunner{CommandName: "drill", RunFn: DrillCommandAction}
	qcb := &QueryCommandBuilder{
		Name:      "drill",
		Usage:     "query raw JSON with paths like items[0].name",
		UsageText: "utils drill <file|-|url> <path ...> [options]",
		MinArgs:   2,
		Action:    runner.Run,
		Meta:      meta,
	}
	return qcb.Build()
}
