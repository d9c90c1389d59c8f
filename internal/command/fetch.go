// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/staranto/utilsgo/internal/fetch"
	"github.com/staranto/utilsgo/internal/meta"
)

// FetchCommandAction prints the decoded JSON body of each URL argument.
func FetchCommandAction(ctx context.Context, cmd *cli.Command, m meta.Meta) error {
	opts := append([]fetch.Option{}, m.FetchOptions...)
	if cmd.Bool("cache") {
		opts = append(opts, fetch.WithCache())
	}
	f := fetch.New(opts...)

	for _, u := range cmd.Args().Slice() {
		doc, err := f.GetJSON(ctx, u)
		if err != nil {
			return err
		}
		if err := Emit(cmd, doc); err != nil {
			return err
		}
	}

	return nil
}

// FetchCommandBuilder constructs the cli.Command for "fetch".
func FetchCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	runner := &QueryActionRunner{CommandName: "fetch", RunFn: FetchCommandAction}
	qcb := &QueryCommandBuilder{
		Name:      "fetch",
		Usage:     "GET a URL and print its JSON body",
		UsageText: "utils fetch <url ...> [options]",
		MinArgs:   1,
		Flags:     []cli.Flag{NewCacheFlag("fetch")},
		Action:    runner.Run,
		Meta:      meta,
	}
	return qcb.Build()
}
