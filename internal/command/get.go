// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/utilsgo/internal/fetch"
	"github.com/staranto/utilsgo/internal/meta"
	"github.com/staranto/utilsgo/internal/nested"
)

// GetCommandAction prints the value at each dotted path of the document named
// by the first argument. With no path the whole document is printed.
func GetCommandAction(ctx context.Context, cmd *cli.Command, m meta.Meta) error {
	args := cmd.Args().Slice()

	opts := append([]fetch.Option{}, m.FetchOptions...)
	if cmd.Bool("cache") {
		opts = append(opts, fetch.WithCache())
	}
	doc := NewDocument(args[0], reader(cmd), fetch.New(opts...))

	paths := args[1:]
	if len(paths) == 0 {
		paths = []string{""}
	}

	for _, p := range paths {
		decoded, err := doc.Decoded(ctx)
		if err != nil {
			return err
		}

		val, err := access(decoded, nested.ParsePath(p))
		if err != nil {
			return err
		}
		log.Debugf("get %q: %v", p, val)

		if err := Emit(cmd, val); err != nil {
			return err
		}
	}

	return nil
}

// access is nested.Access for a decoded document whose root may not be a
// map. A non-map root can only satisfy the empty path.
func access(decoded any, path nested.Path) (any, error) {
	if root, ok := decoded.(nested.Map); ok {
		return nested.Access(root, path)
	}
	if len(path) == 0 {
		return decoded, nil
	}
	return nil, &nested.KeyError{Key: path[0], Path: path}
}

// GetCommandBuilder constructs the cli.Command for "get".
func GetCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	runner := &QueryActionRunner{CommandName: "get", RunFn: GetCommandAction}
	qcb := &QueryCommandBuilder{
		Name:      "get",
		Usage:     "print values from a nested JSON or YAML document",
		UsageText: "utils get <file|-|url> [dotted.path ...] [options]",
		MinArgs:   1,
		Flags:     []cli.Flag{NewCacheFlag("get")},
		Action:    runner.Run,
		Meta:      meta,
	}
	return qcb.Build()
}
