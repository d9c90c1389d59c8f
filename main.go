// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/apex/log"

	"github.com/staranto/utilsgo/internal/cacheutil"
	"github.com/staranto/utilsgo/internal/command"
	"github.com/staranto/utilsgo/internal/config"
	mylog "github.com/staranto/utilsgo/internal/log"
	"github.com/staranto/utilsgo/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

func realMain() int {
	mylog.InitLogger()

	args := os.Args

	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "No command specified.")
		args = append(args, "--help")
	} else {
		args = mangleArguments(args)
	}

	// Short-circuit --version/-v.
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return 0
		}
	}

	if err := prepareCache(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := command.Run(ctx, app, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	return 0
}

// prepareCache creates the cache root unless caching is disabled.
func prepareCache() error {
	store, ok := cacheutil.Open(0)
	if !ok {
		return nil
	}
	return store.Init()
}

// mangleArguments expands an @set argument into the list stored at
// <command>.<set> in the config file. Without an @set, <command>.defaults is
// used when present.
func mangleArguments(args []string) []string {
	// We know the first two args are going to be the executable and command.
	preamble := make([]string, 2)
	copy(preamble, args[:2])

	// Short-circuit for --help/-h. If help is requested, just keep the preamble
	// and add --help flag.
	for _, a := range args {
		if a == "--help" || a == "-h" {
			return append(preamble, "--help")
		}
	}

	set := "defaults"
	rest := make([]string, 0, len(args)-2)
	for _, a := range args[2:] {
		if strings.HasPrefix(a, "@") && len(a) > 1 {
			set = a[1:]
			continue
		}
		rest = append(rest, a)
	}

	var setArgs []string
	entries, _ := config.GetStringSlice(args[1] + "." + set)
	for _, e := range entries {
		setArgs = append(setArgs, strings.Fields(e)...)
	}

	// Set arguments go first so explicit flags and positionals follow them.
	out := append(preamble, setArgs...) //nolint
	out = append(out, rest...)

	log.Debugf("set=%s, args=%v", set, out)
	return out
}
