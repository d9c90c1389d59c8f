// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/utilsgo/internal/config"
	"github.com/staranto/utilsgo/internal/output"
)

func init() {
	cfg, _ = config.Load("")
}

var cfg config.Type

// NewTLDRFlag constructs the --tldr flag, hidden unless tldr is installed.
func NewTLDRFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}
}

// NewGlobalFlags returns the output flags shared by every query command.
// params[0] is the command name, used to namespace config file lookups.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"color", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("color", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("UTILS_OUTPUT"),
				yaml.YAML(params[0]+"."+"output", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("output", altsrc.StringSourcer(cfg.Source)),
			),
			Value: "text",
			Validator: outputFlagValidator,
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"titles", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("titles", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
	}

	return
}

// NewCacheFlag constructs the --cache flag, defaulting from <ns>.cache in the
// config file.
func NewCacheFlag(ns string) *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:  "cache",
		Usage: "serve repeat requests for the same URL from the disk cache",
		Sources: cli.NewValueSourceChain(
			yaml.YAML(ns+"."+"cache", altsrc.StringSourcer(cfg.Source)),
		),
	}
}

// OutputOptions collects the output flags of cmd.
func OutputOptions(cmd *cli.Command) output.Options {
	return output.Options{
		Format: cmd.String("output"),
		Titles: cmd.Bool("titles"),
		Color:  cmd.Bool("color"),
	}
}

// pathHas checks if the given executable is on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
