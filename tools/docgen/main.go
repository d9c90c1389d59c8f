// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	md2man "github.com/cpuguy83/go-md2man/v2/md2man"
	"github.com/urfave/cli/v3"

	"github.com/staranto/utilsgo/internal/command"
	"github.com/staranto/utilsgo/internal/meta"
)

// Doc generator:
// - Renders each subcommand of the utils app to markdown
// - Writes docs/commands/<cmd>.md and docs/man/share/man1/utils-<cmd>.1

func main() {
	var (
		repoRoot           string
		writeOnlyIfChanged bool
	)

	flag.StringVar(&repoRoot, "root", ".", "repo root (default current dir)")
	flag.BoolVar(&writeOnlyIfChanged, "only-if-changed", true, "only write files if content changed")
	flag.Parse()

	commandsDir := filepath.Join(repoRoot, "docs", "commands")
	manOutDir := filepath.Join(repoRoot, "docs", "man", "share", "man1")

	for _, dir := range []string{commandsDir, manOutDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fatalf("creating output dir %s: %v", dir, err)
		}
	}

	app := command.NewApp(meta.Meta{})
	for _, cmd := range app.Commands {
		md := renderMarkdown(cmd)

		mdPath := filepath.Join(commandsDir, cmd.Name+".md")
		if err := writeFileIfChanged(mdPath, md, writeOnlyIfChanged); err != nil {
			fatalf("writing markdown for %s: %v", cmd.Name, err)
		}

		manPath := filepath.Join(manOutDir, fmt.Sprintf("utils-%s.1", cmd.Name))
		if err := writeFileIfChanged(manPath, md2man.Render(md), writeOnlyIfChanged); err != nil {
			fatalf("writing man page for %s: %v", cmd.Name, err)
		}
	}
}

// renderMarkdown produces a man-page shaped markdown document for cmd.
func renderMarkdown(cmd *cli.Command) []byte {
	var b bytes.Buffer

	fmt.Fprintf(&b, "%% utils-%s(1)\n\n", cmd.Name)
	b.WriteString("# NAME\n\n")
	fmt.Fprintf(&b, "utils-%s - %s\n\n", cmd.Name, cmd.Usage)

	if cmd.UsageText != "" {
		b.WriteString("# SYNOPSIS\n\n")
		fmt.Fprintf(&b, "`%s`\n\n", cmd.UsageText)
	}

	var visible []cli.Flag
	for _, f := range cmd.Flags {
		if vf, ok := f.(cli.VisibleFlag); ok && !vf.IsVisible() {
			continue
		}
		visible = append(visible, f)
	}

	if len(visible) > 0 {
		b.WriteString("# OPTIONS\n\n")
		for _, f := range visible {
			names := make([]string, 0, len(f.Names()))
			for _, n := range f.Names() {
				if len(n) == 1 {
					names = append(names, "-"+n)
				} else {
					names = append(names, "--"+n)
				}
			}
			fmt.Fprintf(&b, "**%s**\n:   %s\n\n", strings.Join(names, ", "), usageOf(f))
		}
	}

	return b.Bytes()
}

func usageOf(f cli.Flag) string {
	if df, ok := f.(cli.DocGenerationFlag); ok {
		return df.GetUsage()
	}
	return ""
}

func fatalf(f string, a ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", a...)
	os.Exit(1)
}

func writeFileIfChanged(path string, new []byte, onlyIfChanged bool) error {
	if !onlyIfChanged {
		return os.WriteFile(path, new, 0o644)
	}
	old, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return os.WriteFile(path, new, 0o644)
		}
		return err
	}
	if bytes.Equal(bytes.TrimSpace(old), bytes.TrimSpace(new)) {
		return nil
	}
	return os.WriteFile(path, new, 0o644)
}
