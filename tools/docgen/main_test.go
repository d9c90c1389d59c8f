// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestRenderMarkdown(t *testing.T) {
	cmd := &cli.Command{
		Name:      "get",
		Usage:     "print values",
		UsageText: "utils get <file>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output format"},
			&cli.BoolFlag{Name: "secret", Hidden: true},
		},
	}

	md := string(renderMarkdown(cmd))
	assert.Contains(t, md, "% utils-get(1)")
	assert.Contains(t, md, "utils-get - print values")
	assert.Contains(t, md, "`utils get <file>`")
	assert.Contains(t, md, "**--output, -o**\n:   output format")
	assert.NotContains(t, md, "secret")
}

func TestWriteFileIfChanged(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.md")

	require.NoError(t, writeFileIfChanged(p, []byte("one\n"), true))
	got, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "one\n", string(got))

	// Whitespace-only differences are not rewritten.
	require.NoError(t, writeFileIfChanged(p, []byte("one"), true))
	got, err = os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "one\n", string(got))

	require.NoError(t, writeFileIfChanged(p, []byte("two"), true))
	got, err = os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "two", string(got))
}
