// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apex/log"
	"gopkg.in/yaml.v3"

	"github.com/staranto/utilsgo/internal/fetch"
	"github.com/staranto/utilsgo/internal/memo"
)

// Document is a JSON or YAML document named by a file path, "-" or
// StdinSource for stdin, or an http(s) URL. It is read and decoded at most once.
type Document struct {
	Source  string
	stdin   io.Reader
	fetcher *fetch.Fetcher

	raw     memo.Value[[]byte]
	decoded memo.Value[any]
}

// NewDocument prepares src for reading. Nothing is read until Raw or Decoded
// is called.
func NewDocument(src string, stdin io.Reader, fetcher *fetch.Fetcher) *Document {
	if fetcher == nil {
		fetcher = fetch.New()
	}
	return &Document{Source: src, stdin: stdin, fetcher: fetcher}
}

func isURL(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// Raw returns the undecoded bytes of the document.
func (d *Document) Raw(ctx context.Context) ([]byte, error) {
	return d.raw.GetErr(func() ([]byte, error) {
		log.Debugf("reading document %s", d.Source)
		switch {
		case d.Source == "-" || d.Source == StdinSource:
			if d.stdin == nil {
				return io.ReadAll(os.Stdin)
			}
			return io.ReadAll(d.stdin)
		case isURL(d.Source):
			return d.fetcher.GetRaw(ctx, d.Source)
		default:
			b, err := os.ReadFile(d.Source)
			if err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", d.Source, err)
			}
			return b, nil
		}
	})
}

// Decoded returns the document decoded as JSON, or as YAML when it is not
// valid JSON. JSON numbers come back as json.Number.
func (d *Document) Decoded(ctx context.Context) (any, error) {
	return d.decoded.GetErr(func() (any, error) {
		raw, err := d.Raw(ctx)
		if err != nil {
			return nil, err
		}

		if json.Valid(raw) {
			return fetch.Decode(raw)
		}

		var doc any

		if err := yaml.NewDecoder(bytes.NewReader(raw)).Decode(&doc); err != nil && err != io.EOF {
			return nil, fmt.Errorf("%s is neither JSON nor YAML: %w", d.Source, err)
		}
		return doc, nil
	})
}
