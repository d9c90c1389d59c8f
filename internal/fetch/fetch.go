// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package fetch retrieves JSON documents over HTTP.
package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"

	"github.com/staranto/utilsgo/internal/cacheutil"
	"github.com/staranto/utilsgo/internal/config"
)

// Doer sends an HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// DefaultClient is used when no client is supplied.
var DefaultClient Doer = &http.Client{Timeout: 30 * time.Second} //nolint:mnd

// Fetcher issues GET requests and decodes JSON responses. Errors from the
// transport and from decoding are returned as-is. The zero value uses
// DefaultClient without a cache.
type Fetcher struct {
	client  Doer
	headers map[string]string
	cache   bool
}

type Option func(*Fetcher)

// WithClient substitutes the transport, typically with a stub in tests.
func WithClient(c Doer) Option {
	return func(f *Fetcher) { f.client = c }
}

// WithCache stores successful responses on disk and serves repeat requests
// for the same URL from there. Entries expire after cache.clean hours.
func WithCache() Option {
	return func(f *Fetcher) { f.cache = true }
}

func WithHeader(key, value string) Option {
	return func(f *Fetcher) {
		if f.headers == nil {
			f.headers = map[string]string{}
		}
		f.headers[key] = value
	}
}

func New(opts ...Option) *Fetcher {
	f := &Fetcher{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// GetJSON fetches u with a default Fetcher.
func GetJSON(ctx context.Context, u string) (any, error) {
	return New().GetJSON(ctx, u)
}

// GetJSON fetches u and returns the decoded body: a map[string]any, []any or
// scalar, whatever the server sent.
func (f *Fetcher) GetJSON(ctx context.Context, u string) (any, error) {
	raw, err := f.GetRaw(ctx, u)
	if err != nil {
		return nil, err
	}
	return Decode(raw)
}

// Decode parses a single JSON value. Numbers decode as json.Number, so
// integers of any size come back exactly.
func Decode(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("invalid data after top-level JSON value")
	}
	return doc, nil
}

func (f *Fetcher) openCache() *cacheutil.Store {
	hours, _ := config.GetInt("cache.clean")
	store, ok := cacheutil.Open(time.Duration(hours) * time.Hour)
	if !ok {
		return nil
	}
	if n, err := store.Prune(); err != nil {
		log.WithError(err).Warn("failed to prune cache")
	} else if n > 0 {
		log.Debugf("pruned %d cache entries", n)
	}
	return store
}

// GetRaw fetches u and returns the undecoded body.
func (f *Fetcher) GetRaw(ctx context.Context, u string) ([]byte, error) {
	var store *cacheutil.Store
	if f.cache {
		store = f.openCache()
	}
	if store != nil {
		if r, ok := store.Get(u); ok {
			log.Debugf("cache hit for %s, stored %s", u, humanize.Time(r.Stored))
			return r.Body, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}

	client := f.client
	if client == nil {
		client = DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var doc bytes.Buffer
	if _, err := doc.ReadFrom(resp.Body); err != nil {
		return nil, err
	}

	log.WithField("status", resp.StatusCode).
		Debugf("GET %s: %s", u, humanize.Bytes(uint64(doc.Len())))
	ok := resp.StatusCode >= 200 && resp.StatusCode <= 299
	if !ok {
		log.Warnf("GET %s returned status %d", u, resp.StatusCode)
	}

	if store != nil && ok {
		if err := store.Put(&cacheutil.Response{
			URL:         u,
			Status:      resp.StatusCode,
			ContentType: resp.Header.Get("Content-Type"),
			Body:        doc.Bytes(),
		}); err != nil {
			log.WithError(err).Warn("failed to write response to cache")
		}
	}

	return doc.Bytes(), nil
}
