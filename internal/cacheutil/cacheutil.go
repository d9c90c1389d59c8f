// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package cacheutil keeps fetched HTTP responses on disk. Each response is a
// JSON envelope at <root>/<host>/<sha256 of url>.json holding the body and
// the response metadata needed to serve it again.
package cacheutil

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
)

const (
	// EnvDir overrides the cache root.
	EnvDir = "UTILS_CACHE_DIR"
	// EnvSwitch turns the cache off with 0, false, off or no.
	EnvSwitch = "UTILS_CACHE"
)

// Response is a stored HTTP response.
type Response struct {
	URL         string    `json:"url"`
	Status      int       `json:"status"`
	ContentType string    `json:"content_type,omitempty"`
	Stored      time.Time `json:"stored"`
	Body        []byte    `json:"body"`
}

// Store is a response cache rooted at Root. Responses older than MaxAge are
// treated as absent; a zero MaxAge keeps them forever.
type Store struct {
	Root   string
	MaxAge time.Duration
}

// Disabled reports whether EnvSwitch turns caching off.
func Disabled() bool {
	switch strings.ToLower(os.Getenv(EnvSwitch)) {
	case "0", "false", "off", "no":
		return true
	}
	return false
}

// Open returns the store rooted at EnvDir, or at <user cache dir>/utils. It
// returns false when caching is disabled or no root can be resolved.
func Open(maxAge time.Duration) (*Store, bool) {
	if Disabled() {
		return nil, false
	}
	root := os.Getenv(EnvDir)
	if root == "" {
		dir, err := os.UserCacheDir()
		if err != nil || dir == "" {
			return nil, false
		}
		root = filepath.Join(dir, "utils")
	}
	return &Store{Root: root, MaxAge: maxAge}, true
}

// Init creates the root directory.
func (s *Store) Init() error {
	if err := os.MkdirAll(s.Root, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	return nil
}

// Path is where the response for u is stored.
func (s *Store) Path(u string) string {
	sum := sha256.Sum256([]byte(u))
	return filepath.Join(s.Root, hostDir(u), hex.EncodeToString(sum[:])+".json")
}

func hostDir(u string) string {
	parsed, err := url.Parse(u)
	if err != nil || parsed.Host == "" {
		return "_"
	}
	return strings.ReplaceAll(parsed.Host, ":", "_")
}

func (s *Store) expired(r *Response) bool {
	return s.MaxAge > 0 && time.Since(r.Stored) > s.MaxAge
}

func readResponse(p string) (*Response, error) {
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	var r Response
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("corrupt cache entry %s: %w", p, err)
	}
	return &r, nil
}

// Get returns the stored response for u. Expired entries are removed and
// reported as absent.
func (s *Store) Get(u string) (*Response, bool) {
	p := s.Path(u)
	r, err := readResponse(p)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.WithError(err).Debug("ignoring cache entry")
		}
		return nil, false
	}
	if r.URL != u {
		log.Debugf("cache entry %s belongs to %s", p, r.URL)
		return nil, false
	}
	if s.expired(r) {
		log.Debugf("cache entry for %s expired, stored %s", u, humanize.Time(r.Stored))
		_ = os.Remove(p)
		return nil, false
	}
	return r, true
}

// Put stores r, stamping it with the current time when Stored is zero. The
// entry is written to a temporary file and renamed into place.
func (s *Store) Put(r *Response) error {
	if r.Stored.IsZero() {
		r.Stored = time.Now()
	}
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}

	p := s.Path(r.URL)
	dir := filepath.Dir(p)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".put-*")
	if err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}

	log.Debugf("cached %s of %s for %s", humanize.Bytes(uint64(len(r.Body))), r.ContentType, r.URL)
	return nil
}

// Prune removes expired and unreadable entries and returns how many went.
// It does nothing when MaxAge is zero or the root does not exist.
func (s *Store) Prune() (int, error) {
	if s.MaxAge <= 0 {
		return 0, nil
	}

	removed := 0
	err := filepath.WalkDir(s.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() || filepath.Ext(p) != ".json" {
			return nil
		}

		r, err := readResponse(p)
		if err == nil && !s.expired(r) {
			return nil
		}
		if err := os.Remove(p); err != nil {
			log.WithError(err).Warnf("failed to remove cache entry %s", p)
			return nil
		}
		removed++
		return nil
	})
	if err != nil {
		return removed, fmt.Errorf("failed to prune cache: %w", err)
	}
	return removed, nil
}
