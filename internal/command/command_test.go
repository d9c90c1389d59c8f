// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/utilsgo/internal/fetch"
	"github.com/staranto/utilsgo/internal/meta"
	"github.com/staranto/utilsgo/internal/nested"
)

// stubDoer serves canned bodies keyed by URL.
type stubDoer struct {
	bodies map[string]string
	calls  int
}

func (s *stubDoer) Do(req *http.Request) (*http.Response, error) {
	s.calls++
	body, ok := s.bodies[req.URL.String()]
	if !ok {
		return nil, errors.New("no route to " + req.URL.String())
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    req,
	}, nil
}

// run executes the app with args and returns what it wrote.
func run(t *testing.T, m meta.Meta, stdin string, args ...string) (string, error) {
	t.Helper()

	app := NewApp(m)
	var out bytes.Buffer
	app.Writer = &out
	app.Reader = strings.NewReader(stdin)

	err := Run(context.Background(), app, append([]string{"utils"}, args...))
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestGetCommand(t *testing.T) {
	jsonFile := writeFile(t, "doc.json", `{"a": {"b": 2}, "payload": true}`)
	yamlFile := writeFile(t, "doc.yaml", "a:\n  b: 2\nname: test\n")

	tests := []struct {
		name  string
		args  []string
		stdin string
		want  string
	}{
		{
			name: "json terminal",
			args: []string{"get", "-o", "json", jsonFile, "a.b"},
			want: "2\n",
		},
		{
			name: "json nested map",
			args: []string{"get", "-o", "raw", jsonFile, "a"},
			want: "{\"b\":2}\n",
		},
		{
			name: "several paths read once",
			args: []string{"get", "-o", "text", jsonFile, "a.b", "payload"},
			want: "2\ntrue\n",
		},
		{
			name: "yaml document",
			args: []string{"get", "-o", "yaml", yamlFile, "a"},
			want: "b: 2\n",
		},
		{
			name: "no path prints whole document",
			args: []string{"get", "-o", "raw", yamlFile},
			want: "{\"a\":{\"b\":2},\"name\":\"test\"}\n",
		},
		{
			name:  "stdin",
			args:  []string{"get", "-o", "text", "-", "x.y"},
			stdin: `{"x": {"y": "from stdin"}}`,
			want:  "from stdin\n",
		},
		{
			name:  "stdin with several paths",
			args:  []string{"get", "-o", "raw", "-", "x", "x.y"},
			stdin: "x:\n  y: from stdin\n",
			want:  "{\"y\":\"from stdin\"}\n\"from stdin\"\n",
		},
		{
			name:  "stdin by name",
			args:  []string{"get", "-o", "text", StdinSource, "x.y"},
			stdin: `{"x": {"y": "from stdin"}}`,
			want:  "from stdin\n",
		},
		{
			name: "large integer kept exact",
			args: []string{"get", "-o", "raw", writeFile(t, "big.json", `{"id": 9007199254740993}`), "id"},
			want: "9007199254740993\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, meta.Meta{}, tt.stdin, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetCommand_KeyNotFound(t *testing.T) {
	jsonFile := writeFile(t, "doc.json", `{"a": 1}`)

	tests := []struct {
		name    string
		path    string
		wantKey string
	}{
		{name: "missing key", path: "z", wantKey: "z"},
		{name: "key below terminal", path: "a.b", wantKey: "b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, meta.Meta{}, "", "get", "-o", "text", jsonFile, tt.path)
			require.Error(t, err)
			assert.ErrorIs(t, err, nested.ErrKeyNotFound)

			var ke *nested.KeyError
			require.True(t, errors.As(err, &ke))
			assert.Equal(t, tt.wantKey, ke.Key)
		})
	}
}

func TestGetCommand_NonMapRoot(t *testing.T) {
	jsonFile := writeFile(t, "doc.json", `[1, 2]`)

	got, err := run(t, meta.Meta{}, "", "get", "-o", "raw", jsonFile)
	require.NoError(t, err)
	assert.Equal(t, "[1,2]\n", got)

	_, err = run(t, meta.Meta{}, "", "get", "-o", "raw", jsonFile, "a")
	assert.ErrorIs(t, err, nested.ErrKeyNotFound)
}

func TestGetCommand_MissingFile(t *testing.T) {
	_, err := run(t, meta.Meta{}, "", "get", "-o", "text", filepath.Join(t.TempDir(), "nope.json"), "a")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGetCommand_NoArgs(t *testing.T) {
	_, err := run(t, meta.Meta{}, "", "get", "-o", "text")
	assert.ErrorContains(t, err, "expected at least 1 argument")
}

func TestGetCommand_URL(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"repos": {"url": "https://example.com/repos"}, "login": "google"}`))
	}))
	defer ts.Close()

	got, err := run(t, meta.Meta{}, "", "get", "-o", "text", ts.URL, "repos.url", "login")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/repos\ngoogle\n", got)
	assert.Equal(t, int32(1), hits.Load())
}

func TestFetchCommand(t *testing.T) {
	stub := &stubDoer{bodies: map[string]string{
		"http://example.com":  `{"payload": true}`,
		"http://holberton.io": `{"payload": false}`,
	}}
	m := meta.Meta{FetchOptions: []fetch.Option{fetch.WithClient(stub)}}

	tests := []struct {
		url  string
		want string
	}{
		{url: "http://example.com", want: "{\"payload\":true}\n"},
		{url: "http://holberton.io", want: "{\"payload\":false}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, err := run(t, m, "", "fetch", "-o", "raw", tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFetchCommand_TransportError(t *testing.T) {
	stub := &stubDoer{bodies: map[string]string{}}
	m := meta.Meta{FetchOptions: []fetch.Option{fetch.WithClient(stub)}}

	_, err := run(t, m, "", "fetch", "-o", "raw", "http://unreachable.invalid")
	assert.ErrorContains(t, err, "no route to http://unreachable.invalid")
}

func TestFetchCommand_Cache(t *testing.T) {
	t.Setenv("UTILS_CACHE_DIR", t.TempDir())
	t.Setenv("UTILS_CACHE", "")

	stub := &stubDoer{bodies: map[string]string{"http://example.com": `{"payload": true}`}}
	m := meta.Meta{FetchOptions: []fetch.Option{fetch.WithClient(stub)}}

	for range 2 {
		got, err := run(t, m, "", "fetch", "--cache", "-o", "raw", "http://example.com")
		require.NoError(t, err)
		assert.Equal(t, "{\"payload\":true}\n", got)
	}
	assert.Equal(t, 1, stub.calls)
}

func TestDrillCommand(t *testing.T) {
	jsonFile := writeFile(t, "doc.json", `{"users": [{"id": 1, "name": "alice"}, {"id": 2, "name": "bob"}], "org": {"name": "acme"}}`)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "indexed element",
			args: []string{"drill", "-o", "text", jsonFile, "users[1].name"},
			want: "bob\n",
		},
		{
			name: "raw object",
			args: []string{"drill", "-o", "raw", jsonFile, "org"},
			want: "{\"name\": \"acme\"}\n",
		},
		{
			name: "several paths",
			args: []string{"drill", "-o", "json", jsonFile, "users[0].id", "org.name"},
			want: "1\n\"acme\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, meta.Meta{}, "", tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDrillCommand_Missing(t *testing.T) {
	jsonFile := writeFile(t, "doc.json", `{"a": 1}`)

	_, err := run(t, meta.Meta{}, "", "drill", "-o", "text", jsonFile, "a.b")
	assert.ErrorIs(t, err, nested.ErrKeyNotFound)
}

func TestCompletionCommand(t *testing.T) {
	got, err := run(t, meta.Meta{}, "", "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, got, "complete -F _utils utils")

	got, err = run(t, meta.Meta{}, "", "completion", "zsh")
	require.NoError(t, err)
	assert.Contains(t, got, "#compdef utils")
}

func TestOutputValidator(t *testing.T) {
	for _, f := range []string{"text", "json", "raw", "yaml"} {
		assert.NoError(t, OutputValidator(f))
	}
	assert.Error(t, OutputValidator("csv"))

	_, err := run(t, meta.Meta{}, "", "get", "-o", "csv", "-", "a")
	assert.Error(t, err)
}

func TestStdinArgs(t *testing.T) {
	in := []string{"utils", "get", "-o", "json", "-", "a.b"}
	got := StdinArgs(in)
	assert.Equal(t, []string{"utils", "get", "-o", "json", StdinSource, "a.b"}, got)
	assert.Equal(t, "-", in[4], "input is not modified")
}

func TestJammedFlagValidator(t *testing.T) {
	assert.NoError(t, JammedFlagValidator("value"))
	assert.NoError(t, JammedFlagValidator(42))
	assert.Error(t, JammedFlagValidator("--value"))
}

func TestOutputFlagValidator(t *testing.T) {
	tests := []struct {
		value   string
		wantErr string
	}{
		{value: "json"},
		{value: "--titles", wantErr: "must not begin with '--'"},
		{value: "csv", wantErr: "must be one of"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			err := outputFlagValidator(tt.value)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
