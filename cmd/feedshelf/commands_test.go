package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedshelf/internal/domain/entity"
)

type testEnv struct {
	dir    string
	config string
	file   string
}

// newTestEnv writes a config file pointing every path into a temp dir and
// clears environment overrides.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	for _, key := range []string{
		"FEEDSHELF_FILE", "FEEDSHELF_TITLE", "FEEDSHELF_DEFAULT_FOLDER", "FEEDSHELF_LOG_FORMAT",
		"LOG_LEVEL", "FEEDSHELF_DB_DRIVER", "DATABASE_URL",
		"FEEDSHELF_RESOLVE_PARALLELISM", "FEEDSHELF_RESOLVE_TIMEOUT", "FEEDSHELF_RESOLVE_RATE",
	} {
		t.Setenv(key, "")
	}

	dir := t.TempDir()
	env := &testEnv{
		dir:    dir,
		config: filepath.Join(dir, "config.yaml"),
		file:   filepath.Join(dir, "subscriptions.opml"),
	}
	yaml := fmt.Sprintf(`file: %s
title: Test Feeds
database:
  driver: sqlite
  url: %s
resolve:
  parallelism: 2
  timeout: 5s
  rate_per_second: 100
`, env.file, filepath.Join(dir, "mirror.db"))
	require.NoError(t, os.WriteFile(env.config, []byte(yaml), 0o600))
	return env
}

func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", e.config}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// runLogged runs the command and returns what it logged to stderr.
func (e *testEnv) runLogged(t *testing.T, args ...string) string {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", e.config}, args...))
	require.NoError(t, cmd.ExecuteContext(context.Background()), "feedshelf %s", strings.Join(args, " "))
	return errOut.String()
}

func (e *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	require.NoError(t, err, "feedshelf %s", strings.Join(args, " "))
	return out
}

func (e *testEnv) opml(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(e.file)
	require.NoError(t, err)
	return string(data)
}

func TestListCmd_EmptyWithoutFile(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "list")
	assert.Contains(t, out, "No subscriptions.")
	assert.NoFileExists(t, env.file)
}

func TestAddCmd(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "add", "https://go.dev/blog/feed.atom", "--name", "Go Blog", "--folder", "Tech")
	assert.Contains(t, out, "Added https://go.dev/blog/feed.atom to Tech")
	env.mustRun(t, "add", "https://lwn.net/headlines/rss")

	doc := env.opml(t)
	assert.Contains(t, doc, `<title>Test Feeds</title>`)
	assert.Contains(t, doc, `text="Tech"`)
	assert.Contains(t, doc, `xmlUrl="https://go.dev/blog/feed.atom"`)
	assert.Contains(t, doc, `xmlUrl="https://lwn.net/headlines/rss"`)

	list := env.mustRun(t, "list")
	assert.Contains(t, list, "Go Blog")
	assert.Contains(t, list, "default (default)")

	list = env.mustRun(t, "list", "Tech")
	assert.Contains(t, list, "Go Blog")
	assert.NotContains(t, list, "lwn.net")
}

func TestAddCmd_SharesOperationID(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("FEEDSHELF_LOG_FORMAT", "json")
	env.mustRun(t, "add", "https://go.dev/blog/feed.atom", "--name", "Go Blog")

	logs := env.runLogged(t, "add", "https://lwn.net/headlines/rss", "--name", "LWN")

	ids := map[string]bool{}
	ops := map[string]bool{}
	for _, line := range strings.Split(strings.TrimSpace(logs), "\n") {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		id, ok := entry["operation_id"].(string)
		if !ok {
			continue
		}
		ids[id] = true
		ops[entry["operation"].(string)] = true
		assert.Equal(t, "feedshelf add", entry["command"])
	}
	assert.True(t, ops["load"], "load should be logged")
	assert.True(t, ops["save"], "save should be logged")
	assert.Len(t, ids, 1, "load and save should share one operation ID")
}

func TestAddCmd_DuplicateName(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "add", "https://go.dev/blog/feed.atom", "--name", "Go Blog", "--folder", "Tech")

	_, err := env.run(t, "add", "https://go.dev/feed", "--name", "Go Blog", "--folder", "Tech")
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
	assert.Equal(t, 1, strings.Count(env.opml(t), "xmlUrl="))
}

func TestAddCmd_InvalidURL(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "add", "ftp://example.com/feed")
	require.ErrorIs(t, err, entity.ErrInvalidInput)
	assert.NoFileExists(t, env.file)
}

func TestFileFlagOverridesConfig(t *testing.T) {
	env := newTestEnv(t)
	other := filepath.Join(env.dir, "other.opml")

	env.mustRun(t, "--file", other, "add", "https://example.com/feed")
	assert.FileExists(t, other)
	assert.NoFileExists(t, env.file)
}

func TestRemoveCmd(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "add", "https://a.example.com/feed", "--name", "A", "--folder", "Tech")
	env.mustRun(t, "add", "https://b.example.com/feed", "--name", "B", "--folder", "Tech")
	env.mustRun(t, "add", "https://c.example.com/feed", "--name", "C")

	env.mustRun(t, "remove", "A", "--folder", "Tech")
	env.mustRun(t, "remove", "--index", "0")

	doc := env.opml(t)
	assert.NotContains(t, doc, "a.example.com")
	assert.Contains(t, doc, "b.example.com")
	assert.NotContains(t, doc, "c.example.com")

	tests := []struct {
		name string
		args []string
		want error
	}{
		{name: "missing source", args: []string{"remove", "Nope", "--folder", "Tech"}, want: entity.ErrNotFound},
		{name: "missing folder", args: []string{"remove", "B", "--folder", "Nope"}, want: entity.ErrNotFound},
		{name: "index out of range", args: []string{"remove", "--folder", "Tech", "--index", "5"}, want: entity.ErrIndexOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.run(t, tt.args...)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("name and index together", func(t *testing.T) {
		_, err := env.run(t, "remove", "B", "--folder", "Tech", "--index", "0")
		assert.Error(t, err)
	})
}

func TestFolderCmd(t *testing.T) {
	env := newTestEnv(t)

	env.mustRun(t, "folder", "add", "News")
	env.mustRun(t, "add", "https://news.example.com/rss", "--folder", "News")

	out := env.mustRun(t, "folder", "list")
	assert.Contains(t, out, "News")
	assert.Contains(t, out, "default (default)")

	_, err := env.run(t, "folder", "add", "News")
	assert.ErrorIs(t, err, entity.ErrInvalidInput)

	_, err = env.run(t, "folder", "add", "default")
	assert.ErrorIs(t, err, entity.ErrInvalidInput)

	env.mustRun(t, "folder", "delete", "News")
	assert.NotContains(t, env.opml(t), "news.example.com")

	_, err = env.run(t, "folder", "delete", "News")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestResolveCmd(t *testing.T) {
	env := newTestEnv(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(`<?xml version="1.0"?><rss version="2.0"><channel><title>Example News</title></channel></rss>`))
	}))
	defer server.Close()

	env.mustRun(t, "add", server.URL+"/rss")
	env.mustRun(t, "add", "https://named.example.com/feed", "--name", "Already Named")

	out := env.mustRun(t, "resolve")
	assert.Contains(t, out, "Named 1 feed(s)")
	assert.Contains(t, env.opml(t), `text="Example News"`)

	out = env.mustRun(t, "resolve")
	assert.Contains(t, out, "Named 0 feed(s)")
}

func TestDBCmd_PushPull(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "add", "https://go.dev/blog/feed.atom", "--name", "Go Blog", "--folder", "Tech")
	env.mustRun(t, "add", "https://lwn.net/headlines/rss", "--name", "LWN")
	env.mustRun(t, "folder", "add", "Empty")

	out := env.mustRun(t, "db", "push")
	assert.Contains(t, out, "Pushed 2 feed(s) in 3 folder(s)")

	require.NoError(t, os.Remove(env.file))

	out = env.mustRun(t, "db", "pull")
	assert.Contains(t, out, "Pulled 2 feed(s) in 3 folder(s)")

	doc := env.opml(t)
	assert.Contains(t, doc, `text="Go Blog"`)
	assert.Contains(t, doc, `text="LWN"`)
	assert.Contains(t, doc, `text="Empty"`)
}

func TestMetricsTextfile(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(env.dir, "feedshelf.prom")

	env.mustRun(t, "--metrics-textfile", path, "add", "https://example.com/feed")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "subscription_operations_total")
}

func TestInvalidConfig(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(env.config, []byte("log:\n  format: xml\n"), 0o600))

	_, err := env.run(t, "list")
	assert.ErrorContains(t, err, "config validation failed")
}
