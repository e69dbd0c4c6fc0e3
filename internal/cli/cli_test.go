package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/firesale/internal/instance"
	"github.com/mithrel/firesale/internal/ipc"
	"github.com/mithrel/firesale/internal/shell"
	"github.com/mithrel/firesale/internal/window"
	"github.com/mithrel/firesale/pkg/api"
)

// isolate points config, data and the instance socket at a fresh directory.
func isolate(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	for _, d := range []string{"run", "data", "config"} {
		require.NoError(t, os.MkdirAll(filepath.Join(tmp, d), 0o700))
	}
	t.Setenv("XDG_RUNTIME_DIR", filepath.Join(tmp, "run"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("FIRESALE_DATA_DIR", filepath.Join(tmp, "data"))
	return tmp
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeMarkdown(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestRenderHTMLDocumentToFile(t *testing.T) {
	tmp := isolate(t)
	src := writeMarkdown(t, tmp, "notes.md", "# Notes\n\n| a |\n|---|\n| 1 |\n")
	dst := filepath.Join(tmp, "notes.html")

	out, err := execute(t, "render", src, "-o", dst)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Wrote "+dst)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	html := string(data)
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "<title>notes</title>")
	assert.Contains(t, html, "<h1>Notes</h1>")
	assert.Contains(t, html, "<table>")
}

func TestRenderFragmentToStdout(t *testing.T) {
	tmp := isolate(t)
	src := writeMarkdown(t, tmp, "a.md", "# Hi")
	out, err := execute(t, "render", src, "--fragment")
	require.NoError(t, err)
	assert.Equal(t, "<h1>Hi</h1>\n", out)
}

func TestRenderPreview(t *testing.T) {
	tmp := isolate(t)
	src := writeMarkdown(t, tmp, "a.md", "# Title\n\nsome body text")
	out, err := execute(t, "render", src, "--preview", "--width", "40")
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "some body text")
	assert.NotContains(t, out, "<h1>")
}

func TestRenderMissingFile(t *testing.T) {
	tmp := isolate(t)
	_, err := execute(t, "render", filepath.Join(tmp, "nope.md"))
	require.Error(t, err)
}

func TestInvalidConfigIsRejected(t *testing.T) {
	isolate(t)
	t.Setenv("FIRESALE_RECENT_LIMIT", "-1")
	_, err := execute(t, "recent", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recent.limit must not be negative")

	// config generate still works with a broken config.
	_, err = execute(t, "config", "generate", "-o", filepath.Join(t.TempDir(), "c.toml"))
	require.NoError(t, err)
}

func TestConfigGenerate(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "firesale", "config.toml")

	out, err := execute(t, "config", "generate", "-o", path)
	require.NoError(t, err, out)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[preview]")

	_, err = execute(t, "config", "generate", "-o", path)
	require.Error(t, err)

	out, err = execute(t, "config", "generate", "-o", path, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "Config already up to date")

	_, err = execute(t, "config", "generate", "-o", path, "--update", "--overwrite")
	require.Error(t, err)
}

func TestCompletion(t *testing.T) {
	isolate(t)
	out, err := execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "firesale")
}

func TestWindowsWithoutInstance(t *testing.T) {
	isolate(t)
	_, err := execute(t, "windows")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no running instance")
}

type fakeTarget struct {
	opened  []string
	windows int
}

func (f *fakeTarget) OpenExternal(path string) (*window.Window, error) {
	f.opened = append(f.opened, path)
	return f.CreateWindow(), nil
}

func (f *fakeTarget) CreateWindow() *window.Window {
	f.windows++
	return &window.Window{ID: window.ID(f.windows)}
}

func (f *fakeTarget) Windows() []api.WindowInfo {
	out := []api.WindowInfo{}
	for i := 1; i <= f.windows; i++ {
		out = append(out, api.WindowInfo{ID: i, Title: "Fire Sale"})
	}
	return out
}

func startInstance(t *testing.T, tgt *fakeTarget) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	inline := shell.DispatchFunc(func(fn func()) { fn() })
	go func() { done <- instance.Serve(ctx, inline, tgt, nil) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			if err != nil && !errors.Is(err, context.Canceled) {
				t.Logf("serve: %v", err)
			}
		case <-time.After(2 * time.Second):
		}
	})
	sock, err := ipc.SocketPath()
	require.NoError(t, err)
	require.Eventually(t, func() bool { return ipc.Ping(context.Background(), sock) }, 2*time.Second, 10*time.Millisecond)
}

func TestOpenForwardsToRunningInstance(t *testing.T) {
	tmp := isolate(t)
	tgt := &fakeTarget{}
	startInstance(t, tgt)

	src := writeMarkdown(t, tmp, "a.md", "# A")
	out, err := execute(t, "open", src)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Forwarded to running instance (1 windows)")
	assert.Equal(t, []string{src}, tgt.opened)

	out, err = execute(t, "new")
	require.NoError(t, err, out)
	assert.Equal(t, 2, tgt.windows)

	out, err = execute(t, "windows", "--output", "json")
	require.NoError(t, err, out)
	var wins []api.WindowInfo
	require.NoError(t, json.Unmarshal([]byte(out), &wins))
	assert.Len(t, wins, 2)
}
