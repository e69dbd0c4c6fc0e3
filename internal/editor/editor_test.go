package editor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandUsesShellWrapper(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "vim -n")
	cmd, err := Command("/tmp/a b.md")
	require.NoError(t, err)
	assert.Equal(t, []string{"sh", "-c", "$EDITORCMD \"$FILEPATH\""}, cmd.Args)
	assert.Contains(t, cmd.Env, "EDITORCMD=vim -n")
	assert.Contains(t, cmd.Env, "FILEPATH=/tmp/a b.md")
}

func TestCommandPrefersVisual(t *testing.T) {
	t.Setenv("VISUAL", "code -w")
	t.Setenv("EDITOR", "vim")
	cmd, err := Command("x.md")
	require.NoError(t, err)
	assert.Contains(t, cmd.Env, "EDITORCMD=code -w")
}

func TestCommandWithoutFile(t *testing.T) {
	_, err := Command("")
	assert.ErrorIs(t, err, ErrNoFile)
}

func TestCommandNoEditorFound(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")
	t.Setenv("PATH", t.TempDir())
	_, err := Command("x.md")
	assert.Error(t, err)
}

func TestRunAppliesEdit(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a.md")
	require.NoError(t, os.WriteFile(p, []byte("old"), 0o644))
	script := filepath.Join(dir, "fake-editor")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nprintf new > \"$1\"\n"), 0o755))
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", script)
	require.NoError(t, Run(p))
	got, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
}
