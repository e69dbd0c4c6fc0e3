package wire

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/firesale/internal/config"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	v := viper.New()
	v.Set("data_dir", filepath.Join(t.TempDir(), "data"))
	v.Set("documents_dir", "/docs")
	require.NoError(t, config.Load(context.Background(), v))
	app, err := BuildApp(context.Background(), v)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestShellOptionsFromConfig(t *testing.T) {
	app := newTestApp(t)
	app.Cfg.Set("dialogs.safe_default", true)
	app.Cfg.Set("save.html_extensions", []string{"html"})

	opts := app.ShellOptions()
	assert.Equal(t, 20, opts.Offset)
	assert.Equal(t, "/docs", opts.DocumentsDir)
	assert.Equal(t, []string{"md", "markdown", "txt"}, opts.OpenFilters[0].Extensions)
	assert.Equal(t, []string{"html"}, opts.HTMLFilters[0].Extensions)
	assert.True(t, opts.Policy.SafeDefault)
	assert.NotNil(t, opts.Store)
	assert.Equal(t, 20, opts.RecentLimit)
}

func TestDocumentOptionsAcceptTypes(t *testing.T) {
	app := newTestApp(t)
	opts := app.DocumentOptions(nil)
	assert.Equal(t, []string{"text/plain", "", "text/markdown"}, opts.AcceptTypes)
}
