package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckConfigValidityValid(t *testing.T) {
	v := viper.New()
	applyDefaults(v)
	v.Set("data_dir", "/tmp/firesale")

	if err := CheckConfigValidity(v); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestCheckConfigValidityInvalid(t *testing.T) {
	v := viper.New()
	v.Set("data_dir", "")
	v.Set("window.offset", 0)
	v.Set("preview.style", " ")
	v.Set("preview.word_wrap", -1)
	v.Set("recent.limit", -5)
	v.Set("open.extensions", []string{".md"})
	v.Set("save.markdown_extensions", []string{})
	v.Set("save.html_extensions", []string{"html"})

	err := CheckConfigValidity(v)
	if err == nil {
		t.Fatalf("expected error for invalid config")
	}

	msg := err.Error()
	expected := []string{
		"data_dir is required",
		"window.offset must be greater than 0",
		"preview.style is required",
		"preview.word_wrap must be greater than 0",
		"recent.limit must not be negative",
		`open.extensions entry ".md" must not start with a dot`,
		"save.markdown_extensions must not be empty",
	}
	for _, want := range expected {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected error to contain %q, got %q", want, msg)
		}
	}
	assert.NotContains(t, msg, "save.html_extensions")
}

func TestLoadPrecedence(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", cfgDir)
	t.Setenv("XDG_DATA_HOME", filepath.Join(cfgDir, "data"))
	require.NoError(t, os.MkdirAll(filepath.Join(cfgDir, "firesale"), 0o700))
	toml := "preview.word_wrap = 100\n\n[recent]\nlimit = 5\n"
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "firesale", "config.toml"), []byte(toml), 0o600))
	t.Setenv("FIRESALE_RECENT_LIMIT", "7")
	t.Setenv("FIRESALE_OPEN_EXTENSIONS", "md, txt")

	v := viper.New()
	require.NoError(t, Load(context.Background(), v))

	assert.Equal(t, 100, v.GetInt("preview.word_wrap"))
	assert.Equal(t, 7, v.GetInt("recent.limit"))
	assert.Equal(t, "dark", v.GetString("preview.style"))
	assert.Equal(t, []string{"md", "txt"}, v.GetStringSlice("open.extensions"))
	assert.Equal(t, filepath.Join(cfgDir, "data", "firesale"), v.GetString("data_dir"))
	assert.Equal(t, filepath.Join(cfgDir, "data", "firesale", "firesale.db"), ResolveDBPath(v))
	assert.Equal(t, filepath.Join(cfgDir, "data", "firesale", "firesale.log"), ResolveLogPath(v))
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(p, []byte("this is = = not toml"), 0o600))
	v := viper.New()
	v.SetConfigFile(p)
	assert.Error(t, Load(context.Background(), v))
}

func TestRenderDefaultTOMLCoversEveryOption(t *testing.T) {
	out := RenderDefaultTOML()
	assert.True(t, strings.HasPrefix(out, "# Fire Sale configuration (TOML)\n"))
	assert.Contains(t, out, "[preview]\n")
	assert.Contains(t, out, "word_wrap = 80\n")
	assert.Contains(t, out, `accept_types = ["text/plain", "", "text/markdown"]`)

	v := viper.New()
	v.SetConfigType("toml")
	require.NoError(t, v.ReadConfig(strings.NewReader(out)))
	for _, o := range GetConfigOptions() {
		assert.True(t, v.IsSet(o.Key), o.Key)
	}
}

func TestUpdateTOML(t *testing.T) {
	existing := "# mine\ndata_dir = \"/x\"\nlegacy = 1\n\n[preview]\nstyle = \"light\"\n"
	out, changed := UpdateTOML(existing)
	require.True(t, changed)
	assert.Contains(t, out, "# OUTDATED: option removed from config schema\n# legacy = 1")
	assert.Contains(t, out, "style = \"light\"")
	assert.Contains(t, out, "# Added by config update")
	assert.Contains(t, out, "documents_dir = ")
	assert.NotContains(t, out, "\nstyle = \"dark\"")

	v := viper.New()
	v.SetConfigType("toml")
	require.NoError(t, v.ReadConfig(strings.NewReader(out)))
	assert.Equal(t, "light", v.GetString("preview.style"))
	assert.Equal(t, 80, v.GetInt("preview.word_wrap"))

	again, changed := UpdateTOML(out)
	assert.False(t, changed)
	assert.Equal(t, out, again)
}
