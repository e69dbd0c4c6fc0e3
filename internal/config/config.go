package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// applyDefaults seeds Viper with defaults defined in GetConfigOptions.
func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env.
// The provided Viper instance is mutated with defaults, file contents, and env.
func Load(ctx context.Context, v *viper.Viper) error {
	// SetConfigFile upstream takes precedence over these search paths.
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "firesale"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "firesale"))
		}
		v.AddConfigPath(".")
	}

	// Apply centralized defaults (lowest precedence)
	applyDefaults(v)

	// Read config file if present (overrides defaults). A missing file is fine,
	// a malformed one is not.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	// Environment variables: FIRESALE_* (highest among these sources)
	v.SetEnvPrefix("firesale")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if v.GetString("data_dir") == "" {
		v.Set("data_dir", defaultDataDir())
	}
	if v.GetString("documents_dir") == "" {
		v.Set("documents_dir", defaultDocumentsDir())
	}
	splitListEnv(v)
	return nil
}

// splitListEnv turns comma-separated env values of list options into slices.
func splitListEnv(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		if _, ok := o.Default.([]string); !ok {
			continue
		}
		s, ok := v.Get(o.Key).(string)
		if !ok {
			continue
		}
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if t := strings.TrimSpace(p); t != "" {
				out = append(out, t)
			}
		}
		v.Set(o.Key, out)
	}
}

// defaultDataDir resolves default data dir: $XDG_DATA_HOME/firesale or ~/.local/share/firesale
func defaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "firesale")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "firesale")
}

// defaultDocumentsDir is where save dialogs start: $XDG_DOCUMENTS_DIR or ~/Documents.
func defaultDocumentsDir() string {
	if xdg := os.Getenv("XDG_DOCUMENTS_DIR"); xdg != "" {
		return xdg
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, "Documents")
}

// DefaultConfigPath resolves the standard config.toml location.
func DefaultConfigPath() string {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, "firesale", "config.toml")
}

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the default configuration options and their meanings.
// This is the single source of truth for default values and generator output.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "data_dir", Default: defaultDataDir(), Comment: "Directory for local state; recent documents live in data_dir/firesale.db"},
		{Key: "documents_dir", Default: defaultDocumentsDir(), Comment: "Directory open and save dialogs start in"},

		{Key: "window.offset", Default: 20, Comment: "Offset of a new window from the focused one"},
		{Key: "preview.style", Default: "dark", Comment: "Glamour style of the preview pane (dark, light, notty, ascii, or a JSON style path)"},
		{Key: "preview.word_wrap", Default: 80, Comment: "Preview wrap width in columns"},
		{Key: "open.extensions", Default: []string{"md", "markdown", "txt"}, Comment: "Extensions listed by the open dialog"},
		{Key: "save.markdown_extensions", Default: []string{"md", "markdown"}, Comment: "Extensions offered when saving markdown"},
		{Key: "save.html_extensions", Default: []string{"html", "htm"}, Comment: "Extensions offered when exporting HTML"},
		{Key: "recent.limit", Default: 20, Comment: "Number of recent documents kept; 0 keeps all"},
		{Key: "dialogs.safe_default", Default: false, Comment: "Focus Cancel instead of the destructive answer in prompts"},
		{Key: "drop.accept_types", Default: []string{"text/plain", "", "text/markdown"}, Comment: "MIME types accepted when a file is dropped; \"\" is an unknown type"},
		{Key: "instance.enabled", Default: true, Comment: "Forward files to an already running editor"},
		{Key: "log.file", Default: "", Comment: "Log file of the editor; empty means data_dir/firesale.log"},
	}
}

// CheckConfigValidity reports every problem found in v at once.
func CheckConfigValidity(v *viper.Viper) error {
	var errs []error
	if strings.TrimSpace(v.GetString("data_dir")) == "" {
		errs = append(errs, errors.New("data_dir is required"))
	}
	if v.GetInt("window.offset") <= 0 {
		errs = append(errs, errors.New("window.offset must be greater than 0"))
	}
	if strings.TrimSpace(v.GetString("preview.style")) == "" {
		errs = append(errs, errors.New("preview.style is required"))
	}
	if v.GetInt("preview.word_wrap") <= 0 {
		errs = append(errs, errors.New("preview.word_wrap must be greater than 0"))
	}
	if v.GetInt("recent.limit") < 0 {
		errs = append(errs, errors.New("recent.limit must not be negative"))
	}
	for _, key := range []string{"open.extensions", "save.markdown_extensions", "save.html_extensions"} {
		exts := v.GetStringSlice(key)
		if len(exts) == 0 {
			errs = append(errs, fmt.Errorf("%s must not be empty", key))
		}
		for _, e := range exts {
			if strings.HasPrefix(e, ".") {
				errs = append(errs, fmt.Errorf("%s entry %q must not start with a dot", key, e))
			}
		}
	}
	return errors.Join(errs...)
}

// ResolveDBPath returns the sqlite file of the recent-documents store.
func ResolveDBPath(v *viper.Viper) string {
	return filepath.Join(ExpandHome(dataDir(v)), "firesale.db")
}

// ResolveLogPath returns log.file, defaulting to data_dir/firesale.log.
func ResolveLogPath(v *viper.Viper) string {
	if p := strings.TrimSpace(v.GetString("log.file")); p != "" {
		return ExpandHome(p)
	}
	return filepath.Join(ExpandHome(dataDir(v)), "firesale.log")
}

func dataDir(v *viper.Viper) string {
	if dir := v.GetString("data_dir"); dir != "" {
		return dir
	}
	return defaultDataDir()
}

// ExpandHome replaces a leading ~ with the home directory.
func ExpandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[1:])
		}
	}
	return p
}
