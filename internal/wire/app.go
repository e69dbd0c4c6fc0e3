package wire

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/spf13/viper"

	"github.com/mithrel/firesale/internal/config"
	"github.com/mithrel/firesale/internal/db"
	"github.com/mithrel/firesale/internal/dialog"
	"github.com/mithrel/firesale/internal/document"
	"github.com/mithrel/firesale/internal/shell"
)

// App aggregates the major services for easy injection.
type App struct {
	Cfg   *viper.Viper
	Log   *log.Logger
	Store *db.Store

	closer io.Closer
}

// BuildApp wires dependencies with the provided config.
func BuildApp(ctx context.Context, v *viper.Viper) (*App, error) {
	logger := log.New(os.Stderr, "firesale ", log.LstdFlags)
	store, closer, err := db.Open(ctx, config.ResolveDBPath(v))
	if err != nil {
		return nil, err
	}
	return &App{Cfg: v, Log: logger, Store: store, closer: closer}, nil
}

// Close releases the store.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// Policy is the prompt policy from dialogs.safe_default.
func (a *App) Policy() dialog.Policy {
	return dialog.Policy{SafeDefault: a.Cfg.GetBool("dialogs.safe_default")}
}

// ShellOptions maps configuration onto the orchestration layer.
func (a *App) ShellOptions() shell.Options {
	return shell.Options{
		Offset:          a.Cfg.GetInt("window.offset"),
		DocumentsDir:    config.ExpandHome(a.Cfg.GetString("documents_dir")),
		OpenFilters:     filters("Markdown files", a.Cfg.GetStringSlice("open.extensions")),
		MarkdownFilters: filters("Markdown files", a.Cfg.GetStringSlice("save.markdown_extensions")),
		HTMLFilters:     filters("HTML files", a.Cfg.GetStringSlice("save.html_extensions")),
		Policy:          a.Policy(),
		Store:           a.Store,
		RecentLimit:     a.Cfg.GetInt("recent.limit"),
		Logger:          a.Log,
	}
}

// DocumentOptions configures every window's surface. preview may be nil.
func (a *App) DocumentOptions(preview func(string) string) document.Options {
	return document.Options{
		Policy:      a.Policy(),
		AcceptTypes: a.Cfg.GetStringSlice("drop.accept_types"),
		Preview:     preview,
	}
}

func filters(name string, exts []string) []dialog.FileFilter {
	if len(exts) == 0 {
		return nil
	}
	return []dialog.FileFilter{{Name: name, Extensions: exts}}
}
