package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mithrel/firesale/internal/config"
	"github.com/mithrel/firesale/internal/instance"
	"github.com/mithrel/firesale/internal/wire"
)

// Run starts the editor with one window per file, or a single empty window,
// and blocks until the last window is closed.
func Run(ctx context.Context, app *wire.App, files []string) error {
	logPath := config.ResolveLogPath(app.Cfg)
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return fmt.Errorf("log dir: %w", err)
	}
	f, err := tea.LogToFileWith(logPath, "firesale ", app.Log)
	if err != nil {
		return fmt.Errorf("log file: %w", err)
	}
	defer f.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	d := &programDispatcher{}
	m, err := newModel(ctx, app, d)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	d.p = p
	m.launch(files)

	if app.Cfg.GetBool("instance.enabled") {
		go func() {
			if err := instance.Serve(ctx, d, m.shell, app.Log); err != nil && !errors.Is(err, context.Canceled) {
				app.Log.Printf("instance server: %v", err)
			}
		}()
	}

	_, err = p.Run()
	m.shutdown()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
