package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mithrel/firesale/internal/instance"
	"github.com/mithrel/firesale/internal/ipc"
	"github.com/mithrel/firesale/internal/present"
	"github.com/mithrel/firesale/internal/present/tui"
)

func newOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <files...>",
		Short: "Open files, in the running editor when there is one",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return launch(cmd, args)
		},
	}
}

func newNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Open an empty window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return launch(cmd, nil)
		},
	}
}

// launch hands files to a running instance or starts the editor itself.
func launch(cmd *cobra.Command, files []string) error {
	app := getApp(cmd)
	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, absPath(f))
	}
	if app.Cfg.GetBool("instance.enabled") {
		m := ipc.Message{Name: ipc.CmdWindowNew}
		if len(paths) > 0 {
			m = ipc.Message{Name: ipc.CmdFileOpen, Paths: paths}
		}
		if resp, ok := instance.Forward(cmd.Context(), m); ok {
			if !resp.OK {
				return fmt.Errorf("running instance: %s", resp.Msg)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Forwarded to running instance (%d windows)\n", len(resp.Windows))
			return nil
		}
	}
	return tui.Run(cmd.Context(), app, paths)
}

func newWindowsCmd() *cobra.Command {
	var outputMode string
	var noHeaders bool
	cmd := &cobra.Command{
		Use:   "windows",
		Short: "List the windows of the running editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, ok := present.ParseMode(strings.ToLower(outputMode))
			if !ok {
				return fmt.Errorf("invalid --output: %s", outputMode)
			}
			resp, ok := instance.Forward(cmd.Context(), ipc.Message{Name: ipc.CmdWindowList})
			if !ok {
				return fmt.Errorf("no running instance")
			}
			if !resp.OK {
				return fmt.Errorf("running instance: %s", resp.Msg)
			}
			return present.RenderWindows(cmd.OutOrStdout(), resp.Windows, present.Options{Mode: mode, Headers: !noHeaders})
		},
	}
	cmd.Flags().StringVar(&outputMode, "output", "plain", "output mode: plain|json|ndjson")
	cmd.Flags().BoolVar(&noHeaders, "no-headers", false, "omit the header row")
	return cmd
}
