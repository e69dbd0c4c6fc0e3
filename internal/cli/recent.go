package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mithrel/firesale/internal/present"
	"github.com/mithrel/firesale/internal/ui"
	"github.com/mithrel/firesale/internal/util"
)

var timeNow = time.Now

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

func newRecentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Manage the recent documents list",
	}
	list := newRecentListCmd()
	cmd.AddCommand(list)
	cmd.AddCommand(newRecentPickCmd())
	cmd.AddCommand(newRecentRemoveCmd())
	cmd.AddCommand(newRecentClearCmd())
	// "firesale recent" lists.
	cmd.RunE = list.RunE
	cmd.Flags().AddFlagSet(list.Flags())
	return cmd
}

func newRecentListCmd() *cobra.Command {
	var outputMode string
	var noHeaders bool
	var limit int
	var query string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recently opened documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			mode, ok := present.ParseMode(strings.ToLower(outputMode))
			if !ok {
				return fmt.Errorf("invalid --output: %s", outputMode)
			}
			if limit <= 0 {
				limit = app.Cfg.GetInt("recent.limit")
			}
			docs, err := app.Store.Recent.List(cmd.Context(), 0)
			if err != nil {
				return fmt.Errorf("list recent: %w", err)
			}
			docs = util.ScoreRecent(strings.TrimSpace(query), docs, limit, timeNow())
			opts := present.Options{
				Mode:       mode,
				JSONIndent: false, // pretty-print via external tools like jq
				Headers:    !noHeaders,
				Style:      app.Cfg.GetString("preview.style"),
			}
			if mode == present.ModeJSON || mode == present.ModeNDJSON {
				return present.RenderRecent(cmd.OutOrStdout(), docs, opts)
			}
			return withPager(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), func(w io.Writer) error {
				return present.RenderRecent(w, docs, opts)
			})
		},
	}
	cmd.Flags().StringVar(&outputMode, "output", "plain", "output mode: plain|pretty|json|ndjson")
	cmd.Flags().BoolVar(&noHeaders, "no-headers", false, "omit the header row")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of documents (default recent.limit)")
	cmd.Flags().StringVarP(&query, "query", "q", "", "fuzzy filter on the path")
	return cmd
}

func newRecentPickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Choose a recent document from a table and open it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			docs, err := app.Store.Recent.List(cmd.Context(), app.Cfg.GetInt("recent.limit"))
			if err != nil {
				return fmt.Errorf("list recent: %w", err)
			}
			path, err := ui.PickRecent(cmd.Context(), docs)
			if err != nil || path == "" {
				return err
			}
			return launch(cmd, []string{path})
		},
	}
}

func newRecentRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <path>",
		Short: "Forget one document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			if err := app.Store.Recent.Remove(cmd.Context(), absPath(args[0])); err != nil {
				return fmt.Errorf("remove %s: %w", args[0], err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}
}

func newRecentClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Forget all recent documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := getApp(cmd).Store.Recent.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear recent: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cleared recent documents")
			return nil
		},
	}
}
