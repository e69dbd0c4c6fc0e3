package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mithrel/firesale/internal/config"
	"github.com/mithrel/firesale/internal/wire"
)

type ctxKey string

const appKey ctxKey = "app"

// Execute is the entrypoint: it builds the root cobra.Command
// and calls its Execute() method to run the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd constructs the Cobra root command and wires dependencies.
func NewRootCmd() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:           "firesale [files...]",
		Short:         "Fire Sale: a markdown editor with live preview",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true, // don't show usage on runtime errors
		SilenceErrors: true, // let main print errors once
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load config with Viper.
			v := viper.New()
			if cfgPath != "" {
				v.SetConfigFile(cfgPath)
			}
			if err := config.Load(cmd.Context(), v); err != nil {
				return err
			}
			applyConfigFlagOverrides(cmd, v, nil)
			if err := config.CheckConfigValidity(v); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			// Wire up the app and stash it in context for subcommands.
			app, err := wire.BuildApp(cmd.Context(), v)
			if err != nil {
				return err
			}
			ctx := context.WithValue(cmd.Context(), appKey, app)
			cmd.SetContext(ctx)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return getApp(cmd).Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return launch(cmd, args)
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (yaml|toml)")
	cmd.PersistentFlags().String("preview.style", "dark", "glamour style of the preview pane")
	cmd.PersistentFlags().Bool("dialogs.safe_default", false, "focus Cancel in destructive prompts")
	cmd.PersistentFlags().Bool("instance.enabled", true, "forward files to a running editor")

	cmd.AddCommand(newOpenCmd())
	cmd.AddCommand(newNewCmd())
	cmd.AddCommand(newWindowsCmd())
	cmd.AddCommand(newRenderCmd())
	cmd.AddCommand(newRecentCmd())
	cmd.AddCommand(newCompletionCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

func getApp(cmd *cobra.Command) *wire.App {
	v := cmd.Context().Value(appKey)
	if v == nil {
		fmt.Fprintln(os.Stderr, "internal error: app not initialized")
		os.Exit(1)
	}
	return v.(*wire.App)
}
