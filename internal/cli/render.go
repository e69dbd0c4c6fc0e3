package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mithrel/firesale/internal/fileio"
	"github.com/mithrel/firesale/internal/render"
)

func newRenderCmd() *cobra.Command {
	var out string
	var preview bool
	var fragment bool
	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a markdown file to HTML, or preview it in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			src, err := fileio.Read(args[0])
			if err != nil {
				return err
			}
			if preview {
				wrap := app.Cfg.GetInt("preview.word_wrap")
				if w := terminalWidth(cmd.OutOrStdout()); w > 0 && w < wrap {
					wrap = w
				}
				style := app.Cfg.GetString("preview.style")
				if !isTerminal(cmd.OutOrStdout()) {
					style = "notty"
				}
				term, err := render.NewTerminal(style, wrap)
				if err != nil {
					return err
				}
				return withPager(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), func(w io.Writer) error {
					_, err := io.WriteString(w, term.Render(src))
					return err
				})
			}

			html := render.HTML(src)
			if !fragment {
				title := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
				html = render.Document(title, html)
			}
			if out == "" || out == "-" {
				_, err := io.WriteString(cmd.OutOrStdout(), html)
				return err
			}
			if err := fileio.Write(out, html); err != nil {
				return err
			}
			app.Log.Printf("rendered %q to %q", args[0], out)
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "write HTML to this file instead of stdout")
	cmd.Flags().BoolVar(&preview, "preview", false, "show the terminal preview instead of HTML")
	cmd.Flags().BoolVar(&fragment, "fragment", false, "emit the HTML body only, without the document wrapper")
	cmd.Flags().Int("width", 0, "preview wrap width (overrides preview.word_wrap)")
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		applyConfigFlagOverrides(cmd, getApp(cmd).Cfg, map[string]string{"width": "preview.word_wrap"})
		return nil
	}
	return cmd
}
