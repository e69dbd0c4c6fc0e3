package format

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/mithrel/firesale/pkg/api"
)

// WritePrettyRecent renders the recent list as a markdown table using glamour.
func WritePrettyRecent(w io.Writer, docs []api.RecentDocument, style string) error {
	var b strings.Builder
	b.WriteString("# Recent documents\n\n")
	if len(docs) == 0 {
		b.WriteString("_Nothing opened yet._\n")
	} else {
		b.WriteString("| File | Opened | Opens |\n|---|---|---|\n")
		for _, d := range docs {
			fmt.Fprintf(&b, "| `%s` | %s | %d |\n",
				strings.ReplaceAll(d.Path, "|", "\\|"), d.OpenedAt.Local().Format(time.DateTime), d.Opens)
		}
	}

	if style == "" {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := r.Render(b.String())
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
