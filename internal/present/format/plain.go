package format

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mithrel/firesale/pkg/api"
)

// TSV columns: path, opened_at, opens
const recentHeader = "path\topened_at\topens\n"

// TSV columns: id, title, path, edited
const windowHeader = "id\ttitle\tpath\tedited\n"

func esc(field string) string {
	field = strings.ReplaceAll(field, "\t", "\\t")
	field = strings.ReplaceAll(field, "\n", "\\n")
	return field
}

func WritePlainRecent(w io.Writer, docs []api.RecentDocument, headers bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if headers {
		_, _ = io.WriteString(tw, recentHeader)
	}
	for _, d := range docs {
		line := fmt.Sprintf("%s\t%s\t%d\n", esc(d.Path), d.OpenedAt.Local().Format(time.RFC3339), d.Opens)
		_, _ = io.WriteString(tw, line)
	}
	return tw.Flush()
}

func WritePlainWindows(w io.Writer, wins []api.WindowInfo, headers bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if headers {
		_, _ = io.WriteString(tw, windowHeader)
	}
	for _, win := range wins {
		line := fmt.Sprintf("%d\t%s\t%s\t%t\n", win.ID, esc(win.Title), esc(win.Path), win.Edited)
		_, _ = io.WriteString(tw, line)
	}
	return tw.Flush()
}
