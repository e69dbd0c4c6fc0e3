package present

import (
	"io"

	"github.com/mithrel/firesale/internal/present/format"
	"github.com/mithrel/firesale/pkg/api"
)

type Mode int

const (
	ModePlain Mode = iota
	ModePretty
	ModeJSON
	ModeNDJSON
)

type Options struct {
	Mode       Mode
	JSONIndent bool
	Headers    bool
	// Style is the glamour style of ModePretty.
	Style string
}

// ParseMode parses "plain", "pretty", "json" or "ndjson".
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "plain":
		return ModePlain, true
	case "pretty":
		return ModePretty, true
	case "json":
		return ModeJSON, true
	case "ndjson":
		return ModeNDJSON, true
	default:
		return ModePlain, false
	}
}

// RenderRecent renders the recent-documents list according to options.
func RenderRecent(w io.Writer, docs []api.RecentDocument, opts Options) error {
	if docs == nil {
		docs = []api.RecentDocument{}
	}
	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSON(w, docs, opts.JSONIndent)
	case ModeNDJSON:
		return format.WriteNDJSON(w, docs)
	case ModePretty:
		return format.WritePrettyRecent(w, docs, opts.Style)
	default:
		return format.WritePlainRecent(w, docs, opts.Headers)
	}
}

// RenderWindows renders the windows of a running instance. Pretty falls back
// to plain.
func RenderWindows(w io.Writer, wins []api.WindowInfo, opts Options) error {
	if wins == nil {
		wins = []api.WindowInfo{}
	}
	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSON(w, wins, opts.JSONIndent)
	case ModeNDJSON:
		return format.WriteNDJSON(w, wins)
	default:
		return format.WritePlainWindows(w, wins, opts.Headers)
	}
}
