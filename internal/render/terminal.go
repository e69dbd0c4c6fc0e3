package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Terminal renders markdown for display in a terminal pane using glamour.
type Terminal struct {
	style string
	wrap  int
	r     *glamour.TermRenderer
}

// NewTerminal builds a renderer for a glamour style name ("dark", "light",
// "dracula", "notty", ...) wrapping at wrap columns.
func NewTerminal(style string, wrap int) (*Terminal, error) {
	if strings.TrimSpace(style) == "" {
		style = "dark"
	}
	if wrap <= 0 {
		wrap = 80
	}
	t := &Terminal{style: style}
	if err := t.SetWidth(wrap); err != nil {
		return nil, err
	}
	return t, nil
}

// SetWidth rebuilds the renderer for a new wrap width.
func (t *Terminal) SetWidth(wrap int) error {
	if wrap <= 0 || wrap == t.wrap && t.r != nil {
		return nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(t.style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	t.r, t.wrap = r, wrap
	return nil
}

// Render returns styled output, or the source unchanged if glamour fails.
func (t *Terminal) Render(src string) string {
	out, err := t.r.Render(src)
	if err != nil {
		return src
	}
	return out
}
