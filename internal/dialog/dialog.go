package dialog

import (
	"path/filepath"
	"strings"

	"github.com/mithrel/firesale/internal/window"
)

// FileFilter restricts a file dialog to a named set of extensions (no dots).
type FileFilter struct {
	Name       string
	Extensions []string
}

// OpenOptions configures an open-file dialog.
type OpenOptions struct {
	Title       string
	DefaultPath string
	Filters     []FileFilter
}

// SaveOptions configures a save-file dialog.
type SaveOptions struct {
	Title       string
	DefaultPath string
	Filters     []FileFilter
}

// MessageBoxOptions describes a modal prompt. DefaultID is the button focused
// when the prompt opens; CancelID is the answer given when it is dismissed.
type MessageBoxOptions struct {
	Type      string
	Title     string
	Message   string
	Buttons   []string
	DefaultID int
	CancelID  int
}

// Host is the windowing host's dialog surface. Every method returns at once and
// reports the user's answer later through its callback, on the host event loop.
type Host interface {
	ShowOpenDialog(win window.ID, opts OpenOptions, done func(paths []string, canceled bool))
	ShowSaveDialog(win window.ID, opts SaveOptions, done func(path string, canceled bool))
	ShowMessageBox(win window.ID, opts MessageBoxOptions, done func(response int))
	// ShowAlert is a blocking informational alert with a single OK button.
	ShowAlert(win window.ID, message string)
	// ShowError reports an unrecoverable failure of a single action.
	ShowError(win window.ID, title string, err error)
}

// Matches reports whether path has one of the filter extensions. An empty
// filter list matches everything.
func Matches(filters []FileFilter, path string) bool {
	if len(filters) == 0 {
		return true
	}
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	for _, f := range filters {
		for _, e := range f.Extensions {
			if e == "*" || strings.EqualFold(e, ext) {
				return true
			}
		}
	}
	return false
}

// Extensions flattens the filter list into dotted extensions, e.g. ".md".
func Extensions(filters []FileFilter) []string {
	var out []string
	for _, f := range filters {
		for _, e := range f.Extensions {
			out = append(out, "."+e)
		}
	}
	return out
}
