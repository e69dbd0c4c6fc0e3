package document

import "path/filepath"

// AppName is the suffix of every window title.
const AppName = "Fire Sale"

// Session pairs a file path with the last loaded text and the text being edited.
// FilePath is empty for a document that was never saved.
type Session struct {
	FilePath string
	Original string
	Current  string
}

// Load replaces the session with freshly read content, discarding edits.
func (s *Session) Load(path, content string) {
	s.FilePath = path
	s.Original = content
	s.Current = content
}

// SetContent records the text currently in the edit surface.
func (s *Session) SetContent(content string) { s.Current = content }

// Revert drops edits.
func (s *Session) Revert() { s.Current = s.Original }

// IsEdited is the dirty flag.
func (s Session) IsEdited() bool { return s.Current != s.Original }

// DiffersFrom reports whether content differs from the edited text.
func (s Session) DiffersFrom(content string) bool { return content != s.Current }

// Title formats "<base> - Fire Sale (Edited)".
func (s Session) Title() string {
	title := AppName
	if s.FilePath != "" {
		title = filepath.Base(s.FilePath) + " - " + title
	}
	if s.IsEdited() {
		title += " (Edited)"
	}
	return title
}
