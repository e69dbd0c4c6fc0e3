package tui

import (
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/mithrel/firesale/internal/document"
)

// droppedFile interprets a bracketed paste as a file dropped on the editor.
// Terminals paste the path of a dragged file, sometimes quoted, escaped or as
// a file:// URL. Anything that is not an existing regular file is plain text.
func droppedFile(pasted string) (document.DroppedFile, bool) {
	s := strings.TrimSpace(pasted)
	if s == "" || strings.ContainsAny(s, "\n\r") {
		return document.DroppedFile{}, false
	}
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		s = s[1 : len(s)-1]
	}
	if strings.HasPrefix(s, "file://") {
		u, err := url.Parse(s)
		if err != nil {
			return document.DroppedFile{}, false
		}
		s = u.Path
	} else {
		s = strings.ReplaceAll(s, `\ `, " ")
	}
	info, err := os.Stat(s)
	if err != nil || !info.Mode().IsRegular() {
		return document.DroppedFile{}, false
	}
	if abs, err := filepath.Abs(s); err == nil {
		s = abs
	}
	return document.DroppedFile{Path: s, Type: mime.TypeByExtension(filepath.Ext(s))}, true
}
