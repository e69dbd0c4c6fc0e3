package api

import "time"

// RecentDocument is a file the user opened, as kept for the recent list.
type RecentDocument struct {
	Path     string    `json:"path"`
	OpenedAt time.Time `json:"opened_at"`
	Opens    int64     `json:"opens"`
	// Digest is the BLAKE3 hex digest of the content when last opened.
	Digest string `json:"digest"`
}

// WindowInfo describes a live editor window, as reported over IPC.
type WindowInfo struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Path   string `json:"path,omitempty"`
	Edited bool   `json:"edited"`
}
