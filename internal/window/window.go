package window

import "io"

// ID identifies a window for the lifetime of the process.
type ID int

// Window is the host-side handle of one editor window.
type Window struct {
	ID    ID
	X, Y  int
	Title string
	// Edited mirrors the host "document edited" flag.
	Edited bool
	// Visible is false until the window content finished its first load.
	Visible bool
	// RepresentedFile is the file the host associates with the window.
	RepresentedFile string
	// Positioned reports whether X/Y were derived from another window rather
	// than left to the host default.
	Positioned bool
}

// Subscription is the watch handle a registry owns per window.
type Subscription = io.Closer

// CloseEvent is handed to close handlers; PreventDefault keeps the window open.
type CloseEvent struct {
	prevented bool
}

func (e *CloseEvent) PreventDefault() { e.prevented = true }

func (e *CloseEvent) DefaultPrevented() bool { return e.prevented }
