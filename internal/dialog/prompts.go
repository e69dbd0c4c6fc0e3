package dialog

import "github.com/mithrel/firesale/internal/window"

// ConfirmButton is the index of the destructive/proceed answer in every
// prompt built here; the other button is always Cancel.
const ConfirmButton = 0

// Policy decides which button is focused when a prompt opens.
type Policy struct {
	// SafeDefault focuses Cancel instead of the destructive answer.
	SafeDefault bool
}

func (p Policy) apply(o MessageBoxOptions) MessageBoxOptions {
	if p.SafeDefault {
		o.DefaultID = o.CancelID
	}
	return o
}

// CloseUnsaved is shown when a window with unsaved edits is closed.
func (p Policy) CloseUnsaved() MessageBoxOptions {
	return p.apply(MessageBoxOptions{
		Type:      "warning",
		Title:     "Quit with Unsaved Changes?",
		Message:   "Your changes will be lost permanently if you do not save.",
		Buttons:   []string{"Quit Anyway", "Cancel"},
		DefaultID: 0,
		CancelID:  1,
	})
}

// OverwriteUnsaved is shown when opening a file would discard unsaved edits.
func (p Policy) OverwriteUnsaved() MessageBoxOptions {
	return p.apply(MessageBoxOptions{
		Type:      "warning",
		Title:     "Overwrite Current Unsaved Changes?",
		Message:   "Opening a new file in this window will overwrite your unsaved changes. Open this file anyway?",
		Buttons:   []string{"Yes", "Cancel"},
		DefaultID: 0,
		CancelID:  1,
	})
}

// ExternalChange is shown when another program modified the open file.
func (p Policy) ExternalChange() MessageBoxOptions {
	return p.apply(MessageBoxOptions{
		Type:      "warning",
		Title:     "Overwrite Current Unsaved Changes?",
		Message:   "Another application has changed this file. Load changes?",
		Buttons:   []string{"Yes", "Cancel"},
		DefaultID: 0,
		CancelID:  1,
	})
}

// Confirm shows opts and calls onConfirm only if the user picked the confirm
// button. Any other answer, including dismissal, is a silent no-op.
func Confirm(h Host, win window.ID, opts MessageBoxOptions, onConfirm func()) {
	h.ShowMessageBox(win, opts, func(response int) {
		if response == ConfirmButton {
			onConfirm()
		}
	})
}
