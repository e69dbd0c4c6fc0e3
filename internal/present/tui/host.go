package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mithrel/firesale/internal/dialog"
	"github.com/mithrel/firesale/internal/window"
)

var _ dialog.Host = (*model)(nil)

// dispatchMsg runs fn on the event loop.
type dispatchMsg struct{ fn func() }

// programDispatcher posts closures to a running program. It must not be used
// from inside Update.
type programDispatcher struct{ p *tea.Program }

func (d *programDispatcher) Dispatch(fn func()) {
	if d.p == nil {
		return
	}
	d.p.Send(dispatchMsg{fn: fn})
}

// push queues a modal for win; only the first queued modal is interactive.
func (m *model) push(win window.ID, md modal) {
	m.shell.Registry().Focus(win)
	m.modals = append(m.modals, md)
	if cmd := md.init(); cmd != nil {
		m.pending = append(m.pending, cmd)
	}
}

func (m *model) ShowOpenDialog(win window.ID, opts dialog.OpenOptions, done func([]string, bool)) {
	w, h := m.termSize()
	m.push(win, newOpenModal(opts, done, w, h))
}

func (m *model) ShowSaveDialog(win window.ID, opts dialog.SaveOptions, done func(string, bool)) {
	w, h := m.termSize()
	m.push(win, newSaveModal(opts, done, w, h))
}

func (m *model) ShowMessageBox(win window.ID, opts dialog.MessageBoxOptions, done func(int)) {
	w, h := m.termSize()
	m.push(win, newMessageModal(opts, done, w, h))
}

func (m *model) ShowAlert(win window.ID, message string) {
	w, h := m.termSize()
	m.push(win, newAlertModal("", message, w, h))
}

func (m *model) ShowError(win window.ID, title string, err error) {
	w, h := m.termSize()
	m.push(win, newErrorModal(title, err, w, h))
}
