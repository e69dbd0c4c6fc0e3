package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mithrel/firesale/internal/db"
	"github.com/mithrel/firesale/internal/document"
	"github.com/mithrel/firesale/internal/editor"
	"github.com/mithrel/firesale/internal/render"
	"github.com/mithrel/firesale/internal/shell"
	"github.com/mithrel/firesale/internal/window"
	"github.com/mithrel/firesale/internal/wire"
)

// statusMsg replaces the transient status text.
type statusMsg string

// editorDoneMsg reports the end of an external editor session.
type editorDoneMsg struct{ err error }

// dropMsg completes a drop after its affordance was shown for one frame.
type dropMsg struct {
	win  window.ID
	file document.DroppedFile
}

// tab is the terminal rendition of one window.
type tab struct {
	ctrl        *document.Controller
	area        textarea.Model
	preview     viewport.Model
	lastPreview string

	// The textarea expands tabs and splits on every \r, so its value is not
	// the document text. base is the text last put into the area and shown
	// is the area value right after; crlf restores line endings on edits.
	base  string
	shown string
	crlf  bool
}

// load replaces the area content with document text.
func (t *tab) load(content string) {
	t.base = content
	t.crlf = strings.Contains(content, "\r\n")
	t.area.SetValue(strings.ReplaceAll(content, "\r\n", "\n"))
	t.shown = t.area.Value()
}

// content maps the area value back to document text. An area that still
// shows what was loaded yields the loaded text unchanged.
func (t *tab) content() string {
	v := t.area.Value()
	if v == t.shown {
		return t.base
	}
	if t.crlf {
		v = strings.ReplaceAll(v, "\n", "\r\n")
	}
	return v
}

type model struct {
	ctx   context.Context
	shell *shell.Shell
	tabs  map[window.ID]*tab

	term    *render.Terminal
	docOpts document.Options
	store   *db.Store
	limit   int

	keys   keyMap
	help   help.Model
	modals []modal
	// pending collects commands queued outside of a command return path,
	// e.g. by a modal pushed from a controller callback.
	pending []tea.Cmd

	width, height int
	previewFocus  bool
	status        string
	quitting      bool
}

func newModel(ctx context.Context, app *wire.App, d shell.Dispatcher) (*model, error) {
	term, err := render.NewTerminal(app.Cfg.GetString("preview.style"), app.Cfg.GetInt("preview.word_wrap"))
	if err != nil {
		return nil, fmt.Errorf("preview renderer: %w", err)
	}
	m := &model{
		ctx:   ctx,
		tabs:  make(map[window.ID]*tab),
		term:  term,
		store: app.Store,
		limit: app.Cfg.GetInt("recent.limit"),
		keys:  defaultKeyMap(),
		help:  help.New(),
	}
	m.docOpts = app.DocumentOptions(m.term.Render)
	opts := app.ShellOptions()
	opts.OnAllClosed = func() { m.quitting = true }
	m.shell = shell.New(ctx, m, d, m.newSurface, opts)
	m.shell.Registry().OnClosed(func(w *window.Window) { delete(m.tabs, w.ID) })
	return m, nil
}

// newSurface is the shell's surface factory: a controller plus its panes.
func (m *model) newSurface(w *window.Window, main document.Main) shell.Surface {
	ctrl := document.NewController(w, main, m, m.docOpts)
	area := textarea.New()
	area.Placeholder = "Write markdown here…"
	area.ShowLineNumbers = false
	area.CharLimit = 0
	area.MaxHeight = 0
	area.MaxWidth = 0
	area.Focus()
	t := &tab{ctrl: ctrl, area: area, preview: viewport.New(40, 10)}
	ctrl.OnReplace(t.load)
	m.tabs[w.ID] = t
	m.layout()
	return ctrl
}

// launch opens the initial windows: one per file, or a single empty one.
func (m *model) launch(files []string) {
	if len(files) == 0 {
		m.shell.CreateWindow()
		return
	}
	for _, f := range files {
		_, _ = m.shell.OpenExternal(f)
	}
}

// shutdown destroys every window so that no watch outlives the program.
func (m *model) shutdown() {
	for _, w := range m.shell.Registry().List() {
		m.shell.Registry().Destroy(w.ID)
	}
}

func (m *model) focused() *tab {
	w := m.shell.Registry().Focused()
	if w == nil {
		return nil
	}
	return m.tabs[w.ID]
}

func (m *model) Init() tea.Cmd {
	cmds := append([]tea.Cmd{textarea.Blink}, m.pending...)
	m.pending = nil
	return tea.Batch(cmds...)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.handle(msg)}
	cmds = append(cmds, m.pending...)
	m.pending = nil
	m.refreshPreviews()
	if m.quitting {
		cmds = append(cmds, tea.Quit)
	}
	return m, tea.Batch(cmds...)
}

func (m *model) handle(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case dispatchMsg:
		msg.fn()
		return nil
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		for _, md := range m.modals {
			md.resize(msg.Width, msg.Height)
		}
		return nil
	case statusMsg:
		m.status = string(msg)
		return nil
	case editorDoneMsg:
		if msg.err != nil {
			m.status = "Editor failed: " + msg.err.Error()
		}
		return nil
	case dropMsg:
		if t, ok := m.tabs[msg.win]; ok {
			t.ctrl.Drop(msg.file)
		}
		return nil
	case recentLoadedMsg:
		if msg.err != nil {
			m.status = "Recent documents: " + msg.err.Error()
			return nil
		}
		if w := m.shell.Registry().Focused(); w != nil {
			id := w.ID
			tw, th := m.termSize()
			m.push(id, newRecentModal(msg.docs, msg.notes, func(path string) {
				_ = m.shell.OpenFile(id, path)
			}, tw, th))
		}
		return nil
	}
	if len(m.modals) > 0 {
		return m.updateModal(msg)
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(k)
	}
	if t := m.focused(); t != nil {
		var cmd tea.Cmd
		t.area, cmd = t.area.Update(msg)
		return cmd
	}
	return nil
}

func (m *model) updateModal(msg tea.Msg) tea.Cmd {
	result, cmd := m.modals[0].update(msg)
	if result != nil {
		m.modals = m.modals[1:]
		result()
	}
	return cmd
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	t := m.focused()
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.shell.Quit()
		return nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return nil
	case key.Matches(msg, m.keys.New):
		if t != nil {
			t.ctrl.New()
		} else {
			m.shell.CreateWindow()
		}
		return nil
	}
	if t == nil {
		return nil
	}
	id := t.ctrl.Window().ID
	switch {
	case key.Matches(msg, m.keys.Open):
		t.ctrl.Open()
	case key.Matches(msg, m.keys.Save):
		if t.ctrl.SaveEnabled() {
			t.ctrl.Save()
		} else {
			m.status = "No changes to save"
		}
	case key.Matches(msg, m.keys.SaveHTML):
		t.ctrl.SaveHTML()
	case key.Matches(msg, m.keys.Revert):
		if t.ctrl.RevertEnabled() {
			t.ctrl.Revert()
		}
	case key.Matches(msg, m.keys.Recent):
		return loadRecentCmd(m.ctx, m.store, m.limit)
	case key.Matches(msg, m.keys.External):
		cmd, err := editor.Command(t.ctrl.Session().FilePath)
		if err != nil {
			m.status = err.Error()
			return nil
		}
		return tea.ExecProcess(cmd, func(err error) tea.Msg { return editorDoneMsg{err: err} })
	case key.Matches(msg, m.keys.CopyHTML):
		return copyHTMLCmd(t.ctrl.HTML())
	case key.Matches(msg, m.keys.Close):
		m.shell.RequestClose(id)
	case key.Matches(msg, m.keys.NextTab):
		m.cycle(1)
	case key.Matches(msg, m.keys.PrevTab):
		m.cycle(-1)
	case key.Matches(msg, m.keys.TogglePane):
		m.previewFocus = !m.previewFocus
		if m.previewFocus {
			t.area.Blur()
			return nil
		}
		return t.area.Focus()
	default:
		if msg.Paste {
			if f, ok := droppedFile(string(msg.Runes)); ok {
				t.ctrl.DragOver(f)
				return func() tea.Msg { return dropMsg{win: id, file: f} }
			}
		}
		var cmd tea.Cmd
		if m.previewFocus {
			t.preview, cmd = t.preview.Update(msg)
			return cmd
		}
		prev := t.area.Value()
		t.area, cmd = t.area.Update(msg)
		if t.area.Value() == prev {
			return cmd
		}
		if c := t.content(); c != t.ctrl.Session().Current {
			t.ctrl.Edit(c)
		}
		return cmd
	}
	return nil
}

// cycle moves focus through the windows in creation order.
func (m *model) cycle(step int) {
	list := m.shell.Registry().List()
	if len(list) < 2 {
		return
	}
	cur := 0
	if f := m.shell.Registry().Focused(); f != nil {
		for i, w := range list {
			if w.ID == f.ID {
				cur = i
			}
		}
	}
	next := list[(cur+step+len(list))%len(list)]
	m.shell.Registry().Focus(next.ID)
	m.status = ""
}

func copyHTMLCmd(html string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(html); err != nil {
			return statusMsg("Copy failed: " + err.Error())
		}
		return statusMsg("Copied HTML to clipboard")
	}
}

func (m *model) refreshPreviews() {
	for _, t := range m.tabs {
		if p := t.ctrl.Preview(); p != t.lastPreview {
			t.lastPreview = p
			t.preview.SetContent(p)
		}
	}
}

// layout splits the body into the editor and preview panes.
func (m *model) layout() {
	w, h := m.termSize()
	helpH := lipgloss.Height(m.help.View(m.keys))
	bodyH := max(3, h-2-helpH)
	editorW := w / 2
	previewW := w - editorW - 1
	m.help.Width = w
	if err := m.term.SetWidth(max(20, previewW-2)); err != nil {
		m.status = "Preview: " + err.Error()
	}
	for _, t := range m.tabs {
		t.area.SetWidth(editorW)
		t.area.SetHeight(bodyH)
		t.preview.Width = previewW
		t.preview.Height = bodyH
		t.ctrl.Refresh()
	}
}

var (
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245"))
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))
	previewStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(lipgloss.Color("240"))
	enabledStyle  = lipgloss.NewStyle().Bold(true)
	disabledStyle = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	acceptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	rejectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func (m *model) renderTabs() string {
	focused := m.shell.Registry().Focused()
	parts := []string{}
	for _, w := range m.shell.Registry().List() {
		if !w.Visible {
			continue
		}
		st := tabStyle
		if focused != nil && w.ID == focused.ID {
			st = activeTabStyle
		}
		parts = append(parts, st.Render(w.Title))
	}
	return strings.Join(parts, " ")
}

func (m *model) renderStatus(t *tab) string {
	w, _ := m.termSize()
	path := t.ctrl.Session().FilePath
	if path == "" {
		path = "Untitled"
	}
	left := path
	switch t.ctrl.Drag() {
	case document.DragAccept:
		left += "  " + acceptStyle.Render("drop to open")
	case document.DragReject:
		left += "  " + rejectStyle.Render("unsupported file")
	}
	button := func(label string, on bool) string {
		if on {
			return enabledStyle.Render("[" + label + "]")
		}
		return disabledStyle.Render("[" + label + "]")
	}
	right := button("Save", t.ctrl.SaveEnabled()) + " " + button("Revert", t.ctrl.RevertEnabled())
	if m.status != "" {
		right = m.status + " • " + right
	}
	space := max(1, w-lipgloss.Width(left)-lipgloss.Width(right))
	return left + strings.Repeat(" ", space) + right
}

func (m *model) View() string {
	t := m.focused()
	if t == nil {
		return ""
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		t.area.View(),
		previewStyle.Render(t.preview.View()))
	base := strings.Join([]string{
		m.renderTabs(),
		body,
		m.renderStatus(t),
		m.help.View(m.keys),
	}, "\n")
	if len(m.modals) == 0 {
		return base
	}
	top := m.modals[0]
	w, h := top.size()
	return m.renderOverlay(base, top.View(), w+2, h+2)
}
