package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	lipglossv2 "github.com/charmbracelet/lipgloss/v2"

	"github.com/mithrel/firesale/internal/config"
	"github.com/mithrel/firesale/internal/dialog"
)

// modal is a foreground dialog. update returns a non-nil result once the
// dialog is finished; the caller removes the modal and then runs result.
type modal interface {
	init() tea.Cmd
	update(msg tea.Msg) (result func(), cmd tea.Cmd)
	resize(termW, termH int)
	size() (w, h int)
	View() string
}

// frame is the bordered box shared by every modal.
type frame struct {
	width, height int
	padX, padY    int
	box           lipglossv2.Style
}

// fit sizes the frame to a share of the terminal within [minW,maxW]x[minH,maxH].
func (f *frame) fit(termW, termH int, ratioW, ratioH float64, minW, maxW, minH, maxH int) {
	if termW <= 0 || termH <= 0 {
		termW, termH = 80, 24
	}
	f.padX, f.padY = 2, 1
	w := int(float64(termW) * ratioW)
	if termW < 80 {
		w = termW - 4
	}
	w = min(max(w, min(minW, termW-2)), maxW)
	h := int(float64(termH) * ratioH)
	h = min(max(h, min(minH, termH-1)), maxH)
	f.width, f.height = w, h
	f.box = lipglossv2.NewStyle().
		Width(w).
		Height(h).
		Padding(f.padY, f.padX).
		Border(lipglossv2.RoundedBorder()).
		BorderForeground(lipglossv2.Color("63"))
}

func (f *frame) inner() (int, int) {
	return max(10, f.width-2-f.padX*2), max(3, f.height-2-f.padY*2)
}

func (f *frame) size() (int, int) { return f.width, f.height }

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	faintStyle  = lipgloss.NewStyle().Faint(true)
	buttonStyle = lipgloss.NewStyle().Padding(0, 1)
	activeStyle = buttonStyle.
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))
)

// messageModal is a message box with a row of buttons.
type messageModal struct {
	frame
	opts dialog.MessageBoxOptions
	sel  int
	done func(response int)
}

func newMessageModal(opts dialog.MessageBoxOptions, done func(int), termW, termH int) *messageModal {
	if len(opts.Buttons) == 0 {
		opts.Buttons = []string{"OK"}
	}
	m := &messageModal{opts: opts, sel: opts.DefaultID, done: done}
	if m.sel < 0 || m.sel >= len(opts.Buttons) {
		m.sel = 0
	}
	m.resize(termW, termH)
	return m
}

func (m *messageModal) init() tea.Cmd { return nil }

func (m *messageModal) resize(termW, termH int) { m.fit(termW, termH, 0.5, 0.3, 44, 80, 9, 14) }

func (m *messageModal) answer(response int) func() {
	done := m.done
	return func() {
		if done != nil {
			done(response)
		}
	}
}

func (m *messageModal) update(msg tea.Msg) (func(), tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil, nil
	}
	n := len(m.opts.Buttons)
	switch k.String() {
	case "left", "shift+tab", "h":
		m.sel = (m.sel + n - 1) % n
	case "right", "tab", "l":
		m.sel = (m.sel + 1) % n
	case "enter", " ":
		return m.answer(m.sel), nil
	case "esc", "ctrl+c", "ctrl+q":
		return m.answer(m.opts.CancelID), nil
	}
	return nil, nil
}

func (m *messageModal) View() string {
	w, _ := m.inner()
	buttons := make([]string, 0, len(m.opts.Buttons))
	for i, b := range m.opts.Buttons {
		st := buttonStyle
		if i == m.sel {
			st = activeStyle
		}
		buttons = append(buttons, st.Render(b))
	}
	parts := []string{}
	if m.opts.Title != "" {
		parts = append(parts, titleStyle.Render(m.opts.Title), "")
	}
	parts = append(parts,
		lipgloss.NewStyle().Width(w).Render(m.opts.Message),
		"",
		strings.Join(buttons, "  "),
		"",
		faintStyle.Render("←/→ choose • enter confirm • esc cancel"))
	return m.box.Render(strings.Join(parts, "\n"))
}

func newAlertModal(title, message string, termW, termH int) *messageModal {
	return newMessageModal(dialog.MessageBoxOptions{
		Type:    "info",
		Title:   title,
		Message: message,
		Buttons: []string{"OK"},
	}, nil, termW, termH)
}

func newErrorModal(title string, err error, termW, termH int) *messageModal {
	m := newAlertModal(title, err.Error(), termW, termH)
	m.opts.Type = "error"
	m.box = m.box.BorderForeground(lipglossv2.Color("196"))
	return m
}

// openModal browses the filesystem for a file to open.
type openModal struct {
	frame
	title  string
	picker filepicker.Model
	done   func(paths []string, canceled bool)
}

func newOpenModal(opts dialog.OpenOptions, done func([]string, bool), termW, termH int) *openModal {
	fp := filepicker.New()
	fp.AllowedTypes = dialog.Extensions(opts.Filters)
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.ShowHidden = false
	fp.CurrentDirectory = startDir(opts.DefaultPath)
	title := opts.Title
	if title == "" {
		title = "Open File"
	}
	m := &openModal{title: title, picker: fp, done: done}
	m.resize(termW, termH)
	return m
}

func (m *openModal) init() tea.Cmd { return m.picker.Init() }

func (m *openModal) resize(termW, termH int) {
	m.fit(termW, termH, 0.6, 0.7, 46, 100, 12, 30)
	_, h := m.inner()
	m.picker.Height = max(3, h-4)
}

func (m *openModal) update(msg tea.Msg) (func(), tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc", "ctrl+c", "ctrl+q":
			done := m.done
			return func() { done(nil, true) }, nil
		}
	}
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if ok, path := m.picker.DidSelectFile(msg); ok {
		done := m.done
		return func() { done([]string{path}, false) }, cmd
	}
	return nil, cmd
}

func (m *openModal) View() string {
	body := strings.Join([]string{
		titleStyle.Render(m.title),
		faintStyle.Render(m.picker.CurrentDirectory),
		"",
		m.picker.View(),
		faintStyle.Render("enter open • ←/backspace up • esc cancel"),
	}, "\n")
	return m.box.Render(body)
}

// saveModal asks for a destination path.
type saveModal struct {
	frame
	title string
	exts  []string
	input textinput.Model
	done  func(path string, canceled bool)
}

func newSaveModal(opts dialog.SaveOptions, done func(string, bool), termW, termH int) *saveModal {
	title := opts.Title
	if title == "" {
		title = "Save"
	}
	exts := dialog.Extensions(opts.Filters)
	ti := textinput.New()
	ti.Prompt = "path: "
	ti.Placeholder = "untitled"
	ti.SetValue(suggestPath(opts.DefaultPath, exts))
	ti.CursorEnd()
	ti.Focus()
	m := &saveModal{title: title, exts: exts, input: ti, done: done}
	m.resize(termW, termH)
	return m
}

func (m *saveModal) init() tea.Cmd { return textinput.Blink }

func (m *saveModal) resize(termW, termH int) {
	m.fit(termW, termH, 0.6, 0.3, 46, 100, 9, 12)
	w, _ := m.inner()
	m.input.Width = max(12, w-lipgloss.Width(m.input.Prompt)-1)
}

func (m *saveModal) update(msg tea.Msg) (func(), tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc", "ctrl+c", "ctrl+q":
			done := m.done
			return func() { done("", true) }, nil
		case "enter":
			p := strings.TrimSpace(m.input.Value())
			if p == "" {
				return nil, nil
			}
			p = config.ExpandHome(p)
			if abs, err := filepath.Abs(p); err == nil {
				p = abs
			}
			done := m.done
			return func() { done(p, false) }, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return nil, cmd
}

func (m *saveModal) View() string {
	hint := ""
	if len(m.exts) > 0 {
		hint = "types: " + strings.Join(m.exts, " ")
	}
	body := strings.Join([]string{
		titleStyle.Render(m.title),
		"",
		m.input.View(),
		faintStyle.Render(hint),
		"",
		faintStyle.Render("enter save • esc cancel"),
	}, "\n")
	return m.box.Render(body)
}

// startDir picks the directory a file dialog opens in.
func startDir(p string) string {
	if p != "" {
		if info, err := os.Stat(p); err == nil {
			if info.IsDir() {
				return p
			}
			return filepath.Dir(p)
		}
	}
	if cwd, err := os.Getwd(); err == nil {
		return cwd
	}
	return "."
}

// suggestPath proposes "<dir>/untitled<ext>" for a directory default.
func suggestPath(def string, exts []string) string {
	dir := startDir(def)
	if def != "" && def != dir {
		return def
	}
	ext := ".md"
	if len(exts) > 0 {
		ext = exts[0]
	}
	return filepath.Join(dir, fmt.Sprintf("untitled%s", ext))
}
