package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mithrel/firesale/internal/db"
	"github.com/mithrel/firesale/internal/util"
	"github.com/mithrel/firesale/pkg/api"
)

// recentLoadedMsg carries the recent list and a note per changed or missing file.
type recentLoadedMsg struct {
	docs  []api.RecentDocument
	notes map[string]string
	err   error
}

// loadRecentCmd reads the recent list and compares each file with its digest.
func loadRecentCmd(ctx context.Context, store *db.Store, limit int) tea.Cmd {
	return func() tea.Msg {
		if store == nil {
			return recentLoadedMsg{err: errors.New("recent documents are disabled")}
		}
		docs, err := store.Recent.List(ctx, limit)
		if err != nil {
			return recentLoadedMsg{err: err}
		}
		notes := make(map[string]string, len(docs))
		for _, d := range docs {
			b, err := os.ReadFile(d.Path)
			switch {
			case err != nil:
				notes[d.Path] = "missing"
			case d.Changed(string(b)):
				notes[d.Path] = "changed"
			}
		}
		return recentLoadedMsg{docs: docs, notes: notes}
	}
}

// recentModal filters the recent documents as the user types.
type recentModal struct {
	frame
	all     []api.RecentDocument
	notes   map[string]string
	shown   []api.RecentDocument
	cursor  int
	input   textinput.Model
	done    func(path string)
	nowFunc func() time.Time
}

func newRecentModal(docs []api.RecentDocument, notes map[string]string, done func(string), termW, termH int) *recentModal {
	ti := textinput.New()
	ti.Prompt = "filter: "
	ti.Placeholder = "type to search"
	ti.Focus()
	m := &recentModal{all: docs, notes: notes, input: ti, done: done, nowFunc: time.Now}
	m.refilter()
	m.resize(termW, termH)
	return m
}

func (m *recentModal) init() tea.Cmd { return textinput.Blink }

func (m *recentModal) resize(termW, termH int) {
	m.fit(termW, termH, 0.6, 0.6, 46, 100, 10, 26)
	w, _ := m.inner()
	m.input.Width = max(12, w-len(m.input.Prompt)-1)
}

func (m *recentModal) refilter() {
	m.shown = util.ScoreRecent(strings.TrimSpace(m.input.Value()), m.all, 0, m.nowFunc())
	if m.cursor >= len(m.shown) {
		m.cursor = max(0, len(m.shown)-1)
	}
}

func (m *recentModal) update(msg tea.Msg) (func(), tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc", "ctrl+c", "ctrl+q":
			return func() {}, nil
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return nil, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.shown)-1 {
				m.cursor++
			}
			return nil, nil
		case "enter":
			if len(m.shown) == 0 {
				return nil, nil
			}
			p, done := m.shown[m.cursor].Path, m.done
			return func() { done(p) }, nil
		}
	}
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.refilter()
	}
	return nil, cmd
}

func (m *recentModal) View() string {
	_, h := m.inner()
	rows := max(1, h-5)
	lines := []string{titleStyle.Render("Recent Documents"), m.input.View(), ""}
	if len(m.shown) == 0 {
		lines = append(lines, faintStyle.Render("no matches"))
	}
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	for i := start; i < len(m.shown) && i < start+rows; i++ {
		d := m.shown[i]
		label := fmt.Sprintf("%s  %s", filepath.Base(d.Path), faintStyle.Render(filepath.Dir(d.Path)))
		if note := m.notes[d.Path]; note != "" {
			label += " " + faintStyle.Render("("+note+")")
		}
		if i == m.cursor {
			label = activeStyle.Render(label)
		} else {
			label = buttonStyle.Render(label)
		}
		lines = append(lines, label)
	}
	lines = append(lines, "", faintStyle.Render("↑/↓ select • enter open • esc cancel"))
	return m.box.Render(strings.Join(lines, "\n"))
}
