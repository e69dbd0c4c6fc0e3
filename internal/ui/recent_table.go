package ui

import (
	"context"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mithrel/firesale/pkg/api"
)

// PickRecent opens an interactive table of recent documents and returns the
// path chosen with enter, or "" when the user quit without choosing.
func PickRecent(ctx context.Context, docs []api.RecentDocument) (string, error) {
	m := newPicker(docs)
	final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil {
		return "", err
	}
	return final.(picker).chosen, nil
}

type picker struct {
	table  table.Model
	docs   []api.RecentDocument
	chosen string
}

func newPicker(docs []api.RecentDocument) picker {
	cols := []table.Column{
		{Title: "Name", Width: 28},
		{Title: "Directory", Width: 40},
		{Title: "Opened", Width: 16},
		{Title: "Opens", Width: 5},
	}

	rows := make([]table.Row, 0, len(docs))
	for _, d := range docs {
		rows = append(rows, table.Row{
			truncate(filepath.Base(d.Path), 28),
			truncate(filepath.Dir(d.Path), 40),
			d.OpenedAt.Local().Format("2006-01-02 15:04"),
			strconv.FormatInt(d.Opens, 10),
		})
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(12, max(3, len(rows)+3))),
	)

	// Basic styling
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return picker{table: t, docs: docs}
}

func (m picker) Init() tea.Cmd { return nil }

func (m picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "enter":
			if i := m.table.Cursor(); i >= 0 && i < len(m.docs) {
				m.chosen = m.docs[i].Path
			}
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m picker) View() string {
	if len(m.docs) == 0 {
		return "(no recent documents)\n"
	}
	return m.table.View() + "\n↑/↓ to navigate • enter to open • q to exit\n"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
