// Package bookmarker is a single-window stub application.
package bookmarker

import (
	"context"
	"log"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mithrel/firesale/internal/window"
)

// Title is the window title.
const Title = "Bookmarker"

type keyMap struct {
	Quit key.Binding
}

func (k keyMap) ShortHelp() []key.Binding  { return []key.Binding{k.Quit} }
func (k keyMap) FullHelp() [][]key.Binding { return [][]key.Binding{{k.Quit}} }

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))
	bodyStyle = lipgloss.NewStyle().Padding(1, 2)
)

type model struct {
	reg  *window.Registry
	win  *window.Window
	keys keyMap
	help help.Model

	width, height int
}

func newModel() *model {
	reg := window.NewRegistry(0)
	win := reg.Create()
	win.Title = Title
	reg.Show(win.ID)
	return &model{
		reg:  reg,
		win:  win,
		keys: keyMap{Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c", "ctrl+w"), key.WithHelp("q", "quit"))},
		help: help.New(),
	}
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.reg.Close(m.win.ID)
		}
	}
	if m.reg.Len() == 0 {
		return m, tea.Quit
	}
	return m, nil
}

func (m *model) View() string {
	if m.reg.Len() == 0 {
		return ""
	}
	body := bodyStyle.Render("No bookmarks yet.")
	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(m.win.Title), body, m.help.View(m.keys))
}

// Run opens the bookmarker window and blocks until it is closed.
func Run(ctx context.Context, lg *log.Logger) error {
	if lg == nil {
		lg = log.Default()
	}
	m := newModel()
	lg.Printf("bookmarker ready window=%d", m.win.ID)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
