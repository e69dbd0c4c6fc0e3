package bookmarker

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleWindow(t *testing.T) {
	m := newModel()
	require.Equal(t, 1, m.reg.Len())
	assert.True(t, m.win.Visible)
	assert.Equal(t, m.win, m.reg.Focused())
	assert.Contains(t, m.View(), Title)
}

func TestQuitClosesWindow(t *testing.T) {
	m := newModel()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.reg.Len())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, 0, m.reg.Len())
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}
