package tui

import (
	"github.com/charmbracelet/lipgloss/v2"
)

// renderOverlay composes a centered modal on top of the given base view string.
func (m *model) renderOverlay(base, fg string, overlayW, overlayH int) string {
	termW, termH := m.termSize()
	x := max(0, (termW-overlayW)/2)
	y := max(0, (termH-overlayH)/2)
	// Whole-view dim of the background
	dimBase := lipgloss.NewStyle().Faint(true).Render(base)

	baseLayer := lipgloss.NewLayer(dimBase).
		Width(termW).
		Height(termH)
	fgLayer := lipgloss.NewLayer(fg).
		Width(overlayW).
		Height(overlayH).
		X(x).
		Y(y)

	return lipgloss.NewCanvas(baseLayer, fgLayer).Render()
}

// termSize returns the terminal size with fallbacks for the first frame.
func (m *model) termSize() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}
	return w, h
}
