package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the editor-wide bindings. Anything not bound here goes to the
// focused pane.
type keyMap struct {
	New, Open, Save, SaveHTML, Revert key.Binding
	Recent, External, CopyHTML        key.Binding
	Close, Quit                       key.Binding
	NextTab, PrevTab, TogglePane      key.Binding
	Help                              key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		New:        key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new window")),
		Open:       key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "open")),
		Save:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		SaveHTML:   key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "export html")),
		Revert:     key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "revert")),
		Recent:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "recent")),
		External:   key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "$EDITOR")),
		CopyHTML:   key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy html")),
		Close:      key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "close")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+q", "ctrl+c"), key.WithHelp("ctrl+q", "quit")),
		NextTab:    key.NewBinding(key.WithKeys("ctrl+pgdown", "alt+."), key.WithHelp("alt+.", "next window")),
		PrevTab:    key.NewBinding(key.WithKeys("ctrl+pgup", "alt+,"), key.WithHelp("alt+,", "prev window")),
		TogglePane: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "editor/preview")),
		Help:       key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Open, k.New, k.Recent, k.Close, k.Quit, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.New, k.Open, k.Recent, k.Save, k.SaveHTML},
		{k.Revert, k.External, k.CopyHTML, k.TogglePane},
		{k.NextTab, k.PrevTab, k.Close, k.Quit, k.Help},
	}
}
