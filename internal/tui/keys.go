package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	QuitPlain  key.Binding
	ToggleEdit key.Binding
	EditPlain  key.Binding
	Reset      key.Binding
	ResetPlain key.Binding
	Focus      key.Binding
	FocusBack  key.Binding
	Blur       key.Binding
	Left       key.Binding
	Right      key.Binding
	Up         key.Binding
	Down       key.Binding
	Grab       key.Binding
	Drop       key.Binding
	Cancel     key.Binding

	// context for help rendering
	editing  bool
	grabbing bool
	focused  bool
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		QuitPlain:  key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ToggleEdit: key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "edit mode")),
		EditPlain:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit mode")),
		Reset:      key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset layout")),
		ResetPlain: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset layout")),
		Focus:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus widget")),
		FocusBack:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "focus previous")),
		Blur:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave widget")),
		Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "move")),
		Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("←/→", "move")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "select row")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↑/↓", "select row")),
		Grab:       key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "grab widget")),
		Drop:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "drop")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	switch {
	case k.grabbing:
		return []key.Binding{k.Right, k.Drop, k.Cancel}
	case k.focused:
		return []key.Binding{k.Blur, k.Focus, k.ToggleEdit, k.Reset, k.Quit}
	case k.editing:
		return []key.Binding{k.Right, k.Up, k.Grab, k.EditPlain, k.ResetPlain, k.QuitPlain}
	default:
		return []key.Binding{k.Focus, k.EditPlain, k.ResetPlain, k.QuitPlain}
	}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
