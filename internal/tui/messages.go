package tui

import tea "github.com/charmbracelet/bubbletea"

type statusMsg string

type errMsg struct{ error }

// leaveElapsedMsg fires once the drag-leave debounce delay has passed.
type leaveElapsedMsg struct {
	token uint64
}

func reportStatus(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg(text) }
}

func reportErr(err error) tea.Cmd {
	return func() tea.Msg { return errMsg{err} }
}
