package cli

import tea "github.com/charmbracelet/bubbletea"

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// replaceViewMsg replaces the current top view with a new one.
type replaceViewMsg struct {
	view View
}

// cmdOutputMsg carries text output from a command execution
// to be displayed transiently in the current view.
type cmdOutputMsg struct {
	output string
}

// wizardCompleteMsg is sent when a wizard form completes or is cancelled.
// The appModel handles it atomically: pop the wizard view, then run nextCmd.
type wizardCompleteMsg struct {
	nextCmd tea.Cmd
}

// refreshViewMsg asks every view on the stack to reload its rows.
type refreshViewMsg struct{}

// listActionMsg is a command-bar request aimed at the active list view.
type listActionMsg struct {
	action string // "search", "clear", "more", "filter"
	arg    string
}

// homeMsg unwinds the stack to the dashboard and reloads it.
type homeMsg struct{}

// quitMsg signals the app to quit.
type quitMsg struct{}

func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

func outputCmd(s string) tea.Cmd {
	return func() tea.Msg { return cmdOutputMsg{output: s} }
}

func refreshCmd() tea.Cmd {
	return func() tea.Msg { return refreshViewMsg{} }
}
