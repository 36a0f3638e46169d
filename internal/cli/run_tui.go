package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// RunTUI starts the filter worker and runs the interactive view until the
// user quits. The worker is stopped before returning.
func RunTUI(app *App) error {
	if app.Worker != nil {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		app.Worker.Start(ctx)
		defer app.Worker.Stop()
	}

	p := tea.NewProgram(newAppModel(app), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
