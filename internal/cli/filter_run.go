package cli

import (
	"context"

	"github.com/alexanderramin/firmdesk/internal/worker"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// filterResultMsg delivers a worker response to the views. Every list view
// sees it; each one keeps only the response its dispatcher still expects.
type filterResultMsg struct {
	resp worker.Response
}

// runFilter hands req to the background worker and turns the reply into a
// message. Without a worker the pass runs inline in the command goroutine.
func runFilter(app *App, req worker.Request) tea.Cmd {
	return func() tea.Msg {
		if app.Worker == nil {
			return filterResultMsg{resp: worker.FilterSync(req, app.Clock)}
		}
		resp, err := app.Worker.Await(context.Background(), req)
		if err != nil {
			app.logger().Warn("filter request not processed",
				zap.String("id", req.ID), zap.String("kind", string(req.Kind)), zap.Error(err))
			return filterResultMsg{resp: worker.Response{ID: req.ID, Kind: req.Kind, Err: err}}
		}
		return filterResultMsg{resp: resp}
	}
}
