package cli

import (
	"time"

	"github.com/alexanderramin/firmdesk/internal/domain"
	"github.com/alexanderramin/firmdesk/internal/filter"
	"github.com/alexanderramin/firmdesk/internal/paging"
	"github.com/alexanderramin/firmdesk/internal/service"
	"github.com/alexanderramin/firmdesk/internal/worker"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Settings are the display knobs shared by the CLI and the TUI.
type Settings struct {
	Batch        int
	Step         int
	OptionSample int
	RowHeight    int
	Catalog      domain.Catalog
}

// DefaultSettings mirrors the configuration defaults.
func DefaultSettings() Settings {
	return Settings{
		Batch:        paging.DefaultBatch,
		Step:         paging.DefaultStep,
		OptionSample: filter.DefaultOptionSample,
		RowHeight:    1,
		Catalog:      domain.DefaultCatalog(),
	}
}

// App holds references to the services and runtime pieces used by CLI
// commands and TUI views.
type App struct {
	Engagements service.EngagementService
	Prospects   service.ProspectService
	Import      service.ImportService
	Loader      *service.Loader

	// Worker filters off the UI loop. Nil filters inline.
	Worker *worker.Worker

	Settings Settings
	Clock    func() time.Time
	Logger   *zap.Logger

	// IsInteractive decides whether a bare "firmdesk" opens the TUI.
	IsInteractive func() bool
}

func (a *App) now() time.Time {
	if a.Clock == nil {
		return time.Now()
	}
	return a.Clock()
}

func (a *App) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

// NewRootCmd creates the top-level "firmdesk" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "firmdesk",
		Short: "Client list for an accounting firm",
		Long: "firmdesk keeps the firm's engagements (All Clients) and prospects (New Clients)\n" +
			"in a local database. Run without arguments for the interactive view.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return RunTUI(app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newEngagementsCmd(app),
		newProspectsCmd(app),
		newImportCmd(app),
		newExportCmd(app),
	)

	return root
}
