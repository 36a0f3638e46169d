package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/firmdesk/internal/cli/formatter"
	"github.com/alexanderramin/firmdesk/internal/domain"
	"github.com/alexanderramin/firmdesk/internal/filter"
	"github.com/alexanderramin/firmdesk/internal/paging"
	"github.com/alexanderramin/firmdesk/internal/worker"
	"github.com/spf13/cobra"
)

func newProspectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "prospects",
		Aliases: []string{"leads"},
		Short:   "New Clients: prospects not yet engaged",
	}

	cmd.AddCommand(
		newProspectsListCmd(app),
		newProspectsOptionsCmd(app),
	)

	return cmd
}

func filterProspects(app *App, rows []*domain.Prospect, c filter.ProspectCriteria) ([]*domain.Prospect, error) {
	resp := worker.FilterSync(worker.Request{
		Kind:             domain.KindProspects,
		Prospects:        rows,
		ProspectCriteria: c,
	}, app.Clock)
	return resp.Prospects, resp.Err
}

func newProspectsListCmd(app *App) *cobra.Command {
	var (
		flags prospectFlags
		limit int
		all   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List prospects matching the filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := flags.criteria(cmd.Flags())
			if err != nil {
				return err
			}
			rows, err := app.Prospects.List(context.Background())
			if err != nil {
				return err
			}
			matched, err := filterProspects(app, rows, c)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(matched) == 0 {
				fmt.Fprintln(out, formatter.Dim("No prospects match."))
				return nil
			}

			page := matched
			if !all {
				if limit <= 0 {
					limit = app.Settings.Batch
				}
				page = paging.Page(matched, paging.NewWindow(limit, app.Settings.Step))
			}
			fmt.Fprint(out, renderProspectTable(page, app))
			writeShowing(out, len(page), len(matched), len(rows))
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().IntVar(&limit, "limit", 0, "Rows to show (default: paging batch)")
	cmd.Flags().BoolVar(&all, "all", false, "Show every matching row")

	return cmd
}

func renderProspectTable(rows []*domain.Prospect, app *App) string {
	now := app.now()
	tableRows := make([][]string, 0, len(rows))
	for _, p := range rows {
		kind := "Business"
		if p.IsIndividual {
			kind = "Individual"
		}
		tableRows = append(tableRows, []string{
			formatter.TruncID(p.ID),
			p.ClientName,
			domain.StrOrEmpty(p.BusinessName),
			kind,
			p.Service,
			p.Partner,
			p.ReferredByOrSentinel(),
			formatter.RelativeDateFrom(p.CreatedAt, now),
			formatter.Money(p.ProjectedRevenue),
		})
	}
	return formatter.RenderTable(
		[]string{"ID", "CLIENT", "BUSINESS", "TYPE", "SERVICE", "PARTNER", "REFERRED BY", "ADDED", "REVENUE"},
		tableRows,
		formatter.AlignRight(8),
	)
}

func newProspectsOptionsCmd(app *App) *cobra.Command {
	var sample int

	cmd := &cobra.Command{
		Use:   "options",
		Short: "Show the values offered by each prospect filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := app.Prospects.List(context.Background())
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("sample") {
				sample = app.Settings.OptionSample
			}
			opts := filter.ProspectOptions(rows, sample)
			fmt.Fprint(cmd.OutOrStdout(), renderOptions([]optionGroup{
				{"Service", opts.Services},
				{"Partner", opts.Partners},
				{"Referred By", opts.ReferredBy},
			}))
			return nil
		},
	}

	cmd.Flags().IntVar(&sample, "sample", 0, "Leading rows to sample (default from config)")
	return cmd
}
