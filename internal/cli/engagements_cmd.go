package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alexanderramin/firmdesk/internal/cli/formatter"
	"github.com/alexanderramin/firmdesk/internal/domain"
	"github.com/alexanderramin/firmdesk/internal/filter"
	"github.com/alexanderramin/firmdesk/internal/paging"
	"github.com/alexanderramin/firmdesk/internal/worker"
	"github.com/spf13/cobra"
)

func newEngagementsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "engagements",
		Aliases: []string{"clients"},
		Short:   "All Clients: engagements in progress",
	}

	cmd.AddCommand(
		newEngagementsListCmd(app),
		newEngagementsOptionsCmd(app),
		newEngagementsLogHoursCmd(app),
	)

	return cmd
}

// filterEngagements runs one inline filter pass, the same transformation
// the TUI hands to the background worker.
func filterEngagements(app *App, rows []*domain.Engagement, c filter.EngagementCriteria) ([]*domain.Engagement, error) {
	resp := worker.FilterSync(worker.Request{
		Kind:               domain.KindEngagements,
		Engagements:        rows,
		EngagementCriteria: c,
		Now:                app.now(),
	}, app.Clock)
	return resp.Engagements, resp.Err
}

func newEngagementsListCmd(app *App) *cobra.Command {
	var (
		flags engagementFlags
		limit int
		all   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List engagements matching the filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := flags.criteria(cmd.Flags())
			if err != nil {
				return err
			}
			rows, err := app.Engagements.List(context.Background())
			if err != nil {
				return err
			}
			matched, err := filterEngagements(app, rows, c)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(matched) == 0 {
				fmt.Fprintln(out, formatter.Dim("No engagements match."))
				return nil
			}

			page := matched
			if !all {
				if limit <= 0 {
					limit = app.Settings.Batch
				}
				page = paging.Page(matched, paging.NewWindow(limit, app.Settings.Step))
			}
			fmt.Fprint(out, renderEngagementTable(page, app.Settings.Catalog, app))
			writeShowing(out, len(page), len(matched), len(rows))
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().IntVar(&limit, "limit", 0, "Rows to show (default: paging batch)")
	cmd.Flags().BoolVar(&all, "all", false, "Show every matching row")

	return cmd
}

func renderEngagementTable(rows []*domain.Engagement, catalog domain.Catalog, app *App) string {
	now := app.now()
	tableRows := make([][]string, 0, len(rows))
	for _, e := range rows {
		tableRows = append(tableRows, []string{
			formatter.TruncID(e.ID),
			e.ClientName,
			domain.StrOrEmpty(e.BusinessName),
			e.Service,
			e.Partner,
			formatter.StatusPill(e.Status, catalog.Statuses),
			formatter.DueDate(e.DueDate, now),
			strconv.Itoa(e.DocumentCount),
			formatter.Hours(e.LoggedHours),
		})
	}
	return formatter.RenderTable(
		[]string{"ID", "CLIENT", "BUSINESS", "SERVICE", "PARTNER", "STATUS", "DUE", "DOCS", "HOURS"},
		tableRows,
		formatter.AlignRight(7, 8),
	)
}

func writeShowing(out io.Writer, shown, matched, total int) {
	line := fmt.Sprintf("Showing %d of %d", shown, matched)
	if matched != total {
		line += fmt.Sprintf(" (%d total)", total)
	}
	if shown < matched {
		line += " · --all or --limit for more"
	}
	fmt.Fprintln(out, formatter.Dim(line))
}

func newEngagementsOptionsCmd(app *App) *cobra.Command {
	var sample int

	cmd := &cobra.Command{
		Use:   "options",
		Short: "Show the values offered by each engagement filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := app.Engagements.List(context.Background())
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("sample") {
				sample = app.Settings.OptionSample
			}
			opts := filter.EngagementOptions(rows, sample)
			fmt.Fprint(cmd.OutOrStdout(), renderOptions([]optionGroup{
				{"Service", opts.Services},
				{"Partner", opts.Partners},
				{"Status", opts.Statuses},
				{"Referral", opts.Referrals},
			}))
			return nil
		},
	}

	cmd.Flags().IntVar(&sample, "sample", 0, "Leading rows to sample (default from config)")
	return cmd
}

type optionGroup struct {
	name   string
	values []string
}

func renderOptions(groups []optionGroup) string {
	var b strings.Builder
	for i, g := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(formatter.Header(g.name) + "\n")
		if len(g.values) == 0 {
			b.WriteString(formatter.Dim("(none)") + "\n")
			continue
		}
		for _, v := range g.values {
			b.WriteString("  " + v + "\n")
		}
	}
	return b.String()
}

func newEngagementsLogHoursCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "log-hours <id> <hours>",
		Short: "Add hours to an engagement",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			hours, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid hours %q: %w", args[1], err)
			}
			ctx := context.Background()
			id, err := resolveEngagementID(ctx, app, args[0])
			if err != nil {
				return err
			}
			e, err := app.Engagements.LogHours(ctx, id, hours)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s on %s (total %s)\n",
				formatter.Hours(hours), e.ClientName, formatter.Hours(e.LoggedHours))
			return nil
		},
	}
}

// resolveEngagementID accepts a full ID or an unambiguous prefix of one.
func resolveEngagementID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("engagement ID is required")
	}
	rows, err := app.Engagements.List(ctx)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, e := range rows {
		if e.ID == input {
			return e.ID, nil
		}
		if strings.HasPrefix(e.ID, input) {
			matches = append(matches, e.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("engagement not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("engagement ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
