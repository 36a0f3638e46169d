package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/firmdesk/internal/export"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a filtered table to an .xlsx workbook",
	}

	cmd.AddCommand(
		newExportEngagementsCmd(app),
		newExportProspectsCmd(app),
	)

	return cmd
}

func newExportEngagementsCmd(app *App) *cobra.Command {
	var (
		flags  engagementFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "engagements",
		Short: "Export engagements matching the filters",
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
			now := app.now()
			if err := writeFile(output, func(w io.Writer) error {
				return export.Engagements(w, matched, now)
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d engagements to %s\n", len(matched), output)
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "engagements.xlsx", "Workbook path")

	return cmd
}

func newExportProspectsCmd(app *App) *cobra.Command {
	var (
		flags  prospectFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "prospects",
		Short: "Export prospects matching the filters",
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
			if err := writeFile(output, func(w io.Writer) error {
				return export.Prospects(w, matched)
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d prospects to %s\n", len(matched), output)
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "prospects.xlsx", "Workbook path")

	return cmd
}

// writeFile creates path and hands it to write, removing the file again
// when writing fails.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()
	return write(f)
}
