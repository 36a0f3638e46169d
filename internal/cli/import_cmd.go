package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Load engagements and prospects from a JSON seed file",
		Long: "Validates every row first and reports all problems together. Rows are\n" +
			"written in a single transaction: either the whole file lands or nothing does.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Import == nil {
				return fmt.Errorf("import is not available")
			}
			res, err := app.Import.Import(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d engagements and %d prospects from %s\n",
				res.EngagementCount, res.ProspectCount, args[0])
			return nil
		},
	}
}
