package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avolkov/briefgen/internal/cli/formatter"
)

func newHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previously generated prompts",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := app.Archive.ListByUser(cmd.Context(), app.UserID, limit)
			if err != nil {
				return fmt.Errorf("loading prompt history: %w", err)
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No prompts generated yet."))
				return nil
			}
			for _, rec := range records {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatHistoryEntry(rec.CreatedAt, rec.Target, rec.Summary))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of entries to show (0 for all)")
	return cmd
}
