package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/godilite/wheel-of-life/internal/app"
	"github.com/godilite/wheel-of-life/internal/report"
)

func newHistoryCmd(c *cli) *cobra.Command {
	var (
		limit int
		id    string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded renders",
		Long: `Lists renders stored in the history database (DB_PATH), newest first.
Renders are only recorded while HISTORY_ENABLED is set. With --id, prints
the per-category averages and the individual scores of one render.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg := *c.cfg
			cfg.HistoryEnabled = true
			components, err := app.NewComponents(ctx, &cfg, "", c.logger)
			if err != nil {
				return err
			}
			defer components.Close()

			if id != "" {
				avgs, err := components.History.CategoryAverages(ctx, id)
				if err != nil {
					return err
				}
				if len(avgs) == 0 {
					return fmt.Errorf("no render with id %q", id)
				}
				scores, err := components.History.Scores(ctx, id)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), report.Averages(avgs))
				fmt.Fprintln(cmd.OutOrStdout(), report.Scores(scores))
				return nil
			}

			recs, err := components.Service.History(ctx, limit)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), report.History(recs))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of renders to show")
	cmd.Flags().StringVar(&id, "id", "", "show category averages and scores for this render")
	return cmd
}
