package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/godilite/wheel-of-life/internal/app"
	"github.com/godilite/wheel-of-life/internal/report"
)

func newCatalogCmd(c *cli) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the question catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = c.cfg.CatalogPath
			}
			cat, err := app.LoadCatalog(path)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), report.Catalog(cat))
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "catalog", "", "question catalog YAML (default: built-in)")
	return cmd
}
