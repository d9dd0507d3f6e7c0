package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/godilite/wheel-of-life/internal/config"
)

// cli carries what every subcommand needs. logger is created lazily so that
// --verbose is honoured.
type cli struct {
	cfg     *config.Config
	verbose bool
	logger  *zap.Logger
}

func newRootCmd(cfg *config.Config) (*cobra.Command, *cli) {
	c := &cli{cfg: cfg}

	root := &cobra.Command{
		Use:   "wheel",
		Short: "Render Wheel of Life charts from self-assessment scores",
		Long: `wheel turns a document of category -> question -> score answers into a
polar bar chart, one slice per question, shaded per category.

Input is JSON or YAML (chosen by file extension). The chart is written as
wheel_of_life.png in the output folder.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.logger != nil {
				return nil
			}
			logger, err := config.NewLogger(c.cfg, c.verbose)
			if err != nil {
				return err
			}
			c.logger = logger
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newRenderCmd(c),
		newServeCmd(c),
		newHistoryCmd(c),
		newCatalogCmd(c),
	)
	return root, c
}
