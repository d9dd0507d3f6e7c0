package main

import (
	"github.com/spf13/cobra"

	"github.com/godilite/wheel-of-life/internal/app"
)

func newServeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the gRPC wheel service",
		Long: `Starts wheel.v1.WheelService with a health service. Configuration comes
from the environment: GRPC_PORT, GRPC_REFLECTION_ENABLED, REDIS_ADDR (empty
disables caching), CATALOG_PATH, HISTORY_ENABLED, DB_PATH and OUTPUT_DPI.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.NewApp(cmd.Context(), c.cfg, c.logger)
			if err != nil {
				return err
			}
			return application.Run(cmd.Context())
		},
	}
}
