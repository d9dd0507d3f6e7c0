package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/godilite/wheel-of-life/internal/app"
	"github.com/godilite/wheel-of-life/internal/report"
	"github.com/godilite/wheel-of-life/internal/responses"
	"github.com/godilite/wheel-of-life/internal/watch"
)

type renderFlags struct {
	input   string
	output  string
	catalog string
	watch   bool
	summary bool
}

func newRenderCmd(c *cli) *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a wheel chart from a response file",
		Example: `  wheel render -i answers.json
  wheel render -i answers.yaml -o charts --summary
  wheel render -i answers.json --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, c, f)
		},
	}

	cmd.Flags().StringVarP(&f.input, "input-file", "i", "", "response document (JSON or YAML)")
	cmd.Flags().StringVarP(&f.output, "output-folder", "o", ".", "folder for wheel_of_life.png")
	cmd.Flags().StringVar(&f.catalog, "catalog", "", "question catalog YAML (default: built-in)")
	cmd.Flags().BoolVar(&f.watch, "watch", false, "re-render whenever the input file changes")
	cmd.Flags().BoolVar(&f.summary, "summary", false, "print a per-category summary table")
	_ = cmd.MarkFlagRequired("input-file")

	return cmd
}

func runRender(cmd *cobra.Command, c *cli, f renderFlags) error {
	ctx := cmd.Context()

	// The input must exist before anything else is set up.
	if err := responses.CheckExists(f.input); err != nil {
		return err
	}

	components, err := app.NewComponents(ctx, c.cfg, f.catalog, c.logger)
	if err != nil {
		return err
	}
	defer components.Close()

	renderOnce := func(ctx context.Context) error {
		res, err := components.Service.RenderFile(ctx, f.input, f.output)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", res.OutputPath)
		if f.summary {
			fmt.Fprintln(cmd.OutOrStdout(), report.Summary(res.Layout, res.Set))
		}
		return nil
	}

	if err := renderOnce(ctx); err != nil {
		return err
	}
	if !f.watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w, err := watch.New(f.input, renderOnce, watch.WithLogger(c.logger))
	if err != nil {
		return err
	}
	c.logger.Info("watching input; press Ctrl+C to stop", zap.String("input", f.input))
	return w.Run(ctx)
}
