package main

import (
	"fmt"
	"sync"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/finqa-cli/internal/chart"
)

var chartsMetrics []string

var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "Export chart PNGs for the loaded dataset",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return eris.Wrap(err, "charts: init")
		}

		renderer, err := chart.NewRenderer(env.Table, cfg.Output.ChartDir)
		if err != nil {
			return eris.Wrap(err, "charts: init renderer")
		}

		metrics := chartsMetrics
		if len(metrics) == 0 {
			metrics = env.Table.Metrics
		}

		type job struct {
			name   string
			render func() (string, error)
		}
		jobs := make([]job, 0, 2*len(metrics)+1)
		for _, m := range metrics {
			jobs = append(jobs,
				job{name: "line " + m, render: func() (string, error) { return renderer.Line(m) }},
				job{name: "bar " + m, render: func() (string, error) { return renderer.Bar(m) }},
			)
		}
		if len(metrics) > 1 {
			jobs = append(jobs, job{name: "comparison", render: func() (string, error) { return renderer.Comparison(metrics) }})
		}

		g, _ := errgroup.WithContext(ctx)
		g.SetLimit(4)

		var mu sync.Mutex
		var paths []string
		for _, j := range jobs {
			g.Go(func() error {
				path, err := j.render()
				if err != nil {
					zap.L().Warn("chart failed", zap.String("chart", j.name), zap.Error(err))
					return nil // keep rendering the rest
				}
				mu.Lock()
				paths = append(paths, path)
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return eris.Wrap(err, "charts: render")
		}

		for _, p := range paths {
			fmt.Printf("wrote %s\n", p)
		}
		fmt.Printf("%d charts written to %s\n", len(paths), cfg.Output.ChartDir)
		return nil
	},
}

func init() {
	chartsCmd.Flags().StringSliceVar(&chartsMetrics, "metrics", nil, "metrics to chart (default: all)")
	rootCmd.AddCommand(chartsCmd)
}
