// Package cmd - sweep command
package cmd

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"waterblend/core/output"
	"waterblend/core/sweep"
	"waterblend/internal/config"
	"waterblend/internal/logging"
)

var (
	sweepStart       float64
	sweepStop        float64
	sweepStep        float64
	sweepParallelism int
)

// sweepCmd represents the sweep command
var sweepCmd = &cobra.Command{
	Use:   "sweep [wells-file]",
	Short: "Chart blended quality across a demand range",
	Long: `Re-solve the blend problem across a demand range and report the
blended quality trend. Demand values above the available capacity are
skipped, shortening the series.

Examples:
  waterblend sweep --demo
  waterblend sweep wells.hcl --start 10 --stop 60 --step 2
  waterblend sweep wells.hcl --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSweep,
}

func init() {
	cfg := config.Get()
	sweepCmd.Flags().Float64Var(&sweepStart, "start", cfg.Sweep.Start, "first demand value in L/s")
	sweepCmd.Flags().Float64Var(&sweepStop, "stop", cfg.Sweep.Stop, "exclusive upper demand bound in L/s")
	sweepCmd.Flags().Float64Var(&sweepStep, "step", cfg.Sweep.Step, "demand increment in L/s")
	sweepCmd.Flags().IntVar(&sweepParallelism, "parallelism", cfg.Sweep.Parallelism, "concurrent solves (<=1 sequential)")
	sweepCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, json)")
	sweepCmd.Flags().BoolVar(&useDemo, "demo", false, "use the built-in demonstration registry")
}

func runSweep(cmd *cobra.Command, args []string) error {
	start := time.Now()
	cfg := config.Get()

	reg, err := loadRegistry(args)
	if err != nil {
		return err
	}

	logging.Info("starting demand sweep")

	series, err := sweep.Run(context.Background(), reg, scoringParams(cfg),
		sweep.Range{Start: sweepStart, Stop: sweepStop, Step: sweepStep},
		sweep.Options{Parallelism: sweepParallelism})
	if err != nil {
		return err
	}

	report := &output.Report{
		Series: series.Feasible(),
		Metadata: output.Metadata{
			Timestamp: start.UTC().Format(time.RFC3339),
			Duration:  time.Since(start).String(),
			Version:   "0.1.0",
		},
	}

	format := outputFormat
	if format == "" {
		format = cfg.Output.DefaultFormat
	}
	formatter, err := output.New(format)
	if err != nil {
		return err
	}
	return formatter.Render(os.Stdout, report)
}
