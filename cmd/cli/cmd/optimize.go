// Package cmd - optimize command
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	wellshcl "waterblend/adapters/hcl"
	"waterblend/core/output"
	"waterblend/core/registry"
	"waterblend/core/scoring"
	"waterblend/core/solver"
	"waterblend/core/treatment"
	"waterblend/core/types"
	"waterblend/internal/config"
	"waterblend/internal/logging"
)

var (
	demand         float64
	outputFormat   string
	pretreatment   string
	catalogPreset  string
	weightArsenic  float64
	weightChloride float64
	useDemo        bool
)

// optimizeCmd represents the optimize command
var optimizeCmd = &cobra.Command{
	Use:   "optimize [wells-file]",
	Short: "Solve the blend optimization for one demand value",
	Long: `Allocate flow across wells to meet demand at minimum weighted
contaminant penalty, then run the blend through the treatment train.

The wells file is an HCL registry of well blocks; --demo uses the
built-in five-well demonstration registry instead.

Examples:
  waterblend optimize --demo --demand 50
  waterblend optimize wells.hcl --demand 50 --format json
  waterblend optimize wells.hcl --demand 50 --pretreatment ion_exchange`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOptimize,
}

func init() {
	optimizeCmd.Flags().Float64VarP(&demand, "demand", "d", 50, "total demand in L/s")
	optimizeCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, json)")
	optimizeCmd.Flags().StringVarP(&pretreatment, "pretreatment", "p", "", "pretreatment unit operation")
	optimizeCmd.Flags().StringVar(&catalogPreset, "catalog", "", "treatment catalog preset")
	optimizeCmd.Flags().Float64Var(&weightArsenic, "weight-arsenic", -1, "arsenic penalty weight override")
	optimizeCmd.Flags().Float64Var(&weightChloride, "weight-chloride", -1, "chloride penalty weight override")
	optimizeCmd.Flags().BoolVar(&useDemo, "demo", false, "use the built-in demonstration registry")
}

// loadRegistry resolves the registry from args or the demo set
func loadRegistry(args []string) (*registry.Registry, error) {
	if useDemo {
		return registry.Demo(), nil
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("a wells file is required (or pass --demo)")
	}
	if _, err := os.Stat(args[0]); os.IsNotExist(err) {
		return nil, fmt.Errorf("wells file does not exist: %s", args[0])
	}
	return wellshcl.ParseFile(args[0])
}

// scoringParams builds scoring parameters from config plus flag overrides
func scoringParams(cfg *config.Config) scoring.Params {
	params := scoring.Params{
		Weights: types.Weights{Arsenic: cfg.Blending.WeightArsenic, Chloride: cfg.Blending.WeightChloride},
		Refs:    types.ReferenceLimits{Arsenic: cfg.Blending.RefArsenic, Chloride: cfg.Blending.RefChloride},
	}
	if weightArsenic >= 0 {
		params.Weights.Arsenic = weightArsenic
	}
	if weightChloride >= 0 {
		params.Weights.Chloride = weightChloride
	}
	return params
}

// loadCatalog resolves the treatment catalog from flags and config
func loadCatalog(cfg *config.Config) (*treatment.Catalog, error) {
	if catalogPreset != "" {
		return treatment.Preset(catalogPreset)
	}
	if cfg.Treatment.CatalogFile != "" {
		return treatment.LoadCatalog(cfg.Treatment.CatalogFile)
	}
	return treatment.Preset(cfg.Treatment.CatalogPreset)
}

func runOptimize(cmd *cobra.Command, args []string) error {
	start := time.Now()
	cfg := config.Get()

	reg, err := loadRegistry(args)
	if err != nil {
		return err
	}

	logging.Info("starting blend optimization")

	result, err := solver.SolveBlend(solver.Problem{
		Registry: reg.Snapshot(),
		Scoring:  scoringParams(cfg),
		Demand:   demand,
	})
	if err != nil {
		return err
	}

	catalog, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	operation := pretreatment
	if operation == "" {
		operation = cfg.Treatment.Pretreatment
	}
	stages, err := treatment.NewTrain(catalog).Apply(operation, result.Blended)
	if err != nil {
		return err
	}

	final := stages[len(stages)-1].Quality
	report := &output.Report{
		Demand:      demand,
		Allocations: output.BuildAllocations(result.Allocation, cfg.Output.DisplayThreshold),
		Stages:      stages,
		Compliance:  output.CheckCompliance(final, cfg.Limits),
		Objective:   result.Objective,
		Metadata: output.Metadata{
			Timestamp:    start.UTC().Format(time.RFC3339),
			Duration:     time.Since(start).String(),
			Version:      "0.1.0",
			Catalog:      catalog.Name,
			Pretreatment: operation,
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
