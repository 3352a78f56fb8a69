// Package cmd - wells command
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"waterblend/core/scoring"
	"waterblend/internal/config"
)

// wellsCmd represents the wells command
var wellsCmd = &cobra.Command{
	Use:   "wells [wells-file]",
	Short: "List the well registry with penalty scores",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWells,
}

func init() {
	wellsCmd.Flags().BoolVar(&useDemo, "demo", false, "use the built-in demonstration registry")
}

func runWells(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	reg, err := loadRegistry(args)
	if err != nil {
		return err
	}

	params := scoringParams(cfg)
	if err := params.Validate(); err != nil {
		return err
	}

	fmt.Printf("%-12s %10s %12s %12s %6s %10s\n",
		"WELL", "CAP (L/s)", "As (mg/L)", "Cl (mg/L)", "AVAIL", "SCORE")
	for _, sc := range scoring.ScoreAll(reg.Sources(), params) {
		avail := "yes"
		if !sc.Source.Available {
			avail = "no"
		}
		fmt.Printf("%-12s %10.1f %12.4f %12.2f %6s %10.4f\n",
			sc.Source.ID, sc.Source.Capacity,
			sc.Source.Quality.Arsenic, sc.Source.Quality.Chloride,
			avail, sc.Score)
	}
	fmt.Printf("\nAvailable capacity: %.1f L/s\n", reg.AvailableCapacity())
	return nil
}
