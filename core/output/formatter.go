// Package output produces human and machine-readable reports.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"waterblend/core/sweep"
	"waterblend/core/types"
	"waterblend/internal/config"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given report
	Render(w io.Writer, report *Report) error
}

// New returns the formatter for a format name
func New(format string) (Formatter, error) {
	switch Format(format) {
	case FormatCLI, "":
		return &CLIFormatter{}, nil
	case FormatJSON:
		return &JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
}

// Compliance annotates a concentration against a regulatory limit.
// Values and margins are decimal-rounded for stable presentation.
type Compliance struct {
	// Contaminant names the contaminant
	Contaminant string `json:"contaminant"`

	// Value is the concentration in mg/L
	Value decimal.Decimal `json:"value"`

	// Limit is the regulatory limit in mg/L
	Limit decimal.Decimal `json:"limit"`

	// Margin is limit minus value (negative when failing)
	Margin decimal.Decimal `json:"margin"`

	// Pass is true when the value is at or below the limit
	Pass bool `json:"pass"`
}

// CheckCompliance evaluates a quality pair against regulatory limits
func CheckCompliance(quality types.Concentrations, limits config.LimitsConfig) []Compliance {
	check := func(name string, value, limit float64, places int32) Compliance {
		v := decimal.NewFromFloat(value).Round(places)
		l := decimal.NewFromFloat(limit)
		return Compliance{
			Contaminant: name,
			Value:       v,
			Limit:       l,
			Margin:      l.Sub(v),
			Pass:        v.LessThanOrEqual(l),
		}
	}
	return []Compliance{
		check("arsenic", quality.Arsenic, limits.Arsenic, 5),
		check("chloride", quality.Chloride, limits.Chloride, 2),
	}
}

// AllocationRow is one displayed well allocation
type AllocationRow struct {
	Well types.WellID    `json:"well"`
	Flow decimal.Decimal `json:"flow"`
}

// Report is the complete presentation payload for one request
type Report struct {
	// Demand is the requested total flow in L/s
	Demand float64 `json:"demand"`

	// Allocations lists wells receiving flow above the display threshold
	Allocations []AllocationRow `json:"allocations"`

	// Stages is the ordered treatment train result
	Stages []types.StageResult `json:"stages"`

	// Compliance annotates the final product quality
	Compliance []Compliance `json:"compliance"`

	// Objective is the total weighted score of the allocation
	Objective float64 `json:"objective"`

	// Series is an optional demand sweep trend
	Series sweep.Series `json:"series,omitempty"`

	// Metadata contains execution context
	Metadata Metadata `json:"metadata"`
}

// Metadata contains execution context
type Metadata struct {
	// Timestamp is when the optimization ran
	Timestamp string `json:"timestamp"`

	// Duration is how long the optimization took
	Duration string `json:"duration"`

	// Version is the tool version
	Version string `json:"version"`

	// Catalog names the treatment catalog used
	Catalog string `json:"catalog,omitempty"`

	// Pretreatment names the selected unit operation
	Pretreatment string `json:"pretreatment,omitempty"`
}

// BuildAllocations filters and rounds an allocation for display
func BuildAllocations(alloc *types.Allocation, threshold float64) []AllocationRow {
	rows := make([]AllocationRow, 0, len(alloc.Entries))
	for _, e := range alloc.Entries {
		if e.Flow < threshold {
			continue
		}
		rows = append(rows, AllocationRow{
			Well: e.Well,
			Flow: decimal.NewFromFloat(e.Flow).Round(3),
		})
	}
	return rows
}

// JSONFormatter renders machine-readable JSON
type JSONFormatter struct{}

// Format returns the format type
func (f *JSONFormatter) Format() Format { return FormatJSON }

// Render writes the report as indented JSON
func (f *JSONFormatter) Render(w io.Writer, report *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// CLIFormatter renders a human-readable table
type CLIFormatter struct{}

// Format returns the format type
func (f *CLIFormatter) Format() Format { return FormatCLI }

// Render writes the report as a boxed CLI table
func (f *CLIFormatter) Render(w io.Writer, report *Report) error {
	line := func(format string, args ...interface{}) {
		fmt.Fprintf(w, format+"\n", args...)
	}

	line("┌──────────────────────────────────────────────────────────────┐")
	line("│                 BLEND OPTIMIZATION SUMMARY                   │")
	line("├──────────────────────────────────────────────────────────────┤")
	line("│ %-40s %19s │", "Demand", fmt.Sprintf("%.1f L/s", report.Demand))
	line("│ %-40s %19s │", "Objective score", fmt.Sprintf("%.4f", report.Objective))

	if len(report.Allocations) > 0 {
		line("├──────────────────────────────────────────────────────────────┤")
		for _, row := range report.Allocations {
			line("│   %-38s %19s │", truncate(string(row.Well), 38),
				fmt.Sprintf("%s L/s", row.Flow.StringFixed(3)))
		}
	}

	if len(report.Stages) > 0 {
		line("├──────────────────────────────────────────────────────────────┤")
		for _, stage := range report.Stages {
			line("│ %-24s %16s %18s │", truncate(stage.Stage, 24),
				fmt.Sprintf("As %.5f", stage.Quality.Arsenic),
				fmt.Sprintf("Cl %.2f mg/L", stage.Quality.Chloride))
		}
	}

	if len(report.Compliance) > 0 {
		line("├──────────────────────────────────────────────────────────────┤")
		for _, c := range report.Compliance {
			status := "PASS"
			if !c.Pass {
				status = "FAIL"
			}
			line("│ %-24s %16s %18s │", c.Contaminant,
				fmt.Sprintf("%s <= %s", c.Value.String(), c.Limit.String()), status)
		}
	}

	if len(report.Series) > 0 {
		line("├──────────────────────────────────────────────────────────────┤")
		line("│ %-20s %19s %19s │", "Demand (L/s)", "Arsenic (mg/L)", "Chloride (mg/L)")
		for _, p := range report.Series {
			if p.Skipped {
				continue
			}
			line("│ %-20s %19s %19s │",
				fmt.Sprintf("%.1f", p.Demand),
				fmt.Sprintf("%.5f", p.Quality.Arsenic),
				fmt.Sprintf("%.2f", p.Quality.Chloride))
		}
	}

	line("└──────────────────────────────────────────────────────────────┘")

	if report.Metadata.Duration != "" {
		line("")
		line("Completed in %s", report.Metadata.Duration)
	}

	return nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
