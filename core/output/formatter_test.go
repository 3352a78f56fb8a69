package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"waterblend/core/types"
	"waterblend/internal/config"
)

// TestCheckCompliance verifies pass/fail annotation against limits
func TestCheckCompliance(t *testing.T) {
	limits := config.LimitsConfig{Arsenic: 0.025, Chloride: 35}

	tests := []struct {
		name         string
		quality      types.Concentrations
		wantArsenic  bool
		wantChloride bool
	}{
		{"both pass", types.Concentrations{Arsenic: 0.01, Chloride: 20}, true, true},
		{"arsenic fails", types.Concentrations{Arsenic: 0.03, Chloride: 20}, false, true},
		{"chloride fails", types.Concentrations{Arsenic: 0.01, Chloride: 250}, true, false},
		{"exactly at limit passes", types.Concentrations{Arsenic: 0.025, Chloride: 35}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := CheckCompliance(tt.quality, limits)
			if len(rows) != 2 {
				t.Fatalf("expected 2 compliance rows, got %d", len(rows))
			}
			if rows[0].Pass != tt.wantArsenic {
				t.Errorf("arsenic pass = %v, want %v", rows[0].Pass, tt.wantArsenic)
			}
			if rows[1].Pass != tt.wantChloride {
				t.Errorf("chloride pass = %v, want %v", rows[1].Pass, tt.wantChloride)
			}
		})
	}
}

// TestBuildAllocations verifies the display threshold filter
func TestBuildAllocations(t *testing.T) {
	alloc := &types.Allocation{
		Demand: 10,
		Entries: []types.FlowAssignment{
			{Well: "W1", Flow: 10},
			{Well: "W2", Flow: 0.0005},
			{Well: "W3", Flow: 0},
		},
	}

	rows := BuildAllocations(alloc, 1e-3)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row above threshold, got %d", len(rows))
	}
	if rows[0].Well != "W1" {
		t.Errorf("expected W1, got %s", rows[0].Well)
	}
}

// TestJSONFormatter verifies the machine-readable rendering
func TestJSONFormatter(t *testing.T) {
	report := &Report{
		Demand: 10,
		Allocations: BuildAllocations(&types.Allocation{
			Demand:  10,
			Entries: []types.FlowAssignment{{Well: "W1", Flow: 10}},
		}, 1e-3),
	}

	var buf bytes.Buffer
	if err := (&JSONFormatter{}).Render(&buf, report); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["demand"] != float64(10) {
		t.Errorf("expected demand 10, got %v", decoded["demand"])
	}
}

// TestCLIFormatter verifies the table mentions the key figures
func TestCLIFormatter(t *testing.T) {
	report := &Report{
		Demand: 50,
		Allocations: []AllocationRow{
			{Well: "Pozo 1", Flow: decimal.NewFromInt(10)},
		},
		Stages: []types.StageResult{
			{Stage: "blend", Quality: types.Concentrations{Arsenic: 0.004, Chloride: 272.3}},
		},
	}

	var buf bytes.Buffer
	if err := (&CLIFormatter{}).Render(&buf, report); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Pozo 1", "50.0 L/s", "blend"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

// TestNewFormatter verifies format selection
func TestNewFormatter(t *testing.T) {
	if f, err := New("cli"); err != nil || f.Format() != FormatCLI {
		t.Errorf("expected CLI formatter, got %v, %v", f, err)
	}
	if f, err := New("json"); err != nil || f.Format() != FormatJSON {
		t.Errorf("expected JSON formatter, got %v, %v", f, err)
	}
	if _, err := New("xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}
