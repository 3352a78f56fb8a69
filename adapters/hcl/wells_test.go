package hcl

import (
	"os"
	"path/filepath"
	"testing"

	"waterblend/internal/errors"
)

const validWells = `
well "Pozo 1" {
  capacity  = 10
  arsenic   = 0.004
  chloride  = 272.3
  available = true
}

well "Pozo 2" {
  capacity  = 50
  arsenic   = 0.037
  chloride  = 250.28
  available = false
}

well "Pozo 3" {
  capacity = 25
  arsenic  = 0.0453
  chloride = 226.25
}
`

// TestParse verifies well blocks decode into a registry
func TestParse(t *testing.T) {
	reg, err := Parse([]byte(validWells), "wells.hcl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reg.Len() != 3 {
		t.Fatalf("expected 3 wells, got %d", reg.Len())
	}

	w1, ok := reg.Get("Pozo 1")
	if !ok {
		t.Fatal("Pozo 1 missing")
	}
	if w1.Capacity != 10 || w1.Quality.Arsenic != 0.004 || w1.Quality.Chloride != 272.3 {
		t.Errorf("Pozo 1 decoded wrong: %+v", w1)
	}
	if !w1.Available {
		t.Error("Pozo 1 should be available")
	}

	w2, _ := reg.Get("Pozo 2")
	if w2.Available {
		t.Error("Pozo 2 should be unavailable")
	}

	// available defaults to true when omitted
	w3, _ := reg.Get("Pozo 3")
	if !w3.Available {
		t.Error("Pozo 3 should default to available")
	}
}

// TestParseFile verifies the file-based entry point
func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wells.hcl")
	if err := os.WriteFile(path, []byte(validWells), 0644); err != nil {
		t.Fatalf("failed to write wells file: %v", err)
	}

	reg, err := ParseFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reg.Len() != 3 {
		t.Errorf("expected 3 wells, got %d", reg.Len())
	}
}

// TestParseErrors verifies malformed input is reported, not masked
func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantType errors.Type
	}{
		{
			name:     "syntax error",
			src:      `well "W1" {`,
			wantType: errors.TypeParsing,
		},
		{
			name:     "missing required attribute",
			src:      `well "W1" { capacity = 10 }`,
			wantType: errors.TypeParsing,
		},
		{
			name: "non-numeric capacity",
			src: `well "W1" {
  capacity = "lots"
  arsenic  = 0.1
  chloride = 1
}`,
			wantType: errors.TypeInput,
		},
		{
			name: "negative capacity",
			src: `well "W1" {
  capacity = -5
  arsenic  = 0.1
  chloride = 1
}`,
			wantType: errors.TypeInput,
		},
		{
			name: "duplicate well id",
			src: `well "W1" {
  capacity = 5
  arsenic  = 0.1
  chloride = 1
}
well "W1" {
  capacity = 5
  arsenic  = 0.1
  chloride = 1
}`,
			wantType: errors.TypeInput,
		},
		{
			name:     "empty file",
			src:      ``,
			wantType: errors.TypeInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "wells.hcl")
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.IsType(err, tt.wantType) {
				t.Errorf("expected %s, got %v", tt.wantType, err)
			}
		})
	}
}
