package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"waterblend/internal/config"
)

func testServer() *Server {
	return NewServer(config.Default())
}

func postJSON(t *testing.T, s *Server, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func testWells() []WellInput {
	return []WellInput{
		{ID: "W1", Capacity: 10, Arsenic: 0.004, Chloride: 272.3},
		{ID: "W2", Capacity: 50, Arsenic: 0.037, Chloride: 250.28},
	}
}

// TestOptimizeEndpoint verifies the happy path through the full engine
func TestOptimizeEndpoint(t *testing.T) {
	rec := postJSON(t, testServer(), "/optimize", OptimizeRequest{
		Wells:        testWells(),
		Demand:       10,
		Pretreatment: "none",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp OptimizeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.Report.Allocations) != 1 {
		t.Fatalf("expected 1 displayed allocation, got %d", len(resp.Report.Allocations))
	}
	if resp.Report.Allocations[0].Well != "W1" {
		t.Errorf("expected allocation to W1, got %s", resp.Report.Allocations[0].Well)
	}
	if len(resp.Report.Stages) != 3 {
		t.Errorf("expected 3 treatment stages, got %d", len(resp.Report.Stages))
	}
	if len(resp.Report.Compliance) != 2 {
		t.Errorf("expected 2 compliance rows, got %d", len(resp.Report.Compliance))
	}
}

// TestOptimizeCapacityExceeded verifies the error envelope and status
func TestOptimizeCapacityExceeded(t *testing.T) {
	rec := postJSON(t, testServer(), "/optimize", OptimizeRequest{
		Wells:  testWells(),
		Demand: 100,
	})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error.Type != "CAPACITY_EXCEEDED" {
		t.Errorf("expected CAPACITY_EXCEEDED, got %s", resp.Error.Type)
	}
}

// TestOptimizeUnknownOperation verifies catalog misses map to 404
func TestOptimizeUnknownOperation(t *testing.T) {
	rec := postJSON(t, testServer(), "/optimize", OptimizeRequest{
		Wells:        testWells(),
		Demand:       10,
		Pretreatment: "alchemy",
	})

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

// TestOptimizeBadJSON verifies malformed bodies are rejected
func TestOptimizeBadJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/optimize", bytes.NewReader([]byte("{")))
	rec := httptest.NewRecorder()
	testServer().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", rec.Code)
	}
}

// TestSweepEndpoint verifies the sweep path including skipped points
func TestSweepEndpoint(t *testing.T) {
	rec := postJSON(t, testServer(), "/sweep", SweepRequest{
		Wells: testWells(),
		Start: 10,
		Stop:  80,
		Step:  10,
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp SweepResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.Series) != 7 {
		t.Errorf("expected 7 series points, got %d", len(resp.Series))
	}
	if len(resp.Feasible) != 6 {
		t.Errorf("expected 6 feasible points, got %d", len(resp.Feasible))
	}
	for i := 1; i < len(resp.Feasible); i++ {
		if resp.Feasible[i].Demand <= resp.Feasible[i-1].Demand {
			t.Errorf("feasible series not ascending at index %d", i)
		}
	}
}

// TestCatalogsEndpoint verifies preset listing
func TestCatalogsEndpoint(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/catalogs", nil)
	rec := httptest.NewRecorder()
	testServer().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp CatalogsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Presets) != 2 {
		t.Fatalf("expected 2 presets, got %d", len(resp.Presets))
	}
	if resp.Presets[0].Name != "default" {
		t.Errorf("expected first preset default, got %s", resp.Presets[0].Name)
	}
}

// TestHealthEndpoint verifies the liveness probe
func TestHealthEndpoint(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	testServer().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}
