// Package api - Thin, deterministic API layer
// The API is ONLY responsible for: input ingestion, engine orchestration,
// output serialization. The API NEVER performs blending logic.
package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"waterblend/core/treatment"
	"waterblend/internal/config"
	"waterblend/internal/errors"
	"waterblend/internal/logging"
)

// Version is the engine version reported by the API
const Version = "0.1.0"

// Server is the API server
type Server struct {
	handler *Handler
	mux     *http.ServeMux
}

// NewServer creates a new API server
func NewServer(cfg *config.Config) *Server {
	s := &Server{
		handler: NewHandler(cfg),
		mux:     http.NewServeMux(),
	}
	s.registerRoutes()
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/optimize", requireMethod(http.MethodPost, s.handleOptimize))
	s.mux.HandleFunc("/sweep", requireMethod(http.MethodPost, s.handleSweep))
	s.mux.HandleFunc("/catalogs", requireMethod(http.MethodGet, s.handleCatalogs))
	s.mux.HandleFunc("/health", requireMethod(http.MethodGet, s.handleHealth))
	s.mux.HandleFunc("/version", requireMethod(http.MethodGet, s.handleVersion))
}

// requireMethod replicates Go 1.22+ "METHOD /path" ServeMux patterns on the
// Go 1.21 toolchain, which treats such patterns as literal paths.
func requireMethod(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	}
}

// handleOptimize handles POST /optimize
func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	var req OptimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Parsing("invalid JSON body", err))
		return
	}

	report, err := s.handler.optimize(r.Context(), &req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, &OptimizeResponse{Report: report}, http.StatusOK)
}

// handleSweep handles POST /sweep
func (s *Server) handleSweep(w http.ResponseWriter, r *http.Request) {
	var req SweepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Parsing("invalid JSON body", err))
		return
	}

	series, err := s.handler.runSweep(r.Context(), &req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, &SweepResponse{Series: series, Feasible: series.Feasible()}, http.StatusOK)
}

// handleCatalogs handles GET /catalogs
func (s *Server) handleCatalogs(w http.ResponseWriter, r *http.Request) {
	resp := CatalogsResponse{}
	for _, name := range treatment.PresetNames() {
		catalog, err := treatment.Preset(name)
		if err != nil {
			s.writeError(w, err)
			return
		}
		resp.Presets = append(resp.Presets, CatalogSummary{
			Name:       catalog.Name,
			Operations: catalog.OperationNames(),
		})
	}
	s.writeJSON(w, &resp, http.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"version": Version}, http.StatusOK)
}

// statusFor maps domain error types to HTTP status codes
func statusFor(err error) int {
	e, ok := err.(*errors.Error)
	if !ok {
		return http.StatusInternalServerError
	}
	switch e.Type {
	case errors.TypeInput, errors.TypeParsing,
		errors.TypeCapacityExceeded, errors.TypeUndefinedConcentration:
		return http.StatusUnprocessableEntity
	case errors.TypeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	body := ErrorResponse{Error: ErrorBody{Type: "INTERNAL_ERROR", Message: err.Error()}}
	if e, ok := err.(*errors.Error); ok {
		body.Error.Type = string(e.Type)
		body.Error.Message = e.Message
	}

	if status >= http.StatusInternalServerError {
		logging.Error("request failed", zap.Error(err))
	}
	s.writeJSON(w, &body, status)
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode response", zap.Error(err))
	}
}
