// Package api - Thin, deterministic API layer
// The API is ONLY responsible for: input ingestion, engine orchestration,
// output serialization. The API NEVER performs cost logic.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"baticost/core/catalog"
	"baticost/core/engine"
	"baticost/internal/errors"
	"baticost/internal/logging"
)

// Server is the API server
type Server struct {
	engine  *engine.Engine
	store   *catalog.Store
	mux     *http.ServeMux
	version string
}

// NewServer creates a new API server
func NewServer(version string, store *catalog.Store) *Server {
	s := &Server{
		engine:  engine.New(store),
		store:   store,
		mux:     http.NewServeMux(),
		version: version,
	}
	s.registerRoutes()
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /estimate", s.handleEstimate)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
	s.mux.HandleFunc("GET /catalog", s.handleCatalog)
	s.mux.HandleFunc("POST /catalog/reload", s.handleCatalogReload)
}

// handleEstimate handles POST /estimate
func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := uuid.NewString()

	var req EstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, requestID, "INVALID_JSON", err.Error(), nil, http.StatusBadRequest)
		return
	}

	result, err := s.engine.Estimate(req.toRawInput())
	if err != nil {
		s.writeEngineError(w, requestID, err)
		return
	}

	s.writeJSON(w, &EstimateResponse{
		RequestID:  requestID,
		DurationMs: time.Since(start).Milliseconds(),
		Result:     result,
	}, http.StatusOK)
}

// writeEngineError maps engine failures onto HTTP statuses. Validation
// failures surface field by field; pricing gaps and integrity failures are
// catalog bugs and stay generic for the end user.
func (s *Server) writeEngineError(w http.ResponseWriter, requestID string, err error) {
	if verr, ok := err.(*errors.ValidationErrors); ok {
		s.writeError(w, requestID, string(errors.TypeValidation),
			"invalid project input", verr.Fields, http.StatusUnprocessableEntity)
		return
	}

	if errors.IsType(err, errors.TypePricingGap) || errors.IsType(err, errors.TypeIntegrity) {
		logging.Error("estimate failed", zap.String("request_id", requestID), zap.Error(err))
		s.writeError(w, requestID, "ESTIMATION_UNAVAILABLE",
			"unable to estimate this configuration", nil, http.StatusInternalServerError)
		return
	}

	s.writeError(w, requestID, string(errors.TypeInternal), err.Error(), nil, http.StatusInternalServerError)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":         s.version,
		"catalog_version": s.store.Current().Version,
	}, http.StatusOK)
}

// handleCatalog handles GET /catalog
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	cat := s.store.Current()

	resp := &CatalogResponse{
		Version:  cat.Version,
		Currency: cat.Currency.String(),
	}
	for _, c := range cat.Categories {
		resp.Categories = append(resp.Categories, c.Name)
	}
	for _, o := range cat.AddOns {
		resp.AddOns = append(resp.AddOns, o.Code)
	}
	for _, m := range cat.RegionCoefficients {
		resp.Regions = append(resp.Regions, m.Code)
	}

	s.writeJSON(w, resp, http.StatusOK)
}

// handleCatalogReload handles POST /catalog/reload
func (s *Server) handleCatalogReload(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()

	var req ReloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, requestID, "INVALID_JSON", err.Error(), nil, http.StatusBadRequest)
		return
	}
	if req.Path == "" {
		s.writeError(w, requestID, string(errors.TypeValidation), "path is required", nil, http.StatusBadRequest)
		return
	}

	if err := s.store.ReloadFromFile(req.Path); err != nil {
		s.writeError(w, requestID, string(errors.TypeCatalog), err.Error(), nil, http.StatusUnprocessableEntity)
		return
	}

	s.writeJSON(w, &ReloadResponse{Version: s.store.Current().Version}, http.StatusOK)
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, requestID, code, message string, fields []errors.FieldError, status int) {
	s.writeJSON(w, &ErrorResponse{
		RequestID: requestID,
		Code:      code,
		Message:   message,
		Fields:    fields,
	}, status)
}
