package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// ErrProductNotFound is a sentinel error for product not found cases
var ErrProductNotFound = errors.New("product not found")

// handleGetProduct handles GET /product/{sku} requests
func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	sku := strings.TrimSpace(r.PathValue("sku"))
	if sku == "" {
		s.writeErrorResponse(w, http.StatusBadRequest, "Product SKU is required", "")
		return
	}

	product, err := s.service.GetProduct(r.Context(), sku)

	duration := time.Since(start)

	if err != nil {
		s.logger.Error().
			Err(err).
			Str("sku", sku).
			Str("remote_addr", r.RemoteAddr).
			Dur("duration", duration).
			Msg("Failed to get product")

		if isNotFoundError(err) {
			s.writeErrorResponse(w, http.StatusNotFound, "Product not found", sku)
			return
		}

		s.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	if product == nil {
		s.writeErrorResponse(w, http.StatusNotFound, "Product not found", sku)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, product)
}

// handleCacheStats handles GET /cache/stats requests
func (s *Server) handleCacheStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSONResponse(w, http.StatusOK, s.service.CacheStats())
}

// handleHealth handles GET /health requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	}

	s.writeJSONResponse(w, http.StatusOK, response)
}

// writeJSONResponse writes a JSON response
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode JSON response")
		http.Error(w, `{"error":"Internal server error"}`, http.StatusInternalServerError)
	}
}

// writeErrorResponse writes an error response in JSON format
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message, details string) {
	errorResp := ErrorResponse{
		Error:   message,
		Message: details,
	}

	s.writeJSONResponse(w, statusCode, errorResp)
}

// isNotFoundError checks if an error indicates that a resource was not found
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "not found") ||
		strings.Contains(errMsg, "no rows") ||
		errors.Is(err, ErrProductNotFound)
}
