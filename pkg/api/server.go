// ------------------------------------------------------
// editdist - REST API Server
// Integration API for automation and tool chaining
// ------------------------------------------------------

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/http2"

	"github.com/strmetrics/editdist/pkg/batch"
	"github.com/strmetrics/editdist/pkg/config"
	"github.com/strmetrics/editdist/pkg/levenshtein"
	"github.com/strmetrics/editdist/pkg/result"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "editdist_api_requests_total",
		Help: "Total API requests by route and status code.",
	}, []string{"route", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "editdist_api_request_duration_seconds",
		Help: "API request latency by route.",
	}, []string{"route"})
)

// Server is the HTTP front end over pkg/levenshtein and pkg/batch.
type Server struct {
	config *config.Config
	server *http.Server
}

// NewServer creates a new API server.
func NewServer(cfg *config.Config) *Server {
	return &Server{config: cfg}
}

// DistanceRequest is the body of POST /api/v1/distance, /similarity,
// /editops, and /opcodes.
type DistanceRequest struct {
	S1          string `json:"s1"`
	S2          string `json:"s2"`
	ScoreCutoff *int   `json:"score_cutoff,omitempty"`
}

// DistanceResponse is the body of POST /api/v1/distance.
type DistanceResponse struct {
	Distance int `json:"distance"`
}

// SimilarityResponse is the body of POST /api/v1/similarity.
type SimilarityResponse struct {
	Similarity int `json:"similarity"`
}

// OpsResponse is the body of POST /api/v1/editops and /opcodes.
type OpsResponse struct {
	Editops levenshtein.Editops `json:"editops,omitempty"`
	Opcodes levenshtein.Opcodes `json:"opcodes,omitempty"`
}

// BatchRequest is the body of POST /api/v1/batch.
type BatchRequest struct {
	Pairs [][2]string `json:"pairs"`
}

// BatchResponse is the body of POST /api/v1/batch.
type BatchResponse struct {
	Success bool   `json:"success"`
	Summary string `json:"summary"`
}

// ErrorResponse is the body of any non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Start builds the router and middleware stack and serves, preferring
// HTTP/2 when the config enables it and TLS certificates are available.
func (s *Server) Start(port int) error {
	router := mux.NewRouter()

	apiRouter := router.PathPrefix("/api/v1").Subrouter()
	apiRouter.HandleFunc("/distance", s.handleDistance).Methods("POST")
	apiRouter.HandleFunc("/similarity", s.handleSimilarity).Methods("POST")
	apiRouter.HandleFunc("/editops", s.handleEditops).Methods("POST")
	apiRouter.HandleFunc("/opcodes", s.handleOpcodes).Methods("POST")
	apiRouter.HandleFunc("/batch", s.handleBatch).Methods("POST")
	apiRouter.HandleFunc("/health", s.handleHealth).Methods("GET")

	router.Handle("/metrics", promhttp.Handler())

	router.Use(s.loggingMiddleware)
	router.Use(s.authMiddleware)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	if s.config.EnableHTTP2 && s.config.TLSCertFile != "" && s.config.TLSKeyFile != "" {
		if err := http2.ConfigureServer(s.server, &http2.Server{}); err != nil {
			return fmt.Errorf("configure http2: %w", err)
		}
		return s.server.ListenAndServeTLS(s.config.TLSCertFile, s.config.TLSKeyFile)
	}

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) handleDistance(w http.ResponseWriter, r *http.Request) {
	var req DistanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	cutoff := levenshtein.NoCutoff
	if req.ScoreCutoff != nil {
		cutoff = *req.ScoreCutoff
	}

	dist := levenshtein.DistanceString(req.S1, req.S2, cutoff)
	s.sendJSON(w, http.StatusOK, DistanceResponse{Distance: dist})
}

func (s *Server) handleSimilarity(w http.ResponseWriter, r *http.Request) {
	var req DistanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	cutoff := levenshtein.NoCutoff
	if req.ScoreCutoff != nil {
		cutoff = *req.ScoreCutoff
	}

	sim := levenshtein.SimilarityString(req.S1, req.S2, cutoff)
	s.sendJSON(w, http.StatusOK, SimilarityResponse{Similarity: sim})
}

func (s *Server) handleEditops(w http.ResponseWriter, r *http.Request) {
	var req DistanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	ops := levenshtein.OpsString(req.S1, req.S2)
	s.sendJSON(w, http.StatusOK, OpsResponse{Editops: ops})
}

func (s *Server) handleOpcodes(w http.ResponseWriter, r *http.Request) {
	var req DistanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	codes := levenshtein.OpcodesString(req.S1, req.S2)
	s.sendJSON(w, http.StatusOK, OpsResponse{Opcodes: codes})
}

// handleBatch compares every pair in the request body with a bounded
// worker pool, reusing the same runner the CLI's batch mode drives, and
// replies with the aggregate summary rather than every individual result.
func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if len(req.Pairs) == 0 {
		s.sendError(w, http.StatusBadRequest, "no_pairs", "at least one pair is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Minute)
	defer cancel()

	proc, err := result.NewProcessor(s.config)
	if err != nil {
		s.sendError(w, http.StatusInternalServerError, "processor_init_failed", err.Error())
		return
	}
	defer proc.Close()

	runner := batch.NewRunner(s.config, proc)

	pairs := make([]batch.Pair, len(req.Pairs))
	for i, p := range req.Pairs {
		pairs[i] = batch.Pair{S1: p[0], S2: p[1]}
	}

	runner.Run(ctx, pairs)

	s.sendJSON(w, http.StatusOK, BatchResponse{Success: true, Summary: proc.Summary()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// loggingMiddleware logs every request via logrus and records Prometheus
// counters/histograms per route.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		route := r.URL.Path

		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     route,
			"status":   wrapped.status,
			"duration": duration,
		}).Info("handled request")

		requestsTotal.WithLabelValues(route, fmt.Sprintf("%d", wrapped.status)).Inc()
		requestDuration.WithLabelValues(route).Observe(duration.Seconds())
	})
}

// authMiddleware rejects requests missing a valid X-API-Key header when
// one is configured. The health and metrics endpoints are always open so
// orchestrators can probe liveness without a credential.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/health" || r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		if s.config.APIKey != "" {
			if r.Header.Get("X-API-Key") != s.config.APIKey {
				s.sendError(w, http.StatusUnauthorized, "unauthorized", "invalid API key")
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Errorf("encode response: %v", err)
	}
}

func (s *Server) sendError(w http.ResponseWriter, status int, errCode, message string) {
	s.sendJSON(w, status, ErrorResponse{Error: errCode, Message: message})
}

// responseWriter wraps http.ResponseWriter to capture the status code for
// the logging middleware.
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(status int) {
	rw.status = status
	rw.ResponseWriter.WriteHeader(status)
}
