package web

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/carbonswap/sushiswap-analytics/internal/analyzer"
	"github.com/carbonswap/sushiswap-analytics/internal/config"
	"github.com/carbonswap/sushiswap-analytics/internal/logger"
	"github.com/carbonswap/sushiswap-analytics/internal/state"
	"github.com/carbonswap/sushiswap-analytics/internal/tracker"
)

var webLogger = logger.GetForComponent("web_server")

// WebServer handles HTTP requests for portfolio data.
type WebServer struct {
	router  *mux.Router
	port    string
	fetcher tracker.Fetcher
}

// NewWebServer creates a new web server instance. The fetcher serves
// on-demand live evaluations; stored history comes from the state package.
func NewWebServer(port string, fetcher tracker.Fetcher) *WebServer {
	if port == "" {
		port = "8080"
	}

	server := &WebServer{
		router:  mux.NewRouter(),
		port:    port,
		fetcher: fetcher,
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures all HTTP routes
func (ws *WebServer) setupRoutes() {
	ws.router.HandleFunc("/health", ws.handleHealth).Methods("GET")

	api := ws.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", ws.handleHealth).Methods("GET")
	api.HandleFunc("/portfolio/{address}", ws.handleGetPortfolio).Methods("GET")
	api.HandleFunc("/portfolio/{address}/latest", ws.handleGetLatestSnapshot).Methods("GET")
	api.HandleFunc("/portfolio/{address}/history", ws.handleGetHistory).Methods("GET")

	ws.router.Use(ws.corsMiddleware)
	ws.router.Use(ws.loggingMiddleware)
}

// Start starts the web server
func (ws *WebServer) Start() error {
	webLogger.Info().Str("port", ws.port).Msg("Starting web server")

	server := &http.Server{
		Addr:         ":" + ws.port,
		Handler:      ws.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server.ListenAndServe()
}

// Router exposes the handler for tests.
func (ws *WebServer) Router() http.Handler {
	return ws.router
}

// handleHealth returns server health status
func (ws *WebServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if state.DB != nil {
		if err := state.DB.Ping(); err != nil {
			status["status"] = "degraded"
			status["database"] = err.Error()
		} else {
			status["database"] = "ok"
		}
	}
	ws.writeJSON(w, http.StatusOK, status)
}

// handleGetPortfolio fetches a fresh ledger bundle and evaluates it on demand.
func (ws *WebServer) handleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	address, ok := ws.requireAddress(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), config.FetchTimeout)
	defer cancel()

	bundle, err := ws.fetcher.FetchBundle(ctx, address)
	if err != nil {
		webLogger.Error().Err(err).Str("address", address).Msg("Bundle fetch failed")
		ws.writeError(w, http.StatusBadGateway, "ledger fetch failed")
		return
	}

	metrics, err := analyzer.EvaluatePortfolio(bundle, time.Now().UTC())
	if err != nil {
		webLogger.Error().Err(err).Str("address", address).Msg("Portfolio evaluation failed")
		ws.writeError(w, http.StatusInternalServerError, "portfolio evaluation failed")
		return
	}

	ws.writeJSON(w, http.StatusOK, metrics)
}

// handleGetLatestSnapshot returns the most recent stored evaluation.
func (ws *WebServer) handleGetLatestSnapshot(w http.ResponseWriter, r *http.Request) {
	address, ok := ws.requireAddress(w, r)
	if !ok {
		return
	}

	metrics, err := state.GetLatestSnapshot(address)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			ws.writeError(w, http.StatusNotFound, "no snapshots for address")
			return
		}
		webLogger.Error().Err(err).Str("address", address).Msg("Snapshot lookup failed")
		ws.writeError(w, http.StatusInternalServerError, "snapshot lookup failed")
		return
	}

	ws.writeJSON(w, http.StatusOK, metrics)
}

// handleGetHistory returns recent stored evaluations, newest first.
func (ws *WebServer) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	address, ok := ws.requireAddress(w, r)
	if !ok {
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			ws.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	snapshots, err := state.GetRecentSnapshots(address, limit)
	if err != nil {
		webLogger.Error().Err(err).Str("address", address).Msg("History lookup failed")
		ws.writeError(w, http.StatusInternalServerError, "history lookup failed")
		return
	}

	ws.writeJSON(w, http.StatusOK, map[string]interface{}{
		"address":   address,
		"snapshots": snapshots,
	})
}

// requireAddress validates and normalizes the address path variable.
func (ws *WebServer) requireAddress(w http.ResponseWriter, r *http.Request) (string, bool) {
	address := strings.ToLower(mux.Vars(r)["address"])
	if !config.IsValidAddress(address) {
		ws.writeError(w, http.StatusBadRequest, "invalid address")
		return "", false
	}
	return address, true
}

func (ws *WebServer) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		webLogger.Error().Err(err).Msg("Failed to encode response")
	}
}

func (ws *WebServer) writeError(w http.ResponseWriter, status int, message string) {
	ws.writeJSON(w, status, map[string]string{"error": message})
}

// corsMiddleware adds CORS headers for the dashboard frontend.
func (ws *WebServer) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs every request with timing.
func (ws *WebServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		webLogger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("duration", time.Since(start).String()).
			Msg("Request handled")
	})
}
