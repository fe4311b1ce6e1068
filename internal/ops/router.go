// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package ops

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/tomtom215/forkcast/internal/recommend"
	"github.com/tomtom215/forkcast/internal/store"
)

// StatusSource reports the most recent pipeline run.
type StatusSource interface {
	LastRun() (*recommend.RunReport, error)
}

// Options configures the ops router.
type Options struct {
	// MetricsPath serves the Prometheus registry. Default: /metrics
	MetricsPath string

	// Store is probed by /readyz.
	Store store.Store

	// Status backs /status. Optional.
	Status StatusSource

	// ReadyTimeout bounds the readiness probe. Default: 2s
	ReadyTimeout time.Duration

	Logger zerolog.Logger
}

// NewRouter builds the ops HTTP handler.
//
//	GET /healthz   process is up
//	GET /readyz    store answers within ReadyTimeout
//	GET /status    last run report
//	GET /metrics   Prometheus exposition
func NewRouter(opts Options) http.Handler {
	if opts.MetricsPath == "" {
		opts.MetricsPath = "/metrics"
	}
	if opts.ReadyTimeout <= 0 {
		opts.ReadyTimeout = 2 * time.Second
	}
	h := &handler{opts: opts, logger: opts.Logger.With().Str("component", "ops").Logger()}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestMetrics)

	r.Get("/healthz", h.health)
	r.Get("/readyz", h.ready)
	r.Get("/status", h.status)
	r.Handle(opts.MetricsPath, promhttp.Handler())

	return r
}

type handler struct {
	opts   Options
	logger zerolog.Logger
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) ready(w http.ResponseWriter, r *http.Request) {
	if h.opts.Store == nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": "no store"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.opts.ReadyTimeout)
	defer cancel()

	if _, err := h.opts.Store.GetAggregate(ctx); err != nil {
		h.logger.Warn().Err(err).Msg("readiness probe failed")
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// statusResponse is the /status body.
type statusResponse struct {
	Status    string               `json:"status"` // "pending", "success", "failure"
	Error     string               `json:"error,omitempty"`
	LastRun   *recommend.RunReport `json:"last_run,omitempty"`
	Timestamp time.Time            `json:"timestamp"`
}

func (h *handler) status(w http.ResponseWriter, _ *http.Request) {
	resp := statusResponse{Status: "pending", Timestamp: time.Now().UTC()}
	if h.opts.Status != nil {
		report, err := h.opts.Status.LastRun()
		resp.LastRun = report
		switch {
		case err != nil:
			resp.Status = "failure"
			resp.Error = err.Error()
		case report != nil:
			resp.Status = "success"
		}
	}
	respondJSON(w, http.StatusOK, resp)
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body) //nolint:errcheck // client went away
}
