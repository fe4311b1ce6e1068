// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package ops

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/forkcast/internal/metrics"
	"github.com/tomtom215/forkcast/internal/models"
	"github.com/tomtom215/forkcast/internal/recommend"
	"github.com/tomtom215/forkcast/internal/store"
)

type fixedStatus struct {
	report *recommend.RunReport
	err    error
}

func (f fixedStatus) LastRun() (*recommend.RunReport, error) {
	return f.report, f.err
}

// downStore fails every aggregate read.
type downStore struct {
	store.Store
}

func (downStore) GetAggregate(context.Context) (*models.Aggregate, error) {
	return nil, &store.DataAccessError{Op: "get aggregate", Err: errors.New("connection refused")}
}

func serve(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, http.NoBody))
	return rec
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()

	rec := serve(t, NewRouter(Options{Logger: zerolog.Nop()}), "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestRouter_Ready(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		store store.Store
		want  int
	}{
		{"store reachable", store.NewMemoryStore(), http.StatusOK},
		{"store down", downStore{Store: store.NewMemoryStore()}, http.StatusServiceUnavailable},
		{"no store", nil, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := serve(t, NewRouter(Options{Store: tt.store, Logger: zerolog.Nop()}), "/readyz")
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestRouter_Status(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		source     StatusSource
		wantStatus string
		wantRunID  string
		wantError  bool
	}{
		{"no source", nil, "pending", "", false},
		{"no run yet", fixedStatus{}, "pending", "", false},
		{"success", fixedStatus{report: &recommend.RunReport{RunID: "abc"}}, "success", "abc", false},
		{
			"failure",
			fixedStatus{
				report: &recommend.RunReport{RunID: "def"},
				err:    &recommend.StageError{Stage: "idf", Err: errors.New("boom")},
			},
			"failure", "def", true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := serve(t, NewRouter(Options{Status: tt.source, Logger: zerolog.Nop()}), "/status")
			if rec.Code != http.StatusOK {
				t.Fatalf("status code = %d", rec.Code)
			}

			var body statusResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", body.Status, tt.wantStatus)
			}
			if (body.Error != "") != tt.wantError {
				t.Errorf("error = %q, want error %v", body.Error, tt.wantError)
			}
			gotRunID := ""
			if body.LastRun != nil {
				gotRunID = body.LastRun.RunID
			}
			if gotRunID != tt.wantRunID {
				t.Errorf("run id = %q, want %q", gotRunID, tt.wantRunID)
			}
		})
	}
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()

	h := NewRouter(Options{MetricsPath: "/internal/metrics", Logger: zerolog.Nop()})
	rec := serve(t, h, "/internal/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "forkcast_pipeline_running") {
		t.Error("metrics output missing forkcast_pipeline_running")
	}

	if rec := serve(t, h, "/metrics"); rec.Code != http.StatusNotFound {
		t.Errorf("default path status = %d, want 404 when a custom path is set", rec.Code)
	}
}

// Not parallel: other tests also produce unmatched requests.
func TestRouter_RecordsRequests(t *testing.T) {
	h := NewRouter(Options{Logger: zerolog.Nop()})

	healthBefore := testutil.ToFloat64(metrics.OpsRequestsTotal.WithLabelValues(http.MethodGet, "/healthz", "200"))
	serve(t, h, "/healthz")
	if got := testutil.ToFloat64(metrics.OpsRequestsTotal.WithLabelValues(http.MethodGet, "/healthz", "200")) - healthBefore; got != 1 {
		t.Errorf("/healthz requests delta = %v, want 1", got)
	}

	before := testutil.ToFloat64(metrics.OpsRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404"))
	serve(t, h, "/does-not-exist")
	if got := testutil.ToFloat64(metrics.OpsRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404")) - before; got != 1 {
		t.Errorf("unmatched requests delta = %v, want 1", got)
	}
}
