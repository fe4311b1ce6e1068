// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package recommend

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestStageNames(t *testing.T) {
	t.Parallel()

	names := StageNames()
	if len(names) != 11 {
		t.Fatalf("len(StageNames()) = %d, want 11", len(names))
	}
	if names[0] != StageClear || names[len(names)-1] != StageContentBased {
		t.Errorf("unexpected stage order: %v", names)
	}

	// The idf stage must precede every stage that reads ingredient weights.
	pos := make(map[string]int, len(names))
	for i, n := range names {
		if _, dup := pos[n]; dup {
			t.Errorf("duplicate stage %q", n)
		}
		pos[n] = i
	}
	if pos[StageIDF] > pos[StageSimilarItems] || pos[StageIDF] > pos[StageContentBased] {
		t.Errorf("idf stage out of order: %v", names)
	}
	if pos[StageItemAverages] > pos[StageBestRated] {
		t.Errorf("item averages must run before best-rated: %v", names)
	}
	if pos[StageCollaborative] > pos[StageContentBased] {
		t.Errorf("collaborative must run before content-based: %v", names)
	}
}

func TestStageError(t *testing.T) {
	t.Parallel()

	err := &StageError{Stage: StageSimilarUsers, Err: context.DeadlineExceeded}

	if got, want := err.Error(), "stage similar-users: context deadline exceeded"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("errors.Is should see the wrapped cause")
	}
}

func TestRunReport(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	full := make([]StageReport, 0, len(StageNames()))
	for _, n := range StageNames() {
		full = append(full, StageReport{Name: n})
	}

	tests := []struct {
		name   string
		stages []StageReport
		want   bool
	}{
		{name: "all stages ok", stages: full, want: true},
		{name: "no stages", stages: nil, want: false},
		{name: "partial run", stages: full[:4], want: false},
		{
			name: "failed last stage",
			stages: append(append([]StageReport(nil), full[:10]...),
				StageReport{Name: StageContentBased, Error: "boom"}),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := &RunReport{Started: start, Finished: start.Add(90 * time.Second), Stages: tt.stages}
			if got := r.Succeeded(); got != tt.want {
				t.Errorf("Succeeded() = %v, want %v", got, tt.want)
			}
			if r.Duration() != 90*time.Second {
				t.Errorf("Duration() = %v, want 90s", r.Duration())
			}
		})
	}
}
