// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package recommend

import (
	"errors"
	"fmt"
	"time"
)

// Stage names, in run order.
const (
	StageClear         = "clear"
	StageUserAverages  = "user-averages"
	StageMostFavorited = "most-favorited"
	StageItemAverages  = "item-averages"
	StageBestRated     = "best-rated"
	StageInteresting   = "interesting"
	StageSimilarUsers  = "similar-users"
	StageIDF           = "idf"
	StageSimilarItems  = "similar-items"
	StageCollaborative = "collaborative"
	StageContentBased  = "content-based"
)

// StageNames returns every stage name in run order.
func StageNames() []string {
	return []string{
		StageClear,
		StageUserAverages,
		StageMostFavorited,
		StageItemAverages,
		StageBestRated,
		StageInteresting,
		StageSimilarUsers,
		StageIDF,
		StageSimilarItems,
		StageCollaborative,
		StageContentBased,
	}
}

// ErrRunInProgress is returned when Run is called while another run of the
// same pipeline has not finished.
var ErrRunInProgress = errors.New("pipeline run already in progress")

// StageError reports the stage a run failed in.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// StageReport describes one completed (or failed) stage.
type StageReport struct {
	// Name is the stage name.
	Name string `json:"name"`

	// Duration is the wall time spent in the stage.
	Duration time.Duration `json:"duration"`

	// Entities is the number of records the stage wrote, or for the idf
	// stage the number of indexed ingredients.
	Entities int `json:"entities"`

	// Error is set when the stage failed.
	Error string `json:"error,omitempty"`
}

// RunReport summarizes a pipeline run.
type RunReport struct {
	// RunID uniquely identifies the run in logs.
	RunID string `json:"run_id"`

	Started  time.Time `json:"started"`
	Finished time.Time `json:"finished"`

	// Stages lists the stages that ran, in order. A failed run ends with
	// the failing stage.
	Stages []StageReport `json:"stages"`
}

// Duration returns the total run time.
func (r *RunReport) Duration() time.Duration {
	return r.Finished.Sub(r.Started)
}

// Succeeded reports whether every stage ran without error.
func (r *RunReport) Succeeded() bool {
	if len(r.Stages) != len(StageNames()) {
		return false
	}
	for _, s := range r.Stages {
		if s.Error != "" {
			return false
		}
	}
	return true
}
