// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"time"

	"github.com/pdiddy/pure-import/pkg/types"
)

// Status is the final state of one record.
type Status string

// Record statuses.
const (
	StatusSubmitted Status = "submitted"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Stage names the pipeline step an outcome ended at.
type Stage string

// Pipeline stages, in execution order.
const (
	StageValidate  Stage = "validate"
	StageReconcile Stage = "reconcile"
	StageEnrich    Stage = "enrich"
	StageAssemble  Stage = "assemble"
	StageSubmit    Stage = "submit"
)

// Outcome is the result of processing one record.
type Outcome struct {
	RecordID string
	Title    string
	Type     types.OutputType
	Status   Status

	// Stage is set for skipped and failed outcomes.
	Stage Stage
	Err   error

	Internal      int
	External      int
	Dropped       int
	Organizations int
	JournalUUID   string

	ResearchOutputUUID string
	PayloadPath        string
}

// BatchResult holds the outcome of a batch import run.
type BatchResult struct {
	RunID     string
	Submitted int
	Skipped   int
	Failed    int
	Outcomes  []Outcome
	Started   time.Time
	Finished  time.Time
}

// Total returns the number of records processed.
func (r BatchResult) Total() int {
	return r.Submitted + r.Skipped + r.Failed
}

// HasFailures reports whether any record failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

func (r *BatchResult) add(o Outcome) {
	switch o.Status {
	case StatusSubmitted:
		r.Submitted++
	case StatusSkipped:
		r.Skipped++
	default:
		r.Failed++
	}
	r.Outcomes = append(r.Outcomes, o)
}
