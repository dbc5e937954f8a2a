package domain

import (
	"time"
)

// ProcedureID names one of the batch procedures
type ProcedureID string

const (
	ProcedureSelectColumns     ProcedureID = "select-columns"
	ProcedureCleanDemographics ProcedureID = "clean-demographics"
	ProcedureNormalizeConflict ProcedureID = "normalize-conflict"
	ProcedureAggregateIDP      ProcedureID = "aggregate-idp"
	ProcedureMergeMonthly      ProcedureID = "merge"
)

// RunStatus represents the status of a procedure run
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// ProcedureRun records one invocation of a procedure
type ProcedureRun struct {
	ID          string      `json:"id" validate:"required,uuid"`
	Procedure   ProcedureID `json:"procedure" validate:"required"`
	Status      RunStatus   `json:"status"`
	Inputs      []string    `json:"inputs"`
	Output      string      `json:"output"`
	StartedAt   time.Time   `json:"started_at"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
	RowsRead    int         `json:"rows_read"`
	RowsWritten int         `json:"rows_written"`
	Rejections  []Rejection `json:"rejections,omitempty"`
	Error       string      `json:"error,omitempty"`
}

// Duration returns the elapsed run time, or zero while running
func (r *ProcedureRun) Duration() time.Duration {
	if r.CompletedAt == nil {
		return 0
	}
	return r.CompletedAt.Sub(r.StartedAt)
}

// RejectReason explains why a row was dropped
type RejectReason string

const (
	RejectMissingValue RejectReason = "missing_value"
	RejectNotNumeric   RejectReason = "not_numeric"
	RejectMissingDate  RejectReason = "missing_date"
)

// Rejection records a dropped input row. Row is the zero-based data row
// position in the input; Column and Value identify the offending cell.
type Rejection struct {
	Row    int          `json:"row" csv:"row"`
	Column string       `json:"column" csv:"column"`
	Value  string       `json:"value" csv:"value"`
	Reason RejectReason `json:"reason" csv:"reason"`
}

// CountByReason tallies rejections per reason
func CountByReason(rejections []Rejection) map[string]int {
	counts := make(map[string]int)
	for _, r := range rejections {
		counts[string(r.Reason)]++
	}
	return counts
}
