// Package importer runs asynchronous bulk CSV imports: an operator drops a
// batch of exported stat files on the server and queues a job per match
// side; a background worker parses and persists them.
package importer

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/youngbuffalo/scoreline/internal/store"
)

// JobStatus represents the lifecycle state for a job.
type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCancelled JobStatus = "cancelled"
)

// Job models the database representation of an import job.
type Job struct {
	JobID           int            `json:"job_id"`
	MatchID         string         `json:"match_id"`
	Team            store.TeamSide `json:"team"`
	FilePaths       pq.StringArray `json:"file_paths"`
	Status          JobStatus      `json:"status"`
	StatusMessage   sql.NullString `json:"status_message"`
	ProgressCurrent int            `json:"progress_current"`
	ProgressTotal   int            `json:"progress_total"`
	LastError       sql.NullString `json:"last_error,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	StartedAt       sql.NullTime   `json:"started_at,omitempty"`
	CompletedAt     sql.NullTime   `json:"completed_at,omitempty"`
}

// Reporter receives progress callbacks from the runner.
type Reporter interface {
	OnFileStart(path string, index, total int)
	OnFileDone(path string, rows int, index, total int)
	OnJobError(err error)
}

// StatusSummary is returned to API callers.
type StatusSummary struct {
	ActiveJob *Job   `json:"active_job,omitempty"`
	History   []*Job `json:"recent_jobs,omitempty"`
}
