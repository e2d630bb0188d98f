package models

import (
	"time"

	"github.com/checkflac/checkflac/internal/report"
)

// CheckRun statuses.
const (
	StatusRunning = "running"
	StatusDone    = "done"
)

// CheckRun represents one asynchronous validation request and its outcome.
// The report is only populated once the run is done.
type CheckRun struct {
	ID         string         `json:"id"`
	Roots      []string       `json:"roots"`
	Status     string         `json:"status"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt *time.Time     `json:"finished_at,omitempty"`
	Report     *report.Report `json:"report,omitempty"`
}
