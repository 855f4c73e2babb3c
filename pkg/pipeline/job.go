// pkg/pipeline/job.go
package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/advancementlab/donorpipe/pkg/report"
)

// ReportJob represents one parameterized report run
type ReportJob struct {
	ID        string    // Unique job identifier
	EndPeriod string    // Cutoff month label
	Group     string    // Department label to filter by
	CreatedAt time.Time // Job creation timestamp
}

// NewReportJob creates a new report job with a generated ID
func NewReportJob(endPeriod, group string) ReportJob {
	return ReportJob{
		ID:        uuid.New().String(),
		EndPeriod: endPeriod,
		Group:     group,
		CreatedAt: time.Now(),
	}
}

// Name returns a human-readable job label
func (j ReportJob) Name() string {
	return fmt.Sprintf("%s/%s", j.Group, j.EndPeriod)
}

// ReportResult holds the outputs of one report job
type ReportResult struct {
	JobID          string
	EndPeriod      string
	Group          string
	Summary        *report.CrossTab
	Outcomes       []report.StaffOutcome
	Activity       []report.ActivityPoint
	AverageReports float64
	Duration       time.Duration
	Err            error
}

// Success reports whether the job completed without an aborting error
func (r ReportResult) Success() bool {
	return r.Err == nil
}
