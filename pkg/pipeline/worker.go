// pkg/pipeline/worker.go
package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/advancementlab/donorpipe/pkg/model"
	"github.com/advancementlab/donorpipe/pkg/report"
)

// worker runs report jobs from the queue. Running jobs concurrently is
// safe because every reporter stage returns a new table value; the
// shared input table is never mutated.
type worker struct {
	id       int
	reporter *report.Reporter
	metrics  *RunMetrics
	logger   *zap.Logger
}

func newWorker(id int, reporter *report.Reporter, metrics *RunMetrics, logger *zap.Logger) *worker {
	return &worker{
		id:       id,
		reporter: reporter,
		metrics:  metrics,
		logger:   logger.Named("worker").With(zap.Int("workerID", id)),
	}
}

// run consumes jobs until the queue closes or the context is cancelled
func (w *worker) run(ctx context.Context, table *model.Table, jobs <-chan ReportJob, results chan<- ReportResult) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			result := w.runJob(table, job)
			w.metrics.RecordJob(w.id, job.ID, result.Duration, result.Success())
			select {
			case results <- result:
			case <-ctx.Done():
				return
			}
		}
	}
}

// runJob executes one parameterized report over the parsed table
func (w *worker) runJob(table *model.Table, job ReportJob) ReportResult {
	start := time.Now()
	result := ReportResult{
		JobID:     job.ID,
		EndPeriod: job.EndPeriod,
		Group:     job.Group,
	}

	w.logger.Info("Running report job",
		zap.String("job", job.Name()),
		zap.String("jobID", job.ID))

	filtered, err := w.reporter.FilterByGroup(table, job.Group)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	summary, err := w.reporter.SummaryByStaffAndType(filtered, job.EndPeriod)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}
	result.Summary = summary

	outcomes, err := w.reporter.ReachAndOutcomes(filtered)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}
	result.Outcomes = outcomes

	activity, err := w.reporter.CumulativeActivity(filtered)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}
	result.Activity = activity

	// Reference line uses all staff, not the filtered group
	average, err := w.reporter.AverageReportsPerStaff(table)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}
	result.AverageReports = average

	result.Duration = time.Since(start)
	return result
}
