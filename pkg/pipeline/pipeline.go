// pkg/pipeline/pipeline.go
package pipeline

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/advancementlab/donorpipe/pkg/cleaner"
	"github.com/advancementlab/donorpipe/pkg/model"
	"github.com/advancementlab/donorpipe/pkg/report"
	"github.com/advancementlab/donorpipe/pkg/splitter"
	"github.com/advancementlab/donorpipe/pkg/transformer"
)

// ColumnLifetimeGiving is the skewed donor column the training
// partition's log transform applies to
const ColumnLifetimeGiving = "lifetime_giving"

// Manager orchestrates the two pipelines: the donor preparation
// pipeline (clean, split, transform) and the contact-report pipeline
// (clean, aggregate). The pipelines are independent and share no
// state.
type Manager struct {
	cleaner     *cleaner.DataCleaner
	splitter    *splitter.Splitter
	transformer *transformer.Transformer
	reporter    *report.Reporter
	metrics     *RunMetrics
	logger      *zap.Logger
	workerCount int
}

// NewManager creates a pipeline manager
func NewManager(
	dataCleaner *cleaner.DataCleaner,
	split *splitter.Splitter,
	transform *transformer.Transformer,
	reporter *report.Reporter,
	logger *zap.Logger,
) (*Manager, error) {
	if dataCleaner == nil || split == nil || transform == nil || reporter == nil {
		return nil, errors.New("all pipeline components are required")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	workerCount := runtime.NumCPU()
	if workerCount > 4 {
		workerCount = 4
	}

	return &Manager{
		cleaner:     dataCleaner,
		splitter:    split,
		transformer: transform,
		reporter:    reporter,
		metrics:     NewRunMetrics(logger),
		logger:      logger.Named("pipeline"),
		workerCount: workerCount,
	}, nil
}

// Metrics returns the run metrics tracker
func (m *Manager) Metrics() *RunMetrics {
	return m.metrics
}

// DonorResult holds the outputs of the donor preparation pipeline
type DonorResult struct {
	Training *model.Table
	Testing  *model.Table
}

// PrepareDonors runs the donor pipeline: normalize the age sentinel,
// cast the categorical columns, collapse the donor codes, split, and
// log-transform the giving column on the training partition only.
func (m *Manager) PrepareDonors(ctx context.Context, t *model.Table, fraction float64, seed int64) (*DonorResult, error) {
	m.metrics.RecordRows(t.Len(), 0)

	cleaned, err := m.cleaner.NormalizeAge(ctx, t)
	if err != nil {
		return nil, err
	}

	cleaned, err = m.cleaner.CastCategories(cleaned,
		[]string{"gender", "address_type", cleaner.ColumnAgeBin},
		map[string][]string{cleaner.ColumnAgeBin: nil})
	if err != nil {
		return nil, err
	}

	cleaned, err = m.cleaner.RelabelDonorCode(ctx, cleaned)
	if err != nil {
		return nil, err
	}
	m.metrics.RecordRows(0, cleaned.Len())

	training, testing, err := m.splitter.Split(cleaned, fraction, seed)
	if err != nil {
		return nil, err
	}

	// Testing data stays on the original scale
	training, err = m.transformer.LogTransform(training, ColumnLifetimeGiving)
	if err != nil {
		return nil, err
	}

	m.logger.Info("Prepared donor dataset",
		zap.Int("trainingRows", training.Len()),
		zap.Int("testingRows", testing.Len()))
	return &DonorResult{Training: training, Testing: testing}, nil
}

// PrepareReports runs the contact-report cleaning stage: parse the
// textual dates once and derive the month category. Parse failures
// are collected, not fatal.
func (m *Manager) PrepareReports(t *model.Table) (*model.Table, []model.ParseFailure, error) {
	m.metrics.RecordRows(t.Len(), 0)

	parsed, failures, err := m.reporter.ParseDates(t)
	if err != nil {
		return nil, nil, err
	}
	m.metrics.RecordRows(0, parsed.Len())
	m.metrics.RecordParseFailures(len(failures))

	return parsed, failures, nil
}

// RunReports executes the given report jobs over a parsed table using
// the worker pool and returns one result per job, in completion
// order. Individual job failures are reported in their result; the
// run itself only fails on context cancellation.
func (m *Manager) RunReports(ctx context.Context, t *model.Table, jobs []ReportJob) ([]ReportResult, error) {
	if len(jobs) == 0 {
		return nil, nil
	}

	jobQueue := make(chan ReportJob, len(jobs))
	resultQueue := make(chan ReportResult, len(jobs))

	workerCount := m.workerCount
	if workerCount > len(jobs) {
		workerCount = len(jobs)
	}

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		w := newWorker(i, m.reporter, m.metrics, m.logger)
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.run(ctx, t, jobQueue, resultQueue)
		}()
	}

	for _, job := range jobs {
		jobQueue <- job
	}
	close(jobQueue)

	go func() {
		wg.Wait()
		close(resultQueue)
	}()

	results := make([]ReportResult, 0, len(jobs))
	for result := range resultQueue {
		results = append(results, result)
	}

	if err := ctx.Err(); err != nil {
		return results, err
	}

	m.logger.Info("Report jobs finished",
		zap.Int("jobs", len(jobs)),
		zap.Int("results", len(results)))
	return results, nil
}
