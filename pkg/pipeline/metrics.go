// pkg/pipeline/metrics.go
package pipeline

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// RunMetrics tracks counters for one pipeline run
type RunMetrics struct {
	mu             sync.Mutex
	logger         *zap.Logger
	StartTime      time.Time
	EndTime        time.Time
	RowsLoaded     int
	RowsCleaned    int
	ParseFailures  int
	CompletedJobs  int
	FailedJobs     int
	JobDurations   map[string]time.Duration
	WorkerJobCount map[int]int
}

// NewRunMetrics creates a new metrics tracker
func NewRunMetrics(logger *zap.Logger) *RunMetrics {
	return &RunMetrics{
		logger:         logger,
		StartTime:      time.Now(),
		JobDurations:   make(map[string]time.Duration),
		WorkerJobCount: make(map[int]int),
	}
}

// RecordRows records how many rows a stage processed
func (m *RunMetrics) RecordRows(loaded, cleaned int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RowsLoaded += loaded
	m.RowsCleaned += cleaned
}

// RecordParseFailures adds to the parse-failure count
func (m *RunMetrics) RecordParseFailures(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ParseFailures += count
}

// RecordJob records one finished report job
func (m *RunMetrics) RecordJob(workerID int, jobID string, duration time.Duration, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.JobDurations[jobID] = duration
	m.WorkerJobCount[workerID]++
	if success {
		m.CompletedJobs++
	} else {
		m.FailedJobs++
	}
}

// Finish stamps the end time and logs a run summary
func (m *RunMetrics) Finish() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.EndTime = time.Now()
	if m.logger == nil {
		return
	}
	m.logger.Info("Pipeline run finished",
		zap.Duration("elapsed", m.EndTime.Sub(m.StartTime)),
		zap.Int("rowsLoaded", m.RowsLoaded),
		zap.Int("rowsCleaned", m.RowsCleaned),
		zap.Int("parseFailures", m.ParseFailures),
		zap.Int("completedJobs", m.CompletedJobs),
		zap.Int("failedJobs", m.FailedJobs))
}

// Duration returns the total run duration so far
func (m *RunMetrics) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.EndTime.IsZero() {
		return time.Since(m.StartTime)
	}
	return m.EndTime.Sub(m.StartTime)
}
