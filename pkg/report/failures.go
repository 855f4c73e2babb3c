// pkg/report/failures.go
package report

import (
	"sync"

	"go.uber.org/zap"

	"github.com/advancementlab/donorpipe/pkg/model"
)

// FailureCollector accumulates per-row parse failures so one
// malformed date never halts a whole report. Counts are unbounded;
// stored samples are capped so a badly mangled file cannot exhaust
// memory.
type FailureCollector struct {
	mu         sync.Mutex
	logger     *zap.Logger
	count      int
	samples    []model.ParseFailure
	maxSamples int
}

// NewFailureCollector creates a collector keeping up to maxSamples
// sample failures
func NewFailureCollector(logger *zap.Logger, maxSamples int) *FailureCollector {
	if maxSamples <= 0 {
		maxSamples = 25
	}
	return &FailureCollector{
		logger:     logger,
		samples:    make([]model.ParseFailure, 0, maxSamples),
		maxSamples: maxSamples,
	}
}

// Record saves a parse failure
func (fc *FailureCollector) Record(failure model.ParseFailure) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	fc.count++
	if len(fc.samples) < fc.maxSamples {
		fc.samples = append(fc.samples, failure)
	}

	if fc.logger != nil {
		fc.logger.Debug("Recorded parse failure",
			zap.Int("row", failure.RowIndex),
			zap.String("column", failure.Column),
			zap.String("input", failure.Input))
	}
}

// Count returns the total number of failures recorded
func (fc *FailureCollector) Count() int {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.count
}

// Samples returns a copy of the stored sample failures
func (fc *FailureCollector) Samples() []model.ParseFailure {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	out := make([]model.ParseFailure, len(fc.samples))
	copy(out, fc.samples)
	return out
}
