// pkg/splitter/splitter.go
package splitter

import (
	"errors"
	"math"
	"math/rand"
	"sort"

	"go.uber.org/zap"

	"github.com/advancementlab/donorpipe/pkg/model"
)

// Splitter partitions a table into disjoint training and testing
// subsets. Partition membership is fully determined by the input seed
// and fraction, which is what makes model-training runs auditable.
type Splitter struct {
	logger *zap.Logger
}

// NewSplitter creates a new Splitter
func NewSplitter(logger *zap.Logger) (*Splitter, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Splitter{logger: logger.Named("splitter")}, nil
}

// Split selects floor(rowCount * fraction) row indices without
// replacement using a PRNG seeded with seed. Training holds the
// selected rows and testing the complement, both in original row
// order. Two calls with identical inputs yield identical partitions.
func (s *Splitter) Split(t *model.Table, fraction float64, seed int64) (*model.Table, *model.Table, error) {
	if t == nil {
		return nil, nil, model.NewInvalidArgumentError("table", nil, "table cannot be nil")
	}
	if fraction <= 0 || fraction >= 1 {
		return nil, nil, model.NewInvalidArgumentError("fraction", fraction, "must be in the open interval (0,1)")
	}

	rowCount := t.Len()
	trainSize := int(math.Floor(float64(rowCount) * fraction))

	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(rowCount)

	trainIndices := append([]int(nil), perm[:trainSize]...)
	sort.Ints(trainIndices)

	selected := make(map[int]struct{}, trainSize)
	for _, idx := range trainIndices {
		selected[idx] = struct{}{}
	}

	testIndices := make([]int, 0, rowCount-trainSize)
	for i := 0; i < rowCount; i++ {
		if _, ok := selected[i]; !ok {
			testIndices = append(testIndices, i)
		}
	}

	training := t.Select(trainIndices)
	testing := t.Select(testIndices)

	s.logger.Info("Split table",
		zap.Int("rows", rowCount),
		zap.Float64("fraction", fraction),
		zap.Int64("seed", seed),
		zap.Int("trainingRows", training.Len()),
		zap.Int("testingRows", testing.Len()))

	return training, testing, nil
}
