// pkg/transformer/transformer.go
package transformer

import (
	"errors"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/advancementlab/donorpipe/pkg/model"
)

// Transformer applies numeric transforms to skewed columns. The
// caller decides which partition to transform; nothing here touches
// testing data on its own.
type Transformer struct {
	logger *zap.Logger
}

// NewTransformer creates a new Transformer
func NewTransformer(logger *zap.Logger) (*Transformer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Transformer{logger: logger.Named("transformer")}, nil
}

// LogTransform replaces every value v in the named column with
// ln(v+1). Missing values stay missing. Any value below -1 aborts
// with a DomainError and no partial table is returned.
func (tr *Transformer) LogTransform(t *model.Table, column string) (*model.Table, error) {
	col := t.ColumnByName(column)
	if col == nil {
		return nil, model.NewSchemaError(column)
	}

	// Validate the full column before touching anything
	values := make([]float64, 0, t.Len())
	for _, row := range t.Rows {
		if model.IsMissing(row[col.Name]) {
			continue
		}
		v, err := model.ToFloat(row[col.Name])
		if err != nil {
			return nil, &model.SchemaError{Column: col.Name, Reason: "contains non-numeric values"}
		}
		if v < -1 {
			return nil, &model.DomainError{
				Column: col.Name,
				Value:  v,
				Reason: "log1p is undefined below -1",
			}
		}
		values = append(values, v)
	}

	out := t.Clone()
	transformed := make([]float64, 0, len(values))
	for _, row := range out.Rows {
		if model.IsMissing(row[col.Name]) {
			continue
		}
		v, _ := model.ToFloat(row[col.Name])
		lv := math.Log1p(v)
		row[col.Name] = lv
		transformed = append(transformed, lv)
	}

	tr.logger.Info("Applied log transform",
		zap.String("column", col.Name),
		zap.Int("values", len(values)),
		zap.Float64("skewnessBefore", skewness(values)),
		zap.Float64("skewnessAfter", skewness(transformed)))

	return out, nil
}

// skewness returns the sample skewness of values, or 0 when there are
// too few values for the estimate to be defined
func skewness(values []float64) float64 {
	if len(values) < 3 {
		return 0
	}
	sk := stat.Skew(values, nil)
	if math.IsNaN(sk) {
		return 0
	}
	return sk
}
