// pkg/cleaner/cleaner.go
package cleaner

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/advancementlab/donorpipe/pkg/model"
)

const (
	// ColumnAge is the donor age column
	ColumnAge = "age"
	// ColumnAgeBin is the ordered age-bracket label column
	ColumnAgeBin = "age_bin"
	// ColumnDonorCode is the donor relationship-type column
	ColumnDonorCode = "donor_code"

	// UnknownAgeBin is the sentinel bracket for rows with missing age
	UnknownAgeBin = "Unknown"
)

// DataCleaner normalizes raw fields of a loaded table into
// analysis-ready types. Every stage returns a new table and records a
// CleaningOperation per mutated cell.
type DataCleaner struct {
	logger  *zap.Logger
	dataset string
	audit   AuditSink
}

// Option configures a DataCleaner
type Option func(*DataCleaner)

// WithAuditSink attaches a sink that persists cleaning operations
func WithAuditSink(sink AuditSink) Option {
	return func(c *DataCleaner) {
		c.audit = sink
	}
}

// NewDataCleaner creates a new DataCleaner for the named dataset
func NewDataCleaner(dataset string, logger *zap.Logger, opts ...Option) (*DataCleaner, error) {
	if dataset == "" {
		return nil, errors.New("dataset name cannot be empty")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	cleaner := &DataCleaner{
		logger:  logger.Named("cleaner"),
		dataset: dataset,
	}
	for _, opt := range opts {
		opt(cleaner)
	}

	return cleaner, nil
}

// NormalizeAge treats the zero sentinel in the age column as missing
// and forces the age bracket to "Unknown" for every row with a
// missing age. Total over the row set; never fails on row content.
func (c *DataCleaner) NormalizeAge(ctx context.Context, t *model.Table) (*model.Table, error) {
	if !t.HasColumn(ColumnAge) {
		return nil, model.NewSchemaError(ColumnAge)
	}
	if !t.HasColumn(ColumnAgeBin) {
		return nil, model.NewSchemaError(ColumnAgeBin)
	}

	out := t.Clone()
	var operations []model.CleaningOperation

	for i, row := range out.Rows {
		rowID := strconv.Itoa(i)

		if age, err := model.ToFloat(row[ColumnAge]); err == nil && age == 0 {
			row[ColumnAge] = nil
			operations = append(operations, model.CleaningOperation{
				Dataset:       c.dataset,
				ColumnName:    ColumnAge,
				OriginalValue: float64(0),
				NewValue:      "",
				RowIdentifier: rowID,
				Operation:     "sentinel_to_missing",
				Reason:        "zero_is_not_a_valid_age",
				CleanedAt:     time.Now(),
			})
		}

		if model.IsMissing(row[ColumnAge]) && model.ToString(row[ColumnAgeBin]) != UnknownAgeBin {
			original := row[ColumnAgeBin]
			row[ColumnAgeBin] = UnknownAgeBin
			operations = append(operations, model.CleaningOperation{
				Dataset:       c.dataset,
				ColumnName:    ColumnAgeBin,
				OriginalValue: original,
				NewValue:      UnknownAgeBin,
				RowIdentifier: rowID,
				Operation:     "bracket_reassignment",
				Reason:        "missing_age_forces_unknown_bracket",
				CleanedAt:     time.Now(),
			})
		}
	}

	if err := c.recordOperations(ctx, operations); err != nil {
		return out, err
	}

	c.logger.Info("Normalized age column",
		zap.Int("rows", out.Len()),
		zap.Int("mutations", len(operations)))
	return out, nil
}

// CastCategories converts the named free-text columns into category
// columns whose level set is the distinct labels observed. Columns
// present in ordered keep the caller-declared level order (or the
// natural sort order of observed labels when the declared order is
// nil); all others are unordered.
func (c *DataCleaner) CastCategories(
	t *model.Table,
	columns []string,
	ordered map[string][]string,
) (*model.Table, error) {
	out := t.Clone()

	for _, name := range columns {
		col := out.ColumnByName(name)
		if col == nil {
			return nil, model.NewSchemaError(name)
		}

		observed := distinctLabels(out, col.Name)

		declared, isOrdered := ordered[name]
		var levels []string
		switch {
		case isOrdered && len(declared) > 0:
			levels = mergeLevels(declared, observed)
		case isOrdered:
			levels = append([]string(nil), observed...)
			sort.Strings(levels)
		default:
			levels = append([]string(nil), observed...)
			sort.Strings(levels)
		}

		col.Kind = model.KindCategory
		if isOrdered {
			col.Category = model.NewOrderedCategory(levels)
		} else {
			col.Category = model.NewCategory(levels)
		}

		c.logger.Debug("Cast column to category",
			zap.String("column", col.Name),
			zap.Int("levels", len(levels)),
			zap.Bool("ordered", isOrdered))
	}

	return out, nil
}

// RelabelDonorCode collapses the fine-grained donor-code category into
// the coarser label set produced by ConvertDonorLabel. The mapping is
// computed once per distinct label and reused across rows.
func (c *DataCleaner) RelabelDonorCode(ctx context.Context, t *model.Table) (*model.Table, error) {
	col := t.ColumnByName(ColumnDonorCode)
	if col == nil {
		return nil, model.NewSchemaError(ColumnDonorCode)
	}

	out := t.Clone()

	// Pure function over the finite label set, so memoizing per
	// distinct label is equivalent to applying it per row.
	mapping := make(map[string]string)
	for _, label := range distinctLabels(out, ColumnDonorCode) {
		mapping[label] = ConvertDonorLabel(label)
	}

	var operations []model.CleaningOperation
	for i, row := range out.Rows {
		original := model.ToString(row[ColumnDonorCode])
		if model.IsMissing(row[ColumnDonorCode]) {
			continue
		}
		relabeled := mapping[original]
		if relabeled == original {
			continue
		}
		row[ColumnDonorCode] = relabeled
		operations = append(operations, model.CleaningOperation{
			Dataset:       c.dataset,
			ColumnName:    ColumnDonorCode,
			OriginalValue: original,
			NewValue:      relabeled,
			RowIdentifier: strconv.Itoa(i),
			Operation:     "label_collapse",
			Reason:        "donor_code_lumping",
			CleanedAt:     time.Now(),
		})
	}

	// Rebuild the category over the surviving labels
	outCol := out.ColumnByName(ColumnDonorCode)
	outCol.Kind = model.KindCategory
	outCol.Category = model.NewCategory(distinctLabels(out, ColumnDonorCode))
	sort.Strings(outCol.Category.Levels)

	if err := c.recordOperations(ctx, operations); err != nil {
		return out, err
	}

	c.logger.Info("Relabeled donor codes",
		zap.Int("distinctInputLabels", len(mapping)),
		zap.Int("distinctOutputLabels", len(outCol.Category.Levels)),
		zap.Int("mutations", len(operations)))
	return out, nil
}

// recordOperations persists cleaning operations through the configured
// sink, if any
func (c *DataCleaner) recordOperations(ctx context.Context, operations []model.CleaningOperation) error {
	if c.audit == nil || len(operations) == 0 {
		return nil
	}
	if err := c.audit.Record(ctx, operations); err != nil {
		return fmt.Errorf("failed to record cleaning operations: %w", err)
	}
	return nil
}

// distinctLabels returns the distinct non-missing string labels
// observed in a column, in first-seen order
func distinctLabels(t *model.Table, column string) []string {
	seen := make(map[string]struct{})
	var labels []string
	for _, row := range t.Rows {
		if model.IsMissing(row[column]) {
			continue
		}
		label := model.ToString(row[column])
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		labels = append(labels, label)
	}
	return labels
}

// mergeLevels keeps the declared order and appends any observed labels
// the caller did not declare
func mergeLevels(declared, observed []string) []string {
	levels := append([]string(nil), declared...)
	known := make(map[string]struct{}, len(declared))
	for _, level := range declared {
		known[level] = struct{}{}
	}
	for _, label := range observed {
		if _, ok := known[label]; !ok {
			levels = append(levels, label)
		}
	}
	return levels
}
