// pkg/loader/loader.go
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/advancementlab/donorpipe/pkg/model"
)

// Loader reads a delimited file into a typed table. Column types are
// inferred from the observed values: a column where every non-missing
// value parses as a number becomes numeric, one where every value
// parses as an ISO date becomes a date column, everything else stays
// text. Ambiguous slash-separated dates deliberately stay text; the
// reporter owns their format priority.
type Loader struct {
	logger    *zap.Logger
	delimiter rune
}

// Option configures a Loader
type Option func(*Loader)

// WithDelimiter overrides the default comma delimiter
func WithDelimiter(delimiter rune) Option {
	return func(l *Loader) {
		l.delimiter = delimiter
	}
}

// NewLoader creates a new Loader
func NewLoader(logger *zap.Logger, opts ...Option) (*Loader, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	l := &Loader{
		logger:    logger.Named("loader"),
		delimiter: ',',
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// LoadFile reads a delimited file from disk
func (l *Loader) LoadFile(path string) (*model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	table, err := l.Load(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return table, nil
}

// Load reads delimited records from r. The first record is the header.
func (l *Loader) Load(r io.Reader) (*model.Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = l.delimiter
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read delimited data: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("input has no header record")
	}

	header := records[0]
	kinds := inferKinds(header, records[1:])

	columns := make([]model.Column, len(header))
	for i, name := range header {
		columns[i] = model.Column{Name: strings.TrimSpace(name), Kind: kinds[i]}
	}

	table := model.NewTable(columns)
	for _, record := range records[1:] {
		row := make(model.Row, len(header))
		for i, col := range columns {
			if i >= len(record) {
				row[col.Name] = nil
				continue
			}
			row[col.Name] = coerce(record[i], col.Kind)
		}
		table.Rows = append(table.Rows, row)
	}

	l.logger.Info("Loaded delimited data",
		zap.Int("rows", table.Len()),
		zap.Int("columns", len(columns)))
	return table, nil
}

// inferKinds decides a kind per column from the observed values
func inferKinds(header []string, records [][]string) []model.ColumnKind {
	kinds := make([]model.ColumnKind, len(header))
	for i := range header {
		numeric, date, observed := true, true, false
		for _, record := range records {
			if i >= len(record) || model.IsMissing(record[i]) {
				continue
			}
			observed = true
			value := strings.TrimSpace(record[i])
			if _, err := strconv.ParseFloat(value, 64); err != nil {
				numeric = false
			}
			if _, err := time.Parse("2006-01-02", value); err != nil {
				date = false
			}
			if !numeric && !date {
				break
			}
		}
		switch {
		case observed && numeric:
			kinds[i] = model.KindNumber
		case observed && date:
			kinds[i] = model.KindDate
		default:
			kinds[i] = model.KindText
		}
	}
	return kinds
}

// coerce converts a raw field into the typed cell value for its kind
func coerce(raw string, kind model.ColumnKind) interface{} {
	if model.IsMissing(raw) {
		return nil
	}
	value := strings.TrimSpace(raw)
	switch kind {
	case model.KindNumber:
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	case model.KindDate:
		if t, err := time.Parse("2006-01-02", value); err == nil {
			return t
		}
	}
	return value
}
