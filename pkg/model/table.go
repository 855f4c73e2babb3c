// pkg/model/table.go
package model

import (
	"fmt"
	"strings"
)

// ColumnKind identifies the inferred type of a column
type ColumnKind int

const (
	// KindText is the default kind for free-text columns
	KindText ColumnKind = iota
	// KindNumber marks numeric columns (stored as float64)
	KindNumber
	// KindDate marks columns holding parsed calendar dates
	KindDate
	// KindCategory marks columns restricted to a finite label set
	KindCategory
)

// String returns a string representation of the column kind
func (k ColumnKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	case KindCategory:
		return "category"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Row is a single record, mapping column name to a typed value.
// Cell values are float64, string, time.Time, or nil (missing).
type Row map[string]interface{}

// Column describes one column of a table
type Column struct {
	Name     string     // Column name
	Kind     ColumnKind // Inferred value kind
	Category *Category  // Level set, populated for KindCategory columns
}

// Table is an ordered sequence of rows with a declared column schema.
// Pipeline stages treat tables as values: each stage returns a new
// Table and leaves its input untouched.
type Table struct {
	Columns []Column
	Rows    []Row
}

// NewTable creates a table with the given column schema and no rows
func NewTable(columns []Column) *Table {
	return &Table{
		Columns: columns,
		Rows:    make([]Row, 0),
	}
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnByName returns a column by name (case-insensitive).
// Returns nil if the column is not part of the schema.
func (t *Table) ColumnByName(name string) *Column {
	normalized := normalizeColumnName(name)
	for i, col := range t.Columns {
		if normalizeColumnName(col.Name) == normalized {
			return &t.Columns[i]
		}
	}
	return nil
}

// HasColumn reports whether the named column exists in the schema
func (t *Table) HasColumn(name string) bool {
	return t.ColumnByName(name) != nil
}

// ColumnNames returns the column names in schema order
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}

// Clone returns a deep copy of the table. Row maps are copied so that
// mutating the clone never aliases the original.
func (t *Table) Clone() *Table {
	columns := make([]Column, len(t.Columns))
	copy(columns, t.Columns)
	for i := range columns {
		if columns[i].Category != nil {
			columns[i].Category = columns[i].Category.Clone()
		}
	}

	rows := make([]Row, len(t.Rows))
	for i, row := range t.Rows {
		cloned := make(Row, len(row))
		for k, v := range row {
			cloned[k] = v
		}
		rows[i] = cloned
	}

	return &Table{Columns: columns, Rows: rows}
}

// Select returns a new table containing the rows at the given indices,
// in the order given. Indices must be valid for the receiver.
func (t *Table) Select(indices []int) *Table {
	out := t.CloneSchema()
	out.Rows = make([]Row, 0, len(indices))
	for _, idx := range indices {
		row := t.Rows[idx]
		cloned := make(Row, len(row))
		for k, v := range row {
			cloned[k] = v
		}
		out.Rows = append(out.Rows, cloned)
	}
	return out
}

// CloneSchema returns an empty table sharing the receiver's column schema
func (t *Table) CloneSchema() *Table {
	columns := make([]Column, len(t.Columns))
	copy(columns, t.Columns)
	for i := range columns {
		if columns[i].Category != nil {
			columns[i].Category = columns[i].Category.Clone()
		}
	}
	return NewTable(columns)
}

// Helper for case-insensitive column lookup
func normalizeColumnName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
