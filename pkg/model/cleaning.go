// pkg/model/cleaning.go
package model

import (
	"time"
)

// CleaningOperation represents a single field-level cleaning mutation.
// The cleaner appends one per changed cell so that every normalization
// applied to the dataset is auditable after the fact.
type CleaningOperation struct {
	Dataset       string      // Logical dataset name (e.g. "donors")
	ColumnName    string      // Column that was cleaned
	OriginalValue interface{} // Original value (may be nil)
	NewValue      string      // New value after cleaning
	RowIdentifier string      // Identifies the row the mutation applied to
	Operation     string      // Type of cleaning performed (e.g. "sentinel_to_missing")
	Reason        string      // Reason for cleaning (e.g. "zero_is_not_a_valid_age")
	CleanedAt     time.Time   // When the cleaning occurred
}
