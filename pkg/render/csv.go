// pkg/render/csv.go
package render

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/advancementlab/donorpipe/pkg/model"
)

// WriteTableCSV writes a table as delimited records, header first.
// Missing cells become empty fields.
func WriteTableCSV(w io.Writer, t *model.Table) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	names := t.ColumnNames()
	if err := writer.Write(names); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	record := make([]string, len(names))
	for i, row := range t.Rows {
		for j, name := range names {
			if model.IsMissing(row[name]) {
				record[j] = ""
				continue
			}
			record[j] = model.ToString(row[name])
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	return writer.Error()
}
