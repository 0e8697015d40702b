// Package export renders tabular report data into the file formats the
// cash-control office distributes.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/collectionsdesk/paxcash/pkg/core/services"
)

// WriteCSV writes the export header and rows as CSV
func WriteCSV(w io.Writer, result *services.ExportResult) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(result.Header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range result.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}
