package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/Aashishkr2003/FactFusion/internal/analytics"
)

// WriteCSV writes the payout table, header first, to w.
func WriteCSV(w io.Writer, rows []analytics.PayoutRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headerRow()); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, record := range recordRows(rows) {
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
