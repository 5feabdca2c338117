// Package export turns payout rows into CSV, PDF, or a Google Sheet. All
// three consume the same plain tabular record.
package export

import (
	"fmt"
	"strconv"

	"github.com/Aashishkr2003/FactFusion/internal/analytics"
)

func headerRow() []string {
	return []string{"Author", "Type", "Articles", "Rate", "Total"}
}

func recordRows(rows []analytics.PayoutRow) [][]string {
	out := make([][]string, 0, len(rows)+1)
	for _, r := range rows {
		out = append(out, []string{
			r.Author,
			string(r.Type),
			strconv.Itoa(r.Count),
			fmt.Sprintf("%.2f", r.Rate),
			fmt.Sprintf("%.2f", r.Total),
		})
	}
	return out
}
