package export

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/Aashishkr2003/FactFusion/internal/analytics"
)

// WritePDF renders the payout table as a one-page PDF document.
func WritePDF(w io.Writer, rows []analytics.PayoutRow, generatedAt time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "FactFusion Payout Report")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 8, "Generated "+generatedAt.Format("2006-01-02 15:04"))
	pdf.Ln(12)

	colWidths := []float64{60, 30, 25, 25, 30}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headerRow() {
		pdf.CellFormat(colWidths[i], 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, record := range recordRows(rows) {
		for i, cell := range record {
			pdf.CellFormat(colWidths[i], 7, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "B", 11)
	total := fmt.Sprintf("%.2f", analytics.GrandTotal(rows))
	pdf.CellFormat(colWidths[0]+colWidths[1]+colWidths[2]+colWidths[3], 8, "Grand total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(colWidths[4], 8, total, "1", 0, "L", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering pdf: %w", err)
	}
	return nil
}
