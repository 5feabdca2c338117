package export

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/Aashishkr2003/FactFusion/internal/analytics"
)

// SheetsConfig points at the service-account credentials and the target
// spreadsheet.
type SheetsConfig struct {
	CredentialsFile string
	SpreadsheetID   string
}

// PushToSheet appends the payout table to the first sheet of the configured
// spreadsheet, one export per call, header row included.
func PushToSheet(ctx context.Context, cfg SheetsConfig, rows []analytics.PayoutRow) error {
	svc, err := sheetsService(ctx, cfg.CredentialsFile)
	if err != nil {
		return err
	}

	values := [][]interface{}{
		{"Exported", time.Now().Format("2006-01-02 15:04")},
	}
	header := make([]interface{}, 0, 5)
	for _, h := range headerRow() {
		header = append(header, h)
	}
	values = append(values, header)
	for _, record := range recordRows(rows) {
		row := make([]interface{}, 0, len(record))
		for _, cell := range record {
			row = append(row, cell)
		}
		values = append(values, row)
	}

	vr := &sheets.ValueRange{Values: values}
	_, err = svc.Spreadsheets.Values.
		Append(cfg.SpreadsheetID, "A1", vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("appending to spreadsheet: %w", err)
	}
	return nil
}

func sheetsService(ctx context.Context, credentialsFile string) (*sheets.Service, error) {
	if credentialsFile == "" {
		return nil, fmt.Errorf("sheets export requires a credentials file")
	}
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("reading credentials: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, data, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parsing credentials: %w", err)
	}
	svc, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("creating sheets client: %w", err)
	}
	return svc, nil
}
