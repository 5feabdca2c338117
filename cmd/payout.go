package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Aashishkr2003/FactFusion/internal/analytics"
	"github.com/Aashishkr2003/FactFusion/internal/export"
	"github.com/Aashishkr2003/FactFusion/internal/session"
)

const payoutKey = "payout"

var (
	flagRate        float64
	flagSetRates    []string
	flagExportOut   string
	flagExportAs    string
	flagCredentials string
	flagSpreadsheet string
)

var payoutCmd = &cobra.Command{
	Use:   "payout",
	Short: "Show per-author payouts (admin only)",
	Long: `Compute payouts per author and article type: article count times the
author's per-article rate. Rates come from config; --rate and --set
override them for this run without persisting.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, rows, err := payoutRows(cmd.Context())
		if err != nil {
			return err
		}
		defer e.close()

		color.New(color.FgCyan, color.Bold).Println("Payout report")
		fmt.Println()

		cells := make([][]string, 0, len(rows)+1)
		for _, r := range rows {
			cells = append(cells, []string{
				r.Author,
				string(r.Type),
				strconv.Itoa(r.Count),
				fmt.Sprintf("%.2f", r.Rate),
				fmt.Sprintf("%.2f", r.Total),
			})
		}
		cells = append(cells, []string{"", "", "", "Grand total", fmt.Sprintf("%.2f", analytics.GrandTotal(rows))})
		renderTable(os.Stdout, []string{"Author", "Type", "Articles", "Rate", "Total"}, cells)
		return nil
	},
}

var payoutExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the payout report as CSV, PDF, or to Google Sheets",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, rows, err := payoutRows(cmd.Context())
		if err != nil {
			return err
		}
		defer e.close()

		switch flagExportAs {
		case "csv", "pdf":
			out, err := exportFile(flagExportOut, flagExportAs)
			if err != nil {
				return err
			}
			defer out.Close()

			if flagExportAs == "csv" {
				err = export.WriteCSV(out, rows)
			} else {
				err = export.WritePDF(out, rows, nowFunc())
			}
			if err != nil {
				return fmt.Errorf("writing %s: %w", flagExportAs, err)
			}
			fmt.Printf("Wrote %s\n", out.Name())
			return nil

		case "sheets":
			if flagSpreadsheet == "" {
				return fmt.Errorf("--sheet is required for the sheets format")
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), fetchTimeout)
			defer cancel()
			if err := export.PushToSheet(ctx, export.SheetsConfig{
				CredentialsFile: flagCredentials,
				SpreadsheetID:   flagSpreadsheet,
			}, rows); err != nil {
				return fmt.Errorf("pushing to sheet: %w", err)
			}
			fmt.Println("Exported to Google Sheets.")
			return nil

		default:
			return fmt.Errorf("invalid --format value %q (want csv, pdf, or sheets)", flagExportAs)
		}
	},
}

func init() {
	payoutCmd.PersistentFlags().Float64Var(&flagRate, "rate", 0, "override the default per-article rate for this run")
	payoutCmd.PersistentFlags().StringArrayVar(&flagSetRates, "set", nil, "override an author's rate, e.g. --set \"Jane Doe=3.5\" (repeatable)")

	payoutExportCmd.Flags().StringVar(&flagExportAs, "format", "csv", "export format: csv, pdf, or sheets")
	payoutExportCmd.Flags().StringVar(&flagExportOut, "out", "", "output file (default payout.<format> in the current directory)")
	payoutExportCmd.Flags().StringVar(&flagCredentials, "credentials", "", "Google service account credentials JSON (sheets format)")
	payoutExportCmd.Flags().StringVar(&flagSpreadsheet, "sheet", "", "target spreadsheet ID (sheets format)")

	payoutCmd.AddCommand(payoutExportCmd)
}

// payoutRows hydrates the payout page and builds its rows. The caller owns
// closing the returned env.
func payoutRows(ctx context.Context) (*env, []analytics.PayoutRow, error) {
	e, err := newEnv(true)
	if err != nil {
		return nil, nil, err
	}

	if e.sess.Role() != session.RoleAdmin {
		e.close()
		return nil, nil, fmt.Errorf("payout is restricted to the admin account (%s)", e.cfg.AdminEmail)
	}

	overrides, err := parseRateOverrides(flagSetRates)
	if err != nil {
		e.close()
		return nil, nil, err
	}

	sctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()
	res, err := e.snapshot(sctx, payoutKey)
	if err != nil {
		e.close()
		return nil, nil, err
	}
	printSnapshotNotice(res)

	rateFor := func(author string) float64 {
		if rate, ok := overrides[author]; ok {
			return rate
		}
		if flagRate > 0 {
			if _, ok := e.cfg.Rates[author]; !ok {
				return flagRate
			}
		}
		return e.cfg.RateFor(author)
	}

	return e, analytics.PayoutRows(res.Batch.All(), rateFor), nil
}

func parseRateOverrides(entries []string) (map[string]float64, error) {
	overrides := make(map[string]float64, len(entries))
	for _, entry := range entries {
		name, value, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --set value %q (want author=rate)", entry)
		}
		rate, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || rate < 0 {
			return nil, fmt.Errorf("invalid rate in --set value %q", entry)
		}
		overrides[strings.TrimSpace(name)] = rate
	}
	return overrides, nil
}

func exportFile(path, format string) (*os.File, error) {
	if path == "" {
		path = "payout." + format
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return f, nil
}
