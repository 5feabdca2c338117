package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/Aashishkr2003/FactFusion/internal/analytics"
	"github.com/Aashishkr2003/FactFusion/internal/dashboard"
)

const analyticsKey = "analytics"

var flagGroupBy string

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show article counts grouped by author, type, or date",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(true)
		if err != nil {
			return err
		}
		defer e.close()

		key, err := parseGroupKey(flagGroupBy)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), fetchTimeout)
		defer cancel()

		res, err := e.snapshot(ctx, analyticsKey)
		if err != nil {
			return err
		}
		printSnapshotNotice(res)

		articles := res.Batch.All()
		groups := analytics.GroupBy(articles, key)

		color.New(color.FgCyan, color.Bold).Printf("Article analytics (%d articles, by %s)\n\n", len(articles), flagGroupBy)

		rows := make([][]string, 0, len(groups))
		for _, g := range groups {
			rows = append(rows, groupRow(key, g))
		}
		renderTable(os.Stdout, groupHeader(key), rows)
		return nil
	},
}

func init() {
	analyticsCmd.Flags().StringVar(&flagGroupBy, "by", "author", "grouping: author, type, date, or author-type")
}

func parseGroupKey(s string) (analytics.GroupKey, error) {
	switch s {
	case "author":
		return analytics.ByAuthor, nil
	case "type":
		return analytics.ByType, nil
	case "date":
		return analytics.ByDate, nil
	case "author-type":
		return analytics.ByAuthorType, nil
	default:
		return "", fmt.Errorf("invalid --by value %q (want author, type, date, or author-type)", s)
	}
}

func groupHeader(key analytics.GroupKey) []string {
	switch key {
	case analytics.ByAuthor:
		return []string{"Author", "Articles"}
	case analytics.ByType:
		return []string{"Type", "Articles"}
	case analytics.ByDate:
		return []string{"Date", "Articles"}
	default:
		return []string{"Author", "Type", "Articles"}
	}
}

func groupRow(key analytics.GroupKey, g analytics.Group) []string {
	count := strconv.Itoa(g.Count)
	switch key {
	case analytics.ByAuthor:
		return []string{g.Author, count}
	case analytics.ByType:
		return []string{string(g.Type), count}
	case analytics.ByDate:
		return []string{g.Date, count}
	default:
		return []string{g.Author, string(g.Type), count}
	}
}

// printSnapshotNotice flags degraded snapshots so table output is never
// mistaken for fresh data.
func printSnapshotNotice(res dashboard.Result) {
	warn := color.New(color.FgYellow)
	switch {
	case res.State == dashboard.StateOffline:
		warn.Println("offline: showing cached data")
	case res.APIError:
		warn.Println("news API unreachable: showing cached data")
	case res.FromCache:
		fmt.Printf("cached %s\n", res.SavedAt.Format("2006-01-02 15:04"))
	}
}

// renderTable applies the house table style: left-aligned, borderless.
func renderTable(w io.Writer, headers []string, rows [][]string) {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders:  tw.BorderNone,
			Settings: tw.Settings{Separators: tw.Separators{ShowHeader: tw.Off}},
		}),
	)
	table.Header(headers)
	table.Bulk(rows)
	table.Render()
}
