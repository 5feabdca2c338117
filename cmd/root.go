package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig  string
	flagRefresh bool
	flagFrom    string
	flagTo      string
)

var rootCmd = &cobra.Command{
	Use:   "factfusion",
	Short: "Personal news dashboard with payout analytics",
	Long: `factfusion pulls news and blog headlines from NewsAPI (plus any
configured RSS feeds) into a filterable dashboard, caches every batch
locally for offline use, and computes per-author payouts.`,
	RunE: runDashboard,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.Flags().BoolVar(&flagRefresh, "refresh", false, "bypass the cache and fetch before launching")
	rootCmd.Flags().StringVar(&flagFrom, "from", "", "only show articles published on or after this date (YYYY-MM-DD)")
	rootCmd.Flags().StringVar(&flagTo, "to", "", "only show articles published on or before this date (YYYY-MM-DD)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(analyticsCmd)
	rootCmd.AddCommand(payoutCmd)
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(pruneCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("factfusion %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
