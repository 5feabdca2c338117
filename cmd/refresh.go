package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// pageKeys lists every cache bucket a refresh repopulates.
var pageKeys = []string{dashboardKey, analyticsKey, payoutKey}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Fetch fresh headlines and update the cache",
	Long: `Fetch headlines from NewsAPI (and any configured RSS feeds), replace
every page's cached batch, and prune expired batches.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(true)
		if err != nil {
			return err
		}
		defer e.close()

		if e.store == nil {
			return fmt.Errorf("cache unavailable, nothing to refresh into")
		}

		fmt.Println("Fetching headlines...")
		ctx, cancel := context.WithTimeout(cmd.Context(), fetchTimeout)
		defer cancel()

		batch, err := e.fetcher.FetchBundle(ctx)
		if err != nil {
			return fmt.Errorf("fetching: %w", err)
		}

		for _, key := range pageKeys {
			if err := e.store.Store(key, batch); err != nil {
				return fmt.Errorf("caching %s batch: %w", key, err)
			}
		}
		e.store.SetLastRefresh()
		e.store.Prune(e.cfg.RetentionDuration())

		fmt.Printf("Cached %d news and %d blog articles.\n", len(batch.News), len(batch.Blogs))
		return nil
	},
}
