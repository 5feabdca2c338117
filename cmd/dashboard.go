package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aashishkr2003/FactFusion/internal/filter"
	"github.com/Aashishkr2003/FactFusion/internal/tui"
)

const dashboardKey = "dashboard"

func runDashboard(cmd *cobra.Command, args []string) error {
	e, err := newEnv(false)
	if err != nil {
		return err
	}
	defer e.close()

	filters := filter.New()
	if flagFrom != "" {
		from, err := filter.ParseDate(flagFrom)
		if err != nil {
			return fmt.Errorf("invalid --from value: %w", err)
		}
		filters.SetStartDate(from)
	}
	if flagTo != "" {
		to, err := filter.ParseDate(flagTo)
		if err != nil {
			return fmt.Errorf("invalid --to value: %w", err)
		}
		filters.SetEndDate(to)
	}

	if flagRefresh {
		ctx, cancel := context.WithTimeout(cmd.Context(), fetchTimeout)
		fresh, err := e.fetcher.FetchBundle(ctx)
		cancel()
		if err != nil {
			fmt.Printf("refresh failed, falling back to cache: %v\n", err)
		} else if e.store != nil {
			if err := e.store.Store(dashboardKey, fresh); err != nil {
				return fmt.Errorf("caching batch: %w", err)
			}
			e.store.SetLastRefresh()
		}
	}

	return tui.Run(tui.RunOpts{
		Session:   e.sess,
		Hydration: e.hydrationOptions(dashboardKey),
		Filters:   filters,
	})
}
