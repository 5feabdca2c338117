// Package dashboard decides, per page, whether to trust the cache, refetch,
// or fall back. One ordered pass replaces the source's unordered async
// effects: every transition happens in sequence, so there is no last-write-
// wins race between hydration, refresh, and offline fallback.
package dashboard

import (
	"context"
	"time"

	"github.com/Aashishkr2003/FactFusion/internal/cache"
	"github.com/Aashishkr2003/FactFusion/internal/config"
	"github.com/Aashishkr2003/FactFusion/internal/logging"
	"github.com/Aashishkr2003/FactFusion/internal/netcheck"
)

// State of a page's data flow.
type State int

const (
	StateHydrating State = iota
	StateRefreshing
	StateReady
	StateOffline
	StateError
)

func (s State) String() string {
	switch s {
	case StateHydrating:
		return "hydrating"
	case StateRefreshing:
		return "refreshing"
	case StateReady:
		return "ready"
	case StateOffline:
		return "offline"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Fetcher is the remote side of the orchestrator.
type Fetcher interface {
	FetchBundle(ctx context.Context) (cache.Batch, error)
}

// BatchStore is the persistent side. A nil store means no cache is
// available and the cache steps are skipped entirely.
type BatchStore interface {
	Store(key string, b cache.Batch) error
	Load(key string) (cache.Batch, time.Time, error)
}

// Options configures one hydration pass.
type Options struct {
	// Key names the page's cache bucket.
	Key     string
	Fetcher Fetcher
	Store   BatchStore
	Probe   netcheck.Probe

	// Seed is the initial batch shipped with the binary, adopted when the
	// cache holds nothing.
	Seed cache.Batch

	// Policy and Freshness together decide whether a stale cached batch
	// triggers a refetch. Under cache-first, Freshness is ignored.
	Policy    string
	Freshness time.Duration
}

// Result is what a page renders from.
type Result struct {
	// Batch is the offline-capable snapshot adopted for display.
	Batch cache.Batch
	State State

	// APIError is terminal for this render: the page shows a data
	// unavailable banner and does not retry.
	APIError bool

	// FromCache tells whether Batch came out of the store, and SavedAt
	// when it was written there.
	FromCache bool
	SavedAt   time.Time
}

// Hydrate runs the full cache-then-refresh flow for one page.
func Hydrate(ctx context.Context, opts Options) Result {
	res := Result{State: StateHydrating}

	// Hydration: a stored batch is adopted immediately whatever its age.
	if opts.Store != nil {
		if b, savedAt, err := opts.Store.Load(opts.Key); err == nil {
			res.Batch = b
			res.FromCache = true
			res.SavedAt = savedAt
			res.State = StateReady

			if opts.Policy == config.PolicyStaleRefresh && time.Since(savedAt) > opts.Freshness && online(ctx, opts.Probe) {
				res.State = StateRefreshing
				fresh, ferr := opts.Fetcher.FetchBundle(ctx)
				if ferr != nil {
					// Stale data beats no data; keep the cached batch.
					logging.L.Warnw("stale refresh failed", "key", opts.Key, "error", ferr)
					res.APIError = true
					res.State = StateReady
				} else {
					res.Batch = fresh
					res.FromCache = false
					res.SavedAt = time.Now()
					res.State = StateReady
					persist(opts, fresh)
				}
			}
			return finish(opts, res)
		}
	}

	// Nothing cached: adopt the seed and persist it right away so the next
	// launch can work offline.
	res.Batch = opts.Seed
	persist(opts, opts.Seed)

	if online(ctx, opts.Probe) {
		// Opportunistic refresh: exactly one fetch attempt.
		res.State = StateRefreshing
		fresh, err := opts.Fetcher.FetchBundle(ctx)
		if err != nil {
			logging.L.Warnw("refresh failed", "key", opts.Key, "error", err)
			res.APIError = true
			res.State = StateReady
		} else {
			res.Batch = fresh
			res.SavedAt = time.Now()
			res.State = StateReady
			persist(opts, fresh)
		}
	} else {
		// Offline fallback: whatever the store now holds is the snapshot.
		if opts.Store != nil {
			if b, savedAt, err := opts.Store.Load(opts.Key); err == nil {
				res.Batch = b
				res.FromCache = true
				res.SavedAt = savedAt
			}
		}
		res.State = StateOffline
	}
	return finish(opts, res)
}

// finish applies the empty-result fallback: one last cache read, then the
// terminal error state.
func finish(opts Options, res Result) Result {
	if !res.Batch.Empty() {
		return res
	}
	if opts.Store != nil {
		if b, savedAt, err := opts.Store.Load(opts.Key); err == nil && !b.Empty() {
			res.Batch = b
			res.FromCache = true
			res.SavedAt = savedAt
			return res
		}
	}
	logging.L.Warnw("no data from any source", "key", opts.Key)
	res.APIError = true
	res.State = StateError
	return res
}

func online(ctx context.Context, p netcheck.Probe) bool {
	if p == nil {
		return true
	}
	return p.Online(ctx)
}

func persist(opts Options, b cache.Batch) {
	if opts.Store == nil {
		return
	}
	if err := opts.Store.Store(opts.Key, b); err != nil {
		logging.L.Warnw("persisting batch failed", "key", opts.Key, "error", err)
	}
}
