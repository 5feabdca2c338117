package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/Aashishkr2003/FactFusion/internal/cache"
	"github.com/Aashishkr2003/FactFusion/internal/config"
	"github.com/Aashishkr2003/FactFusion/internal/dashboard"
	"github.com/Aashishkr2003/FactFusion/internal/feed"
	"github.com/Aashishkr2003/FactFusion/internal/logging"
	"github.com/Aashishkr2003/FactFusion/internal/netcheck"
	"github.com/Aashishkr2003/FactFusion/internal/newsapi"
	"github.com/Aashishkr2003/FactFusion/internal/seed"
	"github.com/Aashishkr2003/FactFusion/internal/session"
)

// env wires the pieces every command needs: config, cache, identity, and
// the combined fetcher.
type env struct {
	cfg     *config.Config
	store   *cache.Store
	sess    session.Session
	fetcher *bundleFetcher
	probe   *netcheck.DialProbe
}

// newEnv loads config, opens the cache, and initializes logging. Pass
// console=true for plain CLI commands; the dashboard owns the terminal so
// it logs to file only.
func newEnv(console bool) (*env, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logFile := cfg.Log.File
	if logFile == "" {
		logFile = config.DefaultLogPath()
	}
	if err := logging.Init(logging.Config{
		Level:      cfg.Log.Level,
		File:       logFile,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Console:    console,
	}); err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}

	store, err := cache.Open(config.CachePath())
	if err != nil {
		// A broken cache is not fatal: pages fall back to seed + network.
		logging.L.Warnw("cache unavailable, continuing without it", "error", err)
		store = nil
	}

	api := newsapi.New(cfg.ResolvedAPIKey(), cfg.CountryOrDefault(), cfg.PageSizeOrDefault())

	return &env{
		cfg:     cfg,
		store:   store,
		sess:    session.New(cfg.Profile.Name, cfg.Profile.Email, cfg.Profile.Image, cfg.AdminEmail),
		fetcher: &bundleFetcher{api: api, sources: cfg.EnabledSources()},
		probe:   netcheck.NewDialProbe("newsapi.org"),
	}, nil
}

func (e *env) close() {
	if e.store != nil {
		e.store.Close()
	}
	logging.Sync()
}

// hydrationOptions builds the orchestrator options for one page key.
func (e *env) hydrationOptions(key string) dashboard.Options {
	seedBatch, err := seed.Batch()
	if err != nil {
		logging.L.Warnw("seed batch unavailable", "error", err)
	}

	opts := dashboard.Options{
		Key:       key,
		Fetcher:   e.fetcher,
		Probe:     e.probe,
		Seed:      seedBatch,
		Policy:    e.cfg.RefreshPolicyOrDefault(),
		Freshness: e.cfg.FreshnessDuration(),
	}
	if e.store != nil {
		opts.Store = e.store
	}
	return opts
}

// snapshot returns the batch a non-interactive page should render,
// running the same hydration flow the dashboard uses.
func (e *env) snapshot(ctx context.Context, key string) (dashboard.Result, error) {
	res := dashboard.Hydrate(ctx, e.hydrationOptions(key))
	if res.State == dashboard.StateError {
		return res, fmt.Errorf("no data available: cache is empty and the news API could not be reached")
	}
	return res, nil
}

// bundleFetcher merges NewsAPI headlines with any configured RSS feeds.
// RSS items land in the blogs half of the batch; feed errors are logged
// and never fail the fetch.
type bundleFetcher struct {
	api     *newsapi.Client
	sources []config.Source
}

func (f *bundleFetcher) FetchBundle(ctx context.Context) (cache.Batch, error) {
	batch, err := f.api.FetchBundle(ctx)
	if err != nil {
		return cache.Batch{}, err
	}

	if len(f.sources) > 0 {
		result := feed.FetchAll(ctx, f.sources)
		for _, e := range result.Errors {
			logging.L.Warnw("feed fetch failed", "error", e)
		}
		batch.Blogs = append(batch.Blogs, result.Articles...)
	}

	return batch, nil
}

// fetchTimeout bounds every network round trip a command makes.
const fetchTimeout = 30 * time.Second

// nowFunc is swapped out in tests.
var nowFunc = time.Now
