package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"sync"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/newstack-cloud/celerity-docs/internal/config"
	"github.com/newstack-cloud/celerity-docs/internal/logfields"
	"github.com/newstack-cloud/celerity-docs/internal/metrics"
	"github.com/newstack-cloud/celerity-docs/internal/scheduler"
	"github.com/newstack-cloud/celerity-docs/internal/search"
	"github.com/newstack-cloud/celerity-docs/internal/server/httpserver"
	"github.com/newstack-cloud/celerity-docs/internal/source"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Addr     string `help:"Listen address (overrides server.addr)"`
	Watch    bool   `help:"Reload content when files change"`
	NoSearch bool   `name:"no-search" help:"Disable the search API"`
	Sync     bool   `help:"Sync the search index once before serving"`
}

func (s *ServeCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if s.Addr != "" {
		cfg.Server.Addr = s.Addr
	}
	src, err := loadSource(cfg)
	if err != nil {
		return err
	}
	store := source.NewStore(src, cfg.Content.Extensions...)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	reg := prom.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewPrometheusRecorder(reg)

	opts := httpserver.Options{
		Content:        store,
		Recorder:       recorder,
		MetricsHandler: metrics.HTTPHandler(reg),
	}

	if !s.NoSearch {
		svc, closeFn, err := newSearchService(cfg, search.WithRecorder(recorder))
		if err != nil {
			return err
		}
		defer closeFn()
		opts.Search = svc

		var (
			mu         sync.Mutex
			lastSynced string
		)
		syncNow := func(ctx context.Context) error {
			mu.Lock()
			defer mu.Unlock()
			src := store.Current()
			fp := src.Fingerprint()
			if fp == lastSynced {
				slog.Debug("Content unchanged since last sync, skipping", logfields.Pages(src.Len()))
				return nil
			}
			if err := svc.Sync(ctx, search.BuildRecords(src.Pages(), cfg.Site.DocsRoute)); err != nil {
				return err
			}
			lastSynced = fp
			return nil
		}
		if s.Sync {
			if err := syncNow(ctx); err != nil {
				return err
			}
		}
		if interval := cfg.Search.SyncIntervalDuration(); interval > 0 {
			sched, err := scheduler.New()
			if err != nil {
				return err
			}
			if _, err := sched.Every("search-sync", interval, syncNow); err != nil {
				return err
			}
			sched.Start()
			defer func() {
				if err := sched.Stop(); err != nil {
					slog.Warn("Failed to stop scheduler", logfields.Error(err))
				}
			}()
		}
	}

	if s.Watch || cfg.Server.Watch {
		watcher, err := source.NewWatcher(store, source.WithRecorder(recorder))
		if err != nil {
			return err
		}
		if err := watcher.Start(ctx); err != nil {
			return err
		}
		defer func() { _ = watcher.Stop() }()
	}

	return runServer(ctx, cfg, opts)
}

func runServer(ctx context.Context, cfg *config.Config, opts httpserver.Options) error {
	srv := httpserver.New(cfg, opts)
	if err := srv.Start(ctx); err != nil {
		return err
	}
	slog.Info("Serving documentation", slog.String("addr", srv.Addr()), logfields.Backend(backendName(opts)))

	<-ctx.Done()
	slog.Info("Shutdown signal received, stopping server...")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeoutDuration()+5*time.Second)
	defer stopCancel()
	return srv.Stop(stopCtx)
}

func backendName(opts httpserver.Options) string {
	if opts.Search == nil {
		return "none"
	}
	return opts.Search.Backend().Name()
}
