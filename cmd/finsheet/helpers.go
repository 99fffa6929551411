package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finsheet/finsheet/internal/api"
	"github.com/finsheet/finsheet/internal/bootstrap"
	"github.com/finsheet/finsheet/internal/bulk"
	"github.com/finsheet/finsheet/internal/config"
	"github.com/finsheet/finsheet/internal/derive"
	"github.com/finsheet/finsheet/internal/health"
	"github.com/finsheet/finsheet/internal/localstore"
	"github.com/finsheet/finsheet/internal/model"
	"github.com/finsheet/finsheet/internal/store"
	"github.com/finsheet/finsheet/internal/syncer"
)

// app wires the full stack for one record kind.
type app struct {
	cfg       *config.Config
	kind      model.Kind
	client    *api.Client
	probe     *health.Probe
	cache     *localstore.Store
	engine    *derive.Engine
	store     *store.Store
	scheduler *syncer.Scheduler
	submitter *bulk.Submitter
	source    bootstrap.Source
}

// newApp loads config, bootstraps the collection for the selected kind,
// and assembles the store, scheduler, and submitter around it.
func newApp(ctx context.Context, cmd *cobra.Command) (*app, error) {
	kindName, _ := cmd.Flags().GetString("kind")
	kind, err := model.ParseKind(kindName)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	client, err := api.NewClient(cfg.BackendURL,
		api.WithTimeouts(cfg.FetchTimeout, cfg.ItemTimeout, cfg.SubmitTimeout))
	if err != nil {
		return nil, err
	}
	probe := health.NewProbe(cfg.BackendURL, health.WithTimeout(cfg.HealthTimeout))

	cache, err := localstore.Open(cfg.CachePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open local cache: %w", err)
	}

	engine := derive.NewEngine()
	loader := bootstrap.NewLoader(kind, client, probe, cache, engine)
	result := loader.Run(ctx)

	scheduler := syncer.NewScheduler(kind, client, probe, syncer.WithWindow(cfg.SyncWindow))
	st := store.New(result.Collection, engine, cache, scheduler,
		store.WithPersistWindow(cfg.PersistWindow))
	scheduler.SetReconciler(st)

	return &app{
		cfg:       cfg,
		kind:      kind,
		client:    client,
		probe:     probe,
		cache:     cache,
		engine:    engine,
		store:     st,
		scheduler: scheduler,
		submitter: bulk.NewSubmitter(kind, client, probe, st, bulk.WithDisplayWindow(cfg.DisplayWindow)),
		source:    result.Source,
	}, nil
}

// shutdown flushes pending debounced work before the process exits: the
// cache write and any per-record dispatches still inside their windows.
func (a *app) shutdown() {
	a.scheduler.Flush()
	a.scheduler.Stop()
	a.store.FlushPersist()
	a.store.Close()
	_ = a.cache.Close()
}
