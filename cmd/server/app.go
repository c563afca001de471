package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/RawAnimal/EncounterBuilder/internal/config"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/activity"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/encounter"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/record"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/session"
	"github.com/RawAnimal/EncounterBuilder/internal/logging"
	"github.com/RawAnimal/EncounterBuilder/internal/mcp"
	"github.com/RawAnimal/EncounterBuilder/internal/refdata"
	"github.com/RawAnimal/EncounterBuilder/internal/store"
)

// app holds the wired services for one command run.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	data     *refdata.Data
	calc     *encounter.Calculator
	backend  *store.Backend
	records  *record.Service
	activity *activity.Service
	builders *session.Service

	closers []io.Closer
}

// loadBase reads config, builds the logger and loads reference data.
func loadBase(transportOverride string) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	if transportOverride != "" {
		cfg.Transport.Mode = transportOverride
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("config error: %w", err)
		}
	}

	logger, logCloser, err := logging.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("log file error: %w", err)
	}

	data, err := refdata.Load(cfg.Rules.DataDir)
	if err != nil {
		_ = logCloser.Close()
		return nil, fmt.Errorf("load reference data: %w", err)
	}
	if err := cfg.Rules.ValidateFor(data.XPTable); err != nil {
		_ = logCloser.Close()
		return nil, fmt.Errorf("config error: %w", err)
	}

	return &app{
		cfg:     cfg,
		logger:  logger,
		data:    data,
		calc:    encounter.NewCalculator(data.XPTable, data.Flavor),
		closers: []io.Closer{logCloser},
	}, nil
}

// openStore connects the configured backend and builds the store services.
func (a *app) openStore(ctx context.Context) error {
	backend, err := store.Open(ctx, a.cfg.Storage)
	if err != nil {
		return fmt.Errorf("open %s store: %w", a.cfg.Storage.Driver, err)
	}
	a.backend = backend
	a.closers = append([]io.Closer{backend}, a.closers...)

	a.records = record.NewService(backend.Records, backend.Activity, backend.Search, a.logger)
	if err := a.records.Init(ctx); err != nil {
		return err
	}
	a.activity = activity.NewService(backend.Activity, a.logger)
	return nil
}

// newBuilders creates the builder sessions with the configured rule defaults.
func (a *app) newBuilders() (*session.Service, error) {
	difficulty, err := a.calc.ParseDifficulty(a.cfg.Rules.Difficulty)
	if err != nil {
		return nil, fmt.Errorf("rules.difficulty: %w", err)
	}
	mode, err := encounter.ParseMode(a.cfg.Rules.Mode)
	if err != nil {
		return nil, err
	}
	a.builders = session.NewService(a.records, a.calc, a.data.Catalog, session.Defaults{Difficulty: difficulty, Mode: mode}, a.logger)
	return a.builders, nil
}

func (a *app) mcpConfig() mcp.Config {
	return mcp.Config{
		Services: mcp.Services{
			Records:    a.records,
			Activity:   a.activity,
			Builders:   a.builders,
			Calculator: a.calc,
			Catalog:    a.data.Catalog,
			Classes:    a.data.Classes,
			Species:    a.data.Species,
		},
		Version: version,
		Logger:  a.logger,
	}
}

func (a *app) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
