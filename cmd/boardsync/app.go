package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/rpggio/boardsync/internal/config"
	"github.com/rpggio/boardsync/internal/domain/catalog"
	"github.com/rpggio/boardsync/internal/errlog"
	"github.com/rpggio/boardsync/internal/format"
	"github.com/rpggio/boardsync/internal/sqlite"
	"github.com/rpggio/boardsync/internal/transport"
)

// app wires configuration, logging, transport, and the catalog cache
// for one command invocation.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	errs   *errlog.Log
	client *transport.Client
	db     *sqlite.DB
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(cfg.Log.Level),
	}))
	errs := errlog.Open(cfg.Log.ErrorFile, cfg.Log.ErrorMaxSizeMB, cfg.Log.ErrorBackups)

	client, err := transport.New(cfg.API, logger, errs)
	if err != nil {
		errs.Close()
		return nil, err
	}

	db, err := sqlite.New(cfg.Cache.Path)
	if err != nil {
		errs.Close()
		return nil, err
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		errs.Close()
		return nil, err
	}

	return &app{cfg: cfg, logger: logger, errs: errs, client: client, db: db}, nil
}

func (a *app) Close() {
	a.db.Close()
	a.errs.Close()
}

// catalogFor builds the per-board catalog service backed by the cache.
func (a *app) catalogFor(ctx context.Context, boardID, boardName string) (*catalog.Service, error) {
	store := sqlite.NewCatalogRepository(a.db)
	return catalog.NewService(ctx, boardID, boardName, a.client, store, a.logger, a.errs)
}

// formatter builds the column value formatter with any configured
// column-id-specific conversions applied.
func (a *app) formatter() *format.Formatter {
	f := format.New()
	for _, id := range a.cfg.Format.DurationColumns {
		f.RegisterID(id, format.DurationMinutes)
	}
	return f
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
