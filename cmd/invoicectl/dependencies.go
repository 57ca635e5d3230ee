package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FACorreiaa/invoice-ledger/internal/domain/extraction"
	"github.com/FACorreiaa/invoice-ledger/internal/domain/resolution"
	"github.com/FACorreiaa/invoice-ledger/internal/domain/summary"
	"github.com/FACorreiaa/invoice-ledger/internal/notify"
	"github.com/FACorreiaa/invoice-ledger/internal/profile"
	"github.com/FACorreiaa/invoice-ledger/internal/reference"
	"github.com/FACorreiaa/invoice-ledger/pkg/config"
)

// dependencies holds everything one command invocation wires together.
type dependencies struct {
	Config  *config.Config
	Logger  *slog.Logger
	Profile *profile.Profile

	Table     *reference.Table
	Builder   *summary.Builder
	Suggester *resolution.Suggester
	Notifier  *notify.Notifier

	pool *pgxpool.Pool
}

// initDependencies loads the reference table and wires the pipeline.
func initDependencies(ctx context.Context) (*dependencies, error) {
	d := &dependencies{Config: cfg, Logger: logger, Profile: prof}

	if err := d.initReference(ctx); err != nil {
		return nil, fmt.Errorf("failed to init reference table: %w", err)
	}
	d.initPipeline()
	d.initNotifier()

	d.Logger.Info("all dependencies initialized successfully")
	return d, nil
}

func (d *dependencies) initReference(ctx context.Context) error {
	var source reference.Source
	if refDB {
		pool, err := pgxpool.New(ctx, d.Config.Reference.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to postgres: %w", err)
		}
		d.pool = pool
		source = reference.NewStore(pool, d.Logger)
	} else {
		source = fileSource(codesPath, d.Logger)
	}

	table, err := source.Load(ctx)
	if err != nil {
		return err
	}
	d.Table = table

	d.Logger.Info("reference table loaded", slog.Int("entries", table.Len()))
	return nil
}

// fileSource picks the loader by extension; anything that is not a
// workbook is treated as delimited text.
func fileSource(path string, logger *slog.Logger) reference.Source {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return reference.NewExcelFile(path, logger)
	default:
		return reference.NewCSVFile(path, logger)
	}
}

func (d *dependencies) initPipeline() {
	d.Builder = summary.NewBuilder(d.Profile)
	d.Suggester = resolution.NewSuggester(d.Table)

	d.Logger.Info("extraction pipeline initialized",
		slog.String("vendor", d.Profile.Name))
}

func (d *dependencies) initNotifier() {
	n := d.Config.Notify
	d.Notifier = notify.New(n.ResendAPIKey, n.FromAddress, n.ToAddresses, d.Logger)
}

// newRun returns a fresh resolver/processor pair. The resolver tracks
// the codes that fell back during one document, so every document gets
// its own.
func (d *dependencies) newRun() (*resolution.Resolver, *extraction.Processor) {
	resolver := resolution.New(d.Profile, d.Table, d.Logger)
	return resolver, extraction.NewProcessor(d.Profile, resolver, d.Logger)
}

// Cleanup closes all resources.
func (d *dependencies) Cleanup() {
	if d.pool != nil {
		d.pool.Close()
	}
	d.Logger.Info("cleanup completed")
}
