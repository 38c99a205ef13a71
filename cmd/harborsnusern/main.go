package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonmartinstorm/harborsnusern/internal/bqwriter"
	"github.com/jonmartinstorm/harborsnusern/internal/collector"
	"github.com/jonmartinstorm/harborsnusern/internal/config"
	"github.com/jonmartinstorm/harborsnusern/internal/dbwriter"
	"github.com/jonmartinstorm/harborsnusern/internal/harbor"
	"github.com/jonmartinstorm/harborsnusern/internal/runner"
	_ "github.com/lib/pq"
)

func main() {
	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	go func() {
		<-ctx.Done()
		slog.Info("SIGTERM mottatt – rydder opp...")
	}()

	cfg, err := config.LoadAndValidateConfig()
	if err != nil {
		slog.Error("Ugyldig konfigurasjon", "error", err)
		os.Exit(1)
	}
	runner.SetupLogger(cfg.Debug)

	// Test tidlig, før vi begynner å hente fra Harbor
	if cfg.Storage == config.StoragePostgres {
		if err := runner.CheckDatabaseConnection(ctx, cfg.PostgresDSN); err != nil {
			slog.Error("Klarte ikke å nå databasen", "error", err)
			os.Exit(1)
		}
	}

	client := harbor.NewClient(cfg)
	coll := collector.New(cfg, client)

	result, err := runner.RunAppSafe(ctx, cfg, coll)
	if err != nil {
		slog.Error("Applikasjonen feilet", "error", err)
		os.Exit(1)
	}

	for _, w := range result.Warnings {
		slog.Warn("Ufullstendige artifact-data",
			"prosjekt", w.Project, "repository", w.Repository, "error", w.Err)
	}

	if err := writeResult(ctx, cfg, result); err != nil {
		slog.Error("Klarte ikke å skrive sammendraget", "error", err)
		os.Exit(1)
	}
}

func writeResult(ctx context.Context, cfg config.Config, result runner.Result) error {
	if cfg.Storage == config.StorageFile {
		if err := os.WriteFile(cfg.Output, []byte(result.Document.Content), 0o644); err != nil {
			return err
		}
		slog.Info("Skrev sammendrag", "fil", cfg.Output, "format", cfg.Format)
		return nil
	}

	var writer runner.RowWriter
	var closer io.Closer

	switch cfg.Storage {
	case config.StoragePostgres:
		w, err := dbwriter.NewPostgresWriter(cfg.PostgresDSN)
		if err != nil {
			return err
		}
		writer, closer = w, w
	case config.StorageBigQuery:
		w, err := bqwriter.NewBigQueryWriter(ctx, &cfg)
		if err != nil {
			return err
		}
		writer, closer = w, w
	}

	defer func() {
		if cerr := closer.Close(); cerr != nil {
			slog.Warn("Klarte ikke å lukke eksport-sinken", "error", cerr)
		}
	}()
	return writer.ExportRows(ctx, result.Rows)
}
