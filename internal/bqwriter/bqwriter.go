// Package bqwriter eksporterer de innsamlede radene til BigQuery.
package bqwriter

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/bigquery"
	"github.com/jonmartinstorm/harborsnusern/internal/config"
	"github.com/jonmartinstorm/harborsnusern/internal/models"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

type BigQueryWriter struct {
	Client  *bigquery.Client
	Dataset string
	Table   string
}

func NewBigQueryWriter(ctx context.Context, cfg *config.Config) (*BigQueryWriter, error) {
	var opts []option.ClientOption
	if cfg.BQCredentials != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.BQCredentials))
	}

	client, err := bigquery.NewClient(ctx, cfg.BQProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("kan ikke opprette BigQuery-klient: %w", err)
	}

	if err := ensureTableExists(ctx, client, cfg.BQDataset, cfg.BQTable, BQSummaryRow{}); err != nil {
		return nil, fmt.Errorf("kunne ikke sikre tabell %s: %w", cfg.BQTable, err)
	}

	return &BigQueryWriter{
		Client:  client,
		Dataset: cfg.BQDataset,
		Table:   cfg.BQTable,
	}, nil
}

func (w *BigQueryWriter) Close() error {
	return w.Client.Close()
}

// ExportRows setter inn alle radene i ett kall.
func (w *BigQueryWriter) ExportRows(ctx context.Context, rows []models.Row) error {
	converted := make([]BQSummaryRow, 0, len(rows))
	for _, row := range rows {
		converted = append(converted, ConvertToBQ(row))
	}

	if err := insert(ctx, w.Client, w.Dataset, w.Table, converted); err != nil {
		return fmt.Errorf("%s insert failed: %w", w.Table, err)
	}

	slog.Info("Eksporterte rader til BigQuery", "antall", len(rows), "tabell", w.Table)
	return nil
}

func insert[T any](ctx context.Context, client *bigquery.Client, dataset, table string, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	inserter := client.Dataset(dataset).Table(table).Inserter()
	return inserter.Put(ctx, rows)
}

func ensureTableExists(ctx context.Context, client *bigquery.Client, dataset, table string, exampleStruct any) error {
	tbl := client.Dataset(dataset).Table(table)
	_, err := tbl.Metadata(ctx)
	if err == nil {
		return nil // tabellen finnes
	}

	if gErr, ok := err.(*googleapi.Error); !ok || gErr.Code != 404 {
		return fmt.Errorf("feil ved henting av tabell-metadata: %w", err)
	}

	schema, err := bigquery.InferSchema(exampleStruct)
	if err != nil {
		return fmt.Errorf("klarte ikke å generere schema for %s: %w", table, err)
	}

	if err := tbl.Create(ctx, &bigquery.TableMetadata{Schema: schema}); err != nil {
		return fmt.Errorf("klarte ikke å opprette tabell %s: %w", table, err)
	}

	return nil
}

// ==== Data-strukturer ====

// BQSummaryRow speiler kolonneregisteret. Verdiene er de ferdig rendrede
// skalarene fra raden, ikke råverdier fra Harbor.
type BQSummaryRow struct {
	Project     string `bigquery:"project"`
	Repository  string `bigquery:"repository"`
	Artifacts   string `bigquery:"artifacts"`
	PullCount   string `bigquery:"pull_count"`
	LastUpdated string `bigquery:"last_updated"`
	Description string `bigquery:"description"`
	TotalSize   string `bigquery:"total_size"`
	LastPushed  string `bigquery:"last_pushed"`
}

func ConvertToBQ(row models.Row) BQSummaryRow {
	return BQSummaryRow{
		Project:     row["project"],
		Repository:  row["repository"],
		Artifacts:   row["artifacts"],
		PullCount:   row["pull_count"],
		LastUpdated: row["last_updated"],
		Description: row["description"],
		TotalSize:   row["total_size"],
		LastPushed:  row["last_pushed"],
	}
}
