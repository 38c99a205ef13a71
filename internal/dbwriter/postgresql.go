// Package dbwriter eksporterer de innsamlede radene til PostgreSQL.
// Tabellen erstattes ved hver kjøring – vi fører ingen historikk.
package dbwriter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jonmartinstorm/harborsnusern/internal/columns"
	"github.com/jonmartinstorm/harborsnusern/internal/models"
)

const tableName = "harbor_summary"

type PostgresWriter struct {
	DB *sql.DB
}

func NewPostgresWriter(postgresdsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", postgresdsn)
	if err != nil {
		slog.Error("Kunne ikke åpne PostgreSQL-database", "error", err)
		return nil, fmt.Errorf("kunne ikke åpne PostgreSQL-database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(10 * time.Minute)

	return &PostgresWriter{
		DB: db,
	}, nil
}

func (p *PostgresWriter) Close() error {
	return p.DB.Close()
}

// ExportRows skriver alle radene i én transaksjon: opprett tabellen om den
// mangler, tøm den, sett inn radene i innsamlingsrekkefølge.
func (p *PostgresWriter) ExportRows(ctx context.Context, rows []models.Row) error {
	keys := columns.AllKeys()

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("start tx: %w", err)
	}

	if _, err := tx.ExecContext(ctx, createTableStmt(keys)); err != nil {
		return rollback(tx, fmt.Errorf("CREATE TABLE feilet: %w", err))
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM "+tableName); err != nil {
		return rollback(tx, fmt.Errorf("tømming av %s feilet: %w", tableName, err))
	}

	insert := insertStmt(keys)
	for _, row := range rows {
		args := make([]any, 0, len(keys))
		for _, key := range keys {
			args = append(args, row[key])
		}
		if _, err := tx.ExecContext(ctx, insert, args...); err != nil {
			return rollback(tx, fmt.Errorf("INSERT i %s feilet: %w", tableName, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit feilet: %w", err)
	}

	slog.Info("Eksporterte rader til PostgreSQL", "antall", len(rows), "tabell", tableName)
	return nil
}

func rollback(tx *sql.Tx, err error) error {
	if rbErr := tx.Rollback(); rbErr != nil {
		return fmt.Errorf("%v (rollback feilet: %w)", err, rbErr)
	}
	return err
}

// Kolonnenøklene er faste identifikatorer fra registeret, trygge å bruke
// direkte i SQL.
func createTableStmt(keys []string) string {
	cols := make([]string, 0, len(keys))
	for _, key := range keys {
		cols = append(cols, key+" TEXT NOT NULL DEFAULT ''")
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", tableName, strings.Join(cols, ", "))
}

func insertStmt(keys []string) string {
	placeholders := make([]string, 0, len(keys))
	for i := range keys {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		tableName, strings.Join(keys, ", "), strings.Join(placeholders, ", "))
}
