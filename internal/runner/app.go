package runner

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/jonmartinstorm/harborsnusern/internal/columns"
	"github.com/jonmartinstorm/harborsnusern/internal/config"
	"github.com/jonmartinstorm/harborsnusern/internal/models"
	"github.com/jonmartinstorm/harborsnusern/internal/render"
)

var OpenSQL = sql.Open

// Result er alt én kjøring produserer: dokumentet, kolonnene og radene det
// ble bygget av, og eventuelle per-repository-warnings.
type Result struct {
	Document render.Document
	Columns  []columns.Column
	Rows     []models.Row
	Warnings []models.Warning
}

// Run er kjernen i én kjøring: løs opp kolonnene (feiler raskt, før noe
// nettverkskall), samle inn rader, og rendre dokumentet.
func Run(ctx context.Context, cfg config.Config, coll CollectorAPI) (Result, error) {
	cols, err := columns.Resolve(cfg.Columns)
	if err != nil {
		return Result{}, err
	}

	rows, warnings, err := coll.Collect(ctx, cols)
	if err != nil {
		return Result{}, err
	}

	if len(warnings) > 0 {
		slog.Warn("Noen repositories har ufullstendige artifact-data",
			"antall_repositories", len(warnings))
	}

	doc, err := render.Render(render.Format(cfg.Format), cols, rows)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Document: doc,
		Columns:  cols,
		Rows:     rows,
		Warnings: warnings,
	}, nil
}

// RunAppSafe kjører Run og logger varighet og minnebruk etterpå.
func RunAppSafe(ctx context.Context, cfg config.Config, coll CollectorAPI) (Result, error) {
	start := time.Now()

	result, err := Run(ctx, cfg, coll)
	if err != nil {
		slog.Debug("Runner feilet", "error", err)
		return Result{}, err
	}

	LogMemoryStats()
	slog.Info("Ferdig!", "varighet", time.Since(start).String(), "rader", len(result.Rows))
	return result, nil
}

func LogMemoryStats() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	slog.Debug("Minnebruk",
		"alloc", columns.ByteSize(int64(m.Alloc)),
		"totalAlloc", columns.ByteSize(int64(m.TotalAlloc)),
		"sys", columns.ByteSize(int64(m.Sys)),
		"numGC", m.NumGC)
}

func SetupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     level,
		AddSource: false,
	}))
	slog.SetDefault(logger)
}

// CheckDatabaseConnection pinger databasen tidlig, slik at en feilkonfigurert
// DSN oppdages før vi begynner å hente fra Harbor.
func CheckDatabaseConnection(ctx context.Context, dsn string) error {
	db, err := OpenSQL("postgres", dsn)
	if err != nil {
		slog.Debug("Klarte ikke å åpne databaseforbindelse", "error", err)
		return fmt.Errorf("DB open-feil: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			slog.Warn("Klarte ikke å lukke testDB", "error", cerr)
		}
	}()

	if err := db.PingContext(ctx); err != nil {
		slog.Debug("Ping mot database feilet", "error", err)
		return fmt.Errorf("DB ping-feil: %w", err)
	}

	slog.Info("DB-tilkobling OK")
	return nil
}
