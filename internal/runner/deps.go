package runner

import (
	"context"

	"github.com/jonmartinstorm/harborsnusern/internal/columns"
	"github.com/jonmartinstorm/harborsnusern/internal/models"
)

// CollectorAPI er det runneren trenger fra collector (for testbarhet).
type CollectorAPI interface {
	Collect(ctx context.Context, requested []columns.Column) ([]models.Row, []models.Warning, error)
}

// RowWriter er en eksport-sink for de innsamlede radene (postgres, bigquery).
// Radene inneholder alltid alle registrerte kolonner, så sinkene kan ha fast
// skjema.
type RowWriter interface {
	ExportRows(ctx context.Context, rows []models.Row) error
}
