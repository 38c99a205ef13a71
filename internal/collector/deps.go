package collector

import (
	"context"

	"github.com/jonmartinstorm/harborsnusern/internal/models"
)

// HarborAPI er det collector trenger fra Harbor-klienten (for testbarhet).
type HarborAPI interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	ListRepositories(ctx context.Context, project string) ([]models.Repository, error)
	ListArtifacts(ctx context.Context, project, repository string) ([]models.Artifact, error)
}
