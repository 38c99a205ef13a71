package harbor

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/jonmartinstorm/harborsnusern/internal/models"
)

const apiBase = "/api/v2.0"

// ListProjects lister alle prosjekter brukeren har tilgang til.
func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	return GetAll[models.Project](ctx, c, apiBase+"/projects", nil, nil)
}

// ListRepositories lister repositories i ett prosjekt. Harbor returnerer
// navn på formen "project/repo"; vi normaliserer til prosjekt-relativt navn
// og stempler inn prosjektnavnet.
func (c *Client) ListRepositories(ctx context.Context, project string) ([]models.Repository, error) {
	path := fmt.Sprintf("%s/projects/%s/repositories", apiBase, url.PathEscape(project))
	header := http.Header{"X-Is-Resource-Name": []string{"true"}}

	repos, err := GetAll[models.Repository](ctx, c, path, nil, header)
	if err != nil {
		return nil, err
	}
	for i := range repos {
		repos[i].ProjectName = project
		repos[i].Name = strings.TrimPrefix(repos[i].Name, project+"/")
	}
	return repos, nil
}

// ListArtifacts lister artifacts i ett repository. Skråstrek i nøstede
// repository-navn må escapes i URL-en.
func (c *Client) ListArtifacts(ctx context.Context, project, repository string) ([]models.Artifact, error) {
	path := fmt.Sprintf("%s/projects/%s/repositories/%s/artifacts",
		apiBase, url.PathEscape(project), url.PathEscape(repository))
	return GetAll[models.Artifact](ctx, c, path, nil, nil)
}
