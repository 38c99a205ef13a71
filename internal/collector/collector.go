// Package collector går sekvensielt gjennom prosjekter, repositories og
// artifacts og bygger én rad per repository. Ett HTTP-kall om gangen –
// dette er en avgrenset rapportjobb, ikke en tjeneste.
package collector

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jonmartinstorm/harborsnusern/internal/columns"
	"github.com/jonmartinstorm/harborsnusern/internal/config"
	"github.com/jonmartinstorm/harborsnusern/internal/harbor"
	"github.com/jonmartinstorm/harborsnusern/internal/models"
)

type Collector struct {
	Cfg config.Config
	API HarborAPI
}

func New(cfg config.Config, api HarborAPI) *Collector {
	return &Collector{
		Cfg: cfg,
		API: api,
	}
}

// Collect henter alle rader. Rekkefølgen er stabil: prosjektene slik Harbor
// listet dem, repositories i listingsrekkefølge innenfor hvert prosjekt.
// Prosjekt- og repository-listing er fatale; en API-feil fra artifact-listing
// nedgraderes til en warning per repository. Auth- og transportfeil er
// fatale også der.
func (c *Collector) Collect(ctx context.Context, requested []columns.Column) ([]models.Row, []models.Warning, error) {
	wantArtifacts := columns.NeedsArtifacts(requested)

	projects, err := c.listFilteredProjects(ctx)
	if err != nil {
		return nil, nil, err
	}

	var rows []models.Row
	var warnings []models.Warning

	for _, project := range projects {
		slog.Info("Henter repositories", "prosjekt", project.Name)
		repos, err := c.API.ListRepositories(ctx, project.Name)
		if err != nil {
			return nil, nil, err
		}

		for _, repo := range repos {
			src := models.RowSource{
				Project: project,
				Repo:    repo,
			}

			if wantArtifacts {
				artifacts, err := c.API.ListArtifacts(ctx, project.Name, repo.Name)
				if err != nil {
					// Bare API-feil nedgraderes; auth- og transportfeil
					// gjelder hele kjøringen og avbryter den.
					var apiErr *harbor.APIError
					if !errors.As(err, &apiErr) {
						return nil, nil, err
					}
					slog.Warn("Artifact-listing feilet – bruker placeholder-verdier",
						"prosjekt", project.Name, "repository", repo.Name, "error", err)
					warnings = append(warnings, models.Warning{
						Project:    project.Name,
						Repository: repo.Name,
						Err:        err,
					})
				} else {
					src.Artifacts = foldArtifacts(artifacts)
				}
			}

			rows = append(rows, buildRow(src))
		}
	}

	return rows, warnings, nil
}

// ListProjects returnerer prosjektene i listingsrekkefølge, med
// prosjektfilteret fra konfigurasjonen anvendt. Billig – går aldri ned i
// repositories eller artifacts.
func (c *Collector) ListProjects(ctx context.Context) ([]models.Project, error) {
	return c.listFilteredProjects(ctx)
}

// ListProjectNames er den raske "bare vis meg prosjektene"-veien.
func (c *Collector) ListProjectNames(ctx context.Context) ([]string, error) {
	projects, err := c.listFilteredProjects(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(projects))
	for _, p := range projects {
		names = append(names, p.Name)
	}
	return names, nil
}

func (c *Collector) listFilteredProjects(ctx context.Context) ([]models.Project, error) {
	projects, err := c.API.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	if len(c.Cfg.Projects) == 0 {
		return projects, nil
	}

	// Eksakt, case-sensitiv matching. Filternavn uten treff gir null rader
	// uten feil – "vis meg det som finnes"-semantikk.
	wanted := map[string]bool{}
	for _, name := range c.Cfg.Projects {
		wanted[name] = true
	}

	var kept []models.Project
	for _, p := range projects {
		if wanted[p.Name] {
			kept = append(kept, p)
		}
	}
	return kept, nil
}

// buildRow anvender alle registrerte ekstraktorer, ikke bare de forespurte.
// Raden er komplett og immutabel; renderen velger selv kolonner.
func buildRow(src models.RowSource) models.Row {
	row := models.Row{}
	for _, col := range columns.All() {
		row[col.Key] = col.Extract(src)
	}
	return row
}

// foldArtifacts aggregerer artifact-listen til ett sammendrag. Rå artifacts
// beholdes ikke etterpå.
func foldArtifacts(artifacts []models.Artifact) *models.ArtifactSummary {
	summary := &models.ArtifactSummary{
		Count: int64(len(artifacts)),
	}

	var latest time.Time
	for _, a := range artifacts {
		summary.TotalSizeBytes += a.Size
		if a.PushTime == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, a.PushTime)
		if err != nil {
			continue
		}
		if t.After(latest) {
			latest = t
			summary.LastPushed = a.PushTime
		}
	}
	return summary
}
