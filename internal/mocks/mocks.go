// Package mocks inneholder håndskrevne testify-mocks for grensesnittene
// i collector og runner.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jonmartinstorm/harborsnusern/internal/collector"
	"github.com/jonmartinstorm/harborsnusern/internal/columns"
	"github.com/jonmartinstorm/harborsnusern/internal/models"
	"github.com/jonmartinstorm/harborsnusern/internal/runner"
)

var (
	_ collector.HarborAPI = (*MockHarborAPI)(nil)
	_ runner.CollectorAPI = (*MockCollector)(nil)
	_ runner.RowWriter    = (*MockRowWriter)(nil)
)

// MockHarborAPI implementerer collector.HarborAPI.
type MockHarborAPI struct {
	mock.Mock
}

func (m *MockHarborAPI) ListProjects(ctx context.Context) ([]models.Project, error) {
	args := m.Called(ctx)
	var projects []models.Project
	if v := args.Get(0); v != nil {
		projects = v.([]models.Project)
	}
	return projects, args.Error(1)
}

func (m *MockHarborAPI) ListRepositories(ctx context.Context, project string) ([]models.Repository, error) {
	args := m.Called(ctx, project)
	var repos []models.Repository
	if v := args.Get(0); v != nil {
		repos = v.([]models.Repository)
	}
	return repos, args.Error(1)
}

func (m *MockHarborAPI) ListArtifacts(ctx context.Context, project, repository string) ([]models.Artifact, error) {
	args := m.Called(ctx, project, repository)
	var artifacts []models.Artifact
	if v := args.Get(0); v != nil {
		artifacts = v.([]models.Artifact)
	}
	return artifacts, args.Error(1)
}

// MockCollector implementerer runner.CollectorAPI.
type MockCollector struct {
	mock.Mock
}

func (m *MockCollector) Collect(ctx context.Context, requested []columns.Column) ([]models.Row, []models.Warning, error) {
	args := m.Called(ctx, requested)
	var rows []models.Row
	if v := args.Get(0); v != nil {
		rows = v.([]models.Row)
	}
	var warnings []models.Warning
	if v := args.Get(1); v != nil {
		warnings = v.([]models.Warning)
	}
	return rows, warnings, args.Error(2)
}

// MockRowWriter implementerer runner.RowWriter.
type MockRowWriter struct {
	mock.Mock
}

func (m *MockRowWriter) ExportRows(ctx context.Context, rows []models.Row) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}
