package models

// Project er et namespace i Harbor som grupperer repositories.
type Project struct {
	ID        int64  `json:"project_id"`
	Name      string `json:"name"`
	RepoCount int64  `json:"repo_count"`
}

// Repository slik vi normaliserer det fra Harbor sitt
// /api/v2.0/projects/{name}/repositories-endepunkt. Name er relativt til
// prosjektet; Harbor selv sender "project/repo".
type Repository struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	ProjectName   string `json:"-"`
	ArtifactCount int64  `json:"artifact_count"`
	PullCount     int64  `json:"pull_count"`
	UpdateTime    string `json:"update_time"`
	Description   string `json:"description"`
}

// Artifact er ett pushet objekt (image, chart) i et repository. Rå artifacts
// beholdes aldri etter foldingen til ArtifactSummary.
type Artifact struct {
	ID       int64  `json:"id"`
	Type     string `json:"type"`
	Size     int64  `json:"size"`
	PushTime string `json:"push_time"`
}

// ArtifactSummary er resultatet av å folde artifact-listen for ett repository.
type ArtifactSummary struct {
	Count          int64
	TotalSizeBytes int64
	LastPushed     string
}

// RowSource er tuppelen kolonne-ekstraktorene jobber mot. Artifacts er nil
// når artifact-listing ikke var forespurt eller feilet for repositoriet.
type RowSource struct {
	Project   Project
	Repo      Repository
	Artifacts *ArtifactSummary
}

// Row er den flate representasjonen av ett repository: kolonnenøkkel til
// ferdig rendret skalar. Bygges én gang per repository og endres ikke etterpå.
type Row map[string]string

// Warning beskriver en per-repository-feil som ikke stoppet innsamlingen.
type Warning struct {
	Project    string
	Repository string
	Err        error
}
