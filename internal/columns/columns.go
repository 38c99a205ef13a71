// Package columns er den faste katalogen over kolonner sammendraget kan
// vise. Registeret bygges ved oppstart og er read-only resten av kjøringen.
package columns

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jonmartinstorm/harborsnusern/internal/models"
)

// Placeholder vises for verdier vi ikke har.
const Placeholder = "—"

// Column beskriver én kolonne: stabil nøkkel, visningsetikett og en ren
// ekstraksjonsfunksjon over (prosjekt, repository, artifact-sammendrag).
// NeedsArtifacts markerer kolonner som krever artifact-listing per repository.
type Column struct {
	Key            string
	Label          string
	Description    string
	NeedsArtifacts bool
	Extract        func(models.RowSource) string
}

// UnknownColumnError returneres fra Resolve for en nøkkel som ikke finnes.
type UnknownColumnError struct {
	Key string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("ukjent kolonne %q – bruk kolonnelisting for å se gyldige nøkler", e.Key)
}

var definitions = []Column{
	{
		Key:         "project",
		Label:       "Project",
		Description: "Prosjektet repositoriet tilhører",
		Extract:     func(src models.RowSource) string { return src.Project.Name },
	},
	{
		Key:         "repository",
		Label:       "Repository",
		Description: "Repository-navn innenfor prosjektet",
		Extract:     func(src models.RowSource) string { return src.Repo.Name },
	},
	{
		Key:         "artifacts",
		Label:       "Artifacts",
		Description: "Antall artifacts i repositoriet",
		Extract: func(src models.RowSource) string {
			return strconv.FormatInt(src.Repo.ArtifactCount, 10)
		},
	},
	{
		Key:         "pull_count",
		Label:       "Pull Count",
		Description: "Antall pulls på tvers av alle artifacts i repositoriet",
		Extract: func(src models.RowSource) string {
			return strconv.FormatInt(src.Repo.PullCount, 10)
		},
	},
	{
		Key:         "last_updated",
		Label:       "Last Updated",
		Description: "Sist oppdatert-tidspunkt rapportert av Harbor",
		Extract: func(src models.RowSource) string {
			return FormatTimestamp(src.Repo.UpdateTime)
		},
	},
	{
		Key:         "description",
		Label:       "Description",
		Description: "Repository-beskrivelse hvis tilgjengelig",
		Extract: func(src models.RowSource) string {
			desc := strings.TrimSpace(src.Repo.Description)
			if desc == "" {
				return Placeholder
			}
			return desc
		},
	},
	{
		Key:            "total_size",
		Label:          "Total Size",
		Description:    "Samlet størrelse på alle artifacts i repositoriet",
		NeedsArtifacts: true,
		Extract: func(src models.RowSource) string {
			if src.Artifacts == nil {
				return Placeholder
			}
			return ByteSize(src.Artifacts.TotalSizeBytes)
		},
	},
	{
		Key:            "last_pushed",
		Label:          "Last Pushed",
		Description:    "Push-tidspunkt for nyeste artifact i repositoriet",
		NeedsArtifacts: true,
		Extract: func(src models.RowSource) string {
			if src.Artifacts == nil {
				return Placeholder
			}
			return FormatTimestamp(src.Artifacts.LastPushed)
		},
	},
}

var byKey = map[string]Column{}

func init() {
	for _, col := range definitions {
		byKey[col.Key] = col
	}
}

// All returnerer alle kolonner i definisjonsrekkefølge.
func All() []Column {
	out := make([]Column, len(definitions))
	copy(out, definitions)
	return out
}

// AllKeys returnerer alle nøkler i definisjonsrekkefølge.
func AllKeys() []string {
	keys := make([]string, 0, len(definitions))
	for _, col := range definitions {
		keys = append(keys, col.Key)
	}
	return keys
}

// Describe returnerer etiketten for en nøkkel, og om nøkkelen finnes.
func Describe(key string) (string, bool) {
	col, ok := byKey[key]
	if !ok {
		return "", false
	}
	return col.Label, true
}

// Resolve slår opp de forespurte nøklene. Tom forespørsel betyr alle
// kolonner. Duplikater kollapses – første forekomst vinner plasseringen.
func Resolve(requested []string) ([]Column, error) {
	if len(requested) == 0 {
		return All(), nil
	}

	seen := map[string]bool{}
	var resolved []Column
	for _, key := range requested {
		if seen[key] {
			continue
		}
		col, ok := byKey[key]
		if !ok {
			return nil, &UnknownColumnError{Key: key}
		}
		seen[key] = true
		resolved = append(resolved, col)
	}
	return resolved, nil
}

// NeedsArtifacts sier om noen av kolonnene krever artifact-listing.
func NeedsArtifacts(cols []Column) bool {
	for _, col := range cols {
		if col.NeedsArtifacts {
			return true
		}
	}
	return false
}

// FormatTimestamp gjør en RFC3339-timestamp om til et lesbart UTC-tidspunkt.
// Uparsbare verdier returneres som de er, tomme blir placeholder.
func FormatTimestamp(value string) string {
	if value == "" {
		return Placeholder
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return value
	}
	return t.UTC().Format("2006-01-02 15:04 UTC")
}

// ByteSize formatterer bytes menneskelig lesbart.
func ByteSize(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
