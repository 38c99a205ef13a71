package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type StorageType string

const (
	StorageFile     StorageType = "file"
	StoragePostgres StorageType = "postgres"
	StorageBigQuery StorageType = "bigquery"
)

const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

// Standard filnavn når SUMMARY_OUTPUT ikke er satt.
const (
	DefaultHTMLOutput     = "harbor_summary.html"
	DefaultMarkdownOutput = "harbor_summary.md"
)

type Config struct {
	BaseURL        string
	Username       string
	Password       string
	Token          string // robot- eller bruker-token, sendes som Bearer og vinner over brukernavn/passord
	Insecure       bool
	TimeoutSeconds int
	PageSize       int
	Projects       []string // tomt betyr alle prosjekter
	Columns        []string // tomt betyr alle registrerte kolonner
	Format         string
	Output         string
	Storage        StorageType
	PostgresDSN    string
	BQProjectID    string
	BQDataset      string
	BQTable        string
	BQCredentials  string // valgfritt hvis GCP auth skjer automatisk
	Debug          bool
}

// LoadConfigWithEnv bygger en konfigurasjon fra en getenv-funksjon, for
// testbarhet. Validering skjer separat i ValidateConfig.
func LoadConfigWithEnv(getenv func(string) string) Config {
	cfg := Config{
		BaseURL:        strings.TrimSuffix(getenv("HARBOR_URL"), "/"),
		Username:       getenv("HARBOR_USERNAME"),
		Password:       getenv("HARBOR_PASSWORD"),
		Token:          getenv("HARBOR_TOKEN"),
		Insecure:       getenv("HARBOR_INSECURE") == "true",
		TimeoutSeconds: 30,
		PageSize:       100,
		Projects:       splitList(getenv("HARBOR_PROJECTS"), false),
		Columns:        splitList(getenv("SUMMARY_COLUMNS"), true),
		Format:         getenv("SUMMARY_FORMAT"),
		Output:         getenv("SUMMARY_OUTPUT"),
		Storage:        StorageType(getenv("SUMMARY_STORAGE")),
		PostgresDSN:    getenv("POSTGRES_DSN"),
		BQProjectID:    getenv("BQ_PROJECT_ID"),
		BQDataset:      getenv("BQ_DATASET"),
		BQTable:        getenv("BQ_TABLE"),
		BQCredentials:  getenv("BQ_CREDENTIALS"),
		Debug:          getenv("HARBORSNUSERN_DEBUG") == "true",
	}

	if t := getenv("HARBOR_TIMEOUT"); t != "" {
		if v, err := strconv.Atoi(t); err == nil {
			cfg.TimeoutSeconds = v
		} else {
			cfg.TimeoutSeconds = -1 // fanges i ValidateConfig
		}
	}
	if p := getenv("HARBOR_PAGESIZE"); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			cfg.PageSize = v
		} else {
			cfg.PageSize = -1
		}
	}

	if cfg.Storage == "" {
		cfg.Storage = StorageFile
	}
	if cfg.Format == "" {
		cfg.Format = inferFormat(cfg.Output)
	}
	if cfg.Output == "" {
		if cfg.Format == FormatMarkdown {
			cfg.Output = DefaultMarkdownOutput
		} else {
			cfg.Output = DefaultHTMLOutput
		}
	}

	return cfg
}

func ValidateConfig(cfg Config) error {
	if cfg.BaseURL == "" {
		return errors.New("HARBOR_URL må være satt")
	}
	if cfg.Token == "" && cfg.Username == "" {
		return errors.New("HARBOR_TOKEN eller HARBOR_USERNAME/HARBOR_PASSWORD må være satt")
	}
	if cfg.Token == "" && cfg.Password == "" {
		return errors.New("HARBOR_PASSWORD må være satt når HARBOR_USERNAME brukes")
	}
	if cfg.TimeoutSeconds <= 0 {
		return errors.New("HARBOR_TIMEOUT må være et positivt heltall")
	}
	if cfg.PageSize <= 0 {
		return errors.New("HARBOR_PAGESIZE må være et positivt heltall")
	}
	if cfg.Format != FormatHTML && cfg.Format != FormatMarkdown {
		return errors.New("SUMMARY_FORMAT må være 'html' eller 'markdown'")
	}

	switch cfg.Storage {
	case StorageFile:
		if cfg.Output == "" {
			return errors.New("SUMMARY_OUTPUT må være satt for fil-lagring")
		}
	case StoragePostgres:
		if cfg.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN må være satt for postgres-lagring")
		}
	case StorageBigQuery:
		if cfg.BQProjectID == "" || cfg.BQDataset == "" || cfg.BQTable == "" {
			return errors.New("BQ_PROJECT_ID, BQ_DATASET og BQ_TABLE må være satt for bigquery-lagring")
		}
	default:
		return errors.New("ugyldig verdi for SUMMARY_STORAGE – må være 'file', 'postgres' eller 'bigquery'")
	}

	return nil
}

// LoadAndValidateConfig leser konfigurasjonen fra prosessens miljø.
func LoadAndValidateConfig() (Config, error) {
	cfg := LoadConfigWithEnv(os.Getenv)
	if err := ValidateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// inferFormat gjetter format ut fra filendelsen på SUMMARY_OUTPUT.
func inferFormat(output string) string {
	switch strings.ToLower(filepath.Ext(output)) {
	case ".md", ".markdown":
		return FormatMarkdown
	default:
		return FormatHTML
	}
}

// splitList deler en kommaseparert liste og fjerner tomme elementer.
// Prosjektnavn beholder casing (filteret er case-sensitivt), kolonnenøkler
// normaliseres til lowercase.
func splitList(raw string, lower bool) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if lower {
			tok = strings.ToLower(tok)
		}
		out = append(out, tok)
	}
	return out
}
