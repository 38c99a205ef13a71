// Den raske "bare vis meg prosjektene"-kommandoen. Går aldri ned i
// repositories eller artifacts.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonmartinstorm/harborsnusern/internal/collector"
	"github.com/jonmartinstorm/harborsnusern/internal/config"
	"github.com/jonmartinstorm/harborsnusern/internal/harbor"
	"github.com/jonmartinstorm/harborsnusern/internal/runner"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	cfg, err := config.LoadAndValidateConfig()
	if err != nil {
		slog.Error("Ugyldig konfigurasjon", "error", err)
		os.Exit(1)
	}
	runner.SetupLogger(cfg.Debug)

	coll := collector.New(cfg, harbor.NewClient(cfg))

	projects, err := coll.ListProjects(ctx)
	if err != nil {
		slog.Error("Klarte ikke å liste prosjekter", "error", err)
		os.Exit(1)
	}

	if len(projects) == 0 {
		fmt.Println("Ingen prosjekter funnet.")
		return
	}
	for _, p := range projects {
		fmt.Printf("%s (%d repositories)\n", p.Name, p.RepoCount)
	}
}
