package preflight

import (
	"context"
	"log/slog"

	"recipebox/internal/config"
	"recipebox/internal/recipes"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// AllPassed reports whether every result passed.
func AllPassed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}

// RunAll executes every check for the given config. Store checks run only
// when the database opens.
func RunAll(ctx context.Context, cfg *config.Config, logger *slog.Logger) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{CheckConfig(cfg)}
	if err := cfg.EnsureDirectories(); err != nil {
		results = append(results, Result{Name: "Directories", Detail: err.Error()})
		return results
	}
	results = append(results, CheckDirectoryAccess("Data directory", cfg.Paths.DataDir))
	if cfg.Paths.LogDir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	}

	store, err := recipes.Open(cfg, logger)
	if err != nil {
		results = append(results, Result{Name: "Database", Detail: err.Error()})
		return results
	}
	defer store.Close()

	results = append(results,
		CheckDatabase(ctx, store),
		CheckDefaultCookbook(ctx, store, cfg.Store.DefaultCookbook),
		CheckIntegrity(ctx, store),
	)
	return results
}
