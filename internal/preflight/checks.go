package preflight

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"

	"recipebox/internal/config"
	"recipebox/internal/recipes"
)

// StoreReader is the read surface the store checks need.
type StoreReader interface {
	Path() string
	Ping(ctx context.Context) error
	ListCookbooks(ctx context.Context) ([]recipes.Cookbook, error)
	CheckIntegrity(ctx context.Context) (recipes.IntegrityReport, error)
}

// CheckConfig validates the loaded configuration.
func CheckConfig(cfg *config.Config) Result {
	const name = "Configuration"
	if err := cfg.Validate(); err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	return Result{Name: name, Passed: true, Detail: "valid"}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckDatabase pings the opened store.
func CheckDatabase(ctx context.Context, store StoreReader) Result {
	const name = "Database"
	if err := store.Ping(ctx); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", store.Path(), err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (schema ok)", store.Path())}
}

// CheckDefaultCookbook confirms at least one cookbook exists and reports
// whether the configured default is among them.
func CheckDefaultCookbook(ctx context.Context, store StoreReader, defaultName string) Result {
	const name = "Default cookbook"
	cookbooks, err := store.ListCookbooks(ctx)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	if len(cookbooks) == 0 {
		return Result{Name: name, Detail: "no cookbooks"}
	}
	for _, c := range cookbooks {
		if strings.EqualFold(c.Name, strings.TrimSpace(defaultName)) {
			return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%q (id %d)", c.Name, c.ID)}
		}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%q renamed or removed; %d cookbooks present", defaultName, len(cookbooks))}
}

// CheckIntegrity reports child rows left without an owner.
func CheckIntegrity(ctx context.Context, store StoreReader) Result {
	const name = "Integrity"
	report, err := store.CheckIntegrity(ctx)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	if report.Clean() {
		return Result{Name: name, Passed: true, Detail: "no orphan rows"}
	}
	return Result{Name: name, Detail: fmt.Sprintf(
		"orphans: recipes=%d ingredients=%d steps=%d notes=%d tag_links=%d likes=%d",
		report.OrphanRecipes, report.OrphanIngredients, report.OrphanSteps,
		report.OrphanNotes, report.OrphanTagLinks, report.OrphanLikes,
	)}
}
