// Package sqlitetest provides migrated throwaway ledger databases for tests.
package sqlitetest

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/repository/sqlite"
)

type nopMetrics struct{}

func (nopMetrics) Observe(string, error, time.Time) {}

// New returns a repository over a fresh, fully migrated database in t's temp dir.
func New(t testing.TB) *sqlite.Repository {
	t.Helper()

	root, err := moduleRoot()
	if err != nil {
		t.Fatalf("module root: %v", err)
	}
	path := filepath.Join(t.TempDir(), "ledger.db")
	if _, err := sqlite.MigrateUp(filepath.Join(root, "migrations", "sqlite"), path); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	repo, err := sqlite.NewRepository(path+"?_busy_timeout=5000", nopMetrics{})
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() {
		_ = repo.Close()
	})
	return repo
}

func moduleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working dir: %w", err)
	}
	for {
		if _, statErr := os.Stat(filepath.Join(dir, "go.mod")); statErr == nil {
			return dir, nil
		}
		next := filepath.Dir(dir)
		if next == dir {
			return "", fmt.Errorf("go.mod not found from %s", dir)
		}
		dir = next
	}
}
