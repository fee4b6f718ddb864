package sqlite

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// MigrateUp applies every pending migration found in dir to the database at path.
// It reports whether any migration was applied.
func MigrateUp(dir, path string) (applied bool, err error) {
	m, err := newMigrator(dir, path)
	if err != nil {
		return false, err
	}
	defer func() {
		if cerr := closeMigrator(m); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err = m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return false, nil
		}
		return false, fmt.Errorf("migrate up: %w", err)
	}
	return true, nil
}

// MigrateDown reverts every applied migration.
func MigrateDown(dir, path string) (err error) {
	m, err := newMigrator(dir, path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeMigrator(m); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err = m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

func newMigrator(dir, path string) (*migrate.Migrate, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve migrations dir: %w", err)
	}
	sourceURL := fmt.Sprintf("file://%s", filepath.ToSlash(abs))
	m, err := migrate.New(sourceURL, databaseURL(path))
	if err != nil {
		return nil, fmt.Errorf("init migrate: %w", err)
	}
	return m, nil
}

// databaseURL turns a go-sqlite3 DSN (optionally prefixed with file:) into a migrate URL.
func databaseURL(path string) string {
	path = strings.TrimPrefix(path, "file:")
	return "sqlite3://" + path
}

func closeMigrator(m *migrate.Migrate) error {
	if m == nil {
		return nil
	}
	sourceErr, dbErr := m.Close()
	if sourceErr != nil && dbErr != nil {
		return fmt.Errorf("close migrator: source: %v; database: %v", sourceErr, dbErr)
	}
	if sourceErr != nil {
		return fmt.Errorf("close migrator: source: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("close migrator: database: %w", dbErr)
	}
	return nil
}
