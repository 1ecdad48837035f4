package store

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const migrationDir = "migrations"

// goose keeps its filesystem, dialect and logger in package globals.
var migrationMu sync.Mutex

// gooseLogger sends goose output to slog instead of stdout.
type gooseLogger struct {
	logger *slog.Logger
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.logger.Debug(fmt.Sprintf(format, v...), "component", "migrate")
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.logger.Error(fmt.Sprintf(format, v...), "component", "migrate")
}

func withGoose(logger *slog.Logger, fn func() error) error {
	migrationMu.Lock()
	defer migrationMu.Unlock()

	goose.SetLogger(gooseLogger{logger: logger})
	goose.SetBaseFS(migrationFiles)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return fn()
}

// migrateUp applies every pending migration.
func migrateUp(db *sql.DB, logger *slog.Logger) error {
	return withGoose(logger, func() error {
		if err := goose.Up(db, migrationDir); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		return nil
	})
}

// SchemaVersion returns the applied migration version.
func (s *Store) SchemaVersion() (int64, error) {
	var version int64
	err := withGoose(s.logger, func() error {
		v, err := goose.GetDBVersion(s.db)
		version = v
		return err
	})
	return version, err
}
