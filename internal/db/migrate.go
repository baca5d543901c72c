package db

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"donation-kiosk/db/migrations"
)

// ErrDirtyDatabase is returned when a previous migration stopped halfway and
// the schema needs manual repair before the service can start.
var ErrDirtyDatabase = errors.New("database is in dirty state")

// Migrate brings the schema at addr to migrations.Version. Running it on an
// up-to-date database is a no-op.
func Migrate(addr string, logger *slog.Logger) error {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("open migration source: %w", err)
	}
	defer src.Close()

	mg, err := migrate.NewWithSourceInstance("iofs", src, addr)
	if err != nil {
		return fmt.Errorf("connect migrator: %w", err)
	}
	defer mg.Close()

	from, dirty, err := mg.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		from = 0
	case err != nil:
		return fmt.Errorf("read schema version: %w", err)
	}
	if dirty {
		return fmt.Errorf("%w at version %d", ErrDirtyDatabase, from)
	}

	if from == migrations.Version {
		logger.Info("schema up to date", slog.Uint64("version", uint64(from)))
		return nil
	}
	if err = mg.Migrate(migrations.Version); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate %d -> %d: %w", from, migrations.Version, err)
	}
	logger.Info("schema migrated",
		slog.Uint64("from", uint64(from)),
		slog.Uint64("to", uint64(migrations.Version)))
	return nil
}
