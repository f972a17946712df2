package migrations

import (
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Do applies every pending up migration from dir.
func Do(connectionString, dir string, logger *slog.Logger) (err error) {
	m, err := migrate.New("file://"+dir, connectionString)
	if err != nil {
		return errors.Wrap(err, "init migrations")
	}
	defer func() {
		srcErr, dbErr := m.Close()
		err = multierr.Combine(err, srcErr, dbErr)
	}()

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Debug("migrations: no change")
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "apply migrations")
	}

	version, dirty, err := m.Version()
	if err != nil {
		return errors.Wrap(err, "read migration version")
	}
	logger.Info("migrations applied", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))

	return nil
}
