// README: Schema migrations via golang-migrate (file source, postgres driver).
package infra

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// WaitForDB pings the database until it answers or attempts run out.
func WaitForDB(dsn string, attempts int, delay time.Duration) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	for i := 1; ; i++ {
		err = db.Ping()
		if err == nil {
			return nil
		}
		if i >= attempts {
			return fmt.Errorf("database not ready after %d attempts: %w", attempts, err)
		}
		logrus.WithField("attempt", i).Info("waiting for the database to be ready")
		time.Sleep(delay)
	}
}

// Migrate applies every pending up migration from source (e.g. "file://migrations").
func Migrate(dsn, source string) error {
	m, err := migrate.New(source, dsn)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	v, dirty, _ := m.Version()
	logrus.WithFields(logrus.Fields{"version": v, "dirty": dirty}).Info("migrations applied")
	return nil
}

// MigrateDown reverts the last steps migrations. steps <= 0 reverts everything.
func MigrateDown(dsn, source string, steps int) error {
	m, err := migrate.New(source, dsn)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	defer m.Close()

	if steps > 0 {
		err = m.Steps(-steps)
	} else {
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}
