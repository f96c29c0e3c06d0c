package database

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"sith-voyages/pkg/utils"
)

// Migrate applies the users/sessions schema. No pending migrations is not an error.
func Migrate(config utils.DatabaseConfig) error {
	if config.MigrationsPath == "" {
		return nil
	}

	m, err := migrate.New(config.MigrationsPath, ConnString(config))
	if err != nil {
		return fmt.Errorf("open migrations %s: %w", config.MigrationsPath, err)
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
