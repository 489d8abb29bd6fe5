package db

import (
	"database/sql"
	"fmt"

	"github.com/0xPolygon/zero-coordinator/log"
	migrate "github.com/rubenv/sql-migrate"
)

// UpDownSeparator splits a migration file in its down and up parts
const UpDownSeparator = "-- +migrate Up"

// RunMigrationsDB applies the pending up migrations on an open database
func RunMigrationsDB(logger *log.Logger, db *sql.DB, migrations migrate.MigrationSource) error {
	nMigrations, err := migrate.Exec(db, "sqlite3", migrations, migrate.Up)
	if err != nil {
		return fmt.Errorf("error executing migration %w", err)
	}

	logger.Infof("successfully ran %d migrations", nMigrations)
	return nil
}
