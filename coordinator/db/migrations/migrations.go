package migrations

import (
	"database/sql"
	_ "embed"
	"strings"

	"github.com/0xPolygon/zero-coordinator/db"
	"github.com/0xPolygon/zero-coordinator/log"
	migrate "github.com/rubenv/sql-migrate"
)

//go:embed 0001.sql
var mig001 string
var mig001splitted = strings.Split(mig001, db.UpDownSeparator)

var Migrations = &migrate.MemoryMigrationSource{
	Migrations: []*migrate.Migration{
		{
			Id:   "coordinator0001",
			Up:   []string{mig001splitted[1]},
			Down: []string{mig001splitted[0]},
		},
	},
}

func RunMigrations(logger *log.Logger, database *sql.DB) error {
	return db.RunMigrationsDB(logger, database, Migrations)
}
