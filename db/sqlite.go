package db

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const (
	// UniqueConstrain is the extended sqlite code of a primary key violation
	UniqueConstrain = 1555
)

var (
	ErrNotFound = errors.New("not found")
)

// busyTimeoutMs is how long a connection waits for a lock held by another one
const busyTimeoutMs = 5000

// NewSQLiteDB opens the SQLite file at dbPath, creating it if needed.
// Connections wait up to busyTimeoutMs for a lock before failing.
func NewSQLiteDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_busy_timeout=%d&_foreign_keys=on", dbPath, busyTimeoutMs))
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(`
		pragma journal_mode = WAL;
		pragma synchronous = normal;
		pragma journal_size_limit  = 6144000;
	`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error setting up sqlite %s: %w", dbPath, err)
	}
	return db, nil
}

func ReturnErrNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// IsUniqueViolation tells whether err is a primary key violation
func IsUniqueViolation(err error) bool {
	sqliteErr, ok := SQLiteErr(err)
	return ok && int(sqliteErr.ExtendedCode) == UniqueConstrain
}
