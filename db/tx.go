package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Tx is a sql transaction running callbacks once it is committed or rolled back
type Tx struct {
	*sql.Tx
	rollbackCallbacks []func()
	commitCallbacks   []func()
}

func NewTx(ctx context.Context, db *sql.DB) (*Tx, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &Tx{Tx: tx}, nil
}

// RunInTx runs fn in a transaction that is committed when fn succeeds and
// rolled back otherwise
func RunInTx(ctx context.Context, db *sql.DB, fn func(tx Txer) error) error {
	tx, err := NewTx(ctx, db)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		if errRllbck := tx.Rollback(); errRllbck != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, errRllbck) //nolint:errorlint
		}
		return err
	}
	return tx.Commit()
}

func (s *Tx) AddRollbackCallback(cb func()) {
	s.rollbackCallbacks = append(s.rollbackCallbacks, cb)
}

func (s *Tx) AddCommitCallback(cb func()) {
	s.commitCallbacks = append(s.commitCallbacks, cb)
}

// Commit commits the transaction, then runs the commit callbacks in order
func (s *Tx) Commit() error {
	if err := s.Tx.Commit(); err != nil {
		return err
	}
	runCallbacks(s.commitCallbacks)
	return nil
}

// Rollback aborts the transaction, then runs the rollback callbacks in order
func (s *Tx) Rollback() error {
	if err := s.Tx.Rollback(); err != nil {
		return err
	}
	runCallbacks(s.rollbackCallbacks)
	return nil
}

func runCallbacks(cbs []func()) {
	for _, cb := range cbs {
		cb()
	}
}
