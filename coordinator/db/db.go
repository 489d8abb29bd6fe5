package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/0xPolygon/zero-coordinator/coordinator/db/migrations"
	"github.com/0xPolygon/zero-coordinator/db"
	"github.com/0xPolygon/zero-coordinator/log"
	"github.com/google/uuid"
	"github.com/russross/meddler"
)

const requestTable = "prove_request"

// ErrInvalidTransition is returned when a request is moved out of a final status
var ErrInvalidTransition = errors.New("invalid request status transition")

// Status is the stage of a prove request.
type Status string

const (
	StatusQueued     Status = "queued"
	StatusFetching   Status = "fetching"
	StatusSubmitting Status = "submitting"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// IsFinal tells whether no further transition is possible
func (s Status) IsFinal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Request is the ledger entry of a prove request, also used to benchmark runs.
type Request struct {
	ID            uuid.UUID     `meddler:"id,uuid"`
	RunName       string        `meddler:"run_name"`
	Source        string        `meddler:"source"`
	Status        Status        `meddler:"status"`
	BlockCount    int           `meddler:"block_count"`
	FirstBlock    *uint64       `meddler:"first_block"`
	LastBlock     *uint64       `meddler:"last_block"`
	FetchDuration time.Duration `meddler:"fetch_duration_ms,duration"`
	ProveDuration time.Duration `meddler:"prove_duration_ms,duration"`
	Error         *string       `meddler:"error"`
	ReceivedAt    int64         `meddler:"received_at"`
	UpdatedAt     int64         `meddler:"updated_at"`
}

// RequestStorage is the sqlite ledger of the prove requests.
type RequestStorage struct {
	db     *sql.DB
	logger *log.Logger
}

// NewRequestStorage opens (creating if needed) the ledger at dbPath
func NewRequestStorage(logger *log.Logger, dbPath string) (*RequestStorage, error) {
	database, err := db.NewSQLiteDB(dbPath)
	if err != nil {
		return nil, err
	}
	if err := migrations.RunMigrations(logger, database); err != nil {
		_ = database.Close()
		return nil, err
	}
	return &RequestStorage{db: database, logger: logger}, nil
}

// Insert adds a new request to the ledger
func (s *RequestStorage) Insert(ctx context.Context, req *Request) error {
	now := time.Now().Unix()
	if req.ReceivedAt == 0 {
		req.ReceivedAt = now
	}
	req.UpdatedAt = now
	if err := meddler.Insert(s.db, requestTable, req); err != nil {
		if db.IsUniqueViolation(err) {
			return fmt.Errorf("request %s already exists: %w", req.ID, err)
		}
		return err
	}
	return nil
}

// Get returns the request with id, db.ErrNotFound when unknown
func (s *RequestStorage) Get(id uuid.UUID) (*Request, error) {
	return getRequest(s.db, id)
}

func getRequest(q meddler.DB, id uuid.UUID) (*Request, error) {
	var req Request
	if err := meddler.QueryRow(q, &req, "SELECT * FROM prove_request WHERE id = $1;", id.String()); err != nil {
		return nil, db.ReturnErrNotFound(err)
	}
	return &req, nil
}

// Update applies fn to the request with id and stores the result. A request
// in a final status can't change.
func (s *RequestStorage) Update(ctx context.Context, id uuid.UUID, fn func(req *Request)) error {
	return db.RunInTx(ctx, s.db, func(tx db.Txer) error {
		req, err := getRequest(tx, id)
		if err != nil {
			return err
		}
		if req.Status.IsFinal() {
			return fmt.Errorf("%w: request %s is already %s", ErrInvalidTransition, id, req.Status)
		}
		from := req.Status
		fn(req)
		req.UpdatedAt = time.Now().Unix()
		if err := updateRequest(tx, req); err != nil {
			return err
		}
		if from != req.Status {
			tx.AddCommitCallback(func() {
				s.logger.Debugf("request %s: %s -> %s", id, from, req.Status)
			})
		}
		return nil
	})
}

// meddler only handles integer primary keys, so updates are written by hand
func updateRequest(tx db.Txer, req *Request) error {
	_, err := tx.Exec(`UPDATE prove_request SET
		status = $1, block_count = $2, first_block = $3, last_block = $4,
		fetch_duration_ms = $5, prove_duration_ms = $6, error = $7, updated_at = $8
		WHERE id = $9`,
		req.Status, req.BlockCount, req.FirstBlock, req.LastBlock,
		req.FetchDuration.Milliseconds(), req.ProveDuration.Milliseconds(),
		req.Error, req.UpdatedAt, req.ID.String())
	return err
}

// SetStatus moves the request to status
func (s *RequestStorage) SetStatus(ctx context.Context, id uuid.UUID, status Status) error {
	return s.Update(ctx, id, func(req *Request) { req.Status = status })
}

// ListByStatus returns the requests in any of statuses, oldest first
func (s *RequestStorage) ListByStatus(statuses ...Status) ([]*Request, error) {
	query := "SELECT * FROM prove_request"
	args := make([]interface{}, len(statuses))
	if len(statuses) > 0 {
		placeholders := make([]string, len(statuses))
		for i := range statuses {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
			args[i] = statuses[i]
		}
		query += " WHERE status IN (" + strings.Join(placeholders, ", ") + ")"
	}
	query += " ORDER BY received_at ASC, rowid ASC"

	var requests []*Request
	if err := meddler.QueryAll(s.db, &requests, query, args...); err != nil {
		return nil, err
	}
	return requests, nil
}

// FailInterrupted marks as failed the requests a previous run left unfinished
func (s *RequestStorage) FailInterrupted(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE prove_request SET status = $1, error = $2, updated_at = $3 WHERE status NOT IN ($4, $5)`,
		StatusFailed, "interrupted by a restart", time.Now().Unix(), StatusCompleted, StatusFailed)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Close closes the database
func (s *RequestStorage) Close() error {
	return s.db.Close()
}
