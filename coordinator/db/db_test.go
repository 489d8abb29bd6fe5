package db

import (
	"context"
	"path"
	"testing"
	"time"

	"github.com/0xPolygon/zero-coordinator/db"
	"github.com/0xPolygon/zero-coordinator/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *RequestStorage {
	t.Helper()

	storage, err := NewRequestStorage(log.WithFields("module", "coordinator-db"), path.Join(t.TempDir(), "ledger.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })

	return storage
}

func Test_RequestStorage(t *testing.T) {
	ctx := context.Background()
	storage := newTestStorage(t)

	t.Run("InsertAndGet", func(t *testing.T) {
		req := &Request{
			ID:      uuid.New(),
			RunName: "run-a",
			Source:  "rpc",
			Status:  StatusQueued,
		}
		require.NoError(t, storage.Insert(ctx, req))

		fromDB, err := storage.Get(req.ID)
		require.NoError(t, err)
		require.Equal(t, req, fromDB)
		require.NotZero(t, fromDB.ReceivedAt)
	})

	t.Run("InsertDuplicate", func(t *testing.T) {
		req := &Request{ID: uuid.New(), RunName: "dup", Source: "localFile", Status: StatusQueued}
		require.NoError(t, storage.Insert(ctx, req))

		err := storage.Insert(ctx, req)
		require.Error(t, err)
		require.True(t, db.IsUniqueViolation(err))
	})

	t.Run("GetUnknown", func(t *testing.T) {
		_, err := storage.Get(uuid.New())
		require.ErrorIs(t, err, db.ErrNotFound)
	})

	t.Run("UpdateLifecycle", func(t *testing.T) {
		req := &Request{ID: uuid.New(), RunName: "bench", Source: "rpc", Status: StatusQueued}
		require.NoError(t, storage.Insert(ctx, req))

		require.NoError(t, storage.SetStatus(ctx, req.ID, StatusFetching))
		first, last := uint64(10), uint64(12)
		require.NoError(t, storage.Update(ctx, req.ID, func(r *Request) {
			r.Status = StatusSubmitting
			r.BlockCount = 3
			r.FirstBlock = &first
			r.LastBlock = &last
			r.FetchDuration = 1500 * time.Millisecond
		}))
		require.NoError(t, storage.Update(ctx, req.ID, func(r *Request) {
			r.Status = StatusCompleted
			r.ProveDuration = 2 * time.Second
		}))

		fromDB, err := storage.Get(req.ID)
		require.NoError(t, err)
		require.Equal(t, StatusCompleted, fromDB.Status)
		require.Equal(t, 3, fromDB.BlockCount)
		require.Equal(t, first, *fromDB.FirstBlock)
		require.Equal(t, last, *fromDB.LastBlock)
		require.Equal(t, 1500*time.Millisecond, fromDB.FetchDuration)
		require.Equal(t, 2*time.Second, fromDB.ProveDuration)
		require.Nil(t, fromDB.Error)

		err = storage.SetStatus(ctx, req.ID, StatusFailed)
		require.ErrorIs(t, err, ErrInvalidTransition)

		fromDB, err = storage.Get(req.ID)
		require.NoError(t, err)
		require.Equal(t, StatusCompleted, fromDB.Status)
	})

	t.Run("UpdateUnknown", func(t *testing.T) {
		err := storage.SetStatus(ctx, uuid.New(), StatusFetching)
		require.ErrorIs(t, err, db.ErrNotFound)
	})
}

func Test_ListByStatusAndFailInterrupted(t *testing.T) {
	ctx := context.Background()
	storage := newTestStorage(t)

	statuses := []Status{StatusQueued, StatusFetching, StatusSubmitting, StatusCompleted, StatusFailed}
	ids := make([]uuid.UUID, len(statuses))
	for i, status := range statuses {
		ids[i] = uuid.New()
		require.NoError(t, storage.Insert(ctx, &Request{
			ID:         ids[i],
			RunName:    "r",
			Source:     "rpc",
			Status:     status,
			ReceivedAt: int64(100 + i),
		}))
	}

	all, err := storage.ListByStatus()
	require.NoError(t, err)
	require.Len(t, all, len(statuses))
	for i, req := range all {
		require.Equal(t, ids[i], req.ID)
	}

	pending, err := storage.ListByStatus(StatusQueued, StatusFetching, StatusSubmitting)
	require.NoError(t, err)
	require.Len(t, pending, 3)

	n, err := storage.FailInterrupted(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(3), n)

	failed, err := storage.ListByStatus(StatusFailed)
	require.NoError(t, err)
	require.Len(t, failed, 4)
	for _, req := range failed[:3] {
		require.NotNil(t, req.Error)
		require.Equal(t, "interrupted by a restart", *req.Error)
	}

	pending, err = storage.ListByStatus(StatusQueued, StatusFetching, StatusSubmitting)
	require.NoError(t, err)
	require.Empty(t, pending)
}

func TestStatusIsFinal(t *testing.T) {
	require.False(t, StatusQueued.IsFinal())
	require.False(t, StatusFetching.IsFinal())
	require.False(t, StatusSubmitting.IsFinal())
	require.True(t, StatusCompleted.IsFinal())
	require.True(t, StatusFailed.IsFinal())
}
