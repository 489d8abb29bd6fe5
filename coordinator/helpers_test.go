package coordinator_test

import (
	"context"
	"encoding/json"
	"math/big"
	"path"
	"testing"

	"github.com/0xPolygon/zero-coordinator/coordinator"
	"github.com/0xPolygon/zero-coordinator/coordinator/db"
	"github.com/0xPolygon/zero-coordinator/log"
	"github.com/0xPolygon/zero-coordinator/prover"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newLedger(t *testing.T) *db.RequestStorage {
	t.Helper()

	ledger, err := db.NewRequestStorage(log.WithFields("module", "coordinator-db"), path.Join(t.TempDir(), "ledger.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = ledger.Close() })
	return ledger
}

func blockInput(n int64) prover.BlockProverInput {
	var input prover.BlockProverInput
	input.BlockTrace = json.RawMessage(`{"txn_info":[]}`)
	input.OtherData.BData.BMeta.BlockNumber = (*hexutil.Big)(big.NewInt(n))
	return input
}

func blockProofs(inputs []prover.BlockProverInput) []prover.Proof {
	proofs := make([]prover.Proof, len(inputs))
	for i := range inputs {
		proofs[i] = prover.Proof{BlockNumber: inputs[i].BlockNumber(), Intern: json.RawMessage(`"0x01"`)}
	}
	return proofs
}

// queueRequest records req in the ledger the way the intake server does and queues it
func queueRequest(t *testing.T, q *coordinator.Queue, ledger *db.RequestStorage, req *coordinator.ProveRequest) {
	t.Helper()

	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	if req.RunName == "" {
		req.RunName = "test"
	}
	if req.ProverConfig == (prover.Config{}) {
		req.ProverConfig = prover.DefaultConfig()
	}
	require.NoError(t, ledger.Insert(context.Background(), &db.Request{
		ID:      req.ID,
		RunName: req.RunName,
		Source:  req.SourceName(),
		Status:  db.StatusQueued,
	}))
	require.NoError(t, q.Enqueue(context.Background(), req))
}
