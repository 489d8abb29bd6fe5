package coordinator

import (
	"context"

	"github.com/0xPolygon/zero-coordinator/coordinator/db"
	"github.com/0xPolygon/zero-coordinator/fetch"
	"github.com/0xPolygon/zero-coordinator/prover"
	"github.com/0xPolygon/zero-coordinator/runtime"
	"github.com/google/uuid"
)

// Fetcher resolves the block inputs of a source
type Fetcher interface {
	Fetch(ctx context.Context, source *fetch.BlockSource) (*fetch.Result, error)
}

// ProofRuntime proves the blocks of a job
type ProofRuntime interface {
	Prove(ctx context.Context, job runtime.Job) ([]prover.Proof, error)
}

// ProofWriter persists the outcome of a run
type ProofWriter interface {
	WriteProofs(ctx context.Context, runName string, proofs []prover.Proof) error
	WriteInputs(ctx context.Context, runName string, inputs []prover.BlockProverInput) error
}

// RequestStorer is the ledger of the prove requests
type RequestStorer interface {
	Insert(ctx context.Context, req *db.Request) error
	Get(id uuid.UUID) (*db.Request, error)
	Update(ctx context.Context, id uuid.UUID, fn func(req *db.Request)) error
	SetStatus(ctx context.Context, id uuid.UUID, status db.Status) error
}
