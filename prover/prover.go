package prover

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/0xPolygon/zero-coordinator/log"
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"
)

var (
	ErrInvalidConfig = errors.New("invalid prover config")   //nolint:revive
	ErrInvalidInput  = errors.New("invalid block input")     //nolint:revive
	ErrProofCanceled = errors.New("proof has been canceled") //nolint:revive
)

// Prover generates the proof of a single block.
type Prover interface {
	Prove(ctx context.Context, input BlockProverInput, cfg Config) (*Proof, error)
}

// TestOnlyProver checks the witness of a block without generating a real
// proof. The proof it returns carries a keccak commitment of the input.
type TestOnlyProver struct {
	logger *log.Logger
}

// NewTestOnlyProver returns a TestOnlyProver
func NewTestOnlyProver(logger *log.Logger) *TestOnlyProver {
	return &TestOnlyProver{logger: logger}
}

type testOnlyProof struct {
	Commitment              common.Hash `json:"commitment"`
	CheckpointStateTrieRoot common.Hash `json:"checkpoint_state_trie_root"`
	TestOnly                bool        `json:"test_only"`
}

// Prove implements Prover
func (p *TestOnlyProver) Prove(ctx context.Context, input BlockProverInput, cfg Config) (*Proof, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProofCanceled, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateInput(input); err != nil {
		return nil, err
	}

	otherData, err := json.Marshal(input.OtherData)
	if err != nil {
		return nil, fmt.Errorf("error encoding block data: %w", err)
	}
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(input.BlockTrace)
	hasher.Write(otherData)
	intern, err := json.Marshal(testOnlyProof{
		Commitment:              common.BytesToHash(hasher.Sum(nil)),
		CheckpointStateTrieRoot: input.OtherData.CheckpointStateTrieRoot,
		TestOnly:                true,
	})
	if err != nil {
		return nil, err
	}

	blockNumber := input.BlockNumber()
	p.logger.Debugf("witness of block %d checked", blockNumber)
	return &Proof{BlockNumber: blockNumber, Intern: intern}, nil
}

// ValidateInput checks the structural soundness of a block input
func ValidateInput(input BlockProverInput) error {
	if len(input.BlockTrace) == 0 || string(input.BlockTrace) == "null" {
		return fmt.Errorf("%w: empty block trace", ErrInvalidInput)
	}
	if input.OtherData.BData.BMeta.BlockNumber == nil {
		return fmt.Errorf("%w: missing block number", ErrInvalidInput)
	}
	if n := len(input.OtherData.BData.BHashes.PrevHashes); n > MaxPreviousHashes {
		return fmt.Errorf("%w: %d previous hashes, at most %d allowed", ErrInvalidInput, n, MaxPreviousHashes)
	}
	return nil
}
