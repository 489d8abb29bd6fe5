package prover

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// MaxPreviousHashes is the number of ancestor hashes a block input carries (BLOCKHASH window).
const MaxPreviousHashes = 256

// BlockProverInput is everything the prover needs to prove a single block:
// the block trace plus the block level data outside of it.
type BlockProverInput struct {
	BlockTrace json.RawMessage `json:"block_trace"`
	OtherData  OtherBlockData  `json:"other_data"`
}

// OtherBlockData is the data of the block not carried by the trace.
type OtherBlockData struct {
	BData                   BlockLevelData `json:"b_data"`
	CheckpointStateTrieRoot common.Hash    `json:"checkpoint_state_trie_root"`
}

// BlockLevelData groups the block header values, the ancestor hashes and the withdrawals.
type BlockLevelData struct {
	BMeta       BlockMetadata `json:"b_meta"`
	BHashes     BlockHashes   `json:"b_hashes"`
	Withdrawals []Withdrawal  `json:"withdrawals"`
}

// BlockMetadata are the header fields the prover commits to.
type BlockMetadata struct {
	BlockBeneficiary      common.Address  `json:"block_beneficiary"`
	BlockTimestamp        *hexutil.Big    `json:"block_timestamp"`
	BlockNumber           *hexutil.Big    `json:"block_number"`
	BlockDifficulty       *hexutil.Big    `json:"block_difficulty"`
	BlockRandom           common.Hash     `json:"block_random"`
	BlockGasLimit         *hexutil.Big    `json:"block_gaslimit"`
	BlockChainID          *hexutil.Big    `json:"block_chain_id"`
	BlockBaseFee          *hexutil.Big    `json:"block_base_fee"`
	BlockGasUsed          *hexutil.Big    `json:"block_gas_used"`
	BlockBlobGasUsed      *hexutil.Big    `json:"block_blob_gas_used,omitempty"`
	BlockExcessBlobGas    *hexutil.Big    `json:"block_excess_blob_gas,omitempty"`
	ParentBeaconBlockRoot common.Hash     `json:"parent_beacon_block_root"`
	BlockBloom            [8]*hexutil.Big `json:"block_bloom"`
}

// BlockHashes are the hashes of the previous blocks and of the block itself.
type BlockHashes struct {
	PrevHashes []common.Hash `json:"prev_hashes"`
	CurHash    common.Hash   `json:"cur_hash"`
}

// Withdrawal is an (address, amount) pair, encoded as a two element array.
type Withdrawal struct {
	Address common.Address
	Amount  *hexutil.Big
}

// MarshalJSON encodes the withdrawal as [address, amount]
func (w Withdrawal) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]interface{}{w.Address, w.Amount})
}

// UnmarshalJSON decodes a [address, amount] pair
func (w *Withdrawal) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 { //nolint:mnd
		return fmt.Errorf("withdrawal must be a [address, amount] pair, got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &w.Address); err != nil {
		return fmt.Errorf("withdrawal address: %w", err)
	}
	w.Amount = new(hexutil.Big)
	if err := json.Unmarshal(pair[1], w.Amount); err != nil {
		return fmt.Errorf("withdrawal amount: %w", err)
	}
	return nil
}

// BlockNumber returns the number of the block, 0 when the metadata is missing it
func (b *BlockProverInput) BlockNumber() uint64 {
	if b.OtherData.BData.BMeta.BlockNumber == nil {
		return 0
	}
	return b.OtherData.BData.BMeta.BlockNumber.ToInt().Uint64()
}

// Proof is the outcome of proving one block.
type Proof struct {
	BlockNumber uint64          `json:"b_height"`
	Intern      json.RawMessage `json:"intern"`
}
