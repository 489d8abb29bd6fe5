package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/url"
	"os"
	"time"
	"unicode/utf8"

	"github.com/0xPolygon/zero-coordinator/log"
	"github.com/0xPolygon/zero-coordinator/prover"
	"github.com/0xPolygon/zero-coordinator/provider"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
)

// Result are the block inputs of a request and, for remote sources, the time
// spent fetching each of them.
type Result struct {
	ProverInput []prover.BlockProverInput
	FetchTimes  []time.Duration
}

// TotalFetchTime is the sum of FetchTimes
func (r *Result) TotalFetchTime() time.Duration {
	var total time.Duration
	for _, d := range r.FetchTimes {
		total += d
	}
	return total
}

// BlockProvider is the node client used by remote sources.
type BlockProvider interface {
	BlockNumber(ctx context.Context) (uint64, error)
	ChainID(ctx context.Context) (*big.Int, error)
	Header(ctx context.Context, number uint64) (*types.Header, error)
	PreviousHashes(ctx context.Context, number uint64) ([]common.Hash, error)
	Withdrawals(ctx context.Context, number uint64) ([]*types.Withdrawal, error)
	BlockTrace(ctx context.Context, number uint64, rpcType provider.RPCType) (json.RawMessage, error)
	Close()
}

// ProviderFactory builds the node client of a remote source.
type ProviderFactory func(ctx context.Context, rawURL string, backoff time.Duration, maxRetries uint) (BlockProvider, error)

// ObjectDownloader reads whole objects from a bucket.
type ObjectDownloader interface {
	Download(ctx context.Context, bucket, path string) ([]byte, error)
}

// SourceFetcher resolves the block inputs of every BlockSource variant.
type SourceFetcher struct {
	newProvider ProviderFactory
	objects     ObjectDownloader
	logger      *log.Logger
}

// NewSourceFetcher returns a SourceFetcher. objects may be nil, then object
// store sources fail at the download stage.
func NewSourceFetcher(newProvider ProviderFactory, objects ObjectDownloader) *SourceFetcher {
	if newProvider == nil {
		newProvider = DialProvider
	}
	return &SourceFetcher{
		newProvider: newProvider,
		objects:     objects,
		logger:      log.WithFields("module", "fetch"),
	}
}

// DialProvider is the ProviderFactory backed by provider.New
func DialProvider(ctx context.Context, rawURL string, backoff time.Duration, maxRetries uint) (BlockProvider, error) {
	return provider.New(ctx, rawURL, backoff, maxRetries)
}

// Fetch returns the block inputs of source. Every error is a *FetchError.
func (f *SourceFetcher) Fetch(ctx context.Context, source *BlockSource) (*Result, error) {
	if source == nil {
		return nil, newFetchError(0, StageResolve, ErrInvalidSource)
	}
	switch {
	case source.RPC != nil:
		return f.fetchRPC(ctx, source.RPC)
	case source.LocalFile != nil:
		return f.fetchLocalFile(source.LocalFile)
	case source.ObjectStore != nil:
		return f.fetchObject(ctx, source.ObjectStore)
	default:
		return nil, newFetchError(0, StageResolve, ErrInvalidSource)
	}
}

func (f *SourceFetcher) fetchLocalFile(source *LocalFileSource) (*Result, error) {
	data, err := os.ReadFile(source.Path)
	if err != nil {
		f.logger.Errorf("failed to read local file %s: %v", source.Path, err)
		return nil, newFetchError(SourceLocalFile, StageRead, err)
	}
	inputs, err := decodeProverInput(data)
	if err != nil {
		return nil, newFetchError(SourceLocalFile, StageDecode, err)
	}
	return &Result{ProverInput: inputs, FetchTimes: []time.Duration{}}, nil
}

func (f *SourceFetcher) fetchObject(ctx context.Context, source *ObjectStoreSource) (*Result, error) {
	if f.objects == nil {
		return nil, newFetchError(SourceObjectStore, StageDownload, fmt.Errorf("no object store configured"))
	}
	data, err := f.objects.Download(ctx, source.Bucket, source.Path)
	if err != nil {
		f.logger.Errorf("failed to download %s/%s: %v", source.Bucket, source.Path, err)
		return nil, newFetchError(SourceObjectStore, StageDownload, err)
	}
	if !utf8.Valid(data) {
		return nil, newFetchError(SourceObjectStore, StageText,
			fmt.Errorf("object %s/%s is not valid UTF-8 text", source.Bucket, source.Path))
	}
	inputs, err := decodeProverInput(data)
	if err != nil {
		f.logger.Errorf("failed to decode %s/%s: %v", source.Bucket, source.Path, err)
		return nil, newFetchError(SourceObjectStore, StageDecode, err)
	}
	return &Result{ProverInput: inputs, FetchTimes: []time.Duration{}}, nil
}

func decodeProverInput(data []byte) ([]prover.BlockProverInput, error) {
	var inputs []prover.BlockProverInput
	if err := json.Unmarshal(data, &inputs); err != nil {
		return nil, fmt.Errorf("error decoding block inputs: %w", err)
	}
	return inputs, nil
}

func (f *SourceFetcher) fetchRPC(ctx context.Context, source *RPCSource) (*Result, error) {
	f.logger.Infof("requesting blocks %s from rpc (%s)", source.BlockInterval, source.URL)

	parsed, err := url.Parse(source.URL)
	if err != nil {
		return nil, newFetchError(SourceRPC, StageConnect, err)
	}
	switch parsed.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return nil, newFetchError(SourceRPC, StageConnect, fmt.Errorf("unsupported url scheme %q", parsed.Scheme))
	}

	if err := source.BlockInterval.Validate(); err != nil {
		return nil, newFetchError(SourceRPC, StageResolve, err)
	}
	checkpoint, err := source.ResolvedCheckpoint().Resolve(source.BlockInterval)
	if err != nil {
		return nil, newFetchError(SourceRPC, StageResolve, err)
	}

	client, err := f.newProvider(ctx, source.URL, source.Backoff(), source.Retries())
	if err != nil {
		return nil, newFetchError(SourceRPC, StageConnect, err)
	}
	defer client.Close()

	blocks, err := f.blockNumbers(ctx, client, source.BlockInterval)
	if err != nil {
		return nil, newFetchError(SourceRPC, StageDownload, err)
	}

	checkpointHeader, err := client.Header(ctx, checkpoint)
	if err != nil {
		return nil, newFetchError(SourceRPC, StageDownload, fmt.Errorf("checkpoint block %d: %w", checkpoint, err))
	}
	chainID, err := client.ChainID(ctx)
	if err != nil {
		return nil, newFetchError(SourceRPC, StageDownload, err)
	}

	res := &Result{
		ProverInput: make([]prover.BlockProverInput, 0, len(blocks)),
		FetchTimes:  make([]time.Duration, 0, len(blocks)),
	}
	for _, number := range blocks {
		start := time.Now()
		input, err := fetchBlock(ctx, client, number, source.ResolvedRPCType(), chainID, checkpointHeader.Root)
		if err != nil {
			return nil, newFetchError(SourceRPC, StageDownload, fmt.Errorf("block %d: %w", number, err))
		}
		res.ProverInput = append(res.ProverInput, *input)
		res.FetchTimes = append(res.FetchTimes, time.Since(start))
	}
	f.logger.Infof("fetched %d blocks from rpc in %s", len(blocks), res.TotalFetchTime())
	return res, nil
}

// blockNumbers returns the blocks of interval. A follow-from interval is cut
// at the current head, waiting until the head reaches its start, and never
// yields more than MaxIntervalBlocks blocks.
func (f *SourceFetcher) blockNumbers(ctx context.Context, client BlockProvider, interval BlockInterval) ([]uint64, error) {
	if interval.Kind != IntervalFollowFrom {
		return interval.Blocks()
	}
	poll := interval.PollInterval
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	for {
		head, err := client.BlockNumber(ctx)
		if err != nil {
			return nil, err
		}
		if head >= interval.Start {
			if head-interval.Start >= MaxIntervalBlocks {
				f.logger.Warnf("head %d is more than %d blocks past %d, fetching the first %d",
					head, MaxIntervalBlocks, interval.Start, MaxIntervalBlocks)
				head = interval.Start + MaxIntervalBlocks - 1
			}
			return Range(interval.Start, head).Blocks()
		}
		f.logger.Debugf("head %d behind block %d, waiting %s", head, interval.Start, poll)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(poll):
		}
	}
}

func fetchBlock(ctx context.Context, client BlockProvider, number uint64, rpcType provider.RPCType,
	chainID *big.Int, checkpointRoot common.Hash) (*prover.BlockProverInput, error) {
	header, err := client.Header(ctx, number)
	if err != nil {
		return nil, err
	}
	prevHashes, err := client.PreviousHashes(ctx, number)
	if err != nil {
		return nil, err
	}
	withdrawals, err := client.Withdrawals(ctx, number)
	if err != nil {
		return nil, err
	}
	trace, err := client.BlockTrace(ctx, number, rpcType)
	if err != nil {
		return nil, err
	}

	return &prover.BlockProverInput{
		BlockTrace: trace,
		OtherData: prover.OtherBlockData{
			BData: prover.BlockLevelData{
				BMeta: blockMetadata(header, chainID),
				BHashes: prover.BlockHashes{
					PrevHashes: prevHashes,
					CurHash:    header.Hash(),
				},
				Withdrawals: toWithdrawals(withdrawals),
			},
			CheckpointStateTrieRoot: checkpointRoot,
		},
	}, nil
}

func blockMetadata(header *types.Header, chainID *big.Int) prover.BlockMetadata {
	meta := prover.BlockMetadata{
		BlockBeneficiary: header.Coinbase,
		BlockTimestamp:   bigFromUint64(header.Time),
		BlockNumber:      (*hexutil.Big)(new(big.Int).Set(header.Number)),
		BlockDifficulty:  (*hexutil.Big)(new(big.Int).Set(header.Difficulty)),
		BlockRandom:      header.MixDigest,
		BlockGasLimit:    bigFromUint64(header.GasLimit),
		BlockChainID:     (*hexutil.Big)(chainID),
		BlockGasUsed:     bigFromUint64(header.GasUsed),
	}
	if header.BaseFee != nil {
		meta.BlockBaseFee = (*hexutil.Big)(new(big.Int).Set(header.BaseFee))
	}
	if header.BlobGasUsed != nil {
		meta.BlockBlobGasUsed = bigFromUint64(*header.BlobGasUsed)
	}
	if header.ExcessBlobGas != nil {
		meta.BlockExcessBlobGas = bigFromUint64(*header.ExcessBlobGas)
	}
	if header.ParentBeaconRoot != nil {
		meta.ParentBeaconBlockRoot = *header.ParentBeaconRoot
	}
	// the 2048 bits bloom as 8 words of 256 bits
	const wordSize = types.BloomByteLength / 8
	for i := range meta.BlockBloom {
		meta.BlockBloom[i] = (*hexutil.Big)(new(big.Int).SetBytes(header.Bloom[i*wordSize : (i+1)*wordSize]))
	}
	return meta
}

func toWithdrawals(ws []*types.Withdrawal) []prover.Withdrawal {
	res := make([]prover.Withdrawal, 0, len(ws))
	for _, w := range ws {
		res = append(res, prover.Withdrawal{
			Address: w.Address,
			// amounts are in gwei
			Amount: (*hexutil.Big)(new(big.Int).Mul(new(big.Int).SetUint64(w.Amount), big.NewInt(1e9))), //nolint:mnd
		})
	}
	return res
}

func bigFromUint64(n uint64) *hexutil.Big {
	return (*hexutil.Big)(new(big.Int).SetUint64(n))
}
