package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/0xPolygon/zero-coordinator/log"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/lru"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

const (
	// PreviousHashesCount is the number of ancestor hashes attached to each block
	PreviousHashesCount = 256

	headerCacheSize = 1024
)

var (
	ErrUnknownRPCType = errors.New("unknown rpc type")       //nolint:revive
	ErrBlockNotFound  = errors.New("block not found")        //nolint:revive
	ErrEmptyTrace     = errors.New("node returned no trace") //nolint:revive
)

// RPCType selects the tracing API spoken by the node.
type RPCType string

const (
	// RPCTypeJerigon is a node exposing the zero tracer and eth_getWitness
	RPCTypeJerigon RPCType = "jerigon"
	// RPCTypeNative is a stock node with the prestate tracer
	RPCTypeNative RPCType = "native"
)

// ParseRPCType returns the RPCType named by s (case insensitive)
func ParseRPCType(s string) (RPCType, error) {
	switch RPCType(strings.ToLower(strings.TrimSpace(s))) {
	case RPCTypeJerigon:
		return RPCTypeJerigon, nil
	case RPCTypeNative:
		return RPCTypeNative, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRPCType, s)
	}
}

// UnmarshalText decodes an RPCType
func (t *RPCType) UnmarshalText(data []byte) error {
	parsed, err := ParseRPCType(string(data))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Provider is a node client that retries failed calls and caches headers.
type Provider struct {
	rpcClient *rpc.Client
	ethClient *ethclient.Client
	retrier   *Retrier
	headers   *lru.Cache[uint64, *types.Header]

	chainIDOnce sync.Once
	chainID     *big.Int
	chainIDErr  error

	logger *log.Logger
}

// New dials rawURL. Failed calls are retried maxRetries times with an
// exponential backoff starting at backoff.
func New(ctx context.Context, rawURL string, backoff time.Duration, maxRetries uint) (*Provider, error) {
	client, err := rpc.DialContext(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("error dialing %s: %w", rawURL, err)
	}
	return NewWithClient(client, backoff, maxRetries), nil
}

// NewWithClient wraps an already connected rpc client
func NewWithClient(client *rpc.Client, backoff time.Duration, maxRetries uint) *Provider {
	logger := log.WithFields("module", "provider")
	return &Provider{
		rpcClient: client,
		ethClient: ethclient.NewClient(client),
		retrier:   NewRetrier(logger, backoff, maxRetries),
		headers:   lru.NewCache[uint64, *types.Header](headerCacheSize),
		logger:    logger,
	}
}

// Close closes the underlying connection
func (p *Provider) Close() {
	p.rpcClient.Close()
}

// BlockNumber returns the latest block number of the node
func (p *Provider) BlockNumber(ctx context.Context) (uint64, error) {
	var res uint64
	err := p.retrier.Do(ctx, "eth_blockNumber", func() error {
		var err error
		res, err = p.ethClient.BlockNumber(ctx)
		return err
	})
	return res, err
}

// ChainID returns the chain id of the node. It is requested once.
func (p *Provider) ChainID(ctx context.Context) (*big.Int, error) {
	p.chainIDOnce.Do(func() {
		p.chainIDErr = p.retrier.Do(ctx, "eth_chainId", func() error {
			var err error
			p.chainID, err = p.ethClient.ChainID(ctx)
			return err
		})
	})
	if p.chainIDErr != nil {
		return nil, p.chainIDErr
	}
	return new(big.Int).Set(p.chainID), nil
}

// Header returns the header of block number, from the cache when possible
func (p *Provider) Header(ctx context.Context, number uint64) (*types.Header, error) {
	if header, ok := p.headers.Get(number); ok {
		return header, nil
	}
	var header *types.Header
	err := p.retrier.Do(ctx, "eth_getBlockByNumber", func() error {
		var err error
		header, err = p.ethClient.HeaderByNumber(ctx, new(big.Int).SetUint64(number))
		if errors.Is(err, ethereum.NotFound) {
			return Permanent(fmt.Errorf("%w: %d", ErrBlockNotFound, number))
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	p.headers.Add(number, header)
	return header, nil
}

// BlockHash returns the hash of block number
func (p *Provider) BlockHash(ctx context.Context, number uint64) (common.Hash, error) {
	header, err := p.Header(ctx, number)
	if err != nil {
		return common.Hash{}, err
	}
	return header.Hash(), nil
}

// PreviousHashes returns the hashes of the PreviousHashesCount blocks before
// number, oldest first. Positions before genesis are zero hashes.
func (p *Provider) PreviousHashes(ctx context.Context, number uint64) ([]common.Hash, error) {
	hashes := make([]common.Hash, PreviousHashesCount)
	for i := 0; i < PreviousHashesCount; i++ {
		offset := uint64(PreviousHashesCount - i)
		if offset > number {
			continue
		}
		hash, err := p.BlockHash(ctx, number-offset)
		if err != nil {
			return nil, err
		}
		hashes[i] = hash
	}
	return hashes, nil
}

// Withdrawals returns the withdrawals of block number
func (p *Provider) Withdrawals(ctx context.Context, number uint64) ([]*types.Withdrawal, error) {
	var raw json.RawMessage
	err := p.retrier.Do(ctx, "eth_getBlockByNumber", func() error {
		return p.rpcClient.CallContext(ctx, &raw, "eth_getBlockByNumber", hexutil.EncodeUint64(number), false)
	})
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, fmt.Errorf("%w: %d", ErrBlockNotFound, number)
	}
	var body struct {
		Withdrawals []*types.Withdrawal `json:"withdrawals"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("error decoding withdrawals of block %d: %w", number, err)
	}
	return body.Withdrawals, nil
}
