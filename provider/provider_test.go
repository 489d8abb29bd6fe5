package provider

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/0xPolygon/zero-coordinator/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/require"
)

type fakeEth struct {
	mu               sync.Mutex
	head             uint64
	blockNumberFails int
	headerCalls      map[uint64]int
}

func (f *fakeEth) header(n uint64) *types.Header {
	return &types.Header{
		Number:     new(big.Int).SetUint64(n),
		Difficulty: big.NewInt(0),
		GasLimit:   30_000_000,
		Time:       1_700_000_000 + n,
		Extra:      []byte{},
	}
}

func (f *fakeEth) BlockNumber() (hexutil.Uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.blockNumberFails > 0 {
		f.blockNumberFails--
		return 0, errors.New("node overloaded")
	}
	return hexutil.Uint64(f.head), nil
}

func (f *fakeEth) ChainId() *hexutil.Big { //nolint:stylecheck
	return (*hexutil.Big)(big.NewInt(1101))
}

func (f *fakeEth) GetBlockByNumber(number rpc.BlockNumber, _ bool) (map[string]interface{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := uint64(number.Int64())
	if n > f.head {
		return nil, nil
	}
	if f.headerCalls == nil {
		f.headerCalls = map[uint64]int{}
	}
	f.headerCalls[n]++
	encoded, err := json.Marshal(f.header(n))
	if err != nil {
		return nil, err
	}
	res := map[string]interface{}{}
	if err := json.Unmarshal(encoded, &res); err != nil {
		return nil, err
	}
	res["withdrawals"] = []*types.Withdrawal{{Index: 1, Validator: 2, Address: common.HexToAddress("0xaa"), Amount: 3}}
	return res, nil
}

func (f *fakeEth) GetWitness(number rpc.BlockNumber) string {
	return "0x0102"
}

type fakeDebug struct{}

func (fakeDebug) TraceBlockByNumber(number rpc.BlockNumber, cfg map[string]interface{}) (json.RawMessage, error) {
	encoded, err := json.Marshal([]interface{}{map[string]interface{}{"block": number.Int64(), "cfg": cfg}})
	return encoded, err
}

func newTestProvider(t *testing.T, eth *fakeEth, maxRetries uint) *Provider {
	t.Helper()
	server := rpc.NewServer()
	require.NoError(t, server.RegisterName("eth", eth))
	require.NoError(t, server.RegisterName("debug", fakeDebug{}))
	p := NewWithClient(rpc.DialInProc(server), time.Millisecond, maxRetries)
	t.Cleanup(func() {
		p.Close()
		server.Stop()
	})
	return p
}

func TestParseRPCType(t *testing.T) {
	rpcType, err := ParseRPCType("Jerigon")
	require.NoError(t, err)
	require.Equal(t, RPCTypeJerigon, rpcType)

	var decoded RPCType
	require.NoError(t, json.Unmarshal([]byte(`"native"`), &decoded))
	require.Equal(t, RPCTypeNative, decoded)

	_, err = ParseRPCType("geth")
	require.ErrorIs(t, err, ErrUnknownRPCType)
}

func TestBlockNumberRetries(t *testing.T) {
	eth := &fakeEth{head: 10, blockNumberFails: 2}
	p := newTestProvider(t, eth, 2)
	n, err := p.BlockNumber(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint64(10), n)

	eth.blockNumberFails = 3
	_, err = p.BlockNumber(context.Background())
	require.Error(t, err)
}

func TestHeaderIsCached(t *testing.T) {
	eth := &fakeEth{head: 300}
	p := newTestProvider(t, eth, 0)
	ctx := context.Background()

	first, err := p.Header(ctx, 42)
	require.NoError(t, err)
	second, err := p.Header(ctx, 42)
	require.NoError(t, err)
	require.Equal(t, first.Hash(), second.Hash())
	require.Equal(t, 1, eth.headerCalls[42])

	_, err = p.Header(ctx, 301)
	require.ErrorIs(t, err, ErrBlockNotFound)
}

func TestPreviousHashes(t *testing.T) {
	eth := &fakeEth{head: 300}
	p := newTestProvider(t, eth, 0)
	ctx := context.Background()

	hashes, err := p.PreviousHashes(ctx, 3)
	require.NoError(t, err)
	require.Len(t, hashes, PreviousHashesCount)
	require.Equal(t, common.Hash{}, hashes[0])
	require.Equal(t, eth.header(2).Hash(), hashes[PreviousHashesCount-1])
	require.Equal(t, eth.header(0).Hash(), hashes[PreviousHashesCount-3])
}

func TestChainIDAndWithdrawals(t *testing.T) {
	p := newTestProvider(t, &fakeEth{head: 5}, 0)
	ctx := context.Background()

	chainID, err := p.ChainID(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1101), chainID.Int64())

	withdrawals, err := p.Withdrawals(ctx, 5)
	require.NoError(t, err)
	require.Len(t, withdrawals, 1)
	require.Equal(t, uint64(3), withdrawals[0].Amount)
}

func TestBlockTrace(t *testing.T) {
	p := newTestProvider(t, &fakeEth{head: 5}, 0)
	ctx := context.Background()

	jerigon, err := p.BlockTrace(ctx, 5, RPCTypeJerigon)
	require.NoError(t, err)
	var decoded struct {
		TriePreImages struct {
			Combined struct {
				Compact string `json:"compact"`
			} `json:"combined"`
		} `json:"trie_pre_images"`
		TxnInfo []json.RawMessage `json:"txn_info"`
	}
	require.NoError(t, json.Unmarshal(jerigon, &decoded))
	require.Equal(t, "0x0102", decoded.TriePreImages.Combined.Compact)
	require.Len(t, decoded.TxnInfo, 1)

	native, err := p.BlockTrace(ctx, 5, RPCTypeNative)
	require.NoError(t, err)
	require.Contains(t, string(native), "diffMode")

	_, err = p.BlockTrace(ctx, 5, RPCType("other"))
	require.ErrorIs(t, err, ErrUnknownRPCType)
}

func TestRetrierPermanent(t *testing.T) {
	r := NewRetrier(log.GetDefaultLogger(), time.Millisecond, 5)
	calls := 0
	sentinel := errors.New("boom")
	err := r.Do(context.Background(), "test", func() error {
		calls++
		return Permanent(sentinel)
	})
	require.ErrorIs(t, err, sentinel)
	require.Equal(t, 1, calls)
}

func TestRetrierStopsOnCancel(t *testing.T) {
	r := NewRetrier(log.GetDefaultLogger(), time.Hour, 5)
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	err := r.Do(ctx, "test", func() error {
		calls++
		return errors.New("transient")
	})
	require.Error(t, err)
	require.Equal(t, 1, calls)
}
