package provider

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

type tracerConfig struct {
	Tracer       string          `json:"tracer"`
	TracerConfig json.RawMessage `json:"tracerConfig,omitempty"`
}

type trieCompact struct {
	Compact string `json:"compact"`
}

type jerigonPreImages struct {
	Combined trieCompact `json:"combined"`
}

type nativePreImages struct {
	Separate json.RawMessage `json:"separate"`
}

// BlockTrace returns the trace of block number in the format expected by the prover
func (p *Provider) BlockTrace(ctx context.Context, number uint64, rpcType RPCType) (json.RawMessage, error) {
	switch rpcType {
	case RPCTypeJerigon:
		return p.jerigonTrace(ctx, number)
	case RPCTypeNative:
		return p.nativeTrace(ctx, number)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRPCType, rpcType)
	}
}

func (p *Provider) jerigonTrace(ctx context.Context, number uint64) (json.RawMessage, error) {
	txnInfo, err := p.traceBlock(ctx, number, tracerConfig{Tracer: "zeroTracer"})
	if err != nil {
		return nil, err
	}
	var witness string
	err = p.retrier.Do(ctx, "eth_getWitness", func() error {
		return p.rpcClient.CallContext(ctx, &witness, "eth_getWitness", hexutil.EncodeUint64(number))
	})
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		TriePreImages jerigonPreImages `json:"trie_pre_images"`
		TxnInfo       json.RawMessage  `json:"txn_info"`
	}{
		TriePreImages: jerigonPreImages{Combined: trieCompact{Compact: witness}},
		TxnInfo:       txnInfo,
	})
}

func (p *Provider) nativeTrace(ctx context.Context, number uint64) (json.RawMessage, error) {
	preState, err := p.traceBlock(ctx, number, tracerConfig{Tracer: "prestateTracer"})
	if err != nil {
		return nil, err
	}
	diff, err := p.traceBlock(ctx, number, tracerConfig{
		Tracer:       "prestateTracer",
		TracerConfig: json.RawMessage(`{"diffMode":true}`),
	})
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		TriePreImages nativePreImages `json:"trie_pre_images"`
		TxnInfo       json.RawMessage `json:"txn_info"`
	}{
		TriePreImages: nativePreImages{Separate: preState},
		TxnInfo:       diff,
	})
}

func (p *Provider) traceBlock(ctx context.Context, number uint64, cfg tracerConfig) (json.RawMessage, error) {
	var res json.RawMessage
	err := p.retrier.Do(ctx, "debug_traceBlockByNumber", func() error {
		return p.rpcClient.CallContext(ctx, &res, "debug_traceBlockByNumber", hexutil.EncodeUint64(number), cfg)
	})
	if err != nil {
		return nil, err
	}
	if len(res) == 0 || string(res) == "null" {
		return nil, fmt.Errorf("%w: block %d, tracer %s", ErrEmptyTrace, number, cfg.Tracer)
	}
	return res, nil
}
