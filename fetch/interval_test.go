package fetch

import (
	"context"
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseBlockInterval(t *testing.T) {
	tcs := []struct {
		input    string
		expected BlockInterval
		err      bool
	}{
		{input: "42", expected: Single(42)},
		{input: "0x2a", expected: Single(42)},
		{input: "100..106", expected: Range(100, 105)},
		{input: "100..=105", expected: Range(100, 105)},
		{input: "5..=5", expected: Range(5, 5)},
		{input: "7..", expected: FollowFrom(7, DefaultPollInterval)},
		{input: "5..5", err: true},
		{input: "6..=5", err: true},
		{input: "latest", err: true},
		{input: "0x88e96d4537bea4d9c05d12549907b32561d3bf31f45aae734cdc119f13406cb6", err: true},
		{input: "..5", err: true},
		{input: "", err: true},
	}
	for _, tc := range tcs {
		t.Run(tc.input, func(t *testing.T) {
			res, err := ParseBlockInterval(tc.input)
			if tc.err {
				require.ErrorIs(t, err, ErrUnsupportedInterval)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, res)
		})
	}
}

func TestBlockIntervalBlocks(t *testing.T) {
	blocks, err := Range(3, 6).Blocks()
	require.NoError(t, err)
	require.Equal(t, []uint64{3, 4, 5, 6}, blocks)

	blocks, err = Single(9).Blocks()
	require.NoError(t, err)
	require.Equal(t, []uint64{9}, blocks)

	_, err = FollowFrom(1, DefaultPollInterval).Blocks()
	require.ErrorIs(t, err, ErrUnsupportedInterval)

	_, err = BlockInterval{}.Blocks()
	require.ErrorIs(t, err, ErrUnsupportedInterval)
}

func TestBlockIntervalJSON(t *testing.T) {
	var i BlockInterval
	require.NoError(t, json.Unmarshal([]byte(`"10..=12"`), &i))
	require.Equal(t, Range(10, 12), i)

	require.NoError(t, json.Unmarshal([]byte(`12`), &i))
	require.Equal(t, Single(12), i)

	encoded, err := json.Marshal(Range(10, 12))
	require.NoError(t, err)
	require.JSONEq(t, `"10..=12"`, string(encoded))

	require.Error(t, json.Unmarshal([]byte(`{"start": 1}`), &i))
}

func TestBlockIntervalSizeLimit(t *testing.T) {
	tcs := []struct {
		name     string
		interval BlockInterval
		err      error
	}{
		{name: "largest range", interval: Range(1, MaxIntervalBlocks)},
		{name: "one block too many", interval: Range(1, MaxIntervalBlocks+1), err: ErrIntervalTooLarge},
		{name: "huge range", interval: Range(1, 4611686018427387904), err: ErrIntervalTooLarge},
		{name: "whole uint64 space", interval: Range(0, math.MaxUint64), err: ErrIntervalTooLarge},
		{name: "follow from is not bounded here", interval: FollowFrom(math.MaxUint64, time.Second)},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.interval.Validate()
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				_, err = tc.interval.Blocks()
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
		})
	}

	blocks, err := Range(1, MaxIntervalBlocks).Blocks()
	require.NoError(t, err)
	require.Len(t, blocks, int(MaxIntervalBlocks))
	require.Equal(t, MaxIntervalBlocks, blocks[len(blocks)-1])
}

func TestBlockIntervalLen(t *testing.T) {
	n, ok := Single(math.MaxUint64).Len()
	require.True(t, ok)
	require.Equal(t, uint64(1), n)

	n, ok = Range(math.MaxUint64-1, math.MaxUint64).Len()
	require.True(t, ok)
	require.Equal(t, uint64(2), n)

	_, ok = Range(0, math.MaxUint64).Len()
	require.False(t, ok)

	_, ok = FollowFrom(0, time.Second).Len()
	require.False(t, ok)
}

func TestParseHugeRangeIsRejectedByValidate(t *testing.T) {
	var src BlockSource
	require.NoError(t, json.Unmarshal(
		[]byte(`{"rpc":{"rpc_url":"http://127.0.0.1:1","block_interval":"1..=4611686018427387904"}}`), &src))
	require.ErrorIs(t, src.Validate(), ErrIntervalTooLarge)
}

type headOnlyProvider struct {
	BlockProvider
	head uint64
}

func (p headOnlyProvider) BlockNumber(context.Context) (uint64, error) {
	return p.head, nil
}

func TestBlockNumbersFollowFromIsCapped(t *testing.T) {
	f := NewSourceFetcher(nil, nil)
	client := headOnlyProvider{head: math.MaxUint64}

	blocks, err := f.blockNumbers(context.Background(), client, FollowFrom(100, time.Millisecond))
	require.NoError(t, err)
	require.Len(t, blocks, int(MaxIntervalBlocks))
	require.Equal(t, uint64(100), blocks[0])
	require.Equal(t, 100+MaxIntervalBlocks-1, blocks[len(blocks)-1])

	blocks, err = f.blockNumbers(context.Background(), headOnlyProvider{head: 102}, FollowFrom(100, time.Millisecond))
	require.NoError(t, err)
	require.Equal(t, []uint64{100, 101, 102}, blocks)
}
