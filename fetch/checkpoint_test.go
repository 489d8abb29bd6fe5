package fetch

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCheckpointResolve(t *testing.T) {
	tcs := []struct {
		name       string
		checkpoint Checkpoint
		interval   BlockInterval
		expected   uint64
		err        error
	}{
		{name: "constant range", checkpoint: Constant(7), interval: Range(100, 105), expected: 7},
		{name: "constant single", checkpoint: Constant(7), interval: Single(3), expected: 7},
		{name: "constant follow", checkpoint: Constant(0), interval: FollowFrom(1, time.Second), expected: 0},
		{name: "default range", checkpoint: DefaultCheckpoint(), interval: Range(100, 105), expected: 99},
		{name: "offset range", checkpoint: NegativeOffset(10), interval: Range(100, 105), expected: 90},
		{name: "offset follow", checkpoint: NegativeOffset(2), interval: FollowFrom(50, time.Second), expected: 48},
		{name: "offset single", checkpoint: NegativeOffset(3), interval: Single(50), expected: 47},
		{name: "offset equal start", checkpoint: NegativeOffset(100), interval: Range(100, 105), expected: 0},
		{name: "underflow", checkpoint: NegativeOffset(101), interval: Range(100, 105), err: ErrCheckpointUnderflow},
		{name: "underflow single", checkpoint: NegativeOffset(1), interval: Single(0), err: ErrCheckpointUnderflow},
		{name: "max offset", checkpoint: NegativeOffset(math.MaxUint64), interval: Single(math.MaxUint64), expected: 0},
		{name: "zero checkpoint", checkpoint: Checkpoint{}, interval: Single(5), err: ErrUnsupportedCheckpoint},
		{name: "zero interval", checkpoint: NegativeOffset(1), interval: BlockInterval{}, err: ErrUnsupportedInterval},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			res, err := tc.checkpoint.Resolve(tc.interval)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, res)
		})
	}
}

func TestCheckpointResolveRangeProperty(t *testing.T) {
	for start := uint64(0); start < 64; start++ {
		for k := uint64(0); k < 64; k++ {
			res, err := NegativeOffset(k).Resolve(Range(start, start+3))
			if k > start {
				require.ErrorIs(t, err, ErrCheckpointUnderflow)
				continue
			}
			require.NoError(t, err)
			require.Equal(t, start-k, res)
		}
	}
}

func TestCheckpointJSON(t *testing.T) {
	tcs := []struct {
		input    string
		expected Checkpoint
		err      error
	}{
		{input: `{"constant": 99}`, expected: Constant(99)},
		{input: `{"constant": "0x63"}`, expected: Constant(99)},
		{input: `{"constant": "99"}`, expected: Constant(99)},
		{input: `{"blockNumberNegativeOffset": 1}`, expected: NegativeOffset(1)},
		{input: `{"constant": "0x88e96d4537bea4d9c05d12549907b32561d3bf31f45aae734cdc119f13406cb6"}`, err: ErrHashCheckpoint},
		{input: `{"constant": "latest"}`, err: ErrUnsupportedCheckpoint},
		{input: `{}`, err: ErrUnsupportedCheckpoint},
		{input: `{"constant": 1, "blockNumberNegativeOffset": 1}`, err: ErrUnsupportedCheckpoint},
	}
	for _, tc := range tcs {
		t.Run(tc.input, func(t *testing.T) {
			var c Checkpoint
			err := json.Unmarshal([]byte(tc.input), &c)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, c)

			encoded, err := json.Marshal(c)
			require.NoError(t, err)
			var decoded Checkpoint
			require.NoError(t, json.Unmarshal(encoded, &decoded))
			require.Equal(t, c, decoded)
		})
	}

	_, err := json.Marshal(Checkpoint{})
	require.Error(t, err)
}
