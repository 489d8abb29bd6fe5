package fetch

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// CheckpointKind identifies the variant of a Checkpoint.
type CheckpointKind int

const (
	CheckpointConstant CheckpointKind = iota + 1
	CheckpointNegativeOffset
)

// Checkpoint selects the already verified block a block range is proved on
// top of. The zero value is invalid.
type Checkpoint struct {
	Kind CheckpointKind
	// Block is the checkpoint block number of CheckpointConstant
	Block uint64
	// Offset is subtracted from the interval start for CheckpointNegativeOffset
	Offset uint64
}

// Constant is the checkpoint fixed at block n
func Constant(n uint64) Checkpoint {
	return Checkpoint{Kind: CheckpointConstant, Block: n}
}

// NegativeOffset is the checkpoint k blocks before the interval start
func NegativeOffset(k uint64) Checkpoint {
	return Checkpoint{Kind: CheckpointNegativeOffset, Offset: k}
}

// DefaultCheckpoint is the block right before the interval start
func DefaultCheckpoint() Checkpoint {
	return NegativeOffset(1)
}

// Resolve returns the checkpoint block number for interval
func (c Checkpoint) Resolve(interval BlockInterval) (uint64, error) {
	switch c.Kind {
	case CheckpointConstant:
		return c.Block, nil
	case CheckpointNegativeOffset:
	default:
		return 0, fmt.Errorf("%w: kind %d", ErrUnsupportedCheckpoint, int(c.Kind))
	}

	switch interval.Kind {
	case IntervalSingle, IntervalRange, IntervalFollowFrom:
	default:
		return 0, fmt.Errorf("%w: kind %d", ErrUnsupportedInterval, int(interval.Kind))
	}
	if interval.Start < c.Offset {
		return 0, fmt.Errorf("%w: start %d, offset %d", ErrCheckpointUnderflow, interval.Start, c.Offset)
	}
	return interval.Start - c.Offset, nil
}

func (c Checkpoint) String() string {
	switch c.Kind {
	case CheckpointConstant:
		return fmt.Sprintf("constant(%d)", c.Block)
	case CheckpointNegativeOffset:
		return fmt.Sprintf("offset(-%d)", c.Offset)
	default:
		return "invalid"
	}
}

type checkpointJSON struct {
	Constant       json.RawMessage `json:"constant,omitempty"`
	NegativeOffset *uint64         `json:"blockNumberNegativeOffset,omitempty"`
}

// MarshalJSON encodes {"constant": n} or {"blockNumberNegativeOffset": k}
func (c Checkpoint) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case CheckpointConstant:
		return json.Marshal(checkpointJSON{Constant: json.RawMessage(strconv.FormatUint(c.Block, 10))})
	case CheckpointNegativeOffset:
		offset := c.Offset
		return json.Marshal(checkpointJSON{NegativeOffset: &offset})
	default:
		return nil, fmt.Errorf("%w: kind %d", ErrUnsupportedCheckpoint, int(c.Kind))
	}
}

// UnmarshalJSON decodes a checkpoint. The constant may be a number, a numeric
// string or a hex quantity; a 32 bytes hash is rejected.
func (c *Checkpoint) UnmarshalJSON(data []byte) error {
	var raw checkpointJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %w", ErrUnsupportedCheckpoint, err)
	}
	switch {
	case raw.Constant != nil && raw.NegativeOffset != nil:
		return fmt.Errorf("%w: both constant and offset given", ErrUnsupportedCheckpoint)
	case raw.NegativeOffset != nil:
		*c = NegativeOffset(*raw.NegativeOffset)
		return nil
	case raw.Constant != nil:
		n, err := decodeConstant(raw.Constant)
		if err != nil {
			return err
		}
		*c = Constant(n)
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedCheckpoint, string(data))
	}
}

func decodeConstant(data json.RawMessage) (uint64, error) {
	var n uint64
	if err := json.Unmarshal(data, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return 0, fmt.Errorf("%w: constant %s", ErrUnsupportedCheckpoint, string(data))
	}
	if strings.HasPrefix(s, "0x") && len(s) == 66 { //nolint:mnd
		return 0, fmt.Errorf("%w: %s", ErrHashCheckpoint, s)
	}
	n, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: constant %q", ErrUnsupportedCheckpoint, s)
	}
	return n, nil
}
