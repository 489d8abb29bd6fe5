package fetch

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// IntervalKind identifies the variant of a BlockInterval.
type IntervalKind int

const (
	IntervalSingle IntervalKind = iota + 1
	IntervalRange
	IntervalFollowFrom
)

const (
	// DefaultPollInterval is how often a follow-from interval checks for new blocks
	DefaultPollInterval = 10 * time.Second
	// MaxIntervalBlocks is the largest number of blocks a single request may cover
	MaxIntervalBlocks uint64 = 10_000
)

// BlockInterval is a set of consecutive block numbers. The zero value is invalid.
type BlockInterval struct {
	Kind IntervalKind
	// Start is the first block (the only one for IntervalSingle)
	Start uint64
	// End is the last block, included. Only meaningful for IntervalRange
	End uint64
	// PollInterval is the wait between head checks of IntervalFollowFrom
	PollInterval time.Duration
}

// Single is the interval made only of block n
func Single(n uint64) BlockInterval {
	return BlockInterval{Kind: IntervalSingle, Start: n}
}

// Range is the interval [start, endInclusive]
func Range(start, endInclusive uint64) BlockInterval {
	return BlockInterval{Kind: IntervalRange, Start: start, End: endInclusive}
}

// FollowFrom is every block from start, following the chain head
func FollowFrom(start uint64, poll time.Duration) BlockInterval {
	return BlockInterval{Kind: IntervalFollowFrom, Start: start, PollInterval: poll}
}

// ParseBlockInterval parses "n", "a..b" (end excluded), "a..=b" (end included)
// or "a.." (follow from a). Tags and hashes are rejected.
func ParseBlockInterval(s string) (BlockInterval, error) {
	s = strings.TrimSpace(s)
	startText, endText, isRange := strings.Cut(s, "..")
	start, err := parseBlockNumber(startText)
	if err != nil {
		return BlockInterval{}, err
	}
	if !isRange {
		return Single(start), nil
	}
	if endText == "" {
		return FollowFrom(start, DefaultPollInterval), nil
	}

	inclusive := strings.HasPrefix(endText, "=")
	end, err := parseBlockNumber(strings.TrimPrefix(endText, "="))
	if err != nil {
		return BlockInterval{}, err
	}
	if !inclusive {
		if end == 0 {
			return BlockInterval{}, fmt.Errorf("%w: empty range %q", ErrUnsupportedInterval, s)
		}
		end--
	}
	if end < start {
		return BlockInterval{}, fmt.Errorf("%w: empty range %q", ErrUnsupportedInterval, s)
	}
	return Range(start, end), nil
}

func parseBlockNumber(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") && len(s) == 66 { //nolint:mnd
		return 0, fmt.Errorf("%w: block hashes are not supported: %q", ErrUnsupportedInterval, s)
	}
	n, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a block number", ErrUnsupportedInterval, s)
	}
	return n, nil
}

// Validate checks i is one of the known variants
func (i BlockInterval) Validate() error {
	switch i.Kind {
	case IntervalSingle, IntervalFollowFrom:
		return nil
	case IntervalRange:
		if i.End < i.Start {
			return fmt.Errorf("%w: range end %d before start %d", ErrUnsupportedInterval, i.End, i.Start)
		}
		if n, ok := i.Len(); !ok || n > MaxIntervalBlocks {
			return fmt.Errorf("%w: %s covers more than %d blocks", ErrIntervalTooLarge, i, MaxIntervalBlocks)
		}
		return nil
	default:
		return fmt.Errorf("%w: kind %d", ErrUnsupportedInterval, int(i.Kind))
	}
}

// Len returns the number of blocks of a bounded interval. ok is false for an
// unbounded interval or when the count doesn't fit in an uint64.
func (i BlockInterval) Len() (n uint64, ok bool) {
	switch i.Kind {
	case IntervalSingle:
		return 1, true
	case IntervalRange:
		if i.End < i.Start || i.End-i.Start == math.MaxUint64 {
			return 0, false
		}
		return i.End - i.Start + 1, true
	default:
		return 0, false
	}
}

// Blocks returns the block numbers of a bounded interval
func (i BlockInterval) Blocks() ([]uint64, error) {
	switch i.Kind {
	case IntervalSingle:
		return []uint64{i.Start}, nil
	case IntervalRange:
		if err := i.Validate(); err != nil {
			return nil, err
		}
		n, _ := i.Len()
		blocks := make([]uint64, n)
		for k := range blocks {
			blocks[k] = i.Start + uint64(k)
		}
		return blocks, nil
	default:
		return nil, fmt.Errorf("%w: %s is unbounded", ErrUnsupportedInterval, i)
	}
}

func (i BlockInterval) String() string {
	switch i.Kind {
	case IntervalSingle:
		return strconv.FormatUint(i.Start, 10)
	case IntervalRange:
		return fmt.Sprintf("%d..=%d", i.Start, i.End)
	case IntervalFollowFrom:
		return fmt.Sprintf("%d..", i.Start)
	default:
		return "invalid"
	}
}

// MarshalText encodes the interval in its text form
func (i BlockInterval) MarshalText() ([]byte, error) {
	if err := i.Validate(); err != nil {
		return nil, err
	}
	return []byte(i.String()), nil
}

// UnmarshalText decodes the text form
func (i *BlockInterval) UnmarshalText(data []byte) error {
	parsed, err := ParseBlockInterval(string(data))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// UnmarshalJSON accepts the text form as a string or a bare block number
func (i *BlockInterval) UnmarshalJSON(data []byte) error {
	var n uint64
	if err := json.Unmarshal(data, &n); err == nil {
		*i = Single(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrUnsupportedInterval, string(data))
	}
	return i.UnmarshalText([]byte(s))
}
