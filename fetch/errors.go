package fetch

import (
	"errors"
	"fmt"
)

var (
	// ErrFetch is the kind of every error returned by Fetcher.Fetch
	ErrFetch = errors.New("fetch error")
	// ErrCheckpointUnderflow is returned when the checkpoint offset is larger than the interval start
	ErrCheckpointUnderflow = errors.New("checkpoint offset exceeds the interval start block")
	// ErrUnsupportedCheckpoint is returned for a zero value or unknown checkpoint
	ErrUnsupportedCheckpoint = errors.New("unsupported checkpoint")
	// ErrUnsupportedInterval is returned for a zero value or unknown block interval
	ErrUnsupportedInterval = errors.New("unsupported block interval")
	// ErrIntervalTooLarge is returned for a range of more than MaxIntervalBlocks blocks
	ErrIntervalTooLarge = errors.New("block interval too large")
	// ErrHashCheckpoint is returned when a checkpoint is given as a block hash
	ErrHashCheckpoint = errors.New("checkpoints by block hash are not supported")
	// ErrInvalidSource is returned when a block source names no variant or more than one
	ErrInvalidSource = errors.New("invalid block source")
)

// SourceKind identifies the variant of a BlockSource.
type SourceKind int

const (
	SourceRPC SourceKind = iota + 1
	SourceLocalFile
	SourceObjectStore
)

func (k SourceKind) String() string {
	switch k {
	case SourceRPC:
		return "rpc"
	case SourceLocalFile:
		return "local_file"
	case SourceObjectStore:
		return "object_store"
	default:
		return fmt.Sprintf("source(%d)", int(k))
	}
}

// Stage is the step of a fetch that failed.
type Stage string

const (
	StageConnect  Stage = "connect"
	StageResolve  Stage = "resolve"
	StageRead     Stage = "read"
	StageDecode   Stage = "decode"
	StageDownload Stage = "download"
	StageText     Stage = "text"
)

// FetchError tells which source failed, at which stage, and why.
type FetchError struct {
	Source SourceKind
	Stage  Stage
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %s source failed at %s: %v", ErrFetch, e.Source, e.Stage, e.Err)
}

// Unwrap returns the underlying cause
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is allows errors.Is(err, ErrFetch)
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

func newFetchError(source SourceKind, stage Stage, err error) *FetchError {
	return &FetchError{Source: source, Stage: stage, Err: err}
}
