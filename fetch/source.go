package fetch

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/0xPolygon/zero-coordinator/provider"
)

// RPCSource fetches block inputs from a node.
type RPCSource struct {
	URL           string           `json:"rpc_url"`
	BlockInterval BlockInterval    `json:"block_interval"`
	Checkpoint    *Checkpoint      `json:"checkpoint,omitempty"`
	BackoffMillis *uint64          `json:"backoff,omitempty"`
	MaxRetries    *uint            `json:"max_retries,omitempty"`
	RPCType       provider.RPCType `json:"rpc_type,omitempty"`
}

// Backoff returns the wait before the first retry, 0 when unset
func (s *RPCSource) Backoff() time.Duration {
	if s.BackoffMillis == nil {
		return 0
	}
	return time.Duration(*s.BackoffMillis) * time.Millisecond
}

// Retries returns the number of retries per call, 0 when unset
func (s *RPCSource) Retries() uint {
	if s.MaxRetries == nil {
		return 0
	}
	return *s.MaxRetries
}

// ResolvedCheckpoint returns the checkpoint, DefaultCheckpoint when unset
func (s *RPCSource) ResolvedCheckpoint() Checkpoint {
	if s.Checkpoint == nil {
		return DefaultCheckpoint()
	}
	return *s.Checkpoint
}

// ResolvedRPCType returns the rpc type, jerigon when unset
func (s *RPCSource) ResolvedRPCType() provider.RPCType {
	if s.RPCType == "" {
		return provider.RPCTypeJerigon
	}
	return s.RPCType
}

// LocalFileSource reads a JSON array of block inputs from disk.
type LocalFileSource struct {
	Path string `json:"filepath"`
}

// ObjectStoreSource downloads a JSON array of block inputs from a bucket.
type ObjectStoreSource struct {
	Bucket string `json:"bucket"`
	Path   string `json:"filepath"`
}

// BlockSource is where the inputs of a request come from. Exactly one field is set.
type BlockSource struct {
	RPC         *RPCSource         `json:"rpc,omitempty"`
	LocalFile   *LocalFileSource   `json:"localFile,omitempty"`
	ObjectStore *ObjectStoreSource `json:"objectStore,omitempty"`
}

// Kind returns the variant of the source, 0 when invalid
func (s *BlockSource) Kind() SourceKind {
	if s.Validate() != nil {
		return 0
	}
	switch {
	case s.RPC != nil:
		return SourceRPC
	case s.LocalFile != nil:
		return SourceLocalFile
	default:
		return SourceObjectStore
	}
}

// Validate checks exactly one variant is set and that it is well formed
func (s *BlockSource) Validate() error {
	set := 0
	for _, isSet := range []bool{s.RPC != nil, s.LocalFile != nil, s.ObjectStore != nil} {
		if isSet {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("%w: %d variants set, expected exactly one", ErrInvalidSource, set)
	}
	switch {
	case s.RPC != nil:
		if s.RPC.URL == "" {
			return fmt.Errorf("%w: empty rpc url", ErrInvalidSource)
		}
		if err := s.RPC.BlockInterval.Validate(); err != nil {
			return err
		}
		if _, err := s.RPC.ResolvedCheckpoint().Resolve(s.RPC.BlockInterval); err != nil {
			return err
		}
	case s.LocalFile != nil:
		if s.LocalFile.Path == "" {
			return fmt.Errorf("%w: empty file path", ErrInvalidSource)
		}
	default:
		if s.ObjectStore.Bucket == "" || s.ObjectStore.Path == "" {
			return fmt.Errorf("%w: bucket and path are required", ErrInvalidSource)
		}
	}
	return nil
}

// UnmarshalJSON decodes a source. "gcs" is accepted as an alias of "objectStore".
func (s *BlockSource) UnmarshalJSON(data []byte) error {
	type plain BlockSource
	var aux struct {
		plain
		Gcs *ObjectStoreSource `json:"gcs,omitempty"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*s = BlockSource(aux.plain)
	if aux.Gcs != nil {
		if s.ObjectStore != nil {
			return fmt.Errorf("%w: both gcs and objectStore given", ErrInvalidSource)
		}
		s.ObjectStore = aux.Gcs
	}
	return s.Validate()
}

func (s *BlockSource) String() string {
	switch {
	case s.RPC != nil:
		return fmt.Sprintf("rpc(%s, %s)", s.RPC.URL, s.RPC.BlockInterval)
	case s.LocalFile != nil:
		return fmt.Sprintf("file(%s)", s.LocalFile.Path)
	case s.ObjectStore != nil:
		return fmt.Sprintf("object(%s/%s)", s.ObjectStore.Bucket, s.ObjectStore.Path)
	default:
		return "invalid"
	}
}
