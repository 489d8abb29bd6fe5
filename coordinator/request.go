package coordinator

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/0xPolygon/zero-coordinator/fetch"
	"github.com/0xPolygon/zero-coordinator/proofout"
	"github.com/0xPolygon/zero-coordinator/prover"
	"github.com/google/uuid"
)

// ErrInvalidRequest is returned when a prove request can't be accepted
var ErrInvalidRequest = errors.New("invalid prove request")

// ProveRequest is a request to prove a set of blocks. The inputs come either
// from Source or embedded in ProverInput.
type ProveRequest struct {
	ID           uuid.UUID                 `json:"-"`
	RunName      string                    `json:"run_name"`
	Source       *fetch.BlockSource        `json:"source,omitempty"`
	ProverInput  []prover.BlockProverInput `json:"prover_input,omitempty"`
	ProverConfig prover.Config             `json:"prover_config"`
	ReceivedAt   time.Time                 `json:"-"`
}

// UnmarshalJSON decodes a request, defaulting the run name and the prover options
func (r *ProveRequest) UnmarshalJSON(data []byte) error {
	type plain ProveRequest
	req := plain{ProverConfig: prover.DefaultConfig()}
	if err := json.Unmarshal(data, &req); err != nil {
		return err
	}
	if req.RunName == "" {
		req.RunName = proofout.DefaultRunName
	}
	*r = ProveRequest(req)
	return nil
}

// Validate checks the request carries exactly one way to get its inputs and usable options
func (r *ProveRequest) Validate() error {
	switch {
	case r.Source != nil && len(r.ProverInput) > 0:
		return fmt.Errorf("%w: both source and prover_input given", ErrInvalidRequest)
	case r.Source == nil && len(r.ProverInput) == 0:
		return fmt.Errorf("%w: one of source or prover_input is required", ErrInvalidRequest)
	case r.Source != nil:
		if err := r.Source.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
	}
	if err := proofout.ValidateRunName(r.RunName); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if err := r.ProverConfig.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return nil
}

// SourceName is the label of the origin of the inputs
func (r *ProveRequest) SourceName() string {
	if r.Source == nil {
		return "embedded"
	}
	return r.Source.Kind().String()
}

func (r *ProveRequest) String() string {
	if r.Source == nil {
		return fmt.Sprintf("request %s run=%s embedded(%d blocks)", r.ID, r.RunName, len(r.ProverInput))
	}
	return fmt.Sprintf("request %s run=%s %s", r.ID, r.RunName, r.Source)
}
