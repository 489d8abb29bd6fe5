package proofout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"

	"github.com/0xPolygon/zero-coordinator/log"
	"github.com/0xPolygon/zero-coordinator/prover"
)

const (
	// DefaultRunName is used for requests that don't name their run
	DefaultRunName = "default"

	contentTypeJSON = "application/json"
	inputsDir       = "inputs"
)

var (
	ErrInvalidRunName = errors.New("invalid run name")     //nolint:revive
	ErrNoDestination  = errors.New("no proof destination") //nolint:revive
)

var runNameRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// ValidateRunName checks name can be used as a directory or key prefix
func ValidateRunName(name string) error {
	if !runNameRe.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidRunName, name)
	}
	return nil
}

// Uploader stores an object in a bucket
type Uploader interface {
	Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error
}

// Writer persists the proofs of a run, and the block inputs of failed runs.
type Writer struct {
	cfg      Config
	uploader Uploader
	logger   *log.Logger
}

// New builds a Writer. uploader is only required when cfg.Bucket is set.
func New(logger *log.Logger, cfg Config, uploader Uploader) (*Writer, error) {
	switch {
	case cfg.Bucket != "":
		if uploader == nil {
			return nil, fmt.Errorf("%w: bucket %s configured without an object store", ErrNoDestination, cfg.Bucket)
		}
	case cfg.Dir != "":
		if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("error creating proof dir %s: %w", cfg.Dir, err)
		}
	default:
		return nil, ErrNoDestination
	}
	return &Writer{cfg: cfg, uploader: uploader, logger: logger}, nil
}

// WriteProofs stores every proof as <run>/<block>.json
func (w *Writer) WriteProofs(ctx context.Context, runName string, proofs []prover.Proof) error {
	for i := range proofs {
		data, err := json.Marshal(proofs[i])
		if err != nil {
			return fmt.Errorf("error encoding proof of block %d: %w", proofs[i].BlockNumber, err)
		}
		name := fmt.Sprintf("%d.json", proofs[i].BlockNumber)
		if err := w.write(ctx, runName, name, data); err != nil {
			return err
		}
	}
	return nil
}

// WriteInputs stores every block input as <run>/inputs/<block>.json
func (w *Writer) WriteInputs(ctx context.Context, runName string, inputs []prover.BlockProverInput) error {
	for i := range inputs {
		data, err := json.Marshal(inputs[i])
		if err != nil {
			return fmt.Errorf("error encoding input %d: %w", i, err)
		}
		name := path.Join(inputsDir, fmt.Sprintf("%d.json", inputs[i].BlockNumber()))
		if err := w.write(ctx, runName, name, data); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) write(ctx context.Context, runName, name string, data []byte) error {
	if err := ValidateRunName(runName); err != nil {
		return err
	}

	if w.cfg.Bucket != "" {
		key := path.Join(runName, name)
		if err := w.uploader.Upload(ctx, w.cfg.Bucket, key, data, contentTypeJSON); err != nil {
			return fmt.Errorf("error uploading %s to bucket %s: %w", key, w.cfg.Bucket, err)
		}
		w.logger.Debugf("uploaded %s to bucket %s", key, w.cfg.Bucket)
		return nil
	}

	file := filepath.Join(w.cfg.Dir, runName, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return fmt.Errorf("error creating dir for %s: %w", file, err)
	}
	if err := os.WriteFile(file, data, 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("error writing %s: %w", file, err)
	}
	w.logger.Debugf("wrote %s", file)
	return nil
}
