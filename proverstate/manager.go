package proverstate

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/0xPolygon/zero-coordinator/log"
)

const (
	manifestFileName = "circuits.json"

	dirPermissions  = os.FileMode(0o755)
	filePermissions = os.FileMode(0o600)
)

// manifest is what the prover state keeps next to the persisted circuits so a
// restart with different sizes is detected.
type manifest struct {
	Strategy string                 `json:"strategy"`
	Circuits map[string]CircuitSize `json:"circuits"`
}

// Manager prepares the prover state before any proof is requested.
type Manager struct {
	cfg        Config
	circuitDir string
	logger     *log.Logger
}

// NewManager returns a Manager for cfg. circuitDir is only used with Disk persistence.
func NewManager(logger *log.Logger, cfg Config, circuitDir string) *Manager {
	return &Manager{
		cfg:        cfg,
		circuitDir: circuitDir,
		logger:     logger,
	}
}

// Initialize validates the circuit sizes and, for Disk persistence, prepares
// the circuit directory and its manifest.
func (m *Manager) Initialize() error {
	for _, c := range Circuits() {
		if err := m.cfg.CircuitSizes.Get(c).Validate(); err != nil {
			return fmt.Errorf("circuit %s: %w", c, err)
		}
	}

	if m.cfg.Persistence.Kind != PersistenceDisk {
		m.logger.Info("circuit persistence disabled, circuits will be kept in memory")
		return nil
	}

	if m.circuitDir == "" {
		return errors.New("disk persistence requires a circuit directory")
	}
	if err := os.MkdirAll(m.circuitDir, dirPermissions); err != nil {
		return fmt.Errorf("error creating circuit directory %s: %w", m.circuitDir, err)
	}

	current := m.manifest()
	path := filepath.Join(m.circuitDir, manifestFileName)
	previous, err := readManifest(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		m.logger.Infof("no circuit manifest found at %s, circuits will be generated", path)
	case err != nil:
		m.logger.Warnf("ignoring unreadable circuit manifest %s: %v", path, err)
	case !previous.equal(current):
		m.logger.Warnf("circuit sizes changed since last run, persisted circuits in %s will be regenerated", m.circuitDir)
	default:
		m.logger.Infof("reusing persisted circuits in %s (%s)", m.circuitDir, m.cfg.Persistence)
		return nil
	}

	data, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return fmt.Errorf("error writing circuit manifest %s: %w", path, err)
	}
	return nil
}

func (m *Manager) manifest() manifest {
	res := manifest{
		Strategy: m.cfg.Persistence.Strategy.String(),
		Circuits: make(map[string]CircuitSize, NumTables),
	}
	for _, c := range Circuits() {
		res.Circuits[c.String()] = m.cfg.CircuitSizes.Get(c)
	}
	return res
}

func readManifest(path string) (manifest, error) {
	var res manifest
	data, err := os.ReadFile(path)
	if err != nil {
		return res, err
	}
	err = json.Unmarshal(data, &res)
	return res, err
}

func (m manifest) equal(other manifest) bool {
	if m.Strategy != other.Strategy || len(m.Circuits) != len(other.Circuits) {
		return false
	}
	for k, v := range m.Circuits {
		if other.Circuits[k] != v {
			return false
		}
	}
	return true
}
