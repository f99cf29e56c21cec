package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/flowfield/config"
	"github.com/pthm-cable/flowfield/export"
)

// OutputManager handles run output: CSV logs, config snapshot and exports.
type OutputManager struct {
	dir           string
	statsFile     *os.File
	particlesFile *os.File

	// Track if headers have been written
	statsHeaderWritten     bool
	particlesHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "stats.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating stats.csv: %w", err)
	}
	om.statsFile = f

	f, err = os.Create(filepath.Join(dir, "particles.csv"))
	if err != nil {
		om.statsFile.Close()
		return nil, fmt.Errorf("creating particles.csv: %w", err)
	}
	om.particlesFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteStats appends a field summary to stats.csv.
func (om *OutputManager) WriteStats(s FieldStats) error {
	if om == nil {
		return nil
	}

	records := []FieldStats{s}

	if !om.statsHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.statsFile); err != nil {
			return fmt.Errorf("writing stats: %w", err)
		}
		om.statsHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.statsFile); err != nil {
			return fmt.Errorf("writing stats: %w", err)
		}
	}

	return nil
}

// WriteParticles appends one row per particle to particles.csv.
func (om *OutputManager) WriteParticles(rows []ParticleRow) error {
	if om == nil || len(rows) == 0 {
		return nil
	}

	if !om.particlesHeaderWritten {
		if err := gocsv.Marshal(rows, om.particlesFile); err != nil {
			return fmt.Errorf("writing particles: %w", err)
		}
		om.particlesHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(rows, om.particlesFile); err != nil {
			return fmt.Errorf("writing particles: %w", err)
		}
	}

	return nil
}

// WriteDocument saves doc as JSON under its conventional name and returns the path.
func (om *OutputManager) WriteDocument(doc *export.Document) (string, error) {
	if om == nil || doc == nil {
		return "", nil
	}

	path := filepath.Join(om.dir, export.FileName(doc.Timestamp))
	if err := export.WriteFile(path, doc); err != nil {
		return "", fmt.Errorf("writing field document: %w", err)
	}
	return path, nil
}

// Path returns name joined to the output directory.
func (om *OutputManager) Path(name string) string {
	if om == nil {
		return ""
	}
	return filepath.Join(om.dir, name)
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error

	if om.statsFile != nil {
		if err := om.statsFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if om.particlesFile != nil {
		if err := om.particlesFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
