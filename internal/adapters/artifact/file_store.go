// Package artifact persists trained classifier artifacts across process
// lifetimes, either as a gob file or as a versioned blob in SQLite.
package artifact

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/mikey/scam-honeypot/internal/ml"
)

// FileStore persists the artifact as a gob-encoded file.
type FileStore struct {
	path   string
	logger *zap.Logger
}

// NewFileStore creates a new file-backed artifact store, ensuring the
// parent directory exists.
func NewFileStore(path string, logger *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create artifact directory: %w", err)
	}
	return &FileStore{
		path:   path,
		logger: logger,
	}, nil
}

// Load reads and decodes the stored artifact.
func (s *FileStore) Load() (*ml.Artifact, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open artifact file: %w", err)
	}
	defer f.Close()

	var artifact ml.Artifact
	if err := gob.NewDecoder(f).Decode(&artifact); err != nil {
		return nil, fmt.Errorf("failed to decode artifact: %w", err)
	}
	return &artifact, nil
}

// Save writes the artifact atomically: encode to a temp file, then rename.
// A concurrent save races benignly; the last writer wins.
func (s *FileStore) Save(artifact *ml.Artifact) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".artifact-*")
	if err != nil {
		return fmt.Errorf("failed to create temp artifact file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(artifact); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp artifact file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace artifact file: %w", err)
	}

	s.logger.Info("Persisted classifier artifact",
		zap.String("path", s.path),
		zap.String("version", artifact.Version))
	return nil
}
