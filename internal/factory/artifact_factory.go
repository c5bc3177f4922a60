package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mikey/scam-honeypot/internal/adapters/artifact"
	"github.com/mikey/scam-honeypot/internal/config"
	"github.com/mikey/scam-honeypot/internal/ml"
)

// ArtifactFactory creates classifier artifact stores based on configuration
type ArtifactFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewArtifactFactory creates a new artifact store factory
func NewArtifactFactory(cfg *config.Config, logger *zap.Logger) *ArtifactFactory {
	return &ArtifactFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateArtifactStore creates an artifact store based on the configuration
func (f *ArtifactFactory) CreateArtifactStore() (ml.ArtifactStore, error) {
	storeType := f.cfg.GetString("detector.artifact_store")

	switch storeType {
	case "file":
		return artifact.NewFileStore(f.cfg.GetString("detector.artifact_path"), f.logger)
	case "sqlite":
		return artifact.NewSQLiteStore(f.cfg.GetString("detector.artifact_sqlite_path"), f.logger)
	default:
		return nil, fmt.Errorf("unsupported artifact store type: %s", storeType)
	}
}
