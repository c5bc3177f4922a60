package artifact

import (
	"bytes"
	"database/sql"
	"encoding/gob"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/mikey/scam-honeypot/internal/ml"
)

// SQLiteStore persists the artifact as a gob blob in a single-row SQLite
// table, useful when the cache already lives in the same database file.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStore creates a new SQLite-backed artifact store.
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS classifier_artifact (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			version TEXT,
			payload BLOB,
			saved_at TIMESTAMP
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger,
	}, nil
}

// Load reads and decodes the stored artifact.
func (s *SQLiteStore) Load() (*ml.Artifact, error) {
	var payload []byte
	err := s.db.QueryRow(`
		SELECT payload FROM classifier_artifact WHERE id = 1
	`).Scan(&payload)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("no stored artifact")
		}
		return nil, fmt.Errorf("failed to query artifact: %w", err)
	}

	var artifact ml.Artifact
	if err := gob.NewDecoder(bytes.NewReader(payload)).Decode(&artifact); err != nil {
		return nil, fmt.Errorf("failed to decode artifact: %w", err)
	}
	return &artifact, nil
}

// Save stores the artifact, overwriting any previous one.
func (s *SQLiteStore) Save(artifact *ml.Artifact) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(artifact); err != nil {
		return fmt.Errorf("failed to encode artifact: %w", err)
	}

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO classifier_artifact (id, version, payload, saved_at)
		VALUES (1, ?, ?, ?)
	`, artifact.Version, buf.Bytes(), time.Now().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to store artifact: %w", err)
	}

	s.logger.Info("Persisted classifier artifact",
		zap.String("version", artifact.Version),
		zap.Int("size_bytes", buf.Len()))
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
