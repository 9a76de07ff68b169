// Package sqlite provides a SQLite-backed implementation of the
// storage.Store interface. Each collection is stored whole as a JSON blob
// under its fixed key, mirroring the key/value layout the dashboard has
// always used.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/uneeddev/agencydesk/internal/models"
	"github.com/uneeddev/agencydesk/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// getJSON reads the value under key and unmarshals it into dest.
// A missing row or corrupt JSON leaves dest untouched: the caller's
// zero/default value stands in for absent data.
func (s *SQLiteStore) getJSON(ctx context.Context, key string, dest any) error {
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM kv WHERE key = ?", key,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read key %q: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		// Corrupt data is treated as absent, not fatal.
		slog.Debug("Discarding corrupt stored value", "key", key, "error", err)
		return nil
	}
	return nil
}

// putJSON marshals value and upserts it under key.
func (s *SQLiteStore) putJSON(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for key %q: %w", key, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, raw, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

// LoadProjects returns the stored project collection, empty when absent.
func (s *SQLiteStore) LoadProjects(ctx context.Context) ([]models.Project, error) {
	projects := []models.Project{}
	if err := s.getJSON(ctx, storage.KeyProjects, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// SaveProjects replaces the stored project collection.
func (s *SQLiteStore) SaveProjects(ctx context.Context, projects []models.Project) error {
	return s.putJSON(ctx, storage.KeyProjects, projects)
}

// LoadTransactions returns the stored transaction collection, empty when absent.
func (s *SQLiteStore) LoadTransactions(ctx context.Context) ([]models.Transaction, error) {
	transactions := []models.Transaction{}
	if err := s.getJSON(ctx, storage.KeyTransactions, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

// SaveTransactions replaces the stored transaction collection.
func (s *SQLiteStore) SaveTransactions(ctx context.Context, transactions []models.Transaction) error {
	return s.putJSON(ctx, storage.KeyTransactions, transactions)
}

// LoadTeamMembers returns the stored team-member collection, empty when absent.
func (s *SQLiteStore) LoadTeamMembers(ctx context.Context) ([]models.TeamMember, error) {
	members := []models.TeamMember{}
	if err := s.getJSON(ctx, storage.KeyTeamMembers, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// SaveTeamMembers replaces the stored team-member collection.
func (s *SQLiteStore) SaveTeamMembers(ctx context.Context, members []models.TeamMember) error {
	return s.putJSON(ctx, storage.KeyTeamMembers, members)
}

// LoadCloudConfig returns the stored cloud credentials, zero when absent.
func (s *SQLiteStore) LoadCloudConfig(ctx context.Context) (models.CloudConfig, error) {
	var cfg models.CloudConfig
	if err := s.getJSON(ctx, storage.KeyCloudConfig, &cfg); err != nil {
		return models.CloudConfig{}, err
	}
	return cfg, nil
}

// SaveCloudConfig replaces the stored cloud credentials.
func (s *SQLiteStore) SaveCloudConfig(ctx context.Context, cfg models.CloudConfig) error {
	return s.putJSON(ctx, storage.KeyCloudConfig, cfg)
}

// Authenticated returns the persisted login flag.
func (s *SQLiteStore) Authenticated(ctx context.Context) (bool, error) {
	var ok bool
	if err := s.getJSON(ctx, storage.KeyAuthenticated, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

// SetAuthenticated persists the login flag.
func (s *SQLiteStore) SetAuthenticated(ctx context.Context, ok bool) error {
	return s.putJSON(ctx, storage.KeyAuthenticated, ok)
}
