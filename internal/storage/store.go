// Package storage provides abstractions for the dashboard's local
// persistent store.
package storage

import (
	"context"

	"github.com/uneeddev/agencydesk/internal/models"
)

// Keys under which the collections are persisted. These are fixed strings:
// the local store is a plain key/value space of JSON-encoded blobs, and the
// keys double as the on-disk schema.
const (
	KeyAuthenticated = "isAuthenticated"
	KeyProjects      = "admin_projects"
	KeyTransactions  = "admin_transactions"
	KeyTeamMembers   = "admin_team_members"
	KeyCloudConfig   = "jsonbin_config"
)

// Store defines the interface for the local persistent store.
// This abstraction allows swapping storage backends (SQLite, a flat file,
// etc.) without changing the service layer.
//
// Load methods never fail on missing or corrupt data: an absent or
// unparseable value decodes to the empty/default value, so a damaged store
// degrades to a fresh one instead of wedging the dashboard. Errors are
// reserved for real I/O failures.
type Store interface {
	LoadProjects(ctx context.Context) ([]models.Project, error)
	SaveProjects(ctx context.Context, projects []models.Project) error

	LoadTransactions(ctx context.Context) ([]models.Transaction, error)
	SaveTransactions(ctx context.Context, transactions []models.Transaction) error

	LoadTeamMembers(ctx context.Context) ([]models.TeamMember, error)
	SaveTeamMembers(ctx context.Context, members []models.TeamMember) error

	LoadCloudConfig(ctx context.Context) (models.CloudConfig, error)
	SaveCloudConfig(ctx context.Context, cfg models.CloudConfig) error

	// Authenticated is the persisted login flag checked on startup to
	// bypass the login screen. Logout clears it.
	Authenticated(ctx context.Context) (bool, error)
	SetAuthenticated(ctx context.Context, ok bool) error

	// Close releases any resources held by the store.
	Close() error
}
