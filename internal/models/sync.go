package models

// SyncStatus is the transient UI feedback state for cloud synchronization.
// It is process state only, never persisted, and resets to idle on a timer.
type SyncStatus string

const (
	SyncIdle    SyncStatus = "idle"
	SyncSuccess SyncStatus = "success"
	SyncError   SyncStatus = "error"
)

// CloudConfig holds the credentials for the remote JSON document store.
// Both fields must be non-empty for any cloud operation to run.
// Stored locally as-is; the dashboard is a single-admin tool and makes no
// attempt to encrypt the key at rest.
type CloudConfig struct {
	// BinID identifies the remote document holding the full snapshot.
	BinID string `json:"binId"`

	// APIKey is the static secret sent on every document-store request.
	APIKey string `json:"apiKey"`
}

// Configured reports whether both credentials are present.
func (c CloudConfig) Configured() bool {
	return c.BinID != "" && c.APIKey != ""
}

// Snapshot is the full dashboard state as stored in the remote document
// and in local exports. LastUpdated is a client-side timestamp the server
// never interprets.
type Snapshot struct {
	Projects     []Project     `json:"projects"`
	Transactions []Transaction `json:"transactions"`
	TeamMembers  []TeamMember  `json:"teamMembers"`
	LastUpdated  string        `json:"lastUpdated,omitempty"`
}
