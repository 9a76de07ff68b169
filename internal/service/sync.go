package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/uneeddev/agencydesk/internal/metrics"
	"github.com/uneeddev/agencydesk/internal/models"
)

// Cloud synchronization. Policy is deliberately last-write-wins with no
// merge: this is a single-admin tool, and the snapshot is small enough to
// ship whole. What the original dashboard left to disabled buttons is
// enforced here: syncMu actually serializes cloud operations, so rapid
// manual triggers queue up instead of racing to overwrite the document.

// SyncState is the transient sync feedback exposed to the UI.
type SyncState struct {
	Status    models.SyncStatus `json:"status"`
	IsSyncing bool              `json:"isSyncing"`
}

// SyncState returns the current sync status and whether an operation is
// in flight.
func (s *AdminService) SyncState() SyncState {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	return SyncState{Status: s.syncStatus, IsSyncing: s.syncing}
}

// CloudConfig returns the current document-store credentials.
func (s *AdminService) CloudConfig() models.CloudConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cloudCfg
}

// ConfigureCloud persists new document-store credentials. When both fields
// are present the cloud copy is adopted immediately, same as on startup;
// an adoption failure is reported through the sync status, not returned.
func (s *AdminService) ConfigureCloud(ctx context.Context, cfg models.CloudConfig) error {
	s.mu.Lock()
	s.cloudCfg = cfg
	s.mu.Unlock()

	if err := s.store.SaveCloudConfig(ctx, cfg); err != nil {
		return fmt.Errorf("failed to persist cloud config: %w", err)
	}
	slog.Info("Cloud config saved", "bin_id", cfg.BinID)

	if cfg.Configured() {
		if err := s.FetchFromCloud(ctx); err != nil {
			slog.Warn("Auto-load after config save failed", "error", err)
		}
	}
	return nil
}

// snapshot captures the current collections with a fresh client timestamp.
func (s *AdminService) snapshot() models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.Snapshot{
		Projects:     append([]models.Project(nil), s.projects...),
		Transactions: append([]models.Transaction(nil), s.transactions...),
		TeamMembers:  append([]models.TeamMember(nil), s.members...),
		LastUpdated:  time.Now().UTC().Format(time.RFC3339),
	}
}

// pushAsync fires a best-effort background push after a successful local
// mutation. Callers never wait on it; Flush and Close do.
func (s *AdminService) pushAsync() {
	if !s.CloudConfig().Configured() {
		return
	}
	s.pushes.Add(1)
	go func() {
		defer s.pushes.Done()
		if err := s.PushToCloud(context.Background()); err != nil {
			slog.Warn("Background cloud push failed", "error", err)
		}
	}()
}

// PushToCloud uploads the full current snapshot to the configured document.
func (s *AdminService) PushToCloud(ctx context.Context) error {
	cfg := s.CloudConfig()
	if !cfg.Configured() {
		return ErrNotConfigured
	}

	s.syncMu.Lock()
	defer s.syncMu.Unlock()
	s.beginSync()
	defer s.endSync()

	if err := s.cloud.Update(ctx, cfg.BinID, cfg.APIKey, s.snapshot()); err != nil {
		s.setSyncStatus(models.SyncError)
		metrics.SyncAttempts.WithLabelValues("push", "error").Inc()
		return fmt.Errorf("cloud push failed: %w", err)
	}

	s.setSyncStatus(models.SyncSuccess)
	metrics.SyncAttempts.WithLabelValues("push", "success").Inc()
	slog.Info("Snapshot pushed to cloud", "bin_id", cfg.BinID)
	return nil
}

// FetchFromCloud fetches the configured document and adopts it wholesale:
// all three collections and the local store are overwritten ("cloud wins").
// On any failure nothing is adopted and local state stays as it was.
func (s *AdminService) FetchFromCloud(ctx context.Context) error {
	cfg := s.CloudConfig()
	if !cfg.Configured() {
		return ErrNotConfigured
	}

	s.syncMu.Lock()
	defer s.syncMu.Unlock()
	s.beginSync()
	defer s.endSync()

	snap, err := s.cloud.Fetch(ctx, cfg.BinID, cfg.APIKey)
	if err != nil {
		s.setSyncStatus(models.SyncError)
		metrics.SyncAttempts.WithLabelValues("fetch", "error").Inc()
		return fmt.Errorf("cloud fetch failed: %w", err)
	}

	// Missing sub-fields in the document default to empty collections.
	projects := snap.Projects
	if projects == nil {
		projects = []models.Project{}
	}
	transactions := snap.Transactions
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	members := snap.TeamMembers
	if members == nil {
		members = []models.TeamMember{}
	}

	// Persist before swapping in-memory state: a failed save must not
	// leave memory on the cloud copy while the local mirror lags behind.
	if err := s.store.SaveProjects(ctx, projects); err != nil {
		s.setSyncStatus(models.SyncError)
		return fmt.Errorf("failed to persist fetched projects: %w", err)
	}
	if err := s.store.SaveTransactions(ctx, transactions); err != nil {
		s.setSyncStatus(models.SyncError)
		return fmt.Errorf("failed to persist fetched transactions: %w", err)
	}
	if err := s.store.SaveTeamMembers(ctx, members); err != nil {
		s.setSyncStatus(models.SyncError)
		return fmt.Errorf("failed to persist fetched team members: %w", err)
	}

	s.mu.Lock()
	s.projects = projects
	s.transactions = transactions
	s.members = members
	s.mu.Unlock()

	s.setSyncStatus(models.SyncSuccess)
	metrics.SyncAttempts.WithLabelValues("fetch", "success").Inc()
	slog.Info("Snapshot adopted from cloud",
		"projects", len(projects),
		"transactions", len(transactions),
		"team_members", len(members),
	)
	return nil
}

// CreateRemote mints a new cloud document from the current snapshot and
// persists the returned id into the cloud config. Confirming the overwrite
// of an existing document id is the caller's responsibility.
func (s *AdminService) CreateRemote(ctx context.Context) (string, error) {
	cfg := s.CloudConfig()
	if cfg.APIKey == "" {
		return "", fmt.Errorf("%w: api key is required", ErrNotConfigured)
	}

	s.syncMu.Lock()
	defer s.syncMu.Unlock()
	s.beginSync()
	defer s.endSync()

	binID, err := s.cloud.Create(ctx, cfg.APIKey, AppName+" DB", s.snapshot())
	if err != nil {
		s.setSyncStatus(models.SyncError)
		metrics.SyncAttempts.WithLabelValues("create", "error").Inc()
		return "", err
	}

	s.mu.Lock()
	s.cloudCfg.BinID = binID
	cfg = s.cloudCfg
	s.mu.Unlock()

	if err := s.store.SaveCloudConfig(ctx, cfg); err != nil {
		s.setSyncStatus(models.SyncError)
		return "", fmt.Errorf("failed to persist new bin id: %w", err)
	}

	s.setSyncStatus(models.SyncSuccess)
	metrics.SyncAttempts.WithLabelValues("create", "success").Inc()
	slog.Info("Cloud document created", "bin_id", binID)
	return binID, nil
}

func (s *AdminService) beginSync() {
	s.statusMu.Lock()
	s.syncing = true
	s.statusMu.Unlock()
	metrics.SyncInFlight.Set(1)
}

func (s *AdminService) endSync() {
	s.statusMu.Lock()
	s.syncing = false
	s.statusMu.Unlock()
	metrics.SyncInFlight.Set(0)
}

// setSyncStatus transitions the feedback state and arms the timer that
// returns it to idle.
func (s *AdminService) setSyncStatus(status models.SyncStatus) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()

	s.syncStatus = status
	if s.resetTimer != nil {
		s.resetTimer.Stop()
		s.resetTimer = nil
	}
	if status == models.SyncIdle {
		return
	}
	s.resetTimer = time.AfterFunc(syncStatusResetDelay, func() {
		s.statusMu.Lock()
		s.syncStatus = models.SyncIdle
		s.resetTimer = nil
		s.statusMu.Unlock()
	})
}
