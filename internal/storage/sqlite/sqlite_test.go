package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/uneeddev/agencydesk/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("empty store loads empty collections", func(t *testing.T) {
		projects, err := store.LoadProjects(ctx)
		if err != nil {
			t.Fatalf("LoadProjects failed: %v", err)
		}
		if len(projects) != 0 {
			t.Errorf("Expected empty projects, got %d", len(projects))
		}

		transactions, err := store.LoadTransactions(ctx)
		if err != nil {
			t.Fatalf("LoadTransactions failed: %v", err)
		}
		if len(transactions) != 0 {
			t.Errorf("Expected empty transactions, got %d", len(transactions))
		}

		cfg, err := store.LoadCloudConfig(ctx)
		if err != nil {
			t.Fatalf("LoadCloudConfig failed: %v", err)
		}
		if cfg.Configured() {
			t.Error("Expected zero cloud config")
		}
	})

	t.Run("projects round trip", func(t *testing.T) {
		saved := []models.Project{
			{ID: "p1", Name: "Site A", Client: "Acme", Value: 1000000, Status: models.StatusPending},
			{ID: "p2", Name: "App B", Client: "Beta Corp", Value: 2500000, Status: models.StatusInProgress, Deadline: "2024-06-30"},
		}
		if err := store.SaveProjects(ctx, saved); err != nil {
			t.Fatalf("SaveProjects failed: %v", err)
		}

		loaded, err := store.LoadProjects(ctx)
		if err != nil {
			t.Fatalf("LoadProjects failed: %v", err)
		}
		if len(loaded) != 2 {
			t.Fatalf("Expected 2 projects, got %d", len(loaded))
		}
		if loaded[0] != saved[0] || loaded[1] != saved[1] {
			t.Errorf("Loaded projects differ from saved: %+v", loaded)
		}
	})

	t.Run("transactions with splits round trip", func(t *testing.T) {
		saved := []models.Transaction{
			{
				ID: "t1", Date: "2024-03-01", Description: "DP Site A",
				Amount: 500000, Type: models.TypeIncome, ProjectID: "p1",
				Splits: []models.RevenueSplit{
					{MemberID: "m1", Amount: 300000},
					{MemberID: "m2", Amount: 200000},
				},
			},
		}
		if err := store.SaveTransactions(ctx, saved); err != nil {
			t.Fatalf("SaveTransactions failed: %v", err)
		}

		loaded, err := store.LoadTransactions(ctx)
		if err != nil {
			t.Fatalf("LoadTransactions failed: %v", err)
		}
		if len(loaded) != 1 {
			t.Fatalf("Expected 1 transaction, got %d", len(loaded))
		}
		if len(loaded[0].Splits) != 2 || loaded[0].Splits[0].Amount != 300000 {
			t.Errorf("Splits not preserved: %+v", loaded[0].Splits)
		}
	})

	t.Run("save replaces rather than appends", func(t *testing.T) {
		if err := store.SaveTeamMembers(ctx, []models.TeamMember{{ID: "m1", Name: "Andi", Role: "Backend"}}); err != nil {
			t.Fatalf("SaveTeamMembers failed: %v", err)
		}
		if err := store.SaveTeamMembers(ctx, []models.TeamMember{{ID: "m2", Name: "Budi", Role: "Design"}}); err != nil {
			t.Fatalf("SaveTeamMembers failed: %v", err)
		}

		members, err := store.LoadTeamMembers(ctx)
		if err != nil {
			t.Fatalf("LoadTeamMembers failed: %v", err)
		}
		if len(members) != 1 || members[0].ID != "m2" {
			t.Errorf("Expected only the second save to remain, got %+v", members)
		}
	})

	t.Run("cloud config round trip", func(t *testing.T) {
		cfg := models.CloudConfig{BinID: "abc123", APIKey: "secret"}
		if err := store.SaveCloudConfig(ctx, cfg); err != nil {
			t.Fatalf("SaveCloudConfig failed: %v", err)
		}
		loaded, err := store.LoadCloudConfig(ctx)
		if err != nil {
			t.Fatalf("LoadCloudConfig failed: %v", err)
		}
		if loaded != cfg {
			t.Errorf("Loaded config = %+v, want %+v", loaded, cfg)
		}
	})

	t.Run("authenticated flag", func(t *testing.T) {
		ok, err := store.Authenticated(ctx)
		if err != nil {
			t.Fatalf("Authenticated failed: %v", err)
		}
		if ok {
			t.Error("Expected unauthenticated by default")
		}

		if err := store.SetAuthenticated(ctx, true); err != nil {
			t.Fatalf("SetAuthenticated failed: %v", err)
		}
		ok, err = store.Authenticated(ctx)
		if err != nil {
			t.Fatalf("Authenticated failed: %v", err)
		}
		if !ok {
			t.Error("Expected authenticated after SetAuthenticated(true)")
		}
	})
}

func TestCorruptValueFallsBackToDefault(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Write garbage directly under the projects key.
	_, err := store.db.ExecContext(ctx,
		"INSERT INTO kv (key, value, updated_at) VALUES (?, ?, 0)",
		"admin_projects", []byte("{not json"),
	)
	if err != nil {
		t.Fatalf("Failed to plant corrupt value: %v", err)
	}

	projects, err := store.LoadProjects(ctx)
	if err != nil {
		t.Fatalf("LoadProjects should not fail on corrupt data: %v", err)
	}
	if len(projects) != 0 {
		t.Errorf("Expected empty fallback, got %+v", projects)
	}
}

func TestDataSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "persist.db")

	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	ctx := context.Background()
	if err := store.SaveProjects(ctx, []models.Project{{ID: "p1", Name: "Site A", Client: "Acme", Value: 1, Status: models.StatusPending}}); err != nil {
		t.Fatalf("SaveProjects failed: %v", err)
	}
	store.Close()

	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("Database file missing: %v", err)
	}

	reopened, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer reopened.Close()

	projects, err := reopened.LoadProjects(ctx)
	if err != nil {
		t.Fatalf("LoadProjects failed: %v", err)
	}
	if len(projects) != 1 || projects[0].ID != "p1" {
		t.Errorf("Expected persisted project, got %+v", projects)
	}
}
