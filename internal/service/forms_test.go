package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/uneeddev/agencydesk/internal/models"
)

func TestProjectFormLifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	t.Run("open add seeds defaults", func(t *testing.T) {
		svc.OpenAddProject()
		form := svc.ProjectForm()
		if !form.Open || form.EditingID != "" {
			t.Errorf("Unexpected form state: %+v", form)
		}
		if form.Draft.Status != models.StatusPending {
			t.Errorf("Default status = %s, want Pending", form.Draft.Status)
		}
	})

	t.Run("cancel discards without committing", func(t *testing.T) {
		svc.SetProjectDraft(ProjectInput{Name: "Draft only", Client: "Acme", Value: 100})
		svc.CancelProjectForm()
		if form := svc.ProjectForm(); form.Open || form.Draft.Name != "" {
			t.Errorf("Cancel left state behind: %+v", form)
		}
		if got := len(svc.Projects()); got != 0 {
			t.Errorf("Cancel must not commit, have %d projects", got)
		}
	})

	t.Run("submit commits and clears", func(t *testing.T) {
		svc.OpenAddProject()
		svc.SetProjectDraft(ProjectInput{Name: "Site A", Client: "Acme", Value: 100, Status: models.StatusPending})
		project, err := svc.SubmitProjectForm(ctx)
		if err != nil {
			t.Fatalf("SubmitProjectForm failed: %v", err)
		}
		if project.Name != "Site A" {
			t.Errorf("Committed project = %+v", project)
		}
		if form := svc.ProjectForm(); form.Open {
			t.Error("Form must close after submit")
		}
	})

	t.Run("invalid submit keeps the draft", func(t *testing.T) {
		svc.OpenAddProject()
		svc.SetProjectDraft(ProjectInput{Name: "Missing client"})
		if _, err := svc.SubmitProjectForm(ctx); !errors.Is(err, ErrValidation) {
			t.Fatalf("Expected ErrValidation, got %v", err)
		}
		form := svc.ProjectForm()
		if !form.Open || form.Draft.Name != "Missing client" {
			t.Errorf("Draft must survive a rejected submit: %+v", form)
		}
	})

	t.Run("open edit seeds the existing record", func(t *testing.T) {
		projects := svc.Projects()
		if len(projects) == 0 {
			t.Fatal("Need a committed project")
		}
		target := projects[0]

		if err := svc.OpenEditProject(target.ID); err != nil {
			t.Fatalf("OpenEditProject failed: %v", err)
		}
		form := svc.ProjectForm()
		if form.EditingID != target.ID || form.Draft.Name != target.Name || form.Draft.Value != target.Value {
			t.Errorf("Edit form not seeded: %+v", form)
		}

		svc.SetProjectDraft(ProjectInput{Name: "Renamed", Client: target.Client, Value: target.Value, Status: target.Status})
		updated, err := svc.SubmitProjectForm(ctx)
		if err != nil {
			t.Fatalf("SubmitProjectForm failed: %v", err)
		}
		if updated.ID != target.ID || updated.Name != "Renamed" {
			t.Errorf("Edit submit produced %+v", updated)
		}
		if got := len(svc.Projects()); got != 1 {
			t.Errorf("Edit must not add records, have %d", got)
		}
	})

	t.Run("open edit unknown id", func(t *testing.T) {
		if err := svc.OpenEditProject("nope"); !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestTransactionFormDefaults(t *testing.T) {
	svc, _ := newTestService(t)

	svc.OpenAddTransaction()
	form := svc.TransactionForm()
	if form.Draft.Type != models.TypeIncome {
		t.Errorf("Default type = %s, want Income", form.Draft.Type)
	}
	if form.Draft.Date != time.Now().Format("2006-01-02") {
		t.Errorf("Default date = %s, want today", form.Draft.Date)
	}
}

func TestMemberFormLifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	svc.OpenAddMember()
	svc.SetMemberDraft(MemberInput{Name: "Andi", Role: "Backend"})
	member, err := svc.SubmitMemberForm(ctx)
	if err != nil {
		t.Fatalf("SubmitMemberForm failed: %v", err)
	}

	if err := svc.OpenEditMember(member.ID); err != nil {
		t.Fatalf("OpenEditMember failed: %v", err)
	}
	if form := svc.MemberForm(); form.Draft.Name != "Andi" {
		t.Errorf("Edit form not seeded: %+v", form)
	}

	svc.SetMemberDraft(MemberInput{Name: "Andi", Role: "Lead Backend"})
	updated, err := svc.SubmitMemberForm(ctx)
	if err != nil {
		t.Fatalf("SubmitMemberForm failed: %v", err)
	}
	if updated.Role != "Lead Backend" || updated.ID != member.ID {
		t.Errorf("Edit submit produced %+v", updated)
	}
}

func TestFormsAreIndependentPerCollection(t *testing.T) {
	svc, _ := newTestService(t)

	svc.OpenAddProject()
	svc.OpenAddTransaction()
	svc.CancelTransactionForm()

	if form := svc.ProjectForm(); !form.Open {
		t.Error("Cancelling the transaction form must not close the project form")
	}
	if form := svc.TransactionForm(); form.Open {
		t.Error("Transaction form should be closed")
	}
}
