package service

import (
	"context"
	"fmt"
	"time"

	"github.com/uneeddev/agencydesk/internal/models"
)

// Form staging. Each collection carries an independent uncommitted draft
// plus an edit target: an empty EditingID means a new record is being
// created, a non-empty one means an existing record is being edited.
// Cancel discards the draft without touching the committed collection;
// Submit commits through the mutation contract and clears the draft.

// FormState is the staging state for one collection's add/edit form.
type FormState[T any] struct {
	Open      bool   `json:"open"`
	EditingID string `json:"editingId"`
	Draft     T      `json:"draft"`
}

func defaultProjectDraft() ProjectInput {
	return ProjectInput{Status: models.StatusPending}
}

func defaultTransactionDraft() TransactionInput {
	return TransactionInput{
		Type: models.TypeIncome,
		Date: time.Now().Format("2006-01-02"),
	}
}

// ProjectForm returns the current project form state.
func (s *AdminService) ProjectForm() FormState[ProjectInput] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.projectForm
}

// OpenAddProject opens the project form with a fresh default draft.
func (s *AdminService) OpenAddProject() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projectForm = FormState[ProjectInput]{Open: true, Draft: defaultProjectDraft()}
}

// OpenEditProject opens the project form seeded with the existing record.
func (s *AdminService) OpenEditProject(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.projects {
		if p.ID == id {
			s.projectForm = FormState[ProjectInput]{
				Open:      true,
				EditingID: id,
				Draft: ProjectInput{
					Name:     p.Name,
					Client:   p.Client,
					Value:    p.Value,
					Status:   p.Status,
					Deadline: p.Deadline,
				},
			}
			return nil
		}
	}
	return fmt.Errorf("%w: project %s", ErrNotFound, id)
}

// SetProjectDraft replaces the uncommitted project draft.
func (s *AdminService) SetProjectDraft(in ProjectInput) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projectForm.Draft = in
}

// CancelProjectForm discards the draft and closes the form.
func (s *AdminService) CancelProjectForm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projectForm = FormState[ProjectInput]{Draft: defaultProjectDraft()}
}

// SubmitProjectForm validates and commits the draft, creating or updating
// depending on the edit target, then clears the form. On a validation
// failure the form stays open with the draft intact.
func (s *AdminService) SubmitProjectForm(ctx context.Context) (models.Project, error) {
	s.mu.Lock()
	form := s.projectForm
	s.mu.Unlock()

	var (
		project models.Project
		err     error
	)
	if form.EditingID != "" {
		project, err = s.UpdateProject(ctx, form.EditingID, form.Draft)
	} else {
		project, err = s.CreateProject(ctx, form.Draft)
	}
	if err != nil {
		return models.Project{}, err
	}

	s.CancelProjectForm()
	return project, nil
}

// TransactionForm returns the current transaction form state.
func (s *AdminService) TransactionForm() FormState[TransactionInput] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transactionForm
}

// OpenAddTransaction opens the transaction form with type Income and
// today's date.
func (s *AdminService) OpenAddTransaction() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactionForm = FormState[TransactionInput]{Open: true, Draft: defaultTransactionDraft()}
}

// OpenEditTransaction opens the transaction form seeded with the existing
// record.
func (s *AdminService) OpenEditTransaction(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.transactions {
		if t.ID == id {
			s.transactionForm = FormState[TransactionInput]{
				Open:      true,
				EditingID: id,
				Draft: TransactionInput{
					Date:        t.Date,
					Description: t.Description,
					Amount:      t.Amount,
					Type:        t.Type,
					ProjectID:   t.ProjectID,
					Splits:      append([]models.RevenueSplit(nil), t.Splits...),
				},
			}
			return nil
		}
	}
	return fmt.Errorf("%w: transaction %s", ErrNotFound, id)
}

// SetTransactionDraft replaces the uncommitted transaction draft.
func (s *AdminService) SetTransactionDraft(in TransactionInput) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactionForm.Draft = in
}

// CancelTransactionForm discards the draft and closes the form.
func (s *AdminService) CancelTransactionForm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactionForm = FormState[TransactionInput]{Draft: defaultTransactionDraft()}
}

// SubmitTransactionForm validates and commits the draft, then clears the
// form.
func (s *AdminService) SubmitTransactionForm(ctx context.Context) (models.Transaction, error) {
	s.mu.Lock()
	form := s.transactionForm
	s.mu.Unlock()

	var (
		tx  models.Transaction
		err error
	)
	if form.EditingID != "" {
		tx, err = s.UpdateTransaction(ctx, form.EditingID, form.Draft)
	} else {
		tx, err = s.CreateTransaction(ctx, form.Draft)
	}
	if err != nil {
		return models.Transaction{}, err
	}

	s.CancelTransactionForm()
	return tx, nil
}

// MemberForm returns the current team-member form state.
func (s *AdminService) MemberForm() FormState[MemberInput] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.memberForm
}

// OpenAddMember opens the member form with an empty draft.
func (s *AdminService) OpenAddMember() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memberForm = FormState[MemberInput]{Open: true}
}

// OpenEditMember opens the member form seeded with the existing record.
func (s *AdminService) OpenEditMember(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.members {
		if m.ID == id {
			s.memberForm = FormState[MemberInput]{
				Open:      true,
				EditingID: id,
				Draft:     MemberInput{Name: m.Name, Role: m.Role},
			}
			return nil
		}
	}
	return fmt.Errorf("%w: member %s", ErrNotFound, id)
}

// SetMemberDraft replaces the uncommitted member draft.
func (s *AdminService) SetMemberDraft(in MemberInput) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memberForm.Draft = in
}

// CancelMemberForm discards the draft and closes the form.
func (s *AdminService) CancelMemberForm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memberForm = FormState[MemberInput]{}
}

// SubmitMemberForm validates and commits the draft, then clears the form.
func (s *AdminService) SubmitMemberForm(ctx context.Context) (models.TeamMember, error) {
	s.mu.Lock()
	form := s.memberForm
	s.mu.Unlock()

	var (
		member models.TeamMember
		err    error
	)
	if form.EditingID != "" {
		member, err = s.UpdateTeamMember(ctx, form.EditingID, form.Draft)
	} else {
		member, err = s.CreateTeamMember(ctx, form.Draft)
	}
	if err != nil {
		return models.TeamMember{}, err
	}

	s.CancelMemberForm()
	return member, nil
}
