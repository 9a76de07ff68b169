// Package service implements the admin data controller: the single
// authority over the project, transaction, and team-member collections,
// their local persistence, and their synchronization with the cloud
// document store.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/uneeddev/agencydesk/internal/metrics"
	"github.com/uneeddev/agencydesk/internal/models"
	"github.com/uneeddev/agencydesk/internal/storage"
)

var (
	// ErrValidation marks a rejected mutation; the wrapped message is safe
	// to show to the admin. No state changes when it is returned.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when an update or delete targets an unknown id.
	ErrNotFound = errors.New("record not found")

	// ErrNotConfigured is returned by cloud operations when the document
	// store credentials are incomplete.
	ErrNotConfigured = errors.New("cloud sync is not configured")
)

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// CloudClient is the document-store surface the controller consumes.
// Implemented by cloud.Client; tests substitute fakes.
type CloudClient interface {
	Fetch(ctx context.Context, binID, apiKey string) (*models.Snapshot, error)
	Update(ctx context.Context, binID, apiKey string, snap models.Snapshot) error
	Create(ctx context.Context, apiKey, name string, snap models.Snapshot) (string, error)
}

// AppName labels exports and newly created cloud documents.
const AppName = "Agencydesk Admin"

// syncStatusResetDelay is how long success/error feedback lingers before
// the status falls back to idle. A variable so tests can shorten it.
var syncStatusResetDelay = 3 * time.Second

// AdminService owns the in-memory canonical copies of the collections.
// All mutations go through it: each one validates, replaces the collection,
// writes the local store synchronously, and then pushes to the cloud in the
// background. The in-memory state is authoritative for the session; the
// local and cloud stores are durable mirrors.
type AdminService struct {
	store storage.Store
	cloud CloudClient

	mu           sync.Mutex
	projects     []models.Project
	transactions []models.Transaction
	members      []models.TeamMember
	cloudCfg     models.CloudConfig

	projectForm     FormState[ProjectInput]
	transactionForm FormState[TransactionInput]
	memberForm      FormState[MemberInput]

	// syncMu serializes all cloud operations: a second trigger blocks until
	// the first finishes instead of racing it to overwrite the document.
	syncMu     sync.Mutex
	statusMu   sync.Mutex
	syncStatus models.SyncStatus
	syncing    bool
	resetTimer *time.Timer

	pushes sync.WaitGroup
}

// New loads the collections from the local store and, when cloud
// credentials are present, immediately adopts the cloud copy ("cloud wins
// on load"). A failed auto-load is reported through the sync status, never
// as a startup failure.
func New(ctx context.Context, store storage.Store, cloud CloudClient) (*AdminService, error) {
	projects, err := store.LoadProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	transactions, err := store.LoadTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	members, err := store.LoadTeamMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load team members: %w", err)
	}
	cfg, err := store.LoadCloudConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cloud config: %w", err)
	}

	s := &AdminService{
		store:        store,
		cloud:        cloud,
		projects:     projects,
		transactions: transactions,
		members:      members,
		cloudCfg:     cfg,
		syncStatus:   models.SyncIdle,
	}

	if cfg.Configured() {
		if err := s.FetchFromCloud(ctx); err != nil {
			slog.Warn("Cloud auto-load failed, keeping local data", "error", err)
		}
	}

	return s, nil
}

// Close waits for background cloud pushes to settle and stops the status
// reset timer.
func (s *AdminService) Close() {
	s.pushes.Wait()
	s.statusMu.Lock()
	if s.resetTimer != nil {
		s.resetTimer.Stop()
	}
	s.statusMu.Unlock()
}

// Flush blocks until all background cloud pushes issued so far complete.
func (s *AdminService) Flush() {
	s.pushes.Wait()
}

// Projects returns a copy of the current project collection.
func (s *AdminService) Projects() []models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Project(nil), s.projects...)
}

// Transactions returns a copy of the current transaction collection.
func (s *AdminService) Transactions() []models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Transaction(nil), s.transactions...)
}

// TeamMembers returns a copy of the current team-member collection.
func (s *AdminService) TeamMembers() []models.TeamMember {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.TeamMember(nil), s.members...)
}

// ProjectInput is the caller-supplied part of a project record.
type ProjectInput struct {
	Name     string               `json:"name"`
	Client   string               `json:"client"`
	Value    int64                `json:"value"`
	Status   models.ProjectStatus `json:"status"`
	Deadline string               `json:"deadline"`
}

func (in ProjectInput) validate() error {
	if in.Name == "" || in.Client == "" || in.Value == 0 {
		return validationError("project name, client, and value are required")
	}
	if in.Value < 0 {
		return validationError("project value must not be negative")
	}
	if in.Status != "" && !in.Status.Valid() {
		return validationError(fmt.Sprintf("unknown project status %q", in.Status))
	}
	return nil
}

// CreateProject validates in, appends a new project, persists the
// collection, and pushes to the cloud in the background.
func (s *AdminService) CreateProject(ctx context.Context, in ProjectInput) (models.Project, error) {
	if err := in.validate(); err != nil {
		return models.Project{}, err
	}

	status := in.Status
	if status == "" {
		status = models.StatusPending
	}
	project := models.Project{
		ID:       uuid.New().String(),
		Name:     in.Name,
		Client:   in.Client,
		Value:    in.Value,
		Status:   status,
		Deadline: in.Deadline,
	}

	s.mu.Lock()
	updated := append(append([]models.Project(nil), s.projects...), project)
	s.projects = updated
	s.mu.Unlock()

	if err := s.store.SaveProjects(ctx, updated); err != nil {
		return models.Project{}, fmt.Errorf("failed to persist projects: %w", err)
	}
	metrics.Mutations.WithLabelValues("project", "create").Inc()
	slog.Info("Project created", "project_id", project.ID, "name", project.Name)

	s.pushAsync()
	return project, nil
}

// UpdateProject replaces the fields of the project with the given id.
func (s *AdminService) UpdateProject(ctx context.Context, id string, in ProjectInput) (models.Project, error) {
	if err := in.validate(); err != nil {
		return models.Project{}, err
	}

	s.mu.Lock()
	updated := append([]models.Project(nil), s.projects...)
	found := -1
	for i, p := range updated {
		if p.ID == id {
			found = i
			break
		}
	}
	if found < 0 {
		s.mu.Unlock()
		return models.Project{}, fmt.Errorf("%w: project %s", ErrNotFound, id)
	}
	status := in.Status
	if status == "" {
		status = updated[found].Status
	}
	updated[found] = models.Project{
		ID:       id,
		Name:     in.Name,
		Client:   in.Client,
		Value:    in.Value,
		Status:   status,
		Deadline: in.Deadline,
	}
	project := updated[found]
	s.projects = updated
	s.mu.Unlock()

	if err := s.store.SaveProjects(ctx, updated); err != nil {
		return models.Project{}, fmt.Errorf("failed to persist projects: %w", err)
	}
	metrics.Mutations.WithLabelValues("project", "update").Inc()
	slog.Info("Project updated", "project_id", id)

	s.pushAsync()
	return project, nil
}

// DeleteProject removes the project with the given id. Transactions
// referencing it are left untouched; their project link dangles and is
// resolved to a placeholder at display time.
func (s *AdminService) DeleteProject(ctx context.Context, id string) error {
	s.mu.Lock()
	updated := make([]models.Project, 0, len(s.projects))
	removed := false
	for _, p := range s.projects {
		if p.ID == id {
			removed = true
			continue
		}
		updated = append(updated, p)
	}
	if !removed {
		s.mu.Unlock()
		return fmt.Errorf("%w: project %s", ErrNotFound, id)
	}
	s.projects = updated
	s.mu.Unlock()

	if err := s.store.SaveProjects(ctx, updated); err != nil {
		return fmt.Errorf("failed to persist projects: %w", err)
	}
	metrics.Mutations.WithLabelValues("project", "delete").Inc()
	slog.Info("Project deleted", "project_id", id)

	s.pushAsync()
	return nil
}

// TransactionInput is the caller-supplied part of a transaction record.
type TransactionInput struct {
	Date        string                 `json:"date"`
	Description string                 `json:"description"`
	Amount      int64                  `json:"amount"`
	Type        models.TransactionType `json:"type"`
	ProjectID   string                 `json:"projectId"`
	Splits      []models.RevenueSplit  `json:"splits,omitempty"`
}

func (in TransactionInput) validate() error {
	if in.Description == "" || in.Amount == 0 {
		return validationError("transaction description and amount are required")
	}
	if in.Amount < 0 {
		return validationError("transaction amount must not be negative")
	}
	if in.Type != "" && !in.Type.Valid() {
		return validationError(fmt.Sprintf("unknown transaction type %q", in.Type))
	}
	for _, sp := range in.Splits {
		if sp.Amount < 0 {
			return validationError("split amounts must not be negative")
		}
	}
	return nil
}

// CreateTransaction validates in and appends a new transaction. Date
// defaults to today and type to Income. An over-allocated split set is
// accepted; callers surface the advisory warning.
func (s *AdminService) CreateTransaction(ctx context.Context, in TransactionInput) (models.Transaction, error) {
	if err := in.validate(); err != nil {
		return models.Transaction{}, err
	}

	tx := models.Transaction{
		ID:          uuid.New().String(),
		Date:        in.Date,
		Description: in.Description,
		Amount:      in.Amount,
		Type:        in.Type,
		ProjectID:   in.ProjectID,
		Splits:      in.Splits,
	}
	if tx.Date == "" {
		tx.Date = time.Now().Format("2006-01-02")
	}
	if tx.Type == "" {
		tx.Type = models.TypeIncome
	}

	s.mu.Lock()
	updated := append(append([]models.Transaction(nil), s.transactions...), tx)
	s.transactions = updated
	s.mu.Unlock()

	if err := s.store.SaveTransactions(ctx, updated); err != nil {
		return models.Transaction{}, fmt.Errorf("failed to persist transactions: %w", err)
	}
	metrics.Mutations.WithLabelValues("transaction", "create").Inc()
	if tx.OverAllocated() {
		slog.Warn("Transaction splits exceed amount", "transaction_id", tx.ID,
			"amount", tx.Amount, "split_total", tx.SplitTotal())
	}
	slog.Info("Transaction created", "transaction_id", tx.ID, "type", tx.Type, "amount", tx.Amount)

	s.pushAsync()
	return tx, nil
}

// UpdateTransaction replaces the fields of the transaction with the given id.
func (s *AdminService) UpdateTransaction(ctx context.Context, id string, in TransactionInput) (models.Transaction, error) {
	if err := in.validate(); err != nil {
		return models.Transaction{}, err
	}

	s.mu.Lock()
	updated := append([]models.Transaction(nil), s.transactions...)
	found := -1
	for i, t := range updated {
		if t.ID == id {
			found = i
			break
		}
	}
	if found < 0 {
		s.mu.Unlock()
		return models.Transaction{}, fmt.Errorf("%w: transaction %s", ErrNotFound, id)
	}
	prev := updated[found]
	next := models.Transaction{
		ID:          id,
		Date:        in.Date,
		Description: in.Description,
		Amount:      in.Amount,
		Type:        in.Type,
		ProjectID:   in.ProjectID,
		Splits:      in.Splits,
	}
	if next.Date == "" {
		next.Date = prev.Date
	}
	if next.Type == "" {
		next.Type = prev.Type
	}
	updated[found] = next
	s.transactions = updated
	s.mu.Unlock()

	if err := s.store.SaveTransactions(ctx, updated); err != nil {
		return models.Transaction{}, fmt.Errorf("failed to persist transactions: %w", err)
	}
	metrics.Mutations.WithLabelValues("transaction", "update").Inc()
	if next.OverAllocated() {
		slog.Warn("Transaction splits exceed amount", "transaction_id", id,
			"amount", next.Amount, "split_total", next.SplitTotal())
	}
	slog.Info("Transaction updated", "transaction_id", id)

	s.pushAsync()
	return next, nil
}

// DeleteTransaction removes the transaction with the given id.
func (s *AdminService) DeleteTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	updated := make([]models.Transaction, 0, len(s.transactions))
	removed := false
	for _, t := range s.transactions {
		if t.ID == id {
			removed = true
			continue
		}
		updated = append(updated, t)
	}
	if !removed {
		s.mu.Unlock()
		return fmt.Errorf("%w: transaction %s", ErrNotFound, id)
	}
	s.transactions = updated
	s.mu.Unlock()

	if err := s.store.SaveTransactions(ctx, updated); err != nil {
		return fmt.Errorf("failed to persist transactions: %w", err)
	}
	metrics.Mutations.WithLabelValues("transaction", "delete").Inc()
	slog.Info("Transaction deleted", "transaction_id", id)

	s.pushAsync()
	return nil
}

// MemberInput is the caller-supplied part of a team-member record.
type MemberInput struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

func (in MemberInput) validate() error {
	if in.Name == "" || in.Role == "" {
		return validationError("member name and role are required")
	}
	return nil
}

// CreateTeamMember validates in and appends a new member.
func (s *AdminService) CreateTeamMember(ctx context.Context, in MemberInput) (models.TeamMember, error) {
	if err := in.validate(); err != nil {
		return models.TeamMember{}, err
	}

	member := models.TeamMember{
		ID:   uuid.New().String(),
		Name: in.Name,
		Role: in.Role,
	}

	s.mu.Lock()
	updated := append(append([]models.TeamMember(nil), s.members...), member)
	s.members = updated
	s.mu.Unlock()

	if err := s.store.SaveTeamMembers(ctx, updated); err != nil {
		return models.TeamMember{}, fmt.Errorf("failed to persist team members: %w", err)
	}
	metrics.Mutations.WithLabelValues("member", "create").Inc()
	slog.Info("Team member created", "member_id", member.ID, "name", member.Name)

	s.pushAsync()
	return member, nil
}

// UpdateTeamMember replaces the fields of the member with the given id.
func (s *AdminService) UpdateTeamMember(ctx context.Context, id string, in MemberInput) (models.TeamMember, error) {
	if err := in.validate(); err != nil {
		return models.TeamMember{}, err
	}

	s.mu.Lock()
	updated := append([]models.TeamMember(nil), s.members...)
	found := -1
	for i, m := range updated {
		if m.ID == id {
			found = i
			break
		}
	}
	if found < 0 {
		s.mu.Unlock()
		return models.TeamMember{}, fmt.Errorf("%w: member %s", ErrNotFound, id)
	}
	updated[found] = models.TeamMember{ID: id, Name: in.Name, Role: in.Role}
	member := updated[found]
	s.members = updated
	s.mu.Unlock()

	if err := s.store.SaveTeamMembers(ctx, updated); err != nil {
		return models.TeamMember{}, fmt.Errorf("failed to persist team members: %w", err)
	}
	metrics.Mutations.WithLabelValues("member", "update").Inc()
	slog.Info("Team member updated", "member_id", id)

	s.pushAsync()
	return member, nil
}

// DeleteTeamMember removes the member with the given id. Splits referencing
// the member stay in place and display a placeholder name.
func (s *AdminService) DeleteTeamMember(ctx context.Context, id string) error {
	s.mu.Lock()
	updated := make([]models.TeamMember, 0, len(s.members))
	removed := false
	for _, m := range s.members {
		if m.ID == id {
			removed = true
			continue
		}
		updated = append(updated, m)
	}
	if !removed {
		s.mu.Unlock()
		return fmt.Errorf("%w: member %s", ErrNotFound, id)
	}
	s.members = updated
	s.mu.Unlock()

	if err := s.store.SaveTeamMembers(ctx, updated); err != nil {
		return fmt.Errorf("failed to persist team members: %w", err)
	}
	metrics.Mutations.WithLabelValues("member", "delete").Inc()
	slog.Info("Team member deleted", "member_id", id)

	s.pushAsync()
	return nil
}
