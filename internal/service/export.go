package service

import (
	"fmt"
	"time"

	"github.com/uneeddev/agencydesk/internal/models"
	"github.com/uneeddev/agencydesk/internal/reports"
)

// Export is the full backup payload offered as a JSON download. Its
// collections are wire-compatible with the cloud document record, so an
// exported file can be re-imported through a simulated cloud fetch.
type Export struct {
	Projects     []models.Project     `json:"projects"`
	Transactions []models.Transaction `json:"transactions"`
	TeamMembers  []models.TeamMember  `json:"teamMembers"`
	ExportedAt   string               `json:"exportedAt"`
	App          string               `json:"app"`
}

// ExportData captures the full current state for download.
func (s *AdminService) ExportData() Export {
	snap := s.snapshot()
	return Export{
		Projects:     snap.Projects,
		Transactions: snap.Transactions,
		TeamMembers:  snap.TeamMembers,
		ExportedAt:   time.Now().UTC().Format(time.RFC3339),
		App:          AppName,
	}
}

// ExportFilename names the backup file with the current date.
func ExportFilename() string {
	return fmt.Sprintf("agencydesk-backup-%s.json", time.Now().Format("2006-01-02"))
}

// Stats derives the headline dashboard figures from current state.
func (s *AdminService) Stats() reports.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return reports.Compute(s.projects, s.transactions)
}

// MemberRevenue derives one member's revenue share from current state.
func (s *AdminService) MemberRevenue(memberID string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return reports.MemberRevenue(s.transactions, memberID)
}

// TotalSplitRevenue derives the total allocated split revenue.
func (s *AdminService) TotalSplitRevenue() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return reports.TotalSplitRevenue(s.transactions)
}

// MonthlyRevenue derives the chart-ready monthly income series.
func (s *AdminService) MonthlyRevenue() []reports.MonthlyBucket {
	s.mu.Lock()
	defer s.mu.Unlock()
	return reports.MonthlyRevenue(s.transactions)
}
