package http

import (
	"fmt"
	"net/http"

	"github.com/uneeddev/agencydesk/internal/reports"
	"github.com/uneeddev/agencydesk/internal/service"
)

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, struct {
		reports.Stats
		TotalSplitRevenue int64 `json:"totalSplitRevenue"`
	}{
		Stats:             h.svc.Stats(),
		TotalSplitRevenue: h.svc.TotalSplitRevenue(),
	})
}

func (h *Handler) monthlyRevenue(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, h.svc.MonthlyRevenue())
}

// memberRevenueRow pairs a team member with their allocated revenue share.
type memberRevenueRow struct {
	MemberID string `json:"memberId"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Revenue  int64  `json:"revenue"`
}

func (h *Handler) memberRevenue(w http.ResponseWriter, r *http.Request) {
	members := h.svc.TeamMembers()
	rows := make([]memberRevenueRow, len(members))
	for i, m := range members {
		rows[i] = memberRevenueRow{
			MemberID: m.ID,
			Name:     m.Name,
			Role:     m.Role,
			Revenue:  h.svc.MemberRevenue(m.ID),
		}
	}
	respond(w, http.StatusOK, rows)
}

// export serves the full snapshot as a dated JSON download.
func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", service.ExportFilename()))
	respond(w, http.StatusOK, h.svc.ExportData())
}
