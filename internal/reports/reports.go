// Package reports computes the read-only figures the dashboard shows:
// revenue totals, project counts, per-member revenue shares, and the
// chart series. Everything here is a pure function of the current
// collections, recomputed on every call.
package reports

import (
	"sort"
	"time"

	"github.com/uneeddev/agencydesk/internal/models"
)

// Placeholder is what a dangling project or member reference resolves to.
// Deleting a project never touches the transactions pointing at it, so
// lookups have to degrade rather than fail.
const Placeholder = "-"

// Stats are the headline figures on the overview tab.
type Stats struct {
	TotalRevenue      int64 `json:"totalRevenue"`
	TotalExpenses     int64 `json:"totalExpenses"`
	NetProfit         int64 `json:"netProfit"`
	ActiveProjects    int   `json:"activeProjects"`
	CompletedProjects int   `json:"completedProjects"`
}

// Compute derives the headline stats from the current collections.
func Compute(projects []models.Project, transactions []models.Transaction) Stats {
	var s Stats
	for _, t := range transactions {
		switch t.Type {
		case models.TypeIncome:
			s.TotalRevenue += t.Amount
		case models.TypeExpense:
			s.TotalExpenses += t.Amount
		}
	}
	s.NetProfit = s.TotalRevenue - s.TotalExpenses

	for _, p := range projects {
		if p.Status.Active() {
			s.ActiveProjects++
		}
		if p.Status == models.StatusCompleted {
			s.CompletedProjects++
		}
	}
	return s
}

// MemberRevenue sums the split amounts allocated to memberID across all
// Income transactions. Transactions without splits contribute nothing, and
// an unknown member id yields 0.
func MemberRevenue(transactions []models.Transaction, memberID string) int64 {
	var total int64
	for _, t := range transactions {
		if t.Type != models.TypeIncome {
			continue
		}
		for _, s := range t.Splits {
			if s.MemberID == memberID {
				total += s.Amount
			}
		}
	}
	return total
}

// TotalSplitRevenue sums every split amount across all Income transactions.
// A reporting sanity figure; it is not reconciled against total revenue.
func TotalSplitRevenue(transactions []models.Transaction) int64 {
	var total int64
	for _, t := range transactions {
		if t.Type != models.TypeIncome {
			continue
		}
		total += t.SplitTotal()
	}
	return total
}

// MonthlyBucket is one point on the monthly revenue chart.
type MonthlyBucket struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// MonthlyRevenue groups Income transactions into month-year buckets, ordered
// chronologically by the earliest date seen in each bucket. With no Income
// transactions it returns a single zero bucket so the chart always has a
// well-defined empty state. Transactions with unparseable dates are skipped.
func MonthlyRevenue(transactions []models.Transaction) []MonthlyBucket {
	type dated struct {
		when   time.Time
		amount int64
	}
	var income []dated
	for _, t := range transactions {
		if t.Type != models.TypeIncome {
			continue
		}
		when, err := time.Parse("2006-01-02", t.Date)
		if err != nil {
			continue
		}
		income = append(income, dated{when: when, amount: t.Amount})
	}

	// Chronological scan keeps bucket order stable: a bucket appears at the
	// position of the earliest transaction that falls into it.
	sort.SliceStable(income, func(i, j int) bool {
		return income[i].when.Before(income[j].when)
	})

	var buckets []MonthlyBucket
	index := make(map[string]int)
	for _, in := range income {
		label := in.when.Format("Jan 06")
		if i, ok := index[label]; ok {
			buckets[i].Value += in.amount
			continue
		}
		index[label] = len(buckets)
		buckets = append(buckets, MonthlyBucket{Name: label, Value: in.amount})
	}

	if len(buckets) == 0 {
		return []MonthlyBucket{{Name: "No Data", Value: 0}}
	}
	return buckets
}

// ProjectName resolves a project reference to its display name.
// A dangling or empty reference resolves to the placeholder.
func ProjectName(projects []models.Project, projectID string) string {
	for _, p := range projects {
		if p.ID == projectID {
			return p.Name
		}
	}
	return Placeholder
}

// MemberName resolves a member reference to its display name.
// A dangling reference resolves to the placeholder.
func MemberName(members []models.TeamMember, memberID string) string {
	for _, m := range members {
		if m.ID == memberID {
			return m.Name
		}
	}
	return Placeholder
}
