package reports

import (
	"testing"

	"github.com/uneeddev/agencydesk/internal/models"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name         string
		projects     []models.Project
		transactions []models.Transaction
		want         Stats
	}{
		{
			name: "empty set yields zero profit",
			want: Stats{},
		},
		{
			name: "income and expense",
			transactions: []models.Transaction{
				{ID: "t1", Type: models.TypeIncome, Amount: 500000, Date: "2024-03-01", Description: "DP"},
				{ID: "t2", Type: models.TypeExpense, Amount: 200000, Date: "2024-03-05", Description: "Hosting"},
			},
			want: Stats{TotalRevenue: 500000, TotalExpenses: 200000, NetProfit: 300000},
		},
		{
			name: "expenses exceed income",
			transactions: []models.Transaction{
				{ID: "t1", Type: models.TypeIncome, Amount: 100, Description: "small"},
				{ID: "t2", Type: models.TypeExpense, Amount: 300, Description: "big"},
			},
			want: Stats{TotalRevenue: 100, TotalExpenses: 300, NetProfit: -200},
		},
		{
			name: "project counts by status",
			projects: []models.Project{
				{ID: "p1", Status: models.StatusPending},
				{ID: "p2", Status: models.StatusInProgress},
				{ID: "p3", Status: models.StatusCompleted},
				{ID: "p4", Status: models.StatusCancelled},
			},
			want: Stats{ActiveProjects: 2, CompletedProjects: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.projects, tt.transactions)
			if got != tt.want {
				t.Errorf("Compute() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMemberRevenue(t *testing.T) {
	transactions := []models.Transaction{
		{
			ID: "t1", Type: models.TypeIncome, Amount: 500000,
			Splits: []models.RevenueSplit{
				{MemberID: "m1", Amount: 300000},
				{MemberID: "m2", Amount: 200000},
			},
		},
		{
			ID: "t2", Type: models.TypeIncome, Amount: 100000,
			Splits: []models.RevenueSplit{
				{MemberID: "m1", Amount: 100000},
			},
		},
		// Expense splits must not count even if present.
		{
			ID: "t3", Type: models.TypeExpense, Amount: 50000,
			Splits: []models.RevenueSplit{
				{MemberID: "m1", Amount: 50000},
			},
		},
		// Income without splits contributes to nobody.
		{ID: "t4", Type: models.TypeIncome, Amount: 999999},
	}

	if got := MemberRevenue(transactions, "m1"); got != 400000 {
		t.Errorf("MemberRevenue(m1) = %d, want 400000", got)
	}
	if got := MemberRevenue(transactions, "m2"); got != 200000 {
		t.Errorf("MemberRevenue(m2) = %d, want 200000", got)
	}
	if got := MemberRevenue(transactions, "deleted-member"); got != 0 {
		t.Errorf("MemberRevenue(deleted) = %d, want 0", got)
	}

	if got := TotalSplitRevenue(transactions); got != 600000 {
		t.Errorf("TotalSplitRevenue() = %d, want 600000", got)
	}
}

func TestMonthlyRevenue(t *testing.T) {
	t.Run("empty set returns placeholder bucket", func(t *testing.T) {
		got := MonthlyRevenue(nil)
		if len(got) != 1 {
			t.Fatalf("Expected 1 bucket, got %d", len(got))
		}
		if got[0].Name != "No Data" || got[0].Value != 0 {
			t.Errorf("Expected No Data placeholder, got %+v", got[0])
		}
	})

	t.Run("expense-only set returns placeholder bucket", func(t *testing.T) {
		got := MonthlyRevenue([]models.Transaction{
			{Type: models.TypeExpense, Amount: 100, Date: "2024-01-15"},
		})
		if len(got) != 1 || got[0].Name != "No Data" {
			t.Errorf("Expected No Data placeholder, got %+v", got)
		}
	})

	t.Run("groups by month in chronological order", func(t *testing.T) {
		got := MonthlyRevenue([]models.Transaction{
			{Type: models.TypeIncome, Amount: 100, Date: "2024-02-20"},
			{Type: models.TypeIncome, Amount: 250, Date: "2024-01-10"},
			{Type: models.TypeIncome, Amount: 50, Date: "2024-02-01"},
			{Type: models.TypeExpense, Amount: 999, Date: "2024-01-05"},
		})

		want := []MonthlyBucket{
			{Name: "Jan 24", Value: 250},
			{Name: "Feb 24", Value: 150},
		}
		if len(got) != len(want) {
			t.Fatalf("Expected %d buckets, got %+v", len(want), got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Bucket %d = %+v, want %+v", i, got[i], want[i])
			}
		}
	})

	t.Run("single income month", func(t *testing.T) {
		got := MonthlyRevenue([]models.Transaction{
			{Type: models.TypeIncome, Amount: 500000, Date: "2024-03-01"},
		})
		if len(got) != 1 || got[0].Name != "Mar 24" || got[0].Value != 500000 {
			t.Errorf("Expected single Mar 24 bucket of 500000, got %+v", got)
		}
	})

	t.Run("unparseable dates are skipped", func(t *testing.T) {
		got := MonthlyRevenue([]models.Transaction{
			{Type: models.TypeIncome, Amount: 100, Date: "not-a-date"},
		})
		if len(got) != 1 || got[0].Name != "No Data" {
			t.Errorf("Expected No Data placeholder, got %+v", got)
		}
	})
}

func TestNameLookups(t *testing.T) {
	projects := []models.Project{{ID: "p1", Name: "Site A"}}
	members := []models.TeamMember{{ID: "m1", Name: "Andi"}}

	if got := ProjectName(projects, "p1"); got != "Site A" {
		t.Errorf("ProjectName(p1) = %q", got)
	}
	if got := ProjectName(projects, "deleted"); got != Placeholder {
		t.Errorf("ProjectName(deleted) = %q, want placeholder", got)
	}
	if got := ProjectName(projects, ""); got != Placeholder {
		t.Errorf("ProjectName(unlinked) = %q, want placeholder", got)
	}
	if got := MemberName(members, "m1"); got != "Andi" {
		t.Errorf("MemberName(m1) = %q", got)
	}
	if got := MemberName(members, "deleted"); got != Placeholder {
		t.Errorf("MemberName(deleted) = %q, want placeholder", got)
	}
}
