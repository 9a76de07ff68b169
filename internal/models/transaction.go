package models

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TypeIncome  TransactionType = "Income"
	TypeExpense TransactionType = "Expense"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// RevenueSplit allocates part of an Income transaction's amount to a
// specific team member for internal revenue-sharing bookkeeping.
// Splits on Expense transactions are ignored by all reports.
type RevenueSplit struct {
	// MemberID references a TeamMember. The reference may dangle after the
	// member is deleted; display falls back to a placeholder.
	MemberID string `json:"memberId"`

	// Amount is this member's share in the smallest currency unit.
	Amount int64 `json:"amount"`
}

// Transaction is a single income or expense entry in the revenue ledger.
type Transaction struct {
	// ID is the unique identifier for the transaction (UUID format).
	ID string `json:"id"`

	// Date is the ISO date (YYYY-MM-DD) the transaction applies to.
	// Defaults to the current date when created without one.
	Date string `json:"date"`

	// Description is a required, non-empty human-readable label.
	Description string `json:"description"`

	// Amount is the transaction amount in the smallest currency unit.
	Amount int64 `json:"amount"`

	// Type is Income or Expense.
	Type TransactionType `json:"type"`

	// ProjectID optionally links the transaction to a Project. Empty means
	// unlinked. A reference to a deleted project is tolerated and resolved
	// to a placeholder at display time.
	ProjectID string `json:"projectId"`

	// Splits optionally allocates an Income amount across team members.
	// The sum of split amounts exceeding Amount is surfaced as a warning,
	// never rejected.
	Splits []RevenueSplit `json:"splits,omitempty"`
}

// SplitTotal returns the sum of all split amounts on the transaction.
func (t Transaction) SplitTotal() int64 {
	var total int64
	for _, s := range t.Splits {
		total += s.Amount
	}
	return total
}

// OverAllocated reports whether the splits allocate more than the
// transaction amount. This is the advisory invariant the UI warns about.
func (t Transaction) OverAllocated() bool {
	return t.SplitTotal() > t.Amount
}
