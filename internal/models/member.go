package models

// TeamMember is a person revenue can be split with.
// Members live independently of transactions: deleting a member leaves any
// splits referencing them in place, displayed with a placeholder name.
type TeamMember struct {
	// ID is the unique identifier for the member (UUID format).
	ID string `json:"id"`

	// Name is the member's display name.
	Name string `json:"name"`

	// Role is a free-text label (e.g., "Backend Engineer", "Designer").
	Role string `json:"role"`
}
