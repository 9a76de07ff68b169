package models

// ProjectStatus is the lifecycle state of a client project.
type ProjectStatus string

const (
	StatusPending    ProjectStatus = "Pending"
	StatusInProgress ProjectStatus = "In Progress"
	StatusCompleted  ProjectStatus = "Completed"
	StatusCancelled  ProjectStatus = "Cancelled"
)

// Valid reports whether s is one of the known project statuses.
func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Active reports whether a project in this status counts toward the
// active-project figure on the overview dashboard.
func (s ProjectStatus) Active() bool {
	return s == StatusPending || s == StatusInProgress
}

// Project represents a client engagement tracked in the admin dashboard.
type Project struct {
	// ID is the unique identifier for the project (UUID format).
	ID string `json:"id"`

	// Name is the human-readable project name.
	Name string `json:"name"`

	// Client is the name of the client the project is billed to.
	Client string `json:"client"`

	// Value is the agreed project value in the smallest currency unit
	// (e.g., whole rupiah). Always non-negative.
	Value int64 `json:"value"`

	// Status is the current lifecycle state. New projects default to Pending.
	Status ProjectStatus `json:"status"`

	// Deadline is an optional ISO date (YYYY-MM-DD). Empty means no deadline.
	Deadline string `json:"deadline"`
}
