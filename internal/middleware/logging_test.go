package middleware

import "testing"

func TestRouteLabel(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"static route", "/api/admin/projects", "/api/admin/projects"},
		{
			"record id collapses",
			"/api/admin/projects/0b06a34e-3f21-4a9d-8d36-6a7a4c0631e2",
			"/api/admin/projects/{id}",
		},
		{
			"only id segments collapse",
			"/api/admin/transactions/7a0a8cbb-93c9-45ff-bd1c-16be0c1c9686",
			"/api/admin/transactions/{id}",
		},
		{"non-uuid segment stays", "/api/admin/forms/transaction", "/api/admin/forms/transaction"},
		{"root", "/", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := routeLabel(tt.path); got != tt.want {
				t.Errorf("routeLabel(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}

	// Two different record ids must land on the same label.
	a := routeLabel("/api/admin/projects/2645afcb-0604-4b02-bd0a-a5c36d74e32b")
	b := routeLabel("/api/admin/projects/9f7a2b9e-1f08-4a0c-bb61-40cbbf0f4a38")
	if a != b {
		t.Errorf("Distinct ids produced distinct labels: %q vs %q", a, b)
	}
}
