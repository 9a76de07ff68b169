package auth

import (
	"errors"
	"testing"
	"time"
)

func TestStaticAuthenticator(t *testing.T) {
	a, err := NewStaticAuthenticator("admin@agency.test", "admin123")
	if err != nil {
		t.Fatalf("NewStaticAuthenticator failed: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{"valid credentials", "admin@agency.test", "admin123", false},
		{"wrong password", "admin@agency.test", "hunter2", true},
		{"wrong email", "other@agency.test", "admin123", true},
		{"empty credentials", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := a.Authenticate(tt.email, tt.password)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidCredentials) {
					t.Errorf("Expected ErrInvalidCredentials, got %v", err)
				}
			} else if err != nil {
				t.Errorf("Expected success, got %v", err)
			}
		})
	}
}

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret-key-for-sessions", time.Hour)

	token, err := m.Generate("admin@agency.test")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.Email != "admin@agency.test" {
		t.Errorf("Email = %q", claims.Email)
	}
}

func TestJWTRejectsTampering(t *testing.T) {
	m := NewJWTManager("test-secret-key-for-sessions", time.Hour)
	other := NewJWTManager("a-different-secret-entirely", time.Hour)

	token, err := other.Generate("admin@agency.test")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken for foreign signature, got %v", err)
	}

	if _, err := m.Validate("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken for garbage, got %v", err)
	}
}

func TestJWTExpiry(t *testing.T) {
	m := NewJWTManager("test-secret-key-for-sessions", -time.Minute)

	token, err := m.Generate("admin@agency.test")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken for expired token, got %v", err)
	}
}
