// Package auth implements the single-admin login gate and HTTP session
// tokens. There are no user accounts: one email/password pair configured at
// startup guards the whole dashboard. This is a demo-grade gate by design.
package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned for any email/password mismatch.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// StaticAuthenticator checks credentials against the single configured
// admin identity. The password is bcrypt-hashed at construction so the
// plaintext never sits in memory longer than startup, and comparison is
// constant time.
type StaticAuthenticator struct {
	email        string
	passwordHash []byte
}

// NewStaticAuthenticator creates an authenticator for the given admin
// email and plaintext password.
func NewStaticAuthenticator(email, password string) (*StaticAuthenticator, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &StaticAuthenticator{email: email, passwordHash: hash}, nil
}

// Authenticate checks the supplied credentials. Which of the two fields was
// wrong is deliberately not disclosed.
func (a *StaticAuthenticator) Authenticate(email, password string) error {
	if email != a.email {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Email returns the configured admin email.
func (a *StaticAuthenticator) Email() string {
	return a.email
}
