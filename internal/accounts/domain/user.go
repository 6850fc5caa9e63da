package domain

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/mail"
	"strings"
	"time"
)

var (
	// ErrEmailTaken reports a registration against an existing email.
	ErrEmailTaken = errors.New("accounts: email already registered")
	// ErrInvalidCredentials reports a failed login.
	ErrInvalidCredentials = errors.New("accounts: invalid credentials")
	// ErrNotFound reports a missing user.
	ErrNotFound = errors.New("accounts: user not found")
)

// User is a registered account. PasswordHash is a bcrypt digest and never
// leaves the service boundary.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Validate checks the stored invariants.
func (u *User) Validate() error {
	if u == nil {
		return errors.New("accounts: nil user")
	}
	if u.ID == "" {
		return errors.New("accounts: empty user id")
	}
	if err := ValidateEmail(u.Email); err != nil {
		return err
	}
	if u.PasswordHash == "" {
		return errors.New("accounts: empty password hash")
	}
	return nil
}

// ValidateEmail rejects malformed addresses.
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return errors.New("accounts: empty email")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errors.New("accounts: invalid email")
	}
	return nil
}

// NormalizeEmail lowercases and trims an address for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NewID generates a random user id.
func NewID() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return "user-" + hex.EncodeToString(buf)
}
