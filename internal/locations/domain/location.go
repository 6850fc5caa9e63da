package domain

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"
)

// ErrNotFound reports a missing saved location.
var ErrNotFound = errors.New("locations: not found")

// Option is one saved candidate site for a user.
type Option struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Label     string    `json:"label"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	CreatedAt time.Time `json:"created_at"`
}

// Choice is the single site a user has settled on. One row per user.
type Choice struct {
	UserID    string    `json:"-"`
	Label     string    `json:"label"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks option invariants.
func (o *Option) Validate() error {
	if o == nil {
		return errors.New("locations: nil option")
	}
	if o.UserID == "" {
		return errors.New("locations: empty user id")
	}
	return validateCoords(o.Lat, o.Lng)
}

// Validate checks choice invariants.
func (c *Choice) Validate() error {
	if c == nil {
		return errors.New("locations: nil choice")
	}
	if c.UserID == "" {
		return errors.New("locations: empty user id")
	}
	return validateCoords(c.Lat, c.Lng)
}

func validateCoords(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return errors.New("locations: lat out of range")
	}
	if lng < -180 || lng > 180 {
		return errors.New("locations: lng out of range")
	}
	return nil
}

// TrimLabel normalizes a display label.
func TrimLabel(label string) string {
	return strings.TrimSpace(label)
}

// NewID generates a random option id.
func NewID() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return "loc-" + hex.EncodeToString(buf)
}
