package application

import (
	"context"
	"errors"
	"time"

	locations "rainharvest-cloud/internal/locations/domain"
)

// Repository persists saved locations.
type Repository interface {
	SaveOption(ctx context.Context, option *locations.Option) error
	ListOptions(ctx context.Context, userID string) ([]locations.Option, error)
	SaveChoice(ctx context.Context, choice *locations.Choice) error
	GetChoice(ctx context.Context, userID string) (*locations.Choice, error)
}

// Service manages a user's saved sites.
type Service struct {
	repo Repository
}

// NewService constructs a locations service.
func NewService(repo Repository) (*Service, error) {
	if repo == nil {
		return nil, errors.New("locations service: nil repository")
	}
	return &Service{repo: repo}, nil
}

// AddOption saves a candidate site for the user.
func (s *Service) AddOption(ctx context.Context, userID, label string, lat, lng float64) (*locations.Option, error) {
	option := &locations.Option{
		ID:        locations.NewID(),
		UserID:    userID,
		Label:     locations.TrimLabel(label),
		Lat:       lat,
		Lng:       lng,
		CreatedAt: time.Now().UTC(),
	}
	if err := option.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.SaveOption(ctx, option); err != nil {
		return nil, err
	}
	return option, nil
}

// ListOptions returns the user's saved candidates, newest first.
func (s *Service) ListOptions(ctx context.Context, userID string) ([]locations.Option, error) {
	if userID == "" {
		return nil, errors.New("locations service: empty user id")
	}
	return s.repo.ListOptions(ctx, userID)
}

// SetChoice upserts the user's settled site.
func (s *Service) SetChoice(ctx context.Context, userID, label string, lat, lng float64) (*locations.Choice, error) {
	choice := &locations.Choice{
		UserID:    userID,
		Label:     locations.TrimLabel(label),
		Lat:       lat,
		Lng:       lng,
		UpdatedAt: time.Now().UTC(),
	}
	if err := choice.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.SaveChoice(ctx, choice); err != nil {
		return nil, err
	}
	return choice, nil
}

// GetChoice returns the user's settled site.
func (s *Service) GetChoice(ctx context.Context, userID string) (*locations.Choice, error) {
	if userID == "" {
		return nil, errors.New("locations service: empty user id")
	}
	return s.repo.GetChoice(ctx, userID)
}
