package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	accounts "rainharvest-cloud/internal/accounts/domain"
	"rainharvest-cloud/internal/auth"
)

const (
	minPasswordLength = 8
	defaultTokenTTL   = 24 * time.Hour
)

// Repository persists users.
type Repository interface {
	Create(ctx context.Context, user *accounts.User) error
	FindByEmail(ctx context.Context, email string) (*accounts.User, error)
}

// Service handles registration and login.
type Service struct {
	repo     Repository
	secret   []byte
	tokenTTL time.Duration
}

// Option configures the service.
type Option func(*Service)

// WithTokenTTL overrides the default token lifetime.
func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.tokenTTL = ttl
		}
	}
}

// NewService constructs an accounts service.
func NewService(repo Repository, secret []byte, opts ...Option) (*Service, error) {
	if repo == nil {
		return nil, errors.New("accounts service: nil repository")
	}
	if len(secret) == 0 {
		return nil, errors.New("accounts service: empty secret")
	}
	s := &Service{repo: repo, secret: secret, tokenTTL: defaultTokenTTL}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Register creates a new account with a bcrypt password digest.
func (s *Service) Register(ctx context.Context, name, email, password string) (*accounts.User, error) {
	email = accounts.NormalizeEmail(email)
	if err := accounts.ValidateEmail(email); err != nil {
		return nil, err
	}
	if len(password) < minPasswordLength {
		return nil, errors.New("accounts: password must be at least 8 characters")
	}
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, accounts.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, accounts.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &accounts.User{
		ID:           accounts.NewID(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         string(auth.RoleUser),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a signed token.
func (s *Service) Login(ctx context.Context, email, password string) (string, *accounts.User, error) {
	email = accounts.NormalizeEmail(email)
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, accounts.ErrNotFound) {
			return "", nil, accounts.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, accounts.ErrInvalidCredentials
	}
	role, ok := auth.NormalizeRole(user.Role)
	if !ok {
		role = auth.RoleUser
	}
	token, err := auth.IssueJWT(user.ID, user.Email, role, s.secret, s.tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
