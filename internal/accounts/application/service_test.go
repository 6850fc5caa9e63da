package application

import (
	"context"
	"errors"
	"testing"

	accounts "rainharvest-cloud/internal/accounts/domain"
	"rainharvest-cloud/internal/auth"
)

type fakeRepo struct {
	byEmail map[string]*accounts.User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byEmail: make(map[string]*accounts.User)}
}

func (f *fakeRepo) Create(ctx context.Context, user *accounts.User) error {
	if _, ok := f.byEmail[user.Email]; ok {
		return errors.New("duplicate")
	}
	copied := *user
	f.byEmail[user.Email] = &copied
	return nil
}

func (f *fakeRepo) FindByEmail(ctx context.Context, email string) (*accounts.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, accounts.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func TestRegister_Success(t *testing.T) {
	service, err := NewService(newFakeRepo(), []byte("test-secret"))
	if err != nil {
		t.Fatalf("service error: %v", err)
	}

	user, err := service.Register(context.Background(), "Someone", "Someone@Example.com ", "password123")
	if err != nil {
		t.Fatalf("register error: %v", err)
	}
	if user.Email != "someone@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.Role != "user" {
		t.Fatalf("expected user role, got %q", user.Role)
	}
	if user.PasswordHash == "" || user.PasswordHash == "password123" {
		t.Fatalf("expected hashed password")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newFakeRepo()
	service, err := NewService(repo, []byte("test-secret"))
	if err != nil {
		t.Fatalf("service error: %v", err)
	}

	if _, err := service.Register(context.Background(), "A", "a@example.com", "password123"); err != nil {
		t.Fatalf("first register error: %v", err)
	}
	_, err = service.Register(context.Background(), "B", "A@example.com", "password456")
	if !errors.Is(err, accounts.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegister_RejectsShortPassword(t *testing.T) {
	service, err := NewService(newFakeRepo(), []byte("test-secret"))
	if err != nil {
		t.Fatalf("service error: %v", err)
	}
	if _, err := service.Register(context.Background(), "A", "a@example.com", "short"); err == nil {
		t.Fatalf("expected error for short password")
	}
}

func TestRegister_RejectsInvalidEmail(t *testing.T) {
	service, err := NewService(newFakeRepo(), []byte("test-secret"))
	if err != nil {
		t.Fatalf("service error: %v", err)
	}
	if _, err := service.Register(context.Background(), "A", "not-an-email", "password123"); err == nil {
		t.Fatalf("expected error for invalid email")
	}
}

func TestLogin_Success(t *testing.T) {
	secret := []byte("test-secret")
	service, err := NewService(newFakeRepo(), secret)
	if err != nil {
		t.Fatalf("service error: %v", err)
	}
	if _, err := service.Register(context.Background(), "A", "a@example.com", "password123"); err != nil {
		t.Fatalf("register error: %v", err)
	}

	token, user, err := service.Login(context.Background(), "A@Example.com", "password123")
	if err != nil {
		t.Fatalf("login error: %v", err)
	}
	claims, err := auth.ParseJWT(token, secret)
	if err != nil {
		t.Fatalf("token should parse: %v", err)
	}
	if claims.UserID != user.ID || claims.Subject != "a@example.com" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	service, err := NewService(newFakeRepo(), []byte("test-secret"))
	if err != nil {
		t.Fatalf("service error: %v", err)
	}
	if _, err := service.Register(context.Background(), "A", "a@example.com", "password123"); err != nil {
		t.Fatalf("register error: %v", err)
	}

	_, _, err = service.Login(context.Background(), "a@example.com", "wrong-password")
	if !errors.Is(err, accounts.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	service, err := NewService(newFakeRepo(), []byte("test-secret"))
	if err != nil {
		t.Fatalf("service error: %v", err)
	}
	_, _, err = service.Login(context.Background(), "nobody@example.com", "password123")
	if !errors.Is(err, accounts.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
