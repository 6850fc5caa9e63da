package application

import (
	"context"
	"errors"
	"testing"

	locations "rainharvest-cloud/internal/locations/domain"
)

type fakeRepo struct {
	options []locations.Option
	choices map[string]locations.Choice
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{choices: make(map[string]locations.Choice)}
}

func (f *fakeRepo) SaveOption(ctx context.Context, option *locations.Option) error {
	f.options = append(f.options, *option)
	return nil
}

func (f *fakeRepo) ListOptions(ctx context.Context, userID string) ([]locations.Option, error) {
	var out []locations.Option
	for _, o := range f.options {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeRepo) SaveChoice(ctx context.Context, choice *locations.Choice) error {
	f.choices[choice.UserID] = *choice
	return nil
}

func (f *fakeRepo) GetChoice(ctx context.Context, userID string) (*locations.Choice, error) {
	choice, ok := f.choices[userID]
	if !ok {
		return nil, locations.ErrNotFound
	}
	return &choice, nil
}

func TestAddAndListOptions(t *testing.T) {
	service, err := NewService(newFakeRepo())
	if err != nil {
		t.Fatalf("service error: %v", err)
	}

	option, err := service.AddOption(context.Background(), "user-1", "  Home  ", 12.9, 77.5)
	if err != nil {
		t.Fatalf("add error: %v", err)
	}
	if option.Label != "Home" {
		t.Fatalf("expected trimmed label, got %q", option.Label)
	}
	if option.ID == "" {
		t.Fatalf("expected generated id")
	}

	listed, err := service.ListOptions(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != option.ID {
		t.Fatalf("unexpected list %+v", listed)
	}

	other, err := service.ListOptions(context.Background(), "user-2")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected empty list for other user, got %+v", other)
	}
}

func TestAddOption_RejectsBadCoords(t *testing.T) {
	service, err := NewService(newFakeRepo())
	if err != nil {
		t.Fatalf("service error: %v", err)
	}
	if _, err := service.AddOption(context.Background(), "user-1", "x", 91, 0); err == nil {
		t.Fatalf("expected error for out-of-range lat")
	}
	if _, err := service.AddOption(context.Background(), "", "x", 12.9, 77.5); err == nil {
		t.Fatalf("expected error for empty user id")
	}
}

func TestSetAndGetChoice_Upserts(t *testing.T) {
	service, err := NewService(newFakeRepo())
	if err != nil {
		t.Fatalf("service error: %v", err)
	}

	if _, err := service.SetChoice(context.Background(), "user-1", "first", 12.9, 77.5); err != nil {
		t.Fatalf("set error: %v", err)
	}
	if _, err := service.SetChoice(context.Background(), "user-1", "second", 13.0, 77.6); err != nil {
		t.Fatalf("second set error: %v", err)
	}

	choice, err := service.GetChoice(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if choice.Label != "second" || choice.Lat != 13.0 {
		t.Fatalf("expected latest choice, got %+v", choice)
	}
}

func TestGetChoice_NotFound(t *testing.T) {
	service, err := NewService(newFakeRepo())
	if err != nil {
		t.Fatalf("service error: %v", err)
	}
	_, err = service.GetChoice(context.Background(), "user-1")
	if !errors.Is(err, locations.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
