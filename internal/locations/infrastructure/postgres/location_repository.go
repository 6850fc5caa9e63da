package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	locations "rainharvest-cloud/internal/locations/domain"
)

const (
	defaultOptionsTable = "location_options"
	defaultChoicesTable = "location_choices"
)

// DBTX is the subset of *sql.DB and *sql.Tx the repositories need.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// LocationRepository is a Postgres implementation for saved locations.
type LocationRepository struct {
	db           DBTX
	optionsTable string
	choicesTable string
}

// NewLocationRepository constructs a repository.
func NewLocationRepository(db DBTX) *LocationRepository {
	return &LocationRepository{db: db, optionsTable: defaultOptionsTable, choicesTable: defaultChoicesTable}
}

// SaveOption inserts a candidate site.
func (r *LocationRepository) SaveOption(ctx context.Context, option *locations.Option) error {
	if r == nil || r.db == nil {
		return errors.New("location repo: nil db")
	}
	if err := option.Validate(); err != nil {
		return err
	}

	query := fmt.Sprintf(`
INSERT INTO %s (id, user_id, label, lat, lng, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`, r.optionsTable)

	_, err := r.db.ExecContext(ctx, query, option.ID, option.UserID, option.Label, option.Lat, option.Lng, option.CreatedAt)
	return err
}

// ListOptions returns a user's saved candidates, newest first.
func (r *LocationRepository) ListOptions(ctx context.Context, userID string) ([]locations.Option, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("location repo: nil db")
	}

	query := fmt.Sprintf(`
SELECT id, user_id, label, lat, lng, created_at
FROM %s
WHERE user_id = $1
ORDER BY created_at DESC`, r.optionsTable)

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []locations.Option
	for rows.Next() {
		var option locations.Option
		if err := rows.Scan(&option.ID, &option.UserID, &option.Label, &option.Lat, &option.Lng, &option.CreatedAt); err != nil {
			return nil, err
		}
		option.CreatedAt = option.CreatedAt.UTC()
		out = append(out, option)
	}
	return out, rows.Err()
}

// SaveChoice upserts the user's settled site.
func (r *LocationRepository) SaveChoice(ctx context.Context, choice *locations.Choice) error {
	if r == nil || r.db == nil {
		return errors.New("location repo: nil db")
	}
	if err := choice.Validate(); err != nil {
		return err
	}

	query := fmt.Sprintf(`
INSERT INTO %s (user_id, label, lat, lng, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (user_id)
DO UPDATE SET
	label = EXCLUDED.label,
	lat = EXCLUDED.lat,
	lng = EXCLUDED.lng,
	updated_at = EXCLUDED.updated_at`, r.choicesTable)

	_, err := r.db.ExecContext(ctx, query, choice.UserID, choice.Label, choice.Lat, choice.Lng, choice.UpdatedAt)
	return err
}

// GetChoice loads the user's settled site.
func (r *LocationRepository) GetChoice(ctx context.Context, userID string) (*locations.Choice, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("location repo: nil db")
	}

	query := fmt.Sprintf(`
SELECT user_id, label, lat, lng, updated_at
FROM %s
WHERE user_id = $1
LIMIT 1`, r.choicesTable)

	var choice locations.Choice
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&choice.UserID, &choice.Label, &choice.Lat, &choice.Lng, &choice.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, locations.ErrNotFound
		}
		return nil, err
	}
	choice.UpdatedAt = choice.UpdatedAt.UTC()
	return &choice, nil
}
