package dashboards

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Insert stores a new dashboard.
func (r *PGRepo) Insert(ctx context.Context, dashboard Dashboard) error {
	const query = `
INSERT INTO dashboards (id, user_id, title, data, created_at)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.DB.ExecContext(ctx, query,
		dashboard.ID,
		dashboard.UserID,
		dashboard.Title,
		[]byte(dashboard.Data),
		dashboard.CreatedAt,
	)
	return err
}

// GetByID returns the dashboard matching both id and owner.
func (r *PGRepo) GetByID(ctx context.Context, id, userID string) (Dashboard, error) {
	const query = `
SELECT id, user_id, title, data, created_at
FROM dashboards
WHERE id = $1 AND user_id = $2
LIMIT 1`
	var d Dashboard
	var data []byte
	err := r.DB.QueryRowContext(ctx, query, id, userID).Scan(
		&d.ID,
		&d.UserID,
		&d.Title,
		&data,
		&d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Dashboard{}, ErrNotFound
		}
		return Dashboard{}, err
	}
	d.Data = data
	return d, nil
}

// ListByUser returns the user's dashboards, newest first. Data is left out;
// the listing view only needs the headline fields.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Dashboard, error) {
	const query = `
SELECT id, user_id, title, created_at
FROM dashboards
WHERE user_id = $1
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Dashboard, 0)
	for rows.Next() {
		var d Dashboard
		if err := rows.Scan(&d.ID, &d.UserID, &d.Title, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
