package interview

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
)

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Save(ctx context.Context, iv *Interview) error {
	query := `INSERT INTO interviews (user_id, topic, requested_count, seed_urls, status) VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query, iv.UserID, iv.Topic, iv.RequestedCount, pq.Array(iv.SeedURLs), iv.Status).
		Scan(&iv.ID, &iv.CreatedAt, &iv.UpdatedAt)
}

func (r *PostgresRepo) Get(ctx context.Context, id string) (*Interview, error) {
	iv := &Interview{}
	query := `SELECT id, user_id, topic, requested_count, seed_urls, status, generated_count, error, created_at, updated_at FROM interviews WHERE id = $1 AND deleted_at IS NULL`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&iv.ID, &iv.UserID, &iv.Topic, &iv.RequestedCount, pq.Array(&iv.SeedURLs), &iv.Status, &iv.GeneratedCount, &iv.Error, &iv.CreatedAt, &iv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return iv, nil
}

func (r *PostgresRepo) List(ctx context.Context) ([]Interview, error) {
	query := `SELECT id, user_id, topic, requested_count, seed_urls, status, generated_count, error, created_at, updated_at FROM interviews WHERE deleted_at IS NULL ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interviews []Interview
	for rows.Next() {
		var iv Interview
		if err := rows.Scan(&iv.ID, &iv.UserID, &iv.Topic, &iv.RequestedCount, pq.Array(&iv.SeedURLs), &iv.Status, &iv.GeneratedCount, &iv.Error, &iv.CreatedAt, &iv.UpdatedAt); err != nil {
			return nil, err
		}
		interviews = append(interviews, iv)
	}
	return interviews, rows.Err()
}

func (r *PostgresRepo) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE interviews SET status = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, status, id)
	return err
}

func (r *PostgresRepo) SetResult(ctx context.Context, id, status string, generated int, errMsg string) error {
	query := `UPDATE interviews SET status = $1, generated_count = $2, error = $3, updated_at = NOW() WHERE id = $4`
	_, err := r.db.ExecContext(ctx, query, status, generated, errMsg, id)
	return err
}

func (r *PostgresRepo) Reset(ctx context.Context, id string) error {
	query := `UPDATE interviews SET status = 'queued', generated_count = 0, error = '', updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *PostgresRepo) SoftDelete(ctx context.Context, id string) error {
	query := `UPDATE interviews SET deleted_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *PostgresRepo) Count(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM interviews WHERE deleted_at IS NULL`
	err := r.db.QueryRowContext(ctx, query).Scan(&count)
	return count, err
}
