package settings

import (
	"context"
	"database/sql"
)

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Get(ctx context.Context) (*Settings, error) {
	s := &Settings{}
	query := `SELECT id, flush_size, fetch_timeout_ms, fetch_max_chars, default_question_count FROM settings WHERE id = 1`
	err := r.db.QueryRowContext(ctx, query).Scan(&s.ID, &s.FlushSize, &s.FetchTimeoutMS, &s.FetchMaxChars, &s.DefaultQuestionCount)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *PostgresRepo) Update(ctx context.Context, s *Settings) error {
	query := `
		UPDATE settings
		SET flush_size = $1, fetch_timeout_ms = $2, fetch_max_chars = $3, default_question_count = $4, updated_at = NOW()
		WHERE id = 1
	`
	_, err := r.db.ExecContext(ctx, query, s.FlushSize, s.FetchTimeoutMS, s.FetchMaxChars, s.DefaultQuestionCount)
	return err
}
