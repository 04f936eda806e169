package question

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

// InsertBatch persists one flush of generated questions in a single
// transaction. Ids and timestamps are assigned by the database.
func (r *PostgresRepo) InsertBatch(ctx context.Context, records []Question) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO questions (interview_id, topic, q_text, source_url) VALUES ($1, $2, $3, $4)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, q := range records {
		if _, err := stmt.ExecContext(ctx, q.InterviewID, q.Topic, q.Text, q.SourceURL); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PostgresRepo) ListByInterview(ctx context.Context, interviewID string, limit, offset int) ([]Question, error) {
	query := `SELECT id, interview_id, topic, q_text, source_url, created_at FROM questions WHERE interview_id = $1 ORDER BY created_at ASC, id ASC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, interviewID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []Question
	for rows.Next() {
		var q Question
		if err := rows.Scan(&q.ID, &q.InterviewID, &q.Topic, &q.Text, &q.SourceURL, &q.CreatedAt); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (r *PostgresRepo) DeleteByInterview(ctx context.Context, interviewID string) error {
	query := `DELETE FROM questions WHERE interview_id = $1`
	_, err := r.db.ExecContext(ctx, query, interviewID)
	return err
}

func (r *PostgresRepo) CountByInterview(ctx context.Context, interviewID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM questions WHERE interview_id = $1`
	err := r.db.QueryRowContext(ctx, query, interviewID).Scan(&count)
	return count, err
}

func (r *PostgresRepo) Count(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM questions`
	err := r.db.QueryRowContext(ctx, query).Scan(&count)
	return count, err
}
