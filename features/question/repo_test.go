package question_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"arty/backend/features/question"
)

func TestPostgresRepo_InsertBatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := question.NewPostgresRepo(db)

	t.Run("Success", func(t *testing.T) {
		records := []question.Question{
			{InterviewID: "iv1", Topic: "DevOps", Text: "Question one?", SourceURL: "http://example.com"},
			{InterviewID: "iv1", Topic: "DevOps", Text: "Question two?", SourceURL: "local_fallback"},
		}

		mock.ExpectBegin()
		stmt := mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO questions (interview_id, topic, q_text, source_url) VALUES ($1, $2, $3, $4)"))
		stmt.ExpectExec().
			WithArgs("iv1", "DevOps", "Question one?", "http://example.com").
			WillReturnResult(sqlmock.NewResult(0, 1))
		stmt.ExpectExec().
			WithArgs("iv1", "DevOps", "Question two?", "local_fallback").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.InsertBatch(context.Background(), records)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Empty Batch Is NoOp", func(t *testing.T) {
		err := repo.InsertBatch(context.Background(), nil)
		assert.NoError(t, err)
	})

	t.Run("Exec Failure Rolls Back", func(t *testing.T) {
		records := []question.Question{
			{InterviewID: "iv1", Topic: "DevOps", Text: "Question one?", SourceURL: "u"},
		}

		mock.ExpectBegin()
		stmt := mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO questions"))
		stmt.ExpectExec().WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		err := repo.InsertBatch(context.Background(), records)
		assert.Error(t, err)
	})
}

func TestPostgresRepo_ListByInterview(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := question.NewPostgresRepo(db)

	rows := sqlmock.NewRows([]string{"id", "interview_id", "topic", "q_text", "source_url", "created_at"}).
		AddRow("q1", "iv1", "DevOps", "A question?", "http://example.com", time.Now())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, interview_id, topic, q_text, source_url, created_at FROM questions WHERE interview_id = $1 ORDER BY created_at ASC, id ASC LIMIT $2 OFFSET $3")).
		WithArgs("iv1", 10, 0).
		WillReturnRows(rows)

	questions, err := repo.ListByInterview(context.Background(), "iv1", 10, 0)
	assert.NoError(t, err)
	assert.Len(t, questions, 1)
	assert.Equal(t, "A question?", questions[0].Text)
}

func TestPostgresRepo_DeleteByInterview(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := question.NewPostgresRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM questions WHERE interview_id = $1")).
		WithArgs("iv1").
		WillReturnResult(sqlmock.NewResult(0, 30))

	err = repo.DeleteByInterview(context.Background(), "iv1")
	assert.NoError(t, err)
}

func TestPostgresRepo_Counts(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := question.NewPostgresRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM questions WHERE interview_id = $1")).
		WithArgs("iv1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(30))

	count, err := repo.CountByInterview(context.Background(), "iv1")
	assert.NoError(t, err)
	assert.Equal(t, 30, count)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM questions")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(120))

	total, err := repo.Count(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 120, total)
}
