package question

import (
	"context"
	"time"
)

type Question struct {
	ID          string    `json:"id"`
	InterviewID string    `json:"interview_id"`
	Topic       string    `json:"topic"`
	Text        string    `json:"q_text"`
	SourceURL   string    `json:"source_url"`
	CreatedAt   time.Time `json:"created_at"`
}

type Repository interface {
	InsertBatch(ctx context.Context, records []Question) error
	ListByInterview(ctx context.Context, interviewID string, limit, offset int) ([]Question, error)
	DeleteByInterview(ctx context.Context, interviewID string) error
	CountByInterview(ctx context.Context, interviewID string) (int, error)
	Count(ctx context.Context) (int, error)
}
