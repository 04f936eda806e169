package interview

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"arty/backend/features/question"
	"arty/backend/internal/config"
	"arty/backend/internal/middleware"
	"arty/backend/internal/settings"
)

// Question count bounds for one generation request.
const (
	MinQuestionCount = 30
	MaxQuestionCount = 75
)

// Interview statuses.
const (
	StatusQueued     = "queued"
	StatusGenerating = "generating"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

type Interview struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Topic          string    `json:"topic"`
	RequestedCount int       `json:"requested_count"`
	SeedURLs       []string  `json:"seed_urls"`
	Status         string    `json:"status"`
	GeneratedCount int       `json:"generated_count"`
	Error          string    `json:"error,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type Repository interface {
	Save(ctx context.Context, iv *Interview) error
	Get(ctx context.Context, id string) (*Interview, error)
	List(ctx context.Context) ([]Interview, error)
	UpdateStatus(ctx context.Context, id, status string) error
	SetResult(ctx context.Context, id, status string, generated int, errMsg string) error
	Reset(ctx context.Context, id string) error
	SoftDelete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type QuestionStore interface {
	ListByInterview(ctx context.Context, interviewID string, limit, offset int) ([]question.Question, error)
	DeleteByInterview(ctx context.Context, interviewID string) error
}

type EventPublisher interface {
	Publish(topic string, body []byte) error
}

type SettingsService interface {
	Get(ctx context.Context) (*settings.Settings, error)
}

type Service struct {
	repo      Repository
	questions QuestionStore
	pub       EventPublisher
	settings  SettingsService
}

func NewService(repo Repository, questions QuestionStore, pub EventPublisher, settings SettingsService) *Service {
	return &Service{repo: repo, questions: questions, pub: pub, settings: settings}
}

// Create persists a queued interview and publishes the generation task. A
// publish failure is logged but does not fail the create; the failed-jobs
// retry surface covers recovery.
func (s *Service) Create(ctx context.Context, iv *Interview) error {
	if iv.UserID == "" {
		iv.UserID = fmt.Sprintf("guest_%d", 1000+rand.IntN(9000))
	}
	if iv.SeedURLs == nil {
		iv.SeedURLs = []string{}
	}
	iv.Status = StatusQueued

	if err := s.repo.Save(ctx, iv); err != nil {
		return err
	}

	s.publishTask(ctx, iv)
	return nil
}

// Regenerate discards an interview's questions and queues a fresh run with
// the same topic, count, and seed URLs.
func (s *Service) Regenerate(ctx context.Context, id string) error {
	iv, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.questions.DeleteByInterview(ctx, id); err != nil {
		return fmt.Errorf("failed to clean up questions: %w", err)
	}
	if err := s.repo.Reset(ctx, id); err != nil {
		return err
	}

	s.publishTask(ctx, iv)
	return nil
}

func (s *Service) publishTask(ctx context.Context, iv *Interview) {
	payload, _ := json.Marshal(map[string]interface{}{
		"interview_id":   iv.ID,
		"topic":          iv.Topic,
		"count":          iv.RequestedCount,
		"seed_urls":      iv.SeedURLs,
		"correlation_id": middleware.GetCorrelationID(ctx),
	})
	if err := s.pub.Publish(config.TopicGenerateTask, payload); err != nil {
		slog.ErrorContext(ctx, "failed to publish generate.task event", "error", err, "interview_id", iv.ID)
	} else {
		slog.InfoContext(ctx, "published generate.task event", "interview_id", iv.ID, "topic", iv.Topic, "count", iv.RequestedCount)
	}
}

func (s *Service) Get(ctx context.Context, id string) (*Interview, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Interview, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	// SoftDelete succeeds on zero rows, so the existence check is what
	// surfaces a 404 for unknown or already-deleted interviews.
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	if err := s.questions.DeleteByInterview(ctx, id); err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *Service) Questions(ctx context.Context, id string, limit, offset int) ([]question.Question, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.questions.ListByInterview(ctx, id, limit, offset)
}

// DefaultCount reads the configured question count, falling back to the
// midpoint default when settings are unavailable.
func (s *Service) DefaultCount(ctx context.Context) int {
	set, err := s.settings.Get(ctx)
	if err != nil || set == nil || set.DefaultQuestionCount < MinQuestionCount || set.DefaultQuestionCount > MaxQuestionCount {
		return 40
	}
	return set.DefaultQuestionCount
}
