package settings

import (
	"context"
)

// Settings is the singleton row of runtime-tunable generation knobs.
type Settings struct {
	ID                   int `json:"-"`
	FlushSize            int `json:"flush_size"`
	FetchTimeoutMS       int `json:"fetch_timeout_ms"`
	FetchMaxChars        int `json:"fetch_max_chars"`
	DefaultQuestionCount int `json:"default_question_count"`
}

type Repository interface {
	Get(ctx context.Context) (*Settings, error)
	Update(ctx context.Context, s *Settings) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context) (*Settings, error) {
	return s.repo.Get(ctx)
}

func (s *Service) Update(ctx context.Context, set *Settings) error {
	return s.repo.Update(ctx, set)
}

// FetchLimits reads the current fetch knobs from the settings row, so limit
// updates apply to the next fetch without a restart.
func (s *Service) FetchLimits(ctx context.Context) (timeoutMS, maxChars int, err error) {
	set, err := s.repo.Get(ctx)
	if err != nil {
		return 0, 0, err
	}
	return set.FetchTimeoutMS, set.FetchMaxChars, nil
}
