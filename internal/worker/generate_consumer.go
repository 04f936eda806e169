package worker

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nsqio/go-nsq"

	"arty/backend/features/interview"
	"arty/backend/features/job"
	"arty/backend/internal/generate"
	"arty/backend/internal/middleware"
	"arty/backend/internal/settings"
)

// Generator runs one full question-generation pipeline pass.
type Generator interface {
	Generate(ctx context.Context, req generate.Request) (generate.Result, error)
}

// InterviewStatusUpdater tracks the lifecycle of the interview a task
// belongs to.
type InterviewStatusUpdater interface {
	UpdateStatus(ctx context.Context, id, status string) error
	SetResult(ctx context.Context, id, status string, generated int, errMsg string) error
}

// SettingsReader exposes runtime-tunable generation knobs.
type SettingsReader interface {
	Get(ctx context.Context) (*settings.Settings, error)
}

// GenerateConsumer consumes generate.task messages and drives the pipeline.
type GenerateConsumer struct {
	gen        Generator
	interviews InterviewStatusUpdater
	jobRepo    job.Repository
	settings   SettingsReader
}

func NewGenerateConsumer(gen Generator, interviews InterviewStatusUpdater, jobRepo job.Repository, settings SettingsReader) *GenerateConsumer {
	return &GenerateConsumer{
		gen:        gen,
		interviews: interviews,
		jobRepo:    jobRepo,
		settings:   settings,
	}
}

func (h *GenerateConsumer) HandleMessage(m *nsq.Message) error {
	if len(m.Body) == 0 {
		return nil
	}

	var payload GenerateTaskPayload
	err := json.Unmarshal(m.Body, &payload)

	correlationID := payload.CorrelationID
	if correlationID == "" {
		correlationID = uuid.New().String()
	}
	ctx := middleware.WithCorrelationID(context.Background(), correlationID)

	if err != nil {
		slog.ErrorContext(ctx, "invalid message format", "error", err)
		return nil // Don't retry invalid messages
	}

	if payload.InterviewID == "" || payload.Topic == "" || payload.Count <= 0 {
		slog.ErrorContext(ctx, "missing required fields, dropping", "interview_id", payload.InterviewID, "topic", payload.Topic, "count", payload.Count)
		return nil
	}

	if err := h.interviews.UpdateStatus(ctx, payload.InterviewID, interview.StatusGenerating); err != nil {
		slog.WarnContext(ctx, "failed to mark interview generating", "error", err, "interview_id", payload.InterviewID)
	}

	req := generate.Request{
		InterviewID: payload.InterviewID,
		Topic:       payload.Topic,
		Count:       payload.Count,
		SeedURLs:    payload.SeedURLs,
	}
	if set, err := h.settings.Get(ctx); err == nil && set != nil {
		req.FlushSize = set.FlushSize
	}

	res, err := h.gen.Generate(ctx, req)
	if err != nil {
		slog.ErrorContext(ctx, "generation failed", "interview_id", payload.InterviewID, "persisted", res.Persisted, "error", err)

		if setErr := h.interviews.SetResult(ctx, payload.InterviewID, interview.StatusFailed, res.Persisted, err.Error()); setErr != nil {
			slog.WarnContext(ctx, "failed to mark interview failed", "error", setErr, "interview_id", payload.InterviewID)
		}

		failedJob := &job.Job{
			InterviewID: payload.InterviewID,
			Handler:     "generate-consumer",
			Payload:     json.RawMessage(m.Body),
			Error:       err.Error(),
		}
		if saveErr := h.jobRepo.Save(ctx, failedJob); saveErr != nil {
			slog.ErrorContext(ctx, "failed to save failed job", "error", saveErr)
			// Don't return the error: the interview row already records the failure
		} else {
			slog.InfoContext(ctx, "saved failed job for retry", "job_id", failedJob.ID)
		}
		return nil
	}

	if err := h.interviews.SetResult(ctx, payload.InterviewID, interview.StatusCompleted, res.Persisted, ""); err != nil {
		slog.WarnContext(ctx, "failed to mark interview completed", "error", err, "interview_id", payload.InterviewID)
	}

	slog.InfoContext(ctx, "generation completed", "interview_id", payload.InterviewID, "persisted", res.Persisted, "sources", len(res.Sources))
	return nil
}
