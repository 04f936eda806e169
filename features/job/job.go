package job

import (
	"encoding/json"
	"time"
)

// Job is a failed generation task kept for operator-driven retry.
type Job struct {
	ID          string          `json:"id"`
	InterviewID string          `json:"interview_id"`
	Handler     string          `json:"handler"`
	Payload     json.RawMessage `json:"payload"`
	Error       string          `json:"error"`
	Retries     int             `json:"retries"`
	CreatedAt   time.Time       `json:"created_at"`
}
