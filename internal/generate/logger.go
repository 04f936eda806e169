package generate

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type GenerationLogEntry struct {
	Timestamp     time.Time     `json:"timestamp"`
	InterviewID   string        `json:"interview_id"`
	Topic         string        `json:"topic"`
	Requested     int           `json:"requested"`
	Persisted     int           `json:"persisted"`
	Sources       []string      `json:"sources"`
	Duration      time.Duration `json:"duration_ns"`
	LatencyMs     int64         `json:"latency_ms"`
	CorrelationID string        `json:"correlation_id"`
}

// GenerationLogger appends one JSONL audit record per generation run.
type GenerationLogger struct {
	writer io.Writer
	mu     sync.Mutex
}

func NewGenerationLogger(w io.Writer) *GenerationLogger {
	return &GenerationLogger{writer: w}
}

func NewFileGenerationLogger(path string) (*GenerationLogger, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, err
	}

	cleanPath := filepath.Clean(path)
	f, err := os.OpenFile(cleanPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600) // #nosec G304 -- path is from application config, not user input
	if err != nil {
		return nil, err
	}
	mw := io.MultiWriter(os.Stdout, f)
	return NewGenerationLogger(mw), nil
}

func (l *GenerationLogger) Log(entry GenerationLogEntry) {
	entry.Timestamp = time.Now()
	entry.LatencyMs = entry.Duration.Milliseconds()

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := json.NewEncoder(l.writer).Encode(entry); err != nil {
		slog.Error("failed to write generation log entry", "error", err)
	}
}
