package study

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"arty/backend/internal/generate"
	"arty/backend/internal/middleware"
)

// Pair count bounds for one study request.
const (
	MinPairCount = 3
	MaxPairCount = 20

	defaultPairCount = 5
)

// PairComposer composes study pairs on demand.
type PairComposer interface {
	Pairs(ctx context.Context, topic string, count int, seedURLs []string) ([]generate.Pair, error)
}

type Handler struct {
	composer PairComposer
}

func NewHandler(composer PairComposer) *Handler {
	return &Handler{composer: composer}
}

// ComposePairs is synchronous: pairs are display-only and never stored, so
// there is no job to queue.
func (h *Handler) ComposePairs(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Topic    string   `json:"topic"`
		Count    int      `json:"count"`
		SeedURLs []string `json:"seed_urls"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(r.Context(), w, "VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
		return
	}

	if req.Topic == "" {
		h.writeError(r.Context(), w, "VALIDATION_ERROR", "Topic is required", http.StatusBadRequest)
		return
	}

	count := req.Count
	if count == 0 {
		count = defaultPairCount
	}
	if count < MinPairCount || count > MaxPairCount {
		msg := fmt.Sprintf("count must be between %d and %d", MinPairCount, MaxPairCount)
		h.writeError(r.Context(), w, "VALIDATION_ERROR", msg, http.StatusBadRequest)
		return
	}

	pairs, err := h.composer.Pairs(r.Context(), req.Topic, count, req.SeedURLs)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to compose study pairs", "error", err, "topic", req.Topic)
		h.writeError(r.Context(), w, "INTERNAL_ERROR", "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	resp := map[string]interface{}{
		"data": pairs,
		"meta": map[string]int{"count": len(pairs)},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, code, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
		"correlationId": middleware.GetCorrelationID(ctx),
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}
