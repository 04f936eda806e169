package generate

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"arty/backend/internal/middleware"
)

// Question is one generated interview question, immutable once paraphrased.
type Question struct {
	Topic            string
	Text             string
	SourceIdentifier string
}

// Request drives exactly one run of the pipeline.
type Request struct {
	InterviewID string
	Topic       string
	Count       int
	SeedURLs    []string

	// FlushSize overrides the generator default when > 0.
	FlushSize int
}

// Result reports how far a run got. Persisted counts records that reached
// the store even when the run ends in an error.
type Result struct {
	Persisted int
	Sources   []string
}

// QuestionStore persists one batch of generated questions as a single bulk
// write. A batch may be any size from 1 up to the flush threshold.
type QuestionStore interface {
	InsertBatch(ctx context.Context, records []Question, interviewID, topic string) error
}

// PersistenceError reports a failed batch flush together with the number of
// records that had already been persisted before the failure.
type PersistenceError struct {
	Persisted int
	Err       error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("batch flush failed after %d persisted records: %v", e.Persisted, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// DefaultFlushSize is a persistence-efficiency policy, not a correctness
// requirement; the store must accept smaller batches too.
const DefaultFlushSize = 15

// Generator drives the full pipeline: corpus build, salience extraction,
// question composition, paraphrasing, and batched persistence.
type Generator struct {
	corpus    *CorpusBuilder
	synth     *Synthesizer
	store     QuestionStore
	audit     *GenerationLogger
	flushSize int
	seed      int64
}

// NewGenerator builds a Generator. A non-zero seed makes every run
// reproducible; seed 0 draws from the clock.
func NewGenerator(corpus *CorpusBuilder, synth *Synthesizer, store QuestionStore, audit *GenerationLogger, flushSize int, seed int64) *Generator {
	if flushSize <= 0 {
		flushSize = DefaultFlushSize
	}
	return &Generator{
		corpus:    corpus,
		synth:     synth,
		store:     store,
		audit:     audit,
		flushSize: flushSize,
		seed:      seed,
	}
}

// Generate produces and persists exactly req.Count questions, flushing in
// fixed-size batches. On a flush failure it returns a PersistenceError
// carrying the already-persisted count; cancellation between iterations
// discards the pending batch but never rolls back flushed ones.
func (g *Generator) Generate(ctx context.Context, req Request) (Result, error) {
	start := time.Now()

	corpus := g.corpus.Build(ctx, req.Topic, req.SeedURLs)
	if len(corpus) == 0 {
		// The synthetic fallback tier cannot fail, so an empty corpus is a
		// programming error rather than a recoverable condition.
		return Result{}, errors.New("seed corpus is empty")
	}

	sources := make([]string, 0, len(corpus))
	for _, unit := range corpus {
		sources = append(sources, unit.Identifier)
	}
	res := Result{Sources: sources}

	flushSize := g.flushSize
	if req.FlushSize > 0 {
		flushSize = req.FlushSize
	}

	rng := g.newRand()
	pending := make([]Question, 0, flushSize)
	for i := 0; i < req.Count; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		unit := corpus[rng.Intn(len(corpus))]
		paragraph := PickParagraph(unit.Text, rng)
		terms := g.synth.ExtractTerms(paragraph)
		text := g.synth.Paraphrase(Compose(req.Topic, terms), rng)

		pending = append(pending, Question{
			Topic:            req.Topic,
			Text:             text,
			SourceIdentifier: unit.Identifier,
		})

		if len(pending) >= flushSize {
			if err := g.flush(ctx, &res, pending, req); err != nil {
				return res, err
			}
			pending = make([]Question, 0, flushSize)
		}
	}

	if len(pending) > 0 {
		if err := g.flush(ctx, &res, pending, req); err != nil {
			return res, err
		}
	}

	if g.audit != nil {
		g.audit.Log(GenerationLogEntry{
			InterviewID:   req.InterviewID,
			Topic:         req.Topic,
			Requested:     req.Count,
			Persisted:     res.Persisted,
			Sources:       sources,
			Duration:      time.Since(start),
			CorrelationID: middleware.GetCorrelationID(ctx),
		})
	}
	return res, nil
}

func (g *Generator) flush(ctx context.Context, res *Result, batch []Question, req Request) error {
	if err := g.store.InsertBatch(ctx, batch, req.InterviewID, req.Topic); err != nil {
		return &PersistenceError{Persisted: res.Persisted, Err: err}
	}
	res.Persisted += len(batch)
	return nil
}

func (g *Generator) newRand() *rand.Rand {
	seed := g.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)) // #nosec G404 -- paraphrasing randomness, not cryptographic
}
