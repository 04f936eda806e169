package generate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(store QuestionStore, flushSize int) *Generator {
	corpus := NewCorpusBuilder(failingFetcher{})
	return NewGenerator(corpus, newPlainSynthesizer(), store, nil, flushSize, 42)
}

func TestGenerate_PersistsExactlyRequestedCount(t *testing.T) {
	for _, count := range []int{30, 40, 75} {
		store := &recordingStore{}
		g := newTestGenerator(store, 0)

		res, err := g.Generate(context.Background(), Request{
			InterviewID: "iv-1",
			Topic:       "devops",
			Count:       count,
		})

		require.NoError(t, err)
		assert.Equal(t, count, res.Persisted)
		assert.Equal(t, count, store.total())
	}
}

func TestGenerate_FlushesInFixedBatches(t *testing.T) {
	store := &recordingStore{}
	g := newTestGenerator(store, 0)

	res, err := g.Generate(context.Background(), Request{
		InterviewID: "iv-1",
		Topic:       "devops",
		Count:       34,
	})

	require.NoError(t, err)
	assert.Equal(t, 34, res.Persisted)
	require.Len(t, store.batches, 3)
	assert.Len(t, store.batches[0], 15)
	assert.Len(t, store.batches[1], 15)
	assert.Len(t, store.batches[2], 4)
}

func TestGenerate_RequestFlushSizeOverridesDefault(t *testing.T) {
	store := &recordingStore{}
	g := newTestGenerator(store, 0)

	_, err := g.Generate(context.Background(), Request{
		InterviewID: "iv-1",
		Topic:       "devops",
		Count:       10,
		FlushSize:   4,
	})

	require.NoError(t, err)
	require.Len(t, store.batches, 3)
	assert.Len(t, store.batches[0], 4)
	assert.Len(t, store.batches[1], 4)
	assert.Len(t, store.batches[2], 2)
}

func TestGenerate_ProvenanceOnEveryQuestion(t *testing.T) {
	store := &recordingStore{}
	g := newTestGenerator(store, 0)

	res, err := g.Generate(context.Background(), Request{
		InterviewID: "iv-1",
		Topic:       "quantum weaving",
		Count:       5,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{FallbackIdentifier}, res.Sources)
	for _, batch := range store.batches {
		for _, q := range batch {
			assert.Equal(t, "quantum weaving", q.Topic)
			assert.Equal(t, FallbackIdentifier, q.SourceIdentifier)
			assert.NotEmpty(t, q.Text)
		}
	}
}

func TestGenerate_DeterministicForFixedSeed(t *testing.T) {
	run := func() []Question {
		store := &recordingStore{}
		g := newTestGenerator(store, 0)
		_, err := g.Generate(context.Background(), Request{
			InterviewID: "iv-1",
			Topic:       "devops",
			Count:       30,
		})
		require.NoError(t, err)
		var all []Question
		for _, b := range store.batches {
			all = append(all, b...)
		}
		return all
	}

	assert.Equal(t, run(), run())
}

func TestGenerate_StoreFailureReportsPersistedCount(t *testing.T) {
	store := &recordingStore{failAt: 2}
	g := newTestGenerator(store, 0)

	res, err := g.Generate(context.Background(), Request{
		InterviewID: "iv-1",
		Topic:       "devops",
		Count:       40,
	})

	require.Error(t, err)
	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 15, perr.Persisted)
	assert.Equal(t, 15, res.Persisted)
	assert.Equal(t, 15, store.total())
}

func TestGenerate_CancellationStopsBetweenIterations(t *testing.T) {
	store := &recordingStore{}
	g := newTestGenerator(store, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := g.Generate(ctx, Request{
		InterviewID: "iv-1",
		Topic:       "devops",
		Count:       40,
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, res.Persisted)
	assert.Empty(t, store.batches)
}
