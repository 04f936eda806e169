package generate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorpusBuilder_CallerURLsWin(t *testing.T) {
	fetcher := &stubFetcher{pages: map[string]string{
		"https://a.example/one": "Text about one.",
		"https://a.example/two": "Text about two.",
	}}
	b := NewCorpusBuilder(fetcher)

	units := b.Build(context.Background(), "devops", []string{
		"https://a.example/one",
		"https://a.example/two",
	})

	require.Len(t, units, 2)
	assert.Equal(t, "https://a.example/one", units[0].Identifier)
	assert.Equal(t, "Text about one.", units[0].Text)
	assert.Equal(t, "https://a.example/two", units[1].Identifier)
}

func TestCorpusBuilder_OrderFollowsInputNotCompletion(t *testing.T) {
	urls := []string{
		"https://a.example/1",
		"https://a.example/2",
		"https://a.example/3",
		"https://a.example/4",
		"https://a.example/5",
		"https://a.example/6",
	}
	pages := make(map[string]string, len(urls))
	for _, u := range urls {
		pages[u] = "body for " + u
	}
	b := NewCorpusBuilder(&stubFetcher{pages: pages})

	units := b.Build(context.Background(), "cloud", urls)

	require.Len(t, units, len(urls))
	for i, u := range urls {
		assert.Equal(t, u, units[i].Identifier)
	}
}

func TestCorpusBuilder_PartialFailureShrinksTier(t *testing.T) {
	fetcher := &stubFetcher{pages: map[string]string{
		"https://a.example/good": "Some readable text.",
	}}
	b := NewCorpusBuilder(fetcher)

	units := b.Build(context.Background(), "devops", []string{
		"https://a.example/dead",
		"https://a.example/good",
	})

	require.Len(t, units, 1)
	assert.Equal(t, "https://a.example/good", units[0].Identifier)
}

func TestCorpusBuilder_FallsBackToCuratedDefaults(t *testing.T) {
	fetcher := &stubFetcher{pages: map[string]string{
		"https://aws.amazon.com/devops/what-is-devops/": "DevOps combines practices and tools.",
	}}
	b := NewCorpusBuilder(fetcher)

	units := b.Build(context.Background(), "DevOps pipelines", nil)

	require.Len(t, units, 1)
	assert.Equal(t, "https://aws.amazon.com/devops/what-is-devops/", units[0].Identifier)
	assert.Contains(t, fetcher.calls, "https://aws.amazon.com/devops/what-is-devops/")
}

func TestCorpusBuilder_SyntheticFallbackWhenEverythingFails(t *testing.T) {
	b := NewCorpusBuilder(failingFetcher{})

	units := b.Build(context.Background(), "devops", []string{"https://a.example/dead"})

	require.Len(t, units, 1)
	assert.Equal(t, FallbackIdentifier, units[0].Identifier)
	assert.Contains(t, units[0].Text, "devops")
	assert.Contains(t, units[0].Text, "fallback paragraph")
}

func TestCorpusBuilder_UnknownTopicSkipsCuratedTier(t *testing.T) {
	fetcher := &stubFetcher{pages: map[string]string{}}
	b := NewCorpusBuilder(fetcher)

	units := b.Build(context.Background(), "quantum basket weaving", nil)

	require.Len(t, units, 1)
	assert.Equal(t, FallbackIdentifier, units[0].Identifier)
	// No curated URL exists for the topic, so nothing was fetched at all.
	assert.Empty(t, fetcher.calls)
}

func TestCorpusBuilder_EmptyBodyDropped(t *testing.T) {
	fetcher := &stubFetcher{pages: map[string]string{
		"https://a.example/blank": "   ",
	}}
	b := NewCorpusBuilder(fetcher)

	units := b.Build(context.Background(), "unmapped topic", []string{"https://a.example/blank"})

	require.Len(t, units, 1)
	assert.Equal(t, FallbackIdentifier, units[0].Identifier)
}
