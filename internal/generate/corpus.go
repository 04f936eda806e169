package generate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"
)

// FallbackIdentifier marks the synthetic source unit used when no URL could
// be fetched at all.
const FallbackIdentifier = "local_fallback"

// SourceUnit is one (identifier, text) pair in the seed corpus for a single
// generation request.
type SourceUnit struct {
	Identifier string
	Text       string
}

// Fetcher retrieves the readable body text of a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// defaultSeedURLs maps the first word of a topic (lower-cased) to curated
// starting points used when the caller supplies no fetchable URLs.
var defaultSeedURLs = map[string][]string{
	"devops": {"https://aws.amazon.com/devops/what-is-devops/"},
	"cloud":  {"https://azure.microsoft.com/en-us/overview/what-is-cloud-computing/"},
	"rpa":    {"https://www.uipath.com/rpa/robotic-process-automation"},
}

const defaultFetchFanOut = 4

// CorpusBuilder assembles the seed corpus for a generation request through
// an ordered fallback chain: caller URLs, then curated topic defaults, then
// a synthetic local paragraph. Fetch failures are swallowed here; they can
// only shrink a tier, never fail the request.
type CorpusBuilder struct {
	fetcher Fetcher
	fanOut  int
}

func NewCorpusBuilder(fetcher Fetcher) *CorpusBuilder {
	return &CorpusBuilder{fetcher: fetcher, fanOut: defaultFetchFanOut}
}

// Build returns a non-empty corpus: the synthetic tier has no external
// dependency, so the chain always terminates with at least one unit.
func (b *CorpusBuilder) Build(ctx context.Context, topic string, seedURLs []string) []SourceUnit {
	strategies := []func(context.Context) []SourceUnit{
		func(ctx context.Context) []SourceUnit { return b.fetchAll(ctx, seedURLs) },
		func(ctx context.Context) []SourceUnit { return b.fetchAll(ctx, curatedURLs(topic)) },
		func(context.Context) []SourceUnit { return []SourceUnit{syntheticUnit(topic)} },
	}

	for _, strategy := range strategies {
		if units := strategy(ctx); len(units) > 0 {
			return units
		}
	}
	return nil
}

// fetchAll fetches every URL with bounded concurrency. Result order follows
// input order regardless of completion order; failed or empty fetches are
// dropped.
func (b *CorpusBuilder) fetchAll(ctx context.Context, urls []string) []SourceUnit {
	if len(urls) == 0 {
		return nil
	}

	texts := make([]string, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.fanOut)
	for i, u := range urls {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			text, err := b.fetcher.Fetch(gctx, u)
			if err != nil {
				slog.WarnContext(gctx, "seed fetch failed, unit unavailable", "url", u, "error", err)
				return nil
			}
			texts[i] = text
			return nil
		})
	}
	_ = g.Wait()

	var units []SourceUnit
	for i, u := range urls {
		if strings.TrimSpace(texts[i]) != "" {
			units = append(units, SourceUnit{Identifier: u, Text: texts[i]})
		}
	}
	return units
}

func curatedURLs(topic string) []string {
	fields := strings.Fields(strings.ToLower(topic))
	if len(fields) == 0 {
		return nil
	}
	return defaultSeedURLs[fields[0]]
}

func syntheticUnit(topic string) SourceUnit {
	return SourceUnit{
		Identifier: FallbackIdentifier,
		Text: fmt.Sprintf(
			"This is a fallback paragraph about %s. Focus on real-world constraints, scaling, security, and maintainability.",
			topic),
	}
}
