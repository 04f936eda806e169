package generate

import (
	"context"
	"errors"
)

// Pair is a study question together with a paraphrased answer block drawn
// from the same source paragraph. Pairs are composed on demand and never
// persisted.
type Pair struct {
	Topic            string `json:"topic"`
	Question         string `json:"question"`
	Answer           string `json:"answer"`
	SourceIdentifier string `json:"source_url"`
}

// answerExcerptChars bounds the source excerpt an answer paraphrases.
const answerExcerptChars = 400

// Pairs composes count question/answer pairs for a topic. The corpus is
// built through the same fallback chain as question generation; the answer
// is a paraphrase of the leading excerpt of the picked paragraph.
func (g *Generator) Pairs(ctx context.Context, topic string, count int, seedURLs []string) ([]Pair, error) {
	corpus := g.corpus.Build(ctx, topic, seedURLs)
	if len(corpus) == 0 {
		return nil, errors.New("seed corpus is empty")
	}

	rng := g.newRand()
	pairs := make([]Pair, 0, count)
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		unit := corpus[rng.Intn(len(corpus))]
		paragraph := PickParagraph(unit.Text, rng)
		terms := g.synth.ExtractTerms(paragraph)

		pairs = append(pairs, Pair{
			Topic:            topic,
			Question:         Compose(topic, terms),
			Answer:           g.synth.Paraphrase(excerpt(paragraph, answerExcerptChars), rng),
			SourceIdentifier: unit.Identifier,
		})
	}
	return pairs, nil
}

// excerpt cuts text to at most maxChars characters on a rune boundary.
func excerpt(text string, maxChars int) string {
	if len(text) <= maxChars {
		return text
	}
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}
	return string(runes[:maxChars])
}
