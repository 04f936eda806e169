package generate

import (
	"math/rand"
	"strings"

	"arty/backend/internal/nlp"
)

const (
	substitutionRate = 0.28
	shuffleRate      = 0.30
)

// Paraphrase rewrites text by substituting some nouns and adjectives with
// lexicon synonyms and occasionally reordering whole sentences. Substitution
// is deliberately conservative to avoid distorting factual content.
//
// Sentences are reassembled by joining tokens with single spaces, so original
// punctuation adjacency is not preserved exactly. Randomness comes entirely
// from rng, which makes output reproducible for a fixed seed.
func (s *Synthesizer) Paraphrase(text string, rng *rand.Rand) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	sentences, err := s.splitter.Split(text)
	if err != nil || len(sentences) == 0 {
		sentences = []string{text}
	}

	out := make([]string, 0, len(sentences))
	for _, sentence := range sentences {
		out = append(out, s.paraphraseSentence(sentence, rng))
	}

	if len(out) > 1 && rng.Float64() < shuffleRate {
		rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	}
	return strings.Join(out, " ")
}

// paraphraseSentence substitutes content words only. Words tagged outside
// the noun and adjective categories are never changed.
func (s *Synthesizer) paraphraseSentence(sentence string, rng *rand.Rand) string {
	words, err := s.tagger.Tag(sentence)
	if err != nil || len(words) == 0 {
		return sentence
	}

	parts := make([]string, 0, len(words))
	for _, w := range words {
		surface := w.Text
		if (nlp.IsNoun(w.Tag) || nlp.IsAdjective(w.Tag)) && rng.Float64() < substitutionRate {
			if candidate := s.pickSynonym(surface, rng); candidate != "" {
				surface = candidate
			}
		}
		parts = append(parts, surface)
	}
	return strings.Join(parts, " ")
}

// pickSynonym returns one synonym chosen uniformly at random among the
// candidates whose surface form differs from the word case-insensitively,
// or "" when no such candidate exists.
func (s *Synthesizer) pickSynonym(word string, rng *rand.Rand) string {
	var candidates []string
	for _, c := range s.lexicon.Lookup(word) {
		if !strings.EqualFold(c, word) {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return ""
	}
	return candidates[rng.Intn(len(candidates))]
}
