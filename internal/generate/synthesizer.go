package generate

import (
	"arty/backend/internal/nlp"
)

// SynonymSource provides synonym candidates for a single word.
type SynonymSource interface {
	Lookup(word string) []string
}

// Synthesizer holds the read-only language services the pipeline needs:
// a part-of-speech tagger, a sentence splitter, and a synonym lexicon.
// All three are built once at startup and shared across requests.
type Synthesizer struct {
	tagger   nlp.Tagger
	splitter nlp.Splitter
	lexicon  SynonymSource
}

func NewSynthesizer(tagger nlp.Tagger, splitter nlp.Splitter, lexicon SynonymSource) *Synthesizer {
	return &Synthesizer{tagger: tagger, splitter: splitter, lexicon: lexicon}
}
