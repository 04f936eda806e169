package generate

import (
	"context"
	"errors"
	"strings"
	"sync"

	"arty/backend/internal/nlp"
)

// mapTagger splits on whitespace and tags each token from a fixed map.
// Unknown tokens get the filler tag "IN" so they are never treated as
// content words.
type mapTagger struct {
	tags map[string]string
	err  error
}

func (t *mapTagger) Tag(text string) ([]nlp.TaggedWord, error) {
	if t.err != nil {
		return nil, t.err
	}
	var words []nlp.TaggedWord
	for _, tok := range strings.Fields(text) {
		tag, ok := t.tags[tok]
		if !ok {
			tag = "IN"
		}
		words = append(words, nlp.TaggedWord{Text: tok, Tag: tag})
	}
	return words, nil
}

// periodSplitter splits on ". " keeping the terminal period on each sentence.
type periodSplitter struct {
	err error
}

func (s *periodSplitter) Split(text string) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	parts := strings.SplitAfter(text, ". ")
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out, nil
}

type mapLexicon struct {
	entries map[string][]string
}

func (l *mapLexicon) Lookup(word string) []string {
	return l.entries[strings.ToLower(word)]
}

// emptyLexicon never offers a synonym, which keeps paraphrased text
// token-identical to the input.
type emptyLexicon struct{}

func (emptyLexicon) Lookup(string) []string { return nil }

// stubFetcher serves canned page texts per URL and records the requests it
// saw. URLs without an entry fail.
type stubFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	calls []string
}

func (f *stubFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, url)
	f.mu.Unlock()

	text, ok := f.pages[url]
	if !ok {
		return "", errors.New("stub: unreachable")
	}
	return text, nil
}

// failingFetcher fails every fetch.
type failingFetcher struct{}

func (failingFetcher) Fetch(context.Context, string) (string, error) {
	return "", errors.New("stub: network down")
}

// recordingStore collects every flushed batch. failAt makes the Nth call
// (1-based) fail.
type recordingStore struct {
	mu      sync.Mutex
	batches [][]Question
	failAt  int
}

func (s *recordingStore) InsertBatch(_ context.Context, records []Question, _, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAt > 0 && len(s.batches)+1 == s.failAt {
		return errors.New("stub: insert failed")
	}
	batch := make([]Question, len(records))
	copy(batch, records)
	s.batches = append(s.batches, batch)
	return nil
}

func (s *recordingStore) total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, b := range s.batches {
		n += len(b)
	}
	return n
}

func newPlainSynthesizer() *Synthesizer {
	return NewSynthesizer(&mapTagger{tags: map[string]string{}}, &periodSplitter{}, emptyLexicon{})
}
