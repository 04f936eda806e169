package nlp

import (
	"strings"

	prose "github.com/jdkato/prose/v2"
)

// TaggedWord is a single token paired with its Penn Treebank part-of-speech tag.
type TaggedWord struct {
	Text string
	Tag  string
}

// Tagger tokenizes text and assigns a part-of-speech tag to every token.
type Tagger interface {
	Tag(text string) ([]TaggedWord, error)
}

// Splitter segments text into sentences.
type Splitter interface {
	Split(text string) ([]string, error)
}

// IsNoun reports whether the tag is any noun form (NN, NNS, NNP, NNPS).
func IsNoun(tag string) bool {
	return strings.HasPrefix(tag, "NN")
}

// IsAdjective reports whether the tag is an adjective form (JJ, JJR, JJS).
func IsAdjective(tag string) bool {
	return strings.HasPrefix(tag, "JJ")
}

// ProseTagger tags tokens using the prose model. The model data is compiled
// into the binary, so construction cannot fail and the tagger is safe to
// share across goroutines.
type ProseTagger struct{}

func NewProseTagger() *ProseTagger {
	return &ProseTagger{}
}

func (t *ProseTagger) Tag(text string) ([]TaggedWord, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	doc, err := prose.NewDocument(text,
		prose.WithExtraction(false),
		prose.WithSegmentation(false),
	)
	if err != nil {
		return nil, err
	}
	tokens := doc.Tokens()
	words := make([]TaggedWord, 0, len(tokens))
	for _, tok := range tokens {
		words = append(words, TaggedWord{Text: tok.Text, Tag: tok.Tag})
	}
	return words, nil
}

// ProseSplitter segments text into sentences using the prose model.
type ProseSplitter struct{}

func NewProseSplitter() *ProseSplitter {
	return &ProseSplitter{}
}

func (s *ProseSplitter) Split(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	doc, err := prose.NewDocument(text,
		prose.WithExtraction(false),
		prose.WithTagging(false),
	)
	if err != nil {
		return nil, err
	}
	sents := doc.Sentences()
	out := make([]string, 0, len(sents))
	for _, sent := range sents {
		out = append(out, sent.Text)
	}
	return out, nil
}
