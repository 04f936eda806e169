package generate

import (
	"log/slog"

	"arty/backend/internal/nlp"
)

type TermCategory string

const (
	TermNoun      TermCategory = "noun"
	TermAdjective TermCategory = "adjective"
)

// SalientTerm is a content word judged likely to anchor a useful question.
type SalientTerm struct {
	Surface  string
	Category TermCategory
}

const (
	maxTerms      = 3
	minTermLength = 4
)

// ExtractTerms picks up to three noun or adjective tokens from a paragraph,
// in strict first-occurrence order with duplicates removed. Leading terms
// win over frequent ones: early mentions in a paragraph tend to name what
// the paragraph is about.
func (s *Synthesizer) ExtractTerms(paragraph string) []SalientTerm {
	words, err := s.tagger.Tag(paragraph)
	if err != nil {
		slog.Warn("tagging failed, treating paragraph as term-free", "error", err)
		return nil
	}

	seen := make(map[string]bool)
	var terms []SalientTerm
	for _, w := range words {
		var category TermCategory
		switch {
		case nlp.IsNoun(w.Tag):
			category = TermNoun
		case nlp.IsAdjective(w.Tag):
			category = TermAdjective
		default:
			continue
		}
		if len(w.Text) < minTermLength || seen[w.Text] {
			continue
		}
		seen[w.Text] = true
		terms = append(terms, SalientTerm{Surface: w.Text, Category: category})
		if len(terms) == maxTerms {
			break
		}
	}
	return terms
}
