package generate

import (
	"fmt"
	"math/rand"
	"strings"
)

const (
	scenarioTemplate = "In a production scenario involving %s, what are the top non-obvious trade-offs you would evaluate, and how would you mitigate the top two risks? (Tie it into %s context.)"
	genericTemplate  = "Describe an advanced challenge in %s that can arise from the technology discussed in the source, and propose a step-by-step resolution strategy."
)

// paragraphWindow bounds the paragraph pick to the start of the text.
// Leading paragraphs of articles carry the densest topic-relevant nouns.
const paragraphWindow = 5

// PickParagraph selects one paragraph uniformly at random from among the
// first few non-blank newline-delimited paragraphs, or the whole text when
// it has none.
func PickParagraph(text string, rng *rand.Rand) string {
	var paras []string
	for _, p := range strings.Split(text, "\n") {
		if strings.TrimSpace(p) != "" {
			paras = append(paras, p)
		}
	}
	if len(paras) == 0 {
		return text
	}
	if len(paras) > paragraphWindow {
		paras = paras[:paragraphWindow]
	}
	return paras[rng.Intn(len(paras))]
}

// Compose turns the salient terms of a paragraph into a scenario-style
// question. With no usable terms it falls back to a generic template so a
// question is always produced.
func Compose(topic string, terms []SalientTerm) string {
	if len(terms) == 0 {
		return fmt.Sprintf(genericTemplate, topic)
	}

	surfaces := make([]string, 0, 2)
	for _, term := range terms[:min(2, len(terms))] {
		surfaces = append(surfaces, term.Surface)
	}
	return fmt.Sprintf(scenarioTemplate, strings.Join(surfaces, ", "), topic)
}
