package lexicon

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed synonyms.yaml
var defaultResource []byte

// Lexicon is a read-only synonym lookup table. It is loaded once at startup
// and safely shared across goroutines.
type Lexicon struct {
	entries map[string][]string
}

// Load builds a Lexicon from the YAML resource at path. An empty path loads
// the embedded default resource. A load failure is meant to be treated as a
// startup-time fatal error by the caller.
func Load(path string) (*Lexicon, error) {
	data := defaultResource
	if path != "" {
		b, err := os.ReadFile(filepath.Clean(path)) // #nosec G304 -- path is from application config, not user input
		if err != nil {
			return nil, fmt.Errorf("failed to read lexicon resource: %w", err)
		}
		data = b
	}
	return parse(data)
}

func parse(data []byte) (*Lexicon, error) {
	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon resource: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("lexicon resource is empty")
	}

	entries := make(map[string][]string, len(raw))
	for word, syns := range raw {
		key := strings.ToLower(strings.TrimSpace(word))
		if key == "" {
			continue
		}
		cleaned := make([]string, 0, len(syns))
		for _, s := range syns {
			// Multiword lemmas may be written with underscores.
			s = strings.ReplaceAll(strings.TrimSpace(s), "_", " ")
			if s != "" {
				cleaned = append(cleaned, s)
			}
		}
		if len(cleaned) > 0 {
			entries[key] = cleaned
		}
	}
	return &Lexicon{entries: entries}, nil
}

// Lookup returns the synonym candidates for a word, or nil when the word is
// not in the lexicon. Lookup is case-insensitive.
func (l *Lexicon) Lookup(word string) []string {
	return l.entries[strings.ToLower(word)]
}

// Len returns the number of head words in the lexicon.
func (l *Lexicon) Len() int {
	return len(l.entries)
}
