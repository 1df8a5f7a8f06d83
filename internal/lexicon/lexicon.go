// Package lexicon loads and queries the profanity wordlist: single words
// and two-word phrases, case- and punctuation-folded via Normalize.
package lexicon

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileFormat is the on-disk YAML shape.
type fileFormat struct {
	Words   []string `yaml:"words"`
	Phrases []string `yaml:"phrases"`
}

// Set is an immutable, normalized lookup table. The zero value is an empty
// set (Contains always false).
type Set struct {
	entries map[string]struct{}
}

// Load reads a YAML lexicon file of the form:
//
//	words: ["damn", "heck"]
//	phrases: ["mother trucker"]
//
// Each phrase's words are joined without a separator before normalization,
// since that is how the censorship worker probes adjacent-word pairs
// (normalize(w_i) + normalize(w_i+1)).
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lexicon: read %q: %w", path, err)
	}
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("lexicon: parse %q: %w", path, err)
	}
	return FromWords(append(f.Words, f.Phrases...)), nil
}

// FromWords builds a Set directly from a list of words/phrases, normalizing
// each (phrases with internal spaces are normalized per-word and joined, so
// they match the worker's adjacent-pair probe). Mainly used by tests.
func FromWords(raw []string) *Set {
	entries := make(map[string]struct{}, len(raw))
	for _, w := range raw {
		entries[normalizeEntry(w)] = struct{}{}
	}
	return &Set{entries: entries}
}

func normalizeEntry(w string) string {
	var joined string
	start := 0
	for i := 0; i <= len(w); i++ {
		if i == len(w) || w[i] == ' ' {
			joined += Normalize(w[start:i])
			start = i + 1
		}
	}
	return joined
}

// Contains reports whether normalized is a known single word or two-word
// phrase. normalized must already be passed through Normalize (or be the
// concatenation of two normalized words).
func (s *Set) Contains(normalized string) bool {
	if s == nil || normalized == "" {
		return false
	}
	_, ok := s.entries[normalized]
	return ok
}
