// Package moderation flags blocked terms in visitor messages.
package moderation

import (
	"log/slog"
	"strings"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
)

const DefaultCensorChar = '*'

// Moderator matches a fixed list of blocked terms with an Aho-Corasick automaton.
// Matching ignores case, punctuation, spacing and common leet speak, so "v.1.4.g.r.a" still matches.
type Moderator struct {
	matcher    *goahocorasick.Machine
	censorChar rune
	log        *slog.Logger
}

type textMapping struct {
	normalized []rune
	origIdx    []int
}

// NewModerator builds the automaton from terms. Blank terms are ignored;
// a moderator without terms never matches.
func NewModerator(terms []string, censorChar rune, log *slog.Logger) (*Moderator, error) {
	patterns := make([][]rune, 0, len(terms))
	for _, term := range terms {
		if p := normalizeRunes([]rune(strings.TrimSpace(term))); len(p) > 0 {
			patterns = append(patterns, p)
		}
	}

	mod := &Moderator{censorChar: censorChar, log: log}
	if len(patterns) == 0 {
		return mod, nil
	}
	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	mod.matcher = m
	log.Debug("Moderator ready", "terms", len(patterns))
	return mod, nil
}

// Censor replaces every blocked term by the censor char, keeping the surrounding text,
// and returns the normalized terms that were found.
func (m *Moderator) Censor(original string) (string, []string) {
	if m.matcher == nil {
		return original, nil
	}
	mapping := normalize(original)
	if len(mapping.normalized) == 0 {
		return original, nil
	}
	spans := m.matcher.MultiPatternSearch(mapping.normalized, false)
	if len(spans) == 0 {
		return original, nil
	}

	origRunes := []rune(original)
	found := make([]string, 0, len(spans))
	for _, span := range spans {
		start := span.Pos
		end := start + len(span.Word)
		if start < 0 || end > len(mapping.origIdx) {
			continue
		}
		for i := mapping.origIdx[start]; i <= mapping.origIdx[end-1]; i++ {
			origRunes[i] = m.censorChar
		}
		found = append(found, string(span.Word))
	}
	return string(origRunes), found
}

// Contains reports whether text holds at least one blocked term.
func (m *Moderator) Contains(text string) bool {
	_, found := m.Censor(text)
	return len(found) > 0
}

func normalize(input string) textMapping {
	origRunes := []rune(input)
	mapping := textMapping{
		normalized: make([]rune, 0, len(origRunes)),
		origIdx:    make([]int, 0, len(origRunes)),
	}
	for i, r := range origRunes {
		clean := simplifyRune(r)
		if isNoise(clean) {
			continue
		}
		mapping.normalized = append(mapping.normalized, unicode.ToLower(clean))
		mapping.origIdx = append(mapping.origIdx, i)
	}
	return mapping
}

func normalizeRunes(input []rune) []rune {
	out := make([]rune, 0, len(input))
	for _, r := range input {
		clean := simplifyRune(r)
		if isNoise(clean) {
			continue
		}
		out = append(out, unicode.ToLower(clean))
	}
	return out
}

// simplifyRune maps leet speak characters back to letters.
func simplifyRune(r rune) rune {
	switch r {
	case '4', '@':
		return 'a'
	case '3', '€':
		return 'e'
	case '1', '!', '|':
		return 'i'
	case '0':
		return 'o'
	case '5', '$':
		return 's'
	default:
		return r
	}
}

func isNoise(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r)
}
