package palette

import (
	"strings"
	"unicode"
)

const (
	baseScore         = 100
	consecutiveBonus  = 20
	boundaryBonus     = 15
	firstRuneBonus    = 25
	exactPrefixBonus  = 50
	shortTextBonusMax = 20
	gapPenalty        = 2
)

// match scores text against a lowercased query. Every query rune must
// appear in text in order; the returned indices are rune offsets of the
// matched runes. A zero score means no match.
func match(query []rune, text string) (int, []int) {
	if len(query) == 0 || text == "" {
		return 0, nil
	}

	original := []rune(text)
	lower := []rune(strings.ToLower(text))

	matches := make([]int, 0, len(query))
	qi := 0
	for i := 0; i < len(lower) && qi < len(query); i++ {
		if lower[i] == query[qi] {
			matches = append(matches, i)
			qi++
		}
	}
	if qi != len(query) {
		return 0, nil
	}
	return score(query, original, lower, matches), matches
}

func score(query, original, lower []rune, matches []int) int {
	s := baseScore

	for i := 1; i < len(matches); i++ {
		if matches[i] == matches[i-1]+1 {
			s += consecutiveBonus
		}
	}
	for _, idx := range matches {
		if isBoundary(original, idx) {
			s += boundaryBonus
		}
	}

	if matches[0] == 0 {
		s += firstRuneBonus
	} else {
		s -= matches[0]
	}
	if gap := matches[len(matches)-1] - matches[0] - len(matches) + 1; gap > 0 {
		s -= gap * gapPenalty
	}
	if len(lower) < shortTextBonusMax {
		s += shortTextBonusMax - len(lower)
	}
	if hasPrefix(lower, query) {
		s += exactPrefixBonus
	}

	return max(s, 1)
}

// isBoundary reports whether the rune at idx starts a word: the first
// rune, one after a separator, or an upper-case rune after a lower-case one.
func isBoundary(runes []rune, idx int) bool {
	if idx == 0 {
		return true
	}
	if idx >= len(runes) {
		return false
	}
	prev, cur := runes[idx-1], runes[idx]
	if unicode.IsSpace(prev) || unicode.IsPunct(prev) {
		return true
	}
	return unicode.IsLower(prev) && unicode.IsUpper(cur)
}

func hasPrefix(text, prefix []rune) bool {
	if len(text) < len(prefix) {
		return false
	}
	for i, r := range prefix {
		if text[i] != r {
			return false
		}
	}
	return true
}
