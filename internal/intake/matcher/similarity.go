package matcher

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/antzucaro/matchr"
)

// Similarity scores two strings from 0 (nothing in common) to 100 (equal,
// ignoring case) using Levenshtein distance normalized by the longer length.
// Two empty strings score 100. The score is symmetric.
func Similarity(a, b string) int {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if maxLen == 0 {
		return 100
	}

	distance := matchr.Levenshtein(a, b)
	return int(math.Round(100 * float64(maxLen-distance) / float64(maxLen)))
}
