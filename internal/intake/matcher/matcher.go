// Package matcher ranks menu items against a free-text search phrase.
//
// Every item is compared field by field (full name, name words, description
// words, tags) with an edit-distance similarity. An item contributes at most
// one candidate, carrying whichever field scored best. Candidates under the
// threshold are dropped and the rest are returned best-first.
package matcher

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/kiwari-pos/orderdesk/internal/enum"
	"github.com/kiwari-pos/orderdesk/internal/menu"
)

const (
	// DefaultThreshold is the minimum score a candidate needs to be returned.
	DefaultThreshold = 50

	highScore   = 85
	mediumScore = 70

	minTokenLen = 2
)

// Candidate is one menu item proposed for a search phrase.
type Candidate struct {
	Item        menu.Item `json:"menu_item"`
	Score       int       `json:"score"`
	Confidence  string    `json:"confidence"`
	MatchedOn   string    `json:"matched_on"`
	MatchedText string    `json:"matched_text"`
}

// field is a piece of item text the query is scored against.
type field struct {
	kind string
	text string
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithThreshold sets the minimum score for a candidate. Default: 50.
func WithThreshold(threshold int) Option {
	return func(m *Matcher) {
		m.threshold = threshold
	}
}

// Matcher scores search phrases against a fixed menu. It is read-only after
// construction and safe for concurrent use.
type Matcher struct {
	items     []menu.Item
	fields    [][]field // comparison fields per item, in priority order
	threshold int
}

// New creates a Matcher with the comparison fields of every item prepared up
// front.
func New(items []menu.Item, opts ...Option) *Matcher {
	m := &Matcher{
		items:     items,
		fields:    make([][]field, len(items)),
		threshold: DefaultThreshold,
	}
	for _, o := range opts {
		o(m)
	}
	for i, item := range items {
		m.fields[i] = itemFields(item)
	}
	return m
}

// FindMatches ranks items against query in one call. See Matcher.Match.
func FindMatches(query string, items []menu.Item, threshold int) []Candidate {
	return New(items, WithThreshold(threshold)).Match(query)
}

// Match returns the candidates for query, best score first. Items with equal
// scores keep their menu order. Queries shorter than two characters match
// nothing.
func (m *Matcher) Match(query string) []Candidate {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minTokenLen || len(m.items) == 0 {
		return nil
	}

	var candidates []Candidate
	for i, item := range m.items {
		best, ok := bestField(query, m.fields[i])
		if !ok || best.Score < m.threshold {
			continue
		}
		best.Item = item
		best.Confidence = ConfidenceFor(best.Score)
		candidates = append(candidates, best)
	}

	slices.SortStableFunc(candidates, func(a, b Candidate) int {
		return b.Score - a.Score
	})
	return candidates
}

// ConfidenceFor buckets a similarity score.
func ConfidenceFor(score int) string {
	switch {
	case score >= highScore:
		return enum.ConfidenceHigh
	case score >= mediumScore:
		return enum.ConfidenceMedium
	default:
		return enum.ConfidenceLow
	}
}

// bestField folds query over fields and keeps the first highest score.
func bestField(query string, fields []field) (Candidate, bool) {
	var best Candidate
	found := false
	for _, f := range fields {
		score := Similarity(query, f.text)
		if !found || score > best.Score {
			best = Candidate{Score: score, MatchedOn: f.kind, MatchedText: f.text}
			found = true
		}
	}
	return best, found
}

func itemFields(item menu.Item) []field {
	var fields []field
	if name := strings.TrimSpace(item.Name); name != "" {
		fields = append(fields, field{kind: enum.MatchedOnName, text: name})
	}
	for _, tok := range strings.Fields(item.Name) {
		if utf8.RuneCountInString(tok) >= minTokenLen {
			fields = append(fields, field{kind: enum.MatchedOnName, text: tok})
		}
	}
	for _, tok := range strings.Fields(item.Description) {
		if utf8.RuneCountInString(tok) >= minTokenLen {
			fields = append(fields, field{kind: enum.MatchedOnDescription, text: tok})
		}
	}
	for _, tag := range item.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			fields = append(fields, field{kind: enum.MatchedOnTag, text: tag})
		}
	}
	return fields
}
