// Package parser turns a pasted chat message into a structured order draft:
// who is ordering and which menu items, in what quantities, they most likely
// mean. The draft is meant for a person to review; nothing here fails on
// messy input.
package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/kiwari-pos/orderdesk/internal/enum"
	"github.com/kiwari-pos/orderdesk/internal/intake/matcher"
	"github.com/kiwari-pos/orderdesk/internal/intake/normalizer"
	"github.com/kiwari-pos/orderdesk/internal/menu"
)

const (
	maxAlternatives = 3
	minPhraseLen    = 2
)

// ParsedOrder is the draft produced from one message.
type ParsedOrder struct {
	Items    []LineItem   `json:"items"`
	Customer CustomerInfo `json:"customer_info"`
	RawText  string       `json:"raw_text"`
}

// LineItem is one message line read as an order line. Confidence is "none"
// exactly when no candidate was found; such lines are kept so the reviewer
// can resolve them.
type LineItem struct {
	RawLine       string              `json:"raw_line"`
	Quantity      int                 `json:"quantity"`
	Candidates    []matcher.Candidate `json:"match_candidates"`
	Confidence    string              `json:"confidence"`
	SelectedMatch *matcher.Candidate  `json:"selected_match,omitempty"`
}

// Option configures a Parser.
type Option func(*Parser)

// WithNormalizer sets the term table used on order lines.
func WithNormalizer(n *normalizer.Normalizer) Option {
	return func(p *Parser) {
		p.normalizer = n
	}
}

// WithThreshold sets the minimum match score. Default: matcher.DefaultThreshold.
func WithThreshold(threshold int) Option {
	return func(p *Parser) {
		p.threshold = threshold
	}
}

// Parser holds the configuration for parsing messages. It keeps no state
// between calls and is safe for concurrent use.
type Parser struct {
	normalizer *normalizer.Normalizer
	threshold  int
}

// New creates a Parser using the built-in term table unless overridden.
func New(opts ...Option) *Parser {
	p := &Parser{
		normalizer: normalizer.Default(),
		threshold:  matcher.DefaultThreshold,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Threshold reports the minimum match score in use.
func (p *Parser) Threshold() int {
	return p.threshold
}

// With returns a copy of p with opts applied on top. p is left unchanged.
func (p *Parser) With(opts ...Option) *Parser {
	c := *p
	for _, o := range opts {
		o(&c)
	}
	return &c
}

var defaultParser = New()

// ParseOrder parses text against available with the default Parser.
func ParseOrder(text string, available []menu.Item) ParsedOrder {
	return defaultParser.Parse(text, available)
}

// Parse reads customer details from the whole message, then matches every
// remaining line against the available menu.
func (p *Parser) Parse(text string, available []menu.Item) ParsedOrder {
	result := ParsedOrder{
		Items:    make([]LineItem, 0),
		Customer: ExtractCustomerInfo(text),
		RawText:  text,
	}

	m := matcher.New(available, matcher.WithThreshold(p.threshold))

	for i, line := range splitLines(text) {
		if consumedByCustomer(i, line, result.Customer) {
			continue
		}

		normalized := p.normalizer.Normalize(line)
		qty := ExtractQuantity(normalized)
		phrase := StripQuantity(normalized)
		if utf8.RuneCountInString(phrase) < minPhraseLen {
			continue
		}

		result.Items = append(result.Items, newLineItem(line, qty, m.Match(phrase)))
	}

	return result
}

func newLineItem(raw string, qty int, candidates []matcher.Candidate) LineItem {
	item := LineItem{
		RawLine:    raw,
		Quantity:   qty,
		Candidates: []matcher.Candidate{},
		Confidence: enum.ConfidenceNone,
	}
	if len(candidates) == 0 {
		return item
	}

	if len(candidates) > maxAlternatives {
		candidates = candidates[:maxAlternatives]
	}
	item.Candidates = candidates
	item.Confidence = candidates[0].Confidence
	top := candidates[0]
	item.SelectedMatch = &top
	return item
}

// consumedByCustomer reports whether a line already supplied customer
// details. The unit check is a plain substring test, so a line that merely
// contains the unit digits is skipped too.
func consumedByCustomer(index int, line string, c CustomerInfo) bool {
	// The name only ever comes from the first line.
	if index == 0 && c.Name != "" {
		return true
	}
	if c.Phone != "" && (strings.Contains(line, c.Phone) || strings.Contains(stripPhone(line), c.Phone)) {
		return true
	}
	if c.UnitNumber != "" && strings.Contains(line, c.UnitNumber) {
		return true
	}
	return false
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
