package parser

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kiwari-pos/orderdesk/internal/enum"
)

const (
	maxNameLineLen = 40
	maxNameLen     = 29
)

// CustomerInfo is what could be read about the customer from a message.
// Fields that were not found are empty.
type CustomerInfo struct {
	Name       string `json:"name,omitempty"`
	Phone      string `json:"phone,omitempty"`
	UnitNumber string `json:"unit_number,omitempty"`
	Building   string `json:"building,omitempty"`
	Floor      string `json:"floor,omitempty"`
	Confidence string `json:"confidence"`
}

var nameLabelPattern = regexp.MustCompile(`(?i)^(?:name|customer)\s*:\s*`)

// Patterns are ordered; the first match wins. Separators are spaces or tabs
// only so a match never runs across lines. Keywords must be whole words.
var (
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:\+971|00971|\b971)[ \t-]?5\d(?:[ \t-]?\d){7}\b`),     // +971 50 123 4567
		regexp.MustCompile(`\b05\d(?:[ \t-]?\d){7}\b`),                             // 050 123 4567
		regexp.MustCompile(`(?:\+\d{1,3}[ \t-]?|\b)0?\d{2,3}(?:[ \t-]?\d){7,9}\b`), // +63 917 123 4567, 09171234567
	}

	unitPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:unit|apt|apartment|room|flat)\.?[ \t]*(?:no\.?|#)?[ \t]*(\d+[a-z]?)\b`),
		regexp.MustCompile(`#[ \t]*(\d{1,5})\b`),
	}

	buildingPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:building|bldg|tower)\b\.?[ \t]*[:#]?[ \t]*([a-z0-9][a-z0-9-]*)`),
		regexp.MustCompile(`(?i)\b([a-z0-9][a-z0-9-]*)[ \t]+(?:tower|building)\b`),
	}

	floorPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bfloor[ \t]*#?[ \t]*(\d+)`),
		regexp.MustCompile(`(?i)\b(\d+)(?:st|nd|rd|th)?[ \t]*(?:floor|flr|fl)\b`),
		regexp.MustCompile(`(?i)\b(?:flr|fl)\b\.?[ \t]*(\d+)\b`),
	}
)

// ExtractCustomerInfo reads customer details out of a whole message.
//
// Confidence starts low, becomes at least medium once a name or phone is
// found and high once a unit or building is found. Floor does not count.
func ExtractCustomerInfo(text string) CustomerInfo {
	info := CustomerInfo{Confidence: enum.ConfidenceLow}

	if name, ok := nameFromFirstLine(text); ok {
		info.Name = name
		info.raise(enum.ConfidenceMedium)
	}

	if m := firstMatch(phonePatterns, text); m != "" {
		info.Phone = stripPhone(m)
		info.raise(enum.ConfidenceMedium)
	}

	if m := firstSubmatch(unitPatterns, text); m != "" {
		info.UnitNumber = m
		info.raise(enum.ConfidenceHigh)
	}

	if m := firstSubmatch(buildingPatterns, text); m != "" {
		info.Building = m
		info.raise(enum.ConfidenceHigh)
	}

	info.Floor = firstSubmatch(floorPatterns, text)

	return info
}

func (c *CustomerInfo) raise(level string) {
	if enum.ConfidenceRank(level) > enum.ConfidenceRank(c.Confidence) {
		c.Confidence = level
	}
}

// nameFromFirstLine treats a short first line without digits as the
// customer's name, minus an optional "name:" or "customer:" label.
func nameFromFirstLine(text string) (string, bool) {
	first := firstLine(text)
	if first == "" || utf8.RuneCountInString(first) >= maxNameLineLen {
		return "", false
	}
	if strings.IndexFunc(first, unicode.IsDigit) >= 0 {
		return "", false
	}

	name := strings.TrimSpace(nameLabelPattern.ReplaceAllString(first, ""))
	if n := utf8.RuneCountInString(name); n < 1 || n > maxNameLen {
		return "", false
	}
	return name, true
}

func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

func firstMatch(patterns []*regexp.Regexp, text string) string {
	for _, re := range patterns {
		if m := re.FindString(text); m != "" {
			return m
		}
	}
	return ""
}

func firstSubmatch(patterns []*regexp.Regexp, text string) string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(text); m != nil && m[1] != "" {
			return m[1]
		}
	}
	return ""
}

func stripPhone(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' {
			return -1
		}
		return r
	}, s)
}
