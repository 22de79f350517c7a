package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// quantityPatterns are tried in order; the first one that captures a
// positive number decides the quantity.
var quantityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\s*x\b`), // 2x ribs
	regexp.MustCompile(`(?i)\bx\s*(\d+)`), // ribs x2
	regexp.MustCompile(`(\d+)\s*-`),       // 2- ribs
	regexp.MustCompile(`-\s*(\d+)`),       // ribs -2
	regexp.MustCompile(`^(\d+)\s+`),       // 2 ribs
	regexp.MustCompile(`\s+(\d+)$`),       // ribs 2
}

var wordNumbers = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,

	"isa": 1, "dalawa": 2, "tatlo": 3, "apat": 4, "lima": 5,
	"anim": 6, "pito": 7, "walo": 8, "siyam": 9, "sampu": 10,
}

var wordNumberPattern = regexp.MustCompile(
	`(?i)\b(one|two|three|four|five|six|seven|eight|nine|ten|isa|dalawa|tatlo|apat|lima|anim|pito|walo|siyam|sampu)\b`,
)

// ExtractQuantity finds how many units a line orders. Numeric forms win over
// spelled-out numbers; a line with neither orders one.
func ExtractQuantity(text string) int {
	text = strings.TrimSpace(text)

	for _, re := range quantityPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 {
			continue
		}
		return n
	}

	if m := wordNumberPattern.FindStringSubmatch(text); m != nil {
		return wordNumbers[strings.ToLower(m[1])]
	}

	return 1
}

// StripQuantity removes every quantity expression from text and returns what
// is left as a search phrase.
func StripQuantity(text string) string {
	text = strings.TrimSpace(text)
	for _, re := range quantityPatterns {
		text = strings.TrimSpace(re.ReplaceAllString(text, " "))
	}
	text = wordNumberPattern.ReplaceAllString(text, " ")
	text = strings.Join(strings.Fields(text), " ")
	return strings.Trim(text, " -,.:;")
}
