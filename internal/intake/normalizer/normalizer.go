// Package normalizer rewrites regional-language words in typed orders into
// their English equivalents so one matcher can serve both languages.
package normalizer

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
	"gopkg.in/yaml.v3"
)

// wordPattern matches runs of word characters, Unicode letters included.
// A term only replaces a whole run.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Normalizer replaces whole words found in its term table. The table is
// fixed at construction; a Normalizer is safe for concurrent use.
type Normalizer struct {
	terms map[string]string
}

// New creates a Normalizer for terms. Keys are matched case-insensitively
// and without accents.
func New(terms map[string]string) *Normalizer {
	t := make(map[string]string, len(terms))
	for k, v := range terms {
		k = foldKey(k)
		if k == "" {
			continue
		}
		t[k] = v
	}
	return &Normalizer{terms: t}
}

// Default returns a Normalizer over the built-in Tagalog table.
func Default() *Normalizer {
	return New(defaultTerms)
}

// Normalize returns text with every known word replaced by its English
// equivalent. Unknown words, spacing and punctuation are left as they are.
func (n *Normalizer) Normalize(text string) string {
	if len(n.terms) == 0 {
		return text
	}
	return wordPattern.ReplaceAllStringFunc(text, func(word string) string {
		if repl, ok := n.terms[foldKey(word)]; ok {
			return repl
		}
		return word
	})
}

// Len reports the number of terms in the table.
func (n *Normalizer) Len() int {
	return len(n.terms)
}

func foldKey(s string) string {
	return strings.ToLower(unidecode.Unidecode(strings.TrimSpace(s)))
}

type termFile struct {
	Terms map[string]string `yaml:"terms"`
}

// LoadTerms decodes extra terms from YAML:
//
//	terms:
//	  lechon: roast pork
//	  pansit: noodles
//
// Keys must be single words.
func LoadTerms(r io.Reader) (map[string]string, error) {
	var doc termFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("decode terms: %w", err)
	}
	for k, v := range doc.Terms {
		if strings.TrimSpace(k) == "" || strings.TrimSpace(v) == "" {
			return nil, fmt.Errorf("term %q: key and value must be non-empty", k)
		}
		if key := strings.TrimSpace(k); wordPattern.FindString(key) != key {
			return nil, fmt.Errorf("term %q: key must be a single word", k)
		}
	}
	if doc.Terms == nil {
		doc.Terms = map[string]string{}
	}
	return doc.Terms, nil
}

// LoadTermsFile reads a term file from disk. See LoadTerms for the format.
func LoadTermsFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("terms: open %q: %w", path, err)
	}
	defer f.Close()

	terms, err := LoadTerms(f)
	if err != nil {
		return nil, fmt.Errorf("terms: parse %q: %w", path, err)
	}
	return terms, nil
}

// Merge overlays extra on base and returns a new table. base is not modified.
func Merge(base, extra map[string]string) map[string]string {
	out := maps.Clone(base)
	if out == nil {
		out = make(map[string]string, len(extra))
	}
	maps.Copy(out, extra)
	return out
}
