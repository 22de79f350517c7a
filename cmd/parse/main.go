// Command parse reads a pasted order message and prints the draft order as
// JSON. It needs no database: the menu comes from a YAML file.
//
//	parse -menu menu.yaml -message "Sarah
//	2x honey ribs"
//	pbpaste | parse -menu menu.yaml
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/kiwari-pos/orderdesk/internal/intake/matcher"
	"github.com/kiwari-pos/orderdesk/internal/intake/normalizer"
	"github.com/kiwari-pos/orderdesk/internal/intake/parser"
	"github.com/kiwari-pos/orderdesk/internal/menu"
)

func main() {
	log.SetFlags(0)

	menuFile := flag.String("menu", "", "YAML menu file (required)")
	termsFile := flag.String("terms", "", "YAML file with extra normalizer terms")
	threshold := flag.Int("threshold", matcher.DefaultThreshold, "Minimum match score, 0-100")
	message := flag.String("message", "", "Message text; read from stdin when empty")
	flag.Parse()

	if err := run(os.Stdin, os.Stdout, *menuFile, *termsFile, *threshold, *message); err != nil {
		log.Fatalf("ERROR: %v", err)
	}
}

func run(stdin io.Reader, stdout io.Writer, menuFile, termsFile string, threshold int, message string) error {
	if menuFile == "" {
		return fmt.Errorf("-menu is required")
	}
	if threshold < 0 || threshold > 100 {
		return fmt.Errorf("-threshold must be between 0 and 100, got %d", threshold)
	}

	items, err := menu.LoadYAMLFile(menuFile)
	if err != nil {
		return err
	}

	terms := normalizer.DefaultTerms()
	if termsFile != "" {
		extra, err := normalizer.LoadTermsFile(termsFile)
		if err != nil {
			return err
		}
		terms = normalizer.Merge(terms, extra)
	}

	if message == "" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		message = string(b)
	}

	p := parser.New(
		parser.WithNormalizer(normalizer.New(terms)),
		parser.WithThreshold(threshold),
	)
	result := p.Parse(message, menu.Available(items))

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
