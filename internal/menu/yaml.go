package menu

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// itemNamespace seeds deterministic IDs for YAML items that omit one, so the
// same file always yields the same IDs.
var itemNamespace = uuid.MustParse("6f1c7a52-3b0e-4f0a-9d55-2a8f0f4c9e11")

type yamlMenu struct {
	Items []yamlItem `yaml:"items"`
}

type yamlItem struct {
	ID             string   `yaml:"id"`
	Name           string   `yaml:"name"`
	Description    string   `yaml:"description"`
	Tags           []string `yaml:"tags"`
	Category       string   `yaml:"category"`
	Price          string   `yaml:"price"`
	RemainingStock int      `yaml:"remaining_stock"`
}

// LoadYAMLFile reads a menu file from disk. See LoadYAML for the format.
func LoadYAMLFile(path string) ([]Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("menu: open %q: %w", path, err)
	}
	defer f.Close()

	items, err := LoadYAML(f)
	if err != nil {
		return nil, fmt.Errorf("menu: parse %q: %w", path, err)
	}
	return items, nil
}

// LoadYAML decodes a menu of the form
//
//	items:
//	  - name: Siomai (10pcs)
//	    category: dimsum
//	    price: "25.00"
//	    remaining_stock: 12
//	    tags: [dumpling, pork]
//
// Every item needs a name and a non-negative stock. Items without an id get
// one derived from their name.
func LoadYAML(r io.Reader) ([]Item, error) {
	var doc yamlMenu
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	items := make([]Item, 0, len(doc.Items))
	var errs []error
	for i, yi := range doc.Items {
		item, err := yi.toItem()
		if err != nil {
			errs = append(errs, fmt.Errorf("items[%d]: %w", i, err))
			continue
		}
		items = append(items, item)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return items, nil
}

func (yi yamlItem) toItem() (Item, error) {
	name := strings.TrimSpace(yi.Name)
	if name == "" {
		return Item{}, errors.New("name is required")
	}
	if yi.RemainingStock < 0 {
		return Item{}, fmt.Errorf("remaining_stock must be >= 0, got %d", yi.RemainingStock)
	}

	id := uuid.NewSHA1(itemNamespace, []byte(strings.ToLower(name)))
	if yi.ID != "" {
		parsed, err := uuid.Parse(yi.ID)
		if err != nil {
			return Item{}, fmt.Errorf("invalid id %q: %w", yi.ID, err)
		}
		id = parsed
	}

	price := decimal.Zero
	if yi.Price != "" {
		p, err := decimal.NewFromString(yi.Price)
		if err != nil {
			return Item{}, fmt.Errorf("invalid price %q: %w", yi.Price, err)
		}
		if p.IsNegative() {
			return Item{}, fmt.Errorf("negative price %q", yi.Price)
		}
		price = p
	}

	return Item{
		ID:             id,
		Name:           name,
		Description:    strings.TrimSpace(yi.Description),
		Tags:           yi.Tags,
		Category:       yi.Category,
		Price:          price,
		RemainingStock: yi.RemainingStock,
	}, nil
}
