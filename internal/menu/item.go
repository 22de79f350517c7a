// Package menu holds the daily menu as the intake parser sees it: a read-only
// list of orderable items with their remaining stock. Stores in this package
// only read; stock is decremented by the order store, never here.
package menu

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is a single orderable menu entry.
type Item struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Tags           []string        `json:"tags,omitempty"`
	Category       string          `json:"category"`
	Price          decimal.Decimal `json:"price"`
	RemainingStock int             `json:"remaining_stock"`
}

// Available returns the items that still have stock, keeping menu order.
func Available(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.RemainingStock > 0 {
			out = append(out, it)
		}
	}
	return out
}

// ByID indexes items by ID. Later duplicates overwrite earlier ones.
func ByID(items []Item) map[uuid.UUID]Item {
	m := make(map[uuid.UUID]Item, len(items))
	for _, it := range items {
		m[it.ID] = it
	}
	return m
}
