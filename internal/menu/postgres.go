package menu

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// Querier is the subset of pgxpool.Pool the Postgres store needs.
// Satisfied by *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresStore reads the daily menu from the menu_items table.
type PostgresStore struct {
	db Querier
}

// NewPostgresStore creates a PostgresStore on top of a pool or transaction.
func NewPostgresStore(db Querier) *PostgresStore {
	return &PostgresStore{db: db}
}

const listAvailableSQL = `
	SELECT id, name, description, tags, category, price, remaining_stock
	FROM menu_items
	WHERE is_available = true AND remaining_stock > 0
	ORDER BY sort_order, name
`

// ListAvailable returns orderable items (available flag set, stock left).
func (s *PostgresStore) ListAvailable(ctx context.Context) ([]Item, error) {
	rows, err := s.db.Query(ctx, listAvailableSQL)
	if err != nil {
		return nil, fmt.Errorf("query menu items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var (
			id          uuid.UUID
			name        string
			description pgtype.Text
			tags        []string
			category    string
			price       pgtype.Numeric
			stock       int32
		)
		if err := rows.Scan(&id, &name, &description, &tags, &category, &price, &stock); err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		items = append(items, Item{
			ID:             id,
			Name:           name,
			Description:    description.String,
			Tags:           tags,
			Category:       category,
			Price:          numericToDecimal(price),
			RemainingStock: int(stock),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate menu items: %w", err)
	}
	return items, nil
}

// Execer runs a single statement. Satisfied by *pgxpool.Pool and pgx.Tx.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const upsertItemSQL = `
	INSERT INTO menu_items (id, name, description, tags, category, price, remaining_stock, is_available, sort_order)
	VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, true, $8)
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		description = EXCLUDED.description,
		tags = EXCLUDED.tags,
		category = EXCLUDED.category,
		price = EXCLUDED.price,
		remaining_stock = EXCLUDED.remaining_stock,
		is_available = true,
		sort_order = EXCLUDED.sort_order,
		updated_at = now()
`

// Upsert writes items to menu_items keyed by id. Their position in the slice
// becomes the sort order. Run it inside a transaction to load a menu
// atomically.
func Upsert(ctx context.Context, db Execer, items []Item) error {
	for i, item := range items {
		tags := item.Tags
		if tags == nil {
			tags = []string{}
		}
		_, err := db.Exec(ctx, upsertItemSQL,
			item.ID, item.Name, item.Description, tags, item.Category,
			DecimalToNumeric(item.Price), int32(item.RemainingStock), int32(i))
		if err != nil {
			return fmt.Errorf("upsert %q: %w", item.Name, err)
		}
	}
	return nil
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	val, err := n.Value()
	if err != nil || val == nil {
		return decimal.Zero
	}
	s, ok := val.(string)
	if !ok {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// DecimalToNumeric converts a price for use as a query argument.
func DecimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric
	_ = n.Scan(d.StringFixed(2))
	return n
}
