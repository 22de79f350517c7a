//go:build integration

package menu_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kiwari-pos/orderdesk/internal/menu"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestPostgresStore_ListAvailable runs the menu query against a real PostgreSQL.
func TestPostgresStore_ListAvailable(t *testing.T) {
	ctx := context.Background()

	connStr, cleanup := setupPostgresContainer(t, ctx)
	defer cleanup()

	runMigrations(t, connStr)

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("create pool: %v", err)
	}
	defer pool.Close()

	rows := []struct {
		name      string
		desc      any
		tags      []string
		price     string
		stock     int
		available bool
		sortOrder int
	}{
		{"Siomai (10pcs)", "steamed pork dumplings", []string{"dimsum"}, "25.00", 12, true, 2},
		{"Honey Pork Ribs", nil, []string{}, "45.50", 5, true, 1},
		{"Chicken Adobo", nil, []string{}, "35.00", 0, true, 3},
		{"Leche Flan", nil, []string{"dessert"}, "15.00", 8, false, 4},
	}
	for _, r := range rows {
		_, err := pool.Exec(ctx,
			`INSERT INTO menu_items (name, description, tags, category, price, remaining_stock, is_available, sort_order)
			 VALUES ($1, $2, $3, 'test', $4::numeric, $5, $6, $7)`,
			r.name, r.desc, r.tags, r.price, r.stock, r.available, r.sortOrder)
		if err != nil {
			t.Fatalf("insert %s: %v", r.name, err)
		}
	}

	items, err := menu.NewPostgresStore(pool).ListAvailable(ctx)
	if err != nil {
		t.Fatalf("ListAvailable: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2: %+v", len(items), items)
	}
	if items[0].Name != "Honey Pork Ribs" || items[1].Name != "Siomai (10pcs)" {
		t.Errorf("order = [%s, %s], want sort_order", items[0].Name, items[1].Name)
	}
	if !items[0].Price.Equal(decimal.RequireFromString("45.50")) {
		t.Errorf("price = %s, want 45.50", items[0].Price)
	}
	if items[0].Description != "" {
		t.Errorf("null description = %q, want empty", items[0].Description)
	}
	if items[1].Description != "steamed pork dumplings" || len(items[1].Tags) != 1 {
		t.Errorf("siomai = %+v", items[1])
	}
}

// TestUpsert_RoundTrip loads a menu twice and checks the second load updates
// rows in place.
func TestUpsert_RoundTrip(t *testing.T) {
	ctx := context.Background()

	connStr, cleanup := setupPostgresContainer(t, ctx)
	defer cleanup()

	runMigrations(t, connStr)

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("create pool: %v", err)
	}
	defer pool.Close()

	items := []menu.Item{
		{ID: uuid.New(), Name: "Honey Pork Ribs", Category: "mains", Price: decimal.RequireFromString("45.50"), RemainingStock: 5},
		{ID: uuid.New(), Name: "Leche Flan", Tags: []string{"dessert"}, Category: "desserts", Price: decimal.RequireFromString("15"), RemainingStock: 8},
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := menu.Upsert(ctx, tx, items); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("commit: %v", err)
	}

	items[0].RemainingStock = 0
	items[1].Price = decimal.RequireFromString("18")
	if err := menu.Upsert(ctx, pool, items); err != nil {
		t.Fatalf("second Upsert: %v", err)
	}

	got, err := menu.NewPostgresStore(pool).ListAvailable(ctx)
	if err != nil {
		t.Fatalf("ListAvailable: %v", err)
	}
	if len(got) != 1 || got[0].ID != items[1].ID {
		t.Fatalf("available = %+v, want only Leche Flan", got)
	}
	if !got[0].Price.Equal(decimal.RequireFromString("18")) {
		t.Errorf("price = %s, want 18", got[0].Price)
	}

	var count int
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM menu_items`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("rows = %d, want 2", count)
	}
}

func setupPostgresContainer(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("orderdesk_test"),
		tcpostgres.WithUsername("orderdesk"),
		tcpostgres.WithPassword("orderdesk"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("get connection string: %v", err)
	}

	cleanup := func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	}
	return connStr, cleanup
}

func runMigrations(t *testing.T, connStr string) {
	t.Helper()

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("open db for migrations: %v", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		t.Fatalf("create migrate driver: %v", err)
	}

	// go test runs with the package directory as cwd (internal/menu/).
	m, err := migrate.NewWithDatabaseInstance("file://../../migrations", "postgres", driver)
	if err != nil {
		t.Fatalf("create migrate instance: %v", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		t.Fatalf("run migrations: %v", err)
	}
}
