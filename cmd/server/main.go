package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kiwari-pos/orderdesk/internal/config"
	"github.com/kiwari-pos/orderdesk/internal/intake/normalizer"
	"github.com/kiwari-pos/orderdesk/internal/intake/parser"
	"github.com/kiwari-pos/orderdesk/internal/menu"
	"github.com/kiwari-pos/orderdesk/internal/router"
	"github.com/kiwari-pos/orderdesk/internal/service"
	"github.com/kiwari-pos/orderdesk/internal/ws"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	menus, closeMenus, err := openMenu(ctx, cfg)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	defer closeMenus()

	p, err := newParser(cfg)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}

	hub := ws.NewHub()
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router.New(cfg, menus, p, hub),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run(ctx)
		return nil
	})

	g.Go(func() error {
		log.Printf("Starting server on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Println("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("ERROR: %v", err)
	}
}

// openMenu serves the menu from MENU_FILE when set, otherwise from Postgres.
func openMenu(ctx context.Context, cfg *config.Config) (service.MenuSource, func(), error) {
	if cfg.MenuFile != "" {
		items, err := menu.LoadYAMLFile(cfg.MenuFile)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("Loaded %d menu items from %s", len(items), cfg.MenuFile)
		return menu.NewMemoryStore(items), func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}
	return menu.NewPostgresStore(pool), pool.Close, nil
}

func newParser(cfg *config.Config) (*parser.Parser, error) {
	terms := normalizer.DefaultTerms()
	if cfg.TermsFile != "" {
		extra, err := normalizer.LoadTermsFile(cfg.TermsFile)
		if err != nil {
			return nil, err
		}
		terms = normalizer.Merge(terms, extra)
	}
	if cfg.MatchThreshold < 0 || cfg.MatchThreshold > 100 {
		return nil, fmt.Errorf("MATCH_THRESHOLD must be between 0 and 100, got %d", cfg.MatchThreshold)
	}
	return parser.New(
		parser.WithNormalizer(normalizer.New(terms)),
		parser.WithThreshold(cfg.MatchThreshold),
	), nil
}
