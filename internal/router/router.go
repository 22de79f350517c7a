package router

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/kiwari-pos/orderdesk/internal/config"
	"github.com/kiwari-pos/orderdesk/internal/handler"
	"github.com/kiwari-pos/orderdesk/internal/intake/parser"
	mw "github.com/kiwari-pos/orderdesk/internal/middleware"
	"github.com/kiwari-pos/orderdesk/internal/service"
	"github.com/kiwari-pos/orderdesk/internal/ws"
)

// New creates a Chi router with all application routes wired up.
// Confirmed orders go to the review feed through a FeedSink.
func New(cfg *config.Config, menus service.MenuSource, p *parser.Parser, hub *ws.Hub) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300, // 5 minutes
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Review feed
	r.Get("/ws/orders", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, w, r)
	})

	menuHandler := handler.NewMenuHandler(menus)
	r.Route("/menu", menuHandler.RegisterRoutes)

	orderService := service.NewOrderService(menus, service.NewFeedSink(hub))
	intakeHandler := handler.NewIntakeHandler(menus, p, orderService, hub)
	r.Route("/orders", func(r chi.Router) {
		r.Use(mw.LimitBody(cfg.MaxMessageBytes))
		r.Use(mw.RequireJSON)
		intakeHandler.RegisterRoutes(r)
	})

	log.Println("Router initialized with all handlers")
	return r
}
