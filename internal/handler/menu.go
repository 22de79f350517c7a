package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kiwari-pos/orderdesk/internal/menu"
)

// MenuLister lists the items that can be ordered right now.
// Satisfied by *menu.MemoryStore and *menu.PostgresStore.
type MenuLister interface {
	ListAvailable(ctx context.Context) ([]menu.Item, error)
}

// MenuHandler serves the live menu.
type MenuHandler struct {
	menus MenuLister
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(menus MenuLister) *MenuHandler {
	return &MenuHandler{menus: menus}
}

// RegisterRoutes registers menu endpoints on the given Chi router.
// Expected to be mounted at /menu.
func (h *MenuHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
}

// List handles GET /menu.
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.menus.ListAvailable(r.Context())
	if err != nil {
		log.Printf("ERROR: list menu: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if items == nil {
		items = []menu.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: failed to encode JSON response: %v", err)
	}
}
