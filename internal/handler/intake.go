package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/kiwari-pos/orderdesk/internal/enum"
	"github.com/kiwari-pos/orderdesk/internal/intake/parser"
	"github.com/kiwari-pos/orderdesk/internal/service"
)

// OrderConfirmer defines the service methods needed by the confirm endpoint.
// Satisfied by *service.OrderService; narrow interface for testability.
type OrderConfirmer interface {
	Confirm(ctx context.Context, req service.ConfirmRequest) (*service.ConfirmedOrder, error)
}

// EventPublisher pushes events to the review feed.
// Satisfied by *ws.Hub.
type EventPublisher interface {
	Publish(eventType string, payload any) error
}

// IntakeHandler handles pasted-message parsing and order confirmation.
type IntakeHandler struct {
	menus  MenuLister
	parser *parser.Parser
	orders OrderConfirmer
	feed   EventPublisher
}

// NewIntakeHandler creates a new IntakeHandler.
func NewIntakeHandler(menus MenuLister, p *parser.Parser, orders OrderConfirmer, feed EventPublisher) *IntakeHandler {
	return &IntakeHandler{menus: menus, parser: p, orders: orders, feed: feed}
}

// RegisterRoutes registers intake endpoints on the given Chi router.
// Expected to be mounted at /orders.
func (h *IntakeHandler) RegisterRoutes(r chi.Router) {
	r.Post("/parse", h.Parse)
	r.Post("/confirm", h.Confirm)
}

// --- Request / Response types ---

type parseRequest struct {
	MessageText string `json:"message_text"`
	Threshold   *int   `json:"threshold"`
}

type parseResponse struct {
	Result  parser.ParsedOrder `json:"result"`
	Summary string             `json:"summary"`
}

type confirmRequest struct {
	CustomerName string               `json:"customer_name"`
	Phone        string               `json:"phone"`
	UnitNumber   string               `json:"unit_number"`
	Building     string               `json:"building"`
	Floor        string               `json:"floor"`
	Status       string               `json:"status"`
	Notes        string               `json:"notes"`
	RawText      string               `json:"raw_text"`
	Items        []confirmItemRequest `json:"items"`
}

type confirmItemRequest struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
}

// --- Handlers ---

// Parse handles POST /orders/parse.
func (h *IntakeHandler) Parse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.MessageText) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "message_text is required"})
		return
	}

	p := h.parser
	if req.Threshold != nil {
		if *req.Threshold < 0 || *req.Threshold > 100 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "threshold must be between 0 and 100"})
			return
		}
		p = p.With(parser.WithThreshold(*req.Threshold))
	}

	available, err := h.menus.ListAvailable(r.Context())
	if err != nil {
		log.Printf("ERROR: list menu: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	result := p.Parse(req.MessageText, available)

	// A missing review screen must not fail the parse.
	if err := h.feed.Publish(enum.EventOrderParsed, result); err != nil {
		log.Printf("WARN: publish %s: %v", enum.EventOrderParsed, err)
	}

	writeJSON(w, http.StatusOK, parseResponse{
		Result:  result,
		Summary: buildSummary(result),
	})
}

// Confirm handles POST /orders/confirm.
func (h *IntakeHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if !decodeBody(w, r, &req) {
		return
	}

	items := make([]service.ConfirmItemRequest, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.ConfirmItemRequest{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
		}
	}

	order, err := h.orders.Confirm(r.Context(), service.ConfirmRequest{
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		UnitNumber:   req.UnitNumber,
		Building:     req.Building,
		Floor:        req.Floor,
		Status:       req.Status,
		Notes:        req.Notes,
		RawText:      req.RawText,
		Items:        items,
	})
	if err != nil {
		switch {
		case isValidationError(err):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		case isConflictError(err):
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		default:
			log.Printf("ERROR: confirm order: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		}
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// decodeBody decodes a JSON request body into v. It writes the error
// response itself and reports whether the handler should continue.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "request body too large"})
			return false
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}

func isValidationError(err error) bool {
	return errors.Is(err, service.ErrEmptyItems) ||
		errors.Is(err, service.ErrInvalidQuantity) ||
		errors.Is(err, service.ErrInvalidMenuItemID) ||
		errors.Is(err, service.ErrInvalidStatus)
}

// isConflictError reports errors caused by the menu having moved on since
// the message was parsed.
func isConflictError(err error) bool {
	return errors.Is(err, service.ErrMenuItemNotFound) ||
		errors.Is(err, service.ErrInsufficientStock)
}
