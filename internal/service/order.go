package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kiwari-pos/orderdesk/internal/enum"
	"github.com/kiwari-pos/orderdesk/internal/menu"
	"github.com/shopspring/decimal"
)

// Errors returned by the order service.
var (
	ErrEmptyItems        = errors.New("items are required")
	ErrInvalidQuantity   = errors.New("quantity must be > 0")
	ErrInvalidMenuItemID = errors.New("invalid menu_item_id")
	ErrMenuItemNotFound  = errors.New("menu item not available")
	ErrInsufficientStock = errors.New("not enough remaining stock")
	ErrInvalidStatus     = errors.New("invalid status")
)

// MenuSource lists the menu items that can currently be ordered.
// Satisfied by *menu.MemoryStore and *menu.PostgresStore.
type MenuSource interface {
	ListAvailable(ctx context.Context) ([]menu.Item, error)
}

// OrderSink receives confirmed orders. The order store lives behind it.
type OrderSink interface {
	SubmitOrder(ctx context.Context, order *ConfirmedOrder) error
}

// ConfirmRequest is what the reviewer settled on after looking at a parse.
type ConfirmRequest struct {
	CustomerName string
	Phone        string
	UnitNumber   string
	Building     string
	Floor        string
	Status       string
	Notes        string
	RawText      string
	Items        []ConfirmItemRequest
}

// ConfirmItemRequest is a single reviewed line.
type ConfirmItemRequest struct {
	MenuItemID string
	Quantity   int
}

// ConfirmedOrder is a priced order handed to the OrderSink.
type ConfirmedOrder struct {
	ID           uuid.UUID       `json:"id"`
	CustomerName string          `json:"customer_name,omitempty"`
	Phone        string          `json:"phone,omitempty"`
	UnitNumber   string          `json:"unit_number,omitempty"`
	Building     string          `json:"building,omitempty"`
	Floor        string          `json:"floor,omitempty"`
	WalkIn       bool            `json:"walk_in"`
	Status       string          `json:"status"`
	Notes        string          `json:"notes,omitempty"`
	RawText      string          `json:"raw_text,omitempty"`
	Items        []ConfirmedLine `json:"items"`
	Total        decimal.Decimal `json:"total"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ConfirmedLine is one priced line of a confirmed order.
type ConfirmedLine struct {
	MenuItemID uuid.UUID       `json:"menu_item_id"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

// OrderService turns reviewed selections into confirmed orders.
type OrderService struct {
	menus MenuSource
	sink  OrderSink
	now   func() time.Time
}

// NewOrderService creates a new OrderService.
func NewOrderService(menus MenuSource, sink OrderSink) *OrderService {
	return &OrderService{menus: menus, sink: sink, now: time.Now}
}

// Confirm validates the reviewed lines against the live menu, prices them and
// submits the order. Stock is checked but never decremented here; that is the
// order store's job once it accepts the order.
func (s *OrderService) Confirm(ctx context.Context, req ConfirmRequest) (*ConfirmedOrder, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyItems
	}

	status, err := validateStatus(req.Status)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(req.Items))
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("item[%d]: %w", i, ErrInvalidQuantity)
		}
		id, err := uuid.Parse(item.MenuItemID)
		if err != nil {
			return nil, fmt.Errorf("item[%d]: %w", i, ErrInvalidMenuItemID)
		}
		ids[i] = id
	}

	available, err := s.menus.ListAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("list menu: %w", err)
	}
	byID := menu.ByID(available)

	// The same dish may be listed on several lines.
	wanted := make(map[uuid.UUID]int, len(ids))
	for i, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, fmt.Errorf("item[%d]: %w", i, ErrMenuItemNotFound)
		}
		wanted[id] += req.Items[i].Quantity
	}
	for i, id := range ids {
		item := byID[id]
		if wanted[id] > item.RemainingStock {
			return nil, fmt.Errorf("item[%d]: %w: %s has %d left", i, ErrInsufficientStock, item.Name, item.RemainingStock)
		}
	}

	order := &ConfirmedOrder{
		ID:           uuid.New(),
		CustomerName: strings.TrimSpace(req.CustomerName),
		Phone:        strings.TrimSpace(req.Phone),
		UnitNumber:   strings.TrimSpace(req.UnitNumber),
		Building:     strings.TrimSpace(req.Building),
		Floor:        strings.TrimSpace(req.Floor),
		Status:       status,
		Notes:        strings.TrimSpace(req.Notes),
		RawText:      req.RawText,
		Items:        make([]ConfirmedLine, 0, len(ids)),
		Total:        decimal.Zero,
		CreatedAt:    s.now(),
	}
	order.WalkIn = order.Phone == ""

	for i, id := range ids {
		item := byID[id]
		qty := req.Items[i].Quantity
		subtotal := item.Price.Mul(decimal.NewFromInt(int64(qty)))
		order.Items = append(order.Items, ConfirmedLine{
			MenuItemID: id,
			Name:       item.Name,
			Quantity:   qty,
			UnitPrice:  item.Price,
			Subtotal:   subtotal,
		})
		order.Total = order.Total.Add(subtotal)
	}

	if err := s.sink.SubmitOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("submit order: %w", err)
	}
	return order, nil
}

func validateStatus(s string) (string, error) {
	switch s {
	case "":
		return enum.OrderStatusUnpaid, nil
	case enum.OrderStatusReserved, enum.OrderStatusUnpaid, enum.OrderStatusPaid:
		return s, nil
	}
	return "", ErrInvalidStatus
}
