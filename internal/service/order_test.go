package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/kiwari-pos/orderdesk/internal/enum"
	"github.com/kiwari-pos/orderdesk/internal/menu"
	"github.com/shopspring/decimal"
)

// --- Mock implementations ---

type mockMenuSource struct {
	items []menu.Item
	err   error
}

func (m *mockMenuSource) ListAvailable(ctx context.Context) ([]menu.Item, error) {
	return m.items, m.err
}

type mockOrderSink struct {
	orders []*ConfirmedOrder
	err    error
}

func (m *mockOrderSink) SubmitOrder(ctx context.Context, order *ConfirmedOrder) error {
	if m.err != nil {
		return m.err
	}
	m.orders = append(m.orders, order)
	return nil
}

type mockPublisher struct {
	eventType string
	payload   any
	err       error
}

func (m *mockPublisher) Publish(eventType string, payload any) error {
	m.eventType = eventType
	m.payload = payload
	return m.err
}

// --- Helpers ---

var (
	ribsID   = uuid.MustParse("00000000-0000-0000-0000-0000000000b1")
	siomaiID = uuid.MustParse("00000000-0000-0000-0000-0000000000b2")
)

func testMenu() []menu.Item {
	return []menu.Item{
		{ID: ribsID, Name: "Honey Pork Ribs", Price: decimal.RequireFromString("45.50"), RemainingStock: 5},
		{ID: siomaiID, Name: "Siomai (10pcs)", Price: decimal.RequireFromString("25.00"), RemainingStock: 2},
	}
}

func newTestService() (*OrderService, *mockOrderSink) {
	sink := &mockOrderSink{}
	return NewOrderService(&mockMenuSource{items: testMenu()}, sink), sink
}

// --- Confirm tests ---

func TestConfirm_Success(t *testing.T) {
	svc, sink := newTestService()

	order, err := svc.Confirm(context.Background(), ConfirmRequest{
		CustomerName: " Sarah ",
		Phone:        "0501234567",
		UnitNumber:   "501",
		Items: []ConfirmItemRequest{
			{MenuItemID: ribsID.String(), Quantity: 2},
			{MenuItemID: siomaiID.String(), Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}

	if order.ID == uuid.Nil {
		t.Error("expected an order id")
	}
	if order.CustomerName != "Sarah" {
		t.Errorf("customer name = %q", order.CustomerName)
	}
	if order.Status != enum.OrderStatusUnpaid {
		t.Errorf("status = %q, want unpaid", order.Status)
	}
	if order.WalkIn {
		t.Error("order with a phone must not be walk-in")
	}
	if len(order.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(order.Items))
	}
	if !order.Items[0].Subtotal.Equal(decimal.RequireFromString("91")) {
		t.Errorf("ribs subtotal = %s, want 91", order.Items[0].Subtotal)
	}
	if !order.Total.Equal(decimal.RequireFromString("116")) {
		t.Errorf("total = %s, want 116", order.Total)
	}
	if len(sink.orders) != 1 || sink.orders[0] != order {
		t.Errorf("sink received %d orders", len(sink.orders))
	}
}

func TestConfirm_WalkIn(t *testing.T) {
	svc, _ := newTestService()

	order, err := svc.Confirm(context.Background(), ConfirmRequest{
		Status: enum.OrderStatusPaid,
		Items:  []ConfirmItemRequest{{MenuItemID: siomaiID.String(), Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if !order.WalkIn {
		t.Error("order without a phone should be walk-in")
	}
	if order.Status != enum.OrderStatusPaid {
		t.Errorf("status = %q, want paid", order.Status)
	}
}

func TestConfirm_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		req     ConfirmRequest
		wantErr error
	}{
		{
			name:    "no items",
			req:     ConfirmRequest{},
			wantErr: ErrEmptyItems,
		},
		{
			name: "zero quantity",
			req: ConfirmRequest{Items: []ConfirmItemRequest{
				{MenuItemID: ribsID.String(), Quantity: 0},
			}},
			wantErr: ErrInvalidQuantity,
		},
		{
			name: "bad id",
			req: ConfirmRequest{Items: []ConfirmItemRequest{
				{MenuItemID: "not-a-uuid", Quantity: 1},
			}},
			wantErr: ErrInvalidMenuItemID,
		},
		{
			name: "unknown item",
			req: ConfirmRequest{Items: []ConfirmItemRequest{
				{MenuItemID: uuid.NewString(), Quantity: 1},
			}},
			wantErr: ErrMenuItemNotFound,
		},
		{
			name: "over stock",
			req: ConfirmRequest{Items: []ConfirmItemRequest{
				{MenuItemID: siomaiID.String(), Quantity: 3},
			}},
			wantErr: ErrInsufficientStock,
		},
		{
			name: "over stock across lines",
			req: ConfirmRequest{Items: []ConfirmItemRequest{
				{MenuItemID: siomaiID.String(), Quantity: 1},
				{MenuItemID: ribsID.String(), Quantity: 1},
				{MenuItemID: siomaiID.String(), Quantity: 2},
			}},
			wantErr: ErrInsufficientStock,
		},
		{
			name: "cancelled status",
			req: ConfirmRequest{
				Status: enum.OrderStatusCancelled,
				Items:  []ConfirmItemRequest{{MenuItemID: ribsID.String(), Quantity: 1}},
			},
			wantErr: ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, sink := newTestService()
			_, err := svc.Confirm(context.Background(), tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if len(sink.orders) != 0 {
				t.Error("rejected order reached the sink")
			}
		})
	}
}

func TestConfirm_MenuError(t *testing.T) {
	svc := NewOrderService(&mockMenuSource{err: errors.New("db down")}, &mockOrderSink{})

	_, err := svc.Confirm(context.Background(), ConfirmRequest{
		Items: []ConfirmItemRequest{{MenuItemID: ribsID.String(), Quantity: 1}},
	})
	if err == nil || !strings.Contains(err.Error(), "list menu") {
		t.Fatalf("err = %v, want wrapped menu error", err)
	}
}

func TestConfirm_SinkError(t *testing.T) {
	sinkErr := errors.New("store offline")
	svc := NewOrderService(&mockMenuSource{items: testMenu()}, &mockOrderSink{err: sinkErr})

	_, err := svc.Confirm(context.Background(), ConfirmRequest{
		Items: []ConfirmItemRequest{{MenuItemID: ribsID.String(), Quantity: 1}},
	})
	if !errors.Is(err, sinkErr) {
		t.Fatalf("err = %v, want %v", err, sinkErr)
	}
}

// --- FeedSink tests ---

func TestFeedSink_Publishes(t *testing.T) {
	pub := &mockPublisher{}
	order := &ConfirmedOrder{ID: uuid.New()}

	if err := NewFeedSink(pub).SubmitOrder(context.Background(), order); err != nil {
		t.Fatalf("SubmitOrder: %v", err)
	}
	if pub.eventType != enum.EventOrderConfirmed {
		t.Errorf("event type = %q", pub.eventType)
	}
	if pub.payload != order {
		t.Errorf("payload = %v, want the order", pub.payload)
	}
}

func TestFeedSink_Error(t *testing.T) {
	pub := &mockPublisher{err: errors.New("closed")}

	err := NewFeedSink(pub).SubmitOrder(context.Background(), &ConfirmedOrder{})
	if err == nil {
		t.Fatal("expected error")
	}
}
