package service

import (
	"context"
	"fmt"

	"github.com/kiwari-pos/orderdesk/internal/enum"
)

// Publisher pushes an event to the review feed.
// Satisfied by *ws.Hub.
type Publisher interface {
	Publish(eventType string, payload any) error
}

// FeedSink forwards confirmed orders to the review feed so every open review
// screen sees them. It stands in for the order store until one is attached.
type FeedSink struct {
	pub Publisher
}

// NewFeedSink creates a FeedSink.
func NewFeedSink(pub Publisher) *FeedSink {
	return &FeedSink{pub: pub}
}

func (s *FeedSink) SubmitOrder(_ context.Context, order *ConfirmedOrder) error {
	if err := s.pub.Publish(enum.EventOrderConfirmed, order); err != nil {
		return fmt.Errorf("publish %s: %w", enum.EventOrderConfirmed, err)
	}
	return nil
}
