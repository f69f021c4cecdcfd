package event_test

import (
	"testing"

	"github.com/jensholdgaard/fantadraft/internal/event"
)

func TestBus_DeliversInSubscriptionOrder(t *testing.T) {
	bus := event.NewBus(nil)

	var order []string
	bus.Subscribe(func(e event.Event) { order = append(order, "first") })
	bus.Subscribe(func(e event.Event) { order = append(order, "second") })

	bus.Publish(event.Event{Type: event.AuctionStarted})

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("delivery order = %v", order)
	}
}

func TestBus_PanickingSubscriberIsIsolated(t *testing.T) {
	bus := event.NewBus(nil)

	delivered := false
	bus.Subscribe(func(e event.Event) { panic("boom") })
	bus.Subscribe(func(e event.Event) { delivered = true })

	bus.Publish(event.Event{Type: event.BidPlaced})

	if !delivered {
		t.Error("subscriber after a panicking one did not receive the event")
	}
}

func TestBus_EventOrderIsPublishOrder(t *testing.T) {
	bus := event.NewBus(nil)

	var types []event.Type
	bus.Subscribe(func(e event.Event) { types = append(types, e.Type) })

	sequence := []event.Type{
		event.AuctionStarted,
		event.TurnStarted,
		event.PlayerCalled,
		event.BidPlaced,
		event.PlayerAssigned,
		event.AuctionFinished,
	}
	for _, typ := range sequence {
		bus.Publish(event.Event{Type: typ})
	}

	if len(types) != len(sequence) {
		t.Fatalf("received %d events, want %d", len(types), len(sequence))
	}
	for i := range sequence {
		if types[i] != sequence[i] {
			t.Errorf("event %d = %q, want %q", i, types[i], sequence[i])
		}
	}
}
