package events

import (
	"context"
	"encoding/json"
	"time"

	"diamond-exchange/utils"
)

// Type names a domain event
type Type string

const (
	InventoryCreated     Type = "inventory.created"
	InventoryUpdated     Type = "inventory.updated"
	InventoryDeleted     Type = "inventory.deleted"
	RequirementUpserted  Type = "requirement.upserted"
	RequirementClosed    Type = "requirement.closed"
	RequirementExpired   Type = "requirement.expired"
	RequirementDeleted   Type = "requirement.deleted"
	AuctionCreated       Type = "auction.created"
	AuctionUpdated       Type = "auction.updated"
	AuctionDeleted       Type = "auction.deleted"
	BidSubmitted         Type = "bid.submitted"
	BidAccepted          Type = "bid.accepted"
	BidRejected          Type = "bid.rejected"
	BidExpired           Type = "bid.expired"
	DealCreated          Type = "deal.created"
	DealStatusChanged    Type = "deal.status_changed"
	DealInvoiceGenerated Type = "deal.invoice_generated"
)

// Event is a committed state change announced to interested parties
type Event struct {
	ID          string         `json:"id"`
	Type        Type           `json:"type"`
	AggregateID string         `json:"aggregate_id"`
	ActorID     string         `json:"actor_id,omitempty"`
	Payload     map[string]any `json:"payload,omitempty"`
	OccurredAt  time.Time      `json:"occurred_at"`
}

// New builds an event stamped with a fresh id and the current time
func New(t Type, aggregateID, actorID string, payload map[string]any) Event {
	return Event{
		ID:          utils.GenerateID(),
		Type:        t,
		AggregateID: aggregateID,
		ActorID:     actorID,
		Payload:     payload,
		OccurredAt:  time.Now().UTC(),
	}
}

// Encode serializes the event for the wire
func (e Event) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// Notifier announces events after the state change has been committed.
// Delivery is fire-and-forget: failures never reach the caller.
type Notifier interface {
	Notify(ctx context.Context, evt Event)
}

// Discard is a Notifier that drops every event
type Discard struct{}

func (Discard) Notify(context.Context, Event) {}
