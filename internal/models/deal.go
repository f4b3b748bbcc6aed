package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DealStatus is a state of the post-acceptance deal lifecycle
type DealStatus string

const (
	DealCreated        DealStatus = "CREATED"
	DealPaymentPending DealStatus = "PAYMENT_PENDING"
	DealInEscrow       DealStatus = "IN_ESCROW"
	DealShipped        DealStatus = "SHIPPED"
	DealDelivered      DealStatus = "DELIVERED"
	DealCompleted      DealStatus = "COMPLETED"
	DealCancelled      DealStatus = "CANCELLED"
	DealDisputed       DealStatus = "DISPUTED"
)

// AllDealStatuses lists every deal status in lifecycle order
var AllDealStatuses = []DealStatus{
	DealCreated, DealPaymentPending, DealInEscrow, DealShipped,
	DealDelivered, DealCompleted, DealCancelled, DealDisputed,
}

var dealTransitions = map[DealStatus][]DealStatus{
	DealCreated:        {DealPaymentPending, DealCancelled},
	DealPaymentPending: {DealInEscrow, DealCancelled},
	DealInEscrow:       {DealShipped, DealCancelled, DealDisputed},
	DealShipped:        {DealDelivered, DealDisputed},
	DealDelivered:      {DealCompleted, DealDisputed},
	DealDisputed:       {DealCompleted, DealCancelled, DealInEscrow},
	DealCompleted:      {},
	DealCancelled:      {},
}

// Valid reports whether s is one of the known statuses
func (s DealStatus) Valid() bool {
	_, ok := dealTransitions[s]
	return ok
}

// Terminal reports whether no transition leaves s
func (s DealStatus) Terminal() bool {
	return len(dealTransitions[s]) == 0
}

// AllowedTransitions returns the statuses reachable from s in one step
func AllowedTransitions(s DealStatus) []DealStatus {
	return append([]DealStatus(nil), dealTransitions[s]...)
}

// CanTransition reports whether from -> to is an edge of the deal state machine
func CanTransition(from, to DealStatus) bool {
	for _, next := range dealTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// DealHistoryEntry records one successful status change
type DealHistoryEntry struct {
	Status    DealStatus `json:"status"`
	ChangedBy string     `json:"changed_by"`
	ChangedAt time.Time  `json:"changed_at"`
}

// Payment is the escrow payment record of a deal
type Payment struct {
	IsPaid        bool       `json:"is_paid"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	Method        string     `json:"method,omitempty"`
	TransactionID string     `json:"transaction_id,omitempty"`
}

// Shipping is the logistics record of a deal
type Shipping struct {
	Courier        string     `json:"courier,omitempty"`
	TrackingNumber string     `json:"tracking_number,omitempty"`
	ShippedAt      *time.Time `json:"shipped_at,omitempty"`
	DeliveredAt    *time.Time `json:"delivered_at,omitempty"`
}

// Dispute is raised by a participant and resolved by leaving DISPUTED
type Dispute struct {
	Reason     string     `json:"reason"`
	RaisedBy   string     `json:"raised_by"`
	RaisedAt   time.Time  `json:"raised_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	Resolution string     `json:"resolution,omitempty"`
}

// Deal is the post-acceptance contract materialized from exactly one accepted bid
type Deal struct {
	DealID        string             `json:"deal_id"`
	BidID         string             `json:"bid_id"`
	AuctionID     string             `json:"auction_id,omitempty"`
	RequirementID string             `json:"requirement_id,omitempty"`
	InventoryID   string             `json:"inventory_id,omitempty"`
	BuyerID       string             `json:"buyer_id"`
	SellerID      string             `json:"seller_id"`
	AgreedAmount  decimal.Decimal    `json:"agreed_amount"`
	Currency      string             `json:"currency"`
	Status        DealStatus         `json:"status"`
	History       []DealHistoryEntry `json:"history"`
	Payment       *Payment           `json:"payment,omitempty"`
	Shipping      *Shipping          `json:"shipping,omitempty"`
	Dispute       *Dispute           `json:"dispute,omitempty"`
	PDFPath       string             `json:"pdf_path,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// Clone returns a deep copy so callers never share history or sub-records
func (d Deal) Clone() Deal {
	d.History = append([]DealHistoryEntry(nil), d.History...)
	if d.Payment != nil {
		p := *d.Payment
		d.Payment = &p
	}
	if d.Shipping != nil {
		s := *d.Shipping
		d.Shipping = &s
	}
	if d.Dispute != nil {
		disp := *d.Dispute
		d.Dispute = &disp
	}
	return d
}

// IsParticipant reports whether userID is the buyer or the seller of the deal
func (d Deal) IsParticipant(userID string) bool {
	return userID != "" && (userID == d.BuyerID || userID == d.SellerID)
}
