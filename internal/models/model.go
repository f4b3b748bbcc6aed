package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role is the coarse permission level supplied by the identity provider
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Actor is the authenticated caller of an operation
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

// IsAdmin reports whether the actor has the admin role
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// ItemStatus is the lifecycle state of an inventory item
type ItemStatus string

const (
	StatusAvailable    ItemStatus = "AVAILABLE"
	StatusListed       ItemStatus = "LISTED"
	StatusSold         ItemStatus = "SOLD"
	StatusOnMemo       ItemStatus = "ON_MEMO"
	StatusNotAvailable ItemStatus = "NOT_AVAILABLE"
)

// Grading holds the physical description of a stone
type Grading struct {
	Shape    string          `json:"shape"`
	Carat    decimal.Decimal `json:"carat"`
	Cut      string          `json:"cut,omitempty"`
	Color    string          `json:"color"`
	Clarity  string          `json:"clarity"`
	Lab      string          `json:"lab,omitempty"`
	Location string          `json:"location,omitempty"`
}

// Item represents a seller-owned diamond in the inventory ledger
type Item struct {
	ItemID      string `json:"item_id"`
	SellerID    string `json:"seller_id"`
	Barcode     string `json:"barcode"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Grading
	Price      decimal.Decimal `json:"price"`
	Currency   string          `json:"currency"`
	CurrentBid decimal.Decimal `json:"current_bid"`
	Images     []string        `json:"images,omitempty"`
	Video      string          `json:"video,omitempty"`
	Status     ItemStatus      `json:"status"`
	Locked     bool            `json:"locked"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Clone returns a copy that shares no slices with the receiver
func (i Item) Clone() Item {
	i.Images = append([]string(nil), i.Images...)
	return i
}

// InventoryStatusLog is one append-only entry of an item's status history
type InventoryStatusLog struct {
	LogID      string     `json:"log_id"`
	ItemID     string     `json:"item_id"`
	FromStatus ItemStatus `json:"from_status,omitempty"`
	ToStatus   ItemStatus `json:"to_status"`
	Locked     bool       `json:"locked"`
	ChangedBy  string     `json:"changed_by"`
	ChangedAt  time.Time  `json:"changed_at"`
}

// Auction is a timed listing of exactly one inventory item
type Auction struct {
	AuctionID       string          `json:"auction_id"`
	InventoryID     string          `json:"inventory_id"`
	BasePrice       decimal.Decimal `json:"base_price"`
	CurrentBid      decimal.Decimal `json:"current_bid"`
	HighestBidderID string          `json:"highest_bidder_id,omitempty"`
	HighestBidID    string          `json:"highest_bid_id,omitempty"`
	BidIDs          []string        `json:"bid_ids"`
	StartDate       time.Time       `json:"start_date"`
	EndDate         time.Time       `json:"end_date"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Clone returns a copy that shares no slices with the receiver
func (a Auction) Clone() Auction {
	a.BidIDs = append([]string(nil), a.BidIDs...)
	return a
}

// Floor is the amount a new bid must strictly exceed
func (a Auction) Floor() decimal.Decimal {
	return decimal.Max(a.CurrentBid, a.BasePrice)
}

// BidStatus is the one-way state of a bid
type BidStatus string

const (
	BidSubmitted BidStatus = "SUBMITTED"
	BidAccepted  BidStatus = "ACCEPTED"
	BidRejected  BidStatus = "REJECTED"
	BidExpired   BidStatus = "EXPIRED"
)

// Terminal reports whether no further transition is possible
func (s BidStatus) Terminal() bool {
	return s != BidSubmitted
}

// TargetKind tells which aggregate a bid is placed against
type TargetKind string

const (
	TargetAuction     TargetKind = "auction"
	TargetRequirement TargetKind = "requirement"
)

// Bid is an offer against an auction (by a buyer) or a requirement (by a seller)
type Bid struct {
	BidID         string          `json:"bid_id"`
	AuctionID     string          `json:"auction_id,omitempty"`
	RequirementID string          `json:"requirement_id,omitempty"`
	BuyerID       string          `json:"buyer_id,omitempty"`
	SellerID      string          `json:"seller_id,omitempty"`
	InventoryID   string          `json:"inventory_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Note          string          `json:"note,omitempty"`
	Status        BidStatus       `json:"status"`
	IsHighestBid  bool            `json:"is_highest_bid"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Target returns the kind and identifier of the aggregate the bid targets
func (b Bid) Target() (TargetKind, string) {
	if b.AuctionID != "" {
		return TargetAuction, b.AuctionID
	}
	return TargetRequirement, b.RequirementID
}

// RequirementStatus is the lifecycle state of a buyer requirement
type RequirementStatus string

const (
	RequirementActive  RequirementStatus = "active"
	RequirementClosed  RequirementStatus = "closed"
	RequirementExpired RequirementStatus = "expired"
)

// RequirementSpec describes the stone a buyer is looking for
type RequirementSpec struct {
	Shape    string          `json:"shape"`
	Carat    decimal.Decimal `json:"carat"`
	Color    string          `json:"color"`
	Clarity  string          `json:"clarity"`
	Lab      string          `json:"lab,omitempty"`
	Location string          `json:"location,omitempty"`
}

// Requirement is a buyer's published request for a diamond
type Requirement struct {
	RequirementID string            `json:"requirement_id"`
	BuyerID       string            `json:"buyer_id"`
	Spec          RequirementSpec   `json:"spec"`
	Budget        decimal.Decimal   `json:"budget"`
	Deadline      *time.Time        `json:"deadline,omitempty"`
	Status        RequirementStatus `json:"status"`
	UniquenessKey string            `json:"-"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// EffectiveStatus folds the deadline into the stored status. There is no
// background expiry, so a passed deadline is observed lazily.
func (r Requirement) EffectiveStatus(now time.Time) RequirementStatus {
	if r.Status == RequirementActive && r.Deadline != nil && now.After(*r.Deadline) {
		return RequirementExpired
	}
	return r.Status
}
