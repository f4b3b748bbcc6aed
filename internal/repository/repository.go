package repository

import (
	"context"

	model "diamond-exchange/internal/models"
)

// ItemFilter narrows ListItems. Zero values match everything.
type ItemFilter struct {
	SellerID string
	Status   model.ItemStatus
}

// AuctionFilter narrows ListAuctions
type AuctionFilter struct {
	InventoryID string
}

// BidFilter narrows ListBids
type BidFilter struct {
	AuctionID     string
	RequirementID string
	BuyerID       string
	SellerID      string
	InventoryID   string
	Status        model.BidStatus
}

// RequirementFilter narrows ListRequirements
type RequirementFilter struct {
	BuyerID       string
	Status        model.RequirementStatus
	UniquenessKey string
}

// DealFilter narrows ListDeals. ParticipantID matches either side of the deal.
type DealFilter struct {
	ParticipantID string
	BidID         string
}

// ItemStore persists inventory items
type ItemStore interface {
	CreateItem(ctx context.Context, item model.Item) error
	GetItem(ctx context.Context, itemID string) (model.Item, error)
	SaveItem(ctx context.Context, item model.Item) error
	DeleteItem(ctx context.Context, itemID string) error
	ListItems(ctx context.Context, filter ItemFilter) ([]model.Item, error)
}

// StatusLogStore persists the inventory status history
type StatusLogStore interface {
	AppendStatusLog(ctx context.Context, entry model.InventoryStatusLog) error
	DeleteStatusLog(ctx context.Context, logID string) error
	ListStatusLog(ctx context.Context, itemID string) ([]model.InventoryStatusLog, error)
}

// AuctionStore persists auctions
type AuctionStore interface {
	CreateAuction(ctx context.Context, auction model.Auction) error
	GetAuction(ctx context.Context, auctionID string) (model.Auction, error)
	SaveAuction(ctx context.Context, auction model.Auction) error
	DeleteAuction(ctx context.Context, auctionID string) error
	ListAuctions(ctx context.Context, filter AuctionFilter) ([]model.Auction, error)
}

// BidStore persists bids of both target kinds. Implementations enforce:
// one highest bid per auction, unique (auction, buyer, amount), one submitted
// bid per (requirement, seller) and one accepted bid per target.
type BidStore interface {
	CreateBid(ctx context.Context, bid model.Bid) error
	GetBid(ctx context.Context, bidID string) (model.Bid, error)
	SaveBid(ctx context.Context, bid model.Bid) error
	DeleteBid(ctx context.Context, bidID string) error
	ListBids(ctx context.Context, filter BidFilter) ([]model.Bid, error)
}

// RequirementStore persists requirements. Active requirements are unique on
// their uniqueness key.
type RequirementStore interface {
	CreateRequirement(ctx context.Context, req model.Requirement) error
	GetRequirement(ctx context.Context, requirementID string) (model.Requirement, error)
	SaveRequirement(ctx context.Context, req model.Requirement) error
	DeleteRequirement(ctx context.Context, requirementID string) error
	ListRequirements(ctx context.Context, filter RequirementFilter) ([]model.Requirement, error)
}

// DealStore persists deals. BidID is unique.
type DealStore interface {
	CreateDeal(ctx context.Context, deal model.Deal) error
	GetDeal(ctx context.Context, dealID string) (model.Deal, error)
	SaveDeal(ctx context.Context, deal model.Deal) error
	DeleteDeal(ctx context.Context, dealID string) error
	ListDeals(ctx context.Context, filter DealFilter) ([]model.Deal, error)
}

// Store is the full set of marketplace stores visible inside a unit of work.
// Missing records are reported as marketerrors.ErrNotFound and constraint
// violations as marketerrors.ErrConflict.
type Store interface {
	ItemStore
	StatusLogStore
	AuctionStore
	BidStore
	RequirementStore
	DealStore
}

// ConsistencyTier tells callers what a UnitOfWork guarantees
type ConsistencyTier string

const (
	// TierTransactional commits every write of a unit or none of them
	TierTransactional ConsistencyTier = "transactional"
	// TierBestEffort applies writes as they happen and compensates on failure.
	// Compensations that fail are surfaced as reconciliation tasks.
	TierBestEffort ConsistencyTier = "best-effort"
)

// UnitOfWork runs a group of store operations under one consistency discipline
type UnitOfWork interface {
	// Do runs fn as one unit. A non-nil error from fn undoes the unit's writes.
	Do(ctx context.Context, op string, fn func(ctx context.Context, s Store) error) error
	// View runs read-only work against committed state
	View(ctx context.Context, fn func(ctx context.Context, s Store) error) error
	Tier() ConsistencyTier
}
