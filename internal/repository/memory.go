package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"diamond-exchange/internal/marketerrors"
	model "diamond-exchange/internal/models"
)

// MemoryRepo is a concurrency-safe in-memory implementation of Store.
// Uniqueness constraints are checked under the same lock as the write.
type MemoryRepo struct {
	mu           sync.RWMutex
	items        map[string]model.Item               // key: itemID
	statusLog    map[string][]model.InventoryStatusLog // key: itemID -> ordered entries
	auctions     map[string]model.Auction            // key: auctionID
	bids         map[string]model.Bid                // key: bidID
	requirements map[string]model.Requirement        // key: requirementID
	deals        map[string]model.Deal               // key: dealID
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		items:        make(map[string]model.Item),
		statusLog:    make(map[string][]model.InventoryStatusLog),
		auctions:     make(map[string]model.Auction),
		bids:         make(map[string]model.Bid),
		requirements: make(map[string]model.Requirement),
		deals:        make(map[string]model.Deal),
	}
}

// items

func (r *MemoryRepo) CreateItem(_ context.Context, item model.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ItemID]; ok {
		return fmt.Errorf("create item %s: %w", item.ItemID, marketerrors.ErrConflict)
	}
	for _, other := range r.items {
		if item.Barcode != "" && other.Barcode == item.Barcode {
			return fmt.Errorf("create item %s: barcode %s: %w", item.ItemID, item.Barcode, marketerrors.ErrConflict)
		}
	}
	r.items[item.ItemID] = item.Clone()
	return nil
}

func (r *MemoryRepo) GetItem(_ context.Context, itemID string) (model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[itemID]
	if !ok {
		return model.Item{}, fmt.Errorf("get item %s: %w", itemID, marketerrors.ErrNotFound)
	}
	return item.Clone(), nil
}

func (r *MemoryRepo) SaveItem(_ context.Context, item model.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ItemID]; !ok {
		return fmt.Errorf("save item %s: %w", item.ItemID, marketerrors.ErrNotFound)
	}
	r.items[item.ItemID] = item.Clone()
	return nil
}

func (r *MemoryRepo) DeleteItem(_ context.Context, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[itemID]; !ok {
		return fmt.Errorf("delete item %s: %w", itemID, marketerrors.ErrNotFound)
	}
	delete(r.items, itemID)
	return nil
}

func (r *MemoryRepo) ListItems(_ context.Context, filter ItemFilter) ([]model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Item, 0)
	for _, item := range r.items {
		if filter.SellerID != "" && item.SellerID != filter.SellerID {
			continue
		}
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		out = append(out, item.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return before(out[i].CreatedAt, out[j].CreatedAt, out[i].ItemID, out[j].ItemID)
	})
	return out, nil
}

// status log

func (r *MemoryRepo) AppendStatusLog(_ context.Context, entry model.InventoryStatusLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.statusLog[entry.ItemID] = append(r.statusLog[entry.ItemID], entry)
	return nil
}

func (r *MemoryRepo) DeleteStatusLog(_ context.Context, logID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for itemID, entries := range r.statusLog {
		for i, e := range entries {
			if e.LogID == logID {
				r.statusLog[itemID] = append(entries[:i:i], entries[i+1:]...)
				return nil
			}
		}
	}
	return fmt.Errorf("delete status log %s: %w", logID, marketerrors.ErrNotFound)
}

func (r *MemoryRepo) ListStatusLog(_ context.Context, itemID string) ([]model.InventoryStatusLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]model.InventoryStatusLog{}, r.statusLog[itemID]...), nil
}

// auctions

func (r *MemoryRepo) CreateAuction(_ context.Context, auction model.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.auctions[auction.AuctionID]; ok {
		return fmt.Errorf("create auction %s: %w", auction.AuctionID, marketerrors.ErrConflict)
	}
	r.auctions[auction.AuctionID] = auction.Clone()
	return nil
}

func (r *MemoryRepo) GetAuction(_ context.Context, auctionID string) (model.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	auction, ok := r.auctions[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, marketerrors.ErrNotFound)
	}
	return auction.Clone(), nil
}

func (r *MemoryRepo) SaveAuction(_ context.Context, auction model.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.auctions[auction.AuctionID]; !ok {
		return fmt.Errorf("save auction %s: %w", auction.AuctionID, marketerrors.ErrNotFound)
	}
	r.auctions[auction.AuctionID] = auction.Clone()
	return nil
}

func (r *MemoryRepo) DeleteAuction(_ context.Context, auctionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.auctions[auctionID]; !ok {
		return fmt.Errorf("delete auction %s: %w", auctionID, marketerrors.ErrNotFound)
	}
	delete(r.auctions, auctionID)
	return nil
}

func (r *MemoryRepo) ListAuctions(_ context.Context, filter AuctionFilter) ([]model.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Auction, 0)
	for _, a := range r.auctions {
		if filter.InventoryID != "" && a.InventoryID != filter.InventoryID {
			continue
		}
		out = append(out, a.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return before(out[i].CreatedAt, out[j].CreatedAt, out[i].AuctionID, out[j].AuctionID)
	})
	return out, nil
}

// bids

func (r *MemoryRepo) CreateBid(_ context.Context, bid model.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bids[bid.BidID]; ok {
		return fmt.Errorf("create bid %s: %w", bid.BidID, marketerrors.ErrConflict)
	}
	if err := r.checkBidConstraints(bid); err != nil {
		return fmt.Errorf("create bid %s: %w", bid.BidID, err)
	}
	r.bids[bid.BidID] = bid
	return nil
}

func (r *MemoryRepo) GetBid(_ context.Context, bidID string) (model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bid, ok := r.bids[bidID]
	if !ok {
		return model.Bid{}, fmt.Errorf("get bid %s: %w", bidID, marketerrors.ErrNotFound)
	}
	return bid, nil
}

func (r *MemoryRepo) SaveBid(_ context.Context, bid model.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bids[bid.BidID]; !ok {
		return fmt.Errorf("save bid %s: %w", bid.BidID, marketerrors.ErrNotFound)
	}
	if err := r.checkBidConstraints(bid); err != nil {
		return fmt.Errorf("save bid %s: %w", bid.BidID, err)
	}
	r.bids[bid.BidID] = bid
	return nil
}

func (r *MemoryRepo) DeleteBid(_ context.Context, bidID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bids[bidID]; !ok {
		return fmt.Errorf("delete bid %s: %w", bidID, marketerrors.ErrNotFound)
	}
	delete(r.bids, bidID)
	return nil
}

func (r *MemoryRepo) ListBids(_ context.Context, filter BidFilter) ([]model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Bid, 0)
	for _, b := range r.bids {
		if !matchBid(b, filter) {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		return before(out[i].CreatedAt, out[j].CreatedAt, out[i].BidID, out[j].BidID)
	})
	return out, nil
}

func matchBid(b model.Bid, f BidFilter) bool {
	switch {
	case f.AuctionID != "" && b.AuctionID != f.AuctionID:
		return false
	case f.RequirementID != "" && b.RequirementID != f.RequirementID:
		return false
	case f.BuyerID != "" && b.BuyerID != f.BuyerID:
		return false
	case f.SellerID != "" && b.SellerID != f.SellerID:
		return false
	case f.InventoryID != "" && b.InventoryID != f.InventoryID:
		return false
	case f.Status != "" && b.Status != f.Status:
		return false
	}
	return true
}

// checkBidConstraints must be called with r.mu held
func (r *MemoryRepo) checkBidConstraints(bid model.Bid) error {
	kind, targetID := bid.Target()
	for _, other := range r.bids {
		if other.BidID == bid.BidID {
			continue
		}
		otherKind, otherTarget := other.Target()
		if otherKind != kind || otherTarget != targetID {
			continue
		}
		if kind == model.TargetAuction {
			if bid.IsHighestBid && other.IsHighestBid {
				return fmt.Errorf("auction %s already has a highest bid: %w", targetID, marketerrors.ErrConflict)
			}
			if other.BuyerID == bid.BuyerID && other.Amount.Equal(bid.Amount) {
				return fmt.Errorf("duplicate amount %s by buyer %s: %w", bid.Amount, bid.BuyerID, marketerrors.ErrConflict)
			}
		}
		if kind == model.TargetRequirement && bid.Status == model.BidSubmitted &&
			other.Status == model.BidSubmitted && other.SellerID == bid.SellerID {
			return fmt.Errorf("seller %s has a submitted bid on requirement %s: %w", bid.SellerID, targetID, marketerrors.ErrConflict)
		}
		if bid.Status == model.BidAccepted && other.Status == model.BidAccepted {
			return fmt.Errorf("%s %s already has an accepted bid: %w", kind, targetID, marketerrors.ErrConflict)
		}
	}
	return nil
}

// requirements

func (r *MemoryRepo) CreateRequirement(_ context.Context, req model.Requirement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.requirements[req.RequirementID]; ok {
		return fmt.Errorf("create requirement %s: %w", req.RequirementID, marketerrors.ErrConflict)
	}
	if err := r.checkRequirementConstraints(req); err != nil {
		return fmt.Errorf("create requirement %s: %w", req.RequirementID, err)
	}
	r.requirements[req.RequirementID] = cloneRequirement(req)
	return nil
}

func (r *MemoryRepo) GetRequirement(_ context.Context, requirementID string) (model.Requirement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	req, ok := r.requirements[requirementID]
	if !ok {
		return model.Requirement{}, fmt.Errorf("get requirement %s: %w", requirementID, marketerrors.ErrNotFound)
	}
	return cloneRequirement(req), nil
}

func (r *MemoryRepo) SaveRequirement(_ context.Context, req model.Requirement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.requirements[req.RequirementID]; !ok {
		return fmt.Errorf("save requirement %s: %w", req.RequirementID, marketerrors.ErrNotFound)
	}
	if err := r.checkRequirementConstraints(req); err != nil {
		return fmt.Errorf("save requirement %s: %w", req.RequirementID, err)
	}
	r.requirements[req.RequirementID] = cloneRequirement(req)
	return nil
}

func (r *MemoryRepo) DeleteRequirement(_ context.Context, requirementID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.requirements[requirementID]; !ok {
		return fmt.Errorf("delete requirement %s: %w", requirementID, marketerrors.ErrNotFound)
	}
	delete(r.requirements, requirementID)
	return nil
}

func (r *MemoryRepo) ListRequirements(_ context.Context, filter RequirementFilter) ([]model.Requirement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Requirement, 0)
	for _, req := range r.requirements {
		if filter.BuyerID != "" && req.BuyerID != filter.BuyerID {
			continue
		}
		if filter.Status != "" && req.Status != filter.Status {
			continue
		}
		if filter.UniquenessKey != "" && req.UniquenessKey != filter.UniquenessKey {
			continue
		}
		out = append(out, cloneRequirement(req))
	}
	sort.Slice(out, func(i, j int) bool {
		return before(out[i].CreatedAt, out[j].CreatedAt, out[i].RequirementID, out[j].RequirementID)
	})
	return out, nil
}

// checkRequirementConstraints must be called with r.mu held
func (r *MemoryRepo) checkRequirementConstraints(req model.Requirement) error {
	if req.Status != model.RequirementActive || req.UniquenessKey == "" {
		return nil
	}
	for _, other := range r.requirements {
		if other.RequirementID != req.RequirementID && other.Status == model.RequirementActive &&
			other.UniquenessKey == req.UniquenessKey {
			return fmt.Errorf("active requirement %s holds key: %w", other.RequirementID, marketerrors.ErrConflict)
		}
	}
	return nil
}

func cloneRequirement(req model.Requirement) model.Requirement {
	if req.Deadline != nil {
		d := *req.Deadline
		req.Deadline = &d
	}
	return req
}

// deals

func (r *MemoryRepo) CreateDeal(_ context.Context, deal model.Deal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.deals[deal.DealID]; ok {
		return fmt.Errorf("create deal %s: %w", deal.DealID, marketerrors.ErrConflict)
	}
	for _, other := range r.deals {
		if other.BidID == deal.BidID {
			return fmt.Errorf("create deal %s: bid %s: %w", deal.DealID, deal.BidID, marketerrors.ErrConflict)
		}
	}
	r.deals[deal.DealID] = deal.Clone()
	return nil
}

func (r *MemoryRepo) GetDeal(_ context.Context, dealID string) (model.Deal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	deal, ok := r.deals[dealID]
	if !ok {
		return model.Deal{}, fmt.Errorf("get deal %s: %w", dealID, marketerrors.ErrNotFound)
	}
	return deal.Clone(), nil
}

func (r *MemoryRepo) SaveDeal(_ context.Context, deal model.Deal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.deals[deal.DealID]; !ok {
		return fmt.Errorf("save deal %s: %w", deal.DealID, marketerrors.ErrNotFound)
	}
	r.deals[deal.DealID] = deal.Clone()
	return nil
}

func (r *MemoryRepo) DeleteDeal(_ context.Context, dealID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.deals[dealID]; !ok {
		return fmt.Errorf("delete deal %s: %w", dealID, marketerrors.ErrNotFound)
	}
	delete(r.deals, dealID)
	return nil
}

func (r *MemoryRepo) ListDeals(_ context.Context, filter DealFilter) ([]model.Deal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Deal, 0)
	for _, d := range r.deals {
		if filter.ParticipantID != "" && !d.IsParticipant(filter.ParticipantID) {
			continue
		}
		if filter.BidID != "" && d.BidID != filter.BidID {
			continue
		}
		out = append(out, d.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return before(out[i].CreatedAt, out[j].CreatedAt, out[i].DealID, out[j].DealID)
	})
	return out, nil
}

// memorySnapshot is a deep copy of every table, used to roll back a unit
type memorySnapshot struct {
	items        map[string]model.Item
	statusLog    map[string][]model.InventoryStatusLog
	auctions     map[string]model.Auction
	bids         map[string]model.Bid
	requirements map[string]model.Requirement
	deals        map[string]model.Deal
}

func (r *MemoryRepo) snapshot() memorySnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := memorySnapshot{
		items:        make(map[string]model.Item, len(r.items)),
		statusLog:    make(map[string][]model.InventoryStatusLog, len(r.statusLog)),
		auctions:     make(map[string]model.Auction, len(r.auctions)),
		bids:         make(map[string]model.Bid, len(r.bids)),
		requirements: make(map[string]model.Requirement, len(r.requirements)),
		deals:        make(map[string]model.Deal, len(r.deals)),
	}
	for k, v := range r.items {
		s.items[k] = v.Clone()
	}
	for k, v := range r.statusLog {
		s.statusLog[k] = append([]model.InventoryStatusLog(nil), v...)
	}
	for k, v := range r.auctions {
		s.auctions[k] = v.Clone()
	}
	for k, v := range r.bids {
		s.bids[k] = v
	}
	for k, v := range r.requirements {
		s.requirements[k] = cloneRequirement(v)
	}
	for k, v := range r.deals {
		s.deals[k] = v.Clone()
	}
	return s
}

func (r *MemoryRepo) restore(s memorySnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = s.items
	r.statusLog = s.statusLog
	r.auctions = s.auctions
	r.bids = s.bids
	r.requirements = s.requirements
	r.deals = s.deals
}
