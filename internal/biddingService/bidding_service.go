package bidding

import (
	"context"
	"errors"
	"fmt"
	"time"

	auction "diamond-exchange/internal/auctionService"
	"diamond-exchange/internal/events"
	"diamond-exchange/internal/marketerrors"
	"diamond-exchange/internal/metrics"
	"diamond-exchange/internal/models"
	"diamond-exchange/internal/repository"
	requirement "diamond-exchange/internal/requirementService"
	"diamond-exchange/utils"

	"github.com/shopspring/decimal"
)

// Transitioner moves inventory items between statuses inside a unit of work
type Transitioner interface {
	Transition(ctx context.Context, s repository.Store, itemID string, status models.ItemStatus, lock bool, changedBy string) (models.Item, error)
}

// RequirementCloser closes a requirement inside a unit of work
type RequirementCloser interface {
	Close(ctx context.Context, s repository.Store, requirementID string) (models.Requirement, error)
}

// Offer is a seller's bid against a buyer requirement
type Offer struct {
	Amount      decimal.Decimal
	InventoryID string
	Note        string
}

// Engine validates and records bids against auctions and requirements
type Engine struct {
	uow          repository.UnitOfWork
	ledger       Transitioner
	requirements RequirementCloser
	notifier     events.Notifier
	metrics      *metrics.Metrics
	now          func() time.Time
}

// NewEngine creates a new bid Engine instance
func NewEngine(uow repository.UnitOfWork, ledger Transitioner, requirements RequirementCloser, notifier events.Notifier, m *metrics.Metrics) *Engine {
	if notifier == nil {
		notifier = events.Discard{}
	}
	return &Engine{
		uow:          uow,
		ledger:       ledger,
		requirements: requirements,
		notifier:     notifier,
		metrics:      m,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the engine clock
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

func (e *Engine) observe(op string, err error) error {
	if err != nil {
		e.metrics.Failure(op, marketerrors.CodeOf(err))
	}
	return err
}

// SubmitAuctionBid places a buyer's bid on an open auction. The prior highest
// flag, the new bid, the auction aggregate and the item's tracked price are
// written in one unit of work; the one-highest-bid storage constraint is the
// backstop when units interleave.
func (e *Engine) SubmitAuctionBid(ctx context.Context, auctionID string, buyer models.Actor, amount decimal.Decimal) (models.Bid, error) {
	if buyer.ID == "" {
		return models.Bid{}, e.observe("bid.submit_auction", fmt.Errorf("bid: %w - missing buyer", marketerrors.ErrNotAuthorized))
	}
	if !amount.IsPositive() {
		return models.Bid{}, e.observe("bid.submit_auction", fmt.Errorf("bid: %w - amount must be positive", marketerrors.ErrValidation))
	}

	var (
		bid         models.Bid
		outbidBuyer string
	)
	err := e.uow.Do(ctx, "bid.submit_auction", func(ctx context.Context, s repository.Store) error {
		a, err := auction.Load(ctx, s, auctionID)
		if err != nil {
			return err
		}
		now := e.now()
		switch models.PhaseAt(now, a.StartDate, a.EndDate) {
		case models.PhasePending:
			return fmt.Errorf("bid: %w - auction %s opens at %s", marketerrors.ErrNotStarted, auctionID, a.StartDate.Format(time.RFC3339))
		case models.PhaseClosed:
			return fmt.Errorf("bid: %w - auction %s closed at %s", marketerrors.ErrEnded, auctionID, a.EndDate.Format(time.RFC3339))
		}
		settled, err := s.ListBids(ctx, repository.BidFilter{AuctionID: auctionID, Status: models.BidAccepted})
		if err != nil {
			return fmt.Errorf("bid: failed to check accepted bids: %w", err)
		}
		if len(settled) > 0 {
			return fmt.Errorf("bid: %w - auction %s settled with bid %s", marketerrors.ErrAlreadyAccepted, auctionID, settled[0].BidID)
		}

		item, err := loadItem(ctx, s, a.InventoryID)
		if err != nil {
			return err
		}
		if item.SellerID == buyer.ID {
			return fmt.Errorf("bid: %w - auction %s", marketerrors.ErrSelfBid, auctionID)
		}
		if item.Status != models.StatusListed {
			return fmt.Errorf("bid: %w - item %s is %s", marketerrors.ErrUnavailable, item.ItemID, item.Status)
		}
		if floor := a.Floor(); amount.LessThanOrEqual(floor) {
			return fmt.Errorf("bid: %w - current bid is %s", marketerrors.ErrTooLow, floor)
		}
		if a.HighestBidderID == buyer.ID {
			return fmt.Errorf("bid: %w - auction %s", marketerrors.ErrAlreadyHighest, auctionID)
		}

		if a.HighestBidID != "" {
			if err := clearHighest(ctx, s, a.HighestBidID, now); err != nil {
				return err
			}
		}

		bid = models.Bid{
			BidID:        utils.GenerateID(),
			AuctionID:    auctionID,
			BuyerID:      buyer.ID,
			InventoryID:  item.ItemID,
			Amount:       amount,
			Status:       models.BidSubmitted,
			IsHighestBid: true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.CreateBid(ctx, bid); err != nil {
			return auctionBidConflict(ctx, s, bid, err)
		}

		outbidBuyer = a.HighestBidderID
		a.CurrentBid = amount
		a.HighestBidderID = buyer.ID
		a.HighestBidID = bid.BidID
		a.BidIDs = append(a.BidIDs, bid.BidID)
		a.UpdatedAt = now
		if err := s.SaveAuction(ctx, a); err != nil {
			return fmt.Errorf("bid: failed to update auction %s: %w", auctionID, err)
		}

		item.CurrentBid = amount
		item.UpdatedAt = now
		if err := s.SaveItem(ctx, item); err != nil {
			return fmt.Errorf("bid: failed to update item %s: %w", item.ItemID, err)
		}
		return nil
	})
	if err != nil {
		return models.Bid{}, e.observe("bid.submit_auction", err)
	}

	e.metrics.BidSubmitted(string(models.TargetAuction))
	e.notifier.Notify(ctx, events.New(events.BidSubmitted, auctionID, buyer.ID, map[string]any{
		"bid_id":       bid.BidID,
		"target":       string(models.TargetAuction),
		"amount":       amount.String(),
		"outbid_buyer": outbidBuyer,
	}))
	return bid, nil
}

// clearHighest drops the highest flag of the previous leader. A flag that is
// already clear needs no write.
func clearHighest(ctx context.Context, s repository.Store, bidID string, now time.Time) error {
	prior, err := s.GetBid(ctx, bidID)
	if errors.Is(err, marketerrors.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("bid: failed to load previous highest bid %s: %w", bidID, err)
	}
	if !prior.IsHighestBid {
		return nil
	}
	prior.IsHighestBid = false
	prior.UpdatedAt = now
	if err := s.SaveBid(ctx, prior); err != nil {
		return fmt.Errorf("bid: failed to clear highest flag on %s: %w", bidID, err)
	}
	return nil
}

// auctionBidConflict tells a duplicate (auction, buyer, amount) apart from a
// concurrent bid that took the highest position first
func auctionBidConflict(ctx context.Context, s repository.Store, bid models.Bid, err error) error {
	if !errors.Is(err, marketerrors.ErrConflict) {
		return fmt.Errorf("bid: failed to store bid: %w", err)
	}
	mine, listErr := s.ListBids(ctx, repository.BidFilter{AuctionID: bid.AuctionID, BuyerID: bid.BuyerID})
	if listErr == nil {
		for _, b := range mine {
			if b.BidID != bid.BidID && b.Amount.Equal(bid.Amount) {
				return fmt.Errorf("bid: %w - %s on auction %s", marketerrors.ErrDuplicateBid, bid.Amount, bid.AuctionID)
			}
		}
	}
	return fmt.Errorf("bid: %w - auction %s", marketerrors.ErrHighestBidTaken, bid.AuctionID)
}

// SubmitRequirementBid records a seller's offer against an active requirement
func (e *Engine) SubmitRequirementBid(ctx context.Context, requirementID string, seller models.Actor, offer Offer) (models.Bid, error) {
	if seller.ID == "" {
		return models.Bid{}, e.observe("bid.submit_requirement", fmt.Errorf("bid: %w - missing seller", marketerrors.ErrNotAuthorized))
	}
	if !offer.Amount.IsPositive() {
		return models.Bid{}, e.observe("bid.submit_requirement", fmt.Errorf("bid: %w - amount must be positive", marketerrors.ErrValidation))
	}

	var bid models.Bid
	err := e.uow.Do(ctx, "bid.submit_requirement", func(ctx context.Context, s repository.Store) error {
		req, err := requirement.Load(ctx, s, requirementID)
		if err != nil {
			return err
		}
		now := e.now()
		if status := req.EffectiveStatus(now); status != models.RequirementActive {
			return fmt.Errorf("bid: %w - requirement %s is %s", marketerrors.ErrNotActive, requirementID, status)
		}
		if req.BuyerID == seller.ID {
			return fmt.Errorf("bid: %w - requirement %s", marketerrors.ErrSelfBid, requirementID)
		}
		if offer.InventoryID != "" {
			item, err := loadItem(ctx, s, offer.InventoryID)
			if err != nil {
				return err
			}
			if item.SellerID != seller.ID {
				return fmt.Errorf("bid: %w - item %s", marketerrors.ErrNotOwnerOfInventory, item.ItemID)
			}
			if item.Locked {
				return fmt.Errorf("bid: %w - item %s is %s", marketerrors.ErrInventoryLocked, item.ItemID, item.Status)
			}
		}

		bid = models.Bid{
			BidID:         utils.GenerateID(),
			RequirementID: requirementID,
			SellerID:      seller.ID,
			InventoryID:   offer.InventoryID,
			Amount:        offer.Amount,
			Note:          offer.Note,
			Status:        models.BidSubmitted,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.CreateBid(ctx, bid); err != nil {
			if errors.Is(err, marketerrors.ErrConflict) {
				return fmt.Errorf("bid: %w - requirement %s", marketerrors.ErrActiveBidExists, requirementID)
			}
			return fmt.Errorf("bid: failed to store bid: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Bid{}, e.observe("bid.submit_requirement", err)
	}

	e.metrics.BidSubmitted(string(models.TargetRequirement))
	e.notifier.Notify(ctx, events.New(events.BidSubmitted, requirementID, seller.ID, map[string]any{
		"bid_id": bid.BidID,
		"target": string(models.TargetRequirement),
		"amount": offer.Amount.String(),
	}))
	return bid, nil
}

// UpdateStatus moves a SUBMITTED bid to a terminal status. Accepting a bid
// applies its target's side effects and rejects every other open bid on the
// same target in the same unit of work. Repeating a rejection or expiry is a
// no-op.
func (e *Engine) UpdateStatus(ctx context.Context, bidID string, status models.BidStatus, actor models.Actor) (models.Bid, error) {
	switch status {
	case models.BidAccepted, models.BidRejected, models.BidExpired:
	default:
		return models.Bid{}, e.observe("bid.update_status", fmt.Errorf("bid: %w - cannot move a bid to %q", marketerrors.ErrValidation, status))
	}

	var (
		bid      models.Bid
		changed  bool
		rejected []string
	)
	err := e.uow.Do(ctx, "bid.update_status", func(ctx context.Context, s repository.Store) error {
		var err error
		bid, err = loadBid(ctx, s, bidID)
		if err != nil {
			return err
		}
		repeat := bid.Status.Terminal() && bid.Status == status && status != models.BidAccepted
		if bid.Status.Terminal() && !repeat {
			return fmt.Errorf("bid: %w - bid %s is %s", marketerrors.ErrNotSubmitted, bidID, bid.Status)
		}
		t, err := e.resolveTarget(ctx, s, bid)
		if err != nil {
			return err
		}
		if err := authorize(t, actor, actDecide); err != nil {
			return err
		}
		if repeat {
			return nil
		}

		now := e.now()
		if status != models.BidAccepted {
			bid.Status = status
			bid.UpdatedAt = now
			if err := s.SaveBid(ctx, bid); err != nil {
				return fmt.Errorf("bid: failed to update bid %s: %w", bidID, err)
			}
			changed = true
			return nil
		}

		kind, targetID := bid.Target()
		filter := targetFilter(kind, targetID)
		filter.Status = models.BidAccepted
		accepted, err := s.ListBids(ctx, filter)
		if err != nil {
			return fmt.Errorf("bid: failed to check accepted bids: %w", err)
		}
		if len(accepted) > 0 {
			return fmt.Errorf("bid: %w - bid %s", marketerrors.ErrAlreadyAccepted, accepted[0].BidID)
		}

		bid.Status = models.BidAccepted
		bid.UpdatedAt = now
		if err := s.SaveBid(ctx, bid); err != nil {
			if errors.Is(err, marketerrors.ErrConflict) {
				return fmt.Errorf("bid: %w - %s %s", marketerrors.ErrAlreadyAccepted, kind, targetID)
			}
			return fmt.Errorf("bid: failed to accept bid %s: %w", bidID, err)
		}
		if err := t.accept(ctx, s, bid, actor); err != nil {
			return err
		}

		filter.Status = models.BidSubmitted
		open, err := s.ListBids(ctx, filter)
		if err != nil {
			return fmt.Errorf("bid: failed to list open bids: %w", err)
		}
		for _, other := range open {
			if other.BidID == bid.BidID {
				continue
			}
			other.Status = models.BidRejected
			other.UpdatedAt = now
			if err := s.SaveBid(ctx, other); err != nil {
				return fmt.Errorf("bid: failed to reject bid %s: %w", other.BidID, err)
			}
			rejected = append(rejected, other.BidID)
		}
		changed = true
		return nil
	})
	if err != nil {
		return models.Bid{}, e.observe("bid.update_status", err)
	}
	if !changed {
		return bid, nil
	}

	kind, targetID := bid.Target()
	e.metrics.BidStatusChanged(string(kind), string(status))
	e.notifier.Notify(ctx, events.New(statusEvent(status), bid.BidID, actor.ID, map[string]any{
		"target":    string(kind),
		"target_id": targetID,
		"rejected":  rejected,
	}))
	for _, id := range rejected {
		e.metrics.BidStatusChanged(string(kind), string(models.BidRejected))
		e.notifier.Notify(ctx, events.New(events.BidRejected, id, actor.ID, map[string]any{
			"target":    string(kind),
			"target_id": targetID,
		}))
	}
	if kind == models.TargetRequirement && status == models.BidAccepted {
		e.notifier.Notify(ctx, events.New(events.RequirementClosed, targetID, actor.ID, map[string]any{
			"bid_id":       bid.BidID,
			"inventory_id": bid.InventoryID,
		}))
	}
	return bid, nil
}

func statusEvent(status models.BidStatus) events.Type {
	switch status {
	case models.BidAccepted:
		return events.BidAccepted
	case models.BidExpired:
		return events.BidExpired
	default:
		return events.BidRejected
	}
}

func targetFilter(kind models.TargetKind, targetID string) repository.BidFilter {
	if kind == models.TargetAuction {
		return repository.BidFilter{AuctionID: targetID}
	}
	return repository.BidFilter{RequirementID: targetID}
}

func loadBid(ctx context.Context, s repository.Store, bidID string) (models.Bid, error) {
	bid, err := s.GetBid(ctx, bidID)
	if errors.Is(err, marketerrors.ErrNotFound) {
		return models.Bid{}, fmt.Errorf("bid: %w - %s", marketerrors.ErrBidNotFound, bidID)
	}
	if err != nil {
		return models.Bid{}, fmt.Errorf("bid: failed to load %s: %w", bidID, err)
	}
	return bid, nil
}

func loadItem(ctx context.Context, s repository.Store, itemID string) (models.Item, error) {
	item, err := s.GetItem(ctx, itemID)
	if errors.Is(err, marketerrors.ErrNotFound) {
		return models.Item{}, fmt.Errorf("bid: %w - %s", marketerrors.ErrItemNotFound, itemID)
	}
	if err != nil {
		return models.Item{}, fmt.Errorf("bid: failed to load item %s: %w", itemID, err)
	}
	return item, nil
}
