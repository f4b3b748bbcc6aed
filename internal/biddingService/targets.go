package bidding

import (
	"context"
	"fmt"

	auction "diamond-exchange/internal/auctionService"
	"diamond-exchange/internal/marketerrors"
	"diamond-exchange/internal/models"
	"diamond-exchange/internal/policy"
	"diamond-exchange/internal/repository"
	requirement "diamond-exchange/internal/requirementService"
)

const (
	actDecide   policy.Action = "bid.decide"
	actListBids policy.Action = "bid.list"
)

// The owner of an auction target is the item's seller; the owner of a
// requirement target is its buyer.
var rules = policy.Table{
	actDecide:   {policy.Owner, policy.Admin},
	actListBids: {policy.Owner, policy.Admin},
}

// target is the thing a bid was placed against
type target interface {
	owner() string
	accept(ctx context.Context, s repository.Store, bid models.Bid, actor models.Actor) error
}

func authorize(t target, actor models.Actor, action policy.Action) error {
	if !rules.Allows(actor, action, policy.Subject{OwnerID: t.owner()}) {
		return fmt.Errorf("bid: %w", marketerrors.ErrNotAuthorized)
	}
	return nil
}

type auctionTarget struct {
	ledger  Transitioner
	auction models.Auction
	item    models.Item
}

func (t auctionTarget) owner() string { return t.item.SellerID }

// accept puts the auctioned item on memo for the winning buyer
func (t auctionTarget) accept(ctx context.Context, s repository.Store, _ models.Bid, actor models.Actor) error {
	_, err := t.ledger.Transition(ctx, s, t.item.ItemID, models.StatusOnMemo, true, actor.ID)
	return err
}

type requirementTarget struct {
	ledger       Transitioner
	requirements RequirementCloser
	req          models.Requirement
}

func (t requirementTarget) owner() string { return t.req.BuyerID }

// accept closes the requirement and reserves the offered item, if any
func (t requirementTarget) accept(ctx context.Context, s repository.Store, bid models.Bid, actor models.Actor) error {
	if _, err := t.requirements.Close(ctx, s, t.req.RequirementID); err != nil {
		return err
	}
	if bid.InventoryID == "" {
		return nil
	}
	item, err := loadItem(ctx, s, bid.InventoryID)
	if err != nil {
		return err
	}
	if item.Locked {
		return fmt.Errorf("bid: %w - item %s is %s", marketerrors.ErrInventoryLocked, item.ItemID, item.Status)
	}
	_, err = t.ledger.Transition(ctx, s, item.ItemID, models.StatusOnMemo, true, actor.ID)
	return err
}

func (e *Engine) resolveTarget(ctx context.Context, s repository.Store, bid models.Bid) (target, error) {
	kind, id := bid.Target()
	switch kind {
	case models.TargetAuction:
		return e.auctionTarget(ctx, s, id)
	case models.TargetRequirement:
		return e.requirementTarget(ctx, s, id)
	}
	return nil, fmt.Errorf("bid: unknown target kind %q on bid %s", kind, bid.BidID)
}

func (e *Engine) auctionTarget(ctx context.Context, s repository.Store, auctionID string) (auctionTarget, error) {
	a, err := auction.Load(ctx, s, auctionID)
	if err != nil {
		return auctionTarget{}, err
	}
	item, err := loadItem(ctx, s, a.InventoryID)
	if err != nil {
		return auctionTarget{}, err
	}
	return auctionTarget{ledger: e.ledger, auction: a, item: item}, nil
}

func (e *Engine) requirementTarget(ctx context.Context, s repository.Store, requirementID string) (requirementTarget, error) {
	req, err := requirement.Load(ctx, s, requirementID)
	if err != nil {
		return requirementTarget{}, err
	}
	return requirementTarget{ledger: e.ledger, requirements: e.requirements, req: req}, nil
}

// ListAuctionBids returns every bid on an auction. Only the item's seller or
// an admin may see them.
func (e *Engine) ListAuctionBids(ctx context.Context, auctionID string, actor models.Actor) ([]models.Bid, error) {
	var out []models.Bid
	err := e.uow.View(ctx, func(ctx context.Context, s repository.Store) error {
		t, err := e.auctionTarget(ctx, s, auctionID)
		if err != nil {
			return err
		}
		if err := authorize(t, actor, actListBids); err != nil {
			return err
		}
		out, err = s.ListBids(ctx, repository.BidFilter{AuctionID: auctionID})
		return err
	})
	return out, e.observe("bid.list_auction", err)
}

// MyAuctionBid returns the caller's latest bid on an auction
func (e *Engine) MyAuctionBid(ctx context.Context, auctionID string, buyer models.Actor) (models.Bid, error) {
	return e.latest(ctx, "bid.mine_auction", repository.BidFilter{AuctionID: auctionID, BuyerID: buyer.ID}, func(ctx context.Context, s repository.Store) error {
		_, err := auction.Load(ctx, s, auctionID)
		return err
	})
}

// ListRequirementBids returns every offer on a requirement. Only its buyer or
// an admin may see them.
func (e *Engine) ListRequirementBids(ctx context.Context, requirementID string, actor models.Actor) ([]models.Bid, error) {
	var out []models.Bid
	err := e.uow.View(ctx, func(ctx context.Context, s repository.Store) error {
		t, err := e.requirementTarget(ctx, s, requirementID)
		if err != nil {
			return err
		}
		if err := authorize(t, actor, actListBids); err != nil {
			return err
		}
		out, err = s.ListBids(ctx, repository.BidFilter{RequirementID: requirementID})
		return err
	})
	return out, e.observe("bid.list_requirement", err)
}

// MyRequirementBid returns the caller's latest offer on a requirement
func (e *Engine) MyRequirementBid(ctx context.Context, requirementID string, seller models.Actor) (models.Bid, error) {
	return e.latest(ctx, "bid.mine_requirement", repository.BidFilter{RequirementID: requirementID, SellerID: seller.ID}, func(ctx context.Context, s repository.Store) error {
		_, err := requirement.Load(ctx, s, requirementID)
		return err
	})
}

func (e *Engine) latest(ctx context.Context, op string, filter repository.BidFilter, exists func(context.Context, repository.Store) error) (models.Bid, error) {
	var out models.Bid
	err := e.uow.View(ctx, func(ctx context.Context, s repository.Store) error {
		if err := exists(ctx, s); err != nil {
			return err
		}
		bids, err := s.ListBids(ctx, filter)
		if err != nil {
			return err
		}
		if len(bids) == 0 {
			return fmt.Errorf("bid: %w - no bid from caller", marketerrors.ErrBidNotFound)
		}
		out = bids[len(bids)-1]
		return nil
	})
	return out, e.observe(op, err)
}
