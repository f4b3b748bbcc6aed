package auction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"diamond-exchange/internal/events"
	"diamond-exchange/internal/marketerrors"
	"diamond-exchange/internal/metrics"
	"diamond-exchange/internal/models"
	"diamond-exchange/internal/policy"
	"diamond-exchange/internal/repository"
	"diamond-exchange/utils"

	"github.com/shopspring/decimal"
)

const (
	actCreate policy.Action = "auction.create"
	actUpdate policy.Action = "auction.update"
	actDelete policy.Action = "auction.delete"
)

var rules = policy.Table{
	actCreate: {policy.Owner, policy.Admin},
	actUpdate: {policy.Owner, policy.Admin},
	actDelete: {policy.Owner, policy.Admin},
}

// Transitioner moves inventory items between statuses inside a unit of work
type Transitioner interface {
	Transition(ctx context.Context, s repository.Store, itemID string, status models.ItemStatus, lock bool, changedBy string) (models.Item, error)
}

// CreateInput describes a new auction
type CreateInput struct {
	InventoryID string
	BasePrice   decimal.Decimal
	StartDate   time.Time
	EndDate     time.Time
}

// Patch changes an auction that has no bids. Nil fields are unchanged.
type Patch struct {
	BasePrice *decimal.Decimal
	StartDate *time.Time
	EndDate   *time.Time
}

// Filter narrows List. Phase is evaluated at call time.
type Filter struct {
	InventoryID string
	Phase       models.AuctionPhase
}

// View is an auction together with its phase at read time
type View struct {
	models.Auction
	Phase models.AuctionPhase `json:"phase"`
}

// Engine manages the auction lifecycle
type Engine struct {
	uow      repository.UnitOfWork
	ledger   Transitioner
	notifier events.Notifier
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewEngine creates a new auction Engine instance
func NewEngine(uow repository.UnitOfWork, ledger Transitioner, notifier events.Notifier, m *metrics.Metrics) *Engine {
	if notifier == nil {
		notifier = events.Discard{}
	}
	return &Engine{
		uow:      uow,
		ledger:   ledger,
		notifier: notifier,
		metrics:  m,
		now:      func() time.Time { return time.Now().UTC() },
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

func (e *Engine) view(a models.Auction) View {
	return View{Auction: a, Phase: models.PhaseAt(e.now(), a.StartDate, a.EndDate)}
}

// Create lists an available item. The auction row and the LISTED+locked item
// are written in one unit of work.
func (e *Engine) Create(ctx context.Context, actor models.Actor, in CreateInput) (View, error) {
	if err := validateTerms(in.BasePrice, in.StartDate, in.EndDate); err != nil {
		return View{}, e.observe("auction.create", err)
	}

	now := e.now()
	auction := models.Auction{
		AuctionID:   utils.GenerateID(),
		InventoryID: in.InventoryID,
		BasePrice:   in.BasePrice,
		CurrentBid:  in.BasePrice,
		BidIDs:      []string{},
		StartDate:   in.StartDate.UTC(),
		EndDate:     in.EndDate.UTC(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := e.uow.Do(ctx, "auction.create", func(ctx context.Context, s repository.Store) error {
		item, err := loadItem(ctx, s, in.InventoryID)
		if err != nil {
			return err
		}
		if !rules.Allows(actor, actCreate, policy.Subject{OwnerID: item.SellerID}) {
			return fmt.Errorf("auction: %w - item %s", marketerrors.ErrNotOwner, item.ItemID)
		}
		if item.Status != models.StatusAvailable || item.Locked {
			return fmt.Errorf("auction: %w - item %s is %s", marketerrors.ErrItemNotAvailable, item.ItemID, item.Status)
		}
		if in.BasePrice.LessThan(item.Price) {
			return fmt.Errorf("auction: %w - base %s below item price %s", marketerrors.ErrPriceTooLow, in.BasePrice, item.Price)
		}
		// an item is auctioned at most once; a settled auction keeps its row
		prior, err := s.ListAuctions(ctx, repository.AuctionFilter{InventoryID: item.ItemID})
		if err != nil {
			return fmt.Errorf("auction: failed to check auctions of %s: %w", item.ItemID, err)
		}
		if len(prior) > 0 {
			return fmt.Errorf("auction: %w - item %s already has auction %s", marketerrors.ErrItemNotAvailable, item.ItemID, prior[0].AuctionID)
		}

		if err := s.CreateAuction(ctx, auction); err != nil {
			return fmt.Errorf("auction: failed to create auction: %w", err)
		}
		_, err = e.ledger.Transition(ctx, s, item.ItemID, models.StatusListed, true, actor.ID)
		return err
	})
	if err != nil {
		return View{}, e.observe("auction.create", err)
	}

	e.metrics.AuctionCreated()
	e.notifier.Notify(ctx, events.New(events.AuctionCreated, auction.AuctionID, actor.ID, map[string]any{
		"inventory_id": auction.InventoryID,
		"base_price":   auction.BasePrice.String(),
	}))
	return e.view(auction), nil
}

// Update changes the terms of an auction nobody has bid on
func (e *Engine) Update(ctx context.Context, auctionID string, actor models.Actor, patch Patch) (View, error) {
	var updated models.Auction
	err := e.uow.Do(ctx, "auction.update", func(ctx context.Context, s repository.Store) error {
		auction, item, err := e.loadOwned(ctx, s, auctionID, actor, actUpdate)
		if err != nil {
			return err
		}
		if err := ensureNoBids(ctx, s, auction); err != nil {
			return err
		}

		if patch.BasePrice != nil {
			auction.BasePrice = *patch.BasePrice
		}
		if patch.StartDate != nil {
			auction.StartDate = patch.StartDate.UTC()
		}
		if patch.EndDate != nil {
			auction.EndDate = patch.EndDate.UTC()
		}
		if err := validateTerms(auction.BasePrice, auction.StartDate, auction.EndDate); err != nil {
			return err
		}
		if auction.BasePrice.LessThan(item.Price) {
			return fmt.Errorf("auction: %w - base %s below item price %s", marketerrors.ErrPriceTooLow, auction.BasePrice, item.Price)
		}
		auction.CurrentBid = auction.BasePrice
		auction.UpdatedAt = e.now()
		if err := s.SaveAuction(ctx, auction); err != nil {
			return fmt.Errorf("auction: failed to save auction %s: %w", auctionID, err)
		}
		updated = auction
		return nil
	})
	if err != nil {
		return View{}, e.observe("auction.update", err)
	}

	e.notifier.Notify(ctx, events.New(events.AuctionUpdated, auctionID, actor.ID, nil))
	return e.view(updated), nil
}

// Delete removes an auction nobody has bid on and releases its item
func (e *Engine) Delete(ctx context.Context, auctionID string, actor models.Actor) error {
	err := e.uow.Do(ctx, "auction.delete", func(ctx context.Context, s repository.Store) error {
		auction, item, err := e.loadOwned(ctx, s, auctionID, actor, actDelete)
		if err != nil {
			return err
		}
		if err := ensureNoBids(ctx, s, auction); err != nil {
			return err
		}
		if err := s.DeleteAuction(ctx, auctionID); err != nil {
			return fmt.Errorf("auction: failed to delete auction %s: %w", auctionID, err)
		}
		_, err = e.ledger.Transition(ctx, s, item.ItemID, models.StatusAvailable, false, actor.ID)
		return err
	})
	if err != nil {
		return e.observe("auction.delete", err)
	}

	e.notifier.Notify(ctx, events.New(events.AuctionDeleted, auctionID, actor.ID, nil))
	return nil
}

// Get returns one auction with its current phase
func (e *Engine) Get(ctx context.Context, auctionID string) (View, error) {
	var auction models.Auction
	err := e.uow.View(ctx, func(ctx context.Context, s repository.Store) error {
		var err error
		auction, err = Load(ctx, s, auctionID)
		return err
	})
	if err != nil {
		return View{}, err
	}
	return e.view(auction), nil
}

// List returns auctions matching filter
func (e *Engine) List(ctx context.Context, filter Filter) ([]View, error) {
	var auctions []models.Auction
	err := e.uow.View(ctx, func(ctx context.Context, s repository.Store) error {
		var err error
		auctions, err = s.ListAuctions(ctx, repository.AuctionFilter{InventoryID: filter.InventoryID})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("auction: failed to list auctions: %w", err)
	}

	out := make([]View, 0, len(auctions))
	for _, a := range auctions {
		v := e.view(a)
		if filter.Phase != "" && v.Phase != filter.Phase {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (e *Engine) loadOwned(ctx context.Context, s repository.Store, auctionID string, actor models.Actor, action policy.Action) (models.Auction, models.Item, error) {
	auction, err := Load(ctx, s, auctionID)
	if err != nil {
		return models.Auction{}, models.Item{}, err
	}
	item, err := loadItem(ctx, s, auction.InventoryID)
	if err != nil {
		return models.Auction{}, models.Item{}, err
	}
	if !rules.Allows(actor, action, policy.Subject{OwnerID: item.SellerID}) {
		return models.Auction{}, models.Item{}, fmt.Errorf("auction: %w - auction %s", marketerrors.ErrNotOwner, auctionID)
	}
	return auction, item, nil
}

func ensureNoBids(ctx context.Context, s repository.Store, auction models.Auction) error {
	if len(auction.BidIDs) > 0 {
		return fmt.Errorf("auction: %w - %d bids on %s", marketerrors.ErrHasBids, len(auction.BidIDs), auction.AuctionID)
	}
	bids, err := s.ListBids(ctx, repository.BidFilter{AuctionID: auction.AuctionID})
	if err != nil {
		return fmt.Errorf("auction: failed to list bids of %s: %w", auction.AuctionID, err)
	}
	if len(bids) > 0 {
		return fmt.Errorf("auction: %w - %d bids on %s", marketerrors.ErrHasBids, len(bids), auction.AuctionID)
	}
	return nil
}

func validateTerms(base decimal.Decimal, start, end time.Time) error {
	if !base.IsPositive() {
		return fmt.Errorf("auction: %w - base price must be positive", marketerrors.ErrValidation)
	}
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("auction: %w - start and end dates are required", marketerrors.ErrValidation)
	}
	if !end.After(start) {
		return fmt.Errorf("auction: %w - end date must be after start date", marketerrors.ErrValidation)
	}
	return nil
}

// Load reads an auction and reports a missing one as ErrAuctionNotFound
func Load(ctx context.Context, s repository.Store, auctionID string) (models.Auction, error) {
	auction, err := s.GetAuction(ctx, auctionID)
	if errors.Is(err, marketerrors.ErrNotFound) {
		return models.Auction{}, fmt.Errorf("auction: %w - %s", marketerrors.ErrAuctionNotFound, auctionID)
	}
	if err != nil {
		return models.Auction{}, fmt.Errorf("auction: failed to load %s: %w", auctionID, err)
	}
	return auction, nil
}

func loadItem(ctx context.Context, s repository.Store, itemID string) (models.Item, error) {
	item, err := s.GetItem(ctx, itemID)
	if errors.Is(err, marketerrors.ErrNotFound) {
		return models.Item{}, fmt.Errorf("auction: %w - %s", marketerrors.ErrItemNotFound, itemID)
	}
	if err != nil {
		return models.Item{}, fmt.Errorf("auction: failed to load item %s: %w", itemID, err)
	}
	return item, nil
}
