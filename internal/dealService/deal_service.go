package deal

import (
	"context"
	"errors"
	"fmt"
	"time"

	auction "diamond-exchange/internal/auctionService"
	"diamond-exchange/internal/document"
	"diamond-exchange/internal/events"
	"diamond-exchange/internal/marketerrors"
	"diamond-exchange/internal/metrics"
	"diamond-exchange/internal/models"
	"diamond-exchange/internal/policy"
	"diamond-exchange/internal/repository"
	requirement "diamond-exchange/internal/requirementService"
	"diamond-exchange/utils"
)

const (
	actCreate  policy.Action = "deal.create"
	actView    policy.Action = "deal.view"
	actInvoice policy.Action = "deal.invoice"
)

func moveTo(status models.DealStatus) policy.Action {
	return policy.Action("deal.move." + string(status))
}

var rules = policy.Table{
	actCreate:  {policy.Seller},
	actView:    {policy.Buyer, policy.Seller, policy.Admin},
	actInvoice: {policy.Buyer, policy.Seller, policy.Admin},

	moveTo(models.DealPaymentPending): {policy.Buyer, policy.Seller, policy.Admin},
	moveTo(models.DealInEscrow):       {policy.Buyer, policy.Seller, policy.Admin},
	moveTo(models.DealShipped):        {policy.Seller, policy.Admin},
	moveTo(models.DealDelivered):      {policy.Buyer, policy.Admin},
	moveTo(models.DealCompleted):      {policy.Admin},
	moveTo(models.DealCancelled):      {policy.Buyer, policy.Seller, policy.Admin},
	moveTo(models.DealDisputed):       {policy.Buyer, policy.Seller, policy.Admin},
}

// Transitioner moves inventory items between statuses inside a unit of work
type Transitioner interface {
	Transition(ctx context.Context, s repository.Store, itemID string, status models.ItemStatus, lock bool, changedBy string) (models.Item, error)
}

// Details carries the optional data recorded alongside a status change
type Details struct {
	PaymentMethod  string
	TransactionID  string
	Courier        string
	TrackingNumber string
	Reason         string
	Resolution     string
}

// Change requests a deal status transition
type Change struct {
	Status  models.DealStatus
	Details Details
}

// Engine materializes deals from accepted bids and drives their lifecycle
type Engine struct {
	uow      repository.UnitOfWork
	ledger   Transitioner
	renderer document.Renderer
	storage  document.ObjectStorage
	notifier events.Notifier
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewEngine creates a new deal Engine instance
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

// WithDocuments enables invoice generation
func (e *Engine) WithDocuments(renderer document.Renderer, storage document.ObjectStorage) *Engine {
	e.renderer = renderer
	e.storage = storage
	return e
}

func (e *Engine) observe(op string, err error) error {
	if err != nil {
		e.metrics.Failure(op, marketerrors.CodeOf(err))
	}
	return err
}

func subject(d models.Deal) policy.Subject {
	return policy.Subject{BuyerID: d.BuyerID, SellerID: d.SellerID}
}

// Create snapshots an accepted bid into a new deal. Only the selling side of
// the bid may do so, and a bid yields at most one deal.
func (e *Engine) Create(ctx context.Context, bidID string, actor models.Actor) (models.Deal, error) {
	if !utils.ValidID(bidID) {
		return models.Deal{}, e.observe("deal.create", fmt.Errorf("deal: %w - bid id %q", marketerrors.ErrInvalidID, bidID))
	}

	var deal models.Deal
	err := e.uow.Do(ctx, "deal.create", func(ctx context.Context, s repository.Store) error {
		existing, err := s.ListDeals(ctx, repository.DealFilter{BidID: bidID})
		if err != nil {
			return fmt.Errorf("deal: failed to check existing deals: %w", err)
		}
		if len(existing) > 0 {
			return fmt.Errorf("deal: %w - %s", marketerrors.ErrDuplicateDeal, existing[0].DealID)
		}

		bid, err := s.GetBid(ctx, bidID)
		if errors.Is(err, marketerrors.ErrNotFound) {
			return fmt.Errorf("deal: %w - %s", marketerrors.ErrBidNotFound, bidID)
		}
		if err != nil {
			return fmt.Errorf("deal: failed to load bid %s: %w", bidID, err)
		}
		if bid.Status != models.BidAccepted {
			return fmt.Errorf("deal: %w - bid %s is %s", marketerrors.ErrBidNotAccepted, bidID, bid.Status)
		}

		now := e.now()
		deal, err = snapshot(ctx, s, bid)
		if err != nil {
			return err
		}
		if !rules.Allows(actor, actCreate, subject(deal)) {
			return fmt.Errorf("deal: %w - only the seller may open a deal", marketerrors.ErrNotAuthorized)
		}

		deal.DealID = utils.GenerateID()
		deal.Status = models.DealCreated
		deal.History = []models.DealHistoryEntry{{Status: models.DealCreated, ChangedBy: actor.ID, ChangedAt: now}}
		deal.CreatedAt = now
		deal.UpdatedAt = now
		if err := s.CreateDeal(ctx, deal); err != nil {
			if errors.Is(err, marketerrors.ErrConflict) {
				return fmt.Errorf("deal: %w - bid %s", marketerrors.ErrDuplicateDeal, bidID)
			}
			return fmt.Errorf("deal: failed to store deal: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Deal{}, e.observe("deal.create", err)
	}

	e.metrics.DealCreated()
	e.notifier.Notify(ctx, events.New(events.DealCreated, deal.DealID, actor.ID, map[string]any{
		"bid_id":    deal.BidID,
		"buyer_id":  deal.BuyerID,
		"seller_id": deal.SellerID,
		"amount":    deal.AgreedAmount.String(),
	}))
	return deal, nil
}

// snapshot resolves the parties and terms of the deal an accepted bid becomes
func snapshot(ctx context.Context, s repository.Store, bid models.Bid) (models.Deal, error) {
	deal := models.Deal{
		BidID:        bid.BidID,
		InventoryID:  bid.InventoryID,
		AgreedAmount: bid.Amount,
		Currency:     "USD",
	}
	switch kind, id := bid.Target(); kind {
	case models.TargetAuction:
		a, err := auction.Load(ctx, s, id)
		if err != nil {
			return models.Deal{}, err
		}
		item, err := loadItem(ctx, s, a.InventoryID)
		if err != nil {
			return models.Deal{}, err
		}
		deal.AuctionID = a.AuctionID
		deal.InventoryID = item.ItemID
		deal.BuyerID = bid.BuyerID
		deal.SellerID = item.SellerID
		deal.Currency = item.Currency
	default:
		req, err := requirement.Load(ctx, s, id)
		if err != nil {
			return models.Deal{}, err
		}
		deal.RequirementID = req.RequirementID
		deal.BuyerID = req.BuyerID
		deal.SellerID = bid.SellerID
		if bid.InventoryID != "" {
			item, err := loadItem(ctx, s, bid.InventoryID)
			if err != nil {
				return models.Deal{}, err
			}
			deal.Currency = item.Currency
		}
	}
	return deal, nil
}

// UpdateStatus applies one edge of the deal state machine. The actor must be
// allowed to move the deal into the requested state; history, sub-records and
// inventory follow in the same unit of work.
func (e *Engine) UpdateStatus(ctx context.Context, dealID string, change Change, actor models.Actor) (models.Deal, error) {
	if !change.Status.Valid() {
		return models.Deal{}, e.observe("deal.update_status", fmt.Errorf("deal: %w - unknown status %q", marketerrors.ErrValidation, change.Status))
	}

	var (
		deal models.Deal
		from models.DealStatus
	)
	err := e.uow.Do(ctx, "deal.update_status", func(ctx context.Context, s repository.Store) error {
		var err error
		deal, err = e.load(ctx, s, dealID, actor, actView)
		if err != nil {
			return err
		}
		from = deal.Status
		if !models.CanTransition(from, change.Status) {
			return fmt.Errorf("deal: %w - %s to %s", marketerrors.ErrInvalidTransition, from, change.Status)
		}
		if !rules.Allows(actor, moveTo(change.Status), subject(deal)) {
			return fmt.Errorf("deal: %w - cannot move deal to %s", marketerrors.ErrNotAuthorized, change.Status)
		}

		now := e.now()
		if err := applyDetails(&deal, from, change, actor, now); err != nil {
			return err
		}
		deal.Status = change.Status
		deal.History = append(deal.History, models.DealHistoryEntry{Status: change.Status, ChangedBy: actor.ID, ChangedAt: now})
		deal.UpdatedAt = now
		if err := s.SaveDeal(ctx, deal); err != nil {
			return fmt.Errorf("deal: failed to update %s: %w", dealID, err)
		}
		return e.settleInventory(ctx, s, deal, actor)
	})
	if err != nil {
		return models.Deal{}, e.observe("deal.update_status", err)
	}

	e.metrics.DealTransitioned(string(change.Status))
	e.notifier.Notify(ctx, events.New(events.DealStatusChanged, dealID, actor.ID, map[string]any{
		"from": string(from),
		"to":   string(change.Status),
	}))
	return deal, nil
}

// applyDetails updates the payment, shipping and dispute records for the
// state being entered
func applyDetails(deal *models.Deal, from models.DealStatus, change Change, actor models.Actor, now time.Time) error {
	d := change.Details
	if from == models.DealDisputed && deal.Dispute != nil {
		deal.Dispute.ResolvedAt = &now
		deal.Dispute.Resolution = d.Resolution
	}

	switch change.Status {
	case models.DealInEscrow:
		if deal.Payment == nil {
			deal.Payment = &models.Payment{}
		}
		if !deal.Payment.IsPaid {
			deal.Payment.IsPaid = true
			deal.Payment.PaidAt = &now
		}
		if d.PaymentMethod != "" {
			deal.Payment.Method = d.PaymentMethod
		}
		if d.TransactionID != "" {
			deal.Payment.TransactionID = d.TransactionID
		}
	case models.DealShipped:
		deal.Shipping = &models.Shipping{
			Courier:        d.Courier,
			TrackingNumber: d.TrackingNumber,
			ShippedAt:      &now,
		}
	case models.DealDelivered:
		if deal.Shipping == nil {
			deal.Shipping = &models.Shipping{}
		}
		deal.Shipping.DeliveredAt = &now
	case models.DealDisputed:
		if d.Reason == "" {
			return fmt.Errorf("deal: %w - a dispute needs a reason", marketerrors.ErrValidation)
		}
		deal.Dispute = &models.Dispute{Reason: d.Reason, RaisedBy: actor.ID, RaisedAt: now}
	}
	return nil
}

// settleInventory sells the item of a completed deal and releases the item of
// a cancelled one: requirement stones become AVAILABLE, auctioned stones
// NOT_AVAILABLE
func (e *Engine) settleInventory(ctx context.Context, s repository.Store, deal models.Deal, actor models.Actor) error {
	if deal.InventoryID == "" {
		return nil
	}
	switch deal.Status {
	case models.DealCompleted:
		_, err := e.ledger.Transition(ctx, s, deal.InventoryID, models.StatusSold, true, actor.ID)
		return err
	case models.DealCancelled:
		item, err := loadItem(ctx, s, deal.InventoryID)
		if err != nil {
			return err
		}
		if item.Status != models.StatusOnMemo {
			return nil
		}
		// the settled auction still references an auctioned stone, so it
		// comes back withdrawn rather than listable
		release := models.StatusAvailable
		if deal.AuctionID != "" {
			release = models.StatusNotAvailable
		}
		_, err = e.ledger.Transition(ctx, s, item.ItemID, release, false, actor.ID)
		return err
	}
	return nil
}

// Get returns a deal visible to actor
func (e *Engine) Get(ctx context.Context, dealID string, actor models.Actor) (models.Deal, error) {
	var out models.Deal
	err := e.uow.View(ctx, func(ctx context.Context, s repository.Store) error {
		var err error
		out, err = e.load(ctx, s, dealID, actor, actView)
		return err
	})
	return out, e.observe("deal.get", err)
}

// List returns the deals actor takes part in; admins see every deal
func (e *Engine) List(ctx context.Context, actor models.Actor) ([]models.Deal, error) {
	if actor.ID == "" {
		return nil, e.observe("deal.list", fmt.Errorf("deal: %w", marketerrors.ErrNotAuthorized))
	}
	filter := repository.DealFilter{ParticipantID: actor.ID}
	if actor.IsAdmin() {
		filter = repository.DealFilter{}
	}
	var out []models.Deal
	err := e.uow.View(ctx, func(ctx context.Context, s repository.Store) error {
		var err error
		out, err = s.ListDeals(ctx, filter)
		return err
	})
	return out, e.observe("deal.list", err)
}

// GenerateInvoice renders the deal summary, uploads it and records its URL.
// The rendered bytes are returned alongside the updated deal.
func (e *Engine) GenerateInvoice(ctx context.Context, dealID string, actor models.Actor) (models.Deal, []byte, error) {
	if e.renderer == nil || e.storage == nil {
		return models.Deal{}, nil, e.observe("deal.invoice", errors.New("deal: invoice generation is not configured"))
	}

	var (
		deal models.Deal
		item *models.Item
	)
	err := e.uow.View(ctx, func(ctx context.Context, s repository.Store) error {
		var err error
		deal, err = e.load(ctx, s, dealID, actor, actInvoice)
		if err != nil {
			return err
		}
		if deal.InventoryID == "" {
			return nil
		}
		it, err := s.GetItem(ctx, deal.InventoryID)
		if errors.Is(err, marketerrors.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("deal: failed to load item %s: %w", deal.InventoryID, err)
		}
		item = &it
		return nil
	})
	if err != nil {
		return models.Deal{}, nil, e.observe("deal.invoice", err)
	}

	html, err := document.Invoice(deal, item)
	if err != nil {
		return models.Deal{}, nil, e.observe("deal.invoice", err)
	}
	doc, err := e.renderer.Render(ctx, html)
	if err != nil {
		return models.Deal{}, nil, e.observe("deal.invoice", err)
	}
	url, err := e.storage.Upload(ctx, doc.Data, document.InvoiceFolder, deal.DealID+doc.Extension)
	if err != nil {
		return models.Deal{}, nil, e.observe("deal.invoice", err)
	}

	err = e.uow.Do(ctx, "deal.invoice", func(ctx context.Context, s repository.Store) error {
		current, err := loadDeal(ctx, s, dealID)
		if err != nil {
			return err
		}
		current.PDFPath = url
		current.UpdatedAt = e.now()
		if err := s.SaveDeal(ctx, current); err != nil {
			return fmt.Errorf("deal: failed to record invoice for %s: %w", dealID, err)
		}
		deal = current
		return nil
	})
	if err != nil {
		return models.Deal{}, nil, e.observe("deal.invoice", err)
	}

	utils.Info("deal invoice generated", map[string]any{"deal_id": dealID, "url": url})
	e.notifier.Notify(ctx, events.New(events.DealInvoiceGenerated, dealID, actor.ID, map[string]any{"url": url}))
	return deal, doc.Data, nil
}

func (e *Engine) load(ctx context.Context, s repository.Store, dealID string, actor models.Actor, action policy.Action) (models.Deal, error) {
	deal, err := loadDeal(ctx, s, dealID)
	if err != nil {
		return models.Deal{}, err
	}
	if !rules.Allows(actor, action, subject(deal)) {
		return models.Deal{}, fmt.Errorf("deal: %w - %s", marketerrors.ErrNotAuthorized, dealID)
	}
	return deal, nil
}

func loadDeal(ctx context.Context, s repository.Store, dealID string) (models.Deal, error) {
	deal, err := s.GetDeal(ctx, dealID)
	if errors.Is(err, marketerrors.ErrNotFound) {
		return models.Deal{}, fmt.Errorf("deal: %w - %s", marketerrors.ErrDealNotFound, dealID)
	}
	if err != nil {
		return models.Deal{}, fmt.Errorf("deal: failed to load %s: %w", dealID, err)
	}
	return deal, nil
}

func loadItem(ctx context.Context, s repository.Store, itemID string) (models.Item, error) {
	item, err := s.GetItem(ctx, itemID)
	if errors.Is(err, marketerrors.ErrNotFound) {
		return models.Item{}, fmt.Errorf("deal: %w - %s", marketerrors.ErrItemNotFound, itemID)
	}
	if err != nil {
		return models.Item{}, fmt.Errorf("deal: failed to load item %s: %w", itemID, err)
	}
	return item, nil
}
