package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
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
	actUpdate policy.Action = "inventory.update"
	actDelete policy.Action = "inventory.delete"
)

var rules = policy.Table{
	actUpdate: {policy.Owner},
	actDelete: {policy.Owner},
}

// CreateInput describes a new inventory item
type CreateInput struct {
	Title       string
	Description string
	Grading     models.Grading
	Price       decimal.Decimal
	Currency    string
	Images      []string
	Video       string
}

// Patch holds the owner-editable fields of an item. Nil fields are unchanged.
type Patch struct {
	Title       *string
	Description *string
	Grading     *models.Grading
	Price       *decimal.Decimal
	Currency    *string
	Images      *[]string
	Video       *string
	Status      *models.ItemStatus
}

// Ledger owns inventory items and their status history
type Ledger struct {
	uow      repository.UnitOfWork
	notifier events.Notifier
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewLedger creates a new Ledger instance
func NewLedger(uow repository.UnitOfWork, notifier events.Notifier, m *metrics.Metrics) *Ledger {
	if notifier == nil {
		notifier = events.Discard{}
	}
	return &Ledger{
		uow:      uow,
		notifier: notifier,
		metrics:  m,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the ledger clock
func (l *Ledger) WithClock(now func() time.Time) *Ledger {
	l.now = now
	return l
}

func (l *Ledger) observe(op string, err error) error {
	if err != nil {
		l.metrics.Failure(op, marketerrors.CodeOf(err))
	}
	return err
}

// Create registers a new AVAILABLE, unlocked item owned by the actor
func (l *Ledger) Create(ctx context.Context, actor models.Actor, in CreateInput) (models.Item, error) {
	if actor.ID == "" {
		return models.Item{}, l.observe("inventory.create", fmt.Errorf("inventory: %w - missing actor", marketerrors.ErrNotAuthorized))
	}
	grading := in.Grading.Normalize()
	if err := validateItem(in.Title, in.Price, grading); err != nil {
		return models.Item{}, l.observe("inventory.create", err)
	}

	now := l.now()
	item := models.Item{
		ItemID:      utils.GenerateID(),
		SellerID:    actor.ID,
		Barcode:     utils.GenerateBarcode(),
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Grading:     grading,
		Price:       in.Price,
		Currency:    currencyOrDefault(in.Currency),
		Images:      append([]string(nil), in.Images...),
		Video:       in.Video,
		Status:      models.StatusAvailable,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := l.uow.Do(ctx, "inventory.create", func(ctx context.Context, s repository.Store) error {
		if err := s.CreateItem(ctx, item); err != nil {
			return fmt.Errorf("inventory: failed to create item: %w", err)
		}
		return s.AppendStatusLog(ctx, l.logEntry(item.ItemID, "", models.StatusAvailable, false, actor.ID))
	})
	if err != nil {
		return models.Item{}, l.observe("inventory.create", err)
	}

	l.notifier.Notify(ctx, events.New(events.InventoryCreated, item.ItemID, actor.ID, map[string]any{
		"barcode": item.Barcode,
	}))
	return item, nil
}

// Get returns one item
func (l *Ledger) Get(ctx context.Context, itemID string) (models.Item, error) {
	var item models.Item
	err := l.uow.View(ctx, func(ctx context.Context, s repository.Store) error {
		var err error
		item, err = loadItem(ctx, s, itemID)
		return err
	})
	return item, err
}

// List returns items matching filter
func (l *Ledger) List(ctx context.Context, filter repository.ItemFilter) ([]models.Item, error) {
	var items []models.Item
	err := l.uow.View(ctx, func(ctx context.Context, s repository.Store) error {
		var err error
		items, err = s.ListItems(ctx, filter)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("inventory: failed to list items: %w", err)
	}
	return items, nil
}

// StatusLog returns the status history of an item, oldest first
func (l *Ledger) StatusLog(ctx context.Context, itemID string) ([]models.InventoryStatusLog, error) {
	var entries []models.InventoryStatusLog
	err := l.uow.View(ctx, func(ctx context.Context, s repository.Store) error {
		if _, err := loadItem(ctx, s, itemID); err != nil {
			return err
		}
		var err error
		entries, err = s.ListStatusLog(ctx, itemID)
		return err
	})
	return entries, err
}

// Update applies an owner's patch to an unlocked item
func (l *Ledger) Update(ctx context.Context, itemID string, actor models.Actor, patch Patch) (models.Item, error) {
	var updated models.Item
	err := l.uow.Do(ctx, "inventory.update", func(ctx context.Context, s repository.Store) error {
		item, err := l.mutable(ctx, s, itemID, actor, actUpdate)
		if err != nil {
			return err
		}
		prior := item.Status
		if err := applyPatch(&item, patch); err != nil {
			return err
		}
		if item.Status != prior {
			if err := ensureNotOffered(ctx, s, itemID); err != nil {
				return err
			}
		}
		item.UpdatedAt = l.now()
		if err := s.SaveItem(ctx, item); err != nil {
			return fmt.Errorf("inventory: failed to save item %s: %w", itemID, err)
		}
		if item.Status != prior {
			if err := s.AppendStatusLog(ctx, l.logEntry(itemID, prior, item.Status, item.Locked, actor.ID)); err != nil {
				return err
			}
		}
		updated = item
		return nil
	})
	if err != nil {
		return models.Item{}, l.observe("inventory.update", err)
	}

	l.notifier.Notify(ctx, events.New(events.InventoryUpdated, itemID, actor.ID, nil))
	return updated, nil
}

// AttachMedia replaces the media URLs of an item
func (l *Ledger) AttachMedia(ctx context.Context, itemID string, actor models.Actor, images []string, video string) (models.Item, error) {
	imgs := append([]string(nil), images...)
	return l.Update(ctx, itemID, actor, Patch{Images: &imgs, Video: &video})
}

// Delete removes an unlocked item owned by the actor. Items still offered
// against a requirement cannot be removed.
func (l *Ledger) Delete(ctx context.Context, itemID string, actor models.Actor) error {
	err := l.uow.Do(ctx, "inventory.delete", func(ctx context.Context, s repository.Store) error {
		if _, err := l.mutable(ctx, s, itemID, actor, actDelete); err != nil {
			return err
		}
		if err := ensureNotOffered(ctx, s, itemID); err != nil {
			return err
		}
		if err := s.DeleteItem(ctx, itemID); err != nil {
			return fmt.Errorf("inventory: failed to delete item %s: %w", itemID, err)
		}
		return nil
	})
	if err != nil {
		return l.observe("inventory.delete", err)
	}

	l.notifier.Notify(ctx, events.New(events.InventoryDeleted, itemID, actor.ID, nil))
	return nil
}

// Transition moves an item to status with the given lock flag. It runs inside
// the caller's unit of work and appends a status log entry.
func (l *Ledger) Transition(ctx context.Context, s repository.Store, itemID string, status models.ItemStatus, lock bool, changedBy string) (models.Item, error) {
	if !models.LockConsistent(status, lock) {
		return models.Item{}, fmt.Errorf("inventory: %w - status %s with locked=%v", marketerrors.ErrInconsistentLock, status, lock)
	}
	item, err := loadItem(ctx, s, itemID)
	if err != nil {
		return models.Item{}, err
	}

	prior := item.Status
	item.Status = status
	item.Locked = lock
	item.UpdatedAt = l.now()
	if err := s.SaveItem(ctx, item); err != nil {
		return models.Item{}, fmt.Errorf("inventory: failed to transition item %s: %w", itemID, err)
	}
	if err := s.AppendStatusLog(ctx, l.logEntry(itemID, prior, status, lock, changedBy)); err != nil {
		return models.Item{}, fmt.Errorf("inventory: failed to log transition of %s: %w", itemID, err)
	}
	return item, nil
}

// mutable loads an item and applies the owner and lock guards, in that order
func (l *Ledger) mutable(ctx context.Context, s repository.Store, itemID string, actor models.Actor, action policy.Action) (models.Item, error) {
	item, err := loadItem(ctx, s, itemID)
	if err != nil {
		return models.Item{}, err
	}
	if !rules.Allows(actor, action, policy.Subject{OwnerID: item.SellerID}) {
		return models.Item{}, fmt.Errorf("inventory: %w - item %s", marketerrors.ErrForbidden, itemID)
	}
	if item.Locked {
		return models.Item{}, fmt.Errorf("inventory: %w - item %s is %s", marketerrors.ErrLocked, itemID, item.Status)
	}
	return item, nil
}

// ensureNotOffered rejects changes to an item that a submitted bid still
// references. Requirement offers leave the item unlocked, so the lock flag
// alone does not cover them.
func ensureNotOffered(ctx context.Context, s repository.Store, itemID string) error {
	open, err := s.ListBids(ctx, repository.BidFilter{InventoryID: itemID, Status: models.BidSubmitted})
	if err != nil {
		return fmt.Errorf("inventory: failed to check bids on %s: %w", itemID, err)
	}
	if len(open) > 0 {
		return fmt.Errorf("inventory: %w - item %s is offered in bid %s", marketerrors.ErrHasBids, itemID, open[0].BidID)
	}
	return nil
}

func (l *Ledger) logEntry(itemID string, from, to models.ItemStatus, locked bool, changedBy string) models.InventoryStatusLog {
	return models.InventoryStatusLog{
		LogID:      utils.GenerateID(),
		ItemID:     itemID,
		FromStatus: from,
		ToStatus:   to,
		Locked:     locked,
		ChangedBy:  changedBy,
		ChangedAt:  l.now(),
	}
}

func loadItem(ctx context.Context, s repository.Store, itemID string) (models.Item, error) {
	item, err := s.GetItem(ctx, itemID)
	if errors.Is(err, marketerrors.ErrNotFound) {
		return models.Item{}, fmt.Errorf("inventory: %w - %s", marketerrors.ErrItemNotFound, itemID)
	}
	if err != nil {
		return models.Item{}, fmt.Errorf("inventory: failed to load item %s: %w", itemID, err)
	}
	return item, nil
}

func applyPatch(item *models.Item, p Patch) error {
	if p.Title != nil {
		item.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.Grading != nil {
		item.Grading = p.Grading.Normalize()
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
	if p.Currency != nil {
		item.Currency = currencyOrDefault(*p.Currency)
	}
	if p.Images != nil {
		item.Images = append([]string(nil), (*p.Images)...)
	}
	if p.Video != nil {
		item.Video = *p.Video
	}
	if p.Status != nil {
		switch *p.Status {
		case models.StatusAvailable, models.StatusNotAvailable:
			item.Status = *p.Status
		default:
			return fmt.Errorf("inventory: %w - status %s cannot be set directly", marketerrors.ErrValidation, *p.Status)
		}
	}
	return validateItem(item.Title, item.Price, item.Grading)
}

func validateItem(title string, price decimal.Decimal, g models.Grading) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("inventory: %w - title is required", marketerrors.ErrValidation)
	}
	if !price.IsPositive() {
		return fmt.Errorf("inventory: %w - price must be positive", marketerrors.ErrValidation)
	}
	if err := g.Validate(); err != nil {
		return fmt.Errorf("inventory: %w", err)
	}
	return nil
}

func currencyOrDefault(c string) string {
	c = strings.ToUpper(strings.TrimSpace(c))
	if c == "" {
		return "USD"
	}
	return c
}
