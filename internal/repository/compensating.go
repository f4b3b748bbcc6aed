package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	model "diamond-exchange/internal/models"
	"diamond-exchange/utils"
)

// ReconciliationTask records a compensation that could not be applied. The
// store may hold a partial unit until an operator resolves it.
type ReconciliationTask struct {
	TaskID    string    `json:"task_id"`
	Operation string    `json:"operation"`
	Step      string    `json:"step"`
	Cause     string    `json:"cause"`
	UndoError string    `json:"undo_error"`
	CreatedAt time.Time `json:"created_at"`
}

// ReconciliationLog collects reconciliation tasks in memory
type ReconciliationLog struct {
	mu       sync.Mutex
	tasks    []ReconciliationTask
	onRecord []func(ReconciliationTask)
}

// NewReconciliationLog creates an empty log
func NewReconciliationLog() *ReconciliationLog {
	return &ReconciliationLog{}
}

// OnRecord registers fn to be called for every recorded task
func (l *ReconciliationLog) OnRecord(fn func(ReconciliationTask)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onRecord = append(l.onRecord, fn)
}

// Record stores task and notifies hooks
func (l *ReconciliationLog) Record(task ReconciliationTask) {
	l.mu.Lock()
	l.tasks = append(l.tasks, task)
	hooks := append([]func(ReconciliationTask){}, l.onRecord...)
	l.mu.Unlock()

	utils.Error("reconciliation task recorded", map[string]any{
		"task_id":    task.TaskID,
		"operation":  task.Operation,
		"step":       task.Step,
		"cause":      task.Cause,
		"undo_error": task.UndoError,
	})
	for _, fn := range hooks {
		fn(task)
	}
}

// Tasks returns a copy of the recorded tasks
func (l *ReconciliationLog) Tasks() []ReconciliationTask {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]ReconciliationTask(nil), l.tasks...)
}

// CompensatingUnitOfWork is the best-effort tier. Writes hit the store as they
// happen; each write journals its inverse, and the journal is replayed in
// reverse when the unit fails. Storage uniqueness constraints remain the
// backstop for concurrent units.
type CompensatingUnitOfWork struct {
	store Store
	log   *ReconciliationLog
}

// NewCompensating wraps store in the best-effort tier. A nil log gets a fresh one.
func NewCompensating(store Store, log *ReconciliationLog) *CompensatingUnitOfWork {
	if log == nil {
		log = NewReconciliationLog()
	}
	return &CompensatingUnitOfWork{store: store, log: log}
}

// Reconciliation exposes the log of failed compensations
func (u *CompensatingUnitOfWork) Reconciliation() *ReconciliationLog {
	return u.log
}

func (u *CompensatingUnitOfWork) Do(ctx context.Context, op string, fn func(ctx context.Context, s Store) error) (err error) {
	ctx, span := StartSpan(ctx, op, TierBestEffort)
	defer func() { EndSpan(span, err) }()

	if err = ctx.Err(); err != nil {
		return err
	}

	j := &journaledStore{Store: u.store}
	if err = fn(ctx, j); err != nil {
		u.compensate(context.WithoutCancel(ctx), op, j.undo, err)
		return err
	}
	return nil
}

func (u *CompensatingUnitOfWork) View(ctx context.Context, fn func(ctx context.Context, s Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, u.store)
}

func (u *CompensatingUnitOfWork) Tier() ConsistencyTier {
	return TierBestEffort
}

func (u *CompensatingUnitOfWork) compensate(ctx context.Context, op string, undo []undoStep, cause error) {
	for i := len(undo) - 1; i >= 0; i-- {
		step := undo[i]
		if err := step.fn(ctx); err != nil {
			u.log.Record(ReconciliationTask{
				TaskID:    utils.GenerateID(),
				Operation: op,
				Step:      step.desc,
				Cause:     cause.Error(),
				UndoError: err.Error(),
				CreatedAt: time.Now().UTC(),
			})
		}
	}
}

type undoStep struct {
	desc string
	fn   func(ctx context.Context) error
}

// journaledStore forwards reads and records an inverse for every write
type journaledStore struct {
	Store
	undo []undoStep
}

func (j *journaledStore) push(desc string, fn func(ctx context.Context) error) {
	j.undo = append(j.undo, undoStep{desc: desc, fn: fn})
}

func (j *journaledStore) CreateItem(ctx context.Context, item model.Item) error {
	if err := j.Store.CreateItem(ctx, item); err != nil {
		return err
	}
	j.push(fmt.Sprintf("delete created item %s", item.ItemID), func(ctx context.Context) error {
		return j.Store.DeleteItem(ctx, item.ItemID)
	})
	return nil
}

func (j *journaledStore) SaveItem(ctx context.Context, item model.Item) error {
	prior, err := j.Store.GetItem(ctx, item.ItemID)
	if err != nil {
		return err
	}
	if err := j.Store.SaveItem(ctx, item); err != nil {
		return err
	}
	j.push(fmt.Sprintf("restore item %s", item.ItemID), func(ctx context.Context) error {
		return j.Store.SaveItem(ctx, prior)
	})
	return nil
}

func (j *journaledStore) DeleteItem(ctx context.Context, itemID string) error {
	prior, err := j.Store.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if err := j.Store.DeleteItem(ctx, itemID); err != nil {
		return err
	}
	j.push(fmt.Sprintf("recreate item %s", itemID), func(ctx context.Context) error {
		return j.Store.CreateItem(ctx, prior)
	})
	return nil
}

func (j *journaledStore) AppendStatusLog(ctx context.Context, entry model.InventoryStatusLog) error {
	if err := j.Store.AppendStatusLog(ctx, entry); err != nil {
		return err
	}
	j.push(fmt.Sprintf("remove status log %s", entry.LogID), func(ctx context.Context) error {
		return j.Store.DeleteStatusLog(ctx, entry.LogID)
	})
	return nil
}

func (j *journaledStore) CreateAuction(ctx context.Context, auction model.Auction) error {
	if err := j.Store.CreateAuction(ctx, auction); err != nil {
		return err
	}
	j.push(fmt.Sprintf("delete created auction %s", auction.AuctionID), func(ctx context.Context) error {
		return j.Store.DeleteAuction(ctx, auction.AuctionID)
	})
	return nil
}

func (j *journaledStore) SaveAuction(ctx context.Context, auction model.Auction) error {
	prior, err := j.Store.GetAuction(ctx, auction.AuctionID)
	if err != nil {
		return err
	}
	if err := j.Store.SaveAuction(ctx, auction); err != nil {
		return err
	}
	j.push(fmt.Sprintf("restore auction %s", auction.AuctionID), func(ctx context.Context) error {
		return j.Store.SaveAuction(ctx, prior)
	})
	return nil
}

func (j *journaledStore) DeleteAuction(ctx context.Context, auctionID string) error {
	prior, err := j.Store.GetAuction(ctx, auctionID)
	if err != nil {
		return err
	}
	if err := j.Store.DeleteAuction(ctx, auctionID); err != nil {
		return err
	}
	j.push(fmt.Sprintf("recreate auction %s", auctionID), func(ctx context.Context) error {
		return j.Store.CreateAuction(ctx, prior)
	})
	return nil
}

func (j *journaledStore) CreateBid(ctx context.Context, bid model.Bid) error {
	if err := j.Store.CreateBid(ctx, bid); err != nil {
		return err
	}
	j.push(fmt.Sprintf("delete created bid %s", bid.BidID), func(ctx context.Context) error {
		return j.Store.DeleteBid(ctx, bid.BidID)
	})
	return nil
}

func (j *journaledStore) SaveBid(ctx context.Context, bid model.Bid) error {
	prior, err := j.Store.GetBid(ctx, bid.BidID)
	if err != nil {
		return err
	}
	if err := j.Store.SaveBid(ctx, bid); err != nil {
		return err
	}
	j.push(fmt.Sprintf("restore bid %s", bid.BidID), func(ctx context.Context) error {
		return j.Store.SaveBid(ctx, prior)
	})
	return nil
}

func (j *journaledStore) DeleteBid(ctx context.Context, bidID string) error {
	prior, err := j.Store.GetBid(ctx, bidID)
	if err != nil {
		return err
	}
	if err := j.Store.DeleteBid(ctx, bidID); err != nil {
		return err
	}
	j.push(fmt.Sprintf("recreate bid %s", bidID), func(ctx context.Context) error {
		return j.Store.CreateBid(ctx, prior)
	})
	return nil
}

func (j *journaledStore) CreateRequirement(ctx context.Context, req model.Requirement) error {
	if err := j.Store.CreateRequirement(ctx, req); err != nil {
		return err
	}
	j.push(fmt.Sprintf("delete created requirement %s", req.RequirementID), func(ctx context.Context) error {
		return j.Store.DeleteRequirement(ctx, req.RequirementID)
	})
	return nil
}

func (j *journaledStore) SaveRequirement(ctx context.Context, req model.Requirement) error {
	prior, err := j.Store.GetRequirement(ctx, req.RequirementID)
	if err != nil {
		return err
	}
	if err := j.Store.SaveRequirement(ctx, req); err != nil {
		return err
	}
	j.push(fmt.Sprintf("restore requirement %s", req.RequirementID), func(ctx context.Context) error {
		return j.Store.SaveRequirement(ctx, prior)
	})
	return nil
}

func (j *journaledStore) DeleteRequirement(ctx context.Context, requirementID string) error {
	prior, err := j.Store.GetRequirement(ctx, requirementID)
	if err != nil {
		return err
	}
	if err := j.Store.DeleteRequirement(ctx, requirementID); err != nil {
		return err
	}
	j.push(fmt.Sprintf("recreate requirement %s", requirementID), func(ctx context.Context) error {
		return j.Store.CreateRequirement(ctx, prior)
	})
	return nil
}

func (j *journaledStore) CreateDeal(ctx context.Context, deal model.Deal) error {
	if err := j.Store.CreateDeal(ctx, deal); err != nil {
		return err
	}
	j.push(fmt.Sprintf("delete created deal %s", deal.DealID), func(ctx context.Context) error {
		return j.Store.DeleteDeal(ctx, deal.DealID)
	})
	return nil
}

func (j *journaledStore) SaveDeal(ctx context.Context, deal model.Deal) error {
	prior, err := j.Store.GetDeal(ctx, deal.DealID)
	if err != nil {
		return err
	}
	if err := j.Store.SaveDeal(ctx, deal); err != nil {
		return err
	}
	j.push(fmt.Sprintf("restore deal %s", deal.DealID), func(ctx context.Context) error {
		return j.Store.SaveDeal(ctx, prior)
	})
	return nil
}

func (j *journaledStore) DeleteDeal(ctx context.Context, dealID string) error {
	prior, err := j.Store.GetDeal(ctx, dealID)
	if err != nil {
		return err
	}
	if err := j.Store.DeleteDeal(ctx, dealID); err != nil {
		return err
	}
	j.push(fmt.Sprintf("recreate deal %s", dealID), func(ctx context.Context) error {
		return j.Store.CreateDeal(ctx, prior)
	})
	return nil
}
