package requirement

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

// Policy decides how many active requirements a buyer may hold
type Policy string

const (
	// PolicyOnePerBuyer keeps a single active requirement per buyer; upserts replace it
	PolicyOnePerBuyer Policy = "one-per-buyer"
	// PolicyUniqueSpec allows many active requirements per buyer with distinct specs
	PolicyUniqueSpec Policy = "unique-spec"
)

// ParsePolicy validates a configured policy name
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyOnePerBuyer, PolicyUniqueSpec:
		return Policy(s), nil
	case "":
		return PolicyOnePerBuyer, nil
	default:
		return "", fmt.Errorf("unknown requirement policy %q", s)
	}
}

const (
	actUpdate policy.Action = "requirement.update"
	actExpire policy.Action = "requirement.expire"
	actDelete policy.Action = "requirement.delete"
)

var rules = policy.Table{
	actUpdate: {policy.Owner},
	actExpire: {policy.Owner, policy.Admin},
	actDelete: {policy.Owner, policy.Admin},
}

// Input is the buyer-supplied part of a requirement
type Input struct {
	Spec     models.RequirementSpec
	Budget   decimal.Decimal
	Deadline *time.Time
}

// Registry manages buyer requirements
type Registry struct {
	uow      repository.UnitOfWork
	policy   Policy
	notifier events.Notifier
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewRegistry creates a new Registry instance
func NewRegistry(uow repository.UnitOfWork, p Policy, notifier events.Notifier, m *metrics.Metrics) *Registry {
	if notifier == nil {
		notifier = events.Discard{}
	}
	if p == "" {
		p = PolicyOnePerBuyer
	}
	return &Registry{
		uow:      uow,
		policy:   p,
		notifier: notifier,
		metrics:  m,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the registry clock
func (r *Registry) WithClock(now func() time.Time) *Registry {
	r.now = now
	return r
}

// Policy reports the configured uniqueness policy
func (r *Registry) Policy() Policy {
	return r.policy
}

func (r *Registry) observe(op string, err error) error {
	if err != nil {
		r.metrics.Failure(op, marketerrors.CodeOf(err))
	}
	return err
}

func (r *Registry) uniquenessKey(buyerID string, spec models.RequirementSpec) string {
	if r.policy == PolicyUniqueSpec {
		return buyerID + "#" + spec.Key()
	}
	return buyerID
}

// Upsert creates the buyer's requirement or replaces the active one holding
// the same uniqueness key. created reports which happened.
func (r *Registry) Upsert(ctx context.Context, buyer models.Actor, in Input) (req models.Requirement, created bool, err error) {
	if buyer.ID == "" {
		return models.Requirement{}, false, r.observe("requirement.upsert", fmt.Errorf("requirement: %w - missing buyer", marketerrors.ErrNotAuthorized))
	}
	in.Spec = in.Spec.Normalize()
	if err := r.validate(in); err != nil {
		return models.Requirement{}, false, r.observe("requirement.upsert", err)
	}

	key := r.uniquenessKey(buyer.ID, in.Spec)
	err = r.uow.Do(ctx, "requirement.upsert", func(ctx context.Context, s repository.Store) error {
		now := r.now()
		existing, err := s.ListRequirements(ctx, repository.RequirementFilter{UniquenessKey: key, Status: models.RequirementActive})
		if err != nil {
			return fmt.Errorf("requirement: failed to look up active requirement: %w", err)
		}
		for _, cur := range existing {
			if cur.EffectiveStatus(now) != models.RequirementActive {
				// release the key held by a requirement whose deadline passed
				if err := r.expireInStore(ctx, s, cur, now); err != nil {
					return err
				}
				continue
			}
			cur.Spec = in.Spec
			cur.Budget = in.Budget
			cur.Deadline = in.Deadline
			cur.UpdatedAt = now
			if err := s.SaveRequirement(ctx, cur); err != nil {
				return translateConflict(err)
			}
			req = cur
			return nil
		}

		req = models.Requirement{
			RequirementID: utils.GenerateID(),
			BuyerID:       buyer.ID,
			Spec:          in.Spec,
			Budget:        in.Budget,
			Deadline:      in.Deadline,
			Status:        models.RequirementActive,
			UniquenessKey: key,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		created = true
		if err := s.CreateRequirement(ctx, req); err != nil {
			return translateConflict(err)
		}
		return nil
	})
	if err != nil {
		return models.Requirement{}, false, r.observe("requirement.upsert", err)
	}

	r.notifier.Notify(ctx, events.New(events.RequirementUpserted, req.RequirementID, buyer.ID, map[string]any{
		"created": created,
	}))
	return req, created, nil
}

// Update replaces the spec of an active requirement owned by the actor
func (r *Registry) Update(ctx context.Context, requirementID string, actor models.Actor, in Input) (models.Requirement, error) {
	in.Spec = in.Spec.Normalize()
	if err := r.validate(in); err != nil {
		return models.Requirement{}, r.observe("requirement.update", err)
	}

	var updated models.Requirement
	err := r.uow.Do(ctx, "requirement.update", func(ctx context.Context, s repository.Store) error {
		req, err := Load(ctx, s, requirementID)
		if err != nil {
			return err
		}
		if !rules.Allows(actor, actUpdate, policy.Subject{OwnerID: req.BuyerID}) {
			return fmt.Errorf("requirement: %w - %s", marketerrors.ErrNotAuthorized, requirementID)
		}
		if req.EffectiveStatus(r.now()) != models.RequirementActive {
			return fmt.Errorf("requirement: %w - %s is %s", marketerrors.ErrNotActive, requirementID, req.EffectiveStatus(r.now()))
		}
		req.Spec = in.Spec
		req.Budget = in.Budget
		req.Deadline = in.Deadline
		req.UniquenessKey = r.uniquenessKey(req.BuyerID, in.Spec)
		req.UpdatedAt = r.now()
		if err := s.SaveRequirement(ctx, req); err != nil {
			return translateConflict(err)
		}
		updated = req
		return nil
	})
	if err != nil {
		return models.Requirement{}, r.observe("requirement.update", err)
	}

	r.notifier.Notify(ctx, events.New(events.RequirementUpserted, requirementID, actor.ID, map[string]any{"created": false}))
	return updated, nil
}

// Close marks a requirement closed inside the caller's unit of work. Closing a
// closed requirement is a no-op; an expired one cannot be closed.
func (r *Registry) Close(ctx context.Context, s repository.Store, requirementID string) (models.Requirement, error) {
	req, err := Load(ctx, s, requirementID)
	if err != nil {
		return models.Requirement{}, err
	}
	switch req.EffectiveStatus(r.now()) {
	case models.RequirementClosed:
		return req, nil
	case models.RequirementExpired:
		return models.Requirement{}, fmt.Errorf("requirement: %w - %s has expired", marketerrors.ErrNotActive, requirementID)
	}
	req.Status = models.RequirementClosed
	req.UpdatedAt = r.now()
	if err := s.SaveRequirement(ctx, req); err != nil {
		return models.Requirement{}, fmt.Errorf("requirement: failed to close %s: %w", requirementID, err)
	}
	return req, nil
}

// Expire marks an active requirement expired and expires its open bids.
// Expiring an expired requirement is a no-op; a closed one stays closed.
func (r *Registry) Expire(ctx context.Context, requirementID string, actor models.Actor) (models.Requirement, error) {
	var out models.Requirement
	changed := false
	err := r.uow.Do(ctx, "requirement.expire", func(ctx context.Context, s repository.Store) error {
		req, err := Load(ctx, s, requirementID)
		if err != nil {
			return err
		}
		if !rules.Allows(actor, actExpire, policy.Subject{OwnerID: req.BuyerID}) {
			return fmt.Errorf("requirement: %w - %s", marketerrors.ErrNotAuthorized, requirementID)
		}
		switch req.Status {
		case models.RequirementExpired:
			out = req
			return nil
		case models.RequirementClosed:
			return fmt.Errorf("requirement: %w - %s is closed", marketerrors.ErrNotActive, requirementID)
		}
		changed = true
		if err := r.expireInStore(ctx, s, req, r.now()); err != nil {
			return err
		}
		req.Status = models.RequirementExpired
		out = req
		return nil
	})
	if err != nil {
		return models.Requirement{}, r.observe("requirement.expire", err)
	}

	if changed {
		r.notifier.Notify(ctx, events.New(events.RequirementExpired, requirementID, actor.ID, nil))
	}
	return out, nil
}

func (r *Registry) expireInStore(ctx context.Context, s repository.Store, req models.Requirement, now time.Time) error {
	req.Status = models.RequirementExpired
	req.UpdatedAt = now
	if err := s.SaveRequirement(ctx, req); err != nil {
		return fmt.Errorf("requirement: failed to expire %s: %w", req.RequirementID, err)
	}
	open, err := s.ListBids(ctx, repository.BidFilter{RequirementID: req.RequirementID, Status: models.BidSubmitted})
	if err != nil {
		return fmt.Errorf("requirement: failed to list bids of %s: %w", req.RequirementID, err)
	}
	for _, b := range open {
		b.Status = models.BidExpired
		b.UpdatedAt = now
		if err := s.SaveBid(ctx, b); err != nil {
			return fmt.Errorf("requirement: failed to expire bid %s: %w", b.BidID, err)
		}
	}
	return nil
}

// Delete removes a requirement nobody has bid on
func (r *Registry) Delete(ctx context.Context, requirementID string, actor models.Actor) error {
	err := r.uow.Do(ctx, "requirement.delete", func(ctx context.Context, s repository.Store) error {
		req, err := Load(ctx, s, requirementID)
		if err != nil {
			return err
		}
		if !rules.Allows(actor, actDelete, policy.Subject{OwnerID: req.BuyerID}) {
			return fmt.Errorf("requirement: %w - %s", marketerrors.ErrNotAuthorized, requirementID)
		}
		bids, err := s.ListBids(ctx, repository.BidFilter{RequirementID: requirementID})
		if err != nil {
			return fmt.Errorf("requirement: failed to list bids of %s: %w", requirementID, err)
		}
		if len(bids) > 0 {
			return fmt.Errorf("requirement: %w - %d bids on %s", marketerrors.ErrHasBids, len(bids), requirementID)
		}
		return s.DeleteRequirement(ctx, requirementID)
	})
	if err != nil {
		return r.observe("requirement.delete", err)
	}

	r.notifier.Notify(ctx, events.New(events.RequirementDeleted, requirementID, actor.ID, nil))
	return nil
}

// Get returns one requirement with its deadline folded into Status
func (r *Registry) Get(ctx context.Context, requirementID string) (models.Requirement, error) {
	var req models.Requirement
	err := r.uow.View(ctx, func(ctx context.Context, s repository.Store) error {
		var err error
		req, err = Load(ctx, s, requirementID)
		return err
	})
	if err != nil {
		return models.Requirement{}, err
	}
	req.Status = req.EffectiveStatus(r.now())
	return req, nil
}

// ListAll returns every requirement, optionally narrowed by effective status
func (r *Registry) ListAll(ctx context.Context, status models.RequirementStatus) ([]models.Requirement, error) {
	return r.list(ctx, repository.RequirementFilter{}, status)
}

// ListMine returns the buyer's requirements
func (r *Registry) ListMine(ctx context.Context, buyer models.Actor) ([]models.Requirement, error) {
	return r.list(ctx, repository.RequirementFilter{BuyerID: buyer.ID}, "")
}

func (r *Registry) list(ctx context.Context, filter repository.RequirementFilter, status models.RequirementStatus) ([]models.Requirement, error) {
	var reqs []models.Requirement
	err := r.uow.View(ctx, func(ctx context.Context, s repository.Store) error {
		var err error
		reqs, err = s.ListRequirements(ctx, filter)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("requirement: failed to list requirements: %w", err)
	}

	now := r.now()
	out := make([]models.Requirement, 0, len(reqs))
	for _, req := range reqs {
		req.Status = req.EffectiveStatus(now)
		if status != "" && req.Status != status {
			continue
		}
		out = append(out, req)
	}
	return out, nil
}

func (r *Registry) validate(in Input) error {
	if err := in.Spec.Validate(); err != nil {
		return fmt.Errorf("requirement: %w", err)
	}
	if !in.Budget.IsPositive() {
		return fmt.Errorf("requirement: %w - budget must be positive", marketerrors.ErrValidation)
	}
	if in.Deadline != nil && !in.Deadline.After(r.now()) {
		return fmt.Errorf("requirement: %w - deadline must be in the future", marketerrors.ErrValidation)
	}
	return nil
}

// Load reads a requirement and reports a missing one as ErrRequirementNotFound
func Load(ctx context.Context, s repository.Store, requirementID string) (models.Requirement, error) {
	req, err := s.GetRequirement(ctx, requirementID)
	if errors.Is(err, marketerrors.ErrNotFound) {
		return models.Requirement{}, fmt.Errorf("requirement: %w - %s", marketerrors.ErrRequirementNotFound, requirementID)
	}
	if err != nil {
		return models.Requirement{}, fmt.Errorf("requirement: failed to load %s: %w", requirementID, err)
	}
	return req, nil
}

func translateConflict(err error) error {
	if errors.Is(err, marketerrors.ErrConflict) {
		return fmt.Errorf("requirement: %w", marketerrors.ErrDuplicateRequirement)
	}
	return fmt.Errorf("requirement: failed to store requirement: %w", err)
}
