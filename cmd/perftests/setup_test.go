package perftests

import (
	"context"
	"fmt"
	"testing"
	"time"

	auction "diamond-exchange/internal/auctionService"
	bidding "diamond-exchange/internal/biddingService"
	inventory "diamond-exchange/internal/inventoryService"
	model "diamond-exchange/internal/models"
	"diamond-exchange/internal/repository"
	requirement "diamond-exchange/internal/requirementService"

	"github.com/shopspring/decimal"
)

var benchSeller = model.Actor{ID: "bench-seller", Role: model.RoleUser}

// market is the auction and bid engines over one in-memory store
type market struct {
	auctions *auction.Engine
	bids     *bidding.Engine
	ledger   *inventory.Ledger
}

func newMarket(tier repository.ConsistencyTier) *market {
	repo := repository.NewMemoryRepo()
	var uow repository.UnitOfWork = repository.NewMemoryUnitOfWork(repo)
	if tier == repository.TierBestEffort {
		uow = repository.NewCompensating(repo, nil)
	}
	ledger := inventory.NewLedger(uow, nil, nil)
	registry := requirement.NewRegistry(uow, requirement.PolicyOnePerBuyer, nil, nil)
	return &market{
		auctions: auction.NewEngine(uow, ledger, nil, nil),
		bids:     bidding.NewEngine(uow, ledger, registry, nil, nil),
		ledger:   ledger,
	}
}

// openAuctions lists n fresh stones and opens an auction on each with a base
// price of 100
func (m *market) openAuctions(tb testing.TB, n int) []string {
	tb.Helper()
	ctx := context.Background()
	now := time.Now().UTC()
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		item, err := m.ledger.Create(ctx, benchSeller, inventory.CreateInput{
			Title:   fmt.Sprintf("bench stone %d", i),
			Grading: model.Grading{Shape: "ROUND", Carat: decimal.RequireFromString("1.01"), Color: "F", Clarity: "VS2"},
			Price:   decimal.NewFromInt(100),
		})
		if err != nil {
			tb.Fatalf("failed to create item: %v", err)
		}
		a, err := m.auctions.Create(ctx, benchSeller, auction.CreateInput{
			InventoryID: item.ItemID,
			BasePrice:   decimal.NewFromInt(100),
			StartDate:   now.Add(-time.Minute),
			EndDate:     now.Add(24 * time.Hour),
		})
		if err != nil {
			tb.Fatalf("failed to open auction: %v", err)
		}
		ids = append(ids, a.AuctionID)
	}
	return ids
}

func bidder(n int) model.Actor {
	return model.Actor{ID: fmt.Sprintf("bench-buyer-%d", n), Role: model.RoleUser}
}

var tiers = []repository.ConsistencyTier{repository.TierTransactional, repository.TierBestEffort}
