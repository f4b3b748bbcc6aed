package sqlstore

import (
	"context"
	"encoding/json"
	"fmt"

	"diamond-exchange/internal/models"
	"diamond-exchange/internal/repository"
)

const auctionColumns = `auction_id, inventory_id, base_price, current_bid, highest_bidder_id, highest_bid_id,
	bid_ids, start_date, end_date, created_at, updated_at`

func auctionArgs(a models.Auction) ([]any, error) {
	bidIDs, err := json.Marshal(nonNil(a.BidIDs))
	if err != nil {
		return nil, fmt.Errorf("encode bid ids: %w", err)
	}
	return []any{
		a.AuctionID, a.InventoryID, a.BasePrice.String(), a.CurrentBid.String(), a.HighestBidderID, a.HighestBidID,
		string(bidIDs), utc(a.StartDate), utc(a.EndDate), utc(a.CreatedAt), utc(a.UpdatedAt),
	}, nil
}

func scanAuction(row scanner) (models.Auction, error) {
	var (
		a      models.Auction
		bidIDs string
	)
	err := row.Scan(&a.AuctionID, &a.InventoryID, &a.BasePrice, &a.CurrentBid, &a.HighestBidderID, &a.HighestBidID,
		&bidIDs, &a.StartDate, &a.EndDate, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return models.Auction{}, translate(err)
	}
	if err := json.Unmarshal([]byte(bidIDs), &a.BidIDs); err != nil {
		return models.Auction{}, fmt.Errorf("decode bid ids of %s: %w", a.AuctionID, err)
	}
	if len(a.BidIDs) == 0 {
		a.BidIDs = nil
	}
	a.StartDate, a.EndDate = utc(a.StartDate), utc(a.EndDate)
	a.CreatedAt, a.UpdatedAt = utc(a.CreatedAt), utc(a.UpdatedAt)
	return a, nil
}

func (s *store) CreateAuction(ctx context.Context, a models.Auction) error {
	args, err := auctionArgs(a)
	if err != nil {
		return err
	}
	if _, err := s.exec(ctx, `INSERT INTO auctions (`+auctionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...); err != nil {
		return fmt.Errorf("create auction %s: %w", a.AuctionID, err)
	}
	return nil
}

func (s *store) GetAuction(ctx context.Context, auctionID string) (models.Auction, error) {
	a, err := scanAuction(s.queryRow(ctx, `SELECT `+auctionColumns+` FROM auctions WHERE auction_id = ?`, auctionID))
	if err != nil {
		return models.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, err)
	}
	return a, nil
}

func (s *store) SaveAuction(ctx context.Context, a models.Auction) error {
	args, err := auctionArgs(a)
	if err != nil {
		return err
	}
	res, err := s.exec(ctx, `UPDATE auctions SET inventory_id = ?, base_price = ?, current_bid = ?,
		highest_bidder_id = ?, highest_bid_id = ?, bid_ids = ?, start_date = ?, end_date = ?,
		created_at = ?, updated_at = ?
		WHERE auction_id = ?`, append(args[1:], a.AuctionID)...)
	if err != nil {
		return fmt.Errorf("save auction %s: %w", a.AuctionID, err)
	}
	return mustAffect(res, "save auction "+a.AuctionID)
}

func (s *store) DeleteAuction(ctx context.Context, auctionID string) error {
	res, err := s.exec(ctx, `DELETE FROM auctions WHERE auction_id = ?`, auctionID)
	if err != nil {
		return fmt.Errorf("delete auction %s: %w", auctionID, err)
	}
	return mustAffect(res, "delete auction "+auctionID)
}

func (s *store) ListAuctions(ctx context.Context, filter repository.AuctionFilter) ([]models.Auction, error) {
	var w where
	w.eq("inventory_id", filter.InventoryID)

	rows, err := s.query(ctx, `SELECT `+auctionColumns+` FROM auctions`+w.String()+` ORDER BY created_at, auction_id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list auctions: %w", err)
	}
	defer rows.Close()

	out := make([]models.Auction, 0)
	for rows.Next() {
		a, err := scanAuction(rows)
		if err != nil {
			return nil, fmt.Errorf("list auctions: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

const bidColumns = `bid_id, auction_id, requirement_id, buyer_id, seller_id, inventory_id, amount, note,
	status, is_highest_bid, created_at, updated_at`

func bidArgs(b models.Bid) []any {
	return []any{
		b.BidID, b.AuctionID, b.RequirementID, b.BuyerID, b.SellerID, b.InventoryID, b.Amount.String(), b.Note,
		string(b.Status), b.IsHighestBid, utc(b.CreatedAt), utc(b.UpdatedAt),
	}
}

func scanBid(row scanner) (models.Bid, error) {
	var (
		b      models.Bid
		status string
	)
	err := row.Scan(&b.BidID, &b.AuctionID, &b.RequirementID, &b.BuyerID, &b.SellerID, &b.InventoryID, &b.Amount, &b.Note,
		&status, &b.IsHighestBid, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return models.Bid{}, translate(err)
	}
	b.Status = models.BidStatus(status)
	b.CreatedAt, b.UpdatedAt = utc(b.CreatedAt), utc(b.UpdatedAt)
	return b, nil
}

func (s *store) CreateBid(ctx context.Context, b models.Bid) error {
	if _, err := s.exec(ctx, `INSERT INTO bids (`+bidColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, bidArgs(b)...); err != nil {
		return fmt.Errorf("create bid %s: %w", b.BidID, err)
	}
	return nil
}

func (s *store) GetBid(ctx context.Context, bidID string) (models.Bid, error) {
	b, err := scanBid(s.queryRow(ctx, `SELECT `+bidColumns+` FROM bids WHERE bid_id = ?`, bidID))
	if err != nil {
		return models.Bid{}, fmt.Errorf("get bid %s: %w", bidID, err)
	}
	return b, nil
}

func (s *store) SaveBid(ctx context.Context, b models.Bid) error {
	res, err := s.exec(ctx, `UPDATE bids SET auction_id = ?, requirement_id = ?, buyer_id = ?, seller_id = ?,
		inventory_id = ?, amount = ?, note = ?, status = ?, is_highest_bid = ?, created_at = ?, updated_at = ?
		WHERE bid_id = ?`, append(bidArgs(b)[1:], b.BidID)...)
	if err != nil {
		return fmt.Errorf("save bid %s: %w", b.BidID, err)
	}
	return mustAffect(res, "save bid "+b.BidID)
}

func (s *store) DeleteBid(ctx context.Context, bidID string) error {
	res, err := s.exec(ctx, `DELETE FROM bids WHERE bid_id = ?`, bidID)
	if err != nil {
		return fmt.Errorf("delete bid %s: %w", bidID, err)
	}
	return mustAffect(res, "delete bid "+bidID)
}

func (s *store) ListBids(ctx context.Context, filter repository.BidFilter) ([]models.Bid, error) {
	var w where
	w.eq("auction_id", filter.AuctionID)
	w.eq("requirement_id", filter.RequirementID)
	w.eq("buyer_id", filter.BuyerID)
	w.eq("seller_id", filter.SellerID)
	w.eq("inventory_id", filter.InventoryID)
	w.eq("status", string(filter.Status))

	rows, err := s.query(ctx, `SELECT `+bidColumns+` FROM bids`+w.String()+` ORDER BY created_at, bid_id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list bids: %w", err)
	}
	defer rows.Close()

	out := make([]models.Bid, 0)
	for rows.Next() {
		b, err := scanBid(rows)
		if err != nil {
			return nil, fmt.Errorf("list bids: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
