package sqlstore

import (
	"context"
	"encoding/json"
	"fmt"

	"diamond-exchange/internal/models"
	"diamond-exchange/internal/repository"
)

const dealColumns = `deal_id, bid_id, auction_id, requirement_id, inventory_id, buyer_id, seller_id,
	agreed_amount, currency, status, history, payment, shipping, dispute, pdf_path, created_at, updated_at`

// encodeOptional stores a nil sub-record as the empty string
func encodeOptional(v any, isNil bool) (string, error) {
	if isNil {
		return "", nil
	}
	raw, err := json.Marshal(v)
	return string(raw), err
}

func decodeOptional(raw string, v any) error {
	if raw == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), v)
}

func dealArgs(d models.Deal) ([]any, error) {
	history := d.History
	if history == nil {
		history = []models.DealHistoryEntry{}
	}
	hist, err := json.Marshal(history)
	if err != nil {
		return nil, fmt.Errorf("encode history: %w", err)
	}
	payment, err := encodeOptional(d.Payment, d.Payment == nil)
	if err != nil {
		return nil, fmt.Errorf("encode payment: %w", err)
	}
	shipping, err := encodeOptional(d.Shipping, d.Shipping == nil)
	if err != nil {
		return nil, fmt.Errorf("encode shipping: %w", err)
	}
	dispute, err := encodeOptional(d.Dispute, d.Dispute == nil)
	if err != nil {
		return nil, fmt.Errorf("encode dispute: %w", err)
	}
	return []any{
		d.DealID, d.BidID, d.AuctionID, d.RequirementID, d.InventoryID, d.BuyerID, d.SellerID,
		d.AgreedAmount.String(), d.Currency, string(d.Status), string(hist), payment, shipping, dispute,
		d.PDFPath, utc(d.CreatedAt), utc(d.UpdatedAt),
	}, nil
}

func scanDeal(row scanner) (models.Deal, error) {
	var (
		d                                   models.Deal
		status, hist, payment, ship, dispute string
	)
	err := row.Scan(&d.DealID, &d.BidID, &d.AuctionID, &d.RequirementID, &d.InventoryID, &d.BuyerID, &d.SellerID,
		&d.AgreedAmount, &d.Currency, &status, &hist, &payment, &ship, &dispute,
		&d.PDFPath, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return models.Deal{}, translate(err)
	}
	if err := json.Unmarshal([]byte(hist), &d.History); err != nil {
		return models.Deal{}, fmt.Errorf("decode history of %s: %w", d.DealID, err)
	}
	if payment != "" {
		d.Payment = &models.Payment{}
		if err := decodeOptional(payment, d.Payment); err != nil {
			return models.Deal{}, fmt.Errorf("decode payment of %s: %w", d.DealID, err)
		}
	}
	if ship != "" {
		d.Shipping = &models.Shipping{}
		if err := decodeOptional(ship, d.Shipping); err != nil {
			return models.Deal{}, fmt.Errorf("decode shipping of %s: %w", d.DealID, err)
		}
	}
	if dispute != "" {
		d.Dispute = &models.Dispute{}
		if err := decodeOptional(dispute, d.Dispute); err != nil {
			return models.Deal{}, fmt.Errorf("decode dispute of %s: %w", d.DealID, err)
		}
	}
	d.Status = models.DealStatus(status)
	d.CreatedAt, d.UpdatedAt = utc(d.CreatedAt), utc(d.UpdatedAt)
	return d, nil
}

func (s *store) CreateDeal(ctx context.Context, d models.Deal) error {
	args, err := dealArgs(d)
	if err != nil {
		return err
	}
	if _, err := s.exec(ctx, `INSERT INTO deals (`+dealColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...); err != nil {
		return fmt.Errorf("create deal %s: %w", d.DealID, err)
	}
	return nil
}

func (s *store) GetDeal(ctx context.Context, dealID string) (models.Deal, error) {
	d, err := scanDeal(s.queryRow(ctx, `SELECT `+dealColumns+` FROM deals WHERE deal_id = ?`, dealID))
	if err != nil {
		return models.Deal{}, fmt.Errorf("get deal %s: %w", dealID, err)
	}
	return d, nil
}

func (s *store) SaveDeal(ctx context.Context, d models.Deal) error {
	args, err := dealArgs(d)
	if err != nil {
		return err
	}
	res, err := s.exec(ctx, `UPDATE deals SET bid_id = ?, auction_id = ?, requirement_id = ?, inventory_id = ?,
		buyer_id = ?, seller_id = ?, agreed_amount = ?, currency = ?, status = ?, history = ?, payment = ?,
		shipping = ?, dispute = ?, pdf_path = ?, created_at = ?, updated_at = ?
		WHERE deal_id = ?`, append(args[1:], d.DealID)...)
	if err != nil {
		return fmt.Errorf("save deal %s: %w", d.DealID, err)
	}
	return mustAffect(res, "save deal "+d.DealID)
}

func (s *store) DeleteDeal(ctx context.Context, dealID string) error {
	res, err := s.exec(ctx, `DELETE FROM deals WHERE deal_id = ?`, dealID)
	if err != nil {
		return fmt.Errorf("delete deal %s: %w", dealID, err)
	}
	return mustAffect(res, "delete deal "+dealID)
}

func (s *store) ListDeals(ctx context.Context, filter repository.DealFilter) ([]models.Deal, error) {
	var w where
	if filter.ParticipantID != "" {
		w.raw("(buyer_id = ? OR seller_id = ?)", filter.ParticipantID, filter.ParticipantID)
	}
	w.eq("bid_id", filter.BidID)

	rows, err := s.query(ctx, `SELECT `+dealColumns+` FROM deals`+w.String()+` ORDER BY created_at, deal_id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list deals: %w", err)
	}
	defer rows.Close()

	out := make([]models.Deal, 0)
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, fmt.Errorf("list deals: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
