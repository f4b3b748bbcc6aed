package sqlstore

import (
	"context"
	"encoding/json"
	"fmt"

	"diamond-exchange/internal/models"
	"diamond-exchange/internal/repository"
)

const itemColumns = `item_id, seller_id, barcode, title, description, shape, carat, cut, color, clarity,
	lab, location, price, currency, current_bid, images, video, status, locked, created_at, updated_at`

func itemArgs(item models.Item) ([]any, error) {
	images, err := json.Marshal(nonNil(item.Images))
	if err != nil {
		return nil, fmt.Errorf("encode images: %w", err)
	}
	return []any{
		item.ItemID, item.SellerID, item.Barcode, item.Title, item.Description,
		item.Shape, item.Carat.String(), item.Cut, item.Color, item.Clarity, item.Lab, item.Location,
		item.Price.String(), item.Currency, item.CurrentBid.String(), string(images), item.Video,
		string(item.Status), item.Locked, utc(item.CreatedAt), utc(item.UpdatedAt),
	}, nil
}

func scanItem(row scanner) (models.Item, error) {
	var (
		item   models.Item
		images string
		status string
	)
	err := row.Scan(&item.ItemID, &item.SellerID, &item.Barcode, &item.Title, &item.Description,
		&item.Shape, &item.Carat, &item.Cut, &item.Color, &item.Clarity, &item.Lab, &item.Location,
		&item.Price, &item.Currency, &item.CurrentBid, &images, &item.Video,
		&status, &item.Locked, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return models.Item{}, translate(err)
	}
	if err := json.Unmarshal([]byte(images), &item.Images); err != nil {
		return models.Item{}, fmt.Errorf("decode images of %s: %w", item.ItemID, err)
	}
	if len(item.Images) == 0 {
		item.Images = nil
	}
	item.Status = models.ItemStatus(status)
	item.CreatedAt = utc(item.CreatedAt)
	item.UpdatedAt = utc(item.UpdatedAt)
	return item, nil
}

func (s *store) CreateItem(ctx context.Context, item models.Item) error {
	args, err := itemArgs(item)
	if err != nil {
		return err
	}
	if _, err := s.exec(ctx, `INSERT INTO items (`+itemColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...); err != nil {
		return fmt.Errorf("create item %s: %w", item.ItemID, err)
	}
	return nil
}

func (s *store) GetItem(ctx context.Context, itemID string) (models.Item, error) {
	item, err := scanItem(s.queryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE item_id = ?`, itemID))
	if err != nil {
		return models.Item{}, fmt.Errorf("get item %s: %w", itemID, err)
	}
	return item, nil
}

func (s *store) SaveItem(ctx context.Context, item models.Item) error {
	args, err := itemArgs(item)
	if err != nil {
		return err
	}
	res, err := s.exec(ctx, `UPDATE items SET seller_id = ?, barcode = ?, title = ?, description = ?,
		shape = ?, carat = ?, cut = ?, color = ?, clarity = ?, lab = ?, location = ?,
		price = ?, currency = ?, current_bid = ?, images = ?, video = ?, status = ?, locked = ?,
		created_at = ?, updated_at = ?
		WHERE item_id = ?`, append(args[1:], item.ItemID)...)
	if err != nil {
		return fmt.Errorf("save item %s: %w", item.ItemID, err)
	}
	return mustAffect(res, "save item "+item.ItemID)
}

func (s *store) DeleteItem(ctx context.Context, itemID string) error {
	res, err := s.exec(ctx, `DELETE FROM items WHERE item_id = ?`, itemID)
	if err != nil {
		return fmt.Errorf("delete item %s: %w", itemID, err)
	}
	return mustAffect(res, "delete item "+itemID)
}

func (s *store) ListItems(ctx context.Context, filter repository.ItemFilter) ([]models.Item, error) {
	var w where
	w.eq("seller_id", filter.SellerID)
	w.eq("status", string(filter.Status))

	rows, err := s.query(ctx, `SELECT `+itemColumns+` FROM items`+w.String()+` ORDER BY created_at, item_id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	out := make([]models.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("list items: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (s *store) AppendStatusLog(ctx context.Context, entry models.InventoryStatusLog) error {
	if _, err := s.exec(ctx, `INSERT INTO inventory_status_log
		(log_id, item_id, from_status, to_status, locked, changed_by, changed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.LogID, entry.ItemID, string(entry.FromStatus), string(entry.ToStatus),
		entry.Locked, entry.ChangedBy, utc(entry.ChangedAt)); err != nil {
		return fmt.Errorf("append status log %s: %w", entry.LogID, err)
	}
	return nil
}

func (s *store) DeleteStatusLog(ctx context.Context, logID string) error {
	res, err := s.exec(ctx, `DELETE FROM inventory_status_log WHERE log_id = ?`, logID)
	if err != nil {
		return fmt.Errorf("delete status log %s: %w", logID, err)
	}
	return mustAffect(res, "delete status log "+logID)
}

func (s *store) ListStatusLog(ctx context.Context, itemID string) ([]models.InventoryStatusLog, error) {
	rows, err := s.query(ctx, `SELECT log_id, item_id, from_status, to_status, locked, changed_by, changed_at
		FROM inventory_status_log WHERE item_id = ? ORDER BY changed_at, log_id`, itemID)
	if err != nil {
		return nil, fmt.Errorf("list status log %s: %w", itemID, err)
	}
	defer rows.Close()

	out := make([]models.InventoryStatusLog, 0)
	for rows.Next() {
		var (
			e        models.InventoryStatusLog
			from, to string
		)
		if err := rows.Scan(&e.LogID, &e.ItemID, &from, &to, &e.Locked, &e.ChangedBy, &e.ChangedAt); err != nil {
			return nil, fmt.Errorf("list status log %s: %w", itemID, err)
		}
		e.FromStatus = models.ItemStatus(from)
		e.ToStatus = models.ItemStatus(to)
		e.ChangedAt = utc(e.ChangedAt)
		out = append(out, e)
	}
	return out, rows.Err()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
