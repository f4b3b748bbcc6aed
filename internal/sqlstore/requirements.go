package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"diamond-exchange/internal/models"
	"diamond-exchange/internal/repository"
)

const requirementColumns = `requirement_id, buyer_id, shape, carat, color, clarity, lab, location,
	budget, deadline, status, uniqueness_key, created_at, updated_at`

func requirementArgs(r models.Requirement) []any {
	var deadline sql.NullTime
	if r.Deadline != nil {
		deadline = sql.NullTime{Time: utc(*r.Deadline), Valid: true}
	}
	return []any{
		r.RequirementID, r.BuyerID, r.Spec.Shape, r.Spec.Carat.String(), r.Spec.Color, r.Spec.Clarity,
		r.Spec.Lab, r.Spec.Location, r.Budget.String(), deadline, string(r.Status), r.UniquenessKey,
		utc(r.CreatedAt), utc(r.UpdatedAt),
	}
}

func scanRequirement(row scanner) (models.Requirement, error) {
	var (
		r        models.Requirement
		deadline sql.NullTime
		status   string
	)
	err := row.Scan(&r.RequirementID, &r.BuyerID, &r.Spec.Shape, &r.Spec.Carat, &r.Spec.Color, &r.Spec.Clarity,
		&r.Spec.Lab, &r.Spec.Location, &r.Budget, &deadline, &status, &r.UniquenessKey,
		&r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return models.Requirement{}, translate(err)
	}
	if deadline.Valid {
		d := utc(deadline.Time)
		r.Deadline = &d
	}
	r.Status = models.RequirementStatus(status)
	r.CreatedAt, r.UpdatedAt = utc(r.CreatedAt), utc(r.UpdatedAt)
	return r, nil
}

func (s *store) CreateRequirement(ctx context.Context, r models.Requirement) error {
	if _, err := s.exec(ctx, `INSERT INTO requirements (`+requirementColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, requirementArgs(r)...); err != nil {
		return fmt.Errorf("create requirement %s: %w", r.RequirementID, err)
	}
	return nil
}

func (s *store) GetRequirement(ctx context.Context, requirementID string) (models.Requirement, error) {
	r, err := scanRequirement(s.queryRow(ctx, `SELECT `+requirementColumns+` FROM requirements WHERE requirement_id = ?`, requirementID))
	if err != nil {
		return models.Requirement{}, fmt.Errorf("get requirement %s: %w", requirementID, err)
	}
	return r, nil
}

func (s *store) SaveRequirement(ctx context.Context, r models.Requirement) error {
	res, err := s.exec(ctx, `UPDATE requirements SET buyer_id = ?, shape = ?, carat = ?, color = ?, clarity = ?,
		lab = ?, location = ?, budget = ?, deadline = ?, status = ?, uniqueness_key = ?, created_at = ?, updated_at = ?
		WHERE requirement_id = ?`, append(requirementArgs(r)[1:], r.RequirementID)...)
	if err != nil {
		return fmt.Errorf("save requirement %s: %w", r.RequirementID, err)
	}
	return mustAffect(res, "save requirement "+r.RequirementID)
}

func (s *store) DeleteRequirement(ctx context.Context, requirementID string) error {
	res, err := s.exec(ctx, `DELETE FROM requirements WHERE requirement_id = ?`, requirementID)
	if err != nil {
		return fmt.Errorf("delete requirement %s: %w", requirementID, err)
	}
	return mustAffect(res, "delete requirement "+requirementID)
}

func (s *store) ListRequirements(ctx context.Context, filter repository.RequirementFilter) ([]models.Requirement, error) {
	var w where
	w.eq("buyer_id", filter.BuyerID)
	w.eq("status", string(filter.Status))
	w.eq("uniqueness_key", filter.UniquenessKey)

	rows, err := s.query(ctx, `SELECT `+requirementColumns+` FROM requirements`+w.String()+` ORDER BY created_at, requirement_id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list requirements: %w", err)
	}
	defer rows.Close()

	out := make([]models.Requirement, 0)
	for rows.Next() {
		r, err := scanRequirement(rows)
		if err != nil {
			return nil, fmt.Errorf("list requirements: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
