package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/greenbowl/salad-storefront/internal/models"
)

// CreateMembershipPlan сохраняет новый тариф и возвращает его UID.
func (s *Storage) CreateMembershipPlan(ctx context.Context, plan models.MembershipPlan) (string, error) {
	const op = "storage.CreateMembershipPlan"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	features, err := json.Marshal(plan.Features)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	var newUID string
	query := `INSERT INTO membership_plans (name, tier, price, original_price,
			      duration_months, weekly_allowance, features, discount_percent, is_active)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING uid`
	if err := s.DB.QueryRowContext(ctx, query,
		plan.Name, plan.Tier, plan.Price, plan.OriginalPrice, plan.DurationMonths,
		plan.WeeklyAllowance, features, plan.DiscountPercent, plan.IsActive).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetMembershipPlan возвращает тариф по UID или ErrNotFound.
func (s *Storage) GetMembershipPlan(ctx context.Context, planUID string) (*models.MembershipPlan, error) {
	const op = "storage.GetMembershipPlan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, tier, price, original_price, duration_months,
			      weekly_allowance, features, discount_percent, is_active, created_at
			  FROM membership_plans WHERE uid = $1`
	plan, err := scanPlan(s.DB.QueryRowContext(ctx, query, planUID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return plan, nil
}

// FindMembershipPlan разрешает идентификатор строки корзины в тариф членства.
//
// В отличие от GetMembershipPlan, отсутствие тарифа — легитимная ветка
// ("это обычный салат, а не членство"), поэтому возвращается (nil, false, nil).
// Ошибка возвращается только при реальном сбое хранилища.
func (s *Storage) FindMembershipPlan(ctx context.Context, productUID string) (*models.MembershipPlan, bool, error) {
	const op = "storage.FindMembershipPlan"
	select {
	case <-ctx.Done():
		return nil, false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	// Идентификаторы произвольных позиций корзины могут не быть uuid вовсе
	if _, err := uuid.Parse(productUID); err != nil {
		return nil, false, nil
	}

	query := `SELECT uid, name, tier, price, original_price, duration_months,
			      weekly_allowance, features, discount_percent, is_active, created_at
			  FROM membership_plans WHERE uid = $1`
	plan, err := scanPlan(s.DB.QueryRowContext(ctx, query, productUID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return plan, true, nil
}

// ListMembershipPlans возвращает тарифы в порядке создания.
// При onlyActive скрытые тарифы в выдачу не попадают.
func (s *Storage) ListMembershipPlans(ctx context.Context, onlyActive bool) ([]*models.MembershipPlan, error) {
	const op = "storage.ListMembershipPlans"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, tier, price, original_price, duration_months,
			      weekly_allowance, features, discount_percent, is_active, created_at
			  FROM membership_plans`
	if onlyActive {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY created_at`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var result []*models.MembershipPlan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateMembershipPlan обновляет тариф и возвращает количество изменённых строк.
func (s *Storage) UpdateMembershipPlan(ctx context.Context, planUID string, plan models.MembershipPlan) (int, error) {
	const op = "storage.UpdateMembershipPlan"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	features, err := json.Marshal(plan.Features)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE membership_plans
			  SET name = $1, tier = $2, price = $3, original_price = $4,
			      duration_months = $5, weekly_allowance = $6, features = $7,
			      discount_percent = $8, is_active = $9
			  WHERE uid = $10`
	result, err := s.DB.ExecContext(ctx, query,
		plan.Name, plan.Tier, plan.Price, plan.OriginalPrice, plan.DurationMonths,
		plan.WeeklyAllowance, features, plan.DiscountPercent, plan.IsActive, planUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveMembershipPlan удаляет тариф и возвращает количество удалённых строк.
func (s *Storage) RemoveMembershipPlan(ctx context.Context, planUID string) (int, error) {
	const op = "storage.RemoveMembershipPlan"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM membership_plans WHERE uid = $1`
	result, err := s.DB.ExecContext(ctx, query, planUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// scanner покрывает и *sql.Row, и *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanPlan(row scanner) (*models.MembershipPlan, error) {
	plan := &models.MembershipPlan{}
	var features []byte
	if err := row.Scan(&plan.UID, &plan.Name, &plan.Tier, &plan.Price, &plan.OriginalPrice,
		&plan.DurationMonths, &plan.WeeklyAllowance, &features,
		&plan.DiscountPercent, &plan.IsActive, &plan.CreatedAt); err != nil {
		return nil, err
	}
	if len(features) > 0 {
		if err := json.Unmarshal(features, &plan.Features); err != nil {
			return nil, err
		}
	}
	return plan, nil
}
