package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/greenbowl/salad-storefront/internal/models"
)

// RegisterUser сохраняет нового пользователя и возвращает его UID.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (email, name, phone, city, address, password_hash, role,
			      membership_status, orders_used)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Email, user.Name, user.Phone, user.City, user.Address, user.PasswordHash,
		user.Role, user.MembershipStatus).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetUserByEmail возвращает пользователя по email — внешнему естественному
// ключу магазина. При отсутствии записи возвращает ErrNotFound.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, name, phone, city, address, password_hash, role,
			      membership_plan_uid, membership_start_date, membership_end_date,
			      membership_status, orders_used, created_at
			  FROM users
			  WHERE email = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, email), op)
}

// GetUserByUID возвращает пользователя по внутреннему идентификатору.
func (s *Storage) GetUserByUID(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUserByUID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, name, phone, city, address, password_hash, role,
			      membership_plan_uid, membership_start_date, membership_end_date,
			      membership_status, orders_used, created_at
			  FROM users
			  WHERE uid = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, userUID), op)
}

func (s *Storage) scanUser(row *sql.Row, op string) (*models.User, error) {
	u := &models.User{}
	var passwordHash, planUID sql.NullString
	var startDate, endDate sql.NullTime

	if err := row.Scan(&u.UID, &u.Email, &u.Name, &u.Phone, &u.City, &u.Address,
		&passwordHash, &u.Role, &planUID, &startDate, &endDate,
		&u.MembershipStatus, &u.OrdersUsed, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if passwordHash.Valid {
		u.PasswordHash = &passwordHash.String
	}
	if planUID.Valid {
		u.MembershipPlanUID = &planUID.String
	}
	if startDate.Valid {
		u.MembershipStartDate = &startDate.Time
	}
	if endDate.Valid {
		u.MembershipEndDate = &endDate.Time
	}
	return u, nil
}

// ActivateMembership записывает новое состояние членства пользователя:
// тариф, даты, статус Active и обнулённый счётчик заказов.
// Одиночная запись в документ пользователя; конкурирующие активации
// разрешаются по принципу "последняя запись побеждает".
func (s *Storage) ActivateMembership(ctx context.Context, userUID, planUID string, startDate, endDate time.Time) error {
	const op = "storage.ActivateMembership"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET membership_plan_uid = $1, membership_start_date = $2,
			      membership_end_date = $3, membership_status = $4, orders_used = 0
			  WHERE uid = $5`
	result, err := s.DB.ExecContext(ctx, query, planUID, startDate, endDate,
		models.MembershipActive, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// UpdateMembershipStatus меняет только статус членства пользователя.
// Остальные поля членства не затрагиваются.
func (s *Storage) UpdateMembershipStatus(ctx context.Context, userUID, status string) (*models.User, error) {
	const op = "storage.UpdateMembershipStatus"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET membership_status = $1 WHERE uid = $2`
	result, err := s.DB.ExecContext(ctx, query, status, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return s.GetUserByUID(ctx, userUID)
}
