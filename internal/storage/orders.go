package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/greenbowl/salad-storefront/internal/models"
)

// CreateOrder сохраняет заказ. Строки заказа хранятся JSONB-снимком:
// заказ не ссылается на живые записи каталога или пользователя.
func (s *Storage) CreateOrder(ctx context.Context, order models.Order) error {
	const op = "storage.CreateOrder"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO orders (uid, user_email, user_name, user_phone, items,
			      subtotal, tax, delivery_fee, total, status, order_date, delivery_date)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	if _, err := s.DB.ExecContext(ctx, query,
		order.UID, order.UserEmail, order.UserName, order.UserPhone, items,
		order.Subtotal, order.Tax, order.Delivery, order.Total,
		order.Status, order.OrderDate, order.DeliveryDate); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListOrdersByEmail возвращает заказы пользователя, новые первыми.
func (s *Storage) ListOrdersByEmail(ctx context.Context, email string) ([]*models.Order, error) {
	const op = "storage.ListOrdersByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, user_email, user_name, user_phone, items,
			      subtotal, tax, delivery_fee, total, status, order_date, delivery_date
			  FROM orders
			  WHERE user_email = $1
			  ORDER BY order_date DESC`
	return s.queryOrders(ctx, op, query, email)
}

// ListAllOrders возвращает все заказы с пагинацией, новые первыми.
func (s *Storage) ListAllOrders(ctx context.Context, limit, offset int) ([]*models.Order, error) {
	const op = "storage.ListAllOrders"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, user_email, user_name, user_phone, items,
			      subtotal, tax, delivery_fee, total, status, order_date, delivery_date
			  FROM orders
			  ORDER BY order_date DESC
			  LIMIT $1 OFFSET $2`
	return s.queryOrders(ctx, op, query, limit, offset)
}

func (s *Storage) queryOrders(ctx context.Context, op, query string, args ...any) ([]*models.Order, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var result []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateOrderStatus устанавливает статус заказа и возвращает обновлённую
// запись. Повторная установка того же статуса — успешная no-op операция.
func (s *Storage) UpdateOrderStatus(ctx context.Context, orderUID, status string) (*models.Order, error) {
	const op = "storage.UpdateOrderStatus"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE orders SET status = $1
			  WHERE uid = $2
			  RETURNING uid, user_email, user_name, user_phone, items,
			      subtotal, tax, delivery_fee, total, status, order_date, delivery_date`
	order, err := scanOrder(s.DB.QueryRowContext(ctx, query, status, orderUID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return order, nil
}

func scanOrder(row scanner) (*models.Order, error) {
	order := &models.Order{}
	var items []byte
	if err := row.Scan(&order.UID, &order.UserEmail, &order.UserName, &order.UserPhone,
		&items, &order.Subtotal, &order.Tax, &order.Delivery, &order.Total,
		&order.Status, &order.OrderDate, &order.DeliveryDate); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &order.Items); err != nil {
		return nil, err
	}
	return order, nil
}
