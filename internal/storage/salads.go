package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/greenbowl/salad-storefront/internal/models"
)

// CreateSalad сохраняет новую позицию каталога и возвращает её UID.
func (s *Storage) CreateSalad(ctx context.Context, salad models.Salad) (string, error) {
	const op = "storage.CreateSalad"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO salads (name, description, price, category, image_url, is_active)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING uid`
	if err := s.DB.QueryRowContext(ctx, query,
		salad.Name, salad.Description, salad.Price, salad.Category,
		salad.ImageURL, salad.IsActive).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetSalad возвращает позицию каталога по UID или ErrNotFound.
func (s *Storage) GetSalad(ctx context.Context, saladUID string) (*models.Salad, error) {
	const op = "storage.GetSalad"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, description, price, category, image_url, is_active, created_at
			  FROM salads WHERE uid = $1`
	salad := &models.Salad{}
	row := s.DB.QueryRowContext(ctx, query, saladUID)
	if err := row.Scan(&salad.UID, &salad.Name, &salad.Description, &salad.Price,
		&salad.Category, &salad.ImageURL, &salad.IsActive, &salad.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return salad, nil
}

// ListSalads возвращает позиции каталога; onlyActive скрывает выключенные.
func (s *Storage) ListSalads(ctx context.Context, onlyActive bool) ([]*models.Salad, error) {
	const op = "storage.ListSalads"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, description, price, category, image_url, is_active, created_at
			  FROM salads`
	if onlyActive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY created_at`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var result []*models.Salad
	for rows.Next() {
		salad := &models.Salad{}
		if err := rows.Scan(&salad.UID, &salad.Name, &salad.Description, &salad.Price,
			&salad.Category, &salad.ImageURL, &salad.IsActive, &salad.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, salad)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateSalad обновляет позицию каталога и возвращает количество изменённых строк.
func (s *Storage) UpdateSalad(ctx context.Context, saladUID string, salad models.Salad) (int, error) {
	const op = "storage.UpdateSalad"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE salads
			  SET name = $1, description = $2, price = $3, category = $4,
			      image_url = $5, is_active = $6
			  WHERE uid = $7`
	result, err := s.DB.ExecContext(ctx, query,
		salad.Name, salad.Description, salad.Price, salad.Category,
		salad.ImageURL, salad.IsActive, saladUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveSalad удаляет позицию каталога и возвращает количество удалённых строк.
func (s *Storage) RemoveSalad(ctx context.Context, saladUID string) (int, error) {
	const op = "storage.RemoveSalad"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM salads WHERE uid = $1`
	result, err := s.DB.ExecContext(ctx, query, saladUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
