package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Salad — позиция каталога. В заказ попадает только снимок имени и цены.
type Salad struct {
	UID         string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"imageUrl"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// SaladRequest используется для приёма данных салата из JSON-запроса.
type SaladRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"imageUrl"`
	IsActive    bool            `json:"isActive"`
}
