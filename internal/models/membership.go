package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Уровни тарифов членства.
const (
	TierStarter = "Starter"
	TierPopular = "Popular"
	TierElite   = "Elite"
)

// MembershipPlan — тариф членства, управляется администратором.
// Пользователь ссылается на тариф, но никогда не владеет им;
// процесс оформления заказа читает тариф и не изменяет его.
type MembershipPlan struct {
	UID             string          `json:"id"`
	Name            string          `json:"name"`
	Tier            string          `json:"tier"`
	Price           decimal.Decimal `json:"price"`
	OriginalPrice   decimal.Decimal `json:"originalPrice"`
	DurationMonths  int             `json:"durationMonths"` // всегда >= 1
	WeeklyAllowance string          `json:"weeklyAllowance"`
	Features        []string        `json:"features"`
	DiscountPercent int             `json:"discountPercent"`
	IsActive        bool            `json:"isActive"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// MembershipPlanRequest используется для приёма данных тарифа из JSON-запроса.
type MembershipPlanRequest struct {
	Name            string          `json:"name" validate:"required"`
	Tier            string          `json:"tier" validate:"required,oneof=Starter Popular Elite"`
	Price           decimal.Decimal `json:"price"`
	OriginalPrice   decimal.Decimal `json:"originalPrice"`
	DurationMonths  int             `json:"durationMonths" validate:"required,min=1"`
	WeeklyAllowance string          `json:"weeklyAllowance"`
	Features        []string        `json:"features"`
	DiscountPercent int             `json:"discountPercent" validate:"min=0,max=100"`
	IsActive        bool            `json:"isActive"`
}
