// Package models содержит доменные структуры магазина: пользователей,
// тарифы членства, салаты и заказы, а также DTO для JSON-запросов.
package models

import "time"

// Роли пользователей. Доступ к админским операциям определяется
// только этим полем, без каких-либо встроенных учётных данных.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Статусы членства пользователя.
const (
	MembershipNone      = "None"
	MembershipActive    = "Active"
	MembershipExpired   = "Expired"
	MembershipCancelled = "Cancelled"
)

// User представляет зарегистрированного покупателя или администратора.
//
// Поля членства встроены в пользователя, а не вынесены в отдельную сущность:
// их изменяет только ветка активации в процессе оформления заказа
// и явная админская операция смены статуса.
// Инвариант: при MembershipStatus == Active поля MembershipPlanUID,
// MembershipStartDate и MembershipEndDate заполнены и start <= end.
type User struct {
	UID          string  `json:"id"`
	Email        string  `json:"email"` // Внешний естественный ключ
	Name         string  `json:"name"`
	Phone        string  `json:"phone"`
	City         string  `json:"city"`
	Address      string  `json:"address"`
	PasswordHash *string `json:"-"` // nil для пользователей через соцсети
	Role         string  `json:"role"`

	MembershipPlanUID   *string    `json:"membershipPlanId"`
	MembershipStartDate *time.Time `json:"membershipStartDate"`
	MembershipEndDate   *time.Time `json:"membershipEndDate"`
	MembershipStatus    string     `json:"membershipStatus"`
	OrdersUsed          int        `json:"ordersUsed"`

	CreatedAt time.Time `json:"createdAt"`
}

// SignupRequest используется для приёма данных регистрации.
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	City     string `json:"city"`
	Address  string `json:"address"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest используется для приёма данных входа.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateMembershipStatusRequest — админская смена статуса членства пользователя.
type UpdateMembershipStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Active Expired Cancelled"`
}
