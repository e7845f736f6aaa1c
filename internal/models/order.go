package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Статусы заказа. Начальный статус всегда Processing; любой валидный
// статус может быть установлен администратором в любой момент.
const (
	OrderProcessing = "Processing"
	OrderDelivered  = "Delivered"
	OrderCancelled  = "Cancelled"
)

// OrderItem — одна строка заказа. ProductUID заполняется, когда строка
// ссылается на сущность каталога; если он разрешается в тариф членства,
// оформление заказа активирует членство у пользователя.
type OrderItem struct {
	ProductUID string          `json:"productId,omitempty"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
}

// Order — заказ покупателя. UserName и UserPhone — денормализованный
// снимок данных пользователя на момент заказа: заказ должен отражать
// его реквизиты "как было", а не ссылаться на живую запись.
// Суммы сохраняются так, как их прислал клиент, без пересчёта по items.
type Order struct {
	UID          string          `json:"id"`
	UserEmail    string          `json:"userEmail"`
	UserName     string          `json:"userName"`
	UserPhone    string          `json:"userPhone"`
	Items        []OrderItem     `json:"items"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Tax          decimal.Decimal `json:"tax"`
	Delivery     decimal.Decimal `json:"delivery"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
	OrderDate    time.Time       `json:"orderDate"`
	DeliveryDate time.Time       `json:"deliveryDate"`
}

// CreateOrderRequest используется для приёма корзины из JSON-запроса.
// Числовые суммы принимаются как есть, без пересчёта на сервере.
type CreateOrderRequest struct {
	UserEmail string           `json:"userEmail" validate:"required,email"`
	Items     []OrderItemInput `json:"items" validate:"required,min=1,dive"`
	Subtotal  decimal.Decimal  `json:"subtotal"`
	Tax       decimal.Decimal  `json:"tax"`
	Delivery  decimal.Decimal  `json:"delivery"`
	Total     decimal.Decimal  `json:"total"`
}

// OrderItemInput — строка корзины из запроса.
type OrderItemInput struct {
	ProductUID string          `json:"productId"`
	Name       string          `json:"name" validate:"required"`
	Quantity   int             `json:"quantity" validate:"required,min=1"`
	Price      decimal.Decimal `json:"price"`
}

// UpdateOrderStatusRequest — админская смена статуса заказа.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Processing Delivered Cancelled"`
}

// OrderCreatedEvent публикуется в RabbitMQ после сохранения заказа
// и потребляется сервисом отправки писем.
type OrderCreatedEvent struct {
	OrderUID     string          `json:"orderId"`
	UserEmail    string          `json:"userEmail"`
	UserName     string          `json:"userName"`
	Total        decimal.Decimal `json:"total"`
	DeliveryDate time.Time       `json:"deliveryDate"`
}
