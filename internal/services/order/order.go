// Package services содержит бизнес-логику оформления заказов.
//
// Оформление заказа — единственное место, где за один запрос затрагиваются
// две сущности: пользователь (при покупке членства) и заказ. Запись
// пользователя всегда выполняется до записи заказа; компенсации при сбое
// второй записи нет.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/greenbowl/salad-storefront/internal/lib/sl"
	"github.com/greenbowl/salad-storefront/internal/models"
)

// ErrEmptyCart возвращается при пустой корзине; никакие записи не выполняются.
var ErrEmptyCart = errors.New("cart must contain at least one item")

// ErrInvalidStatus возвращается при недопустимом значении статуса заказа.
var ErrInvalidStatus = errors.New("invalid order status")

// UserRepository описывает доступ к пользователям, который нужен заказам.
type UserRepository interface {
	// GetUserByEmail возвращает пользователя или storage.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// MembershipActivator включает членство по тарифу. Даты начала и окончания
// вычисляет сервис пользователей, оформление заказа их не считает.
type MembershipActivator interface {
	ActivateMembership(ctx context.Context, userUID string, plan *models.MembershipPlan) error
}

// PlanResolver разрешает идентификатор строки корзины в тариф членства.
type PlanResolver interface {
	// FindMembershipPlan возвращает (nil, false, nil), если идентификатор
	// не является тарифом; ошибка означает сбой хранилища.
	FindMembershipPlan(ctx context.Context, productUID string) (*models.MembershipPlan, bool, error)
}

// OrderRepository описывает методы для работы с заказами в хранилище.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order models.Order) error
	ListOrdersByEmail(ctx context.Context, email string) ([]*models.Order, error)
	ListAllOrders(ctx context.Context, limit, offset int) ([]*models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderUID, status string) (*models.Order, error)
}

// EventPublisher публикует событие о созданном заказе.
type EventPublisher interface {
	PublishOrderCreated(event models.OrderCreatedEvent) error
}

// OrderService реализует оформление заказа и админские операции над заказами.
type OrderService struct {
	users       UserRepository
	plans       PlanResolver
	memberships MembershipActivator
	orders      OrderRepository
	events      EventPublisher
	now         func() time.Time
	log         *slog.Logger
}

// NewOrderService создает новый экземпляр OrderService.
func NewOrderService(users UserRepository, plans PlanResolver, memberships MembershipActivator, orders OrderRepository, events EventPublisher, log *slog.Logger) *OrderService {
	return &OrderService{
		users:       users,
		plans:       plans,
		memberships: memberships,
		orders:      orders,
		events:      events,
		now:         time.Now,
		log:         log,
	}
}

// Submit оформляет заказ по корзине покупателя.
//
// Порядок шагов фиксирован: проверка корзины, поиск пользователя,
// разрешение строк-членств с немедленной записью пользователя, затем
// сохранение заказа с денормализованным снимком имени и телефона.
// Суммы subtotal/tax/delivery/total сохраняются как прислал клиент.
//
// Несколько тарифов в одной корзине обрабатываются по очереди: побеждает
// последний. Конкурирующие запросы одного пользователя не сериализуются,
// итоговое членство определяет последняя запись.
func (s *OrderService) Submit(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}

	user, err := s.users.GetUserByEmail(ctx, req.UserEmail)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, models.OrderItem{
			ProductUID: item.ProductUID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			Price:      item.Price,
		})

		if item.ProductUID == "" {
			continue
		}
		plan, found, err := s.plans.FindMembershipPlan(ctx, item.ProductUID)
		if err != nil {
			// Сбой хранилища при разрешении строки не валит весь заказ,
			// строка остаётся обычной покупкой
			s.log.Warn("membership plan lookup failed",
				slog.String("product_id", item.ProductUID), sl.Err(err))
			continue
		}
		if !found {
			continue
		}

		if err := s.memberships.ActivateMembership(ctx, user.UID, plan); err != nil {
			s.log.Error("failed to activate membership",
				slog.String("user_uid", user.UID), slog.String("plan_uid", plan.UID), sl.Err(err))
			continue
		}
		s.log.Info("membership activated",
			slog.String("user_uid", user.UID),
			slog.String("plan_uid", plan.UID))
	}

	order := models.Order{
		UID:       uuid.New().String(),
		UserEmail: user.Email,
		// Снимок реквизитов пользователя на момент заказа
		UserName:     user.Name,
		UserPhone:    user.Phone,
		Items:        items,
		Subtotal:     req.Subtotal,
		Tax:          req.Tax,
		Delivery:     req.Delivery,
		Total:        req.Total,
		Status:       models.OrderProcessing,
		OrderDate:    now,
		DeliveryDate: now.AddDate(0, 0, 1),
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		// Активация членства уже записана и не откатывается
		s.log.Error("failed to persist order after user update", sl.Err(err))
		return nil, err
	}
	s.log.Info("order created", slog.String("order_uid", order.UID))

	if s.events != nil {
		event := models.OrderCreatedEvent{
			OrderUID:     order.UID,
			UserEmail:    order.UserEmail,
			UserName:     order.UserName,
			Total:        order.Total,
			DeliveryDate: order.DeliveryDate,
		}
		if err := s.events.PublishOrderCreated(event); err != nil {
			s.log.Warn("failed to publish order created event", sl.Err(err))
		}
	}

	return &order, nil
}

// ListByEmail возвращает заказы пользователя, новые первыми.
func (s *OrderService) ListByEmail(ctx context.Context, email string) ([]*models.Order, error) {
	return s.orders.ListOrdersByEmail(ctx, email)
}

// ListAll возвращает все заказы с пагинацией.
func (s *OrderService) ListAll(ctx context.Context, limit, offset int) ([]*models.Order, error) {
	return s.orders.ListAllOrders(ctx, limit, offset)
}

// UpdateStatus устанавливает статус заказа. Переходы между статусами
// не ограничиваются: любой валидный статус может быть установлен
// в любой момент, повторная установка безошибочна.
func (s *OrderService) UpdateStatus(ctx context.Context, orderUID, status string) (*models.Order, error) {
	switch status {
	case models.OrderProcessing, models.OrderDelivered, models.OrderCancelled:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.orders.UpdateOrderStatus(ctx, orderUID, status)
}
