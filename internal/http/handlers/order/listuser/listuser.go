// Package listuser реализует HTTP-обработчик выдачи заказов одного покупателя.
//
// Покупатель видит только собственные заказы; администратор — любые.
package listuser

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/greenbowl/salad-storefront/internal/http/middlewarectx"
	"github.com/greenbowl/salad-storefront/internal/http/response"
	"github.com/greenbowl/salad-storefront/internal/lib/sl"
	"github.com/greenbowl/salad-storefront/internal/models"
)

// Handler управляет HTTP-запросами на список заказов покупателя.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики выборки заказов.
type Service interface {
	ListByEmail(ctx context.Context, email string) ([]*models.Order, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Заказы покупателя
// @Description Возвращает заказы покупателя по почте, новые первыми. Чужие заказы доступны только администратору.
// @Tags Orders
// @Produce  json
// @Param email path string true "Почта покупателя"
// @Success 200 {object} map[string]any "Список заказов"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Чужие заказы недоступны"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /orders/user/{email} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.order.listuser"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email := chi.URLParam(r, "email")
	callerEmail, _ := r.Context().Value(middlewarectx.UserEmail).(string)
	callerRole, _ := r.Context().Value(middlewarectx.Role).(string)
	if callerEmail == "" {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}
	if callerEmail != email && callerRole != models.RoleAdmin {
		log.Warn("access to foreign orders denied", slog.String("caller", callerEmail))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("access denied"))
		return
	}

	orders, err := h.service.ListByEmail(r.Context(), email)
	if err != nil {
		log.Error("failed to list orders", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list orders"))
		return
	}

	log.Info("orders listed", slog.String("email", email), slog.Int("count", len(orders)))
	render.JSON(w, r, map[string]any{
		"success": true,
		"orders":  orders,
	})
}
