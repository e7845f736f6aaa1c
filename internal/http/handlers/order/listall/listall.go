// Package listall реализует HTTP-обработчик выдачи всех заказов магазина.
package listall

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/greenbowl/salad-storefront/internal/http/response"
	"github.com/greenbowl/salad-storefront/internal/lib/sl"
	"github.com/greenbowl/salad-storefront/internal/models"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

// Handler управляет HTTP-запросами на полный список заказов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики выборки всех заказов.
type Service interface {
	ListAll(ctx context.Context, limit, offset int) ([]*models.Order, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Все заказы
// @Description Возвращает заказы всех покупателей с пагинацией. Доступно только администратору.
// @Tags Orders
// @Produce  json
// @Param limit query int false "Максимум записей (по умолчанию 50)"
// @Param offset query int false "Смещение"
// @Success 200 {object} map[string]any "Список заказов"
// @Failure 403 {object} response.ErrorResponse "Доступно только администратору"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /orders/all [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.order.listall"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, offset := parsePagination(r)

	orders, err := h.service.ListAll(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list orders", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list orders"))
		return
	}

	log.Info("orders listed", slog.Int("count", len(orders)))
	render.JSON(w, r, map[string]any{
		"success": true,
		"orders":  orders,
	})
}

func parsePagination(r *http.Request) (limit, offset int) {
	limit = defaultLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}
