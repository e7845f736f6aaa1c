// Package updatestatus реализует HTTP-обработчик смены статуса заказа.
//
// Любой переход между статусами Processing, Delivered и Cancelled допустим,
// включая повторную установку текущего статуса.
package updatestatus

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/greenbowl/salad-storefront/internal/http/response"
	"github.com/greenbowl/salad-storefront/internal/lib/sl"
	"github.com/greenbowl/salad-storefront/internal/models"
	orderservice "github.com/greenbowl/salad-storefront/internal/services/order"
	"github.com/greenbowl/salad-storefront/internal/storage"
)

// Handler управляет HTTP-запросами на смену статуса заказа.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики смены статуса.
type Service interface {
	UpdateStatus(ctx context.Context, orderUID, status string) (*models.Order, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Сменить статус заказа
// @Description Выставляет заказу статус Processing, Delivered или Cancelled. Доступно только администратору.
// @Tags Orders
// @Accept  json
// @Produce  json
// @Param orderId path string true "UID заказа"
// @Param request body models.UpdateOrderStatusRequest true "Новый статус"
// @Success 200 {object} map[string]any "Обновлённый заказ"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или статус вне перечня"
// @Failure 403 {object} response.ErrorResponse "Доступно только администратору"
// @Failure 404 {object} response.ErrorResponse "Заказ не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /orders/update-status/{orderId} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.order.updatestatus"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	orderUID := chi.URLParam(r, "orderId")

	var req models.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), orderUID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, orderservice.ErrInvalidStatus):
			log.Warn("status outside the enum", slog.String("status", req.Status))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("status must be one of: Processing, Delivered, Cancelled"))
		case errors.Is(err, storage.ErrNotFound):
			log.Warn("order not found", slog.String("order_uid", orderUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("order not found"))
		default:
			log.Error("failed to update order status", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not update order status"))
		}
		return
	}

	log.Info("order status updated", slog.String("order_uid", orderUID), slog.String("status", req.Status))
	render.JSON(w, r, map[string]any{
		"success": true,
		"order":   order,
	})
}
