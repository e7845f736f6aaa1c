// Package create реализует HTTP-обработчик оформления заказа.
//
// Handler принимает JSON с корзиной и почтой покупателя, валидирует их,
// вызывает бизнес-логику оформления через сервис и возвращает сохранённый
// заказ. Покупка тарифа членства в составе корзины активирует членство
// на стороне сервиса.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/greenbowl/salad-storefront/internal/http/response"
	"github.com/greenbowl/salad-storefront/internal/lib/sl"
	"github.com/greenbowl/salad-storefront/internal/models"
	orderservice "github.com/greenbowl/salad-storefront/internal/services/order"
	"github.com/greenbowl/salad-storefront/internal/storage"
)

// Handler управляет HTTP-запросами на оформление заказов.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики оформления заказа.
type Service interface {
	Submit(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Оформить заказ
// @Description Сохраняет заказ для указанного покупателя. Тарифы членства в корзине активируют членство.
// @Tags Orders
// @Accept  json
// @Produce  json
// @Param request body models.CreateOrderRequest true "Корзина и данные покупателя"
// @Success 201 {object} map[string]any "Заказ сохранён"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON, ошибка валидации или пустая корзина"
// @Failure 404 {object} response.ErrorResponse "Покупатель не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при сохранении заказа"
// @Router /orders/create [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.order.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("email", req.UserEmail), slog.Int("items", len(req.Items)))

	// Пустая корзина (тег min=1 на Items) отклоняется здесь же, сервис
	// не вызывается; контракт конечной точки отдаёт 400, а не 422.
	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	order, err := h.service.Submit(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, orderservice.ErrEmptyCart):
			log.Warn("empty cart rejected")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("cart must contain at least one item"))
		case errors.Is(err, storage.ErrNotFound):
			log.Warn("user not found", slog.String("email", req.UserEmail))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
		default:
			log.Error("failed to submit order", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not create order"))
		}
		return
	}

	log.Info("order created", slog.String("order_uid", order.UID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, map[string]any{
		"success": true,
		"order":   order,
	})
}
