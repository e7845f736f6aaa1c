// Package create реализует HTTP-обработчик добавления тарифа членства.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/greenbowl/salad-storefront/internal/http/response"
	"github.com/greenbowl/salad-storefront/internal/lib/sl"
	"github.com/greenbowl/salad-storefront/internal/models"
)

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики тарифов членства.
type Service interface {
	CreateMembershipPlan(ctx context.Context, req models.MembershipPlanRequest) (string, error)
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
// @Summary Добавить тариф членства
// @Description Добавляет тариф членства. Срок тарифа — не меньше одного месяца. Доступно только администратору.
// @Tags Memberships
// @Accept  json
// @Produce  json
// @Param request body models.MembershipPlanRequest true "Данные тарифа"
// @Success 201 {object} map[string]any "Тариф добавлен"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 403 {object} response.ErrorResponse "Доступно только администратору"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /memberships/create [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.membership.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.MembershipPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	uid, err := h.service.CreateMembershipPlan(r.Context(), req)
	if err != nil {
		log.Error("failed to create membership plan", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create membership plan"))
		return
	}

	log.Info("membership plan created", slog.String("uid", uid))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, map[string]any{
		"success":      true,
		"membershipId": uid,
	})
}
