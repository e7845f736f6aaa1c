// Package update реализует HTTP-обработчик изменения тарифа членства.
package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
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
	UpdateMembershipPlan(ctx context.Context, uid string, req models.MembershipPlanRequest) (int, error)
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
// @Summary Изменить тариф членства
// @Description Обновляет тариф членства по UID. Уже активированные членства не пересчитываются. Доступно только администратору.
// @Tags Memberships
// @Accept  json
// @Produce  json
// @Param membershipId path string true "UID тарифа"
// @Param request body models.MembershipPlanRequest true "Новые данные тарифа"
// @Success 200 {object} response.Response "Тариф обновлён"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 403 {object} response.ErrorResponse "Доступно только администратору"
// @Failure 404 {object} response.ErrorResponse "Тариф не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /memberships/update/{membershipId} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.membership.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	planUID := chi.URLParam(r, "membershipId")

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

	count, err := h.service.UpdateMembershipPlan(r.Context(), planUID, req)
	if err != nil {
		log.Error("failed to update membership plan", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update membership plan"))
		return
	}
	if count == 0 {
		log.Warn("membership plan not found", slog.String("uid", planUID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("membership plan not found"))
		return
	}

	log.Info("membership plan updated", slog.String("uid", planUID))
	render.JSON(w, r, response.OK())
}
