// Package list реализует HTTP-обработчик витрины тарифов членства.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/greenbowl/salad-storefront/internal/http/response"
	"github.com/greenbowl/salad-storefront/internal/lib/sl"
	"github.com/greenbowl/salad-storefront/internal/models"
)

type Handler struct {
	log        *slog.Logger
	service    Service
	onlyActive bool
}

// Service описывает интерфейс бизнес-логики тарифов членства.
type Service interface {
	ListMembershipPlans(ctx context.Context, onlyActive bool) ([]*models.MembershipPlan, error)
}

// New создает новый Handler. Публичная витрина отдаёт только активные тарифы.
func New(log *slog.Logger, service Service, onlyActive bool) *Handler {
	return &Handler{log: log, service: service, onlyActive: onlyActive}
}

// ServeHTTP godoc
// @Summary Витрина тарифов членства
// @Description Возвращает тарифы членства. Публичная витрина содержит только активные тарифы.
// @Tags Memberships
// @Produce  json
// @Success 200 {object} map[string]any "Список тарифов"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /memberships/all [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.membership.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	plans, err := h.service.ListMembershipPlans(r.Context(), h.onlyActive)
	if err != nil {
		log.Error("failed to list membership plans", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list membership plans"))
		return
	}

	render.JSON(w, r, map[string]any{
		"success":     true,
		"memberships": plans,
	})
}
