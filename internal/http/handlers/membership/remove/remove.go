// Package remove реализует HTTP-обработчик удаления тарифа членства.
package remove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/greenbowl/salad-storefront/internal/http/response"
	"github.com/greenbowl/salad-storefront/internal/lib/sl"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики тарифов членства.
type Service interface {
	RemoveMembershipPlan(ctx context.Context, uid string) (int, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить тариф членства
// @Description Удаляет тариф по UID. Активированные по нему членства продолжают действовать. Доступно только администратору.
// @Tags Memberships
// @Produce  json
// @Param membershipId path string true "UID тарифа"
// @Success 200 {object} response.Response "Тариф удалён"
// @Failure 403 {object} response.ErrorResponse "Доступно только администратору"
// @Failure 404 {object} response.ErrorResponse "Тариф не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /memberships/remove/{membershipId} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.membership.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	planUID := chi.URLParam(r, "membershipId")

	count, err := h.service.RemoveMembershipPlan(r.Context(), planUID)
	if err != nil {
		log.Error("failed to remove membership plan", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not remove membership plan"))
		return
	}
	if count == 0 {
		log.Warn("membership plan not found", slog.String("uid", planUID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("membership plan not found"))
		return
	}

	log.Info("membership plan removed", slog.String("uid", planUID))
	render.JSON(w, r, response.OK())
}
