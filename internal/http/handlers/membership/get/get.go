// Package get реализует HTTP-обработчик карточки тарифа членства.
package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/greenbowl/salad-storefront/internal/http/response"
	"github.com/greenbowl/salad-storefront/internal/lib/sl"
	"github.com/greenbowl/salad-storefront/internal/models"
	"github.com/greenbowl/salad-storefront/internal/storage"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики тарифов членства.
type Service interface {
	GetMembershipPlan(ctx context.Context, uid string) (*models.MembershipPlan, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Карточка тарифа
// @Description Возвращает один тариф членства по UID.
// @Tags Memberships
// @Produce  json
// @Param membershipId path string true "UID тарифа"
// @Success 200 {object} map[string]any "Тариф"
// @Failure 404 {object} response.ErrorResponse "Тариф не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /memberships/get/{membershipId} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.membership.get"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	planUID := chi.URLParam(r, "membershipId")

	plan, err := h.service.GetMembershipPlan(r.Context(), planUID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Warn("membership plan not found", slog.String("uid", planUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("membership plan not found"))
			return
		}
		log.Error("failed to get membership plan", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not get membership plan"))
		return
	}

	render.JSON(w, r, map[string]any{
		"success":    true,
		"membership": plan,
	})
}
