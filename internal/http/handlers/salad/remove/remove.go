// Package remove реализует HTTP-обработчик удаления салата из каталога.
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

// Service описывает интерфейс бизнес-логики каталога салатов.
type Service interface {
	RemoveSalad(ctx context.Context, uid string) (int, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить салат
// @Description Удаляет салат из каталога по UID. Доступно только администратору.
// @Tags Salads
// @Produce  json
// @Param saladId path string true "UID салата"
// @Success 200 {object} response.Response "Салат удалён"
// @Failure 403 {object} response.ErrorResponse "Доступно только администратору"
// @Failure 404 {object} response.ErrorResponse "Салат не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /salads/remove/{saladId} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.salad.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	saladUID := chi.URLParam(r, "saladId")

	count, err := h.service.RemoveSalad(r.Context(), saladUID)
	if err != nil {
		log.Error("failed to remove salad", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not remove salad"))
		return
	}
	if count == 0 {
		log.Warn("salad not found", slog.String("uid", saladUID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("salad not found"))
		return
	}

	log.Info("salad removed", slog.String("uid", saladUID))
	render.JSON(w, r, response.OK())
}
