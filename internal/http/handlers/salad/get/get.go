// Package get реализует HTTP-обработчик карточки салата.
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

// Service описывает интерфейс бизнес-логики каталога салатов.
type Service interface {
	GetSalad(ctx context.Context, uid string) (*models.Salad, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Карточка салата
// @Description Возвращает один салат каталога по UID.
// @Tags Salads
// @Produce  json
// @Param saladId path string true "UID салата"
// @Success 200 {object} map[string]any "Салат"
// @Failure 404 {object} response.ErrorResponse "Салат не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /salads/get/{saladId} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.salad.get"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	saladUID := chi.URLParam(r, "saladId")

	salad, err := h.service.GetSalad(r.Context(), saladUID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Warn("salad not found", slog.String("uid", saladUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("salad not found"))
			return
		}
		log.Error("failed to get salad", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not get salad"))
		return
	}

	render.JSON(w, r, map[string]any{
		"success": true,
		"salad":   salad,
	})
}
