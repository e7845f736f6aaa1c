// Package list реализует HTTP-обработчик витрины салатов.
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
	log     *slog.Logger
	service Service
	// onlyActive — true для публичной витрины, false для админского списка
	onlyActive bool
}

// Service описывает интерфейс бизнес-логики каталога салатов.
type Service interface {
	ListSalads(ctx context.Context, onlyActive bool) ([]*models.Salad, error)
}

// New создает новый Handler. Публичная витрина отдаёт только активные салаты.
func New(log *slog.Logger, service Service, onlyActive bool) *Handler {
	return &Handler{log: log, service: service, onlyActive: onlyActive}
}

// ServeHTTP godoc
// @Summary Витрина салатов
// @Description Возвращает салаты каталога. Публичная витрина содержит только активные позиции.
// @Tags Salads
// @Produce  json
// @Success 200 {object} map[string]any "Список салатов"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /salads/all [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.salad.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	salads, err := h.service.ListSalads(r.Context(), h.onlyActive)
	if err != nil {
		log.Error("failed to list salads", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list salads"))
		return
	}

	render.JSON(w, r, map[string]any{
		"success": true,
		"salads":  salads,
	})
}
