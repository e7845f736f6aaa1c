// Package update реализует HTTP-обработчик изменения салата в каталоге.
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

// Service описывает интерфейс бизнес-логики каталога салатов.
type Service interface {
	UpdateSalad(ctx context.Context, uid string, req models.SaladRequest) (int, error)
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
// @Summary Изменить салат
// @Description Обновляет данные салата по UID. Доступно только администратору.
// @Tags Salads
// @Accept  json
// @Produce  json
// @Param saladId path string true "UID салата"
// @Param request body models.SaladRequest true "Новые данные салата"
// @Success 200 {object} map[string]any "Салат обновлён"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 403 {object} response.ErrorResponse "Доступно только администратору"
// @Failure 404 {object} response.ErrorResponse "Салат не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /salads/update/{saladId} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.salad.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	saladUID := chi.URLParam(r, "saladId")

	var req models.SaladRequest
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

	count, err := h.service.UpdateSalad(r.Context(), saladUID, req)
	if err != nil {
		log.Error("failed to update salad", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update salad"))
		return
	}
	if count == 0 {
		log.Warn("salad not found", slog.String("uid", saladUID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("salad not found"))
		return
	}

	log.Info("salad updated", slog.String("uid", saladUID))
	render.JSON(w, r, response.OK())
}
