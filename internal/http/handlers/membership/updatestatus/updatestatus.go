// Package updatestatus реализует HTTP-обработчик смены статуса членства
// пользователя администратором.
package updatestatus

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/greenbowl/salad-storefront/internal/http/response"
	"github.com/greenbowl/salad-storefront/internal/lib/sl"
	"github.com/greenbowl/salad-storefront/internal/models"
	userservice "github.com/greenbowl/salad-storefront/internal/services/user"
	"github.com/greenbowl/salad-storefront/internal/storage"
)

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики членства пользователей.
type Service interface {
	UpdateMembershipStatus(ctx context.Context, userUID, status string) (*models.User, error)
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
// @Summary Сменить статус членства
// @Description Выставляет пользователю статус членства Active, Expired или Cancelled. Доступно только администратору.
// @Tags Memberships
// @Accept  json
// @Produce  json
// @Param userId path string true "UID пользователя"
// @Param request body models.UpdateMembershipStatusRequest true "Новый статус членства"
// @Success 200 {object} map[string]any "Обновлённый пользователь"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или статус вне перечня"
// @Failure 403 {object} response.ErrorResponse "Доступно только администратору"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /memberships/update-status/{userId} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.membership.updatestatus"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID := chi.URLParam(r, "userId")

	var req models.UpdateMembershipStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	user, err := h.service.UpdateMembershipStatus(r.Context(), userUID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrInvalidMembershipStatus):
			log.Warn("status outside the enum", slog.String("status", req.Status))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("status must be one of: Active, Expired, Cancelled"))
		case errors.Is(err, storage.ErrNotFound):
			log.Warn("user not found", slog.String("user_uid", userUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
		default:
			log.Error("failed to update membership status", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not update membership status"))
		}
		return
	}

	log.Info("membership status updated",
		slog.String("user_uid", userUID), slog.String("status", req.Status))
	render.JSON(w, r, map[string]any{
		"success": true,
		"user":    user,
	})
}
