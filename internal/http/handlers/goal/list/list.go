// Package list реализует HTTP-обработчик списка целей пользователя.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/fitpulse/fitpulse/internal/http/middlewarectx"
	"github.com/fitpulse/fitpulse/internal/http/response"
	"github.com/fitpulse/fitpulse/internal/lib/sl"
	"github.com/fitpulse/fitpulse/internal/models"
)

// Handler обрабатывает запросы списка целей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики целей.
type Service interface {
	List(ctx context.Context, userUID string) ([]*models.Goal, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список целей
// @Description Возвращает цели пользователя.
// @Tags Goals
// @Produce  json
// @Success 200 {object} map[string]any "Цели пользователя"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /goals [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.goal.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	goals, err := h.service.List(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list goals", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list goals"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"goals": goals,
	}))
}
