// Package remove реализует HTTP-обработчик удаления цели пользователя.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/fitpulse/fitpulse/internal/http/middlewarectx"
	"github.com/fitpulse/fitpulse/internal/http/response"
	"github.com/fitpulse/fitpulse/internal/lib/sl"
	services "github.com/fitpulse/fitpulse/internal/services/goal"
)

// Handler обрабатывает запросы удаления цели.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики целей.
type Service interface {
	Remove(ctx context.Context, userUID, goalID string) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить цель
// @Description Удаляет цель пользователя по ID.
// @Tags Goals
// @Produce  json
// @Param id path string true "ID цели"
// @Success 200 {object} map[string]any "Цель удалена"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Цель не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /goals/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.goal.remove"

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

	goalID := chi.URLParam(r, "id")
	if err := h.service.Remove(r.Context(), userUID, goalID); err != nil {
		if errors.Is(err, services.ErrGoalNotFound) {
			log.Info("goal not found", slog.String("id", goalID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("goal not found"))
			return
		}
		log.Error("failed to remove goal", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not remove goal"))
		return
	}

	log.Info("goal removed", slog.String("id", goalID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "goal removed",
	}))
}
