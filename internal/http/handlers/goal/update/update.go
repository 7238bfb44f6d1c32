// Package update реализует HTTP-обработчик обновления цели пользователя.
package update

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

	"github.com/fitpulse/fitpulse/internal/http/middlewarectx"
	"github.com/fitpulse/fitpulse/internal/http/response"
	"github.com/fitpulse/fitpulse/internal/lib/sl"
	"github.com/fitpulse/fitpulse/internal/models"
	services "github.com/fitpulse/fitpulse/internal/services/goal"
)

// Request — входные данные обновления цели: поля цели и её статус.
type Request struct {
	models.DummyGoal
	Status string `json:"status" validate:"required,oneof=active completed abandoned"`
}

// Handler обрабатывает запросы обновления цели.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики целей.
type Service interface {
	Update(ctx context.Context, userUID, goalID string, req models.DummyGoal, status string) (*models.Goal, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновить цель
// @Description Обновляет поля и статус цели пользователя.
// @Tags Goals
// @Accept  json
// @Produce  json
// @Param id path string true "ID цели"
// @Param request body Request true "Новые данные цели"
// @Success 200 {object} map[string]any "Цель обновлена"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Цель не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /goals/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.goal.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
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

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	goalID := chi.URLParam(r, "id")
	goal, err := h.service.Update(r.Context(), userUID, goalID, req.DummyGoal, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrGoalNotFound) {
			log.Info("goal not found", slog.String("id", goalID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("goal not found"))
			return
		}
		log.Error("failed to update goal", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update goal"))
		return
	}

	log.Info("goal updated", slog.String("id", goalID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"goal": goal,
	}))
}
