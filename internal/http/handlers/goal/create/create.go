// Package create реализует HTTP-обработчик создания цели пользователя.
//
// Количество активных целей ограничено тарифом: при исчерпании лимита
// возвращается HTTP 403 с предложением перейти на премиум.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/fitpulse/fitpulse/internal/http/middlewarectx"
	"github.com/fitpulse/fitpulse/internal/http/response"
	"github.com/fitpulse/fitpulse/internal/lib/sl"
	"github.com/fitpulse/fitpulse/internal/models"
	services "github.com/fitpulse/fitpulse/internal/services/goal"
)

// Handler обрабатывает запросы создания цели.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики целей.
type Service interface {
	Create(ctx context.Context, userUID string, req models.DummyGoal) (*models.Goal, error)
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
// @Summary Создать цель
// @Description Создает новую цель. Количество активных целей ограничено тарифом.
// @Tags Goals
// @Accept  json
// @Produce  json
// @Param request body models.DummyGoal true "Данные цели"
// @Success 200 {object} map[string]any "Цель создана"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Лимит активных целей исчерпан"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /goals [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.goal.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyGoal
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
	log.Info("all fields are validated")

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	goal, err := h.service.Create(r.Context(), userUID, req)
	if err != nil {
		if errors.Is(err, services.ErrLimitReached) {
			log.Info("goal limit reached", slog.String("user_uid", userUID))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("active goal limit reached, upgrade to premium"))
			return
		}
		log.Error("failed to create goal", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create goal"))
		return
	}

	log.Info("goal created", slog.String("id", goal.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"goal": goal,
	}))
}
