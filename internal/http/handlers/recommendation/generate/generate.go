// Package generate реализует HTTP-обработчик генерации персональной рекомендации тренировки.
package generate

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
	services "github.com/fitpulse/fitpulse/internal/services/recommendation"
)

// Handler обрабатывает запросы генерации рекомендаций.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики рекомендаций.
type Service interface {
	Generate(ctx context.Context, userUID string, req models.DummyRecommendationRequest) (*models.WorkoutRecommendation, error)
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
// @Summary Сгенерировать рекомендацию
// @Description Генерирует персональную рекомендацию тренировки с учетом анкеты и текущего состояния.
// @Tags Recommendations
// @Accept  json
// @Produce  json
// @Param request body models.DummyRecommendationRequest true "Текущее состояние пользователя"
// @Success 200 {object} map[string]any "Рекомендация тренировки"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Исчерпан месячный лимит рекомендаций"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /recommendations/generate [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.recommendation.generate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyRecommendationRequest
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

	rec, err := h.service.Generate(r.Context(), userUID, req)
	if err != nil {
		if errors.Is(err, services.ErrLimitReached) {
			log.Info("recommendation limit reached", slog.String("user_uid", userUID))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("monthly recommendation limit reached, upgrade to premium"))
			return
		}
		log.Error("failed to generate recommendation", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not generate recommendation"))
		return
	}

	log.Info("recommendation generated",
		slog.String("user_uid", userUID),
		slog.String("source", string(rec.Source)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"recommendation": rec,
	}))
}
