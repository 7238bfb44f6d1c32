// Package check реализует HTTP-обработчик проверки доступа к функции.
//
// Handler извлекает ключ функции из URL, идентификатор пользователя из контекста,
// вычисляет решение о доступе и возвращает его в JSON-формате.
package check

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/fitpulse/fitpulse/internal/http/middlewarectx"
	"github.com/fitpulse/fitpulse/internal/http/response"
	"github.com/fitpulse/fitpulse/internal/models"
)

// Handler обрабатывает запросы проверки доступа к функции.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс вычислителя доступа.
type Service interface {
	Evaluate(ctx context.Context, userUID string, feature models.Feature) models.AccessDecision
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Проверить доступ к функции
// @Description Возвращает решение о доступе пользователя к функции и её лимит. Лимит -1 означает безлимит.
// @Tags Features
// @Produce  json
// @Param feature path string true "Ключ функции"
// @Success 200 {object} map[string]any "Решение о доступе"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /features/{feature}/access [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.entitlement.check"

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

	feature := models.Feature(chi.URLParam(r, "feature"))
	decision := h.service.Evaluate(r.Context(), userUID, feature)

	log.Info("feature access evaluated",
		slog.String("feature", string(feature)),
		slog.Bool("has_access", decision.HasAccess))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"feature":    string(feature),
		"has_access": decision.HasAccess,
		"limit":      decision.Limit,
	}))
}
