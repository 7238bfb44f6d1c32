// Package featureusage реализует HTTP-обработчик сводки использования функции:
// решение о доступе, текущее использование и состояние индикатора для экрана тарифа.
package featureusage

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
	"github.com/fitpulse/fitpulse/internal/services/usage"
)

// Handler обрабатывает запросы сводки использования функции.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс сборщика сводки использования.
type Service interface {
	FeatureUsage(ctx context.Context, userUID string, feature models.Feature) usage.FeatureUsage
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сводка использования функции
// @Description Возвращает лимит, текущее использование и состояние индикатора (unlimited, normal, warning, blocked).
// @Tags Features
// @Produce  json
// @Param feature path string true "Ключ функции"
// @Success 200 {object} map[string]any "Сводка использования"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /features/{feature}/usage [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.entitlement.featureusage"

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
	summary := h.service.FeatureUsage(r.Context(), userUID, feature)

	log.Info("feature usage rendered",
		slog.String("feature", string(feature)),
		slog.String("state", summary.Render.State))
	render.JSON(w, r, response.StatusOKWithData(summary))
}
