// Package feedlist реализует HTTP-обработчик чтения ленты сообщества.
package feedlist

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/fitpulse/fitpulse/internal/http/response"
	"github.com/fitpulse/fitpulse/internal/lib/sl"
	"github.com/fitpulse/fitpulse/internal/models"
)

// Handler обрабатывает запросы чтения ленты.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики ленты сообщества.
type Service interface {
	ListFeed(ctx context.Context, limit, offset int) ([]*models.Post, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Лента сообщества
// @Description Возвращает записи ленты сообщества с пагинацией, новые сверху.
// @Tags Community
// @Produce  json
// @Param limit query int false "Количество записей (по умолчанию 20)"
// @Param offset query int false "Смещение (по умолчанию 0)"
// @Success 200 {object} map[string]any "Записи ленты"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /community/feed [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.community.feedlist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	posts, err := h.service.ListFeed(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list feed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list feed"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"posts": posts,
	}))
}
