// Package activate реализует HTTP-обработчик активации премиум-подписки.
//
// Handler валидирует данные карты формально, после чего активация всегда
// завершается успехом: платёж симулируется, реальная карта не списывается.
package activate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/fitpulse/fitpulse/internal/http/middlewarectx"
	"github.com/fitpulse/fitpulse/internal/http/response"
	"github.com/fitpulse/fitpulse/internal/lib/sl"
	"github.com/fitpulse/fitpulse/internal/models"
	"github.com/fitpulse/fitpulse/internal/services/payment"
)

// Handler обрабатывает запросы активации подписки.
type Handler struct {
	log      *slog.Logger
	service  Service
	users    UserService
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики активации подписки.
type Service interface {
	ValidateCard(card models.DummyCard) error
	ActivateSubscription(ctx context.Context, userUID, email string, req models.DummyActivation) *payment.ActivationResult
}

// UserService описывает интерфейс чтения пользователя для письма-квитанции.
type UserService interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// New создает новый Handler с переданными логгером и сервисами.
func New(log *slog.Logger, service Service, users UserService) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		users:    users,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Активировать подписку
// @Description Формально проверяет карту и активирует подписку. Платёж симулируется и всегда успешен.
// @Tags Subscriptions
// @Accept  json
// @Produce  json
// @Param request body models.DummyActivation true "План, цикл оплаты и данные карты"
// @Success 200 {object} map[string]any "Результат активации"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации карты"
// @Router /subscriptions/activate [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.activate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyActivation
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

	if err := h.service.ValidateCard(req.Card); err != nil {
		log.Error("card validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error(err.Error()))
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

	// Письмо-квитанция опционально: без email оно просто не уходит.
	var email string
	if user, err := h.users.GetUser(r.Context(), userUID); err != nil {
		log.Warn("failed to load user for receipt", sl.Err(err))
	} else {
		email = user.Email
	}

	result := h.service.ActivateSubscription(r.Context(), userUID, email, req)

	log.Info("subscription activated",
		slog.String("user_uid", userUID),
		slog.String("transaction_id", result.TransactionID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"transaction_id": result.TransactionID,
		"plan_id":        result.PlanID,
		"billing_cycle":  result.BillingCycle,
		"amount":         result.Amount,
		"activated_at":   result.ActivatedAt,
	}))
}
