// Package fitpulse собирает HTTP-приложение: сервисы, middleware и маршруты.
package fitpulse

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/fitpulse/fitpulse/internal/grpc/client"
	"github.com/fitpulse/fitpulse/internal/http/handlers/auth/login"
	"github.com/fitpulse/fitpulse/internal/http/handlers/auth/register"
	"github.com/fitpulse/fitpulse/internal/http/handlers/community/feedcreate"
	"github.com/fitpulse/fitpulse/internal/http/handlers/community/feedlist"
	"github.com/fitpulse/fitpulse/internal/http/handlers/entitlement/check"
	"github.com/fitpulse/fitpulse/internal/http/handlers/entitlement/featureusage"
	goalcreate "github.com/fitpulse/fitpulse/internal/http/handlers/goal/create"
	goallist "github.com/fitpulse/fitpulse/internal/http/handlers/goal/list"
	goalremove "github.com/fitpulse/fitpulse/internal/http/handlers/goal/remove"
	goalupdate "github.com/fitpulse/fitpulse/internal/http/handlers/goal/update"
	"github.com/fitpulse/fitpulse/internal/http/handlers/health"
	"github.com/fitpulse/fitpulse/internal/http/handlers/payment/historylist"
	"github.com/fitpulse/fitpulse/internal/http/handlers/payment/methodadd"
	"github.com/fitpulse/fitpulse/internal/http/handlers/payment/methodlist"
	profileread "github.com/fitpulse/fitpulse/internal/http/handlers/profile/read"
	profileupdate "github.com/fitpulse/fitpulse/internal/http/handlers/profile/update"
	"github.com/fitpulse/fitpulse/internal/http/handlers/recommendation/generate"
	"github.com/fitpulse/fitpulse/internal/http/handlers/subscription/activate"
	"github.com/fitpulse/fitpulse/internal/http/handlers/subscription/analytics"
	"github.com/fitpulse/fitpulse/internal/http/handlers/subscription/cancel"
	"github.com/fitpulse/fitpulse/internal/http/handlers/subscription/current"
	"github.com/fitpulse/fitpulse/internal/http/handlers/subscription/plans"
	"github.com/fitpulse/fitpulse/internal/http/handlers/tracking/moodcreate"
	"github.com/fitpulse/fitpulse/internal/http/handlers/tracking/moodlist"
	"github.com/fitpulse/fitpulse/internal/http/handlers/tracking/nutritioncreate"
	"github.com/fitpulse/fitpulse/internal/http/handlers/tracking/nutritionlist"
	"github.com/fitpulse/fitpulse/internal/http/handlers/tracking/sleepcreate"
	"github.com/fitpulse/fitpulse/internal/http/handlers/tracking/sleeplist"
	"github.com/fitpulse/fitpulse/internal/http/handlers/tracking/weeklystats"
	"github.com/fitpulse/fitpulse/internal/http/handlers/tracking/workoutcreate"
	"github.com/fitpulse/fitpulse/internal/http/handlers/tracking/workoutlist"
	"github.com/fitpulse/fitpulse/internal/http/middlewarectx"
	communityservice "github.com/fitpulse/fitpulse/internal/services/community"
	"github.com/fitpulse/fitpulse/internal/services/entitlement"
	goalservice "github.com/fitpulse/fitpulse/internal/services/goal"
	paymentservice "github.com/fitpulse/fitpulse/internal/services/payment"
	profileservice "github.com/fitpulse/fitpulse/internal/services/profile"
	recommendationservice "github.com/fitpulse/fitpulse/internal/services/recommendation"
	subscriptionservice "github.com/fitpulse/fitpulse/internal/services/subscription"
	trackingservice "github.com/fitpulse/fitpulse/internal/services/tracking"
	usageservice "github.com/fitpulse/fitpulse/internal/services/usage"
	"github.com/fitpulse/fitpulse/internal/storage/repository"
)

// Services перечисляет зависимости маршрутов приложения.
type Services struct {
	Auth           *client.AuthClient
	Users          *repository.Storage
	Evaluator      *entitlement.Evaluator
	Usage          *usageservice.Service
	Subscription   *subscriptionservice.SubscriptionService
	Payment        *paymentservice.PaymentService
	Tracking       *trackingservice.TrackingService
	Goal           *goalservice.GoalService
	Profile        *profileservice.ProfileService
	Community      *communityservice.CommunityService
	Recommendation *recommendationservice.RecommendationService
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s *Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, s.Auth).ServeHTTP)
		r.Get("/health", health.New(logger).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/features/{feature}/access", check.New(logger, s.Evaluator).ServeHTTP)
			r.Get("/features/{feature}/usage", featureusage.New(logger, s.Usage).ServeHTTP)

			r.Get("/subscriptions/plans", plans.New(logger, s.Subscription).ServeHTTP)
			r.Get("/subscriptions/current", current.New(logger, s.Subscription).ServeHTTP)
			r.Post("/subscriptions/activate", activate.New(logger, s.Payment, s.Users).ServeHTTP)
			r.Post("/subscriptions/cancel", cancel.New(logger, s.Subscription).ServeHTTP)
			r.Get("/subscriptions/analytics", analytics.New(logger, s.Subscription).ServeHTTP)

			r.Post("/payments/methods", methodadd.New(logger, s.Payment).ServeHTTP)
			r.Get("/payments/methods", methodlist.New(logger, s.Payment).ServeHTTP)
			r.Get("/payments/history", historylist.New(logger, s.Payment).ServeHTTP)

			r.Post("/tracking/workouts", workoutcreate.New(logger, s.Tracking).ServeHTTP)
			r.Get("/tracking/workouts", workoutlist.New(logger, s.Tracking).ServeHTTP)
			r.Post("/tracking/sleep", sleepcreate.New(logger, s.Tracking).ServeHTTP)
			r.Get("/tracking/sleep", sleeplist.New(logger, s.Tracking).ServeHTTP)
			r.Post("/tracking/mood", moodcreate.New(logger, s.Tracking).ServeHTTP)
			r.Get("/tracking/mood", moodlist.New(logger, s.Tracking).ServeHTTP)
			r.Post("/tracking/nutrition", nutritioncreate.New(logger, s.Tracking).ServeHTTP)
			r.Get("/tracking/nutrition", nutritionlist.New(logger, s.Tracking).ServeHTTP)
			r.Get("/tracking/stats/weekly", weeklystats.New(logger, s.Tracking).ServeHTTP)

			r.Post("/goals", goalcreate.New(logger, s.Goal).ServeHTTP)
			r.Get("/goals", goallist.New(logger, s.Goal).ServeHTTP)
			r.Put("/goals/{id}", goalupdate.New(logger, s.Goal).ServeHTTP)
			r.Delete("/goals/{id}", goalremove.New(logger, s.Goal).ServeHTTP)

			r.Get("/profile", profileread.New(logger, s.Profile).ServeHTTP)
			r.Put("/profile", profileupdate.New(logger, s.Profile).ServeHTTP)

			r.Get("/community/feed", feedlist.New(logger, s.Community).ServeHTTP)
			r.Post("/community/feed", feedcreate.New(logger, s.Community).ServeHTTP)

			r.Post("/recommendations/generate", generate.New(logger, s.Recommendation).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
