package fitpulse

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/fitpulse/fitpulse/internal/config"
	"github.com/fitpulse/fitpulse/internal/grpc/client"
	"github.com/fitpulse/fitpulse/internal/kvstore"
	"github.com/fitpulse/fitpulse/internal/llmprovider"
	"github.com/fitpulse/fitpulse/internal/migrations"
	"github.com/fitpulse/fitpulse/internal/rabbitmq"
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

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	conn   *amqp.Connection
	ch     *amqp.Channel
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	kv, err := kvstore.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitURL, cfg.RabbitMaxRetries, cfg.RabbitRetryDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}

	authClient, err := client.NewAuthClient(cfg.GRPCAuthAddress)
	if err != nil {
		return nil, err
	}

	store := entitlement.NewStore(kv, logger)
	evaluator := entitlement.NewEvaluator(store, db, logger)

	var llm recommendationservice.Completer
	if cfg.LLMProvider.APIKey != "" {
		llm = llmprovider.NewClient(cfg.LLMProvider)
	}

	subscriptionService := subscriptionservice.NewSubscriptionService(db, store, kv, logger)
	paymentService := paymentservice.New(db, store, ch, cfg.Payment.ProcessingDelay, logger)
	trackingService := trackingservice.NewTrackingService(db, evaluator, logger)
	goalService := goalservice.NewGoalService(db, evaluator, kv, logger)
	profileService := profileservice.NewProfileService(db, kv, logger)
	communityService := communityservice.NewCommunityService(db, logger)
	recommendationService := recommendationservice.NewRecommendationService(db, evaluator, llm, logger)
	usageService := usageservice.NewService(evaluator, db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, &Services{
		Auth:           authClient,
		Users:          db,
		Evaluator:      evaluator,
		Usage:          usageService,
		Subscription:   subscriptionService,
		Payment:        paymentService,
		Tracking:       trackingService,
		Goal:           goalService,
		Profile:        profileService,
		Community:      communityService,
		Recommendation: recommendationService,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		conn:   conn,
		ch:     ch,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.ch.Close(); closeErr != nil {
			a.logger.Error("failed to close channel", slog.Any("err", closeErr))
		}
		if closeErr := a.conn.Close(); closeErr != nil {
			a.logger.Error("failed to close connection", slog.Any("err", closeErr))
		}
		a.db.DB.Close()
		return err
	}
}
