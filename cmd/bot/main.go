package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/acostyle/pizza-delivery-bot/internal/bot"
	"github.com/acostyle/pizza-delivery-bot/internal/engine"
	apperrors "github.com/acostyle/pizza-delivery-bot/internal/errors"
	"github.com/acostyle/pizza-delivery-bot/internal/geocode"
	"github.com/acostyle/pizza-delivery-bot/internal/health"
	"github.com/acostyle/pizza-delivery-bot/internal/i18n"
	"github.com/acostyle/pizza-delivery-bot/internal/idempotency"
	"github.com/acostyle/pizza-delivery-bot/internal/jobs"
	jobhandlers "github.com/acostyle/pizza-delivery-bot/internal/jobs/handlers"
	"github.com/acostyle/pizza-delivery-bot/internal/moltin"
	"github.com/acostyle/pizza-delivery-bot/internal/ratelimit"
	"github.com/acostyle/pizza-delivery-bot/internal/state"
	"github.com/acostyle/pizza-delivery-bot/pkg/config"
	"github.com/acostyle/pizza-delivery-bot/pkg/graceful"
	"github.com/acostyle/pizza-delivery-bot/pkg/logger"
	"github.com/acostyle/pizza-delivery-bot/pkg/metrics"
	rediswrap "github.com/acostyle/pizza-delivery-bot/pkg/redis"
)

func main() {
	if err := run(); err != nil {
		slog.Error("bot terminated", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, _, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Level:         cfg.LogLevel,
		FilePath:      cfg.LogFile,
		SentryEnabled: cfg.Sentry.Enabled,
	})
	slog.SetDefault(log)

	if cfg.Sentry.Enabled {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.AppEnv,
		}); err != nil {
			return err
		}
		defer sentry.Flush(2 * time.Second)
	}

	log.Info("starting pizza delivery bot",
		slog.String("env", cfg.AppEnv),
		slog.String("http_port", cfg.Server.Port),
		slog.String("log_level", cfg.LogLevel),
	)

	redisClient, err := rediswrap.New(ctx, rediswrap.Config{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		PoolTimeout:  cfg.Redis.PoolTimeout,
		IdleTimeout:  cfg.Redis.IdleTimeout,
		MaxRetries:   cfg.Redis.MaxRetries,
	})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := redisClient.Close(); cerr != nil {
			log.Error("error closing redis", slog.Any("error", cerr))
		}
	}()

	sessions := state.NewRedisStore(redisClient.Client, log)

	commerce := moltin.New(moltin.Config{
		BaseURL:      cfg.Commerce.BaseURL,
		ClientID:     cfg.Commerce.ClientID,
		ClientSecret: cfg.Commerce.ClientSecret,
		FlowSlug:     cfg.Commerce.FlowSlug,
	}, sessions, log)

	geocoder := geocode.New(geocode.Config{
		BaseURL: cfg.Geocoder.BaseURL,
		APIKey:  cfg.Geocoder.APIKey,
	})

	translations, err := i18n.LoadFromDir(cfg.I18n.Dir, cfg.I18n.DefaultLang)
	if err != nil {
		return err
	}
	translator := translations.Translator(cfg.I18n.DefaultLang)

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	scheduler := jobs.NewScheduler(redisOpt, log)
	defer func() {
		if cerr := scheduler.Close(); cerr != nil {
			log.Error("error closing job scheduler", slog.Any("error", cerr))
		}
	}()

	engine.RegisterTransitionRecorder(metrics.RecordStateTransition)
	engine.RegisterDecisionRecorder(metrics.RecordFulfillmentDecision)

	core := engine.New(sessions, commerce, geocoder, scheduler, translator, log, engine.Config{
		Currency:      cfg.Bot.Currency,
		FollowUpDelay: cfg.Delivery.FollowUpDelay,
	})

	errHandler := apperrors.NewHandler(log, cfg.Sentry.Enabled)
	dedup := idempotency.NewRedisDeduplicator(redisClient.Client, 0)
	limiter := ratelimit.NewRedisLimiter(redisClient.Client, log)

	tgBot, err := bot.New(*cfg, core, errHandler, dedup, limiter, log)
	if err != nil {
		return err
	}

	worker := jobs.NewWorker(redisOpt, log)
	worker.RegisterHandler(jobs.TaskTypeDeliveryFollowUp,
		jobhandlers.NewFollowUpHandler(tgBot, translator, log))

	checker := health.NewChecker(log)
	checker.AddCheck("redis", health.NewRedisChecker(redisClient.Client))
	checker.AddCheck("telegram", health.NewTelegramChecker(tgBot.Telebot()))
	checker.AddCheck("commerce", health.NewCommerceChecker(func(ctx context.Context) error {
		_, err := commerce.Products(ctx)
		return err
	}))

	mux := http.NewServeMux()
	mux.Handle("/healthz", checker.Handler())
	mux.Handle("/metrics", promhttp.Handler())

	httpServer := graceful.NewServer(log, &http.Server{
		Addr:    cfg.Server.Port,
		Handler: logger.Middleware(mux),
	}, cfg.Server.ShutdownTimeout)

	errCh := make(chan error, 2)

	go func() {
		if err := httpServer.ListenAndServe(ctx); err != nil {
			errCh <- err
		}
	}()
	go func() {
		if err := worker.Run(); err != nil {
			errCh <- err
		}
	}()
	go tgBot.Start()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err = <-errCh:
		log.Error("component failed, shutting down", slog.Any("error", err))
	}

	tgBot.Stop()
	worker.Shutdown()

	log.Info("pizza delivery bot stopped")

	return err
}
