package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/family-planner/internal/adapter/postgres"
	activityrepo "github.com/heartmarshall/family-planner/internal/adapter/postgres/activity"
	eventrepo "github.com/heartmarshall/family-planner/internal/adapter/postgres/event"
	factrepo "github.com/heartmarshall/family-planner/internal/adapter/postgres/fact"
	userrepo "github.com/heartmarshall/family-planner/internal/adapter/postgres/user"
	"github.com/heartmarshall/family-planner/internal/adapter/provider/notify"
	"github.com/heartmarshall/family-planner/internal/adapter/provider/opengraph"
	"github.com/heartmarshall/family-planner/internal/auth"
	"github.com/heartmarshall/family-planner/internal/config"
	"github.com/heartmarshall/family-planner/internal/service/activity"
	"github.com/heartmarshall/family-planner/internal/service/calendar"
	"github.com/heartmarshall/family-planner/internal/service/digest"
	"github.com/heartmarshall/family-planner/internal/service/user"
	"github.com/heartmarshall/family-planner/internal/transport/middleware"
	"github.com/heartmarshall/family-planner/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires services and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("timezone", cfg.Calendar.Location.String()),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("app: %w", err)
	}
	defer pool.Close()

	svc := NewServices(cfg, pool, logger)

	var (
		scheduler   *digest.Scheduler
		digestProbe interface{ Status() digest.Status }
	)
	if cfg.Digest.Enabled {
		scheduler, err = digest.NewScheduler(logger, svc.Digest, cfg.Digest.Cron, cfg.Calendar.Location, cfg.Digest.Timeout)
		if err != nil {
			return fmt.Errorf("app: %w", err)
		}
		scheduler.Start()
		digestProbe = scheduler
	}

	limiter := middleware.NewRateLimiter(5 * time.Minute)
	defer limiter.Stop()

	jwt := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	loc := cfg.Calendar.Location

	handler := rest.NewRouter(rest.Handlers{
		Health:     rest.NewHealthHandler(pool, digestProbe, Version),
		Users:      rest.NewUserHandler(svc.Users, logger),
		Events:     rest.NewEventHandler(svc.Calendar, logger, loc),
		Activities: rest.NewActivityHandler(svc.Activities, svc.Users, logger, loc),
	}, middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.CORS(cfg.CORS),
		middleware.Auth(jwt),
		middleware.Logger(logger),
	), limiter.Limit(cfg.Activities.IngestPerMinute))

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("app: serve: %w", err)
		}
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", slog.String("error", err.Error()))
	}
	if scheduler != nil {
		if err := scheduler.Stop(shutdownCtx); err != nil {
			logger.Error("digest shutdown", slog.String("error", err.Error()))
		}
	}
	return nil
}

// Services holds the wired application services.
type Services struct {
	Users      *user.Service
	Calendar   *calendar.Service
	Activities *activity.Service
	Digest     *digest.Service
}

// NewServices wires repositories, providers and services on top of pool.
func NewServices(cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) *Services {
	loc := cfg.Calendar.Location
	tx := postgres.NewTxManager(pool)

	users := userrepo.New(pool)
	events := eventrepo.New(pool, loc)
	facts := factrepo.New(pool)
	activities := activityrepo.New(pool, loc)

	userSvc := user.NewService(logger, users, tx)
	calendarSvc := calendar.NewService(logger, events, users, facts, tx, newNotifier(cfg.Notify, logger), loc)
	activitySvc := activity.NewService(logger, activities, tx,
		opengraph.NewProvider(cfg.Activities.FetchTimeout, logger), loc,
		activity.Config{
			Capacity:      cfg.Activities.Capacity,
			FetchTimeout:  cfg.Activities.FetchTimeout,
			RetentionDays: cfg.Activities.RetentionDays,
		})
	digestSvc := digest.NewService(logger, userSvc, calendarSvc, newNotifier(cfg.Notify, logger), loc)

	return &Services{
		Users:      userSvc,
		Calendar:   calendarSvc,
		Activities: activitySvc,
		Digest:     digestSvc,
	}
}

type notifier interface {
	Notify(ctx context.Context, recipientID int64, text string) error
}

func newNotifier(cfg config.NotifyConfig, logger *slog.Logger) notifier {
	if cfg.WebhookURL == "" {
		return notify.NewLog(logger)
	}
	return notify.NewWebhook(cfg.WebhookURL, cfg.Token, cfg.Timeout, logger)
}
