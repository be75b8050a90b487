package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"backoffice-console/internal/apiclient"
	"backoffice-console/internal/audit"
	"backoffice-console/internal/config"
	"backoffice-console/internal/dashboard"
	"backoffice-console/internal/db"
	"backoffice-console/internal/httpapi"
	"backoffice-console/internal/logger"
	"backoffice-console/internal/metrics"
	"backoffice-console/internal/middleware"
	"backoffice-console/internal/notification"
	"backoffice-console/internal/order"
	"backoffice-console/internal/product"
	"backoffice-console/internal/review"
	"backoffice-console/internal/session"
	"backoffice-console/internal/user"

	"go.uber.org/zap"
)

const (
	shutdownTimeout      = 10 * time.Second
	sessionSweepInterval = time.Minute
)

var (
	initDBFunc      = db.InitDB
	startServerFunc = startServer
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	var database *sql.DB
	if cfg.AuditEnabled() {
		database = initDBFunc(cfg)
		defer database.Close()
	} else {
		logger.L().Info("DB_HOST not set, audit trail disabled")
	}

	store, err := newStore(context.Background(), cfg)
	if err != nil {
		return err
	}

	handler := newServer(cfg, database, store)

	logger.L().Info("console API starting",
		zap.String("port", cfg.AppPort),
		zap.String("upstream", cfg.APIBaseURL),
	)
	return startServerFunc(":"+cfg.AppPort, handler)
}

// newStore keeps sessions in Redis when REDIS_URL is set and in memory
// otherwise. The memory store is swept until ctx is done.
func newStore(ctx context.Context, cfg *config.Config) (session.Store, error) {
	if cfg.RedisURL == "" {
		store := session.NewMemoryStore(cfg.SessionTTL)
		store.StartSweeper(ctx, sessionSweepInterval)
		return store, nil
	}
	return session.NewRedisStoreFromURL(ctx, cfg.RedisURL, cfg.SessionTTL)
}

// newServer wires every service. database may be nil, which disables audit.
func newServer(cfg *config.Config, database *sql.DB, store session.Store) http.Handler {
	upstream := &metrics.Upstream{}
	api := apiclient.New(cfg.APIBaseURL, cfg.RequestTimeout,
		apiclient.WithMetrics(upstream),
		apiclient.WithUnauthorizedHook(func(ctx context.Context, s *session.Session) {
			if err := store.End(ctx, s); err != nil {
				logger.FromCtx(ctx).Warn("failed to end rejected session", zap.Error(err))
			}
		}),
	)

	var (
		recorder audit.Recorder
		auditLog httpapi.AuditLog
	)
	if database != nil {
		repo := audit.NewRepository(database)
		recorder, auditLog = repo, repo
	}

	productRepo := product.NewRepository(api)
	orderSvc := order.NewService(order.NewRepository(api), recorder)
	productSvc := product.NewService(productRepo, recorder)
	userSvc := user.NewService(user.NewRepository(api), recorder)

	issuer := session.NewIssuer(cfg.SecretKey, cfg.SessionTTL)
	secure := cfg.IsProduction()

	h := httpapi.NewHandler(httpapi.Deps{
		Users:         userSvc,
		Orders:        orderSvc,
		Products:      productSvc,
		Reviews:       review.NewService(api),
		Notifications: notification.NewService(api),
		Dashboard:     dashboard.NewService(orderSvc, userSvc, productSvc, productRepo),
		Audit:         auditLog,
		Store:         store,
		Issuer:        issuer,
		Metrics:       upstream,
		SecureCookie:  secure,
	})

	return httpapi.NewRouter(h, middleware.NewAuth(issuer, store, secure), cfg.CORSOrigin)
}

// startServer blocks until SIGINT or SIGTERM, then drains in-flight requests.
func startServer(addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
