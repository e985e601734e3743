package expensetracker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/expense-tracker/internal/cache"
	"github.com/magabrotheeeer/expense-tracker/internal/config"
	"github.com/magabrotheeeer/expense-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/expense-tracker/internal/http/view"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/expense-tracker/internal/migrations"
	authservice "github.com/magabrotheeeer/expense-tracker/internal/services/auth"
	ledgerservice "github.com/magabrotheeeer/expense-tracker/internal/services/ledger"
	"github.com/magabrotheeeer/expense-tracker/internal/storage"
)

const (
	amqpRetryDelay  = 2 * time.Second
	shutdownTimeout = 15 * time.Second
)

type App struct {
	server  *http.Server
	logger  *slog.Logger
	db      *storage.Storage
	closers []io.Closer
}

// New подключает хранилище, применяет миграции и собирает маршруты.
// Redis и брокер подключаются, только если заданы их адреса.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.expensetracker.New"

	dialect, dsn, err := storage.ParseConnString(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(string(dialect), dsn); err != nil {
		return nil, err
	}
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	logger.Info("storage ready", sl.Op(op), slog.String("dialect", string(db.Dialect())))

	a := &App{
		logger: logger,
		db:     db,
	}

	var summaryCache ledgerservice.Cache = cache.Nop{}
	if cfg.AddressRedis != "" {
		cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			a.close()
			return nil, err
		}
		summaryCache = cacheRedis
		a.closers = append(a.closers, cacheRedis)
		logger.Info("summary cache enabled", slog.String("address", cfg.AddressRedis))
	}

	var events ledgerservice.EventPublisher = ledgerservice.NopPublisher{}
	if cfg.URL != "" {
		publisher, err := rabbitmq.Dial(cfg.URL, cfg.Exchange, cfg.Retries, amqpRetryDelay)
		if err != nil {
			a.close()
			return nil, err
		}
		events = publisher
		a.closers = append(a.closers, publisher)
		logger.Info("ledger events enabled", slog.String("exchange", cfg.Exchange))
	}

	renderer, err := view.New(logger)
	if err != nil {
		a.close()
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.SecretKey, cfg.TokenTTL)
	authService := authservice.NewAuthService(db, jwtMaker)
	ledgerService := ledgerservice.NewLedgerService(db, summaryCache, events, logger, cfg.SummaryTTL)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, Deps{
		Auth:    authService,
		Ledger:  ledgerService,
		Storage: db,
		View:    renderer,
		Cookies: middlewarectx.CookieConfig{TTL: cfg.TokenTTL, Secure: cfg.SecureCookie},
		RPS:     cfg.RPS,
		Burst:   cfg.Burst,
	})

	a.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return a, nil
}

// Handler возвращает корневой обработчик приложения.
func (a *App) Handler() http.Handler {
	return a.server.Handler
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
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

// close освобождает внешние подключения в обратном порядке.
func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Warn("failed to close dependency", sl.Err(err))
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close storage", sl.Err(err))
	}
}
