// Package storefront собирает HTTP-приложение магазина: хранилище, кеш,
// брокер событий, сервисы и маршруты.
package storefront

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
	"github.com/streadway/amqp"

	"github.com/greenbowl/salad-storefront/internal/cache"
	"github.com/greenbowl/salad-storefront/internal/config"
	"github.com/greenbowl/salad-storefront/internal/lib/jwt"
	"github.com/greenbowl/salad-storefront/internal/lib/sl"
	"github.com/greenbowl/salad-storefront/internal/migrations"
	"github.com/greenbowl/salad-storefront/internal/rabbitmq"
	authservice "github.com/greenbowl/salad-storefront/internal/services/auth"
	catalogservice "github.com/greenbowl/salad-storefront/internal/services/catalog"
	orderservice "github.com/greenbowl/salad-storefront/internal/services/order"
	userservice "github.com/greenbowl/salad-storefront/internal/services/user"
	"github.com/greenbowl/salad-storefront/internal/storage"
)

// App держит HTTP-сервер и подключения, которые нужно закрыть при остановке.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	mqConn *amqp.Connection
}

// New собирает приложение: подключения, миграции, сервисы, маршруты.
// Недоступный RabbitMQ не мешает запуску: заказы сохраняются,
// событие о заказе просто не публикуется.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Денежные значения в ответах сериализуются как числа JSON.
	decimal.MarshalJSONWithoutQuotes = true

	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	var mqConn *amqp.Connection
	var events orderservice.EventPublisher
	mqConn, err = rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		logger.Warn("rabbitmq unavailable, order events disabled", sl.Err(err))
	} else {
		ch, chErr := rabbitmq.SetupChannel(mqConn)
		if chErr != nil {
			logger.Warn("rabbitmq channel setup failed, order events disabled", sl.Err(chErr))
		} else {
			events = orderservice.NewAMQPPublisher(ch)
		}
	}

	jwtMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.NewAuthService(db, jwtMaker)
	userService := userservice.NewUserService(db, logger)
	catalogService := catalogservice.NewCatalogService(db, db, cacheRedis, logger)
	orderService := orderservice.NewOrderService(db, db, userService, db, events, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, db,
		authService, userService, catalogService, orderService)

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
		mqConn: mqConn,
	}, nil
}

// Run запускает сервер и блокируется до отмены контекста либо ошибки.
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
		if a.mqConn != nil {
			_ = a.mqConn.Close()
		}
		_ = a.db.DB.Close()
		return err
	}
}
