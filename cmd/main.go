package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/LocalBiz-BookingService/internal/api"
	cancelBookingHandler "github.com/m04kA/LocalBiz-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/LocalBiz-BookingService/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/LocalBiz-BookingService/internal/api/handlers/delete_booking"
	getAllBookingsHandler "github.com/m04kA/LocalBiz-BookingService/internal/api/handlers/get_all_bookings"
	getBookingHandler "github.com/m04kA/LocalBiz-BookingService/internal/api/handlers/get_booking"
	getBookingStatsHandler "github.com/m04kA/LocalBiz-BookingService/internal/api/handlers/get_booking_stats"
	getTableAvailabilityHandler "github.com/m04kA/LocalBiz-BookingService/internal/api/handlers/get_table_availability"
	getUserBookingsHandler "github.com/m04kA/LocalBiz-BookingService/internal/api/handlers/get_user_bookings"
	updateBookingStatusHandler "github.com/m04kA/LocalBiz-BookingService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/LocalBiz-BookingService/internal/api/middleware"
	"github.com/m04kA/LocalBiz-BookingService/internal/auth"
	"github.com/m04kA/LocalBiz-BookingService/internal/config"
	catalogCache "github.com/m04kA/LocalBiz-BookingService/internal/infra/cache/catalog"
	bookingRepo "github.com/m04kA/LocalBiz-BookingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/LocalBiz-BookingService/internal/infra/storage/catalog"
	"github.com/m04kA/LocalBiz-BookingService/internal/infra/storage/memory"
	userServiceClient "github.com/m04kA/LocalBiz-BookingService/internal/integrations/userservice"
	"github.com/m04kA/LocalBiz-BookingService/internal/service/availability"
	bookingsService "github.com/m04kA/LocalBiz-BookingService/internal/service/bookings"
	catalogService "github.com/m04kA/LocalBiz-BookingService/internal/service/catalog"
	createBookingUC "github.com/m04kA/LocalBiz-BookingService/internal/usecase/create_booking"
	getTableAvailabilityUC "github.com/m04kA/LocalBiz-BookingService/internal/usecase/get_table_availability"
	"github.com/m04kA/LocalBiz-BookingService/pkg/dbmetrics"
	"github.com/m04kA/LocalBiz-BookingService/pkg/logger"
	"github.com/m04kA/LocalBiz-BookingService/pkg/metrics"
	"github.com/m04kA/LocalBiz-BookingService/pkg/mq"
	"github.com/m04kA/LocalBiz-BookingService/pkg/txmanager"
)

// bookingStore хранилище бронирований, общее для всех use case и сервисов
type bookingStore interface {
	createBookingUC.BookingRepository
	bookingsService.BookingRepository
	availability.BookingRepository
}

// txManager интерфейс для transaction manager (используется в usecases)
type txManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// storage выбранная реализация хранилища
type storage struct {
	bookings  bookingStore
	catalog   catalogCache.Source
	txManager txManager
	close     func()
}

func main() {
	configPath := "config.toml"
	if path := os.Getenv("LOCALBIZ_CONFIG"); path != "" {
		configPath = path
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting LocalBiz-BookingService...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid booking timezone %q: %v", cfg.Booking.Timezone, err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаем хранилище
	var store *storage
	switch cfg.Database.Driver {
	case config.DriverMemory:
		store, err = newMemoryStorage(cfg, log)
	default:
		store, err = newPostgresStorage(cfg, metricsCollector, stopMetricsCh, log)
	}
	if err != nil {
		log.Fatal("Failed to initialize storage: %v", err)
	}
	defer store.close()

	// Кэш каталога в Redis (опционально)
	catalog := store.catalog
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			// Кэш не обязателен: при ошибках Redis чтение идет напрямую в хранилище
			log.Warn("Redis is unavailable at %s: %v", cfg.Redis.Addr, err)
		}
		cancel()

		catalog = catalogCache.NewCache(store.catalog, redisClient, time.Duration(cfg.Redis.CatalogTTL)*time.Second, log)
		log.Info("Catalog cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.CatalogTTL)
	}

	// Публикация событий (опционально)
	var publisher interface {
		PublishJSON(ctx context.Context, key string, v any) error
		Close() error
	} = mq.NopPublisher{}
	if cfg.MQ.Enabled {
		mqPublisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		publisher = mqPublisher
		log.Info("Booking events are published to exchange %s", cfg.MQ.Exchange)
	}
	defer publisher.Close()

	// Аутентификация
	var authenticator middleware.Authenticator
	switch cfg.Auth.Mode {
	case config.AuthModeRemote:
		authenticator = userServiceClient.NewClient(
			cfg.Auth.UserServiceURL,
			time.Duration(cfg.Auth.UserServiceTimeout)*time.Second,
			log,
		)
		log.Info("Authentication via UserService (url=%s, timeout=%ds)",
			cfg.Auth.UserServiceURL, cfg.Auth.UserServiceTimeout)
	default:
		jwtAuthenticator, err := auth.NewJWTAuthenticator(cfg.Auth.JWTSecret, catalog, log)
		if err != nil {
			log.Fatal("Failed to initialize authenticator: %v", err)
		}
		authenticator = jwtAuthenticator
		log.Info("Authentication via JWT")
	}

	// Инициализируем сервисы
	resolver := catalogService.NewResolver(catalog, log)
	checker := availability.NewChecker(store.bookings, location, log)
	bookingSvc := bookingsService.NewService(store.bookings, publisher, metricsCollector, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		store.bookings,
		catalog,
		resolver,
		checker,
		store.txManager,
		publisher,
		metricsCollector,
		location,
		log,
	)
	getTableAvailabilityUseCase := getTableAvailabilityUC.NewUseCase(catalog, checker, store.txManager, location, log)

	// Настраиваем роутер
	routerCfg := api.RouterConfig{
		Handlers: api.Handlers{
			CreateBooking:        createBookingHandler.NewHandler(createBookingUseCase, log),
			GetUserBookings:      getUserBookingsHandler.NewHandler(bookingSvc, log),
			GetBooking:           getBookingHandler.NewHandler(bookingSvc, log),
			CancelBooking:        cancelBookingHandler.NewHandler(bookingSvc, log),
			GetTableAvailability: getTableAvailabilityHandler.NewHandler(getTableAvailabilityUseCase, log),
			GetAllBookings:       getAllBookingsHandler.NewHandler(bookingSvc, log),
			UpdateBookingStatus:  updateBookingStatusHandler.NewHandler(bookingSvc, log),
			DeleteBooking:        deleteBookingHandler.NewHandler(bookingSvc, log),
			GetBookingStats:      getBookingStatsHandler.NewHandler(bookingSvc, log),
		},
		Authenticator: authenticator,
		Logger:        log,
	}
	if cfg.Metrics.Enabled {
		routerCfg.Metrics = metricsCollector
		routerCfg.MetricsPath = cfg.Metrics.Path
		routerCfg.MetricsHandler = promhttp.Handler()
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      api.NewRouter(routerCfg),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

// newPostgresStorage подключается к PostgreSQL
func newPostgresStorage(cfg *config.Config, collector *metrics.Metrics, stopCh <-chan struct{}, log *logger.Logger) (*storage, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrappedDB *dbmetrics.DB
	if collector != nil {
		wrappedDB = dbmetrics.WrapWithDefault(db, collector, stopCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	return &storage{
		bookings:  bookingRepo.NewRepository(wrappedDB),
		catalog:   catalogRepo.NewRepository(wrappedDB),
		txManager: txmanager.NewTransactionManager(wrappedDB),
		close:     func() { _ = db.Close() },
	}, nil
}

// newMemoryStorage создает хранилище в памяти и загружает начальные данные
func newMemoryStorage(cfg *config.Config, log *logger.Logger) (*storage, error) {
	store := memory.NewStore()

	if cfg.Booking.SeedFile != "" {
		if err := store.LoadSeedFile(cfg.Booking.SeedFile); err != nil {
			return nil, fmt.Errorf("load seed: %w", err)
		}
		log.Info("Seed data loaded from %s", cfg.Booking.SeedFile)
	}
	log.Warn("Using in-memory storage: data is lost on restart")

	return &storage{
		bookings:  store,
		catalog:   store,
		txManager: memory.NewTxManager(store),
		close:     func() {},
	}, nil
}
