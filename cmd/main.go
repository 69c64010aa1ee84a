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

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	createBookingHandler "github.com/glowbeauty/salon-booking-service/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/glowbeauty/salon-booking-service/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/glowbeauty/salon-booking-service/internal/api/handlers/get_booking"
	getBookingChangesHandler "github.com/glowbeauty/salon-booking-service/internal/api/handlers/get_booking_changes"
	getFeaturesHandler "github.com/glowbeauty/salon-booking-service/internal/api/handlers/get_features"
	listBookingsHandler "github.com/glowbeauty/salon-booking-service/internal/api/handlers/list_bookings"
	listFeatureFlagsHandler "github.com/glowbeauty/salon-booking-service/internal/api/handlers/list_feature_flags"
	rescheduleBookingHandler "github.com/glowbeauty/salon-booking-service/internal/api/handlers/reschedule_booking"
	updateBookingStatusHandler "github.com/glowbeauty/salon-booking-service/internal/api/handlers/update_booking_status"
	updateFeatureFlagHandler "github.com/glowbeauty/salon-booking-service/internal/api/handlers/update_feature_flag"
	"github.com/glowbeauty/salon-booking-service/internal/api/middleware"
	"github.com/glowbeauty/salon-booking-service/internal/config"
	bookingRepo "github.com/glowbeauty/salon-booking-service/internal/infra/storage/booking"
	bookingChangeRepo "github.com/glowbeauty/salon-booking-service/internal/infra/storage/bookingchange"
	featureFlagRepo "github.com/glowbeauty/salon-booking-service/internal/infra/storage/featureflag"
	contentServiceClient "github.com/glowbeauty/salon-booking-service/internal/integrations/contentservice"
	"github.com/glowbeauty/salon-booking-service/internal/integrations/whatsapp"
	bookingsService "github.com/glowbeauty/salon-booking-service/internal/service/bookings"
	featuresService "github.com/glowbeauty/salon-booking-service/internal/service/features"
	createBookingUC "github.com/glowbeauty/salon-booking-service/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/glowbeauty/salon-booking-service/internal/usecase/get_available_slots"
	rescheduleBookingUC "github.com/glowbeauty/salon-booking-service/internal/usecase/reschedule_booking"
	updateBookingStatusUC "github.com/glowbeauty/salon-booking-service/internal/usecase/update_booking_status"
	"github.com/glowbeauty/salon-booking-service/pkg/dbmetrics"
	"github.com/glowbeauty/salon-booking-service/pkg/logger"
	"github.com/glowbeauty/salon-booking-service/pkg/metrics"
	"github.com/glowbeauty/salon-booking-service/pkg/simpletxmanager"
	"github.com/glowbeauty/salon-booking-service/pkg/txmanager"
)

func main() {
	// .env необязателен - в проде конфигурация приходит из окружения
	_ = godotenv.Load()

	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting salon-booking-service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Подключаемся к Redis (используется только для rate limiting публичных ручек)
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		defer redisClient.Close()
		log.Info("Successfully connected to redis (addr=%s)", cfg.Redis.Addr)
	}

	// Инициализируем интеграции
	contentClient := contentServiceClient.NewClient(
		cfg.ContentService.URL,
		time.Duration(cfg.ContentService.Timeout)*time.Second,
		log,
	)
	waLinks := whatsapp.NewLinkBuilder(cfg.Booking.SalonName)
	log.Info("Integration clients initialized (ContentService=%s timeout=%ds)",
		cfg.ContentService.URL, cfg.ContentService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		changeRepository  *bookingChangeRepo.Repository
		flagRepository    *featureFlagRepo.Repository
	)

	// Интерфейс transaction manager, общий для обеих реализаций
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		changeRepository = bookingChangeRepo.NewRepository(wrappedDB)
		flagRepository = featureFlagRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		changeRepository = bookingChangeRepo.NewRepository(db)
		flagRepository = featureFlagRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		changeRepository,
		flagRepository,
		log,
	)
	featuresSvc := featuresService.NewService(flagRepository, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		flagRepository,
		contentClient,
		cfg.Booking.FallbackCapacity,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		flagRepository,
		contentClient,
		waLinks,
		txMgr,
		cfg.Booking.FallbackCapacity,
		log,
	)
	updateBookingStatusUseCase := updateBookingStatusUC.NewUseCase(
		bookingRepository,
		changeRepository,
		flagRepository,
		contentClient,
		waLinks,
		txMgr,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		changeRepository,
		flagRepository,
		contentClient,
		waLinks,
		txMgr,
		cfg.Booking.FallbackCapacity,
		log,
	)

	// Инициализируем handlers
	getFeatures := getFeaturesHandler.NewHandler(featuresSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getBookingChanges := getBookingChangesHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(updateBookingStatusUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	listFeatureFlags := listFeatureFlagsHandler.NewHandler(featuresSvc, log)
	updateFeatureFlag := updateFeatureFlagHandler.NewHandler(featuresSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (витрина, без аутентификации)
	// ============================================================

	// Публичные фиче-флаги для витрины
	api.HandleFunc("/features", getFeatures.Handle).Methods(http.MethodGet)

	public := api.PathPrefix("/public").Subrouter()
	public.Use(middleware.RateLimit(
		redisClient,
		cfg.Redis.RateLimitRequests,
		time.Duration(cfg.Redis.RateLimitWindowSeconds)*time.Second,
		log,
	))

	// Доступные слоты на дату
	public.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание заявки на запись
	public.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// SALON ROUTES (дашборд владельца, JWT + роль salon_owner)
	// ============================================================

	salon := api.PathPrefix("/salon").Subrouter()
	salon.Use(middleware.Auth(cfg.Auth.JWTSecret))
	salon.Use(middleware.RequireRole(middleware.RoleSalonOwner))

	// Список записей с фильтрами
	salon.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)

	// Запись по ID
	salon.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Журнал изменений записи
	salon.HandleFunc("/bookings/{bookingId}/changes", getBookingChanges.Handle).Methods(http.MethodGet)

	// Смена статуса (подтверждение, завершение, отмена, неявка)
	salon.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// Перенос записи на другое время
	salon.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)

	// ============================================================
	// ADMIN ROUTES (платформа, JWT + роль platform_admin)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth(cfg.Auth.JWTSecret))
	admin.Use(middleware.RequireRole(middleware.RolePlatformAdmin))

	// Все фиче-флаги с метаданными
	admin.HandleFunc("/features", listFeatureFlags.Handle).Methods(http.MethodGet)

	// Переключение фиче-флага
	admin.HandleFunc("/features", updateFeatureFlag.Handle).Methods(http.MethodPatch)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
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
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
