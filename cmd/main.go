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
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/coachflow/CF-BookingService/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/coachflow/CF-BookingService/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/coachflow/CF-BookingService/internal/api/handlers/create_booking"
	getAvailableDaysHandler "github.com/coachflow/CF-BookingService/internal/api/handlers/get_available_days"
	getAvailableSlotsHandler "github.com/coachflow/CF-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/coachflow/CF-BookingService/internal/api/handlers/get_booking"
	getBookingSettingsHandler "github.com/coachflow/CF-BookingService/internal/api/handlers/get_booking_settings"
	getCoachBookingsHandler "github.com/coachflow/CF-BookingService/internal/api/handlers/get_coach_bookings"
	updateBookingSettingsHandler "github.com/coachflow/CF-BookingService/internal/api/handlers/update_booking_settings"
	"github.com/coachflow/CF-BookingService/internal/api/middleware"
	"github.com/coachflow/CF-BookingService/internal/config"
	"github.com/coachflow/CF-BookingService/internal/domain"
	"github.com/coachflow/CF-BookingService/internal/infra/migrator"
	bookingRepo "github.com/coachflow/CF-BookingService/internal/infra/storage/booking"
	settingsRepo "github.com/coachflow/CF-BookingService/internal/infra/storage/settings"
	"github.com/coachflow/CF-BookingService/internal/integrations/googlecalendar"
	notifierClient "github.com/coachflow/CF-BookingService/internal/integrations/notifier"
	bookingsService "github.com/coachflow/CF-BookingService/internal/service/bookings"
	settingsService "github.com/coachflow/CF-BookingService/internal/service/settings"
	createBookingUC "github.com/coachflow/CF-BookingService/internal/usecase/create_booking"
	getAvailableDaysUC "github.com/coachflow/CF-BookingService/internal/usecase/get_available_days"
	getAvailableSlotsUC "github.com/coachflow/CF-BookingService/internal/usecase/get_available_slots"
	"github.com/coachflow/CF-BookingService/pkg/dbmetrics"
	"github.com/coachflow/CF-BookingService/pkg/logger"
	"github.com/coachflow/CF-BookingService/pkg/metrics"
	"github.com/coachflow/CF-BookingService/pkg/simpletxmanager"
	"github.com/coachflow/CF-BookingService/pkg/txmanager"
)

func main() {
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

	log.Info("Starting CF-BookingService...")
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

	// Применяем миграции
	mg, err := migrator.New(db, cfg.Database.MigrationsDir)
	if err != nil {
		log.Fatal("Failed to initialize migrator: %v", err)
	}
	if err := mg.Run(context.Background()); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	if version, err := mg.Version(context.Background()); err == nil {
		log.Info("Database migrations applied, version=%d", version)
	}

	// Инициализируем клиент внешнего календаря
	type CalendarClient interface {
		BusyIntervals(ctx context.Context, calendarID string, from, to time.Time) ([]domain.BusyInterval, error)
	}
	var calendarClient CalendarClient = googlecalendar.Disabled{}

	if cfg.GoogleCalendar.Enabled {
		client, err := googlecalendar.NewClient(
			context.Background(),
			cfg.GoogleCalendar.CredentialsFile,
			time.Duration(cfg.GoogleCalendar.Timeout)*time.Second,
			log,
		)
		if err != nil {
			log.Fatal("Failed to initialize Google Calendar client: %v", err)
		}
		calendarClient = client
		log.Info("Google Calendar client initialized (timeout=%ds)", cfg.GoogleCalendar.Timeout)
	} else {
		log.Info("Google Calendar integration disabled")
	}

	// Инициализируем клиент сервиса уведомлений
	notifier := notifierClient.NewClient(
		cfg.Notifier.URL,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		log,
	)
	log.Info("Notifier client initialized (url=%s, timeout=%ds)", cfg.Notifier.URL, cfg.Notifier.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		settingsRepository *settingsRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		notifier,
		log,
	)
	settingsSvc := settingsService.NewService(
		settingsRepository,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		settingsRepository,
		calendarClient,
		notifier,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		settingsRepository,
		calendarClient,
		log,
	)
	getAvailableDaysUseCase := getAvailableDaysUC.NewUseCase(
		bookingRepository,
		settingsRepository,
		calendarClient,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailableDays := getAvailableDaysHandler.NewHandler(getAvailableDaysUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	getCoachBookings := getCoachBookingsHandler.NewHandler(bookingSvc, log)
	getBookingSettings := getBookingSettingsHandler.NewHandler(settingsSvc, log)
	updateBookingSettings := updateBookingSettingsHandler.NewHandler(settingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты на дату
	api.HandleFunc("/coaches/{coachId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Дни с доступными слотами
	api.HandleFunc("/coaches/{coachId}/available-days",
		getAvailableDays.Handle).Methods(http.MethodGet)

	// Создание бронирования клиентом
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Отмена бронирования: тренер по заголовку, клиент по email
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)

	// --- Кабинет тренера ---
	protected.HandleFunc("/coaches/{coachId}/bookings", getCoachBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/coaches/{coachId}/settings", getBookingSettings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/coaches/{coachId}/settings", updateBookingSettings.Handle).Methods(http.MethodPut)

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
