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

	cancelBookingHandler "github.com/courtops/CourtBookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/courtops/CourtBookingService/internal/api/handlers/create_booking"
	createCourtHandler "github.com/courtops/CourtBookingService/internal/api/handlers/create_court"
	createCourtBlockHandler "github.com/courtops/CourtBookingService/internal/api/handlers/create_court_block"
	createGuestBookingHandler "github.com/courtops/CourtBookingService/internal/api/handlers/create_guest_booking"
	deleteCourtHandler "github.com/courtops/CourtBookingService/internal/api/handlers/delete_court"
	deleteCourtBlockHandler "github.com/courtops/CourtBookingService/internal/api/handlers/delete_court_block"
	getAvailabilityHandler "github.com/courtops/CourtBookingService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/courtops/CourtBookingService/internal/api/handlers/get_booking"
	getCourtHandler "github.com/courtops/CourtBookingService/internal/api/handlers/get_court"
	getCourtsHandler "github.com/courtops/CourtBookingService/internal/api/handlers/get_courts"
	getOrganizationBookingsHandler "github.com/courtops/CourtBookingService/internal/api/handlers/get_organization_bookings"
	getUserBookingsHandler "github.com/courtops/CourtBookingService/internal/api/handlers/get_user_bookings"
	paymentWebhookHandler "github.com/courtops/CourtBookingService/internal/api/handlers/payment_webhook"
	updateCourtHandler "github.com/courtops/CourtBookingService/internal/api/handlers/update_court"
	"github.com/courtops/CourtBookingService/internal/api/middleware"
	"github.com/courtops/CourtBookingService/internal/config"
	bookingRepo "github.com/courtops/CourtBookingService/internal/infra/storage/booking"
	courtRepo "github.com/courtops/CourtBookingService/internal/infra/storage/court"
	guestRepo "github.com/courtops/CourtBookingService/internal/infra/storage/guest"
	orgServiceClient "github.com/courtops/CourtBookingService/internal/integrations/orgservice"
	"github.com/courtops/CourtBookingService/internal/scheduler"
	bookingsService "github.com/courtops/CourtBookingService/internal/service/bookings"
	courtsService "github.com/courtops/CourtBookingService/internal/service/courts"
	applyPaymentUC "github.com/courtops/CourtBookingService/internal/usecase/apply_payment"
	cancelBookingUC "github.com/courtops/CourtBookingService/internal/usecase/cancel_booking"
	completeBookingsUC "github.com/courtops/CourtBookingService/internal/usecase/complete_bookings"
	createBookingUC "github.com/courtops/CourtBookingService/internal/usecase/create_booking"
	getAvailabilityUC "github.com/courtops/CourtBookingService/internal/usecase/get_availability"
	sweepExpiredUC "github.com/courtops/CourtBookingService/internal/usecase/sweep_expired"
	"github.com/courtops/CourtBookingService/pkg/dbmetrics"
	"github.com/courtops/CourtBookingService/pkg/logger"
	"github.com/courtops/CourtBookingService/pkg/metrics"
	"github.com/courtops/CourtBookingService/pkg/simpletxmanager"
	"github.com/courtops/CourtBookingService/pkg/txmanager"
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

	log.Info("Starting CourtBookingService...")
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

	// Инициализируем клиент сервиса организаций
	orgClient := orgServiceClient.NewClient(
		cfg.OrgService.URL,
		time.Duration(cfg.OrgService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (OrgService=%s timeout=%ds)",
		cfg.OrgService.URL, cfg.OrgService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		courtRepository   *courtRepo.Repository
		guestRepository   *guestRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		courtRepository = courtRepo.NewRepository(wrappedDB)
		guestRepository = guestRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		courtRepository = courtRepo.NewRepository(db)
		guestRepository = guestRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем фоновые use cases
	sweepExpiredUseCase := sweepExpiredUC.NewUseCase(bookingRepository, txMgr, log)
	completeBookingsUseCase := completeBookingsUC.NewUseCase(bookingRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		courtRepository,
		guestRepository,
		orgClient,
		txMgr,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		courtRepository,
		bookingRepository,
		orgClient,
		sweepExpiredUseCase,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		orgClient,
		txMgr,
		log,
	)
	applyPaymentUseCase := applyPaymentUC.NewUseCase(bookingRepository, txMgr, log)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		orgClient,
		log,
	)
	courtSvc := courtsService.NewService(
		courtRepository,
		bookingRepository,
		orgClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	createGuestBooking := createGuestBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	paymentWebhook := paymentWebhookHandler.NewHandler(applyPaymentUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getOrganizationBookings := getOrganizationBookingsHandler.NewHandler(bookingSvc, log)
	createCourt := createCourtHandler.NewHandler(courtSvc, log)
	getCourt := getCourtHandler.NewHandler(courtSvc, log)
	getCourts := getCourtsHandler.NewHandler(courtSvc, log)
	updateCourt := updateCourtHandler.NewHandler(courtSvc, log)
	deleteCourt := deleteCourtHandler.NewHandler(courtSvc, log)
	createCourtBlock := createCourtBlockHandler.NewHandler(courtSvc, log)
	deleteCourtBlock := deleteCourtBlockHandler.NewHandler(courtSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Календарь доступности корта
	api.HandleFunc("/organizations/{orgId}/courts/{courtId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// Корты организации
	api.HandleFunc("/organizations/{orgId}/courts", getCourts.Handle).Methods(http.MethodGet)
	api.HandleFunc("/organizations/{orgId}/courts/{courtId}", getCourt.Handle).Methods(http.MethodGet)

	// Гостевое бронирование
	api.HandleFunc("/guest-bookings", createGuestBooking.Handle).Methods(http.MethodPost)

	// События платежного шлюза
	api.HandleFunc("/payments/webhook", paymentWebhook.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление организацией (для администраторов) ---
	// Список бронирований организации
	protected.HandleFunc("/organizations/{orgId}/bookings", getOrganizationBookings.Handle).Methods(http.MethodGet)

	// Управление кортами
	protected.HandleFunc("/organizations/{orgId}/courts", createCourt.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/organizations/{orgId}/courts/{courtId}", updateCourt.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/organizations/{orgId}/courts/{courtId}", deleteCourt.Handle).Methods(http.MethodDelete)

	// Блокировки кортов
	protected.HandleFunc("/organizations/{orgId}/courts/{courtId}/blocks", createCourtBlock.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/organizations/{orgId}/blocks/{blockId}", deleteCourtBlock.Handle).Methods(http.MethodDelete)

	// Запускаем фоновый шедулер: снимает просроченные брони и закрывает прошедшие
	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	defer stopScheduler()

	sched := scheduler.New(
		sweepExpiredUseCase,
		completeBookingsUseCase,
		time.Duration(cfg.Sweeper.IntervalSeconds)*time.Second,
		log,
	)
	go sched.Start(schedulerCtx)
	log.Info("Background scheduler started (interval=%ds)", cfg.Sweeper.IntervalSeconds)

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

	// Останавливаем фоновый шедулер
	stopScheduler()

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
