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

	checkAvailabilityHandler "github.com/studio609/Studio-BookingService/internal/api/handlers/check_availability"
	createBookingHandler "github.com/studio609/Studio-BookingService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/studio609/Studio-BookingService/internal/api/handlers/get_booking"
	stripeWebhookHandler "github.com/studio609/Studio-BookingService/internal/api/handlers/stripe_webhook"
	"github.com/studio609/Studio-BookingService/internal/api/middleware"
	"github.com/studio609/Studio-BookingService/internal/config"
	"github.com/studio609/Studio-BookingService/internal/ics"
	bookingRepo "github.com/studio609/Studio-BookingService/internal/infra/storage/booking"
	caldavClient "github.com/studio609/Studio-BookingService/internal/integrations/caldav"
	stripePay "github.com/studio609/Studio-BookingService/internal/integrations/stripepay"
	bookingsService "github.com/studio609/Studio-BookingService/internal/service/bookings"
	"github.com/studio609/Studio-BookingService/internal/service/calendarfeed"
	checkAvailabilityUC "github.com/studio609/Studio-BookingService/internal/usecase/check_availability"
	confirmPaymentUC "github.com/studio609/Studio-BookingService/internal/usecase/confirm_payment"
	createBookingUC "github.com/studio609/Studio-BookingService/internal/usecase/create_booking"
	"github.com/studio609/Studio-BookingService/pkg/logger"
	"github.com/studio609/Studio-BookingService/pkg/metrics"
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

	log.Info("Starting Studio-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Референсная тайм-зона: она определяет границы календарного дня
	loc, err := cfg.ReferenceLocation()
	if err != nil {
		log.Fatal("Failed to load reference timezone %q: %v", cfg.Booking.Timezone, err)
	}
	log.Info("Reference timezone: %s", loc)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var calObserver caldavClient.Observer
	var payObserver stripePay.Observer
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		calObserver = metricsCollector
		payObserver = metricsCollector
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

	// Инициализируем интеграционных клиентов
	calClient := caldavClient.NewClient(
		cfg.CalDAV.BaseURL,
		cfg.CalDAV.Username,
		cfg.CalDAV.Password,
		time.Duration(cfg.CalDAV.Timeout)*time.Second,
		log,
		calObserver,
	)
	payClient := stripePay.NewClient(
		stripePay.Config{
			SecretKey:        cfg.Stripe.SecretKey,
			WebhookSecret:    cfg.Stripe.WebhookSecret,
			WebhookTolerance: time.Duration(cfg.Stripe.WebhookTolerance) * time.Second,
			SuccessURL:       cfg.Stripe.SuccessURL,
			CancelURL:        cfg.Stripe.CancelURL,
			Currency:         cfg.Stripe.Currency,
		},
		log,
		payObserver,
	)
	log.Info("Integration clients initialized (CalDAV=%s timeout=%ds, Stripe currency=%s)",
		cfg.CalDAV.BaseURL, cfg.CalDAV.Timeout, cfg.Stripe.Currency)

	// Инициализируем репозитории и фид календаря
	bookingRepository := bookingRepo.NewRepository(db)

	normalizer := ics.NewNormalizer(loc)
	feed := calendarfeed.NewFeed(
		calClient,
		normalizer,
		cfg.CalDAV.BookingsPath,
		cfg.CalDAV.BlackoutsPath,
		loc,
		log,
	)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)

	// Инициализируем use cases
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(feed, loc, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		feed,
		calClient,
		bookingRepository,
		payClient,
		createBookingUC.Config{
			BookingsPath: cfg.CalDAV.BookingsPath,
			Summary:      cfg.Booking.Summary,
			AmountMinor:  cfg.Stripe.DepositAmount,
			Currency:     cfg.Stripe.Currency,
		},
		loc,
		log,
	)
	confirmPaymentUseCase := confirmPaymentUC.NewUseCase(
		feed,
		calClient,
		bookingRepository,
		payClient,
		loc,
		log,
	)

	// Инициализируем handlers
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	stripeWebhook := stripeWebhookHandler.NewHandler(payClient, confirmPaymentUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// CORS для браузерного фронтенда
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Проверка доступности диапазона дат
	api.HandleFunc("/availability", checkAvailability.Handle).Methods(http.MethodGet, http.MethodOptions)

	// Создание бронирования
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost, http.MethodOptions)

	// Получение бронирования по reference
	api.HandleFunc("/bookings/{bookingRef}", getBooking.Handle).Methods(http.MethodGet, http.MethodOptions)

	// Платёжные события Stripe (подпись проверяется в handler)
	api.HandleFunc("/payments/stripe/webhook", stripeWebhook.Handle).Methods(http.MethodPost)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped")
}
