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

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
	"github.com/hibiken/asynq"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/abhi96256/Appoinment/internal/api/handlers"
	approveReviewHandler "github.com/abhi96256/Appoinment/internal/api/handlers/approve_review"
	cancelBookingHandler "github.com/abhi96256/Appoinment/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/abhi96256/Appoinment/internal/api/handlers/create_booking"
	createReviewHandler "github.com/abhi96256/Appoinment/internal/api/handlers/create_review"
	createServiceHandler "github.com/abhi96256/Appoinment/internal/api/handlers/create_service"
	deleteReviewHandler "github.com/abhi96256/Appoinment/internal/api/handlers/delete_review"
	deleteServiceHandler "github.com/abhi96256/Appoinment/internal/api/handlers/delete_service"
	getAvailableSlotsHandler "github.com/abhi96256/Appoinment/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/abhi96256/Appoinment/internal/api/handlers/get_booking"
	getBusinessHoursHandler "github.com/abhi96256/Appoinment/internal/api/handlers/get_business_hours"
	getCustomerBookingsHandler "github.com/abhi96256/Appoinment/internal/api/handlers/get_customer_bookings"
	getServiceHandler "github.com/abhi96256/Appoinment/internal/api/handlers/get_service"
	getServiceReviewsHandler "github.com/abhi96256/Appoinment/internal/api/handlers/get_service_reviews"
	healthHandler "github.com/abhi96256/Appoinment/internal/api/handlers/health"
	listBookingsHandler "github.com/abhi96256/Appoinment/internal/api/handlers/list_bookings"
	listReviewsHandler "github.com/abhi96256/Appoinment/internal/api/handlers/list_reviews"
	listServicesHandler "github.com/abhi96256/Appoinment/internal/api/handlers/list_services"
	loginHandler "github.com/abhi96256/Appoinment/internal/api/handlers/login"
	resetBusinessHoursHandler "github.com/abhi96256/Appoinment/internal/api/handlers/reset_business_hours"
	updateBookingStatusHandler "github.com/abhi96256/Appoinment/internal/api/handlers/update_booking_status"
	updateBusinessHoursHandler "github.com/abhi96256/Appoinment/internal/api/handlers/update_business_hours"
	updateServiceHandler "github.com/abhi96256/Appoinment/internal/api/handlers/update_service"
	verifyTokenHandler "github.com/abhi96256/Appoinment/internal/api/handlers/verify_token"
	"github.com/abhi96256/Appoinment/internal/api/middleware"
	"github.com/abhi96256/Appoinment/internal/config"
	"github.com/abhi96256/Appoinment/internal/domain"
	"github.com/abhi96256/Appoinment/internal/infra/queue/reminders"
	bookingRepo "github.com/abhi96256/Appoinment/internal/infra/storage/booking"
	catalogRepo "github.com/abhi96256/Appoinment/internal/infra/storage/catalog"
	hoursRepo "github.com/abhi96256/Appoinment/internal/infra/storage/hours"
	reviewRepo "github.com/abhi96256/Appoinment/internal/infra/storage/review"
	"github.com/abhi96256/Appoinment/internal/integrations/events"
	"github.com/abhi96256/Appoinment/internal/integrations/mailer"
	"github.com/abhi96256/Appoinment/internal/integrations/smsgateway"
	authService "github.com/abhi96256/Appoinment/internal/service/auth"
	bookingsService "github.com/abhi96256/Appoinment/internal/service/bookings"
	catalogService "github.com/abhi96256/Appoinment/internal/service/catalog"
	hoursService "github.com/abhi96256/Appoinment/internal/service/hours"
	"github.com/abhi96256/Appoinment/internal/service/notifications"
	reviewsService "github.com/abhi96256/Appoinment/internal/service/reviews"
	createBookingUC "github.com/abhi96256/Appoinment/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/abhi96256/Appoinment/internal/usecase/get_available_slots"
	"github.com/abhi96256/Appoinment/pkg/dbmetrics"
	"github.com/abhi96256/Appoinment/pkg/logger"
	"github.com/abhi96256/Appoinment/pkg/metrics"
	"github.com/abhi96256/Appoinment/pkg/txmanager"
)

// ReminderScheduler планировщик напоминаний (asynq или no-op)
type ReminderScheduler interface {
	Schedule(ctx context.Context, booking *domain.Booking) error
	Cancel(ctx context.Context, bookingID int64) error
}

// EventPublisher публикатор событий (RabbitMQ или no-op)
type EventPublisher interface {
	PublishBooking(ctx context.Context, eventType domain.BookingEventType, booking *domain.Booking) error
	Close() error
}

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

	log.Info("Starting appointment booking service...")

	loc, err := cfg.Server.Location()
	if err != nil {
		log.Fatal("Invalid server.timezone %q: %v", cfg.Server.Timezone, err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Обёртка с метриками запросов, без метрик запросы просто проксируются
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Репозитории и менеджер транзакций
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	hoursRepository := hoursRepo.NewRepository(wrappedDB)
	reviewRepository := reviewRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Redis: распределенный rate limit и очередь напоминаний
	var (
		redisClient *redis.Client
		redisOpt    asynq.RedisClientOpt
	)
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis ping failed (addr=%s): %v", cfg.Redis.Addr, err)
		}
		cancel()

		redisOpt = asynq.RedisClientOpt{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB}
		log.Info("Redis enabled (addr=%s)", cfg.Redis.Addr)
	}

	// Каналы уведомлений. Отключенный канал передается как nil интерфейс
	var (
		emailChannel notifications.Mailer
		smsChannel   notifications.SMSSender
	)
	if cfg.Notifications.EmailEnabled && cfg.SMTP.Host != "" {
		emailChannel = mailer.New(mailer.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
		log.Info("Email notifications enabled (smtp=%s:%d)", cfg.SMTP.Host, cfg.SMTP.Port)
	} else {
		log.Info("Email notifications disabled")
	}
	if cfg.Notifications.SMSEnabled && cfg.SMS.URL != "" {
		smsChannel = smsgateway.NewClient(
			cfg.SMS.URL,
			cfg.SMS.APIToken,
			cfg.SMS.From,
			time.Duration(cfg.SMS.TimeoutSeconds)*time.Second,
			log,
		)
		log.Info("SMS notifications enabled (gateway=%s)", cfg.SMS.URL)
	} else {
		log.Info("SMS notifications disabled")
	}

	notifier := notifications.NewService(emailChannel, smsChannel, metricsCollector, notifications.Config{
		Timeout:     time.Duration(cfg.Notifications.TimeoutSeconds) * time.Second,
		CountryCode: cfg.Notifications.DefaultCountryCode,
		Currency:    cfg.Notifications.Currency,
	}, log)

	// Напоминания
	var (
		reminderScheduler ReminderScheduler = reminders.NoopScheduler{}
		reminderServer    *asynq.Server
	)
	if cfg.Reminders.Enabled {
		asynqClient := asynq.NewClient(redisOpt)
		defer asynqClient.Close()
		inspector := asynq.NewInspector(redisOpt)
		defer inspector.Close()

		reminderScheduler = reminders.NewScheduler(
			asynqClient,
			inspector,
			time.Duration(cfg.Reminders.LeadMinutes)*time.Minute,
			cfg.Reminders.Queue,
			loc,
			metricsCollector,
			log,
		)

		var reminderMux *asynq.ServeMux
		reminderServer, reminderMux = reminders.NewServer(
			redisOpt,
			cfg.Reminders.Concurrency,
			cfg.Reminders.Queue,
			reminders.NewHandler(bookingRepository, notifier, log),
		)
		if err := reminderServer.Start(reminderMux); err != nil {
			log.Fatal("Failed to start reminder worker: %v", err)
		}
		log.Info("Reminder worker started (queue=%s, lead=%dm)", cfg.Reminders.Queue, cfg.Reminders.LeadMinutes)
	}

	// События
	var eventPublisher EventPublisher = events.NoopPublisher{}
	if cfg.Events.Enabled {
		publisher, err := events.NewPublisher(cfg.Events.URL, cfg.Events.Exchange, log)
		if err != nil {
			log.Error("Failed to connect to RabbitMQ, events disabled: %v", err)
		} else {
			eventPublisher = publisher
			log.Info("Booking events published to exchange %s", cfg.Events.Exchange)
		}
	}

	// Сервисы
	authSvc, err := authService.NewService(authService.Config{
		Secret:        cfg.Auth.JWTSecret,
		TokenTTL:      time.Duration(cfg.Auth.TokenTTLHours) * time.Hour,
		AdminEmail:    cfg.Auth.AdminEmail,
		PasswordHash:  cfg.Auth.AdminPasswordHash,
		AdminPassword: cfg.Auth.AdminPassword,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize auth: %v", err)
	}

	catalogSvc := catalogService.NewService(catalogRepository, log)
	hoursSvc := hoursService.NewService(hoursRepository, catalogRepository, txMgr, cfg.BusinessHours.ToDomain(), log)
	bookingSvc := bookingsService.NewService(bookingRepository, txMgr, notifier, reminderScheduler, eventPublisher, log)
	reviewSvc := reviewsService.NewService(reviewRepository, bookingRepository, log)

	// Стартовый каталог
	if cfg.Seed.DefaultServices {
		seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		created, err := catalogSvc.SeedDefaults(seedCtx)
		cancel()
		if err != nil {
			log.Error("Failed to seed default services: %v", err)
		} else if created > 0 {
			log.Info("Seeded %d default services", created)
		}
	}

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		hoursSvc,
		txMgr,
		notifier,
		reminderScheduler,
		eventPublisher,
		metricsCollector,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		hoursSvc,
		metricsCollector,
		log,
	)

	// Handlers
	health := healthHandler.NewHandler(wrappedDB, log)
	login := loginHandler.NewHandler(authSvc, log)
	verifyToken := verifyTokenHandler.NewHandler(authSvc, log)

	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	getService := getServiceHandler.NewHandler(catalogSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	deleteService := deleteServiceHandler.NewHandler(catalogSvc, log)

	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBusinessHours := getBusinessHoursHandler.NewHandler(hoursSvc, log)
	updateBusinessHours := updateBusinessHoursHandler.NewHandler(hoursSvc, log)
	resetBusinessHours := resetBusinessHoursHandler.NewHandler(hoursSvc, log)

	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)

	createReview := createReviewHandler.NewHandler(reviewSvc, log)
	getServiceReviews := getServiceReviewsHandler.NewHandler(reviewSvc, log)
	listReviews := listReviewsHandler.NewHandler(reviewSvc, log)
	approveReview := approveReviewHandler.NewHandler(reviewSvc, log)
	deleteReview := deleteReviewHandler.NewHandler(reviewSvc, log)

	// Middleware
	adminAuth := middleware.AdminAuth(authSvc, log)
	admin := func(h http.HandlerFunc) http.Handler {
		return adminAuth(h)
	}

	limited := func(h http.HandlerFunc) http.Handler { return h }
	if cfg.RateLimit.Enabled {
		var limiter middleware.Limiter
		if redisClient != nil {
			limiter = middleware.NewRedisLimiter(redisClient, cfg.RateLimit.Requests, cfg.RateLimit.Window(), cfg.RateLimit.KeyPrefix)
			log.Info("Rate limiting via Redis: %d requests per %ds", cfg.RateLimit.Requests, cfg.RateLimit.WindowSeconds)
		} else {
			limiter = middleware.NewMemoryLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window())
			log.Info("Rate limiting in memory: %d requests per %ds", cfg.RateLimit.Requests, cfg.RateLimit.WindowSeconds)
		}
		rateLimit := middleware.RateLimit(limiter, metricsCollector, log)
		limited = func(h http.HandlerFunc) http.Handler {
			return rateLimit(h)
		}
	}

	// Настраиваем роутер
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(handlers.NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(handlers.NotFound)

	r.Use(middleware.RequestID(log))
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// --- Аутентификация ---
	api.Handle("/auth/login", limited(login.Handle)).Methods(http.MethodPost)
	api.HandleFunc("/auth/verify", verifyToken.Handle).Methods(http.MethodGet)

	// --- Услуги ---
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.Handle("/services", admin(createService.Handle)).Methods(http.MethodPost)
	api.HandleFunc("/services/{id}", getService.Handle).Methods(http.MethodGet)
	api.Handle("/services/{id}", admin(updateService.Handle)).Methods(http.MethodPut)
	api.Handle("/services/{id}", admin(deleteService.Handle)).Methods(http.MethodDelete)

	// --- Доступность и рабочие часы ---
	api.HandleFunc("/avail", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/hours", getBusinessHours.Handle).Methods(http.MethodGet)
	api.Handle("/hours", admin(updateBusinessHours.Handle)).Methods(http.MethodPut)
	api.Handle("/hours", admin(resetBusinessHours.Handle)).Methods(http.MethodDelete)

	// --- Бронирования ---
	api.Handle("/book", limited(createBooking.Handle)).Methods(http.MethodPost)
	api.Handle("/bookings", limited(createBooking.Handle)).Methods(http.MethodPost)
	api.Handle("/bookings", admin(listBookings.Handle)).Methods(http.MethodGet)
	api.HandleFunc("/bookings/customer/{email}", getCustomerBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}", getBooking.Handle).Methods(http.MethodGet)
	api.Handle("/bookings/{id}/cancel", admin(cancelBooking.Handle)).Methods(http.MethodPost)
	api.Handle("/bookings/{id}/status", admin(updateBookingStatus.Handle)).Methods(http.MethodPatch)

	// --- Отзывы ---
	api.Handle("/reviews", limited(createReview.Handle)).Methods(http.MethodPost)
	api.HandleFunc("/reviews/service/{serviceId}", getServiceReviews.Handle).Methods(http.MethodGet)
	api.Handle("/reviews", admin(listReviews.Handle)).Methods(http.MethodGet)
	api.Handle("/reviews/{id}/approve", admin(approveReview.Handle)).Methods(http.MethodPut)
	api.Handle("/reviews/{id}", admin(deleteReview.Handle)).Methods(http.MethodDelete)

	// CORS оборачивает весь роутер, preflight обрабатывается до маршрутизации
	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader, "Retry-After"},
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler(r),
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

	// Дожидаемся уведомлений, запущенных последними запросами
	if err := notifier.Wait(shutdownCtx); err != nil {
		log.Warn("Pending notifications not finished: %v", err)
	}

	if reminderServer != nil {
		reminderServer.Shutdown()
		log.Info("Reminder worker stopped")
	}

	if err := eventPublisher.Close(); err != nil {
		log.Warn("Failed to close event publisher: %v", err)
	}

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	log.Info("Server stopped gracefully")
}
