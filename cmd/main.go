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

	bookSeatsHandler "github.com/m04kA/SMC-ShowtimeService/internal/api/handlers/book_seats"
	cancelScreeningHandler "github.com/m04kA/SMC-ShowtimeService/internal/api/handlers/cancel_screening"
	cancelTitleScreeningsHandler "github.com/m04kA/SMC-ShowtimeService/internal/api/handlers/cancel_title_screenings"
	cancelVenueScreeningsHandler "github.com/m04kA/SMC-ShowtimeService/internal/api/handlers/cancel_venue_screenings"
	createVenueHandler "github.com/m04kA/SMC-ShowtimeService/internal/api/handlers/create_venue"
	deleteVenueHandler "github.com/m04kA/SMC-ShowtimeService/internal/api/handlers/delete_venue"
	getBalanceHandler "github.com/m04kA/SMC-ShowtimeService/internal/api/handlers/get_balance"
	getBookingHandler "github.com/m04kA/SMC-ShowtimeService/internal/api/handlers/get_booking"
	getPatronBookingsHandler "github.com/m04kA/SMC-ShowtimeService/internal/api/handlers/get_patron_bookings"
	getScreeningHandler "github.com/m04kA/SMC-ShowtimeService/internal/api/handlers/get_screening"
	getSeatMapHandler "github.com/m04kA/SMC-ShowtimeService/internal/api/handlers/get_seat_map"
	getTaskHandler "github.com/m04kA/SMC-ShowtimeService/internal/api/handlers/get_task"
	getVenueHandler "github.com/m04kA/SMC-ShowtimeService/internal/api/handlers/get_venue"
	listScreeningsHandler "github.com/m04kA/SMC-ShowtimeService/internal/api/handlers/list_screenings"
	listVenuesHandler "github.com/m04kA/SMC-ShowtimeService/internal/api/handlers/list_venues"
	rescheduleScreeningHandler "github.com/m04kA/SMC-ShowtimeService/internal/api/handlers/reschedule_screening"
	scheduleScreeningHandler "github.com/m04kA/SMC-ShowtimeService/internal/api/handlers/schedule_screening"
	suggestSlotHandler "github.com/m04kA/SMC-ShowtimeService/internal/api/handlers/suggest_slot"
	topUpHandler "github.com/m04kA/SMC-ShowtimeService/internal/api/handlers/top_up"
	"github.com/m04kA/SMC-ShowtimeService/internal/api/middleware"
	"github.com/m04kA/SMC-ShowtimeService/internal/config"
	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
	"github.com/m04kA/SMC-ShowtimeService/internal/infra/broker"
	"github.com/m04kA/SMC-ShowtimeService/internal/infra/cache/seatmap"
	bookingRepo "github.com/m04kA/SMC-ShowtimeService/internal/infra/storage/booking"
	patronRepo "github.com/m04kA/SMC-ShowtimeService/internal/infra/storage/patron"
	screeningRepo "github.com/m04kA/SMC-ShowtimeService/internal/infra/storage/screening"
	venueRepo "github.com/m04kA/SMC-ShowtimeService/internal/infra/storage/venue"
	catalogServiceClient "github.com/m04kA/SMC-ShowtimeService/internal/integrations/catalogservice"
	bookingsService "github.com/m04kA/SMC-ShowtimeService/internal/service/bookings"
	"github.com/m04kA/SMC-ShowtimeService/internal/service/conflicts"
	patronsService "github.com/m04kA/SMC-ShowtimeService/internal/service/patrons"
	screeningsService "github.com/m04kA/SMC-ShowtimeService/internal/service/screenings"
	venuesService "github.com/m04kA/SMC-ShowtimeService/internal/service/venues"
	bookSeatsUC "github.com/m04kA/SMC-ShowtimeService/internal/usecase/book_seats"
	cancelScreeningsUC "github.com/m04kA/SMC-ShowtimeService/internal/usecase/cancel_screenings"
	rescheduleScreeningUC "github.com/m04kA/SMC-ShowtimeService/internal/usecase/reschedule_screening"
	scheduleScreeningUC "github.com/m04kA/SMC-ShowtimeService/internal/usecase/schedule_screening"
	suggestSlotUC "github.com/m04kA/SMC-ShowtimeService/internal/usecase/suggest_slot"
	"github.com/m04kA/SMC-ShowtimeService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ShowtimeService/pkg/logger"
	"github.com/m04kA/SMC-ShowtimeService/pkg/metrics"
	"github.com/m04kA/SMC-ShowtimeService/pkg/taskrunner"
	"github.com/m04kA/SMC-ShowtimeService/pkg/txmanager"
)

const configPath = "config.toml"

func main() {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-ShowtimeService...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Scheduling.Location()
	if err != nil {
		log.Fatal("Invalid scheduling timezone: %v", err)
	}

	// Metrics (optional)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Database
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

	// nil collector disables query metrics
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB, txmanager.WithMaxAttempts(cfg.Database.TxMaxAttempts))

	venueRepository := venueRepo.NewRepository(wrappedDB)
	screeningRepository := screeningRepo.NewRepository(wrappedDB)
	patronRepository := patronRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)

	// Seat map cache
	var seatMapCache interface {
		Get(ctx context.Context, screeningID int64) (*domain.SeatMap, error)
		Set(ctx context.Context, m *domain.SeatMap) error
		Invalidate(ctx context.Context, screeningIDs ...int64) error
	} = seatmap.NoopCache{}
	if cfg.Redis.Enabled {
		redisClient, err := seatmap.NewClient(context.Background(), seatmap.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
		seatMapCache = seatmap.NewCache(redisClient, time.Duration(cfg.Redis.SeatMapTTL)*time.Second)
		log.Info("Seat map cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.SeatMapTTL)
	}

	// Domain events
	var publisher interface {
		PublishBookingConfirmed(ctx context.Context, event broker.BookingConfirmedEvent) error
		PublishScreeningCancelled(ctx context.Context, event broker.ScreeningCancelledEvent) error
	} = broker.NoopPublisher{}
	if cfg.RabbitMQ.Enabled {
		amqpPublisher := broker.NewPublisher(cfg.RabbitMQ.URL, log)
		defer amqpPublisher.Close()
		publisher = amqpPublisher
		log.Info("Event publishing to RabbitMQ enabled")
	}

	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CatalogService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Background tasks
	var runnerOpts []taskrunner.Option
	if metricsCollector != nil {
		runnerOpts = append(runnerOpts, taskrunner.WithRecorder(metricsCollector))
	}
	runner := taskrunner.New(
		cfg.Tasks.MaxConcurrent,
		time.Duration(cfg.Tasks.Retention)*time.Second,
		log,
		runnerOpts...,
	)

	// Services
	checker := conflicts.NewChecker(screeningRepository, location, log)
	venueSvc := venuesService.NewService(venueRepository, log)
	screeningSvc := screeningsService.NewService(screeningRepository, venueRepository, seatMapCache, location, log)
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	patronSvc := patronsService.NewService(patronRepository, log)

	// Use cases
	scheduleUseCase := scheduleScreeningUC.NewUseCase(
		venueRepository,
		screeningRepository,
		checker,
		catalogClient,
		txMgr,
		log,
	)
	rescheduleUseCase := rescheduleScreeningUC.NewUseCase(
		venueRepository,
		screeningRepository,
		checker,
		txMgr,
		log,
	)
	suggestUseCase := suggestSlotUC.NewUseCase(
		venueRepository,
		checker,
		txMgr,
		location,
		log,
	)
	bookUseCase := bookSeatsUC.NewUseCase(
		screeningRepository,
		venueRepository,
		patronRepository,
		bookingRepository,
		seatMapCache,
		publisher,
		txMgr,
		log,
	)
	cancelUseCase := cancelScreeningsUC.NewUseCase(
		screeningRepository,
		venueRepository,
		bookingRepository,
		patronRepository,
		seatMapCache,
		publisher,
		runner,
		txMgr,
		log,
	)

	// Handlers
	createVenue := createVenueHandler.NewHandler(venueSvc, log)
	getVenue := getVenueHandler.NewHandler(venueSvc, log)
	listVenues := listVenuesHandler.NewHandler(venueSvc, log)
	deleteVenue := deleteVenueHandler.NewHandler(cancelUseCase, log)
	cancelVenueScreenings := cancelVenueScreeningsHandler.NewHandler(cancelUseCase, log)
	scheduleScreening := scheduleScreeningHandler.NewHandler(scheduleUseCase, suggestUseCase, log)
	rescheduleScreening := rescheduleScreeningHandler.NewHandler(rescheduleUseCase, screeningSvc, suggestUseCase, log)
	cancelScreening := cancelScreeningHandler.NewHandler(cancelUseCase, log)
	cancelTitleScreenings := cancelTitleScreeningsHandler.NewHandler(cancelUseCase, log)
	getScreening := getScreeningHandler.NewHandler(screeningSvc, log)
	getSeatMap := getSeatMapHandler.NewHandler(screeningSvc, log)
	listScreenings := listScreeningsHandler.NewHandler(screeningSvc, location, log)
	suggestSlot := suggestSlotHandler.NewHandler(suggestUseCase, log)
	bookSeats := bookSeatsHandler.NewHandler(bookUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getPatronBookings := getPatronBookingsHandler.NewHandler(bookingSvc, log)
	getBalance := getBalanceHandler.NewHandler(patronSvc, log)
	topUp := topUpHandler.NewHandler(patronSvc, log)
	getTask := getTaskHandler.NewHandler(runner, log)

	// Router
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth([]byte(cfg.Auth.JWTSecret)))

	// ============================================================
	// ANY AUTHENTICATED CALLER
	// ============================================================

	api.HandleFunc("/venues", listVenues.Handle).Methods(http.MethodGet)
	api.HandleFunc("/venues/{venueId}", getVenue.Handle).Methods(http.MethodGet)
	api.HandleFunc("/venues/{venueId}/screens/{screen}/screenings", listScreenings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/screenings/{screeningId}", getScreening.Handle).Methods(http.MethodGet)
	api.HandleFunc("/screenings/{screeningId}/seats", getSeatMap.Handle).Methods(http.MethodGet)

	// --- Bookings ---
	api.HandleFunc("/screenings/{screeningId}/bookings", bookSeats.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/patrons/{patronId}/bookings", getPatronBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/patrons/{patronId}/balance", getBalance.Handle).Methods(http.MethodGet)

	// ============================================================
	// OPERATOR ROUTES
	// ============================================================

	operator := api.PathPrefix("").Subrouter()
	operator.Use(middleware.RequireRole(domain.RoleOperator))

	// --- Venues ---
	operator.HandleFunc("/venues", createVenue.Handle).Methods(http.MethodPost)
	operator.HandleFunc("/venues/{venueId}", deleteVenue.Handle).Methods(http.MethodDelete)
	operator.HandleFunc("/venues/{venueId}/screenings", cancelVenueScreenings.Handle).Methods(http.MethodDelete)
	operator.HandleFunc("/venues/{venueId}/screens/{screen}/next-slot", suggestSlot.Handle).Methods(http.MethodGet)

	// --- Screenings ---
	operator.HandleFunc("/screenings", scheduleScreening.Handle).Methods(http.MethodPost)
	operator.HandleFunc("/screenings/{screeningId}/schedule", rescheduleScreening.Handle).Methods(http.MethodPatch)
	operator.HandleFunc("/screenings/{screeningId}", cancelScreening.Handle).Methods(http.MethodDelete)
	operator.HandleFunc("/titles/{kind}/{titleId}/screenings", cancelTitleScreenings.Handle).Methods(http.MethodDelete)

	// --- Wallets and tasks ---
	operator.HandleFunc("/patrons/{patronId}/top-up", topUp.Handle).Methods(http.MethodPost)
	operator.HandleFunc("/tasks/{taskId}", getTask.Handle).Methods(http.MethodGet)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

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

	// running cascades finish before the database is closed
	if err := runner.Shutdown(shutdownCtx); err != nil {
		log.Error("Background tasks did not finish: %v", err)
	}

	close(stopMetricsCh)
	log.Info("Server stopped gracefully")
}
