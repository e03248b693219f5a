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
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	getBookingConflictsHandler "github.com/m04kA/SMC-ConflictService/internal/api/handlers/get_booking_conflicts"
	getConflictsHandler "github.com/m04kA/SMC-ConflictService/internal/api/handlers/get_conflicts"
	"github.com/m04kA/SMC-ConflictService/internal/api/middleware"
	"github.com/m04kA/SMC-ConflictService/internal/config"
	conflictsCache "github.com/m04kA/SMC-ConflictService/internal/infra/cache/conflicts"
	assignmentRepo "github.com/m04kA/SMC-ConflictService/internal/infra/storage/assignment"
	bookingRepo "github.com/m04kA/SMC-ConflictService/internal/infra/storage/booking"
	crewRepo "github.com/m04kA/SMC-ConflictService/internal/infra/storage/crew"
	timeEntryRepo "github.com/m04kA/SMC-ConflictService/internal/infra/storage/timeentry"
	travelRepo "github.com/m04kA/SMC-ConflictService/internal/infra/storage/travel"
	detectConflictsUC "github.com/m04kA/SMC-ConflictService/internal/usecase/detect_conflicts"
	"github.com/m04kA/SMC-ConflictService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ConflictService/pkg/logger"
	"github.com/m04kA/SMC-ConflictService/pkg/metrics"
	"github.com/m04kA/SMC-ConflictService/pkg/txmanager"
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

	log.Info("Starting SMC-ConflictService...")
	log.Info("Configuration loaded from config.toml")

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

	// Обёртка над БД (с метриками или без)
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db)
	}

	// Инициализируем репозитории
	repos := detectConflictsUC.Repositories{
		Bookings:    bookingRepo.NewRepository(wrappedDB),
		Crew:        crewRepo.NewRepository(wrappedDB),
		TimeEntries: timeEntryRepo.NewRepository(wrappedDB),
		Assignments: assignmentRepo.NewRepository(wrappedDB),
		Travel:      travelRepo.NewRepository(wrappedDB),
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	var ucOptions []detectConflictsUC.Option
	if cfg.Metrics.Enabled {
		ucOptions = append(ucOptions, detectConflictsUC.WithMetrics(metricsCollector))
	}

	// Кеш отчетов в Redis (если включен и доступен)
	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		cache := conflictsCache.NewCache(redisClient, cfg.Cache.KeyPrefix, cfg.Cache.TTLDuration())

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := cache.Ping(pingCtx)
		cancel()
		if err != nil {
			log.Warn("Redis is unavailable at %s, conflict cache disabled: %v", cfg.Cache.Addr, err)
		} else {
			ucOptions = append(ucOptions, detectConflictsUC.WithCache(cache))
			log.Info("Conflict cache enabled (addr=%s, ttl=%ds)", cfg.Cache.Addr, cfg.Cache.TTL)
		}
	}

	// Инициализируем use case
	detectConflictsUseCase := detectConflictsUC.NewUseCase(
		repos,
		txMgr,
		detectConflictsUC.Settings{
			MaxRangeDays:      cfg.Detection.MaxRangeDays,
			TravelMatrixLimit: cfg.Detection.TravelMatrixLimit,
		},
		log,
		ucOptions...,
	)

	// Инициализируем handlers
	getConflicts := getConflictsHandler.NewHandler(detectConflictsUseCase, log)
	getBookingConflicts := getBookingConflictsHandler.NewHandler(detectConflictsUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Конфликты расписания за период
	protected.HandleFunc("/conflicts", getConflicts.Handle).Methods(http.MethodGet)

	// Конфликты конкретного бронирования
	protected.HandleFunc("/bookings/{bookingId}/conflicts", getBookingConflicts.Handle).Methods(http.MethodGet)

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
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis client: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}
